package config

import (
	"log/slog"
	"time"
)

// AccountConfig holds the tunables of the credential-lifecycle service.
type AccountConfig struct {
	OtpDigits   int    `env:"OTP_DIGITS" env-default:"6"`
	OtpExpiry   string `env:"OTP_EXPIRY" env-default:"15m"`
	DefaultRole string `env:"DEFAULT_ROLE" env-default:"user"`
	// BaseURL is the public origin used when composing verification
	// links, e.g. "https://auth.example.com".
	BaseURL string `env:"BASE_URL" env-default:"http://localhost:4000"`
}

func (a AccountConfig) ParseOtpExpiry(fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(a.OtpExpiry)
	if err != nil {
		slog.Warn("Invalid OTP_EXPIRY, using default", "value", a.OtpExpiry, "default", fallback)
		return fallback
	}
	return d
}
