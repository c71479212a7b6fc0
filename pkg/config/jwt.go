package config

import (
	"log/slog"
	"time"
)

// JwtConfig holds the signing settings for email-verification tokens
// and the verifier used on protected routes.
type JwtConfig struct {
	Secret   string `env:"JWT_SECRET" env-default:"very-secure-jwt-secret"`
	Issuer   string `env:"JWT_ISSUER" env-default:"simple-auth"`
	Audience string `env:"JWT_AUDIENCE" env-default:"simple-auth"`
	// Expiry values are Go duration strings, e.g. "5m" or "1h30m".
	VerifyTokenExpiry string `env:"JWT_VERIFY_TOKEN_EXPIRY" env-default:"5m"`
}

// ParseVerifyTokenExpiry returns the configured verification-token
// lifetime, falling back to the supplied default when the value does
// not parse.
func (j JwtConfig) ParseVerifyTokenExpiry(fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(j.VerifyTokenExpiry)
	if err != nil {
		slog.Warn("Invalid JWT_VERIFY_TOKEN_EXPIRY, using default", "value", j.VerifyTokenExpiry, "default", fallback)
		return fallback
	}
	return d
}
