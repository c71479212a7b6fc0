package api

import "github.com/simple-auth/simple-auth/pkg/provider"

// RegisterRequest represents the request to register a new account
type RegisterRequest struct {
	Email       string `json:"email"`
	DisplayName string `json:"display_name"`
	Gender      string `json:"gender,omitempty"`
	PhoneNumber string `json:"phone_number,omitempty"`
	CountryCode string `json:"country_code,omitempty"`
	Password    string `json:"password"`
}

// AccountResponse is the external view of an account. It never carries
// the password digest, the pending token, or the OTP.
type AccountResponse struct {
	ID            string `json:"id"`
	Email         string `json:"email"`
	DisplayName   string `json:"display_name"`
	PhoneNumber   string `json:"phone_number,omitempty"`
	CountryCode   string `json:"country_code,omitempty"`
	PhotoURL      string `json:"photo_url,omitempty"`
	Role          string `json:"role"`
	EmailVerified bool   `json:"email_verified"`
	PhoneVerified bool   `json:"phone_verified"`
}

// VerifyEmailRequest represents the request to verify an email
type VerifyEmailRequest struct {
	Token string `json:"token"`
}

// VerifyEmailResponse represents the response after email verification
type VerifyEmailResponse struct {
	Message string `json:"message"`
}

// RotatePasswordRequest represents the request to change a password
type RotatePasswordRequest struct {
	Email           string `json:"email"`
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

// RequestOtpRequest represents the request phase of an OTP reset
type RequestOtpRequest struct {
	Email string `json:"email"`
}

// RequestOtpResponse represents the response after an OTP was issued
type RequestOtpResponse struct {
	Message string `json:"message"`
}

// ConfirmOtpRequest represents the confirm phase of an OTP reset
type ConfirmOtpRequest struct {
	Email       string `json:"email"`
	Otp         int64  `json:"otp"`
	NewPassword string `json:"new_password"`
}

// ConfirmOtpResponse represents the response after a confirmed reset
type ConfirmOtpResponse struct {
	Message string `json:"message"`
}

// ProviderLoginRequest represents an external provider login with a
// normalized profile
type ProviderLoginRequest struct {
	Profile     provider.Profile `json:"profile"`
	AccessToken string           `json:"access_token"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
}
