package account

import "errors"

var (
	// ErrAccountNotFound is returned when an identity lookup fails
	ErrAccountNotFound = errors.New("account not found")

	// ErrEmailTaken is returned when creating an account with an email
	// that already exists
	ErrEmailTaken = errors.New("email already registered")

	// ErrPhoneTaken is returned when creating an account with a phone
	// number that already exists
	ErrPhoneTaken = errors.New("phone number already registered")

	// ErrInvalidToken is returned when an email verification token is
	// tampered with, expired, or already consumed
	ErrInvalidToken = errors.New("verification token is invalid")

	// ErrInvalidPassword is returned when the current password does not
	// match the stored digest
	ErrInvalidPassword = errors.New("invalid password")

	// ErrInvalidOtp is returned when the submitted OTP does not match
	// the stored code
	ErrInvalidOtp = errors.New("entered OTP is not valid")

	// ErrOtpExpired is returned when the stored OTP has passed its
	// validity window, even if the submitted code matches
	ErrOtpExpired = errors.New("OTP expired")
)
