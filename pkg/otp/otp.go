package otp

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// DefaultDigits is the code width used by the password-reset flow
const DefaultDigits = 6

// Generate produces a uniformly random numeric one-time code with exactly
// the requested number of decimal digits. Codes are drawn from
// [10^(digits-1), 10^digits), so the leading digit is never zero and the
// code can safely be stored and compared as an integer.
//
// The generator is stateless; the caller attaches its own validity window.
func Generate(digits int) (int64, error) {
	if digits < 1 || digits > 18 {
		return 0, fmt.Errorf("invalid otp digit count: %d", digits)
	}

	low := int64(1)
	for i := 1; i < digits; i++ {
		low *= 10
	}

	span := low*10 - low
	if digits == 1 {
		low = 0
		span = 10
	}

	n, err := rand.Int(rand.Reader, big.NewInt(span))
	if err != nil {
		return 0, fmt.Errorf("failed to generate otp: %w", err)
	}

	return low + n.Int64(), nil
}
