package tokengen

import (
	"errors"
	"log/slog"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// DefaultExpiry is the verification token lifetime used when callers do
// not supply one.
const DefaultExpiry = 5 * time.Minute

// ErrInvalidToken is returned when a token is tampered with, expired,
// or otherwise fails validation
var ErrInvalidToken = errors.New("token is invalid")

// TokenService interface defines methods for signed token operations
type TokenService interface {
	// Issue serializes the claims plus an expiry into a signed opaque string
	Issue(claims map[string]string, ttl time.Duration) (string, time.Time, error)

	// Verify validates the token signature and expiry and returns the
	// original claims
	Verify(tokenStr string) (map[string]string, error)
}

// Claims struct for JWT claims
type Claims struct {
	ExtraClaims map[string]string `json:"extra_claims,omitempty"`
	jwt.RegisteredClaims
}

// JwtTokenService implements the TokenService interface using HS256 JWTs.
// Tokens are stateless and self-contained: validity is fully determined by
// the signature and the embedded expiry, so verification never touches
// storage. The compact JWT encoding is URL-safe.
type JwtTokenService struct {
	Secret   string
	Issuer   string
	Audience string
}

// NewJwtTokenService creates a new JwtTokenService
func NewJwtTokenService(secret, issuer, audience string) *JwtTokenService {
	return &JwtTokenService{
		Secret:   secret,
		Issuer:   issuer,
		Audience: audience,
	}
}

// Issue creates a new signed token carrying the given claims
func (s *JwtTokenService) Issue(claims map[string]string, ttl time.Duration) (string, time.Time, error) {
	now := time.Now().UTC()
	tokenClaims := Claims{
		ExtraClaims: claims,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    s.Issuer,
			ID:        uuid.New().String(),
			Audience:  jwt.ClaimStrings{s.Audience},
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, tokenClaims)
	ss, err := token.SignedString([]byte(s.Secret))
	if err != nil {
		slog.Error("Failed to sign JWT claim string", "err", err)
		return "", time.Time{}, err
	}
	return ss, tokenClaims.ExpiresAt.Time, nil
}

// Verify parses and validates a token string and returns its claims
func (s *JwtTokenService) Verify(tokenStr string) (map[string]string, error) {
	var claims Claims
	token, err := jwt.ParseWithClaims(tokenStr, &claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return []byte(s.Secret), nil
	})
	if err != nil {
		slog.Error("Failed to parse JWT string", "err", err)
		return nil, ErrInvalidToken
	}

	if !token.Valid {
		slog.Error("Failed to validate token claims", "err", "token invalid")
		return nil, ErrInvalidToken
	}

	return claims.ExtraClaims, nil
}
