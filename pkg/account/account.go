package account

import (
	"time"

	"github.com/google/uuid"
)

// OtpChallenge is the transient one-time code attached to an account
// during a password reset. It is cleared after a single successful
// confirmation or after observed expiry.
type OtpChallenge struct {
	Code      int64     `json:"code"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Expired reports whether the challenge validity window has passed
func (c OtpChallenge) Expired(now time.Time) bool {
	return now.After(c.ExpiresAt)
}

// ProviderLink records an external identity attached to an account.
// An account carries at most one link per provider.
type ProviderLink struct {
	Provider    string `json:"provider"`
	SubjectID   string `json:"subject_id"`
	AccessToken string `json:"access_token"`
}

// Account is the identity record owned by the credential store.
// The password digest is only ever set through a password.Hasher;
// the plaintext is never persisted.
type Account struct {
	ID             uuid.UUID      `json:"id"`
	Email          string         `json:"email"`
	DisplayName    string         `json:"display_name"`
	Gender         string         `json:"gender,omitempty"`
	PhoneNumber    string         `json:"phone_number,omitempty"`
	CountryCode    string         `json:"country_code,omitempty"`
	PhotoURL       string         `json:"photo_url,omitempty"`
	Role           string         `json:"role"`
	PasswordDigest string         `json:"-"`
	PendingToken   string         `json:"-"`
	EmailVerified  bool           `json:"email_verified"`
	PhoneVerified  bool           `json:"phone_verified"`
	Otp            *OtpChallenge  `json:"-"`
	Links          []ProviderLink `json:"-"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
}

// Link returns the provider link for the given provider, if any
func (a *Account) Link(providerName string) (ProviderLink, bool) {
	for _, l := range a.Links {
		if l.Provider == providerName {
			return l, true
		}
	}
	return ProviderLink{}, false
}

// SetLink attaches or replaces the link for the given provider
func (a *Account) SetLink(link ProviderLink) {
	for i, l := range a.Links {
		if l.Provider == link.Provider {
			a.Links[i] = link
			return
		}
	}
	a.Links = append(a.Links, link)
}

// Projection is the reduced view of an account returned by the external
// provider login flow. It never carries the password digest, the pending
// verification token, or the OTP.
type Projection struct {
	DisplayName string `json:"display_name"`
	Email       string `json:"email"`
	PhotoURL    string `json:"photo_url,omitempty"`
	Role        string `json:"role"`
	GoogleID    string `json:"google_id,omitempty"`
	FacebookID  string `json:"facebook_id,omitempty"`
}
