package provider

import "fmt"

// Supported external identity providers
const (
	Google   = "google"
	Facebook = "facebook"
)

// Email represents one address asserted by an external provider
type Email struct {
	Value    string `json:"value"`
	Verified bool   `json:"verified"`
}

// Profile represents normalized user information from an external provider.
// Provider SDKs are responsible for producing this shape; the core only
// consumes it.
type Profile struct {
	ID          string  `json:"id"`
	DisplayName string  `json:"display_name"`
	Emails      []Email `json:"emails"`
	PhotoURL    string  `json:"photo_url,omitempty"`
}

// PrimaryEmail returns the first asserted email address and its
// verification flag
func (p Profile) PrimaryEmail() (string, bool) {
	if len(p.Emails) == 0 {
		return "", false
	}
	return p.Emails[0].Value, p.Emails[0].Verified
}

// Validate checks that the profile carries enough data to reconcile
func (p Profile) Validate() error {
	if p.ID == "" {
		return fmt.Errorf("provider profile id is required")
	}
	if len(p.Emails) == 0 {
		return fmt.Errorf("provider profile has no emails")
	}
	return nil
}

// ValidateName checks if the given name is a supported provider
func ValidateName(name string) error {
	switch name {
	case Google, Facebook:
		return nil
	default:
		return fmt.Errorf("unsupported provider: %s, must be one of: %s, %s", name, Google, Facebook)
	}
}
