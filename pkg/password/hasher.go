package password

import "fmt"

// HasherVersion represents the version of the password hashing algorithm
type HasherVersion int

const (
	// HasherV1 is the original unsalted SHA-256 implementation
	HasherV1 HasherVersion = 1
	// HasherV2 uses salted bcrypt
	HasherV2 HasherVersion = 2

	// CurrentHasherVersion is the version used for new passwords
	CurrentHasherVersion = HasherV2
)

// Hasher defines the interface for password hashing implementations
type Hasher interface {
	// Hash hashes a password
	Hash(password string) (string, error)

	// Verify checks if the provided password matches the stored digest
	Verify(password, digest string) (bool, error)
}

// NewHasher returns a password hasher for the specified version
func NewHasher(version HasherVersion) (Hasher, error) {
	switch version {
	case HasherV1:
		return &Sha256Hasher{}, nil
	case HasherV2:
		return &BcryptHasher{}, nil
	default:
		return nil, fmt.Errorf("unsupported hasher version: %d", version)
	}
}
