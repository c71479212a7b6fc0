package account

import (
	"context"
)

// UpsertProviderLoginParams carries the normalized provider assertion
// used by the atomic find-or-create in the external login flow
type UpsertProviderLoginParams struct {
	Provider      string
	SubjectID     string
	Email         string
	EmailVerified bool
	DisplayName   string
	PhotoURL      string
	AccessToken   string
	Role          string
}

// AccountRepository is the credential store adapter consumed by the
// service. Implementations must enforce email uniqueness on create and
// make UpsertProviderLogin atomic: two concurrent logins for a brand-new
// identity must collapse into one record.
type AccountRepository interface {
	// FindByEmail returns the account with the given email, or
	// ErrAccountNotFound
	FindByEmail(ctx context.Context, email string) (Account, error)

	// CreateUnique inserts a new account, failing with ErrEmailTaken
	// when the email already exists
	CreateUnique(ctx context.Context, acct Account) (Account, error)

	// Save persists changes to an existing account, keyed by ID
	Save(ctx context.Context, acct Account) (Account, error)

	// UpsertProviderLogin atomically finds an account by provider link
	// or email and applies the provider assertion, creating the account
	// when no match exists. On create the email verified flag and role
	// come from the params; on match only the display name, photo and
	// access token are refreshed.
	UpsertProviderLogin(ctx context.Context, params UpsertProviderLoginParams) (Account, error)
}
