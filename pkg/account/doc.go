// Package account implements the credential-lifecycle flows for
// simple-auth: registration with email verification, token-based email
// verification, password rotation, OTP-based password reset, and
// reconciliation of external provider logins into a single local record.
//
// # Overview
//
// The Service composes three leaf primitives with a store adapter:
//
//   - pkg/password for one-way password digests
//   - pkg/tokengen for stateless signed verification tokens
//   - pkg/otp for fixed-width numeric one-time codes
//
// Storage is behind the AccountRepository interface with an in-memory
// implementation for tests and a PostgreSQL implementation on pgx. The
// repository, not the service, carries the concurrency guarantees: email
// uniqueness on create and atomicity of the provider-login upsert.
//
// # Basic Usage
//
//	repo := account.NewPgAccountRepository(pool)
//	tokens := tokengen.NewJwtTokenService(secret, "simple-auth", "simple-auth")
//	svc := account.NewService(repo, tokens,
//		account.WithTokenExpiry(5*time.Minute),
//		account.WithOtpExpiry(15*time.Minute),
//	)
//
//	acct, err := svc.Register(ctx, account.RegisterParams{
//		Email:    "a@x.com",
//		Password: "secret",
//	})
//	// deliver acct.PendingToken to the user out of band
//
//	err = svc.VerifyEmailToken(ctx, token)
//
// # Failure Taxonomy
//
// Every flow returns typed sentinel errors: ErrAccountNotFound for
// failed lookups, ErrEmailTaken for duplicate registration,
// ErrInvalidToken and ErrInvalidPassword for failed authentication, and
// ErrInvalidOtp/ErrOtpExpired for rejected reset codes. Transports map
// these onto status codes; no flow retries internally.
package account
