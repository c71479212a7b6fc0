package account

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jinzhu/copier"

	"github.com/simple-auth/simple-auth/pkg/otp"
	"github.com/simple-auth/simple-auth/pkg/password"
	"github.com/simple-auth/simple-auth/pkg/provider"
	"github.com/simple-auth/simple-auth/pkg/tokengen"
)

// DefaultOtpExpiry is the password reset code validity window used when
// callers do not supply one.
const DefaultOtpExpiry = 15 * time.Minute

// Service composes the hasher, token service, OTP generator and the
// account repository into the user-facing credential flows
type Service struct {
	repo        AccountRepository
	tokens      tokengen.TokenService
	hasher      password.Hasher
	tokenExpiry time.Duration
	otpExpiry   time.Duration
	otpDigits   int
	defaultRole string
}

// ServiceOption defines configuration options
type ServiceOption func(*Service)

// WithHasher sets the password hasher
func WithHasher(h password.Hasher) ServiceOption {
	return func(s *Service) {
		s.hasher = h
	}
}

// WithTokenExpiry sets the email verification token lifetime
func WithTokenExpiry(expiry time.Duration) ServiceOption {
	return func(s *Service) {
		s.tokenExpiry = expiry
	}
}

// WithOtpExpiry sets the password reset OTP validity window
func WithOtpExpiry(expiry time.Duration) ServiceOption {
	return func(s *Service) {
		s.otpExpiry = expiry
	}
}

// WithOtpDigits sets the width of generated password reset codes
func WithOtpDigits(digits int) ServiceOption {
	return func(s *Service) {
		s.otpDigits = digits
	}
}

// WithDefaultRole sets the role assigned to newly created accounts
func WithDefaultRole(role string) ServiceOption {
	return func(s *Service) {
		s.defaultRole = role
	}
}

// NewService creates a new account service. The repository and token
// service are explicit dependencies; there is no package-level store
// handle.
func NewService(repo AccountRepository, tokens tokengen.TokenService, opts ...ServiceOption) *Service {
	s := &Service{
		repo:        repo,
		tokens:      tokens,
		hasher:      &password.BcryptHasher{},
		tokenExpiry: tokengen.DefaultExpiry,
		otpExpiry:   DefaultOtpExpiry,
		otpDigits:   otp.DefaultDigits,
		defaultRole: "user",
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// RegisterParams are the profile fields accepted at registration
type RegisterParams struct {
	Email       string
	DisplayName string
	Gender      string
	PhoneNumber string
	CountryCode string
	Password    string
}

// Register creates a new account with a pending email verification
// token. Delivery of the token is the caller's job. Fails with
// ErrEmailTaken when the email already exists.
func (s *Service) Register(ctx context.Context, params RegisterParams) (Account, error) {
	token, _, err := s.tokens.Issue(map[string]string{
		"email":        params.Email,
		"display_name": params.DisplayName,
	}, s.tokenExpiry)
	if err != nil {
		return Account{}, fmt.Errorf("failed to issue verification token: %w", err)
	}

	digest, err := s.hasher.Hash(params.Password)
	if err != nil {
		return Account{}, fmt.Errorf("failed to hash password: %w", err)
	}

	acct, err := s.repo.CreateUnique(ctx, Account{
		Email:          params.Email,
		DisplayName:    params.DisplayName,
		Gender:         params.Gender,
		PhoneNumber:    params.PhoneNumber,
		CountryCode:    params.CountryCode,
		Role:           s.defaultRole,
		PasswordDigest: digest,
		PendingToken:   token,
		EmailVerified:  false,
	})
	if err != nil {
		slog.Warn("Failed to create account", "email", params.Email, "err", err)
		return Account{}, err
	}

	slog.Info("Account registered", "account_id", acct.ID, "email", acct.Email)
	return acct, nil
}

// VerifyEmailToken verifies an email using the provided token. The
// pending token is a consumable capability: verification clears it, and
// presenting the same token a second time fails with ErrInvalidToken
// even while its signature is still valid.
func (s *Service) VerifyEmailToken(ctx context.Context, token string) error {
	claims, err := s.tokens.Verify(token)
	if err != nil {
		slog.Warn("Email verification token rejected", "err", err)
		return ErrInvalidToken
	}

	acct, err := s.repo.FindByEmail(ctx, claims["email"])
	if err != nil {
		return err
	}

	if acct.PendingToken != token {
		slog.Warn("Verification token no longer actionable", "account_id", acct.ID)
		return ErrInvalidToken
	}

	acct.EmailVerified = true
	acct.PendingToken = ""
	if _, err := s.repo.Save(ctx, acct); err != nil {
		return fmt.Errorf("failed to mark email as verified: %w", err)
	}

	slog.Info("Email verified", "account_id", acct.ID)
	return nil
}

// FindByEmail returns the account with the given email, or
// ErrAccountNotFound
func (s *Service) FindByEmail(ctx context.Context, email string) (Account, error) {
	return s.repo.FindByEmail(ctx, email)
}

// RotatePassword verifies the current password and replaces it with a
// new one. On mismatch the stored digest is left unchanged and
// ErrInvalidPassword is returned.
func (s *Service) RotatePassword(ctx context.Context, email, currentPassword, newPassword string) (Account, error) {
	acct, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return Account{}, err
	}

	match, err := s.hasher.Verify(currentPassword, acct.PasswordDigest)
	if err != nil || !match {
		slog.Warn("Password verification failed", "account_id", acct.ID, "err", err)
		return Account{}, ErrInvalidPassword
	}

	digest, err := s.hasher.Hash(newPassword)
	if err != nil {
		return Account{}, fmt.Errorf("failed to hash new password: %w", err)
	}

	acct.PasswordDigest = digest
	acct, err = s.repo.Save(ctx, acct)
	if err != nil {
		return Account{}, fmt.Errorf("failed to save new password: %w", err)
	}

	slog.Info("Password rotated", "account_id", acct.ID)
	return acct, nil
}

// RequestOtp generates a one-time code for a password reset and attaches
// it to the account with its validity window. Delivery of the code is
// the caller's job.
func (s *Service) RequestOtp(ctx context.Context, email string) (Account, error) {
	acct, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return Account{}, err
	}

	code, err := otp.Generate(s.otpDigits)
	if err != nil {
		return Account{}, fmt.Errorf("failed to generate otp: %w", err)
	}

	acct.Otp = &OtpChallenge{
		Code:      code,
		ExpiresAt: time.Now().UTC().Add(s.otpExpiry),
	}
	acct, err = s.repo.Save(ctx, acct)
	if err != nil {
		return Account{}, fmt.Errorf("failed to save otp: %w", err)
	}

	slog.Info("Password reset OTP issued", "account_id", acct.ID, "expires_at", acct.Otp.ExpiresAt)
	return acct, nil
}

// ConfirmOtpReset checks the submitted code against the stored OTP and
// sets the new password. Expiry is checked independently of code
// correctness: an expired-but-correct code still fails, and the stored
// OTP is cleared so it can never be reused.
func (s *Service) ConfirmOtpReset(ctx context.Context, email string, code int64, newPassword string) error {
	acct, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return err
	}

	if acct.Otp == nil || acct.Otp.Code != code {
		slog.Warn("OTP mismatch", "account_id", acct.ID)
		return ErrInvalidOtp
	}

	if acct.Otp.Expired(time.Now().UTC()) {
		// Observed expiry consumes the challenge as well.
		acct.Otp = nil
		if _, saveErr := s.repo.Save(ctx, acct); saveErr != nil {
			slog.Error("Failed to clear expired otp", "account_id", acct.ID, "err", saveErr)
		}
		return ErrOtpExpired
	}

	digest, err := s.hasher.Hash(newPassword)
	if err != nil {
		return fmt.Errorf("failed to hash new password: %w", err)
	}

	acct.PasswordDigest = digest
	acct.Otp = nil
	if _, err := s.repo.Save(ctx, acct); err != nil {
		return fmt.Errorf("failed to save new password: %w", err)
	}

	slog.Info("Password reset via OTP", "account_id", acct.ID)
	return nil
}

// ReconcileProviderLogin merges an external provider assertion into the
// local account model via an atomic upsert, linking by provider subject
// or email so a user who registered by email and later logs in via the
// provider lands on the same record. Lower-level faults are captured and
// returned as wrapped error values; the caller inspects the return
// instead of assuming success.
func (s *Service) ReconcileProviderLogin(ctx context.Context, providerName string, profile provider.Profile, accessToken string) (Projection, error) {
	if err := provider.ValidateName(providerName); err != nil {
		return Projection{}, err
	}
	if err := profile.Validate(); err != nil {
		return Projection{}, fmt.Errorf("provider rejected: %w", err)
	}

	email, emailVerified := profile.PrimaryEmail()
	acct, err := s.repo.UpsertProviderLogin(ctx, UpsertProviderLoginParams{
		Provider:      providerName,
		SubjectID:     profile.ID,
		Email:         email,
		EmailVerified: emailVerified,
		DisplayName:   profile.DisplayName,
		PhotoURL:      profile.PhotoURL,
		AccessToken:   accessToken,
		Role:          s.defaultRole,
	})
	if err != nil {
		slog.Error("Provider login reconciliation failed", "provider", providerName, "err", err)
		return Projection{}, fmt.Errorf("user verification failed: %w", err)
	}

	slog.Info("Provider login reconciled", "provider", providerName, "account_id", acct.ID)
	return projectAccount(acct), nil
}

// projectAccount maps an account onto its reduced external view
func projectAccount(acct Account) Projection {
	var proj Projection
	copier.Copy(&proj, &acct)

	if l, ok := acct.Link(provider.Google); ok {
		proj.GoogleID = l.SubjectID
	}
	if l, ok := acct.Link(provider.Facebook); ok {
		proj.FacebookID = l.SubjectID
	}
	return proj
}
