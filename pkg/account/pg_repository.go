package account

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/simple-auth/simple-auth/pkg/provider"
)

const uniqueViolationCode = "23505"

const accountColumns = `
	id, email, display_name, gender, phone_number, country_code, photo_url, role,
	password_digest, pending_token, email_verified, phone_verified,
	otp_code, otp_expires_at,
	google_id, google_access_token, facebook_id, facebook_access_token,
	created_at, updated_at
`

// PgAccountRepository implements AccountRepository on PostgreSQL.
// Provider links are stored as per-provider columns with partial unique
// indexes, and the find-or-create used by provider logins relies on the
// unique email constraint for its atomicity.
type PgAccountRepository struct {
	db *pgxpool.Pool
}

// NewPgAccountRepository creates a new PostgreSQL account repository
func NewPgAccountRepository(db *pgxpool.Pool) *PgAccountRepository {
	return &PgAccountRepository{db: db}
}

// FindByEmail retrieves an account by email
func (r *PgAccountRepository) FindByEmail(ctx context.Context, email string) (Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE email = $1`

	acct, err := scanAccount(r.db.QueryRow(ctx, query, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Account{}, ErrAccountNotFound
		}
		return Account{}, err
	}
	return acct, nil
}

// CreateUnique inserts a new account, enforcing email and phone uniqueness
func (r *PgAccountRepository) CreateUnique(ctx context.Context, acct Account) (Account, error) {
	if acct.ID == uuid.Nil {
		acct.ID = uuid.New()
	}

	query := `
		INSERT INTO accounts (
			id, email, display_name, gender, phone_number, country_code, photo_url, role,
			password_digest, pending_token, email_verified, phone_verified
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING ` + accountColumns

	created, err := scanAccount(r.db.QueryRow(ctx, query,
		acct.ID,
		acct.Email,
		toNullString(acct.DisplayName),
		toNullString(acct.Gender),
		toNullString(acct.PhoneNumber),
		toNullString(acct.CountryCode),
		toNullString(acct.PhotoURL),
		acct.Role,
		toNullString(acct.PasswordDigest),
		toNullString(acct.PendingToken),
		acct.EmailVerified,
		acct.PhoneVerified,
	))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			if strings.Contains(pgErr.ConstraintName, "phone") {
				return Account{}, ErrPhoneTaken
			}
			return Account{}, ErrEmailTaken
		}
		return Account{}, err
	}
	return created, nil
}

// Save persists changes to an existing account
func (r *PgAccountRepository) Save(ctx context.Context, acct Account) (Account, error) {
	query := `
		UPDATE accounts SET
			email = $2,
			display_name = $3,
			gender = $4,
			phone_number = $5,
			country_code = $6,
			photo_url = $7,
			role = $8,
			password_digest = $9,
			pending_token = $10,
			email_verified = $11,
			phone_verified = $12,
			otp_code = $13,
			otp_expires_at = $14,
			google_id = $15,
			google_access_token = $16,
			facebook_id = $17,
			facebook_access_token = $18,
			updated_at = NOW() AT TIME ZONE 'UTC'
		WHERE id = $1
		RETURNING ` + accountColumns

	var otpCode sql.NullInt64
	var otpExpiresAt sql.NullTime
	if acct.Otp != nil {
		otpCode = sql.NullInt64{Int64: acct.Otp.Code, Valid: true}
		otpExpiresAt = sql.NullTime{Time: acct.Otp.ExpiresAt, Valid: true}
	}

	googleID, googleToken := linkColumns(acct, provider.Google)
	facebookID, facebookToken := linkColumns(acct, provider.Facebook)

	saved, err := scanAccount(r.db.QueryRow(ctx, query,
		acct.ID,
		acct.Email,
		toNullString(acct.DisplayName),
		toNullString(acct.Gender),
		toNullString(acct.PhoneNumber),
		toNullString(acct.CountryCode),
		toNullString(acct.PhotoURL),
		acct.Role,
		toNullString(acct.PasswordDigest),
		toNullString(acct.PendingToken),
		acct.EmailVerified,
		acct.PhoneVerified,
		otpCode,
		otpExpiresAt,
		googleID,
		googleToken,
		facebookID,
		facebookToken,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Account{}, ErrAccountNotFound
		}
		return Account{}, err
	}
	return saved, nil
}

// UpsertProviderLogin atomically finds an account by provider subject or
// email and applies the provider assertion, creating when absent. The
// update-then-insert pair is safe under concurrency: two simultaneous
// logins for a brand-new identity collapse into one row on the unique
// email constraint.
func (r *PgAccountRepository) UpsertProviderLogin(ctx context.Context, params UpsertProviderLoginParams) (Account, error) {
	idColumn, tokenColumn, err := providerColumns(params.Provider)
	if err != nil {
		return Account{}, err
	}

	update := fmt.Sprintf(`
		UPDATE accounts SET
			display_name = $3,
			photo_url = COALESCE(NULLIF($4, ''), photo_url),
			%[1]s = $1,
			%[2]s = $5,
			updated_at = NOW() AT TIME ZONE 'UTC'
		WHERE %[1]s = $1 OR email = $2
		RETURNING `+accountColumns, idColumn, tokenColumn)

	acct, err := scanAccount(r.db.QueryRow(ctx, update,
		params.SubjectID,
		params.Email,
		toNullString(params.DisplayName),
		params.PhotoURL,
		toNullString(params.AccessToken),
	))
	if err == nil {
		return acct, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return Account{}, err
	}

	insert := fmt.Sprintf(`
		INSERT INTO accounts (id, email, display_name, photo_url, role, email_verified, %[1]s, %[2]s)
		VALUES ($1, $2, $3, NULLIF($4, ''), $5, $6, $7, $8)
		ON CONFLICT (email) DO UPDATE SET
			display_name = EXCLUDED.display_name,
			photo_url = COALESCE(EXCLUDED.photo_url, accounts.photo_url),
			%[1]s = EXCLUDED.%[1]s,
			%[2]s = EXCLUDED.%[2]s,
			updated_at = NOW() AT TIME ZONE 'UTC'
		RETURNING `+accountColumns, idColumn, tokenColumn)

	acct, err = scanAccount(r.db.QueryRow(ctx, insert,
		uuid.New(),
		params.Email,
		toNullString(params.DisplayName),
		params.PhotoURL,
		params.Role,
		params.EmailVerified,
		params.SubjectID,
		toNullString(params.AccessToken),
	))
	if err != nil {
		return Account{}, err
	}
	return acct, nil
}

func providerColumns(providerName string) (idColumn, tokenColumn string, err error) {
	switch providerName {
	case provider.Google:
		return "google_id", "google_access_token", nil
	case provider.Facebook:
		return "facebook_id", "facebook_access_token", nil
	default:
		return "", "", fmt.Errorf("unsupported provider: %s", providerName)
	}
}

func linkColumns(acct Account, providerName string) (sql.NullString, sql.NullString) {
	l, ok := acct.Link(providerName)
	if !ok {
		return sql.NullString{}, sql.NullString{}
	}
	return toNullString(l.SubjectID), toNullString(l.AccessToken)
}

func toNullString(str string) sql.NullString {
	if str == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: str, Valid: true}
}

func scanAccount(row pgx.Row) (Account, error) {
	var acct Account
	var displayName, gender, phoneNumber, countryCode, photoURL sql.NullString
	var passwordDigest, pendingToken sql.NullString
	var otpCode sql.NullInt64
	var otpExpiresAt sql.NullTime
	var googleID, googleToken, facebookID, facebookToken sql.NullString

	err := row.Scan(
		&acct.ID,
		&acct.Email,
		&displayName,
		&gender,
		&phoneNumber,
		&countryCode,
		&photoURL,
		&acct.Role,
		&passwordDigest,
		&pendingToken,
		&acct.EmailVerified,
		&acct.PhoneVerified,
		&otpCode,
		&otpExpiresAt,
		&googleID,
		&googleToken,
		&facebookID,
		&facebookToken,
		&acct.CreatedAt,
		&acct.UpdatedAt,
	)
	if err != nil {
		return Account{}, err
	}

	acct.DisplayName = displayName.String
	acct.Gender = gender.String
	acct.PhoneNumber = phoneNumber.String
	acct.CountryCode = countryCode.String
	acct.PhotoURL = photoURL.String
	acct.PasswordDigest = passwordDigest.String
	acct.PendingToken = pendingToken.String

	if otpCode.Valid && otpExpiresAt.Valid {
		acct.Otp = &OtpChallenge{
			Code:      otpCode.Int64,
			ExpiresAt: otpExpiresAt.Time.UTC(),
		}
	}
	if googleID.Valid {
		acct.SetLink(ProviderLink{Provider: provider.Google, SubjectID: googleID.String, AccessToken: googleToken.String})
	}
	if facebookID.Valid {
		acct.SetLink(ProviderLink{Provider: provider.Facebook, SubjectID: facebookID.String, AccessToken: facebookToken.String})
	}

	return acct, nil
}
