package account

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// InMemoryAccountRepository implements AccountRepository using in-memory
// storage. It is used in tests and demos; the mutex gives it the same
// atomicity guarantees the PostgreSQL repository gets from unique
// constraints.
type InMemoryAccountRepository struct {
	mu              sync.RWMutex
	accounts        map[uuid.UUID]Account
	accountsByEmail map[string]uuid.UUID // email -> accountID
	accountsByPhone map[string]uuid.UUID // phone -> accountID
	accountsByLink  map[string]uuid.UUID // provider/subjectID -> accountID
}

// NewInMemoryAccountRepository creates a new in-memory account repository
func NewInMemoryAccountRepository() *InMemoryAccountRepository {
	return &InMemoryAccountRepository{
		accounts:        make(map[uuid.UUID]Account),
		accountsByEmail: make(map[string]uuid.UUID),
		accountsByPhone: make(map[string]uuid.UUID),
		accountsByLink:  make(map[string]uuid.UUID),
	}
}

func linkKey(providerName, subjectID string) string {
	return providerName + "/" + subjectID
}

// FindByEmail finds an account by email
func (r *InMemoryAccountRepository) FindByEmail(ctx context.Context, email string) (Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.accountsByEmail[email]
	if !ok {
		return Account{}, ErrAccountNotFound
	}
	return r.accounts[id], nil
}

// CreateUnique inserts a new account, enforcing email and phone uniqueness
func (r *InMemoryAccountRepository) CreateUnique(ctx context.Context, acct Account) (Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.accountsByEmail[acct.Email]; exists {
		return Account{}, ErrEmailTaken
	}
	if acct.PhoneNumber != "" {
		if _, exists := r.accountsByPhone[acct.PhoneNumber]; exists {
			return Account{}, ErrPhoneTaken
		}
	}

	if acct.ID == uuid.Nil {
		acct.ID = uuid.New()
	}
	now := time.Now().UTC()
	acct.CreatedAt = now
	acct.UpdatedAt = now

	r.store(acct)
	return acct, nil
}

// Save persists changes to an existing account
func (r *InMemoryAccountRepository) Save(ctx context.Context, acct Account) (Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	prev, ok := r.accounts[acct.ID]
	if !ok {
		return Account{}, ErrAccountNotFound
	}

	if prev.Email != acct.Email {
		delete(r.accountsByEmail, prev.Email)
	}
	if prev.PhoneNumber != "" && prev.PhoneNumber != acct.PhoneNumber {
		delete(r.accountsByPhone, prev.PhoneNumber)
	}

	acct.UpdatedAt = time.Now().UTC()
	r.store(acct)
	return acct, nil
}

// UpsertProviderLogin atomically finds an account by provider link or
// email and applies the provider assertion, creating when absent
func (r *InMemoryAccountRepository) UpsertProviderLogin(ctx context.Context, params UpsertProviderLoginParams) (Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var acct Account
	var found bool

	if id, ok := r.accountsByLink[linkKey(params.Provider, params.SubjectID)]; ok {
		acct, found = r.accounts[id], true
	} else if id, ok := r.accountsByEmail[params.Email]; ok {
		acct, found = r.accounts[id], true
	}

	now := time.Now().UTC()
	if !found {
		acct = Account{
			ID:            uuid.New(),
			Email:         params.Email,
			EmailVerified: params.EmailVerified,
			Role:          params.Role,
			CreatedAt:     now,
		}
	}

	acct.DisplayName = params.DisplayName
	if params.PhotoURL != "" {
		acct.PhotoURL = params.PhotoURL
	}
	acct.SetLink(ProviderLink{
		Provider:    params.Provider,
		SubjectID:   params.SubjectID,
		AccessToken: params.AccessToken,
	})
	acct.UpdatedAt = now

	r.store(acct)
	return acct, nil
}

// store writes the account and refreshes the secondary indexes.
// Callers must hold the write lock.
func (r *InMemoryAccountRepository) store(acct Account) {
	r.accounts[acct.ID] = acct
	r.accountsByEmail[acct.Email] = acct.ID
	if acct.PhoneNumber != "" {
		r.accountsByPhone[acct.PhoneNumber] = acct.ID
	}
	for _, l := range acct.Links {
		r.accountsByLink[linkKey(l.Provider, l.SubjectID)] = acct.ID
	}
}
