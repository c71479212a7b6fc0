package account

import (
	"context"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simple-auth/simple-auth/pkg/provider"
)

func TestInMemoryAccountRepository(t *testing.T) {
	ctx := context.Background()

	t.Run("CreateAndFind", func(t *testing.T) {
		repo := NewInMemoryAccountRepository()

		created, err := repo.CreateUnique(ctx, Account{Email: "a@x.com", DisplayName: "Alice"})
		require.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, created.ID)

		found, err := repo.FindByEmail(ctx, "a@x.com")
		require.NoError(t, err)
		assert.Equal(t, created.ID, found.ID)

		_, err = repo.FindByEmail(ctx, "ghost@x.com")
		assert.ErrorIs(t, err, ErrAccountNotFound)
	})

	t.Run("ConcurrentCreateUnique", func(t *testing.T) {
		repo := NewInMemoryAccountRepository()

		var wg sync.WaitGroup
		errs := make(chan error, 8)
		for i := 0; i < 8; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, err := repo.CreateUnique(ctx, Account{Email: "a@x.com"})
				errs <- err
			}()
		}
		wg.Wait()
		close(errs)

		var conflicts, successes int
		for err := range errs {
			if err == nil {
				successes++
			} else if assert.ErrorIs(t, err, ErrEmailTaken) {
				conflicts++
			}
		}
		assert.Equal(t, 1, successes, "Exactly one concurrent create should win")
		assert.Equal(t, 7, conflicts)
	})

	t.Run("SaveUnknownAccount", func(t *testing.T) {
		repo := NewInMemoryAccountRepository()
		acct := Account{ID: uuid.New(), Email: "a@x.com"}

		_, err := repo.Save(ctx, acct)
		assert.ErrorIs(t, err, ErrAccountNotFound)
	})

	t.Run("SaveReindexesEmail", func(t *testing.T) {
		repo := NewInMemoryAccountRepository()
		acct, err := repo.CreateUnique(ctx, Account{Email: "a@x.com"})
		require.NoError(t, err)

		acct.Email = "renamed@x.com"
		_, err = repo.Save(ctx, acct)
		require.NoError(t, err)

		_, err = repo.FindByEmail(ctx, "a@x.com")
		assert.ErrorIs(t, err, ErrAccountNotFound)

		found, err := repo.FindByEmail(ctx, "renamed@x.com")
		require.NoError(t, err)
		assert.Equal(t, acct.ID, found.ID)
	})

	t.Run("UpsertMatchesByLinkAfterEmailChange", func(t *testing.T) {
		repo := NewInMemoryAccountRepository()

		first, err := repo.UpsertProviderLogin(ctx, UpsertProviderLoginParams{
			Provider:  provider.Google,
			SubjectID: "sub-1",
			Email:     "old@x.com",
			Role:      "user",
		})
		require.NoError(t, err)

		// Same provider subject presenting a different email still lands
		// on the same record.
		second, err := repo.UpsertProviderLogin(ctx, UpsertProviderLoginParams{
			Provider:  provider.Google,
			SubjectID: "sub-1",
			Email:     "new@x.com",
			Role:      "user",
		})
		require.NoError(t, err)
		assert.Equal(t, first.ID, second.ID)
	})
}
