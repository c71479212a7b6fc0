package password

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSha256Hasher(t *testing.T) {
	hasher := &Sha256Hasher{}

	t.Run("Deterministic", func(t *testing.T) {
		first, err := hasher.Hash("validPassword123")
		assert.NoError(t, err)

		second, err := hasher.Hash("validPassword123")
		assert.NoError(t, err)
		assert.Equal(t, first, second, "The same password should always produce the same digest")
	})

	t.Run("DistinctPasswordsDistinctDigests", func(t *testing.T) {
		seen := make(map[string]string)
		for _, password := range []string{"a", "b", "password", "Password", "password ", "p@ssw0rd", "correct horse battery staple"} {
			digest, err := hasher.Hash(password)
			assert.NoError(t, err)
			if prev, ok := seen[digest]; ok {
				t.Fatalf("digest collision between %q and %q", prev, password)
			}
			seen[digest] = password
		}
	})

	t.Run("EmptyPassword", func(t *testing.T) {
		digest, err := hasher.Hash("")
		assert.NoError(t, err)
		assert.Empty(t, digest, "Empty password should map to the empty digest sentinel")
	})

	t.Run("ValidPassword", func(t *testing.T) {
		digest, err := hasher.Hash("myPassword")
		require.NoError(t, err)

		match, err := hasher.Verify("myPassword", digest)
		assert.NoError(t, err)
		assert.True(t, match, "The password should match its own digest")
	})

	t.Run("IncorrectPassword", func(t *testing.T) {
		digest, err := hasher.Hash("correctPassword")
		require.NoError(t, err)

		match, err := hasher.Verify("incorrectPassword", digest)
		assert.NoError(t, err)
		assert.False(t, match, "Incorrect password should not match the digest")
	})
}

func TestBcryptHasher(t *testing.T) {
	hasher := &BcryptHasher{}

	t.Run("ValidPassword", func(t *testing.T) {
		digest, err := hasher.Hash("validPassword123")
		require.NoError(t, err)
		assert.NotEmpty(t, digest, "Hashed password should not be empty")

		match, err := hasher.Verify("validPassword123", digest)
		assert.NoError(t, err)
		assert.True(t, match, "The password should match the hashed password")
	})

	t.Run("EmptyPassword", func(t *testing.T) {
		_, err := hasher.Hash("")
		assert.Error(t, err)

		match, err := hasher.Verify("", "")
		assert.Error(t, err)
		assert.False(t, match, "Empty password and digest should not match")
	})

	t.Run("IncorrectPassword", func(t *testing.T) {
		digest, err := hasher.Hash("correctPassword")
		require.NoError(t, err)

		match, err := hasher.Verify("incorrectPassword", digest)
		assert.NoError(t, err)
		assert.False(t, match, "Incorrect password should not match the hashed password")
	})

	t.Run("CorruptedDigest", func(t *testing.T) {
		match, err := hasher.Verify("correctPassword", "invalidHash")
		assert.Error(t, err)
		assert.False(t, match, "Corrupted digest should not match")
	})
}

func TestNewHasher(t *testing.T) {
	t.Run("V1", func(t *testing.T) {
		hasher, err := NewHasher(HasherV1)
		assert.NoError(t, err)
		assert.IsType(t, &Sha256Hasher{}, hasher)
	})

	t.Run("V2", func(t *testing.T) {
		hasher, err := NewHasher(HasherV2)
		assert.NoError(t, err)
		assert.IsType(t, &BcryptHasher{}, hasher)
	})

	t.Run("UnsupportedVersion", func(t *testing.T) {
		_, err := NewHasher(HasherVersion(99))
		assert.Error(t, err)
	})
}
