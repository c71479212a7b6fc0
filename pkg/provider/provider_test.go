package provider

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPrimaryEmail(t *testing.T) {
	t.Run("FirstEmailWins", func(t *testing.T) {
		p := Profile{
			ID: "sub-1",
			Emails: []Email{
				{Value: "primary@example.com", Verified: true},
				{Value: "alias@example.com", Verified: false},
			},
		}
		email, verified := p.PrimaryEmail()
		assert.Equal(t, "primary@example.com", email)
		assert.True(t, verified)
	})

	t.Run("NoEmails", func(t *testing.T) {
		email, verified := Profile{ID: "sub-1"}.PrimaryEmail()
		assert.Empty(t, email)
		assert.False(t, verified)
	})
}

func TestValidate(t *testing.T) {
	valid := Profile{
		ID:     "sub-1",
		Emails: []Email{{Value: "user@example.com", Verified: true}},
	}
	assert.NoError(t, valid.Validate())

	missingID := valid
	missingID.ID = ""
	assert.Error(t, missingID.Validate())

	missingEmails := valid
	missingEmails.Emails = nil
	assert.Error(t, missingEmails.Validate())
}

func TestValidateName(t *testing.T) {
	assert.NoError(t, ValidateName(Google))
	assert.NoError(t, ValidateName(Facebook))
	assert.Error(t, ValidateName("github"))
	assert.Error(t, ValidateName(""))
	assert.Error(t, ValidateName("Google"))
}
