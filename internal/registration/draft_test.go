package registration

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContactListEditor(t *testing.T) {
	t.Run("new draft has one empty slot", func(t *testing.T) {
		d := NewDraft()
		assert.Equal(t, []string{""}, d.AdditionalEmails)
	})

	t.Run("add, update and remove keep display order", func(t *testing.T) {
		d := NewDraft()
		d.AddEmail()
		d.AddEmail()
		require.NoError(t, d.UpdateEmail(0, "a@x.com"))
		require.NoError(t, d.UpdateEmail(1, "b@x.com"))
		require.NoError(t, d.UpdateEmail(2, "c@x.com"))

		require.NoError(t, d.RemoveEmail(1))
		assert.Equal(t, []string{"a@x.com", "c@x.com"}, d.AdditionalEmails)
	})

	t.Run("removing the only slot is a no-op", func(t *testing.T) {
		d := NewDraft()
		require.NoError(t, d.UpdateEmail(0, "keep@x.com"))
		require.NoError(t, d.RemoveEmail(0))
		require.NoError(t, d.RemoveEmail(0))
		assert.Equal(t, []string{"keep@x.com"}, d.AdditionalEmails)
	})

	t.Run("out of range index", func(t *testing.T) {
		d := NewDraft()
		assert.ErrorIs(t, d.UpdateEmail(3, "x"), ErrEmailIndex)
		assert.ErrorIs(t, d.RemoveEmail(-1), ErrEmailIndex)
	})

	t.Run("contacts skip blank slots", func(t *testing.T) {
		d := Draft{AdditionalEmails: []string{"", "a@x.com", "  ", "b@x.com"}}
		assert.Equal(t, []string{"a@x.com", "b@x.com"}, d.Contacts())
	})
}
