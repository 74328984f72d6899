package testutils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fundbackend/appctx"
	"fundbackend/core"
)

func TestCreateTestUser(t *testing.T) {
	t.Run("member of organization", func(t *testing.T) {
		user := CreateTestUser("org_1")

		assert.True(t, core.IsValidULID(user.ID))
		assert.True(t, user.BelongsTo("org_1"))
	})

	t.Run("without organization", func(t *testing.T) {
		user := CreateTestUser("")

		assert.Nil(t, user.OrganizationID)
		assert.NotEqual(t, user.ID, CreateTestUser("").ID)
	})
}

func TestContextWithUser(t *testing.T) {
	user := CreateTestUser("")

	got, ok := appctx.GetUser(ContextWithUser(user))
	require.True(t, ok)
	assert.Same(t, user, got)
}
