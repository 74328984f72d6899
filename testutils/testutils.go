package testutils

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"

	"fundbackend/appctx"
	"fundbackend/core"
	"fundbackend/models"
)

// TestSchema is the schema name repositories are built with in tests
const TestSchema = "fund_test"

// NewMockDB returns an sqlx handle backed by sqlmock. Expectations are checked on cleanup.
func NewMockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err, "Failed to create sqlmock database")

	t.Cleanup(func() {
		require.NoError(t, mock.ExpectationsWereMet())
		_ = sqlDB.Close()
	})

	return sqlx.NewDb(sqlDB, "sqlmock"), mock
}

// CreateTestUser builds a user with a unique ID, optionally a member of organizationID
func CreateTestUser(organizationID string) *models.User {
	now := time.Now()
	user := &models.User{
		ID:             core.NewID("u"),
		AuthProvider:   "test",
		AuthProviderID: core.NewID("test"),
		Username:       "test-user",
		Email:          "test-user@example.com",
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if organizationID != "" {
		user.OrganizationID = &organizationID
	}
	return user
}

// ContextWithUser attaches the user the way the auth middleware does
func ContextWithUser(user *models.User) context.Context {
	return appctx.SetUser(context.Background(), user)
}
