package db

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fundbackend/models"
	"fundbackend/testutils"
)

func TestPostgresDiscordServersRepository_UpsertDiscordServer(t *testing.T) {
	db, mock := testutils.NewMockDB(t)
	repo := NewPostgresDiscordServersRepository(db, testutils.TestSchema)
	now := time.Now()
	refresh := "refresh-token"
	expiresAt := int64(1700000000)

	server := &models.DiscordServer{
		ID:             "ds_new",
		GuildID:        "guild-2",
		GuildName:      "Second Guild",
		GuildIcon:      "icon",
		AccessToken:    "access-token",
		RefreshToken:   &refresh,
		ExpiresAt:      &expiresAt,
		GuildMetadata:  types.JSONText(`{"id":"guild-2"}`),
		OrganizationID: "org_01",
	}

	// the row that already existed for the organization keeps its id
	mock.ExpectQuery(`INSERT INTO fund_test\.discord_servers .*ON CONFLICT \(organization_id\) DO UPDATE SET.*deleted_at = NULL`).
		WithArgs("ds_new", "guild-2", "Second Guild", "icon", "access-token", &refresh, &expiresAt, sqlmock.AnyArg(), "org_01").
		WillReturnRows(sqlmock.NewRows(discordServersColumns).AddRow(
			"ds_existing", "guild-2", "Second Guild", "icon", "access-token", refresh, expiresAt,
			[]byte(`{"id":"guild-2"}`), "org_01", now.Add(-time.Hour), now, nil,
		))

	err := repo.UpsertDiscordServer(context.Background(), server)

	require.NoError(t, err)
	assert.Equal(t, "ds_existing", server.ID)
	assert.Equal(t, "guild-2", server.GuildID)
	require.NotNil(t, server.ModifiedAt)
	assert.Nil(t, server.DeletedAt)
}

func TestPostgresDiscordServersRepository_GetDiscordServerByOrganizationID(t *testing.T) {
	t.Run("ignores soft-deleted rows", func(t *testing.T) {
		db, mock := testutils.NewMockDB(t)
		repo := NewPostgresDiscordServersRepository(db, testutils.TestSchema)

		mock.ExpectQuery(`FROM fund_test\.discord_servers\s+WHERE organization_id = \$1 AND deleted_at IS NULL`).
			WithArgs("org_01").
			WillReturnRows(sqlmock.NewRows(discordServersColumns))

		result, err := repo.GetDiscordServerByOrganizationID(context.Background(), "org_01")

		require.NoError(t, err)
		assert.False(t, result.IsPresent())
	})

	t.Run("found", func(t *testing.T) {
		db, mock := testutils.NewMockDB(t)
		repo := NewPostgresDiscordServersRepository(db, testutils.TestSchema)
		now := time.Now()

		mock.ExpectQuery(`FROM fund_test\.discord_servers`).
			WithArgs("org_01").
			WillReturnRows(sqlmock.NewRows(discordServersColumns).AddRow(
				"ds_01", "guild-1", "Guild", "", "access", nil, nil, []byte(`{}`), "org_01", now, nil, nil,
			))

		result, err := repo.GetDiscordServerByOrganizationID(context.Background(), "org_01")

		require.NoError(t, err)
		require.True(t, result.IsPresent())
		server := result.MustGet()
		assert.Equal(t, "guild-1", server.GuildID)
		assert.Nil(t, server.RefreshToken)
	})

	t.Run("empty organization id", func(t *testing.T) {
		db, _ := testutils.NewMockDB(t)
		repo := NewPostgresDiscordServersRepository(db, testutils.TestSchema)

		_, err := repo.GetDiscordServerByOrganizationID(context.Background(), "")

		assert.Error(t, err)
	})
}

func TestPostgresDiscordServersRepository_SoftDeleteDiscordServer(t *testing.T) {
	tests := []struct {
		name         string
		rowsAffected int64
		wantDeleted  bool
	}{
		{name: "live row", rowsAffected: 1, wantDeleted: true},
		{name: "nothing to delete", rowsAffected: 0, wantDeleted: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock := testutils.NewMockDB(t)
			repo := NewPostgresDiscordServersRepository(db, testutils.TestSchema)

			mock.ExpectExec(`UPDATE fund_test\.discord_servers\s+SET deleted_at = NOW\(\)`).
				WithArgs("org_01").
				WillReturnResult(sqlmock.NewResult(0, tt.rowsAffected))

			deleted, err := repo.SoftDeleteDiscordServer(context.Background(), "org_01")

			require.NoError(t, err)
			assert.Equal(t, tt.wantDeleted, deleted)
		})
	}
}
