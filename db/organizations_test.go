package db

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fundbackend/core"
	"fundbackend/testutils"
)

func TestPostgresOrganizationsRepository_GetOrganizationByName(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		db, mock := testutils.NewMockDB(t)
		repo := NewPostgresOrganizationsRepository(db, testutils.TestSchema)
		now := time.Now()

		mock.ExpectQuery(`SELECT id, name, discord_guild_id, discord_bot_connected_at, created_at, updated_at\s+FROM fund_test\.organizations\s+WHERE name = \$1`).
			WithArgs("testorg").
			WillReturnRows(sqlmock.NewRows(organizationsColumns).
				AddRow("org_01", "testorg", "guild-1", now, now, now))

		result, err := repo.GetOrganizationByName(context.Background(), "testorg")

		require.NoError(t, err)
		require.True(t, result.IsPresent())
		org := result.MustGet()
		assert.Equal(t, "org_01", org.ID)
		require.NotNil(t, org.DiscordGuildID)
		assert.Equal(t, "guild-1", *org.DiscordGuildID)
		assert.True(t, org.HasDiscordBot())
	})

	t.Run("not found", func(t *testing.T) {
		db, mock := testutils.NewMockDB(t)
		repo := NewPostgresOrganizationsRepository(db, testutils.TestSchema)

		mock.ExpectQuery(`FROM fund_test\.organizations\s+WHERE name = \$1`).
			WithArgs("missing").
			WillReturnRows(sqlmock.NewRows(organizationsColumns))

		result, err := repo.GetOrganizationByName(context.Background(), "missing")

		require.NoError(t, err)
		assert.False(t, result.IsPresent())
	})

	t.Run("database error", func(t *testing.T) {
		db, mock := testutils.NewMockDB(t)
		repo := NewPostgresOrganizationsRepository(db, testutils.TestSchema)

		mock.ExpectQuery(`FROM fund_test\.organizations\s+WHERE id = \$1`).
			WithArgs("org_01").
			WillReturnError(errors.New("connection reset"))

		result, err := repo.GetOrganizationByID(context.Background(), "org_01")

		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to get organization by id")
		assert.False(t, result.IsPresent())
	})
}

func TestPostgresOrganizationsRepository_SetDiscordGuild(t *testing.T) {
	t.Run("updates both columns", func(t *testing.T) {
		db, mock := testutils.NewMockDB(t)
		repo := NewPostgresOrganizationsRepository(db, testutils.TestSchema)
		now := time.Now()

		mock.ExpectQuery(`UPDATE fund_test\.organizations\s+SET discord_guild_id = \$1, discord_bot_connected_at = NOW\(\), updated_at = NOW\(\)\s+WHERE id = \$2`).
			WithArgs("guild-1", "org_01").
			WillReturnRows(sqlmock.NewRows(organizationsColumns).
				AddRow("org_01", "testorg", "guild-1", now, now, now))

		org, err := repo.SetDiscordGuild(context.Background(), "org_01", "guild-1")

		require.NoError(t, err)
		assert.True(t, org.HasDiscordBot())
	})

	t.Run("unknown organization", func(t *testing.T) {
		db, mock := testutils.NewMockDB(t)
		repo := NewPostgresOrganizationsRepository(db, testutils.TestSchema)

		mock.ExpectQuery(`UPDATE fund_test\.organizations`).
			WithArgs("guild-1", "org_missing").
			WillReturnRows(sqlmock.NewRows(organizationsColumns))

		org, err := repo.SetDiscordGuild(context.Background(), "org_missing", "guild-1")

		assert.Nil(t, org)
		assert.True(t, core.IsNotFoundError(err))
	})
}

func TestPostgresOrganizationsRepository_ClearDiscordGuild(t *testing.T) {
	t.Run("clears both columns", func(t *testing.T) {
		db, mock := testutils.NewMockDB(t)
		repo := NewPostgresOrganizationsRepository(db, testutils.TestSchema)
		now := time.Now()

		mock.ExpectQuery(`UPDATE fund_test\.organizations\s+SET discord_guild_id = NULL, discord_bot_connected_at = NULL, updated_at = NOW\(\)\s+WHERE id = \$1`).
			WithArgs("org_01").
			WillReturnRows(sqlmock.NewRows(organizationsColumns).
				AddRow("org_01", "testorg", nil, nil, now, now))

		org, err := repo.ClearDiscordGuild(context.Background(), "org_01")

		require.NoError(t, err)
		assert.False(t, org.HasDiscordBot())
		assert.Nil(t, org.DiscordGuildID)
		assert.Nil(t, org.DiscordBotConnectedAt)
	})

	t.Run("unknown organization", func(t *testing.T) {
		db, mock := testutils.NewMockDB(t)
		repo := NewPostgresOrganizationsRepository(db, testutils.TestSchema)

		mock.ExpectQuery(`UPDATE fund_test\.organizations`).
			WithArgs("org_missing").
			WillReturnRows(sqlmock.NewRows(organizationsColumns))

		org, err := repo.ClearDiscordGuild(context.Background(), "org_missing")

		assert.Nil(t, org)
		assert.True(t, core.IsNotFoundError(err))
	})
}
