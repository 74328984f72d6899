package db

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fundbackend/core"
	"fundbackend/models"
	"fundbackend/testutils"
)

func newTestAccount() *models.DiscordUserAccount {
	refreshToken := "user-refresh"
	return &models.DiscordUserAccount{
		ID:           "dua_01",
		AccessToken:  "user-access",
		RefreshToken: &refreshToken,
		ExpiresAt:    1700000000,
		Scope:        "identify email guilds.join",
		UserID:       "u_01",
	}
}

func TestPostgresDiscordUserAccountsRepository_CreateDiscordUserAccount(t *testing.T) {
	t.Run("inserts", func(t *testing.T) {
		db, mock := testutils.NewMockDB(t)
		repo := NewPostgresDiscordUserAccountsRepository(db, testutils.TestSchema)
		account := newTestAccount()
		now := time.Now()

		mock.ExpectQuery(`INSERT INTO fund_test\.discord_user_accounts`).
			WithArgs("dua_01", "user-access", "user-refresh", int64(1700000000), "identify email guilds.join", "u_01").
			WillReturnRows(sqlmock.NewRows(discordUserAccountsColumns).AddRow(
				"dua_01", "user-access", "user-refresh", int64(1700000000), "identify email guilds.join", "u_01", now, nil, nil,
			))

		err := repo.CreateDiscordUserAccount(context.Background(), account)

		require.NoError(t, err)
		assert.Equal(t, now.Unix(), account.CreatedAt.Unix())
	})

	t.Run("missing refresh token is stored as null", func(t *testing.T) {
		db, mock := testutils.NewMockDB(t)
		repo := NewPostgresDiscordUserAccountsRepository(db, testutils.TestSchema)
		account := newTestAccount()
		account.RefreshToken = nil
		now := time.Now()

		mock.ExpectQuery(`INSERT INTO fund_test\.discord_user_accounts`).
			WithArgs("dua_01", "user-access", nil, int64(1700000000), "identify email guilds.join", "u_01").
			WillReturnRows(sqlmock.NewRows(discordUserAccountsColumns).AddRow(
				"dua_01", "user-access", nil, int64(1700000000), "identify email guilds.join", "u_01", now, nil, nil,
			))

		err := repo.CreateDiscordUserAccount(context.Background(), account)

		require.NoError(t, err)
		assert.Nil(t, account.RefreshToken)
	})

	t.Run("unique violation maps to already exists", func(t *testing.T) {
		db, mock := testutils.NewMockDB(t)
		repo := NewPostgresDiscordUserAccountsRepository(db, testutils.TestSchema)

		mock.ExpectQuery(`INSERT INTO fund_test\.discord_user_accounts`).
			WillReturnError(&pq.Error{Code: "23505", Constraint: "discord_user_accounts_user_id_key"})

		err := repo.CreateDiscordUserAccount(context.Background(), newTestAccount())

		require.Error(t, err)
		assert.True(t, core.IsAlreadyExistsError(err))
		assert.Contains(t, err.Error(), "discord_user_accounts_user_id_key")
	})

	t.Run("other errors are not conflicts", func(t *testing.T) {
		db, mock := testutils.NewMockDB(t)
		repo := NewPostgresDiscordUserAccountsRepository(db, testutils.TestSchema)

		mock.ExpectQuery(`INSERT INTO fund_test\.discord_user_accounts`).
			WillReturnError(&pq.Error{Code: "23503", Constraint: "discord_user_accounts_user_id_fkey"})

		err := repo.CreateDiscordUserAccount(context.Background(), newTestAccount())

		require.Error(t, err)
		assert.False(t, core.IsAlreadyExistsError(err))
	})
}

func TestPostgresDiscordUserAccountsRepository_GetDiscordUserAccountByUserID(t *testing.T) {
	db, mock := testutils.NewMockDB(t)
	repo := NewPostgresDiscordUserAccountsRepository(db, testutils.TestSchema)

	mock.ExpectQuery(`FROM fund_test\.discord_user_accounts\s+WHERE user_id = \$1 AND deleted_at IS NULL`).
		WithArgs("u_01").
		WillReturnRows(sqlmock.NewRows(discordUserAccountsColumns))

	result, err := repo.GetDiscordUserAccountByUserID(context.Background(), "u_01")

	require.NoError(t, err)
	assert.False(t, result.IsPresent())
}
