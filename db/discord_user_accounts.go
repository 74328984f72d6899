package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/samber/mo"

	dbtx "fundbackend/db/tx"
	"fundbackend/models"
)

type PostgresDiscordUserAccountsRepository struct {
	db     *sqlx.DB
	schema string
}

// Column names for discord_user_accounts table
var discordUserAccountsColumns = []string{
	"id",
	"access_token",
	"refresh_token",
	"expires_at",
	"scope",
	"user_id",
	"created_at",
	"modified_at",
	"deleted_at",
}

func NewPostgresDiscordUserAccountsRepository(db *sqlx.DB, schema string) *PostgresDiscordUserAccountsRepository {
	return &PostgresDiscordUserAccountsRepository{db: db, schema: schema}
}

// CreateDiscordUserAccount inserts the account link. A user, access token or refresh token that is
// already linked yields core.ErrAlreadyExists and the existing row stays untouched.
func (r *PostgresDiscordUserAccountsRepository) CreateDiscordUserAccount(
	ctx context.Context,
	account *models.DiscordUserAccount,
) error {
	db := dbtx.GetTransactional(ctx, r.db)

	insertColumns := []string{
		"id",
		"access_token",
		"refresh_token",
		"expires_at",
		"scope",
		"user_id",
		"created_at",
	}
	columnsStr := strings.Join(insertColumns, ", ")
	returningStr := strings.Join(discordUserAccountsColumns, ", ")

	query := fmt.Sprintf(`
		INSERT INTO %s.discord_user_accounts (%s)
		VALUES ($1, $2, $3, $4, $5, $6, NOW())
		RETURNING %s`, r.schema, columnsStr, returningStr)

	err := db.QueryRowxContext(
		ctx,
		query,
		account.ID,
		account.AccessToken,
		account.RefreshToken,
		account.ExpiresAt,
		account.Scope,
		account.UserID,
	).StructScan(account)
	if err != nil {
		return mapUniqueViolation(err, "create discord user account")
	}

	return nil
}

func (r *PostgresDiscordUserAccountsRepository) GetDiscordUserAccountByUserID(
	ctx context.Context,
	userID string,
) (mo.Option[*models.DiscordUserAccount], error) {
	db := dbtx.GetTransactional(ctx, r.db)

	columnsStr := strings.Join(discordUserAccountsColumns, ", ")
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s.discord_user_accounts
		WHERE user_id = $1 AND deleted_at IS NULL`, columnsStr, r.schema)

	account := &models.DiscordUserAccount{}
	err := db.GetContext(ctx, account, query, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return mo.None[*models.DiscordUserAccount](), nil
		}
		return mo.None[*models.DiscordUserAccount](), fmt.Errorf(
			"failed to get discord user account by user ID: %w",
			err,
		)
	}

	return mo.Some(account), nil
}
