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

type PostgresDiscordServersRepository struct {
	db     *sqlx.DB
	schema string
}

// Column names for discord_servers table
var discordServersColumns = []string{
	"id",
	"guild_id",
	"guild_name",
	"guild_icon",
	"access_token",
	"refresh_token",
	"expires_at",
	"guild_metadata",
	"organization_id",
	"created_at",
	"modified_at",
	"deleted_at",
}

func NewPostgresDiscordServersRepository(db *sqlx.DB, schema string) *PostgresDiscordServersRepository {
	return &PostgresDiscordServersRepository{db: db, schema: schema}
}

// UpsertDiscordServer stores the guild link for the organization. A second install for the same
// organization replaces guild and token columns of the existing row and revives it if soft-deleted.
// The row is scanned back into server, so on conflict server.ID becomes the existing id.
func (r *PostgresDiscordServersRepository) UpsertDiscordServer(
	ctx context.Context,
	server *models.DiscordServer,
) error {
	db := dbtx.GetTransactional(ctx, r.db)

	insertColumns := []string{
		"id",
		"guild_id",
		"guild_name",
		"guild_icon",
		"access_token",
		"refresh_token",
		"expires_at",
		"guild_metadata",
		"organization_id",
		"created_at",
	}
	columnsStr := strings.Join(insertColumns, ", ")
	returningStr := strings.Join(discordServersColumns, ", ")

	query := fmt.Sprintf(`
		INSERT INTO %s.discord_servers (%s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW())
		ON CONFLICT (organization_id) DO UPDATE SET
			guild_id = EXCLUDED.guild_id,
			guild_name = EXCLUDED.guild_name,
			guild_icon = EXCLUDED.guild_icon,
			access_token = EXCLUDED.access_token,
			refresh_token = EXCLUDED.refresh_token,
			expires_at = EXCLUDED.expires_at,
			guild_metadata = EXCLUDED.guild_metadata,
			modified_at = NOW(),
			deleted_at = NULL
		RETURNING %s`, r.schema, columnsStr, returningStr)

	err := db.QueryRowxContext(
		ctx,
		query,
		server.ID,
		server.GuildID,
		server.GuildName,
		server.GuildIcon,
		server.AccessToken,
		server.RefreshToken,
		server.ExpiresAt,
		server.GuildMetadata,
		server.OrganizationID,
	).StructScan(server)
	if err != nil {
		return fmt.Errorf("failed to upsert discord server: %w", err)
	}

	return nil
}

func (r *PostgresDiscordServersRepository) GetDiscordServerByOrganizationID(
	ctx context.Context,
	organizationID string,
) (mo.Option[*models.DiscordServer], error) {
	if organizationID == "" {
		return mo.None[*models.DiscordServer](), fmt.Errorf("organization ID cannot be empty")
	}

	db := dbtx.GetTransactional(ctx, r.db)

	columnsStr := strings.Join(discordServersColumns, ", ")
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s.discord_servers
		WHERE organization_id = $1 AND deleted_at IS NULL`, columnsStr, r.schema)

	server := &models.DiscordServer{}
	err := db.GetContext(ctx, server, query, organizationID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return mo.None[*models.DiscordServer](), nil
		}
		return mo.None[*models.DiscordServer](), fmt.Errorf(
			"failed to get discord server by organization ID: %w",
			err,
		)
	}

	return mo.Some(server), nil
}

func (r *PostgresDiscordServersRepository) SoftDeleteDiscordServer(
	ctx context.Context,
	organizationID string,
) (bool, error) {
	db := dbtx.GetTransactional(ctx, r.db)

	query := fmt.Sprintf(`
		UPDATE %s.discord_servers
		SET deleted_at = NOW(), modified_at = NOW()
		WHERE organization_id = $1 AND deleted_at IS NULL`, r.schema)

	result, err := db.ExecContext(ctx, query, organizationID)
	if err != nil {
		return false, fmt.Errorf("failed to delete discord server: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get affected rows: %w", err)
	}

	return rowsAffected > 0, nil
}
