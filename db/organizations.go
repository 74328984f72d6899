package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/samber/mo"

	"fundbackend/core"
	dbtx "fundbackend/db/tx"
	"fundbackend/models"
)

type PostgresOrganizationsRepository struct {
	db     *sqlx.DB
	schema string
}

// Column names for organizations table
var organizationsColumns = []string{
	"id",
	"name",
	"discord_guild_id",
	"discord_bot_connected_at",
	"created_at",
	"updated_at",
}

func NewPostgresOrganizationsRepository(db *sqlx.DB, schema string) *PostgresOrganizationsRepository {
	return &PostgresOrganizationsRepository{db: db, schema: schema}
}

func (r *PostgresOrganizationsRepository) GetOrganizationByID(
	ctx context.Context,
	id string,
) (mo.Option[*models.Organization], error) {
	return r.getOrganizationBy(ctx, "id", id)
}

func (r *PostgresOrganizationsRepository) GetOrganizationByName(
	ctx context.Context,
	name string,
) (mo.Option[*models.Organization], error) {
	return r.getOrganizationBy(ctx, "name", name)
}

// SetDiscordGuild records the bot install on the organization. Both columns change in one statement.
func (r *PostgresOrganizationsRepository) SetDiscordGuild(
	ctx context.Context,
	organizationID string,
	guildID string,
) (*models.Organization, error) {
	db := dbtx.GetTransactional(ctx, r.db)

	returningStr := strings.Join(organizationsColumns, ", ")
	query := fmt.Sprintf(`
		UPDATE %s.organizations
		SET discord_guild_id = $1, discord_bot_connected_at = NOW(), updated_at = NOW()
		WHERE id = $2
		RETURNING %s`, r.schema, returningStr)

	organization := &models.Organization{}
	err := db.QueryRowxContext(ctx, query, guildID, organizationID).StructScan(organization)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("organization %s: %w", organizationID, core.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to set discord guild on organization: %w", err)
	}

	return organization, nil
}

// ClearDiscordGuild removes the bot install from the organization. Both columns change in one statement.
func (r *PostgresOrganizationsRepository) ClearDiscordGuild(
	ctx context.Context,
	organizationID string,
) (*models.Organization, error) {
	db := dbtx.GetTransactional(ctx, r.db)

	returningStr := strings.Join(organizationsColumns, ", ")
	query := fmt.Sprintf(`
		UPDATE %s.organizations
		SET discord_guild_id = NULL, discord_bot_connected_at = NULL, updated_at = NOW()
		WHERE id = $1
		RETURNING %s`, r.schema, returningStr)

	organization := &models.Organization{}
	err := db.QueryRowxContext(ctx, query, organizationID).StructScan(organization)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("organization %s: %w", organizationID, core.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to clear discord guild on organization: %w", err)
	}

	return organization, nil
}

func (r *PostgresOrganizationsRepository) getOrganizationBy(
	ctx context.Context,
	column, value string,
) (mo.Option[*models.Organization], error) {
	db := dbtx.GetTransactional(ctx, r.db)

	columnsStr := strings.Join(organizationsColumns, ", ")
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s.organizations
		WHERE %s = $1`, columnsStr, r.schema, column)

	organization := &models.Organization{}
	err := db.GetContext(ctx, organization, query, value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return mo.None[*models.Organization](), nil
		}
		return mo.None[*models.Organization](), fmt.Errorf("failed to get organization by %s: %w", column, err)
	}

	return mo.Some(organization), nil
}
