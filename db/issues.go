package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/samber/mo"

	dbtx "fundbackend/db/tx"
	"fundbackend/models"
)

type PostgresIssuesRepository struct {
	db     *sqlx.DB
	schema string
}

func NewPostgresIssuesRepository(db *sqlx.DB, schema string) *PostgresIssuesRepository {
	return &PostgresIssuesRepository{db: db, schema: schema}
}

// GetIssueByID loads the issue with the names of its repository and owning organization
func (r *PostgresIssuesRepository) GetIssueByID(ctx context.Context, id string) (mo.Option[*models.Issue], error) {
	db := dbtx.GetTransactional(ctx, r.db)

	query := fmt.Sprintf(`
		SELECT i.id, i.number, i.title, i.repository_id,
			repo.name AS repository_name, owner.name AS repository_owner, i.created_at
		FROM %s.issues i
		JOIN %s.repositories repo ON repo.id = i.repository_id
		JOIN %s.organizations owner ON owner.id = repo.organization_id
		WHERE i.id = $1`, r.schema, r.schema, r.schema)

	issue := &models.Issue{}
	err := db.GetContext(ctx, issue, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return mo.None[*models.Issue](), nil
		}
		return mo.None[*models.Issue](), fmt.Errorf("failed to get issue by ID: %w", err)
	}

	return mo.Some(issue), nil
}
