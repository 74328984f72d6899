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

type PostgresPullRequestsRepository struct {
	db     *sqlx.DB
	schema string
}

func NewPostgresPullRequestsRepository(db *sqlx.DB, schema string) *PostgresPullRequestsRepository {
	return &PostgresPullRequestsRepository{db: db, schema: schema}
}

func (r *PostgresPullRequestsRepository) GetPullRequestByID(
	ctx context.Context,
	id string,
) (mo.Option[*models.PullRequest], error) {
	db := dbtx.GetTransactional(ctx, r.db)

	query := fmt.Sprintf(`
		SELECT pr.id, pr.number, pr.title, pr.author_login,
			repo.name AS repository_name, owner.name AS repository_owner, pr.created_at
		FROM %s.pull_requests pr
		JOIN %s.repositories repo ON repo.id = pr.repository_id
		JOIN %s.organizations owner ON owner.id = repo.organization_id
		WHERE pr.id = $1`, r.schema, r.schema, r.schema)

	pullRequest := &models.PullRequest{}
	err := db.GetContext(ctx, pullRequest, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return mo.None[*models.PullRequest](), nil
		}
		return mo.None[*models.PullRequest](), fmt.Errorf("failed to get pull request by ID: %w", err)
	}

	return mo.Some(pullRequest), nil
}
