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

type PostgresPledgesRepository struct {
	db     *sqlx.DB
	schema string
}

// Column names for pledges table
var pledgesColumns = []string{
	"id",
	"issue_id",
	"amount",
	"state",
	"by_organization_id",
	"by_user_id",
	"created_at",
}

func NewPostgresPledgesRepository(db *sqlx.DB, schema string) *PostgresPledgesRepository {
	return &PostgresPledgesRepository{db: db, schema: schema}
}

func (r *PostgresPledgesRepository) GetPledgeByID(ctx context.Context, id string) (mo.Option[*models.Pledge], error) {
	db := dbtx.GetTransactional(ctx, r.db)

	columnsStr := strings.Join(pledgesColumns, ", ")
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s.pledges
		WHERE id = $1`, columnsStr, r.schema)

	pledge := &models.Pledge{}
	err := db.GetContext(ctx, pledge, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return mo.None[*models.Pledge](), nil
		}
		return mo.None[*models.Pledge](), fmt.Errorf("failed to get pledge by ID: %w", err)
	}

	return mo.Some(pledge), nil
}
