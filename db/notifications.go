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

type PostgresNotificationsRepository struct {
	db     *sqlx.DB
	schema string
}

// Column names for notifications table
var notificationsColumns = []string{
	"id",
	"user_id",
	"email_addr",
	"organization_id",
	"type",
	"issue_id",
	"pledge_id",
	"pull_request_id",
	"payload",
	"dedup_key",
	"created_at",
}

func NewPostgresNotificationsRepository(db *sqlx.DB, schema string) *PostgresNotificationsRepository {
	return &PostgresNotificationsRepository{db: db, schema: schema}
}

func (r *PostgresNotificationsRepository) GetNotificationByID(
	ctx context.Context,
	id string,
) (mo.Option[*models.Notification], error) {
	db := dbtx.GetTransactional(ctx, r.db)

	columnsStr := strings.Join(notificationsColumns, ", ")
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s.notifications
		WHERE id = $1`, columnsStr, r.schema)

	notification := &models.Notification{}
	err := db.GetContext(ctx, notification, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return mo.None[*models.Notification](), nil
		}
		return mo.None[*models.Notification](), fmt.Errorf("failed to get notification by ID: %w", err)
	}

	return mo.Some(notification), nil
}
