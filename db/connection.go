package db

import (
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	// also registers the postgres driver
	"github.com/lib/pq"

	"fundbackend/core"
)

const uniqueViolationCode = "23505"

func NewConnection(databaseURL string) (*sqlx.DB, error) {
	db, err := sqlx.Open("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return db, nil
}

// mapUniqueViolation turns a Postgres unique violation into core.ErrAlreadyExists, keeping the constraint name
func mapUniqueViolation(err error, action string) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == uniqueViolationCode {
		return fmt.Errorf("failed to %s: %w (%s)", action, core.ErrAlreadyExists, pqErr.Constraint)
	}
	return fmt.Errorf("failed to %s: %w", action, err)
}
