package txmanager

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dbtx "fundbackend/db/tx"
)

func setupTransactionTest(t *testing.T) (*TransactionManager, sqlmock.Sqlmock) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, mock.ExpectationsWereMet())
		_ = sqlDB.Close()
	})

	return NewTransactionManager(sqlx.NewDb(sqlDB, "sqlmock")), mock
}

func TestTransactionManager_WithTransaction(t *testing.T) {
	t.Run("commits on success", func(t *testing.T) {
		txManager, mock := setupTransactionTest(t)
		mock.ExpectBegin()
		mock.ExpectExec(`UPDATE organizations`).WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		err := txManager.WithTransaction(context.Background(), func(ctx context.Context) error {
			tx, ok := dbtx.TransactionFromContext(ctx)
			require.True(t, ok)
			_, err := tx.ExecContext(ctx, "UPDATE organizations SET name = 'x'")
			return err
		})

		assert.NoError(t, err)
	})

	t.Run("rolls back on error", func(t *testing.T) {
		txManager, mock := setupTransactionTest(t)
		mock.ExpectBegin()
		mock.ExpectRollback()

		fnErr := errors.New("upsert failed")
		err := txManager.WithTransaction(context.Background(), func(ctx context.Context) error {
			return fnErr
		})

		assert.ErrorIs(t, err, fnErr)
	})

	t.Run("nested calls join the outer transaction", func(t *testing.T) {
		txManager, mock := setupTransactionTest(t)
		mock.ExpectBegin()
		mock.ExpectCommit()

		err := txManager.WithTransaction(context.Background(), func(outer context.Context) error {
			outerTx, _ := dbtx.TransactionFromContext(outer)
			return txManager.WithTransaction(outer, func(inner context.Context) error {
				innerTx, ok := dbtx.TransactionFromContext(inner)
				require.True(t, ok)
				assert.Same(t, outerTx, innerTx)
				return nil
			})
		})

		assert.NoError(t, err)
	})

	t.Run("rolls back and re-panics", func(t *testing.T) {
		txManager, mock := setupTransactionTest(t)
		mock.ExpectBegin()
		mock.ExpectRollback()

		assert.PanicsWithValue(t, "boom", func() {
			_ = txManager.WithTransaction(context.Background(), func(ctx context.Context) error {
				panic("boom")
			})
		})
	})

	t.Run("begin failure", func(t *testing.T) {
		txManager, mock := setupTransactionTest(t)
		mock.ExpectBegin().WillReturnError(errors.New("too many connections"))

		called := false
		err := txManager.WithTransaction(context.Background(), func(ctx context.Context) error {
			called = true
			return nil
		})

		assert.ErrorContains(t, err, "failed to begin transaction")
		assert.False(t, called)
	})
}
