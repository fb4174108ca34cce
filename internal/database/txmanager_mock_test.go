package database

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// These tests cover the transaction error paths that are hard to provoke
// against a live database: begin failure, commit failure, and rollback failure.

func TestWithTx_BeginError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	beginErr := errors.New("connection lost")
	mock.ExpectBegin().WillReturnError(beginErr)

	txManager := NewTxManager(db)

	err = txManager.WithTx(context.Background(), func(ctx context.Context) error {
		t.Fatal("callback should not run when begin fails")
		return nil
	})

	assert.ErrorIs(t, err, beginErr)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWithTx_CommitError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	commitErr := errors.New("commit failed")
	mock.ExpectBegin()
	mock.ExpectCommit().WillReturnError(commitErr)

	txManager := NewTxManager(db)

	err = txManager.WithTx(context.Background(), func(ctx context.Context) error {
		return nil
	})

	assert.ErrorIs(t, err, commitErr)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWithTx_RollbackError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	rollbackErr := errors.New("rollback failed")
	mock.ExpectBegin()
	mock.ExpectRollback().WillReturnError(rollbackErr)

	txManager := NewTxManager(db)

	err = txManager.WithTx(context.Background(), func(ctx context.Context) error {
		return errors.New("business error")
	})

	// The rollback error wins when both the callback and the rollback fail
	assert.ErrorIs(t, err, rollbackErr)
	assert.NoError(t, mock.ExpectationsWereMet())
}
