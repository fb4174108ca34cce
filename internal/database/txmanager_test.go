package database

import (
	"context"
	"database/sql"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zuxercoding99/social-media-api/internal/testutil"
)

func TestWithTx_Success(t *testing.T) {
	db := testutil.SetupPostgresDB(t)
	defer testutil.TeardownDB(t, db)

	txManager := NewTxManager(db)

	err := txManager.WithTx(context.Background(), func(ctx context.Context) error {
		tx := ctx.Value(txKey{})
		require.NotNil(t, tx)
		assert.IsType(t, &sql.Tx{}, tx)
		return nil
	})

	assert.NoError(t, err)
}

func TestWithTx_RollbackOnError(t *testing.T) {
	db := testutil.SetupPostgresDB(t)
	defer testutil.TeardownDB(t, db)

	txManager := NewTxManager(db)

	err := txManager.WithTx(context.Background(), func(ctx context.Context) error {
		querier := GetTx(ctx, db)
		_, execErr := querier.ExecContext(ctx,
			"INSERT INTO users (id, username, email, display_name, password_hash, roles, enabled, created_at, updated_at) VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())",
			uuid.Must(uuid.NewV7()), "rollback-user", "rollback@example.com", "Rollback User", "hash", "USER", true)
		require.NoError(t, execErr)
		return assert.AnError
	})

	assert.ErrorIs(t, err, assert.AnError)

	// The insert must not survive the rollback
	var count int
	row := db.QueryRow("SELECT COUNT(*) FROM users WHERE username = $1", "rollback-user")
	require.NoError(t, row.Scan(&count))
	assert.Zero(t, count)
}

func TestGetTx_InsideTransaction(t *testing.T) {
	db := testutil.SetupPostgresDB(t)
	defer testutil.TeardownDB(t, db)

	txManager := NewTxManager(db)

	err := txManager.WithTx(context.Background(), func(ctx context.Context) error {
		querier := GetTx(ctx, db)
		assert.IsType(t, &sql.Tx{}, querier)
		return nil
	})

	assert.NoError(t, err)
}

func TestGetTx_OutsideTransaction(t *testing.T) {
	db := testutil.SetupPostgresDB(t)
	defer testutil.TeardownDB(t, db)

	querier := GetTx(context.Background(), db)
	assert.Equal(t, db, querier)
}
