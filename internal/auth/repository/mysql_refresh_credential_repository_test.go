package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	authDomain "github.com/zuxercoding99/social-media-api/internal/auth/domain"
	"github.com/zuxercoding99/social-media-api/internal/testutil"
)

func TestMySQLRefreshCredentialRepository_Upsert(t *testing.T) {
	db := testutil.SetupMySQLDB(t)
	defer testutil.TeardownDB(t, db)
	defer testutil.CleanupMySQLDB(t, db)

	ctx := context.Background()
	repo := NewMySQLRefreshCredentialRepository(db)
	userID := testutil.CreateTestUser(t, db, "mysql", "alice")

	credential := newTestCredential(userID, "hash-1")
	require.NoError(t, repo.Upsert(ctx, credential))

	retrieved, err := repo.GetBySecretHashForUpdate(ctx, "hash-1")
	require.NoError(t, err)
	assert.Equal(t, credential.ID, retrieved.ID)
	assert.Equal(t, userID, retrieved.UserID)
	assert.WithinDuration(t, credential.ExpiresAt, retrieved.ExpiresAt, time.Second)
}

func TestMySQLRefreshCredentialRepository_Upsert_ReplacesExisting(t *testing.T) {
	db := testutil.SetupMySQLDB(t)
	defer testutil.TeardownDB(t, db)
	defer testutil.CleanupMySQLDB(t, db)

	ctx := context.Background()
	repo := NewMySQLRefreshCredentialRepository(db)
	userID := testutil.CreateTestUser(t, db, "mysql", "alice")

	first := newTestCredential(userID, "hash-first")
	require.NoError(t, repo.Upsert(ctx, first))

	second := newTestCredential(userID, "hash-second")
	require.NoError(t, repo.Upsert(ctx, second))

	_, err := repo.GetBySecretHashForUpdate(ctx, "hash-first")
	assert.ErrorIs(t, err, authDomain.ErrRefreshNotFound)

	retrieved, err := repo.GetBySecretHashForUpdate(ctx, "hash-second")
	require.NoError(t, err)
	assert.Equal(t, userID, retrieved.UserID)
}

func TestMySQLRefreshCredentialRepository_UpdateSecret(t *testing.T) {
	db := testutil.SetupMySQLDB(t)
	defer testutil.TeardownDB(t, db)
	defer testutil.CleanupMySQLDB(t, db)

	ctx := context.Background()
	repo := NewMySQLRefreshCredentialRepository(db)
	userID := testutil.CreateTestUser(t, db, "mysql", "alice")

	credential := newTestCredential(userID, "hash-old")
	require.NoError(t, repo.Upsert(ctx, credential))

	newExpiry := time.Now().UTC().Add(14 * 24 * time.Hour)
	require.NoError(t, repo.UpdateSecret(ctx, credential.ID, "hash-new", newExpiry))

	_, err := repo.GetBySecretHashForUpdate(ctx, "hash-old")
	assert.ErrorIs(t, err, authDomain.ErrRefreshNotFound)

	retrieved, err := repo.GetBySecretHashForUpdate(ctx, "hash-new")
	require.NoError(t, err)
	assert.Equal(t, credential.ID, retrieved.ID)
}

func TestMySQLRefreshCredentialRepository_DeleteBySecretHash(t *testing.T) {
	db := testutil.SetupMySQLDB(t)
	defer testutil.TeardownDB(t, db)
	defer testutil.CleanupMySQLDB(t, db)

	ctx := context.Background()
	repo := NewMySQLRefreshCredentialRepository(db)
	userID := testutil.CreateTestUser(t, db, "mysql", "alice")

	credential := newTestCredential(userID, "hash-logout")
	require.NoError(t, repo.Upsert(ctx, credential))
	require.NoError(t, repo.DeleteBySecretHash(ctx, "hash-logout"))

	_, err := repo.GetBySecretHashForUpdate(ctx, "hash-logout")
	assert.ErrorIs(t, err, authDomain.ErrRefreshNotFound)

	assert.NoError(t, repo.DeleteBySecretHash(ctx, "never-existed"))
}

func TestMySQLRefreshCredentialRepository_DeleteExpired(t *testing.T) {
	db := testutil.SetupMySQLDB(t)
	defer testutil.TeardownDB(t, db)
	defer testutil.CleanupMySQLDB(t, db)

	ctx := context.Background()
	repo := NewMySQLRefreshCredentialRepository(db)
	now := time.Now().UTC()

	expiredUser := testutil.CreateTestUser(t, db, "mysql", "alice")
	expired := newTestCredential(expiredUser, "hash-expired")
	expired.ExpiresAt = now.Add(-time.Hour)
	require.NoError(t, repo.Upsert(ctx, expired))

	liveUser := testutil.CreateTestUser(t, db, "mysql", "bob")
	live := newTestCredential(liveUser, "hash-live")
	require.NoError(t, repo.Upsert(ctx, live))

	removed, err := repo.DeleteExpired(ctx, now)
	require.NoError(t, err)
	assert.Equal(t, int64(1), removed)

	_, err = repo.GetBySecretHashForUpdate(ctx, "hash-live")
	assert.NoError(t, err)
}
