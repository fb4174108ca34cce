// Package repository provides data persistence implementations for refresh credentials.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"

	authDomain "github.com/zuxercoding99/social-media-api/internal/auth/domain"
	"github.com/zuxercoding99/social-media-api/internal/database"
	apperrors "github.com/zuxercoding99/social-media-api/internal/errors"
)

// PostgreSQLRefreshCredentialRepository implements RefreshCredential persistence
// for PostgreSQL. Uses native UUID types with transaction support via database.GetTx().
type PostgreSQLRefreshCredentialRepository struct {
	db *sql.DB
}

// Upsert stores the credential, replacing the secret of any existing credential
// for the same user. The unique constraint on user_id enforces the one
// credential per account invariant.
func (p *PostgreSQLRefreshCredentialRepository) Upsert(
	ctx context.Context,
	credential *authDomain.RefreshCredential,
) error {
	querier := database.GetTx(ctx, p.db)

	query := `INSERT INTO refresh_credentials (id, user_id, secret_hash, expires_at, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, $5, $6)
			  ON CONFLICT (user_id) DO UPDATE
			  SET secret_hash = EXCLUDED.secret_hash,
				  expires_at = EXCLUDED.expires_at,
				  updated_at = EXCLUDED.updated_at`

	_, err := querier.ExecContext(
		ctx,
		query,
		credential.ID,
		credential.UserID,
		credential.SecretHash,
		credential.ExpiresAt,
		credential.CreatedAt,
		credential.UpdatedAt,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to upsert refresh credential")
	}
	return nil
}

// GetBySecretHashForUpdate retrieves a credential by secret hash with a row
// lock (SELECT ... FOR UPDATE). Must run inside a transaction started by the
// TxManager; concurrent rotations of the same credential serialize on the lock.
// Returns ErrRefreshNotFound if no credential matches.
func (p *PostgreSQLRefreshCredentialRepository) GetBySecretHashForUpdate(
	ctx context.Context,
	secretHash string,
) (*authDomain.RefreshCredential, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT id, user_id, secret_hash, expires_at, created_at, updated_at
			  FROM refresh_credentials WHERE secret_hash = $1 FOR UPDATE`

	var credential authDomain.RefreshCredential

	err := querier.QueryRowContext(ctx, query, secretHash).Scan(
		&credential.ID,
		&credential.UserID,
		&credential.SecretHash,
		&credential.ExpiresAt,
		&credential.CreatedAt,
		&credential.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, authDomain.ErrRefreshNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get refresh credential by secret hash")
	}

	return &credential, nil
}

// UpdateSecret replaces the credential's secret hash and expiry in place.
func (p *PostgreSQLRefreshCredentialRepository) UpdateSecret(
	ctx context.Context,
	id uuid.UUID,
	secretHash string,
	expiresAt time.Time,
) error {
	querier := database.GetTx(ctx, p.db)

	query := `UPDATE refresh_credentials
			  SET secret_hash = $1, expires_at = $2, updated_at = $3
			  WHERE id = $4`

	_, err := querier.ExecContext(ctx, query, secretHash, expiresAt, time.Now().UTC(), id)
	if err != nil {
		return apperrors.Wrap(err, "failed to update refresh credential secret")
	}
	return nil
}

// Delete removes a credential by ID.
func (p *PostgreSQLRefreshCredentialRepository) Delete(ctx context.Context, id uuid.UUID) error {
	querier := database.GetTx(ctx, p.db)

	query := `DELETE FROM refresh_credentials WHERE id = $1`

	_, err := querier.ExecContext(ctx, query, id)
	if err != nil {
		return apperrors.Wrap(err, "failed to delete refresh credential")
	}
	return nil
}

// DeleteBySecretHash removes the credential matching the secret hash.
// Deleting a hash with no matching credential is not an error.
func (p *PostgreSQLRefreshCredentialRepository) DeleteBySecretHash(
	ctx context.Context,
	secretHash string,
) error {
	querier := database.GetTx(ctx, p.db)

	query := `DELETE FROM refresh_credentials WHERE secret_hash = $1`

	_, err := querier.ExecContext(ctx, query, secretHash)
	if err != nil {
		return apperrors.Wrap(err, "failed to delete refresh credential by secret hash")
	}
	return nil
}

// DeleteExpired removes all credentials that expired before the given time and
// returns the number of rows removed.
func (p *PostgreSQLRefreshCredentialRepository) DeleteExpired(
	ctx context.Context,
	before time.Time,
) (int64, error) {
	querier := database.GetTx(ctx, p.db)

	query := `DELETE FROM refresh_credentials WHERE expires_at < $1`

	result, err := querier.ExecContext(ctx, query, before)
	if err != nil {
		return 0, apperrors.Wrap(err, "failed to delete expired refresh credentials")
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, apperrors.Wrap(err, "failed to get rows affected")
	}
	return rowsAffected, nil
}

// NewPostgreSQLRefreshCredentialRepository creates a new PostgreSQL RefreshCredential repository.
func NewPostgreSQLRefreshCredentialRepository(db *sql.DB) *PostgreSQLRefreshCredentialRepository {
	return &PostgreSQLRefreshCredentialRepository{db: db}
}
