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

// MySQLRefreshCredentialRepository implements RefreshCredential persistence
// for MySQL. Uses BINARY(16) for UUIDs with transaction support via database.GetTx().
type MySQLRefreshCredentialRepository struct {
	db *sql.DB
}

// Upsert stores the credential, replacing the secret of any existing credential
// for the same user. The unique key on user_id enforces the one credential per
// account invariant.
func (m *MySQLRefreshCredentialRepository) Upsert(
	ctx context.Context,
	credential *authDomain.RefreshCredential,
) error {
	querier := database.GetTx(ctx, m.db)

	query := `INSERT INTO refresh_credentials (id, user_id, secret_hash, expires_at, created_at, updated_at)
			  VALUES (?, ?, ?, ?, ?, ?)
			  ON DUPLICATE KEY UPDATE
			  secret_hash = VALUES(secret_hash),
			  expires_at = VALUES(expires_at),
			  updated_at = VALUES(updated_at)`

	id, err := credential.ID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal credential id")
	}

	userID, err := credential.UserID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal user id")
	}

	_, err = querier.ExecContext(
		ctx,
		query,
		id,
		userID,
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
func (m *MySQLRefreshCredentialRepository) GetBySecretHashForUpdate(
	ctx context.Context,
	secretHash string,
) (*authDomain.RefreshCredential, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT id, user_id, secret_hash, expires_at, created_at, updated_at
			  FROM refresh_credentials WHERE secret_hash = ? FOR UPDATE`

	var credential authDomain.RefreshCredential
	var idBytes []byte
	var userIDBytes []byte

	err := querier.QueryRowContext(ctx, query, secretHash).Scan(
		&idBytes,
		&userIDBytes,
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

	if err := credential.ID.UnmarshalBinary(idBytes); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal credential id")
	}

	if err := credential.UserID.UnmarshalBinary(userIDBytes); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal user id")
	}

	return &credential, nil
}

// UpdateSecret replaces the credential's secret hash and expiry in place.
func (m *MySQLRefreshCredentialRepository) UpdateSecret(
	ctx context.Context,
	id uuid.UUID,
	secretHash string,
	expiresAt time.Time,
) error {
	querier := database.GetTx(ctx, m.db)

	query := `UPDATE refresh_credentials
			  SET secret_hash = ?, expires_at = ?, updated_at = ?
			  WHERE id = ?`

	idBytes, err := id.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal credential id")
	}

	_, err = querier.ExecContext(ctx, query, secretHash, expiresAt, time.Now().UTC(), idBytes)
	if err != nil {
		return apperrors.Wrap(err, "failed to update refresh credential secret")
	}
	return nil
}

// Delete removes a credential by ID.
func (m *MySQLRefreshCredentialRepository) Delete(ctx context.Context, id uuid.UUID) error {
	querier := database.GetTx(ctx, m.db)

	query := `DELETE FROM refresh_credentials WHERE id = ?`

	idBytes, err := id.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal credential id")
	}

	_, err = querier.ExecContext(ctx, query, idBytes)
	if err != nil {
		return apperrors.Wrap(err, "failed to delete refresh credential")
	}
	return nil
}

// DeleteBySecretHash removes the credential matching the secret hash.
// Deleting a hash with no matching credential is not an error.
func (m *MySQLRefreshCredentialRepository) DeleteBySecretHash(
	ctx context.Context,
	secretHash string,
) error {
	querier := database.GetTx(ctx, m.db)

	query := `DELETE FROM refresh_credentials WHERE secret_hash = ?`

	_, err := querier.ExecContext(ctx, query, secretHash)
	if err != nil {
		return apperrors.Wrap(err, "failed to delete refresh credential by secret hash")
	}
	return nil
}

// DeleteExpired removes all credentials that expired before the given time and
// returns the number of rows removed.
func (m *MySQLRefreshCredentialRepository) DeleteExpired(
	ctx context.Context,
	before time.Time,
) (int64, error) {
	querier := database.GetTx(ctx, m.db)

	query := `DELETE FROM refresh_credentials WHERE expires_at < ?`

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

// NewMySQLRefreshCredentialRepository creates a new MySQL RefreshCredential repository.
func NewMySQLRefreshCredentialRepository(db *sql.DB) *MySQLRefreshCredentialRepository {
	return &MySQLRefreshCredentialRepository{db: db}
}
