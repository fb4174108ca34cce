package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/zuxercoding99/social-media-api/internal/database"
	apperrors "github.com/zuxercoding99/social-media-api/internal/errors"
	"github.com/zuxercoding99/social-media-api/internal/user/domain"
)

// MySQLUserRepository implements User persistence for MySQL.
// Uses BINARY(16) for UUIDs with transaction support via database.GetTx().
type MySQLUserRepository struct {
	db *sql.DB
}

// Create inserts a new user. Returns ErrUserAlreadyExists when the username
// or email collides with an existing account.
func (r *MySQLUserRepository) Create(ctx context.Context, user *domain.User) error {
	querier := database.GetTx(ctx, r.db)

	query := `INSERT INTO users (id, username, email, display_name, password_hash, birth_date, roles, enabled, created_at, updated_at)
			  VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	id, err := user.ID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal user id")
	}

	_, err = querier.ExecContext(
		ctx,
		query,
		id,
		user.Username,
		user.Email,
		user.DisplayName,
		user.PasswordHash,
		user.BirthDate,
		joinRoles(user.Roles),
		user.Enabled,
		user.CreatedAt,
		user.UpdatedAt,
	)
	if err != nil {
		if isMySQLDuplicateEntry(err) {
			return domain.ErrUserAlreadyExists
		}
		return apperrors.Wrap(err, "failed to create user")
	}
	return nil
}

// GetByID retrieves a user by ID. Returns ErrUserNotFound if not found.
func (r *MySQLUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, username, email, display_name, password_hash, birth_date, roles, enabled, created_at, updated_at
			  FROM users WHERE id = ?`

	idBytes, err := id.MarshalBinary()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal user id")
	}

	return r.scanUser(querier.QueryRowContext(ctx, query, idBytes))
}

// GetByEmail retrieves a user by email. Returns ErrUserNotFound if not found.
func (r *MySQLUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, username, email, display_name, password_hash, birth_date, roles, enabled, created_at, updated_at
			  FROM users WHERE email = ?`

	return r.scanUser(querier.QueryRowContext(ctx, query, email))
}

// GetByUsername retrieves a user by username. Returns ErrUserNotFound if not found.
func (r *MySQLUserRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, username, email, display_name, password_hash, birth_date, roles, enabled, created_at, updated_at
			  FROM users WHERE username = ?`

	return r.scanUser(querier.QueryRowContext(ctx, query, username))
}

// SetEnabled flips the account's enabled flag.
// Returns ErrUserNotFound if the user doesn't exist.
func (r *MySQLUserRepository) SetEnabled(ctx context.Context, id uuid.UUID, enabled bool) error {
	querier := database.GetTx(ctx, r.db)

	query := `UPDATE users SET enabled = ?, updated_at = ? WHERE id = ?`

	idBytes, err := id.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal user id")
	}

	result, err := querier.ExecContext(ctx, query, enabled, time.Now().UTC(), idBytes)
	if err != nil {
		return apperrors.Wrap(err, "failed to update user enabled flag")
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return apperrors.Wrap(err, "failed to get rows affected")
	}
	if rowsAffected == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// scanUser maps one row to a User, unmarshaling the BINARY(16) id.
func (r *MySQLUserRepository) scanUser(row *sql.Row) (*domain.User, error) {
	var user domain.User
	var idBytes []byte
	var roles string
	var birthDate sql.NullTime

	err := row.Scan(
		&idBytes,
		&user.Username,
		&user.Email,
		&user.DisplayName,
		&user.PasswordHash,
		&birthDate,
		&roles,
		&user.Enabled,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get user")
	}

	if err := user.ID.UnmarshalBinary(idBytes); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal user id")
	}

	if birthDate.Valid {
		user.BirthDate = &birthDate.Time
	}
	user.Roles = splitRoles(roles)
	return &user, nil
}

// isMySQLDuplicateEntry checks if the error is a MySQL duplicate key violation.
func isMySQLDuplicateEntry(err error) bool {
	if err == nil {
		return false
	}
	errMsg := strings.ToLower(err.Error())
	return strings.Contains(errMsg, "duplicate entry") || strings.Contains(errMsg, "error 1062")
}

// NewMySQLUserRepository creates a new MySQL User repository.
func NewMySQLUserRepository(db *sql.DB) *MySQLUserRepository {
	return &MySQLUserRepository{db: db}
}
