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

// PostgreSQLUserRepository implements User persistence for PostgreSQL.
// Uses native UUID types with transaction support via database.GetTx().
type PostgreSQLUserRepository struct {
	db *sql.DB
}

// Create inserts a new user. Returns ErrUserAlreadyExists when the username
// or email collides with an existing account.
func (r *PostgreSQLUserRepository) Create(ctx context.Context, user *domain.User) error {
	querier := database.GetTx(ctx, r.db)

	query := `INSERT INTO users (id, username, email, display_name, password_hash, birth_date, roles, enabled, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	_, err := querier.ExecContext(
		ctx,
		query,
		user.ID,
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
		if isPostgreSQLUniqueViolation(err) {
			return domain.ErrUserAlreadyExists
		}
		return apperrors.Wrap(err, "failed to create user")
	}
	return nil
}

// GetByID retrieves a user by ID. Returns ErrUserNotFound if not found.
func (r *PostgreSQLUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, username, email, display_name, password_hash, birth_date, roles, enabled, created_at, updated_at
			  FROM users WHERE id = $1`

	return r.scanUser(querier.QueryRowContext(ctx, query, id))
}

// GetByEmail retrieves a user by email. Returns ErrUserNotFound if not found.
func (r *PostgreSQLUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, username, email, display_name, password_hash, birth_date, roles, enabled, created_at, updated_at
			  FROM users WHERE email = $1`

	return r.scanUser(querier.QueryRowContext(ctx, query, email))
}

// GetByUsername retrieves a user by username. Returns ErrUserNotFound if not found.
func (r *PostgreSQLUserRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, username, email, display_name, password_hash, birth_date, roles, enabled, created_at, updated_at
			  FROM users WHERE username = $1`

	return r.scanUser(querier.QueryRowContext(ctx, query, username))
}

// SetEnabled flips the account's enabled flag.
// Returns ErrUserNotFound if the user doesn't exist.
func (r *PostgreSQLUserRepository) SetEnabled(ctx context.Context, id uuid.UUID, enabled bool) error {
	querier := database.GetTx(ctx, r.db)

	query := `UPDATE users SET enabled = $1, updated_at = $2 WHERE id = $3`

	result, err := querier.ExecContext(ctx, query, enabled, time.Now().UTC(), id)
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

// scanUser maps one row to a User.
func (r *PostgreSQLUserRepository) scanUser(row *sql.Row) (*domain.User, error) {
	var user domain.User
	var roles string
	var birthDate sql.NullTime

	err := row.Scan(
		&user.ID,
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

	if birthDate.Valid {
		user.BirthDate = &birthDate.Time
	}
	user.Roles = splitRoles(roles)
	return &user, nil
}

// isPostgreSQLUniqueViolation checks if the error is a PostgreSQL unique
// constraint violation.
func isPostgreSQLUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	errMsg := strings.ToLower(err.Error())
	return strings.Contains(errMsg, "duplicate key") || strings.Contains(errMsg, "unique constraint")
}

// NewPostgreSQLUserRepository creates a new PostgreSQL User repository.
func NewPostgreSQLUserRepository(db *sql.DB) *PostgreSQLUserRepository {
	return &PostgreSQLUserRepository{db: db}
}
