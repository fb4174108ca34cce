// Package domain defines the core user domain entities and types.
package domain

import (
	"time"

	"github.com/google/uuid"

	"github.com/zuxercoding99/social-media-api/internal/errors"
)

// User represents an account in the system. BirthDate is nil for accounts
// created without one (operator bootstrap, federated sign-in).
type User struct {
	ID           uuid.UUID
	Username     string
	Email        string
	DisplayName  string
	PasswordHash string
	BirthDate    *time.Time
	Roles        []string
	Enabled      bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Domain-specific errors for user operations.
var (
	// ErrUserNotFound indicates the requested user does not exist.
	ErrUserNotFound = errors.Wrap(errors.ErrNotFound, "user not found")

	// ErrUserAlreadyExists indicates a user with the same username or email
	// already exists.
	ErrUserAlreadyExists = errors.Wrap(errors.ErrConflict, "user already exists")
)
