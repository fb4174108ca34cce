package domain

import (
	"time"

	"github.com/google/uuid"
)

// RefreshCredential is the server-side record backing a refresh token.
// Each user holds at most one active credential; issuing a new one replaces
// the previous record. Only the SHA-256 hash of the secret is stored.
type RefreshCredential struct {
	ID         uuid.UUID
	UserID     uuid.UUID
	SecretHash string
	ExpiresAt  time.Time
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// IsExpired reports whether the credential expired at or before the given time.
func (r *RefreshCredential) IsExpired(now time.Time) bool {
	return !r.ExpiresAt.After(now)
}
