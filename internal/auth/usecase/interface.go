// Package usecase defines business logic interfaces for authentication operations.
package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	authDomain "github.com/zuxercoding99/social-media-api/internal/auth/domain"
	userDomain "github.com/zuxercoding99/social-media-api/internal/user/domain"
)

// UserRepository defines the user persistence operations authentication needs.
// Implementations must support transaction-aware operations via context propagation.
type UserRepository interface {
	// Create stores a new user in the repository.
	Create(ctx context.Context, user *userDomain.User) error

	// GetByID retrieves a user by ID. Returns ErrUserNotFound if not found.
	GetByID(ctx context.Context, id uuid.UUID) (*userDomain.User, error)

	// GetByEmail retrieves a user by email. Returns ErrUserNotFound if not found.
	GetByEmail(ctx context.Context, email string) (*userDomain.User, error)
}

// RefreshCredentialRepository defines persistence operations for refresh
// credentials. Implementations must support transaction-aware operations via
// context propagation.
type RefreshCredentialRepository interface {
	// Upsert stores the credential, replacing any existing credential for the
	// same user. Each user holds at most one active credential.
	Upsert(ctx context.Context, credential *authDomain.RefreshCredential) error

	// GetBySecretHashForUpdate retrieves a credential by its secret hash and
	// locks the row for the duration of the surrounding transaction, so that
	// concurrent rotations of the same credential serialize.
	// Returns ErrRefreshNotFound if no credential matches.
	GetBySecretHashForUpdate(ctx context.Context, secretHash string) (*authDomain.RefreshCredential, error)

	// UpdateSecret replaces the credential's secret hash and expiry in place.
	UpdateSecret(ctx context.Context, id uuid.UUID, secretHash string, expiresAt time.Time) error

	// Delete removes a credential by ID.
	Delete(ctx context.Context, id uuid.UUID) error

	// DeleteBySecretHash removes the credential matching the secret hash.
	// Deleting a hash with no matching credential is not an error.
	DeleteBySecretHash(ctx context.Context, secretHash string) error

	// DeleteExpired removes all credentials that expired before the given time
	// and returns the number of rows removed.
	DeleteExpired(ctx context.Context, before time.Time) (int64, error)
}

// AuthUseCase defines the business logic for account registration and the
// token lifecycle.
type AuthUseCase interface {
	// Register creates a new account with the default USER role.
	// Returns ErrUserAlreadyExists if the username or email is taken.
	Register(ctx context.Context, input *authDomain.RegisterInput) (*userDomain.User, error)

	// Login authenticates by email and password and returns a fresh token
	// pair. The user's refresh credential is replaced: at most one refresh
	// credential exists per account.
	//
	// Returns ErrInvalidCredentials for unknown emails and wrong passwords
	// alike, and ErrUserDisabled for disabled accounts.
	Login(ctx context.Context, input *authDomain.LoginInput) (*authDomain.TokenPair, error)

	// OAuthLogin authenticates with an external identity provider's ID token
	// and returns a fresh token pair. A verified identity with no matching
	// account is provisioned on first sign-in.
	//
	// Returns ErrInvalidCredentials for tokens that fail verification or
	// assert an unverified email, and ErrUserDisabled for disabled accounts.
	OAuthLogin(ctx context.Context, idToken string) (*authDomain.TokenPair, error)

	// Refresh exchanges a valid refresh secret for a new token pair, rotating
	// the stored secret in the same transaction. The presented secret is
	// single-use: after a successful refresh it no longer matches anything.
	//
	// An expired credential is purged and the exchange fails with
	// ErrInvalidCredentials, forcing a new login.
	Refresh(ctx context.Context, plainSecret string) (*authDomain.TokenPair, error)

	// Logout invalidates the refresh credential matching the presented secret.
	// Idempotent: logging out an unknown or already-removed secret succeeds.
	Logout(ctx context.Context, plainSecret string) error
}
