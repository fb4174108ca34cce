// Package service provides technical services for authentication operations.
//
// This package implements reusable services for access token signing and
// verification and for refresh secret generation and hashing.
package service

import (
	"context"

	"github.com/google/uuid"

	authDomain "github.com/zuxercoding99/social-media-api/internal/auth/domain"
)

// AccessTokenService defines operations for stateless access tokens.
// Implementations must sign tokens with a server-held key and verify them
// without any datastore access.
type AccessTokenService interface {
	// Issue creates a signed access token for the given subject and roles.
	// The token carries the subject ID, role names, issue time, and expiry.
	Issue(subject uuid.UUID, roles []string) (string, error)

	// Verify checks a token's signature and validity window and returns the
	// principal it encodes. Returns ErrInvalidCredentials for any malformed,
	// tampered, or expired token. Verification is pure: it never touches a
	// datastore and never mutates state.
	Verify(token string) (authDomain.Principal, error)
}

// ExternalIdentity is the identity an external provider asserts in a
// verified ID token.
type ExternalIdentity struct {
	Subject       string
	Email         string
	EmailVerified bool
	Name          string
}

// IDTokenVerifier verifies ID tokens issued by an external identity
// provider. Implementations must check the signature, audience, and
// validity window against the provider's published keys.
type IDTokenVerifier interface {
	// Verify validates the raw ID token and returns the identity it
	// asserts. Returns ErrInvalidCredentials for any token that fails
	// verification.
	Verify(ctx context.Context, idToken string) (*ExternalIdentity, error)
}

// RefreshSecretService defines operations for refresh credential secrets.
// Implementations must use cryptographically secure random generation and
// fast hashing suitable for high-entropy secrets (e.g., SHA-256).
type RefreshSecretService interface {
	// GenerateSecret creates a new cryptographically secure random secret.
	// Returns both the plain text secret (handed to the client once) and
	// the hashed version (stored in the database).
	GenerateSecret() (plainSecret string, secretHash string, err error)

	// HashSecret hashes a plain text secret using SHA-256.
	// Used for credential lookup by comparing hashes.
	HashSecret(plainSecret string) string
}
