package domain

import (
	"github.com/zuxercoding99/social-media-api/internal/errors"
)

// Authentication errors.
var (
	// ErrRefreshNotFound indicates no credential matches the presented secret.
	ErrRefreshNotFound = errors.Wrap(errors.ErrNotFound, "refresh credential not found")

	// ErrRefreshExpired indicates the credential exists but has expired.
	ErrRefreshExpired = errors.Wrap(errors.ErrUnauthorized, "refresh credential expired")

	// ErrInvalidCredentials indicates the presented credentials do not match
	// any account. Deliberately generic to prevent account enumeration.
	ErrInvalidCredentials = errors.Wrap(errors.ErrUnauthorized, "invalid credentials")

	// ErrUserDisabled indicates the account exists but is not allowed to sign in.
	ErrUserDisabled = errors.Wrap(errors.ErrForbidden, "user account is disabled")
)
