// Package errors defines the sentinel errors the use cases speak in.
// Handlers map them to HTTP status codes in one place (httputil), so
// repository and use-case code never mentions HTTP.
package errors

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound: the requested resource does not exist.
	ErrNotFound = errors.New("not found")

	// ErrConflict: a uniqueness rule was violated, e.g. a taken username.
	ErrConflict = errors.New("conflict")

	// ErrInvalidInput: the request failed validation.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnauthorized: missing or unverifiable credentials.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrForbidden: authenticated, but not allowed to do this.
	ErrForbidden = errors.New("forbidden")

	// ErrRateLimited: rejected at admission before reaching a handler.
	ErrRateLimited = errors.New("rate limited")
)

// New returns an error with the given message.
func New(message string) error {
	return errors.New(message)
}

// Wrap adds context to err, keeping the chain intact for Is/As checks.
// Returns nil for a nil err.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Wrapf is Wrap with a format string.
func Wrapf(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf(format+": %w", append(args, err)...)
}

// Is reports whether any error in err's chain matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain matching target's type.
func As(err error, target any) bool {
	return errors.As(err, target)
}
