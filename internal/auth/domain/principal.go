// Package domain defines the core authentication entities and types.
package domain

import (
	"github.com/google/uuid"
)

// Well-known role names.
const (
	RoleUser  = "USER"
	RoleAdmin = "ADMIN"
)

// Principal is the resolved identity of a request. Every request carries
// exactly one principal: either an authenticated user or the anonymous
// principal. Handlers that require authentication check IsAnonymous().
type Principal struct {
	// Subject is the authenticated user's ID. uuid.Nil for anonymous.
	Subject uuid.UUID
	// Roles holds the role names granted to the subject.
	Roles []string
}

// Anonymous returns the principal assigned to unauthenticated requests.
func Anonymous() Principal {
	return Principal{}
}

// IsAnonymous reports whether the principal carries no authenticated identity.
func (p Principal) IsAnonymous() bool {
	return p.Subject == uuid.Nil
}

// HasRole reports whether the principal holds the given role.
func (p Principal) HasRole(role string) bool {
	for _, r := range p.Roles {
		if r == role {
			return true
		}
	}
	return false
}
