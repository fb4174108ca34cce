// Package repository provides data persistence implementations for user entities.
package repository

import (
	"strings"
)

// joinRoles serializes a role list into the comma-separated form stored in
// the roles column.
func joinRoles(roles []string) string {
	return strings.Join(roles, ",")
}

// splitRoles parses the stored comma-separated role list. An empty column
// yields a nil slice, not [""].
func splitRoles(stored string) []string {
	if stored == "" {
		return nil
	}
	return strings.Split(stored, ",")
}
