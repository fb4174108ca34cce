// Package ratelimit implements the request admission controller: a per-key
// token bucket cache with idle eviction, route classification, and the Gin
// middleware that enforces admission decisions.
package ratelimit

import (
	"sort"
	"strings"
)

// Route classes sharing one rate limit configuration.
const (
	ClassAuth    = "auth"
	ClassAPI     = "api"
	ClassPublic  = "public"
	ClassAdmin   = "admin"
	ClassDefault = "default"
)

// DefaultPrefixTable maps path prefixes to route classes. Longest prefix wins,
// so /api/v1/auth/ requests classify as auth even though /api/ also matches.
func DefaultPrefixTable() map[string]string {
	return map[string]string{
		"/api/v1/auth/": ClassAuth,
		"/api/":         ClassAPI,
		"/public/":      ClassPublic,
		"/admin/":       ClassAdmin,
	}
}

// classPrefix pairs a path prefix with its route class.
type classPrefix struct {
	prefix string
	class  string
}

// Classifier assigns a route class to request paths and knows which paths are
// exempt from admission control entirely.
type Classifier struct {
	prefixes []classPrefix
	exempt   []string
}

// NewClassifier builds a Classifier from a prefix→class table and a list of
// exempt path prefixes. Prefixes are matched longest-first.
func NewClassifier(table map[string]string, exempt []string) *Classifier {
	prefixes := make([]classPrefix, 0, len(table))
	for prefix, class := range table {
		prefixes = append(prefixes, classPrefix{prefix: prefix, class: class})
	}
	sort.Slice(prefixes, func(i, j int) bool {
		return len(prefixes[i].prefix) > len(prefixes[j].prefix)
	})

	return &Classifier{
		prefixes: prefixes,
		exempt:   exempt,
	}
}

// Classify returns the route class for a request path, or ClassDefault when no
// configured prefix matches.
func (c *Classifier) Classify(path string) string {
	for _, p := range c.prefixes {
		if strings.HasPrefix(path, p.prefix) {
			return p.class
		}
	}
	return ClassDefault
}

// IsExempt reports whether the path bypasses admission control (health checks,
// documentation, realtime handshakes).
func (c *Classifier) IsExempt(path string) bool {
	for _, prefix := range c.exempt {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}
