package ratelimit

import (
	"context"
	"math"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/zuxercoding99/social-media-api/internal/config"
)

// Decision is the outcome of one admission check.
type Decision struct {
	// Allowed reports whether the request may proceed.
	Allowed bool
	// Limit is the bucket capacity for the request's route class.
	Limit int
	// Remaining is the whole number of tokens left after a successful consume.
	Remaining int
	// RetryAfter is how long the caller must wait for the next token.
	// Only meaningful on rejection; never below one second.
	RetryAfter time.Duration
}

// bucketEntry holds one key's rate limiter and its last access time for
// idle eviction.
type bucketEntry struct {
	limiter    *rate.Limiter
	class      string
	mu         sync.Mutex
	lastAccess time.Time
}

// Store is the bucket cache: a concurrent key→bucket map with lazy creation
// and idle-based eviction. Keys combine route class and client identity
// ("api:203.0.113.7"). Token consumption on a single key is atomic; the
// rate.Limiter serializes concurrent consumes so a token is never spent twice.
type Store struct {
	limits  map[string]config.RouteClassLimit
	entries sync.Map // map[string]*bucketEntry
}

// NewStore creates a bucket cache with the given per-class limits. A class
// missing from the map falls back to the default class configuration.
func NewStore(limits map[string]config.RouteClassLimit) *Store {
	return &Store{limits: limits}
}

// classLimit resolves the bucket parameters for a route class.
func (s *Store) classLimit(class string) config.RouteClassLimit {
	if limit, ok := s.limits[class]; ok {
		return limit
	}
	return s.limits[ClassDefault]
}

// Allow performs one token-bucket consume for the class+client key and returns
// the admission decision. The bucket is created on first use with a full token
// balance; refill is continuous at capacity/window tokens per second.
func (s *Store) Allow(class, clientID string) Decision {
	limit := s.classLimit(class)
	key := class + ":" + clientID
	entry := s.getEntry(key, class, limit)

	if entry.limiter.Allow() {
		remaining := int(entry.limiter.Tokens())
		if remaining < 0 {
			remaining = 0
		}
		return Decision{
			Allowed:   true,
			Limit:     limit.Capacity,
			Remaining: remaining,
		}
	}

	// Compute the wait for the next token, then give the reservation back so
	// the rejected request doesn't consume it.
	reservation := entry.limiter.Reserve()
	retryAfter := time.Duration(math.Ceil(reservation.Delay().Seconds())) * time.Second
	reservation.Cancel()

	if retryAfter < time.Second {
		retryAfter = time.Second
	}

	return Decision{
		Allowed:    false,
		Limit:      limit.Capacity,
		RetryAfter: retryAfter,
	}
}

// getEntry retrieves or creates the bucket for a key and refreshes its last
// access time.
func (s *Store) getEntry(key, class string, limit config.RouteClassLimit) *bucketEntry {
	if val, ok := s.entries.Load(key); ok {
		entry := val.(*bucketEntry)
		entry.mu.Lock()
		entry.lastAccess = time.Now()
		entry.mu.Unlock()
		return entry
	}

	refillPerSecond := float64(limit.Capacity) / limit.Window.Seconds()
	entry := &bucketEntry{
		limiter:    rate.NewLimiter(rate.Limit(refillPerSecond), limit.Capacity),
		class:      class,
		lastAccess: time.Now(),
	}

	// Two concurrent requests for a fresh key may race here; LoadOrStore keeps
	// exactly one bucket so they cannot each consume from a private copy.
	if val, loaded := s.entries.LoadOrStore(key, entry); loaded {
		existing := val.(*bucketEntry)
		existing.mu.Lock()
		existing.lastAccess = time.Now()
		existing.mu.Unlock()
		return existing
	}
	return entry
}

// Len returns the number of cached buckets.
func (s *Store) Len() int {
	count := 0
	s.entries.Range(func(_, _ any) bool {
		count++
		return true
	})
	return count
}

// StartCleanup launches the background sweep that evicts idle buckets.
// Runs until the context is cancelled.
func (s *Store) StartCleanup(ctx context.Context, interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				s.sweep(time.Now())
			}
		}
	}()
}

// sweep removes buckets idle for longer than twice their class window.
// An in-flight consume holds its own entry pointer, so removal never corrupts
// a decision already underway; the next request for the key simply gets a
// fresh, full bucket.
func (s *Store) sweep(now time.Time) {
	s.entries.Range(func(key, value any) bool {
		entry := value.(*bucketEntry)
		idleTTL := 2 * s.classLimit(entry.class).Window

		entry.mu.Lock()
		stale := now.Sub(entry.lastAccess) > idleTTL
		entry.mu.Unlock()

		if stale {
			s.entries.Delete(key)
		}
		return true
	})
}
