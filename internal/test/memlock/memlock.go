// Package memlock is an internal helper for the test packages. It
// provides an in-memory repo.Locks implementation whose keys expire
// based on a manually advanced clock, so lock expiry can be tested
// without sleeping.
package memlock

import (
	"context"
	"sync"
	"time"
)

// Store is an in-memory repo.Locks. Its zero value is not usable, use
// the New function. It is safe for concurrent use.
type Store struct {
	mu   sync.Mutex
	now  time.Time
	keys map[string]time.Time // key -> expiry

	// Err, if non-nil, is returned by all operations.
	Err error
}

func New() *Store {
	return &Store{
		now:  time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		keys: make(map[string]time.Time),
	}
}

// Advance moves the clock of s forward by d, expiring the keys whose
// time to live has passed.
func (s *Store) Advance(d time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = s.now.Add(d)
}

func (s *Store) SetNX(
	ctx context.Context, key string, ttl time.Duration,
) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return false, s.Err
	}
	if s.alive(key) {
		return false, nil
	}
	s.keys[key] = s.now.Add(ttl)
	return true, nil
}

func (s *Store) Exists(ctx context.Context, key string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return false, s.Err
	}
	return s.alive(key), nil
}

func (s *Store) Del(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	delete(s.keys, key)
	return nil
}

// TTL returns the remaining time to live of key, or zero if it is
// missing or expired.
func (s *Store) TTL(key string) time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.alive(key) {
		return 0
	}
	return s.keys[key].Sub(s.now)
}

// Len returns the number of alive keys.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for k := range s.keys {
		if s.alive(k) {
			n++
		}
	}
	return n
}

// alive must be called while s.mu is held.
func (s *Store) alive(key string) bool {
	exp, ok := s.keys[key]
	if !ok {
		return false
	}
	if !s.now.Before(exp) {
		delete(s.keys, key)
		return false
	}
	return true
}
