package ratelimit

import (
	"context"
	"sync"
	"time"
)

type entry struct {
	count     int
	resetTime time.Time
}

// MemoryStore keeps windows in a process-local map.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]*entry
	now     func() time.Time
}

type MemoryOption func(*MemoryStore)

// WithClock replaces time.Now, for tests.
func WithClock(now func() time.Time) MemoryOption {
	return func(s *MemoryStore) { s.now = now }
}

func NewMemoryStore(opts ...MemoryOption) *MemoryStore {
	s := &MemoryStore{
		entries: make(map[string]*entry),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CheckAndIncrement never returns an error.
func (s *MemoryStore) CheckAndIncrement(_ context.Context, key string, p Policy) (Result, error) {
	now := s.now()

	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[key]
	if !ok || e.resetTime.Before(now) {
		e = &entry{count: 1, resetTime: now.Add(p.Window)}
		s.entries[key] = e
		return Result{Allowed: true, Remaining: p.MaxRequests - 1, ResetTime: e.resetTime}, nil
	}

	if e.count >= p.MaxRequests {
		return Result{Allowed: false, Remaining: 0, ResetTime: e.resetTime}, nil
	}

	e.count++
	return Result{Allowed: true, Remaining: p.MaxRequests - e.count, ResetTime: e.resetTime}, nil
}

// Sweep drops every entry whose window has already closed and reports how
// many were removed. An expired entry that has not been swept yet behaves
// exactly like a missing one, so sweep timing never affects decisions.
func (s *MemoryStore) Sweep(context.Context) (int, error) {
	now := s.now()

	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for key, e := range s.entries {
		if e.resetTime.Before(now) {
			delete(s.entries, key)
			removed++
		}
	}
	return removed, nil
}

// Len reports the number of tracked keys.
func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}
