package session

import (
	"context"
	"sync"
	"time"
)

type memoryRecord struct {
	identity       Identity
	deviceTag      string
	createdAt      time.Time
	lastAccessedAt time.Time
	expiresAt      time.Time
}

// MemoryStore keeps sessions in a mutex-guarded map. Suitable for a single
// process only; a multi-instance deployment must use the database store since
// in-memory sessions diverge per instance.
type MemoryStore struct {
	mu       sync.Mutex
	sessions map[string]memoryRecord
	ttl      time.Duration
	lookup   Lookup
	now      func() time.Time
}

// NewMemoryStore builds an in-process store. lookup may be nil, in which case
// Resolve returns the identity snapshot taken at login instead of re-merging
// permissions.
func NewMemoryStore(ttl time.Duration, lookup Lookup) *MemoryStore {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &MemoryStore{
		sessions: make(map[string]memoryRecord),
		ttl:      ttl,
		lookup:   lookup,
		now:      time.Now,
	}
}

// Create always mints a fresh token; the in-memory store keeps no per-device
// index (the database store is the one that reuses sessions per device).
func (s *MemoryStore) Create(_ context.Context, identity Identity, deviceTag string) (string, error) {
	token, err := newToken()
	if err != nil {
		return "", err
	}

	now := s.now()
	s.mu.Lock()
	s.sessions[token] = memoryRecord{
		identity:       identity,
		deviceTag:      deviceTag,
		createdAt:      now,
		lastAccessedAt: now,
		expiresAt:      now.Add(s.ttl),
	}
	s.mu.Unlock()

	return token, nil
}

func (s *MemoryStore) Resolve(ctx context.Context, token string) (Identity, error) {
	now := s.now()

	s.mu.Lock()
	rec, ok := s.sessions[token]
	if !ok {
		s.mu.Unlock()
		return Identity{}, errUnauthenticated()
	}
	if !now.Before(rec.expiresAt) {
		// Lazy eviction: the entry is gone after the first expired lookup.
		delete(s.sessions, token)
		s.mu.Unlock()
		return Identity{}, errUnauthenticated()
	}

	rec.lastAccessedAt = now
	rec.expiresAt = now.Add(s.ttl)
	s.sessions[token] = rec
	s.mu.Unlock()

	if s.lookup == nil {
		return rec.identity, nil
	}

	fresh, err := s.lookup(ctx, rec.identity.Email)
	if err != nil {
		// Account deleted since login: the session is orphaned, drop it.
		s.mu.Lock()
		delete(s.sessions, token)
		s.mu.Unlock()
		return Identity{}, errUnauthenticated()
	}

	// The lock was released around the lookup, so the session may have been
	// revoked in the meantime. Never write the record back in that case: a
	// revoked token must stay revoked.
	s.mu.Lock()
	if _, ok := s.sessions[token]; ok {
		rec.identity = fresh
		s.sessions[token] = rec
	}
	s.mu.Unlock()

	return fresh, nil
}

func (s *MemoryStore) Revoke(_ context.Context, token string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.sessions[token]
	if !ok {
		return false, nil
	}
	delete(s.sessions, token)
	return s.now().Before(rec.expiresAt), nil
}

func (s *MemoryStore) Sweep(_ context.Context) (int64, error) {
	now := s.now()

	s.mu.Lock()
	defer s.mu.Unlock()

	var removed int64
	for token, rec := range s.sessions {
		if !now.Before(rec.expiresAt) {
			delete(s.sessions, token)
			removed++
		}
	}
	return removed, nil
}
