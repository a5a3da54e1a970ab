package session

import (
	"context"
	"testing"
	"time"

	"attendify/pkg/apperror"
)

// fakeClock lets tests move time forward deterministically.
type fakeClock struct {
	t time.Time
}

func (c *fakeClock) Now() time.Time          { return c.t }
func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestStore(t *testing.T, ttl time.Duration, lookup Lookup) (*MemoryStore, *fakeClock) {
	t.Helper()
	clock := &fakeClock{t: time.Date(2025, 7, 1, 9, 0, 0, 0, time.UTC)}
	s := NewMemoryStore(ttl, lookup)
	s.now = clock.Now
	return s, clock
}

func testIdentity() Identity {
	return Identity{
		Email:       "admin@example.com",
		Name:        "Admin",
		Role:        "admin",
		Permissions: map[string]bool{"add_attendance": true},
	}
}

func TestCreateAndResolve(t *testing.T) {
	s, _ := newTestStore(t, time.Hour, nil)
	ctx := context.Background()

	token, err := s.Create(ctx, testIdentity(), "ua-1")
	if err != nil {
		t.Fatalf("Create() error: %v", err)
	}
	if len(token) != 64 {
		t.Fatalf("token length = %d, want 64 hex chars", len(token))
	}

	id, err := s.Resolve(ctx, token)
	if err != nil {
		t.Fatalf("Resolve() error: %v", err)
	}
	if id.Email != "admin@example.com" || !id.Permissions["add_attendance"] {
		t.Fatalf("resolved identity = %+v", id)
	}
}

func TestResolveUnknownToken(t *testing.T) {
	s, _ := newTestStore(t, time.Hour, nil)

	_, err := s.Resolve(context.Background(), "no-such-token")
	if err == nil {
		t.Fatal("Resolve() accepted unknown token")
	}
	if apperror.KindOf(err) != apperror.Unauthenticated {
		t.Fatalf("error kind = %q, want unauthenticated", apperror.KindOf(err))
	}
}

func TestSlidingExpiryNeverMovesBackward(t *testing.T) {
	s, clock := newTestStore(t, time.Hour, nil)
	ctx := context.Background()

	token, _ := s.Create(ctx, testIdentity(), "")

	// Two back-to-back resolves both succeed; each pushes expiry forward.
	clock.Advance(40 * time.Minute)
	if _, err := s.Resolve(ctx, token); err != nil {
		t.Fatalf("first Resolve() error: %v", err)
	}
	clock.Advance(40 * time.Minute)
	if _, err := s.Resolve(ctx, token); err != nil {
		t.Fatalf("second Resolve() error: %v", err)
	}
	// 80 minutes past creation: only alive because the first resolve slid
	// the window forward.
	if _, err := s.Resolve(ctx, token); err != nil {
		t.Fatalf("Resolve() after sliding renewals failed: %v", err)
	}
}

func TestExpiryEvictionIsIdempotent(t *testing.T) {
	s, clock := newTestStore(t, time.Hour, nil)
	ctx := context.Background()

	token, _ := s.Create(ctx, testIdentity(), "")

	clock.Advance(time.Hour) // exactly at expires_at: now >= expires_at means expired

	if _, err := s.Resolve(ctx, token); apperror.KindOf(err) != apperror.Unauthenticated {
		t.Fatalf("Resolve() at expiry boundary: %v", err)
	}
	// The stale entry was removed by the first failed lookup.
	if _, err := s.Resolve(ctx, token); apperror.KindOf(err) != apperror.Unauthenticated {
		t.Fatalf("Resolve() after eviction: %v", err)
	}

	if active, err := s.Revoke(ctx, token); err != nil || active {
		t.Fatalf("Revoke() after eviction = (%v, %v), want (false, nil)", active, err)
	}
}

func TestRevokeReportsWasActive(t *testing.T) {
	s, _ := newTestStore(t, time.Hour, nil)
	ctx := context.Background()

	token, _ := s.Create(ctx, testIdentity(), "")

	active, err := s.Revoke(ctx, token)
	if err != nil || !active {
		t.Fatalf("Revoke(live) = (%v, %v), want (true, nil)", active, err)
	}

	// Idempotent: revoking again is no error, but distinguishable.
	active, err = s.Revoke(ctx, token)
	if err != nil || active {
		t.Fatalf("Revoke(gone) = (%v, %v), want (false, nil)", active, err)
	}

	if _, err := s.Resolve(ctx, token); apperror.KindOf(err) != apperror.Unauthenticated {
		t.Fatal("revoked token still resolves")
	}
}

func TestSweepRemovesOnlyExpired(t *testing.T) {
	s, clock := newTestStore(t, time.Hour, nil)
	ctx := context.Background()

	old, _ := s.Create(ctx, testIdentity(), "")
	clock.Advance(30 * time.Minute)
	fresh, _ := s.Create(ctx, testIdentity(), "")
	clock.Advance(45 * time.Minute) // old is 75m past creation, fresh 45m

	removed, err := s.Sweep(ctx)
	if err != nil {
		t.Fatalf("Sweep() error: %v", err)
	}
	if removed != 1 {
		t.Fatalf("Sweep() removed %d, want 1", removed)
	}

	if _, err := s.Resolve(ctx, old); err == nil {
		t.Fatal("expired session survived sweep")
	}
	if _, err := s.Resolve(ctx, fresh); err != nil {
		t.Fatalf("live session removed by sweep: %v", err)
	}
}

func TestResolveRemergesPermissions(t *testing.T) {
	grants := map[string]bool{"add_attendance": true}
	lookup := func(_ context.Context, email string) (Identity, error) {
		return Identity{Email: email, Role: "admin", Permissions: grants}, nil
	}
	s, _ := newTestStore(t, time.Hour, lookup)
	ctx := context.Background()

	token, _ := s.Create(ctx, testIdentity(), "")

	id, err := s.Resolve(ctx, token)
	if err != nil {
		t.Fatalf("Resolve() error: %v", err)
	}
	if !id.Permissions["add_attendance"] {
		t.Fatal("initial grant missing")
	}

	// A superadmin edits the grants between requests; the next resolve must
	// see the new map, not the login snapshot.
	grants = map[string]bool{"add_attendance": false, "view_reports": true}
	id, err = s.Resolve(ctx, token)
	if err != nil {
		t.Fatalf("Resolve() error: %v", err)
	}
	if id.Permissions["add_attendance"] || !id.Permissions["view_reports"] {
		t.Fatalf("stale permissions returned: %+v", id.Permissions)
	}
}

func TestRevokeDuringResolveStaysRevoked(t *testing.T) {
	// Resolve releases the lock around the lookup call. A logout landing in
	// that gap must win: the write-back must not re-insert the session.
	var s *MemoryStore
	var token string
	ctx := context.Background()

	lookup := func(_ context.Context, email string) (Identity, error) {
		if active, err := s.Revoke(ctx, token); err != nil || !active {
			t.Fatalf("Revoke() inside lookup = (%v, %v), want (true, nil)", active, err)
		}
		return Identity{Email: email, Role: "admin"}, nil
	}
	s, _ = newTestStore(t, time.Hour, lookup)
	token, _ = s.Create(ctx, testIdentity(), "")

	// This resolve still returns the identity it looked up, but the session
	// itself is gone.
	if _, err := s.Resolve(ctx, token); err != nil {
		t.Fatalf("Resolve() error: %v", err)
	}

	if _, err := s.Resolve(ctx, token); apperror.KindOf(err) != apperror.Unauthenticated {
		t.Fatal("revoked session came back after a concurrent resolve")
	}
	if active, _ := s.Revoke(ctx, token); active {
		t.Fatal("second revoke found a live session")
	}
}

func TestResolveDropsOrphanedSession(t *testing.T) {
	lookup := func(_ context.Context, _ string) (Identity, error) {
		return Identity{}, apperror.New(apperror.NotFound, "account deleted")
	}
	s, _ := newTestStore(t, time.Hour, lookup)
	ctx := context.Background()

	token, _ := s.Create(ctx, testIdentity(), "")

	if _, err := s.Resolve(ctx, token); apperror.KindOf(err) != apperror.Unauthenticated {
		t.Fatalf("Resolve() for deleted account: %v", err)
	}
	if active, _ := s.Revoke(ctx, token); active {
		t.Fatal("orphaned session was not dropped")
	}
}
