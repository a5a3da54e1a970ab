package session

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"time"

	"attendify/pkg/apperror"
)

// DefaultTTL is the sliding session lifetime.
const DefaultTTL = 7 * 24 * time.Hour

// Identity is the resolved owner of a session. Permissions is the effective
// capability map, freshly merged from the backing user record on every
// resolve so grant changes take effect on the next request.
type Identity struct {
	Email       string          `json:"email"`
	Name        string          `json:"name"`
	Role        string          `json:"role"`
	Permissions map[string]bool `json:"permissions"`
}

// IsSuperadmin reports whether the identity holds the superadmin role.
func (i Identity) IsSuperadmin() bool {
	return i.Role == "superadmin"
}

// Lookup fetches the current identity for an email from the backing user
// store. Implementations return a NotFound apperror when the account no
// longer exists.
type Lookup func(ctx context.Context, email string) (Identity, error)

// Store maps opaque tokens to identities with sliding expiry.
//
// Create mints (or, per-device, reuses) a token for a logged-in identity.
// Resolve returns the identity for a live token, extending its expiry; an
// absent or expired token yields an Unauthenticated error and the stale entry
// is removed. Revoke deletes a token unconditionally and reports whether a
// live session was removed. Sweep removes expired entries in bulk; Resolve is
// correct without it.
type Store interface {
	Create(ctx context.Context, identity Identity, deviceTag string) (string, error)
	Resolve(ctx context.Context, token string) (Identity, error)
	Revoke(ctx context.Context, token string) (bool, error)
	Sweep(ctx context.Context) (int64, error)
}

// errUnauthenticated is the failure for absent, expired, or orphaned tokens.
func errUnauthenticated() error {
	return apperror.New(apperror.Unauthenticated, "authentication required")
}

// newToken returns 32 bytes of randomness, hex encoded.
func newToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", apperror.Wrap(apperror.Upstream, "failed to generate session token", err)
	}
	return hex.EncodeToString(buf), nil
}
