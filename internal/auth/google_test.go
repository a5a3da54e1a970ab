package auth

import (
	"testing"
	"time"
)

func newTestClient() *GoogleClient {
	return NewGoogleClient(GoogleConfig{
		ClientID:     "client",
		ClientSecret: "secret",
		RedirectURL:  "http://localhost:8080/auth/google/callback",
		StateSecret:  "state-signing-secret",
	})
}

func TestStateRoundTrip(t *testing.T) {
	g := newTestClient()

	state, err := g.SignState()
	if err != nil {
		t.Fatalf("SignState() error: %v", err)
	}
	if err := g.VerifyState(state); err != nil {
		t.Fatalf("VerifyState() rejected fresh state: %v", err)
	}
}

func TestVerifyStateRejectsTampering(t *testing.T) {
	g := newTestClient()

	state, err := g.SignState()
	if err != nil {
		t.Fatalf("SignState() error: %v", err)
	}

	other := NewGoogleClient(GoogleConfig{StateSecret: "different-secret"})
	if err := other.VerifyState(state); err == nil {
		t.Fatal("VerifyState() accepted state signed with another secret")
	}

	if err := g.VerifyState(state + "x"); err == nil {
		t.Fatal("VerifyState() accepted mangled state")
	}
	if err := g.VerifyState(""); err == nil {
		t.Fatal("VerifyState() accepted empty state")
	}
}

func TestVerifyStateRejectsExpired(t *testing.T) {
	g := newTestClient()

	past := time.Now().Add(-time.Hour)
	g.now = func() time.Time { return past }
	state, err := g.SignState()
	if err != nil {
		t.Fatalf("SignState() error: %v", err)
	}

	g.now = time.Now
	if err := g.VerifyState(state); err == nil {
		t.Fatal("VerifyState() accepted state older than its lifetime")
	}
}
