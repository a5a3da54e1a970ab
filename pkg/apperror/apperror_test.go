package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestKindOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Kind
	}{
		{"direct", New(NotFound, "employee not found"), NotFound},
		{"wrapped once", fmt.Errorf("handler: %w", New(Conflict, "duplicate month")), Conflict},
		{"foreign error", errors.New("pq: connection refused"), Upstream},
		{"with cause", Wrap(Upstream, "store failed", errors.New("timeout")), Upstream},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := KindOf(tc.err); got != tc.want {
				t.Fatalf("KindOf() = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		kind Kind
		want int
	}{
		{Unauthenticated, http.StatusUnauthorized},
		{Forbidden, http.StatusForbidden},
		{NotFound, http.StatusNotFound},
		{Validation, http.StatusBadRequest},
		{Conflict, http.StatusConflict},
		{Upstream, http.StatusInternalServerError},
	}

	for _, tc := range tests {
		t.Run(string(tc.kind), func(t *testing.T) {
			if got := HTTPStatus(New(tc.kind, "x")); got != tc.want {
				t.Fatalf("HTTPStatus(%q) = %d, want %d", tc.kind, got, tc.want)
			}
		})
	}
}

func TestPublicMessageHidesCause(t *testing.T) {
	err := Wrap(Upstream, "failed to save attendance", errors.New("dial tcp 10.0.0.5: timeout"))
	if got := PublicMessage(err); got != "failed to save attendance" {
		t.Fatalf("PublicMessage() = %q, leaked cause", got)
	}
	if got := PublicMessage(errors.New("raw")); got != "internal error" {
		t.Fatalf("PublicMessage(raw) = %q", got)
	}
}
