package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"attendify/internal/permission"
	"attendify/internal/session"
	"attendify/pkg/apperror"

	"github.com/gin-gonic/gin"
)

// fakeStore resolves a single known token.
type fakeStore struct {
	token    string
	identity session.Identity
}

func (f *fakeStore) Create(context.Context, session.Identity, string) (string, error) {
	return f.token, nil
}

func (f *fakeStore) Resolve(_ context.Context, token string) (session.Identity, error) {
	if token != f.token {
		return session.Identity{}, apperror.New(apperror.Unauthenticated, "authentication required")
	}
	return f.identity, nil
}

func (f *fakeStore) Revoke(context.Context, string) (bool, error) { return false, nil }
func (f *fakeStore) Sweep(context.Context) (int64, error)         { return 0, nil }

func newRouter(store session.Store, extra ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	handlers := append([]gin.HandlerFunc{RequireAuth(store)}, extra...)
	handlers = append(handlers, func(c *gin.Context) {
		id, _ := GetIdentity(c)
		c.JSON(http.StatusOK, gin.H{"email": id.Email})
	})
	r.GET("/protected", handlers...)
	return r
}

func adminStore(perms map[string]bool) *fakeStore {
	return &fakeStore{
		token: "good-token",
		identity: session.Identity{
			Email:       "admin@example.com",
			Role:        "admin",
			Permissions: perms,
		},
	}
}

func do(r *gin.Engine, cookie string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if cookie != "" {
		req.AddCookie(&http.Cookie{Name: SessionCookie, Value: cookie})
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRequireAuth(t *testing.T) {
	store := adminStore(nil)

	tests := []struct {
		name   string
		cookie string
		want   int
	}{
		{"missing cookie", "", http.StatusUnauthorized},
		{"wrong token", "bad-token", http.StatusUnauthorized},
		{"valid token", "good-token", http.StatusOK},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w := do(newRouter(store), tc.cookie)
			if w.Code != tc.want {
				t.Fatalf("status = %d, want %d (body %s)", w.Code, tc.want, w.Body.String())
			}
		})
	}
}

func TestRequireSuperadmin(t *testing.T) {
	admin := adminStore(nil)
	super := &fakeStore{
		token:    "good-token",
		identity: session.Identity{Email: "root@example.com", Role: "superadmin"},
	}

	if w := do(newRouter(admin, RequireSuperadmin()), "good-token"); w.Code != http.StatusForbidden {
		t.Fatalf("admin passed superadmin gate: %d", w.Code)
	}
	if w := do(newRouter(super, RequireSuperadmin()), "good-token"); w.Code != http.StatusOK {
		t.Fatalf("superadmin rejected: %d", w.Code)
	}
}

func TestRequirePermission(t *testing.T) {
	tests := []struct {
		name  string
		store *fakeStore
		want  int
	}{
		{"admin with grant", adminStore(map[string]bool{permission.AddAttendance: true}), http.StatusOK},
		{"admin without grant", adminStore(map[string]bool{}), http.StatusForbidden},
		{"admin nil map", adminStore(nil), http.StatusForbidden},
		{
			"superadmin bypasses",
			&fakeStore{token: "good-token", identity: session.Identity{Role: "superadmin"}},
			http.StatusOK,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w := do(newRouter(tc.store, RequirePermission(permission.AddAttendance)), "good-token")
			if w.Code != tc.want {
				t.Fatalf("status = %d, want %d", w.Code, tc.want)
			}
		})
	}
}
