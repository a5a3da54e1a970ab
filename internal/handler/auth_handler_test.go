package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"attendify/internal/service"
	"attendify/internal/session"
	"attendify/pkg/apperror"

	"github.com/gin-gonic/gin"
)

// fakeAuthService accepts one fixed credential pair.
type fakeAuthService struct {
	token string
}

func (f *fakeAuthService) GoogleLoginURL() (string, error) { return "https://example.com/auth", nil }

func (f *fakeAuthService) GoogleCallback(context.Context, string, string, string) (*service.LoginResult, error) {
	return nil, apperror.New(apperror.Unauthenticated, "authentication required")
}

func (f *fakeAuthService) BootstrapLogin(_ context.Context, req service.BootstrapLoginRequest, _ string) (*service.LoginResult, error) {
	if req.Email != "root@example.com" || req.Password != "secret" {
		return nil, apperror.New(apperror.Unauthenticated, "invalid email or password")
	}
	return &service.LoginResult{
		Token:    f.token,
		Identity: session.Identity{Email: req.Email, Role: "superadmin"},
	}, nil
}

func (f *fakeAuthService) Logout(context.Context, string) (bool, error) { return true, nil }

func (f *fakeAuthService) SeedSuperadmin(context.Context, string, string) error { return nil }

var _ service.AuthService = (*fakeAuthService)(nil)

func newAuthRouter(ttl time.Duration) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewAuthHandler(&fakeAuthService{token: "tok-1"}, nil, ttl)
	h.RegisterRoutes(r.Group(""))
	return r
}

func postLogin(t *testing.T, r *gin.Engine, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/auth/bootstrap-login", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func sessionCookie(t *testing.T, w *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range w.Result().Cookies() {
		if c.Name == "session_id" {
			return c
		}
	}
	t.Fatal("no session cookie set")
	return nil
}

func TestBootstrapLoginCookieMaxAgeFollowsTTL(t *testing.T) {
	tests := []struct {
		name string
		ttl  time.Duration
		want int
	}{
		{"explicit ttl", 48 * time.Hour, 48 * 3600},
		{"zero ttl falls back to default", 0, int(session.DefaultTTL / time.Second)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newAuthRouter(tt.ttl)
			w := postLogin(t, r, `{"email":"root@example.com","password":"secret"}`)
			if w.Code != http.StatusOK {
				t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
			}

			cookie := sessionCookie(t, w)
			if cookie.Value != "tok-1" {
				t.Errorf("cookie value = %q", cookie.Value)
			}
			if cookie.MaxAge != tt.want {
				t.Errorf("cookie max-age = %d, want %d", cookie.MaxAge, tt.want)
			}
			if !cookie.HttpOnly {
				t.Error("session cookie is not HttpOnly")
			}
		})
	}
}

func TestBootstrapLoginRejectsBadCredentials(t *testing.T) {
	r := newAuthRouter(time.Hour)

	w := postLogin(t, r, `{"email":"root@example.com","password":"wrong"}`)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}
	for _, c := range w.Result().Cookies() {
		if c.Name == "session_id" && c.Value != "" {
			t.Fatal("session cookie set on failed login")
		}
	}
}
