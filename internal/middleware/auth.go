package middleware

import (
	"net/http"
	"os"

	"attendify/internal/permission"
	"attendify/internal/session"
	"attendify/pkg/apperror"
	"attendify/pkg/response"

	"github.com/gin-gonic/gin"
)

// SessionCookie is the only transport for session tokens. The header-based
// variant was deliberately not kept; one transport, consistently.
const SessionCookie = "session_id"

const identityKey = "identity"

// SetSessionCookie stores the session token as an HttpOnly cookie.
func SetSessionCookie(c *gin.Context, token string, maxAge int) {
	// Production (cross-origin): SameSiteNoneMode + Secure=true
	// Development (same-site):   SameSiteLaxMode  + Secure=false
	sameSite := http.SameSiteLaxMode
	secure := false
	if os.Getenv("GIN_MODE") == "release" {
		sameSite = http.SameSiteNoneMode
		secure = true
	}

	c.SetSameSite(sameSite)
	c.SetCookie(SessionCookie, token, maxAge, "/", "", secure, true)
}

// ClearSessionCookie removes the session cookie.
func ClearSessionCookie(c *gin.Context) {
	sameSite := http.SameSiteLaxMode
	secure := false
	if os.Getenv("GIN_MODE") == "release" {
		sameSite = http.SameSiteNoneMode
		secure = true
	}

	c.SetSameSite(sameSite)
	c.SetCookie(SessionCookie, "", -1, "/", "", secure, true)
}

// RequireAuth resolves the session cookie against the store and puts the
// identity into the request context. Resolution failure is always surfaced
// as authentication required, never retried.
func RequireAuth(store session.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(SessionCookie)
		if err != nil || token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, response.Error(http.StatusUnauthorized, "authentication required"))
			return
		}

		identity, err := store.Resolve(c.Request.Context(), token)
		if err != nil {
			status := apperror.HTTPStatus(err)
			c.AbortWithStatusJSON(status, response.Error(status, apperror.PublicMessage(err)))
			return
		}

		c.Set(identityKey, identity)
		c.Next()
	}
}

// RequireSuperadmin rejects callers below the superadmin role. Must be
// mounted after RequireAuth.
func RequireSuperadmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := GetIdentity(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, response.Error(http.StatusUnauthorized, "authentication required"))
			return
		}
		if !identity.IsSuperadmin() {
			c.AbortWithStatusJSON(http.StatusForbidden, response.Error(http.StatusForbidden, "superadmin access required"))
			return
		}
		c.Next()
	}
}

// RequirePermission rejects callers lacking the capability. Superadmin
// passes unconditionally. Must be mounted after RequireAuth.
func RequirePermission(capability string) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := GetIdentity(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, response.Error(http.StatusUnauthorized, "authentication required"))
			return
		}
		if !permission.Check(identity.Role, identity.Permissions, capability) {
			c.AbortWithStatusJSON(http.StatusForbidden, response.Error(http.StatusForbidden, "missing permission '"+capability+"'"))
			return
		}
		c.Next()
	}
}

// GetIdentity returns the authenticated identity placed by RequireAuth.
func GetIdentity(c *gin.Context) (session.Identity, bool) {
	v, exists := c.Get(identityKey)
	if !exists {
		return session.Identity{}, false
	}
	identity, ok := v.(session.Identity)
	return identity, ok
}
