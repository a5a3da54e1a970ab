package handler

import (
	"net/http"
	"time"

	"attendify/internal/middleware"
	"attendify/internal/service"
	"attendify/internal/session"
	"attendify/pkg/response"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	authService  service.AuthService
	store        session.Store
	cookieMaxAge int
}

// NewAuthHandler sets up the routing dependencies for auth endpoints. The
// session cookie's max-age mirrors the store TTL so the browser and the
// server expire the session together.
func NewAuthHandler(authService service.AuthService, store session.Store, ttl time.Duration) *AuthHandler {
	if ttl <= 0 {
		ttl = session.DefaultTTL
	}
	return &AuthHandler{
		authService:  authService,
		store:        store,
		cookieMaxAge: int(ttl / time.Second),
	}
}

// RegisterRoutes binds the endpoints to the gin Engine or RouterGroup.
func (h *AuthHandler) RegisterRoutes(router *gin.RouterGroup) {
	auth := router.Group("/auth")
	{
		auth.GET("/google/url", h.GoogleURL)
		auth.GET("/google/callback", h.GoogleCallback)
		auth.POST("/bootstrap-login", h.BootstrapLogin)
		auth.POST("/logout", h.Logout)
		auth.GET("/me", middleware.RequireAuth(h.store), h.Me)
	}
}

// GoogleURL returns the Google consent URL for the frontend to redirect to.
// @Summary      Get Google login URL
// @Tags         auth
// @Produce      json
// @Success      200  {object}  response.Response{data=object}
// @Router       /auth/google/url [get]
func (h *AuthHandler) GoogleURL(c *gin.Context) {
	url, err := h.authService.GoogleLoginURL()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, gin.H{"url": url}))
}

// GoogleCallback finishes the OAuth flow and sets the session cookie.
// @Summary      Google OAuth callback
// @Tags         auth
// @Produce      json
// @Param        state  query  string  true  "Signed state from /auth/google/url"
// @Param        code   query  string  true  "Authorization code from Google"
// @Success      200  {object}  response.Response{data=service.LoginResult}
// @Failure      401  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Router       /auth/google/callback [get]
func (h *AuthHandler) GoogleCallback(c *gin.Context) {
	state := c.Query("state")
	code := c.Query("code")
	if state == "" || code == "" {
		respondBadRequest(c, "state and code are required")
		return
	}

	result, err := h.authService.GoogleCallback(c.Request.Context(), state, code, c.Request.UserAgent())
	if err != nil {
		respondError(c, err)
		return
	}

	middleware.SetSessionCookie(c, result.Token, h.cookieMaxAge)
	c.JSON(http.StatusOK, response.Success(http.StatusOK, result))
}

// BootstrapLogin authenticates the seeded superadmin by password.
// @Summary      Bootstrap superadmin login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        payload  body  service.BootstrapLoginRequest  true  "Credentials"
// @Success      200  {object}  response.Response{data=service.LoginResult}
// @Failure      401  {object}  response.Response
// @Router       /auth/bootstrap-login [post]
func (h *AuthHandler) BootstrapLogin(c *gin.Context) {
	var req service.BootstrapLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request payload: "+err.Error())
		return
	}

	result, err := h.authService.BootstrapLogin(c.Request.Context(), req, c.Request.UserAgent())
	if err != nil {
		respondError(c, err)
		return
	}

	middleware.SetSessionCookie(c, result.Token, h.cookieMaxAge)
	c.JSON(http.StatusOK, response.Success(http.StatusOK, result))
}

// Logout revokes the current session and clears the cookie. Revoking an
// already-gone session is not an error; was_active tells the two apart.
// @Summary      Logout
// @Tags         auth
// @Produce      json
// @Success      200  {object}  response.Response{data=object}
// @Router       /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	wasActive := false
	if token, err := c.Cookie(middleware.SessionCookie); err == nil && token != "" {
		wasActive, err = h.authService.Logout(c.Request.Context(), token)
		if err != nil {
			respondError(c, err)
			return
		}
	}

	middleware.ClearSessionCookie(c)
	c.JSON(http.StatusOK, response.Success(http.StatusOK, gin.H{"was_active": wasActive}))
}

// Me returns the authenticated identity with its effective permissions.
// @Summary      Current identity
// @Tags         auth
// @Produce      json
// @Success      200  {object}  response.Response{data=session.Identity}
// @Failure      401  {object}  response.Response
// @Router       /auth/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	identity, ok := middleware.GetIdentity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, response.Error(http.StatusUnauthorized, "authentication required"))
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, identity))
}
