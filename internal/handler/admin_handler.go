package handler

import (
	"net/http"

	"attendify/internal/middleware"
	"attendify/internal/service"
	"attendify/internal/session"
	"attendify/pkg/pagination"
	"attendify/pkg/response"

	"github.com/gin-gonic/gin"
)

type AdminHandler struct {
	userService service.UserService
	store       session.Store
}

// NewAdminHandler sets up the routing dependencies for admin-account endpoints.
func NewAdminHandler(userService service.UserService, store session.Store) *AdminHandler {
	return &AdminHandler{userService: userService, store: store}
}

// RegisterRoutes binds the endpoints to the gin Engine or RouterGroup.
// Every admin-account route is superadmin only.
func (h *AdminHandler) RegisterRoutes(router *gin.RouterGroup) {
	admins := router.Group("/api/admins")
	admins.Use(middleware.RequireAuth(h.store), middleware.RequireSuperadmin())
	{
		admins.GET("", h.ListAdmins)
		admins.POST("", h.AddAdmin)
		admins.PUT("/:email/permissions", h.SetPermissions)
		admins.DELETE("/:email", h.DeleteAdmin)
	}
}

// ListAdmins returns the admin accounts with effective permissions.
// @Summary      List admin accounts
// @Tags         admins
// @Produce      json
// @Param        page   query  int  false  "Page number (default 1)"
// @Param        limit  query  int  false  "Items per page (default 50)"
// @Success      200  {object}  response.Response{data=object}
// @Failure      403  {object}  response.Response
// @Router       /api/admins [get]
func (h *AdminHandler) ListAdmins(c *gin.Context) {
	params := pagination.Parse(c)

	admins, total, err := h.userService.ListAdmins(c.Request.Context(), params.Page, params.Limit)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, gin.H{
		"items": admins,
		"total": total,
		"page":  params.Page,
		"limit": params.Limit,
	}))
}

// AddAdmin grants an email admin access, optionally with initial permissions.
// @Summary      Add an admin account
// @Tags         admins
// @Accept       json
// @Produce      json
// @Param        payload  body  service.AddAdminRequest  true  "New admin"
// @Success      201  {object}  response.Response{data=service.AdminResponse}
// @Failure      409  {object}  response.Response
// @Router       /api/admins [post]
func (h *AdminHandler) AddAdmin(c *gin.Context) {
	var req service.AddAdminRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request payload: "+err.Error())
		return
	}

	actor, _ := middleware.GetIdentity(c)
	admin, err := h.userService.AddAdmin(c.Request.Context(), actor, req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, admin))
}

// SetPermissions overwrites an admin's capability flags.
// @Summary      Set admin permissions
// @Tags         admins
// @Accept       json
// @Produce      json
// @Param        email    path  string                         true  "Admin email"
// @Param        payload  body  service.SetPermissionsRequest  true  "Capability flags"
// @Success      200  {object}  response.Response{data=service.AdminResponse}
// @Failure      400  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /api/admins/{email}/permissions [put]
func (h *AdminHandler) SetPermissions(c *gin.Context) {
	var req service.SetPermissionsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request payload: "+err.Error())
		return
	}

	actor, _ := middleware.GetIdentity(c)
	admin, err := h.userService.SetPermissions(c.Request.Context(), actor, c.Param("email"), req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, admin))
}

// DeleteAdmin removes an admin account.
// @Summary      Delete an admin account
// @Tags         admins
// @Produce      json
// @Param        email  path  string  true  "Admin email"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /api/admins/{email} [delete]
func (h *AdminHandler) DeleteAdmin(c *gin.Context) {
	actor, _ := middleware.GetIdentity(c)
	if err := h.userService.DeleteAdmin(c.Request.Context(), actor, c.Param("email")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, gin.H{"deleted": true}))
}
