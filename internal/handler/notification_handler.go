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

type NotificationHandler struct {
	notificationService service.NotificationService
	store               session.Store
}

// NewNotificationHandler sets up the routing dependencies for notification endpoints.
func NewNotificationHandler(notificationService service.NotificationService, store session.Store) *NotificationHandler {
	return &NotificationHandler{notificationService: notificationService, store: store}
}

// RegisterRoutes binds the endpoints to the gin Engine or RouterGroup.
// Notifications are a superadmin surface.
func (h *NotificationHandler) RegisterRoutes(router *gin.RouterGroup) {
	notifications := router.Group("/api/notifications")
	notifications.Use(middleware.RequireAuth(h.store), middleware.RequireSuperadmin())
	{
		notifications.GET("", h.ListNotifications)
		notifications.PUT("/:id/read", h.MarkRead)
	}
}

// ListNotifications returns persisted events, newest first.
// @Summary      List notifications
// @Tags         notifications
// @Produce      json
// @Param        page   query  int  false  "Page number (default 1)"
// @Param        limit  query  int  false  "Items per page (default 50)"
// @Success      200  {object}  response.Response{data=object}
// @Failure      403  {object}  response.Response
// @Router       /api/notifications [get]
func (h *NotificationHandler) ListNotifications(c *gin.Context) {
	params := pagination.Parse(c)

	items, total, err := h.notificationService.List(c.Request.Context(), params.Page, params.Limit)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, gin.H{
		"items": items,
		"total": total,
		"page":  params.Page,
		"limit": params.Limit,
	}))
}

// MarkRead flags one notification as read.
// @Summary      Mark notification read
// @Tags         notifications
// @Produce      json
// @Param        id  path  string  true  "Notification ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /api/notifications/{id}/read [put]
func (h *NotificationHandler) MarkRead(c *gin.Context) {
	if err := h.notificationService.MarkRead(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, gin.H{"read": true}))
}
