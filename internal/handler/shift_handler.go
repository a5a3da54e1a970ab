package handler

import (
	"net/http"

	"attendify/internal/middleware"
	"attendify/internal/permission"
	"attendify/internal/service"
	"attendify/internal/session"
	"attendify/pkg/response"

	"github.com/gin-gonic/gin"
)

type ShiftHandler struct {
	shiftService service.ShiftService
	store        session.Store
}

// NewShiftHandler sets up the routing dependencies for shift endpoints.
func NewShiftHandler(shiftService service.ShiftService, store session.Store) *ShiftHandler {
	return &ShiftHandler{shiftService: shiftService, store: store}
}

// RegisterRoutes binds the endpoints to the gin Engine or RouterGroup.
func (h *ShiftHandler) RegisterRoutes(router *gin.RouterGroup) {
	shifts := router.Group("/api/shifts")
	shifts.Use(middleware.RequireAuth(h.store))
	{
		shifts.POST("", middleware.RequirePermission(permission.AddShift), h.Upsert)
		shifts.GET("", h.ListByMonth)
		shifts.GET("/:emp_no/:month", h.Get)
	}
}

// Upsert creates or replaces one employee's monthly shift assignment.
// Replacing an existing assignment follows the overwrite policy.
// @Summary      Upsert monthly shift assignment
// @Tags         shifts
// @Accept       json
// @Produce      json
// @Param        payload  body  service.UpsertShiftRequest  true  "Shift assignment"
// @Success      200  {object}  response.Response{data=model.Shift}
// @Failure      400  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Failure      409  {object}  response.Response
// @Router       /api/shifts [post]
func (h *ShiftHandler) Upsert(c *gin.Context) {
	var req service.UpsertShiftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request payload: "+err.Error())
		return
	}

	actor, _ := middleware.GetIdentity(c)
	shift, err := h.shiftService.Upsert(c.Request.Context(), actor, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, shift))
}

// ListByMonth returns every shift assignment for a month.
// @Summary      List shift assignments for a month
// @Tags         shifts
// @Produce      json
// @Param        month  query  string  true  "Month (YYYY-MM)"
// @Success      200  {object}  response.Response{data=[]model.Shift}
// @Failure      400  {object}  response.Response
// @Router       /api/shifts [get]
func (h *ShiftHandler) ListByMonth(c *gin.Context) {
	month := c.Query("month")
	if month == "" {
		respondBadRequest(c, "month query parameter is required")
		return
	}

	shifts, err := h.shiftService.ListByMonth(c.Request.Context(), month)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, shifts))
}

// Get returns one employee's shift assignment for a month.
// @Summary      Get shift assignment
// @Tags         shifts
// @Produce      json
// @Param        emp_no  path  string  true  "Employee number"
// @Param        month   path  string  true  "Month (YYYY-MM)"
// @Success      200  {object}  response.Response{data=model.Shift}
// @Failure      404  {object}  response.Response
// @Router       /api/shifts/{emp_no}/{month} [get]
func (h *ShiftHandler) Get(c *gin.Context) {
	shift, err := h.shiftService.Get(c.Request.Context(), c.Param("emp_no"), c.Param("month"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, shift))
}
