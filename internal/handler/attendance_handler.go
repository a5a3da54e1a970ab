package handler

import (
	"fmt"
	"net/http"

	"attendify/internal/middleware"
	"attendify/internal/model"
	"attendify/internal/permission"
	"attendify/internal/service"
	"attendify/internal/session"
	"attendify/pkg/response"

	"github.com/gin-gonic/gin"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type AttendanceHandler struct {
	attendanceService service.AttendanceService
	store             session.Store
}

// NewAttendanceHandler sets up the routing dependencies for attendance endpoints.
func NewAttendanceHandler(attendanceService service.AttendanceService, store session.Store) *AttendanceHandler {
	return &AttendanceHandler{attendanceService: attendanceService, store: store}
}

// RegisterRoutes binds the endpoints to the gin Engine or RouterGroup.
func (h *AttendanceHandler) RegisterRoutes(router *gin.RouterGroup) {
	att := router.Group("/api/attendance")
	att.Use(middleware.RequireAuth(h.store))
	{
		att.POST("", middleware.RequirePermission(permission.AddAttendance), h.Upsert)
		att.GET("/:emp_no/:month", h.Get)
		att.GET("/:emp_no/:month/summary", middleware.RequirePermission(permission.ViewReports), h.Summary)
		att.GET("/export", middleware.RequirePermission(permission.ViewReports), h.Export)
	}
}

// Upsert creates or replaces one employee's monthly attendance document.
// The whole batch is validated against the employee's marking window first;
// a single bad entry rejects everything.
// @Summary      Upsert monthly attendance
// @Tags         attendance
// @Accept       json
// @Produce      json
// @Param        payload  body  service.UpsertAttendanceRequest  true  "Attendance document"
// @Success      200  {object}  response.Response{data=model.Attendance}
// @Failure      400  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Failure      409  {object}  response.Response
// @Router       /api/attendance [post]
func (h *AttendanceHandler) Upsert(c *gin.Context) {
	var req service.UpsertAttendanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request payload: "+err.Error())
		return
	}

	actor, _ := middleware.GetIdentity(c)
	att, err := h.attendanceService.Upsert(c.Request.Context(), actor, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, att))
}

// Get returns one employee's attendance document for a month.
// @Summary      Get monthly attendance
// @Tags         attendance
// @Produce      json
// @Param        emp_no  path  string  true  "Employee number"
// @Param        month   path  string  true  "Month (YYYY-MM)"
// @Success      200  {object}  response.Response{data=model.Attendance}
// @Failure      404  {object}  response.Response
// @Router       /api/attendance/{emp_no}/{month} [get]
func (h *AttendanceHandler) Get(c *gin.Context) {
	att, err := h.attendanceService.Get(c.Request.Context(), c.Param("emp_no"), c.Param("month"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, att))
}

// Summary returns per-code counts and worked-hour totals for a month.
// @Summary      Summarize monthly attendance
// @Tags         attendance
// @Produce      json
// @Param        emp_no  path  string  true  "Employee number"
// @Param        month   path  string  true  "Month (YYYY-MM)"
// @Success      200  {object}  response.Response{data=attendance.Summary}
// @Failure      404  {object}  response.Response
// @Router       /api/attendance/{emp_no}/{month}/summary [get]
func (h *AttendanceHandler) Summary(c *gin.Context) {
	summary, err := h.attendanceService.Summary(c.Request.Context(), c.Param("emp_no"), c.Param("month"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, summary))
}

// Export streams the rendered muster-roll workbook for a month.
// @Summary      Export muster roll spreadsheet
// @Tags         attendance
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param        month  query  string  true   "Month (YYYY-MM)"
// @Param        type   query  string  false  "regular (default) or apprentice"
// @Success      200  {file}  file
// @Failure      400  {object}  response.Response
// @Router       /api/attendance/export [get]
func (h *AttendanceHandler) Export(c *gin.Context) {
	month := c.Query("month")
	if month == "" {
		respondBadRequest(c, "month query parameter is required")
		return
	}
	empType := c.DefaultQuery("type", model.EmployeeRegular)

	book, err := h.attendanceService.Export(c.Request.Context(), empType, month)
	if err != nil {
		respondError(c, err)
		return
	}

	filename := fmt.Sprintf("muster_roll_%s_%s.xlsx", empType, month)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, xlsxContentType, book)
}
