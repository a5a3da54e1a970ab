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

type HolidayHandler struct {
	holidayService service.HolidayService
	store          session.Store
}

// NewHolidayHandler sets up the routing dependencies for holiday endpoints.
func NewHolidayHandler(holidayService service.HolidayService, store session.Store) *HolidayHandler {
	return &HolidayHandler{holidayService: holidayService, store: store}
}

// RegisterRoutes binds the endpoints to the gin Engine or RouterGroup.
func (h *HolidayHandler) RegisterRoutes(router *gin.RouterGroup) {
	holidays := router.Group("/api/holidays")
	holidays.Use(middleware.RequireAuth(h.store))
	{
		holidays.GET("", h.ListHolidays)
		holidays.PUT("", middleware.RequirePermission(permission.ManageHolidays), h.ReplaceHolidays)
		holidays.POST("/import", middleware.RequirePermission(permission.ManageHolidays), h.ImportSheet)
	}
}

// ListHolidays returns the calendar, optionally restricted to a date range.
// @Summary      List holidays
// @Tags         holidays
// @Produce      json
// @Param        from  query  string  false  "Range start (YYYY-MM-DD)"
// @Param        to    query  string  false  "Range end (YYYY-MM-DD)"
// @Success      200  {object}  response.Response{data=[]model.Holiday}
// @Failure      400  {object}  response.Response
// @Router       /api/holidays [get]
func (h *HolidayHandler) ListHolidays(c *gin.Context) {
	holidays, err := h.holidayService.List(c.Request.Context(), c.Query("from"), c.Query("to"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, holidays))
}

// ReplaceHolidays swaps the whole calendar for the provided set.
// @Summary      Replace holiday calendar
// @Tags         holidays
// @Accept       json
// @Produce      json
// @Param        payload  body  service.ReplaceHolidaysRequest  true  "Full holiday set"
// @Success      200  {object}  response.Response{data=object}
// @Failure      400  {object}  response.Response
// @Router       /api/holidays [put]
func (h *HolidayHandler) ReplaceHolidays(c *gin.Context) {
	var req service.ReplaceHolidaysRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request payload: "+err.Error())
		return
	}

	actor, _ := middleware.GetIdentity(c)
	count, err := h.holidayService.Replace(c.Request.Context(), actor, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, gin.H{"replaced": count}))
}

// ImportSheet replaces the calendar from an uploaded spreadsheet file.
// @Summary      Import holidays from spreadsheet
// @Tags         holidays
// @Accept       multipart/form-data
// @Produce      json
// @Param        file  formData  file  true  "xlsx file with date, name columns"
// @Success      200  {object}  response.Response{data=object}
// @Failure      400  {object}  response.Response
// @Router       /api/holidays/import [post]
func (h *HolidayHandler) ImportSheet(c *gin.Context) {
	file, _, err := c.Request.FormFile("file")
	if err != nil {
		respondBadRequest(c, "file upload is required")
		return
	}
	defer file.Close()

	actor, _ := middleware.GetIdentity(c)
	count, err := h.holidayService.ImportSheet(c.Request.Context(), actor, file)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, gin.H{"replaced": count}))
}
