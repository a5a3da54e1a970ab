package handler

import (
	"net/http"

	"attendify/internal/middleware"
	"attendify/internal/permission"
	"attendify/internal/service"
	"attendify/internal/session"
	"attendify/pkg/pagination"
	"attendify/pkg/response"

	"github.com/gin-gonic/gin"
)

type EmployeeHandler struct {
	employeeService service.EmployeeService
	store           session.Store
}

// NewEmployeeHandler sets up the routing dependencies for employee endpoints.
func NewEmployeeHandler(employeeService service.EmployeeService, store session.Store) *EmployeeHandler {
	return &EmployeeHandler{employeeService: employeeService, store: store}
}

// RegisterRoutes binds the endpoints to the gin Engine or RouterGroup.
// Update and delete are superadmin-only; the rest are capability-gated.
func (h *EmployeeHandler) RegisterRoutes(router *gin.RouterGroup) {
	employees := router.Group("/api/employees")
	employees.Use(middleware.RequireAuth(h.store))
	{
		employees.GET("", h.ListEmployees)
		employees.GET("/:emp_no", h.GetEmployee)
		employees.POST("", middleware.RequirePermission(permission.AddEmployee), h.CreateEmployee)
		employees.POST("/import", middleware.RequirePermission(permission.UploadSheet), h.ImportSheet)
		employees.PUT("/:emp_no", middleware.RequireSuperadmin(), h.UpdateEmployee)
		employees.DELETE("/:emp_no", middleware.RequireSuperadmin(), h.DeleteEmployee)
	}
}

// ListEmployees returns the roster, optionally filtered by type.
// @Summary      List employees
// @Tags         employees
// @Produce      json
// @Param        type   query  string  false  "regular or apprentice"
// @Param        page   query  int     false  "Page number (default 1)"
// @Param        limit  query  int     false  "Items per page (default 50)"
// @Success      200  {object}  response.Response{data=object}
// @Router       /api/employees [get]
func (h *EmployeeHandler) ListEmployees(c *gin.Context) {
	params := pagination.Parse(c)

	emps, total, err := h.employeeService.List(c.Request.Context(), c.Query("type"), params.Page, params.Limit)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, gin.H{
		"items": emps,
		"total": total,
		"page":  params.Page,
		"limit": params.Limit,
	}))
}

// GetEmployee returns one employee by number.
// @Summary      Get employee
// @Tags         employees
// @Produce      json
// @Param        emp_no  path  string  true  "Employee number"
// @Success      200  {object}  response.Response{data=model.Employee}
// @Failure      404  {object}  response.Response
// @Router       /api/employees/{emp_no} [get]
func (h *EmployeeHandler) GetEmployee(c *gin.Context) {
	emp, err := h.employeeService.Get(c.Request.Context(), c.Param("emp_no"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, emp))
}

// CreateEmployee adds one employee manually.
// @Summary      Create employee
// @Tags         employees
// @Accept       json
// @Produce      json
// @Param        payload  body  service.CreateEmployeeRequest  true  "New employee"
// @Success      201  {object}  response.Response{data=model.Employee}
// @Failure      409  {object}  response.Response
// @Router       /api/employees [post]
func (h *EmployeeHandler) CreateEmployee(c *gin.Context) {
	var req service.CreateEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request payload: "+err.Error())
		return
	}

	emp, err := h.employeeService.Create(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, emp))
}

// ImportSheet bulk-imports employees from an uploaded spreadsheet file.
// @Summary      Import employees from spreadsheet
// @Tags         employees
// @Accept       multipart/form-data
// @Produce      json
// @Param        file  formData  file  true  "xlsx file with emp_no, name, designation, type columns"
// @Success      200  {object}  response.Response{data=object}
// @Failure      400  {object}  response.Response
// @Router       /api/employees/import [post]
func (h *EmployeeHandler) ImportSheet(c *gin.Context) {
	file, _, err := c.Request.FormFile("file")
	if err != nil {
		respondBadRequest(c, "file upload is required")
		return
	}
	defer file.Close()

	count, err := h.employeeService.ImportSheet(c.Request.Context(), file)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, gin.H{"imported": count}))
}

// UpdateEmployee edits an employee. Superadmin only.
// @Summary      Update employee
// @Tags         employees
// @Accept       json
// @Produce      json
// @Param        emp_no   path  string                         true  "Employee number"
// @Param        payload  body  service.UpdateEmployeeRequest  true  "Fields to update"
// @Success      200  {object}  response.Response{data=model.Employee}
// @Failure      404  {object}  response.Response
// @Router       /api/employees/{emp_no} [put]
func (h *EmployeeHandler) UpdateEmployee(c *gin.Context) {
	var req service.UpdateEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request payload: "+err.Error())
		return
	}

	emp, err := h.employeeService.Update(c.Request.Context(), c.Param("emp_no"), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, emp))
}

// DeleteEmployee removes an employee. Superadmin only.
// @Summary      Delete employee
// @Tags         employees
// @Produce      json
// @Param        emp_no  path  string  true  "Employee number"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /api/employees/{emp_no} [delete]
func (h *EmployeeHandler) DeleteEmployee(c *gin.Context) {
	if err := h.employeeService.Delete(c.Request.Context(), c.Param("emp_no")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, gin.H{"deleted": true}))
}
