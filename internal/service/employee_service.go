package service

import (
	"context"
	"errors"
	"io"

	"attendify/internal/model"
	"attendify/internal/repository"
	"attendify/pkg/apperror"
	"attendify/pkg/spreadsheet"

	"gorm.io/gorm"
)

type CreateEmployeeRequest struct {
	EmpNo       string `json:"emp_no" binding:"required"`
	Name        string `json:"name" binding:"required"`
	Designation string `json:"designation"`
	Type        string `json:"type" binding:"required"`
}

type UpdateEmployeeRequest struct {
	Name        string `json:"name"`
	Designation string `json:"designation"`
	Type        string `json:"type"`
}

// EmployeeService manages the employee roster.
type EmployeeService interface {
	Create(ctx context.Context, req CreateEmployeeRequest) (*model.Employee, error)
	Get(ctx context.Context, empNo string) (*model.Employee, error)
	List(ctx context.Context, empType string, page, limit int) ([]model.Employee, int64, error)
	Update(ctx context.Context, empNo string, req UpdateEmployeeRequest) (*model.Employee, error)
	Delete(ctx context.Context, empNo string) error
	ImportSheet(ctx context.Context, r io.Reader) (int, error)
}

type employeeService struct {
	repo repository.EmployeeRepository
}

// NewEmployeeService returns a new instance of EmployeeService.
func NewEmployeeService(repo repository.EmployeeRepository) EmployeeService {
	return &employeeService{repo: repo}
}

func (s *employeeService) Create(ctx context.Context, req CreateEmployeeRequest) (*model.Employee, error) {
	empNo := model.NormalizeEmpNo(req.EmpNo)
	if empNo == "" {
		return nil, apperror.New(apperror.Validation, "emp_no is required")
	}
	if !model.ValidEmployeeType(req.Type) {
		return nil, apperror.New(apperror.Validation, "type must be regular or apprentice")
	}

	emp := &model.Employee{
		EmpNo:       empNo,
		Name:        req.Name,
		Designation: req.Designation,
		Type:        req.Type,
	}
	if err := s.repo.Create(ctx, emp); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperror.New(apperror.Conflict, "an employee with this number already exists")
		}
		return nil, apperror.Wrap(apperror.Upstream, "failed to create employee", err)
	}
	return emp, nil
}

func (s *employeeService) Get(ctx context.Context, empNo string) (*model.Employee, error) {
	emp, err := s.repo.GetByEmpNo(ctx, model.NormalizeEmpNo(empNo))
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperror.New(apperror.NotFound, "employee not found")
	}
	if err != nil {
		return nil, apperror.Wrap(apperror.Upstream, "failed to look up employee", err)
	}
	return emp, nil
}

func (s *employeeService) List(ctx context.Context, empType string, page, limit int) ([]model.Employee, int64, error) {
	if empType != "" && !model.ValidEmployeeType(empType) {
		return nil, 0, apperror.New(apperror.Validation, "type must be regular or apprentice")
	}
	emps, total, err := s.repo.List(ctx, empType, page, limit)
	if err != nil {
		return nil, 0, apperror.Wrap(apperror.Upstream, "failed to list employees", err)
	}
	return emps, total, nil
}

func (s *employeeService) Update(ctx context.Context, empNo string, req UpdateEmployeeRequest) (*model.Employee, error) {
	emp, err := s.Get(ctx, empNo)
	if err != nil {
		return nil, err
	}

	if req.Type != "" {
		if !model.ValidEmployeeType(req.Type) {
			return nil, apperror.New(apperror.Validation, "type must be regular or apprentice")
		}
		emp.Type = req.Type
	}
	if req.Name != "" {
		emp.Name = req.Name
	}
	if req.Designation != "" {
		emp.Designation = req.Designation
	}

	if err := s.repo.Update(ctx, emp); err != nil {
		return nil, apperror.Wrap(apperror.Upstream, "failed to update employee", err)
	}
	return emp, nil
}

func (s *employeeService) Delete(ctx context.Context, empNo string) error {
	if _, err := s.Get(ctx, empNo); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, model.NormalizeEmpNo(empNo)); err != nil {
		return apperror.Wrap(apperror.Upstream, "failed to delete employee", err)
	}
	return nil
}

// ImportSheet bulk-loads employees from an uploaded spreadsheet. Rows are
// upserted by normalized emp_no, so re-uploading refreshes names and
// designations instead of failing.
func (s *employeeService) ImportSheet(ctx context.Context, r io.Reader) (int, error) {
	rows, err := spreadsheet.ParseEmployeeSheet(r)
	if err != nil {
		return 0, apperror.New(apperror.Validation, "could not parse employee sheet: "+err.Error())
	}

	emps := make([]model.Employee, 0, len(rows))
	seen := make(map[string]bool, len(rows))
	for _, row := range rows {
		empNo := model.NormalizeEmpNo(row.EmpNo)
		if empNo == "" || seen[empNo] {
			continue
		}
		empType := row.Type
		if empType == "" {
			empType = model.EmployeeRegular
		}
		if !model.ValidEmployeeType(empType) {
			return 0, apperror.New(apperror.Validation, "invalid employee type '"+row.Type+"' for emp_no "+empNo)
		}
		seen[empNo] = true
		emps = append(emps, model.Employee{
			EmpNo:       empNo,
			Name:        row.Name,
			Designation: row.Designation,
			Type:        empType,
		})
	}

	if err := s.repo.BulkUpsert(ctx, emps); err != nil {
		return 0, apperror.Wrap(apperror.Upstream, "failed to import employees", err)
	}
	return len(emps), nil
}
