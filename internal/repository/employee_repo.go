package repository

import (
	"context"

	"attendify/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// EmployeeRepository defines the interface for data access of Employee rows.
type EmployeeRepository interface {
	Create(ctx context.Context, emp *model.Employee) error
	GetByEmpNo(ctx context.Context, empNo string) (*model.Employee, error)
	List(ctx context.Context, empType string, page, limit int) ([]model.Employee, int64, error)
	ListAllByType(ctx context.Context, empType string) ([]model.Employee, error)
	Update(ctx context.Context, emp *model.Employee) error
	Delete(ctx context.Context, empNo string) error
	BulkUpsert(ctx context.Context, emps []model.Employee) error
}

type employeeRepository struct {
	db *gorm.DB
}

// NewEmployeeRepository returns a new instance of EmployeeRepository.
func NewEmployeeRepository(db *gorm.DB) EmployeeRepository {
	return &employeeRepository{db: db}
}

func (r *employeeRepository) Create(ctx context.Context, emp *model.Employee) error {
	return GetDB(ctx, r.db).Create(emp).Error
}

func (r *employeeRepository) GetByEmpNo(ctx context.Context, empNo string) (*model.Employee, error) {
	var emp model.Employee
	if err := GetDB(ctx, r.db).First(&emp, "emp_no = ?", empNo).Error; err != nil {
		return nil, err
	}
	return &emp, nil
}

func (r *employeeRepository) List(ctx context.Context, empType string, page, limit int) ([]model.Employee, int64, error) {
	var emps []model.Employee
	var total int64

	q := GetDB(ctx, r.db).Model(&model.Employee{})
	if empType != "" {
		q = q.Where("type = ?", empType)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	if err := q.Order("emp_no asc").Offset(offset).Limit(limit).Find(&emps).Error; err != nil {
		return nil, 0, err
	}

	return emps, total, nil
}

func (r *employeeRepository) ListAllByType(ctx context.Context, empType string) ([]model.Employee, error) {
	var emps []model.Employee
	if err := GetDB(ctx, r.db).Where("type = ?", empType).Order("emp_no asc").Find(&emps).Error; err != nil {
		return nil, err
	}
	return emps, nil
}

func (r *employeeRepository) Update(ctx context.Context, emp *model.Employee) error {
	return GetDB(ctx, r.db).Save(emp).Error
}

func (r *employeeRepository) Delete(ctx context.Context, empNo string) error {
	return GetDB(ctx, r.db).Where("emp_no = ?", empNo).Delete(&model.Employee{}).Error
}

// BulkUpsert inserts imported rows, updating name/designation/type on emp_no
// collisions so re-uploading a sheet refreshes instead of failing.
func (r *employeeRepository) BulkUpsert(ctx context.Context, emps []model.Employee) error {
	if len(emps) == 0 {
		return nil
	}
	return GetDB(ctx, r.db).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "emp_no"}},
		DoUpdates: clause.AssignmentColumns([]string{"name", "designation", "type", "updated_at"}),
	}).Create(&emps).Error
}
