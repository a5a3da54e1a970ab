package repository

import (
	"context"

	"attendify/internal/model"

	"gorm.io/gorm"
)

// ShiftRepository defines the interface for data access of shift assignments.
type ShiftRepository interface {
	GetByEmpMonth(ctx context.Context, empNo, month string) (*model.Shift, error)
	Insert(ctx context.Context, shift *model.Shift) error
	Replace(ctx context.Context, shift *model.Shift) error
	ListByMonth(ctx context.Context, month string) ([]model.Shift, error)
}

type shiftRepository struct {
	db *gorm.DB
}

// NewShiftRepository returns a new instance of ShiftRepository.
func NewShiftRepository(db *gorm.DB) ShiftRepository {
	return &shiftRepository{db: db}
}

func (r *shiftRepository) GetByEmpMonth(ctx context.Context, empNo, month string) (*model.Shift, error) {
	var shift model.Shift
	if err := GetDB(ctx, r.db).First(&shift, "emp_no = ? AND month = ?", empNo, month).Error; err != nil {
		return nil, err
	}
	return &shift, nil
}

func (r *shiftRepository) Insert(ctx context.Context, shift *model.Shift) error {
	return GetDB(ctx, r.db).Create(shift).Error
}

func (r *shiftRepository) Replace(ctx context.Context, shift *model.Shift) error {
	return GetDB(ctx, r.db).Save(shift).Error
}

func (r *shiftRepository) ListByMonth(ctx context.Context, month string) ([]model.Shift, error) {
	var shifts []model.Shift
	if err := GetDB(ctx, r.db).Where("month = ?", month).Order("emp_no asc").Find(&shifts).Error; err != nil {
		return nil, err
	}
	return shifts, nil
}
