package repository

import (
	"context"

	"attendify/internal/model"

	"gorm.io/gorm"
)

// AttendanceRepository defines the interface for data access of monthly
// attendance documents. Insert relies on the (emp_no, month) unique index:
// the loser of a concurrent insert for a new key gets a duplicate-key error
// instead of silently clobbering the winner.
type AttendanceRepository interface {
	GetByEmpMonth(ctx context.Context, empNo, month string) (*model.Attendance, error)
	Insert(ctx context.Context, att *model.Attendance) error
	Replace(ctx context.Context, att *model.Attendance) error
	ListByTypeMonth(ctx context.Context, empType, month string) ([]model.Attendance, error)
}

type attendanceRepository struct {
	db *gorm.DB
}

// NewAttendanceRepository returns a new instance of AttendanceRepository.
func NewAttendanceRepository(db *gorm.DB) AttendanceRepository {
	return &attendanceRepository{db: db}
}

func (r *attendanceRepository) GetByEmpMonth(ctx context.Context, empNo, month string) (*model.Attendance, error) {
	var att model.Attendance
	if err := GetDB(ctx, r.db).First(&att, "emp_no = ? AND month = ?", empNo, month).Error; err != nil {
		return nil, err
	}
	return &att, nil
}

func (r *attendanceRepository) Insert(ctx context.Context, att *model.Attendance) error {
	return GetDB(ctx, r.db).Create(att).Error
}

// Replace overwrites an existing document in full, keyed by its primary key.
func (r *attendanceRepository) Replace(ctx context.Context, att *model.Attendance) error {
	return GetDB(ctx, r.db).Save(att).Error
}

func (r *attendanceRepository) ListByTypeMonth(ctx context.Context, empType, month string) ([]model.Attendance, error) {
	var atts []model.Attendance
	if err := GetDB(ctx, r.db).Where("type = ? AND month = ?", empType, month).Find(&atts).Error; err != nil {
		return nil, err
	}
	return atts, nil
}
