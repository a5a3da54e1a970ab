package repository

import (
	"context"

	"attendify/internal/model"

	"gorm.io/gorm"
)

// HolidayRepository defines the interface for data access of the holiday set.
// The set is bulk-replaced on upload; there is no incremental merge.
type HolidayRepository interface {
	ReplaceAll(ctx context.Context, holidays []model.Holiday) error
	ListRange(ctx context.Context, from, to string) ([]model.Holiday, error)
	ListAll(ctx context.Context) ([]model.Holiday, error)
}

type holidayRepository struct {
	db *gorm.DB
	tx TransactionManager
}

// NewHolidayRepository returns a new instance of HolidayRepository.
func NewHolidayRepository(db *gorm.DB, tx TransactionManager) HolidayRepository {
	return &holidayRepository{db: db, tx: tx}
}

// ReplaceAll deletes every existing holiday and inserts the new set in one
// transaction, so readers never observe a half-replaced set.
func (r *holidayRepository) ReplaceAll(ctx context.Context, holidays []model.Holiday) error {
	return r.tx.RunInTx(ctx, func(txCtx context.Context) error {
		if err := GetDB(txCtx, r.db).Where("1 = 1").Delete(&model.Holiday{}).Error; err != nil {
			return err
		}
		if len(holidays) == 0 {
			return nil
		}
		return GetDB(txCtx, r.db).Create(&holidays).Error
	})
}

func (r *holidayRepository) ListRange(ctx context.Context, from, to string) ([]model.Holiday, error) {
	var hols []model.Holiday
	if err := GetDB(ctx, r.db).Where("date >= ? AND date <= ?", from, to).Order("date asc").Find(&hols).Error; err != nil {
		return nil, err
	}
	return hols, nil
}

func (r *holidayRepository) ListAll(ctx context.Context) ([]model.Holiday, error) {
	var hols []model.Holiday
	if err := GetDB(ctx, r.db).Order("date asc").Find(&hols).Error; err != nil {
		return nil, err
	}
	return hols, nil
}
