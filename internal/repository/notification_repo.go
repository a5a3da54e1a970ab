package repository

import (
	"context"

	"attendify/internal/model"

	"gorm.io/gorm"
)

// NotificationRepository defines the interface for data access of
// superadmin-facing notifications.
type NotificationRepository interface {
	Create(ctx context.Context, n *model.Notification) error
	List(ctx context.Context, page, limit int) ([]model.Notification, int64, error)
	MarkRead(ctx context.Context, id string) error
}

type notificationRepository struct {
	db *gorm.DB
}

// NewNotificationRepository returns a new instance of NotificationRepository.
func NewNotificationRepository(db *gorm.DB) NotificationRepository {
	return &notificationRepository{db: db}
}

func (r *notificationRepository) Create(ctx context.Context, n *model.Notification) error {
	return GetDB(ctx, r.db).Create(n).Error
}

func (r *notificationRepository) List(ctx context.Context, page, limit int) ([]model.Notification, int64, error) {
	var items []model.Notification
	var total int64

	if err := GetDB(ctx, r.db).Model(&model.Notification{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	if err := GetDB(ctx, r.db).Order("created_at desc").Offset(offset).Limit(limit).Find(&items).Error; err != nil {
		return nil, 0, err
	}

	return items, total, nil
}

func (r *notificationRepository) MarkRead(ctx context.Context, id string) error {
	res := GetDB(ctx, r.db).Model(&model.Notification{}).Where("id = ?", id).Update("read", true)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
