package service

import (
	"context"
	"encoding/json"
	"errors"
	"log"

	"attendify/internal/model"
	"attendify/internal/repository"
	ws "attendify/internal/websocket"
	"attendify/pkg/apperror"

	"gorm.io/gorm"
)

// NotificationService persists superadmin-facing events and fans them out
// over the websocket hub. Persistence failure is logged but never fails the
// triggering request; the notification is a side channel.
type NotificationService interface {
	Notify(ctx context.Context, n model.Notification)
	List(ctx context.Context, page, limit int) ([]model.Notification, int64, error)
	MarkRead(ctx context.Context, id string) error
}

type notificationService struct {
	repo repository.NotificationRepository
	hub  *ws.Hub
}

// NewNotificationService returns a new instance of NotificationService.
func NewNotificationService(repo repository.NotificationRepository, hub *ws.Hub) NotificationService {
	return &notificationService{repo: repo, hub: hub}
}

func (s *notificationService) Notify(ctx context.Context, n model.Notification) {
	if err := s.repo.Create(ctx, &n); err != nil {
		log.Println("WARNING: failed to persist notification:", err)
	}

	if s.hub == nil {
		return
	}
	payload, err := json.Marshal(map[string]interface{}{
		"event":   n.Event,
		"message": n.Message,
		"actor":   n.Actor,
		"emp_no":  n.EmpNo,
		"month":   n.Month,
	})
	if err != nil {
		return
	}
	// Non-blocking send into the hub's buffer. If the buffer is full the
	// event is dropped; the persisted row is the source of truth and the
	// live push is best-effort.
	select {
	case s.hub.Broadcast <- payload:
	default:
		log.Println("WARNING: notification broadcast dropped, hub buffer full")
	}
}

func (s *notificationService) List(ctx context.Context, page, limit int) ([]model.Notification, int64, error) {
	items, total, err := s.repo.List(ctx, page, limit)
	if err != nil {
		return nil, 0, apperror.Wrap(apperror.Upstream, "failed to list notifications", err)
	}
	return items, total, nil
}

func (s *notificationService) MarkRead(ctx context.Context, id string) error {
	err := s.repo.MarkRead(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperror.New(apperror.NotFound, "notification not found")
	}
	if err != nil {
		return apperror.Wrap(apperror.Upstream, "failed to mark notification read", err)
	}
	return nil
}
