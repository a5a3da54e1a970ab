package service

import (
	"context"
	"errors"
	"fmt"

	"attendify/internal/attendance"
	"attendify/internal/model"
	"attendify/internal/repository"
	"attendify/internal/session"
	"attendify/pkg/apperror"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type UpsertShiftRequest struct {
	EmpNo   string                 `json:"emp_no" binding:"required"`
	Month   string                 `json:"month" binding:"required"`
	Payload map[string]interface{} `json:"payload" binding:"required"`
}

// ShiftService manages monthly shift assignments. It shares the overwrite
// policy with attendance: creating is open, replacing is gated.
type ShiftService interface {
	Upsert(ctx context.Context, actor session.Identity, req UpsertShiftRequest) (*model.Shift, error)
	Get(ctx context.Context, empNo, month string) (*model.Shift, error)
	ListByMonth(ctx context.Context, month string) ([]model.Shift, error)
}

type shiftService struct {
	repo          repository.ShiftRepository
	employees     repository.EmployeeRepository
	notifications NotificationService
	policy        OverwritePolicy
}

// NewShiftService returns a new instance of ShiftService.
func NewShiftService(
	repo repository.ShiftRepository,
	employees repository.EmployeeRepository,
	notifications NotificationService,
	policy OverwritePolicy,
) ShiftService {
	return &shiftService{repo: repo, employees: employees, notifications: notifications, policy: policy}
}

func (s *shiftService) Upsert(ctx context.Context, actor session.Identity, req UpsertShiftRequest) (*model.Shift, error) {
	if _, err := attendance.ParseMonth(req.Month); err != nil {
		return nil, err
	}
	empNo := model.NormalizeEmpNo(req.EmpNo)

	if _, err := s.employees.GetByEmpNo(ctx, empNo); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.New(apperror.NotFound, "employee not found")
		}
		return nil, apperror.Wrap(apperror.Upstream, "failed to look up employee", err)
	}

	existing, err := s.repo.GetByEmpMonth(ctx, empNo, req.Month)
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		shift := &model.Shift{
			EmpNo:     empNo,
			Month:     req.Month,
			Payload:   datatypes.JSONMap(req.Payload),
			UpdatedBy: actor.Email,
		}
		if err := s.repo.Insert(ctx, shift); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return nil, apperror.New(apperror.Conflict, "a shift for this month was created concurrently")
			}
			return nil, apperror.Wrap(apperror.Upstream, "failed to save shift", err)
		}
		return shift, nil

	case err != nil:
		return nil, apperror.Wrap(apperror.Upstream, "failed to look up shift", err)
	}

	if !s.policy.allows(actor) {
		s.notifications.Notify(ctx, model.Notification{
			Event:   model.EventOverwriteDenied,
			Message: fmt.Sprintf("%s attempted to overwrite the shift for %s %s", actor.Email, empNo, req.Month),
			Actor:   actor.Email,
			EmpNo:   empNo,
			Month:   req.Month,
		})
		return nil, apperror.New(apperror.Conflict, "a shift already exists for this month; overwriting requires a superadmin")
	}

	existing.Payload = datatypes.JSONMap(req.Payload)
	existing.UpdatedBy = actor.Email
	if err := s.repo.Replace(ctx, existing); err != nil {
		return nil, apperror.Wrap(apperror.Upstream, "failed to overwrite shift", err)
	}
	return existing, nil
}

func (s *shiftService) Get(ctx context.Context, empNo, month string) (*model.Shift, error) {
	if _, err := attendance.ParseMonth(month); err != nil {
		return nil, err
	}

	shift, err := s.repo.GetByEmpMonth(ctx, model.NormalizeEmpNo(empNo), month)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperror.New(apperror.NotFound, "no shift recorded for this month")
	}
	if err != nil {
		return nil, apperror.Wrap(apperror.Upstream, "failed to look up shift", err)
	}
	return shift, nil
}

func (s *shiftService) ListByMonth(ctx context.Context, month string) ([]model.Shift, error) {
	if _, err := attendance.ParseMonth(month); err != nil {
		return nil, err
	}
	shifts, err := s.repo.ListByMonth(ctx, month)
	if err != nil {
		return nil, apperror.Wrap(apperror.Upstream, "failed to list shifts", err)
	}
	return shifts, nil
}
