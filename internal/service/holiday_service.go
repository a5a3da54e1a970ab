package service

import (
	"context"
	"fmt"
	"io"
	"time"

	"attendify/internal/model"
	"attendify/internal/repository"
	"attendify/internal/session"
	"attendify/pkg/apperror"
	"attendify/pkg/spreadsheet"
)

type HolidayEntry struct {
	Date string `json:"date" binding:"required"`
	Name string `json:"name" binding:"required"`
}

type ReplaceHolidaysRequest struct {
	Holidays []HolidayEntry `json:"holidays" binding:"required,min=1,dive"`
}

// HolidayService manages the holiday calendar. The set is replaced wholesale
// on every upload; it always mirrors the most recent sheet.
type HolidayService interface {
	Replace(ctx context.Context, actor session.Identity, req ReplaceHolidaysRequest) (int, error)
	ImportSheet(ctx context.Context, actor session.Identity, r io.Reader) (int, error)
	List(ctx context.Context, from, to string) ([]model.Holiday, error)
}

type holidayService struct {
	repo          repository.HolidayRepository
	notifications NotificationService
}

// NewHolidayService returns a new instance of HolidayService.
func NewHolidayService(repo repository.HolidayRepository, notifications NotificationService) HolidayService {
	return &holidayService{repo: repo, notifications: notifications}
}

func (s *holidayService) Replace(ctx context.Context, actor session.Identity, req ReplaceHolidaysRequest) (int, error) {
	holidays := make([]model.Holiday, 0, len(req.Holidays))
	seen := make(map[string]bool, len(req.Holidays))
	for _, h := range req.Holidays {
		if _, err := time.Parse("2006-01-02", h.Date); err != nil {
			return 0, apperror.New(apperror.Validation, fmt.Sprintf("invalid holiday date %q, expected YYYY-MM-DD", h.Date))
		}
		if seen[h.Date] {
			continue
		}
		seen[h.Date] = true
		holidays = append(holidays, model.Holiday{Date: h.Date, Name: h.Name})
	}

	if err := s.repo.ReplaceAll(ctx, holidays); err != nil {
		return 0, apperror.Wrap(apperror.Upstream, "failed to replace holidays", err)
	}

	s.notifications.Notify(ctx, model.Notification{
		Event:   model.EventHolidaysReplaced,
		Message: fmt.Sprintf("%s replaced the holiday calendar (%d entries)", actor.Email, len(holidays)),
		Actor:   actor.Email,
	})
	return len(holidays), nil
}

func (s *holidayService) ImportSheet(ctx context.Context, actor session.Identity, r io.Reader) (int, error) {
	rows, err := spreadsheet.ParseHolidaySheet(r)
	if err != nil {
		return 0, apperror.New(apperror.Validation, "could not parse holiday sheet: "+err.Error())
	}

	req := ReplaceHolidaysRequest{Holidays: make([]HolidayEntry, 0, len(rows))}
	for _, row := range rows {
		req.Holidays = append(req.Holidays, HolidayEntry{Date: row.Date, Name: row.Name})
	}
	return s.Replace(ctx, actor, req)
}

func (s *holidayService) List(ctx context.Context, from, to string) ([]model.Holiday, error) {
	if from == "" && to == "" {
		hols, err := s.repo.ListAll(ctx)
		if err != nil {
			return nil, apperror.Wrap(apperror.Upstream, "failed to list holidays", err)
		}
		return hols, nil
	}

	for _, d := range []string{from, to} {
		if _, err := time.Parse("2006-01-02", d); err != nil {
			return nil, apperror.New(apperror.Validation, "from and to must both be YYYY-MM-DD dates")
		}
	}
	hols, err := s.repo.ListRange(ctx, from, to)
	if err != nil {
		return nil, apperror.Wrap(apperror.Upstream, "failed to list holidays", err)
	}
	return hols, nil
}
