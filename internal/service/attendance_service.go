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
	"attendify/pkg/spreadsheet"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// OverwritePolicy decides who may replace an existing attendance or shift
// record. Creating a new record is open to anyone holding the add
// capability; overwriting is the contested operation.
type OverwritePolicy string

const (
	// OverwriteSuperadminOnly is the default: admins can create, only a
	// superadmin can replace.
	OverwriteSuperadminOnly OverwritePolicy = "superadmin"
	// OverwriteAnyAdmin lets any authenticated admin replace records.
	OverwriteAnyAdmin OverwritePolicy = "any_admin"
)

// ParseOverwritePolicy maps a config string to a policy, defaulting to
// superadmin-only.
func ParseOverwritePolicy(s string) OverwritePolicy {
	if s == string(OverwriteAnyAdmin) {
		return OverwriteAnyAdmin
	}
	return OverwriteSuperadminOnly
}

func (p OverwritePolicy) allows(actor session.Identity) bool {
	return p == OverwriteAnyAdmin || actor.IsSuperadmin()
}

type UpsertAttendanceRequest struct {
	EmpNo   string            `json:"emp_no" binding:"required"`
	Month   string            `json:"month" binding:"required"`
	Records map[string]string `json:"records" binding:"required"`
}

// AttendanceService validates and persists monthly attendance documents.
type AttendanceService interface {
	Upsert(ctx context.Context, actor session.Identity, req UpsertAttendanceRequest) (*model.Attendance, error)
	Get(ctx context.Context, empNo, month string) (*model.Attendance, error)
	Summary(ctx context.Context, empNo, month string) (*attendance.Summary, error)
	Export(ctx context.Context, empType, month string) ([]byte, error)
}

type attendanceService struct {
	repo          repository.AttendanceRepository
	employees     repository.EmployeeRepository
	holidays      repository.HolidayRepository
	notifications NotificationService
	policy        OverwritePolicy
}

// NewAttendanceService returns a new instance of AttendanceService.
func NewAttendanceService(
	repo repository.AttendanceRepository,
	employees repository.EmployeeRepository,
	holidays repository.HolidayRepository,
	notifications NotificationService,
	policy OverwritePolicy,
) AttendanceService {
	return &attendanceService{
		repo:          repo,
		employees:     employees,
		holidays:      holidays,
		notifications: notifications,
		policy:        policy,
	}
}

func recordsToJSON(records map[string]string) datatypes.JSONMap {
	out := datatypes.JSONMap{}
	for date, code := range records {
		out[date] = code
	}
	return out
}

// Upsert stores a whole month of attendance for one employee. Validation and
// the overwrite-policy check both run before any write, so a rejected batch
// leaves the store untouched.
func (s *attendanceService) Upsert(ctx context.Context, actor session.Identity, req UpsertAttendanceRequest) (*model.Attendance, error) {
	empNo := model.NormalizeEmpNo(req.EmpNo)

	emp, err := s.employees.GetByEmpNo(ctx, empNo)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperror.New(apperror.NotFound, "employee not found")
	}
	if err != nil {
		return nil, apperror.Wrap(apperror.Upstream, "failed to look up employee", err)
	}

	if err := attendance.ValidateRecords(emp.Type, req.Month, req.Records); err != nil {
		return nil, err
	}

	existing, err := s.repo.GetByEmpMonth(ctx, empNo, req.Month)
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		att := &model.Attendance{
			EmpNo:     empNo,
			Month:     req.Month,
			Type:      emp.Type,
			Records:   recordsToJSON(req.Records),
			UpdatedBy: actor.Email,
		}
		if err := s.repo.Insert(ctx, att); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				// Lost a check-then-act race: a concurrent request created
				// the record first. The unique index keeps the key single.
				return nil, apperror.New(apperror.Conflict, "attendance for this month was created concurrently")
			}
			return nil, apperror.Wrap(apperror.Upstream, "failed to save attendance", err)
		}
		return att, nil

	case err != nil:
		return nil, apperror.Wrap(apperror.Upstream, "failed to look up attendance", err)
	}

	if !s.policy.allows(actor) {
		s.notifications.Notify(ctx, model.Notification{
			Event:   model.EventOverwriteDenied,
			Message: fmt.Sprintf("%s attempted to overwrite attendance for %s %s", actor.Email, empNo, req.Month),
			Actor:   actor.Email,
			EmpNo:   empNo,
			Month:   req.Month,
		})
		return nil, apperror.New(apperror.Conflict, "attendance already exists for this month; overwriting requires a superadmin")
	}

	existing.Records = recordsToJSON(req.Records)
	existing.Type = emp.Type
	existing.UpdatedBy = actor.Email
	if err := s.repo.Replace(ctx, existing); err != nil {
		return nil, apperror.Wrap(apperror.Upstream, "failed to overwrite attendance", err)
	}
	return existing, nil
}

func (s *attendanceService) Get(ctx context.Context, empNo, month string) (*model.Attendance, error) {
	if _, err := attendance.ParseMonth(month); err != nil {
		return nil, err
	}

	att, err := s.repo.GetByEmpMonth(ctx, model.NormalizeEmpNo(empNo), month)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperror.New(apperror.NotFound, "no attendance recorded for this month")
	}
	if err != nil {
		return nil, apperror.Wrap(apperror.Upstream, "failed to look up attendance", err)
	}
	return att, nil
}

// Summary reduces a month's records to per-code counts and hour totals.
func (s *attendanceService) Summary(ctx context.Context, empNo, month string) (*attendance.Summary, error) {
	att, err := s.Get(ctx, empNo, month)
	if err != nil {
		return nil, err
	}
	summary := attendance.Summarize(att.RecordsAsStrings())
	return &summary, nil
}

// Export renders the muster-roll spreadsheet for every employee of a type in
// the month's submission window.
func (s *attendanceService) Export(ctx context.Context, empType, month string) ([]byte, error) {
	if !model.ValidEmployeeType(empType) {
		return nil, apperror.New(apperror.Validation, "type must be regular or apprentice")
	}
	window, err := attendance.WindowFor(empType, month)
	if err != nil {
		return nil, err
	}

	emps, err := s.employees.ListAllByType(ctx, empType)
	if err != nil {
		return nil, apperror.Wrap(apperror.Upstream, "failed to list employees", err)
	}

	atts, err := s.repo.ListByTypeMonth(ctx, empType, month)
	if err != nil {
		return nil, apperror.Wrap(apperror.Upstream, "failed to load attendance", err)
	}
	byEmp := make(map[string]map[string]string, len(atts))
	for i := range atts {
		byEmp[atts[i].EmpNo] = atts[i].RecordsAsStrings()
	}

	hols, err := s.holidays.ListRange(ctx,
		window.Start.Format(attendance.DateFormat),
		window.End.Format(attendance.DateFormat))
	if err != nil {
		return nil, apperror.Wrap(apperror.Upstream, "failed to load holidays", err)
	}
	holidaySet := make(map[string]bool, len(hols))
	for _, h := range hols {
		holidaySet[h.Date] = true
	}

	rows := make([]spreadsheet.EmployeeRow, 0, len(emps))
	for _, e := range emps {
		rows = append(rows, spreadsheet.EmployeeRow{
			EmpNo:       e.EmpNo,
			Name:        e.Name,
			Designation: e.Designation,
			Type:        e.Type,
		})
	}

	roll := spreadsheet.MusterRoll{
		Title:      "ATTENDANCE SHEET / MUSTER ROLL OF SSEE/SW/KGP",
		Start:      window.Start,
		End:        window.End,
		Employees:  rows,
		Attendance: byEmp,
		Holidays:   holidaySet,
		Legend:     attendance.LegendFor(empType),
		LegendKeys: attendance.LegendOrderFor(empType),
	}

	out, err := roll.Render()
	if err != nil {
		return nil, apperror.Wrap(apperror.Upstream, "failed to render attendance sheet", err)
	}
	return out, nil
}
