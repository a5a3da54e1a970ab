package service

import (
	"context"
	"testing"

	"attendify/internal/model"
	"attendify/internal/repository"
	"attendify/internal/session"
	"attendify/pkg/apperror"

	"gorm.io/gorm"
)

// --- fakes ---

type fakeEmployeeRepo struct {
	byEmpNo map[string]model.Employee
}

func (f *fakeEmployeeRepo) Create(context.Context, *model.Employee) error { return nil }
func (f *fakeEmployeeRepo) GetByEmpNo(_ context.Context, empNo string) (*model.Employee, error) {
	if emp, ok := f.byEmpNo[empNo]; ok {
		return &emp, nil
	}
	return nil, gorm.ErrRecordNotFound
}
func (f *fakeEmployeeRepo) List(context.Context, string, int, int) ([]model.Employee, int64, error) {
	return nil, 0, nil
}
func (f *fakeEmployeeRepo) ListAllByType(context.Context, string) ([]model.Employee, error) {
	return nil, nil
}
func (f *fakeEmployeeRepo) Update(context.Context, *model.Employee) error { return nil }
func (f *fakeEmployeeRepo) Delete(context.Context, string) error          { return nil }
func (f *fakeEmployeeRepo) BulkUpsert(context.Context, []model.Employee) error {
	return nil
}

type fakeAttendanceRepo struct {
	docs       map[string]*model.Attendance // emp_no|month
	failInsert error                        // forced Insert error, simulates a lost race
	inserts    int
	replaces   int
}

func attKey(empNo, month string) string { return empNo + "|" + month }

func (f *fakeAttendanceRepo) GetByEmpMonth(_ context.Context, empNo, month string) (*model.Attendance, error) {
	if doc, ok := f.docs[attKey(empNo, month)]; ok {
		cp := *doc
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeAttendanceRepo) Insert(_ context.Context, att *model.Attendance) error {
	if f.failInsert != nil {
		return f.failInsert
	}
	if _, ok := f.docs[attKey(att.EmpNo, att.Month)]; ok {
		return gorm.ErrDuplicatedKey
	}
	f.docs[attKey(att.EmpNo, att.Month)] = att
	f.inserts++
	return nil
}

func (f *fakeAttendanceRepo) Replace(_ context.Context, att *model.Attendance) error {
	f.docs[attKey(att.EmpNo, att.Month)] = att
	f.replaces++
	return nil
}

func (f *fakeAttendanceRepo) ListByTypeMonth(context.Context, string, string) ([]model.Attendance, error) {
	return nil, nil
}

type fakeNotifier struct {
	events []model.Notification
}

func (f *fakeNotifier) Notify(_ context.Context, n model.Notification) { f.events = append(f.events, n) }
func (f *fakeNotifier) List(context.Context, int, int) ([]model.Notification, int64, error) {
	return nil, 0, nil
}
func (f *fakeNotifier) MarkRead(context.Context, string) error { return nil }

var (
	_ repository.EmployeeRepository   = (*fakeEmployeeRepo)(nil)
	_ repository.AttendanceRepository = (*fakeAttendanceRepo)(nil)
	_ NotificationService             = (*fakeNotifier)(nil)
)

// --- helpers ---

func admin() session.Identity {
	return session.Identity{Email: "admin@example.com", Role: model.RoleAdmin,
		Permissions: map[string]bool{"add_attendance": true}}
}

func superadmin() session.Identity {
	return session.Identity{Email: "root@example.com", Role: model.RoleSuperadmin}
}

func newAttendanceFixture(policy OverwritePolicy) (AttendanceService, *fakeAttendanceRepo, *fakeNotifier) {
	emps := &fakeEmployeeRepo{byEmpNo: map[string]model.Employee{
		"50709618284": {EmpNo: "50709618284", Name: "A. Kumar", Type: model.EmployeeRegular},
		"APP-01":      {EmpNo: "APP-01", Name: "B. Das", Type: model.EmployeeApprentice},
	}}
	repo := &fakeAttendanceRepo{docs: map[string]*model.Attendance{}}
	notifier := &fakeNotifier{}
	svc := NewAttendanceService(repo, emps, nil, notifier, policy)
	return svc, repo, notifier
}

func validRequest() UpsertAttendanceRequest {
	return UpsertAttendanceRequest{
		EmpNo: "50709618284",
		Month: "2025-07",
		Records: map[string]string{
			"2025-06-11": "P",
			"2025-07-10": "P/8",
		},
	}
}

// --- tests ---

func TestUpsertCreatesNewRecord(t *testing.T) {
	svc, repo, _ := newAttendanceFixture(OverwriteSuperadminOnly)

	att, err := svc.Upsert(context.Background(), admin(), validRequest())
	if err != nil {
		t.Fatalf("Upsert() error: %v", err)
	}
	if att.UpdatedBy != "admin@example.com" {
		t.Errorf("UpdatedBy = %q", att.UpdatedBy)
	}
	if repo.inserts != 1 || repo.replaces != 0 {
		t.Errorf("inserts=%d replaces=%d, want 1/0", repo.inserts, repo.replaces)
	}
}

func TestUpsertNormalizesEmpNo(t *testing.T) {
	svc, repo, _ := newAttendanceFixture(OverwriteSuperadminOnly)

	req := validRequest()
	req.EmpNo = " 50709618284.0 "
	if _, err := svc.Upsert(context.Background(), admin(), req); err != nil {
		t.Fatalf("Upsert() error: %v", err)
	}
	if _, ok := repo.docs[attKey("50709618284", "2025-07")]; !ok {
		t.Fatal("record not stored under normalized emp_no")
	}
}

func TestUpsertUnknownEmployee(t *testing.T) {
	svc, _, _ := newAttendanceFixture(OverwriteSuperadminOnly)

	req := validRequest()
	req.EmpNo = "does-not-exist"
	_, err := svc.Upsert(context.Background(), admin(), req)
	if apperror.KindOf(err) != apperror.NotFound {
		t.Fatalf("error = %v, want not_found", err)
	}
}

func TestUpsertRejectsInvalidBatchBeforeWriting(t *testing.T) {
	svc, repo, _ := newAttendanceFixture(OverwriteSuperadminOnly)

	req := validRequest()
	req.Records["2025-07-11"] = "P" // one day past the regular window
	_, err := svc.Upsert(context.Background(), admin(), req)
	if apperror.KindOf(err) != apperror.Validation {
		t.Fatalf("error = %v, want validation_error", err)
	}
	if len(repo.docs) != 0 {
		t.Fatal("rejected batch was partially persisted")
	}
}

func TestUpsertOverwriteDeniedForAdmin(t *testing.T) {
	svc, repo, notifier := newAttendanceFixture(OverwriteSuperadminOnly)
	ctx := context.Background()

	if _, err := svc.Upsert(ctx, superadmin(), validRequest()); err != nil {
		t.Fatalf("seed Upsert() error: %v", err)
	}

	req := validRequest()
	req.Records = map[string]string{"2025-07-01": "A"}
	_, err := svc.Upsert(ctx, admin(), req)
	if apperror.KindOf(err) != apperror.Conflict {
		t.Fatalf("error = %v, want conflict", err)
	}

	// The stored record is untouched and superadmins were notified.
	stored := repo.docs[attKey("50709618284", "2025-07")]
	if _, ok := stored.Records["2025-07-01"]; ok {
		t.Fatal("denied overwrite mutated the record")
	}
	if len(notifier.events) != 1 || notifier.events[0].Event != model.EventOverwriteDenied {
		t.Fatalf("notifications = %+v", notifier.events)
	}
}

func TestUpsertOverwriteAllowedForSuperadmin(t *testing.T) {
	svc, repo, notifier := newAttendanceFixture(OverwriteSuperadminOnly)
	ctx := context.Background()

	if _, err := svc.Upsert(ctx, admin(), validRequest()); err != nil {
		t.Fatalf("seed Upsert() error: %v", err)
	}

	req := validRequest()
	req.Records = map[string]string{"2025-07-01": "A"}
	att, err := svc.Upsert(ctx, superadmin(), req)
	if err != nil {
		t.Fatalf("Upsert() error: %v", err)
	}
	if att.UpdatedBy != "root@example.com" {
		t.Errorf("UpdatedBy = %q", att.UpdatedBy)
	}
	if repo.replaces != 1 {
		t.Errorf("replaces = %d, want 1", repo.replaces)
	}
	if len(notifier.events) != 0 {
		t.Errorf("unexpected notifications: %+v", notifier.events)
	}
}

func TestUpsertOverwriteAnyAdminPolicy(t *testing.T) {
	svc, repo, _ := newAttendanceFixture(OverwriteAnyAdmin)
	ctx := context.Background()

	if _, err := svc.Upsert(ctx, admin(), validRequest()); err != nil {
		t.Fatalf("seed Upsert() error: %v", err)
	}

	req := validRequest()
	req.Records = map[string]string{"2025-07-02": "CL"}
	if _, err := svc.Upsert(ctx, admin(), req); err != nil {
		t.Fatalf("Upsert() under any_admin policy: %v", err)
	}
	if repo.replaces != 1 {
		t.Errorf("replaces = %d, want 1", repo.replaces)
	}
}

func TestUpsertConcurrentInsertSurfacesConflict(t *testing.T) {
	svc, repo, _ := newAttendanceFixture(OverwriteSuperadminOnly)
	repo.failInsert = gorm.ErrDuplicatedKey

	_, err := svc.Upsert(context.Background(), admin(), validRequest())
	if apperror.KindOf(err) != apperror.Conflict {
		t.Fatalf("error = %v, want conflict", err)
	}
}

func TestUpsertApprenticeUsesFullMonthWindow(t *testing.T) {
	svc, _, _ := newAttendanceFixture(OverwriteSuperadminOnly)
	ctx := context.Background()

	req := UpsertAttendanceRequest{
		EmpNo: "APP-01",
		Month: "2025-07",
		Records: map[string]string{
			"2025-07-01": "P",
			"2025-07-31": "REL",
		},
	}
	if _, err := svc.Upsert(ctx, admin(), req); err != nil {
		t.Fatalf("Upsert() error: %v", err)
	}

	// A date valid for regulars but outside the apprentice month fails.
	req.Records = map[string]string{"2025-06-30": "P"}
	req.Month = "2025-08"
	if _, err := svc.Upsert(ctx, admin(), req); apperror.KindOf(err) != apperror.Validation {
		t.Fatalf("error = %v, want validation_error", err)
	}
}

func TestParseOverwritePolicy(t *testing.T) {
	if ParseOverwritePolicy("any_admin") != OverwriteAnyAdmin {
		t.Error("any_admin not recognized")
	}
	for _, s := range []string{"", "superadmin", "bogus"} {
		if ParseOverwritePolicy(s) != OverwriteSuperadminOnly {
			t.Errorf("ParseOverwritePolicy(%q) did not default to superadmin-only", s)
		}
	}
}
