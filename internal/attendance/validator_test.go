package attendance

import (
	"testing"
	"time"

	"attendify/internal/model"
	"attendify/pkg/apperror"

	"github.com/shopspring/decimal"
)

func date(s string) time.Time {
	d, err := time.Parse(DateFormat, s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestWindowFor(t *testing.T) {
	tests := []struct {
		name      string
		empType   string
		month     string
		wantStart string
		wantEnd   string
	}{
		{"apprentice mid-year", model.EmployeeApprentice, "2025-07", "2025-07-01", "2025-07-31"},
		{"apprentice february", model.EmployeeApprentice, "2025-02", "2025-02-01", "2025-02-28"},
		{"apprentice leap february", model.EmployeeApprentice, "2024-02", "2024-02-01", "2024-02-29"},
		{"regular mid-year", model.EmployeeRegular, "2025-07", "2025-06-11", "2025-07-10"},
		{"regular january rollover", model.EmployeeRegular, "2025-01", "2024-12-11", "2025-01-10"},
		{"regular december", model.EmployeeRegular, "2025-12", "2025-11-11", "2025-12-10"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w, err := WindowFor(tc.empType, tc.month)
			if err != nil {
				t.Fatalf("WindowFor() error: %v", err)
			}
			if got := w.Start.Format(DateFormat); got != tc.wantStart {
				t.Errorf("start = %s, want %s", got, tc.wantStart)
			}
			if got := w.End.Format(DateFormat); got != tc.wantEnd {
				t.Errorf("end = %s, want %s", got, tc.wantEnd)
			}
		})
	}
}

func TestWindowForRejectsBadMonth(t *testing.T) {
	for _, month := range []string{"2025-13", "2025-7", "July 2025", "2025/07", ""} {
		if _, err := WindowFor(model.EmployeeRegular, month); err == nil {
			t.Errorf("WindowFor(%q) accepted invalid month", month)
		}
	}
}

func TestWindowContainsBoundaries(t *testing.T) {
	tests := []struct {
		name    string
		empType string
		month   string
		date    string
		want    bool
	}{
		{"apprentice first day", model.EmployeeApprentice, "2025-07", "2025-07-01", true},
		{"apprentice last day", model.EmployeeApprentice, "2025-07", "2025-07-31", true},
		{"apprentice day before", model.EmployeeApprentice, "2025-07", "2025-06-30", false},
		{"apprentice day after", model.EmployeeApprentice, "2025-07", "2025-08-01", false},
		{"regular window start", model.EmployeeRegular, "2025-07", "2025-06-11", true},
		{"regular window end", model.EmployeeRegular, "2025-07", "2025-07-10", true},
		{"regular before start", model.EmployeeRegular, "2025-07", "2025-06-10", false},
		{"regular after end", model.EmployeeRegular, "2025-07", "2025-07-11", false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w, err := WindowFor(tc.empType, tc.month)
			if err != nil {
				t.Fatalf("WindowFor() error: %v", err)
			}
			if got := w.Contains(date(tc.date)); got != tc.want {
				t.Fatalf("Contains(%s) = %v, want %v", tc.date, got, tc.want)
			}
		})
	}
}

func TestValidateRecords(t *testing.T) {
	tests := []struct {
		name     string
		empType  string
		month    string
		records  map[string]string
		wantKind apperror.Kind
		wantOK   bool
	}{
		{
			name:    "plain code accepted",
			empType: model.EmployeeRegular,
			month:   "2025-07",
			records: map[string]string{"2025-07-01": "P"},
			wantOK:  true,
		},
		{
			name:    "code with hours accepted",
			empType: model.EmployeeRegular,
			month:   "2025-07",
			records: map[string]string{"2025-07-01": "P/8"},
			wantOK:  true,
		},
		{
			name:    "multi-letter code accepted",
			empType: model.EmployeeRegular,
			month:   "2025-06",
			records: map[string]string{"2025-06-01": "COCL"},
			wantOK:  true,
		},
		{
			name:     "unknown code rejected for regular",
			empType:  model.EmployeeRegular,
			month:    "2025-07",
			records:  map[string]string{"2025-07-01": "XX"},
			wantKind: apperror.Validation,
		},
		{
			name:     "unknown code rejected for apprentice",
			empType:  model.EmployeeApprentice,
			month:    "2025-07",
			records:  map[string]string{"2025-07-01": "XX"},
			wantKind: apperror.Validation,
		},
		{
			name:     "regular-only code rejected for apprentice",
			empType:  model.EmployeeApprentice,
			month:    "2025-07",
			records:  map[string]string{"2025-07-05": "LAP"},
			wantKind: apperror.Validation,
		},
		{
			name:     "date before regular window",
			empType:  model.EmployeeRegular,
			month:    "2025-07",
			records:  map[string]string{"2025-06-10": "P"},
			wantKind: apperror.Validation,
		},
		{
			name:     "date after regular window",
			empType:  model.EmployeeRegular,
			month:    "2025-07",
			records:  map[string]string{"2025-07-11": "P"},
			wantKind: apperror.Validation,
		},
		{
			name:     "wrong date format rejected",
			empType:  model.EmployeeRegular,
			month:    "2025-07",
			records:  map[string]string{"01-07-2025": "P"},
			wantKind: apperror.Validation,
		},
		{
			name:     "one bad entry rejects the batch",
			empType:  model.EmployeeRegular,
			month:    "2025-07",
			records:  map[string]string{"2025-06-20": "P", "2025-07-11": "A"},
			wantKind: apperror.Validation,
		},
		{
			name:     "empty batch rejected",
			empType:  model.EmployeeRegular,
			month:    "2025-07",
			records:  map[string]string{},
			wantKind: apperror.Validation,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateRecords(tc.empType, tc.month, tc.records)
			if tc.wantOK {
				if err != nil {
					t.Fatalf("ValidateRecords() error: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatal("ValidateRecords() accepted invalid submission")
			}
			if got := apperror.KindOf(err); got != tc.wantKind {
				t.Fatalf("error kind = %q, want %q", got, tc.wantKind)
			}
		})
	}
}

func TestSummarize(t *testing.T) {
	records := map[string]string{
		"2025-07-01": "P",
		"2025-07-02": "P/8",
		"2025-07-03": "P/7.5",
		"2025-07-04": "A",
		"2025-07-05": "CL",
	}

	s := Summarize(records)

	if s.Counts["P"] != 3 {
		t.Errorf("counts[P] = %d, want 3", s.Counts["P"])
	}
	if s.Counts["A"] != 1 || s.Counts["CL"] != 1 {
		t.Errorf("counts = %v", s.Counts)
	}
	if want := decimal.RequireFromString("15.5"); !s.Hours["P"].Equal(want) {
		t.Errorf("hours[P] = %s, want %s", s.Hours["P"], want)
	}
	if _, ok := s.Hours["A"]; ok {
		t.Error("hours recorded for suffix-less code")
	}
}

func TestSummarizeEmpty(t *testing.T) {
	s := Summarize(nil)
	if len(s.Counts) != 0 || len(s.Hours) != 0 {
		t.Fatalf("Summarize(nil) = %+v, want empty", s)
	}
}
