package attendance

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"attendify/internal/model"
	"attendify/pkg/apperror"

	"github.com/shopspring/decimal"
)

// Canonical formats. Dates are stored and submitted as YYYY-MM-DD; months as
// YYYY-MM. Anything else is rejected.
const (
	DateFormat  = "2006-01-02"
	MonthFormat = "2006-01"
)

// Window is the inclusive date range a submission must fall into.
type Window struct {
	Start time.Time
	End   time.Time
}

// Contains reports whether d falls inside the window, inclusive on both ends.
func (w Window) Contains(d time.Time) bool {
	return !d.Before(w.Start) && !d.After(w.End)
}

// ParseMonth validates a YYYY-MM month string.
func ParseMonth(month string) (time.Time, error) {
	t, err := time.Parse(MonthFormat, month)
	if err != nil {
		return time.Time{}, apperror.New(apperror.Validation, "invalid month, expected YYYY-MM")
	}
	return t, nil
}

// WindowFor computes the valid submission window for an employee type and
// target month. Regular staff submit for the 11th of the prior month through
// the 10th of the target month; apprentices for the full calendar month.
// time.Date normalizes out-of-range months, so the January and December
// rollovers need no special casing.
func WindowFor(empType, month string) (Window, error) {
	m, err := ParseMonth(month)
	if err != nil {
		return Window{}, err
	}
	year, mon := m.Year(), m.Month()

	if empType == model.EmployeeApprentice {
		start := time.Date(year, mon, 1, 0, 0, 0, 0, time.UTC)
		end := time.Date(year, mon+1, 0, 0, 0, 0, 0, time.UTC) // day 0 = last day of mon
		return Window{Start: start, End: end}, nil
	}

	start := time.Date(year, mon-1, 11, 0, 0, 0, 0, time.UTC)
	end := time.Date(year, mon, 10, 0, 0, 0, 0, time.UTC)
	return Window{Start: start, End: end}, nil
}

// codePrefix returns the code portion before any "/hours" suffix.
func codePrefix(code string) string {
	if i := strings.IndexByte(code, '/'); i >= 0 {
		return code[:i]
	}
	return code
}

// validCode reports whether code matches a legend entry by prefix, ignoring
// any "/hours" suffix. "P" and "P/8" both match "P"; "XX" matches nothing.
func validCode(legend map[string]string, code string) bool {
	base := codePrefix(code)
	if base == "" {
		return false
	}
	for key := range legend {
		if strings.HasPrefix(base, key) {
			return true
		}
	}
	return false
}

// ValidateRecords checks a full date -> code submission against the window
// and legend for the employee type. The batch is all-or-nothing: the first
// failure rejects the whole submission and nothing should be persisted.
func ValidateRecords(empType, month string, records map[string]string) error {
	if len(records) == 0 {
		return apperror.New(apperror.Validation, "no attendance records submitted")
	}

	window, err := WindowFor(empType, month)
	if err != nil {
		return err
	}
	legend := LegendFor(empType)

	// Deterministic error ordering for identical submissions.
	dates := make([]string, 0, len(records))
	for d := range records {
		dates = append(dates, d)
	}
	sort.Strings(dates)

	for _, dateStr := range dates {
		d, err := time.Parse(DateFormat, dateStr)
		if err != nil {
			return apperror.New(apperror.Validation, fmt.Sprintf("invalid date %q, expected YYYY-MM-DD", dateStr))
		}
		if !window.Contains(d) {
			return apperror.New(apperror.Validation, fmt.Sprintf(
				"date %s outside the valid window %s to %s",
				dateStr, window.Start.Format(DateFormat), window.End.Format(DateFormat)))
		}
		if !validCode(legend, records[dateStr]) {
			return apperror.New(apperror.Validation, fmt.Sprintf("unrecognized attendance code %q on %s", records[dateStr], dateStr))
		}
	}
	return nil
}

// Summary is the read-side reduction of a records map: occurrence counts per
// code prefix plus total hours for codes carrying an "/hours" suffix.
type Summary struct {
	Counts map[string]int             `json:"counts"`
	Hours  map[string]decimal.Decimal `json:"hours,omitempty"`
}

// Summarize computes the per-code frequency of a records map. Hour suffixes
// may be fractional ("P/7.5"); unparseable suffixes count toward the code but
// contribute no hours.
func Summarize(records map[string]string) Summary {
	counts := make(map[string]int)
	hours := make(map[string]decimal.Decimal)

	for _, code := range records {
		base := codePrefix(code)
		if base == "" {
			continue
		}
		counts[base]++

		if i := strings.IndexByte(code, '/'); i >= 0 {
			if h, err := decimal.NewFromString(code[i+1:]); err == nil {
				hours[base] = hours[base].Add(h)
			}
		}
	}

	return Summary{Counts: counts, Hours: hours}
}
