package spreadsheet

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
)

// EmployeeRow is one parsed line of an uploaded employee sheet.
type EmployeeRow struct {
	EmpNo       string
	Name        string
	Designation string
	Type        string
}

// HolidayRow is one parsed line of an uploaded holiday sheet.
type HolidayRow struct {
	Date string // YYYY-MM-DD
	Name string
}

// cell returns the trimmed value at index i, or "" past the row's end.
// Spreadsheet libraries drop trailing empty cells, so short rows are normal.
func cell(row []string, i int) string {
	if i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func firstSheetRows(r io.Reader) ([][]string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open spreadsheet: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("spreadsheet has no sheets")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheets[0], err)
	}
	return rows, nil
}

// looksLikeHeader reports whether a first row is a column header rather than
// data, so sheets with and without headers both import.
func looksLikeHeader(first string) bool {
	lower := strings.ToLower(first)
	return strings.Contains(lower, "emp") || strings.Contains(lower, "no.") ||
		strings.Contains(lower, "date") || strings.Contains(lower, "s.no")
}

// ParseEmployeeSheet reads rows of (emp_no, name, designation, type) from the
// first sheet. Blank rows are skipped; a header row is detected and skipped.
func ParseEmployeeSheet(r io.Reader) ([]EmployeeRow, error) {
	rows, err := firstSheetRows(r)
	if err != nil {
		return nil, err
	}

	var out []EmployeeRow
	for i, row := range rows {
		empNo := cell(row, 0)
		if empNo == "" {
			continue
		}
		if i == 0 && looksLikeHeader(empNo) {
			continue
		}
		out = append(out, EmployeeRow{
			EmpNo:       empNo,
			Name:        cell(row, 1),
			Designation: cell(row, 2),
			Type:        strings.ToLower(cell(row, 3)),
		})
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("no employee rows found in sheet")
	}
	return out, nil
}

// ParseHolidaySheet reads rows of (date, name) from the first sheet. Dates
// must be YYYY-MM-DD.
func ParseHolidaySheet(r io.Reader) ([]HolidayRow, error) {
	rows, err := firstSheetRows(r)
	if err != nil {
		return nil, err
	}

	var out []HolidayRow
	for i, row := range rows {
		date := cell(row, 0)
		if date == "" {
			continue
		}
		if i == 0 && looksLikeHeader(date) {
			continue
		}
		if _, err := time.Parse("2006-01-02", date); err != nil {
			return nil, fmt.Errorf("row %d: invalid holiday date %q, expected YYYY-MM-DD", i+1, date)
		}
		out = append(out, HolidayRow{Date: date, Name: cell(row, 1)})
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("no holiday rows found in sheet")
	}
	return out, nil
}
