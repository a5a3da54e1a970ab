package spreadsheet

import (
	"bytes"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"
)

// MusterRoll is the in-memory grid rendered into the attendance export.
type MusterRoll struct {
	Title      string
	Start, End time.Time                    // inclusive date range of the columns
	Employees  []EmployeeRow                // row order preserved
	Attendance map[string]map[string]string // emp_no -> date (YYYY-MM-DD) -> code
	Holidays   map[string]bool              // YYYY-MM-DD
	Legend     map[string]string            // code -> meaning
	LegendKeys []string                     // display order of Legend
}

const sheetName = "Attendance"

// Render produces the muster-roll spreadsheet: a header band, one row per
// employee with a column per day, Sunday/holiday shading, and the legend
// footer with the signature line.
func (m MusterRoll) Render() ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	f.SetSheetName(f.GetSheetName(0), sheetName)

	bold, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return nil, err
	}
	centered, err := f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Border:    thinBorder(),
	})
	if err != nil {
		return nil, err
	}
	sundayStyle, err := f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Border:    thinBorder(),
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"DDDDDD"}},
	})
	if err != nil {
		return nil, err
	}
	holidayStyle, err := f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Border:    thinBorder(),
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"FF9999"}},
	})
	if err != nil {
		return nil, err
	}

	var dates []time.Time
	for d := m.Start; !d.After(m.End); d = d.AddDate(0, 0, 1) {
		dates = append(dates, d)
	}

	// Title band across the sheet.
	lastCol, _ := excelize.ColumnNumberToName(4 + len(dates))
	if err := f.MergeCell(sheetName, "A1", lastCol+"1"); err != nil {
		return nil, err
	}
	if err := f.SetCellValue(sheetName, "A1", m.Title); err != nil {
		return nil, err
	}
	_ = f.SetCellStyle(sheetName, "A1", "A1", bold)

	// Header row.
	header := []interface{}{"S.No", "NAME", "DESIGNATION", "EMPLOYEE NO."}
	for _, d := range dates {
		header = append(header, d.Format("02/01"))
	}
	if err := f.SetSheetRow(sheetName, "A2", &header); err != nil {
		return nil, err
	}
	_ = f.SetCellStyle(sheetName, "A2", fmt.Sprintf("%s2", lastCol), bold)

	// Employee rows.
	for i, emp := range m.Employees {
		rowNum := 3 + i
		rowVals := []interface{}{i + 1, emp.Name, emp.Designation, emp.EmpNo}
		if err := f.SetSheetRow(sheetName, fmt.Sprintf("A%d", rowNum), &rowVals); err != nil {
			return nil, err
		}

		records := m.Attendance[emp.EmpNo]
		for col, d := range dates {
			dateStr := d.Format("2006-01-02")
			cellRef, _ := excelize.CoordinatesToCellName(5+col, rowNum)
			if code, ok := records[dateStr]; ok && code != "" {
				if err := f.SetCellValue(sheetName, cellRef, code); err != nil {
					return nil, err
				}
			}

			style := centered
			if d.Weekday() == time.Sunday {
				style = sundayStyle
			}
			if m.Holidays[dateStr] {
				style = holidayStyle
			}
			_ = f.SetCellStyle(sheetName, cellRef, cellRef, style)
		}
	}

	// Legend footer.
	row := 3 + len(m.Employees) + 2
	if err := f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), "LEGENDS:"); err != nil {
		return nil, err
	}
	_ = f.SetCellStyle(sheetName, fmt.Sprintf("A%d", row), fmt.Sprintf("A%d", row), bold)
	row++
	for _, code := range m.LegendKeys {
		if err := f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), code+" = "+m.Legend[code]); err != nil {
			return nil, err
		}
		row++
	}

	row++
	_ = f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), "Note: The above abstract attendance particulars are taken from the attendance register.")
	row += 2
	_ = f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), "JE: ______________   SSEE: ______________   SSE/INCHARGE: ______________")

	// Readable column widths: wide name columns, narrow day columns.
	_ = f.SetColWidth(sheetName, "A", "A", 6)
	_ = f.SetColWidth(sheetName, "B", "C", 24)
	_ = f.SetColWidth(sheetName, "D", "D", 16)
	if len(dates) > 0 {
		firstDay, _ := excelize.ColumnNumberToName(5)
		_ = f.SetColWidth(sheetName, firstDay, lastCol, 6)
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func thinBorder() []excelize.Border {
	return []excelize.Border{
		{Type: "left", Style: 1},
		{Type: "right", Style: 1},
		{Type: "top", Style: 1},
		{Type: "bottom", Style: 1},
	}
}
