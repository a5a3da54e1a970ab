package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Attendance holds one employee's attendance for one month. Records maps a
// date string (YYYY-MM-DD) to an attendance code, optionally suffixed with
// hours ("P/8"). The composite unique index enforces one document per
// (emp_no, month) so a losing concurrent insert fails instead of silently
// overwriting.
type Attendance struct {
	ID        uuid.UUID         `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	EmpNo     string            `gorm:"type:varchar(50);not null;uniqueIndex:idx_attendance_emp_month" json:"emp_no"`
	Month     string            `gorm:"type:varchar(7);not null;uniqueIndex:idx_attendance_emp_month" json:"month"` // YYYY-MM
	Type      string            `gorm:"type:varchar(20);not null;index" json:"type"`
	Records   datatypes.JSONMap `gorm:"type:jsonb;not null" json:"records"`
	UpdatedBy string            `gorm:"type:varchar(255)" json:"updated_by"`
	CreatedAt time.Time         `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time         `gorm:"autoUpdateTime" json:"updated_at"`
}

// RecordsAsStrings converts the stored JSON map into date -> code strings,
// dropping any non-string values a raw document might carry.
func (a *Attendance) RecordsAsStrings() map[string]string {
	out := make(map[string]string, len(a.Records))
	for date, v := range a.Records {
		if code, ok := v.(string); ok {
			out[date] = code
		}
	}
	return out
}
