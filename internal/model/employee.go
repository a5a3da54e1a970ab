package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Employee types. The type decides which attendance legend and window apply.
const (
	EmployeeRegular    = "regular"
	EmployeeApprentice = "apprentice"
)

// Employee is a staff member tracked for attendance and shifts.
type Employee struct {
	ID          uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	EmpNo       string         `gorm:"type:varchar(50);uniqueIndex;not null" json:"emp_no"`
	Name        string         `gorm:"type:varchar(255);not null" json:"name"`
	Designation string         `gorm:"type:varchar(255)" json:"designation"`
	Type        string         `gorm:"type:varchar(20);not null;index" json:"type"` // regular, apprentice
	CreatedAt   time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

// NormalizeEmpNo canonicalizes an employee number: trims whitespace and strips
// the trailing ".0" that spreadsheet numeric cells leave behind. Idempotent.
func NormalizeEmpNo(empNo string) string {
	empNo = strings.TrimSpace(empNo)
	empNo = strings.TrimSuffix(empNo, ".0")
	return empNo
}

// ValidEmployeeType reports whether t is one of the recognized employee types.
func ValidEmployeeType(t string) bool {
	return t == EmployeeRegular || t == EmployeeApprentice
}
