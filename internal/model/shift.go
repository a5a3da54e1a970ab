package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Shift stores one employee's shift assignment for a month, with audit fields
// recording who wrote it last. One row per (emp_no, month).
type Shift struct {
	ID        uuid.UUID         `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	EmpNo     string            `gorm:"type:varchar(50);not null;uniqueIndex:idx_shifts_emp_month" json:"emp_no"`
	Month     string            `gorm:"type:varchar(7);not null;uniqueIndex:idx_shifts_emp_month" json:"month"`
	Payload   datatypes.JSONMap `gorm:"type:jsonb;not null" json:"payload"`
	UpdatedBy string            `gorm:"type:varchar(255);not null" json:"updated_by"`
	CreatedAt time.Time         `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time         `gorm:"autoUpdateTime" json:"updated_at"`
}
