package model

import (
	"time"

	"github.com/google/uuid"
)

// Notification event types.
const (
	EventOverwriteDenied  = "OVERWRITE_DENIED"
	EventSheetImported    = "SHEET_IMPORTED"
	EventHolidaysReplaced = "HOLIDAYS_REPLACED"
)

// Notification is an event surfaced to superadmins, e.g. an admin attempting
// to overwrite an existing attendance record without the rights to.
type Notification struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Event     string    `gorm:"type:varchar(50);not null;index" json:"event"`
	Message   string    `gorm:"type:text;not null" json:"message"`
	Actor     string    `gorm:"type:varchar(255)" json:"actor"` // email of the user who triggered it
	EmpNo     string    `gorm:"type:varchar(50)" json:"emp_no,omitempty"`
	Month     string    `gorm:"type:varchar(7)" json:"month,omitempty"`
	Read      bool      `gorm:"default:false" json:"read"`
	CreatedAt time.Time `gorm:"autoCreateTime;index" json:"created_at"`
}
