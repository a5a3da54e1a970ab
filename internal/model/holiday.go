package model

import (
	"time"

	"github.com/google/uuid"
)

// Holiday is a single calendar holiday. The set is bulk-replaced on every
// upload, so it always reflects the most recently imported sheet.
type Holiday struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Date      string    `gorm:"type:varchar(10);not null;index" json:"date"` // YYYY-MM-DD
	Name      string    `gorm:"type:varchar(255);not null" json:"name"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}
