package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Session is one row of the database-backed session store. The token is the
// only lookup key clients ever present; email+device_tag exists to support
// per-device session reuse on login.
type Session struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Token          string    `gorm:"type:varchar(128);uniqueIndex;not null" json:"-"`
	Email          string    `gorm:"type:varchar(255);not null;index:idx_sessions_email_device" json:"email"`
	DeviceTag      string    `gorm:"type:text;index:idx_sessions_email_device" json:"device_tag"`
	CreatedAt      time.Time `gorm:"autoCreateTime" json:"created_at"`
	LastAccessedAt time.Time `gorm:"not null" json:"last_accessed_at"`
	ExpiresAt      time.Time `gorm:"not null;index" json:"expires_at"`
}

// BeforeCreate fills the ID application-side so the table works on any
// database the tests or deployment point at.
func (s *Session) BeforeCreate(*gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}
