package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Roles recognized by the backend. Superadmin bypasses the permission map.
const (
	RoleAdmin      = "admin"
	RoleSuperadmin = "superadmin"
)

// User represents an admin account allowed to operate the backend.
// Regular employees are not users — they only appear as Employee rows.
type User struct {
	ID          uuid.UUID         `gorm:"type:uuid;primaryKey" json:"id"`
	Email       string            `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	Name        string            `gorm:"type:varchar(255)" json:"name"`
	Picture     string            `gorm:"type:text" json:"picture,omitempty"`
	Role        string            `gorm:"type:varchar(20);not null" json:"role"` // admin, superadmin
	Permissions datatypes.JSONMap `gorm:"type:jsonb" json:"permissions"`         // capability -> bool, admins only
	Password    string            `gorm:"type:varchar(255)" json:"-"`            // bcrypt hash, bootstrap superadmin only
	CreatedAt   time.Time         `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time         `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt   gorm.DeletedAt    `gorm:"index" json:"-"`
}

// BeforeCreate fills the ID application-side so the table works on any
// database the tests or deployment point at.
func (u *User) BeforeCreate(*gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// PermissionsAsBools converts the stored JSON permission map into
// capability -> bool, ignoring non-boolean values.
func (u *User) PermissionsAsBools() map[string]bool {
	out := make(map[string]bool, len(u.Permissions))
	for k, v := range u.Permissions {
		if b, ok := v.(bool); ok {
			out[k] = b
		}
	}
	return out
}
