package session

import (
	"context"
	"errors"
	"log"
	"time"

	"attendify/internal/model"
	"attendify/internal/permission"
	"attendify/pkg/apperror"

	"gorm.io/gorm"
)

// GormStore persists sessions in the shared database so multiple instances
// see the same tokens. The expiry refresh is a single-row UPDATE, so two
// concurrent resolves on one token both succeed with last-write-wins on
// last_accessed_at.
type GormStore struct {
	db  *gorm.DB
	ttl time.Duration
	now func() time.Time
}

// NewGormStore builds a database-backed store.
func NewGormStore(db *gorm.DB, ttl time.Duration) *GormStore {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &GormStore{db: db, ttl: ttl, now: time.Now}
}

// Create reuses an unexpired session for the same (email, device_tag) pair
// instead of minting a new token. Logging out on one tab therefore logs out
// every tab on that device.
func (s *GormStore) Create(ctx context.Context, identity Identity, deviceTag string) (string, error) {
	now := s.now()

	if deviceTag != "" {
		var existing model.Session
		err := s.db.WithContext(ctx).
			Where("email = ? AND device_tag = ? AND expires_at > ?", identity.Email, deviceTag, now).
			First(&existing).Error
		if err == nil {
			return existing.Token, nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return "", apperror.Wrap(apperror.Upstream, "failed to look up existing session", err)
		}
	}

	token, err := newToken()
	if err != nil {
		return "", err
	}

	row := model.Session{
		Token:          token,
		Email:          identity.Email,
		DeviceTag:      deviceTag,
		LastAccessedAt: now,
		ExpiresAt:      now.Add(s.ttl),
	}
	if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
		return "", apperror.Wrap(apperror.Upstream, "failed to create session", err)
	}
	return token, nil
}

func (s *GormStore) Resolve(ctx context.Context, token string) (Identity, error) {
	now := s.now()

	var row model.Session
	err := s.db.WithContext(ctx).Where("token = ?", token).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return Identity{}, errUnauthenticated()
	}
	if err != nil {
		return Identity{}, apperror.Wrap(apperror.Upstream, "failed to look up session", err)
	}

	if !now.Before(row.ExpiresAt) {
		// Lazy eviction; a failed delete just leaves an expired row for Sweep.
		if err := s.db.WithContext(ctx).Where("token = ?", token).Delete(&model.Session{}).Error; err != nil {
			log.Println("WARNING: failed to evict expired session:", err)
		}
		return Identity{}, errUnauthenticated()
	}

	// Sliding renewal in one UPDATE on the token row.
	err = s.db.WithContext(ctx).Model(&model.Session{}).
		Where("token = ?", token).
		Updates(map[string]interface{}{
			"last_accessed_at": now,
			"expires_at":       now.Add(s.ttl),
		}).Error
	if err != nil {
		return Identity{}, apperror.Wrap(apperror.Upstream, "failed to refresh session", err)
	}

	// Re-merge the identity from the user record so permission edits made
	// after login apply immediately.
	var user model.User
	err = s.db.WithContext(ctx).Where("email = ?", row.Email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		// Account deleted since login: drop the orphaned session.
		if err := s.db.WithContext(ctx).Where("token = ?", token).Delete(&model.Session{}).Error; err != nil {
			log.Println("WARNING: failed to drop orphaned session:", err)
		}
		return Identity{}, errUnauthenticated()
	}
	if err != nil {
		return Identity{}, apperror.Wrap(apperror.Upstream, "failed to load session owner", err)
	}

	return Identity{
		Email:       user.Email,
		Name:        user.Name,
		Role:        user.Role,
		Permissions: permission.Effective(user.Role, user.PermissionsAsBools()),
	}, nil
}

func (s *GormStore) Revoke(ctx context.Context, token string) (bool, error) {
	var row model.Session
	err := s.db.WithContext(ctx).Where("token = ?", token).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, apperror.Wrap(apperror.Upstream, "failed to look up session", err)
	}

	wasActive := s.now().Before(row.ExpiresAt)
	if err := s.db.WithContext(ctx).Where("token = ?", token).Delete(&model.Session{}).Error; err != nil {
		return false, apperror.Wrap(apperror.Upstream, "failed to revoke session", err)
	}
	return wasActive, nil
}

func (s *GormStore) Sweep(ctx context.Context) (int64, error) {
	res := s.db.WithContext(ctx).Where("expires_at < ?", s.now()).Delete(&model.Session{})
	if res.Error != nil {
		return 0, apperror.Wrap(apperror.Upstream, "failed to sweep sessions", res.Error)
	}
	return res.RowsAffected, nil
}
