package service

import (
	"context"
	"errors"

	"attendify/internal/model"
	"attendify/internal/permission"
	"attendify/internal/repository"
	"attendify/internal/session"
	"attendify/pkg/apperror"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type AddAdminRequest struct {
	Email       string          `json:"email" binding:"required,email"`
	Name        string          `json:"name"`
	Permissions map[string]bool `json:"permissions"`
}

type SetPermissionsRequest struct {
	Permissions map[string]bool `json:"permissions" binding:"required"`
}

// AdminResponse is the API shape of an admin account.
type AdminResponse struct {
	Email       string          `json:"email"`
	Name        string          `json:"name"`
	Role        string          `json:"role"`
	Permissions map[string]bool `json:"permissions"`
	CreatedAt   string          `json:"created_at"`
}

// UserService manages admin accounts and their capability grants. Every
// mutation requires a superadmin actor; the middleware gates the routes and
// the service re-checks, since the role rule is a domain invariant, not a
// transport concern.
type UserService interface {
	ListAdmins(ctx context.Context, page, limit int) ([]AdminResponse, int64, error)
	AddAdmin(ctx context.Context, actor session.Identity, req AddAdminRequest) (*AdminResponse, error)
	SetPermissions(ctx context.Context, actor session.Identity, email string, req SetPermissionsRequest) (*AdminResponse, error)
	DeleteAdmin(ctx context.Context, actor session.Identity, email string) error
}

type userService struct {
	repo repository.UserRepository
}

// NewUserService returns a new instance of UserService.
func NewUserService(repo repository.UserRepository) UserService {
	return &userService{repo: repo}
}

func toAdminResponse(u *model.User) *AdminResponse {
	return &AdminResponse{
		Email:       u.Email,
		Name:        u.Name,
		Role:        u.Role,
		Permissions: permission.Effective(u.Role, u.PermissionsAsBools()),
		CreatedAt:   u.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}

func toJSONMap(perms map[string]bool) datatypes.JSONMap {
	out := datatypes.JSONMap{}
	for k, v := range perms {
		out[k] = v
	}
	return out
}

func (s *userService) ListAdmins(ctx context.Context, page, limit int) ([]AdminResponse, int64, error) {
	users, total, err := s.repo.List(ctx, page, limit)
	if err != nil {
		return nil, 0, apperror.Wrap(apperror.Upstream, "failed to list admin accounts", err)
	}

	res := make([]AdminResponse, 0, len(users))
	for i := range users {
		res = append(res, *toAdminResponse(&users[i]))
	}
	return res, total, nil
}

func (s *userService) AddAdmin(ctx context.Context, actor session.Identity, req AddAdminRequest) (*AdminResponse, error) {
	if !actor.IsSuperadmin() {
		return nil, apperror.New(apperror.Forbidden, "only a superadmin can add admin accounts")
	}

	if _, err := s.repo.GetByEmail(ctx, req.Email); err == nil {
		return nil, apperror.New(apperror.Conflict, "an account with this email already exists")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperror.Wrap(apperror.Upstream, "failed to check existing account", err)
	}

	user := &model.User{
		Email:       req.Email,
		Name:        req.Name,
		Role:        model.RoleAdmin,
		Permissions: toJSONMap(permission.Merge(nil, req.Permissions)),
	}
	if err := s.repo.Create(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperror.New(apperror.Conflict, "an account with this email already exists")
		}
		return nil, apperror.Wrap(apperror.Upstream, "failed to create admin account", err)
	}

	return toAdminResponse(user), nil
}

// SetPermissions overwrites an admin's capability flags. Superadmin targets
// are not editable; unknown capability keys are ignored, not errors.
func (s *userService) SetPermissions(ctx context.Context, actor session.Identity, email string, req SetPermissionsRequest) (*AdminResponse, error) {
	if !actor.IsSuperadmin() {
		return nil, apperror.New(apperror.Forbidden, "only a superadmin can edit permissions")
	}

	user, err := s.repo.GetByEmail(ctx, email)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperror.New(apperror.NotFound, "admin account not found")
	}
	if err != nil {
		return nil, apperror.Wrap(apperror.Upstream, "failed to look up account", err)
	}

	if user.Role == model.RoleSuperadmin {
		return nil, apperror.New(apperror.Validation, "superadmin permissions are not editable")
	}

	user.Permissions = toJSONMap(permission.Merge(user.PermissionsAsBools(), req.Permissions))
	if err := s.repo.Update(ctx, user); err != nil {
		return nil, apperror.Wrap(apperror.Upstream, "failed to update permissions", err)
	}

	return toAdminResponse(user), nil
}

func (s *userService) DeleteAdmin(ctx context.Context, actor session.Identity, email string) error {
	if !actor.IsSuperadmin() {
		return apperror.New(apperror.Forbidden, "only a superadmin can delete admin accounts")
	}
	if actor.Email == email {
		return apperror.New(apperror.Validation, "cannot delete your own account")
	}

	user, err := s.repo.GetByEmail(ctx, email)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperror.New(apperror.NotFound, "admin account not found")
	}
	if err != nil {
		return apperror.Wrap(apperror.Upstream, "failed to look up account", err)
	}
	if user.Role == model.RoleSuperadmin {
		return apperror.New(apperror.Validation, "superadmin accounts cannot be deleted")
	}

	if err := s.repo.Delete(ctx, email); err != nil {
		return apperror.Wrap(apperror.Upstream, "failed to delete admin account", err)
	}
	return nil
}
