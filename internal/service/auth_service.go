package service

import (
	"context"
	"errors"
	"log"

	"attendify/internal/auth"
	"attendify/internal/model"
	"attendify/internal/permission"
	"attendify/internal/repository"
	"attendify/internal/session"
	"attendify/pkg/apperror"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// LoginResult carries the minted token plus the resolved identity.
type LoginResult struct {
	Token    string           `json:"-"`
	Identity session.Identity `json:"identity"`
}

type BootstrapLoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// AuthService handles login, logout, and the bootstrap superadmin account.
type AuthService interface {
	GoogleLoginURL() (string, error)
	GoogleCallback(ctx context.Context, state, code, deviceTag string) (*LoginResult, error)
	BootstrapLogin(ctx context.Context, req BootstrapLoginRequest, deviceTag string) (*LoginResult, error)
	Logout(ctx context.Context, token string) (bool, error)
	SeedSuperadmin(ctx context.Context, email, password string) error
}

type authService struct {
	users    repository.UserRepository
	sessions session.Store
	google   *auth.GoogleClient
}

// NewAuthService wires the identity provider, the user table, and the
// session store together.
func NewAuthService(users repository.UserRepository, sessions session.Store, google *auth.GoogleClient) AuthService {
	return &authService{users: users, sessions: sessions, google: google}
}

func (s *authService) GoogleLoginURL() (string, error) {
	return s.google.LoginURL()
}

// GoogleCallback finishes the OAuth flow. Only emails already present in the
// users table may log in; Google is the authenticator, not the authorizer.
func (s *authService) GoogleCallback(ctx context.Context, state, code, deviceTag string) (*LoginResult, error) {
	if err := s.google.VerifyState(state); err != nil {
		return nil, err
	}

	info, err := s.google.Exchange(ctx, code)
	if err != nil {
		return nil, err
	}

	user, err := s.users.GetByEmail(ctx, info.Email)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperror.New(apperror.Forbidden, "this account is not an authorized admin")
	}
	if err != nil {
		return nil, apperror.Wrap(apperror.Upstream, "failed to look up account", err)
	}

	// Keep profile fields current; Google is the source of truth for them.
	if user.Name != info.Name || user.Picture != info.Picture {
		user.Name = info.Name
		user.Picture = info.Picture
		if err := s.users.Update(ctx, user); err != nil {
			log.Println("WARNING: failed to refresh profile for", user.Email, ":", err)
		}
	}

	return s.startSession(ctx, user, deviceTag)
}

// BootstrapLogin authenticates the seeded superadmin by password. It exists
// so a fresh deployment can be operated before any Google account is granted
// access.
func (s *authService) BootstrapLogin(ctx context.Context, req BootstrapLoginRequest, deviceTag string) (*LoginResult, error) {
	user, err := s.users.GetByEmail(ctx, req.Email)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperror.New(apperror.Unauthenticated, "invalid email or password")
	}
	if err != nil {
		return nil, apperror.Wrap(apperror.Upstream, "failed to look up account", err)
	}

	if user.Role != model.RoleSuperadmin || user.Password == "" {
		return nil, apperror.New(apperror.Unauthenticated, "invalid email or password")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, apperror.New(apperror.Unauthenticated, "invalid email or password")
	}

	return s.startSession(ctx, user, deviceTag)
}

func (s *authService) startSession(ctx context.Context, user *model.User, deviceTag string) (*LoginResult, error) {
	identity := session.Identity{
		Email:       user.Email,
		Name:        user.Name,
		Role:        user.Role,
		Permissions: permission.Effective(user.Role, user.PermissionsAsBools()),
	}

	token, err := s.sessions.Create(ctx, identity, deviceTag)
	if err != nil {
		return nil, err
	}

	log.Println("Session created for", user.Email)
	return &LoginResult{Token: token, Identity: identity}, nil
}

// Logout revokes the presented token. The bool distinguishes "was active"
// from "already gone" for observability; both are success.
func (s *authService) Logout(ctx context.Context, token string) (bool, error) {
	return s.sessions.Revoke(ctx, token)
}

// SeedSuperadmin ensures the bootstrap superadmin exists. A no-op when the
// account is already present or no credentials are configured.
func (s *authService) SeedSuperadmin(ctx context.Context, email, password string) error {
	if email == "" || password == "" {
		return nil
	}

	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return nil
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return apperror.Wrap(apperror.Upstream, "failed to check bootstrap account", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return apperror.Wrap(apperror.Upstream, "failed to hash bootstrap password", err)
	}

	user := &model.User{
		Email:    email,
		Name:     "Bootstrap Superadmin",
		Role:     model.RoleSuperadmin,
		Password: string(hash),
	}
	if err := s.users.Create(ctx, user); err != nil {
		return apperror.Wrap(apperror.Upstream, "failed to seed bootstrap account", err)
	}

	log.Println("Seeded bootstrap superadmin", email)
	return nil
}
