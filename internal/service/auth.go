// Package service contains the business logic layer: validation, role
// rules, and orchestration between the repositories and the token service.
// Handlers stay HTTP-only; repositories stay SQL-only.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/wolber/school-portal/internal/apperror"
	"github.com/wolber/school-portal/internal/auth"
	"github.com/wolber/school-portal/internal/config"
	"github.com/wolber/school-portal/internal/model"
	"github.com/wolber/school-portal/internal/repository"
)

// AuthService handles registration, login, and admin account management.
type AuthService struct {
	users  repository.UserRepository
	tokens *auth.TokenService
	logger *slog.Logger
}

func NewAuthService(users repository.UserRepository, tokens *auth.TokenService, logger *slog.Logger) *AuthService {
	return &AuthService{
		users:  users,
		tokens: tokens,
		logger: logger,
	}
}

// LoginResult bundles the authenticated user record with the issued token.
type LoginResult struct {
	User  *model.User
	Token string
}

// Register creates a student account. The role is always student — there
// is no way to self-register as admin. Fails with apperror.ErrConflict
// when the username is already taken.
func (s *AuthService) Register(ctx context.Context, username, password, name, classe string) (*model.User, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, apperror.ValidationFailed("username", "username is required")
	}
	if password == "" {
		return nil, apperror.ValidationFailed("password", "password is required")
	}

	user := &model.User{
		Username: username,
		Password: password,
		Role:     model.RoleStudent,
		Name:     strings.TrimSpace(name),
		Classe:   strings.TrimSpace(classe),
	}

	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, apperror.ErrConflict) {
			return nil, err
		}
		s.logger.Error("failed to register user",
			slog.String("username", username),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("registering user: %w", err)
	}

	s.logger.Info("user registered",
		slog.String("id", user.ID),
		slog.String("username", user.Username),
	)

	return user, nil
}

// Login verifies the username+password pair against the store and issues
// a signed token embedding {id, role}. A mismatch fails with
// apperror.ErrInvalidCredentials; the message is the one legacy clients
// display verbatim.
func (s *AuthService) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	user, err := s.users.GetByCredentials(ctx, username, password)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return nil, apperror.InvalidCredentials("Identifiants incorrects")
		}
		s.logger.Error("login lookup failed",
			slog.String("username", username),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("logging in: %w", err)
	}

	token, err := s.tokens.Generate(user.ID, user.Role)
	if err != nil {
		return nil, fmt.Errorf("generating token for user %s: %w", user.ID, err)
	}

	s.logger.Info("user logged in",
		slog.String("id", user.ID),
		slog.String("role", user.Role),
	)

	return &LoginResult{User: user, Token: token}, nil
}

// CreateAdmin creates another administrator account. Role gating happens
// in the middleware; this method only performs the insert.
func (s *AuthService) CreateAdmin(ctx context.Context, username, password, name string) (*model.User, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, apperror.ValidationFailed("username", "username is required")
	}
	if password == "" {
		return nil, apperror.ValidationFailed("password", "password is required")
	}

	user := &model.User{
		Username: username,
		Password: password,
		Role:     model.RoleAdmin,
		Name:     strings.TrimSpace(name),
	}

	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, apperror.ErrConflict) {
			return nil, err
		}
		s.logger.Error("failed to create admin",
			slog.String("username", username),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("creating admin: %w", err)
	}

	s.logger.Info("admin created",
		slog.String("id", user.ID),
		slog.String("username", user.Username),
	)

	return user, nil
}

// ListUsers returns every account without the password column.
func (s *AuthService) ListUsers(ctx context.Context) ([]model.User, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		s.logger.Error("failed to list users", slog.String("error", err.Error()))
		return nil, fmt.Errorf("listing users: %w", err)
	}
	return users, nil
}

// SeedAdmin inserts the configured bootstrap administrator if no user with
// that username exists yet. The check-then-insert pair is not atomic; a
// concurrent first boot could insert twice, an accepted race since it only
// matters once per database file.
func (s *AuthService) SeedAdmin(ctx context.Context, seed config.SeedAdmin) error {
	_, err := s.users.GetByUsername(ctx, seed.Username)
	if err == nil {
		s.logger.Info("seed admin already present", slog.String("username", seed.Username))
		return nil
	}
	if !errors.Is(err, apperror.ErrNotFound) {
		return fmt.Errorf("checking seed admin: %w", err)
	}

	admin := &model.User{
		Username: seed.Username,
		Password: seed.Password,
		Role:     model.RoleAdmin,
		Name:     seed.Name,
	}
	if err := s.users.Create(ctx, admin); err != nil {
		return fmt.Errorf("creating seed admin: %w", err)
	}

	s.logger.Info("seed admin created",
		slog.String("id", admin.ID),
		slog.String("username", admin.Username),
	)
	return nil
}
