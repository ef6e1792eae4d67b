package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/rumbahq/rumba/internal/auth"
	"github.com/rumbahq/rumba/internal/models"
	"github.com/rumbahq/rumba/internal/storage"
)

// Session is the result of a successful registration or login.
type Session struct {
	User  *models.User `json:"user"`
	Token string       `json:"token"`
}

// AuthService implements registration, login and profile management.
type AuthService struct {
	authenticator auth.Authenticator
	jwtManager    *auth.JWTManager
	users         storage.UserStore
	logger        *slog.Logger
}

// NewAuthService creates a new authentication service.
func NewAuthService(authenticator auth.Authenticator, jwtManager *auth.JWTManager, users storage.UserStore, logger *slog.Logger) *AuthService {
	return &AuthService{
		authenticator: authenticator,
		jwtManager:    jwtManager,
		users:         users,
		logger:        logger,
	}
}

// Register creates a new user account and returns it with a session token.
func (s *AuthService) Register(ctx context.Context, in *models.RegisterInput) (*Session, error) {
	s.logger.Info("Register request", "email", in.Email)

	if verr := in.Validate(); verr != nil {
		return nil, verr
	}

	user, err := s.authenticator.Register(ctx, strings.TrimSpace(in.Email), strings.TrimSpace(in.Name), in.Password)
	if err != nil {
		s.logger.Warn("Registration failed", "email", in.Email, "error", err)
		return nil, err
	}

	token, err := s.jwtManager.Generate(user)
	if err != nil {
		s.logger.Error("Failed to generate token", "user_id", user.ID, "error", err)
		return nil, err
	}

	s.logger.Info("User registered successfully", "user_id", user.ID, "email", user.Email)
	return &Session{User: user, Token: token}, nil
}

// Login authenticates a user, records the login time and returns a token.
// A failed login never touches last_login.
func (s *AuthService) Login(ctx context.Context, email, password string) (*Session, error) {
	s.logger.Info("Login request", "email", email)

	if email == "" || password == "" {
		return nil, auth.ErrInvalidCredentials
	}

	user, err := s.authenticator.Authenticate(ctx, email, password)
	if err != nil {
		s.logger.Warn("Login failed", "email", email, "error", err)
		return nil, auth.ErrInvalidCredentials
	}

	user.LastLogin = time.Now().Unix()
	if err := s.users.TouchLastLogin(ctx, user.ID, user.LastLogin); err != nil {
		// Not worth failing the login over.
		s.logger.Warn("Failed to record login time", "user_id", user.ID, "error", err)
	}

	token, err := s.jwtManager.Generate(user)
	if err != nil {
		s.logger.Error("Failed to generate token", "user_id", user.ID, "error", err)
		return nil, err
	}

	s.logger.Info("User logged in successfully", "user_id", user.ID, "email", user.Email)
	return &Session{User: user, Token: token}, nil
}

// GetUser returns the account for the given user ID.
func (s *AuthService) GetUser(ctx context.Context, userID string) (*models.User, error) {
	return s.users.GetUserByID(ctx, userID)
}

// ProfileInput is the payload for updating name and/or email.
type ProfileInput struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// UpdateProfile changes the user's name and/or email. Switching to an email
// already held by another account is rejected.
func (s *AuthService) UpdateProfile(ctx context.Context, userID string, in *ProfileInput) (*models.User, error) {
	user, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	email := strings.TrimSpace(in.Email)
	if email != "" && email != user.Email {
		existing, err := s.users.GetUserByEmail(ctx, email)
		if err == nil && existing != nil {
			return nil, auth.ErrEmailExists
		}
		if err != nil && !errors.Is(err, storage.ErrNotFound) {
			return nil, err
		}
		user.Email = email
	}
	if name := strings.TrimSpace(in.Name); name != "" {
		user.Name = name
	}

	if err := s.users.UpdateUser(ctx, user); err != nil {
		s.logger.Error("UpdateUser failed", "user_id", userID, "error", err)
		return nil, err
	}

	s.logger.Info("Profile updated", "user_id", userID)
	return user, nil
}

// ChangePassword swaps the stored credential after verifying the current one.
func (s *AuthService) ChangePassword(ctx context.Context, userID, currentPassword, newPassword string) error {
	user, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		return err
	}

	if !auth.CheckPassword(user.PasswordHash, currentPassword) {
		s.logger.Warn("Password change rejected", "user_id", userID)
		return auth.ErrInvalidCredentials
	}
	if err := s.authenticator.ValidateCredential(newPassword); err != nil {
		return err
	}

	hash, err := auth.HashPassword(newPassword)
	if err != nil {
		return err
	}
	if err := s.users.UpdatePassword(ctx, userID, hash); err != nil {
		s.logger.Error("UpdatePassword failed", "user_id", userID, "error", err)
		return err
	}

	s.logger.Info("Password changed", "user_id", userID)
	return nil
}
