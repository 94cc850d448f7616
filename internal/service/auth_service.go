package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"sluice-scada/internal/repository"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// AuthService operator login
type AuthService interface {
	// Login verifies username/password against the stored bcrypt hash.
	Login(ctx context.Context, username, password string) (*LoginResult, error)
}

// LoginResult data returned to the panel and stored in the session.
type LoginResult struct {
	UserID int64  `json:"id"`
	Role   string `json:"role"`
}

type authService struct {
	users  repository.UsersRepository
	logger *zap.Logger
}

func NewAuthService(users repository.UsersRepository, logger *zap.Logger) AuthService {
	return &authService{users: users, logger: logger}
}

func (s *authService) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		s.logger.Warn("User login failed: missing credentials",
			zap.String("reason", "missing_credentials"),
		)
		return nil, ErrInvalidCredentials
	}

	user, err := s.users.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			s.logger.Warn("User login failed: unknown user",
				zap.String("username", username),
				zap.String("reason", "user_not_found"),
			)
			return nil, ErrInvalidCredentials
		}
		s.logger.Error("User login failed: lookup error",
			zap.String("username", username),
			zap.Error(err),
		)
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		s.logger.Warn("User login failed: password mismatch",
			zap.String("username", username),
			zap.String("reason", "invalid_password"),
		)
		return nil, ErrInvalidCredentials
	}

	s.logger.Info("User logged in",
		zap.Int64("user_id", user.ID),
		zap.String("role", user.Role),
	)
	return &LoginResult{UserID: user.ID, Role: user.Role}, nil
}

// HashPassword bcrypt hash for the users.password column.
func HashPassword(password string) (string, error) {
	if password == "" {
		return "", errors.New("password is required")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}
