package repository

import (
	"context"

	"sluice-scada/internal/domain"
)

// UsersRepository users table access
type UsersRepository interface {
	// UserExists validates a client-supplied user id.
	UserExists(ctx context.Context, id int64) (bool, error)

	// GetUserByUsername returns ErrNotFound for unknown usernames.
	GetUserByUsername(ctx context.Context, username string) (*domain.User, error)

	// CreateUser stores an already-hashed password.
	CreateUser(ctx context.Context, username, passwordHash, role string) (int64, error)
}
