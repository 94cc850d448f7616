package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"sluice-scada/internal/domain"
)

// PostgresUsersRepository UsersRepository on PostgreSQL
type PostgresUsersRepository struct {
	db *sql.DB
}

func NewPostgresUsersRepository(db *sql.DB) *PostgresUsersRepository {
	return &PostgresUsersRepository{db: db}
}

var _ UsersRepository = (*PostgresUsersRepository)(nil)

func (r *PostgresUsersRepository) UserExists(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM users WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check user %d: %w", id, err)
	}
	return exists, nil
}

func (r *PostgresUsersRepository) GetUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	var u domain.User
	err := r.db.QueryRowContext(ctx,
		`SELECT id, username, password, COALESCE(role, '') FROM users WHERE username = $1`,
		username,
	).Scan(&u.ID, &u.Username, &u.PasswordHash, &u.Role)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &u, nil
}

func (r *PostgresUsersRepository) CreateUser(ctx context.Context, username, passwordHash, role string) (int64, error) {
	if username == "" || passwordHash == "" {
		return 0, fmt.Errorf("username and password hash are required")
	}
	var id int64
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO users (username, password, role) VALUES ($1, $2, $3) RETURNING id`,
		username, passwordHash, role,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to create user: %w", err)
	}
	return id, nil
}
