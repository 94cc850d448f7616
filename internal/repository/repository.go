package repository

import (
	"context"
	"database/sql"
	"errors"
)

// ErrNotFound is returned when a lookup matches no row.
var ErrNotFound = errors.New("not found")

// dbExecutor is satisfied by both *sql.DB and *sql.Tx.
type dbExecutor interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Repositories bundles the Postgres-backed stores used by the API.
type Repositories struct {
	Gates   *PostgresGatesRepository
	Sensors *PostgresSensorReadingsRepository
	History *PostgresGateHistoryRepository
	Users   *PostgresUsersRepository
}

func New(db *sql.DB) *Repositories {
	return &Repositories{
		Gates:   NewPostgresGatesRepository(db),
		Sensors: NewPostgresSensorReadingsRepository(db),
		History: NewPostgresGateHistoryRepository(db),
		Users:   NewPostgresUsersRepository(db),
	}
}
