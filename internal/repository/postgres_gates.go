package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"sluice-scada/internal/domain"
)

// PostgresGatesRepository GatesRepository on PostgreSQL
type PostgresGatesRepository struct {
	db *sql.DB
}

func NewPostgresGatesRepository(db *sql.DB) *PostgresGatesRepository {
	return &PostgresGatesRepository{db: db}
}

var _ GatesRepository = (*PostgresGatesRepository)(nil)

func (r *PostgresGatesRepository) GetGate(ctx context.Context, id domain.GateID) (*domain.Gate, error) {
	query := `
		SELECT id, COALESCE(name, ''), position, status, last_updated
		  FROM gates
		 WHERE id = $1
		 LIMIT 1
	`
	var g domain.Gate
	var status string
	err := r.db.QueryRowContext(ctx, query, int(id)).Scan(&g.ID, &g.Name, &g.Position, &status, &g.LastUpdated)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get gate %d: %w", id, err)
	}
	g.Status = domain.GateStatus(status)
	return &g, nil
}

func (r *PostgresGatesRepository) ListGates(ctx context.Context) ([]domain.Gate, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, COALESCE(name, ''), position, status, last_updated
		  FROM gates
		 ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list gates: %w", err)
	}
	defer rows.Close()

	var gates []domain.Gate
	for rows.Next() {
		var g domain.Gate
		var status string
		if err := rows.Scan(&g.ID, &g.Name, &g.Position, &status, &g.LastUpdated); err != nil {
			return nil, fmt.Errorf("failed to scan gate: %w", err)
		}
		g.Status = domain.GateStatus(status)
		gates = append(gates, g)
	}
	return gates, rows.Err()
}

func (r *PostgresGatesRepository) UpdateCommandedPosition(ctx context.Context, id domain.GateID, position int, status domain.GateStatus, at time.Time) error {
	return updateCommandedPosition(ctx, r.db, id, position, status, at)
}

func (r *PostgresGatesRepository) UpdateCommandedPositionWithHistory(ctx context.Context, position int, status domain.GateStatus, entry domain.GateHistory) (int64, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := updateCommandedPosition(ctx, tx, entry.GateID, position, status, entry.CreatedAt); err != nil {
		return 0, err
	}
	historyID, err := insertHistory(ctx, tx, entry)
	if err != nil {
		return 0, err
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit gate command: %w", err)
	}
	return historyID, nil
}

func updateCommandedPosition(ctx context.Context, exec dbExecutor, id domain.GateID, position int, status domain.GateStatus, at time.Time) error {
	res, err := exec.ExecContext(ctx,
		`UPDATE gates SET status = $1, position = $2, last_updated = $3 WHERE id = $4`,
		string(status), position, at, int(id),
	)
	if err != nil {
		return fmt.Errorf("failed to update gate %d: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
