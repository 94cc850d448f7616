package repository

import (
	"context"
	"database/sql"
	"fmt"

	"sluice-scada/internal/domain"
)

// PostgresGateHistoryRepository GateHistoryRepository on PostgreSQL
type PostgresGateHistoryRepository struct {
	db *sql.DB
}

func NewPostgresGateHistoryRepository(db *sql.DB) *PostgresGateHistoryRepository {
	return &PostgresGateHistoryRepository{db: db}
}

var _ GateHistoryRepository = (*PostgresGateHistoryRepository)(nil)

func (r *PostgresGateHistoryRepository) AppendHistory(ctx context.Context, entry domain.GateHistory) (int64, error) {
	return insertHistory(ctx, r.db, entry)
}

func (r *PostgresGateHistoryRepository) ListRecentHistory(ctx context.Context, limit int) ([]domain.GateHistory, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, gate_id, action, COALESCE(details, ''), performed_by, created_at
		  FROM gate_history
		 ORDER BY created_at DESC, id DESC
		 LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list gate history: %w", err)
	}
	defer rows.Close()

	out := make([]domain.GateHistory, 0, limit)
	for rows.Next() {
		var h domain.GateHistory
		if err := rows.Scan(&h.ID, &h.GateID, &h.Action, &h.Details, &h.PerformedBy, &h.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan gate history: %w", err)
		}
		out = append(out, h)
	}
	return out, rows.Err()
}

func insertHistory(ctx context.Context, exec dbExecutor, entry domain.GateHistory) (int64, error) {
	var id int64
	err := exec.QueryRowContext(ctx, `
		INSERT INTO gate_history (gate_id, action, details, performed_by, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`,
		int(entry.GateID), entry.Action, entry.Details, entry.PerformedBy, entry.CreatedAt,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to insert gate history: %w", err)
	}
	return id, nil
}
