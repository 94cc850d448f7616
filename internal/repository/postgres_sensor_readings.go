package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"sluice-scada/internal/domain"
)

// PostgresSensorReadingsRepository SensorReadingsRepository on PostgreSQL
type PostgresSensorReadingsRepository struct {
	db *sql.DB
}

func NewPostgresSensorReadingsRepository(db *sql.DB) *PostgresSensorReadingsRepository {
	return &PostgresSensorReadingsRepository{db: db}
}

var _ SensorReadingsRepository = (*PostgresSensorReadingsRepository)(nil)

// GetLatestReading selects every column so collector-added fields pass through.
func (r *PostgresSensorReadingsRepository) GetLatestReading(ctx context.Context, gateID domain.GateID) (*domain.SensorReading, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT *
		  FROM sensor_readings
		 WHERE gate_id = $1
		 ORDER BY recorded_at DESC
		 LIMIT 1`, int(gateID))
	if err != nil {
		return nil, fmt.Errorf("failed to query sensor readings for gate %d: %w", gateID, err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, fmt.Errorf("failed to read sensor readings for gate %d: %w", gateID, err)
		}
		return nil, ErrNotFound
	}

	raw, err := scanRowMap(rows)
	if err != nil {
		return nil, fmt.Errorf("failed to scan sensor reading: %w", err)
	}

	reading := &domain.SensorReading{
		GateID: gateID,
		Fields: make(map[string]any, len(raw)),
	}
	if t, ok := raw["recorded_at"].(time.Time); ok {
		reading.RecordedAt = t
	}
	for col, v := range raw {
		reading.Fields[col] = normalizeColumnValue(v)
	}
	return reading, nil
}
