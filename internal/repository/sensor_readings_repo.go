package repository

import (
	"context"

	"sluice-scada/internal/domain"
)

// SensorReadingsRepository read side of sensor_readings (rows are written by
// the field collector, never by this service)
type SensorReadingsRepository interface {
	// GetLatestReading returns the newest reading by recorded_at, or ErrNotFound.
	GetLatestReading(ctx context.Context, gateID domain.GateID) (*domain.SensorReading, error)
}
