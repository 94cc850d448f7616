package repository

import (
	"context"
	"time"

	"sluice-scada/internal/domain"
)

// GatesRepository gates table access
type GatesRepository interface {
	// GetGate returns ErrNotFound when the row is missing.
	GetGate(ctx context.Context, id domain.GateID) (*domain.Gate, error)

	ListGates(ctx context.Context) ([]domain.Gate, error)

	// UpdateCommandedPosition sets position/status/last_updated on one row.
	// Returns ErrNotFound when no row was updated.
	UpdateCommandedPosition(ctx context.Context, id domain.GateID, position int, status domain.GateStatus, at time.Time) error

	// UpdateCommandedPositionWithHistory performs the update and the audit
	// insert in one transaction and returns the new history id.
	UpdateCommandedPositionWithHistory(ctx context.Context, position int, status domain.GateStatus, entry domain.GateHistory) (int64, error)
}
