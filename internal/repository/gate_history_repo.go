package repository

import (
	"context"

	"sluice-scada/internal/domain"
)

// GateHistoryRepository append-only audit trail
type GateHistoryRepository interface {
	AppendHistory(ctx context.Context, entry domain.GateHistory) (int64, error)

	// ListRecentHistory returns up to limit entries, newest first.
	ListRecentHistory(ctx context.Context, limit int) ([]domain.GateHistory, error)
}
