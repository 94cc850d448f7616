package service

import (
	"context"
	"fmt"
	"time"

	"sluice-scada/internal/domain"
	"sluice-scada/internal/repository"

	"go.uber.org/zap"
)

// GateService operator command pipeline and audit read side
type GateService interface {
	// ControlGate authorizes, resolves and applies one operator command.
	ControlGate(ctx context.Context, req ControlRequest) (*CommandResult, error)

	// RecentHistory newest audit entries first.
	RecentHistory(ctx context.Context, limit int) ([]domain.GateHistory, error)
}

// ControlRequest raw command as decoded from the request.
// Nil pointers mean the field was absent.
type ControlRequest struct {
	SessionUserID *int64
	PayloadUserID *int64
	Command       string
	Position      *int
	Target        string
}

// GateCommandEvent is handed to the publisher after a command is persisted.
type GateCommandEvent struct {
	GateID   domain.GateID `json:"gate_id"`
	Command  string        `json:"command"`
	Position int           `json:"position"`
	UserID   int64         `json:"user_id"`
	IssuedAt time.Time     `json:"issued_at"`
}

// CommandPublisher forwards accepted commands to field controllers.
type CommandPublisher interface {
	PublishGateCommand(ctx context.Context, evt GateCommandEvent) error
}

type gateService struct {
	identity  *IdentityResolver
	executor  *GateCommandExecutor
	history   repository.GateHistoryRepository
	publisher CommandPublisher
	logger    *zap.Logger
}

// NewGateService publisher may be nil.
func NewGateService(
	users repository.UsersRepository,
	gates repository.GatesRepository,
	history repository.GateHistoryRepository,
	publisher CommandPublisher,
	auditMode string,
	logger *zap.Logger,
) GateService {
	return &gateService{
		identity:  NewIdentityResolver(users, logger),
		executor:  NewGateCommandExecutor(gates, history, auditMode, logger),
		history:   history,
		publisher: publisher,
		logger:    logger,
	}
}

func (s *gateService) ControlGate(ctx context.Context, req ControlRequest) (*CommandResult, error) {
	// 1. identity
	claim := NewIdentityClaim(req.SessionUserID, req.PayloadUserID)
	userID, err := s.identity.Resolve(ctx, claim)
	if err != nil {
		return nil, err
	}

	// 2. target gate
	gateID, matched := ResolveTarget(req.Target)
	if !matched && req.Target != "" {
		s.logger.Warn("Unknown gate target, falling back to main gate",
			zap.String("target", req.Target),
			zap.Int("gate_id", int(gateID)),
		)
	}

	// 3. position
	position := NormalizeCommand(req.Command, req.Position)

	// 4. persist
	result, err := s.executor.Execute(ctx, GateCommand{
		GateID:  gateID,
		Command: req.Command,
		Target:  position,
		UserID:  userID,
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Gate command applied",
		zap.Int("gate_id", int(gateID)),
		zap.String("command", req.Command),
		zap.Int("position", position),
		zap.Int64("user_id", userID),
		zap.String("identity", claim.Kind.String()),
	)

	// 5. notify field side; never fails the command
	if s.publisher != nil {
		evt := GateCommandEvent{
			GateID:   gateID,
			Command:  req.Command,
			Position: position,
			UserID:   userID,
			IssuedAt: s.executor.now(),
		}
		if err := s.publisher.PublishGateCommand(ctx, evt); err != nil {
			s.logger.Warn("Failed to publish gate command",
				zap.Int("gate_id", int(gateID)),
				zap.Error(err),
			)
		}
	}

	return result, nil
}

func (s *gateService) RecentHistory(ctx context.Context, limit int) ([]domain.GateHistory, error) {
	entries, err := s.history.ListRecentHistory(ctx, limit)
	if err != nil {
		s.logger.Error("Failed to list gate history", zap.Int("limit", limit), zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return entries, nil
}
