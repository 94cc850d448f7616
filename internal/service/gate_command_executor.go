package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"sluice-scada/internal/config"
	"sluice-scada/internal/domain"
	"sluice-scada/internal/repository"

	"go.uber.org/zap"
)

// GateCommand a resolved, authorized command ready to apply
type GateCommand struct {
	GateID  domain.GateID
	Command string
	Target  int
	UserID  int64
}

// CommandResult is echoed back to the panel.
type CommandResult struct {
	NewPosition int           `json:"new_position"`
	GateID      domain.GateID `json:"gate_id"`
}

// GateCommandExecutor applies the position/status update and writes the
// audit row. How the two writes relate depends on the audit mode:
//
//   - best_effort: gate update first, audit insert afterwards; an audit
//     failure is logged and the command still succeeds.
//   - transactional: both writes in one transaction; any failure rolls
//     back and is reported.
type GateCommandExecutor struct {
	gates   repository.GatesRepository
	history repository.GateHistoryRepository
	mode    string
	logger  *zap.Logger
	now     func() time.Time
}

func NewGateCommandExecutor(gates repository.GatesRepository, history repository.GateHistoryRepository, auditMode string, logger *zap.Logger) *GateCommandExecutor {
	if auditMode != config.AuditModeTransactional {
		auditMode = config.AuditModeBestEffort
	}
	return &GateCommandExecutor{
		gates:   gates,
		history: history,
		mode:    auditMode,
		logger:  logger,
		now:     time.Now,
	}
}

// Execute moves the gate to cmd.Target with status "moving".
// The same clock reading stamps gates.last_updated and gate_history.created_at.
func (e *GateCommandExecutor) Execute(ctx context.Context, cmd GateCommand) (*CommandResult, error) {
	at := e.now()
	entry := domain.GateHistory{
		GateID:      cmd.GateID,
		Action:      domain.ActionControlCommand,
		Details:     domain.CommandDetails(cmd.Command, cmd.Target),
		PerformedBy: cmd.UserID,
		CreatedAt:   at,
	}

	if e.mode == config.AuditModeTransactional {
		historyID, err := e.gates.UpdateCommandedPositionWithHistory(ctx, cmd.Target, domain.GateStatusMoving, entry)
		if err != nil {
			e.logUpdateFailure(cmd, err)
			return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
		}
		e.logger.Debug("Gate command audited",
			zap.Int("gate_id", int(cmd.GateID)),
			zap.Int64("history_id", historyID),
		)
		return &CommandResult{NewPosition: cmd.Target, GateID: cmd.GateID}, nil
	}

	if err := e.gates.UpdateCommandedPosition(ctx, cmd.GateID, cmd.Target, domain.GateStatusMoving, at); err != nil {
		e.logUpdateFailure(cmd, err)
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	if _, err := e.history.AppendHistory(ctx, entry); err != nil {
		// the gate has already moved; the panel still gets success
		e.logger.Error("Failed to write gate audit entry",
			zap.Int("gate_id", int(cmd.GateID)),
			zap.String("command", cmd.Command),
			zap.Int("target", cmd.Target),
			zap.Int64("user_id", cmd.UserID),
			zap.Error(err),
		)
	}

	return &CommandResult{NewPosition: cmd.Target, GateID: cmd.GateID}, nil
}

func (e *GateCommandExecutor) logUpdateFailure(cmd GateCommand, err error) {
	reason := "database_error"
	if errors.Is(err, repository.ErrNotFound) {
		reason = "gate_not_found"
	}
	e.logger.Error("Failed to apply gate command",
		zap.Int("gate_id", int(cmd.GateID)),
		zap.String("command", cmd.Command),
		zap.Int("target", cmd.Target),
		zap.Int64("user_id", cmd.UserID),
		zap.String("audit_mode", e.mode),
		zap.String("reason", reason),
		zap.Error(err),
	)
}
