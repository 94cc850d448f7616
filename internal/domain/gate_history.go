package domain

import (
	"fmt"
	"time"
)

// ActionControlCommand is the gate_history.action written for operator commands.
const ActionControlCommand = "control_command"

// GateHistory gate_history row (append-only audit trail)
type GateHistory struct {
	ID          int64     `db:"id"`
	GateID      GateID    `db:"gate_id"`
	Action      string    `db:"action"`
	Details     string    `db:"details"`
	PerformedBy int64     `db:"performed_by"`
	CreatedAt   time.Time `db:"created_at"`
}

// CommandDetails formats the details column for a control command.
func CommandDetails(command string, target int) string {
	return fmt.Sprintf("Command: %s, Target: %d", command, target)
}
