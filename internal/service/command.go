package service

import "sluice-scada/internal/domain"

// Gate commands understood by NormalizeCommand.
const (
	CommandOpen        = "open"
	CommandClose       = "close"
	CommandSetPosition = "set_position"
)

// NormalizeCommand returns the target position for a command.
// open/close ignore position; anything else uses position (0 when absent),
// clamped to [0, 100].
func NormalizeCommand(command string, position *int) int {
	switch command {
	case CommandOpen:
		return domain.PositionOpen
	case CommandClose:
		return domain.PositionClosed
	default:
		if position == nil {
			return domain.PositionClosed
		}
		return clampPosition(*position)
	}
}

func clampPosition(p int) int {
	if p < domain.PositionClosed {
		return domain.PositionClosed
	}
	if p > domain.PositionOpen {
		return domain.PositionOpen
	}
	return p
}
