package service

import "sluice-scada/internal/domain"

// Symbolic target names sent by the panels.
const (
	TargetMainGate = "MAIN GATE"
	TargetGateA    = "GATE A"
	TargetGateB    = "GATE B"
)

// ResolveTarget maps a target name to a gate id. It is total: any name other
// than GATE A / GATE B (empty included) selects the main gate, and matched is
// false so callers can log the fallback.
func ResolveTarget(name string) (id domain.GateID, matched bool) {
	switch name {
	case TargetGateA:
		return domain.GateA, true
	case TargetGateB:
		return domain.GateB, true
	case TargetMainGate:
		return domain.GateMain, true
	default:
		return domain.GateMain, false
	}
}
