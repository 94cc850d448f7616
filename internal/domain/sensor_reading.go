package domain

import "time"

// SensorReading latest row of sensor_readings for a gate.
// Measurement columns are owned by the external collector, so they are kept
// as an opaque column -> value map (all columns, including gate_id and
// recorded_at, as returned by the store).
type SensorReading struct {
	GateID     GateID
	RecordedAt time.Time
	Fields     map[string]any
}

// ToJSON returns the pass-through column map.
func (s *SensorReading) ToJSON() map[string]any {
	out := make(map[string]any, len(s.Fields))
	for k, v := range s.Fields {
		out[k] = v
	}
	return out
}
