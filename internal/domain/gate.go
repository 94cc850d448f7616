package domain

import "time"

// GateID identifies one of the fixed sluice gates. The id space is closed:
// rows are seeded by migration and no code path inserts new gates.
type GateID int

const (
	GateMain GateID = 1 // default / main gate
	GateA    GateID = 2 // canal sluice A
	GateB    GateID = 3 // canal sluice B
)

// GateStatus movement state of a gate (gates.status CHECK constraint)
type GateStatus string

const (
	GateStatusIdle   GateStatus = "idle"
	GateStatusMoving GateStatus = "moving"
	GateStatusError  GateStatus = "error"
)

// Position bounds, percent open.
const (
	PositionClosed = 0
	PositionOpen   = 100
)

// TimestampLayout is the wall-clock format exposed to clients.
const TimestampLayout = "2006-01-02 15:04:05"

// Gate gates table row
type Gate struct {
	ID          GateID     `db:"id"`
	Name        string     `db:"name"`
	Position    int        `db:"position"`
	Status      GateStatus `db:"status"`
	LastUpdated time.Time  `db:"last_updated"`
}

// ToJSON shapes the row for HTTP responses.
func (g *Gate) ToJSON() map[string]any {
	return map[string]any{
		"id":           int(g.ID),
		"name":         g.Name,
		"position":     g.Position,
		"status":       string(g.Status),
		"last_updated": g.LastUpdated.Format(TimestampLayout),
	}
}
