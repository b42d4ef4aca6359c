package engine

import (
	"os"
	"time"
)

// Event kinds recorded in the mission event log.
const (
	EventDetection      = "detection"
	EventAssignment     = "assignment"
	EventNeutralization = "neutralization"
	EventBreach         = "breach"
	EventSpawn          = "spawn"
	EventScenario       = "scenario"
	EventRejected       = "rejected"
)

// Event is one console-style log entry for a state-changing occurrence.
type Event struct {
	MissionID      string    `json:"mission_id"` // TAG
	Tick           int       `json:"tick"`
	Kind           string    `json:"kind"`
	ThreatID       string    `json:"threat_id,omitempty"`
	Countermeasure string    `json:"countermeasure,omitempty"`
	Detail         string    `json:"detail,omitempty"`
	Timestamp      time.Time `json:"ts"` // TIME INDEX
}

// EventTableName holds the table name used when writing events to GreptimeDB.
// It defaults to "mission_events" but can be overridden via the
// MISSION_EVENT_TABLE environment variable.
var EventTableName = func() string {
	if env := os.Getenv("MISSION_EVENT_TABLE"); env != "" {
		return env
	}
	return "mission_events"
}()

func (Event) TableName() string {
	return EventTableName
}

// StateRow captures per-tick mission state metrics.
type StateRow struct {
	MissionID          string    `json:"mission_id"` // TAG
	Tick               int       `json:"tick"`
	Score              int       `json:"score"`
	BudgetRemaining    float64   `json:"budget_remaining"`
	RadarCoveragePct   float64   `json:"radar_coverage_pct"`
	AssetsProtectedPct float64   `json:"assets_protected_pct"`
	Neutralized        int       `json:"neutralized"`
	Breached           int       `json:"breached"`
	LiveThreats        int       `json:"live_threats"`
	RunState           RunState  `json:"run_state"`
	Timestamp          time.Time `json:"ts"` // TIME INDEX
}

// StateTableName holds the table name used when writing state rows to
// GreptimeDB, overridable via MISSION_STATE_TABLE.
var StateTableName = func() string {
	if env := os.Getenv("MISSION_STATE_TABLE"); env != "" {
		return env
	}
	return "mission_state"
}()

func (StateRow) TableName() string {
	return StateTableName
}

// MissionState aggregates score and resource accounting for one mission run.
// It is reset only by an explicit Reset or StartScenario.
type MissionState struct {
	TickCount          int
	Score              int
	BudgetRemaining    float64
	RadarCoveragePct   float64
	AssetsProtectedPct float64
	NeutralizedCount   int
	BreachCount        int
	Events             []Event
}

// appendEvent adds ev to the bounded log, evicting the oldest entry once the
// capacity is reached.
func (m *MissionState) appendEvent(ev Event, capacity int) {
	m.Events = append(m.Events, ev)
	if capacity > 0 && len(m.Events) > capacity {
		m.Events = m.Events[len(m.Events)-capacity:]
	}
}
