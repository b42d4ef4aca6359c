// Threat entity types and track rows for sink writers.
package threat

import (
	"os"
	"time"

	"skyshield/internal/catalog"
)

// Position holds latitude, longitude, and altitude.
type Position struct {
	Lat float64
	Lon float64
	Alt float64
}

// Status is the lifecycle state of one inbound threat. Transitions form a
// DAG: incoming -> detected -> engaged -> {neutralized, breached}, where the
// middle states may be skipped. Terminal states never transition out.
type Status string

const (
	StatusIncoming    Status = "incoming"
	StatusDetected    Status = "detected"
	StatusEngaged     Status = "engaged"
	StatusNeutralized Status = "neutralized"
	StatusBreached    Status = "breached"
)

// Terminal reports whether s is an end state.
func (s Status) Terminal() bool {
	return s == StatusNeutralized || s == StatusBreached
}

// Threat holds runtime state for one inbound object. Instances are owned
// exclusively by the engine's threat collection; callers refer to threats
// by ID.
type Threat struct {
	ID                   string
	Archetype            catalog.ThreatArchetype
	Position             Position
	HeadingRad           float64
	SpeedMPS             float64
	DistanceToBaseM      float64
	Status               Status
	HealthPct            float64
	Assigned             *catalog.CountermeasureArchetype
	DetectionProbability float64
	TickDetected         *int
	TickResolved         *int
}

// Row represents one per-tick threat track record for GreptimeDB.
type Row struct {
	MissionID      string             `json:"mission_id"` // TAG
	ThreatID       string             `json:"threat_id"`  // TAG
	Archetype      string             `json:"archetype"`
	Tier           catalog.ThreatTier `json:"tier"`
	Lat            float64            `json:"lat"`
	Lon            float64            `json:"lon"`
	Alt            float64            `json:"alt"`
	DistanceM      float64            `json:"distance_m"`
	Status         Status             `json:"status"`
	HealthPct      float64            `json:"health_pct"`
	DetectionProb  float64            `json:"detection_prob"`
	Countermeasure string             `json:"countermeasure,omitempty"`
	Timestamp      time.Time          `json:"ts"` // TIME INDEX
}

// TrackTableName holds the table name used when writing threat tracks to
// GreptimeDB. It defaults to "threat_tracks" but can be overridden via the
// THREAT_TRACK_TABLE environment variable.
var TrackTableName = func() string {
	if env := os.Getenv("THREAT_TRACK_TABLE"); env != "" {
		return env
	}
	return "threat_tracks"
}()

func (Row) TableName() string {
	return TrackTableName
}
