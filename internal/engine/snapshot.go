package engine

import (
	"skyshield/internal/catalog"
	"skyshield/internal/threat"
)

// ThreatView is a read-only projection of one threat for rendering.
type ThreatView struct {
	ID             string             `json:"id"`
	Archetype      string             `json:"archetype"`
	Tier           catalog.ThreatTier `json:"tier"`
	Lat            float64            `json:"lat"`
	Lon            float64            `json:"lon"`
	Alt            float64            `json:"alt"`
	DistanceM      float64            `json:"distance_m"`
	Status         threat.Status      `json:"status"`
	HealthPct      float64            `json:"health_pct"`
	DetectionProb  float64            `json:"detection_prob"`
	Countermeasure string             `json:"countermeasure,omitempty"`
	TickDetected   *int               `json:"tick_detected,omitempty"`
	TickResolved   *int               `json:"tick_resolved,omitempty"`
}

// StateView is a read-only projection of mission state.
type StateView struct {
	Tick               int      `json:"tick"`
	Score              int      `json:"score"`
	BudgetRemaining    float64  `json:"budget_remaining"`
	RadarCoveragePct   float64  `json:"radar_coverage_pct"`
	AssetsProtectedPct float64  `json:"assets_protected_pct"`
	Neutralized        int      `json:"neutralized"`
	Breached           int      `json:"breached"`
	RunState           RunState `json:"run_state"`
	Events             []Event  `json:"events"`
}

// Snapshot bundles threat and state views for the presentation layer.
type Snapshot struct {
	Threats []ThreatView `json:"threats"`
	State   StateView    `json:"state"`
}

// Snapshot returns a consistent read-only projection of the mission.
func (e *Engine) Snapshot() Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()

	views := make([]ThreatView, 0, len(e.threats))
	for _, t := range e.threats {
		v := ThreatView{
			ID:            t.ID,
			Archetype:     t.Archetype.Name,
			Tier:          t.Archetype.Tier,
			Lat:           t.Position.Lat,
			Lon:           t.Position.Lon,
			Alt:           t.Position.Alt,
			DistanceM:     t.DistanceToBaseM,
			Status:        t.Status,
			HealthPct:     t.HealthPct,
			DetectionProb: t.DetectionProbability,
			TickDetected:  t.TickDetected,
			TickResolved:  t.TickResolved,
		}
		if t.Assigned != nil {
			v.Countermeasure = t.Assigned.Name
		}
		views = append(views, v)
	}

	events := make([]Event, len(e.state.Events))
	copy(events, e.state.Events)

	return Snapshot{
		Threats: views,
		State: StateView{
			Tick:               e.state.TickCount,
			Score:              e.state.Score,
			BudgetRemaining:    e.state.BudgetRemaining,
			RadarCoveragePct:   e.state.RadarCoveragePct,
			AssetsProtectedPct: e.state.AssetsProtectedPct,
			Neutralized:        e.state.NeutralizedCount,
			Breached:           e.state.BreachCount,
			RunState:           e.runState,
			Events:             events,
		},
	}
}
