package engine

import (
	"fmt"
	"time"

	"skyshield/internal/threat"
)

// resolveEngagement decides whether the assigned countermeasure takes effect
// this tick. Resolution only fires once the threat is inside the
// countermeasure's effective range; the range gate stands in for deployment
// and travel time. A threat never placed in range before breaching is
// handled by the breach check, which runs first.
func (e *Engine) resolveEngagement(t *threat.Threat, tick int, ts time.Time) (Event, bool) {
	cm := t.Assigned
	if cm == nil || t.DistanceToBaseM > cm.EffectiveRangeM {
		return Event{}, false
	}

	if e.randFloat() < cm.Effectiveness {
		e.neutralizeLocked(t, tick, e.killReward)
		return Event{
			MissionID: e.missionID, Tick: tick, Kind: EventNeutralization,
			ThreatID: t.ID, Countermeasure: cm.Name,
			Detail: fmt.Sprintf("%s destroyed (+%d)", t.Archetype.Name, e.killReward), Timestamp: ts,
		}, true
	}

	// Failed draw still degrades the airframe.
	t.HealthPct -= float64(20 + e.rand.Intn(31))
	if t.HealthPct > 0 {
		return Event{}, false
	}
	t.HealthPct = 0
	e.neutralizeLocked(t, tick, e.attritionReward)
	return Event{
		MissionID: e.missionID, Tick: tick, Kind: EventNeutralization,
		ThreatID: t.ID, Countermeasure: cm.Name,
		Detail: fmt.Sprintf("%s downed by attrition (+%d)", t.Archetype.Name, e.attritionReward), Timestamp: ts,
	}, true
}

func (e *Engine) neutralizeLocked(t *threat.Threat, tick int, reward int) {
	t.Status = threat.StatusNeutralized
	resolved := tick
	t.TickResolved = &resolved
	e.state.Score += reward
	e.state.NeutralizedCount++
}
