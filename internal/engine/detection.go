package engine

import (
	"time"

	"skyshield/internal/threat"
)

// detectionRangeM derives the sensor range from radar coverage: 100 meters
// per percentage point, floored so the range never reaches zero.
func (e *Engine) detectionRangeM() float64 {
	cov := e.state.RadarCoveragePct
	if cov < 1 {
		cov = 1
	}
	return cov * 100
}

// evaluateDetection recomputes the threat's detection probability for this
// tick and promotes incoming threats that cross the threshold. Promotion is
// deterministic, not a dice roll; the stochastic draw happens at engagement
// resolution. TickDetected is set exactly once and never overwritten.
func (e *Engine) evaluateDetection(t *threat.Threat, tick int, ts time.Time) (Event, bool) {
	rangeM := e.detectionRangeM()
	p := (rangeM - t.DistanceToBaseM) / rangeM * t.Archetype.RadarCrossSectionM2 * e.detectionScale
	if p < 0 {
		p = 0
	} else if p > 1 {
		p = 1
	}
	t.DetectionProbability = p

	if p < e.detectionThreshold || t.TickDetected != nil {
		return Event{}, false
	}
	detected := tick
	t.TickDetected = &detected
	if t.Status == threat.StatusIncoming {
		t.Status = threat.StatusDetected
	}
	return Event{
		MissionID: e.missionID, Tick: tick, Kind: EventDetection,
		ThreatID: t.ID, Detail: t.Archetype.Name, Timestamp: ts,
	}, true
}
