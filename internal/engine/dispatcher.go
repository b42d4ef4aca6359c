package engine

import (
	"fmt"

	"skyshield/internal/threat"
)

// Assign binds a countermeasure archetype to a live threat, deducting its
// cost from the budget pool. Exactly one countermeasure per threat; a second
// assignment is rejected rather than stacked so budget accounting stays
// auditable. Rejections are synchronous and leave no partial state, and are
// mirrored into the event log for the operator.
func (e *Engine) Assign(threatID, countermeasureName string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	ts := e.now().UTC()
	tick := e.state.TickCount

	t, ok := e.index[threatID]
	if !ok {
		e.recordEvent(Event{
			MissionID: e.missionID, Tick: tick, Kind: EventRejected,
			ThreatID: threatID, Countermeasure: countermeasureName,
			Detail: "threat not found", Timestamp: ts,
		})
		return ErrThreatNotFound
	}
	if t.Status.Terminal() || t.Assigned != nil {
		e.recordEvent(Event{
			MissionID: e.missionID, Tick: tick, Kind: EventRejected,
			ThreatID: threatID, Countermeasure: countermeasureName,
			Detail: fmt.Sprintf("not engageable (status %s)", t.Status), Timestamp: ts,
		})
		return ErrThreatNotEngageable
	}
	cm, err := e.catalog.Countermeasure(countermeasureName)
	if err != nil {
		return err
	}
	if cm.UnitCost > e.state.BudgetRemaining {
		budgetErr := &InsufficientBudgetError{Cost: cm.UnitCost, Remaining: e.state.BudgetRemaining}
		e.recordEvent(Event{
			MissionID: e.missionID, Tick: tick, Kind: EventRejected,
			ThreatID: threatID, Countermeasure: countermeasureName,
			Detail: fmt.Sprintf("insufficient budget (short %.0f)", budgetErr.Shortfall()), Timestamp: ts,
		})
		return budgetErr
	}

	e.state.BudgetRemaining -= cm.UnitCost
	t.Assigned = &cm
	if t.Status == threat.StatusIncoming || t.Status == threat.StatusDetected {
		t.Status = threat.StatusEngaged
	}
	e.recordEvent(Event{
		MissionID: e.missionID, Tick: tick, Kind: EventAssignment,
		ThreatID: threatID, Countermeasure: cm.Name,
		Detail: fmt.Sprintf("cost %.0f, budget %.0f", cm.UnitCost, e.state.BudgetRemaining), Timestamp: ts,
	})
	return nil
}
