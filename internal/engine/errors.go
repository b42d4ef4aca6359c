package engine

import (
	"errors"
	"fmt"
)

// Errors surfaced to the operator for rejected actions. None are fatal to
// the mission.
var (
	ErrThreatNotFound      = errors.New("threat not found")
	ErrThreatNotEngageable = errors.New("threat not engageable")
	ErrUnknownScenario     = errors.New("unknown scenario")
	ErrNotRunning          = errors.New("mission not running")
)

// InsufficientBudgetError rejects an assignment whose cost exceeds the
// remaining budget. The action has no side effects.
type InsufficientBudgetError struct {
	Cost      float64
	Remaining float64
}

func (e *InsufficientBudgetError) Error() string {
	return fmt.Sprintf("insufficient budget: cost %.0f exceeds remaining %.0f (short %.0f)",
		e.Cost, e.Remaining, e.Cost-e.Remaining)
}

// Shortfall returns how much budget the rejected assignment was missing.
func (e *InsufficientBudgetError) Shortfall() float64 {
	return e.Cost - e.Remaining
}
