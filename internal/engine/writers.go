package engine

import "skyshield/internal/threat"

// ThreatWriter is an interface to support different track output writers.
type ThreatWriter interface {
	WriteThreat(threat.Row) error
}

// Optional: track writers may support batch mode.
type batchThreatWriter interface {
	WriteThreats([]threat.Row) error
}

// EventWriter handles mission event records.
type EventWriter interface {
	WriteEvent(Event) error
}

// Optional: event writers may support batch mode.
type batchEventWriter interface {
	WriteEvents([]Event) error
}

// StateWriter handles per-tick mission state rows.
type StateWriter interface {
	WriteState(StateRow) error
}
