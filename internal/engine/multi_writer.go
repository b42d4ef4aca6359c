package engine

import "skyshield/internal/threat"

// MultiWriter fans out track, event, and state rows to multiple writers.
type MultiWriter struct {
	trackWriters []ThreatWriter
	eventWriters []EventWriter
	stateWriters []StateWriter
}

// NewMultiWriter creates a new MultiWriter.
func NewMultiWriter(tws []ThreatWriter, ews []EventWriter, sws []StateWriter) *MultiWriter {
	return &MultiWriter{trackWriters: tws, eventWriters: ews, stateWriters: sws}
}

// WriteThreat sends a track row to all writers.
func (mw *MultiWriter) WriteThreat(row threat.Row) error {
	for _, w := range mw.trackWriters {
		if err := w.WriteThreat(row); err != nil {
			return err
		}
	}
	return nil
}

// WriteThreats sends multiple track rows to all writers, using batch mode
// where supported.
func (mw *MultiWriter) WriteThreats(rows []threat.Row) error {
	for _, w := range mw.trackWriters {
		if bw, ok := w.(batchThreatWriter); ok {
			if err := bw.WriteThreats(rows); err != nil {
				return err
			}
			continue
		}
		for _, r := range rows {
			if err := w.WriteThreat(r); err != nil {
				return err
			}
		}
	}
	return nil
}

// WriteEvent sends a mission event to all event writers.
func (mw *MultiWriter) WriteEvent(ev Event) error {
	for _, w := range mw.eventWriters {
		if err := w.WriteEvent(ev); err != nil {
			return err
		}
	}
	return nil
}

// WriteEvents sends multiple events to all event writers, using batch mode
// where supported.
func (mw *MultiWriter) WriteEvents(events []Event) error {
	for _, w := range mw.eventWriters {
		if bw, ok := w.(batchEventWriter); ok {
			if err := bw.WriteEvents(events); err != nil {
				return err
			}
			continue
		}
		for _, ev := range events {
			if err := w.WriteEvent(ev); err != nil {
				return err
			}
		}
	}
	return nil
}

// WriteState sends a state row to all state writers.
func (mw *MultiWriter) WriteState(row StateRow) error {
	for _, w := range mw.stateWriters {
		if err := w.WriteState(row); err != nil {
			return err
		}
	}
	return nil
}
