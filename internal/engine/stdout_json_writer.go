package engine

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"skyshield/internal/threat"
)

// JSONStdoutWriter prints tracks, events, and state as JSON to STDOUT.
type JSONStdoutWriter struct {
	out io.Writer
}

// NewJSONStdoutWriter creates a JSONStdoutWriter writing to os.Stdout.
func NewJSONStdoutWriter() *JSONStdoutWriter {
	return &JSONStdoutWriter{out: os.Stdout}
}

// WriteThreat outputs a threat track row in JSON format.
func (w *JSONStdoutWriter) WriteThreat(row threat.Row) error {
	data, _ := json.Marshal(row)
	fmt.Fprintln(w.out, string(data))
	return nil
}

// WriteThreats outputs multiple track rows in JSON format.
func (w *JSONStdoutWriter) WriteThreats(rows []threat.Row) error {
	for _, r := range rows {
		_ = w.WriteThreat(r)
	}
	return nil
}

// WriteEvent outputs a mission event in JSON format.
func (w *JSONStdoutWriter) WriteEvent(ev Event) error {
	data, _ := json.Marshal(ev)
	fmt.Fprintln(w.out, string(data))
	return nil
}

// WriteEvents outputs multiple mission events in JSON format.
func (w *JSONStdoutWriter) WriteEvents(events []Event) error {
	for _, ev := range events {
		_ = w.WriteEvent(ev)
	}
	return nil
}

// WriteState outputs a mission state row in JSON format.
func (w *JSONStdoutWriter) WriteState(row StateRow) error {
	data, _ := json.Marshal(row)
	fmt.Fprintln(w.out, string(data))
	return nil
}
