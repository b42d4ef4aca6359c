package engine

import (
	"encoding/json"
	"os"

	"skyshield/internal/threat"
)

// FileWriter writes track, event, and state data to JSONL files.
type FileWriter struct {
	trackFile *os.File
	eventFile *os.File
	stateFile *os.File
	trackEnc  *json.Encoder
	eventEnc  *json.Encoder
	stateEnc  *json.Encoder
}

// NewFileWriter creates a FileWriter. eventPath or statePath may be empty to
// skip those logs.
func NewFileWriter(trackPath, eventPath, statePath string) (*FileWriter, error) {
	tf, err := os.Create(trackPath)
	if err != nil {
		return nil, err
	}
	fw := &FileWriter{trackFile: tf, trackEnc: json.NewEncoder(tf)}
	if eventPath != "" {
		ef, err := os.Create(eventPath)
		if err != nil {
			tf.Close()
			return nil, err
		}
		fw.eventFile = ef
		fw.eventEnc = json.NewEncoder(ef)
	}
	if statePath != "" {
		sf, err := os.Create(statePath)
		if err != nil {
			if fw.eventFile != nil {
				fw.eventFile.Close()
			}
			tf.Close()
			return nil, err
		}
		fw.stateFile = sf
		fw.stateEnc = json.NewEncoder(sf)
	}
	return fw, nil
}

// WriteThreat logs a single track row.
func (f *FileWriter) WriteThreat(row threat.Row) error {
	return f.trackEnc.Encode(row)
}

// WriteThreats logs multiple track rows.
func (f *FileWriter) WriteThreats(rows []threat.Row) error {
	for _, r := range rows {
		if err := f.WriteThreat(r); err != nil {
			return err
		}
	}
	return nil
}

// WriteEvent logs a single mission event, if enabled.
func (f *FileWriter) WriteEvent(ev Event) error {
	if f.eventEnc == nil {
		return nil
	}
	return f.eventEnc.Encode(ev)
}

// WriteEvents logs multiple mission events.
func (f *FileWriter) WriteEvents(events []Event) error {
	for _, ev := range events {
		if err := f.WriteEvent(ev); err != nil {
			return err
		}
	}
	return nil
}

// WriteState logs a mission state row, if enabled.
func (f *FileWriter) WriteState(row StateRow) error {
	if f.stateEnc == nil {
		return nil
	}
	return f.stateEnc.Encode(row)
}

// Close closes any underlying files.
func (f *FileWriter) Close() error {
	var err error
	if f.trackFile != nil {
		if e := f.trackFile.Close(); e != nil && err == nil {
			err = e
		}
	}
	if f.eventFile != nil {
		if e := f.eventFile.Close(); e != nil && err == nil {
			err = e
		}
	}
	if f.stateFile != nil {
		if e := f.stateFile.Close(); e != nil && err == nil {
			err = e
		}
	}
	return err
}
