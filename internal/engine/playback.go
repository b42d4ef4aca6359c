package engine

import (
	"encoding/json"
	"io"
	"os"
	"time"

	"skyshield/internal/threat"
)

// ReplayTracks replays threat track rows from r into writer. A speed >0
// accelerates playback; speed <= 0 inserts no artificial delay.
func ReplayTracks(r io.Reader, writer ThreatWriter, speed float64) error {
	dec := json.NewDecoder(r)
	var prev time.Time
	for {
		var row threat.Row
		if err := dec.Decode(&row); err != nil {
			if err == io.EOF {
				return nil
			}
			return err
		}
		sleepGap(&prev, row.Timestamp, speed)
		if err := writer.WriteThreat(row); err != nil {
			return err
		}
	}
}

// ReplayEvents replays mission events from r into writer.
func ReplayEvents(r io.Reader, writer EventWriter, speed float64) error {
	dec := json.NewDecoder(r)
	var prev time.Time
	for {
		var ev Event
		if err := dec.Decode(&ev); err != nil {
			if err == io.EOF {
				return nil
			}
			return err
		}
		sleepGap(&prev, ev.Timestamp, speed)
		if err := writer.WriteEvent(ev); err != nil {
			return err
		}
	}
}

// ReplayTrackFile opens a JSONL file and replays its track rows.
func ReplayTrackFile(path string, writer ThreatWriter, speed float64) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return ReplayTracks(f, writer, speed)
}

// ReplayEventFile opens a JSONL file and replays its mission events.
func ReplayEventFile(path string, writer EventWriter, speed float64) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return ReplayEvents(f, writer, speed)
}

func sleepGap(prev *time.Time, ts time.Time, speed float64) {
	if !prev.IsZero() && speed > 0 {
		diff := ts.Sub(*prev)
		if speed != 1 {
			diff = time.Duration(float64(diff) / speed)
		}
		if diff > 0 {
			time.Sleep(diff)
		}
	}
	*prev = ts
}
