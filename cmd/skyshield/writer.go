package main

import (
	"os"

	"skyshield/internal/config"
	"skyshield/internal/engine"
)

// newWriters sets up track, event, and state writers based on flags and env
// vars. It returns the writers, the TUI writer when one was created, and a
// cleanup function to close any resources.
func newWriters(cfg *config.DefenseConfig, useTUI, jsonOut bool, logFile string) (
	engine.ThreatWriter, engine.EventWriter, engine.StateWriter, *engine.TUIWriter, func(), error) {

	cleanup := func() {}

	var tw engine.ThreatWriter
	var ew engine.EventWriter
	var sw engine.StateWriter
	var tui *engine.TUIWriter

	switch {
	case useTUI:
		tui = engine.NewTUIWriter(cfg)
		tw, ew, sw = tui, tui, tui
		cleanup = func() { tui.Close() }
	case jsonOut:
		w := engine.NewJSONStdoutWriter()
		tw, ew, sw = w, w, w
	default:
		w := engine.NewColorStdoutWriter(cfg)
		tw, ew, sw = w, w, w
	}

	if endpoint := os.Getenv("GREPTIMEDB_ENDPOINT"); endpoint != "" {
		gw, err := engine.NewGreptimeDBWriter(endpoint, "public",
			os.Getenv("THREAT_TRACK_TABLE"), os.Getenv("MISSION_EVENT_TABLE"), os.Getenv("MISSION_STATE_TABLE"))
		if err != nil {
			cleanup()
			return nil, nil, nil, nil, nil, err
		}
		mw := engine.NewMultiWriter(
			[]engine.ThreatWriter{tw, gw},
			[]engine.EventWriter{ew, gw},
			[]engine.StateWriter{sw, gw})
		tw, ew, sw = mw, mw, mw
	}

	if logFile != "" {
		fw, err := engine.NewFileWriter(logFile, logFile+".events", logFile+".state")
		if err != nil {
			cleanup()
			return nil, nil, nil, nil, nil, err
		}
		mw := engine.NewMultiWriter(
			[]engine.ThreatWriter{tw, fw},
			[]engine.EventWriter{ew, fw},
			[]engine.StateWriter{sw, fw})
		prev := cleanup
		cleanup = func() {
			fw.Close()
			prev()
		}
		tw, ew, sw = mw, mw, mw
	}

	return tw, ew, sw, tui, cleanup, nil
}
