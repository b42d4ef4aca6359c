package engine

import (
	"bytes"
	"strings"
	"testing"

	"skyshield/internal/config"
	"skyshield/internal/threat"
)

func TestColorStdoutWriter_PrintsOverviewOnce(t *testing.T) {
	var buf bytes.Buffer
	w := &ColorStdoutWriter{
		cfg: &config.DefenseConfig{
			Base:          config.BasePosition{Lat: 33.7215, Lon: 73.0433},
			InitialBudget: 100000,
			Scenarios:     []config.Scenario{{Name: "PROBE", Description: "single pass"}},
		},
		out: &buf,
	}
	if err := w.WriteThreat(sampleRow()); err != nil {
		t.Fatalf("WriteThreat: %v", err)
	}
	if err := w.WriteThreat(sampleRow()); err != nil {
		t.Fatalf("WriteThreat: %v", err)
	}
	out := buf.String()
	if got := strings.Count(out, "Defense Configuration:"); got != 1 {
		t.Fatalf("overview printed %d times, want 1", got)
	}
	if !strings.Contains(out, "PROBE") {
		t.Fatalf("scenario table missing from overview")
	}
	if !strings.Contains(out, "threat=t-1") || !strings.Contains(out, "status=incoming") {
		t.Fatalf("track line missing fields: %q", out)
	}
}

func TestColorStdoutWriter_EventAndState(t *testing.T) {
	var buf bytes.Buffer
	w := &ColorStdoutWriter{out: &buf}
	if err := w.WriteEvent(sampleEvent()); err != nil {
		t.Fatalf("WriteEvent: %v", err)
	}
	if err := w.WriteState(StateRow{Tick: 7, Score: 100, BudgetRemaining: 98500}); err != nil {
		t.Fatalf("WriteState: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "detection") || !strings.Contains(out, "tick=4") {
		t.Fatalf("event line missing fields: %q", out)
	}
	if !strings.Contains(out, "score=100") || !strings.Contains(out, "budget=98500") {
		t.Fatalf("state line missing fields: %q", out)
	}
}

func TestStatusColor(t *testing.T) {
	if statusColor(threat.StatusBreached) != colorRed {
		t.Fatalf("breached should render red")
	}
	if statusColor(threat.StatusNeutralized) != colorGreen {
		t.Fatalf("neutralized should render green")
	}
	if statusColor(threat.StatusIncoming) != colorGray {
		t.Fatalf("incoming should render gray")
	}
}
