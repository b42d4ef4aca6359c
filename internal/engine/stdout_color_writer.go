// ColorStdoutWriter prints human-friendly, colorized mission output to STDOUT.
package engine

import (
	"fmt"
	"io"
	"os"
	"sync"
	"text/tabwriter"
	"time"

	"skyshield/internal/config"
	"skyshield/internal/threat"
)

const (
	colorReset   = "\x1b[0m"
	colorRed     = "\x1b[31m"
	colorGreen   = "\x1b[32m"
	colorYellow  = "\x1b[33m"
	colorBlue    = "\x1b[34m"
	colorMagenta = "\x1b[35m"
	colorCyan    = "\x1b[36m"
	colorGray    = "\x1b[90m"
)

func colorWhite() string { return "\x1b[37m" }

// ColorStdoutWriter prints rows using ANSI colors for quick scanning.
type ColorStdoutWriter struct {
	cfg  *config.DefenseConfig
	out  io.Writer
	once sync.Once
}

// NewColorStdoutWriter creates a ColorStdoutWriter writing to os.Stdout.
func NewColorStdoutWriter(cfg *config.DefenseConfig) *ColorStdoutWriter {
	return &ColorStdoutWriter{cfg: cfg, out: os.Stdout}
}

func (w *ColorStdoutWriter) printOverview() {
	if w.cfg == nil {
		return
	}
	fmt.Fprintln(w.out, "Defense Configuration:")
	tw := tabwriter.NewWriter(w.out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Base:\t(%.4f, %.4f)\n", w.cfg.Base.Lat, w.cfg.Base.Lon)
	fmt.Fprintf(tw, "Initial Budget:\t%.0f\n", w.cfg.InitialBudget)
	fmt.Fprintf(tw, "Radar Coverage (%%):\t%.0f\n", w.cfg.RadarCoveragePct)
	fmt.Fprintf(tw, "Breach Threshold (m):\t%.0f\n", w.cfg.BreachThresholdM)
	tw.Flush()

	fmt.Fprintln(w.out, "\nScenarios:")
	tw = tabwriter.NewWriter(w.out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Name\tDescription\n")
	for _, s := range w.cfg.Scenarios {
		fmt.Fprintf(tw, "%s\t%s\n", s.Name, s.Description)
	}
	tw.Flush()
	fmt.Fprintln(w.out)
}

func statusColor(s threat.Status) string {
	switch s {
	case threat.StatusBreached:
		return colorRed
	case threat.StatusNeutralized:
		return colorGreen
	case threat.StatusEngaged:
		return colorMagenta
	case threat.StatusDetected:
		return colorYellow
	default:
		return colorGray
	}
}

// WriteThreat outputs a single track row in colorized format.
func (w *ColorStdoutWriter) WriteThreat(row threat.Row) error {
	w.once.Do(w.printOverview)
	fmt.Fprintf(w.out, "%s[%s]%s ", colorGray, row.Timestamp.Format(time.RFC3339), colorReset)
	fmt.Fprintf(w.out, "%smission=%s%s ", colorBlue, row.MissionID, colorReset)
	fmt.Fprintf(w.out, "%sthreat=%s%s ", colorWhite(), row.ThreatID, colorReset)
	fmt.Fprintf(w.out, "%stype=%s/%s%s ", colorMagenta, row.Archetype, row.Tier, colorReset)
	fmt.Fprintf(w.out, "%slat=%.5f%s ", colorGreen, row.Lat, colorReset)
	fmt.Fprintf(w.out, "%slon=%.5f%s ", colorYellow, row.Lon, colorReset)
	fmt.Fprintf(w.out, "%salt=%.0f%s ", colorCyan, row.Alt, colorReset)
	fmt.Fprintf(w.out, "%sdist=%.0fm%s ", colorYellow, row.DistanceM, colorReset)
	fmt.Fprintf(w.out, "%shp=%.0f%s ", colorCyan, row.HealthPct, colorReset)
	fmt.Fprintf(w.out, "%sp=%.2f%s ", colorGreen, row.DetectionProb, colorReset)
	if row.Countermeasure != "" {
		fmt.Fprintf(w.out, "%scm=%s%s ", colorMagenta, row.Countermeasure, colorReset)
	}
	fmt.Fprintf(w.out, "%sstatus=%s%s\n", statusColor(row.Status), row.Status, colorReset)
	return nil
}

// WriteThreats outputs multiple track rows.
func (w *ColorStdoutWriter) WriteThreats(rows []threat.Row) error {
	for _, r := range rows {
		_ = w.WriteThreat(r)
	}
	return nil
}

// WriteEvent prints a mission event to STDOUT.
func (w *ColorStdoutWriter) WriteEvent(ev Event) error {
	w.once.Do(w.printOverview)
	kindColor := colorCyan
	switch ev.Kind {
	case EventBreach, EventRejected:
		kindColor = colorRed
	case EventNeutralization:
		kindColor = colorGreen
	case EventDetection:
		kindColor = colorYellow
	}
	fmt.Fprintf(w.out, "%s[%s]%s %s%s%s tick=%d", colorGray, ev.Timestamp.Format(time.RFC3339), colorReset,
		kindColor, ev.Kind, colorReset, ev.Tick)
	if ev.ThreatID != "" {
		fmt.Fprintf(w.out, " threat=%s", ev.ThreatID)
	}
	if ev.Countermeasure != "" {
		fmt.Fprintf(w.out, " cm=%s", ev.Countermeasure)
	}
	if ev.Detail != "" {
		fmt.Fprintf(w.out, " %s", ev.Detail)
	}
	fmt.Fprintln(w.out)
	return nil
}

// WriteEvents prints multiple mission events.
func (w *ColorStdoutWriter) WriteEvents(events []Event) error {
	for _, ev := range events {
		_ = w.WriteEvent(ev)
	}
	return nil
}

// WriteState prints mission state metrics to STDOUT.
func (w *ColorStdoutWriter) WriteState(row StateRow) error {
	w.once.Do(w.printOverview)
	fmt.Fprintf(w.out, "%s[%s]%s %sSTATE%s tick=%d score=%d budget=%.0f coverage=%.0f assets=%.0f kills=%d breaches=%d live=%d\n",
		colorGray, row.Timestamp.Format(time.RFC3339), colorReset,
		colorBlue, colorReset, row.Tick, row.Score, row.BudgetRemaining,
		row.RadarCoveragePct, row.AssetsProtectedPct, row.Neutralized, row.Breached, row.LiveThreats)
	return nil
}
