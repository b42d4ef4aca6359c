package engine

import (
	"context"
	"log/slog"

	gpb "github.com/GreptimeTeam/greptime-proto/go/greptime/v1"
	greptime "github.com/GreptimeTeam/greptimedb-ingester-go"
	"github.com/GreptimeTeam/greptimedb-ingester-go/table"
	"github.com/GreptimeTeam/greptimedb-ingester-go/table/types"

	"skyshield/internal/threat"
)

// greptimeClient abstracts the ingester client for testing.
type greptimeClient interface {
	Write(ctx context.Context, tables ...*table.Table) (*gpb.GreptimeResponse, error)
}

// GreptimeDBWriter writes mission telemetry to GreptimeDB via the ingester
// client. This is export only; the engine never reads anything back.
type GreptimeDBWriter struct {
	client     greptimeClient
	trackTable string
	eventTable string
	stateTable string
}

// NewGreptimeDBWriter creates a writer for the given endpoint and database.
// Empty table names fall back to the package defaults.
func NewGreptimeDBWriter(endpoint, database, trackTable, eventTable, stateTable string) (*GreptimeDBWriter, error) {
	cfg := greptime.NewConfig(endpoint).WithDatabase(database)
	client, err := greptime.NewClient(cfg)
	if err != nil {
		return nil, err
	}
	if trackTable == "" {
		trackTable = threat.TrackTableName
	}
	if eventTable == "" {
		eventTable = EventTableName
	}
	if stateTable == "" {
		stateTable = StateTableName
	}
	return &GreptimeDBWriter{
		client:     client,
		trackTable: trackTable,
		eventTable: eventTable,
		stateTable: stateTable,
	}, nil
}

// WriteThreat inserts a single track row.
func (w *GreptimeDBWriter) WriteThreat(row threat.Row) error {
	return w.WriteThreats([]threat.Row{row})
}

// WriteThreats inserts multiple track rows.
func (w *GreptimeDBWriter) WriteThreats(rows []threat.Row) error {
	if len(rows) == 0 {
		return nil
	}
	tbl, err := table.New(w.trackTable)
	if err != nil {
		return err
	}
	tbl.AddTagColumn("mission_id", types.STRING)
	tbl.AddTagColumn("threat_id", types.STRING)
	tbl.AddFieldColumn("archetype", types.STRING)
	tbl.AddFieldColumn("tier", types.STRING)
	tbl.AddFieldColumn("lat", types.FLOAT)
	tbl.AddFieldColumn("lon", types.FLOAT)
	tbl.AddFieldColumn("alt", types.FLOAT)
	tbl.AddFieldColumn("distance_m", types.FLOAT)
	tbl.AddFieldColumn("status", types.STRING)
	tbl.AddFieldColumn("health_pct", types.FLOAT)
	tbl.AddFieldColumn("detection_prob", types.FLOAT)
	tbl.AddFieldColumn("countermeasure", types.STRING)
	tbl.AddTimestampColumn("ts", types.TIMESTAMP_MILLISECOND)

	for _, r := range rows {
		if err := tbl.AddRow(r.MissionID, r.ThreatID, r.Archetype, string(r.Tier),
			r.Lat, r.Lon, r.Alt, r.DistanceM, string(r.Status),
			r.HealthPct, r.DetectionProb, r.Countermeasure, r.Timestamp); err != nil {
			return err
		}
	}
	return w.write(tbl, len(rows))
}

// WriteEvent inserts a single mission event.
func (w *GreptimeDBWriter) WriteEvent(ev Event) error {
	return w.WriteEvents([]Event{ev})
}

// WriteEvents inserts multiple mission events.
func (w *GreptimeDBWriter) WriteEvents(events []Event) error {
	if len(events) == 0 {
		return nil
	}
	tbl, err := table.New(w.eventTable)
	if err != nil {
		return err
	}
	tbl.AddTagColumn("mission_id", types.STRING)
	tbl.AddFieldColumn("tick", types.INT64)
	tbl.AddFieldColumn("kind", types.STRING)
	tbl.AddFieldColumn("threat_id", types.STRING)
	tbl.AddFieldColumn("countermeasure", types.STRING)
	tbl.AddFieldColumn("detail", types.STRING)
	tbl.AddTimestampColumn("ts", types.TIMESTAMP_MILLISECOND)

	for _, ev := range events {
		if err := tbl.AddRow(ev.MissionID, int64(ev.Tick), ev.Kind,
			ev.ThreatID, ev.Countermeasure, ev.Detail, ev.Timestamp); err != nil {
			return err
		}
	}
	return w.write(tbl, len(events))
}

// WriteState inserts a mission state row.
func (w *GreptimeDBWriter) WriteState(row StateRow) error {
	tbl, err := table.New(w.stateTable)
	if err != nil {
		return err
	}
	tbl.AddTagColumn("mission_id", types.STRING)
	tbl.AddFieldColumn("tick", types.INT64)
	tbl.AddFieldColumn("score", types.INT64)
	tbl.AddFieldColumn("budget_remaining", types.FLOAT)
	tbl.AddFieldColumn("radar_coverage_pct", types.FLOAT)
	tbl.AddFieldColumn("assets_protected_pct", types.FLOAT)
	tbl.AddFieldColumn("neutralized", types.INT64)
	tbl.AddFieldColumn("breached", types.INT64)
	tbl.AddFieldColumn("live_threats", types.INT64)
	tbl.AddFieldColumn("run_state", types.STRING)
	tbl.AddTimestampColumn("ts", types.TIMESTAMP_MILLISECOND)

	if err := tbl.AddRow(row.MissionID, int64(row.Tick), int64(row.Score),
		row.BudgetRemaining, row.RadarCoveragePct, row.AssetsProtectedPct,
		int64(row.Neutralized), int64(row.Breached), int64(row.LiveThreats),
		string(row.RunState), row.Timestamp); err != nil {
		return err
	}
	return w.write(tbl, 1)
}

func (w *GreptimeDBWriter) write(tbl *table.Table, n int) error {
	if _, err := w.client.Write(context.Background(), tbl); err != nil {
		slog.Error("greptime write failed", "err", err)
		return err
	}
	slog.Debug("greptime write", "rows", n)
	return nil
}
