package engine

import (
	"context"
	"time"

	"skyshield/internal/logging"
	"skyshield/internal/threat"
)

// Run drives the clock at the configured cadence until ctx is done.
func (e *Engine) Run(ctx context.Context) {
	log := logging.FromContext(ctx)
	log.Info("starting engine", "mission_id", e.missionID, "tick_interval", e.tickInterval)
	ticker := time.NewTicker(e.tickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			e.Tick()
		case <-ctx.Done():
			log.Info("stopping engine", "mission_id", e.missionID)
			return
		}
	}
}

// Tick advances the simulation one step. Outside RunRunning it is a no-op
// returning a zero report.
func (e *Engine) Tick() TickReport {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.tickLocked()
}

// TickN burst-advances the clock n steps synchronously (fast-forward).
func (e *Engine) TickN(n int) TickReport {
	e.mu.Lock()
	defer e.mu.Unlock()
	var last TickReport
	for i := 0; i < n; i++ {
		last = e.tickLocked()
	}
	return last
}

func (e *Engine) tickLocked() TickReport {
	if e.runState != RunRunning {
		return TickReport{Tick: e.state.TickCount}
	}
	e.state.TickCount++
	tick := e.state.TickCount
	dt := e.tickInterval.Seconds()
	ts := e.now().UTC()

	var rows []threat.Row
	var events []Event
	changed := 0
	breachedThisTick := false

	// Insertion order is the iteration order; per threat the order is
	// advance, breach check, detection, resolution. The breach check runs
	// before resolution so a threat crossing the perimeter the same tick
	// its countermeasure would fire is recorded as breached.
	for _, t := range e.threats {
		if t.Status.Terminal() {
			continue
		}
		before := t.Status
		t.Advance(dt, e.base)

		if t.DistanceToBaseM <= e.breachThresholdM {
			t.Status = threat.StatusBreached
			resolved := tick
			t.TickResolved = &resolved
			e.state.BreachCount++
			breachedThisTick = true
			events = append(events, Event{
				MissionID: e.missionID, Tick: tick, Kind: EventBreach,
				ThreatID: t.ID, Detail: t.Archetype.Name, Timestamp: ts,
			})
		} else {
			if ev, ok := e.evaluateDetection(t, tick, ts); ok {
				events = append(events, ev)
			}
			if t.Status == threat.StatusEngaged {
				if ev, ok := e.resolveEngagement(t, tick, ts); ok {
					events = append(events, ev)
				}
			}
		}

		if t.Status != before {
			changed++
		}
		rows = append(rows, e.trackRow(t, ts))
	}

	if breachedThisTick {
		penalty := float64(5 + e.rand.Intn(16))
		e.state.AssetsProtectedPct -= penalty
		if e.state.AssetsProtectedPct < 0 {
			e.state.AssetsProtectedPct = 0
		}
	}

	if ev, ok := e.maybeSpawn(tick, ts); ok {
		events = append(events, ev)
		changed++
	}

	for _, ev := range events {
		e.recordEvent(ev)
	}
	e.writeTracks(rows)
	e.writeState(ts)

	return TickReport{Tick: tick, ThreatsChanged: changed, EventsEmitted: len(events)}
}

// maybeSpawn rolls the open-ended spawn policy: a fixed probability per tick,
// gated so spawns are at least spawnCooldownTicks apart.
func (e *Engine) maybeSpawn(tick int, ts time.Time) (Event, bool) {
	if tick-e.lastSpawnTick < e.spawnCooldownTicks {
		return Event{}, false
	}
	if e.randFloat() >= e.spawnProbability {
		return Event{}, false
	}
	names := e.catalog.ThreatNames()
	if len(names) == 0 {
		return Event{}, false
	}
	arch, err := e.catalog.Threat(names[e.rand.Intn(len(names))])
	if err != nil {
		return Event{}, false
	}
	t := e.spawnLocked(arch)
	e.lastSpawnTick = tick
	return Event{
		MissionID: e.missionID, Tick: tick, Kind: EventSpawn,
		ThreatID: t.ID, Detail: arch.Name, Timestamp: ts,
	}, true
}

func (e *Engine) trackRow(t *threat.Threat, ts time.Time) threat.Row {
	row := threat.Row{
		MissionID:     e.missionID,
		ThreatID:      t.ID,
		Archetype:     t.Archetype.Name,
		Tier:          t.Archetype.Tier,
		Lat:           t.Position.Lat,
		Lon:           t.Position.Lon,
		Alt:           t.Position.Alt,
		DistanceM:     t.DistanceToBaseM,
		Status:        t.Status,
		HealthPct:     t.HealthPct,
		DetectionProb: t.DetectionProbability,
		Timestamp:     ts,
	}
	if t.Assigned != nil {
		row.Countermeasure = t.Assigned.Name
	}
	return row
}

func (e *Engine) writeTracks(rows []threat.Row) {
	if e.trackWriter == nil || len(rows) == 0 {
		return
	}
	if bw, ok := e.trackWriter.(batchThreatWriter); ok {
		_ = bw.WriteThreats(rows)
		return
	}
	for _, r := range rows {
		_ = e.trackWriter.WriteThreat(r)
	}
}

func (e *Engine) writeState(ts time.Time) {
	if e.stateWriter == nil {
		return
	}
	live := 0
	for _, t := range e.threats {
		if !t.Status.Terminal() {
			live++
		}
	}
	_ = e.stateWriter.WriteState(StateRow{
		MissionID:          e.missionID,
		Tick:               e.state.TickCount,
		Score:              e.state.Score,
		BudgetRemaining:    e.state.BudgetRemaining,
		RadarCoveragePct:   e.state.RadarCoveragePct,
		AssetsProtectedPct: e.state.AssetsProtectedPct,
		Neutralized:        e.state.NeutralizedCount,
		Breached:           e.state.BreachCount,
		LiveThreats:        live,
		RunState:           e.runState,
		Timestamp:          ts,
	})
}
