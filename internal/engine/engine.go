// Engine orchestrating threat simulation and engagement resolution
package engine

import (
	"math/rand"
	"sync"
	"time"

	"skyshield/internal/catalog"
	"skyshield/internal/config"
	"skyshield/internal/threat"
)

// RunState is the mission clock state machine:
// stopped -> running <-> paused -> stopped (reset).
type RunState string

const (
	RunStopped RunState = "stopped"
	RunRunning RunState = "running"
	RunPaused  RunState = "paused"
)

// TickReport summarizes one clock advance.
type TickReport struct {
	Tick           int `json:"tick"`
	ThreatsChanged int `json:"threats_changed"`
	EventsEmitted  int `json:"events_emitted"`
}

// Engine owns the threat collection and mission state. All mutation and
// inspection goes through its mutex, so a ticker goroutine and the admin
// surface can drive it concurrently without violating the single-writer
// discipline.
type Engine struct {
	missionID string
	catalog   *catalog.Catalog
	base      threat.Position
	scenarios []config.Scenario

	threats []*threat.Threat
	index   map[string]*threat.Threat

	state    MissionState
	runState RunState

	trackWriter ThreatWriter
	eventWriter EventWriter
	stateWriter StateWriter

	tickInterval       time.Duration
	initialBudget      float64
	initialCoverage    float64
	spawnRange         threat.SpawnRange
	detectionScale     float64
	detectionThreshold float64
	breachThresholdM   float64
	spawnProbability   float64
	spawnCooldownTicks int
	eventCapacity      int
	killReward         int
	attritionReward    int
	lastSpawnTick      int

	rand      *rand.Rand
	randFloat func() float64
	now       func() time.Time

	mu sync.Mutex
}

// New creates an engine from config, applying defaults for zeroed tunables.
func New(missionID string, cfg *config.DefenseConfig, cat *catalog.Catalog,
	tw ThreatWriter, ew EventWriter, sw StateWriter,
	tickInterval time.Duration, r *rand.Rand) *Engine {

	if r == nil {
		r = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if tickInterval <= 0 {
		tickInterval = time.Second
	}
	e := &Engine{
		missionID:          missionID,
		catalog:            cat,
		base:               threat.Position{Lat: cfg.Base.Lat, Lon: cfg.Base.Lon, Alt: cfg.Base.AltM},
		scenarios:          cfg.Scenarios,
		index:              make(map[string]*threat.Threat),
		runState:           RunStopped,
		trackWriter:        tw,
		eventWriter:        ew,
		stateWriter:        sw,
		tickInterval:       tickInterval,
		initialBudget:      cfg.InitialBudget,
		initialCoverage:    cfg.RadarCoveragePct,
		spawnRange:         threat.SpawnRange{MinKM: cfg.SpawnMinKM, MaxKM: cfg.SpawnMaxKM},
		detectionScale:     cfg.DetectionScale,
		detectionThreshold: cfg.DetectionThreshold,
		breachThresholdM:   cfg.BreachThresholdM,
		spawnProbability:   cfg.SpawnProbability,
		spawnCooldownTicks: cfg.SpawnCooldownTicks,
		eventCapacity:      cfg.EventLogCapacity,
		killReward:         cfg.KillReward,
		attritionReward:    cfg.AttritionReward,
		rand:               r,
	}
	e.randFloat = r.Float64
	e.now = time.Now

	if e.initialBudget <= 0 {
		e.initialBudget = 100000
	}
	if e.initialCoverage <= 0 {
		e.initialCoverage = 85
	} else if e.initialCoverage > 100 {
		e.initialCoverage = 100
	}
	if e.spawnRange.MinKM <= 0 {
		e.spawnRange.MinKM = 10
	}
	if e.spawnRange.MaxKM <= e.spawnRange.MinKM {
		e.spawnRange.MaxKM = 50
	}
	if e.detectionScale <= 0 {
		e.detectionScale = 10
	}
	if e.detectionThreshold <= 0 {
		e.detectionThreshold = 0.3
	}
	if e.breachThresholdM <= 0 {
		e.breachThresholdM = 500
	}
	if e.spawnProbability <= 0 {
		e.spawnProbability = 0.1
	}
	if e.spawnCooldownTicks <= 0 {
		e.spawnCooldownTicks = 30
	}
	if e.eventCapacity <= 0 {
		e.eventCapacity = 50
	}
	if e.killReward <= 0 {
		e.killReward = 100
	}
	if e.attritionReward <= 0 {
		e.attritionReward = 80
	}

	e.resetStateLocked()
	return e
}

// resetStateLocked reinitializes mission state. Caller holds the lock (or is
// the constructor).
func (e *Engine) resetStateLocked() {
	e.threats = nil
	e.index = make(map[string]*threat.Threat)
	e.lastSpawnTick = 0
	e.state = MissionState{
		BudgetRemaining:    e.initialBudget,
		RadarCoveragePct:   e.initialCoverage,
		AssetsProtectedPct: 100,
	}
}

// StartScenario resolves a named threat-mix preset, resets mission state,
// and spawns the initial threat set. The clock enters RunRunning.
func (e *Engine) StartScenario(name string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	var preset config.Scenario
	found := false
	for _, s := range e.scenarios {
		if s.Name == name {
			preset, found = s, true
			break
		}
	}
	if !found {
		return ErrUnknownScenario
	}
	e.resetStateLocked()
	var events []Event
	for _, mix := range preset.Mix {
		arch, err := e.catalog.Threat(mix.Archetype)
		if err != nil {
			e.resetStateLocked()
			return err
		}
		for i := 0; i < mix.Count; i++ {
			t := e.spawnLocked(arch)
			events = append(events, Event{
				MissionID: e.missionID,
				Kind:      EventSpawn,
				ThreatID:  t.ID,
				Detail:    arch.Name,
				Timestamp: e.now().UTC(),
			})
		}
	}
	e.runState = RunRunning
	events = append([]Event{{
		MissionID: e.missionID,
		Kind:      EventScenario,
		Detail:    name,
		Timestamp: e.now().UTC(),
	}}, events...)
	for _, ev := range events {
		e.recordEvent(ev)
	}
	return nil
}

// Reset atomically discards all threats and reinitializes mission state.
// It is the only way to abort a running mission.
func (e *Engine) Reset() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.resetStateLocked()
	e.runState = RunStopped
}

// Pause suspends the clock; Tick becomes a no-op until Resume.
func (e *Engine) Pause() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.runState == RunRunning {
		e.runState = RunPaused
	}
}

// Resume continues a paused mission.
func (e *Engine) Resume() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.runState == RunPaused {
		e.runState = RunRunning
	}
}

// RunStateNow returns the current clock state.
func (e *Engine) RunStateNow() RunState {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.runState
}

// SetRadarCoverage adjusts sensor coverage between ticks. The value is
// clamped to [1,100]; the floor keeps the detection range strictly positive.
func (e *Engine) SetRadarCoverage(pct float64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if pct < 1 {
		pct = 1
	} else if pct > 100 {
		pct = 100
	}
	e.state.RadarCoveragePct = pct
}

// spawnLocked creates and registers one threat. Caller holds the lock.
func (e *Engine) spawnLocked(arch catalog.ThreatArchetype) *threat.Threat {
	t := threat.Spawn(arch, e.base, e.spawnRange, e.rand)
	e.threats = append(e.threats, t)
	e.index[t.ID] = t
	return t
}

// recordEvent appends to the bounded mission log and forwards to the event
// writer if one is attached. Caller holds the lock.
func (e *Engine) recordEvent(ev Event) {
	e.state.appendEvent(ev, e.eventCapacity)
	if e.eventWriter != nil {
		_ = e.eventWriter.WriteEvent(ev)
	}
}
