package engine

import (
	"testing"
	"time"

	"skyshield/internal/threat"
)

func engageThreat(t *testing.T, e *Engine, tr *threat.Threat, cmName string) {
	t.Helper()
	cm, err := e.catalog.Countermeasure(cmName)
	if err != nil {
		t.Fatalf("catalog: %v", err)
	}
	tr.Assigned = &cm
	tr.Status = threat.StatusEngaged
}

func TestResolve_KillAwardsFullReward(t *testing.T) {
	e := newTestEngine(nil)
	e.randFloat = func() float64 { return 0 } // draw always succeeds
	tr := placeThreat(e, mustThreatArch(t, "fpv-strike"), 1500)
	engageThreat(t, e, tr, "gun-ciws")
	ev, ok := e.resolveEngagement(tr, 7, time.Now())
	if !ok {
		t.Fatalf("expected neutralization")
	}
	if ev.Kind != EventNeutralization || ev.Countermeasure != "gun-ciws" {
		t.Fatalf("unexpected event: %+v", ev)
	}
	if tr.Status != threat.StatusNeutralized {
		t.Fatalf("status = %s, want %s", tr.Status, threat.StatusNeutralized)
	}
	if tr.TickResolved == nil || *tr.TickResolved != 7 {
		t.Fatalf("tick_resolved not recorded")
	}
	if e.state.Score != 100 || e.state.NeutralizedCount != 1 {
		t.Fatalf("score=%d neutralized=%d, want 100/1", e.state.Score, e.state.NeutralizedCount)
	}
}

func TestResolve_OutOfRangeIsNoOp(t *testing.T) {
	e := newTestEngine(nil)
	e.randFloat = func() float64 { return 0 }
	tr := placeThreat(e, mustThreatArch(t, "fpv-strike"), 5000)
	engageThreat(t, e, tr, "gun-ciws") // 2000 m reach
	if _, ok := e.resolveEngagement(tr, 1, time.Now()); ok {
		t.Fatalf("resolved outside effective range")
	}
	if tr.Status != threat.StatusEngaged || tr.HealthPct != 100 {
		t.Fatalf("out-of-range resolution mutated the threat")
	}
}

func TestResolve_AttritionKill(t *testing.T) {
	e := newTestEngine(nil)
	e.randFloat = func() float64 { return 1 } // draw always fails
	tr := placeThreat(e, mustThreatArch(t, "loitering-munition"), 1500)
	engageThreat(t, e, tr, "gun-ciws")

	// Each failed draw chips 20-50 health; at most 5 draws reach zero.
	var ev Event
	resolvedAt := 0
	for i := 1; i <= 5; i++ {
		var ok bool
		if ev, ok = e.resolveEngagement(tr, i, time.Now()); ok {
			resolvedAt = i
			break
		}
		if tr.HealthPct >= 100 {
			t.Fatalf("failed draw did not degrade health")
		}
	}
	if resolvedAt == 0 {
		t.Fatalf("attrition never downed the threat")
	}
	if tr.Status != threat.StatusNeutralized || tr.HealthPct != 0 {
		t.Fatalf("status=%s health=%f after attrition kill", tr.Status, tr.HealthPct)
	}
	if ev.Kind != EventNeutralization {
		t.Fatalf("unexpected event: %+v", ev)
	}
	if e.state.Score != 80 {
		t.Fatalf("score = %d, want attrition reward 80", e.state.Score)
	}
}

func TestTick_BreachBeatsResolution(t *testing.T) {
	e := newTestEngine(nil)
	e.randFloat = func() float64 { return 0 } // resolution would kill if reached
	tr := placeThreat(e, mustThreatArch(t, "loitering-munition"), 540)
	engageThreat(t, e, tr, "gun-ciws")
	e.Tick()
	if tr.Status != threat.StatusBreached {
		t.Fatalf("status = %s, want %s: perimeter crossing must win over resolution", tr.Status, threat.StatusBreached)
	}
	if e.state.Score != 0 || e.state.NeutralizedCount != 0 {
		t.Fatalf("breached threat still scored: score=%d", e.state.Score)
	}
	if e.state.BreachCount != 1 {
		t.Fatalf("breach not counted")
	}
}
