package admin

import (
	"encoding/json"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"skyshield/internal/catalog"
	"skyshield/internal/config"
	"skyshield/internal/engine"
)

func newTestServer(t *testing.T) (*Server, *http.ServeMux) {
	t.Helper()
	cfg := &config.DefenseConfig{
		Base: config.BasePosition{Lat: 33.7215, Lon: 73.0433},
		Scenarios: []config.Scenario{
			{Name: "PROBE", Mix: []config.ScenarioMix{{Archetype: "recon-quad", Count: 1}}},
		},
	}
	eng := engine.New("mission-test", cfg, catalog.Default(), nil, nil, nil,
		time.Second, rand.New(rand.NewSource(1)))
	srv := NewServer(eng)
	mux := http.NewServeMux()
	srv.routes(mux)
	return srv, mux
}

func TestSnapshotEndpoint(t *testing.T) {
	srv, mux := newTestServer(t)
	if err := srv.Engine.StartScenario("PROBE"); err != nil {
		t.Fatalf("StartScenario: %v", err)
	}
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/snapshot", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var snap engine.Snapshot
	if err := json.Unmarshal(rec.Body.Bytes(), &snap); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if len(snap.Threats) != 1 {
		t.Fatalf("expected 1 threat, got %d", len(snap.Threats))
	}
	if snap.State.RunState != engine.RunRunning {
		t.Fatalf("run state = %s", snap.State.RunState)
	}
}

func TestAssignEndpoint_NotFound(t *testing.T) {
	_, mux := newTestServer(t)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost,
		"/assign?threat=ghost&countermeasure=rf-jammer", nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
	var out struct {
		OK    bool   `json:"ok"`
		Error string `json:"error"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if out.OK || out.Error != "threat_not_found" {
		t.Fatalf("outcome = %+v", out)
	}
}

func TestAssignEndpoint_InsufficientBudget(t *testing.T) {
	cfg := &config.DefenseConfig{
		Base:          config.BasePosition{Lat: 33.7215, Lon: 73.0433},
		InitialBudget: 1000, // below the cheapest countermeasure
		Scenarios: []config.Scenario{
			{Name: "PROBE", Mix: []config.ScenarioMix{{Archetype: "recon-quad", Count: 1}}},
		},
	}
	eng := engine.New("mission-test", cfg, catalog.Default(), nil, nil, nil,
		time.Second, rand.New(rand.NewSource(1)))
	srv := NewServer(eng)
	mux := http.NewServeMux()
	srv.routes(mux)
	if err := srv.Engine.StartScenario("PROBE"); err != nil {
		t.Fatalf("StartScenario: %v", err)
	}
	id := srv.Engine.Snapshot().Threats[0].ID

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost,
		"/assign?threat="+id+"&countermeasure=rf-jammer", nil))
	if rec.Code != http.StatusConflict {
		t.Fatalf("status = %d, want 409", rec.Code)
	}
	var out struct {
		Error     string  `json:"error"`
		Shortfall float64 `json:"shortfall"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if out.Error != "insufficient_budget" || out.Shortfall != 500 {
		t.Fatalf("outcome = %+v", out)
	}
}

func TestAssignEndpoint_NotEngageable(t *testing.T) {
	srv, mux := newTestServer(t)
	if err := srv.Engine.StartScenario("PROBE"); err != nil {
		t.Fatalf("StartScenario: %v", err)
	}
	id := srv.Engine.Snapshot().Threats[0].ID
	if err := srv.Engine.Assign(id, "rf-jammer"); err != nil {
		t.Fatalf("first assign: %v", err)
	}
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost,
		"/assign?threat="+id+"&countermeasure=gun-ciws", nil))
	if rec.Code != http.StatusConflict {
		t.Fatalf("status = %d, want 409", rec.Code)
	}
	var out struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if out.Error != "threat_not_engageable" {
		t.Fatalf("outcome error = %q", out.Error)
	}
}

func TestAssignEndpoint_MethodGuard(t *testing.T) {
	_, mux := newTestServer(t)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/assign", nil))
	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("status = %d, want 405", rec.Code)
	}
}

func TestScenarioEndpoint_Unknown(t *testing.T) {
	_, mux := newTestServer(t)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/scenario?name=NOPE", nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}

func TestTickEndpoint(t *testing.T) {
	srv, mux := newTestServer(t)

	// Fast-forward on a stopped mission must bounce.
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/tick?n=5", nil))
	if rec.Code != http.StatusConflict {
		t.Fatalf("stopped tick status = %d, want 409", rec.Code)
	}

	if err := srv.Engine.StartScenario("PROBE"); err != nil {
		t.Fatalf("StartScenario: %v", err)
	}
	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/tick?n=5", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var report engine.TickReport
	if err := json.Unmarshal(rec.Body.Bytes(), &report); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if report.Tick != 5 {
		t.Fatalf("tick = %d, want 5", report.Tick)
	}
}

func TestCoverageEndpoint(t *testing.T) {
	srv, mux := newTestServer(t)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/coverage?pct=40", nil))
	if rec.Code != http.StatusNoContent {
		t.Fatalf("status = %d", rec.Code)
	}
	if got := srv.Engine.Snapshot().State.RadarCoveragePct; got != 40 {
		t.Fatalf("coverage = %f, want 40", got)
	}

	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/coverage?pct=abc", nil))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestPauseResumeReset(t *testing.T) {
	srv, mux := newTestServer(t)
	if err := srv.Engine.StartScenario("PROBE"); err != nil {
		t.Fatalf("StartScenario: %v", err)
	}
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/pause", nil))
	if srv.Engine.RunStateNow() != engine.RunPaused {
		t.Fatalf("not paused")
	}
	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/resume", nil))
	if srv.Engine.RunStateNow() != engine.RunRunning {
		t.Fatalf("not resumed")
	}
	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/reset", nil))
	if rec.Code != http.StatusNoContent {
		t.Fatalf("reset status = %d", rec.Code)
	}
	if srv.Engine.RunStateNow() != engine.RunStopped {
		t.Fatalf("not reset")
	}
}
