// Admin HTTP surface over the mission engine.
package admin

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"html/template"
	"net/http"
	"strconv"

	"skyshield/internal/engine"
)

// Server exposes the engine's external contract over HTTP. Each endpoint
// maps to one request/response pair; rejected actions come back as tagged
// outcomes, never as silent drops.
type Server struct {
	Engine *engine.Engine
	tpl    *template.Template
}

//go:embed templates/index.html
var content embed.FS

// NewServer wraps an engine.
func NewServer(e *engine.Engine) *Server {
	tpl := template.Must(template.New("index.html").ParseFS(content, "templates/index.html"))
	return &Server{Engine: e, tpl: tpl}
}

func (s *Server) routes(mux *http.ServeMux) {
	mux.HandleFunc("/", s.handleIndex)
	mux.HandleFunc("/snapshot", s.handleSnapshot)
	mux.HandleFunc("/state", s.handleState)
	mux.HandleFunc("/assign", s.handleAssign)
	mux.HandleFunc("/scenario", s.handleScenario)
	mux.HandleFunc("/tick", s.handleTick)
	mux.HandleFunc("/pause", s.handlePause)
	mux.HandleFunc("/resume", s.handleResume)
	mux.HandleFunc("/reset", s.handleReset)
	mux.HandleFunc("/coverage", s.handleCoverage)
}

// Start serves until ctx is done.
func (s *Server) Start(ctx context.Context, addr string) error {
	mux := http.NewServeMux()
	s.routes(mux)
	srv := &http.Server{Addr: addr, Handler: mux}
	go func() {
		<-ctx.Done()
		_ = srv.Shutdown(context.Background())
	}()
	return srv.ListenAndServe()
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	snap := s.Engine.Snapshot()
	_ = s.tpl.Execute(w, snap)
}

func (s *Server) handleSnapshot(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(s.Engine.Snapshot())
}

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(s.Engine.Snapshot().State)
}

// assignOutcome is the tagged result of an assign request.
type assignOutcome struct {
	OK        bool    `json:"ok"`
	Error     string  `json:"error,omitempty"`
	Shortfall float64 `json:"shortfall,omitempty"`
}

func (s *Server) handleAssign(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	threatID := r.URL.Query().Get("threat")
	cm := r.URL.Query().Get("countermeasure")
	out := assignOutcome{OK: true}
	status := http.StatusOK
	if err := s.Engine.Assign(threatID, cm); err != nil {
		out.OK = false
		status = http.StatusConflict
		var budgetErr *engine.InsufficientBudgetError
		switch {
		case errors.As(err, &budgetErr):
			out.Error = "insufficient_budget"
			out.Shortfall = budgetErr.Shortfall()
		case errors.Is(err, engine.ErrThreatNotFound):
			out.Error = "threat_not_found"
			status = http.StatusNotFound
		case errors.Is(err, engine.ErrThreatNotEngageable):
			out.Error = "threat_not_engageable"
		default:
			out.Error = err.Error()
			status = http.StatusBadRequest
		}
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(out)
}

func (s *Server) handleScenario(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	name := r.URL.Query().Get("name")
	if err := s.Engine.StartScenario(name); err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleTick(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	n, _ := strconv.Atoi(r.URL.Query().Get("n"))
	if n <= 0 {
		n = 1
	}
	if s.Engine.RunStateNow() != engine.RunRunning {
		http.Error(w, engine.ErrNotRunning.Error(), http.StatusConflict)
		return
	}
	report := s.Engine.TickN(n)
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(report)
}

func (s *Server) handlePause(w http.ResponseWriter, r *http.Request) {
	s.Engine.Pause()
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleResume(w http.ResponseWriter, r *http.Request) {
	s.Engine.Resume()
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	s.Engine.Reset()
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleCoverage(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	pct, err := strconv.ParseFloat(r.URL.Query().Get("pct"), 64)
	if err != nil {
		http.Error(w, "invalid pct", http.StatusBadRequest)
		return
	}
	s.Engine.SetRadarCoverage(pct)
	w.WriteHeader(http.StatusNoContent)
}
