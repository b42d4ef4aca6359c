package engine

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"

	"skyshield/internal/config"
	"skyshield/internal/threat"
)

// teaProgram abstracts bubbletea.Program for testing.
type teaProgram interface {
	Send(tea.Msg)
}

// trackMsg carries one track row for the threat table.
type trackMsg struct{ threat.Row }

// eventMsg carries a mission event log line.
type eventMsg struct{ line string }

// tuiStateMsg carries a mission state update.
type tuiStateMsg struct{ StateRow }

// Operator hooks injected by the simulate command.
type setPauseMsg struct{ fn func() bool }
type setFastForwardMsg struct{ fn func(int) }
type setAssignMsg struct{ fn func(threatID, countermeasure string) error }

const fastForwardTicks = 10

// TUIWriter renders the mission console using a bubbletea TUI.
type TUIWriter struct {
	program    teaProgram
	done       chan struct{}
	sendSignal atomic.Bool
}

// NewTUIWriter starts a bubbletea program and returns a TUIWriter.
func NewTUIWriter(cfg *config.DefenseConfig) *TUIWriter {
	w := &TUIWriter{done: make(chan struct{})}
	w.sendSignal.Store(true)
	p := tea.NewProgram(newTUIModel(cfg), tea.WithAltScreen())
	w.program = p
	go func() {
		_, _ = p.Run()
		close(w.done)
		if w.sendSignal.Load() {
			if proc, err := os.FindProcess(os.Getpid()); err == nil {
				_ = proc.Signal(os.Interrupt)
			}
		}
	}()
	return w
}

// WriteThreat implements ThreatWriter.
func (w *TUIWriter) WriteThreat(row threat.Row) error {
	w.program.Send(trackMsg{row})
	return nil
}

// WriteThreats outputs multiple track rows.
func (w *TUIWriter) WriteThreats(rows []threat.Row) error {
	for _, r := range rows {
		_ = w.WriteThreat(r)
	}
	return nil
}

// WriteEvent implements EventWriter.
func (w *TUIWriter) WriteEvent(ev Event) error {
	line := fmt.Sprintf("[%s] t=%d %s", ev.Timestamp.Format(time.RFC3339), ev.Tick, strings.ToUpper(ev.Kind))
	if ev.ThreatID != "" {
		line += " threat=" + shortID(ev.ThreatID)
	}
	if ev.Countermeasure != "" {
		line += " cm=" + ev.Countermeasure
	}
	if ev.Detail != "" {
		line += " " + ev.Detail
	}
	w.program.Send(eventMsg{line: line})
	return nil
}

// WriteEvents outputs multiple mission events.
func (w *TUIWriter) WriteEvents(events []Event) error {
	for _, ev := range events {
		_ = w.WriteEvent(ev)
	}
	return nil
}

// WriteState implements StateWriter.
func (w *TUIWriter) WriteState(row StateRow) error {
	w.program.Send(tuiStateMsg{StateRow: row})
	return nil
}

// SetPauseFunc registers a callback toggling pause; it returns true when the
// mission is paused after the toggle.
func (w *TUIWriter) SetPauseFunc(fn func() bool) {
	w.program.Send(setPauseMsg{fn: fn})
}

// SetFastForwardFunc registers a callback burst-advancing the clock.
func (w *TUIWriter) SetFastForwardFunc(fn func(int)) {
	w.program.Send(setFastForwardMsg{fn: fn})
}

// SetAssignFunc registers a callback assigning a countermeasure.
func (w *TUIWriter) SetAssignFunc(fn func(threatID, countermeasure string) error) {
	w.program.Send(setAssignMsg{fn: fn})
}

// Close shuts down the TUI program and waits for cleanup.
func (w *TUIWriter) Close() error {
	w.sendSignal.Store(false)
	if w.program != nil {
		w.program.Send(tea.Quit())
	}
	if w.done != nil {
		<-w.done
	}
	return nil
}

var (
	tuiHeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	tuiStatStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	tuiAlertStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	tuiDimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

type tuiModel struct {
	cfg        *config.DefenseConfig
	table      table.Model
	vp         viewport.Model
	logs       []string
	tracks     map[string]threat.Row
	state      StateRow
	paused     bool
	wrap       bool
	autoscroll bool
	width      int
	height     int

	pause       func() bool
	fastForward func(int)
	assign      func(string, string) error

	assignInput  textinput.Model
	assignDialog bool
	assignErr    string
}

func newTUIModel(cfg *config.DefenseConfig) tuiModel {
	cols := []table.Column{
		{Title: "ID", Width: 8},
		{Title: "Archetype", Width: 18},
		{Title: "Tier", Width: 8},
		{Title: "Dist (m)", Width: 10},
		{Title: "HP", Width: 5},
		{Title: "P(det)", Width: 7},
		{Title: "CM", Width: 16},
		{Title: "Status", Width: 12},
	}
	t := table.New(table.WithColumns(cols), table.WithHeight(12), table.WithFocused(true))
	ti := textinput.New()
	ti.Placeholder = "threat-id,countermeasure"
	return tuiModel{
		cfg:         cfg,
		table:       t,
		vp:          viewport.New(0, 0),
		tracks:      make(map[string]threat.Row),
		autoscroll:  true,
		assignInput: ti,
	}
}

func (m tuiModel) Init() tea.Cmd { return nil }

func (m tuiModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table.SetWidth(msg.Width)
		m.vp.Width = msg.Width
		m.resize()
		m.refreshLog()
	case tea.KeyMsg:
		if m.assignDialog {
			switch msg.Type {
			case tea.KeyEnter:
				m.assignErr = ""
				parts := strings.SplitN(m.assignInput.Value(), ",", 2)
				if len(parts) == 2 && m.assign != nil {
					if err := m.assign(strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1])); err != nil {
						m.assignErr = err.Error()
					}
				}
				m.assignDialog = m.assignErr != ""
			case tea.KeyEsc:
				m.assignDialog = false
				m.assignErr = ""
			default:
				var cmd tea.Cmd
				m.assignInput, cmd = m.assignInput.Update(msg)
				return m, cmd
			}
			return m, nil
		}
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "p":
			if m.pause != nil {
				m.paused = m.pause()
			}
		case "f":
			if m.fastForward != nil {
				m.fastForward(fastForwardTicks)
			}
		case "a":
			m.assignDialog = true
			m.assignInput.SetValue("")
			m.assignInput.Focus()
		case "w":
			m.wrap = !m.wrap
			m.refreshLog()
		case "s":
			m.autoscroll = !m.autoscroll
		default:
			var cmd tea.Cmd
			m.vp, cmd = m.vp.Update(msg)
			return m, cmd
		}
	case trackMsg:
		m.tracks[msg.ThreatID] = msg.Row
		m.refreshTable()
	case eventMsg:
		m.logs = append(m.logs, msg.line)
		if len(m.logs) > 200 {
			m.logs = m.logs[len(m.logs)-200:]
		}
		m.refreshLog()
	case tuiStateMsg:
		m.state = msg.StateRow
		m.paused = msg.RunState == RunPaused
	case setPauseMsg:
		m.pause = msg.fn
	case setFastForwardMsg:
		m.fastForward = msg.fn
	case setAssignMsg:
		m.assign = msg.fn
	}
	return m, nil
}

func (m *tuiModel) resize() {
	headerHeight := 3
	tableHeight := m.table.Height() + 2
	vpHeight := m.height - headerHeight - tableHeight - 1
	if vpHeight < 3 {
		vpHeight = 3
	}
	m.vp.Height = vpHeight
}

func (m *tuiModel) refreshTable() {
	ids := make([]string, 0, len(m.tracks))
	for id := range m.tracks {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	rows := make([]table.Row, 0, len(ids))
	for _, id := range ids {
		r := m.tracks[id]
		rows = append(rows, table.Row{
			shortID(r.ThreatID),
			r.Archetype,
			string(r.Tier),
			fmt.Sprintf("%.0f", r.DistanceM),
			fmt.Sprintf("%.0f", r.HealthPct),
			fmt.Sprintf("%.2f", r.DetectionProb),
			r.Countermeasure,
			string(r.Status),
		})
	}
	m.table.SetRows(rows)
}

func (m *tuiModel) refreshLog() {
	lines := m.logs
	if m.wrap && m.vp.Width > 0 {
		wrapped := make([]string, 0, len(lines))
		for _, l := range lines {
			wrapped = append(wrapped, wordwrap.String(l, m.vp.Width))
		}
		lines = wrapped
	}
	m.vp.SetContent(strings.Join(lines, "\n"))
	if m.autoscroll {
		m.vp.GotoBottom()
	}
}

func (m tuiModel) View() string {
	status := tuiStatStyle.Render("RUNNING")
	if m.paused {
		status = tuiAlertStyle.Render("PAUSED")
	}
	header := tuiHeaderStyle.Render("SKYSHIELD MISSION CONSOLE") + "  " + status + "\n" +
		fmt.Sprintf("tick=%d score=%d budget=%.0f coverage=%.0f%% assets=%.0f%% kills=%d breaches=%d live=%d\n",
			m.state.Tick, m.state.Score, m.state.BudgetRemaining, m.state.RadarCoveragePct,
			m.state.AssetsProtectedPct, m.state.Neutralized, m.state.Breached, m.state.LiveThreats) +
		tuiDimStyle.Render("q quit · p pause · f ffwd · a assign · w wrap · s scroll")

	body := header + "\n" + m.table.View() + "\n" + m.vp.View()
	if m.assignDialog {
		prompt := "assign> " + m.assignInput.View()
		if m.assignErr != "" {
			prompt += "\n" + tuiAlertStyle.Render(m.assignErr)
		}
		body += "\n" + prompt
	}
	return body
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
