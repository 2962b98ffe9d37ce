package tui

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jackify/jackify-progress/internal/progress"
)

// =============================================================================
// Messages
// =============================================================================

// TickMsg drives both the smoothing animation and the periodic state pull.
type TickMsg time.Time

// StateMsg notifies the dashboard that state changed. Update does not read
// the carried State; the view always pulls from the StateSource.
type StateMsg struct {
	State *progress.InstallationProgress
}

// FinishedMsg signals the engine process exited. With a post-install
// machine wired the dashboard switches to the post-install view whatever
// Success is (Success only colors its status line); without one, a failure
// shows a bare failure banner and a success keeps the live view.
type FinishedMsg struct {
	Success bool
}

// QuitMsg signals the TUI should exit.
type QuitMsg struct{}

// RawLineMsg carries one decoded engine line for the raw scrollback view,
// independent of whatever the aggregator made of it.
type RawLineMsg string

// maxRawLines caps the scrollback buffer so a long-running engine doesn't
// grow the dashboard's memory unbounded.
const maxRawLines = 500

// =============================================================================
// Model
// =============================================================================

// StateSource provides the aggregator's current, owned InstallationProgress.
type StateSource interface {
	GetState() *progress.InstallationProgress
}

// Model represents the TUI state.
type Model struct {
	source StateSource
	render *progress.RenderModel

	postInstall *progress.PostInstallStepMachine

	startTime  time.Time
	lastUpdate time.Time
	tick       int

	// engineFinished switches the dashboard from the live engine view to
	// either the post-install sequence or a terminal banner.
	engineFinished  bool
	engineSucceeded bool

	width  int
	height int

	quitting bool

	// rawView toggles between the dashboard and a scrollback console of
	// recent decoded engine lines, mirroring the original GUI's mutually
	// exclusive activity/console views.
	rawView  bool
	rawLines []string
}

// Config holds TUI configuration.
type Config struct {
	Source      StateSource
	RenderModel *progress.RenderModel
	PostInstall *progress.PostInstallStepMachine
}

// New creates a new TUI model.
func New(cfg Config) Model {
	render := cfg.RenderModel
	if render == nil {
		render = progress.NewRenderModel()
	}
	return Model{
		source:      cfg.Source,
		render:      render,
		postInstall: cfg.PostInstall,
		startTime:   time.Now(),
		lastUpdate:  time.Now(),
		width:       80,
		height:      24,
	}
}

// =============================================================================
// Bubble Tea Interface
// =============================================================================

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return tickCmd()
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			m.quitting = true
			return m, tea.Quit
		case "d":
			m.rawView = !m.rawView
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case TickMsg:
		m.tick++
		m.lastUpdate = time.Now()
		return m, tickCmd()

	case StateMsg:
		m.lastUpdate = time.Now()
		return m, nil

	case FinishedMsg:
		m.engineFinished = true
		m.engineSucceeded = msg.Success
		if m.postInstall != nil {
			m.postInstall.Begin()
		}
		return m, nil

	case QuitMsg:
		m.quitting = true
		return m, tea.Quit

	case RawLineMsg:
		m.rawLines = append(m.rawLines, string(msg))
		if len(m.rawLines) > maxRawLines {
			m.rawLines = m.rawLines[len(m.rawLines)-maxRawLines:]
		}
		return m, nil
	}

	return m, nil
}

// View renders the TUI.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if m.rawView {
		return m.renderConsoleView()
	}
	if m.engineFinished {
		if m.postInstall != nil {
			return m.renderPostInstallView()
		}
		if !m.engineSucceeded {
			return m.renderFailureBanner()
		}
	}
	return m.renderLiveView()
}

// state fetches the aggregator's current state, or a fresh empty one if no
// source is wired (e.g. before the engine has produced any lines).
func (m Model) state() *progress.InstallationProgress {
	if m.source == nil {
		return progress.NewInstallationProgress()
	}
	return m.source.GetState()
}

// =============================================================================
// Commands
// =============================================================================

// tickCmd returns a command that sends a tick after 100ms, matching the
// render model's summary-throttle interval so the file-list interpolation
// animates smoothly.
func tickCmd() tea.Cmd {
	return tea.Tick(100*time.Millisecond, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// =============================================================================
// Accessors
// =============================================================================

// Elapsed returns the time since the dashboard started.
func (m Model) Elapsed() time.Duration {
	return time.Since(m.startTime)
}

// =============================================================================
// Helpers for external use
// =============================================================================

// SendState pushes a state-changed notification to the running program.
func SendState(p *tea.Program, s *progress.InstallationProgress) {
	if p != nil {
		p.Send(StateMsg{State: s})
	}
}

// SendFinished notifies the dashboard the engine process has exited.
func SendFinished(p *tea.Program, success bool) {
	if p != nil {
		p.Send(FinishedMsg{Success: success})
	}
}

// SendQuit sends a quit message to the TUI.
func SendQuit(p *tea.Program) {
	if p != nil {
		p.Send(QuitMsg{})
	}
}

// SendRawLine forwards a decoded engine line to the scrollback console.
func SendRawLine(p *tea.Program, line string) {
	if p != nil {
		p.Send(RawLineMsg(line))
	}
}

// =============================================================================
// Formatting Helpers (used by view.go)
// =============================================================================

// formatDuration formats a duration as HH:MM:SS.
func formatDuration(d time.Duration) string {
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	s := int(d.Seconds()) % 60
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}
