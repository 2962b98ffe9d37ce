package tui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jackify/jackify-progress/internal/progress"
)

type fakeSource struct {
	state *progress.InstallationProgress
}

func (f fakeSource) GetState() *progress.InstallationProgress {
	return f.state
}

func TestNew_DefaultsToEmptyState(t *testing.T) {
	m := New(Config{})
	if m.state() == nil {
		t.Fatal("expected a non-nil default state when no source is wired")
	}
}

func TestUpdate_TickAdvancesCounterAndReschedules(t *testing.T) {
	m := New(Config{Source: fakeSource{state: progress.NewInstallationProgress()}})

	next, cmd := m.Update(TickMsg(time.Now()))
	nm := next.(Model)
	if nm.tick != 1 {
		t.Errorf("tick = %d, want 1", nm.tick)
	}
	if cmd == nil {
		t.Error("expected a follow-up tick command")
	}
}

func TestUpdate_QuitKeyQuits(t *testing.T) {
	m := New(Config{})

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	nm := next.(Model)
	if !nm.quitting {
		t.Error("expected quitting=true after q")
	}
	if cmd == nil {
		t.Error("expected a quit command")
	}

	m2 := New(Config{})
	next2, cmd2 := m2.Update(tea.KeyMsg{Type: tea.KeyEscape})
	nm2 := next2.(Model)
	if !nm2.quitting {
		t.Error("expected quitting=true after esc")
	}
	if cmd2 == nil {
		t.Error("expected a quit command")
	}
}

func TestUpdate_WindowSizeMsgResizes(t *testing.T) {
	m := New(Config{})
	next, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	nm := next.(Model)
	if nm.width != 120 || nm.height != 40 {
		t.Errorf("size = %dx%d, want 120x40", nm.width, nm.height)
	}
}

func TestUpdate_FinishedBeginsPostInstall(t *testing.T) {
	pim := progress.NewPostInstallStepMachine()
	m := New(Config{PostInstall: pim})

	next, _ := m.Update(FinishedMsg{Success: true})
	nm := next.(Model)
	if !nm.engineFinished || !nm.engineSucceeded {
		t.Error("expected engineFinished and engineSucceeded to be set")
	}
	if s := pim.Observe(""); s.PhaseName != progress.PostInstallSteps()[0].Label {
		t.Errorf("post-install PhaseName = %q, want the first step's label after Begin", s.PhaseName)
	}
}

func TestView_QuittingRendersEmpty(t *testing.T) {
	m := New(Config{})
	m.quitting = true
	if got := m.View(); got != "" {
		t.Errorf("View() while quitting = %q, want empty", got)
	}
}

func TestView_LiveAndPostInstall(t *testing.T) {
	s := progress.NewInstallationProgress()
	s.Phase = progress.PhaseDownload
	m := New(Config{Source: fakeSource{state: s}, PostInstall: progress.NewPostInstallStepMachine()})

	if got := m.View(); got == "" {
		t.Error("expected non-empty live view")
	}

	next, _ := m.Update(FinishedMsg{Success: true})
	nm := next.(Model)
	if got := nm.View(); got == "" {
		t.Error("expected non-empty post-install view")
	}
}

func TestView_FailureBannerWithoutPostInstall(t *testing.T) {
	m := New(Config{})
	next, _ := m.Update(FinishedMsg{Success: false})
	nm := next.(Model)
	got := nm.View()
	if got == "" {
		t.Error("expected non-empty failure banner")
	}
	if !strings.Contains(got, "error") {
		t.Errorf("expected failure banner to mention the error, got %q", got)
	}
}

func TestUpdate_DKeyTogglesConsoleView(t *testing.T) {
	m := New(Config{Source: fakeSource{state: progress.NewInstallationProgress()}})

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'d'}})
	nm := next.(Model)
	if !nm.rawView {
		t.Fatal("expected rawView=true after d")
	}
	if !strings.Contains(nm.View(), "no engine output yet") {
		t.Error("expected console view placeholder when no lines buffered")
	}

	next2, _ := nm.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'d'}})
	nm2 := next2.(Model)
	if nm2.rawView {
		t.Error("expected rawView=false after second d")
	}
}

func TestUpdate_RawLineMsgBuffersAndCaps(t *testing.T) {
	m := New(Config{})
	for i := 0; i < maxRawLines+10; i++ {
		next, _ := m.Update(RawLineMsg("line"))
		m = next.(Model)
	}
	if len(m.rawLines) != maxRawLines {
		t.Errorf("rawLines len = %d, want %d", len(m.rawLines), maxRawLines)
	}
}

func TestElapsed_IsNonNegative(t *testing.T) {
	m := New(Config{})
	if m.Elapsed() < 0 {
		t.Error("Elapsed() should not be negative")
	}
}
