package progress

import (
	"testing"
	"time"
)

func TestAggregator_ProcessLine_UnrecognizedIsNoOp(t *testing.T) {
	a := NewAggregator()
	if changed := a.ProcessLine("nothing structured here"); changed {
		t.Error("expected an unstructured line to report no change")
	}
}

func TestAggregator_ProcessLine_SectionSetsPhase(t *testing.T) {
	a := NewAggregator()
	if changed := a.ProcessLine("=== Downloading Mod Archives ==="); !changed {
		t.Fatal("expected a section header to change state")
	}
	if a.GetState().Phase != PhaseDownload {
		t.Errorf("Phase = %v, want PhaseDownload", a.GetState().Phase)
	}
}

func TestAggregator_ProcessLine_AddsAndUpdatesFile(t *testing.T) {
	a := NewAggregator()
	a.ProcessLine("[FILE_PROGRESS] Downloading: ModpackA.7z (10.0%)")
	s := a.GetState()
	f := s.FindFile("ModpackA.7z")
	if f == nil {
		t.Fatal("expected ModpackA.7z to be tracked")
	}
	if f.Percent != 10 {
		t.Errorf("Percent = %v, want 10", f.Percent)
	}

	a.ProcessLine("[FILE_PROGRESS] Downloading: ModpackA.7z (55.0%)")
	f = s.FindFile("ModpackA.7z")
	if f.Percent != 55 {
		t.Errorf("Percent after update = %v, want 55", f.Percent)
	}
	if len(s.ActiveFiles) != 1 {
		t.Errorf("len(ActiveFiles) = %d, want 1 (update in place, not duplicate)", len(s.ActiveFiles))
	}
}

func TestAggregator_AddFile_SkipsAlreadyCompleteUntrackedFile(t *testing.T) {
	a := NewAggregator()
	a.ProcessLine("[FILE_PROGRESS] Completed: Preexisting.bsa (100.0%)")
	if f := a.GetState().FindFile("Preexisting.bsa"); f != nil {
		t.Error("expected a never-tracked, already-complete file to not be added")
	}
}

func TestAggregator_FileCounterOverridesStepCounter(t *testing.T) {
	a := NewAggregator()
	a.ProcessLine("[1/5] Installing files (10B/20B)")
	a.ProcessLine("[FILE_PROGRESS] Converting: tex.pex (10.0%) (3/20)")

	s := a.GetState()
	if s.PhaseStep != 3 || s.PhaseMaxSteps != 20 {
		t.Errorf("PhaseStep/PhaseMaxSteps = %d/%d, want 3/20", s.PhaseStep, s.PhaseMaxSteps)
	}
}

func TestAggregator_SyntheticWabbajackEntry(t *testing.T) {
	a := NewAggregator()
	a.ProcessLine("Downloading wabbajack modlist (100.0MB/200.0MB)")

	s := a.GetState()
	found := false
	for _, f := range s.ActiveFiles {
		if f.Synthetic {
			found = true
		}
	}
	if !found {
		t.Error("expected a synthetic wabbajack entry when no real download is active")
	}
}

func TestAggregator_RealWabbajackRemovesSynthetic(t *testing.T) {
	a := NewAggregator()
	a.ProcessLine("Downloading wabbajack modlist (100.0MB/200.0MB)")
	a.ProcessLine("[00:02:08] Downloading modlist.wabbajack (150.0/200.0MB) - 6.0MB/s")

	s := a.GetState()
	for _, f := range s.ActiveFiles {
		if f.Synthetic && f.Filename != "modlist.wabbajack" {
			t.Errorf("expected the synthetic entry to be removed once a real one appeared, found %q", f.Filename)
		}
	}
	if f := s.FindFile("modlist.wabbajack"); f == nil {
		t.Error("expected the real wabbajack entry to be tracked")
	}
}

func TestAggregator_HasRealDownloadActivitySuppressesSynthetic(t *testing.T) {
	a := NewAggregator()
	a.ProcessLine("[FILE_PROGRESS] Downloading: ModpackA.7z (10.0%)")
	a.ProcessLine("some unrelated status (5.0MB/10.0MB)")

	s := a.GetState()
	for _, f := range s.ActiveFiles {
		if f.Synthetic {
			t.Error("expected no synthetic wabbajack entry once real download activity is present")
		}
	}
}

func TestAggregator_UpdateSpeed_ClampsNegative(t *testing.T) {
	a := NewAggregator()
	a.ProcessLine("[00:00:10] Downloading Mod Archives (17/214) - 6.8MB/s")

	s := a.GetState()
	if _, ok := s.Speeds["download"]; !ok {
		t.Fatal("expected a download speed to be recorded")
	}
	if s.Speeds["download"] < 0 {
		t.Error("expected speed to never be negative")
	}

	a.updateSpeed("extract", -5)
	if got := s.Speeds["extract"]; got != 0 {
		t.Errorf("Speeds[extract] = %v, want 0 (negative speed clamped)", got)
	}
}

func TestAggregator_SweepActiveFiles_RemovesStaleCompletedFile(t *testing.T) {
	a := NewAggregator()
	a.CompletedStaleAfter = 5 * time.Millisecond
	a.ProcessLine("[FILE_PROGRESS] Downloading: ModpackA.7z (50.0%)")
	if f := a.GetState().FindFile("ModpackA.7z"); f == nil {
		t.Fatal("setup: expected the first progress line for ModpackA.7z to add it")
	}
	a.ProcessLine("[FILE_PROGRESS] Completed: ModpackA.7z (100.0%)")

	time.Sleep(10 * time.Millisecond)
	a.ProcessLine("=== Finalizing ===")

	if f := a.GetState().FindFile("ModpackA.7z"); f != nil && f.IsComplete() {
		t.Error("expected a long-idle completed file to be swept")
	}
}

func TestAggregator_Reset_ClearsState(t *testing.T) {
	a := NewAggregator()
	a.ProcessLine("[FILE_PROGRESS] Downloading: ModpackA.7z (10.0%)")
	a.Reset()

	if len(a.GetState().ActiveFiles) != 0 {
		t.Error("expected Reset to clear active files")
	}
	if a.hasRealWabbajack {
		t.Error("expected Reset to clear hasRealWabbajack")
	}
}
