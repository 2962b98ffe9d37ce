package progress

import "testing"

func TestShouldDisplayFile(t *testing.T) {
	testCases := []struct {
		name     string
		filename string
		expected bool
	}{
		{"allowed extension", "ModpackA.7z", true},
		{"wabbajack literal", ".wabbajack", true},
		{"wabbajack placeholder", "Downloading .wabbajack file", true},
		{"hash comment prefix", "#deadbeef", false},
		{"denied stem", "empty.dds", false},
		{"denied stem case-insensitive", "Script.esp", false},
		{"no extension", "README", false},
		{"empty string", "", false},
		{"whitespace only", "   ", false},
		{"disallowed extension", "notes.txt", false},
		{"path with directory", "mods/ModpackB.zip", true},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := ShouldDisplayFile(tc.filename); got != tc.expected {
				t.Errorf("ShouldDisplayFile(%q) = %v, want %v", tc.filename, got, tc.expected)
			}
		})
	}
}

func TestClassify_EmptyLine(t *testing.T) {
	c := NewClassifier()
	out := c.Classify("   ")
	if out.HasProgress {
		t.Error("expected no progress for an empty line")
	}
	if out.Message != "" {
		t.Errorf("Message = %q, want empty", out.Message)
	}
}

func TestClassify_FileProgressBracket(t *testing.T) {
	c := NewClassifier()
	out := c.Classify("[FILE_PROGRESS] Downloading: ModpackA.7z (37.5%) [12.4MB/s] (2/10)")

	if !out.HasProgress {
		t.Fatal("expected progress to be detected")
	}
	if out.FileProgress == nil {
		t.Fatal("expected a FileProgress to be populated")
	}
	if out.FileProgress.Filename != "ModpackA.7z" {
		t.Errorf("Filename = %q, want ModpackA.7z", out.FileProgress.Filename)
	}
	if out.FileProgress.Percent != 37.5 {
		t.Errorf("Percent = %v, want 37.5", out.FileProgress.Percent)
	}
	if out.FileProgress.Operation != OpDownload {
		t.Errorf("Op = %v, want OpDownload", out.FileProgress.Operation)
	}
	if !out.HasFileCounter || out.CounterCurrent != 2 || out.CounterTotal != 10 {
		t.Errorf("counter = (%v, %d, %d), want (true, 2, 10)", out.HasFileCounter, out.CounterCurrent, out.CounterTotal)
	}
}

func TestClassify_FileProgressHiddenCounterOnly(t *testing.T) {
	c := NewClassifier()
	out := c.Classify("[FILE_PROGRESS] Converting: script.pex (10.0%) (3/20)")

	if out.FileProgress == nil {
		t.Fatal("expected a hidden FileProgress carrying the counter")
	}
	if !out.FileProgress.Carry.Hidden {
		t.Error("expected the synthetic entry to be marked hidden")
	}
	if out.FileProgress.Carry.Kind != CarryTextureCounter {
		t.Errorf("Carry.Kind = %v, want CarryTextureCounter", out.FileProgress.Carry.Kind)
	}
}

func TestClassify_SectionHeaderSetsPhase(t *testing.T) {
	c := NewClassifier()
	out := c.Classify("=== Downloading Mod Archives ===")

	if !out.HasPhase {
		t.Fatal("expected a phase to be detected")
	}
	if out.Phase != PhaseDownload {
		t.Errorf("Phase = %v, want PhaseDownload", out.Phase)
	}
}

func TestClassify_BracketedStatus(t *testing.T) {
	c := NewClassifier()
	out := c.Classify("[12/14] Installing files (1.1GB/56.3GB)")

	if !out.HasStepInfo || out.Step != 12 || out.MaxSteps != 14 {
		t.Errorf("step info = (%v, %d, %d), want (true, 12, 14)", out.HasStepInfo, out.Step, out.MaxSteps)
	}
	if !out.HasPhase || out.Phase != PhaseInstall {
		t.Errorf("phase = (%v, %v), want (true, PhaseInstall)", out.HasPhase, out.Phase)
	}
	if !out.HasDataInfo {
		t.Fatal("expected data info to be parsed")
	}
}

func TestClassify_BracketedStatusSkipsWabbajackMention(t *testing.T) {
	c := NewClassifier()
	out := c.Classify("[3/10] Downloading .wabbajack file (in progress)")

	// The bracketed-status pattern skips wabbajack status text, so that text
	// is not adopted as the phase name; the last-resort [N/M] step pattern
	// still supplies the step counter.
	if out.PhaseName == "downloading .wabbajack file" {
		t.Errorf("PhaseName = %q, want the wabbajack status text not adopted", out.PhaseName)
	}
	if !out.HasStepInfo || out.Step != 3 || out.MaxSteps != 10 {
		t.Errorf("step info = (%v, %d, %d), want (true, 3, 10) from the last-resort step pattern", out.HasStepInfo, out.Step, out.MaxSteps)
	}
}

func TestClassify_TimestampStatus(t *testing.T) {
	c := NewClassifier()
	out := c.Classify("[00:00:10] Downloading Mod Archives (17/214) - 6.8MB/s")

	if !out.HasStepInfo || out.Step != 17 || out.MaxSteps != 214 {
		t.Errorf("step info = (%v, %d, %d), want (true, 17, 214)", out.HasStepInfo, out.Step, out.MaxSteps)
	}
	if !out.HasSpeedInfo {
		t.Fatal("expected speed info to be parsed")
	}
	if !out.HasOverallPercent {
		t.Fatal("expected an overall percent derived from step/max")
	}
}

func TestClassify_WabbajackDownload(t *testing.T) {
	c := NewClassifier()
	out := c.Classify("[00:02:08] Downloading modlist.wabbajack (739.2/1947.2MB) - 6.0MB/s")

	if !out.HasPhase || out.Phase != PhaseDownload {
		t.Errorf("phase = (%v, %v), want (true, PhaseDownload)", out.HasPhase, out.Phase)
	}
	if !out.HasDataInfo {
		t.Fatal("expected data info to be parsed")
	}
	if !out.HasOverallPercent {
		t.Fatal("expected overall percent to be derived from the byte ratio")
	}
	if out.FileProgress == nil || out.FileProgress.Filename != "modlist.wabbajack" {
		t.Error("expected a modlist.wabbajack FileProgress")
	}
}

func TestClassify_CompletedFile(t *testing.T) {
	c := NewClassifier()
	out := c.Classify("Finished downloading ModpackB.zip. Hash: abc123")

	if out.CompletedFilename != "ModpackB.zip" {
		t.Errorf("CompletedFilename = %q, want ModpackB.zip", out.CompletedFilename)
	}
}

func TestClassify_UnrecognizedLineHasNoProgress(t *testing.T) {
	c := NewClassifier()
	out := c.Classify("Some unrelated log line with no structure")

	if out.HasProgress {
		t.Error("expected an unstructured line to have HasProgress=false")
	}
	if out.Message != "Some unrelated log line with no structure" {
		t.Errorf("Message = %q, want the trimmed input", out.Message)
	}
}

func TestClassify_FallbackFileActionPercent(t *testing.T) {
	c := NewClassifier()
	out := c.Classify("Installing: patch.esp (55%)")

	if out.FileProgress == nil {
		t.Fatal("expected fallback FileProgress extraction")
	}
	if out.FileProgress.Filename != "patch.esp" || out.FileProgress.Percent != 55 {
		t.Errorf("FileProgress = %+v, want patch.esp at 55%%", out.FileProgress)
	}
}

func TestClassify_StatusNotFileLineSkipsFallback(t *testing.T) {
	c := NewClassifier()
	out := c.Classify("[00:00:01] Downloading Mod Archives")

	if out.FileProgress != nil {
		t.Error("expected a phase status line to not be mistaken for file progress")
	}
}
