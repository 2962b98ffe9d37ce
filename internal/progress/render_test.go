package progress

import "testing"

func TestRenderModel_OverallLabel_ProcessingFallback(t *testing.T) {
	m := NewRenderModel()
	s := NewInstallationProgress()
	if got := m.OverallLabel(s); got != "Processing..." {
		t.Errorf("OverallLabel() = %q, want %q", got, "Processing...")
	}
}

func TestRenderModel_OverallLabel_ComposesStepAndData(t *testing.T) {
	m := NewRenderModel()
	s := NewInstallationProgress()
	s.Phase = PhaseDownload
	s.PhaseStep, s.PhaseMaxSteps = 17, 214
	s.DataProcessed, s.DataTotal = 1, 2

	got := m.OverallLabel(s)
	if got == "" || got == "Processing..." {
		t.Errorf("OverallLabel() = %q, want a composed label", got)
	}
}

func TestRenderModel_PhaseLabel(t *testing.T) {
	testCases := []struct {
		name     string
		setup    func(*InstallationProgress)
		expected string
	}{
		{"download", func(s *InstallationProgress) { s.Phase = PhaseDownload }, "Downloading"},
		{"extract", func(s *InstallationProgress) { s.Phase = PhaseExtract }, "Extracting"},
		{"validate", func(s *InstallationProgress) { s.Phase = PhaseValidate }, "Validating"},
		{"install", func(s *InstallationProgress) { s.Phase = PhaseInstall }, "Installing"},
		{"finalize", func(s *InstallationProgress) { s.Phase = PhaseFinalize }, "Finalising"},
		{"initialization", func(s *InstallationProgress) { s.Phase = PhaseInitialization }, "Preparing"},
		{
			"texture conversion overrides phase",
			func(s *InstallationProgress) { s.Phase = PhaseInstall; s.PhaseName = "Converting Textures" },
			"Converting Textures",
		},
		{
			"bsa building overrides phase",
			func(s *InstallationProgress) { s.Phase = PhaseInstall; s.PhaseName = "Building BSAs" },
			"Building BSAs",
		},
		{
			"finalize prefers phase name",
			func(s *InstallationProgress) { s.Phase = PhaseFinalize; s.PhaseName = "Registering plugins" },
			"Registering plugins",
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			m := NewRenderModel()
			s := NewInstallationProgress()
			tc.setup(s)
			if got := m.PhaseLabel(s); got != tc.expected {
				t.Errorf("PhaseLabel() = %q, want %q", got, tc.expected)
			}
		})
	}
}

func TestRenderModel_OverallPercent_BsaBuildingCapsAt99(t *testing.T) {
	m := NewRenderModel()
	s := NewInstallationProgress()
	s.BsaBuildingCurrent, s.BsaBuildingTotal = 10, 10

	if got := m.OverallPercent(s); got != 99 {
		t.Errorf("OverallPercent() = %d, want 99 (capped while BSAs are building)", got)
	}
}

func TestRenderModel_OverallPercent_InstallPrefersStepOverData(t *testing.T) {
	m := NewRenderModel()
	s := NewInstallationProgress()
	s.Phase = PhaseInstall
	s.PhaseStep, s.PhaseMaxSteps = 3, 10
	s.DataProcessed, s.DataTotal = 90, 100

	if got := m.OverallPercent(s); got != 30 {
		t.Errorf("OverallPercent() = %d, want 30 (step/max takes priority)", got)
	}
}

func TestRenderModel_OverallPercent_DataTotalPriorityOutsideInstall(t *testing.T) {
	m := NewRenderModel()
	s := NewInstallationProgress()
	s.Phase = PhaseDownload
	s.DataProcessed, s.DataTotal = 50, 100
	s.OverallPercent = 10

	if got := m.OverallPercent(s); got != 50 {
		t.Errorf("OverallPercent() = %d, want 50 (data ratio over OverallPercent field)", got)
	}
}

func TestRenderModel_ActiveRows_FileListMode(t *testing.T) {
	m := NewRenderModel()
	s := NewInstallationProgress()
	s.Phase = PhaseDownload
	s.ActiveFiles = append(s.ActiveFiles, NewFileProgress("a.7z", OpDownload, 50))

	rows := m.ActiveRows(s)
	if len(rows) != 1 {
		t.Fatalf("len(rows) = %d, want 1", len(rows))
	}
	if rows[0].Filename != "a.7z" {
		t.Errorf("Filename = %q, want a.7z", rows[0].Filename)
	}
}

func TestRenderModel_ActiveRows_InstallationSummaryMode(t *testing.T) {
	m := NewRenderModel()
	s := NewInstallationProgress()
	s.Phase = PhaseInstall
	s.PhaseStep, s.PhaseMaxSteps = 5, 20
	s.ActiveFiles = append(s.ActiveFiles, NewFileProgress("texture.dds", OpInstall, 40))

	rows := m.ActiveRows(s)
	if len(rows) == 0 {
		t.Fatal("expected at least one summary row")
	}
	if !rows[0].Is(FlagIsSummary) {
		t.Error("expected the first row to be the synthetic summary header")
	}
}

func TestRenderModel_ActiveRows_ExtractionSummaryMode(t *testing.T) {
	m := NewRenderModel()
	s := NewInstallationProgress()
	s.Phase = PhaseExtract
	s.PhaseStep, s.PhaseMaxSteps = 2, 5

	rows := m.ActiveRows(s)
	if len(rows) != 1 {
		t.Fatalf("len(rows) = %d, want 1", len(rows))
	}
	if !rows[0].Is(FlagIsSummary) {
		t.Error("expected the extraction summary row to carry FlagIsSummary")
	}
}

func TestRenderModel_ActiveRows_FileListRowFlags(t *testing.T) {
	m := NewRenderModel()
	s := NewInstallationProgress()
	s.Phase = PhaseDownload

	queued := NewFileProgress("queued.7z", OpDownload, 0)
	queued.TotalSize = 100
	s.ActiveFiles = append(s.ActiveFiles, queued)

	indeterminate := NewFileProgress("unknown.7z", OpDownload, 0)
	indeterminate.Speed = -1
	s.ActiveFiles = append(s.ActiveFiles, indeterminate)

	rows := m.ActiveRows(s)
	var sawQueued, sawIndeterminate bool
	for _, r := range rows {
		if r.Filename == "queued.7z" && r.Is(FlagQueued) {
			sawQueued = true
		}
		if r.Filename == "unknown.7z" && r.Is(FlagIndeterminate) {
			sawIndeterminate = true
		}
	}
	if !sawQueued {
		t.Error("expected queued.7z to carry FlagQueued")
	}
	if !sawIndeterminate {
		t.Error("expected unknown.7z to carry FlagIndeterminate")
	}
}

func TestRenderModel_Interpolate_SnapsOnFirstSight(t *testing.T) {
	m := NewRenderModel()
	if got := m.interpolate("a.7z", 50); got != 50 {
		t.Errorf("interpolate() on first sight = %v, want 50 (snap)", got)
	}
}

func TestRenderModel_Interpolate_EasesTowardTarget(t *testing.T) {
	m := NewRenderModel()
	m.displayPercent = map[string]float64{"a.7z": 0}
	got := m.interpolate("a.7z", 100)
	if got <= 0 || got >= 100 {
		t.Errorf("interpolate() = %v, want a value strictly between 0 and 100", got)
	}
}

func TestRenderModel_Interpolate_SnapsWhenClose(t *testing.T) {
	m := NewRenderModel()
	m.displayPercent = map[string]float64{"a.7z": 99.7}
	if got := m.interpolate("a.7z", 100); got != 100 {
		t.Errorf("interpolate() = %v, want 100 (snap within 0.5)", got)
	}
}
