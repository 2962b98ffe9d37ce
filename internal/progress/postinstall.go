package progress

import "strings"

// postInstallSteps is the fixed, ordered post-install sequence: Steam
// shortcut creation, Proton prefix setup, registry/dotnet fixes, and final
// cleanup. Order matters: PostInstallStepMachine.Observe only ever advances
// forward through this slice.
var postInstallSteps = []PostInstallStep{
	{
		ID:    "prepare",
		Label: "Preparing Steam integration",
		Keywords: []string{
			"starting automated steam setup",
			"starting configuration phase",
			"starting configuration",
		},
	},
	{
		ID:    "steam_shortcut",
		Label: "Creating Steam shortcut",
		Keywords: []string{
			"creating steam shortcut",
			"steam shortcut created successfully",
		},
	},
	{
		ID:    "steam_restart",
		Label: "Restarting Steam",
		Keywords: []string{
			"restarting steam",
			"steam restarted successfully",
		},
	},
	{
		ID:    "proton_prefix",
		Label: "Creating Proton prefix",
		Keywords: []string{
			"creating proton prefix",
			"proton prefix created successfully",
			"temporary batch file launched",
			"verifying prefix creation",
		},
	},
	{
		ID:    "steam_verify",
		Label: "Verifying Steam setup",
		Keywords: []string{
			"verifying setup",
			"verifying prefix",
			"setup verification completed",
			"detecting actual appid",
			"steam configuration complete",
		},
	},
	{
		ID:    "steam_complete",
		Label: "Steam integration complete",
		Keywords: []string{
			"steam integration complete",
			"steam integration",
			"steam configuration complete!",
		},
	},
	{
		ID:    "wine_components",
		Label: "Installing Wine components",
		Keywords: []string{
			"installing wine components",
			"wine components",
			"vcrun",
			"dotnet",
			"running winetricks",
		},
	},
	{
		ID:    "registry_files",
		Label: "Applying registry files",
		Keywords: []string{
			"applying registry",
			"importing registry",
			".reg file",
			"registry files",
		},
	},
	{
		ID:    "dotnet_fixes",
		Label: "Installing .NET fixes",
		Keywords: []string{
			"dotnet fix",
			".net fix",
			"installing .net",
		},
	},
	{
		ID:    "enable_dotfiles",
		Label: "Enabling dotfiles",
		Keywords: []string{
			"enabling dotfiles",
			"dotfiles",
			"hidden files",
		},
	},
	{
		ID:    "set_permissions",
		Label: "Setting permissions",
		Keywords: []string{
			"setting permissions",
			"chmod",
			"permissions",
		},
	},
	{
		ID:    "backup_config",
		Label: "Backing up configuration",
		Keywords: []string{
			"backing up",
			"modorganizer.ini",
			"backup",
		},
	},
	{
		ID:    "config_finalize",
		Label: "Finalising Jackify configuration",
		Keywords: []string{
			"configuration completed successfully",
			"configuration complete",
			"manual steps validation failed",
			"configuration failed",
		},
	},
}

// PostInstallSteps returns the fixed step table, for callers that need to
// know the total step count up front (e.g. a progress bar's denominator).
func PostInstallSteps() []PostInstallStep {
	return postInstallSteps
}

// PostInstallStepMachine tracks progress through the fixed post-install
// sequence by matching free-text log messages against each step's keyword
// list, in order, never stepping backward. currentStep is a 0-based index
// into steps per spec.md §4.4 ("begins with current_step = 0 and a label
// of 'Preparing Steam integration'" — step 0's own label); it ranges up to
// len(steps) once End(true) advances it past the last index.
type PostInstallStepMachine struct {
	steps        []PostInstallStep
	currentStep  int
	currentLabel string
	active       bool
}

// NewPostInstallStepMachine returns a machine over the fixed 13-step table.
func NewPostInstallStepMachine() *PostInstallStepMachine {
	return &PostInstallStepMachine{steps: postInstallSteps}
}

// Begin resets the machine to step 0 with the first step's label, mirroring
// _begin_post_install_feedback.
func (m *PostInstallStepMachine) Begin() {
	m.currentStep = 0
	m.active = true
	if len(m.steps) > 0 {
		m.currentLabel = m.steps[0].Label
	} else {
		m.currentLabel = ""
	}
}

// Observe scans the step table in order, starting from the current step,
// for the first step whose keyword appears as a substring of the
// lowercased trimmed message. On a match it advances current step (and
// adopts that step's label) — the sequence is monotonically
// non-decreasing and never rewinds. No match leaves state, and the
// rendered label/step, unchanged. An inactive machine (never begun, or
// ended) begins on the first non-empty message; an empty message only
// re-renders the current step and label. Returns the synthetic
// InstallationProgress to render, grounded on
// _handle_post_install_progress / _update_post_install_ui.
func (m *PostInstallStepMachine) Observe(message string) *InstallationProgress {
	text := strings.ToLower(strings.TrimSpace(stripTimestampPrefix(message)))
	if !m.active && text != "" {
		m.Begin()
	}

	if text != "" {
		for idx, step := range m.steps {
			if idx < m.currentStep {
				continue
			}
			if containsAnyKeyword(text, step.Keywords) {
				m.currentStep = idx
				m.currentLabel = step.Label
				break
			}
		}
	}

	return m.render(m.currentLabel)
}

func containsAnyKeyword(normalized string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(normalized, kw) {
			return true
		}
	}
	return false
}

// End finalizes the sequence: success advances to the total step count
// with a completion label; failure pins at the highest reached step with
// a stopped label, per _end_post_install_feedback.
func (m *PostInstallStepMachine) End(success bool) *InstallationProgress {
	var label string
	if success {
		m.currentStep = len(m.steps)
		label = "Post-installation complete"
	} else {
		if m.currentStep < 0 {
			m.currentStep = 0
		}
		label = "Post-installation stopped"
	}
	m.currentLabel = label
	m.active = false
	return m.render(label)
}

// render builds the synthetic Finalize-phase InstallationProgress the
// dashboard draws while the post-install sequence runs, clamping step into
// [0, total] per _update_post_install_ui.
func (m *PostInstallStepMachine) render(label string) *InstallationProgress {
	total := len(m.steps)
	if total < 1 {
		total = 1
	}
	step := m.currentStep
	if step < 0 {
		step = 0
	}
	if step > total {
		step = total
	}

	s := NewInstallationProgress()
	s.Phase = PhaseFinalize
	s.PhaseName = label
	s.PhaseStep = step
	s.PhaseMaxSteps = total
	s.OverallPercent = float64(step) / float64(total) * 100.0
	return s
}

// stripTimestampPrefix removes a leading "[HH:MM:SS] " timestamp, matching
// _strip_timestamp_prefix.
func stripTimestampPrefix(s string) string {
	t := strings.TrimSpace(s)
	if len(t) < 10 || t[0] != '[' {
		return s
	}
	end := strings.IndexByte(t, ']')
	if end < 0 {
		return s
	}
	inner := t[1:end]
	if len(inner) != 8 || inner[2] != ':' || inner[5] != ':' {
		return s
	}
	for i, c := range inner {
		if i == 2 || i == 5 {
			continue
		}
		if c < '0' || c > '9' {
			return s
		}
	}
	rest := strings.TrimSpace(t[end+1:])
	return rest
}
