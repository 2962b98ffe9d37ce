package progress

import (
	"strconv"
	"strings"
	"time"
)

// RowFlag is a bitmask of the presentation hints a Row carries; the
// dashboard uses them to decide how to draw a row without re-deriving the
// classification itself.
type RowFlag int

const (
	FlagNone RowFlag = 0
	// FlagHidden marks a row that carries a counter only, never rendered.
	// RenderModel never actually emits hidden rows; the flag exists for
	// callers that inspect a Row outside ActiveRows.
	FlagHidden RowFlag = 1 << iota
	FlagSynthetic
	FlagNoProgressBar
	FlagIsSummary
	// FlagIndeterminate marks a row with no meaningful percent, driving the
	// bouncing 0->100->0 animation instead of a determinate bar.
	FlagIndeterminate
	// FlagQueued marks a row that hasn't started (zero bytes, zero speed).
	FlagQueued
)

// Row is one line the dashboard draws: either a real active file, a
// synthetic summary header, or a BSA/texture detail line.
type Row struct {
	Filename    string
	Operation   Operation
	Percent     float64
	CurrentSize int64
	TotalSize   int64
	Speed       float64
	Flags       RowFlag
}

func (r Row) Is(f RowFlag) bool { return r.Flags&f != 0 }

// summaryState is the RenderModel's own mutable smoothing state — explicitly
// separate from InstallationProgress, which the Aggregator owns (spec.md §9:
// "timers and smoothing... belong to the RenderModel, not the aggregator").
type summaryState struct {
	active        bool
	cachedRows    []Row
	lastUpdatedAt time.Time
}

// RenderModel projects an InstallationProgress into what the dashboard
// needs to draw one frame. It owns no aggregator state, only its own
// stability/smoothing bookkeeping across calls.
type RenderModel struct {
	summary summaryState

	bsaHoldDeadline time.Time

	// displayPercent holds the last-rendered, interpolated percent per
	// filename in file-list mode, so ActiveRows can ease toward the
	// engine's real percent instead of jumping.
	displayPercent map[string]float64

	// SpeedFreshness / BSAHoldDuration / SummaryHoldDuration /
	// SummaryThrottleInterval override the package defaults; zero means
	// "use the default." Set from an Aggregator or a caller's own config
	// when non-default tuning is wanted, per spec.md §9's open questions.
	SpeedFreshness          time.Duration
	BSAHoldDuration         time.Duration
	SummaryHoldDuration     time.Duration
	SummaryThrottleInterval time.Duration
}

// NewRenderModel returns a RenderModel with no smoothing history.
func NewRenderModel() *RenderModel {
	return &RenderModel{}
}

func (m *RenderModel) summaryHold() time.Duration {
	if m.SummaryHoldDuration > 0 {
		return m.SummaryHoldDuration
	}
	return 500 * time.Millisecond
}

func (m *RenderModel) summaryThrottle() time.Duration {
	if m.SummaryThrottleInterval > 0 {
		return m.SummaryThrottleInterval
	}
	return 100 * time.Millisecond
}

// hasAnySuffix reports whether name ends in any of suffixes, ignoring case;
// installation-summary mode uses it to pick out BSA detail rows.
func hasAnySuffix(name string, suffixes ...string) bool {
	lower := strings.ToLower(name)
	for _, s := range suffixes {
		if strings.HasSuffix(lower, s) {
			return true
		}
	}
	return false
}

// OverallLabel returns the short, stable phase label plus the composed
// display text (e.g. "Downloading [17/214] (1.1GB/56.3GB) - 6.8MB/s"),
// grounded on InstallationProgress.get_phase_label/display_text.
func (m *RenderModel) OverallLabel(s *InstallationProgress) string {
	label := m.phaseLabel(s)

	var parts []string
	if label != "" {
		parts = append(parts, label)
	}

	if s.BsaBuildingTotal > 0 {
		parts = append(parts, "["+strconv.Itoa(s.BsaBuildingCurrent)+"/"+strconv.Itoa(s.BsaBuildingTotal)+"]")
	} else {
		if step := s.PhaseProgressText(); step != "" {
			parts = append(parts, step)
		}
		if data := s.DataProgressText(); data != "" {
			if s.DataTotal == 0 || s.DataProcessed < s.DataTotal {
				parts = append(parts, "("+data+")")
			}
		}

		if speed := m.overallSpeedDisplay(s); speed != "" {
			parts = append(parts, "- "+speed)
		}
	}

	if len(parts) == 0 {
		return "Processing..."
	}
	return strings.Join(parts, " ")
}

// phaseLabel implements InstallationProgress.get_phase_label: the
// BSA/texture special cases outrank the generic phase-tag labels, and
// Finalize prefers phase_name so post-install steps show their own label.
func (m *RenderModel) phaseLabel(s *InstallationProgress) string {
	lower := strings.ToLower(s.PhaseName)
	if strings.Contains(lower, "converting") && strings.Contains(lower, "texture") {
		return "Converting Textures"
	}
	if strings.Contains(lower, "bsa") || (strings.Contains(lower, "building") && s.Phase == PhaseInstall) {
		return "Building BSAs"
	}
	if s.Phase == PhaseFinalize && s.PhaseName != "" {
		return s.PhaseName
	}

	switch s.Phase {
	case PhaseDownload:
		return "Downloading"
	case PhaseExtract:
		return "Extracting"
	case PhaseValidate:
		return "Validating"
	case PhaseInstall:
		return "Installing"
	case PhaseFinalize:
		return "Finalising"
	case PhaseInitialization:
		return "Preparing"
	}
	if s.PhaseName != "" {
		return s.PhaseName
	}
	if s.Phase != PhaseUnknown {
		return s.Phase.String()
	}
	return ""
}

// overallSpeedDisplay returns the freshest aggregate speed for the current
// phase, falling back to the Download/Extract/Validate/Install priority
// order, or "" if nothing is fresh.
func (m *RenderModel) overallSpeedDisplay(s *InstallationProgress) string {
	freshness := m.SpeedFreshness
	if freshness <= 0 {
		freshness = SpeedFreshness
	}
	fresh := func(op string) float64 {
		speed, ok := s.Speeds[op]
		if !ok {
			return 0
		}
		at, ok := s.SpeedTimestamps[op]
		if !ok || time.Since(at) > freshness {
			return 0
		}
		if speed < 0 {
			return 0
		}
		return speed
	}

	if op := s.Phase.operationKey(); op != "" {
		if v := fresh(op); v > 0 {
			return FormatBytes(int64(v)) + "/s"
		}
	}
	for _, op := range []string{"download", "extract", "validate", "install"} {
		if v := fresh(op); v > 0 {
			return FormatBytes(int64(v)) + "/s"
		}
	}
	return ""
}

// OverallPercent selects the displayed percentage per spec.md §4.3's
// priority rules, capping at 99 while BSAs are building.
func (m *RenderModel) OverallPercent(s *InstallationProgress) int {
	if s.BsaBuildingTotal > 0 {
		pct := float64(s.BsaBuildingCurrent) / float64(s.BsaBuildingTotal) * 100.0
		if pct > 99 {
			pct = 99
		}
		if pct < 0 {
			pct = 0
		}
		return int(pct)
	}

	if s.Phase == PhaseInstall || s.Phase == PhaseExtract {
		if s.PhaseMaxSteps > 0 {
			return clampPercentInt(float64(s.PhaseStep) / float64(s.PhaseMaxSteps) * 100.0)
		}
		if s.DataTotal > 0 && s.DataProcessed > 0 {
			return clampPercentInt(float64(s.DataProcessed) / float64(s.DataTotal) * 100.0)
		}
		if s.OverallPercent > 0 && s.OverallPercent < 100 {
			return clampPercentInt(s.OverallPercent)
		}
		return 0
	}

	if s.DataTotal > 0 && s.DataProcessed > 0 {
		return clampPercentInt(float64(s.DataProcessed) / float64(s.DataTotal) * 100.0)
	}
	if s.OverallPercent > 0 {
		return clampPercentInt(s.OverallPercent)
	}
	if s.PhaseMaxSteps > 0 {
		return clampPercentInt(float64(s.PhaseStep) / float64(s.PhaseMaxSteps) * 100.0)
	}
	return 0
}

func clampPercentInt(p float64) int {
	if p < 0 {
		return 0
	}
	if p > 100 {
		return 100
	}
	return int(p)
}

// PhaseLabel is the short stable label alone, without the composed display
// text — used by panels that want the banner title separate from detail.
func (m *RenderModel) PhaseLabel(s *InstallationProgress) string {
	return m.phaseLabel(s)
}

// isInstallationSummary / isExtractionSummary classify the active-file view
// mode per spec.md §4.3.
func isInstallationSummary(s *InstallationProgress) bool {
	return s.Phase == PhaseInstall || strings.Contains(strings.ToLower(s.PhaseName), "install")
}

func isExtractionSummary(s *InstallationProgress) bool {
	return s.Phase == PhaseExtract
}

// isBSABuilding implements the BSA-phase detection disjunction, held for
// at least 1.5s of monotonic time once triggered so brief signal gaps
// don't flicker the UI back to plain file-install mode.
func (m *RenderModel) isBSABuilding(s *InstallationProgress, now time.Time) bool {
	detected := false

	lower := strings.ToLower(s.PhaseName)
	if strings.Contains(lower, "bsa") || (strings.Contains(lower, "building") && s.Phase == PhaseInstall) {
		detected = true
	}
	if !detected {
		msg := strings.ToLower(s.Message)
		if (strings.Contains(msg, "building") || strings.Contains(msg, "writing") || strings.Contains(msg, "verifying")) && strings.Contains(msg, ".bsa") {
			detected = true
		}
	}
	if !detected {
		for _, f := range s.ActiveFiles {
			if strings.HasSuffix(strings.ToLower(f.Filename), ".bsa") && s.Phase == PhaseInstall {
				detected = true
				break
			}
		}
	}
	if !detected && s.Phase == PhaseInstall && strings.Contains(strings.ToLower(m.OverallLabel(s)), "bsa") {
		detected = true
	}

	if detected {
		hold := m.BSAHoldDuration
		if hold <= 0 {
			hold = 1500 * time.Millisecond
		}
		m.bsaHoldDeadline = now.Add(hold)
		return true
	}
	if now.Before(m.bsaHoldDeadline) {
		return true
	}
	return false
}

// ActiveRows builds the three mutually exclusive active-file views of
// spec.md §4.3, applying the smoothing rules: a summary is rebuilt only
// when it does not already exist, mutated in place (here: recomputed and
// cached) no more than once per SummaryThrottleInterval, and held for at
// least SummaryHoldDuration after the underlying state stops wanting a
// summary view, so a transition to file-list mode doesn't flicker.
func (m *RenderModel) ActiveRows(s *InstallationProgress) []Row {
	now := time.Now()
	bsaBuilding := m.isBSABuilding(s, now)

	wantsSummary := isInstallationSummary(s) || isExtractionSummary(s)

	if wantsSummary {
		if m.summary.active && now.Sub(m.summary.lastUpdatedAt) < m.summaryThrottle() {
			return m.summary.cachedRows
		}
		var rows []Row
		if isInstallationSummary(s) {
			rows = m.installationSummaryRows(s, bsaBuilding)
		} else {
			rows = m.extractionSummaryRows(s)
		}
		m.summary.active = true
		m.summary.cachedRows = rows
		m.summary.lastUpdatedAt = now
		return rows
	}

	if m.summary.active && now.Sub(m.summary.lastUpdatedAt) < m.summaryHold() {
		return m.summary.cachedRows
	}
	m.summary.active = false
	return m.fileListRows(s)
}

// installationSummaryRows renders the synthetic "Installing Files: X/Y"
// header plus up to three BSA/texture detail rows, grounded on
// InstallScreen.on_progress_updated's is_installation_phase branch.
func (m *RenderModel) installationSummaryRows(s *InstallationProgress, bsaBuilding bool) []Row {
	var rows []Row

	if s.PhaseStep > 0 || s.PhaseMaxSteps > 0 {
		rows = append(rows, Row{
			Filename: "Installing Files: " + strconv.Itoa(s.PhaseStep) + "/" + strconv.Itoa(s.PhaseMaxSteps),
			Flags:    FlagIsSummary | FlagNoProgressBar,
		})
	}

	details := 0
	for _, f := range s.ActiveFiles {
		if f.Operation != OpInstall {
			continue
		}
		if details >= 3 {
			break
		}

		switch {
		case hasAnySuffix(f.Filename, ".bsa", ".ba2"):
			label := "BSA: " + f.Filename
			if bsaBuilding && s.BsaBuildingTotal > 0 {
				label = "BSA: " + f.Filename + " (" + strconv.Itoa(s.BsaBuildingCurrent) + "/" + strconv.Itoa(s.BsaBuildingTotal) + ")"
			}
			rows = append(rows, Row{Filename: label, Operation: OpInstall, Percent: f.Percent, Flags: FlagNoProgressBar})
			details++
		case isTextureFile(f.Filename):
			label := "Converting Texture: " + f.Filename
			if s.TextureConversionTotal > 0 {
				label = "Converting Texture: " + f.Filename + " (" + strconv.Itoa(s.TextureConversionCurrent) + "/" + strconv.Itoa(s.TextureConversionTotal) + ")"
			}
			rows = append(rows, Row{Filename: label, Operation: OpInstall, Percent: f.Percent, Flags: FlagNoProgressBar})
			details++
		}
	}

	return rows
}

func isTextureFile(filename string) bool {
	_, ext := splitExt(basename(filename))
	return textureExtensions[strings.ToLower(ext)]
}

// extractionSummaryRows emits no file rows, only the "<label> (<step>/<max>)"
// summary the Extract phase shows.
func (m *RenderModel) extractionSummaryRows(s *InstallationProgress) []Row {
	label := m.phaseLabel(s)
	if label == "" {
		label = "Extracting"
	}
	return []Row{{
		Filename: label + " (" + strconv.Itoa(s.PhaseStep) + "/" + strconv.Itoa(s.PhaseMaxSteps) + ")",
		Flags:    FlagIsSummary | FlagNoProgressBar,
	}}
}

// fileListRows emits an ordered list of active files with determinate or
// indeterminate progress, grounded on FileProgressList.update_files /
// FileProgressItem._update_display. Each row's Percent is eased 20% of the
// remaining distance toward the engine's real percent per call, so a
// caller driving ActiveRows on a UI timer sees smooth motion rather than
// discrete jumps, per spec.md §4.3's interpolation rule.
func (m *RenderModel) fileListRows(s *InstallationProgress) []Row {
	nextDisplay := make(map[string]float64, len(s.ActiveFiles))
	rows := make([]Row, 0, len(s.ActiveFiles))
	for _, f := range s.ActiveFiles {
		displayed := m.interpolate(f.Filename, f.Percent)
		nextDisplay[f.Filename] = displayed

		row := Row{
			Filename:    f.Filename,
			Operation:   f.Operation,
			Percent:     displayed,
			CurrentSize: f.CurrentSize,
			TotalSize:   f.TotalSize,
			Speed:       f.Speed,
		}
		if f.Synthetic {
			row.Flags |= FlagSynthetic
		}

		determinate := f.Percent > 0 || (f.TotalSize > 0 && f.CurrentSize > 0) || (f.Speed > 0 && f.Percent >= 0)
		if !determinate {
			row.Flags |= FlagIndeterminate
		}
		if f.CurrentSize == 0 && f.TotalSize > 0 && f.Percent == 0 && f.Speed <= 0 {
			row.Flags |= FlagQueued
		}
		rows = append(rows, row)
	}
	m.displayPercent = nextDisplay
	return rows
}

// interpolate returns the next displayed percent for filename: unchanged
// (snapped) on first sight, otherwise eased 20% of the remaining distance
// toward target, snapping once within 0.5 of it.
func (m *RenderModel) interpolate(filename string, target float64) float64 {
	cur, ok := m.displayPercent[filename]
	if !ok {
		return target
	}
	diff := target - cur
	if diff > -0.5 && diff < 0.5 {
		return target
	}
	return cur + diff*0.2
}
