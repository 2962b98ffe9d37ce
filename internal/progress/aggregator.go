package progress

import (
	"math"
	"regexp"
	"strings"
	"time"
)

// SpeedFreshness is the default window within which an aggregate speed in
// InstallationProgress.Speeds is considered current enough to render. Spec
// §9's open question calls this out as heuristic; RenderModel.SpeedFreshness
// overrides it so a caller can tune it without touching the algorithm.
const SpeedFreshness = 2 * time.Second

const (
	completedStaleAfter   = 500 * time.Millisecond
	incompleteStaleAfter  = 30 * time.Second
	minSpeedSampleWindow  = 1 * time.Second
)

// fileHistory is the per-filename carry-forward state used to derive
// total size and throughput across updates, grounded on
// ProgressStateManager._file_history in the reference implementation.
type fileHistory struct {
	bytes         int64
	total         int64
	at            time.Time
	computedSpeed float64
}

// Aggregator owns the single InstallationProgress value for one
// installation run and folds ParsedLine records into it. It is not
// thread-safe: the caller must serialize calls onto one goroutine (see the
// package documentation).
type Aggregator struct {
	classifier *Classifier
	state      *InstallationProgress

	history map[string]fileHistory

	// wabbajackEntryName is the filename chosen for a synthetic top-level
	// archive entry, sticky across updates so repeated synthetic refreshes
	// address the same entry.
	wabbajackEntryName string
	hasRealWabbajack   bool

	// SpeedFreshness holds a caller's aggregate-speed freshness window. The
	// Aggregator itself does not read it; RenderModel.SpeedFreshness is the
	// window OverallLabel applies.
	SpeedFreshness time.Duration
	// CompletedStaleAfter / IncompleteStaleAfter override the active-file
	// sweep windows of sweepActiveFiles; zero means "use the package
	// default." Exposed for the same reason as SpeedFreshness (spec.md §9).
	CompletedStaleAfter  time.Duration
	IncompleteStaleAfter time.Duration
}

// NewAggregator returns an Aggregator ready to process lines for a fresh
// run.
func NewAggregator() *Aggregator {
	return &Aggregator{
		classifier: NewClassifier(),
		state:      NewInstallationProgress(),
		history:    make(map[string]fileHistory),
	}
}

// GetState returns the aggregator's authoritative, owned value. Callers
// must treat it as borrowed for the duration of one render call and must
// not mutate it.
func (a *Aggregator) GetState() *InstallationProgress {
	return a.state
}

// Reset discards all state and per-file history, as if a new run began.
func (a *Aggregator) Reset() {
	a.state = NewInstallationProgress()
	a.history = make(map[string]fileHistory)
	a.wabbajackEntryName = ""
	a.hasRealWabbajack = false
}

// ProcessLine classifies a single decoded engine output line and folds it
// into the aggregator's state. It returns whether the state changed. No
// input can make ProcessLine fail: an unrecognized line is a no-op.
func (a *Aggregator) ProcessLine(line string) bool {
	parsed := a.classifier.Classify(line)
	return a.apply(parsed)
}

func (a *Aggregator) completedStaleAfter() time.Duration {
	if a.CompletedStaleAfter > 0 {
		return a.CompletedStaleAfter
	}
	return completedStaleAfter
}

func (a *Aggregator) incompleteStaleAfter() time.Duration {
	if a.IncompleteStaleAfter > 0 {
		return a.IncompleteStaleAfter
	}
	return incompleteStaleAfter
}

// apply implements the 12-step update procedure of spec.md §4.2.
func (a *Aggregator) apply(p ParsedLine) bool {
	if !p.HasProgress {
		return false
	}

	s := a.state
	updated := false

	if p.HasPhase {
		s.Phase = p.Phase
		updated = true
	}
	if p.PhaseName != "" {
		s.PhaseName = p.PhaseName
		updated = true
	}

	if p.HasOverallPercent {
		s.OverallPercent = clampPercent(p.OverallPercent)
		updated = true
	}

	if p.HasStepInfo {
		s.PhaseStep, s.PhaseMaxSteps = p.Step, p.MaxSteps
		updated = true
	}

	if p.HasDataInfo {
		s.DataProcessed, s.DataTotal = p.CurrentBytes, p.TotalBytes
		if s.OverallPercent == 0 && s.DataTotal > 0 {
			s.OverallPercent = clampPercent(float64(s.DataProcessed) / float64(s.DataTotal) * 100.0)
		}
		updated = true
	}

	// The per-file counter is authoritative over the step counter when
	// both are present on the same line.
	if p.HasFileCounter {
		s.PhaseStep, s.PhaseMaxSteps = p.CounterCurrent, p.CounterTotal
		updated = true
	}

	if p.FileProgress != nil {
		fp := p.FileProgress
		if fp.Carry.Hidden {
			a.applyCarry(fp.Carry)
			updated = true
		} else {
			if fp.Carry.Kind == CarryTextureCounter {
				s.TextureConversionCurrent, s.TextureConversionTotal = fp.Carry.Current, fp.Carry.Total
			} else if fp.Carry.Kind == CarryBsaCounter {
				s.BsaBuildingCurrent, s.BsaBuildingTotal = fp.Carry.Current, fp.Carry.Total
			}

			if strings.HasSuffix(strings.ToLower(fp.Filename), ".wabbajack") {
				a.wabbajackEntryName = fp.Filename
				a.hasRealWabbajack = true
				a.removeSyntheticWabbajack()
			}

			a.augmentFileMetrics(fp)
			a.addFile(fp)
			updated = true
		}
	} else if p.HasDataInfo && !a.hasRealWabbajack {
		if a.maybeAddWabbajackProgress(p) {
			updated = true
		}
	}

	if p.CompletedFilename != "" && ShouldDisplayFile(p.CompletedFilename) {
		a.applyCompletedFilename(p.CompletedFilename)
		updated = true
	}

	if p.HasSpeedInfo {
		a.updateSpeed(p.SpeedOp, p.Speed)
		updated = true
	}

	if p.Message != "" {
		s.Message = p.Message
	}

	if updated {
		s.Timestamp = time.Now()
	}

	a.sweepActiveFiles()

	return updated
}

// applyCarry stores a hidden FileProgress's counter at the aggregator
// level, attributed to whichever sub-phase it describes.
func (a *Aggregator) applyCarry(c Carry) {
	switch c.Kind {
	case CarryTextureCounter:
		a.state.TextureConversionCurrent, a.state.TextureConversionTotal = c.Current, c.Total
	case CarryBsaCounter:
		a.state.BsaBuildingCurrent, a.state.BsaBuildingTotal = c.Current, c.Total
	default:
		a.state.PhaseStep, a.state.PhaseMaxSteps = c.Current, c.Total
	}
}

// addFile implements InstallationProgress.add_file from the reference
// implementation: skip newly observed files already at 100% (avoids
// flash-adding pre-existing files at startup), otherwise insert or update
// in place, refreshing LastUpdate so a just-completed file is held visible.
func (a *Aggregator) addFile(fp *FileProgress) {
	s := a.state
	existing := s.FindFile(fp.Filename)
	now := time.Now()

	if fp.Percent >= 100 {
		if existing == nil {
			// Never-tracked file that's already done (e.g. pre-existing on
			// disk) — don't flash-add it.
			return
		}
		if existing.Percent >= 100 {
			if now.Sub(existing.LastUpdate) < a.completedStaleAfter() {
				existing.LastUpdate = now
			}
			return
		}
	}

	if existing != nil {
		existing.Operation = fp.Operation
		existing.Percent = fp.Percent
		existing.CurrentSize = fp.CurrentSize
		existing.TotalSize = fp.TotalSize
		existing.Speed = fp.Speed
		existing.Carry = fp.Carry
		existing.LastUpdate = now
		return
	}

	fp.LastUpdate = now
	s.ActiveFiles = append(s.ActiveFiles, fp)
}

// augmentFileMetrics carries forward an unknown total size, derives
// current_size from percent when the engine omits it, and computes
// throughput when the engine didn't report a speed. Grounded on
// ProgressStateManager._augment_file_metrics.
func (a *Aggregator) augmentFileMetrics(fp *FileProgress) {
	now := time.Now()
	hist, hadHistory := a.history[fp.Filename]

	total := fp.TotalSize
	if total == 0 && hadHistory {
		total = hist.total
	}
	if total > 0 && fp.Percent > 0 && fp.CurrentSize == 0 {
		fp.CurrentSize = int64(math.Round(fp.Percent / 100.0 * float64(total)))
	}
	if total > 0 && fp.TotalSize == 0 {
		fp.TotalSize = total
	}

	current := fp.CurrentSize

	var computedSpeed float64
	if fp.Speed < 0 {
		computedSpeed = 0
		if hadHistory && current > 0 {
			deltaBytes := current - hist.bytes
			deltaTime := now.Sub(hist.at)
			switch {
			case deltaBytes >= 0 && deltaTime >= minSpeedSampleWindow:
				computedSpeed = float64(deltaBytes) / deltaTime.Seconds()
			case hist.computedSpeed > 0:
				computedSpeed = hist.computedSpeed
			}
		}
		fp.Speed = computedSpeed
	} else {
		computedSpeed = fp.Speed
	}

	if current > 0 || total > 0 {
		a.history[fp.Filename] = fileHistory{bytes: current, total: total, at: now, computedSpeed: computedSpeed}
	} else if hadHistory {
		a.history[fp.Filename] = hist
	}
}

// applyCompletedFilename handles a "Finished <op> <filename>" marker: it
// refreshes a tracked entry to 100%, or synthesizes a brief completion
// entry when the engine never surfaced progress for the file.
func (a *Aggregator) applyCompletedFilename(filename string) {
	s := a.state
	for _, f := range s.ActiveFiles {
		if f.Filename == filename || strings.HasSuffix(f.Filename, filename) || strings.Contains(f.Filename, filename) {
			f.Percent = 100
			f.LastUpdate = time.Now()
			return
		}
	}

	fp := NewFileProgress(filename, OpDownload, 100)
	fp.LastUpdate = time.Now()
	s.ActiveFiles = append(s.ActiveFiles, fp)
}

func (a *Aggregator) updateSpeed(op string, speed float64) {
	if speed < 0 {
		speed = 0
	}
	key := strings.ToLower(op)
	a.state.Speeds[key] = speed
	a.state.SpeedTimestamps[key] = time.Now()
}

// sweepActiveFiles removes entries that are either completed and older
// than completedStaleAfter, or incomplete and idle past
// incompleteStaleAfter. Grounded on
// InstallationProgress.remove_completed_files.
func (a *Aggregator) sweepActiveFiles() {
	s := a.state
	now := time.Now()
	completedWindow := a.completedStaleAfter()
	incompleteWindow := a.incompleteStaleAfter()
	kept := s.ActiveFiles[:0:0]
	for _, f := range s.ActiveFiles {
		idle := now.Sub(f.LastUpdate)
		switch {
		case f.IsComplete() && idle < completedWindow:
			kept = append(kept, f)
		case !f.IsComplete() && idle < incompleteWindow:
			kept = append(kept, f)
		}
	}
	s.ActiveFiles = kept
}

var reWabbajackFilenameInText = regexp.MustCompile(`(?i)([A-Za-z0-9_\-.]+\.wabbajack)`)

// maybeAddWabbajackProgress implements the synthetic top-level archive
// entry policy of spec.md §4.2, grounded on
// ProgressStateManager._maybe_add_wabbajack_progress.
func (a *Aggregator) maybeAddWabbajackProgress(p ParsedLine) bool {
	if !p.HasDataInfo || p.TotalBytes <= 0 {
		return false
	}

	s := a.state
	for _, fp := range s.ActiveFiles {
		if fp.Synthetic || strings.HasSuffix(strings.ToLower(fp.Filename), ".wabbajack") {
			if !fp.Synthetic {
				return false
			}
			percent := float64(p.CurrentBytes) / float64(p.TotalBytes) * 100.0
			fp.SetPercent(percent)
			fp.CurrentSize, fp.TotalSize = p.CurrentBytes, p.TotalBytes
			fp.LastUpdate = time.Now()
			a.augmentFileMetrics(fp)
			return true
		}
	}

	message := strings.ToLower(p.Message)
	phaseName := strings.ToLower(p.PhaseName)
	shouldForce := strings.Contains(message, "wabbajack") || strings.Contains(phaseName, "wabbajack")

	if !shouldForce {
		if a.hasRealDownloadActivity() {
			return false
		}
		if s.Phase != PhaseInitialization && s.Phase != PhaseDownload {
			return false
		}
	}

	if a.wabbajackEntryName == "" {
		if m := reWabbajackFilenameInText.FindStringSubmatch(p.Message); m != nil {
			a.wabbajackEntryName = m[1]
		} else {
			a.wabbajackEntryName = "Downloading .wabbajack file"
		}
	}

	percent := float64(p.CurrentBytes) / float64(p.TotalBytes) * 100.0
	fp := NewFileProgress(a.wabbajackEntryName, OpDownload, percent)
	fp.CurrentSize, fp.TotalSize = p.CurrentBytes, p.TotalBytes
	fp.Synthetic = true
	fp.LastUpdate = time.Now()
	a.augmentFileMetrics(fp)
	s.ActiveFiles = append(s.ActiveFiles, fp)
	return true
}

func (a *Aggregator) hasRealDownloadActivity() bool {
	for _, fp := range a.state.ActiveFiles {
		if fp.Synthetic {
			continue
		}
		if fp.Operation == OpDownload {
			return true
		}
	}
	return false
}

// removeSyntheticWabbajack deletes any synthetic .wabbajack entry once a
// real one has been observed, clearing its history too.
func (a *Aggregator) removeSyntheticWabbajack() {
	s := a.state
	remaining := s.ActiveFiles[:0:0]
	removed := false
	for _, fp := range s.ActiveFiles {
		if fp.Synthetic {
			removed = true
			delete(a.history, fp.Filename)
			continue
		}
		remaining = append(remaining, fp)
	}
	if removed {
		s.ActiveFiles = remaining
	}
}
