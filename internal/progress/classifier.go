package progress

import (
	"regexp"
	"strconv"
	"strings"
)

// Classifier converts a single decoded engine output line into a ParsedLine.
// It is pure and stateless: the same input always yields an equal result.
// All patterns are compiled once, at package init, and ordered so a
// structured line always outranks a fallback one, per the grammar in
// SPEC_FULL.md §1 / spec.md §4.1.
type Classifier struct{}

// NewClassifier returns a ready-to-use Classifier. The type carries no
// state; the constructor exists so call sites read the same as the other
// components (NewAggregator, NewRenderModel, ...).
func NewClassifier() *Classifier {
	return &Classifier{}
}

// allowedExtensions is the display-filter allow-list: basenames with one
// of these extensions are worth showing in the UI.
var allowedExtensions = map[string]bool{
	".7z": true, ".zip": true, ".rar": true, ".bsa": true, ".ba2": true,
	".dds": true, ".wabbajack": true, ".exe": true, ".esp": true, ".esm": true,
	".esl": true, ".bin": true, ".dll": true, ".pak": true, ".tar": true,
	".gz": true, ".xz": true, ".bz2": true, ".z01": true, ".z02": true,
	".cab": true, ".msi": true,
}

// deniedStems is the generic-artifact stem deny-list.
var deniedStems = map[string]bool{
	"empty": true, "script": true, "one": true, "two": true, "three": true,
}

// textureExtensions identifies files whose Install-phase progress is shown
// as "Converting Texture: ..." in installation-summary mode.
var textureExtensions = map[string]bool{
	".dds": true, ".png": true, ".tga": true, ".bmp": true,
}

// ShouldDisplayFile applies the display filter described in spec.md §4.1.
func ShouldDisplayFile(filename string) bool {
	trimmed := strings.TrimSpace(filename)
	if trimmed == "" {
		return false
	}
	base := basename(trimmed)
	if base == "" {
		return false
	}
	if base == ".wabbajack" || base == "Downloading .wabbajack file" {
		return true
	}
	if strings.HasPrefix(base, "#") {
		return false
	}
	stem, ext := splitExt(base)
	if ext == "" {
		return false
	}
	if !allowedExtensions[strings.ToLower(ext)] {
		return false
	}
	if deniedStems[strings.ToLower(stem)] {
		return false
	}
	return true
}

func basename(path string) string {
	if i := strings.LastIndexAny(path, "/\\"); i >= 0 {
		return path[i+1:]
	}
	return path
}

func splitExt(base string) (stem, ext string) {
	i := strings.LastIndex(base, ".")
	if i <= 0 {
		return base, ""
	}
	return base[:i], base[i:]
}

// --- Regex grammar -----------------------------------------------------
//
// Every pattern below is compiled once at init and documented with the
// shape of line it recognizes. Order in source mirrors priority order in
// spec.md §4.1; Classify applies them in that order and a single line may
// contribute fields from more than one pattern.

var (
	// [FILE_PROGRESS] Downloading: ModpackA.7z (37.5%) [12.4MB/s] (2/10)
	// Speed bracket and counter parens are each optional.
	reFileProgress = regexp.MustCompile(
		`(?i)\[FILE_PROGRESS\]\s+(Downloading|Extracting|Validating|Installing|Converting|Building|Writing|Verifying|Compiling|Hashing|Completed|Checking existing):\s+(.+?)\s+\((\d+(?:\.\d+)?)%\)\s*(?:\[(.+?)\])?\s*(?:\((\d+)/(\d+)\))?`,
	)

	// === Installing files ===
	reSection = regexp.MustCompile(`===?\s*(.+?)\s*===?`)

	// [12/14] StatusText (data or count)
	// The primary structured bracketed-status form.
	reBracketedStatus = regexp.MustCompile(`\[(\d+)/(\d+)\]\s+(.+?)\s+\(([^)]+)\)`)

	// [00:00:10] Downloading Mod Archives (17/214) - 6.8MB/s
	reTimestampStatus = regexp.MustCompile(`\[[^\]]+\]\s+(.+?)\s+\((\d+)/(\d+)\)\s*-\s*(\S+)`)

	// [00:02:08] Downloading modlist.wabbajack (739.2/1947.2MB) - 6.0MB/s
	reWabbajackDownload = regexp.MustCompile(
		`(?i)\[[^\]]+\]\s+Downloading\s+(\S+\.wabbajack|\.wabbajack)\s+\(([^)]+)\)\s*-\s*(\S+)`,
	)
	reWabbajackFilenameInMessage = regexp.MustCompile(`(?i)([A-Za-z0-9_\-.]+\.wabbajack)`)

	// Fallback file-progress patterns, applied in order when no
	// [FILE_PROGRESS] line matched.
	reFileActionPercent = regexp.MustCompile(`(?i)(?:Installing|Downloading|Extracting|Validating):\s*(.+?)\s*\((\d+(?:\.\d+)?)%\)`)
	reFileColonPercent   = regexp.MustCompile(`(?i)(.+?\.(?:7z|zip|rar|bsa|dds|exe|esp|esm|esl|wabbajack))\s*[:-]\s*(\d+(?:\.\d+)?)%`)
	reFileBracketSpeed   = regexp.MustCompile(`(?i)(.+?\.(?:7z|zip|rar|bsa|dds|exe|esp|esm|esl|wabbajack))\s*[\[@]\s*([^\]]+)\]?`)
	reFileLooseAtPercent = regexp.MustCompile(`(?i)([A-Za-z0-9][^\s]*?[-_A-Za-z0-9]+\.(?:7z|zip|rar|bsa|dds|exe|esp|esm|esl|wabbajack))\s+(?:at|@|:|-)?\s*(\d+(?:\.\d+)?)%`)
	reFileOfBytes        = regexp.MustCompile(`(?i)([A-Za-z0-9][^\s]*?[-_A-Za-z0-9]+\.(?:7z|zip|rar|bsa|dds|exe|esp|esm|esl|wabbajack))\s*\(?\s*(\d+(?:\.\d+)?)\s*(B|KB|MB|GB|TB)\s*/?\s*of\s*(\d+(?:\.\d+)?)\s*(B|KB|MB|GB|TB)`)

	// Last-resort step / data / speed patterns.
	reStep  = regexp.MustCompile(`\[(\d+)/(\d+)\]`)
	reData  = regexp.MustCompile(`(?i)\(?(\d+(?:\.\d+)?)\s*(B|KB|MB|GB|TB)\s*/\s*(\d+(?:\.\d+)?)\s*(B|KB|MB|GB|TB)\)?`)
	reSpeedDash = regexp.MustCompile(`(?i)-\s*(\d+(?:\.\d+)?)\s*(B|KB|MB|GB|TB)\s*/s`)
	reSpeedAt   = regexp.MustCompile(`(?i)(?:at|speed:?)\s*(\d+(?:\.\d+)?)\s*(B|KB|MB|GB|TB)\s*/s`)

	// Finished downloading ModpackB.zip. Hash: abc123
	reCompleted = regexp.MustCompile(`(?i)Finished\s+(?:downloading|extracting|validating|installing)\s+(.+?)(?:\.\s|\.$|\s+Hash:)`)

	reActionPhase = regexp.MustCompile(`(?i)\[.*?\]\s*(Installing|Downloading|Extracting|Validating|Processing|Checking existing)`)

	// [..] Downloading Mod Archives / Installing files / Extracting Archives
	// status lines describe the phase, not a single file; never mistake them
	// for file-progress fallback matches.
	reStatusNotFile = regexp.MustCompile(`(?i)\[.*?\]\s*(?:Downloading|Installing|Extracting)\s+(?:Mod|Files|Archives)`)

	reOverallProgressWord = regexp.MustCompile(`(?i)(?:Progress|Overall):\s*(\d+(?:\.\d+)?)%`)
	reOverallProgressLead = regexp.MustCompile(`(?i)^(\d+(?:\.\d+)?)%\s*(?:complete|done|progress)`)

	reDataToken           = regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)\s*(B|KB|MB|GB|TB)\s*/\s*(\d+(?:\.\d+)?)\s*(B|KB|MB|GB|TB)`)
	reAsymmetricDataToken = regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)\s*(B|KB|MB|GB|TB)?\s*/\s*(\d+(?:\.\d+)?)\s*(B|KB|MB|GB|TB)`)
	reSpeedToken          = regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)\s*(B|KB|MB|GB|TB)\s*/s(?:ec)?`)
)

// counterKindForWord attributes a [FILE_PROGRESS] counter to the sub-phase
// it describes: Converting -> texture, Building -> BSA, anything else that
// carries a counter -> generic file step.
func counterKindForWord(word string) CarryKind {
	switch strings.ToLower(word) {
	case "converting":
		return CarryTextureCounter
	case "building":
		return CarryBsaCounter
	default:
		return CarryFileCounter
	}
}

// operationFromWord maps a [FILE_PROGRESS] action word to an Operation.
func operationFromWord(word string) Operation {
	switch strings.ToLower(word) {
	case "downloading":
		return OpDownload
	case "extracting":
		return OpExtract
	case "validating", "verifying", "hashing", "checking existing":
		return OpValidate
	case "installing", "building", "writing", "converting", "compiling":
		return OpInstall
	default: // "completed" and anything unrecognized
		return OpUnknown
	}
}

// Classify converts a single decoded line into a ParsedLine. It never
// fails: an unrecognized line yields has_progress=false with only the
// trimmed message set.
func (c *Classifier) Classify(line string) ParsedLine {
	out := ParsedLine{Message: strings.TrimSpace(line)}
	if out.Message == "" {
		return out
	}

	if phase, name, ok := extractPhase(line); ok {
		out.HasPhase, out.Phase, out.PhaseName = true, phase, name
		out.HasProgress = true
	}

	if fp, counter, ok := extractFileProgress(line); ok {
		out.FileProgress = fp
		out.HasProgress = true
		if counter != nil {
			out.HasFileCounter = true
			out.CounterCurrent, out.CounterTotal = counter[0], counter[1]
		}
	}

	if pct, ok := extractOverallPercent(line); ok {
		out.HasOverallPercent, out.OverallPercent = true, pct
		out.HasProgress = true
	}

	if m := reBracketedStatus.FindStringSubmatch(line); m != nil {
		statusText := strings.ToLower(strings.TrimSpace(m[3]))
		if !strings.Contains(statusText, ".wabbajack") && !strings.Contains(statusText, "downloading .wabbajack") {
			current, _ := strconv.Atoi(m[1])
			maxSteps, _ := strconv.Atoi(m[2])
			out.HasStepInfo, out.Step, out.MaxSteps = true, current, maxSteps

			if phase, name, ok := phaseFromText(statusText); ok {
				out.HasPhase, out.Phase, out.PhaseName = true, phase, name
			}

			if cur, total, ok := parseDataToken(strings.TrimSpace(m[4])); ok {
				out.HasDataInfo, out.CurrentBytes, out.TotalBytes = true, cur, total
			}
			out.HasProgress = true
		}
	}

	if m := reTimestampStatus.FindStringSubmatch(line); m != nil {
		statusText := strings.TrimSpace(m[1])
		if phase, name, ok := phaseFromText(strings.ToLower(statusText)); ok {
			out.HasPhase, out.Phase, out.PhaseName = true, phase, name
		}
		current, _ := strconv.Atoi(m[2])
		maxSteps, _ := strconv.Atoi(m[3])
		out.HasStepInfo, out.Step, out.MaxSteps = true, current, maxSteps

		if speed, ok := parseSpeedToken(strings.TrimSpace(m[4])); ok {
			out.HasSpeedInfo = true
			out.SpeedOp = detectOperationWord(statusText)
			out.Speed = speed
		}
		if maxSteps > 0 {
			out.HasOverallPercent = true
			out.OverallPercent = float64(current) / float64(maxSteps) * 100.0
		}
		out.HasProgress = true
	}

	if m := reWabbajackDownload.FindStringSubmatch(line); m != nil {
		filename := strings.TrimSpace(m[1])
		if filename == ".wabbajack" {
			if fm := reWabbajackFilenameInMessage.FindStringSubmatch(line); fm != nil {
				filename = fm[1]
			} else {
				filename = "Downloading .wabbajack file"
			}
		}

		dataStr := strings.TrimSpace(m[2])
		cur, total, ok := parseDataToken(dataStr)
		if !ok {
			cur, total, ok = parseAsymmetricDataToken(dataStr)
		}
		if ok {
			out.HasDataInfo, out.CurrentBytes, out.TotalBytes = true, cur, total
			if total > 0 {
				out.HasOverallPercent = true
				out.OverallPercent = float64(cur) / float64(total) * 100.0
			}
		}

		if speed, ok := parseSpeedToken(strings.TrimSpace(m[3])); ok {
			out.HasSpeedInfo, out.SpeedOp, out.Speed = true, "download", speed
		}

		out.HasPhase, out.Phase, out.PhaseName = true, PhaseDownload, "Downloading "+filename

		if ok {
			percent := 0.0
			if total > 0 {
				percent = float64(cur) / float64(total) * 100.0
			}
			wfp := NewFileProgress(filename, OpDownload, percent)
			wfp.CurrentSize, wfp.TotalSize = cur, total
			if speed, hasSpeed := parseSpeedToken(strings.TrimSpace(m[3])); hasSpeed {
				wfp.Speed = speed
			}
			out.FileProgress = wfp
		}
		out.HasProgress = true
	}

	if !out.HasStepInfo {
		if m := reStep.FindStringSubmatch(line); m != nil {
			current, _ := strconv.Atoi(m[1])
			maxSteps, _ := strconv.Atoi(m[2])
			out.HasStepInfo, out.Step, out.MaxSteps = true, current, maxSteps
			out.HasProgress = true
		}
	}

	if !out.HasDataInfo {
		if cur, total, ok := extractDataInfo(line); ok {
			out.HasDataInfo, out.CurrentBytes, out.TotalBytes = true, cur, total
			out.HasProgress = true
		}
	}

	if op, speed, ok := extractSpeedInfo(line); ok {
		out.HasSpeedInfo, out.SpeedOp, out.Speed = true, op, speed
		out.HasProgress = true
	}

	if filename, ok := extractCompletedFile(line); ok {
		out.CompletedFilename = filename
		out.HasProgress = true
	}

	return out
}

// extractPhase implements the section-header and bracketed-action phase
// detection of spec.md §4.1.
func extractPhase(line string) (Phase, string, bool) {
	if m := reSection.FindStringSubmatch(line); m != nil {
		name := strings.TrimSpace(m[1])
		return phaseFromSection(strings.ToLower(name)), name, true
	}
	if m := reActionPhase.FindStringSubmatch(line); m != nil {
		return phaseFromAction(strings.ToLower(m[1])), m[1], true
	}
	return PhaseUnknown, "", false
}

func phaseFromSection(name string) Phase {
	switch {
	case strings.Contains(name, "download"):
		return PhaseDownload
	case strings.Contains(name, "extract"):
		return PhaseExtract
	case strings.Contains(name, "validat") || strings.Contains(name, "verif"):
		return PhaseValidate
	case strings.Contains(name, "install"):
		return PhaseInstall
	case strings.Contains(name, "finaliz") || strings.Contains(name, "complet"):
		return PhaseFinalize
	case strings.Contains(name, "configur") || strings.Contains(name, "initializ"):
		return PhaseInitialization
	default:
		return PhaseUnknown
	}
}

func phaseFromAction(action string) Phase {
	switch {
	case strings.Contains(action, "download"):
		return PhaseDownload
	case strings.Contains(action, "extract"):
		return PhaseExtract
	case strings.Contains(action, "validat") || strings.Contains(action, "checking"):
		return PhaseValidate
	case strings.Contains(action, "install"):
		return PhaseInstall
	default:
		return PhaseUnknown
	}
}

// phaseFromText maps a free-form status text (e.g. "Installing files") to
// a phase, used by the bracketed/timestamped status patterns.
func phaseFromText(text string) (Phase, string, bool) {
	switch {
	case strings.Contains(text, "download"):
		return PhaseDownload, text, true
	case strings.Contains(text, "extract"):
		return PhaseExtract, text, true
	case strings.Contains(text, "validat") || strings.Contains(text, "hash"):
		return PhaseValidate, text, true
	case strings.Contains(text, "install"):
		return PhaseInstall, text, true
	case strings.Contains(text, "prepar") || strings.Contains(text, "configur"):
		return PhaseInitialization, text, true
	case strings.Contains(text, "finish") || strings.Contains(text, "complet"):
		return PhaseFinalize, text, true
	default:
		return PhaseUnknown, text, true
	}
}

func detectOperationWord(text string) string {
	lower := strings.ToLower(text)
	switch {
	case strings.Contains(lower, "download"):
		return "download"
	case strings.Contains(lower, "extract"):
		return "extract"
	case strings.Contains(lower, "validat") || strings.Contains(lower, "hash"):
		return "validate"
	case strings.Contains(lower, "install") || strings.Contains(lower, "build") || strings.Contains(lower, "convert"):
		return "install"
	default:
		return "unknown"
	}
}

// extractFileProgress implements the §4.1 structured and fallback file
// progress patterns. The returned counter, when non-nil, is (current,
// total) and fp.Carry already reflects whether it's a texture/BSA/generic
// counter and whether the entry is hidden.
func extractFileProgress(line string) (fp *FileProgress, counter *[2]int, ok bool) {
	if m := reFileProgress.FindStringSubmatch(line); m != nil {
		opWord := strings.TrimSpace(m[1])
		filename := strings.TrimSpace(m[2])
		percent, _ := strconv.ParseFloat(m[3], 64)
		speedStr := strings.TrimSpace(m[4])
		op := operationFromWord(opWord)

		var hasCounter bool
		var counterCur, counterTotal int
		if m[5] != "" && m[6] != "" {
			counterCur, _ = strconv.Atoi(m[5])
			counterTotal, _ = strconv.Atoi(m[6])
			hasCounter = true
		}

		if hasCounter && !ShouldDisplayFile(filename) {
			hidden := NewFileProgress("__phase_progress__", op, percent)
			hidden.Carry = Carry{Kind: counterKindForWord(opWord), Current: counterCur, Total: counterTotal, Hidden: true}
			return hidden, &[2]int{counterCur, counterTotal}, true
		}

		if !ShouldDisplayFile(filename) {
			return nil, nil, false
		}

		if strings.EqualFold(opWord, "completed") {
			percent = 100
		}

		speed := -1.0
		if speedStr != "" {
			if s, ok := parseSpeedToken(speedStr); ok {
				speed = s
			}
		}

		result := NewFileProgress(filename, op, percent)
		result.Speed = speed
		if cur, total, ok := extractDataInfo(line); ok {
			result.CurrentSize, result.TotalSize = cur, total
		}

		var ctr *[2]int
		if hasCounter {
			ctr = &[2]int{counterCur, counterTotal}
			result.Carry = Carry{Kind: counterKindForWord(opWord), Current: counterCur, Total: counterTotal}
		}
		return result, ctr, true
	}

	// Status lines like "[..] Downloading Mod Archives" are status text,
	// not individual file progress; never fall through to the patterns
	// below for them.
	if reStatusNotFile.MatchString(line) {
		return nil, nil, false
	}

	if m := reFileActionPercent.FindStringSubmatch(line); m != nil {
		filename := strings.TrimSpace(m[1])
		percent, _ := strconv.ParseFloat(m[2], 64)
		result := NewFileProgress(filename, operationFromLineContent(line), percent)
		if cur, total, ok := extractDataInfo(line); ok {
			result.CurrentSize, result.TotalSize = cur, total
		}
		return result, nil, true
	}

	if m := reFileColonPercent.FindStringSubmatch(line); m != nil {
		filename := strings.TrimSpace(m[1])
		percent, _ := strconv.ParseFloat(m[2], 64)
		result := NewFileProgress(filename, operationFromLineContent(line), percent)
		if cur, total, ok := extractDataInfo(line); ok {
			result.CurrentSize, result.TotalSize = cur, total
		}
		return result, nil, true
	}

	if m := reFileBracketSpeed.FindStringSubmatch(line); m != nil {
		filename := strings.TrimSpace(m[1])
		speedStr := strings.TrimRight(strings.TrimSpace(m[2]), "]")
		result := NewFileProgress(filename, operationFromLineContent(line), 0)
		if speed, ok := parseSpeedToken(speedStr); ok {
			result.Speed = speed
		}
		if cur, total, ok := extractDataInfo(line); ok {
			result.CurrentSize, result.TotalSize = cur, total
		}
		return result, nil, true
	}

	if m := reFileLooseAtPercent.FindStringSubmatch(line); m != nil {
		filename := strings.TrimSpace(m[1])
		percent, _ := strconv.ParseFloat(m[2], 64)
		result := NewFileProgress(filename, operationFromLineContent(line), percent)
		return result, nil, true
	}

	if m := reFileOfBytes.FindStringSubmatch(line); m != nil {
		filename := strings.TrimSpace(m[1])
		curVal, _ := strconv.ParseFloat(m[2], 64)
		curBytes := ConvertToBytes(curVal, m[3])
		totalVal, _ := strconv.ParseFloat(m[4], 64)
		totalBytes := ConvertToBytes(totalVal, m[5])
		percent := 0.0
		if totalBytes > 0 {
			percent = float64(curBytes) / float64(totalBytes) * 100.0
		}
		result := NewFileProgress(filename, operationFromLineContent(line), percent)
		result.CurrentSize, result.TotalSize = curBytes, totalBytes
		return result, nil, true
	}

	return nil, nil, false
}

func operationFromLineContent(line string) Operation {
	lower := strings.ToLower(line)
	switch {
	case strings.Contains(lower, "download"):
		return OpDownload
	case strings.Contains(lower, "extract"):
		return OpExtract
	case strings.Contains(lower, "validat"):
		return OpValidate
	case strings.Contains(lower, "install") || strings.Contains(lower, "build") || strings.Contains(lower, "convert"):
		return OpInstall
	default:
		return OpUnknown
	}
}

func extractOverallPercent(line string) (float64, bool) {
	if m := reOverallProgressWord.FindStringSubmatch(line); m != nil {
		v, _ := strconv.ParseFloat(m[1], 64)
		return v, true
	}
	if m := reOverallProgressLead.FindStringSubmatch(line); m != nil {
		v, _ := strconv.ParseFloat(m[1], 64)
		return v, true
	}
	return 0, false
}

func extractDataInfo(line string) (current, total int64, ok bool) {
	m := reData.FindStringSubmatch(line)
	if m == nil {
		return 0, 0, false
	}
	curVal, _ := strconv.ParseFloat(m[1], 64)
	totalVal, _ := strconv.ParseFloat(m[3], 64)
	return ConvertToBytes(curVal, m[2]), ConvertToBytes(totalVal, m[4]), true
}

// parseDataToken parses a "1.1GB/56.3GB" style string (without requiring
// surrounding parens), as used for the bracketed-status parenthetical.
func parseDataToken(token string) (current, total int64, ok bool) {
	m := reDataToken.FindStringSubmatch(token)
	if m == nil {
		return 0, 0, false
	}
	curVal, _ := strconv.ParseFloat(m[1], 64)
	totalVal, _ := strconv.ParseFloat(m[3], 64)
	return ConvertToBytes(curVal, m[2]), ConvertToBytes(totalVal, m[4]), true
}

// parseAsymmetricDataToken handles "49.7/1947.2MB" where only the second
// number carries a unit (the first inherits it).
func parseAsymmetricDataToken(token string) (current, total int64, ok bool) {
	m := reAsymmetricDataToken.FindStringSubmatch(token)
	if m == nil {
		return 0, 0, false
	}
	unit := m[2]
	if unit == "" {
		unit = m[4]
	}
	curVal, _ := strconv.ParseFloat(m[1], 64)
	totalVal, _ := strconv.ParseFloat(m[3], 64)
	return ConvertToBytes(curVal, unit), ConvertToBytes(totalVal, m[4]), true
}

func extractSpeedInfo(line string) (op string, speed float64, ok bool) {
	if m := reSpeedDash.FindStringSubmatch(line); m != nil {
		v, _ := strconv.ParseFloat(m[1], 64)
		return detectOperationWord(line), float64(ConvertToBytes(v, m[2])), true
	}
	if m := reSpeedAt.FindStringSubmatch(line); m != nil {
		v, _ := strconv.ParseFloat(m[1], 64)
		return detectOperationWord(line), float64(ConvertToBytes(v, m[2])), true
	}
	return "", 0, false
}

// parseSpeedToken parses "12.4MB/s"-shaped tokens (optionally with "sec").
func parseSpeedToken(token string) (float64, bool) {
	m := reSpeedToken.FindStringSubmatch(token)
	if m == nil {
		return 0, false
	}
	v, _ := strconv.ParseFloat(m[1], 64)
	return float64(ConvertToBytes(v, m[2])), true
}

func extractCompletedFile(line string) (string, bool) {
	m := reCompleted.FindStringSubmatch(line)
	if m == nil {
		return "", false
	}
	filename := strings.TrimRight(strings.TrimSpace(m[1]), ". ")
	return filename, true
}
