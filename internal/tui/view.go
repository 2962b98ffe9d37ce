package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jackify/jackify-progress/internal/progress"
)

// =============================================================================
// Live Engine View
// =============================================================================

// renderLiveView renders the header, overall progress, and active-file rows
// while the engine process is running.
func (m Model) renderLiveView() string {
	s := m.state()

	sections := []string{
		m.renderHeader(s),
		m.renderOverallProgress(s),
		m.renderActiveFiles(s),
		m.renderFooter(),
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) renderHeader(s *progress.InstallationProgress) string {
	header := fmt.Sprintf(
		" jackify-progress │ Phase: %s │ Elapsed: %s ",
		m.render.PhaseLabel(s),
		formatDuration(m.Elapsed()),
	)
	return headerStyle.Width(m.width).Render(header)
}

func (m Model) renderOverallProgress(s *progress.InstallationProgress) string {
	pct := float64(m.render.OverallPercent(s)) / 100.0
	label := m.render.OverallLabel(s)

	barWidth := m.width - 30
	if barWidth < 20 {
		barWidth = 20
	}

	content := lipgloss.JoinVertical(lipgloss.Left,
		sectionHeaderStyle.Render("Overall Progress"),
		RenderProgressBar(pct, barWidth),
		statusInfo.Render(label),
	)
	return boxStyle.Width(m.width - 2).Render(content)
}

func (m Model) renderActiveFiles(s *progress.InstallationProgress) string {
	rows := m.render.ActiveRows(s)
	if len(rows) == 0 {
		return boxStyle.Width(m.width - 2).Render(
			dimStyle.Render("Waiting for engine output..."),
		)
	}

	barWidth := m.width - 50
	if barWidth < 15 {
		barWidth = 15
	}

	lines := make([]string, 0, len(rows)+1)
	lines = append(lines, sectionHeaderStyle.Render("Active Files"))
	for _, row := range rows {
		lines = append(lines, m.renderRow(row, barWidth))
	}

	return boxStyle.Width(m.width - 2).Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

func (m Model) renderRow(row progress.Row, barWidth int) string {
	style := GetRowLabelStyle(row.Is(progress.FlagQueued), row.Is(progress.FlagSynthetic))
	name := style.Width(30).Render(truncate(row.Filename, 30))

	if row.Is(progress.FlagIsSummary) || row.Is(progress.FlagNoProgressBar) {
		return name
	}

	var bar string
	if row.Is(progress.FlagIndeterminate) {
		bar = RenderIndeterminateBar(m.tick, barWidth)
	} else {
		bar = RenderProgressBar(row.Percent/100.0, barWidth)
	}

	var size string
	switch {
	case row.TotalSize > 0:
		size = progress.FormatBytes(row.CurrentSize) + "/" + progress.FormatBytes(row.TotalSize)
	case row.CurrentSize > 0:
		size = progress.FormatBytes(row.CurrentSize)
	}

	var speed string
	if row.Speed > 0 {
		speed = progress.FormatBytes(int64(row.Speed)) + "/s"
	}

	return lipgloss.JoinHorizontal(lipgloss.Left,
		name,
		bar,
		" ",
		mutedStyle.Render(size),
		" ",
		dimStyle.Render(speed),
	)
}

func truncate(s string, width int) string {
	if len(s) <= width {
		return s
	}
	if width <= 3 {
		return s[:width]
	}
	return s[:width-3] + "..."
}

// =============================================================================
// Post-Install View
// =============================================================================

// renderPostInstallView renders the fixed-sequence step progress once the
// engine process has exited.
func (m Model) renderPostInstallView() string {
	s := m.postInstallState()

	pct := float64(m.render.OverallPercent(s)) / 100.0
	label := m.render.OverallLabel(s)

	barWidth := m.width - 30
	if barWidth < 20 {
		barWidth = 20
	}

	status := valueGoodStyle.Render(label)
	if !m.engineSucceeded {
		status = valueBadStyle.Render(label)
	}

	content := lipgloss.JoinVertical(lipgloss.Left,
		m.renderHeader(s),
		boxStyle.Width(m.width-2).Render(
			lipgloss.JoinVertical(lipgloss.Left,
				sectionHeaderStyle.Render("Post-Installation"),
				RenderProgressBar(pct, barWidth),
				status,
			),
		),
		m.renderFooter(),
	)
	return content
}

// postInstallState reads the machine's current step into a displayable
// InstallationProgress without advancing it (an empty message matches no
// keyword, so Observe only re-renders the existing step).
func (m Model) postInstallState() *progress.InstallationProgress {
	return m.postInstall.Observe("")
}

// =============================================================================
// Console (raw scrollback) View
// =============================================================================

// renderConsoleView shows the tail of recently decoded engine lines,
// toggled with the "d" key as an alternative to the rendered dashboard.
func (m Model) renderConsoleView() string {
	rows := m.height - 6
	if rows < 1 {
		rows = 1
	}
	lines := m.rawLines
	if len(lines) > rows {
		lines = lines[len(lines)-rows:]
	}

	body := dimStyle.Render("(no engine output yet)")
	if len(lines) > 0 {
		body = mutedStyle.Render(strings.Join(lines, "\n"))
	}

	content := lipgloss.JoinVertical(lipgloss.Left,
		m.renderHeader(m.state()),
		boxStyle.Width(m.width-2).Height(rows).Render(body),
		m.renderFooter(),
	)
	return content
}

// renderFailureBanner renders a bare failure notice for callers that never
// wired a post-install step machine, since there is no step sequence to show.
func (m Model) renderFailureBanner() string {
	return lipgloss.JoinVertical(lipgloss.Left,
		m.renderHeader(m.state()),
		boxStyle.Width(m.width-2).Render(statusError.Render("engine exited with an error")),
		m.renderFooter(),
	)
}

// =============================================================================
// Footer
// =============================================================================

func (m Model) renderFooter() string {
	hint := "q: quit │ d: toggle console"
	if m.rawView {
		hint = "q: quit │ d: back to dashboard"
	}
	return footerStyle.Render(dimStyle.Render(hint))
}
