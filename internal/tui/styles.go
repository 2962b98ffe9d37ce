// Package tui provides a live terminal dashboard for the Jackify installation
// engine's progress telemetry.
//
// The TUI uses Bubble Tea for the application framework and Lipgloss for
// styling. It displays:
// - The overall phase label and percent
// - The active-file view (installation summary, extraction summary, or file list)
// - The post-install step sequence once the engine process exits
package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

// =============================================================================
// Color Palette
// =============================================================================

var (
	colorPrimary   = lipgloss.Color("#7C3AED") // Purple
	colorSecondary = lipgloss.Color("#06B6D4") // Cyan
	colorAccent    = lipgloss.Color("#F59E0B") // Amber

	colorSuccess = lipgloss.Color("#10B981") // Green
	colorWarning = lipgloss.Color("#F59E0B") // Amber
	colorError   = lipgloss.Color("#EF4444") // Red
	colorInfo    = lipgloss.Color("#3B82F6") // Blue

	colorText      = lipgloss.Color("#E5E7EB") // Light gray
	colorTextMuted = lipgloss.Color("#9CA3AF") // Medium gray
	colorTextDim   = lipgloss.Color("#6B7280") // Dark gray
	colorBorder    = lipgloss.Color("#374151") // Border gray
)

// =============================================================================
// Base Styles
// =============================================================================

var (
	baseStyle = lipgloss.NewStyle().
			Foreground(colorText)

	mutedStyle = lipgloss.NewStyle().
			Foreground(colorTextMuted)

	dimStyle = lipgloss.NewStyle().
			Foreground(colorTextDim)
)

// =============================================================================
// Status Indicator Styles
// =============================================================================

var (
	statusError = lipgloss.NewStyle().
			Foreground(colorError).
			Bold(true)

	statusInfo = lipgloss.NewStyle().
			Foreground(colorInfo).
			Bold(true)
)

// =============================================================================
// Layout Styles
// =============================================================================

var (
	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorBorder).
			Padding(0, 1)

	headerStyle = lipgloss.NewStyle().
			Foreground(colorText).
			Background(colorPrimary).
			Bold(true).
			Padding(0, 1).
			MarginBottom(1)

	sectionHeaderStyle = lipgloss.NewStyle().
				Foreground(colorSecondary).
				Bold(true).
				BorderStyle(lipgloss.NormalBorder()).
				BorderBottom(true).
				BorderForeground(colorBorder).
				MarginTop(1)

	footerStyle = lipgloss.NewStyle().
			Foreground(colorTextMuted).
			MarginTop(1)
)

// =============================================================================
// Value Styles
// =============================================================================

var (
	valueGoodStyle = lipgloss.NewStyle().
			Foreground(colorSuccess).
			Bold(true)

	valueBadStyle = lipgloss.NewStyle().
			Foreground(colorError).
			Bold(true)
)

// =============================================================================
// Progress Bar Styles
// =============================================================================

var (
	progressBarStyle = lipgloss.NewStyle().
				Foreground(colorPrimary)

	progressBarEmptyStyle = lipgloss.NewStyle().
				Foreground(colorBorder)

	progressPercentStyle = lipgloss.NewStyle().
				Foreground(colorText).
				Bold(true)

	progressBarIndeterminateStyle = lipgloss.NewStyle().
					Foreground(colorAccent)
)

// GetRowLabelStyle returns the style for a row's filename, dimmed when the
// row is queued (not yet started) or muted when it is a synthetic
// placeholder entry.
func GetRowLabelStyle(queued, synthetic bool) lipgloss.Style {
	if queued {
		return dimStyle
	}
	if synthetic {
		return mutedStyle
	}
	return baseStyle
}

// =============================================================================
// Helper Functions
// =============================================================================

// RenderProgressBar renders a determinate progress bar.
func RenderProgressBar(progress float64, width int) string {
	if width < 10 {
		width = 10
	}

	filled := int(progress * float64(width))
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}

	bar := progressBarStyle.Render(repeatChar('█', filled)) +
		progressBarEmptyStyle.Render(repeatChar('░', width-filled))

	percent := progressPercentStyle.Render(fmt.Sprintf(" %3.0f%%", progress*100))

	return bar + percent
}

// RenderIndeterminateBar renders a short filled span bouncing across the
// bar, position derived from tick so repeated calls at a steady tick rate
// animate it sliding back and forth instead of showing a fixed percent.
func RenderIndeterminateBar(tick int, width int) string {
	if width < 10 {
		width = 10
	}
	span := width / 4
	if span < 2 {
		span = 2
	}
	travel := width - span
	if travel < 1 {
		travel = 1
	}
	pos := tick % (travel * 2)
	if pos > travel {
		pos = travel*2 - pos
	}

	return progressBarEmptyStyle.Render(repeatChar('░', pos)) +
		progressBarIndeterminateStyle.Render(repeatChar('█', span)) +
		progressBarEmptyStyle.Render(repeatChar('░', width-pos-span))
}

func repeatChar(char rune, count int) string {
	if count <= 0 {
		return ""
	}
	result := make([]rune, count)
	for i := range result {
		result[i] = char
	}
	return string(result)
}
