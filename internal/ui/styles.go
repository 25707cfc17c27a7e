package ui

import "github.com/charmbracelet/lipgloss"

var (
	colorAccent  = lipgloss.AdaptiveColor{Light: "#6B21A8", Dark: "#D8A6FF"}
	colorDone    = lipgloss.AdaptiveColor{Light: "#065F46", Dark: "#7EE2B8"}
	colorMuted   = lipgloss.AdaptiveColor{Light: "#6B7280", Dark: "#9CA3AF"}
	colorError   = lipgloss.AdaptiveColor{Light: "#DC2626", Dark: "#FF6B6B"}
	colorTrackBg = lipgloss.AdaptiveColor{Light: "#E5E7EB", Dark: "#374151"}
)

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(colorAccent).
			Bold(true)

	dateStyle = lipgloss.NewStyle().
			Foreground(colorMuted)

	counterStyle = lipgloss.NewStyle().
			Bold(true)

	tabStyle = lipgloss.NewStyle().
			Foreground(colorMuted).
			Padding(0, 1)

	activeTabStyle = lipgloss.NewStyle().
			Foreground(colorAccent).
			Bold(true).
			Underline(true).
			Padding(0, 1)

	doneStyle = lipgloss.NewStyle().
			Foreground(colorDone).
			Strikethrough(true)

	removingStyle = lipgloss.NewStyle().
			Foreground(colorMuted).
			Faint(true).
			Strikethrough(true)

	cursorStyle = lipgloss.NewStyle().
			Foreground(colorAccent).
			Bold(true)

	barFilledStyle = lipgloss.NewStyle().
			Foreground(colorDone)

	barEmptyStyle = lipgloss.NewStyle().
			Foreground(colorTrackBg)

	mutedStyle = lipgloss.NewStyle().
			Foreground(colorMuted)

	errorStyle = lipgloss.NewStyle().
			Foreground(colorError).
			Bold(true)
)
