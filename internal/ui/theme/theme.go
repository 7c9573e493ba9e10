package theme

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/mathdrill/internal/facts"
)

// Color palette
var (
	Primary   = lipgloss.Color("#6366F1") // Indigo
	Secondary = lipgloss.Color("#0EA5E9") // Sky
	Accent    = lipgloss.Color("#F59E0B") // Amber
	Success   = lipgloss.Color("#22C55E") // Green
	Warning   = lipgloss.Color("#EAB308") // Yellow
	Error     = lipgloss.Color("#EF4444") // Red
	Text      = lipgloss.Color("#F8FAFC") // White
	TextDim   = lipgloss.Color("#94A3B8") // Slate
	BgCard    = lipgloss.Color("#1E293B") // Dark Slate
	Border    = lipgloss.Color("#334155") // Slate

	Multiply = lipgloss.Color("#A855F7") // Purple
	Divide   = lipgloss.Color("#14B8A6") // Teal
)

// Typography
var (
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary).
		Align(lipgloss.Center)

	Subtitle = lipgloss.NewStyle().
			Foreground(TextDim).
			Align(lipgloss.Center)

	Body = lipgloss.NewStyle().
		Foreground(Text)

	Hint = lipgloss.NewStyle().
		Foreground(TextDim).
		Italic(true)

	// Problem renders the question being asked.
	Problem = lipgloss.NewStyle().
		Bold(true).
		Foreground(Text).
		Padding(1, 4).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Primary)
)

// Layout
var (
	Card = lipgloss.NewStyle().
		Background(BgCard).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Border).
		Padding(1, 2)
)

// States
var (
	Selected = lipgloss.NewStyle().
			Foreground(Primary).
			Bold(true)

	Unselected = lipgloss.NewStyle().
			Foreground(Text)

	Disabled = lipgloss.NewStyle().
			Foreground(Border)

	Correct = lipgloss.NewStyle().
		Foreground(Success).
		Bold(true)

	Incorrect = lipgloss.NewStyle().
			Foreground(Error).
			Bold(true)

	Badge = lipgloss.NewStyle().
		Foreground(BgCard).
		Background(Accent).
		Bold(true).
		Padding(0, 1)
)

// Components
var (
	ProgressEmpty = lipgloss.NewStyle().
			Background(Border)

	ToggleOn = lipgloss.NewStyle().
			Background(Primary).
			Foreground(Text).
			Bold(true).
			Padding(0, 1)

	ToggleOff = lipgloss.NewStyle().
			Foreground(TextDim).
			Padding(0, 1)
)

// ModeColor returns the accent color for a quiz mode.
func ModeColor(m facts.Mode) lipgloss.Style {
	if m == facts.Division {
		return lipgloss.NewStyle().Foreground(Divide).Bold(true)
	}
	return lipgloss.NewStyle().Foreground(Multiply).Bold(true)
}

// TimerStyle colors the countdown bar by the share of time left.
func TimerStyle(fraction float64) lipgloss.Style {
	switch {
	case fraction > 0.5:
		return lipgloss.NewStyle().Background(Success)
	case fraction > 0.25:
		return lipgloss.NewStyle().Background(Warning)
	default:
		return lipgloss.NewStyle().Background(Error)
	}
}
