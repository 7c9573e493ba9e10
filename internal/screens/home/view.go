package home

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/mathdrill/internal/ui/components"
	"github.com/abhisek/mathdrill/internal/ui/theme"
)

const titleFull = `┏┳┓┏━┓╺┳╸╻ ╻╺┳┓┏━┓╻╻  ╻
┃┃┃┣━┫ ┃ ┣━┫ ┃┃┣┳┛┃┃  ┃
╹ ╹╹ ╹ ╹ ╹ ╹╺┻┛╹┗╸╹┗━╸┗━╸`

const titleCompact = "M A T H D R I L L"

// buttonWidth is the fixed width for menu buttons.
const buttonWidth = 26

// contentWidth returns the uniform inner width used for all sections.
func contentWidth(frameWidth int) int {
	return min(max(frameWidth-6, 20), 60)
}

func renderTitle(cw int, compact bool) string {
	text := titleFull
	if compact {
		text = titleCompact
	}
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render(text))
}

// renderStatsBar shows the stored mistake count and the last result.
func renderStatsBar(mistakes int, last string, cw int) string {
	mistakeStyle := lipgloss.NewStyle().Foreground(theme.Accent).Bold(true)
	dim := lipgloss.NewStyle().Foreground(theme.TextDim)

	var left string
	switch mistakes {
	case 0:
		left = dim.Render("✓ NO MISTAKES TO REVIEW")
	case 1:
		left = mistakeStyle.Render("✗ 1 MISTAKE TO REVIEW")
	default:
		left = mistakeStyle.Render(fmt.Sprintf("✗ %d MISTAKES TO REVIEW", mistakes))
	}
	stats := left
	if last != "" {
		stats += "  " + dim.Render("LAST: "+last)
	}

	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.Secondary).
		Width(cw - 2).
		Align(lipgloss.Center).
		Padding(0, 1).
		Render(stats)
}

// renderButtons renders each menu item as a fixed-width button.
func renderButtons(menu components.Menu, cw int) string {
	base := lipgloss.NewStyle().
		Width(buttonWidth).
		Align(lipgloss.Center).
		Border(lipgloss.RoundedBorder()).
		Padding(0, 1)
	selected := base.
		Bold(true).
		Foreground(theme.BgCard).
		Background(theme.Primary).
		BorderForeground(theme.Primary)
	normal := base.Foreground(theme.Text).BorderForeground(theme.Border)
	disabled := base.Foreground(theme.TextDim).BorderForeground(theme.Border)

	buttons := make([]string, 0, len(menu.Items))
	for i, item := range menu.Items {
		label := item.Label
		if item.Badge != "" {
			label += " (" + item.Badge + ")"
		}
		switch {
		case item.Disabled:
			buttons = append(buttons, disabled.Render(label))
		case i == menu.Selected:
			buttons = append(buttons, selected.Render("▸ "+label))
		default:
			buttons = append(buttons, normal.Render(label))
		}
	}

	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(strings.Join(buttons, "\n"))
}

// renderFrame wraps content in a double-border frame centered in the
// given dimensions.
func renderFrame(content string, width, height int) string {
	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.Primary).
		Width(width - 2).
		Height(height - 2).
		Align(lipgloss.Center, lipgloss.Center).
		Render(content)
}
