package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/mathdrill/internal/ui/theme"
)

// ProgressBar displays a horizontal progress bar.
type ProgressBar struct {
	Label       string
	Percent     float64
	ShowPercent bool
	Width       int
}

// View renders the progress bar.
func (p ProgressBar) View() string {
	var result string
	if p.Label != "" {
		result += lipgloss.NewStyle().Foreground(theme.Text).Render(p.Label) + "  "
	}

	percentWidth := 0
	if p.ShowPercent {
		percentWidth = 6 // "  100%"
	}
	barWidth := max(p.Width-lipgloss.Width(result)-percentWidth, 4)

	result += bar(barWidth, p.Percent, lipgloss.NewStyle().Background(theme.Secondary))

	if p.ShowPercent {
		result += lipgloss.NewStyle().
			Foreground(theme.TextDim).
			Render(fmt.Sprintf("  %d%%", int(p.Percent*100)))
	}
	return result
}

// TimerBar shows the seconds left on a question, shifting from green to
// red as time runs out.
type TimerBar struct {
	Remaining int
	Fraction  float64
	Width     int
}

// View renders the countdown.
func (t TimerBar) View() string {
	label := fmt.Sprintf("%2ds ", t.Remaining)
	barWidth := max(t.Width-len(label), 4)
	return lipgloss.NewStyle().Foreground(theme.TextDim).Render(label) +
		bar(barWidth, t.Fraction, theme.TimerStyle(t.Fraction))
}

func bar(width int, fraction float64, filledStyle lipgloss.Style) string {
	filled := min(max(int(float64(width)*fraction), 0), width)
	return filledStyle.Render(strings.Repeat(" ", filled)) +
		theme.ProgressEmpty.Render(strings.Repeat(" ", width-filled))
}
