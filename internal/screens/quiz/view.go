package quiz

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/mathdrill/internal/problemgen"
	"github.com/abhisek/mathdrill/internal/session"
	"github.com/abhisek/mathdrill/internal/ui/components"
	"github.com/abhisek/mathdrill/internal/ui/layout"
	"github.com/abhisek/mathdrill/internal/ui/theme"
)

func (s *Screen) View(width, height int) string {
	if s.errMsg != "" {
		return renderError(width, s.errMsg)
	}
	r := s.runner
	if r == nil || r.Phase() == session.PhaseClosed || r.Phase() == session.PhaseIdle {
		return ""
	}
	p, ok := r.Current()
	if !ok {
		return ""
	}

	var b strings.Builder
	b.WriteString(s.renderInfoLine(width))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", max(width-4, 0))))
	b.WriteString("\n")
	if !layout.IsCompactHeight(height) {
		b.WriteString("\n")
	}

	b.WriteString(layout.Center(width, theme.Problem.Render(p.Prompt())))
	b.WriteString("\n\n")

	if fb, ok := r.Feedback(); ok {
		b.WriteString(renderFeedback(width, fb))
	} else {
		b.WriteString(renderAnswer(width, r.Answer()))
	}
	b.WriteString("\n\n")

	barWidth := min(width-8, 50)
	b.WriteString(layout.Center(width, components.TimerBar{
		Remaining: r.Remaining(),
		Fraction:  r.TimerFraction(),
		Width:     barWidth,
	}.View()))
	return b.String()
}

func (s *Screen) renderInfoLine(width int) string {
	r := s.runner
	left := theme.ModeColor(s.cfg.Mode).Render("  " + s.Title())
	if s.review {
		left = lipgloss.NewStyle().Foreground(theme.Accent).Bold(true).Render("  Review")
	}

	right := lipgloss.NewStyle().Foreground(theme.TextDim).
		Render(fmt.Sprintf("Question %d/%d", r.Index()+1, r.Total()))
	if !s.review {
		right += lipgloss.NewStyle().Foreground(theme.Success).
			Render(fmt.Sprintf("   ✓ %d", r.Score()))
	}

	pad := width - lipgloss.Width(left) - lipgloss.Width(right) - 4
	if pad < 1 {
		return left + " " + right
	}
	return left + strings.Repeat(" ", pad) + right
}

func renderAnswer(width int, answer string) string {
	shown := answer + strings.Repeat("_", max(problemgen.MaxAnswerDigits-len(answer), 0))
	return lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Bold(true).
		Render("Answer: " + shown)
}

func renderFeedback(width int, fb session.Feedback) string {
	style := theme.Incorrect
	if fb.Correct {
		style = theme.Correct
	}
	return style.Width(width).Align(lipgloss.Center).Render(fb.Message)
}

func renderError(width int, msg string) string {
	return lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Error).
		Render(fmt.Sprintf("\n\n\n  Error: %s\n\n  Press Esc to go back.", msg))
}
