// Package results shows the outcome of a finished quiz or review.
package results

import (
	"fmt"
	"strings"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/mathdrill/internal/router"
	"github.com/abhisek/mathdrill/internal/screen"
	"github.com/abhisek/mathdrill/internal/session"
	"github.com/abhisek/mathdrill/internal/ui/components"
	"github.com/abhisek/mathdrill/internal/ui/layout"
	"github.com/abhisek/mathdrill/internal/ui/theme"
)

// Actions builds the screens reachable from the results. A nil action is
// not offered.
type Actions struct {
	// Retry starts a new quiz with the same settings.
	Retry func() screen.Screen

	// Review starts a review over the mistakes still stored.
	Review func() screen.Screen
}

type keyMap struct {
	Home   key.Binding
	Retry  key.Binding
	Review key.Binding
}

// Screen displays a session summary.
type Screen struct {
	summary session.Summary
	actions Actions
	keys    keyMap
}

var _ screen.Screen = (*Screen)(nil)
var _ screen.KeyHintProvider = (*Screen)(nil)

// New creates a results screen for summary.
func New(summary session.Summary, actions Actions) *Screen {
	keys := keyMap{
		Home:   key.NewBinding(key.WithKeys("enter", "h"), key.WithHelp("Enter", "Home")),
		Retry:  key.NewBinding(key.WithKeys("r"), key.WithHelp("R", "Play again")),
		Review: key.NewBinding(key.WithKeys("v"), key.WithHelp("V", "Review mistakes")),
	}
	if summary.Review {
		keys.Review.SetHelp("V", "Continue review")
	}
	keys.Retry.SetEnabled(actions.Retry != nil)
	keys.Review.SetEnabled(actions.Review != nil)
	return &Screen{summary: summary, actions: actions, keys: keys}
}

func (s *Screen) Init() tea.Cmd {
	return nil
}

func (s *Screen) Title() string {
	if s.summary.Review {
		return "Review Results"
	}
	return "Results"
}

func (s *Screen) KeyHints() []layout.KeyHint {
	return components.Hints(s.keys.Home, s.keys.Retry, s.keys.Review)
}

// Summary returns the summary on display.
func (s *Screen) Summary() session.Summary {
	return s.summary
}

func (s *Screen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return s, nil
	}
	switch {
	case key.Matches(kmsg, s.keys.Home):
		return s, func() tea.Msg { return router.PopToRootMsg{} }
	case key.Matches(kmsg, s.keys.Retry):
		next := s.actions.Retry()
		return s, func() tea.Msg { return router.ReplaceScreenMsg{Screen: next} }
	case key.Matches(kmsg, s.keys.Review):
		next := s.actions.Review()
		return s, func() tea.Msg { return router.ReplaceScreenMsg{Screen: next} }
	}
	return s, nil
}

func (s *Screen) View(width, height int) string {
	sum := s.summary
	center := func(style lipgloss.Style, text string) string {
		return style.Width(width).Align(lipgloss.Center).Render(text)
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(center(theme.Title, headline(sum)))
	b.WriteString("\n\n")

	b.WriteString(center(lipgloss.NewStyle().Foreground(theme.Text).Bold(true),
		fmt.Sprintf("%d / %d correct  (%.0f%%)", sum.Score, sum.Total, sum.Percent())))
	b.WriteString("\n\n")

	if sum.Review {
		b.WriteString(center(reviewStyle(sum), reviewMessage(sum)))
	} else {
		g := sum.Grade()
		b.WriteString(center(gradeStyle(g), fmt.Sprintf("Grade %d · %s", int(g), g)))
	}
	b.WriteString("\n\n")

	if d := sum.Duration(); d > 0 {
		b.WriteString(center(theme.Subtitle, fmt.Sprintf("Time: %d:%02d", int(d.Minutes()), int(d.Seconds())%60)))
		b.WriteString("\n")
	}
	return b.String()
}

func headline(sum session.Summary) string {
	switch {
	case sum.Perfect():
		return "Perfect!"
	case sum.Review:
		return "Review complete"
	}
	return "Quiz complete"
}

func reviewMessage(sum session.Summary) string {
	if sum.Perfect() {
		return "All correct. Your mistake list is empty."
	}
	if sum.Wrong() == 1 {
		return "1 wrong answer kept for the next review."
	}
	return fmt.Sprintf("%d wrong answers kept for the next review.", sum.Wrong())
}

func reviewStyle(sum session.Summary) lipgloss.Style {
	if sum.Perfect() {
		return theme.Correct
	}
	return lipgloss.NewStyle().Foreground(theme.Accent).Bold(true)
}

func gradeStyle(g session.Grade) lipgloss.Style {
	switch {
	case g >= session.GradeGood:
		return theme.Correct
	case g >= session.GradeSatisfactory:
		return lipgloss.NewStyle().Foreground(theme.Warning).Bold(true)
	}
	return theme.Incorrect
}
