// Package history lists finished quizzes and reviews.
package history

import (
	"context"
	"fmt"
	"strings"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/mathdrill/internal/facts"
	"github.com/abhisek/mathdrill/internal/screen"
	"github.com/abhisek/mathdrill/internal/session"
	"github.com/abhisek/mathdrill/internal/store"
	"github.com/abhisek/mathdrill/internal/ui/components"
	"github.com/abhisek/mathdrill/internal/ui/layout"
	"github.com/abhisek/mathdrill/internal/ui/theme"
)

// Limit caps the number of sessions shown.
const Limit = 50

type historyLoadedMsg struct {
	Sessions []store.SessionRecord
	Err      error
}

type keyMap struct {
	Up     key.Binding
	Down   key.Binding
	Expand key.Binding
	Back   key.Binding
}

// Screen displays past sessions, newest first.
type Screen struct {
	repo     store.SessionRepo
	sessions []store.SessionRecord
	selected int
	expanded map[int]bool
	loaded   bool
	errMsg   string
	keys     keyMap
}

var _ screen.Screen = (*Screen)(nil)
var _ screen.KeyHintProvider = (*Screen)(nil)

// New creates a history screen reading from repo.
func New(repo store.SessionRepo) *Screen {
	return &Screen{
		repo:     repo,
		expanded: make(map[int]bool),
		keys: keyMap{
			Up:     key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑↓", "Navigate")),
			Down:   key.NewBinding(key.WithKeys("down", "j")),
			Expand: key.NewBinding(key.WithKeys("enter"), key.WithHelp("Enter", "Details")),
			Back:   key.NewBinding(key.WithKeys("esc"), key.WithHelp("Esc", "Back")),
		},
	}
}

func (s *Screen) Init() tea.Cmd {
	repo := s.repo
	return func() tea.Msg {
		sessions, err := repo.Recent(context.Background(), Limit)
		return historyLoadedMsg{Sessions: sessions, Err: err}
	}
}

func (s *Screen) Title() string {
	return "History"
}

func (s *Screen) KeyHints() []layout.KeyHint {
	return components.Hints(s.keys.Expand, s.keys.Up, s.keys.Back)
}

func (s *Screen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case historyLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		} else {
			s.sessions = msg.Sessions
		}
		s.loaded = true

	case tea.KeyPressMsg:
		switch {
		case key.Matches(msg, s.keys.Up):
			if s.selected > 0 {
				s.selected--
			}
		case key.Matches(msg, s.keys.Down):
			if s.selected < len(s.sessions)-1 {
				s.selected++
			}
		case key.Matches(msg, s.keys.Expand):
			if len(s.sessions) > 0 {
				s.expanded[s.selected] = !s.expanded[s.selected]
			}
		}
	}
	return s, nil
}

func (s *Screen) View(width, height int) string {
	center := func(style lipgloss.Style, text string) string {
		return style.Width(width).Align(lipgloss.Center).Render(text)
	}
	if s.errMsg != "" {
		return center(lipgloss.NewStyle().Foreground(theme.Error), fmt.Sprintf("\n\nError: %s", s.errMsg))
	}
	if !s.loaded {
		return center(lipgloss.NewStyle().Foreground(theme.TextDim), "\n\n  Loading history...")
	}
	if len(s.sessions) == 0 {
		return center(lipgloss.NewStyle().Foreground(theme.TextDim).Italic(true), "\n\n  No sessions yet. Start a quiz!")
	}

	var lines []string
	for i, rec := range s.sessions {
		style := lipgloss.NewStyle().Foreground(theme.Text)
		prefix := "  "
		if i == s.selected {
			style = theme.Selected
			prefix = "▸ "
		}
		lines = append(lines, style.Render(prefix+summaryLine(rec)))
		if s.expanded[i] {
			lines = append(lines, lipgloss.NewStyle().Foreground(theme.TextDim).Render("    "+detailLine(rec)))
		}
	}

	visible := window(lines, s.selectedLine(), max(height-2, 1))

	var b strings.Builder
	b.WriteString("\n")
	for _, l := range visible {
		b.WriteString(layout.Center(width, l))
		b.WriteString("\n")
	}
	return b.String()
}

// selectedLine returns the rendered line index of the selection, counting
// expanded detail lines above it.
func (s *Screen) selectedLine() int {
	n := s.selected
	for i := 0; i < s.selected; i++ {
		if s.expanded[i] {
			n++
		}
	}
	return n
}

// window returns at most size lines, keeping line focus in view.
func window(lines []string, focus, size int) []string {
	if len(lines) <= size {
		return lines
	}
	start := min(max(focus-size/2, 0), len(lines)-size)
	return lines[start : start+size]
}

func summaryLine(rec store.SessionRecord) string {
	kind := facts.Mode(rec.Mode).Label()
	switch {
	case rec.Review:
		kind = "Review"
	case kind == "":
		kind = "Quiz"
	}
	pct := 0.0
	if rec.Total > 0 {
		pct = float64(rec.Score) / float64(rec.Total) * 100
	}
	line := fmt.Sprintf("%s  %-14s  %2d/%-2d  %3.0f%%",
		rec.EndedAt.Local().Format("Jan 02 15:04"), kind, rec.Score, rec.Total, pct)
	if !rec.Review {
		line += fmt.Sprintf("  %s", session.Grade(rec.Grade))
	}
	return line
}

func detailLine(rec store.SessionRecord) string {
	d := rec.Duration()
	return fmt.Sprintf("started %s, took %d:%02d, %d wrong",
		rec.StartedAt.Local().Format("2006-01-02 15:04:05"),
		int(d.Minutes()), int(d.Seconds())%60, rec.Total-rec.Score)
}
