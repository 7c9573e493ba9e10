// Package home is the start screen: quiz modes, review, history.
package home

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/mathdrill/internal/facts"
	"github.com/abhisek/mathdrill/internal/logging"
	"github.com/abhisek/mathdrill/internal/router"
	"github.com/abhisek/mathdrill/internal/screen"
	"github.com/abhisek/mathdrill/internal/screens/history"
	"github.com/abhisek/mathdrill/internal/screens/quiz"
	"github.com/abhisek/mathdrill/internal/screens/settings"
	"github.com/abhisek/mathdrill/internal/store"
	"github.com/abhisek/mathdrill/internal/ui/components"
	"github.com/abhisek/mathdrill/internal/ui/layout"
)

// Menu positions.
const (
	itemMultiplication = iota
	itemDivision
	itemReview
	itemHistory
	itemExit
)

type statsLoadedMsg struct {
	Mistakes int
	Last     *store.SessionRecord
	Err      error
}

// Screen is the home menu. The review entry carries the number of stored
// mistakes and is disabled when there are none.
type Screen struct {
	deps     quiz.Deps
	menu     components.Menu
	mistakes int
	last     *store.SessionRecord
}

var _ screen.Screen = (*Screen)(nil)
var _ screen.Resumer = (*Screen)(nil)
var _ screen.StatusProvider = (*Screen)(nil)

// New creates the home screen.
func New(deps quiz.Deps) *Screen {
	deps.Logger = logging.OrDiscard(deps.Logger)
	h := &Screen{deps: deps}
	h.menu = components.NewMenu(h.items())
	return h
}

func (h *Screen) Init() tea.Cmd {
	return h.loadStats()
}

// Resume re-reads the mistake count when a quiz or review hands back
// control.
func (h *Screen) Resume() tea.Cmd {
	return h.loadStats()
}

func (h *Screen) Title() string {
	return "Home"
}

// Status shows the stored mistake count.
func (h *Screen) Status() string {
	if h.mistakes == 0 {
		return ""
	}
	return fmt.Sprintf("✗ %d to review", h.mistakes)
}

// MistakeCount returns the count shown on the review entry.
func (h *Screen) MistakeCount() int {
	return h.mistakes
}

func (h *Screen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case statsLoadedMsg:
		if msg.Err != nil {
			h.deps.Logger.Warn("failed to load home stats", "err", msg.Err)
		}
		h.mistakes = msg.Mistakes
		h.last = msg.Last
		h.menu.SetItems(h.items())
		return h, nil
	}

	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *Screen) View(width, height int) string {
	compact := layout.IsCompactHeight(height + 6)
	cw := contentWidth(width)

	lastPerfect := h.last != nil && !h.last.Review && h.last.Total > 0 && h.last.Score == h.last.Total

	sections := []string{renderTitle(cw, compact)}
	if !compact {
		sections = append(sections, renderMascot(moodFor(h.mistakes, lastPerfect)))
	}
	sections = append(sections, renderStatsBar(h.mistakes, h.lastResult(), cw))
	if compact {
		sections = append(sections, h.menu.View())
	} else {
		sections = append(sections, renderButtons(h.menu, cw))
	}

	sep := "\n\n"
	if compact {
		sep = "\n"
	}
	return renderFrame(strings.Join(sections, sep), width, height)
}

func (h *Screen) lastResult() string {
	if h.last == nil {
		return ""
	}
	return fmt.Sprintf("%d/%d", h.last.Score, h.last.Total)
}

func (h *Screen) items() []components.MenuItem {
	deps := h.deps
	push := func(build func() screen.Screen) func() tea.Cmd {
		return func() tea.Cmd {
			next := build()
			return func() tea.Msg { return router.PushScreenMsg{Screen: next} }
		}
	}

	items := make([]components.MenuItem, itemExit+1)
	items[itemMultiplication] = components.MenuItem{
		Label:  "MULTIPLICATION",
		Action: push(func() screen.Screen { return settings.New(deps, facts.Multiplication) }),
	}
	items[itemDivision] = components.MenuItem{
		Label:  "DIVISION",
		Action: push(func() screen.Screen { return settings.New(deps, facts.Division) }),
	}
	items[itemReview] = components.MenuItem{
		Label:    "REVIEW MISTAKES",
		Action:   push(func() screen.Screen { return quiz.NewReview(deps) }),
		Disabled: h.mistakes == 0,
	}
	if h.mistakes > 0 {
		items[itemReview].Badge = fmt.Sprintf("%d", h.mistakes)
	}
	items[itemHistory] = components.MenuItem{
		Label:    "HISTORY",
		Action:   push(func() screen.Screen { return history.New(deps.History) }),
		Disabled: deps.History == nil,
	}
	items[itemExit] = components.MenuItem{
		Label:  "EXIT",
		Action: func() tea.Cmd { return tea.Quit },
	}
	return items
}

func (h *Screen) loadStats() tea.Cmd {
	deps := h.deps
	return func() tea.Msg {
		ctx := context.Background()
		var msg statsLoadedMsg
		if deps.Mistakes != nil {
			n, err := deps.Mistakes.Count(ctx)
			if err != nil {
				msg.Err = err
			}
			msg.Mistakes = n
		}
		if deps.History != nil {
			recent, err := deps.History.Recent(ctx, 1)
			if err != nil && msg.Err == nil {
				msg.Err = err
			}
			if len(recent) > 0 {
				msg.Last = &recent[0]
			}
		}
		return msg
	}
}
