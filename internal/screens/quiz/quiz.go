// Package quiz is the screen that asks questions, for both regular quizzes
// and mistake reviews.
package quiz

import (
	"context"
	"errors"
	"fmt"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"github.com/google/uuid"

	"github.com/abhisek/mathdrill/internal/countdown"
	"github.com/abhisek/mathdrill/internal/logging"
	"github.com/abhisek/mathdrill/internal/review"
	"github.com/abhisek/mathdrill/internal/router"
	"github.com/abhisek/mathdrill/internal/screen"
	"github.com/abhisek/mathdrill/internal/screens/results"
	"github.com/abhisek/mathdrill/internal/session"
	"github.com/abhisek/mathdrill/internal/store"
	"github.com/abhisek/mathdrill/internal/ui/components"
	"github.com/abhisek/mathdrill/internal/ui/layout"
)

type keyMap struct {
	Digit     key.Binding
	Backspace key.Binding
	Submit    key.Binding
	Next      key.Binding
	Home      key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Digit:     key.NewBinding(key.WithKeys("0", "1", "2", "3", "4", "5", "6", "7", "8", "9"), key.WithHelp("0-9", "Answer")),
		Backspace: key.NewBinding(key.WithKeys("backspace"), key.WithHelp("⌫", "Delete")),
		Submit:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("Enter", "Submit")),
		Next:      key.NewBinding(key.WithKeys("enter", "space"), key.WithHelp("Enter", "Next")),
		Home:      key.NewBinding(key.WithKeys("esc"), key.WithHelp("Esc", "Home")),
	}
}

// Screen runs a quiz or a review. It is the session.Navigator of its
// runner and turns navigation requests into router messages.
type Screen struct {
	deps   Deps
	cfg    session.Config
	review bool
	keys   keyMap

	sched  countdown.Scheduler
	tea    *teaScheduler
	runner *session.Runner
	ctrl   *review.Controller

	nav    []tea.Cmd
	errMsg string
}

var _ screen.Screen = (*Screen)(nil)
var _ screen.KeyHintProvider = (*Screen)(nil)
var _ screen.Closer = (*Screen)(nil)
var _ screen.BackHandler = (*Screen)(nil)
var _ screen.StatusProvider = (*Screen)(nil)
var _ session.Navigator = (*Screen)(nil)

// New returns a screen that runs a quiz with cfg.
func New(deps Deps, cfg session.Config) *Screen {
	return newScreen(deps, cfg, false)
}

// NewReview returns a screen that replays the stored mistakes, using the
// default timing.
func NewReview(deps Deps) *Screen {
	return newScreen(deps, deps.Defaults, true)
}

func newScreen(deps Deps, cfg session.Config, isReview bool) *Screen {
	deps.Logger = logging.OrDiscard(deps.Logger)
	s := &Screen{deps: deps, cfg: cfg, review: isReview, keys: newKeyMap()}
	if deps.Scheduler != nil {
		s.sched = deps.Scheduler
	} else {
		s.tea = &teaScheduler{}
		s.sched = s.tea
	}
	return s
}

func (s *Screen) Init() tea.Cmd {
	ctx := context.Background()
	if s.review {
		if s.deps.Mistakes == nil {
			s.errMsg = "no mistake store configured"
			return nil
		}
		s.ctrl = review.New(s.deps.Mistakes, s.sched, s.cfg, s, s.deps.Logger)
		if err := s.ctrl.Start(ctx); err != nil && !errors.Is(err, review.ErrNothingToReview) {
			s.errMsg = err.Error()
		}
		s.runner = s.ctrl.Runner()
		return s.flush()
	}

	if err := s.cfg.Validate(); err != nil {
		s.errMsg = err.Error()
		return nil
	}
	problems := s.deps.Generator.Generate(s.cfg.GenerateInput())
	opts := []session.Option{
		session.WithNavigator(s),
		session.WithLogger(s.deps.Logger),
		session.WithContext(ctx),
	}
	if s.deps.Mistakes != nil {
		opts = append(opts, session.WithMistakes(s.deps.Mistakes))
	}
	s.runner = session.NewRunner(s.cfg, problems, s.sched, opts...)
	if err := s.runner.Start(); err != nil {
		s.errMsg = err.Error()
	}
	return s.flush()
}

func (s *Screen) Title() string {
	if s.review {
		return "Review"
	}
	return s.cfg.Mode.Label()
}

// Status shows the running score, or the items left in a review.
func (s *Screen) Status() string {
	if s.runner == nil {
		return ""
	}
	if s.review {
		return fmt.Sprintf("%d left", s.runner.Total()-s.runner.Index())
	}
	return fmt.Sprintf("✓ %d/%d", s.runner.Score(), s.runner.Total())
}

func (s *Screen) KeyHints() []layout.KeyHint {
	if s.errMsg != "" || s.runner == nil {
		return components.Hints(s.keys.Home)
	}
	if s.runner.Phase() == session.PhaseFeedback {
		if s.review {
			return components.Hints(s.keys.Home)
		}
		return components.Hints(s.keys.Next, s.keys.Home)
	}
	return components.Hints(s.keys.Digit, s.keys.Backspace, s.keys.Submit, s.keys.Home)
}

func (s *Screen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case callbackMsg:
		if msg.owner == s.tea {
			msg.fn()
		}
	case tea.KeyPressMsg:
		s.handleKey(msg)
	}
	return s, s.flush()
}

func (s *Screen) handleKey(msg tea.KeyPressMsg) {
	if s.runner == nil {
		return
	}
	switch {
	case key.Matches(msg, s.keys.Digit):
		s.runner.AppendDigit(int(msg.String()[0] - '0'))
	case key.Matches(msg, s.keys.Backspace):
		s.runner.Backspace()
	case s.runner.Phase() == session.PhaseFeedback && key.Matches(msg, s.keys.Next):
		s.runner.Next()
	case key.Matches(msg, s.keys.Submit):
		s.runner.Submit()
	}
}

// Back abandons the quiz and returns home. Nothing is recorded for an
// unfinished session.
func (s *Screen) Back() tea.Cmd {
	switch {
	case s.ctrl != nil:
		s.ctrl.Home()
	case s.runner != nil:
		s.runner.Home()
	default:
		s.GoHome()
	}
	return s.flush()
}

// Close stops the countdown and any pending callbacks.
func (s *Screen) Close() {
	if s.ctrl != nil {
		s.ctrl.Close()
		return
	}
	if s.runner != nil {
		s.runner.Close()
	}
}

// GoHome implements session.Navigator.
func (s *Screen) GoHome() {
	s.nav = append(s.nav, func() tea.Msg { return router.PopToRootMsg{} })
}

// ShowResults implements session.Navigator. The session is added to the
// history before the results replace this screen.
func (s *Screen) ShowResults(sum session.Summary) {
	s.recordHistory(sum)
	next := results.New(sum, s.resultActions(sum))
	s.nav = append(s.nav, func() tea.Msg { return router.ReplaceScreenMsg{Screen: next} })
}

// Config returns the session configuration.
func (s *Screen) Config() session.Config {
	return s.cfg
}

// Runner returns the runner asking the questions, or nil before Init.
func (s *Screen) Runner() *session.Runner {
	return s.runner
}

func (s *Screen) resultActions(sum session.Summary) results.Actions {
	deps := s.deps
	var actions results.Actions
	if !s.review {
		cfg := s.cfg
		actions.Retry = func() screen.Screen { return New(deps, cfg) }
	}
	if s.pendingMistakes(sum) {
		actions.Review = func() screen.Screen { return NewReview(deps) }
	}
	return actions
}

func (s *Screen) pendingMistakes(sum session.Summary) bool {
	if s.review {
		return !sum.Perfect()
	}
	if s.deps.Mistakes == nil {
		return false
	}
	n, err := s.deps.Mistakes.Count(context.Background())
	if err != nil {
		s.deps.Logger.Warn("failed to count mistakes", "err", err)
		return false
	}
	return n > 0
}

func (s *Screen) recordHistory(sum session.Summary) {
	if s.deps.History == nil {
		return
	}
	rec := store.SessionRecord{
		ID:        uuid.NewString(),
		Mode:      string(sum.Mode),
		Review:    sum.Review,
		Score:     sum.Score,
		Total:     sum.Total,
		Grade:     int(sum.Grade()),
		StartedAt: sum.StartedAt,
		EndedAt:   sum.EndedAt,
	}
	if err := s.deps.History.Append(context.Background(), rec); err != nil {
		s.deps.Logger.Error("failed to record session", "id", rec.ID, "err", err)
	}
}

// flush releases scheduled ticks and queued navigation as one command.
func (s *Screen) flush() tea.Cmd {
	var cmds []tea.Cmd
	if s.tea != nil {
		cmds = s.tea.drain()
	}
	cmds = append(cmds, s.nav...)
	s.nav = nil
	if len(cmds) == 0 {
		return nil
	}
	return tea.Batch(cmds...)
}
