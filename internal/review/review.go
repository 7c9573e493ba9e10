// Package review replays stored mistakes and keeps only those that are
// still answered wrongly.
package review

import (
	"context"
	"errors"
	"fmt"

	clog "github.com/charmbracelet/log"

	"github.com/abhisek/mathdrill/internal/countdown"
	"github.com/abhisek/mathdrill/internal/facts"
	"github.com/abhisek/mathdrill/internal/logging"
	"github.com/abhisek/mathdrill/internal/mistakes"
	"github.com/abhisek/mathdrill/internal/session"
)

// ErrNothingToReview is returned by Start when the mistake store is empty.
var ErrNothingToReview = errors.New("no mistakes to review")

// Store is the part of the mistake repository a review needs.
type Store interface {
	Load(ctx context.Context) ([]mistakes.Record, error)
	ReplaceAll(ctx context.Context, recs []mistakes.Record) error
}

// Phase is the lifecycle phase of a Controller.
type Phase int

const (
	PhaseLoading    Phase = iota // Snapshot not taken yet
	PhaseActive                  // Replaying items
	PhaseFinished                // Store rewritten, results reported
	PhaseRedirected              // Nothing to review; sent home
)

func (p Phase) String() string {
	switch p {
	case PhaseLoading:
		return "loading"
	case PhaseActive:
		return "active"
	case PhaseFinished:
		return "finished"
	case PhaseRedirected:
		return "redirected"
	}
	return "unknown"
}

// Controller runs one review pass over a snapshot of the mistake store.
// Like session.Runner it must only be used from a single event loop.
type Controller struct {
	store  Store
	sched  countdown.Scheduler
	cfg    session.Config
	nav    session.Navigator
	logger *clog.Logger
	opts   []session.Option

	ctx        context.Context
	phase      Phase
	snapshot   []mistakes.Record
	replayed   []int // snapshot position of each item
	items      []mistakes.Record
	results    []bool
	index      int
	processing bool
	runner     *session.Runner
	summary    session.Summary
}

// New returns a controller in the loading phase. cfg supplies the timer and
// feedback delays; its operands and question count are ignored. opts are
// passed through to the underlying runner.
func New(store Store, sched countdown.Scheduler, cfg session.Config, nav session.Navigator, logger *clog.Logger, opts ...session.Option) *Controller {
	if nav == nil {
		nav = nopNavigator{}
	}
	return &Controller{
		store:  store,
		sched:  sched,
		cfg:    cfg,
		nav:    nav,
		logger: logging.OrDiscard(logger),
		opts:   opts,
		ctx:    context.Background(),
	}
}

// Start snapshots the mistake store and shows the first item. With nothing
// to review it navigates home and returns ErrNothingToReview.
func (c *Controller) Start(ctx context.Context) error {
	if c.phase != PhaseLoading {
		return fmt.Errorf("review already started (%s)", c.phase)
	}
	c.ctx = ctx

	items, err := c.store.Load(ctx)
	if err != nil {
		return fmt.Errorf("load mistakes: %w", err)
	}

	c.snapshot = items
	problems := make([]facts.Problem, 0, len(items))
	for i, rec := range items {
		p, err := rec.Problem()
		if err != nil {
			c.logger.Warn("skipping unreadable mistake", "question", rec.Question, "err", err)
			continue
		}
		c.items = append(c.items, rec)
		c.replayed = append(c.replayed, i)
		problems = append(problems, p)
	}

	if len(c.items) == 0 {
		c.phase = PhaseRedirected
		c.nav.GoHome()
		return ErrNothingToReview
	}

	c.results = make([]bool, len(c.items))
	c.index = 0
	c.phase = PhaseActive

	opts := append([]session.Option{
		session.WithReview(c.handleVerdict),
		session.WithNavigator(c.nav),
		session.WithLogger(c.logger),
		session.WithContext(ctx),
	}, c.opts...)
	c.runner = session.NewRunner(c.cfg, problems, c.sched, opts...)

	c.logger.Info("review started", "items", len(c.items))
	return c.runner.Start()
}

// HandleAnswered records the verdict for the current item and moves on.
// Re-entrant or late calls are ignored.
func (c *Controller) HandleAnswered(correct bool) {
	if c.phase != PhaseActive || c.processing {
		return
	}
	c.processing = true
	defer func() { c.processing = false }()

	c.results[c.index] = correct
	if c.index+1 < len(c.items) {
		c.index++
		if err := c.runner.Show(c.index); err != nil {
			c.logger.Error("failed to show review item", "index", c.index, "err", err)
		}
		return
	}
	c.finalize()
}

// Close tears down the underlying runner without touching the store.
func (c *Controller) Close() {
	if c.runner != nil {
		c.runner.Close()
	}
}

// Home abandons the review and returns to the home screen. The store is
// left as it was.
func (c *Controller) Home() {
	c.Close()
	c.nav.GoHome()
}

// Phase returns the current phase.
func (c *Controller) Phase() Phase { return c.phase }

// Runner returns the runner replaying the items, or nil before Start.
func (c *Controller) Runner() *session.Runner { return c.runner }

// Index returns the position of the current item.
func (c *Controller) Index() int { return c.index }

// Total returns the number of items in the snapshot.
func (c *Controller) Total() int { return len(c.items) }

// Results returns a copy of the per-item verdicts so far.
func (c *Controller) Results() []bool {
	return append([]bool(nil), c.results...)
}

// Summary returns the final score once the review has finished.
func (c *Controller) Summary() session.Summary { return c.summary }

func (c *Controller) handleVerdict(v session.Verdict) {
	if v.Index != c.index {
		c.logger.Debug("ignoring stale verdict", "index", v.Index, "current", c.index)
		return
	}
	c.HandleAnswered(v.Correct)
}

// finalize keeps the still-wrong items and any records that could not be
// replayed, in their original order, and reports the score.
func (c *Controller) finalize() {
	c.phase = PhaseFinished

	retired := make(map[int]bool, len(c.results))
	score := 0
	for i, ok := range c.results {
		if ok {
			score++
			retired[c.replayed[i]] = true
		}
	}
	var remaining []mistakes.Record
	for i, rec := range c.snapshot {
		if !retired[i] {
			remaining = append(remaining, rec)
		}
	}

	if err := c.store.ReplaceAll(c.ctx, remaining); err != nil {
		c.logger.Error("failed to save review results", "err", err)
	}

	base := c.runner.Summary()
	c.runner.Close()

	c.summary = session.Summary{
		Mode:      c.mode(),
		Review:    true,
		Score:     score,
		Total:     len(c.items),
		StartedAt: base.StartedAt,
		EndedAt:   base.EndedAt,
	}
	c.logger.Info("review finished", "score", score, "total", len(c.items), "remaining", len(remaining))
	c.nav.ShowResults(c.summary)
}

// mode returns the mode shared by every item, or "" for a mixed review.
func (c *Controller) mode() facts.Mode {
	var m facts.Mode
	for i, rec := range c.items {
		if i > 0 && rec.Mode != m {
			return ""
		}
		m = rec.Mode
	}
	return m
}

type nopNavigator struct{}

func (nopNavigator) GoHome()                     {}
func (nopNavigator) ShowResults(session.Summary) {}
