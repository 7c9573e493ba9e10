// Package session runs a quiz one question at a time: it shows a problem,
// collects typed digits, judges the answer on submit or timeout, records
// mistakes and hands control to the next question or the results.
package session

import (
	"context"
	"errors"
	"math/rand"
	"strconv"
	"time"

	clog "github.com/charmbracelet/log"

	"github.com/abhisek/mathdrill/internal/countdown"
	"github.com/abhisek/mathdrill/internal/facts"
	"github.com/abhisek/mathdrill/internal/logging"
	"github.com/abhisek/mathdrill/internal/mistakes"
	"github.com/abhisek/mathdrill/internal/problemgen"
)

// ErrNoProblems is returned when a runner is started without problems.
var ErrNoProblems = errors.New("no problems to ask")

// Option configures a Runner.
type Option func(*Runner)

// WithMistakes records wrong answers in m. Ignored in review mode.
func WithMistakes(m MistakeRecorder) Option {
	return func(r *Runner) { r.mistakes = m }
}

// WithNavigator sets the screen navigator.
func WithNavigator(n Navigator) Option {
	return func(r *Runner) {
		if n != nil {
			r.nav = n
		}
	}
}

// WithReview puts the runner in review mode. After each verdict's
// feedback delay the runner calls onAnswered instead of advancing itself,
// and never records mistakes or keeps score.
func WithReview(onAnswered func(Verdict)) Option {
	return func(r *Runner) { r.onAnswered = onAnswered }
}

// WithLogger sets the logger.
func WithLogger(l *clog.Logger) Option {
	return func(r *Runner) { r.logger = logging.OrDiscard(l) }
}

// WithRand sets the source used to pick affirmations.
func WithRand(rnd *rand.Rand) Option {
	return func(r *Runner) { r.rnd = rnd }
}

// WithContext sets the context used for persistence calls.
func WithContext(ctx context.Context) Option {
	return func(r *Runner) { r.ctx = ctx }
}

// WithClock overrides the wall clock used for summary timestamps.
func WithClock(now func() time.Time) Option {
	return func(r *Runner) { r.now = now }
}

// Runner is the per-question state machine. It is not safe for concurrent
// use; every method and scheduled callback must run on the same loop.
type Runner struct {
	cfg      Config
	problems []facts.Problem
	sched    countdown.Scheduler
	timer    *countdown.Timer

	mistakes   MistakeRecorder
	nav        Navigator
	onAnswered func(Verdict)
	logger     *clog.Logger
	rnd        *rand.Rand
	ctx        context.Context
	now        func() time.Time

	phase         Phase
	active        bool
	transitioning bool
	index         int
	answer        string
	score         int
	feedback      *Feedback
	startedAt     time.Time

	// display identifies the question currently on screen. Deferred
	// callbacks capture it and do nothing once it has moved on.
	display uint64
}

// NewRunner returns an idle runner over problems. Ticks and delays are
// requested from sched.
func NewRunner(cfg Config, problems []facts.Problem, sched countdown.Scheduler, opts ...Option) *Runner {
	r := &Runner{
		cfg:      cfg,
		problems: problems,
		sched:    sched,
		nav:      nopNavigator{},
		logger:   logging.Discard(),
		ctx:      context.Background(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.rnd == nil {
		r.rnd = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	r.timer = countdown.New(sched, cfg.TimerSeconds, r.expire)
	return r
}

// Start activates the runner and shows the first problem.
func (r *Runner) Start() error {
	if len(r.problems) == 0 {
		return ErrNoProblems
	}
	r.startedAt = r.now()
	return r.Show(0)
}

// Show displays problem i and schedules its countdown. Review controllers
// use it to step through their items.
func (r *Runner) Show(i int) error {
	if r.phase == PhaseClosed {
		return errors.New("runner is closed")
	}
	if i < 0 || i >= len(r.problems) {
		return errors.New("problem index out of range")
	}
	if r.startedAt.IsZero() {
		r.startedAt = r.now()
	}
	r.active = true
	r.index = i
	r.answer = ""
	r.feedback = nil
	r.transitioning = false
	r.phase = PhaseDisplaying
	r.display++
	r.timer.Reset(r.cfg.TimerSeconds)

	token := r.display
	r.sched.AfterFunc(r.cfg.SettleDelay, func() {
		if token != r.display || !r.active || r.phase != PhaseDisplaying {
			return
		}
		r.phase = PhaseAwaitingInput
		r.timer.Start()
	})
	return nil
}

// AppendDigit adds d to the typed answer. Input is ignored once feedback
// is showing or the answer already has the maximum number of digits.
func (r *Runner) AppendDigit(d int) bool {
	if !r.acceptingInput() || d < 0 || d > 9 {
		return false
	}
	if len(r.answer) >= problemgen.MaxAnswerDigits {
		return false
	}
	r.answer += strconv.Itoa(d)
	return true
}

// Backspace removes the last typed digit.
func (r *Runner) Backspace() bool {
	if !r.acceptingInput() || r.answer == "" {
		return false
	}
	r.answer = r.answer[:len(r.answer)-1]
	return true
}

// Submit judges the typed answer. It returns false when the submission was
// ignored: nothing typed, already judged, or the runner is inactive.
func (r *Runner) Submit() (Verdict, bool) {
	return r.submit(false)
}

// Next advances to the following problem after feedback, or finishes the
// quiz after the last one. Review runners advance through their
// controller instead.
func (r *Runner) Next() {
	if !r.active || r.phase != PhaseFeedback || r.review() {
		return
	}
	if r.index+1 < len(r.problems) {
		if err := r.Show(r.index + 1); err != nil {
			r.logger.Error("failed to show next problem", "index", r.index+1, "err", err)
		}
		return
	}
	r.finish()
}

// Close tears the runner down. Pending ticks and delays become no-ops.
func (r *Runner) Close() {
	if r.phase == PhaseClosed {
		return
	}
	r.active = false
	r.timer.Stop()
	r.display++
	r.phase = PhaseClosed
}

// Home tears the runner down and returns to the home screen.
func (r *Runner) Home() {
	r.Close()
	r.nav.GoHome()
}

// Phase returns the current phase.
func (r *Runner) Phase() Phase { return r.phase }

// Active reports whether the runner still reacts to input and callbacks.
func (r *Runner) Active() bool { return r.active }

// Index returns the zero-based position of the current problem.
func (r *Runner) Index() int { return r.index }

// Total returns the number of problems.
func (r *Runner) Total() int { return len(r.problems) }

// Score returns the number of correct answers so far.
func (r *Runner) Score() int { return r.score }

// Answer returns the digits typed so far.
func (r *Runner) Answer() string { return r.answer }

// Current returns the problem on screen.
func (r *Runner) Current() (facts.Problem, bool) {
	if r.index < 0 || r.index >= len(r.problems) {
		return facts.Problem{}, false
	}
	return r.problems[r.index], true
}

// Feedback returns the verdict message while feedback is showing.
func (r *Runner) Feedback() (Feedback, bool) {
	if r.feedback == nil {
		return Feedback{}, false
	}
	return *r.feedback, true
}

// Remaining returns the seconds left on the countdown.
func (r *Runner) Remaining() int { return r.timer.Remaining() }

// TimerFraction returns the remaining share of the countdown.
func (r *Runner) TimerFraction() float64 { return r.timer.Fraction() }

// TimerState returns the countdown state.
func (r *Runner) TimerState() countdown.State { return r.timer.State() }

// Config returns the session configuration.
func (r *Runner) Config() Config { return r.cfg }

// Summary reports the score so far.
func (r *Runner) Summary() Summary {
	return Summary{
		Mode:      r.cfg.Mode,
		Review:    r.review(),
		Score:     r.score,
		Total:     len(r.problems),
		StartedAt: r.startedAt,
		EndedAt:   r.now(),
	}
}

func (r *Runner) review() bool {
	return r.onAnswered != nil
}

func (r *Runner) acceptingInput() bool {
	if !r.active || r.transitioning {
		return false
	}
	return r.phase == PhaseDisplaying || r.phase == PhaseAwaitingInput
}

func (r *Runner) expire() {
	if !r.active {
		return
	}
	r.submit(true)
}

func (r *Runner) submit(timeout bool) (Verdict, bool) {
	p, ok := r.Current()
	if !r.active || !ok {
		return Verdict{}, false
	}
	if r.answer == "" && !timeout {
		return Verdict{}, false
	}
	if r.transitioning || r.phase == PhaseFeedback {
		return Verdict{}, false
	}
	r.transitioning = true
	r.timer.Stop()

	typed, _ := problemgen.ParseAnswer(r.answer)
	correct := problemgen.CheckAnswer(r.answer, p)

	v := Verdict{
		Index:      r.index,
		Problem:    p,
		Correct:    correct,
		TimedOut:   timeout,
		UserAnswer: typed,
	}
	if timeout {
		v.UserAnswer = 0
	}

	if correct {
		if !r.review() {
			r.score++
		}
		r.feedback = &Feedback{Correct: true, Message: Affirmation(r.rnd)}
	} else {
		r.feedback = &Feedback{Correct: false, Message: p.Equation()}
		// A typed 0 without a timeout is indistinguishable from the
		// timeout sentinel and is not recorded.
		if !r.review() && (timeout || typed != 0) {
			r.recordMistake(mistakes.FromProblem(p, v.UserAnswer))
		}
	}
	r.phase = PhaseFeedback

	r.logger.Debug("answer judged",
		"question", p.Text(), "correct", correct, "timeout", timeout, "index", r.index)

	if r.review() {
		token := r.display
		delay := r.cfg.IncorrectFeedbackDelay
		if correct {
			delay = r.cfg.CorrectFeedbackDelay
		}
		r.sched.AfterFunc(delay, func() {
			if token != r.display || !r.active {
				return
			}
			r.onAnswered(v)
		})
	}
	return v, true
}

func (r *Runner) recordMistake(rec mistakes.Record) {
	if r.mistakes == nil {
		return
	}
	if err := r.mistakes.Append(r.ctx, rec); err != nil {
		r.logger.Error("failed to record mistake", "question", rec.Question, "err", err)
	}
}

func (r *Runner) finish() {
	r.phase = PhaseFinished
	r.active = false
	r.timer.Stop()
	r.display++
	summary := r.Summary()
	r.logger.Info("quiz finished", "mode", summary.Mode, "score", summary.Score, "total", summary.Total)
	r.nav.ShowResults(summary)
}
