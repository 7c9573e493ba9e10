package session

import (
	"bytes"
	"context"
	"errors"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/mathdrill/internal/countdown"
	"github.com/abhisek/mathdrill/internal/countdown/countdowntest"
	"github.com/abhisek/mathdrill/internal/facts"
	"github.com/abhisek/mathdrill/internal/logging"
	"github.com/abhisek/mathdrill/internal/mistakes"
)

// recorder implements MistakeRecorder for testing.
type recorder struct {
	recs []mistakes.Record
	err  error
}

func (m *recorder) Append(_ context.Context, rec mistakes.Record) error {
	if m.err != nil {
		return m.err
	}
	m.recs = append(m.recs, rec)
	return nil
}

// navigator implements Navigator for testing.
type navigator struct {
	home      int
	summaries []Summary
}

func (n *navigator) GoHome()               { n.home++ }
func (n *navigator) ShowResults(s Summary) { n.summaries = append(n.summaries, s) }

type fixture struct {
	runner *Runner
	sched  *countdowntest.Scheduler
	rec    *recorder
	nav    *navigator
}

func testConfig() Config {
	cfg := DefaultConfig()
	cfg.Operands = []int{3}
	cfg.TimerSeconds = 5
	return cfg
}

func newFixture(t *testing.T, problems []facts.Problem, opts ...Option) *fixture {
	t.Helper()
	f := &fixture{
		sched: countdowntest.New(),
		rec:   &recorder{},
		nav:   &navigator{},
	}
	base := []Option{
		WithMistakes(f.rec),
		WithNavigator(f.nav),
		WithRand(rand.New(rand.NewSource(1))),
	}
	f.runner = NewRunner(testConfig(), problems, f.sched, append(base, opts...)...)
	return f
}

// settle runs the post-display delay so the countdown is running.
func (f *fixture) settle() {
	f.sched.Advance(DefaultSettleDelay)
}

func (f *fixture) typeAnswer(t *testing.T, s string) {
	t.Helper()
	for _, c := range s {
		require.True(t, f.runner.AppendDigit(int(c-'0')), "digit %c rejected", c)
	}
}

func threeProblems() []facts.Problem {
	return []facts.Problem{
		facts.NewProduct(3, 4),
		facts.NewProduct(3, 5),
		facts.NewProduct(3, 6),
	}
}

func TestStart_NoProblems(t *testing.T) {
	f := newFixture(t, nil)
	assert.ErrorIs(t, f.runner.Start(), ErrNoProblems)
}

func TestStart_SettleDelayStartsCountdown(t *testing.T) {
	f := newFixture(t, threeProblems())
	require.NoError(t, f.runner.Start())

	assert.Equal(t, PhaseDisplaying, f.runner.Phase())
	assert.Equal(t, countdown.Idle, f.runner.TimerState())

	f.settle()
	assert.Equal(t, PhaseAwaitingInput, f.runner.Phase())
	assert.Equal(t, countdown.Running, f.runner.TimerState())
	assert.Equal(t, 5, f.runner.Remaining())
}

func TestSubmit_Correct(t *testing.T) {
	f := newFixture(t, threeProblems())
	require.NoError(t, f.runner.Start())
	f.settle()

	f.typeAnswer(t, "12")
	v, ok := f.runner.Submit()
	require.True(t, ok)

	assert.True(t, v.Correct)
	assert.False(t, v.TimedOut)
	assert.Equal(t, 12, v.UserAnswer)
	assert.Equal(t, 1, f.runner.Score())
	assert.Equal(t, PhaseFeedback, f.runner.Phase())
	assert.Equal(t, countdown.Stopped, f.runner.TimerState())

	fb, ok := f.runner.Feedback()
	require.True(t, ok)
	assert.True(t, fb.Correct)
	assert.Contains(t, affirmations, fb.Message)
	assert.Empty(t, f.rec.recs)
}

func TestSubmit_IncorrectRecordsMistake(t *testing.T) {
	f := newFixture(t, threeProblems())
	require.NoError(t, f.runner.Start())
	f.settle()

	f.typeAnswer(t, "13")
	v, ok := f.runner.Submit()
	require.True(t, ok)
	assert.False(t, v.Correct)
	assert.Equal(t, 0, f.runner.Score())

	fb, _ := f.runner.Feedback()
	assert.False(t, fb.Correct)
	assert.Equal(t, "3 * 4 = 12", fb.Message)

	require.Len(t, f.rec.recs, 1)
	assert.Equal(t, mistakes.Record{
		Question:      "3 * 4",
		CorrectAnswer: 12,
		UserAnswer:    13,
		Mode:          facts.Multiplication,
	}, f.rec.recs[0])
}

func TestSubmit_TypedZeroNotRecorded(t *testing.T) {
	f := newFixture(t, threeProblems())
	require.NoError(t, f.runner.Start())
	f.settle()

	f.typeAnswer(t, "0")
	v, ok := f.runner.Submit()
	require.True(t, ok)
	assert.False(t, v.Correct)
	assert.Empty(t, f.rec.recs)
}

func TestSubmit_EmptyIgnored(t *testing.T) {
	f := newFixture(t, threeProblems())
	require.NoError(t, f.runner.Start())
	f.settle()

	_, ok := f.runner.Submit()
	assert.False(t, ok)
	assert.Equal(t, PhaseAwaitingInput, f.runner.Phase())
}

func TestSubmit_DoubleSubmitIgnored(t *testing.T) {
	f := newFixture(t, threeProblems())
	require.NoError(t, f.runner.Start())
	f.settle()

	f.typeAnswer(t, "99")
	_, ok := f.runner.Submit()
	require.True(t, ok)
	_, ok = f.runner.Submit()
	assert.False(t, ok)

	assert.Len(t, f.rec.recs, 1, "second submit must not record again")
}

func TestSubmit_BeforeSettle(t *testing.T) {
	f := newFixture(t, threeProblems())
	require.NoError(t, f.runner.Start())

	f.typeAnswer(t, "12")
	_, ok := f.runner.Submit()
	require.True(t, ok)

	f.settle()
	assert.Equal(t, PhaseFeedback, f.runner.Phase())
	assert.NotEqual(t, countdown.Running, f.runner.TimerState(), "late settle must not start the countdown")
}

func TestTimeout_RecordsZero(t *testing.T) {
	f := newFixture(t, threeProblems())
	require.NoError(t, f.runner.Start())
	f.settle()

	f.sched.Advance(5 * time.Second)

	assert.Equal(t, PhaseFeedback, f.runner.Phase())
	fb, ok := f.runner.Feedback()
	require.True(t, ok)
	assert.False(t, fb.Correct)
	assert.Equal(t, "3 * 4 = 12", fb.Message)

	require.Len(t, f.rec.recs, 1)
	assert.Equal(t, 0, f.rec.recs[0].UserAnswer)
}

func TestTimeout_WrongTypedAnswerRecordedAsZero(t *testing.T) {
	f := newFixture(t, threeProblems())
	require.NoError(t, f.runner.Start())
	f.settle()

	f.typeAnswer(t, "11")
	f.sched.Advance(5 * time.Second)

	require.Len(t, f.rec.recs, 1)
	assert.Equal(t, 0, f.rec.recs[0].UserAnswer)
}

func TestTimeout_CorrectTypedAnswerCounts(t *testing.T) {
	f := newFixture(t, threeProblems())
	require.NoError(t, f.runner.Start())
	f.settle()

	f.typeAnswer(t, "12")
	f.sched.Advance(5 * time.Second)

	fb, ok := f.runner.Feedback()
	require.True(t, ok)
	assert.True(t, fb.Correct)
	assert.Equal(t, 1, f.runner.Score())
	assert.Empty(t, f.rec.recs)
}

func TestInput_MaxDigits(t *testing.T) {
	f := newFixture(t, threeProblems())
	require.NoError(t, f.runner.Start())

	f.typeAnswer(t, "123")
	assert.False(t, f.runner.AppendDigit(4))
	assert.Equal(t, "123", f.runner.Answer())

	assert.True(t, f.runner.Backspace())
	assert.Equal(t, "12", f.runner.Answer())
	assert.False(t, f.runner.AppendDigit(10))
}

func TestInput_BlockedDuringFeedback(t *testing.T) {
	f := newFixture(t, threeProblems())
	require.NoError(t, f.runner.Start())
	f.settle()

	f.typeAnswer(t, "12")
	f.runner.Submit()

	assert.False(t, f.runner.AppendDigit(5))
	assert.False(t, f.runner.Backspace())
	assert.Equal(t, "12", f.runner.Answer())
}

func TestNext_AdvancesAndFinishes(t *testing.T) {
	clock := time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)
	f := newFixture(t, threeProblems(), WithClock(func() time.Time { return clock }))
	require.NoError(t, f.runner.Start())

	answers := []string{"12", "14", "18"}
	for i, a := range answers {
		f.settle()
		assert.Equal(t, i, f.runner.Index())
		f.typeAnswer(t, a)
		_, ok := f.runner.Submit()
		require.True(t, ok)
		clock = clock.Add(10 * time.Second)
		f.runner.Next()
	}

	assert.Equal(t, PhaseFinished, f.runner.Phase())
	assert.False(t, f.runner.Active())
	require.Len(t, f.nav.summaries, 1)

	s := f.nav.summaries[0]
	assert.Equal(t, 2, s.Score)
	assert.Equal(t, 3, s.Total)
	assert.False(t, s.Review)
	assert.Equal(t, facts.Multiplication, s.Mode)
	assert.Equal(t, 30*time.Second, s.Duration())
	assert.Len(t, f.rec.recs, 1)
}

func TestNext_ShowsNextProblemWithoutErrors(t *testing.T) {
	var logs bytes.Buffer
	logger, err := logging.New(&logs, "debug")
	require.NoError(t, err)
	f := newFixture(t, threeProblems(), WithLogger(logger))
	require.NoError(t, f.runner.Start())
	f.settle()

	f.typeAnswer(t, "12")
	f.runner.Submit()
	f.runner.Next()

	assert.Equal(t, 1, f.runner.Index())
	assert.Equal(t, PhaseDisplaying, f.runner.Phase())
	assert.NotContains(t, logs.String(), "failed to show next problem")
}

func TestNext_IgnoredWithoutFeedback(t *testing.T) {
	f := newFixture(t, threeProblems())
	require.NoError(t, f.runner.Start())
	f.settle()

	f.runner.Next()
	assert.Equal(t, 0, f.runner.Index())
	assert.Equal(t, PhaseAwaitingInput, f.runner.Phase())
}

func TestNext_ResetsTimerAndInput(t *testing.T) {
	f := newFixture(t, threeProblems())
	require.NoError(t, f.runner.Start())
	f.settle()
	f.sched.Advance(3 * time.Second)

	f.typeAnswer(t, "1")
	f.runner.Submit()
	f.runner.Next()

	assert.Equal(t, 1, f.runner.Index())
	assert.Empty(t, f.runner.Answer())
	assert.Equal(t, 5, f.runner.Remaining())
	_, showing := f.runner.Feedback()
	assert.False(t, showing)
}

func TestClose_IgnoresLateCallbacks(t *testing.T) {
	f := newFixture(t, threeProblems())
	require.NoError(t, f.runner.Start())
	f.settle()

	f.runner.Close()
	f.sched.Advance(time.Minute)

	assert.Equal(t, PhaseClosed, f.runner.Phase())
	assert.Empty(t, f.rec.recs, "timeout after teardown must not record")
	assert.Empty(t, f.nav.summaries)

	f.runner.AppendDigit(1)
	_, ok := f.runner.Submit()
	assert.False(t, ok)
	assert.Error(t, f.runner.Show(1))
}

func TestClose_BeforeSettle(t *testing.T) {
	f := newFixture(t, threeProblems())
	require.NoError(t, f.runner.Start())
	f.runner.Close()
	f.settle()

	assert.NotEqual(t, countdown.Running, f.runner.TimerState(), "settle after teardown must not start the countdown")
	assert.Equal(t, PhaseClosed, f.runner.Phase())
}

func TestHome(t *testing.T) {
	f := newFixture(t, threeProblems())
	require.NoError(t, f.runner.Start())
	f.runner.Home()

	assert.Equal(t, 1, f.nav.home)
	assert.False(t, f.runner.Active())
}

func TestRecorderFailureIsLogged(t *testing.T) {
	f := newFixture(t, threeProblems())
	f.rec.err = errors.New("store unavailable")
	require.NoError(t, f.runner.Start())
	f.settle()

	f.typeAnswer(t, "7")
	_, ok := f.runner.Submit()
	assert.True(t, ok, "persistence failure must not abort the question")
	assert.Equal(t, PhaseFeedback, f.runner.Phase())
}

func TestReview_CallbackAfterDelay(t *testing.T) {
	var verdicts []Verdict
	f := newFixture(t, threeProblems(), WithReview(func(v Verdict) { verdicts = append(verdicts, v) }))
	require.NoError(t, f.runner.Start())
	f.settle()

	f.typeAnswer(t, "12")
	f.runner.Submit()

	f.sched.Advance(DefaultCorrectFeedbackDelay - time.Millisecond)
	assert.Empty(t, verdicts)
	f.sched.Advance(time.Millisecond)
	require.Len(t, verdicts, 1)
	assert.True(t, verdicts[0].Correct)
	assert.Equal(t, 0, verdicts[0].Index)

	assert.Equal(t, 0, f.runner.Score(), "review mode keeps no score")
	assert.Empty(t, f.rec.recs)
}

func TestReview_IncorrectUsesLongerDelay(t *testing.T) {
	var verdicts []Verdict
	f := newFixture(t, threeProblems(), WithReview(func(v Verdict) { verdicts = append(verdicts, v) }))
	require.NoError(t, f.runner.Start())
	f.settle()

	f.typeAnswer(t, "5")
	f.runner.Submit()

	f.sched.Advance(DefaultCorrectFeedbackDelay)
	assert.Empty(t, verdicts)
	f.sched.Advance(DefaultIncorrectFeedbackDelay - DefaultCorrectFeedbackDelay)
	require.Len(t, verdicts, 1)
	assert.False(t, verdicts[0].Correct)
	assert.Empty(t, f.rec.recs, "review mode never records mistakes")
}

func TestReview_NextDoesNotAdvance(t *testing.T) {
	f := newFixture(t, threeProblems(), WithReview(func(Verdict) {}))
	require.NoError(t, f.runner.Start())
	f.settle()
	f.typeAnswer(t, "12")
	f.runner.Submit()

	f.runner.Next()
	assert.Equal(t, 0, f.runner.Index())
}

func TestReview_CallbackDroppedAfterClose(t *testing.T) {
	called := false
	f := newFixture(t, threeProblems(), WithReview(func(Verdict) { called = true }))
	require.NoError(t, f.runner.Start())
	f.settle()
	f.typeAnswer(t, "12")
	f.runner.Submit()

	f.runner.Close()
	f.sched.Advance(time.Minute)
	assert.False(t, called)
}

func TestPhase_String(t *testing.T) {
	assert.Equal(t, "awaiting-input", PhaseAwaitingInput.String())
	assert.Equal(t, "closed", PhaseClosed.String())
}
