package review

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/mathdrill/internal/countdown/countdowntest"
	"github.com/abhisek/mathdrill/internal/facts"
	"github.com/abhisek/mathdrill/internal/mistakes"
	"github.com/abhisek/mathdrill/internal/session"
)

// memStore implements Store for testing.
type memStore struct {
	recs     []mistakes.Record
	loadErr  error
	replaced [][]mistakes.Record
}

func (m *memStore) Load(context.Context) ([]mistakes.Record, error) {
	if m.loadErr != nil {
		return nil, m.loadErr
	}
	return append([]mistakes.Record(nil), m.recs...), nil
}

func (m *memStore) ReplaceAll(_ context.Context, recs []mistakes.Record) error {
	m.recs = append([]mistakes.Record(nil), recs...)
	m.replaced = append(m.replaced, m.recs)
	return nil
}

// navigator implements session.Navigator for testing.
type navigator struct {
	home      int
	summaries []session.Summary
}

func (n *navigator) GoHome()                       { n.home++ }
func (n *navigator) ShowResults(s session.Summary) { n.summaries = append(n.summaries, s) }

type fixture struct {
	ctrl  *Controller
	store *memStore
	sched *countdowntest.Scheduler
	nav   *navigator
}

func newFixture(recs ...mistakes.Record) *fixture {
	f := &fixture{
		store: &memStore{recs: recs},
		sched: countdowntest.New(),
		nav:   &navigator{},
	}
	cfg := session.DefaultConfig()
	cfg.TimerSeconds = 5
	f.ctrl = New(f.store, f.sched, cfg, f.nav, nil)
	return f
}

// answer types the answer for the current item, submits it and lets the
// feedback delay pass.
func (f *fixture) answer(t *testing.T, value int) {
	t.Helper()
	r := f.ctrl.Runner()
	f.sched.Advance(session.DefaultSettleDelay)
	for _, c := range itoa(value) {
		require.True(t, r.AppendDigit(int(c-'0')))
	}
	_, ok := r.Submit()
	require.True(t, ok)
	f.sched.Advance(session.DefaultIncorrectFeedbackDelay)
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	var b []byte
	for n > 0 {
		b = append([]byte{byte('0' + n%10)}, b...)
		n /= 10
	}
	return string(b)
}

func rec(p facts.Problem, user int) mistakes.Record {
	return mistakes.FromProblem(p, user)
}

func TestStart_EmptyRedirectsHome(t *testing.T) {
	f := newFixture()

	err := f.ctrl.Start(context.Background())
	assert.ErrorIs(t, err, ErrNothingToReview)
	assert.Equal(t, PhaseRedirected, f.ctrl.Phase())
	assert.Equal(t, 1, f.nav.home)
	assert.Nil(t, f.ctrl.Runner())
	assert.Empty(t, f.store.replaced, "an empty review must not write")
}

func TestStart_LoadError(t *testing.T) {
	f := newFixture()
	f.store.loadErr = errors.New("io")

	err := f.ctrl.Start(context.Background())
	assert.ErrorIs(t, err, f.store.loadErr)
	assert.Equal(t, 0, f.nav.home)
}

func TestStart_Twice(t *testing.T) {
	f := newFixture(rec(facts.NewProduct(3, 4), 11))
	require.NoError(t, f.ctrl.Start(context.Background()))
	assert.Error(t, f.ctrl.Start(context.Background()))
}

func TestReview_KeepsStillWrongInOrder(t *testing.T) {
	a := rec(facts.NewProduct(3, 4), 11)
	b := rec(facts.NewQuotient(6, 7), 0)
	c := rec(facts.NewProduct(8, 9), 71)
	f := newFixture(a, b, c)

	require.NoError(t, f.ctrl.Start(context.Background()))
	assert.Equal(t, PhaseActive, f.ctrl.Phase())
	assert.Equal(t, 3, f.ctrl.Total())

	f.answer(t, 12) // a now right
	assert.Equal(t, 1, f.ctrl.Index())
	f.answer(t, 6) // b still wrong
	f.answer(t, 70) // c still wrong

	assert.Equal(t, PhaseFinished, f.ctrl.Phase())
	assert.Equal(t, []bool{true, false, false}, f.ctrl.Results())
	assert.Equal(t, []mistakes.Record{b, c}, f.store.recs)

	require.Len(t, f.nav.summaries, 1)
	s := f.nav.summaries[0]
	assert.True(t, s.Review)
	assert.Equal(t, 1, s.Score)
	assert.Equal(t, 3, s.Total)
	assert.Equal(t, facts.Mode(""), s.Mode, "mixed reviews have no single mode")
}

func TestReview_KeepsRecordsThatCannotBeReplayed(t *testing.T) {
	a := rec(facts.NewProduct(3, 4), 11)
	bad := mistakes.Record{Question: "3 * 4", CorrectAnswer: 13, UserAnswer: 1, Mode: facts.Multiplication}
	c := rec(facts.NewProduct(8, 9), 71)
	f := newFixture(a, bad, c)

	require.NoError(t, f.ctrl.Start(context.Background()))
	assert.Equal(t, 2, f.ctrl.Total(), "only rebuildable records are replayed")

	f.answer(t, 12) // a retired
	f.answer(t, 70) // c still wrong

	assert.Equal(t, PhaseFinished, f.ctrl.Phase())
	assert.Equal(t, []mistakes.Record{bad, c}, f.store.recs)
	require.Len(t, f.nav.summaries, 1)
	assert.Equal(t, 1, f.nav.summaries[0].Score)
	assert.Equal(t, 2, f.nav.summaries[0].Total)
}

func TestReview_AllCorrectEmptiesStore(t *testing.T) {
	f := newFixture(rec(facts.NewProduct(2, 3), 5), rec(facts.NewProduct(4, 4), 15))
	require.NoError(t, f.ctrl.Start(context.Background()))

	f.answer(t, 6)
	f.answer(t, 16)

	assert.Empty(t, f.store.recs)
	require.Len(t, f.nav.summaries, 1)
	assert.Equal(t, 2, f.nav.summaries[0].Score)
	assert.Equal(t, facts.Multiplication, f.nav.summaries[0].Mode)
}

func TestReview_TimeoutCountsAsWrong(t *testing.T) {
	a := rec(facts.NewProduct(7, 7), 48)
	f := newFixture(a)
	require.NoError(t, f.ctrl.Start(context.Background()))

	f.sched.Advance(session.DefaultSettleDelay + 5*time.Second)
	f.sched.Advance(session.DefaultIncorrectFeedbackDelay)

	assert.Equal(t, PhaseFinished, f.ctrl.Phase())
	assert.Equal(t, []mistakes.Record{a}, f.store.recs, "the original record is kept unchanged")
}

func TestHandleAnswered_IgnoredWhenNotActive(t *testing.T) {
	f := newFixture(rec(facts.NewProduct(3, 3), 8))
	f.ctrl.HandleAnswered(true)
	assert.Equal(t, PhaseLoading, f.ctrl.Phase())

	require.NoError(t, f.ctrl.Start(context.Background()))
	f.ctrl.HandleAnswered(true)
	assert.Equal(t, PhaseFinished, f.ctrl.Phase())

	f.ctrl.HandleAnswered(false)
	assert.Equal(t, []bool{true}, f.ctrl.Results(), "calls after finalize are ignored")
	assert.Len(t, f.store.replaced, 1)
	assert.Len(t, f.nav.summaries, 1)
}

func TestHandleAnswered_StaleVerdictIgnored(t *testing.T) {
	f := newFixture(rec(facts.NewProduct(3, 3), 8), rec(facts.NewProduct(3, 4), 13))
	require.NoError(t, f.ctrl.Start(context.Background()))

	// Answer item 0 but advance externally before its delayed verdict lands.
	r := f.ctrl.Runner()
	f.sched.Advance(session.DefaultSettleDelay)
	r.AppendDigit(9)
	r.Submit()
	f.ctrl.HandleAnswered(true)
	assert.Equal(t, 1, f.ctrl.Index())

	f.sched.Advance(session.DefaultIncorrectFeedbackDelay)
	assert.Equal(t, 1, f.ctrl.Index(), "verdict for item 0 must not advance item 1")
	assert.Equal(t, PhaseActive, f.ctrl.Phase())
}

func TestHome_LeavesStoreUntouched(t *testing.T) {
	a := rec(facts.NewProduct(6, 7), 41)
	f := newFixture(a)
	require.NoError(t, f.ctrl.Start(context.Background()))

	f.ctrl.Home()
	f.sched.Advance(time.Minute)

	assert.Equal(t, 1, f.nav.home)
	assert.Empty(t, f.store.replaced)
	assert.Equal(t, PhaseActive, f.ctrl.Phase())
	assert.Equal(t, session.PhaseClosed, f.ctrl.Runner().Phase())
}

func TestPhase_String(t *testing.T) {
	assert.Equal(t, "redirected", PhaseRedirected.String())
}
