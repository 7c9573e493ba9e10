package mistakes

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"testing"

	clog "github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/mathdrill/internal/facts"
	"github.com/abhisek/mathdrill/internal/store"
)

// memKV is an in-memory KV for testing.
type memKV struct {
	data   map[string]string
	getErr error
	puts   int
}

func newMemKV() *memKV {
	return &memKV{data: make(map[string]string)}
}

func (m *memKV) Get(_ context.Context, key string) (string, bool, error) {
	if m.getErr != nil {
		return "", false, m.getErr
	}
	v, ok := m.data[key]
	return v, ok, nil
}

func (m *memKV) Put(_ context.Context, key, value string) error {
	m.puts++
	m.data[key] = value
	return nil
}

func TestLoad_Missing(t *testing.T) {
	repo := NewRepo(newMemKV(), nil)
	got, err := repo.Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestAppend_PreservesOrder(t *testing.T) {
	kv := newMemKV()
	repo := NewRepo(kv, nil)
	ctx := context.Background()

	first := FromProblem(facts.NewProduct(3, 4), 11)
	second := FromProblem(facts.NewQuotient(6, 7), 0)
	require.NoError(t, repo.Append(ctx, first))
	require.NoError(t, repo.Append(ctx, second))

	got, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, []Record{first, second}, got)

	assert.JSONEq(t,
		`[{"question":"3 * 4","correctAnswer":12,"userAnswer":11,"mode":"multiplication"},
		  {"question":"42 / 6","correctAnswer":7,"userAnswer":0,"mode":"division"}]`,
		kv.data[Key])
}

func TestAppend_ReadsFreshState(t *testing.T) {
	kv := newMemKV()
	repo := NewRepo(kv, nil)
	ctx := context.Background()

	require.NoError(t, repo.Append(ctx, FromProblem(facts.NewProduct(2, 2), 5)))

	// Another writer replaces the entry behind the repo's back.
	kv.data[Key] = `[{"question":"9 * 9","correctAnswer":81,"userAnswer":80,"mode":"multiplication"}]`

	require.NoError(t, repo.Append(ctx, FromProblem(facts.NewProduct(2, 3), 7)))

	got, err := repo.Load(ctx)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "9 * 9", got[0].Question)
	assert.Equal(t, "2 * 3", got[1].Question)
}

func TestAppend_KeepsDuplicates(t *testing.T) {
	repo := NewRepo(newMemKV(), nil)
	ctx := context.Background()

	rec := FromProblem(facts.NewProduct(7, 8), 54)
	require.NoError(t, repo.Append(ctx, rec))
	require.NoError(t, repo.Append(ctx, rec))

	n, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestClear(t *testing.T) {
	kv := newMemKV()
	repo := NewRepo(kv, nil)
	ctx := context.Background()

	require.NoError(t, repo.Append(ctx, FromProblem(facts.NewProduct(3, 3), 6)))
	require.NoError(t, repo.Clear(ctx))

	assert.Equal(t, "[]", kv.data[Key])
	got, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestReplaceAll(t *testing.T) {
	repo := NewRepo(newMemKV(), nil)
	ctx := context.Background()

	a := FromProblem(facts.NewProduct(1, 2), 3)
	b := FromProblem(facts.NewProduct(4, 5), 21)
	c := FromProblem(facts.NewQuotient(2, 5), 4)
	require.NoError(t, repo.AppendAll(ctx, []Record{a, b, c}))

	require.NoError(t, repo.ReplaceAll(ctx, []Record{c, a}))

	got, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, []Record{c, a}, got)
}

func TestLoad_CorruptIsEmpty(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"not json", "{{{"},
		{"object instead of array", `{"question":"3 * 4"}`},
		{"missing field", `[{"question":"3 * 4","correctAnswer":12,"mode":"multiplication"}]`},
		{"wrong type", `[{"question":"3 * 4","correctAnswer":"12","userAnswer":1,"mode":"multiplication"}]`},
		{"unknown mode", `[{"question":"3 + 4","correctAnswer":7,"userAnswer":1,"mode":"addition"}]`},
		{"fractional answer", `[{"question":"3 * 4","correctAnswer":12.5,"userAnswer":1,"mode":"multiplication"}]`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var logs bytes.Buffer
			logger := clog.New(&logs)

			kv := newMemKV()
			kv.data[Key] = tt.raw
			repo := NewRepo(kv, logger)

			got, err := repo.Load(context.Background())
			require.NoError(t, err)
			assert.Empty(t, got)
			assert.Contains(t, logs.String(), "discarding unreadable mistake store")
		})
	}
}

const inconsistentStore = `[
		{"question":"3 * 4","correctAnswer":12,"userAnswer":11,"mode":"multiplication"},
		{"question":"13 / 3","correctAnswer":4,"userAnswer":1,"mode":"division"},
		{"question":"3 * 4","correctAnswer":13,"userAnswer":1,"mode":"multiplication"},
		{"question":"20 / 5","correctAnswer":4,"userAnswer":0,"mode":"division"}
	]`

func TestLoad_KeepsInconsistentRecords(t *testing.T) {
	kv := newMemKV()
	kv.data[Key] = inconsistentStore
	repo := NewRepo(kv, nil)

	got, err := repo.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 4)
	assert.Equal(t, "13 / 3", got[1].Question)
	assert.Equal(t, 13, got[2].CorrectAnswer)
	assert.Equal(t, 0, kv.puts, "loading never rewrites the entry")
}

func TestAppend_KeepsInconsistentRecords(t *testing.T) {
	kv := newMemKV()
	kv.data[Key] = inconsistentStore
	repo := NewRepo(kv, nil)

	require.NoError(t, repo.Append(context.Background(), FromProblem(facts.NewProduct(6, 7), 40)))

	got, err := repo.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 5)
	assert.Equal(t, Record{Question: "3 * 4", CorrectAnswer: 13, UserAnswer: 1, Mode: facts.Multiplication}, got[2])
	assert.Equal(t, "6 * 7", got[4].Question)

	data, err := repo.Export(context.Background())
	require.NoError(t, err)
	assert.Contains(t, string(data), `"question":"13 / 3"`)
}

func TestAppend_RecoversFromCorruption(t *testing.T) {
	kv := newMemKV()
	kv.data[Key] = "not json at all"
	repo := NewRepo(kv, nil)
	ctx := context.Background()

	rec := FromProblem(facts.NewProduct(6, 6), 35)
	require.NoError(t, repo.Append(ctx, rec))

	got, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, []Record{rec}, got)
}

func TestLoad_StorageError(t *testing.T) {
	kv := newMemKV()
	kv.getErr = errors.New("disk on fire")
	repo := NewRepo(kv, nil)

	_, err := repo.Load(context.Background())
	assert.ErrorIs(t, err, kv.getErr)

	err = repo.Append(context.Background(), FromProblem(facts.NewProduct(2, 2), 3))
	assert.Error(t, err)
	assert.Equal(t, 0, kv.puts, "a failed read must not overwrite the store")
}

func TestExport(t *testing.T) {
	repo := NewRepo(newMemKV(), nil)
	ctx := context.Background()

	data, err := repo.Export(ctx)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(data))

	require.NoError(t, repo.Append(ctx, FromProblem(facts.NewProduct(3, 4), 0)))
	data, err = repo.Export(ctx)
	require.NoError(t, err)
	assert.Equal(t, `[{"question":"3 * 4","correctAnswer":12,"userAnswer":0,"mode":"multiplication"}]`, string(data))
}

func TestRepo_SQLiteBacked(t *testing.T) {
	st, err := store.Open(filepath.Join(t.TempDir(), "mistakes.db"))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	repo := NewRepo(st.KV(), nil)
	ctx := context.Background()

	rec := FromProblem(facts.NewQuotient(9, 8), 7)
	require.NoError(t, repo.Append(ctx, rec))

	// A second repo over the same store sees the write immediately.
	other := NewRepo(st.KV(), nil)
	got, err := other.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, []Record{rec}, got)
}

func TestRecord_Problem(t *testing.T) {
	rec := FromProblem(facts.NewQuotient(4, 9), 8)
	assert.Equal(t, "36 / 4", rec.Question)
	assert.Equal(t, 9, rec.CorrectAnswer)

	p, err := rec.Problem()
	require.NoError(t, err)
	assert.Equal(t, facts.NewQuotient(4, 9), p)
}
