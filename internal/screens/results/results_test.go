package results

import (
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/mathdrill/internal/facts"
	"github.com/abhisek/mathdrill/internal/router"
	"github.com/abhisek/mathdrill/internal/screen"
	"github.com/abhisek/mathdrill/internal/session"
)

type stubScreen struct{ title string }

func (s *stubScreen) Init() tea.Cmd                           { return nil }
func (s *stubScreen) Update(tea.Msg) (screen.Screen, tea.Cmd) { return s, nil }
func (s *stubScreen) View(int, int) string                    { return s.title }
func (s *stubScreen) Title() string                           { return s.title }

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func TestEnterGoesHome(t *testing.T) {
	s := New(session.Summary{Score: 7, Total: 10}, Actions{})
	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.Equal(t, router.PopToRootMsg{}, cmd())
}

func TestRetry(t *testing.T) {
	next := &stubScreen{title: "again"}
	s := New(session.Summary{Score: 7, Total: 10}, Actions{
		Retry: func() screen.Screen { return next },
	})
	_, cmd := s.Update(keyPress('r'))
	require.NotNil(t, cmd)
	assert.Equal(t, router.ReplaceScreenMsg{Screen: next}, cmd())

	_, cmd = s.Update(keyPress('v'))
	assert.Nil(t, cmd, "review is not offered without an action")
}

func TestKeyHints(t *testing.T) {
	s := New(session.Summary{Review: true, Score: 1, Total: 3}, Actions{
		Review: func() screen.Screen { return &stubScreen{} },
	})
	hints := s.KeyHints()
	require.Len(t, hints, 2)
	assert.Equal(t, "Continue review", hints[1].Description)
}

func TestView_Grade(t *testing.T) {
	s := New(session.Summary{Mode: facts.Multiplication, Score: 9, Total: 10}, Actions{})
	v := s.View(80, 20)
	assert.Contains(t, v, "9 / 10 correct")
	assert.Contains(t, v, "Very good")
	assert.Equal(t, "Results", s.Title())
}

func TestView_Review(t *testing.T) {
	v := New(session.Summary{Review: true, Score: 2, Total: 2}, Actions{}).View(80, 20)
	assert.Contains(t, v, "Perfect!")
	assert.Contains(t, v, "mistake list is empty")
	assert.NotContains(t, v, "Grade")

	v = New(session.Summary{Review: true, Score: 1, Total: 3}, Actions{}).View(80, 20)
	assert.Contains(t, v, "2 wrong answers kept")
}
