package quiz

import (
	"time"

	tea "charm.land/bubbletea/v2"
)

// callbackMsg carries a deferred engine callback back onto the update loop.
type callbackMsg struct {
	owner *teaScheduler
	fn    func()
}

// teaScheduler implements countdown.Scheduler with tea.Tick. Callbacks
// requested during an update are collected and released by drain.
type teaScheduler struct {
	pending []tea.Cmd
}

func (s *teaScheduler) AfterFunc(d time.Duration, fn func()) {
	s.pending = append(s.pending, tea.Tick(d, func(time.Time) tea.Msg {
		return callbackMsg{owner: s, fn: fn}
	}))
}

func (s *teaScheduler) drain() []tea.Cmd {
	cmds := s.pending
	s.pending = nil
	return cmds
}
