// Package countdowntest provides a manual clock for driving timers in tests.
package countdowntest

import (
	"sort"
	"time"
)

type pending struct {
	at  time.Duration
	seq int
	fn  func()
}

// Scheduler is a countdown.Scheduler whose clock only moves when Advance
// is called. Callbacks run synchronously inside Advance in due order.
type Scheduler struct {
	now     time.Duration
	seq     int
	pending []pending
}

// New returns a Scheduler at time zero.
func New() *Scheduler {
	return &Scheduler{}
}

// AfterFunc queues fn to run once the clock has advanced by d.
func (s *Scheduler) AfterFunc(d time.Duration, fn func()) {
	s.seq++
	s.pending = append(s.pending, pending{at: s.now + d, seq: s.seq, fn: fn})
}

// Advance moves the clock forward by d, running every callback that falls
// due, including callbacks scheduled by earlier callbacks.
func (s *Scheduler) Advance(d time.Duration) {
	target := s.now + d
	for {
		i := s.next(target)
		if i < 0 {
			break
		}
		p := s.pending[i]
		s.pending = append(s.pending[:i], s.pending[i+1:]...)
		s.now = p.at
		p.fn()
	}
	s.now = target
}

// Pending returns the number of queued callbacks.
func (s *Scheduler) Pending() int {
	return len(s.pending)
}

// Now returns the elapsed virtual time.
func (s *Scheduler) Now() time.Duration {
	return s.now
}

// next returns the index of the earliest callback due by target, or -1.
func (s *Scheduler) next(target time.Duration) int {
	sort.SliceStable(s.pending, func(i, j int) bool {
		if s.pending[i].at != s.pending[j].at {
			return s.pending[i].at < s.pending[j].at
		}
		return s.pending[i].seq < s.pending[j].seq
	})
	if len(s.pending) == 0 || s.pending[0].at > target {
		return -1
	}
	return 0
}
