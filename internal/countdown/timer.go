// Package countdown implements the per-question countdown.
//
// A Timer never owns a goroutine. Each one-second tick is requested from a
// Scheduler, so the timer runs on whatever event loop the caller provides
// (Bubble Tea in the app, a manual clock in tests).
package countdown

import "time"

// Tick is the countdown resolution.
const Tick = time.Second

// Scheduler runs fn once after d has elapsed. Callbacks must be delivered
// on the caller's event loop, never concurrently with other timer calls.
type Scheduler interface {
	AfterFunc(d time.Duration, fn func())
}

// State is the lifecycle state of a Timer.
type State int

const (
	Idle State = iota
	Running
	Stopped
	Expired
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Running:
		return "running"
	case Stopped:
		return "stopped"
	case Expired:
		return "expired"
	}
	return "unknown"
}

// Timer counts down whole seconds and fires its expiry callback exactly
// once per run.
type Timer struct {
	sched     Scheduler
	onExpire  func()
	duration  int
	remaining int
	state     State
	fired     bool

	// run identifies the current run. Ticks scheduled by an older run are
	// ignored, so Stop and Reset take effect even with a tick in flight.
	run uint64
}

// New returns an idle timer of the given length in seconds. Lengths below
// one second are raised to one.
func New(sched Scheduler, seconds int, onExpire func()) *Timer {
	seconds = max(seconds, 1)
	return &Timer{
		sched:     sched,
		onExpire:  onExpire,
		duration:  seconds,
		remaining: seconds,
	}
}

// Start begins counting down from the remaining time. It never fires the
// callback immediately. Starting an expired timer reloads the full
// duration. Returns false if the timer was already running.
func (t *Timer) Start() bool {
	if t.state == Running {
		return false
	}
	if t.remaining <= 0 {
		t.remaining = t.duration
	}
	t.state = Running
	t.fired = false
	t.run++
	t.schedule()
	return true
}

// Stop pauses a running timer. Returns false if it was not running.
func (t *Timer) Stop() bool {
	if t.state != Running {
		return false
	}
	t.state = Stopped
	t.run++
	return true
}

// Reset returns the timer to idle with a full duration. A positive seconds
// value replaces the duration.
func (t *Timer) Reset(seconds int) {
	if seconds > 0 {
		t.duration = seconds
	}
	t.remaining = t.duration
	t.state = Idle
	t.fired = false
	t.run++
}

// Remaining returns the whole seconds left.
func (t *Timer) Remaining() int { return t.remaining }

// Duration returns the configured length in seconds.
func (t *Timer) Duration() int { return t.duration }

// State returns the current lifecycle state.
func (t *Timer) State() State { return t.state }

// Fraction returns the remaining share of the duration in [0, 1].
func (t *Timer) Fraction() float64 {
	if t.duration <= 0 {
		return 0
	}
	return float64(t.remaining) / float64(t.duration)
}

func (t *Timer) schedule() {
	run := t.run
	t.sched.AfterFunc(Tick, func() { t.tick(run) })
}

func (t *Timer) tick(run uint64) {
	if run != t.run || t.state != Running {
		return
	}
	t.remaining--
	if t.remaining > 0 {
		t.schedule()
		return
	}
	t.remaining = 0
	t.state = Expired
	if !t.fired {
		t.fired = true
		if t.onExpire != nil {
			t.onExpire()
		}
	}
}
