package session

import (
	"context"

	"github.com/abhisek/mathdrill/internal/facts"
	"github.com/abhisek/mathdrill/internal/mistakes"
)

// Phase represents the current phase of a runner.
type Phase int

const (
	PhaseIdle          Phase = iota // Not started
	PhaseDisplaying                 // Question shown, countdown not yet started
	PhaseAwaitingInput              // Countdown running
	PhaseFeedback                   // Verdict shown
	PhaseFinished                   // Last question answered
	PhaseClosed                     // Torn down
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseDisplaying:
		return "displaying"
	case PhaseAwaitingInput:
		return "awaiting-input"
	case PhaseFeedback:
		return "feedback"
	case PhaseFinished:
		return "finished"
	case PhaseClosed:
		return "closed"
	}
	return "unknown"
}

// Verdict is the outcome of one submitted question.
type Verdict struct {
	Index    int
	Problem  facts.Problem
	Correct  bool
	TimedOut bool

	// UserAnswer is the submitted value; 0 when the question timed out.
	UserAnswer int
}

// Feedback is what the learner sees after submitting.
type Feedback struct {
	Correct bool
	Message string
}

// MistakeRecorder stores wrong answers.
type MistakeRecorder interface {
	Append(ctx context.Context, rec mistakes.Record) error
}

// Navigator moves the application between screens on behalf of a runner.
type Navigator interface {
	GoHome()
	ShowResults(Summary)
}

type nopNavigator struct{}

func (nopNavigator) GoHome()             {}
func (nopNavigator) ShowResults(Summary) {}
