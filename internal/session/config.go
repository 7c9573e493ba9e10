package session

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/abhisek/mathdrill/internal/facts"
	"github.com/abhisek/mathdrill/internal/problemgen"
)

// Session limits and defaults.
const (
	MinQuestionCount     = 5
	MaxQuestionCount     = 50
	DefaultQuestionCount = 10

	MinTimerSeconds     = 3
	MaxTimerSeconds     = 30
	DefaultTimerSeconds = 10

	MinFeedbackDelay              = 500 * time.Millisecond
	MaxFeedbackDelay              = 5 * time.Second
	DefaultCorrectFeedbackDelay   = 1000 * time.Millisecond
	DefaultIncorrectFeedbackDelay = 2000 * time.Millisecond

	// DefaultSettleDelay separates showing a question from starting its
	// countdown.
	DefaultSettleDelay = 50 * time.Millisecond
)

var (
	// ErrInvalidConfig wraps every configuration validation failure.
	ErrInvalidConfig = errors.New("invalid session config")

	// ErrNoOperands is returned when no factor or divisor is selected.
	ErrNoOperands = fmt.Errorf("%w: no numbers selected", ErrInvalidConfig)
)

// Config fixes everything about a quiz before it starts. It is not
// modified once a session is running.
type Config struct {
	Mode          facts.Mode
	Operands      []int
	DividendRange problemgen.DividendRange
	QuestionCount int
	TimerSeconds  int

	CorrectFeedbackDelay   time.Duration
	IncorrectFeedbackDelay time.Duration
	SettleDelay            time.Duration
}

// DefaultConfig returns a multiplication config with no operands selected.
func DefaultConfig() Config {
	return Config{
		Mode:                   facts.Multiplication,
		DividendRange:          problemgen.RangeLow,
		QuestionCount:          DefaultQuestionCount,
		TimerSeconds:           DefaultTimerSeconds,
		CorrectFeedbackDelay:   DefaultCorrectFeedbackDelay,
		IncorrectFeedbackDelay: DefaultIncorrectFeedbackDelay,
		SettleDelay:            DefaultSettleDelay,
	}
}

// Validate reports the first problem with c.
func (c Config) Validate() error {
	if !c.Mode.Valid() {
		return fmt.Errorf("%w: unknown mode %q", ErrInvalidConfig, c.Mode)
	}
	if len(c.Operands) == 0 {
		return ErrNoOperands
	}
	if c.QuestionCount < MinQuestionCount || c.QuestionCount > MaxQuestionCount {
		return fmt.Errorf("%w: question count %d outside %d-%d",
			ErrInvalidConfig, c.QuestionCount, MinQuestionCount, MaxQuestionCount)
	}
	if c.TimerSeconds < MinTimerSeconds || c.TimerSeconds > MaxTimerSeconds {
		return fmt.Errorf("%w: timer %ds outside %d-%ds",
			ErrInvalidConfig, c.TimerSeconds, MinTimerSeconds, MaxTimerSeconds)
	}
	for _, d := range []time.Duration{c.CorrectFeedbackDelay, c.IncorrectFeedbackDelay} {
		if d < MinFeedbackDelay || d > MaxFeedbackDelay {
			return fmt.Errorf("%w: feedback delay %s outside %s-%s",
				ErrInvalidConfig, d, MinFeedbackDelay, MaxFeedbackDelay)
		}
	}
	return nil
}

// GenerateInput converts c into a problem set request.
func (c Config) GenerateInput() problemgen.GenerateInput {
	in := problemgen.GenerateInput{
		Mode:     c.Mode,
		Operands: slices.Clone(c.Operands),
		Count:    c.QuestionCount,
	}
	if c.Mode == facts.Division {
		in.DividendRange = c.DividendRange
	}
	return in
}

// ClampQuestionCount limits n to the allowed question count range.
func ClampQuestionCount(n int) int {
	return min(max(n, MinQuestionCount), MaxQuestionCount)
}

// ClampTimerSeconds limits n to the allowed timer range.
func ClampTimerSeconds(n int) int {
	return min(max(n, MinTimerSeconds), MaxTimerSeconds)
}
