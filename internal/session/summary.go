package session

import (
	"time"

	"github.com/abhisek/mathdrill/internal/facts"
)

// Summary describes a finished quiz or review.
type Summary struct {
	Mode      facts.Mode
	Review    bool
	Score     int
	Total     int
	StartedAt time.Time
	EndedAt   time.Time
}

// Percent returns the score as a percentage of the total.
func (s Summary) Percent() float64 {
	if s.Total <= 0 {
		return 0
	}
	return float64(s.Score) / float64(s.Total) * 100
}

// Perfect reports whether every question was answered correctly.
func (s Summary) Perfect() bool {
	return s.Total > 0 && s.Score == s.Total
}

// Wrong returns the number of questions answered incorrectly.
func (s Summary) Wrong() int {
	return s.Total - s.Score
}

// Duration returns how long the session lasted.
func (s Summary) Duration() time.Duration {
	return s.EndedAt.Sub(s.StartedAt)
}

// Grade returns the school grade for the score.
func (s Summary) Grade() Grade {
	return GradeFor(s.Score, s.Total)
}

// Grade is a school mark from 1 (lowest) to 6 (highest).
type Grade int

const (
	GradeNone Grade = iota
	GradeInsufficient
	GradeSufficient
	GradeSatisfactory
	GradeGood
	GradeVeryGood
	GradeExcellent
)

// GradeFor maps a score to a grade by percentage. An empty session has no
// grade.
func GradeFor(score, total int) Grade {
	if total <= 0 {
		return GradeNone
	}
	pct := float64(score) / float64(total) * 100
	switch {
	case pct < 30:
		return GradeInsufficient
	case pct < 50:
		return GradeSufficient
	case pct < 70:
		return GradeSatisfactory
	case pct < 85:
		return GradeGood
	case pct < 95:
		return GradeVeryGood
	default:
		return GradeExcellent
	}
}

func (g Grade) String() string {
	switch g {
	case GradeInsufficient:
		return "Insufficient"
	case GradeSufficient:
		return "Sufficient"
	case GradeSatisfactory:
		return "Satisfactory"
	case GradeGood:
		return "Good"
	case GradeVeryGood:
		return "Very good"
	case GradeExcellent:
		return "Excellent"
	}
	return "No grade"
}
