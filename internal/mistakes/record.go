// Package mistakes persists the learner's wrong answers for later review.
package mistakes

import (
	"fmt"

	"github.com/abhisek/mathdrill/internal/facts"
)

// Record is one wrong answer. The JSON shape is the persisted format and
// must not change.
type Record struct {
	Question      string     `json:"question"`
	CorrectAnswer int        `json:"correctAnswer"`
	UserAnswer    int        `json:"userAnswer"`
	Mode          facts.Mode `json:"mode"`
}

// FromProblem builds a record for p answered with userAnswer. A timed-out
// question is recorded with userAnswer 0.
func FromProblem(p facts.Problem, userAnswer int) Record {
	return Record{
		Question:      p.Text(),
		CorrectAnswer: p.Answer(),
		UserAnswer:    userAnswer,
		Mode:          p.Mode(),
	}
}

// Problem rebuilds the problem the record was made from.
func (r Record) Problem() (facts.Problem, error) {
	p, err := facts.ParseProblem(r.Question, r.Mode)
	if err != nil {
		return facts.Problem{}, err
	}
	if p.Answer() != r.CorrectAnswer {
		return facts.Problem{}, fmt.Errorf("%w: %q has answer %d, record says %d",
			facts.ErrMalformedQuestion, r.Question, p.Answer(), r.CorrectAnswer)
	}
	return p, nil
}
