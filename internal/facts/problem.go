package facts

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Problem is a single arithmetic fact. The zero value is not a valid problem.
//
// For multiplication the operands are the two factors and the answer is the
// product. For division the operands are dividend and divisor and the answer
// is the quotient.
type Problem struct {
	mode   Mode
	left   int
	right  int
	answer int
}

// NewProduct returns the multiplication fact a × b.
func NewProduct(a, b int) Problem {
	return Problem{mode: Multiplication, left: a, right: b, answer: a * b}
}

// NewQuotient returns the division fact (divisor × quotient) ÷ divisor.
func NewQuotient(divisor, quotient int) Problem {
	return Problem{mode: Division, left: divisor * quotient, right: divisor, answer: quotient}
}

// Mode returns the problem's operation.
func (p Problem) Mode() Mode { return p.mode }

// Operands returns the left and right operands in display order.
func (p Problem) Operands() (int, int) { return p.left, p.right }

// Answer returns the expected result.
func (p Problem) Answer() int { return p.answer }

// IsZero reports whether p is the zero Problem.
func (p Problem) IsZero() bool { return p.mode == "" }

// Dividend returns the dividend of a division fact, or the product of a
// multiplication fact.
func (p Problem) Dividend() int {
	if p.mode == Division {
		return p.left
	}
	return p.answer
}

// Divisor returns the divisor of a division fact, or 0.
func (p Problem) Divisor() int {
	if p.mode == Division {
		return p.right
	}
	return 0
}

// Swapped returns the multiplication fact with its operands exchanged.
// Division facts are returned unchanged.
func (p Problem) Swapped() Problem {
	if p.mode != Multiplication {
		return p
	}
	p.left, p.right = p.right, p.left
	return p
}

// Key identifies the fact independently of operand order for
// multiplication, so 3 × 4 and 4 × 3 share a key.
func (p Problem) Key() string {
	if p.mode == Multiplication {
		lo, hi := min(p.left, p.right), max(p.left, p.right)
		return fmt.Sprintf("%d*%d", lo, hi)
	}
	return fmt.Sprintf("%d/%d", p.left, p.right)
}

// Text renders the problem the way it is persisted, e.g. "3 * 4".
func (p Problem) Text() string {
	return fmt.Sprintf("%d %s %d", p.left, p.mode.Operator(), p.right)
}

// Equation renders the full fact, e.g. "3 * 4 = 12".
func (p Problem) Equation() string {
	return fmt.Sprintf("%s = %d", p.Text(), p.answer)
}

// Prompt renders the question shown to the learner, e.g. "3 × 4 = ?".
func (p Problem) Prompt() string {
	return fmt.Sprintf("%d %s %d = ?", p.left, p.mode.Symbol(), p.right)
}

// Check reports whether answer is the correct result.
func (p Problem) Check(answer int) bool {
	return !p.IsZero() && answer == p.answer
}

func (p Problem) String() string {
	return p.Equation()
}

// ErrMalformedQuestion is returned when a stored question text cannot be
// turned back into a problem.
var ErrMalformedQuestion = errors.New("malformed question")

// ParseProblem rebuilds a problem from its Text form ("a op b").
func ParseProblem(text string, mode Mode) (Problem, error) {
	if !mode.Valid() {
		return Problem{}, fmt.Errorf("%w: unknown mode %q", ErrMalformedQuestion, mode)
	}
	fields := strings.Fields(text)
	if len(fields) != 3 {
		return Problem{}, fmt.Errorf("%w: %q", ErrMalformedQuestion, text)
	}
	if fields[1] != mode.Operator() {
		return Problem{}, fmt.Errorf("%w: operator %q does not match mode %s", ErrMalformedQuestion, fields[1], mode)
	}
	left, err := strconv.Atoi(fields[0])
	if err != nil {
		return Problem{}, fmt.Errorf("%w: %q: %v", ErrMalformedQuestion, text, err)
	}
	right, err := strconv.Atoi(fields[2])
	if err != nil {
		return Problem{}, fmt.Errorf("%w: %q: %v", ErrMalformedQuestion, text, err)
	}
	if left < 0 || right < 0 {
		return Problem{}, fmt.Errorf("%w: negative operand in %q", ErrMalformedQuestion, text)
	}

	if mode == Multiplication {
		return NewProduct(left, right), nil
	}
	if right == 0 || left%right != 0 {
		return Problem{}, fmt.Errorf("%w: %q is not an exact division", ErrMalformedQuestion, text)
	}
	return NewQuotient(right, left/right), nil
}
