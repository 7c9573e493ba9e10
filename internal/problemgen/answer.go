package problemgen

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/abhisek/mathdrill/internal/facts"
)

// MaxAnswerDigits caps how many digits the learner may type.
const MaxAnswerDigits = 3

// ParseAnswer converts typed input into a non-negative integer.
//
// Normalization rules:
// - Whitespace is trimmed
// - Leading zeros are ignored (e.g., "007" is 7)
// - Anything other than decimal digits is rejected
func ParseAnswer(input string) (int, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return 0, fmt.Errorf("empty answer")
	}
	for _, r := range input {
		if r < '0' || r > '9' {
			return 0, fmt.Errorf("invalid answer %q", input)
		}
	}
	n, err := strconv.Atoi(input)
	if err != nil {
		return 0, fmt.Errorf("invalid answer: %w", err)
	}
	return n, nil
}

// CheckAnswer compares the learner's input against the problem's answer.
func CheckAnswer(input string, p facts.Problem) bool {
	n, err := ParseAnswer(input)
	if err != nil {
		return false
	}
	return p.Check(n)
}
