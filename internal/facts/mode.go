package facts

import "fmt"

// Mode is the arithmetic operation a problem drills.
type Mode string

const (
	Multiplication Mode = "multiplication"
	Division       Mode = "division"
)

// AllModes returns every supported mode in menu order.
func AllModes() []Mode {
	return []Mode{Multiplication, Division}
}

// Valid reports whether m is a known mode.
func (m Mode) Valid() bool {
	return m == Multiplication || m == Division
}

// Operator returns the ASCII operator used in stored question text.
func (m Mode) Operator() string {
	if m == Division {
		return "/"
	}
	return "*"
}

// Symbol returns the operator shown to the learner.
func (m Mode) Symbol() string {
	if m == Division {
		return "÷"
	}
	return "×"
}

// Label returns a human-readable name.
func (m Mode) Label() string {
	switch m {
	case Multiplication:
		return "Multiplication"
	case Division:
		return "Division"
	}
	return string(m)
}

// ParseMode converts a string into a Mode.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case Multiplication, "mul", "x":
		return Multiplication, nil
	case Division, "div":
		return Division, nil
	}
	return "", fmt.Errorf("unknown mode %q", s)
}
