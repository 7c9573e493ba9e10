package problemgen

import (
	"fmt"
	"strings"
)

// DividendRange is an inclusive bound on division dividends.
type DividendRange struct {
	Min int
	Max int
}

// Preset dividend ranges offered by the settings form.
var (
	RangeLow    = DividendRange{Min: 2, Max: 30}
	RangeMedium = DividendRange{Min: 31, Max: 60}
	RangeHigh   = DividendRange{Min: 61, Max: 100}
)

// IsZero reports whether r is unrestricted.
func (r DividendRange) IsZero() bool {
	return r.Min == 0 && r.Max == 0
}

// Contains reports whether n lies within r. The zero range contains
// everything.
func (r DividendRange) Contains(n int) bool {
	if r.IsZero() {
		return true
	}
	return n >= r.Min && n <= r.Max
}

func (r DividendRange) String() string {
	if r.IsZero() {
		return "any"
	}
	return fmt.Sprintf("%d-%d", r.Min, r.Max)
}

// RangeNames lists the preset names in increasing difficulty.
func RangeNames() []string {
	return []string{"low", "medium", "high"}
}

// RangeByName resolves a preset by name.
func RangeByName(name string) (DividendRange, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "low":
		return RangeLow, nil
	case "medium":
		return RangeMedium, nil
	case "high":
		return RangeHigh, nil
	case "", "any", "all":
		return DividendRange{}, nil
	}
	return DividendRange{}, fmt.Errorf("unknown dividend range %q (want low, medium or high)", name)
}

// DefaultDivisors is the divisor selection used by division drills.
func DefaultDivisors() []int {
	return []int{2, 3, 4, 5, 6, 7, 8, 9, 10}
}
