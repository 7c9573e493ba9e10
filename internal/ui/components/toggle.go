package components

import (
	"fmt"
	"strings"

	"github.com/abhisek/mathdrill/internal/ui/theme"
)

// ToggleRow is a horizontal row of numbered on/off switches with a cursor.
type ToggleRow struct {
	Values []int
	On     map[int]bool
	Cursor int
	Focus  bool
}

// NewToggleRow returns a row over values with the given ones switched on.
func NewToggleRow(values []int, on ...int) ToggleRow {
	t := ToggleRow{Values: values, On: make(map[int]bool, len(values))}
	for _, v := range on {
		t.On[v] = true
	}
	return t
}

// Left moves the cursor left, stopping at the first value.
func (t *ToggleRow) Left() {
	if t.Cursor > 0 {
		t.Cursor--
	}
}

// Right moves the cursor right, stopping at the last value.
func (t *ToggleRow) Right() {
	if t.Cursor < len(t.Values)-1 {
		t.Cursor++
	}
}

// ToggleCursor flips the value under the cursor.
func (t *ToggleRow) ToggleCursor() {
	if t.Cursor >= 0 && t.Cursor < len(t.Values) {
		t.Toggle(t.Values[t.Cursor])
	}
}

// Toggle flips v if it is part of the row.
func (t *ToggleRow) Toggle(v int) {
	for _, x := range t.Values {
		if x == v {
			t.On[v] = !t.On[v]
			return
		}
	}
}

// Selected returns the switched-on values in row order.
func (t ToggleRow) Selected() []int {
	var out []int
	for _, v := range t.Values {
		if t.On[v] {
			out = append(out, v)
		}
	}
	return out
}

// View renders the row.
func (t ToggleRow) View() string {
	parts := make([]string, len(t.Values))
	for i, v := range t.Values {
		label := fmt.Sprintf("%d", v)
		style := theme.ToggleOff
		if t.On[v] {
			style = theme.ToggleOn
		}
		cell := style.Render(label)
		if t.Focus && i == t.Cursor {
			cell = theme.Selected.Render("[") + cell + theme.Selected.Render("]")
		} else {
			cell = " " + cell + " "
		}
		parts[i] = cell
	}
	return strings.Join(parts, "")
}
