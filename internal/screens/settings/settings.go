// Package settings is the form that configures a quiz before it starts.
package settings

import (
	"fmt"
	"strings"

	"charm.land/bubbles/v2/help"
	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/mathdrill/internal/facts"
	"github.com/abhisek/mathdrill/internal/problemgen"
	"github.com/abhisek/mathdrill/internal/router"
	"github.com/abhisek/mathdrill/internal/screen"
	"github.com/abhisek/mathdrill/internal/screens/quiz"
	"github.com/abhisek/mathdrill/internal/session"
	"github.com/abhisek/mathdrill/internal/ui/components"
	"github.com/abhisek/mathdrill/internal/ui/layout"
	"github.com/abhisek/mathdrill/internal/ui/theme"
)

// Operand choices for multiplication.
var factorChoices = []int{1, 2, 3, 4, 5, 6, 7, 8, 9}

var rangeChoices = []problemgen.DividendRange{
	problemgen.RangeLow,
	problemgen.RangeMedium,
	problemgen.RangeHigh,
}

type field int

const (
	fieldOperands field = iota
	fieldRange
	fieldCount
	fieldTimer
)

type keyMap struct {
	Up     key.Binding
	Down   key.Binding
	Left   key.Binding
	Right  key.Binding
	Toggle key.Binding
	More   key.Binding
	Less   key.Binding
	Start  key.Binding
	Help   key.Binding
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Left, k.Toggle, k.Start, k.Help}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right},
		{k.Toggle, k.More, k.Less},
		{k.Start, k.Help},
	}
}

func newKeyMap() keyMap {
	return keyMap{
		Up:     key.NewBinding(key.WithKeys("up", "k", "shift+tab"), key.WithHelp("↑↓", "Field")),
		Down:   key.NewBinding(key.WithKeys("down", "j", "tab"), key.WithHelp("↓", "Next field")),
		Left:   key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←→", "Change")),
		Right:  key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→", "Increase")),
		Toggle: key.NewBinding(key.WithKeys("space", "x"), key.WithHelp("Space/1-9", "Toggle")),
		More:   key.NewBinding(key.WithKeys("+", "="), key.WithHelp("+", "Add 5")),
		Less:   key.NewBinding(key.WithKeys("-", "_"), key.WithHelp("-", "Subtract 5")),
		Start:  key.NewBinding(key.WithKeys("enter"), key.WithHelp("Enter", "Start")),
		Help:   key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "More keys")),
	}
}

// Screen edits a session.Config and starts the quiz.
type Screen struct {
	deps     quiz.Deps
	cfg      session.Config
	fields   []field
	focus    int
	operands components.ToggleRow
	keys     keyMap
	help     help.Model
	errMsg   string
}

var _ screen.Screen = (*Screen)(nil)
var _ screen.KeyHintProvider = (*Screen)(nil)

// New creates the settings form for mode, starting from deps.Defaults.
// Division uses the standard divisors and offers a dividend range instead
// of operand toggles.
func New(deps quiz.Deps, mode facts.Mode) *Screen {
	cfg := deps.Defaults
	cfg.Mode = mode
	cfg.Operands = nil

	s := &Screen{deps: deps, keys: newKeyMap(), help: help.New()}
	s.help.Styles = help.DefaultDarkStyles()

	if mode == facts.Division {
		cfg.Operands = problemgen.DefaultDivisors()
		if cfg.DividendRange.IsZero() {
			cfg.DividendRange = problemgen.RangeLow
		}
		s.fields = []field{fieldRange, fieldCount, fieldTimer}
		s.keys.Toggle.SetEnabled(false)
	} else {
		s.operands = components.NewToggleRow(factorChoices)
		s.fields = []field{fieldOperands, fieldCount, fieldTimer}
	}
	s.cfg = cfg
	s.syncFocus()
	return s
}

func (s *Screen) Init() tea.Cmd {
	return nil
}

func (s *Screen) Title() string {
	return s.cfg.Mode.Label() + " Settings"
}

func (s *Screen) KeyHints() []layout.KeyHint {
	return components.Hints(s.keys.Up, s.keys.Left, s.keys.Toggle, s.keys.Start)
}

// Config returns the configuration as currently edited.
func (s *Screen) Config() session.Config {
	cfg := s.cfg
	if s.cfg.Mode == facts.Multiplication {
		cfg.Operands = s.operands.Selected()
	}
	return cfg
}

// Available returns the number of distinct problems the current selection
// can produce.
func (s *Screen) Available() int {
	if s.deps.Generator == nil {
		return 0
	}
	return s.deps.Generator.Capacity(s.Config().GenerateInput())
}

func (s *Screen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return s, nil
	}

	if d, ok := digit(kmsg); ok && s.cfg.Mode == facts.Multiplication {
		s.operands.Toggle(d)
		s.errMsg = ""
		return s, nil
	}

	switch {
	case key.Matches(kmsg, s.keys.Up):
		if s.focus > 0 {
			s.focus--
		}
		s.syncFocus()
	case key.Matches(kmsg, s.keys.Down):
		if s.focus < len(s.fields)-1 {
			s.focus++
		}
		s.syncFocus()
	case key.Matches(kmsg, s.keys.Left):
		s.adjust(-1)
	case key.Matches(kmsg, s.keys.Right):
		s.adjust(1)
	case key.Matches(kmsg, s.keys.Less):
		s.adjust(-5)
	case key.Matches(kmsg, s.keys.More):
		s.adjust(5)
	case key.Matches(kmsg, s.keys.Toggle):
		if s.current() == fieldOperands {
			s.operands.ToggleCursor()
			s.errMsg = ""
		}
	case key.Matches(kmsg, s.keys.Help):
		s.help.ShowAll = !s.help.ShowAll
	case key.Matches(kmsg, s.keys.Start):
		return s, s.start()
	}
	return s, nil
}

func (s *Screen) start() tea.Cmd {
	cfg := s.Config()
	if err := cfg.Validate(); err != nil {
		if len(cfg.Operands) == 0 {
			s.errMsg = "Select at least one number."
		} else {
			s.errMsg = err.Error()
		}
		return nil
	}
	next := quiz.New(s.deps, cfg)
	return func() tea.Msg { return router.ReplaceScreenMsg{Screen: next} }
}

func (s *Screen) current() field {
	return s.fields[s.focus]
}

func (s *Screen) syncFocus() {
	s.operands.Focus = s.current() == fieldOperands
}

// adjust moves the focused field by step. Operand toggles only move the
// cursor and ignore the size of the step.
func (s *Screen) adjust(step int) {
	switch s.current() {
	case fieldOperands:
		if step < 0 {
			s.operands.Left()
		} else {
			s.operands.Right()
		}
	case fieldRange:
		i := rangeIndex(s.cfg.DividendRange)
		if step < 0 && i > 0 {
			i--
		} else if step > 0 && i < len(rangeChoices)-1 {
			i++
		}
		s.cfg.DividendRange = rangeChoices[i]
	case fieldCount:
		s.cfg.QuestionCount = session.ClampQuestionCount(s.cfg.QuestionCount + step)
	case fieldTimer:
		s.cfg.TimerSeconds = session.ClampTimerSeconds(s.cfg.TimerSeconds + step)
	}
}

func rangeIndex(r problemgen.DividendRange) int {
	for i, c := range rangeChoices {
		if c == r {
			return i
		}
	}
	return 0
}

func digit(k tea.KeyPressMsg) (int, bool) {
	str := k.String()
	if len(str) != 1 || str[0] < '1' || str[0] > '9' {
		return 0, false
	}
	return int(str[0] - '0'), true
}

func (s *Screen) View(width, height int) string {
	var rows []string
	for i, f := range s.fields {
		rows = append(rows, s.renderField(f, i == s.focus))
	}

	avail := lipgloss.NewStyle().Foreground(theme.TextDim).
		Render(fmt.Sprintf("Available problems: %d", s.Available()))
	rows = append(rows, "", avail)

	if s.errMsg != "" {
		rows = append(rows, "", theme.Incorrect.Render(s.errMsg))
	}

	form := theme.Card.Render(strings.Join(rows, "\n"))

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Width(width).Align(lipgloss.Center).
		Render(theme.ModeColor(s.cfg.Mode).Render(s.cfg.Mode.Label())))
	b.WriteString("\n\n")
	b.WriteString(layout.Center(width, form))
	b.WriteString("\n\n")
	b.WriteString(layout.Center(width, s.help.View(s.keys)))
	return b.String()
}

func (s *Screen) renderField(f field, focused bool) string {
	label := map[field]string{
		fieldOperands: "Numbers",
		fieldRange:    "Difficulty",
		fieldCount:    "Questions",
		fieldTimer:    "Seconds per question",
	}[f]

	labelStyle := theme.Unselected
	marker := "  "
	if focused {
		labelStyle = theme.Selected
		marker = theme.Selected.Render("▸ ")
	}

	var value string
	switch f {
	case fieldOperands:
		value = s.operands.View()
	case fieldRange:
		value = s.renderRange()
	case fieldCount:
		value = fmt.Sprintf("◂ %d ▸", s.cfg.QuestionCount)
	case fieldTimer:
		value = fmt.Sprintf("◂ %d ▸", s.cfg.TimerSeconds)
	}
	return marker + labelStyle.Width(22).Render(label) + value
}

func (s *Screen) renderRange() string {
	names := problemgen.RangeNames()
	parts := make([]string, len(rangeChoices))
	for i, r := range rangeChoices {
		text := fmt.Sprintf("%s (%s)", names[i], r)
		if r == s.cfg.DividendRange {
			parts[i] = theme.ToggleOn.Render(text)
		} else {
			parts[i] = theme.ToggleOff.Render(text)
		}
	}
	return strings.Join(parts, " ")
}
