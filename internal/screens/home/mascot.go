package home

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/mathdrill/internal/ui/theme"
)

// Mood selects the mascot drawing.
type Mood int

const (
	MoodIdle   Mood = iota
	MoodProud       // last session was perfect
	MoodWorried     // mistakes are piling up
)

// worriedThreshold is the mistake count at which the mascot starts to worry.
const worriedThreshold = 5

const mascotIdle = `╭─────╮
│ • • │
│  ‿  │
│ × ÷ │
╰─────╯`

const mascotProud = `╭─────╮
│ ^ ^ │
│  ◡  │
│ × ÷ │
╰─────╯
  ★ ★`

const mascotWorried = `╭─────╮
│ • • │ ?
│  ~  │
│ × ÷ │
╰─────╯`

// moodFor picks the mascot mood from the home stats.
func moodFor(mistakes int, lastPerfect bool) Mood {
	switch {
	case mistakes >= worriedThreshold:
		return MoodWorried
	case lastPerfect:
		return MoodProud
	}
	return MoodIdle
}

// renderMascot returns the mascot art for mood.
func renderMascot(mood Mood) string {
	art, fg := mascotIdle, theme.Primary
	switch mood {
	case MoodProud:
		art, fg = mascotProud, theme.Success
	case MoodWorried:
		art, fg = mascotWorried, theme.Accent
	}
	return lipgloss.NewStyle().Foreground(fg).Render(art)
}
