package theme

import (
	"image/color"

	"charm.land/lipgloss/v2"

	"github.com/garrettladley/moodly/internal/breathing"
)

type Theme struct {
	background color.Color
	foreground color.Color
	base       lipgloss.Style
}

func New() Theme {
	var t Theme

	t.background = ColorBgDark
	t.foreground = ColorWhite
	t.base = lipgloss.NewStyle().Foreground(t.foreground)

	return t
}

func (t Theme) Base() lipgloss.Style {
	return t.base
}

func (t Theme) Title() lipgloss.Style {
	return t.base.Bold(true)
}

func (t Theme) Muted() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(ColorDim)
}

func (t Theme) Background() color.Color {
	return t.background
}

func (t Theme) Foreground() color.Color {
	return t.foreground
}

// Phase returns the accent for a breathing phase. A paused, unfinished
// exercise is drawn in a neutral grey.
func (t Theme) Phase(st breathing.State) color.Color {
	switch {
	case st.Completed():
		return ColorCompleted
	case !st.Running:
		return ColorPaused
	}

	switch st.Phase {
	case breathing.PhaseHold:
		return ColorHold
	case breathing.PhaseExhale:
		return ColorExhale
	default:
		return ColorInhale
	}
}
