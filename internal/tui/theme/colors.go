package theme

import "charm.land/lipgloss/v2"

var (
	ColorBlack = lipgloss.Color("#000000")
	ColorWhite = lipgloss.Color("#FFFFFF")
	ColorDim   = lipgloss.Color("#666666")
)

var (
	ColorInhale    = lipgloss.Color("#5EC8F2") // filling the lungs
	ColorHold      = lipgloss.Color("#B69CF6") // holding the breath
	ColorExhale    = lipgloss.Color("#4FD1A5") // letting go
	ColorCompleted = lipgloss.Color("#F6C177")
	ColorPaused    = lipgloss.Color("#8A8F98")
	ColorError     = lipgloss.Color("#FF5F6D")
)

var (
	ColorBgDark  = lipgloss.Color("#10141C")
	ColorBgLight = lipgloss.Color("#283040") // unfilled gauge track
)
