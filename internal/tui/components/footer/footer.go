package footer

import (
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/garrettladley/moodly/internal/tui/theme"
)

var hintStyle = lipgloss.NewStyle().Foreground(theme.ColorDim)

// Footer is a single bottom line: build info on the left, hints on the right.
type Footer struct {
	hints   []string
	width   int
	padding int
}

func New(width int, hints ...string) Footer {
	return Footer{
		hints:   hints,
		width:   width,
		padding: 2,
	}
}

func (f Footer) Render() string {
	left := f.leftContent()
	right := hintStyle.Render(strings.Join(f.hints, "  "))

	gap := max(f.width-lipgloss.Width(left)-lipgloss.Width(right)-(f.padding*2), 1)

	return lipgloss.NewStyle().
		PaddingLeft(f.padding).
		PaddingRight(f.padding).
		Render(left + strings.Repeat(" ", gap) + right)
}
