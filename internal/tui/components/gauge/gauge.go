// Package gauge draws a braille progress ring with a value in its centre.
package gauge

import (
	"image/color"
	"math"
	"strings"

	"charm.land/lipgloss/v2"
	drawille "github.com/exrook/drawille-go"

	"github.com/garrettladley/moodly/internal/tui/theme"
)

const (
	// braille cells are 2 dots wide and 4 dots tall
	dotsWide = 44 // 22 columns
	dotsHigh = 44 // 11 rows

	cols = dotsWide / 2
	rows = dotsHigh / 4
)

const emptyBraille rune = '\u2800'

// Ring is a circular gauge. Fraction is clamped to [0, 1].
type Ring struct {
	Fraction  float64
	Center    string
	Label     string
	Color     color.Color // filled arc
	Track     color.Color // unfilled arc
	TextColor color.Color
}

type Option func(*Ring)

func WithTextColor(c color.Color) Option {
	return func(r *Ring) { r.TextColor = c }
}

func New(fraction float64, center string, label string, c color.Color, opts ...Option) Ring {
	r := Ring{
		Fraction:  fraction,
		Center:    center,
		Label:     label,
		Color:     c,
		Track:     theme.ColorBgLight,
		TextColor: theme.ColorWhite,
	}
	for _, opt := range opts {
		opt(&r)
	}
	return r
}

// Render draws the ring with colours followed by the label line.
func (r Ring) Render() string {
	styles := map[kind]lipgloss.Style{
		track: lipgloss.NewStyle().Foreground(r.Track),
		fill:  lipgloss.NewStyle().Foreground(r.Color),
		text:  lipgloss.NewStyle().Foreground(r.TextColor).Bold(true),
	}
	label := lipgloss.NewStyle().Foreground(r.TextColor).Bold(true)
	return r.render(styles, label)
}

// Plain draws the ring without any styling.
func (r Ring) Plain() string {
	return r.render(nil, lipgloss.NewStyle())
}

func (r Ring) render(styles map[kind]lipgloss.Style, labelStyle lipgloss.Style) string {
	grid := r.grid()
	lines := make([]string, 0, len(grid)+1)

	for _, row := range grid {
		var b strings.Builder
		// consecutive cells of one kind share a style run
		for start := 0; start < len(row); {
			end := start
			var run strings.Builder
			for end < len(row) && row[end].k == row[start].k {
				run.WriteRune(row[end].r)
				end++
			}
			if style, ok := styles[row[start].k]; ok {
				b.WriteString(style.Render(run.String()))
			} else {
				b.WriteString(run.String())
			}
			start = end
		}
		lines = append(lines, b.String())
	}

	if r.Label != "" {
		lines = append(lines, labelStyle.Render(centerText(r.Label, cols)))
	}
	return strings.Join(lines, "\n")
}

type kind uint8

const (
	blank kind = iota
	track
	fill
	text
)

type cell struct {
	r rune
	k kind
}

func (r Ring) fraction() float64 {
	if math.IsNaN(r.Fraction) {
		return 0
	}
	return min(max(r.Fraction, 0), 1)
}

func (r Ring) grid() [][]cell {
	trackRows := plot(1)
	fillRows := plot(r.fraction())

	grid := make([][]cell, rows)
	for y := range rows {
		t := rowRunes(trackRows, y)
		f := rowRunes(fillRows, y)
		grid[y] = make([]cell, cols)
		for x := range cols {
			grid[y][x] = merge(t[x], f[x])
		}
	}

	stamp(grid, r.Center)
	return grid
}

func plot(fraction float64) []string {
	canvas := drawille.NewCanvas()
	drawArc(&canvas, dotsWide/2, dotsHigh/2, dotsWide/2-1, fraction)
	return canvas.Rows(0, 0, dotsWide, dotsHigh)
}

// rowRunes returns row y of a canvas padded or cut to exactly cols runes.
func rowRunes(canvasRows []string, y int) []rune {
	out := make([]rune, cols)
	for i := range out {
		out[i] = ' '
	}
	if y < len(canvasRows) {
		copy(out, []rune(canvasRows[y]))
	}
	return out
}

func hasDots(r rune) bool {
	return r > emptyBraille && r <= '\u28ff'
}

// merge overlays a filled-arc rune on a track rune. Braille dots are bit
// patterns above U+2800 so two cells combine with a bitwise or.
func merge(t, f rune) cell {
	switch {
	case hasDots(t) && hasDots(f):
		return cell{r: emptyBraille + ((t - emptyBraille) | (f - emptyBraille)), k: fill}
	case hasDots(f):
		return cell{r: f, k: fill}
	case hasDots(t):
		return cell{r: t, k: track}
	default:
		return cell{r: ' ', k: blank}
	}
}

// stamp writes s into the middle row, centred, over whatever is there.
func stamp(grid [][]cell, s string) {
	if s == "" || len(grid) == 0 {
		return
	}
	runes := []rune(s)
	if len(runes) > cols {
		runes = runes[:cols]
	}
	row := grid[len(grid)/2]
	start := (cols - len(runes)) / 2
	for i, r := range runes {
		row[start+i] = cell{r: r, k: text}
	}
}

func centerText(s string, width int) string {
	n := len([]rune(s))
	if n >= width {
		return s
	}
	left := (width - n) / 2
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", width-n-left)
}
