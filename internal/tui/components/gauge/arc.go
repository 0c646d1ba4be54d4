package gauge

import (
	"math"

	drawille "github.com/exrook/drawille-go"
)

// ring thickness in braille dots
const thickness = 4

// drawArc sets the dots of a ring band whose angle lies within the first
// fraction of a clockwise sweep that starts at 12 o'clock.
//
// Each circle of the band is traced with the midpoint circle algorithm so
// neighbouring radii leave no gaps:
// https://en.wikipedia.org/wiki/Midpoint_circle_algorithm
func drawArc(canvas *drawille.Canvas, cx, cy, radius int, fraction float64) {
	if fraction <= 0 {
		return
	}
	sweep := min(fraction, 1) * 360

	for r := radius; r > radius-thickness && r > 0; r-- {
		x, y, d := r, 0, 1-r
		for x >= y {
			// one octant, mirrored into the other seven
			octants := [8][2]int{
				{x, -y}, {y, -x}, {-y, -x}, {-x, -y},
				{-x, y}, {-y, x}, {y, x}, {x, y},
			}
			for _, p := range octants {
				if inSweep(p[0], p[1], sweep) {
					canvas.Set(cx+p[0], cy+p[1])
				}
			}

			y++
			if d < 0 {
				d += 2*y + 1
			} else {
				x--
				d += 2*(y-x) + 1
			}
		}
	}
}

// inSweep reports whether the offset (dx, dy) from the centre falls within
// sweep degrees clockwise of 12 o'clock. Screen y grows downward.
func inSweep(dx, dy int, sweep float64) bool {
	if sweep >= 360 {
		return true
	}
	// atan2 measures from 3 o'clock; shift so 12 o'clock is zero
	deg := math.Atan2(float64(dy), float64(dx)) * 180 / math.Pi
	deg = math.Mod(deg+450, 360)
	return deg <= sweep
}
