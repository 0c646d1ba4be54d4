package gauge

import (
	"math"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestInSweep(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		dx, dy int
		sweep  float64
		want   bool
	}{
		{"top starts the sweep", 0, -10, 1, true},
		{"right is a quarter turn", 10, 0, 90, true},
		{"right just outside", 10, 0, 89, false},
		{"bottom is half way", 0, 10, 180, true},
		{"bottom before half way", 0, 10, 179, false},
		{"left at three quarters", -10, 0, 270, true},
		{"left just outside", -10, 0, 269, false},
		{"full sweep covers everything", -1, -10, 360, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := inSweep(tt.dx, tt.dy, tt.sweep); got != tt.want {
				t.Errorf("inSweep(%d, %d, %v) = %v, want %v", tt.dx, tt.dy, tt.sweep, got, tt.want)
			}
		})
	}
}

func TestMerge(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		t, f rune
		want cell
	}{
		{"both empty", ' ', ' ', cell{r: ' ', k: blank}},
		{"empty braille counts as blank", emptyBraille, emptyBraille, cell{r: ' ', k: blank}},
		{"track only", '⠁', ' ', cell{r: '⠁', k: track}},
		{"fill only", ' ', '⠂', cell{r: '⠂', k: fill}},
		{"dots combine", '⠁', '⠂', cell{r: '⠃', k: fill}},
		{"fill over empty braille track", emptyBraille, '⣿', cell{r: '⣿', k: fill}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := merge(tt.t, tt.f)
			if got != tt.want {
				t.Errorf("merge(%q, %q) = {%q %d}, want {%q %d}", tt.t, tt.f, got.r, got.k, tt.want.r, tt.want.k)
			}
		})
	}
}

func countKinds(grid [][]cell) map[kind]int {
	counts := map[kind]int{}
	for _, row := range grid {
		for _, c := range row {
			counts[c.k]++
		}
	}
	return counts
}

func TestRingFill(t *testing.T) {
	t.Parallel()

	empty := countKinds(New(0, "", "", nil).grid())
	if empty[fill] != 0 {
		t.Errorf("empty ring has %d filled cells", empty[fill])
	}
	if empty[track] == 0 {
		t.Error("empty ring has no track")
	}

	full := countKinds(New(1, "", "", nil).grid())
	if full[track] != 0 {
		t.Errorf("full ring has %d unfilled track cells", full[track])
	}
	if full[fill] != empty[track] {
		t.Errorf("full ring fills %d cells, track has %d", full[fill], empty[track])
	}

	half := countKinds(New(0.5, "", "", nil).grid())
	if half[fill] == 0 || half[track] == 0 {
		t.Errorf("half ring = %v, want both filled and track cells", half)
	}
}

func TestRingClampsFraction(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   float64
		want float64
	}{
		{-0.5, 0},
		{0.25, 0.25},
		{3, 1},
		{math.NaN(), 0},
	}
	for _, tt := range tests {
		if got := (Ring{Fraction: tt.in}).fraction(); got != tt.want {
			t.Errorf("fraction(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestRingPlain(t *testing.T) {
	t.Parallel()

	out := New(0.3, "7s", "INHALE", nil).Plain()
	lines := strings.Split(out, "\n")

	if len(lines) != rows+1 {
		t.Fatalf("Plain() has %d lines, want %d", len(lines), rows+1)
	}
	for i, line := range lines {
		if n := len([]rune(line)); n != cols {
			t.Errorf("line %d is %d runes wide, want %d", i, n, cols)
		}
	}
	if !strings.Contains(lines[rows/2], "7s") {
		t.Errorf("middle line %q does not contain the centre text", lines[rows/2])
	}
	if got := strings.TrimSpace(lines[rows]); got != "INHALE" {
		t.Errorf("label line = %q, want INHALE", got)
	}
}

func TestStampTruncates(t *testing.T) {
	t.Parallel()

	grid := make([][]cell, 3)
	for i := range grid {
		grid[i] = make([]cell, cols)
	}
	stamp(grid, strings.Repeat("x", cols+5))

	var got strings.Builder
	for _, c := range grid[1] {
		got.WriteRune(c.r)
	}
	if diff := cmp.Diff(strings.Repeat("x", cols), got.String()); diff != "" {
		t.Errorf("stamp mismatch (-want +got):\n%s", diff)
	}
}

func TestCenterText(t *testing.T) {
	t.Parallel()

	tests := []struct {
		s     string
		width int
		want  string
	}{
		{"ab", 6, "  ab  "},
		{"abc", 6, " abc  "},
		{"toolong", 4, "toolong"},
	}
	for _, tt := range tests {
		if got := centerText(tt.s, tt.width); got != tt.want {
			t.Errorf("centerText(%q, %d) = %q, want %q", tt.s, tt.width, got, tt.want)
		}
	}
}
