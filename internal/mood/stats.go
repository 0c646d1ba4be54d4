package mood

import (
	"math"
	"slices"
	"time"
)

type Trend string

const (
	TrendImproving Trend = "improving"
	TrendDeclining Trend = "declining"
	TrendStable    Trend = "stable"
)

const (
	trendWindow    = 7
	trendThreshold = 0.5
)

type Stats struct {
	AverageMood   float64 `json:"average_mood"`
	TotalEntries  int     `json:"total_entries"`
	CurrentStreak int     `json:"current_streak"`
	Trend         Trend   `json:"trend"`
}

// ComputeStats derives Stats from entries in any order. now anchors the streak:
// a streak only counts if the newest entry was made today or yesterday (UTC).
func ComputeStats(entries []Entry, now time.Time) Stats {
	if len(entries) == 0 {
		return Stats{Trend: TrendStable}
	}

	sorted := slices.Clone(entries)
	slices.SortStableFunc(sorted, func(a, b Entry) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})

	return Stats{
		AverageMood:   round1(meanMood(sorted)),
		TotalEntries:  len(sorted),
		CurrentStreak: streak(sorted, now),
		Trend:         trend(sorted),
	}
}

// trend compares the newest window with the one before it. newestFirst must be
// sorted newest first.
func trend(newestFirst []Entry) Trend {
	recent := newestFirst[:min(trendWindow, len(newestFirst))]
	prior := newestFirst[len(recent):min(2*trendWindow, len(newestFirst))]
	if len(prior) == 0 {
		return TrendStable
	}

	delta := meanMood(recent) - meanMood(prior)
	switch {
	case delta > trendThreshold:
		return TrendImproving
	case delta < -trendThreshold:
		return TrendDeclining
	default:
		return TrendStable
	}
}

func streak(newestFirst []Entry, now time.Time) int {
	today := day(now)
	newest := day(newestFirst[0].CreatedAt)
	if newest.Before(today.AddDate(0, 0, -1)) {
		return 0
	}

	count := 0
	expect := newest
	for _, e := range newestFirst {
		d := day(e.CreatedAt)
		switch {
		case d.Equal(expect):
			count++
			expect = expect.AddDate(0, 0, -1)
		case d.After(expect):
			// another entry on a day already counted
		default:
			return count
		}
	}
	return count
}

func meanMood(entries []Entry) float64 {
	if len(entries) == 0 {
		return 0
	}
	var sum int
	for _, e := range entries {
		sum += e.Mood
	}
	return float64(sum) / float64(len(entries))
}

func day(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
