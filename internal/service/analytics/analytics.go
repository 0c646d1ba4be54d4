package analytics

import (
	"context"
	"fmt"
	"math"
	"slices"
	"time"

	"github.com/garrettladley/moodly/internal/mood"
	"github.com/garrettladley/moodly/internal/repository"
	"golang.org/x/sync/errgroup"
)

const (
	DefaultDays = 30
	MaxDays     = 365
)

type Averages struct {
	Mood    float64 `json:"mood"`
	Energy  float64 `json:"energy"`
	Anxiety float64 `json:"anxiety"`
	// Sleep only counts entries that reported sleep.
	Sleep float64 `json:"sleep"`
}

type DailyMood struct {
	Date        string  `json:"date"`
	AverageMood float64 `json:"average_mood"`
	Entries     int     `json:"entries"`
}

type Report struct {
	Days           int                   `json:"days"`
	TotalEntries   int                   `json:"total_entries"`
	Averages       Averages              `json:"averages"`
	DailyMood      []DailyMood           `json:"daily_mood"`
	JournalEntries int                   `json:"journal_entries"`
	Goals          repository.GoalCounts `json:"goals"`
	Stats          mood.Stats            `json:"stats"`
}

// ClampDays maps a requested window onto [1, MaxDays], defaulting to DefaultDays.
func ClampDays(days int) int {
	switch {
	case days <= 0:
		return DefaultDays
	case days > MaxDays:
		return MaxDays
	default:
		return days
	}
}

type Service interface {
	Report(ctx context.Context, userID int64, days int) (*Report, error)
}

type Analytics struct {
	repo *repository.Repository
	now  func() time.Time
}

var _ Service = (*Analytics)(nil)

type Option func(*Analytics)

func WithClock(now func() time.Time) Option {
	return func(a *Analytics) { a.now = now }
}

func New(repo *repository.Repository, opts ...Option) *Analytics {
	a := &Analytics{repo: repo, now: time.Now}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Report covers the last days calendar days (UTC) including today.
func (a *Analytics) Report(ctx context.Context, userID int64, days int) (*Report, error) {
	days = ClampDays(days)
	now := a.now().UTC()
	since := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC).AddDate(0, 0, -(days - 1))

	var (
		window  []mood.Entry
		all     []mood.Entry
		journal int
		goals   repository.GoalCounts
	)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		window, err = a.repo.Moods.ListSince(ctx, userID, since)
		if err != nil {
			return fmt.Errorf("loading mood window: %w", err)
		}
		return nil
	})
	g.Go(func() (err error) {
		all, err = a.repo.Moods.All(ctx, userID)
		if err != nil {
			return fmt.Errorf("loading mood history: %w", err)
		}
		return nil
	})
	g.Go(func() (err error) {
		journal, err = a.repo.Journal.CountSince(ctx, userID, since)
		if err != nil {
			return fmt.Errorf("counting journal entries: %w", err)
		}
		return nil
	})
	g.Go(func() (err error) {
		goals, err = a.repo.Goals.Counts(ctx, userID)
		if err != nil {
			return fmt.Errorf("counting goals: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &Report{
		Days:           days,
		TotalEntries:   len(window),
		Averages:       averages(window),
		DailyMood:      daily(window),
		JournalEntries: journal,
		Goals:          goals,
		Stats:          mood.ComputeStats(all, now),
	}, nil
}

func averages(entries []mood.Entry) Averages {
	if len(entries) == 0 {
		return Averages{}
	}

	var (
		moodSum, energySum, anxietySum int
		sleepSum                       float64
		sleepCount                     int
	)
	for _, e := range entries {
		moodSum += e.Mood
		energySum += e.Energy
		anxietySum += e.Anxiety
		if e.SleepHours > 0 {
			sleepSum += e.SleepHours
			sleepCount++
		}
	}

	n := float64(len(entries))
	avg := Averages{
		Mood:    round1(float64(moodSum) / n),
		Energy:  round1(float64(energySum) / n),
		Anxiety: round1(float64(anxietySum) / n),
	}
	if sleepCount > 0 {
		avg.Sleep = round1(sleepSum / float64(sleepCount))
	}
	return avg
}

// daily buckets entries by UTC date, oldest day first. Days without entries are omitted.
func daily(entries []mood.Entry) []DailyMood {
	type bucket struct{ sum, count int }

	buckets := make(map[string]*bucket)
	var order []string
	for _, e := range entries {
		key := e.CreatedAt.UTC().Format(time.DateOnly)
		b, ok := buckets[key]
		if !ok {
			b = &bucket{}
			buckets[key] = b
			order = append(order, key)
		}
		b.sum += e.Mood
		b.count++
	}

	// DateOnly keys sort chronologically as strings.
	slices.Sort(order)

	series := make([]DailyMood, 0, len(order))
	for _, key := range order {
		b := buckets[key]
		series = append(series, DailyMood{
			Date:        key,
			AverageMood: round1(float64(b.sum) / float64(b.count)),
			Entries:     b.count,
		})
	}
	return series
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
