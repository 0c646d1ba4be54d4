package mood

import (
	"time"

	"github.com/garrettladley/moodly/internal/validator"
)

const (
	MinScore = 1
	MaxScore = 10

	MaxSleepHours = 24
)

// Entry is a single wellness check-in. Entries are immutable once recorded.
type Entry struct {
	ID         int64     `json:"id"`
	Mood       int       `json:"mood_score"`
	Energy     int       `json:"energy_level"`
	Anxiety    int       `json:"anxiety_level"`
	SleepHours float64   `json:"sleep_hours"`
	Notes      string    `json:"notes,omitempty"`
	Insight    string    `json:"ai_insight,omitempty"`
	CreatedAt  time.Time `json:"timestamp"`
}

// Scores are the user-submitted part of an Entry.
type Scores struct {
	Mood       int     `json:"mood_score"`
	Energy     int     `json:"energy_level"`
	Anxiety    int     `json:"anxiety_level"`
	SleepHours float64 `json:"sleep_hours"`
	Notes      string  `json:"notes,omitempty"`
}

var _ validator.Validator = Scores{}

func (s Scores) Validate() map[string]string {
	f := validator.Fields{}
	f.IntRange("mood_score", s.Mood, MinScore, MaxScore)
	f.IntRange("energy_level", s.Energy, MinScore, MaxScore)
	f.IntRange("anxiety_level", s.Anxiety, MinScore, MaxScore)
	f.FloatRange("sleep_hours", s.SleepHours, 0, MaxSleepHours)
	return f.Map()
}

func (s Scores) Entry(id int64, at time.Time) Entry {
	return Entry{
		ID:         id,
		Mood:       s.Mood,
		Energy:     s.Energy,
		Anxiety:    s.Anxiety,
		SleepHours: s.SleepHours,
		Notes:      s.Notes,
		CreatedAt:  at,
	}
}
