package insight

import (
	"context"
	"strings"

	"github.com/garrettladley/moodly/internal/mood"
)

var (
	stressWords   = []string{"stress", "worried", "anxious", "overwhelmed"}
	positiveWords = []string{"happy", "good", "great", "excited", "grateful"}

	defaultEncouragement = "Remember that tracking your mood is a valuable step in understanding yourself better"
)

// Rules is the offline Generator. It never fails.
type Rules struct{}

var _ Generator = Rules{}

func (Rules) Generate(_ context.Context, scores mood.Scores) (string, error) {
	return Compose(scores), nil
}

// Compose builds an insight from fixed thresholds: at most two observations,
// the first suggestion and the first encouragement.
func Compose(s mood.Scores) string {
	var (
		observations  []string
		suggestions   []string
		encouragement []string
	)

	switch {
	case s.Mood >= 8:
		observations = append(observations, "You're experiencing a positive mood today")
		encouragement = append(encouragement, "Keep nurturing this positive energy!")
	case s.Mood >= 6:
		observations = append(observations, "Your mood is in a stable, balanced range")
		suggestions = append(suggestions, "Consider what's working well for you and try to maintain these positive habits")
	case s.Mood >= 4:
		observations = append(observations, "Your mood seems a bit low today")
		suggestions = append(suggestions, "Try gentle activities like a short walk, listening to music, or connecting with a friend")
	default:
		observations = append(observations, "You're going through a challenging time")
		suggestions = append(suggestions, "Be gentle with yourself and consider reaching out for support if needed")
	}

	switch {
	case s.Energy <= 3:
		suggestions = append(suggestions, "Low energy detected - prioritize rest and gentle self-care activities")
	case s.Energy >= 8:
		observations = append(observations, "Your energy levels are high")
	}

	switch {
	case s.Anxiety >= 7:
		suggestions = append(suggestions, "High anxiety noted - try deep breathing exercises or mindfulness techniques")
	case s.Anxiety <= 3:
		observations = append(observations, "Your anxiety levels appear manageable today")
	}

	// zero means not reported
	switch {
	case s.SleepHours > 0 && s.SleepHours < 6:
		suggestions = append(suggestions, "Short sleep can impact mood - consider establishing a calming bedtime routine")
	case s.SleepHours >= 8:
		observations = append(observations, "Being well rested is supporting your overall well-being")
	}

	notes := strings.ToLower(s.Notes)
	switch {
	case containsAny(notes, stressWords):
		suggestions = append(suggestions, "Consider breaking down overwhelming tasks into smaller, manageable steps")
	case containsAny(notes, positiveWords):
		encouragement = append(encouragement, "It's wonderful to see positive moments in your day!")
	}

	if len(encouragement) == 0 {
		encouragement = append(encouragement, defaultEncouragement)
	}

	var b strings.Builder
	b.WriteString(strings.Join(observations[:min(2, len(observations))], ". "))
	if len(suggestions) > 0 {
		b.WriteString(". ")
		b.WriteString(suggestions[0])
	}
	b.WriteString(". ")
	b.WriteString(encouragement[0])
	if !strings.HasSuffix(encouragement[0], "!") {
		b.WriteString(".")
	}
	return b.String()
}

func containsAny(s string, words []string) bool {
	if s == "" {
		return false
	}
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}
