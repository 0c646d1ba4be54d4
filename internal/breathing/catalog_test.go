package breathing

import (
	"errors"
	"testing"
)

func TestDefaultCatalog(t *testing.T) {
	t.Parallel()

	c, err := DefaultCatalog()
	if err != nil {
		t.Fatalf("DefaultCatalog() error = %v", err)
	}

	tests := []struct {
		mood        string
		wantKey     string
		wantPattern string
	}{
		{mood: "stressed", wantKey: "stressed", wantPattern: "4-7-8"},
		{mood: "Anxious", wantKey: "anxious", wantPattern: "4-4-4"},
		{mood: "energetic", wantKey: "energetic", wantPattern: "4-2-4"},
		{mood: "sad", wantKey: "sad", wantPattern: "5-3-7"},
		{mood: " angry ", wantKey: "angry", wantPattern: "6-2-8"},
		{mood: "bored", wantKey: DefaultKey, wantPattern: "4-6"},
		{mood: "", wantKey: DefaultKey, wantPattern: "4-6"},
	}

	for _, tt := range tests {
		t.Run(tt.mood, func(t *testing.T) {
			t.Parallel()

			ex := c.ForMood(tt.mood)
			if ex.Key != tt.wantKey {
				t.Errorf("ForMood(%q).Key = %q, want %q", tt.mood, ex.Key, tt.wantKey)
			}
			if got := ex.Pattern(); got != tt.wantPattern {
				t.Errorf("ForMood(%q).Pattern() = %q, want %q", tt.mood, got, tt.wantPattern)
			}
		})
	}

	if got := len(c.All()); got != 6 {
		t.Errorf("len(All()) = %d, want 6", got)
	}
}

func TestCatalogNextWraps(t *testing.T) {
	t.Parallel()

	c, err := DefaultCatalog()
	if err != nil {
		t.Fatalf("DefaultCatalog() error = %v", err)
	}

	all := c.All()
	last := all[len(all)-1]
	if got := c.Next(last.Key).Key; got != all[0].Key {
		t.Errorf("Next(%q) = %q, want %q", last.Key, got, all[0].Key)
	}
	if got := c.Next(all[0].Key).Key; got != all[1].Key {
		t.Errorf("Next(%q) = %q, want %q", all[0].Key, got, all[1].Key)
	}
}

func TestParseCatalogErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		yaml string
	}{
		{
			name: "missing default",
			yaml: "exercises:\n  - {key: calm, inhale: 4, exhale: 4, cycles: 2}\n",
		},
		{
			name: "duplicate key",
			yaml: "exercises:\n  - {key: default, inhale: 4, exhale: 4, cycles: 2}\n  - {key: default, inhale: 4, exhale: 4, cycles: 2}\n",
		},
		{
			name: "invalid durations",
			yaml: "exercises:\n  - {key: default, inhale: 0, exhale: 4, cycles: 2}\n",
		},
		{
			name: "missing key",
			yaml: "exercises:\n  - {name: nameless, inhale: 4, exhale: 4, cycles: 2}\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := ParseCatalog([]byte(tt.yaml))
			if !errors.Is(err, ErrInvalidExercise) {
				t.Errorf("ParseCatalog() error = %v, want ErrInvalidExercise", err)
			}
		})
	}
}
