package music

import (
	"context"

	"github.com/garrettladley/moodly/internal/validator"
)

type Source string

const (
	SourceSpotify  Source = "spotify"
	SourceFallback Source = "fallback"
)

type Track struct {
	Title  string `json:"title" yaml:"title"`
	Artist string `json:"artist" yaml:"artist"`
}

type Playlist struct {
	Name        string  `json:"name" yaml:"name"`
	Description string  `json:"description" yaml:"description"`
	Tracks      []Track `json:"tracks,omitempty" yaml:"tracks"`
	SpotifyURL  string  `json:"spotify_url,omitempty" yaml:"-"`
	Image       string  `json:"image,omitempty" yaml:"-"`
	TracksTotal int     `json:"tracks_total,omitempty" yaml:"-"`
}

// Provider supplies playlists for a category.
type Provider interface {
	Source() Source
	Playlists(ctx context.Context, category Category, limit int) ([]Playlist, error)
}

type Section struct {
	MoodCategory Category   `json:"mood_category"`
	MoodScore    int        `json:"mood_score"`
	Playlists    []Playlist `json:"playlists"`
	Source       Source     `json:"source"`
	Message      string     `json:"message"`
}

type Recommendations struct {
	Primary  Section  `json:"primary"`
	Fallback *Section `json:"fallback,omitempty"`
	Hybrid   bool     `json:"hybrid"`
}

type Request struct {
	Mood    int `json:"mood_score"`
	Energy  int `json:"energy_level"`
	Anxiety int `json:"anxiety_level"`
}

var _ validator.Validator = Request{}

func (r Request) Validate() map[string]string {
	f := validator.Fields{}
	f.IntRange("mood_score", r.Mood, 1, 10)
	f.IntRange("energy_level", r.Energy, 1, 10)
	f.IntRange("anxiety_level", r.Anxiety, 1, 10)
	return f.Map()
}
