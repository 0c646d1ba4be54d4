package music

import (
	"context"
	_ "embed"
	"fmt"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed curated.yaml
var curatedYAML []byte

// Curated serves the built-in playlists. It never fails for a known category.
type Curated struct {
	playlists map[Category][]Playlist
}

var _ Provider = (*Curated)(nil)

var (
	defaultCurated     *Curated
	defaultCuratedOnce sync.Once
)

// DefaultCurated returns the embedded playlists. It panics if they do not parse.
func DefaultCurated() *Curated {
	defaultCuratedOnce.Do(func() {
		c, err := ParseCurated(curatedYAML)
		if err != nil {
			panic(fmt.Sprintf("music: embedded playlists: %v", err))
		}
		defaultCurated = c
	})
	return defaultCurated
}

func ParseCurated(data []byte) (*Curated, error) {
	var raw map[Category][]Playlist
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing playlists: %w", err)
	}

	for _, c := range []Category{CategoryCalm, CategoryEnergetic, CategoryHappy, CategoryUplifting, CategoryChill, CategoryFocus} {
		if len(raw[c]) == 0 {
			return nil, fmt.Errorf("no playlists for category %q", c)
		}
	}
	return &Curated{playlists: raw}, nil
}

func (*Curated) Source() Source {
	return SourceFallback
}

func (c *Curated) Playlists(_ context.Context, category Category, limit int) ([]Playlist, error) {
	pls, ok := c.playlists[category]
	if !ok {
		pls = c.playlists[CategoryFocus]
	}
	if limit > 0 && len(pls) > limit {
		pls = pls[:limit]
	}
	out := make([]Playlist, len(pls))
	copy(out, pls)
	return out, nil
}
