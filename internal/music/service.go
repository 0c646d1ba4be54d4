package music

import (
	"context"
	"errors"

	"github.com/garrettladley/moodly/internal/xslog"
	"golang.org/x/sync/errgroup"
)

const DefaultLimit = 5

var errNoPlaylists = errors.New("provider returned no playlists")

type Service struct {
	primary  Provider
	fallback Provider
	limit    int
}

// NewService builds recommendations from primary with fallback behind it.
// primary may be nil when no streaming provider is configured.
func NewService(primary Provider, fallback Provider) *Service {
	return &Service{primary: primary, fallback: fallback, limit: DefaultLimit}
}

// Recommend queries both providers concurrently. A primary failure is logged
// and the fallback playlists are promoted; it is never returned to the caller.
func (s *Service) Recommend(ctx context.Context, req Request) (Recommendations, error) {
	category := Categorize(req.Mood, req.Energy, req.Anxiety)

	var (
		primary, fallback []Playlist
		primaryErr        error
	)

	g, gctx := errgroup.WithContext(ctx)
	if s.primary != nil {
		g.Go(func() error {
			primary, primaryErr = s.primary.Playlists(gctx, category, s.limit)
			if primaryErr == nil && len(primary) == 0 {
				primaryErr = errNoPlaylists
			}
			return nil
		})
	}
	g.Go(func() error {
		var err error
		fallback, err = s.fallback.Playlists(gctx, category, s.limit)
		return err
	})
	if err := g.Wait(); err != nil {
		return Recommendations{}, err
	}

	fallbackSection := s.section(s.fallback.Source(), category, req.Mood, fallback)

	if s.primary == nil {
		return Recommendations{Primary: fallbackSection}, nil
	}
	if primaryErr != nil {
		xslog.FromContext(ctx).WarnContext(ctx, "music provider failed, using curated playlists",
			xslog.Source(string(s.primary.Source())),
			xslog.MoodCategory(string(category)),
			xslog.Error(primaryErr),
		)
		return Recommendations{Primary: fallbackSection}, nil
	}

	return Recommendations{
		Primary:  s.section(s.primary.Source(), category, req.Mood, primary),
		Fallback: &fallbackSection,
		Hybrid:   true,
	}, nil
}

func (s *Service) section(source Source, category Category, moodScore int, playlists []Playlist) Section {
	return Section{
		MoodCategory: category,
		MoodScore:    moodScore,
		Playlists:    playlists,
		Source:       source,
		Message:      category.Message(),
	}
}
