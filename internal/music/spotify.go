package music

import (
	"context"
	"fmt"

	"github.com/garrettladley/moodly/internal/client/spotify"
)

// Spotify adapts the Spotify search API to Provider.
type Spotify struct {
	client *spotify.Client
}

var _ Provider = (*Spotify)(nil)

func NewSpotify(client *spotify.Client) *Spotify {
	return &Spotify{client: client}
}

func (*Spotify) Source() Source {
	return SourceSpotify
}

func (s *Spotify) Playlists(ctx context.Context, category Category, limit int) ([]Playlist, error) {
	found, err := s.client.SearchPlaylists(ctx, category.Query(), limit)
	if err != nil {
		return nil, fmt.Errorf("searching spotify playlists: %w", err)
	}

	out := make([]Playlist, 0, len(found))
	for _, p := range found {
		out = append(out, Playlist{
			Name:        p.Name,
			Description: p.Description,
			SpotifyURL:  p.URL(),
			Image:       p.ImageURL(),
			TracksTotal: p.Tracks.Total,
		})
	}
	return out, nil
}
