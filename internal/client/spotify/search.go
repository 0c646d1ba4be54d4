package spotify

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
)

type Image struct {
	URL string `json:"url"`
}

type Playlist struct {
	ID           string            `json:"id"`
	Name         string            `json:"name"`
	Description  string            `json:"description"`
	ExternalURLs map[string]string `json:"external_urls"`
	Images       []Image           `json:"images"`
	Tracks       struct {
		Total int `json:"total"`
	} `json:"tracks"`
}

func (p Playlist) URL() string {
	return p.ExternalURLs["spotify"]
}

// ImageURL returns the first (largest) cover image, if any.
func (p Playlist) ImageURL() string {
	if len(p.Images) == 0 {
		return ""
	}
	return p.Images[0].URL
}

type searchResponse struct {
	Playlists struct {
		// the search endpoint can return null items
		Items []*Playlist `json:"items"`
	} `json:"playlists"`
}

// SearchPlaylists runs a playlist search and returns up to limit results.
func (c *Client) SearchPlaylists(ctx context.Context, query string, limit int) ([]Playlist, error) {
	v := url.Values{}
	v.Set("q", query)
	v.Set("type", "playlist")
	if limit > 0 {
		v.Set("limit", strconv.Itoa(limit))
	}

	var resp searchResponse
	if err := c.do(ctx, http.MethodGet, "/search", v, &resp); err != nil {
		return nil, err
	}

	playlists := make([]Playlist, 0, len(resp.Playlists.Items))
	for _, p := range resp.Playlists.Items {
		if p == nil || p.Name == "" {
			continue
		}
		playlists = append(playlists, *p)
	}
	return playlists, nil
}
