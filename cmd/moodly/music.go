package main

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/garrettladley/moodly/internal/music"
)

func musicCmd() *cobra.Command {
	var req music.Request

	cmd := &cobra.Command{
		Use:   "music",
		Short: "Get playlists that fit your mood",
		RunE: withApp(func(ctx context.Context, a *app, _ []string) error {
			if fields := req.Validate(); len(fields) > 0 {
				return fieldsError(fields)
			}

			recs, err := a.anonClient().Music.Recommendations(ctx, req)
			if err != nil {
				return err
			}

			printSection(a.out, recs.Primary)
			if recs.Fallback != nil {
				_, _ = fmt.Fprintln(a.out)
				printSection(a.out, *recs.Fallback)
			}
			return nil
		}),
	}

	cmd.Flags().IntVarP(&req.Mood, "mood", "m", 5, "mood score 1-10")
	cmd.Flags().IntVarP(&req.Energy, "energy", "e", 5, "energy level 1-10")
	cmd.Flags().IntVarP(&req.Anxiety, "anxiety", "a", 5, "anxiety level 1-10")

	return cmd
}

func printSection(w io.Writer, s music.Section) {
	_, _ = fmt.Fprintln(w, headerStyle.Render(fmt.Sprintf("%s playlists (%s)", s.MoodCategory, s.Source)))
	if s.Message != "" {
		_, _ = fmt.Fprintln(w, mutedStyle.Render(s.Message))
	}
	for _, p := range s.Playlists {
		_, _ = fmt.Fprintf(w, "  • %s", p.Name)
		if p.Description != "" {
			_, _ = fmt.Fprintf(w, " - %s", p.Description)
		}
		_, _ = fmt.Fprintln(w)
		if p.SpotifyURL != "" {
			_, _ = fmt.Fprintf(w, "    %s\n", p.SpotifyURL)
		}
	}
}
