package main

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/garrettladley/moodly/internal/mood"
)

func moodCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mood",
		Short: "Log and review check-ins",
	}
	cmd.AddCommand(moodLogCmd(), moodListCmd(), moodStatsCmd())
	return cmd
}

func moodLogCmd() *cobra.Command {
	var scores mood.Scores

	cmd := &cobra.Command{
		Use:   "log",
		Short: "Record how you feel right now",
		RunE: withApp(func(ctx context.Context, a *app, _ []string) error {
			if fields := scores.Validate(); len(fields) > 0 {
				return fieldsError(fields)
			}

			client, err := a.authedClient()
			if err != nil {
				return err
			}
			entry, err := client.Moods.Log(ctx, scores)
			if err != nil {
				return a.checkAuth(err)
			}

			_, _ = fmt.Fprintf(a.out, "Logged mood %d/10 (energy %d, anxiety %d%s)\n",
				entry.Mood, entry.Energy, entry.Anxiety, sleepSuffix(entry.SleepHours))
			if entry.Insight != "" {
				_, _ = fmt.Fprintln(a.out)
				_, _ = fmt.Fprintln(a.out, entry.Insight)
			}
			return nil
		}),
	}

	cmd.Flags().IntVarP(&scores.Mood, "mood", "m", 0, "mood score 1-10")
	cmd.Flags().IntVarP(&scores.Energy, "energy", "e", 0, "energy level 1-10")
	cmd.Flags().IntVarP(&scores.Anxiety, "anxiety", "a", 0, "anxiety level 1-10")
	cmd.Flags().Float64VarP(&scores.SleepHours, "sleep", "s", 0, "hours slept last night (0 to skip)")
	cmd.Flags().StringVarP(&scores.Notes, "notes", "n", "", "free-form notes")
	_ = cmd.MarkFlagRequired("mood")
	_ = cmd.MarkFlagRequired("energy")
	_ = cmd.MarkFlagRequired("anxiety")

	return cmd
}

func moodListCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Show recent check-ins, newest first",
		RunE: withApp(func(ctx context.Context, a *app, _ []string) error {
			client, err := a.authedClient()
			if err != nil {
				return err
			}
			entries, err := client.Moods.List(ctx, limit)
			if err != nil {
				return a.checkAuth(err)
			}
			if len(entries) == 0 {
				_, _ = fmt.Fprintln(a.out, "No check-ins yet. Try `moodly mood log`.")
				return nil
			}

			rows := make([][]string, 0, len(entries))
			for _, e := range entries {
				rows = append(rows, []string{
					e.CreatedAt.Local().Format("2006-01-02 15:04"),
					strconv.Itoa(e.Mood),
					strconv.Itoa(e.Energy),
					strconv.Itoa(e.Anxiety),
					formatSleep(e.SleepHours),
					e.Notes,
				})
			}
			printTable(a.out, []string{"WHEN", "MOOD", "ENERGY", "ANXIETY", "SLEEP", "NOTES"}, rows)
			return nil
		}),
	}

	cmd.Flags().IntVarP(&limit, "limit", "l", 10, "number of entries to show")

	return cmd
}

func moodStatsCmd() *cobra.Command {
	var last int

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show average mood, streak and trend",
		RunE: withApp(func(ctx context.Context, a *app, _ []string) error {
			client, err := a.authedClient()
			if err != nil {
				return err
			}

			var stats *mood.Stats
			if last > 0 {
				entries, err := client.Moods.List(ctx, last)
				if err != nil {
					return a.checkAuth(err)
				}
				store := mood.NewMemoryStore()
				store.Import(entries...)
				local := store.Stats()
				stats = &local
			} else {
				stats, err = client.Moods.Stats(ctx)
				if err != nil {
					return a.checkAuth(err)
				}
			}

			printTable(a.out, []string{"AVERAGE", "ENTRIES", "STREAK", "TREND"}, [][]string{{
				strconv.FormatFloat(stats.AverageMood, 'f', 1, 64),
				strconv.Itoa(stats.TotalEntries),
				streakText(stats.CurrentStreak),
				string(stats.Trend),
			}})
			return nil
		}),
	}

	cmd.Flags().IntVar(&last, "last", 0, "only count the newest N check-ins (0 for all)")

	return cmd
}

func sleepSuffix(hours float64) string {
	if hours <= 0 {
		return ""
	}
	return ", sleep " + formatSleep(hours)
}

func formatSleep(hours float64) string {
	if hours <= 0 {
		return "-"
	}
	return strconv.FormatFloat(hours, 'f', -1, 64) + "h"
}

func streakText(days int) string {
	if days == 1 {
		return "1 day"
	}
	return fmt.Sprintf("%d days", days)
}
