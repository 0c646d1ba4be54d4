package main

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/spf13/cobra"

	"github.com/garrettladley/moodly/internal/breathing"
	"github.com/garrettladley/moodly/internal/tui"
)

func breatheCmd() *cobra.Command {
	var (
		tick   time.Duration
		remote bool
	)

	cmd := &cobra.Command{
		Use:   "breathe [mood]",
		Short: "Start a guided breathing exercise",
		Long: "Opens a full-screen breathing coach. The mood (stressed, anxious, energetic, sad, angry)\n" +
			"picks the exercise; anything else starts the default one.\n\n" +
			"Keys: space pause/resume, r reset, n next exercise, q quit.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			var mood string
			if len(args) > 0 {
				mood = args[0]
			}

			if remote {
				a, err := newApp(cmd)
				if err != nil {
					return err
				}
				defer a.Close()
				return a.followStream(ctx, mood)
			}

			catalog, err := breathing.DefaultCatalog()
			if err != nil {
				return err
			}

			logger, closeLog, err := openLogger()
			if err != nil {
				return err
			}
			defer func() { _ = closeLog() }()

			runner := breathing.NewRunner(breathing.WithTickInterval(tick))
			defer runner.Close()

			model := tui.New(tui.Deps{
				Ctx:       ctx,
				Logger:    logger,
				Runner:    runner,
				Exercises: catalog.All(),
				Initial:   catalog.ForMood(mood).Key,
			})

			p := tea.NewProgram(model, tea.WithContext(ctx))
			if _, err := p.Run(); err != nil {
				return fmt.Errorf("breathing coach: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().DurationVar(&tick, "tick", breathing.DefaultTickInterval, "length of one breathing second")
	_ = cmd.Flags().MarkHidden("tick")
	cmd.Flags().BoolVar(&remote, "remote", false, "follow an exercise run by the server instead of the local coach")

	return cmd
}

// followStream prints each phase of a server-run exercise as it happens.
func (a *app) followStream(ctx context.Context, mood string) error {
	err := a.anonClient().Breathing.Stream(ctx, mood, func(ev breathing.Event) error {
		switch ev.Type {
		case breathing.EventStarted:
			_, _ = fmt.Fprintf(a.out, "Following %s. Press ctrl+c to stop.\n", ev.Exercise)
			fallthrough
		case breathing.EventPhaseChange:
			_, _ = fmt.Fprintf(a.out, "%-8s cycle %d  %3.0f%%\n", ev.State.Phase, ev.State.Cycle+1, ev.State.Progress)
		case breathing.EventCompleted:
			_, _ = fmt.Fprintln(a.out, "Completed. Well done.")
		}
		return nil
	})
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func exercisesCmd() *cobra.Command {
	var local bool

	cmd := &cobra.Command{
		Use:   "exercises",
		Short: "List breathing exercises",
		RunE: withApp(func(ctx context.Context, a *app, _ []string) error {
			var exercises []breathing.Exercise
			if local {
				catalog, err := breathing.DefaultCatalog()
				if err != nil {
					return err
				}
				exercises = catalog.All()
			} else {
				var err error
				exercises, err = a.anonClient().Breathing.Exercises(ctx)
				if err != nil {
					return err
				}
			}

			rows := make([][]string, 0, len(exercises))
			for _, ex := range exercises {
				rows = append(rows, []string{
					ex.Key,
					ex.Name,
					ex.Pattern(),
					strconv.Itoa(ex.Cycles),
					(time.Duration(ex.TotalSeconds()) * time.Second).String(),
				})
			}
			printTable(a.out, []string{"MOOD", "NAME", "PATTERN", "CYCLES", "LENGTH"}, rows)
			return nil
		}),
	}

	cmd.Flags().BoolVar(&local, "local", false, "use the built-in catalog instead of the server")

	return cmd
}
