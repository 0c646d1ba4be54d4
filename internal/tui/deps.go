package tui

import (
	"context"
	"log/slog"

	"github.com/garrettladley/moodly/internal/breathing"
)

type Deps struct {
	// Ctx bounds the runner's tick task.
	Ctx       context.Context
	Logger    *slog.Logger
	Runner    *breathing.Runner
	Exercises []breathing.Exercise
	// Initial is the key of the exercise to start with. Unknown keys start the first one.
	Initial string
}
