// Package breathing implements guided breathing exercises: the phase timer,
// a runner that drives it once per second, and the built-in catalog.
package breathing

import (
	"errors"
	"fmt"
)

type Phase string

const (
	PhaseInhale    Phase = "inhale"
	PhaseHold      Phase = "hold"
	PhaseExhale    Phase = "exhale"
	PhaseCompleted Phase = "completed"
)

func (p Phase) String() string { return string(p) }

var (
	ErrInvalidExercise = errors.New("invalid breathing exercise")
	ErrRunnerClosed    = errors.New("breathing runner closed")
	ErrUnknownExercise = errors.New("unknown breathing exercise")
)

// Exercise is an immutable breathing pattern. Durations are in seconds.
type Exercise struct {
	Key          string   `yaml:"key" json:"key"`
	Name         string   `yaml:"name" json:"name"`
	Description  string   `yaml:"description" json:"description"`
	Instructions []string `yaml:"instructions" json:"instructions"`
	Inhale       int      `yaml:"inhale" json:"inhale_seconds"`
	Hold         int      `yaml:"hold" json:"hold_seconds"`
	Exhale       int      `yaml:"exhale" json:"exhale_seconds"`
	Cycles       int      `yaml:"cycles" json:"cycles"`
}

func (e Exercise) Validate() error {
	switch {
	case e.Inhale <= 0:
		return fmt.Errorf("%w: inhale must be positive, got %d", ErrInvalidExercise, e.Inhale)
	case e.Hold < 0:
		return fmt.Errorf("%w: hold must not be negative, got %d", ErrInvalidExercise, e.Hold)
	case e.Exhale <= 0:
		return fmt.Errorf("%w: exhale must be positive, got %d", ErrInvalidExercise, e.Exhale)
	case e.Cycles <= 0:
		return fmt.Errorf("%w: cycles must be positive, got %d", ErrInvalidExercise, e.Cycles)
	}
	return nil
}

// PhaseSeconds returns the configured length of p. Completed has no length.
func (e Exercise) PhaseSeconds(p Phase) int {
	switch p {
	case PhaseInhale:
		return e.Inhale
	case PhaseHold:
		return e.Hold
	case PhaseExhale:
		return e.Exhale
	default:
		return 0
	}
}

func (e Exercise) CycleSeconds() int {
	return e.Inhale + e.Hold + e.Exhale
}

func (e Exercise) TotalSeconds() int {
	return e.Cycles * e.CycleSeconds()
}

// Pattern renders the exercise as "inhale-hold-exhale", e.g. "4-7-8".
func (e Exercise) Pattern() string {
	if e.Hold == 0 {
		return fmt.Sprintf("%d-%d", e.Inhale, e.Exhale)
	}
	return fmt.Sprintf("%d-%d-%d", e.Inhale, e.Hold, e.Exhale)
}
