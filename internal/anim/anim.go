// Package anim models timed transitions as explicit state machines instead of
// fire-and-forget timers: every animated property records its from/to values,
// duration and start instant, and is sampled against a clock the caller owns.
// Tests drive a manual clock to fast-forward virtual time deterministically.
package anim

import (
	"time"
)

// Standard durations used by the render pipeline and transform controller.
const (
	AxisTransition = 500 * time.Millisecond
	DrawIn         = 800 * time.Millisecond
	MarkerGrow     = 300 * time.Millisecond
	LabelFade      = 400 * time.Millisecond
	ResetTween     = 750 * time.Millisecond

	// StaggerStep is the per-index delay applied to marker and label animations.
	StaggerStep = 40 * time.Millisecond
)

// Easing maps normalized progress [0,1] to eased progress [0,1].
type Easing func(t float64) float64

// Linear leaves progress unchanged.
func Linear(t float64) float64 { return t }

// CubicOut decelerates toward the end of the transition.
func CubicOut(t float64) float64 {
	u := 1 - t
	return 1 - u*u*u
}

// Clock supplies the current instant. The engine uses a wall clock; tests use
// a Manual clock.
type Clock interface {
	Now() time.Time
}

// WallClock reads the system time.
type WallClock struct{}

func (WallClock) Now() time.Time { return time.Now() }

// Manual is a hand-advanced clock for deterministic tests.
type Manual struct {
	Current time.Time
}

func (m *Manual) Now() time.Time { return m.Current }

// Advance moves the clock forward.
func (m *Manual) Advance(d time.Duration) { m.Current = m.Current.Add(d) }

// Timeline animates a single scalar property from From to To.
type Timeline struct {
	From     float64
	To       float64
	Start    time.Time
	Delay    time.Duration
	Duration time.Duration
	Ease     Easing
}

// NewTimeline starts a transition at the given instant.
func NewTimeline(from, to float64, start time.Time, duration time.Duration, ease Easing) Timeline {
	if ease == nil {
		ease = Linear
	}
	return Timeline{From: from, To: to, Start: start, Duration: duration, Ease: ease}
}

// Staggered delays the timeline by index*StaggerStep, used for per-point
// marker growth and label fade-in.
func (tl Timeline) Staggered(index int) Timeline {
	tl.Delay = time.Duration(index) * StaggerStep
	return tl
}

// At samples the animated value at the given instant. Before the delayed start
// it holds From; after completion it holds To.
func (tl Timeline) At(now time.Time) float64 {
	begin := tl.Start.Add(tl.Delay)
	if !now.After(begin) {
		return tl.From
	}
	if tl.Duration <= 0 {
		return tl.To
	}
	progress := float64(now.Sub(begin)) / float64(tl.Duration)
	if progress >= 1 {
		return tl.To
	}
	return tl.From + (tl.To-tl.From)*tl.Ease(progress)
}

// Done reports whether the transition has run to completion.
func (tl Timeline) Done(now time.Time) bool {
	return !now.Before(tl.Start.Add(tl.Delay).Add(tl.Duration))
}
