// Package scale computes the mapping functions that bind data coordinates to
// pixel coordinates. Scales are immutable values: zooming and panning never
// rewrite a scale, they derive a new one (see the transform package).
package scale

import (
	"math"
	"time"
)

// TimeScale maps instants linearly onto a horizontal pixel range.
type TimeScale struct {
	d0, d1 time.Time
	r0, r1 float64
}

// NewTimeScale builds a scale mapping [d0, d1] onto [r0, r1].
func NewTimeScale(d0, d1 time.Time, r0, r1 float64) TimeScale {
	return TimeScale{d0: d0, d1: d1, r0: r0, r1: r1}
}

// Scale maps an instant to a pixel position.
func (s TimeScale) Scale(t time.Time) float64 {
	span := float64(s.d1.Sub(s.d0))
	if span == 0 {
		return (s.r0 + s.r1) / 2
	}
	frac := float64(t.Sub(s.d0)) / span
	return s.r0 + frac*(s.r1-s.r0)
}

// Invert maps a pixel position back to an instant.
func (s TimeScale) Invert(px float64) time.Time {
	width := s.r1 - s.r0
	if width == 0 {
		return s.d0
	}
	frac := (px - s.r0) / width
	return s.d0.Add(time.Duration(frac * float64(s.d1.Sub(s.d0))))
}

// Domain returns the scale's time domain.
func (s TimeScale) Domain() (time.Time, time.Time) {
	return s.d0, s.d1
}

// Range returns the scale's pixel range.
func (s TimeScale) Range() (float64, float64) {
	return s.r0, s.r1
}

// WithDomain derives a scale with the same range over a new domain.
func (s TimeScale) WithDomain(d0, d1 time.Time) TimeScale {
	return TimeScale{d0: d0, d1: d1, r0: s.r0, r1: s.r1}
}

// Ticks returns n+1 evenly spaced instants across the domain, endpoints included.
func (s TimeScale) Ticks(n int) []time.Time {
	if n < 1 {
		n = 1
	}
	step := float64(s.d1.Sub(s.d0)) / float64(n)
	ticks := make([]time.Time, 0, n+1)
	for i := 0; i <= n; i++ {
		ticks = append(ticks, s.d0.Add(time.Duration(float64(i)*step)))
	}
	return ticks
}

// LinearScale maps numeric values linearly onto a vertical pixel range. The
// range is conventionally inverted (plot height down to zero) so larger values
// land higher on screen.
type LinearScale struct {
	d0, d1 float64
	r0, r1 float64
}

// NewLinearScale builds a scale mapping [d0, d1] onto [r0, r1].
func NewLinearScale(d0, d1, r0, r1 float64) LinearScale {
	return LinearScale{d0: d0, d1: d1, r0: r0, r1: r1}
}

// Scale maps a value to a pixel position.
func (s LinearScale) Scale(v float64) float64 {
	span := s.d1 - s.d0
	if span == 0 {
		return (s.r0 + s.r1) / 2
	}
	frac := (v - s.d0) / span
	return s.r0 + frac*(s.r1-s.r0)
}

// Invert maps a pixel position back to a value.
func (s LinearScale) Invert(px float64) float64 {
	width := s.r1 - s.r0
	if width == 0 {
		return s.d0
	}
	frac := (px - s.r0) / width
	return s.d0 + frac*(s.d1-s.d0)
}

// Domain returns the scale's value domain.
func (s LinearScale) Domain() (float64, float64) {
	return s.d0, s.d1
}

// Range returns the scale's pixel range.
func (s LinearScale) Range() (float64, float64) {
	return s.r0, s.r1
}

// WithDomain derives a scale with the same range over a new domain.
func (s LinearScale) WithDomain(d0, d1 float64) LinearScale {
	return LinearScale{d0: d0, d1: d1, r0: s.r0, r1: s.r1}
}

// Ticks returns n+1 evenly spaced values across the domain, endpoints included.
func (s LinearScale) Ticks(n int) []float64 {
	if n < 1 {
		n = 1
	}
	step := (s.d1 - s.d0) / float64(n)
	ticks := make([]float64, 0, n+1)
	for i := 0; i <= n; i++ {
		ticks = append(ticks, s.d0+float64(i)*step)
	}
	return ticks
}

// defined reports whether v can participate in domain computation.
func defined(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
