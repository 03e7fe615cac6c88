// Package transform owns the zoom/pan state applied on top of the static
// scales. The affine transform composes with scale output at draw time only;
// the scale engine's domains are never mutated from here.
package transform

import (
	"github.com/Suraj0791/stockcharts/internal/scale"
)

// Transform is a 2D affine: screen = data_px*K + T.
type Transform struct {
	K  float64 `json:"k"`
	TX float64 `json:"tx"`
	TY float64 `json:"ty"`
}

// Identity returns the no-op transform.
func Identity() Transform {
	return Transform{K: 1}
}

// IsIdentity reports whether the transform leaves coordinates unchanged.
func (t Transform) IsIdentity() bool {
	return t.K == 1 && t.TX == 0 && t.TY == 0
}

// ApplyX maps an untransformed x pixel to its on-screen position.
func (t Transform) ApplyX(px float64) float64 {
	return px*t.K + t.TX
}

// ApplyY maps an untransformed y pixel to its on-screen position.
func (t Transform) ApplyY(px float64) float64 {
	return px*t.K + t.TY
}

// InvertX maps an on-screen x position back to the untransformed pixel.
func (t Transform) InvertX(px float64) float64 {
	return (px - t.TX) / t.K
}

// InvertY maps an on-screen y position back to the untransformed pixel.
func (t Transform) InvertY(px float64) float64 {
	return (px - t.TY) / t.K
}

// RescaleX derives the time scale whose output matches the transformed view.
// The original scale is untouched.
func (t Transform) RescaleX(s scale.TimeScale) scale.TimeScale {
	if t.IsIdentity() {
		return s
	}
	r0, r1 := s.Range()
	return s.WithDomain(s.Invert(t.InvertX(r0)), s.Invert(t.InvertX(r1)))
}

// RescaleY derives the linear scale whose output matches the transformed view.
func (t Transform) RescaleY(s scale.LinearScale) scale.LinearScale {
	if t.IsIdentity() {
		return s
	}
	r0, r1 := s.Range()
	return s.WithDomain(s.Invert(t.InvertY(r0)), s.Invert(t.InvertY(r1)))
}
