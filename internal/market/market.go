package market

import (
	"math"
	"time"
)

// Metric identifies which per-sample value a chart displays.
type Metric string

const (
	MetricPrice  Metric = "price"
	MetricVolume Metric = "volume"
	MetricChange Metric = "change"
)

// ParseMetric returns the metric for s, or MetricPrice if s is not a known metric.
func ParseMetric(s string) Metric {
	switch Metric(s) {
	case MetricPrice, MetricVolume, MetricChange:
		return Metric(s)
	default:
		return MetricPrice
	}
}

// TimeRange identifies the span covered by a generated dataset.
type TimeRange string

const (
	RangeDay   TimeRange = "day"
	RangeWeek  TimeRange = "week"
	RangeMonth TimeRange = "month"
)

// ParseTimeRange returns the time range for s, or RangeMonth if s is not known.
func ParseTimeRange(s string) TimeRange {
	switch TimeRange(s) {
	case RangeDay, RangeWeek, RangeMonth:
		return TimeRange(s)
	default:
		return RangeMonth
	}
}

// Multiplier returns the volatility multiplier applied to the ±5% random walk step.
func (r TimeRange) Multiplier() float64 {
	switch r {
	case RangeDay:
		return 0.5
	case RangeWeek:
		return 1.0
	case RangeMonth:
		return 2.0
	default:
		return 3.0
	}
}

// Span returns the wall-clock duration the range covers.
func (r TimeRange) Span() time.Duration {
	switch r {
	case RangeDay:
		return 24 * time.Hour
	case RangeWeek:
		return 7 * 24 * time.Hour
	default:
		return 30 * 24 * time.Hour
	}
}

// Entity is a tracked series (e.g. a company). ColorIndex is assigned from the
// entity's position in the startup list; reordering the list reassigns colors.
type Entity struct {
	Name       string `json:"name"`
	ColorIndex int    `json:"colorIndex"`
}

// Entities builds the entity list from names, assigning positional color indexes.
func Entities(names []string) []Entity {
	list := make([]Entity, 0, len(names))
	for i, name := range names {
		list = append(list, Entity{Name: name, ColorIndex: i})
	}
	return list
}

// Sample holds all three metric values for one entity at one instant. Price,
// volume and change are computed together per step, so switching the displayed
// metric never regenerates data.
type Sample struct {
	Price  float64 `json:"price"`
	Volume float64 `json:"volume"`
	Change float64 `json:"change"`
}

// Value returns the sample value for the given metric.
func (s Sample) Value(m Metric) float64 {
	switch m {
	case MetricVolume:
		return s.Volume
	case MetricChange:
		return s.Change
	default:
		return s.Price
	}
}

// Point is one temporal sample across all entities.
type Point struct {
	Timestamp time.Time         `json:"timestamp"`
	Values    map[string]Sample `json:"values"`
}

// Valid reports whether the point carries a usable timestamp. Rows that fail
// this check are dropped from domain computation and rendering, never fatal.
func (p Point) Valid() bool {
	return !p.Timestamp.IsZero()
}

// Dataset is an ordered sequence of points with strictly increasing timestamps.
type Dataset []Point

// MetricValues extracts one entity's values for a metric, aligned with the
// dataset index. Missing or invalid rows yield NaN so consumers can skip them.
func (d Dataset) MetricValues(entity string, metric Metric) []float64 {
	out := make([]float64, len(d))
	for i, p := range d {
		if !p.Valid() {
			out[i] = math.NaN()
			continue
		}
		sample, ok := p.Values[entity]
		if !ok {
			out[i] = math.NaN()
			continue
		}
		out[i] = sample.Value(metric)
	}
	return out
}

// TimeBounds returns the first and last valid timestamps. ok is false when no
// point carries a usable timestamp.
func (d Dataset) TimeBounds() (first, last time.Time, ok bool) {
	for _, p := range d {
		if !p.Valid() {
			continue
		}
		if !ok {
			first, last = p.Timestamp, p.Timestamp
			ok = true
			continue
		}
		if p.Timestamp.Before(first) {
			first = p.Timestamp
		}
		if p.Timestamp.After(last) {
			last = p.Timestamp
		}
	}
	return first, last, ok
}
