package scale

import (
	"math"
	"time"

	"gonum.org/v1/gonum/floats"

	"github.com/Suraj0791/stockcharts/internal/market"
)

// Pair bundles the horizontal and vertical scales computed for one data window.
type Pair struct {
	X TimeScale
	Y LinearScale
}

// Compute derives the scale pair for the dataset, the visible entities and the
// active metric. Invalid rows are excluded from domain computation. Degenerate
// inputs (no visible entities, all-NaN values, collapsed domains) fall back to
// a safe default domain instead of propagating NaN into the scale functions.
func Compute(dataset market.Dataset, visible []string, metric market.Metric, plotW, plotH float64) Pair {
	return Pair{
		X: computeX(dataset, plotW),
		Y: computeY(dataset, visible, metric, plotH),
	}
}

func computeX(dataset market.Dataset, plotW float64) TimeScale {
	first, last, ok := dataset.TimeBounds()
	if !ok {
		now := time.Now()
		return NewTimeScale(now.Add(-time.Hour), now, 0, plotW)
	}
	return NewTimeScale(first, last, 0, plotW)
}

func computeY(dataset market.Dataset, visible []string, metric market.Metric, plotH float64) LinearScale {
	values := collectDefined(dataset, visible, metric)
	d0, d1 := domainFor(metric, values)
	return NewLinearScale(d0, d1, plotH, 0)
}

// domainFor applies the per-metric domain rules:
// price [0.9*min, 1.1*max], volume [0, 1.1*max], change [-absMax, +absMax].
func domainFor(metric market.Metric, values []float64) (float64, float64) {
	if len(values) == 0 {
		return fallbackDomain(metric)
	}

	switch metric {
	case market.MetricVolume:
		max := floats.Max(values)
		if max <= 0 {
			return fallbackDomain(metric)
		}
		return 0, max * 1.1
	case market.MetricChange:
		absMax := 0.0
		for _, v := range values {
			if a := math.Abs(v); a > absMax {
				absMax = a
			}
		}
		if absMax == 0 {
			return fallbackDomain(metric)
		}
		return -absMax, absMax
	default:
		min, max := floats.Min(values), floats.Max(values)
		d0, d1 := min*0.9, max*1.1
		if d0 == d1 {
			return fallbackDomain(metric)
		}
		return d0, d1
	}
}

// fallbackDomain is the safe default used when the visible value set is empty
// or collapses to nothing. The change domain stays symmetric about zero.
func fallbackDomain(metric market.Metric) (float64, float64) {
	if metric == market.MetricChange {
		return -1, 1
	}
	return 0, 1
}

func collectDefined(dataset market.Dataset, visible []string, metric market.Metric) []float64 {
	var values []float64
	for _, name := range visible {
		for _, v := range dataset.MetricValues(name, metric) {
			if defined(v) {
				values = append(values, v)
			}
		}
	}
	return values
}
