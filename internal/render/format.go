package render

import (
	"fmt"
	"math"
	"time"

	"github.com/Suraj0791/stockcharts/internal/market"
)

// tickTimeFormat picks the x-axis tick label layout for a time range.
func tickTimeFormat(r market.TimeRange) string {
	switch r {
	case market.RangeDay:
		return "15:04"
	case market.RangeWeek:
		return "Mon 02"
	default:
		return "Jan 02"
	}
}

// formatTickTime renders an x-axis tick label.
func formatTickTime(t time.Time, r market.TimeRange) string {
	return t.Format(tickTimeFormat(r))
}

// formatTickValue renders a y-axis tick label for the active metric. Axis
// labels are coarser than tooltip values: whole dollars, compact volumes,
// one-decimal percents.
func formatTickValue(v float64, metric market.Metric) string {
	switch metric {
	case market.MetricVolume:
		return compactNumber(v)
	case market.MetricChange:
		return fmt.Sprintf("%+.1f%%", v)
	default:
		return fmt.Sprintf("$%.0f", v)
	}
}

// compactNumber abbreviates large magnitudes (1200000 -> "1.2M").
func compactNumber(v float64) string {
	abs := math.Abs(v)
	switch {
	case abs >= 1e9:
		return trimZero(fmt.Sprintf("%.1fB", v/1e9))
	case abs >= 1e6:
		return trimZero(fmt.Sprintf("%.1fM", v/1e6))
	case abs >= 1e3:
		return trimZero(fmt.Sprintf("%.1fK", v/1e3))
	default:
		return fmt.Sprintf("%.0f", v)
	}
}

// trimZero drops a redundant ".0" before the magnitude suffix.
func trimZero(s string) string {
	if len(s) < 3 {
		return s
	}
	suffix := s[len(s)-1:]
	body := s[:len(s)-1]
	if len(body) >= 2 && body[len(body)-2:] == ".0" {
		return body[:len(body)-2] + suffix
	}
	return s
}
