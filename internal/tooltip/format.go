package tooltip

import (
	"fmt"
	"math"

	"github.com/shopspring/decimal"

	"github.com/Suraj0791/stockcharts/internal/market"
)

// Sign classifies a change value so the overlay can color it.
type Sign string

const (
	SignUp   Sign = "up"
	SignDown Sign = "down"
	SignFlat Sign = "flat"
)

// FormatValue renders a tooltip value for the active metric. Prices are
// currency with two decimals, volumes are abbreviated, changes are signed
// one-decimal percentages classified by sign.
func FormatValue(v float64, metric market.Metric) (string, Sign) {
	switch metric {
	case market.MetricVolume:
		return compactNumber(v), SignFlat
	case market.MetricChange:
		return fmt.Sprintf("%+.1f%%", v), signOf(v)
	default:
		return "$" + decimal.NewFromFloat(v).StringFixed(2), SignFlat
	}
}

func signOf(v float64) Sign {
	switch {
	case v > 0:
		return SignUp
	case v < 0:
		return SignDown
	default:
		return SignFlat
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
