package render

import (
	"fmt"

	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/Suraj0791/stockcharts/internal/view"
)

// Theme carries every color the pipeline draws with. All fills and strokes go
// through the active theme so a theme switch is a plain re-render.
type Theme struct {
	Background drawing.Color
	AxisLine   drawing.Color
	GridLine   drawing.Color
	TickLabel  drawing.Color
	ZeroLine   drawing.Color
	ValueLabel drawing.Color
	Series     []drawing.Color
}

var lightTheme = Theme{
	Background: drawing.ColorFromHex("ffffff"),
	AxisLine:   drawing.ColorFromHex("6b7280"),
	GridLine:   drawing.ColorFromHex("e5e7eb"),
	TickLabel:  drawing.ColorFromHex("374151"),
	ZeroLine:   drawing.ColorFromHex("9ca3af"),
	ValueLabel: drawing.ColorFromHex("4b5563"),
	Series:     seriesPalette,
}

var darkTheme = Theme{
	Background: drawing.ColorFromHex("111827"),
	AxisLine:   drawing.ColorFromHex("9ca3af"),
	GridLine:   drawing.ColorFromHex("374151"),
	TickLabel:  drawing.ColorFromHex("d1d5db"),
	ZeroLine:   drawing.ColorFromHex("6b7280"),
	ValueLabel: drawing.ColorFromHex("9ca3af"),
	Series:     seriesPalette,
}

// seriesPalette is the fixed entity palette; entities pick colors by their
// positional color index.
var seriesPalette = []drawing.Color{
	drawing.ColorFromHex("2563eb"),
	drawing.ColorFromHex("dc2626"),
	drawing.ColorFromHex("16a34a"),
	drawing.ColorFromHex("d97706"),
	drawing.ColorFromHex("7c3aed"),
	drawing.ColorFromHex("0891b2"),
	drawing.ColorFromHex("db2777"),
	drawing.ColorFromHex("65a30d"),
}

// ThemeFor returns the palette for the view theme.
func ThemeFor(t view.Theme) Theme {
	if t == view.ThemeDark {
		return darkTheme
	}
	return lightTheme
}

// SeriesColor returns the stroke color for an entity color index.
func (t Theme) SeriesColor(colorIndex int) drawing.Color {
	if len(t.Series) == 0 {
		return t.AxisLine
	}
	return t.Series[colorIndex%len(t.Series)]
}

// Hex renders a color as a CSS hex string for SVG attributes.
func Hex(c drawing.Color) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}
