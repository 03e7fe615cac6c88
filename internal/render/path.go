package render

import (
	"fmt"
	"math"
	"strings"

	"github.com/Suraj0791/stockcharts/internal/scene"
)

// pathBuilder accumulates an SVG path through defined points, starting a new
// subpath after each gap so missing samples are skipped rather than
// interpolated. It tracks total stroke length for the draw-in animation.
type pathBuilder struct {
	sb      strings.Builder
	penDown bool
	prevX   float64
	prevY   float64
	length  float64
}

// LineTo extends the current subpath, or starts one after a gap.
func (b *pathBuilder) LineTo(x, y float64) {
	if b.penDown {
		fmt.Fprintf(&b.sb, "L%s,%s", scene.Ftoa(x), scene.Ftoa(y))
		b.length += math.Hypot(x-b.prevX, y-b.prevY)
	} else {
		fmt.Fprintf(&b.sb, "M%s,%s", scene.Ftoa(x), scene.Ftoa(y))
		b.penDown = true
	}
	b.prevX, b.prevY = x, y
}

// Break ends the current subpath at a gap.
func (b *pathBuilder) Break() {
	b.penDown = false
}

// String returns the accumulated path data.
func (b *pathBuilder) String() string {
	return b.sb.String()
}

// Length returns the total stroke length drawn so far.
func (b *pathBuilder) Length() float64 {
	return b.length
}
