package dashboard

import (
	"bytes"
	"html/template"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

const helpMarkdown = `## Using the dashboard

The chart shows synthetic market data for the configured entities.

| Control | Effect |
| --- | --- |
| Line / Bar | switch the chart geometry |
| Price / Volume / Change | switch the displayed metric |
| Day / Week / Month | regenerate data over a new span |
| Regenerate | fresh random walk with the same settings |
| Reset zoom | animate back to the unzoomed view |

Interactions:

- **Wheel** zooms around the cursor, up to 5x.
- **Drag** pans; the content clamps near the plot edges.
- **Hover** a point marker to see its exact value.
- **Double-click** resets the zoom.
- Click a legend entry to hide or show that entity.
`

var markdownRenderer = goldmark.New(
	goldmark.WithExtensions(extension.GFM),
)

// HelpHTML renders the help panel markdown to embeddable HTML.
func HelpHTML() (template.HTML, error) {
	var buf bytes.Buffer
	if err := markdownRenderer.Convert([]byte(helpMarkdown), &buf); err != nil {
		return "", err
	}
	return template.HTML(buf.String()), nil
}
