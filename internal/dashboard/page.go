// Package dashboard builds the HTML surfaces around the chart engine: the
// interactive page shell, the markdown help panel, and the alternate
// ECharts/PNG exports of a session's dataset.
package dashboard

import (
	"fmt"
	"html/template"
	"strings"

	"github.com/Suraj0791/stockcharts/internal/engine"
	"github.com/Suraj0791/stockcharts/internal/market"
	"github.com/Suraj0791/stockcharts/internal/render"
	"github.com/Suraj0791/stockcharts/internal/view"
)

// EntityItem is one legend row.
type EntityItem struct {
	Name    string
	Color   string
	Visible bool
}

// PageData feeds the page template.
type PageData struct {
	Title     string
	Version   string
	BodyClass string
	Entities  []EntityItem
	View      view.State
	SVG       template.HTML
	Loading   bool
	Help      template.HTML
	Session   string
}

// BuildPage renders the dashboard page for one session snapshot.
func BuildPage(update engine.Update, entities []market.Entity, version string) (string, error) {
	theme := render.ThemeFor(update.View.Theme)
	visible := make(map[string]bool, len(update.View.Visible))
	for _, name := range update.View.Visible {
		visible[name] = true
	}

	items := make([]EntityItem, 0, len(entities))
	for _, e := range entities {
		items = append(items, EntityItem{
			Name:    e.Name,
			Color:   render.Hex(theme.SeriesColor(e.ColorIndex)),
			Visible: visible[e.Name],
		})
	}

	bodyClass := "theme-light"
	if update.View.Theme == view.ThemeDark {
		bodyClass = "theme-dark"
	}

	help, err := HelpHTML()
	if err != nil {
		return "", fmt.Errorf("failed to render help panel: %w", err)
	}

	data := PageData{
		Title:     "Stock Charts",
		Version:   version,
		BodyClass: bodyClass,
		Entities:  items,
		View:      update.View,
		SVG:       template.HTML(update.SVG),
		Loading:   update.Loading,
		Help:      help,
		Session:   update.Session,
	}

	var sb strings.Builder
	if err := pageTemplate.Execute(&sb, data); err != nil {
		return "", fmt.Errorf("failed to execute page template: %w", err)
	}
	return sb.String(), nil
}

var pageTemplate = template.Must(template.New("page").Parse(pageHTML))

const pageHTML = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
body { font-family: -apple-system, "Segoe UI", sans-serif; margin: 0; padding: 16px; }
body.theme-light { background: #ffffff; color: #1f2937; }
body.theme-dark { background: #111827; color: #e5e7eb; }
.toolbar { display: flex; gap: 8px; flex-wrap: wrap; margin-bottom: 12px; }
.toolbar button { padding: 4px 10px; cursor: pointer; }
.toolbar button.active { font-weight: bold; }
.legend { display: flex; gap: 12px; margin-bottom: 8px; }
.legend .entity { cursor: pointer; user-select: none; }
.legend .entity.hidden { opacity: 0.35; text-decoration: line-through; }
.legend .swatch { display: inline-block; width: 10px; height: 10px; margin-right: 4px; }
#chart { position: relative; }
#tooltip { position: absolute; pointer-events: none; padding: 4px 8px; border-radius: 4px;
  background: rgba(17, 24, 39, 0.9); color: #f9fafb; font-size: 12px; display: none; }
#tooltip.up { border-left: 3px solid #10b981; }
#tooltip.down { border-left: 3px solid #ef4444; }
#loading { padding: 40px; text-align: center; }
details.help { margin-top: 16px; max-width: 720px; }
</style>
</head>
<body class="{{.BodyClass}}">
<h1>{{.Title}} <small>v{{.Version}}</small></h1>
<div class="toolbar" id="settings"
     data-kind="{{.View.ChartKind}}" data-metric="{{.View.Metric}}"
     data-range="{{.View.TimeRange}}" data-theme="{{.View.Theme}}">
  <button data-set="chartKind" data-value="line">Line</button>
  <button data-set="chartKind" data-value="bar">Bar</button>
  <button data-set="metric" data-value="price">Price</button>
  <button data-set="metric" data-value="volume">Volume</button>
  <button data-set="metric" data-value="change">Change</button>
  <button data-set="timeRange" data-value="day">Day</button>
  <button data-set="timeRange" data-value="week">Week</button>
  <button data-set="timeRange" data-value="month">Month</button>
  <button data-set="theme" data-value="light">Light</button>
  <button data-set="theme" data-value="dark">Dark</button>
  <button id="regenerate">Regenerate</button>
  <button id="reset">Reset zoom</button>
</div>
<div class="legend" id="legend">
{{range .Entities}}  <span class="entity{{if not .Visible}} hidden{{end}}" data-entity="{{.Name}}"><span class="swatch" style="background:{{.Color}}"></span>{{.Name}}</span>
{{end}}</div>
<div id="chart" data-session="{{.Session}}">
{{if .Loading}}<div id="loading">Loading data&hellip;</div>{{else}}{{.SVG}}{{end}}
<div id="tooltip"></div>
</div>
<details class="help"><summary>Help</summary>{{.Help}}</details>
<script>
(function () {
  var chart = document.getElementById('chart');
  var tooltip = document.getElementById('tooltip');
  var proto = location.protocol === 'https:' ? 'wss://' : 'ws://';
  var ws = new WebSocket(proto + location.host + '/ws?session=' + encodeURIComponent(chart.dataset.session));
  var margins = { left: 55, top: 20 };
  var dragging = false, lastX = 0, lastY = 0;

  function send(type, payload) {
    if (ws.readyState === WebSocket.OPEN) {
      ws.send(JSON.stringify(Object.assign({ type: type }, payload || {})));
    }
  }
  function plotPos(ev) {
    var rect = chart.getBoundingClientRect();
    return { x: ev.clientX - rect.left - margins.left, y: ev.clientY - rect.top - margins.top };
  }

  ws.onmessage = function (msg) {
    var u = JSON.parse(msg.data);
    if (u.svg) {
      chart.innerHTML = u.svg;
      chart.appendChild(tooltip);
    } else if (u.patches) {
      u.patches.forEach(function (p) {
        var el = chart.querySelector('[data-key="' + p.key + '"]');
        if (!el) return;
        Object.keys(p.attrs || {}).forEach(function (name) {
          if (p.attrs[name] === '') { el.removeAttribute(name); } else { el.setAttribute(name, p.attrs[name]); }
        });
        if (p.text !== undefined && el.textContent !== p.text) el.textContent = p.text;
      });
    }
    if (u.tooltip) {
      tooltip.textContent = u.tooltip.entity + ': ' + u.tooltip.text;
      tooltip.className = u.tooltip.sign || '';
      tooltip.style.left = (u.tooltip.screenX + 12) + 'px';
      tooltip.style.top = (u.tooltip.screenY - 24) + 'px';
      tooltip.style.display = 'block';
    } else {
      tooltip.style.display = 'none';
    }
  };

  chart.addEventListener('wheel', function (ev) {
    ev.preventDefault();
    var p = plotPos(ev);
    send('wheel', { factor: ev.deltaY < 0 ? 1.2 : 1 / 1.2, x: p.x, y: p.y });
  }, { passive: false });
  chart.addEventListener('mousedown', function (ev) { dragging = true; lastX = ev.clientX; lastY = ev.clientY; });
  window.addEventListener('mouseup', function () { dragging = false; });
  chart.addEventListener('mousemove', function (ev) {
    if (dragging) {
      send('drag', { dx: ev.clientX - lastX, dy: ev.clientY - lastY });
      lastX = ev.clientX; lastY = ev.clientY;
      return;
    }
    var p = plotPos(ev);
    send('hover', { x: p.x, y: p.y });
  });
  chart.addEventListener('mouseleave', function () { send('leave'); });
  chart.addEventListener('dblclick', function () { send('reset'); });
  document.getElementById('reset').addEventListener('click', function () { send('reset'); });
  document.getElementById('regenerate').addEventListener('click', function () { send('regenerate'); });

  document.getElementById('settings').addEventListener('click', function (ev) {
    var btn = ev.target.closest('button[data-set]');
    if (!btn) return;
    var update = {};
    update[btn.dataset.set] = btn.dataset.value;
    send('view', { update: update });
  });
  document.getElementById('legend').addEventListener('click', function (ev) {
    var item = ev.target.closest('.entity');
    if (!item) return;
    item.classList.toggle('hidden');
    send('view', { update: { toggleEntity: item.dataset.entity } });
  });
  window.addEventListener('resize', function () {
    send('resize', { width: chart.clientWidth, height: 420 });
  });
})();
</script>
</body>
</html>
`
