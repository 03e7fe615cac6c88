package dashboard

import (
	"bytes"
	"strings"
	"testing"

	"github.com/Suraj0791/stockcharts/internal/engine"
	"github.com/Suraj0791/stockcharts/internal/market"
	"github.com/Suraj0791/stockcharts/internal/view"
)

func testData(t *testing.T) (market.Dataset, []market.Entity, view.State) {
	t.Helper()
	entities := market.Entities([]string{"ACME", "Globex"})
	gen := market.NewSeededGenerator(11)
	dataset, err := gen.Generate(20, entities, market.RangeWeek)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	return dataset, entities, view.NewStore(entities).State()
}

func TestHelpHTMLRendersTable(t *testing.T) {
	help, err := HelpHTML()
	if err != nil {
		t.Fatalf("HelpHTML failed: %v", err)
	}
	out := string(help)
	if !strings.Contains(out, "<table>") {
		t.Error("GFM table not rendered")
	}
	if !strings.Contains(out, "<h2") {
		t.Error("heading not rendered")
	}
}

func TestBuildPage(t *testing.T) {
	_, entities, state := testData(t)
	update := engine.Update{
		Session: "test-session",
		SVG:     `<svg data-marker="yes"></svg>`,
		View:    state,
	}

	page, err := BuildPage(update, entities, "1.0.0")
	if err != nil {
		t.Fatalf("BuildPage failed: %v", err)
	}
	for _, want := range []string{"ACME", "Globex", "theme-light", `data-marker="yes"`, "test-session", "1.0.0"} {
		if !strings.Contains(page, want) {
			t.Errorf("page missing %q", want)
		}
	}
}

func TestPageScriptAttachesToOwnSession(t *testing.T) {
	_, entities, state := testData(t)
	update := engine.Update{Session: "page-session", View: state}

	page, err := BuildPage(update, entities, "1.0.0")
	if err != nil {
		t.Fatalf("BuildPage failed: %v", err)
	}
	if !strings.Contains(page, `data-session="page-session"`) {
		t.Error("chart container missing its session id")
	}
	if !strings.Contains(page, "'/ws?session=' + encodeURIComponent(chart.dataset.session)") {
		t.Error("page script does not attach the websocket to the page session")
	}
	if !strings.Contains(page, "u.patches") {
		t.Error("page script cannot apply patch frames")
	}
}

func TestBuildPageDarkThemeAndLoading(t *testing.T) {
	_, entities, state := testData(t)
	state.Theme = view.ThemeDark
	update := engine.Update{View: state, Loading: true}

	page, err := BuildPage(update, entities, "1.0.0")
	if err != nil {
		t.Fatalf("BuildPage failed: %v", err)
	}
	if !strings.Contains(page, "theme-dark") {
		t.Error("dark theme class missing")
	}
	if !strings.Contains(page, "Loading data") {
		t.Error("loading indicator missing")
	}
}

func TestBuildPageMarksHiddenEntities(t *testing.T) {
	_, entities, state := testData(t)
	state.Visible = []string{"Globex"}

	page, err := BuildPage(engine.Update{View: state}, entities, "1.0.0")
	if err != nil {
		t.Fatalf("BuildPage failed: %v", err)
	}
	if !strings.Contains(page, `class="entity hidden" data-entity="ACME"`) {
		t.Error("hidden entity not marked in legend")
	}
}

func TestRenderECharts(t *testing.T) {
	dataset, entities, state := testData(t)

	var buf bytes.Buffer
	if err := RenderECharts(&buf, dataset, entities, state); err != nil {
		t.Fatalf("RenderECharts failed: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "echarts") {
		t.Error("output is not an echarts page")
	}
	if !strings.Contains(out, "ACME") {
		t.Error("series name missing from echarts output")
	}
}

func TestRenderEChartsBarKind(t *testing.T) {
	dataset, entities, state := testData(t)
	state.ChartKind = view.KindBar

	var buf bytes.Buffer
	if err := RenderECharts(&buf, dataset, entities, state); err != nil {
		t.Fatalf("RenderECharts failed: %v", err)
	}
	if !strings.Contains(buf.String(), "bar") {
		t.Error("bar series missing from echarts output")
	}
}

func TestRenderPNG(t *testing.T) {
	dataset, entities, state := testData(t)

	var buf bytes.Buffer
	if err := RenderPNG(&buf, dataset, entities, state); err != nil {
		t.Fatalf("RenderPNG failed: %v", err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("\x89PNG")) {
		t.Error("output does not start with the PNG signature")
	}
}

func TestRenderPNGBarKind(t *testing.T) {
	dataset, entities, state := testData(t)
	state.ChartKind = view.KindBar

	var buf bytes.Buffer
	if err := RenderPNG(&buf, dataset, entities, state); err != nil {
		t.Fatalf("RenderPNG failed: %v", err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("\x89PNG")) {
		t.Error("output does not start with the PNG signature")
	}
}

func TestRenderPNGRejectsEmptyInput(t *testing.T) {
	_, entities, state := testData(t)

	var buf bytes.Buffer
	if err := RenderPNG(&buf, nil, entities, state); err == nil {
		t.Error("expected error for empty dataset")
	}

	dataset, _, _ := testData(t)
	state.Visible = nil
	if err := RenderPNG(&buf, dataset, entities, state); err == nil {
		t.Error("expected error with no visible entities")
	}
}
