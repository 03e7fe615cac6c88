package view

import (
	"net/url"
	"reflect"
	"testing"

	"github.com/Suraj0791/stockcharts/internal/market"
)

func testEntities() []market.Entity {
	return market.Entities([]string{"ACME", "Globex", "Initech"})
}

func TestToggleRestoresOriginalOrder(t *testing.T) {
	s := NewStore(testEntities())

	if s.ToggleEntity("Globex") != ChangeRescale {
		t.Error("toggling off should require a rescale")
	}
	if got := s.State().Visible; !reflect.DeepEqual(got, []string{"ACME", "Initech"}) {
		t.Errorf("after toggle off: %v", got)
	}

	s.ToggleEntity("Globex")
	if got := s.State().Visible; !reflect.DeepEqual(got, []string{"ACME", "Globex", "Initech"}) {
		t.Errorf("toggle on must restore original relative order, got %v", got)
	}
}

func TestToggleUnknownEntityIgnored(t *testing.T) {
	s := NewStore(testEntities())
	if s.ToggleEntity("Hooli") != ChangeNone {
		t.Error("unknown entity should be a no-op")
	}
	if len(s.State().Visible) != 3 {
		t.Errorf("visible set mutated by unknown toggle: %v", s.State().Visible)
	}
}

func TestSettersReportChangeStrength(t *testing.T) {
	s := NewStore(testEntities())

	if got := s.SetMetric(market.MetricVolume); got != ChangeRescale {
		t.Errorf("metric switch: got %d, want rescale (dataset reuse)", got)
	}
	if got := s.SetMetric(market.MetricVolume); got != ChangeNone {
		t.Errorf("repeated metric switch: got %d, want none", got)
	}
	if got := s.SetTimeRange(market.RangeDay); got != ChangeRegenerate {
		t.Errorf("time range switch: got %d, want regenerate", got)
	}
	if got := s.SetChartKind(KindBar); got != ChangeRedraw {
		t.Errorf("chart kind switch: got %d, want redraw", got)
	}
	if got := s.SetTheme(ThemeDark); got != ChangeRedraw {
		t.Errorf("theme switch: got %d, want redraw", got)
	}
}

func TestSetPointCountClamped(t *testing.T) {
	s := NewStore(testEntities())

	s.SetPointCount(100000)
	if got := s.State().PointCount; got != MaxPointCount {
		t.Errorf("point count not clamped high: %d", got)
	}

	s.SetPointCount(-5)
	if got := s.State().PointCount; got != MinPointCount {
		t.Errorf("point count not clamped low: %d", got)
	}
}

func TestApplyReturnsStrongestChange(t *testing.T) {
	s := NewStore(testEntities())

	kind := "bar"
	tr := "week"
	change := s.Apply(Update{ChartKind: &kind, TimeRange: &tr})
	if change != ChangeRegenerate {
		t.Errorf("expected strongest change regenerate, got %d", change)
	}
}

func TestUpdateFromQueryDefaults(t *testing.T) {
	s := NewStore(testEntities())
	s.Apply(UpdateFromQuery(url.Values{}))
	state := s.State()

	if state.ChartKind != KindLine {
		t.Errorf("default chart kind: %s", state.ChartKind)
	}
	if state.TimeRange != market.RangeMonth {
		t.Errorf("default time range: %s", state.TimeRange)
	}
	if state.Metric != market.MetricPrice {
		t.Errorf("default metric: %s", state.Metric)
	}
	if state.PointCount != DefaultPointCount {
		t.Errorf("default point count: %d", state.PointCount)
	}
}

func TestUpdateFromQueryParsesAndFallsBack(t *testing.T) {
	query := url.Values{
		"chartType": []string{"bar"},
		"timeRange": []string{"bogus"},
		"metric":    []string{"volume"},
		"points":    []string{"not-a-number"},
	}
	s := NewStore(testEntities())
	s.Apply(UpdateFromQuery(query))
	state := s.State()

	if state.ChartKind != KindBar {
		t.Errorf("chartType not applied: %s", state.ChartKind)
	}
	if state.TimeRange != market.RangeMonth {
		t.Errorf("invalid timeRange should fall back to month: %s", state.TimeRange)
	}
	if state.Metric != market.MetricVolume {
		t.Errorf("metric not applied: %s", state.Metric)
	}
	if state.PointCount != DefaultPointCount {
		t.Errorf("unparseable points should keep the default: %d", state.PointCount)
	}
}
