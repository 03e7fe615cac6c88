// Package view holds the enum-valued UI state the dashboard is driven by and
// the setter operations that mutate it. The store is single-owner: the engine
// session applies every mutation from its event loop, so no locking happens
// here.
package view

import (
	"github.com/Suraj0791/stockcharts/internal/market"
)

// ChartKind selects the geometry a series is drawn with.
type ChartKind string

const (
	KindLine ChartKind = "line"
	KindBar  ChartKind = "bar"
)

// ParseChartKind returns the chart kind for s, or KindLine when s is unknown.
func ParseChartKind(s string) ChartKind {
	switch ChartKind(s) {
	case KindLine, KindBar:
		return ChartKind(s)
	default:
		return KindLine
	}
}

// Theme selects the color palette.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// ParseTheme returns the theme for s, or ThemeLight when s is unknown.
func ParseTheme(s string) Theme {
	switch Theme(s) {
	case ThemeLight, ThemeDark:
		return Theme(s)
	default:
		return ThemeLight
	}
}

// Point count bounds. The default matches the source dashboard.
const (
	DefaultPointCount = 30
	MinPointCount     = 2
	MaxPointCount     = 365
)

// Change tells the engine how much recomputation a setter requires.
type Change int

const (
	// ChangeNone means the value was already current.
	ChangeNone Change = iota
	// ChangeRedraw requires a render pass with existing data and scales.
	ChangeRedraw
	// ChangeRescale requires recomputing scales, then rendering.
	ChangeRescale
	// ChangeRegenerate requires a fresh dataset, new scales and a render.
	ChangeRegenerate
)

// State is a snapshot of the configuration the chart engine renders from.
type State struct {
	ChartKind  ChartKind        `json:"chartKind"`
	Metric     market.Metric    `json:"metric"`
	TimeRange  market.TimeRange `json:"timeRange"`
	Visible    []string         `json:"visible"`
	Theme      Theme            `json:"theme"`
	PointCount int              `json:"pointCount"`
}

// Store owns the view state for one session. Entities are fixed at startup;
// visibility is tracked per entity and the visible list is always derived in
// the original entity order, so toggling an entity off and on restores its
// relative position.
type Store struct {
	entities []market.Entity
	hidden   map[string]bool
	state    State
}

// NewStore creates a store over the startup entity list with default view
// settings.
func NewStore(entities []market.Entity) *Store {
	s := &Store{
		entities: entities,
		hidden:   make(map[string]bool),
		state: State{
			ChartKind:  KindLine,
			Metric:     market.MetricPrice,
			TimeRange:  market.RangeMonth,
			Theme:      ThemeLight,
			PointCount: DefaultPointCount,
		},
	}
	s.state.Visible = s.visibleNames()
	return s
}

// State returns the current snapshot.
func (s *Store) State() State {
	return s.state
}

// Entities returns the fixed startup entity list.
func (s *Store) Entities() []market.Entity {
	return s.entities
}

// SetChartKind switches between line and bar geometry.
func (s *Store) SetChartKind(kind ChartKind) Change {
	if s.state.ChartKind == kind {
		return ChangeNone
	}
	s.state.ChartKind = kind
	return ChangeRedraw
}

// SetMetric switches the displayed metric. The dataset is reused: all metric
// values coexist on each sample.
func (s *Store) SetMetric(m market.Metric) Change {
	if s.state.Metric == m {
		return ChangeNone
	}
	s.state.Metric = m
	return ChangeRescale
}

// SetTimeRange switches the covered span and requires fresh data.
func (s *Store) SetTimeRange(r market.TimeRange) Change {
	if s.state.TimeRange == r {
		return ChangeNone
	}
	s.state.TimeRange = r
	return ChangeRegenerate
}

// SetPointCount clamps count to the allowed bounds and requires fresh data
// when it changes.
func (s *Store) SetPointCount(count int) Change {
	if count < MinPointCount {
		count = MinPointCount
	}
	if count > MaxPointCount {
		count = MaxPointCount
	}
	if s.state.PointCount == count {
		return ChangeNone
	}
	s.state.PointCount = count
	return ChangeRegenerate
}

// SetTheme switches the palette; a full re-render is acceptable on theme
// change.
func (s *Store) SetTheme(t Theme) Change {
	if s.state.Theme == t {
		return ChangeNone
	}
	s.state.Theme = t
	return ChangeRedraw
}

// ToggleEntity flips one entity's visibility. Unknown names are ignored.
func (s *Store) ToggleEntity(name string) Change {
	known := false
	for _, e := range s.entities {
		if e.Name == name {
			known = true
			break
		}
	}
	if !known {
		return ChangeNone
	}
	s.hidden[name] = !s.hidden[name]
	s.state.Visible = s.visibleNames()
	return ChangeRescale
}

// Apply merges a partial state update, returning the strongest change any
// field produced.
func (s *Store) Apply(update Update) Change {
	strongest := ChangeNone
	record := func(c Change) {
		if c > strongest {
			strongest = c
		}
	}
	if update.ChartKind != nil {
		record(s.SetChartKind(ParseChartKind(*update.ChartKind)))
	}
	if update.Metric != nil {
		record(s.SetMetric(market.ParseMetric(*update.Metric)))
	}
	if update.TimeRange != nil {
		record(s.SetTimeRange(market.ParseTimeRange(*update.TimeRange)))
	}
	if update.PointCount != nil {
		record(s.SetPointCount(*update.PointCount))
	}
	if update.Theme != nil {
		record(s.SetTheme(ParseTheme(*update.Theme)))
	}
	if update.ToggleEntity != nil {
		record(s.ToggleEntity(*update.ToggleEntity))
	}
	return strongest
}

// Update is a partial view-state mutation, typically decoded from a request
// body or a websocket event.
type Update struct {
	ChartKind    *string `json:"chartKind,omitempty"`
	Metric       *string `json:"metric,omitempty"`
	TimeRange    *string `json:"timeRange,omitempty"`
	PointCount   *int    `json:"pointCount,omitempty"`
	Theme        *string `json:"theme,omitempty"`
	ToggleEntity *string `json:"toggleEntity,omitempty"`
}

func (s *Store) visibleNames() []string {
	names := make([]string, 0, len(s.entities))
	for _, e := range s.entities {
		if !s.hidden[e.Name] {
			names = append(names, e.Name)
		}
	}
	return names
}
