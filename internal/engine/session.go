// Package engine runs the chart engine for one connected session. Each session
// owns its dataset, view state, transform and tooltip exclusively and mutates
// them from a single event-loop goroutine, so handlers never overlap and no
// locks guard the chart state. Gestures and setting changes are enqueued as
// events; the resulting frame is published to the session's update channel with
// last-write-wins semantics.
package engine

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/Suraj0791/stockcharts/internal/anim"
	"github.com/Suraj0791/stockcharts/internal/market"
	"github.com/Suraj0791/stockcharts/internal/render"
	"github.com/Suraj0791/stockcharts/internal/scale"
	"github.com/Suraj0791/stockcharts/internal/scene"
	"github.com/Suraj0791/stockcharts/internal/tooltip"
	"github.com/Suraj0791/stockcharts/internal/transform"
	"github.com/Suraj0791/stockcharts/internal/view"
)

// ErrClosed is returned by synchronous session calls after Close.
var ErrClosed = errors.New("session closed")

// Defaults for session options left zero.
const (
	DefaultLoadDelay      = time.Second
	DefaultResizeDebounce = 150 * time.Millisecond
	DefaultWidth          = 960.0
	DefaultHeight         = 420.0

	// frameInterval paces re-projection frames while the reset tween runs.
	frameInterval = 33 * time.Millisecond
)

// Options configures a session. Zero fields take the defaults above.
type Options struct {
	Entities       []string
	LoadDelay      time.Duration
	ResizeDebounce time.Duration
	Surface        render.Surface

	// Seed fixes the generator for reproducible datasets; 0 seeds from time.
	Seed  int64
	Clock anim.Clock
	Log   zerolog.Logger
}

func (o Options) withDefaults() Options {
	if len(o.Entities) == 0 {
		o.Entities = []string{"ACME", "Globex", "Initech"}
	}
	if o.LoadDelay == 0 {
		o.LoadDelay = DefaultLoadDelay
	}
	if o.ResizeDebounce == 0 {
		o.ResizeDebounce = DefaultResizeDebounce
	}
	if o.Surface.Width == 0 {
		o.Surface.Width = DefaultWidth
	}
	if o.Surface.Height == 0 {
		o.Surface.Height = DefaultHeight
	}
	if o.Clock == nil {
		o.Clock = anim.WallClock{}
	}
	return o
}

// Update is one published frame: the view snapshot, the current transform and
// tooltip, and whether the initial load is still pending. Full renders carry
// the serialized scene; gesture frames carry only the attribute patches that
// re-projection produced, so zooming never re-ships the whole document.
type Update struct {
	Session   string              `json:"session"`
	SVG       string              `json:"svg,omitempty"`
	Patches   []scene.Patch       `json:"patches,omitempty"`
	View      view.State          `json:"view"`
	Transform transform.Transform `json:"transform"`
	Tooltip   *tooltip.State      `json:"tooltip,omitempty"`
	Loading   bool                `json:"loading"`
}

type event interface{ isEvent() }

type (
	wheelEvent  struct{ Factor, X, Y float64 }
	dragEvent   struct{ DX, DY float64 }
	hoverEvent  struct{ X, Y float64 }
	leaveEvent  struct{}
	resetEvent  struct{}
	viewEvent   struct{ Update view.Update }
	resizeEvent struct{ Width, Height float64 }
	regenEvent  struct{}

	snapshotEvent struct{ reply chan Update }
	dataEvent     struct{ reply chan dataReply }
)

type dataReply struct {
	dataset  market.Dataset
	entities []market.Entity
	state    view.State
}

func (wheelEvent) isEvent()    {}
func (dragEvent) isEvent()     {}
func (hoverEvent) isEvent()    {}
func (leaveEvent) isEvent()    {}
func (resetEvent) isEvent()    {}
func (viewEvent) isEvent()     {}
func (resizeEvent) isEvent()   {}
func (regenEvent) isEvent()    {}
func (snapshotEvent) isEvent() {}
func (dataEvent) isEvent()     {}

// Session is one connected chart session.
type Session struct {
	id   string
	opts Options
	log  zerolog.Logger

	gen      *market.Generator
	store    *view.Store
	pipeline *render.Pipeline
	ctrl     *transform.Controller
	tips     *tooltip.Coordinator

	dataset   market.Dataset
	scales    scale.Pair
	surface   render.Surface
	animStart time.Time
	loading   bool

	// lastRoot is a clone of the scene as last published, diffed against the
	// retained frame to derive gesture-frame patches.
	lastRoot *scene.Node

	events    chan event
	updates   chan Update
	done      chan struct{}
	closeOnce sync.Once
}

// NewSession creates a session and starts its event loop. The initial dataset
// loads after the configured delay; until then published updates carry the
// loading flag.
func NewSession(opts Options) *Session {
	opts = opts.withDefaults()
	log := opts.Log.With().Str("component", "engine").Logger()

	gen := market.NewGenerator()
	if opts.Seed != 0 {
		gen = market.NewSeededGenerator(opts.Seed)
	}

	s := &Session{
		id:       uuid.NewString(),
		opts:     opts,
		log:      log,
		gen:      gen,
		store:    view.NewStore(market.Entities(opts.Entities)),
		pipeline: render.NewPipeline(log),
		ctrl:     transform.NewController(opts.Surface.PlotWidth(), opts.Surface.PlotHeight(), opts.Clock),
		tips:     tooltip.NewCoordinator(),
		surface:  opts.Surface,
		loading:  true,
		events:   make(chan event, 64),
		updates:  make(chan Update, 1),
		done:     make(chan struct{}),
	}
	go s.run()
	return s
}

// ID returns the session identifier.
func (s *Session) ID() string { return s.id }

// Updates returns the frame channel. The buffer holds only the latest frame;
// slow consumers see the most recent state, never a stale backlog.
func (s *Session) Updates() <-chan Update { return s.updates }

// Close stops the event loop. Pending callbacks (the delayed initial load, a
// debounced resize) become no-ops.
func (s *Session) Close() {
	s.closeOnce.Do(func() { close(s.done) })
}

// Wheel applies a zoom step centered on the pointer (plot coordinates).
func (s *Session) Wheel(factor, x, y float64) { s.send(wheelEvent{factor, x, y}) }

// Drag pans by a pixel delta.
func (s *Session) Drag(dx, dy float64) { s.send(dragEvent{dx, dy}) }

// Hover moves the pointer over the plot; the nearest decorated point within
// the hit radius activates the tooltip.
func (s *Session) Hover(x, y float64) { s.send(hoverEvent{x, y}) }

// Leave clears the tooltip.
func (s *Session) Leave() { s.send(leaveEvent{}) }

// Reset starts the animated return to the identity transform.
func (s *Session) Reset() { s.send(resetEvent{}) }

// ApplyView merges a partial view-state update.
func (s *Session) ApplyView(update view.Update) { s.send(viewEvent{update}) }

// Resize records a new surface size. Bursts coalesce; the recompute runs once
// the debounce window closes.
func (s *Session) Resize(width, height float64) { s.send(resizeEvent{width, height}) }

// Regenerate replaces the dataset with fresh random data.
func (s *Session) Regenerate() { s.send(regenEvent{}) }

// Snapshot returns the current frame synchronously, serialized by the event
// loop so it is never half-updated.
func (s *Session) Snapshot(ctx context.Context) (Update, error) {
	reply := make(chan Update, 1)
	select {
	case s.events <- snapshotEvent{reply}:
	case <-s.done:
		return Update{}, ErrClosed
	case <-ctx.Done():
		return Update{}, ctx.Err()
	}
	select {
	case u := <-reply:
		return u, nil
	case <-s.done:
		return Update{}, ErrClosed
	case <-ctx.Done():
		return Update{}, ctx.Err()
	}
}

// Data returns the current dataset, entity list and view snapshot for export
// renderers.
func (s *Session) Data(ctx context.Context) (market.Dataset, []market.Entity, view.State, error) {
	reply := make(chan dataReply, 1)
	select {
	case s.events <- dataEvent{reply}:
	case <-s.done:
		return nil, nil, view.State{}, ErrClosed
	case <-ctx.Done():
		return nil, nil, view.State{}, ctx.Err()
	}
	select {
	case r := <-reply:
		return r.dataset, r.entities, r.state, nil
	case <-s.done:
		return nil, nil, view.State{}, ErrClosed
	case <-ctx.Done():
		return nil, nil, view.State{}, ctx.Err()
	}
}

func (s *Session) send(ev event) {
	select {
	case s.events <- ev:
	case <-s.done:
	}
}

// run is the session's event loop. Every handler runs to completion before the
// next event is taken, and a closed session drains nothing: pending timers are
// simply abandoned.
func (s *Session) run() {
	load := time.NewTimer(s.opts.LoadDelay)
	defer load.Stop()
	loadC := load.C

	var (
		resize  *time.Timer
		resizeC <-chan time.Time
		pending resizeEvent

		tween  *time.Ticker
		tweenC <-chan time.Time
	)
	stopTimers := func() {
		if resize != nil {
			resize.Stop()
		}
		if tween != nil {
			tween.Stop()
		}
	}
	defer stopTimers()

	for {
		select {
		case <-s.done:
			return

		case <-loadC:
			loadC = nil
			s.handleLoad()

		case <-resizeC:
			resizeC = nil
			s.applyResize(pending.Width, pending.Height)

		case <-tweenC:
			s.reproject()
			if !s.ctrl.Resetting() {
				tween.Stop()
				tween, tweenC = nil, nil
			}

		case ev := <-s.events:
			if rz, ok := ev.(resizeEvent); ok {
				// Coalesce bursts: only the latest size survives the window.
				pending = rz
				if resize == nil {
					resize = time.NewTimer(s.opts.ResizeDebounce)
				} else {
					if !resize.Stop() {
						select {
						case <-resize.C:
						default:
						}
					}
					resize.Reset(s.opts.ResizeDebounce)
				}
				resizeC = resize.C
				break
			}
			s.handle(ev)
			if s.ctrl.Resetting() && tween == nil {
				tween = time.NewTicker(frameInterval)
				tweenC = tween.C
			}
		}
	}
}

func (s *Session) handle(ev event) {
	switch ev := ev.(type) {
	case wheelEvent:
		if s.loading {
			return
		}
		s.ctrl.Wheel(ev.Factor, ev.X, ev.Y)
		s.reproject()
	case dragEvent:
		if s.loading {
			return
		}
		s.ctrl.Drag(ev.DX, ev.DY)
		s.reproject()
	case hoverEvent:
		if s.loading {
			return
		}
		// Hovering never touches the scene; the delta path publishes a
		// tooltip-only update.
		s.tips.Hover(ev.X, ev.Y)
		s.publishDelta()
	case leaveEvent:
		s.tips.PointerLeave()
		s.publishDelta()
	case resetEvent:
		if s.loading {
			return
		}
		s.ctrl.Reset()
		s.reproject()
	case viewEvent:
		s.handleView(ev.Update)
	case regenEvent:
		if s.loading {
			return
		}
		s.regenerate()
	case snapshotEvent:
		ev.reply <- s.buildUpdate()
	case dataEvent:
		ev.reply <- dataReply{dataset: s.dataset, entities: s.store.Entities(), state: s.store.State()}
	}
}

// handleLoad completes the artificial initial-load delay.
func (s *Session) handleLoad() {
	s.loading = false
	s.regenerate()
}

func (s *Session) handleView(update view.Update) {
	before := s.store.State()
	change := s.store.Apply(update)
	if change == view.ChangeNone {
		return
	}
	after := s.store.State()

	// The old view extent is meaningless across a kind or metric switch.
	if after.ChartKind != before.ChartKind || after.Metric != before.Metric {
		s.ctrl.ResetImmediate()
		s.tips.PointerLeave()
	}

	if s.loading {
		// The delayed load will pick up the new settings when it fires.
		s.publish()
		return
	}
	if change == view.ChangeRegenerate {
		s.regenerate()
		return
	}
	s.fullRender()
}

func (s *Session) regenerate() {
	state := s.store.State()
	dataset, err := s.gen.Generate(state.PointCount, s.store.Entities(), state.TimeRange)
	if err != nil {
		s.log.Error().Err(err).Msg("dataset generation failed")
		return
	}
	s.dataset = dataset
	s.fullRender()
}

func (s *Session) applyResize(width, height float64) {
	s.surface = render.Surface{Width: width, Height: height}
	s.ctrl.SetPlotSize(s.surface.PlotWidth(), s.surface.PlotHeight())
	if s.loading {
		return
	}
	// A resize recomputes data, scales and geometry from scratch.
	s.regenerate()
}

// fullRender recomputes scales and rebuilds the scene from the current
// dataset and view, restarting enter animations.
func (s *Session) fullRender() {
	state := s.store.State()
	now := s.opts.Clock.Now()
	s.animStart = now
	s.scales = scale.Compute(s.dataset, state.Visible, state.Metric, s.surface.PlotWidth(), s.surface.PlotHeight())

	ctx := render.Context{
		Dataset:   s.dataset,
		Entities:  s.store.Entities(),
		View:      state,
		Scales:    s.scales,
		Theme:     render.ThemeFor(state.Theme),
		Surface:   s.surface,
		Now:       now,
		AnimStart: s.animStart,
	}
	if _, err := s.pipeline.Render(ctx); err != nil {
		if errors.Is(err, render.ErrNoSurface) {
			s.log.Warn().Float64("width", s.surface.Width).Msg("surface too small, skipping render")
		} else {
			s.log.Error().Err(err).Msg("render pass failed")
		}
		s.publish()
		return
	}
	if !s.ctrl.Current().IsIdentity() {
		if _, err := s.pipeline.Reproject(s.ctrl.Rescale(s.scales), now); err != nil {
			s.log.Error().Err(err).Msg("reprojection failed")
		}
	}
	s.refreshTooltip()
	s.publish()
}

// reproject re-applies the current transform to the retained frame. This is
// the cheap gesture path; no geometry is created or destroyed.
func (s *Session) reproject() {
	pair := s.ctrl.Rescale(s.scales)
	if _, err := s.pipeline.Reproject(pair, s.opts.Clock.Now()); err != nil {
		if !errors.Is(err, render.ErrNoFrame) {
			s.log.Error().Err(err).Msg("reprojection failed")
		}
		return
	}
	s.refreshTooltip()
	s.publishDelta()
}

func (s *Session) refreshTooltip() {
	state := s.store.State()
	s.tips.SetContext(tooltip.Context{
		Dataset: s.dataset,
		Visible: state.Visible,
		Metric:  state.Metric,
		Scales:  s.ctrl.Rescale(s.scales),
		OffsetX: render.MarginLeft,
		OffsetY: render.MarginTop,
	})
}

func (s *Session) buildUpdate() Update {
	u := Update{
		Session:   s.id,
		View:      s.store.State(),
		Transform: s.ctrl.Current(),
		Loading:   s.loading,
	}
	if active := s.tips.Active(); active != nil {
		cp := *active
		u.Tooltip = &cp
	}
	if frame := s.pipeline.Last(); frame != nil {
		svg, err := scene.SVGString(frame.Root, s.surface.Width, s.surface.Height)
		if err != nil {
			s.log.Error().Err(err).Msg("svg serialization failed")
		} else {
			u.SVG = svg
		}
	}
	return u
}

// publish pushes a full frame with the serialized scene.
func (s *Session) publish() {
	if frame := s.pipeline.Last(); frame != nil {
		s.lastRoot = frame.Root.Clone()
	}
	s.push(s.buildUpdate())
}

// publishDelta pushes a gesture frame carrying only attribute patches against
// the last published scene. Structural changes (anything other than in-place
// attribute updates) fall back to a full frame.
func (s *Session) publishDelta() {
	frame := s.pipeline.Last()
	if frame == nil || s.lastRoot == nil {
		s.publish()
		return
	}
	patches := scene.Diff(s.lastRoot, frame.Root)
	for _, p := range patches {
		if p.Op != scene.OpUpdate {
			s.publish()
			return
		}
	}
	s.lastRoot = frame.Root.Clone()

	u := s.buildUpdate()
	u.SVG = ""
	u.Patches = patches
	s.push(u)
}

// push hands an update to the channel, replacing any unconsumed one.
func (s *Session) push(u Update) {
	for {
		select {
		case s.updates <- u:
			return
		default:
			select {
			case <-s.updates:
			default:
			}
		}
	}
}
