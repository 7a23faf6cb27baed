package almostover

import (
	"sort"
	"time"

	"github.com/paulmach/orb"
	"github.com/rs/zerolog"
)

const (
	defaultDistanceThreshold = 25.0                  // pixels
	defaultSamplingPeriod    = 50 * time.Millisecond // between accepted moves
)

// Options configures a Tracker.
type Options struct {
	// DistanceThreshold is how close, in screen pixels, the pointer must be
	// to a geometry to count as near it.
	DistanceThreshold float64
	// SamplingPeriod is the minimum time between two processed pointer moves.
	SamplingPeriod time.Duration
	// MovementTracking enables enter/move/leave events. Clicks are reported
	// either way.
	MovementTracking bool

	// Metric measures distances in surface coordinates. nil means Planar.
	Metric Metric
	// Index optionally prefilters candidates. nil means a full scan.
	Index SpatialIndex
	// Now is the clock used for sampling. nil means time.Now.
	Now func() time.Time
	// Logger receives debug diagnostics. nil means no logging.
	Logger *zerolog.Logger
}

// DefaultOptions returns a 25 pixel threshold, a 50 ms sampling period,
// movement tracking enabled, and the Planar metric.
func DefaultOptions() Options {
	return Options{
		DistanceThreshold: defaultDistanceThreshold,
		SamplingPeriod:    defaultSamplingPeriod,
		MovementTracking:  true,
		Metric:            Planar,
	}
}

// Tracker turns pointer input into proximity events for the geometries in
// its registry. It is in one of two states: idle, or near the geometry of
// the previously reported match.
//
// A Tracker is not safe for concurrent use. Add and Remove must not be
// called from inside a listener.
type Tracker struct {
	registry *Registry
	metric   Metric
	buffer   BufferTranslator
	sampler  Sampler
	tracking bool

	projector Projector
	surface   Surface
	unsubs    []func()

	prev *Match

	handlers    handlerRegistry
	sink        EventSink
	log         zerolog.Logger
	dispatching bool
	queued      []Event

	// epoch changes whenever tracking is interrupted (Stop, tracking
	// disabled) so an in-flight transition can tell it is stale.
	epoch uint64

	candBuf []*Geometry
}

// NewTracker creates a tracker with an empty registry. It has no projection
// until Start or SetProjector is called, so until then only exact hits match.
func NewTracker(opts Options) *Tracker {
	t := &Tracker{
		registry: NewRegistry(opts.Index),
		metric:   opts.Metric,
		buffer:   BufferTranslator{Threshold: opts.DistanceThreshold},
		sampler:  Sampler{Period: opts.SamplingPeriod, Now: opts.Now},
		tracking: opts.MovementTracking,
		log:      zerolog.Nop(),
	}
	if t.metric == nil {
		t.metric = Planar
	}
	if opts.Logger != nil {
		t.log = opts.Logger.With().Str("component", "almostover").Logger()
	}
	t.registry.SetLogger(t.log)
	t.sampler.Reset()
	return t
}

// Registry returns the tracker's geometry registry.
func (t *Tracker) Registry() *Registry {
	return t.registry
}

// Add registers item (a geometry or a group) and returns the ids of the
// geometries it contributed.
func (t *Tracker) Add(item Item) ([]GeometryID, error) {
	return t.registry.Register(item)
}

// Remove unregisters item. If the pointer was near one of the removed
// geometries, a leave is emitted for it and the tracker becomes idle.
func (t *Tracker) Remove(item Item) {
	t.registry.Unregister(item)
	if t.prev != nil && !t.registry.Contains(t.prev.Geometry) {
		t.closeHover()
	}
}

// Start attaches the tracker to a surface: it subscribes to pointer moves,
// clicks, and view changes, primes the sampler, and computes the buffer
// radius for the current view. A tracker already attached elsewhere is
// stopped first.
func (t *Tracker) Start(s Surface) {
	if t.surface != nil {
		t.Stop()
	}
	t.surface = s
	t.sampler.Reset()
	t.SetProjector(s)
	t.unsubs = append(t.unsubs,
		s.OnPointerMove(t.HandleMove),
		s.OnClick(t.HandleClick),
		s.OnViewChange(t.HandleViewChange),
	)
	t.log.Debug().Float64("radius", t.buffer.Radius()).Msg("tracking started")
}

// Stop detaches the tracker from its surface. A pending hover is closed
// with a leave. Registered geometries are kept. Stop may be called from a
// listener; the transition in progress emits nothing further.
func (t *Tracker) Stop() {
	t.epoch++
	for _, unsub := range t.unsubs {
		if unsub != nil {
			unsub()
		}
	}
	t.unsubs = t.unsubs[:0]
	t.closeHover()
	t.surface = nil
	t.projector = nil
	t.buffer.Reset()
	t.log.Debug().Msg("tracking stopped")
}

// SetProjector sets the projection used to translate the pixel threshold
// and recomputes the buffer radius. Hosts that push events through
// HandleMove/HandleClick instead of Start use this.
func (t *Tracker) SetProjector(p Projector) {
	t.projector = p
	t.HandleViewChange()
}

// SetMovementTracking enables or disables enter/move/leave events. Disabling
// while near a geometry emits its leave.
func (t *Tracker) SetMovementTracking(enabled bool) {
	t.tracking = enabled
	if !enabled {
		t.epoch++
		t.closeHover()
	}
}

// closeHover emits the leave for the current match, if any, and goes idle.
func (t *Tracker) closeHover() {
	if t.prev == nil {
		return
	}
	prev := t.prev
	t.prev = nil
	t.fireLeave(prev)
}

// MovementTracking reports whether enter/move/leave events are enabled.
func (t *Tracker) MovementTracking() bool {
	return t.tracking
}

// Current returns the match last reported by enter/move, or nil when idle.
func (t *Tracker) Current() *Match {
	return t.prev
}

// Radius returns the current coordinate-space threshold.
func (t *Tracker) Radius() float64 {
	return t.buffer.Radius()
}

// --- Input ---

// HandleMove feeds a raw pointer position (surface coordinates). Moves that
// arrive within the sampling period of the last accepted one are dropped, as
// are all moves while the registry is empty.
func (t *Tracker) HandleMove(p orb.Point) {
	if !t.sampler.Allow(t.registry.Len() > 0) {
		return
	}
	t.HandleSample(p)
}

// HandleSample runs the state machine for an already rate-limited pointer
// position.
func (t *Tracker) HandleSample(p orb.Point) {
	if !t.tracking {
		return
	}
	t.transition(t.Resolve(p))
}

// HandleClick resolves the geometry nearest to the click position, which
// may differ from the last sampled move, and emits an EventClick for it.
// The hover state is not changed.
func (t *Tracker) HandleClick(p orb.Point, c ClickType) {
	m := t.Resolve(p)
	if m == nil {
		return
	}
	t.fire(Event{
		Type:      EventClick,
		ID:        m.ID,
		Geometry:  m.Geometry,
		Point:     m.Point,
		Distance:  m.Distance,
		ClickType: c,
	})
}

// HandleViewChange recomputes the buffer radius under the current projection.
// Without a projection the radius stays zero.
func (t *Tracker) HandleViewChange() {
	if t.projector == nil {
		return
	}
	r := t.buffer.Recompute(t.projector, t.metric)
	t.log.Debug().Float64("radius", r).Float64("threshold_px", t.buffer.Threshold).Msg("buffer radius recomputed")
}

// Resolve returns the registered geometry nearest to p within the current
// radius, or nil.
func (t *Tracker) Resolve(p orb.Point) *Match {
	return ClosestAmong(p, t.candidates(p), t.buffer.Radius(), t.metric)
}

// candidates returns the geometries worth measuring for p, in registration
// order. The spatial index is only consulted once a radius is known.
func (t *Tracker) candidates(p orb.Point) []*Geometry {
	r := t.registry
	radius := t.buffer.Radius()
	ix := r.Index()
	if ix == nil || radius <= 0 {
		return r.All()
	}
	buf := t.candBuf[:0]
	ix.Search(t.metric.BoundAround(p, radius), func(g *Geometry) bool {
		if r.Contains(g) {
			buf = append(buf, g)
		}
		return true
	})
	sort.Slice(buf, func(i, j int) bool { return r.less(buf[i], buf[j]) })
	t.candBuf = buf
	return buf
}

// --- State machine ---

// transition moves from the previous match to m and emits the events for
// it. Leave always precedes enter, and enter precedes move. The state is
// updated before each event so a listener sees the tracker as near the
// geometry it was just told about; if a listener interrupts tracking, the
// remaining events are dropped.
func (t *Tracker) transition(m *Match) {
	prev := t.prev
	epoch := t.epoch
	switch {
	case m == nil:
		t.closeHover()
	case prev == nil:
		t.prev = m
		t.fireMatch(EventEnter, m)
		if t.epoch != epoch {
			return
		}
		t.fireMatch(EventMove, m)
	case prev.ID != m.ID:
		t.closeHover()
		if t.epoch != epoch {
			return
		}
		t.prev = m
		t.fireMatch(EventEnter, m)
		if t.epoch != epoch {
			return
		}
		t.fireMatch(EventMove, m)
	default:
		t.prev = m
		t.fireMatch(EventMove, m)
	}
}

func (t *Tracker) fireMatch(et EventType, m *Match) {
	t.fire(Event{
		Type:     et,
		ID:       m.ID,
		Geometry: m.Geometry,
		Point:    m.Point,
		Distance: m.Distance,
	})
}

func (t *Tracker) fireLeave(m *Match) {
	t.fire(Event{Type: EventLeave, ID: m.ID, Geometry: m.Geometry})
}
