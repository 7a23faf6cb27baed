package almostover

import (
	"errors"
	"fmt"
	"math"

	"github.com/paulmach/orb"
	"go.jetify.com/typeid/v2"
)

// ErrInvalidGeometry is returned when a geometry cannot be registered because
// its coordinates are empty or not finite.
var ErrInvalidGeometry = errors.New("invalid geometry")

// geometryIDPrefix is the typeid prefix stamped on every registered geometry.
const geometryIDPrefix = "geom"

// GeometryID is the stable identity of a registered geometry. It is assigned
// once, on first registration, and never derived from the coordinates.
type GeometryID string

func newGeometryID() GeometryID {
	return GeometryID(typeid.MustGenerate(geometryIDPrefix).String())
}

// Kind distinguishes how a Geometry's vertices are interpreted.
type Kind uint8

const (
	KindPoint    Kind = iota // a single vertex
	KindPolyline             // an open chain of segments
	KindPolygon              // a ring; the last vertex connects back to the first
)

// String returns the lower-case name of the kind.
func (k Kind) String() string {
	switch k {
	case KindPoint:
		return "point"
	case KindPolyline:
		return "polyline"
	case KindPolygon:
		return "polygon"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// Item is anything that can be registered with a Registry. A leaf geometry
// returns itself from Geometry and nil from Members. A container returns nil
// from Geometry and the items it expands into from Members.
type Item interface {
	Geometry() *Geometry
	Members() []Item
}

// Geometry is a vector shape tracked for proximity. Create one with
// NewPoint, NewPolyline, or NewPolygon. The vertices must not be modified
// after registration.
type Geometry struct {
	// Kind selects point, polyline, or polygon semantics.
	Kind Kind

	// UserData is an arbitrary value for the host (a layer, a feature, ...).
	UserData any

	// Per-geometry callbacks, fired after the tracker-level listeners.
	OnEnter func(Event)
	OnMove  func(Event)
	OnLeave func(Event)
	OnClick func(Event)

	vertices orb.LineString
	id       GeometryID
}

// NewPoint creates a single-point geometry.
func NewPoint(p orb.Point) *Geometry {
	return &Geometry{Kind: KindPoint, vertices: orb.LineString{p}}
}

// NewPolyline creates an open polyline through the given vertices.
func NewPolyline(ls orb.LineString) *Geometry {
	return &Geometry{Kind: KindPolyline, vertices: ls}
}

// NewPolygon creates a polygon boundary. The ring is closed implicitly; an
// explicitly repeated first vertex is harmless.
func NewPolygon(r orb.Ring) *Geometry {
	return &Geometry{Kind: KindPolygon, vertices: orb.LineString(r)}
}

// Geometry returns g itself, making every geometry an Item.
func (g *Geometry) Geometry() *Geometry { return g }

// Members returns nil: a geometry is a leaf.
func (g *Geometry) Members() []Item { return nil }

// ID returns the geometry's identity, or "" if it was never registered.
func (g *Geometry) ID() GeometryID { return g.id }

// Vertices returns the geometry's vertices. The returned slice MUST NOT be mutated.
func (g *Geometry) Vertices() orb.LineString { return g.vertices }

// Bound returns the axis-aligned bounding box of the vertices.
func (g *Geometry) Bound() orb.Bound { return g.vertices.Bound() }

// validate rejects empty vertex lists and non-finite coordinates.
func (g *Geometry) validate() error {
	if len(g.vertices) == 0 {
		return fmt.Errorf("%s with no vertices: %w", g.Kind, ErrInvalidGeometry)
	}
	if g.Kind > KindPolygon {
		return fmt.Errorf("unknown %s: %w", g.Kind, ErrInvalidGeometry)
	}
	for i, p := range g.vertices {
		if !finite(p[0]) || !finite(p[1]) {
			return fmt.Errorf("%s vertex %d is not finite (%v): %w", g.Kind, i, p, ErrInvalidGeometry)
		}
	}
	return nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// Group is a container of geometries and nested groups. Registering a group
// registers every geometry reachable from it; the group itself has no identity.
type Group struct {
	items []Item
}

// NewGroup creates a group holding the given items.
func NewGroup(items ...Item) *Group {
	return &Group{items: items}
}

// Add appends items to the group. Items added after the group was registered
// are not picked up until it is registered again.
func (gr *Group) Add(items ...Item) {
	gr.items = append(gr.items, items...)
}

// Len returns the number of direct members.
func (gr *Group) Len() int { return len(gr.items) }

// Geometry returns nil: a group is a container.
func (gr *Group) Geometry() *Geometry { return nil }

// Members returns the group's direct members. The returned slice MUST NOT be mutated.
func (gr *Group) Members() []Item {
	if gr == nil {
		return nil
	}
	return gr.items
}
