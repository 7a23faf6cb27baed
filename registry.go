package almostover

import (
	"fmt"

	"github.com/rs/zerolog"
)

// maxGroupDepth bounds group nesting; deeper items are rejected as malformed,
// which also stops a group that contains itself.
const maxGroupDepth = 32

// Registry holds the leaf geometries tracked for proximity, in registration
// order. Each geometry appears at most once no matter how many times it is
// registered, directly or through groups.
type Registry struct {
	geoms []*Geometry
	byID  map[GeometryID]*Geometry
	seq   map[*Geometry]uint64
	next  uint64
	index SpatialIndex
	log   zerolog.Logger
}

// NewRegistry creates an empty registry. index may be nil.
func NewRegistry(index SpatialIndex) *Registry {
	return &Registry{
		byID:  make(map[GeometryID]*Geometry),
		seq:   make(map[*Geometry]uint64),
		index: index,
		log:   zerolog.Nop(),
	}
}

// SetLogger sets the logger used for registration diagnostics.
func (r *Registry) SetLogger(l zerolog.Logger) {
	r.log = l
}

// Index returns the registry's spatial index, or nil.
func (r *Registry) Index() SpatialIndex {
	return r.index
}

// Register adds item, expanding containers recursively, and returns the ids
// of every leaf reached, in traversal order. Leaves that are already present
// keep their place and id. All leaves are validated before anything is
// added, so an invalid member leaves the registry untouched.
func (r *Registry) Register(item Item) ([]GeometryID, error) {
	leaves, err := r.collect(item, 0, nil, make(map[*Geometry]bool))
	if err != nil {
		return nil, err
	}
	for _, g := range leaves {
		if err := g.validate(); err != nil {
			return nil, err
		}
	}

	ids := make([]GeometryID, 0, len(leaves))
	for _, g := range leaves {
		if _, ok := r.seq[g]; !ok {
			r.add(g)
		}
		ids = append(ids, g.id)
	}
	return ids, nil
}

func (r *Registry) add(g *Geometry) {
	if g.id == "" {
		g.id = newGeometryID()
	}
	r.next++
	r.seq[g] = r.next
	r.byID[g.id] = g
	r.geoms = append(r.geoms, g)
	if r.index != nil {
		r.index.Insert(g)
	}
	r.log.Debug().Str("id", string(g.id)).Stringer("kind", g.Kind).
		Int("vertices", len(g.vertices)).Msg("geometry registered")
}

// Unregister removes every leaf reachable from item. Items that were never
// registered are ignored.
func (r *Registry) Unregister(item Item) {
	leaves, err := r.collect(item, 0, nil, make(map[*Geometry]bool))
	if err != nil {
		r.log.Warn().Err(err).Msg("unregister skipped")
		return
	}
	for _, g := range leaves {
		r.remove(g)
	}
}

func (r *Registry) remove(g *Geometry) {
	if _, ok := r.seq[g]; !ok {
		return
	}
	delete(r.seq, g)
	delete(r.byID, g.id)
	for i := range r.geoms {
		if r.geoms[i] == g {
			copy(r.geoms[i:], r.geoms[i+1:])
			r.geoms[len(r.geoms)-1] = nil
			r.geoms = r.geoms[:len(r.geoms)-1]
			break
		}
	}
	if r.index != nil {
		r.index.Remove(g)
	}
	r.log.Debug().Str("id", string(g.id)).Msg("geometry unregistered")
}

// collect walks item depth-first, appending each distinct leaf once.
func (r *Registry) collect(item Item, depth int, buf []*Geometry, seen map[*Geometry]bool) ([]*Geometry, error) {
	if item == nil {
		return buf, nil
	}
	if g := item.Geometry(); g != nil {
		if !seen[g] {
			seen[g] = true
			buf = append(buf, g)
		}
		return buf, nil
	}
	if depth >= maxGroupDepth {
		return nil, fmt.Errorf("group nesting deeper than %d: %w", maxGroupDepth, ErrInvalidGeometry)
	}
	var err error
	for _, m := range item.Members() {
		if buf, err = r.collect(m, depth+1, buf, seen); err != nil {
			return nil, err
		}
	}
	return buf, nil
}

// Len returns the number of registered geometries.
func (r *Registry) Len() int {
	return len(r.geoms)
}

// Contains reports whether g is registered.
func (r *Registry) Contains(g *Geometry) bool {
	_, ok := r.seq[g]
	return ok
}

// Lookup returns the registered geometry with the given id.
func (r *Registry) Lookup(id GeometryID) (*Geometry, bool) {
	g, ok := r.byID[id]
	return g, ok
}

// Each calls fn for every geometry in registration order until fn returns false.
func (r *Registry) Each(fn func(g *Geometry) bool) {
	for _, g := range r.geoms {
		if !fn(g) {
			return
		}
	}
}

// All returns the registered geometries in registration order. The returned
// slice MUST NOT be mutated.
func (r *Registry) All() []*Geometry {
	return r.geoms
}

// less orders registered geometries by registration.
func (r *Registry) less(a, b *Geometry) bool {
	return r.seq[a] < r.seq[b]
}
