package almostover

import (
	"github.com/paulmach/orb"
	"github.com/tidwall/rtree"
)

// SpatialIndex is an optional accelerator the Registry keeps in sync with its
// contents. The tracker queries it with a box around the pointer to narrow the
// exact scan. Implementations must report every geometry whose bounding box
// intersects the query box; reporting extra geometries is harmless.
type SpatialIndex interface {
	Insert(g *Geometry)
	Remove(g *Geometry)
	// Search calls fn for each candidate until fn returns false.
	Search(b orb.Bound, fn func(g *Geometry) bool)
}

// RTreeIndex is a SpatialIndex backed by an R-tree of geometry bounding boxes.
type RTreeIndex struct {
	tr rtree.RTreeG[*Geometry]
}

// NewRTreeIndex creates an empty R-tree index.
func NewRTreeIndex() *RTreeIndex {
	return &RTreeIndex{}
}

// Insert adds g under its current bounding box.
func (ix *RTreeIndex) Insert(g *Geometry) {
	b := g.Bound()
	ix.tr.Insert([2]float64(b.Min), [2]float64(b.Max), g)
}

// Remove deletes g. Its vertices must not have changed since Insert.
func (ix *RTreeIndex) Remove(g *Geometry) {
	b := g.Bound()
	ix.tr.Delete([2]float64(b.Min), [2]float64(b.Max), g)
}

// Search reports every geometry whose bounding box intersects b.
func (ix *RTreeIndex) Search(b orb.Bound, fn func(g *Geometry) bool) {
	ix.tr.Search([2]float64(b.Min), [2]float64(b.Max), func(_, _ [2]float64, g *Geometry) bool {
		return fn(g)
	})
}

// Len returns the number of indexed geometries.
func (ix *RTreeIndex) Len() int {
	return ix.tr.Len()
}
