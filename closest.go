package almostover

import (
	"math"

	"github.com/paulmach/orb"
)

// Match is the result of a closest-point query: the nearest geometry within
// the threshold, the point on it nearest to the query, and the distance.
type Match struct {
	Geometry *Geometry
	ID       GeometryID
	Point    orb.Point
	Distance float64
}

// ClosestPoint returns the point of g nearest to query and its distance
// under m. Segments are projected in coordinate space and clamped to their
// endpoints; for polygons the last vertex connects back to the first. When
// two segments are equally close the earlier one wins.
func ClosestPoint(query orb.Point, g *Geometry, m Metric) (orb.Point, float64) {
	pts := g.vertices
	if g.Kind == KindPoint || len(pts) == 1 {
		return pts[0], m.Distance(query, pts[0])
	}

	segments := len(pts) - 1
	if g.Kind == KindPolygon {
		segments = len(pts)
	}

	best := pts[0]
	bestDist := math.Inf(1)
	for i := 0; i < segments; i++ {
		a := pts[i]
		b := pts[(i+1)%len(pts)]
		p := projectOnSegment(query, a, b)
		if d := m.Distance(query, p); d < bestDist {
			best = p
			bestDist = d
		}
	}
	return best, bestDist
}

// projectOnSegment returns the point of segment ab nearest to p in the plane.
func projectOnSegment(p, a, b orb.Point) orb.Point {
	dx := b[0] - a[0]
	dy := b[1] - a[1]
	l2 := dx*dx + dy*dy
	if l2 == 0 {
		return a
	}
	t := ((p[0]-a[0])*dx + (p[1]-a[1])*dy) / l2
	if t <= 0 {
		return a
	}
	if t >= 1 {
		return b
	}
	return orb.Point{a[0] + t*dx, a[1] + t*dy}
}

// ClosestAmong returns the candidate nearest to query whose distance is at
// most threshold, or nil if there is none. Ties go to the earlier candidate,
// so callers pass candidates in registration order.
func ClosestAmong(query orb.Point, candidates []*Geometry, threshold float64, m Metric) *Match {
	var best Match
	found := false
	for _, g := range candidates {
		p, d := ClosestPoint(query, g, m)
		if !(d <= threshold) { // also rejects NaN
			continue
		}
		if !found || d < best.Distance {
			best = Match{Geometry: g, ID: g.id, Point: p, Distance: d}
			found = true
		}
	}
	if !found {
		return nil
	}
	return &best
}
