package almostover

import (
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"
	"github.com/paulmach/orb/planar"
)

// Metric measures distances in the surface's coordinate space.
//
// BoundAround must return a box containing every point within radius of
// center; it is used to prefilter candidates through a SpatialIndex, so an
// undersized box would hide geometries that are in range.
type Metric interface {
	Distance(a, b orb.Point) float64
	BoundAround(center orb.Point, radius float64) orb.Bound
}

// Planar measures Euclidean distance in the coordinate units of the surface.
var Planar Metric = planarMetric{}

// Geodesic treats points as longitude/latitude in degrees and measures
// great-circle distance in metres (haversine).
var Geodesic Metric = geodesicMetric{}

type planarMetric struct{}

func (planarMetric) Distance(a, b orb.Point) float64 {
	return planar.Distance(a, b)
}

func (planarMetric) BoundAround(center orb.Point, radius float64) orb.Bound {
	return center.Bound().Pad(radius)
}

type geodesicMetric struct{}

func (geodesicMetric) Distance(a, b orb.Point) float64 {
	return geo.DistanceHaversine(a, b)
}

// BoundAround widens geo.NewBoundAroundPoint's longitude span using the
// poleward edge latitude, where a degree of longitude is shortest.
func (geodesicMetric) BoundAround(center orb.Point, radius float64) orb.Bound {
	b := geo.NewBoundAroundPoint(center, radius)
	edge := math.Max(math.Abs(b.Min.Lat()), math.Abs(b.Max.Lat()))
	if edge >= 90 {
		b.Min[0], b.Max[0] = -180, 180
		return b
	}
	dLat := b.Max.Lat() - center.Lat()
	dLon := dLat / math.Cos(edge*math.Pi/180)
	b.Min[0] = center.Lon() - dLon
	b.Max[0] = center.Lon() + dLon
	return b
}
