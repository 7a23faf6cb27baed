package almostover

import (
	"testing"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"
)

func TestPlanarMetric(t *testing.T) {
	if d := Planar.Distance(orb.Point{0, 0}, orb.Point{3, 4}); !approxEqual(d, 5, epsilon) {
		t.Errorf("Distance = %v, want 5", d)
	}
	b := Planar.BoundAround(orb.Point{10, 20}, 5)
	want := orb.Bound{Min: orb.Point{5, 15}, Max: orb.Point{15, 25}}
	if !b.Equal(want) {
		t.Errorf("BoundAround = %v, want %v", b, want)
	}
}

func TestGeodesicDistance(t *testing.T) {
	// One degree of latitude on a sphere of radius orb.EarthRadius.
	d := Geodesic.Distance(orb.Point{2.35, 48.85}, orb.Point{2.35, 49.85})
	if !approxEqual(d, 111319.5, 1) {
		t.Errorf("Distance = %v, want ~111319.5 m", d)
	}
}

func TestGeodesicBoundAroundContainsCircle(t *testing.T) {
	tests := []struct {
		name   string
		center orb.Point
		radius float64
	}{
		{"equator", orb.Point{0, 0}, 5000},
		{"mid latitude", orb.Point{2.35, 48.85}, 20000},
		{"high latitude", orb.Point{20, 80}, 50000},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := Geodesic.BoundAround(tt.center, tt.radius)
			// Probe points on the circle every 15 degrees of bearing.
			for bearing := 0.0; bearing < 360; bearing += 15 {
				p := geo.PointAtBearingAndDistance(tt.center, bearing, tt.radius*0.999)
				if !b.Contains(p) {
					t.Errorf("bearing %v: %v outside %v", bearing, p, b)
				}
			}
		})
	}
}

func TestGeodesicBoundAroundPole(t *testing.T) {
	b := Geodesic.BoundAround(orb.Point{0, 89.99}, 10000)
	if b.Min.Lon() != -180 || b.Max.Lon() != 180 {
		t.Errorf("bound near the pole = %v, want full longitude span", b)
	}
}
