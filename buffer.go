package almostover

import "github.com/paulmach/orb"

// Projector converts screen pixels to surface coordinates under the current
// view (pan, zoom, projection).
type Projector interface {
	ScreenToWorld(x, y float64) orb.Point
}

// BufferTranslator keeps the coordinate-space equivalent of a pixel
// threshold. The radius is only valid for the view it was computed under and
// must be recomputed after every zoom or projection change.
type BufferTranslator struct {
	// Threshold is the on-screen distance in pixels.
	Threshold float64

	radius   float64
	computed bool
}

// Recompute measures the distance under m between the surface coordinates of
// the screen origin and of the point offset by Threshold pixels on both
// axes, stores it as the current radius, and returns it.
func (b *BufferTranslator) Recompute(p Projector, m Metric) float64 {
	origin := p.ScreenToWorld(0, 0)
	offset := p.ScreenToWorld(b.Threshold, b.Threshold)
	b.radius = m.Distance(origin, offset)
	if !finite(b.radius) {
		b.radius = 0
	}
	b.computed = true
	return b.radius
}

// Radius returns the current coordinate-space radius. It is zero until the
// first Recompute.
func (b *BufferTranslator) Radius() float64 {
	return b.radius
}

// Computed reports whether Recompute has run since the last Reset.
func (b *BufferTranslator) Computed() bool {
	return b.computed
}

// Reset discards the radius.
func (b *BufferTranslator) Reset() {
	b.radius = 0
	b.computed = false
}
