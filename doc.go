// Package almostover adds "near-miss" detection to pointer-driven map and
// canvas surfaces.
//
// A [Tracker] watches the pointer and reports when it comes within a fixed
// on-screen distance of a registered [Geometry] (a point, a polyline, or a
// polygon boundary), even though the pointer is not exactly over it. The
// tracker turns the raw pointer stream into four events: enter, move, leave,
// and click, each carrying the geometry and the snapped point on it.
//
// # Quick start
//
//	tr := almostover.NewTracker(almostover.DefaultOptions())
//	line := almostover.NewPolyline(orb.LineString{{0, 0}, {0, 10}})
//	if _, err := tr.Add(line); err != nil {
//		return err
//	}
//	tr.OnEnter(func(e almostover.Event) { fmt.Println("near", e.ID) })
//	tr.OnLeave(func(e almostover.Event) { fmt.Println("left", e.ID) })
//	tr.Start(surface)
//
// The host surface is anything implementing [Surface]: it delivers pointer
// moves, clicks, and view changes in map coordinates and converts screen
// pixels to map coordinates. Hosts that prefer pushing events can call
// [Tracker.HandleMove], [Tracker.HandleClick], and [Tracker.HandleViewChange]
// directly. The ebitenhost sub-package provides a ready-made surface for
// [Ebitengine] games and [View] is a planar camera that can serve as the
// projection.
//
// # Pipeline
//
// Raw moves are rate-limited by a [Sampler] (drop-only, never delayed), then
// resolved against the [Registry] by the closest-point engine ([ClosestAmong])
// using the coordinate-space radius maintained by a [BufferTranslator]. The
// result drives a two-state machine (idle or near a geometry) that emits
// leave before enter before move. Clicks skip the sampler and are resolved
// at their own position.
//
// Distances are measured with a pluggable [Metric]: [Planar] for flat
// coordinates and [Geodesic] for longitude/latitude surfaces.
//
// An optional [SpatialIndex] (see [RTreeIndex]) narrows the candidates before
// the exact scan. It never changes which geometry is reported.
//
// The package is single-threaded: all methods must be called from the loop
// that dispatches input events.
//
// [Ebitengine]: https://ebitengine.org
package almostover
