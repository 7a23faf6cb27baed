package almostover

import (
	"math"

	"github.com/paulmach/orb"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// viewAnim holds active pan/zoom tweens. A nil tween is not animating.
type viewAnim struct {
	tweenX    *gween.Tween
	tweenY    *gween.Tween
	tweenZoom *gween.Tween
}

func (a *viewAnim) done() bool {
	return a.tweenX == nil && a.tweenY == nil && a.tweenZoom == nil
}

type viewListener struct {
	id uint32
	fn func()
}

// View is a planar camera over a surface: it maps screen pixels to surface
// coordinates through pan, zoom, and rotation, and notifies listeners when
// the mapping changes. It satisfies Projector and is what the ebiten host
// uses as its projection.
type View struct {
	// X and Y are the surface coordinates shown at the viewport center.
	X, Y float64
	// Zoom is the number of screen pixels per surface unit.
	Zoom float64
	// Rotation is the view rotation in radians (clockwise).
	Rotation float64
	// Width and Height are the viewport size in pixels.
	Width, Height float64

	viewMatrix    [6]float64
	invViewMatrix [6]float64
	dirty         bool

	anim      *viewAnim
	listeners []viewListener
	nextID    uint32
}

// NewView creates a view of the given viewport size centered on the origin
// at zoom 1.
func NewView(width, height float64) *View {
	return &View{
		Zoom:   1,
		Width:  width,
		Height: height,
		dirty:  true,
	}
}

// OnChange registers fn to run whenever the screen/surface mapping changes.
// The returned function unregisters it and may be called from inside fn.
func (v *View) OnChange(fn func()) (unsubscribe func()) {
	v.nextID++
	id := v.nextID
	v.listeners = append(v.listeners, viewListener{id: id, fn: fn})
	return func() {
		for i := range v.listeners {
			if v.listeners[i].id == id {
				v.listeners = append(v.listeners[:i:i], v.listeners[i+1:]...)
				return
			}
		}
	}
}

// SetCenter pans the view so (x, y) is at the viewport center.
func (v *View) SetCenter(x, y float64) {
	v.X, v.Y = x, y
	v.MarkDirty()
}

// SetZoom sets the zoom factor. Non-positive values are ignored.
func (v *View) SetZoom(z float64) {
	if z <= 0 {
		return
	}
	v.Zoom = z
	v.MarkDirty()
}

// SetRotation sets the rotation in radians.
func (v *View) SetRotation(r float64) {
	v.Rotation = r
	v.MarkDirty()
}

// Resize changes the viewport size.
func (v *View) Resize(width, height float64) {
	v.Width, v.Height = width, height
	v.MarkDirty()
}

// MarkDirty forces the matrices to be recomputed and notifies listeners.
// Call it after modifying the exported fields directly.
func (v *View) MarkDirty() {
	v.dirty = true
	for _, l := range v.listeners {
		l.fn()
	}
}

// ZoomTo animates the zoom factor to z over duration seconds.
func (v *View) ZoomTo(z float64, duration float32, easeFn ease.TweenFunc) {
	if z <= 0 {
		return
	}
	if v.anim == nil {
		v.anim = &viewAnim{}
	}
	v.anim.tweenZoom = gween.New(float32(v.Zoom), float32(z), duration, easeFn)
}

// PanTo animates the view center to (x, y) over duration seconds.
func (v *View) PanTo(x, y float64, duration float32, easeFn ease.TweenFunc) {
	if v.anim == nil {
		v.anim = &viewAnim{}
	}
	v.anim.tweenX = gween.New(float32(v.X), float32(x), duration, easeFn)
	v.anim.tweenY = gween.New(float32(v.Y), float32(y), duration, easeFn)
}

// Animating reports whether a ZoomTo or PanTo is in progress.
func (v *View) Animating() bool {
	return v.anim != nil
}

// Update advances animations by dt seconds and notifies listeners if the
// view changed.
func (v *View) Update(dt float32) {
	if v.anim == nil {
		return
	}
	prevX, prevY, prevZoom := v.X, v.Y, v.Zoom

	if tw := v.anim.tweenX; tw != nil {
		val, done := tw.Update(dt)
		v.X = float64(val)
		if done {
			v.anim.tweenX = nil
		}
	}
	if tw := v.anim.tweenY; tw != nil {
		val, done := tw.Update(dt)
		v.Y = float64(val)
		if done {
			v.anim.tweenY = nil
		}
	}
	if tw := v.anim.tweenZoom; tw != nil {
		val, done := tw.Update(dt)
		if val > 0 {
			v.Zoom = float64(val)
		}
		if done {
			v.anim.tweenZoom = nil
		}
	}
	if v.anim.done() {
		v.anim = nil
	}

	if v.X != prevX || v.Y != prevY || v.Zoom != prevZoom {
		v.MarkDirty()
	}
}

// computeViewMatrix recomputes the cached matrices if dirty.
//
// viewMatrix = Translate(cx, cy) * Scale(zoom) * Rotate(-rotation) * Translate(-X, -Y)
// where cx, cy = viewport center.
func (v *View) computeViewMatrix() [6]float64 {
	if !v.dirty {
		return v.viewMatrix
	}
	v.dirty = false

	cx := v.Width / 2
	cy := v.Height / 2

	sin, cos := math.Sincos(-v.Rotation)
	z := v.Zoom

	a := z * cos
	b := -z * sin
	c := z * sin
	d := z * cos
	tx := cx + z*(-cos*v.X+sin*v.Y)
	ty := cy + z*(-sin*v.X-cos*v.Y)

	v.viewMatrix = [6]float64{a, c, b, d, tx, ty}
	v.invViewMatrix = invertAffine(v.viewMatrix)
	return v.viewMatrix
}

// WorldToScreen converts surface coordinates to screen pixels.
func (v *View) WorldToScreen(p orb.Point) (sx, sy float64) {
	v.computeViewMatrix()
	return transformPoint(v.viewMatrix, p[0], p[1])
}

// ScreenToWorld converts screen pixels to surface coordinates.
func (v *View) ScreenToWorld(sx, sy float64) orb.Point {
	v.computeViewMatrix()
	x, y := transformPoint(v.invViewMatrix, sx, sy)
	return orb.Point{x, y}
}

// VisibleBounds returns the axis-aligned box of surface coordinates visible
// in the viewport.
func (v *View) VisibleBounds() orb.Bound {
	b := v.ScreenToWorld(0, 0).Bound()
	b = b.Extend(v.ScreenToWorld(v.Width, 0))
	b = b.Extend(v.ScreenToWorld(v.Width, v.Height))
	return b.Extend(v.ScreenToWorld(0, v.Height))
}

// --- Affine helpers ---
//
//	Matrix layout: [a, b, c, d, tx, ty]
//	| a  c  tx |
//	| b  d  ty |
//	| 0  0   1 |

var identityTransform = [6]float64{1, 0, 0, 1, 0, 0}

// invertAffine computes the inverse of a 2D affine matrix.
// Returns the identity matrix if the matrix is singular.
func invertAffine(m [6]float64) [6]float64 {
	det := m[0]*m[3] - m[2]*m[1]
	if det > -1e-12 && det < 1e-12 {
		return identityTransform
	}
	invDet := 1.0 / det
	a := m[3] * invDet
	b := -m[1] * invDet
	c := -m[2] * invDet
	d := m[0] * invDet
	return [6]float64{
		a, b, c, d,
		-(a*m[4] + c*m[5]),
		-(b*m[4] + d*m[5]),
	}
}

// transformPoint applies an affine matrix to a point.
func transformPoint(m [6]float64, x, y float64) (float64, float64) {
	return m[0]*x + m[2]*y + m[4], m[1]*x + m[3]*y + m[5]
}
