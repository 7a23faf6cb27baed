// Package ebitenhost connects an almostover.Tracker to an Ebitengine game.
//
// A [Host] polls the mouse once per frame, converts the cursor from screen
// pixels to surface coordinates through an [almostover.View], and delivers
// moves, clicks, and view changes to whoever subscribed, normally a tracker
// via [almostover.Tracker.Start]. Call [Host.Update] from the game's Update.
package ebitenhost

import (
	"math"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/makinacorpus/almostover"
	"github.com/paulmach/orb"
)

const (
	defaultDoubleClickInterval = 500 * time.Millisecond
	defaultDoubleClickSlop     = 4.0 // pixels
	defaultWheelZoom           = 1.1 // zoom factor per wheel notch
)

type moveListener struct {
	id uint32
	fn func(orb.Point)
}

type clickListener struct {
	id uint32
	fn func(orb.Point, almostover.ClickType)
}

// Host is an almostover.Surface fed by ebiten input.
type Host struct {
	// DoubleClickInterval is the longest gap between two clicks that still
	// counts as a double-click.
	DoubleClickInterval time.Duration
	// DoubleClickSlop is how far, in pixels, the second click may land from the first.
	DoubleClickSlop float64
	// WheelZoom is the zoom factor applied per wheel notch, around the
	// cursor. Zero disables wheel zooming.
	WheelZoom float64
	// Now is the clock used for double-click detection. nil means time.Now.
	Now func() time.Time

	view *almostover.View

	moves  []moveListener
	clicks []clickListener
	nextID uint32

	lastX, lastY float64
	havePos      bool

	lastClick     time.Time
	lastClickX    float64
	lastClickY    float64
	lastWasSingle bool

	injectQueue []syntheticEvent
	script      *Script
}

// New creates a host projecting through view.
func New(view *almostover.View) *Host {
	return &Host{
		DoubleClickInterval: defaultDoubleClickInterval,
		DoubleClickSlop:     defaultDoubleClickSlop,
		WheelZoom:           defaultWheelZoom,
		view:                view,
	}
}

// View returns the host's view.
func (h *Host) View() *almostover.View {
	return h.view
}

// ScreenToWorld converts screen pixels to surface coordinates.
func (h *Host) ScreenToWorld(x, y float64) orb.Point {
	return h.view.ScreenToWorld(x, y)
}

// OnPointerMove subscribes fn to cursor movement in surface coordinates.
// Unsubscribing during a dispatch takes effect from the next one.
func (h *Host) OnPointerMove(fn func(orb.Point)) func() {
	h.nextID++
	id := h.nextID
	h.moves = append(h.moves, moveListener{id: id, fn: fn})
	return func() {
		for i := range h.moves {
			if h.moves[i].id == id {
				h.moves = append(h.moves[:i:i], h.moves[i+1:]...)
				return
			}
		}
	}
}

// OnClick subscribes fn to clicks in surface coordinates.
func (h *Host) OnClick(fn func(orb.Point, almostover.ClickType)) func() {
	h.nextID++
	id := h.nextID
	h.clicks = append(h.clicks, clickListener{id: id, fn: fn})
	return func() {
		for i := range h.clicks {
			if h.clicks[i].id == id {
				h.clicks = append(h.clicks[:i:i], h.clicks[i+1:]...)
				return
			}
		}
	}
}

// OnViewChange subscribes fn to pan, zoom, and rotation changes of the view.
func (h *Host) OnViewChange(fn func()) func() {
	return h.view.OnChange(fn)
}

// Update advances view animations by dt seconds, advances the attached
// script, and processes one frame of input. A queued synthetic event, if
// any, replaces real mouse input for this frame.
func (h *Host) Update(dt float32) {
	h.view.Update(dt)

	if h.script != nil {
		h.script.step(h)
	}
	if h.processInjectedInput() {
		return
	}

	mx, my := ebiten.CursorPosition()
	sx, sy := float64(mx), float64(my)
	h.pointer(sx, sy)

	if inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) {
		h.click(sx, sy, false)
	}
	if inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonRight) {
		h.click(sx, sy, true)
	}
	if _, wy := ebiten.Wheel(); wy != 0 && h.WheelZoom > 0 {
		h.zoomAround(sx, sy, math.Pow(h.WheelZoom, wy))
	}
}

// pointer fires a move when the cursor position changed since the last frame.
func (h *Host) pointer(sx, sy float64) {
	if h.havePos && sx == h.lastX && sy == h.lastY {
		return
	}
	h.havePos = true
	h.lastX, h.lastY = sx, sy
	p := h.view.ScreenToWorld(sx, sy)
	for _, l := range h.moves {
		l.fn(p)
	}
}

// click fires a single (or context) click, followed by a double-click when
// it completes a pair.
func (h *Host) click(sx, sy float64, secondary bool) {
	p := h.view.ScreenToWorld(sx, sy)
	if secondary {
		h.fireClick(p, almostover.ClickContext)
		h.lastWasSingle = false
		return
	}

	now := h.now()
	double := h.lastWasSingle &&
		now.Sub(h.lastClick) <= h.DoubleClickInterval &&
		math.Hypot(sx-h.lastClickX, sy-h.lastClickY) <= h.DoubleClickSlop

	h.fireClick(p, almostover.ClickSingle)
	if double {
		h.fireClick(p, almostover.ClickDouble)
		h.lastWasSingle = false
		return
	}
	h.lastWasSingle = true
	h.lastClick = now
	h.lastClickX, h.lastClickY = sx, sy
}

func (h *Host) fireClick(p orb.Point, c almostover.ClickType) {
	for _, l := range h.clicks {
		l.fn(p, c)
	}
}

// zoomAround multiplies the zoom by factor keeping the surface point under
// (sx, sy) fixed on screen.
func (h *Host) zoomAround(sx, sy, factor float64) {
	v := h.view
	before := v.ScreenToWorld(sx, sy)
	v.Zoom *= factor
	v.MarkDirty()
	after := v.ScreenToWorld(sx, sy)
	v.SetCenter(v.X+before[0]-after[0], v.Y+before[1]-after[1])
}

func (h *Host) now() time.Time {
	if h.Now != nil {
		return h.Now()
	}
	return time.Now()
}
