package ebitenhost

import "math"

type syntheticKind uint8

const (
	syntheticMove syntheticKind = iota
	syntheticClick
	syntheticRightClick
	syntheticWheel
)

// syntheticEvent is a single injected input event in screen coordinates,
// converted through the view exactly like real mouse input.
type syntheticEvent struct {
	kind             syntheticKind
	screenX, screenY float64
	wheel            float64
}

// InjectMove queues a cursor move to the given screen coordinates. Each
// queued event consumes one frame.
func (h *Host) InjectMove(x, y float64) {
	h.injectQueue = append(h.injectQueue, syntheticEvent{kind: syntheticMove, screenX: x, screenY: y})
}

// InjectClick queues a move to the given screen coordinates followed by a
// left click there. Consumes two frames.
func (h *Host) InjectClick(x, y float64) {
	h.InjectMove(x, y)
	h.injectQueue = append(h.injectQueue, syntheticEvent{kind: syntheticClick, screenX: x, screenY: y})
}

// InjectRightClick queues a move and a right click. Consumes two frames.
func (h *Host) InjectRightClick(x, y float64) {
	h.InjectMove(x, y)
	h.injectQueue = append(h.injectQueue, syntheticEvent{kind: syntheticRightClick, screenX: x, screenY: y})
}

// InjectWheel queues a vertical wheel scroll of dy notches with the cursor
// at the given screen coordinates.
func (h *Host) InjectWheel(x, y, dy float64) {
	h.injectQueue = append(h.injectQueue, syntheticEvent{kind: syntheticWheel, screenX: x, screenY: y, wheel: dy})
}

// InjectPath queues moves linearly interpolated from (fromX, fromY) to
// (toX, toY) over the given number of frames (minimum 2).
func (h *Host) InjectPath(fromX, fromY, toX, toY float64, frames int) {
	if frames < 2 {
		frames = 2
	}
	for i := 0; i < frames; i++ {
		t := float64(i) / float64(frames-1)
		h.InjectMove(fromX+(toX-fromX)*t, fromY+(toY-fromY)*t)
	}
}

// Pending returns the number of queued synthetic events.
func (h *Host) Pending() int {
	return len(h.injectQueue)
}

// processInjectedInput pops one event from the inject queue and runs it.
// Returns true if an event was consumed (real mouse input should be skipped).
func (h *Host) processInjectedInput() bool {
	if len(h.injectQueue) == 0 {
		return false
	}
	evt := h.injectQueue[0]
	copy(h.injectQueue, h.injectQueue[1:])
	h.injectQueue = h.injectQueue[:len(h.injectQueue)-1]

	switch evt.kind {
	case syntheticMove:
		h.pointer(evt.screenX, evt.screenY)
	case syntheticClick:
		h.pointer(evt.screenX, evt.screenY)
		h.click(evt.screenX, evt.screenY, false)
	case syntheticRightClick:
		h.pointer(evt.screenX, evt.screenY)
		h.click(evt.screenX, evt.screenY, true)
	case syntheticWheel:
		if h.WheelZoom > 0 {
			h.zoomAround(evt.screenX, evt.screenY, math.Pow(h.WheelZoom, evt.wheel))
		}
	}
	return true
}
