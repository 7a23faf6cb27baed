package almostover

import (
	"fmt"

	"github.com/paulmach/orb"
)

// EventType identifies a kind of proximity event. The set is closed.
type EventType uint8

const (
	EventEnter EventType = iota // the pointer came within range of a geometry
	EventMove                   // the pointer moved while within range
	EventLeave                  // the pointer left the range of the geometry it was near
	EventClick                  // a click landed within range of a geometry

	numEventTypes
)

// String returns the event name as seen by listeners, e.g. "proximity:enter".
func (t EventType) String() string {
	switch t {
	case EventEnter:
		return "proximity:enter"
	case EventMove:
		return "proximity:move"
	case EventLeave:
		return "proximity:leave"
	case EventClick:
		return "proximity:click"
	default:
		return fmt.Sprintf("proximity:unknown(%d)", uint8(t))
	}
}

// ClickType tags the discrete activation that produced an EventClick.
type ClickType uint8

const (
	ClickSingle  ClickType = iota // primary button click
	ClickDouble                   // second click of a double-click
	ClickContext                  // secondary button click
)

// String returns the host-side name of the click type.
func (c ClickType) String() string {
	switch c {
	case ClickSingle:
		return "click"
	case ClickDouble:
		return "dblclick"
	case ClickContext:
		return "contextmenu"
	default:
		return fmt.Sprintf("click(%d)", uint8(c))
	}
}

// Event carries a proximity event to listeners.
type Event struct {
	Type     EventType
	ID       GeometryID
	Geometry *Geometry
	// Point is the snapped point on the geometry. Zero for EventLeave.
	Point orb.Point
	// Distance from the pointer to Point. Zero for EventLeave.
	Distance float64
	// ClickType is only meaningful for EventClick.
	ClickType ClickType
}

// EventSink receives every event after the listeners have run. It is the hook
// for bridging proximity events into another event system (see package ecs).
type EventSink interface {
	EmitEvent(event Event)
}

// --- Listener registry ---

type eventHandler struct {
	id uint32
	fn func(Event)
}

type handlerRegistry struct {
	handlers [numEventTypes][]eventHandler
	nextID   uint32
}

func (r *handlerRegistry) add(t EventType, fn func(Event)) CallbackHandle {
	r.nextID++
	id := r.nextID
	r.handlers[t] = append(r.handlers[t], eventHandler{id: id, fn: fn})
	return CallbackHandle{id: id, reg: r, event: t}
}

// CallbackHandle allows removing a registered listener.
type CallbackHandle struct {
	id    uint32
	reg   *handlerRegistry
	event EventType
}

// Remove unregisters the listener so it no longer fires. Removing twice is a
// no-op. It is safe to call from inside a listener, including the listener
// being removed.
func (h CallbackHandle) Remove() {
	if h.reg == nil || h.event >= numEventTypes {
		return
	}
	s := h.reg.handlers[h.event]
	for i := range s {
		if s[i].id == h.id {
			// A dispatch in progress keeps ranging over the old array.
			h.reg.handlers[h.event] = append(s[:i:i], s[i+1:]...)
			return
		}
	}
}

// OnEnter registers a listener for EventEnter.
func (t *Tracker) OnEnter(fn func(Event)) CallbackHandle {
	return t.handlers.add(EventEnter, fn)
}

// OnMove registers a listener for EventMove. A move is also fired right after
// every enter.
func (t *Tracker) OnMove(fn func(Event)) CallbackHandle {
	return t.handlers.add(EventMove, fn)
}

// OnLeave registers a listener for EventLeave.
func (t *Tracker) OnLeave(fn func(Event)) CallbackHandle {
	return t.handlers.add(EventLeave, fn)
}

// OnClick registers a listener for EventClick.
func (t *Tracker) OnClick(fn func(Event)) CallbackHandle {
	return t.handlers.add(EventClick, fn)
}

// SetEventSink sets the optional bridge that receives every event. nil disables it.
func (t *Tracker) SetEventSink(sink EventSink) {
	t.sink = sink
}

// fire dispatches e to tracker listeners, then the geometry's own callback,
// then the sink. Events fired while another is being dispatched (a listener
// calling Stop, say) are queued and delivered once it completes, so every
// consumer sees the same order.
func (t *Tracker) fire(e Event) {
	if t.dispatching {
		t.queued = append(t.queued, e)
		return
	}
	t.dispatching = true
	defer func() {
		t.dispatching = false
		t.queued = t.queued[:0]
	}()
	t.dispatch(e)
	for i := 0; i < len(t.queued); i++ {
		t.dispatch(t.queued[i])
	}
}

func (t *Tracker) dispatch(e Event) {
	for _, h := range t.handlers.handlers[e.Type] {
		h.fn(e)
	}
	if g := e.Geometry; g != nil {
		var cb func(Event)
		switch e.Type {
		case EventEnter:
			cb = g.OnEnter
		case EventMove:
			cb = g.OnMove
		case EventLeave:
			cb = g.OnLeave
		case EventClick:
			cb = g.OnClick
		}
		if cb != nil {
			cb(e)
		}
	}
	if t.sink != nil {
		t.sink.EmitEvent(e)
	}
	t.logEvent(e)
}
