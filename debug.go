package almostover

import "github.com/rs/zerolog"

// logEvent records a dispatched event at debug level.
func (t *Tracker) logEvent(e Event) {
	if t.log.GetLevel() > zerolog.DebugLevel {
		return
	}
	ev := t.log.Debug().Stringer("event", e.Type).Str("id", string(e.ID))
	switch e.Type {
	case EventLeave:
	case EventClick:
		ev = ev.Stringer("click", e.ClickType).
			Float64("x", e.Point[0]).Float64("y", e.Point[1]).
			Float64("distance", e.Distance)
	default:
		ev = ev.Float64("x", e.Point[0]).Float64("y", e.Point[1]).
			Float64("distance", e.Distance)
	}
	ev.Msg("proximity")
}
