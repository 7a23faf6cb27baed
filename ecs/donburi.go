package ecs

import (
	"github.com/makinacorpus/almostover"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// ProximityEventType is the Donburi event type for almostover events.
var ProximityEventType = events.NewEventType[almostover.Event]()

type donburiSink struct {
	world donburi.World
}

// NewDonburiSink creates an EventSink that publishes to ProximityEventType
// in world.
func NewDonburiSink(world donburi.World) almostover.EventSink {
	return &donburiSink{world: world}
}

func (s *donburiSink) EmitEvent(event almostover.Event) {
	ProximityEventType.Publish(s.world, event)
}
