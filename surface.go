package almostover

import "github.com/paulmach/orb"

// Surface is the host map or canvas a Tracker attaches to. Positions are
// delivered in surface coordinates. Each subscription returns a function
// that cancels it.
type Surface interface {
	Projector
	OnPointerMove(fn func(p orb.Point)) (unsubscribe func())
	OnClick(fn func(p orb.Point, c ClickType)) (unsubscribe func())
	OnViewChange(fn func()) (unsubscribe func())
}
