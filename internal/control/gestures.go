// Package control runs the websocket control channel for the board.
package control

import (
	"time"

	"golang.org/x/time/rate"

	"github.com/frudas24/flexbox/internal/pointer"
)

// GestureState filters the pointer stream of one connection. Only the pointer
// that went down first is followed until it goes up, and moves are rate
// limited. The engines measure deltas from the last sample they saw, so a
// dropped move only coarsens motion; the latest dropped move is replayed
// before the pointer-up so the final position is never lost.
type GestureState struct {
	limiter   *rate.Limiter
	now       func() time.Time
	active    bool
	pointerID int
	pending   *pointer.Event
}

// NewGestureState returns a tracker allowing moves per second with burst.
func NewGestureState(moves float64, burst int) *GestureState {
	return &GestureState{
		limiter: rate.NewLimiter(rate.Limit(moves), burst),
		now:     time.Now,
	}
}

// SetNowFunc overrides the clock used for throttling.
func (g *GestureState) SetNowFunc(fn func() time.Time) {
	if fn != nil {
		g.now = fn
	}
}

// HandleDown starts following ev's pointer. A second pointer going down while
// one is followed is ignored.
func (g *GestureState) HandleDown(ev pointer.Event) []pointer.Event {
	if g.active && g.pointerID != ev.ID {
		return nil
	}
	g.active = true
	g.pointerID = ev.ID
	g.pending = nil
	return []pointer.Event{ev}
}

// HandleMove forwards a move of the followed pointer when the limiter allows
// it. Moves without a pressed pointer are dropped.
func (g *GestureState) HandleMove(ev pointer.Event) []pointer.Event {
	if !g.active || g.pointerID != ev.ID {
		return nil
	}
	if !g.limiter.AllowN(g.now(), 1) {
		held := ev
		g.pending = &held
		return nil
	}
	g.pending = nil
	return []pointer.Event{ev}
}

// HandleUp ends the gesture, replaying a held move first.
func (g *GestureState) HandleUp(ev pointer.Event) []pointer.Event {
	if g.active && g.pointerID != ev.ID {
		return nil
	}
	out := make([]pointer.Event, 0, 2)
	if g.pending != nil {
		out = append(out, *g.pending)
	}
	g.active = false
	g.pending = nil
	return append(out, ev)
}
