// Package box implements draggable/resizable boxes.
package box

import (
	"github.com/frudas24/flexbox/internal/pointer"
	"github.com/frudas24/flexbox/internal/state"
	"github.com/frudas24/flexbox/internal/surface"
)

// Distance is the pointer motion between two consecutive samples.
type Distance struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// SafeOffset moves pos by delta along one axis and reports whether the result
// keeps at least minNear to the near parent edge and minFar to the far one.
// parentExtent is the parent's size on that axis and size the box's.
func SafeOffset(pos, delta, size, parentExtent float64, minNear, minFar Limit) (float64, bool) {
	next := pos + delta
	if next >= float64(minNear) && float64(minFar) <= parentExtent-next-size {
		return next, true
	}
	return pos, false
}

// Dragger is the drag state machine of one box.
type Dragger struct {
	enabled   *state.Cell[bool]
	draggable *state.Cell[bool]
	dragging  *state.Cell[bool]
	resizing  *state.Cell[bool]
	apply     func(Distance)

	prevX float64
	prevY float64
	last  Distance
}

// Last returns the most recent drag distance.
func (d *Dragger) Last() Distance {
	return d.last
}

// Down starts dragging. It is ignored while disabled, already dragging,
// resizing, or when dragging is switched off.
func (d *Dragger) Down(ev *surface.Event) {
	ev.PreventDefault()
	if !d.enabled.Get() || !d.draggable.Get() || d.dragging.Get() || d.resizing.Get() {
		return
	}
	ev.StopPropagation()

	d.prevX, d.prevY = pointer.Position(ev.Event)
	d.dragging.Set(true)
}

// Move records the distance since the last sample and applies it.
func (d *Dragger) Move(ev *surface.Event) {
	if !d.active() {
		return
	}
	ev.PreventDefault()

	x, y := pointer.Position(ev.Event)
	d.last = Distance{X: x - d.prevX, Y: y - d.prevY}
	d.prevX, d.prevY = x, y
	d.apply(d.last)
}

// Up ends dragging.
func (d *Dragger) Up(ev *surface.Event) {
	if !d.active() {
		return
	}
	ev.PreventDefault()
	d.prevX, d.prevY = 0, 0
	d.dragging.Set(false)
}

// Cancel ends a drag regardless of the gates.
func (d *Dragger) Cancel() {
	if !d.dragging.Get() {
		return
	}
	d.prevX, d.prevY = 0, 0
	d.dragging.Set(false)
}

func (d *Dragger) active() bool {
	return d.enabled.Get() && d.draggable.Get() && d.dragging.Get()
}
