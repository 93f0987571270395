// Package box implements draggable/resizable boxes.
package box

import (
	"github.com/frudas24/flexbox/internal/geom"
	"github.com/frudas24/flexbox/internal/pointer"
	"github.com/frudas24/flexbox/internal/state"
	"github.com/frudas24/flexbox/internal/surface"
)

// DeltaField marks which parts of a ResizeDelta are set.
type DeltaField uint8

const (
	// FieldWidth marks Width as set.
	FieldWidth DeltaField = 1 << iota
	// FieldHeight marks Height as set.
	FieldHeight
	// FieldTop marks Top as set.
	FieldTop
	// FieldLeft marks Left as set.
	FieldLeft
)

// ResizeDelta is the partial geometry update produced by one resize tick.
// Unset fields leave the matching dimension untouched.
type ResizeDelta struct {
	Width  float64
	Height float64
	Top    float64
	Left   float64
	Fields DeltaField
}

// Has reports whether f is set.
func (d ResizeDelta) Has(f DeltaField) bool {
	return d.Fields&f != 0
}

// HandleDelta converts a pointer delta into the geometry delta for handle h.
// Left/top handles move the matching edge and shrink the box as it moves
// inward; right/bottom handles only grow or shrink the box.
func HandleDelta(h geom.Handle, dx, dy float64) ResizeDelta {
	switch h {
	case geom.HandleML:
		return ResizeDelta{Width: -dx, Left: dx, Fields: FieldWidth | FieldLeft}
	case geom.HandleMR:
		return ResizeDelta{Width: dx, Fields: FieldWidth}
	case geom.HandleTM:
		return ResizeDelta{Height: -dy, Top: dy, Fields: FieldHeight | FieldTop}
	case geom.HandleBM:
		return ResizeDelta{Height: dy, Fields: FieldHeight}
	case geom.HandleTL:
		return ResizeDelta{Width: -dx, Height: -dy, Top: dy, Left: dx, Fields: FieldWidth | FieldHeight | FieldTop | FieldLeft}
	case geom.HandleTR:
		return ResizeDelta{Width: dx, Height: -dy, Top: dy, Fields: FieldWidth | FieldHeight | FieldTop}
	case geom.HandleBL:
		return ResizeDelta{Width: -dx, Height: dy, Left: dx, Fields: FieldWidth | FieldHeight | FieldLeft}
	case geom.HandleBR:
		return ResizeDelta{Width: dx, Height: dy, Fields: FieldWidth | FieldHeight}
	default:
		return ResizeDelta{}
	}
}

// Apply returns r with the set fields of d added.
func (d ResizeDelta) Apply(r geom.Rect) geom.Rect {
	if d.Has(FieldWidth) {
		r.Width += d.Width
	}
	if d.Has(FieldHeight) {
		r.Height += d.Height
	}
	if d.Has(FieldTop) {
		r.Top += d.Top
	}
	if d.Has(FieldLeft) {
		r.Left += d.Left
	}
	return r
}

// ClampResize bounds the size of next to c. When a clamp bites on a handle
// that also moves the left or top edge, that edge is pinned so the opposite
// edge of prev stays where it was.
func ClampResize(prev, next geom.Rect, d ResizeDelta, c Constraints) geom.Rect {
	if d.Has(FieldWidth) {
		w := clamp(next.Width, float64(c.MinW), float64(c.MaxW))
		if w != next.Width && d.Has(FieldLeft) {
			next.Left = prev.Right() - w
		}
		next.Width = w
	}
	if d.Has(FieldHeight) {
		h := clamp(next.Height, float64(c.MinH), float64(c.MaxH))
		if h != next.Height && d.Has(FieldTop) {
			next.Top = prev.Bottom() - h
		}
		next.Height = h
	}
	return next
}

// clamp bounds v to [lo, hi].
func clamp(v, lo, hi float64) float64 {
	if v < lo {
		v = lo
	}
	if v > hi {
		v = hi
	}
	return v
}

// Resizer is the resize state machine of one box. The active handle and the
// pointer baseline only exist while resizing.
type Resizer struct {
	enabled   *state.Cell[bool]
	resizable *state.Cell[bool]
	resizing  *state.Cell[bool]
	dragging  *state.Cell[bool]
	apply     func(ResizeDelta)

	handle geom.Handle
	prevX  float64
	prevY  float64
}

// Handle returns the active handle, or HandleNone when idle.
func (r *Resizer) Handle() geom.Handle {
	return r.handle
}

// Down starts resizing from h. It is ignored while disabled, already
// resizing, dragging, or when resizing is switched off. The default action
// is always suppressed; propagation stops only when resizing starts.
func (r *Resizer) Down(ev *surface.Event, h geom.Handle) {
	ev.PreventDefault()
	if !r.enabled.Get() || r.resizing.Get() || !r.resizable.Get() || r.dragging.Get() || !h.Valid() {
		return
	}
	ev.StopPropagation()

	r.prevX, r.prevY = pointer.Position(ev.Event)
	r.handle = h
	r.resizing.Set(true)
}

// Move converts the pointer motion since the last sample into a resize delta.
func (r *Resizer) Move(ev *surface.Event) {
	if !r.active() || r.handle == geom.HandleNone {
		return
	}
	ev.PreventDefault()

	x, y := pointer.Position(ev.Event)
	d := HandleDelta(r.handle, x-r.prevX, y-r.prevY)
	r.prevX, r.prevY = x, y
	r.apply(d)
}

// Up ends resizing.
func (r *Resizer) Up(ev *surface.Event) {
	if !r.active() {
		return
	}
	ev.PreventDefault()
	r.handle = geom.HandleNone
	r.prevX, r.prevY = 0, 0
	r.resizing.Set(false)
}

// Cancel ends a resize regardless of the gates.
func (r *Resizer) Cancel() {
	if !r.resizing.Get() {
		return
	}
	r.handle = geom.HandleNone
	r.prevX, r.prevY = 0, 0
	r.resizing.Set(false)
}

func (r *Resizer) active() bool {
	return r.enabled.Get() && r.resizing.Get() && r.resizable.Get()
}
