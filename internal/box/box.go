// Package box implements draggable/resizable boxes: activation tracking, the
// resize and drag engines, and the controller that mounts them on a surface.
package box

import (
	"sync"

	"go.uber.org/zap"

	"github.com/frudas24/flexbox/internal/geom"
	"github.com/frudas24/flexbox/internal/pointer"
	"github.com/frudas24/flexbox/internal/state"
	"github.com/frudas24/flexbox/internal/surface"
)

// Mode is the interaction state of a box.
type Mode string

const (
	// ModeIdle means neither dragging nor resizing.
	ModeIdle Mode = "idle"
	// ModeDragging means a drag is in progress.
	ModeDragging Mode = "dragging"
	// ModeResizing means a resize is in progress.
	ModeResizing Mode = "resizing"
)

var (
	moveKinds = []pointer.Kind{pointer.Move}
	upKinds   = []pointer.Kind{pointer.Up}
)

// Cells exposes the observable state of a box.
type Cells struct {
	Top      *state.Cell[float64]
	Left     *state.Cell[float64]
	Width    *state.Cell[float64]
	Height   *state.Cell[float64]
	Enabled  *state.Cell[bool]
	Dragging *state.Cell[bool]
	Resizing *state.Cell[bool]
}

// Box is one draggable/resizable region. It owns its geometry, constraint
// and flag cells, and wires the activation tracker and both engines onto a
// surface when mounted.
//
// A Box is not safe for concurrent use; callers serialise event dispatch.
type Box struct {
	id    string
	log   *zap.Logger
	sink  Sink
	batch *state.Batch

	top, left, width, height      *state.Cell[float64]
	enabled, draggable, resizable *state.Cell[bool]
	dragging, resizing            *state.Cell[bool]

	minW, minH, maxW, maxH              *state.Cell[float64]
	minLeft, minTop, minRight, minBottom *state.Cell[float64]

	handles     []geom.Handle
	classNames  ClassNames
	handleSize  float64
	clampResize bool

	numProps  map[string]*state.Sync[float64]
	boolProps map[string]*state.Sync[bool]
	unsubs    []state.Unsubscribe

	resizer *Resizer
	dragger *Dragger

	mu        sync.Mutex
	container *surface.Element
	grips     map[geom.Handle]*surface.Element
}

// New builds a box from opts. A nil sink drops notifications and a nil
// logger logs nothing.
func New(id string, opts Options, sink Sink, log *zap.Logger) *Box {
	if sink == nil {
		sink = nopSink{}
	}
	if log == nil {
		log = zap.NewNop()
	}
	if opts.HandleSize <= 0 {
		opts.HandleSize = DefaultHandleSize
	}
	batch := state.NewBatch()
	num := func(v float64) *state.Cell[float64] { return state.NewCellIn(batch, v) }
	flag := func(v bool) *state.Cell[bool] { return state.NewCellIn(batch, v) }

	b := &Box{
		id:          id,
		log:         log.With(zap.String("box", id)),
		sink:        sink,
		batch:       batch,
		top:         num(opts.Y),
		left:        num(opts.X),
		width:       num(opts.W),
		height:      num(opts.H),
		enabled:     flag(opts.Active),
		draggable:   flag(opts.Draggable),
		resizable:   flag(opts.Resizable),
		dragging:    flag(false),
		resizing:    flag(false),
		minW:        num(float64(opts.MinW)),
		minH:        num(float64(opts.MinH)),
		maxW:        num(float64(opts.MaxW)),
		maxH:        num(float64(opts.MaxH)),
		minLeft:     num(float64(opts.MinLeft)),
		minTop:      num(float64(opts.MinTop)),
		minRight:    num(float64(opts.MinRight)),
		minBottom:   num(float64(opts.MinBottom)),
		handles:     append([]geom.Handle(nil), opts.Handles...),
		classNames:  opts.ClassNames.withDefaults(),
		handleSize:  opts.HandleSize,
		clampResize: opts.ClampResize,
	}
	b.resizer = &Resizer{
		enabled:   b.enabled,
		resizable: b.resizable,
		resizing:  b.resizing,
		dragging:  b.dragging,
		apply:     b.applyResize,
	}
	b.dragger = &Dragger{
		enabled:   b.enabled,
		draggable: b.draggable,
		dragging:  b.dragging,
		resizing:  b.resizing,
		apply:     b.applyDrag,
	}
	b.watchTransitions()
	b.watchGates()
	b.bindProps()
	return b
}

// ID returns the box id.
func (b *Box) ID() string { return b.id }

// Cells returns the observable state cells.
func (b *Box) Cells() Cells {
	return Cells{
		Top:      b.top,
		Left:     b.left,
		Width:    b.width,
		Height:   b.height,
		Enabled:  b.enabled,
		Dragging: b.dragging,
		Resizing: b.resizing,
	}
}

// Rect returns the current geometry.
func (b *Box) Rect() geom.Rect {
	return geom.Rect{Top: b.top.Get(), Left: b.left.Get(), Width: b.width.Get(), Height: b.height.Get()}
}

// Mode returns the current interaction mode.
func (b *Box) Mode() Mode {
	switch {
	case b.dragging.Get():
		return ModeDragging
	case b.resizing.Get():
		return ModeResizing
	default:
		return ModeIdle
	}
}

// Active reports the enable flag.
func (b *Box) Active() bool { return b.enabled.Get() }

// Constraints returns the current constraint set.
func (b *Box) Constraints() Constraints {
	return Constraints{
		MinW:      Limit(b.minW.Get()),
		MinH:      Limit(b.minH.Get()),
		MaxW:      Limit(b.maxW.Get()),
		MaxH:      Limit(b.maxH.Get()),
		MinLeft:   Limit(b.minLeft.Get()),
		MinTop:    Limit(b.minTop.Get()),
		MinRight:  Limit(b.minRight.Get()),
		MinBottom: Limit(b.minBottom.Get()),
	}
}

// Handles returns the configured handles after validation; rejected entries
// are HandleNone.
func (b *Box) Handles() []geom.Handle {
	return geom.ValidateHandles(b.handles)
}

// Resizer returns the resize engine.
func (b *Box) Resizer() *Resizer { return b.resizer }

// Dragger returns the drag engine.
func (b *Box) Dragger() *Dragger { return b.dragger }

// SetActive writes the enable flag.
func (b *Box) SetActive(v bool) { b.enabled.Set(v) }

// SetWidth writes the width cell.
func (b *Box) SetWidth(v float64) { b.width.Set(v) }

// SetHeight writes the height cell.
func (b *Box) SetHeight(v float64) { b.height.Set(v) }

// SetTop writes the top cell.
func (b *Box) SetTop(v float64) { b.top.Set(v) }

// SetLeft writes the left cell.
func (b *Box) SetLeft(v float64) { b.left.Set(v) }

// Mount attaches the box to container inside doc and returns the teardown
// that releases every listener, subscription and handle element it created.
// With a nil document or container nothing is attached; the returned
// teardown is still safe to call, as many times as wanted.
func (b *Box) Mount(doc *surface.Document, container *surface.Element) (teardown func()) {
	var (
		cleanups []func()
		once     sync.Once
	)
	teardown = func() {
		once.Do(func() {
			for i := len(cleanups) - 1; i >= 0; i-- {
				cleanups[i]()
			}
		})
	}
	if doc == nil || container == nil {
		b.log.Debug("mount skipped, no container")
		return teardown
	}

	b.mu.Lock()
	b.container = container
	b.grips = make(map[geom.Handle]*surface.Element)
	b.mu.Unlock()
	cleanups = append(cleanups, func() {
		b.mu.Lock()
		b.container = nil
		b.grips = nil
		b.mu.Unlock()
	})

	cleanups = append(cleanups, NewActivation(doc, container, b.SetActive).Attach())

	for _, h := range b.Handles() {
		if h == geom.HandleNone {
			continue
		}
		el, err := doc.Append(container.ID()+":"+string(h), container, geom.Rect{})
		if err != nil {
			b.log.Warn("handle element not created", zap.String("handle", string(h)), zap.Error(err))
			continue
		}
		h := h
		cleanups = append(cleanups,
			doc.Listen(el, downKinds, func(ev *surface.Event) { b.resizer.Down(ev, h) }),
			func() { doc.Remove(el) },
		)
		b.mu.Lock()
		b.grips[h] = el
		b.mu.Unlock()
	}

	root := doc.Root()
	cleanups = append(cleanups,
		doc.Listen(root, moveKinds, b.resizer.Move),
		doc.Listen(root, upKinds, b.resizer.Up),
		doc.Listen(container, downKinds, b.dragger.Down),
		doc.Listen(root, moveKinds, b.dragger.Move),
		doc.Listen(root, upKinds, b.dragger.Up),
	)

	b.layout()
	relayout := func(float64) { b.layout() }
	for _, c := range []*state.Cell[float64]{b.top, b.left, b.width, b.height} {
		cleanups = append(cleanups, c.Subscribe(relayout))
	}
	return teardown
}

// Close stops all value notifications. Call after the mount teardown.
func (b *Box) Close() {
	for _, u := range b.unsubs {
		u()
	}
	for _, s := range b.numProps {
		s.Close()
	}
	for _, s := range b.boolProps {
		s.Close()
	}
}

// parentSize measures the container's parent on every call so that parent
// resizes are honoured immediately.
func (b *Box) parentSize() geom.Size {
	b.mu.Lock()
	container := b.container
	b.mu.Unlock()
	if container == nil {
		return geom.Unmeasured
	}
	return geom.Measure(container.Parent())
}

// applyResize adds one resize tick to the geometry.
func (b *Box) applyResize(d ResizeDelta) {
	prev := b.Rect()
	next := d.Apply(prev)
	if b.clampResize {
		next = ClampResize(prev, next, d, b.Constraints())
	}
	b.batch.Run(func() {
		if d.Has(FieldWidth) {
			b.width.Set(next.Width)
		}
		if d.Has(FieldHeight) {
			b.height.Set(next.Height)
		}
		if d.Has(FieldTop) {
			b.top.Set(next.Top)
		}
		if d.Has(FieldLeft) {
			b.left.Set(next.Left)
		}
	})
}

// applyDrag moves the box by one drag tick. Each axis is accepted or dropped
// on its own.
func (b *Box) applyDrag(dist Distance) {
	parent := b.parentSize()
	c := b.Constraints()
	r := b.Rect()
	b.batch.Run(func() {
		if top, ok := SafeOffset(r.Top, dist.Y, r.Height, parent.H, c.MinTop, c.MinBottom); ok {
			b.top.Set(top)
		}
		if left, ok := SafeOffset(r.Left, dist.X, r.Width, parent.W, c.MinLeft, c.MinRight); ok {
			b.left.Set(left)
		}
	})
}

// layout mirrors the geometry onto the container and its handle elements.
func (b *Box) layout() {
	b.mu.Lock()
	container := b.container
	grips := make(map[geom.Handle]*surface.Element, len(b.grips))
	for h, el := range b.grips {
		grips[h] = el
	}
	b.mu.Unlock()
	if container == nil {
		return
	}
	r := b.Rect()
	container.SetRect(r)
	for h, el := range grips {
		el.SetRect(gripRect(h, r, b.handleSize))
	}
}

// gripRect places a handle square inside r at the handle's anchor.
func gripRect(h geom.Handle, r geom.Rect, size float64) geom.Rect {
	fx, fy := h.Anchor()
	s := size
	if s > r.Width {
		s = r.Width
	}
	if s > r.Height {
		s = r.Height
	}
	if s < 0 {
		s = 0
	}
	return geom.Rect{
		Left:   fx * (r.Width - s),
		Top:    fy * (r.Height - s),
		Width:  s,
		Height: s,
	}
}

// watchTransitions emits lifecycle events on flag transitions.
func (b *Box) watchTransitions() {
	b.unsubs = append(b.unsubs,
		b.enabled.Subscribe(func(on bool) {
			b.emitTransition(on, EventActivated, EventDeactivated)
		}),
		b.dragging.Subscribe(func(on bool) {
			b.emitTransition(on, EventDragStart, EventDragEnd)
		}),
		b.resizing.Subscribe(func(on bool) {
			b.emitTransition(on, EventResizeStart, EventResizeEnd)
		}),
	)
}

// watchGates cancels a running drag or resize when its gate closes, so the
// mode cannot outlive the pointer-up that the closed gate now ignores.
func (b *Box) watchGates() {
	b.unsubs = append(b.unsubs,
		b.enabled.Subscribe(func(on bool) {
			if !on {
				b.dragger.Cancel()
				b.resizer.Cancel()
			}
		}),
		b.draggable.Subscribe(func(on bool) {
			if !on {
				b.dragger.Cancel()
			}
		}),
		b.resizable.Subscribe(func(on bool) {
			if !on {
				b.resizer.Cancel()
			}
		}),
	)
}

// emitTransition reports a flag change as its start or end event.
func (b *Box) emitTransition(on bool, start, end EventType) {
	t := end
	if on {
		t = start
	}
	b.log.Debug("transition", zap.String("event", string(t)))
	b.sink.Emit(Event{Box: b.id, Type: t})
}
