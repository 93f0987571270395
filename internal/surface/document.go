// Package surface models the element tree the box engine is mounted into.
package surface

import (
	"fmt"
	"sync"

	"github.com/frudas24/flexbox/internal/geom"
	"github.com/frudas24/flexbox/internal/pointer"
)

// RootID is the id of every document's root element.
const RootID = "root"

// Handler receives dispatched pointer events.
type Handler func(ev *Event)

// Event is a pointer event travelling through the element tree.
type Event struct {
	pointer.Event
	// Target is the element the event was dispatched to.
	Target *Element
	// Current is the element whose listeners are running.
	Current   *Element
	stopped   bool
	prevented bool
}

// StopPropagation keeps the event from reaching ancestors of Current. The
// remaining listeners of Current still run.
func (ev *Event) StopPropagation() { ev.stopped = true }

// PreventDefault marks the default action as suppressed.
func (ev *Event) PreventDefault() { ev.prevented = true }

// DefaultPrevented reports whether PreventDefault was called.
func (ev *Event) DefaultPrevented() bool { return ev.prevented }

// PropagationStopped reports whether StopPropagation was called.
func (ev *Event) PropagationStopped() bool { return ev.stopped }

type listener struct {
	kinds   []pointer.Kind
	handler Handler
	capture bool
	active  bool
}

func (l *listener) accepts(k pointer.Kind) bool {
	for _, kind := range l.kinds {
		if kind == k {
			return true
		}
	}
	return false
}

// Document owns an element tree and the pointer listeners attached to it.
type Document struct {
	mu        sync.RWMutex
	root      *Element
	byID      map[string]*Element
	listeners map[*Element][]*listener
}

// NewDocument returns a document whose mounted root has the given size.
func NewDocument(size geom.Size) *Document {
	d := &Document{
		byID:      make(map[string]*Element),
		listeners: make(map[*Element][]*listener),
	}
	d.root = &Element{id: RootID, doc: d, rect: geom.Rect{Width: size.W, Height: size.H}, mounted: true}
	d.byID[RootID] = d.root
	return d
}

// Root returns the root element.
func (d *Document) Root() *Element {
	return d.root
}

// Resize changes the root size.
func (d *Document) Resize(size geom.Size) {
	d.root.SetRect(geom.Rect{Width: size.W, Height: size.H})
}

// Append creates a child of parent. The element is mounted when parent is.
func (d *Document) Append(id string, parent *Element, rect geom.Rect) (*Element, error) {
	if parent == nil {
		parent = d.root
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	if id == "" {
		return nil, fmt.Errorf("surface: empty element id")
	}
	if _, exists := d.byID[id]; exists {
		return nil, fmt.Errorf("surface: duplicate element id %q", id)
	}
	if parent.doc != d {
		return nil, fmt.Errorf("surface: parent %q belongs to another document", parent.id)
	}
	el := &Element{id: id, doc: d, parent: parent, rect: rect, mounted: parent.mounted}
	parent.children = append(parent.children, el)
	d.byID[id] = el
	return el, nil
}

// Remove detaches el and its subtree, unmounts them and drops their listeners.
// The root cannot be removed.
func (d *Document) Remove(el *Element) {
	if el == nil || el == d.root {
		return
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	if p := el.parent; p != nil {
		for i, c := range p.children {
			if c == el {
				p.children = append(p.children[:i:i], p.children[i+1:]...)
				break
			}
		}
	}
	d.unmountLocked(el)
}

func (d *Document) unmountLocked(el *Element) {
	el.mounted = false
	el.parent = nil
	delete(d.byID, el.id)
	for _, l := range d.listeners[el] {
		l.active = false
	}
	delete(d.listeners, el)
	for _, c := range el.children {
		d.unmountLocked(c)
	}
	el.children = nil
}

// Lookup returns the mounted element with id, or nil.
func (d *Document) Lookup(id string) *Element {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.byID[id]
}

// Listen registers h for the given kinds on el, in the bubble phase, and
// returns the matching removal func. Removing twice is harmless.
func (d *Document) Listen(el *Element, kinds []pointer.Kind, h Handler) (remove func()) {
	return d.listen(el, kinds, h, false)
}

// ListenCapture is Listen for the capture phase: h runs while the event
// travels from the root down to the target, before any bubble listener.
func (d *Document) ListenCapture(el *Element, kinds []pointer.Kind, h Handler) (remove func()) {
	return d.listen(el, kinds, h, true)
}

func (d *Document) listen(el *Element, kinds []pointer.Kind, h Handler, capture bool) func() {
	if el == nil || h == nil {
		return func() {}
	}
	l := &listener{kinds: append([]pointer.Kind(nil), kinds...), handler: h, capture: capture, active: true}
	d.mu.Lock()
	d.listeners[el] = append(d.listeners[el], l)
	d.mu.Unlock()
	return func() {
		d.mu.Lock()
		defer d.mu.Unlock()
		if !l.active {
			return
		}
		l.active = false
		list := d.listeners[el]
		for i, other := range list {
			if other == l {
				d.listeners[el] = append(list[:i:i], list[i+1:]...)
				break
			}
		}
	}
}

// ListenerCount returns the number of live listeners on el.
func (d *Document) ListenerCount(el *Element) int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.listeners[el])
}

// Dispatch delivers raw to target. Capture listeners run first, from the
// root down to the target; bubble listeners then run from the target up to
// the root. Propagation stops after the element whose listener called
// StopPropagation. A nil or unmounted target dispatches to the root.
func (d *Document) Dispatch(raw pointer.Event, target *Element) *Event {
	if target == nil || !target.Mounted() {
		target = d.root
	}
	ev := &Event{Event: raw, Target: target}
	path := d.path(target)
	for i := len(path) - 1; i >= 0 && !ev.stopped; i-- {
		d.run(ev, path[i], true)
	}
	for i := 0; i < len(path) && !ev.stopped; i++ {
		d.run(ev, path[i], false)
	}
	ev.Current = nil
	return ev
}

func (d *Document) run(ev *Event, el *Element, capture bool) {
	ev.Current = el
	for _, l := range d.snapshot(el) {
		if l.capture != capture || !d.isActive(l) || !l.accepts(ev.Kind) {
			continue
		}
		l.handler(ev)
	}
}

// HitTest returns the deepest mounted element containing the page point. Later
// siblings sit above earlier ones. Points outside every child hit the root.
func (d *Document) HitTest(x, y float64) *Element {
	d.mu.RLock()
	defer d.mu.RUnlock()
	hit := d.root
	for {
		next := (*Element)(nil)
		for i := len(hit.children) - 1; i >= 0; i-- {
			c := hit.children[i]
			if geom.Contains(c.pageRectLocked(), x, y) {
				next = c
				break
			}
		}
		if next == nil {
			return hit
		}
		hit = next
	}
}

func (d *Document) path(target *Element) []*Element {
	d.mu.RLock()
	defer d.mu.RUnlock()
	var out []*Element
	for n := target; n != nil; n = n.parent {
		out = append(out, n)
	}
	return out
}

func (d *Document) snapshot(el *Element) []*listener {
	d.mu.RLock()
	defer d.mu.RUnlock()
	list := d.listeners[el]
	out := make([]*listener, len(list))
	copy(out, list)
	return out
}

func (d *Document) isActive(l *listener) bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return l.active
}
