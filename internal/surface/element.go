// Package surface models the element tree the box engine is mounted into.
// It plays the part a browser document plays for a web client: elements with
// measurable boxes, pointer listeners and bubbling dispatch.
package surface

import "github.com/frudas24/flexbox/internal/geom"

// Element is one node of a Document. Its rect is relative to its parent.
type Element struct {
	id       string
	doc      *Document
	parent   *Element
	children []*Element
	rect     geom.Rect
	mounted  bool
}

// ID returns the element id.
func (e *Element) ID() string {
	if e == nil {
		return ""
	}
	return e.id
}

// Parent returns the parent element, or nil for the root.
func (e *Element) Parent() *Element {
	if e == nil {
		return nil
	}
	e.doc.mu.RLock()
	defer e.doc.mu.RUnlock()
	return e.parent
}

// Children returns a copy of the child list.
func (e *Element) Children() []*Element {
	if e == nil {
		return nil
	}
	e.doc.mu.RLock()
	defer e.doc.mu.RUnlock()
	out := make([]*Element, len(e.children))
	copy(out, e.children)
	return out
}

// Rect returns the element box relative to its parent.
func (e *Element) Rect() geom.Rect {
	if e == nil {
		return geom.Rect{}
	}
	e.doc.mu.RLock()
	defer e.doc.mu.RUnlock()
	return e.rect
}

// SetRect moves and sizes the element relative to its parent.
func (e *Element) SetRect(r geom.Rect) {
	if e == nil {
		return
	}
	e.doc.mu.Lock()
	e.rect = r
	e.doc.mu.Unlock()
}

// Mounted reports whether the element is attached to its document.
func (e *Element) Mounted() bool {
	if e == nil {
		return false
	}
	e.doc.mu.RLock()
	defer e.doc.mu.RUnlock()
	return e.mounted
}

// ContentSize implements geom.Measurable.
func (e *Element) ContentSize() (geom.Size, bool) {
	if e == nil {
		return geom.Size{}, false
	}
	e.doc.mu.RLock()
	defer e.doc.mu.RUnlock()
	if !e.mounted {
		return geom.Size{}, false
	}
	return geom.Size{W: e.rect.Width, H: e.rect.Height}, true
}

// PageRect returns the element box in page coordinates.
func (e *Element) PageRect() geom.Rect {
	if e == nil {
		return geom.Rect{}
	}
	e.doc.mu.RLock()
	defer e.doc.mu.RUnlock()
	return e.pageRectLocked()
}

func (e *Element) pageRectLocked() geom.Rect {
	r := e.rect
	for p := e.parent; p != nil; p = p.parent {
		r.Left += p.rect.Left
		r.Top += p.rect.Top
	}
	return r
}

// Contains reports whether other is e or one of its descendants.
func (e *Element) Contains(other *Element) bool {
	if e == nil || other == nil {
		return false
	}
	e.doc.mu.RLock()
	defer e.doc.mu.RUnlock()
	for n := other; n != nil; n = n.parent {
		if n == e {
			return true
		}
	}
	return false
}
