// Package box implements draggable/resizable boxes.
package box

import (
	"github.com/frudas24/flexbox/internal/pointer"
	"github.com/frudas24/flexbox/internal/surface"
)

var downKinds = []pointer.Kind{pointer.Down}

// Activation turns the enable flag on for pointer-downs inside a container
// and off for pointer-downs anywhere else in the document.
type Activation struct {
	doc       *surface.Document
	container *surface.Element
	setEnable func(bool)
}

// NewActivation returns a tracker for container.
func NewActivation(doc *surface.Document, container *surface.Element, setEnable func(bool)) *Activation {
	return &Activation{doc: doc, container: container, setEnable: setEnable}
}

// Attach registers both listeners and returns their teardown. Without a
// document or container nothing is registered and the teardown is a no-op.
//
// The document listener runs in the capture phase so that a box which stops
// propagation of its own pointer-down cannot keep other boxes active.
func (a *Activation) Attach() (detach func()) {
	if a.doc == nil || a.container == nil {
		return func() {}
	}
	removeFocus := a.doc.Listen(a.container, downKinds, a.focus)
	removeBlur := a.doc.ListenCapture(a.doc.Root(), downKinds, a.blur)
	return func() {
		removeFocus()
		removeBlur()
	}
}

func (a *Activation) focus(*surface.Event) {
	a.setEnable(true)
}

func (a *Activation) blur(ev *surface.Event) {
	if a.container.Contains(ev.Target) {
		return
	}
	a.setEnable(false)
}
