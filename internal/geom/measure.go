// Package geom holds the plain geometry types shared by the box engine.
package geom

// Measurable is anything that can report a rendered content box.
// ok is false while the element is not mounted.
type Measurable interface {
	ContentSize() (size Size, ok bool)
}

// Measure returns the content size of m, or Unmeasured when m is nil or not
// mounted.
func Measure(m Measurable) Size {
	if m == nil {
		return Unmeasured
	}
	size, ok := m.ContentSize()
	if !ok {
		return Unmeasured
	}
	return size
}
