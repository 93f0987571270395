// Package geom holds the plain geometry types shared by the box engine.
package geom

// Rect describes a box using top-left origin and size, in pixels.
type Rect struct {
	Top    float64 `json:"top" yaml:"top"`
	Left   float64 `json:"left" yaml:"left"`
	Width  float64 `json:"width" yaml:"width"`
	Height float64 `json:"height" yaml:"height"`
}

// Size is a width/height pair.
type Size struct {
	W float64 `json:"w" yaml:"w"`
	H float64 `json:"h" yaml:"h"`
}

// Unmeasured is returned by Measure when nothing can be measured.
var Unmeasured = Size{W: -1, H: -1}

// Valid reports whether both dimensions were measured.
func (s Size) Valid() bool {
	return s.W >= 0 && s.H >= 0
}

// Right returns the x coordinate of the right edge.
func (r Rect) Right() float64 {
	return r.Left + r.Width
}

// Bottom returns the y coordinate of the bottom edge.
func (r Rect) Bottom() float64 {
	return r.Top + r.Height
}

// Offset returns r translated by (dx, dy).
func (r Rect) Offset(dx, dy float64) Rect {
	r.Left += dx
	r.Top += dy
	return r
}

// Normalize returns a rectangle with non-negative width/height.
func Normalize(r Rect) Rect {
	if r.Width < 0 {
		r.Left += r.Width
		r.Width = -r.Width
	}
	if r.Height < 0 {
		r.Top += r.Height
		r.Height = -r.Height
	}
	return r
}

// Contains reports whether a point is inside the rectangle (edges inclusive).
func Contains(r Rect, x, y float64) bool {
	if r.Width <= 0 || r.Height <= 0 {
		return false
	}
	return x >= r.Left && x <= r.Right() && y >= r.Top && y <= r.Bottom()
}
