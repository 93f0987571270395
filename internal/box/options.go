// Package box implements draggable/resizable boxes: activation tracking, the
// resize and drag engines, and the controller that mounts them on a surface.
package box

import (
	"fmt"

	"github.com/frudas24/flexbox/internal/geom"
)

// DefaultHandleSize is the edge length of a handle element, in pixels.
const DefaultHandleSize = 8

// ClassNames overrides the five state class names handed to the client.
type ClassNames struct {
	Draggable string `json:"draggable,omitempty" yaml:"draggable,omitempty"`
	Resizable string `json:"resizable,omitempty" yaml:"resizable,omitempty"`
	Dragging  string `json:"dragging,omitempty" yaml:"dragging,omitempty"`
	Resizing  string `json:"resizing,omitempty" yaml:"resizing,omitempty"`
	Active    string `json:"active,omitempty" yaml:"active,omitempty"`
}

// DefaultClassNames returns the class names used when none are configured.
func DefaultClassNames() ClassNames {
	return ClassNames{
		Draggable: "draggable",
		Resizable: "resizable",
		Dragging:  "dragging",
		Resizing:  "resizing",
		Active:    "active",
	}
}

// withDefaults fills empty names from DefaultClassNames.
func (c ClassNames) withDefaults() ClassNames {
	d := DefaultClassNames()
	if c.Draggable == "" {
		c.Draggable = d.Draggable
	}
	if c.Resizable == "" {
		c.Resizable = d.Resizable
	}
	if c.Dragging == "" {
		c.Dragging = d.Dragging
	}
	if c.Resizing == "" {
		c.Resizing = d.Resizing
	}
	if c.Active == "" {
		c.Active = d.Active
	}
	return c
}

// Constraints bounds the size of a box and the gaps it keeps to its parent.
// MinRight and MinBottom are gaps to the parent's right/bottom edge.
type Constraints struct {
	MinW      Limit `json:"minW" yaml:"minW"`
	MinH      Limit `json:"minH" yaml:"minH"`
	MaxW      Limit `json:"maxW" yaml:"maxW"`
	MaxH      Limit `json:"maxH" yaml:"maxH"`
	MinLeft   Limit `json:"minLeft" yaml:"minLeft"`
	MinTop    Limit `json:"minTop" yaml:"minTop"`
	MinRight  Limit `json:"minRight" yaml:"minRight"`
	MinBottom Limit `json:"minBottom" yaml:"minBottom"`
}

// DefaultConstraints returns the unconstrained defaults: 10px minimum size,
// no maximum and no gaps.
func DefaultConstraints() Constraints {
	return Constraints{
		MinW:      10,
		MinH:      10,
		MaxW:      Inf(),
		MaxH:      Inf(),
		MinLeft:   NegInf(),
		MinTop:    NegInf(),
		MinRight:  NegInf(),
		MinBottom: NegInf(),
	}
}

// Options configures one box. Decode into DefaultOptions() so omitted fields
// keep their defaults.
type Options struct {
	W float64 `json:"w" yaml:"w"`
	H float64 `json:"h" yaml:"h"`
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`

	Draggable bool `json:"draggable" yaml:"draggable"`
	Resizable bool `json:"resizable" yaml:"resizable"`
	Active    bool `json:"active" yaml:"active"`

	Constraints `yaml:",inline"`

	Handles    []geom.Handle `json:"handles" yaml:"handles"`
	ClassNames ClassNames    `json:"classNames" yaml:"classNames,omitempty"`

	// HandleSize is the edge length of the handle elements. Zero inherits the
	// board's size, or DefaultHandleSize outside a board.
	HandleSize float64 `json:"handleSize,omitempty" yaml:"handleSize,omitempty"`
	// ClampResize clamps resized width/height against MinW..MaxW and
	// MinH..MaxH. Off by default: resize deltas are applied unclamped.
	ClampResize bool `json:"clampResize,omitempty" yaml:"clampResize,omitempty"`
}

// DefaultOptions returns the documented defaults: zero geometry, both
// features enabled, inactive, all eight handles.
func DefaultOptions() Options {
	return Options{
		Draggable:   true,
		Resizable:   true,
		Constraints: DefaultConstraints(),
		Handles:     append([]geom.Handle(nil), geom.AllHandles...),
	}
}

// Validate reports configurations the engine cannot honour. Inverted size
// bounds are rejected; everything else degrades silently.
func (o Options) Validate() error {
	if o.MinW > o.MaxW {
		return fmt.Errorf("minW %v exceeds maxW %v", float64(o.MinW), float64(o.MaxW))
	}
	if o.MinH > o.MaxH {
		return fmt.Errorf("minH %v exceeds maxH %v", float64(o.MinH), float64(o.MaxH))
	}
	if o.HandleSize < 0 {
		return fmt.Errorf("handleSize must be >= 0")
	}
	return nil
}
