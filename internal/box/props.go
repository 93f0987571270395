// Package box implements draggable/resizable boxes.
package box

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/frudas24/flexbox/internal/geom"
	"github.com/frudas24/flexbox/internal/state"
)

var (
	// ErrUnknownProp is returned by SetProp for names that are not bindable.
	ErrUnknownProp = errors.New("box: unknown prop")
	// ErrPropType is returned by SetProp when the value has the wrong type.
	ErrPropType = errors.New("box: wrong prop type")
)

// limitProps are reported as Limit so that infinities survive JSON.
var limitProps = map[string]bool{
	"minW": true, "minH": true, "maxW": true, "maxH": true,
	"minLeft": true, "minTop": true, "minRight": true, "minBottom": true,
}

// bindProps creates the two-way bindings for every bindable prop.
func (b *Box) bindProps() {
	cells := map[string]*state.Cell[float64]{
		"w":         b.width,
		"h":         b.height,
		"x":         b.left,
		"y":         b.top,
		"minW":      b.minW,
		"minH":      b.minH,
		"maxW":      b.maxW,
		"maxH":      b.maxH,
		"minLeft":   b.minLeft,
		"minTop":    b.minTop,
		"minRight":  b.minRight,
		"minBottom": b.minBottom,
	}
	b.numProps = make(map[string]*state.Sync[float64], len(cells))
	for name, c := range cells {
		name := name
		b.numProps[name] = state.NewSync(c, func(v float64) {
			var value any = v
			if limitProps[name] {
				value = Limit(v)
			}
			b.sink.Emit(Event{Box: b.id, Type: UpdateEvent(name), Value: value})
		})
	}
	flags := map[string]*state.Cell[bool]{
		"draggable": b.draggable,
		"resizable": b.resizable,
		"active":    b.enabled,
	}
	b.boolProps = make(map[string]*state.Sync[bool], len(flags))
	for name, c := range flags {
		name := name
		b.boolProps[name] = state.NewSync(c, func(v bool) {
			b.sink.Emit(Event{Box: b.id, Type: UpdateEvent(name), Value: v})
		})
	}
}

// Props lists the bindable prop names in sorted order.
func (b *Box) Props() []string {
	names := make([]string, 0, len(b.numProps)+len(b.boolProps))
	for n := range b.numProps {
		names = append(names, n)
	}
	for n := range b.boolProps {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// SetProp writes an owner-side value into the box. The owner is not notified
// back about its own write. It reports whether the box state changed.
func (b *Box) SetProp(name string, value any) (bool, error) {
	if s, ok := b.numProps[name]; ok {
		v, err := toFloat(value)
		if err != nil {
			return false, fmt.Errorf("%w: %s: %v", ErrPropType, name, err)
		}
		return s.Push(v), nil
	}
	if s, ok := b.boolProps[name]; ok {
		v, ok := value.(bool)
		if !ok {
			return false, fmt.Errorf("%w: %s wants bool, got %T", ErrPropType, name, value)
		}
		return s.Push(v), nil
	}
	return false, fmt.Errorf("%w: %q", ErrUnknownProp, name)
}

// toFloat accepts the numeric shapes that arrive from JSON, YAML and Go
// callers, including the "inf" spellings understood by Limit.
func toFloat(value any) (float64, error) {
	switch v := value.(type) {
	case float64:
		if math.IsNaN(v) {
			return 0, errors.New("NaN")
		}
		return v, nil
	case float32:
		return toFloat(float64(v))
	case int:
		return float64(v), nil
	case int64:
		return float64(v), nil
	case Limit:
		return toFloat(float64(v))
	case json.Number:
		f, err := v.Float64()
		if err != nil {
			return 0, err
		}
		return toFloat(f)
	case string:
		var l Limit
		raw, _ := json.Marshal(v)
		if err := l.UnmarshalJSON(raw); err != nil {
			return 0, err
		}
		return float64(l), nil
	}
	return 0, fmt.Errorf("want number, got %T", value)
}

// Options returns the box configuration reflecting the current state.
func (b *Box) Options() Options {
	return Options{
		W:           b.width.Get(),
		H:           b.height.Get(),
		X:           b.left.Get(),
		Y:           b.top.Get(),
		Draggable:   b.draggable.Get(),
		Resizable:   b.resizable.Get(),
		Active:      b.enabled.Get(),
		Constraints: b.Constraints(),
		Handles:     append([]geom.Handle(nil), b.handles...),
		ClassNames:  b.classNames,
		HandleSize:  b.handleSize,
		ClampResize: b.clampResize,
	}
}

// Snapshot is a read-only view of a box.
type Snapshot struct {
	ID          string        `json:"id"`
	Rect        geom.Rect     `json:"rect"`
	Mode        Mode          `json:"mode"`
	Active      bool          `json:"active"`
	Draggable   bool          `json:"draggable"`
	Resizable   bool          `json:"resizable"`
	Constraints Constraints   `json:"constraints"`
	Handles     []geom.Handle `json:"handles"`
	ClassNames  ClassNames    `json:"classNames"`
}

// Snapshot captures the current state.
func (b *Box) Snapshot() Snapshot {
	return Snapshot{
		ID:          b.id,
		Rect:        b.Rect(),
		Mode:        b.Mode(),
		Active:      b.enabled.Get(),
		Draggable:   b.draggable.Get(),
		Resizable:   b.resizable.Get(),
		Constraints: b.Constraints(),
		Handles:     b.Handles(),
		ClassNames:  b.classNames,
	}
}
