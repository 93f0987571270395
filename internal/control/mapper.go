// Package control runs the websocket control channel for the board.
package control

import (
	"github.com/frudas24/flexbox/internal/geom"
	"github.com/frudas24/flexbox/internal/pointer"
)

// NormToSurface maps normalised coordinates onto a surface of the given
// size. Out of range values are clamped to the surface edges.
func NormToSurface(xn, yn float64, size geom.Size) (float64, float64) {
	return clamp01(xn) * size.W, clamp01(yn) * size.H
}

// PointerEvent converts a pointer message into a surface event. Touch
// messages carry the mapped point as their first touch.
func PointerEvent(kind pointer.Kind, msg Message, size geom.Size) pointer.Event {
	x, y := NormToSurface(msg.X, msg.Y, size)
	ev := pointer.Event{
		Kind:   kind,
		Source: pointer.ParseSource(msg.Src),
		ID:     msg.ID,
		PageX:  x,
		PageY:  y,
	}
	if ev.Source == pointer.Touch {
		ev.Touches = []pointer.TouchPoint{{ID: msg.ID, PageX: x, PageY: y}}
	}
	return ev
}

// clamp01 bounds a float to the [0..1] range.
func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
