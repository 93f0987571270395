// Package monitor enumerates displays and picks the surface extent from them.
package monitor

import (
	"errors"

	"github.com/frudas24/flexbox/internal/geom"
)

// ErrUnsupported is returned where displays cannot be enumerated.
var ErrUnsupported = errors.New("monitor enumeration is only supported on Windows")

// DefaultSize is the surface extent when neither configuration nor a monitor
// provides one.
var DefaultSize = geom.Size{W: 1280, H: 720}

// Monitor describes a display and its bounds.
type Monitor struct {
	Index   int  `json:"index"`
	X       int  `json:"x"`
	Y       int  `json:"y"`
	W       int  `json:"w"`
	H       int  `json:"h"`
	Primary bool `json:"primary"`
}

// Size returns the monitor extent.
func (m Monitor) Size() geom.Size {
	return geom.Size{W: float64(m.W), H: float64(m.H)}
}

// GetMonitorByIndex returns the monitor matching the 1-based index.
func GetMonitorByIndex(list []Monitor, idx int) (Monitor, bool) {
	for _, m := range list {
		if m.Index == idx {
			return m, true
		}
	}
	return Monitor{}, false
}

// SurfaceSize resolves the surface extent. A fully configured override wins;
// otherwise the monitor at idx (or the primary one when idx is 0) is used;
// otherwise DefaultSize. A partial override fills the missing side from the
// resolved size.
func SurfaceSize(override geom.Size, list []Monitor, idx int) geom.Size {
	if override.W > 0 && override.H > 0 {
		return override
	}
	size := DefaultSize
	if m, ok := pick(list, idx); ok && m.W > 0 && m.H > 0 {
		size = m.Size()
	}
	if override.W > 0 {
		size.W = override.W
	}
	if override.H > 0 {
		size.H = override.H
	}
	return size
}

func pick(list []Monitor, idx int) (Monitor, bool) {
	if idx > 0 {
		return GetMonitorByIndex(list, idx)
	}
	for _, m := range list {
		if m.Primary {
			return m, true
		}
	}
	return Monitor{}, false
}
