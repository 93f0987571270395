package monitor

import (
	"testing"

	"github.com/frudas24/flexbox/internal/geom"
)

// TestGetMonitorByIndex_Found verifies a monitor is found by index.
func TestGetMonitorByIndex_Found(t *testing.T) {
	list := []Monitor{
		{Index: 1, W: 100, H: 100},
		{Index: 2, W: 200, H: 200},
	}
	m, ok := GetMonitorByIndex(list, 2)
	if !ok || m.Index != 2 {
		t.Fatalf("expected index 2, got ok=%v monitor=%+v", ok, m)
	}
}

// TestGetMonitorByIndex_NotFound verifies missing indexes return false.
func TestGetMonitorByIndex_NotFound(t *testing.T) {
	list := []Monitor{{Index: 1, W: 100, H: 100}}
	_, ok := GetMonitorByIndex(list, 3)
	if ok {
		t.Fatalf("expected not found")
	}
}

// TestSurfaceSize_OverrideWins verifies a full override ignores monitors.
func TestSurfaceSize_OverrideWins(t *testing.T) {
	list := []Monitor{{Index: 1, W: 1920, H: 1080, Primary: true}}
	got := SurfaceSize(geom.Size{W: 640, H: 480}, list, 1)
	if got != (geom.Size{W: 640, H: 480}) {
		t.Fatalf("unexpected size %+v", got)
	}
}

// TestSurfaceSize_MonitorAndPartialOverride verifies monitor sizing and a
// single overridden side.
func TestSurfaceSize_MonitorAndPartialOverride(t *testing.T) {
	list := []Monitor{
		{Index: 1, W: 1920, H: 1080, Primary: true},
		{Index: 2, W: 2560, H: 1440},
	}
	if got := SurfaceSize(geom.Size{}, list, 2); got != (geom.Size{W: 2560, H: 1440}) {
		t.Fatalf("unexpected size %+v", got)
	}
	if got := SurfaceSize(geom.Size{H: 600}, list, 0); got != (geom.Size{W: 1920, H: 600}) {
		t.Fatalf("unexpected size %+v", got)
	}
}

// TestSurfaceSize_Default verifies the fallback without monitors.
func TestSurfaceSize_Default(t *testing.T) {
	if got := SurfaceSize(geom.Size{}, nil, 1); got != DefaultSize {
		t.Fatalf("unexpected size %+v", got)
	}
}
