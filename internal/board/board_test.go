package board

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/frudas24/flexbox/internal/box"
	"github.com/frudas24/flexbox/internal/geom"
	"github.com/frudas24/flexbox/internal/layout"
	"github.com/frudas24/flexbox/internal/pointer"
	"github.com/frudas24/flexbox/internal/testutil"
)

func newBoard(t *testing.T) (*Board, *testutil.Recorder) {
	t.Helper()
	b := New(Config{Size: geom.Size{W: 400, H: 300}, HandleSize: 8}, nil)
	rec := &testutil.Recorder{}
	t.Cleanup(b.Subscribe(rec.Emit))
	t.Cleanup(b.Close)
	return b, rec
}

func boxOptions(x, y, w, h float64) box.Options {
	o := box.DefaultOptions()
	o.X, o.Y, o.W, o.H = x, y, w, h
	return o
}

func event(kind pointer.Kind, x, y float64) pointer.Event {
	return pointer.Event{Kind: kind, Source: pointer.Mouse, PageX: x, PageY: y}
}

// TestBoard_AddAssignsIDs verifies generated ids and creation order.
func TestBoard_AddAssignsIDs(t *testing.T) {
	b, _ := newBoard(t)
	a, err := b.Add(boxOptions(0, 0, 50, 50))
	require.NoError(t, err)
	c, err := b.Add(boxOptions(100, 0, 50, 50))
	require.NoError(t, err)
	assert.NotEqual(t, a, c)
	assert.Equal(t, []string{a, c}, b.IDs())

	err = b.AddWithID(a, boxOptions(0, 0, 10, 10))
	assert.Error(t, err)
}

// TestBoard_AddRejectsInvertedBounds verifies option validation.
func TestBoard_AddRejectsInvertedBounds(t *testing.T) {
	b, _ := newBoard(t)
	o := boxOptions(0, 0, 50, 50)
	o.MinW, o.MaxW = 60, 40
	_, err := b.Add(o)
	assert.Error(t, err)
	assert.Empty(t, b.IDs())
}

// TestBoard_DispatchHitTestsDown verifies a press without target reaches the
// box under the pointer and a drag follows.
func TestBoard_DispatchHitTestsDown(t *testing.T) {
	b, rec := newBoard(t)
	require.NoError(t, b.AddWithID("a", boxOptions(10, 10, 100, 100)))

	res := b.Dispatch(event(pointer.Down, 50, 50), "")
	assert.Equal(t, "a", res.Target)
	assert.True(t, res.DefaultPrevented)
	b.Dispatch(event(pointer.Move, 70, 60), "")
	b.Dispatch(event(pointer.Up, 70, 60), "")

	bx, ok := b.Get("a")
	require.True(t, ok)
	assert.Equal(t, geom.Rect{Top: 20, Left: 30, Width: 100, Height: 100}, bx.Rect())
	assert.Equal(t, 1, rec.Count(box.EventActivated))
	assert.Equal(t, 1, rec.Count(box.EventDragStart))
	assert.Equal(t, 1, rec.Count(box.EventDragEnd))
}

// TestBoard_DispatchExplicitHandle verifies a press on a named handle
// resizes.
func TestBoard_DispatchExplicitHandle(t *testing.T) {
	b, rec := newBoard(t)
	o := boxOptions(0, 0, 100, 100)
	o.Active = true
	require.NoError(t, b.AddWithID("a", o))

	b.Dispatch(event(pointer.Down, 100, 50), "a:mr")
	b.Dispatch(event(pointer.Move, 120, 50), "")
	b.Dispatch(event(pointer.Up, 120, 50), "")

	bx, _ := b.Get("a")
	assert.Equal(t, 120.0, bx.Rect().Width)
	assert.Equal(t, 1, rec.Count(box.EventResizeStart))
	ev, ok := rec.Last(box.UpdateEvent("w"))
	require.True(t, ok)
	assert.Equal(t, "a", ev.Box)
	assert.Equal(t, 120.0, ev.Value)
}

// TestBoard_ResizeSurfaceConstrainsDrag verifies a smaller surface blocks
// drags that would leave the far gap.
func TestBoard_ResizeSurfaceConstrainsDrag(t *testing.T) {
	b, _ := newBoard(t)
	o := boxOptions(0, 0, 100, 100)
	o.MinRight = 0
	o.Active = true
	require.NoError(t, b.AddWithID("a", o))
	require.NoError(t, b.ResizeSurface(150, 300))
	assert.Error(t, b.ResizeSurface(0, 10))

	b.Dispatch(event(pointer.Down, 10, 10), "a")
	b.Dispatch(event(pointer.Move, 70, 10), "")
	b.Dispatch(event(pointer.Up, 70, 10), "")

	bx, _ := b.Get("a")
	assert.Equal(t, 0.0, bx.Rect().Left)
	assert.Equal(t, geom.Size{W: 150, H: 300}, b.Size())
}

// TestBoard_RemoveTearsDown verifies removal releases the box.
func TestBoard_RemoveTearsDown(t *testing.T) {
	b, rec := newBoard(t)
	require.NoError(t, b.AddWithID("a", boxOptions(0, 0, 100, 100)))
	require.NoError(t, b.Remove("a"))
	assert.ErrorIs(t, b.Remove("a"), ErrNotFound)

	res := b.Dispatch(event(pointer.Down, 50, 50), "")
	assert.Equal(t, "root", res.Target)
	assert.Empty(t, rec.Events)
}

// TestBoard_SetProp verifies prop writes and unknown ids.
func TestBoard_SetProp(t *testing.T) {
	b, rec := newBoard(t)
	require.NoError(t, b.AddWithID("a", boxOptions(0, 0, 100, 100)))

	changed, err := b.SetProp("a", "x", 40.0)
	require.NoError(t, err)
	assert.True(t, changed)
	bx, _ := b.Get("a")
	assert.Equal(t, 40.0, bx.Rect().Left)
	assert.Zero(t, rec.Count(box.UpdateEvent("x")))

	_, err = b.SetProp("missing", "x", 1.0)
	assert.ErrorIs(t, err, ErrNotFound)
}

// TestBoard_LayoutApply verifies a layout round trip through Apply.
func TestBoard_LayoutApply(t *testing.T) {
	b, _ := newBoard(t)
	require.NoError(t, b.AddWithID("a", boxOptions(5, 6, 70, 80)))
	l := b.Layout()
	require.Len(t, l.Boxes, 1)

	other, _ := newBoard(t)
	require.NoError(t, other.AddWithID("stale", boxOptions(0, 0, 10, 10)))
	require.NoError(t, other.Apply(l))
	assert.Equal(t, []string{"a"}, other.IDs())
	bx, _ := other.Get("a")
	assert.Equal(t, geom.Rect{Top: 6, Left: 5, Width: 70, Height: 80}, bx.Rect())

	bad := layout.Layout{Boxes: []layout.Entry{{ID: ""}}}
	assert.Error(t, other.Apply(bad))
}

// TestBoard_Snapshot verifies the snapshot lists boxes in order.
func TestBoard_Snapshot(t *testing.T) {
	b, _ := newBoard(t)
	require.NoError(t, b.AddWithID("a", boxOptions(0, 0, 10, 10)))
	require.NoError(t, b.AddWithID("b", boxOptions(20, 0, 10, 10)))

	s := b.Snapshot()
	assert.Equal(t, geom.Size{W: 400, H: 300}, s.Surface)
	require.Len(t, s.Boxes, 2)
	assert.Equal(t, "a", s.Boxes[0].ID)
	assert.Equal(t, box.ModeIdle, s.Boxes[1].Mode)
}

// TestBoard_HandleSizeFromConfig verifies the configured handle size reaches
// boxes built over default options and an explicit size still wins.
func TestBoard_HandleSizeFromConfig(t *testing.T) {
	b := New(Config{Size: geom.Size{W: 400, H: 300}, HandleSize: 20}, nil)
	t.Cleanup(b.Close)

	id, err := b.Add(boxOptions(0, 0, 100, 100))
	require.NoError(t, err)
	bx, ok := b.Get(id)
	require.True(t, ok)
	assert.Equal(t, 20.0, bx.Options().HandleSize)
	grip := b.doc.Lookup(id + ":br")
	require.NotNil(t, grip)
	assert.Equal(t, geom.Rect{Top: 80, Left: 80, Width: 20, Height: 20}, grip.Rect())

	o := boxOptions(0, 0, 100, 100)
	o.HandleSize = 6
	require.NoError(t, b.AddWithID("own", o))
	own, ok := b.Get("own")
	require.True(t, ok)
	assert.Equal(t, 6.0, own.Options().HandleSize)

	applied := New(Config{Size: geom.Size{W: 400, H: 300}, HandleSize: 20}, nil)
	t.Cleanup(applied.Close)
	require.NoError(t, applied.Apply(layout.Layout{Boxes: []layout.Entry{{ID: "l", Options: boxOptions(0, 0, 50, 50)}}}))
	fromLayout, ok := applied.Get("l")
	require.True(t, ok)
	assert.Equal(t, 20.0, fromLayout.Options().HandleSize)
}
