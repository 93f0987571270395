// Package board hosts a set of boxes on one surface and serialises all pointer
// work on them.
package board

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/frudas24/flexbox/internal/box"
	"github.com/frudas24/flexbox/internal/geom"
	"github.com/frudas24/flexbox/internal/layout"
	"github.com/frudas24/flexbox/internal/pointer"
	"github.com/frudas24/flexbox/internal/surface"
)

var (
	// ErrNotFound is returned for unknown box ids.
	ErrNotFound = errors.New("board: box not found")
	// ErrInvalidSize is returned for surface sizes that are not positive.
	ErrInvalidSize = errors.New("board: invalid surface size")
)

// Config carries board-wide settings applied to every added box.
type Config struct {
	Size        geom.Size
	HandleSize  float64
	ClampResize bool
}

// Snapshot is a read-only view of the board.
type Snapshot struct {
	Surface geom.Size      `json:"surface"`
	Boxes   []box.Snapshot `json:"boxes"`
}

// DispatchResult reports how one pointer event was handled.
type DispatchResult struct {
	Target           string `json:"target"`
	DefaultPrevented bool   `json:"defaultPrevented"`
}

type entry struct {
	box      *box.Box
	el       *surface.Element
	teardown func()
}

// Board owns a surface document and the boxes mounted on it. All methods are
// safe for concurrent use; event handling runs under one lock.
type Board struct {
	mu      sync.Mutex
	log     *zap.Logger
	cfg     Config
	doc     *surface.Document
	entries map[string]*entry
	order   []string

	subsMu  sync.RWMutex
	subs    map[uint64]func(box.Event)
	nextSub uint64
}

// New returns an empty board.
func New(cfg Config, log *zap.Logger) *Board {
	if log == nil {
		log = zap.NewNop()
	}
	return &Board{
		log:     log,
		cfg:     cfg,
		doc:     surface.NewDocument(cfg.Size),
		entries: make(map[string]*entry),
		subs:    make(map[uint64]func(box.Event)),
	}
}

// Subscribe registers fn for every box event. fn runs with the board lock
// held and must not call back into the board.
func (b *Board) Subscribe(fn func(box.Event)) (unsubscribe func()) {
	b.subsMu.Lock()
	b.nextSub++
	id := b.nextSub
	b.subs[id] = fn
	b.subsMu.Unlock()
	return func() {
		b.subsMu.Lock()
		delete(b.subs, id)
		b.subsMu.Unlock()
	}
}

// Emit fans ev out to every subscriber.
func (b *Board) Emit(ev box.Event) {
	b.subsMu.RLock()
	ids := make([]uint64, 0, len(b.subs))
	for id := range b.subs {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	fns := make([]func(box.Event), 0, len(ids))
	for _, id := range ids {
		fns = append(fns, b.subs[id])
	}
	b.subsMu.RUnlock()
	for _, fn := range fns {
		fn(ev)
	}
}

// Add creates a box with a fresh id.
func (b *Board) Add(opts box.Options) (string, error) {
	id := uuid.NewString()
	if err := b.AddWithID(id, opts); err != nil {
		return "", err
	}
	return id, nil
}

// AddWithID creates a box with the given id.
func (b *Board) AddWithID(id string, opts box.Options) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.addLocked(id, opts)
}

func (b *Board) addLocked(id string, opts box.Options) error {
	if id == "" {
		return fmt.Errorf("board: empty box id")
	}
	if _, exists := b.entries[id]; exists {
		return fmt.Errorf("board: box %q already exists", id)
	}
	if err := opts.Validate(); err != nil {
		return fmt.Errorf("board: box %q: %w", id, err)
	}
	if opts.HandleSize == 0 {
		opts.HandleSize = b.cfg.HandleSize
	}
	opts.ClampResize = opts.ClampResize || b.cfg.ClampResize

	bx := box.New(id, opts, b, b.log.Named("box"))
	el, err := b.doc.Append(id, b.doc.Root(), bx.Rect())
	if err != nil {
		bx.Close()
		return fmt.Errorf("board: %w", err)
	}
	b.entries[id] = &entry{box: bx, el: el, teardown: bx.Mount(b.doc, el)}
	b.order = append(b.order, id)
	b.log.Debug("box added", zap.String("box", id))
	return nil
}

// Remove tears a box down and drops it.
func (b *Board) Remove(id string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.removeLocked(id)
}

func (b *Board) removeLocked(id string) error {
	e, ok := b.entries[id]
	if !ok {
		return fmt.Errorf("%w: %q", ErrNotFound, id)
	}
	e.teardown()
	e.box.Close()
	b.doc.Remove(e.el)
	delete(b.entries, id)
	for i, other := range b.order {
		if other == id {
			b.order = append(b.order[:i:i], b.order[i+1:]...)
			break
		}
	}
	b.log.Debug("box removed", zap.String("box", id))
	return nil
}

// Get returns the box with the given id.
func (b *Board) Get(id string) (*box.Box, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	e, ok := b.entries[id]
	if !ok {
		return nil, false
	}
	return e.box, true
}

// IDs returns box ids in creation order.
func (b *Board) IDs() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]string(nil), b.order...)
}

// Dispatch delivers one pointer event. targetID names the element under the
// pointer; when empty the surface is hit-tested at the pointer position.
func (b *Board) Dispatch(ev pointer.Event, targetID string) DispatchResult {
	b.mu.Lock()
	defer b.mu.Unlock()
	var target *surface.Element
	if targetID != "" {
		target = b.doc.Lookup(targetID)
	}
	if target == nil && ev.Kind == pointer.Down {
		x, y := pointer.Position(ev)
		target = b.doc.HitTest(x, y)
	}
	out := b.doc.Dispatch(ev, target)
	return DispatchResult{Target: out.Target.ID(), DefaultPrevented: out.DefaultPrevented()}
}

// Size returns the surface size.
func (b *Board) Size() geom.Size {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.cfg.Size
}

// ResizeSurface changes the surface size. Boxes are not moved; the new size
// applies from the next drag tick.
func (b *Board) ResizeSurface(w, h float64) error {
	if w <= 0 || h <= 0 {
		return fmt.Errorf("%w: %vx%v", ErrInvalidSize, w, h)
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.cfg.Size = geom.Size{W: w, H: h}
	b.doc.Resize(b.cfg.Size)
	return nil
}

// SetProp writes an owner-side prop value into a box.
func (b *Board) SetProp(id, name string, value any) (bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	e, ok := b.entries[id]
	if !ok {
		return false, fmt.Errorf("%w: %q", ErrNotFound, id)
	}
	return e.box.SetProp(name, value)
}

// Snapshot captures the surface and every box in creation order.
func (b *Board) Snapshot() Snapshot {
	b.mu.Lock()
	defer b.mu.Unlock()
	s := Snapshot{Surface: b.cfg.Size, Boxes: make([]box.Snapshot, 0, len(b.order))}
	for _, id := range b.order {
		s.Boxes = append(s.Boxes, b.entries[id].box.Snapshot())
	}
	return s
}

// Layout returns the persistable form of the board.
func (b *Board) Layout() layout.Layout {
	b.mu.Lock()
	defer b.mu.Unlock()
	l := layout.Layout{Surface: b.cfg.Size, Boxes: make([]layout.Entry, 0, len(b.order))}
	for _, id := range b.order {
		opts := b.entries[id].box.Options()
		opts.Active = false
		l.Boxes = append(l.Boxes, layout.Entry{ID: id, Options: opts})
	}
	return l
}

// Apply replaces every box with those in l. A zero surface size in l keeps
// the current size.
func (b *Board) Apply(l layout.Layout) error {
	if err := l.Validate(); err != nil {
		return err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, id := range append([]string(nil), b.order...) {
		if err := b.removeLocked(id); err != nil {
			return err
		}
	}
	if l.Surface.W > 0 && l.Surface.H > 0 {
		b.cfg.Size = l.Surface
		b.doc.Resize(l.Surface)
	}
	for _, e := range l.Boxes {
		if err := b.addLocked(e.ID, e.Options); err != nil {
			return err
		}
	}
	b.log.Info("layout applied", zap.Int("boxes", len(l.Boxes)))
	return nil
}

// Close removes every box.
func (b *Board) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, id := range append([]string(nil), b.order...) {
		_ = b.removeLocked(id)
	}
}
