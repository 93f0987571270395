// Package state provides observable value cells for the box engine.
package state

import "sync"

// Unsubscribe removes a subscription. Calling it more than once is harmless.
type Unsubscribe func()

type subscription[T any] struct {
	id     uint64
	fn     func(T)
	active bool
}

// Cell is an observable single-value holder.
//
// Get is safe from any goroutine. Set is expected to be called from the
// goroutine that owns the engine instance.
type Cell[T comparable] struct {
	mu    sync.RWMutex
	value T
	subs  []*subscription[T]
	batch *Batch
}

// NewCell returns a cell that notifies subscribers immediately.
func NewCell[T comparable](initial T) *Cell[T] {
	return &Cell[T]{value: initial}
}

// NewCellIn returns a cell whose notifications honour b.
func NewCellIn[T comparable](b *Batch, initial T) *Cell[T] {
	return &Cell[T]{value: initial, batch: b}
}

// Get returns the current value.
func (c *Cell[T]) Get() T {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.value
}

// Set stores v and notifies subscribers. It reports whether the value changed;
// writing the current value is a no-op.
func (c *Cell[T]) Set(v T) bool {
	c.mu.Lock()
	if c.value == v {
		c.mu.Unlock()
		return false
	}
	c.value = v
	active := c.subs[:0]
	for _, s := range c.subs {
		if s.active {
			active = append(active, s)
		}
	}
	c.subs = active
	subs := make([]*subscription[T], len(active))
	copy(subs, active)
	batch := c.batch
	c.mu.Unlock()

	for _, s := range subs {
		fn := s.fn
		if batch.deferCall(s.id, func() { fn(c.Get()) }) {
			continue
		}
		fn(v)
	}
	return true
}

// Update applies fn to the current value and stores the result.
func (c *Cell[T]) Update(fn func(T) T) bool {
	return c.Set(fn(c.Get()))
}

// Subscribe registers fn to run after every change. Subscribers run in
// registration order.
func (c *Cell[T]) Subscribe(fn func(T)) Unsubscribe {
	s := &subscription[T]{id: subscriptionID.Add(1), fn: fn, active: true}
	c.mu.Lock()
	c.subs = append(c.subs, s)
	c.mu.Unlock()
	return func() {
		c.mu.Lock()
		s.active = false
		c.mu.Unlock()
	}
}
