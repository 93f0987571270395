// Package state provides observable value cells for the box engine.
//
// A Cell holds one value and notifies its subscribers when the value changes.
// Writes equal to the current value are dropped without notification.
//
//	width := state.NewCell(100.0)
//	width.Subscribe(func(v float64) { fmt.Println("width", v) })
//	width.Set(120) // prints "width 120"
//	width.Set(120) // no-op
//
// Cells created in the same Batch can be updated together; subscribers then
// run once, after the outermost Run returns, with the final value:
//
//	b := state.NewBatch()
//	top, left := state.NewCellIn(b, 0.0), state.NewCellIn(b, 0.0)
//	b.Run(func() {
//	    top.Set(10)
//	    left.Set(20)
//	})
package state

import (
	"sync"
	"sync/atomic"
)

// subscriptionID is a process-wide counter so ids are unique across cells.
var subscriptionID atomic.Uint64

// Batch defers subscriber callbacks while a Run is in progress.
type Batch struct {
	mu      sync.Mutex
	depth   int
	pending map[uint64]func()
	order   []uint64
}

// NewBatch returns an idle batch.
func NewBatch() *Batch {
	return &Batch{pending: make(map[uint64]func())}
}

// Run executes fn and delays all subscriber callbacks triggered inside it
// until the outermost Run returns. A subscriber triggered several times only
// runs once, with the last value, in the order it was first triggered.
func (b *Batch) Run(fn func()) {
	b.mu.Lock()
	b.depth++
	b.mu.Unlock()

	defer func() {
		b.mu.Lock()
		b.depth--
		var callbacks []func()
		if b.depth == 0 && len(b.pending) > 0 {
			callbacks = make([]func(), 0, len(b.order))
			for _, id := range b.order {
				if cb, ok := b.pending[id]; ok {
					callbacks = append(callbacks, cb)
				}
			}
			b.pending = make(map[uint64]func())
			b.order = nil
		}
		b.mu.Unlock()

		for _, cb := range callbacks {
			cb()
		}
	}()

	fn()
}

// Active reports whether a Run is in progress.
func (b *Batch) Active() bool {
	if b == nil {
		return false
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.depth > 0
}

// deferCall queues cb under id when a Run is in progress. It reports false when
// the caller must run cb itself.
func (b *Batch) deferCall(id uint64, cb func()) bool {
	if b == nil {
		return false
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.depth == 0 {
		return false
	}
	if _, seen := b.pending[id]; !seen {
		b.order = append(b.order, id)
	}
	b.pending[id] = cb
	return true
}
