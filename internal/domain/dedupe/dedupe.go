// Package dedupe tracks processed fixture ids for at-most-once rating.
package dedupe

import (
	"context"
	"sync"
	"sync/atomic"
)

// Deduper records seen fixture ids to ensure each match is rated once.
type Deduper interface {
	// SeenAndRecord atomically checks whether the fixture was seen and
	// records it if not. Returns true if it was already seen.
	SeenAndRecord(ctx context.Context, fixtureID int64) bool

	// Unrecord forgets a fixture id so it can be retried. Use it when a
	// fixture was recorded but never made it into the queue.
	Unrecord(ctx context.Context, fixtureID int64)

	Size() int64
}

// inMemoryDeduper keeps seen ids in a map. In bounded mode a ring buffer
// of insertion order backs FIFO eviction; unbounded mode is map-only.
type inMemoryDeduper struct {
	mu      sync.Mutex
	seen    map[int64]struct{}
	ring    []int64
	next    int
	maxSize int
	size    atomic.Int64
}

// NewInMemoryDeduper creates a deduper. The default capacity bounds memory
// at roughly one season of fixtures; maxSize <= 0 disables eviction.
func NewInMemoryDeduper(opts ...Option) Deduper {
	d := &inMemoryDeduper{
		maxSize: 50_000,
	}
	for _, opt := range opts {
		opt(d)
	}
	d.seen = make(map[int64]struct{})
	if d.maxSize > 0 {
		d.ring = make([]int64, 0, d.maxSize)
	}
	return d
}

func (d *inMemoryDeduper) SeenAndRecord(_ context.Context, fixtureID int64) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	if _, ok := d.seen[fixtureID]; ok {
		return true
	}

	if d.maxSize > 0 {
		if len(d.ring) < d.maxSize {
			d.ring = append(d.ring, fixtureID)
		} else {
			// Ring is full: overwrite the oldest slot. The evicted id may
			// already have been unrecorded, in which case delete is a no-op.
			evicted := d.ring[d.next]
			if _, ok := d.seen[evicted]; ok {
				delete(d.seen, evicted)
				d.size.Add(-1)
			}
			d.ring[d.next] = fixtureID
		}
		d.next = (d.next + 1) % d.maxSize
	}

	d.seen[fixtureID] = struct{}{}
	d.size.Add(1)
	return false
}

func (d *inMemoryDeduper) Unrecord(_ context.Context, fixtureID int64) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if _, ok := d.seen[fixtureID]; !ok {
		return
	}
	// The ring slot, if any, stays behind as a tombstone until the ring
	// wraps around to it.
	delete(d.seen, fixtureID)
	d.size.Add(-1)
}

func (d *inMemoryDeduper) Size() int64 {
	return d.size.Load()
}
