package domain

import "sync"

// IDAllocator hands out monotonically increasing change-request ids.
// Concurrent callers never observe the same id twice, and ids are not reused
// even after the corresponding entry is deleted.
type IDAllocator struct {
	mu   sync.Mutex
	last int
}

// NewIDAllocator returns an allocator whose first id is seed+1. Seed with the
// highest id already present in the store so restarts never reissue an id.
func NewIDAllocator(seed int) *IDAllocator {
	return &IDAllocator{last: seed}
}

// Next returns the next unused id
func (a *IDAllocator) Next() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.last++
	return a.last
}
