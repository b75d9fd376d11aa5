package domain

import (
	"sync"
	"testing"
)

func TestIDAllocatorSequence(t *testing.T) {
	alloc := NewIDAllocator(0)

	for want := 1; want <= 5; want++ {
		if got := alloc.Next(); got != want {
			t.Errorf("Expected id %d, got %d", want, got)
		}
	}
}

func TestIDAllocatorSeed(t *testing.T) {
	alloc := NewIDAllocator(41)
	if got := alloc.Next(); got != 42 {
		t.Errorf("Expected seeded allocator to start at 42, got %d", got)
	}
}

func TestIDAllocatorConcurrent(t *testing.T) {
	alloc := NewIDAllocator(0)

	const goroutines = 8
	const perGoroutine = 250

	var wg sync.WaitGroup
	results := make([][]int, goroutines)
	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			ids := make([]int, 0, perGoroutine)
			for j := 0; j < perGoroutine; j++ {
				ids = append(ids, alloc.Next())
			}
			results[n] = ids
		}(i)
	}
	wg.Wait()

	seen := make(map[int]bool, goroutines*perGoroutine)
	for _, ids := range results {
		for _, id := range ids {
			if seen[id] {
				t.Fatalf("Duplicate id allocated: %d", id)
			}
			seen[id] = true
		}
	}

	if len(seen) != goroutines*perGoroutine {
		t.Errorf("Expected %d distinct ids, got %d", goroutines*perGoroutine, len(seen))
	}
}
