package watcher

import (
	"sync"
	"testing"
)

func TestLockTableMutualExclusion(t *testing.T) {
	var table lockTable
	var held bool
	var violations int
	var mu sync.Mutex

	const workers = 16
	const iterations = 200

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < iterations; j++ {
				slot := table.acquire(42)
				slot.mutex.Lock()
				mu.Lock()
				if held {
					violations++
				}
				held = true
				mu.Unlock()
				mu.Lock()
				held = false
				mu.Unlock()
				slot.mutex.Unlock()
				table.release(42)
			}
		}()
	}
	wg.Wait()

	if violations > 0 {
		t.Errorf("lock held concurrently %d times", violations)
	}
	if n := table.count(); n != 0 {
		t.Errorf("%d slots remain after all references released", n)
	}
}

func TestLockTableSlotRemoval(t *testing.T) {
	var table lockTable

	slot := table.acquire(7)
	slot.mutex.Lock()
	slot.mutex.Unlock()
	table.release(7)

	if n := table.count(); n != 0 {
		t.Errorf("%d slots remain after release", n)
	}

	// A failed creation acquires and releases without ever inserting a
	// record; the slot must still be cleaned up.
	table.acquire(8)
	table.release(8)
	if n := table.count(); n != 0 {
		t.Errorf("%d slots remain after failed-creation pattern", n)
	}
}

func TestLockTableDistinctIDs(t *testing.T) {
	var table lockTable

	a := table.acquire(1)
	b := table.acquire(2)
	if a == b {
		t.Fatal("distinct process IDs share a lock slot")
	}

	a.mutex.Lock()
	locked := make(chan struct{})
	go func() {
		b.mutex.Lock()
		b.mutex.Unlock()
		close(locked)
	}()
	<-locked
	a.mutex.Unlock()

	table.release(1)
	table.release(2)
	if n := table.count(); n != 0 {
		t.Errorf("%d slots remain", n)
	}
}
