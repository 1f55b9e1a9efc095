package watcher

import "sync"

// lockTable provides one lock per process ID. Slots are created on
// first reference and removed when the last reference is released, so
// the table never retains entries for processes that failed creation or
// have been removed.
type lockTable struct {
	mutex sync.Mutex
	slots map[PID]*lockSlot
}

type lockSlot struct {
	mutex sync.Mutex
	refs  int
}

// acquire returns the slot for the given process ID, creating it if
// necessary, and takes a reference to it. The caller must pair every
// acquire with a release.
func (t *lockTable) acquire(id PID) *lockSlot {
	t.mutex.Lock()
	defer t.mutex.Unlock()

	if t.slots == nil {
		t.slots = make(map[PID]*lockSlot)
	}

	slot := t.slots[id]
	if slot == nil {
		slot = &lockSlot{}
		t.slots[id] = slot
	}
	slot.refs++
	return slot
}

// release drops a reference to the slot for the given process ID,
// removing the slot once no references remain. Goroutines blocked on
// the slot's mutex hold references, so a slot is never removed while
// a lock attempt on it is pending.
func (t *lockTable) release(id PID) {
	t.mutex.Lock()
	defer t.mutex.Unlock()

	slot := t.slots[id]
	if slot == nil {
		return
	}
	slot.refs--
	if slot.refs <= 0 {
		delete(t.slots, id)
	}
}

// count returns the number of live slots.
func (t *lockTable) count() int {
	t.mutex.Lock()
	defer t.mutex.Unlock()
	return len(t.slots)
}
