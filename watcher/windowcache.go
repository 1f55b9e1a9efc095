package watcher

import "sync"

// windowCache remembers which windows were hidden when a process was
// suspended, so that resumption restores exactly those windows and not
// whatever the process has opened since.
type windowCache struct {
	mutex   sync.Mutex
	entries map[PID][]WindowID
}

func (c *windowCache) put(id PID, windows []WindowID) {
	if len(windows) == 0 {
		return
	}
	c.mutex.Lock()
	defer c.mutex.Unlock()
	if c.entries == nil {
		c.entries = make(map[PID][]WindowID)
	}
	c.entries[id] = windows
}

func (c *windowCache) take(id PID) ([]WindowID, bool) {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	windows, ok := c.entries[id]
	if ok {
		delete(c.entries, id)
	}
	return windows, ok
}

// drain removes and returns all cached entries.
func (c *windowCache) drain() map[PID][]WindowID {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	entries := c.entries
	c.entries = nil
	return entries
}
