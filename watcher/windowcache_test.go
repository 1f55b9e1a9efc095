package watcher

import "testing"

func TestWindowCache(t *testing.T) {
	var cache windowCache

	if _, ok := cache.take(1); ok {
		t.Error("empty cache returned an entry")
	}

	cache.put(1, []WindowID{10, 11})
	cache.put(2, []WindowID{20})
	cache.put(3, nil)

	windows, ok := cache.take(1)
	if !ok || len(windows) != 2 {
		t.Errorf("take(1) = (%v, %v), want two windows", windows, ok)
	}
	if _, ok := cache.take(1); ok {
		t.Error("entry survived its removal")
	}
	if _, ok := cache.take(3); ok {
		t.Error("empty window set was cached")
	}

	entries := cache.drain()
	if len(entries) != 1 || len(entries[2]) != 1 {
		t.Errorf("drain = %v, want only the entry for process 2", entries)
	}
	if entries := cache.drain(); len(entries) != 0 {
		t.Errorf("second drain = %v, want nothing", entries)
	}
}
