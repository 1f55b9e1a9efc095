package main

import (
	"fmt"
	"time"

	"github.com/scjalliance/attentive/counter"
	"github.com/scjalliance/attentive/watcher"
)

// A StatRecipient is capable of receiving watcher statistics.
type StatRecipient interface {
	Send(name string, value float64, t time.Time) error
}

// A hookDropSource reports the cumulative count of dropped hook
// events.
type hookDropSource interface {
	HookEventDrops() uint64
}

// StatManager accumulates watcher activity counters and periodically
// flushes them to a recipient. A nil manager discards everything.
type StatManager struct {
	recipient StatRecipient
	registry  *watcher.Registry
	hooks     hookDropSource

	started    counter.Counter
	stopped    counter.Counter
	foreground counter.Counter

	lastHookDrops uint64
	lastNoteDrops uint64
}

// NewStatManager returns a new statistics manager.
func NewStatManager(r StatRecipient, registry *watcher.Registry, hooks hookDropSource) *StatManager {
	return &StatManager{recipient: r, registry: registry, hooks: hooks}
}

// Handle counts the notification.
func (m *StatManager) Handle(n watcher.Notification) {
	if m == nil {
		return
	}
	switch n.(type) {
	case watcher.ProcessStarted:
		m.started.Add(1)
	case watcher.ProcessStopped:
		m.stopped.Add(1)
	case watcher.ForegroundChanged:
		m.foreground.Add(1)
	}
}

// Flush sends the current tracked-process gauge and the counters
// accumulated since the previous flush.
func (m *StatManager) Flush() error {
	if m == nil {
		return nil
	}

	now := time.Now()

	stats := []struct {
		name  string
		value float64
	}{
		{"tracked", float64(m.registry.Count())},
		{"started", float64(m.started.Swap(0))},
		{"stopped", float64(m.stopped.Swap(0))},
		{"foreground changes", float64(m.foreground.Swap(0))},
		{"hook drops", float64(delta(&m.lastHookDrops, m.hooks.HookEventDrops()))},
		{"notification drops", float64(delta(&m.lastNoteDrops, m.registry.NotificationDrops()))},
	}

	for _, stat := range stats {
		if err := m.recipient.Send(stat.name, stat.value, now); err != nil {
			return fmt.Errorf("failed to send %s stat: %v", stat.name, err)
		}
	}

	return nil
}

// delta returns the change since the last collection and records the
// new value. Flush runs on a single goroutine, so no synchronization
// is needed.
func delta(last *uint64, current uint64) uint64 {
	d := current - *last
	*last = current
	return d
}
