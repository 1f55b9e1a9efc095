package watcher

import (
	"fmt"
	"time"

	"github.com/scjalliance/attentive/filter"
)

// defaultSettleDelay is how long the controller waits between hiding a
// process's windows and suspending its threads, and again between
// resuming its threads and restoring its windows. The pause lets the
// process finish reacting to the visibility change while it can still
// run.
const defaultSettleDelay = 500 * time.Millisecond

// controllerOps are the platform operations a controller acts through.
type controllerOps struct {
	hideWindow  func(WindowID) error
	showWindow  func(WindowID) error
	suspendTree func(PID) error
	resumeTree  func(PID) error
}

// Controller suspends and resumes tracked processes. A suspension hides
// the process's windows, waits for the process to settle, and then
// freezes its threads; resumption reverses the steps in the opposite
// order. The windows hidden by a suspension are cached so that
// resumption restores exactly that set.
//
// All operations on a process are serialized through the registry's
// per-process locks, so a suspension cannot interleave with the
// process's removal or with another suspension.
type Controller struct {
	registry *Registry
	ops      controllerOps
	settle   time.Duration
	cache    windowCache
	logger   Logger
}

func newController(registry *Registry, ops controllerOps, settle time.Duration, logger Logger) *Controller {
	return &Controller{
		registry: registry,
		ops:      ops,
		settle:   settle,
		logger:   logger,
	}
}

// Suspend freezes the process with the given ID. It returns true if the
// process was suspended, and false if the process is not tracked, is
// already suspended, or must not be suspended.
//
// Restricted processes and this program's own process are never
// suspended.
func (c *Controller) Suspend(id PID) bool {
	slot := c.registry.locks.acquire(id)
	slot.mutex.Lock()
	defer func() {
		slot.mutex.Unlock()
		c.registry.locks.release(id)
	}()

	rec, ok := c.registry.Get(id)
	if !ok {
		return false
	}
	if rec.Suspended() {
		return false
	}
	if class := rec.Class(); class == filter.Restricted || class == filter.SelfProcess {
		c.debugProcess(rec, "Refusing to suspend %s process", class)
		return false
	}

	var hidden []WindowID
	for _, wid := range rec.windowIDs() {
		switch err := c.ops.hideWindow(wid); err {
		case nil:
			hidden = append(hidden, wid)
			rec.setWindowVisible(wid, false)
		case ErrWindowGone:
		default:
			c.debugProcess(rec, "Unable to hide window %d: %v", wid, err)
		}
	}
	c.cache.put(id, hidden)

	if c.settle > 0 {
		time.Sleep(c.settle)
	}

	if err := c.ops.suspendTree(id); err != nil {
		// The process still runs; put its windows back.
		c.debugProcess(rec, "Unable to suspend: %v", err)
		if windows, ok := c.cache.take(id); ok {
			c.showWindows(rec, windows)
		}
		return false
	}

	rec.setSuspended(true)
	c.logProcess(rec, "Suspended")
	return true
}

// Resume thaws the process with the given ID and restores the windows
// that were hidden when it was suspended. It returns true if the
// process was resumed.
func (c *Controller) Resume(id PID) bool {
	slot := c.registry.locks.acquire(id)
	slot.mutex.Lock()
	defer func() {
		slot.mutex.Unlock()
		c.registry.locks.release(id)
	}()

	rec, ok := c.registry.Get(id)
	if !ok {
		// The process exited while suspended; drop its stale cache.
		c.cache.take(id)
		return false
	}
	if !rec.Suspended() {
		return false
	}

	if err := c.ops.resumeTree(id); err != nil {
		// The cache is kept so a later attempt can still restore the
		// process's windows.
		c.debugProcess(rec, "Unable to resume: %v", err)
		return false
	}

	if c.settle > 0 {
		time.Sleep(c.settle)
	}

	if windows, ok := c.cache.take(id); ok {
		c.showWindows(rec, windows)
	}

	rec.setSuspended(false)
	c.logProcess(rec, "Resumed")
	return true
}

// ResumeAll resumes every suspended process in the registry and returns
// the number of processes resumed.
func (c *Controller) ResumeAll() int {
	var resumed int
	for _, rec := range c.registry.All() {
		if !rec.Suspended() {
			continue
		}
		if c.Resume(rec.ID()) {
			resumed++
		}
	}
	return resumed
}

// restoreCachedWindows shows every window recorded by an unresumed
// suspension. It is called during shutdown so that no window stays
// hidden after the program exits. Threads are not resumed; a process
// deliberately suspended stays suspended.
func (c *Controller) restoreCachedWindows() {
	entries := c.cache.drain()
	for id, windows := range entries {
		rec, tracked := c.registry.Get(id)
		for _, wid := range windows {
			switch err := c.ops.showWindow(wid); err {
			case nil:
				if tracked {
					rec.setWindowVisible(wid, true)
				}
			case ErrWindowGone:
			default:
				c.debug("Unable to restore window %d of process %s: %v", wid, id, err)
			}
		}
	}
}

func (c *Controller) showWindows(rec *Record, windows []WindowID) {
	for _, wid := range windows {
		switch err := c.ops.showWindow(wid); err {
		case nil:
			rec.setWindowVisible(wid, true)
		case ErrWindowGone:
		default:
			c.debugProcess(rec, "Unable to restore window %d: %v", wid, err)
		}
	}
}

func (c *Controller) debug(format string, v ...interface{}) {
	if c.logger == nil {
		return
	}
	c.logger.Log(ServiceEvent{
		Msg:   fmt.Sprintf(format, v...),
		Debug: true,
	})
}

func (c *Controller) logProcess(rec *Record, format string, v ...interface{}) {
	if c.logger == nil {
		return
	}
	c.logger.Log(ProcessEvent{
		ProcessName: rec.Name(),
		Token:       rec.Token(),
		Msg:         fmt.Sprintf(format, v...),
	})
}

func (c *Controller) debugProcess(rec *Record, format string, v ...interface{}) {
	if c.logger == nil {
		return
	}
	c.logger.Log(ProcessEvent{
		ProcessName: rec.Name(),
		Token:       rec.Token(),
		Msg:         fmt.Sprintf(format, v...),
		Debug:       true,
	})
}
