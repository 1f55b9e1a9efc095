//go:build windows

package watcher

import (
	"golang.org/x/sys/windows"

	"github.com/scjalliance/attentive/winwindow"
)

// stillActive is the exit code reported for processes that have not
// exited.
const stillActive = 259

// NewController returns a controller that acts on processes through
// the operating system.
func NewController(registry *Registry, logger Logger) *Controller {
	return newController(registry, controllerOps{
		hideWindow:  hideWindow,
		showWindow:  showWindow,
		suspendTree: SuspendProcessTree,
		resumeTree:  ResumeProcessTree,
	}, defaultSettleDelay, logger)
}

func hideWindow(id WindowID) error {
	switch err := winwindow.Hide(winwindow.Handle(id)); err {
	case winwindow.ErrWindowGone:
		return ErrWindowGone
	default:
		return err
	}
}

func showWindow(id WindowID) error {
	switch err := winwindow.Show(winwindow.Handle(id)); err {
	case winwindow.ErrWindowGone:
		return ErrWindowGone
	default:
		return err
	}
}

// SuspendHandle freezes the process tree rooted at the process the
// given handle refers to, without touching any windows. It is the
// entry point for callers that already hold a handle, such as a
// transient overlay pausing the app beneath it, and it serializes with
// every other operation on the same process. It returns true if the
// tree was frozen.
func (c *Controller) SuspendHandle(h windows.Handle, id PID) bool {
	slot := c.registry.locks.acquire(id)
	slot.mutex.Lock()
	defer func() {
		slot.mutex.Unlock()
		c.registry.locks.release(id)
	}()

	if exited(h) {
		return false
	}

	if err := SuspendProcessTree(id); err != nil {
		c.debug("Unable to suspend process %s: %v", id, err)
		return false
	}

	if rec, ok := c.registry.Get(id); ok {
		rec.setSuspended(true)
	}
	return true
}

// ResumeHandle thaws a process tree frozen by SuspendHandle. Windows
// are not touched. It returns true if the tree was thawed.
func (c *Controller) ResumeHandle(h windows.Handle, id PID) bool {
	slot := c.registry.locks.acquire(id)
	slot.mutex.Lock()
	defer func() {
		slot.mutex.Unlock()
		c.registry.locks.release(id)
	}()

	if exited(h) {
		return false
	}

	if err := ResumeProcessTree(id); err != nil {
		c.debug("Unable to resume process %s: %v", id, err)
		return false
	}

	if rec, ok := c.registry.Get(id); ok {
		rec.setSuspended(false)
	}
	return true
}

// exited returns true if the process behind the handle has exited.
func exited(h windows.Handle) bool {
	var code uint32
	if err := windows.GetExitCodeProcess(h, &code); err != nil {
		return true
	}
	return code != stillActive
}
