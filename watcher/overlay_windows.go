//go:build windows

package watcher

import (
	"fmt"
	"sync"

	"golang.org/x/sys/windows"
)

// Overlay pauses the foreground application while a transient overlay
// surface holds input focus. Each focus target is handled
// independently: the process suspended when a target gains focus is
// the one resumed when that target loses it.
//
// The overlay holds its own process handles and never hides windows;
// the application stays visible beneath the overlay.
type Overlay struct {
	controller *Controller
	registry   *Registry
	flags      FlagSource
	logger     Logger

	mutex sync.Mutex
	held  map[string]heldProcess
}

type heldProcess struct {
	id     PID
	handle windows.Handle
}

// NewOverlay returns a new overlay focus handler.
func NewOverlay(registry *Registry, controller *Controller, flags FlagSource, logger Logger) *Overlay {
	return &Overlay{
		controller: controller,
		registry:   registry,
		flags:      flags,
		logger:     logger,
		held:       make(map[string]heldProcess),
	}
}

// FocusGained is called when the named overlay target takes input
// focus. If the current foreground process's profile asks for it, the
// process tree is paused until the target loses focus.
func (o *Overlay) FocusGained(target string) {
	o.mutex.Lock()
	defer o.mutex.Unlock()

	if _, ok := o.held[target]; ok {
		return
	}

	rec, ok := o.registry.Foreground()
	if !ok {
		return
	}
	if o.flags == nil || !o.flags.FlagsFor(rec.Info()).SuspendOnOverlay {
		return
	}

	id := rec.ID()
	handle, err := windows.OpenProcess(windows.PROCESS_QUERY_LIMITED_INFORMATION, false, uint32(id))
	if err != nil {
		o.debug("Unable to open process %s for overlay %q: %v", id, target, err)
		return
	}

	if !o.controller.SuspendHandle(handle, id) {
		windows.CloseHandle(handle)
		return
	}

	o.held[target] = heldProcess{id: id, handle: handle}
	o.log("Overlay %q paused %s", target, rec.Name())
}

// FocusLost is called when the named overlay target loses input focus.
// Whatever FocusGained paused for that target is resumed.
func (o *Overlay) FocusLost(target string) {
	o.mutex.Lock()
	defer o.mutex.Unlock()
	o.release(target)
}

// Stop resumes and releases everything the overlay still holds.
func (o *Overlay) Stop() {
	o.mutex.Lock()
	defer o.mutex.Unlock()

	for target := range o.held {
		o.release(target)
	}
}

// release resumes the process held for a target. The caller must hold
// the overlay's mutex.
func (o *Overlay) release(target string) {
	held, ok := o.held[target]
	if !ok {
		return
	}
	delete(o.held, target)

	if o.controller.ResumeHandle(held.handle, held.id) {
		o.log("Overlay %q resumed %s", target, held.id)
	}
	windows.CloseHandle(held.handle)
}

func (o *Overlay) log(format string, v ...interface{}) {
	if o.logger == nil {
		return
	}
	o.logger.Log(ServiceEvent{
		Msg: fmt.Sprintf(format, v...),
	})
}

func (o *Overlay) debug(format string, v ...interface{}) {
	if o.logger == nil {
		return
	}
	o.logger.Log(ServiceEvent{
		Msg:   fmt.Sprintf(format, v...),
		Debug: true,
	})
}
