//go:build windows
// +build windows

// Package winevent delivers window event notifications from the
// operating system's accessibility layer. Each hook runs its own
// message pump on a locked OS thread; callbacks are invoked on that
// thread and must not block.
package winevent

import (
	"errors"
	"runtime"
	"sync"
	"syscall"
	"time"
	"unsafe"

	"golang.org/x/sys/windows"
)

// Well-known event identifiers.
const (
	SystemForeground = 0x0003
	ObjectShow       = 0x8002
)

// ObjectWindow is the object identifier for the window itself, as
// opposed to one of its child accessibility objects.
const ObjectWindow = 0

const (
	winEventOutOfContext   = 0x0000
	winEventSkipOwnProcess = 0x0002

	wmQuit = 0x0012
)

var (
	moduser32 = windows.NewLazySystemDLL("user32.dll")

	procSetWinEventHook    = moduser32.NewProc("SetWinEventHook")
	procUnhookWinEvent     = moduser32.NewProc("UnhookWinEvent")
	procGetMessageW        = moduser32.NewProc("GetMessageW")
	procPostThreadMessageW = moduser32.NewProc("PostThreadMessageW")
)

// Callback receives window events. The hwnd may be zero for events that
// are not associated with a window.
type Callback func(event uint32, hwnd uintptr, objectID, childID int32)

// The native callback is registered once and dispatches on the hook
// handle because syscall.NewCallback allocations are permanent.
var (
	hooksMutex sync.RWMutex
	hookFns    = make(map[uintptr]Callback)
)

var eventCallback = syscall.NewCallback(eventProc)

// eventProc forwards an event to the callback registered for its hook.
// Events for hooks that are no longer registered are dropped.
func eventProc(hook, event, hwnd, objectID, childID, threadID, eventTime uintptr) uintptr {
	hooksMutex.RLock()
	cb := hookFns[hook]
	hooksMutex.RUnlock()
	if cb != nil {
		cb(uint32(event), hwnd, int32(objectID), int32(childID))
	}
	return 0
}

func registerHook(hook uintptr, cb Callback) {
	hooksMutex.Lock()
	hookFns[hook] = cb
	hooksMutex.Unlock()
}

func unregisterHook(hook uintptr) {
	hooksMutex.Lock()
	delete(hookFns, hook)
	hooksMutex.Unlock()
}

// ErrCloseTimeout is returned when a hook's message pump does not stop
// within the close timeout.
var ErrCloseTimeout = errors.New("winevent: timed out waiting for the event hook to stop")

// Hook is an installed window event hook.
type Hook struct {
	mutex    sync.Mutex
	threadID uint32
	stopped  <-chan struct{}
}

type hookStart struct {
	threadID uint32
	err      error
}

// msg mirrors the native MSG structure.
type msg struct {
	hwnd    uintptr
	message uint32
	wparam  uintptr
	lparam  uintptr
	time    uint32
	ptX     int32
	ptY     int32
}

// New installs a hook for the inclusive event range [min, max] and
// starts its message pump. The callback runs on the pump thread.
func New(min, max uint32, cb Callback) (*Hook, error) {
	startup := make(chan hookStart, 1)
	stopped := make(chan struct{})

	go pump(min, max, cb, startup, stopped)

	start := <-startup
	if start.err != nil {
		return nil, start.err
	}

	return &Hook{
		threadID: start.threadID,
		stopped:  stopped,
	}, nil
}

// Close uninstalls the hook and stops its message pump, waiting up to
// timeout for the pump thread to exit.
func (h *Hook) Close(timeout time.Duration) error {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	if h.threadID == 0 {
		return nil
	}

	syscall.Syscall6(procPostThreadMessageW.Addr(), 4, uintptr(h.threadID), wmQuit, 0, 0, 0, 0)
	h.threadID = 0

	t := time.NewTimer(timeout)
	defer t.Stop()

	select {
	case <-h.stopped:
		return nil
	case <-t.C:
		return ErrCloseTimeout
	}
}

func pump(min, max uint32, cb Callback, startup chan<- hookStart, stopped chan<- struct{}) {
	// The hook and its message pump are bound to this thread for their
	// whole lifetime.
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	defer close(stopped)

	hook, _, e0 := syscall.Syscall9(procSetWinEventHook.Addr(), 7,
		uintptr(min), uintptr(max),
		0, eventCallback,
		0, 0,
		winEventOutOfContext|winEventSkipOwnProcess,
		0, 0)
	if hook == 0 {
		err := error(e0)
		if e0 == 0 {
			err = errors.New("winevent: SetWinEventHook failed")
		}
		startup <- hookStart{err: err}
		return
	}
	defer syscall.Syscall(procUnhookWinEvent.Addr(), 1, hook, 0, 0)

	// The registration is removed before the hook is unhooked so that a
	// recycled hook handle cannot collide with a newer registration.
	registerHook(hook, cb)
	defer unregisterHook(hook)

	startup <- hookStart{threadID: windows.GetCurrentThreadId()}

	var m msg
	for {
		r0, _, _ := syscall.Syscall6(procGetMessageW.Addr(), 4, uintptr(unsafe.Pointer(&m)), 0, 0, 0, 0, 0)
		// 0 is WM_QUIT and ^0 indicates failure; both end the pump.
		if r0 == 0 || int32(r0) == -1 {
			return
		}
	}
}
