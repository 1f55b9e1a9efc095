//go:build windows
// +build windows

// Package winwindow provides thin wrappers around the native window
// management calls used for process tracking: enumeration, ownership,
// titles, visibility and foreground queries.
package winwindow

import (
	"errors"
	"sync"
	"syscall"
	"unicode/utf16"
	"unsafe"

	"golang.org/x/sys/windows"
)

// Handle is a native window handle.
type Handle uintptr

var (
	moduser32 = windows.NewLazySystemDLL("user32.dll")

	procEnumWindows              = moduser32.NewProc("EnumWindows")
	procEnumChildWindows         = moduser32.NewProc("EnumChildWindows")
	procGetWindowThreadProcessId = moduser32.NewProc("GetWindowThreadProcessId")
	procGetWindowTextW           = moduser32.NewProc("GetWindowTextW")
	procIsWindow                 = moduser32.NewProc("IsWindow")
	procIsWindowVisible          = moduser32.NewProc("IsWindowVisible")
	procShowWindow               = moduser32.NewProc("ShowWindow")
	procGetForegroundWindow      = moduser32.NewProc("GetForegroundWindow")
	procGetAncestor              = moduser32.NewProc("GetAncestor")
)

const (
	swHide   = 0
	swShowNA = 8 // show without activating

	gaRoot = 2
)

// ErrWindowGone is returned when an operation is attempted on a window
// that no longer exists.
var ErrWindowGone = errors.New("winwindow: the window no longer exists")

// Enumeration callbacks are registered once and dispatch through
// package-level variables because syscall.NewCallback allocations are
// permanent.
var (
	enumMutex sync.Mutex
	enumFn    func(Handle) bool

	childMutex sync.Mutex
	childFn    func(Handle) bool
)

var enumCallback = syscall.NewCallback(func(h, lparam uintptr) uintptr {
	if enumFn(Handle(h)) {
		return 1
	}
	return 0
})

var childCallback = syscall.NewCallback(func(h, lparam uintptr) uintptr {
	if childFn(Handle(h)) {
		return 1
	}
	return 0
})

// EachWindow calls fn for each top-level window. Enumeration stops when
// fn returns false.
func EachWindow(fn func(Handle) bool) error {
	enumMutex.Lock()
	defer enumMutex.Unlock()

	enumFn = fn
	defer func() { enumFn = nil }()

	r0, _, e0 := syscall.Syscall(procEnumWindows.Addr(), 2, enumCallback, 0, 0)
	if r0 == 0 {
		if e0 != 0 {
			return e0
		}
		// Enumeration was stopped by the callback.
	}
	return nil
}

// EachChild calls fn for each child window of parent. Enumeration stops
// when fn returns false.
func EachChild(parent Handle, fn func(Handle) bool) error {
	childMutex.Lock()
	defer childMutex.Unlock()

	childFn = fn
	defer func() { childFn = nil }()

	syscall.Syscall(procEnumChildWindows.Addr(), 3, uintptr(parent), childCallback, 0)
	return nil
}

// Owner returns the process ID that owns the window.
func Owner(h Handle) (pid uint32, ok bool) {
	tid, _, _ := syscall.Syscall(procGetWindowThreadProcessId.Addr(), 2, uintptr(h), uintptr(unsafe.Pointer(&pid)), 0)
	if tid == 0 {
		return 0, false
	}
	return pid, true
}

// Title returns the window's title text, which may be empty.
func Title(h Handle) string {
	var buf [512]uint16
	n, _, _ := syscall.Syscall(procGetWindowTextW.Addr(), 3, uintptr(h), uintptr(unsafe.Pointer(&buf[0])), uintptr(len(buf)))
	if n == 0 {
		return ""
	}
	return string(utf16.Decode(buf[:n]))
}

// IsWindow returns true if the handle still identifies a window.
func IsWindow(h Handle) bool {
	r0, _, _ := syscall.Syscall(procIsWindow.Addr(), 1, uintptr(h), 0, 0)
	return r0 != 0
}

// Visible returns true if the window exists and is visible.
func Visible(h Handle) bool {
	r0, _, _ := syscall.Syscall(procIsWindowVisible.Addr(), 1, uintptr(h), 0, 0)
	return r0 != 0
}

// Hide makes the window invisible.
func Hide(h Handle) error {
	if !IsWindow(h) {
		return ErrWindowGone
	}
	syscall.Syscall(procShowWindow.Addr(), 2, uintptr(h), swHide, 0)
	return nil
}

// Show makes the window visible without activating it.
func Show(h Handle) error {
	if !IsWindow(h) {
		return ErrWindowGone
	}
	syscall.Syscall(procShowWindow.Addr(), 2, uintptr(h), swShowNA, 0)
	return nil
}

// Foreground returns the window that currently has input focus, which
// may be zero during a focus transition.
func Foreground() Handle {
	r0, _, _ := syscall.Syscall(procGetForegroundWindow.Addr(), 0, 0, 0, 0)
	return Handle(r0)
}

// Root returns the top-level ancestor of the window.
func Root(h Handle) Handle {
	r0, _, _ := syscall.Syscall(procGetAncestor.Addr(), 2, uintptr(h), gaRoot, 0)
	return Handle(r0)
}
