//go:build windows

package trayui

import (
	"sync"

	"github.com/lxn/walk"
	"github.com/scjalliance/attentive/watcher"
)

// UI is responsible for running the watcher user interface for the
// current user.
type UI struct {
	registry *watcher.Registry

	mutex sync.Mutex
	tray  *Tray
}

// New creates and starts a new UI instance reflecting the given
// registry.
//
// It is the caller's responsibility to call Close when finished with
// the UI.
func New(icon *walk.Icon, name, version string, registry *watcher.Registry, actions Actions) (*UI, error) {
	tray := NewTray(icon, name, version, actions)
	if err := tray.Start(); err != nil {
		return nil, err
	}

	ui := &UI{
		registry: registry,
		tray:     tray,
	}
	ui.tray.Update(ui.state())

	return ui, nil
}

// Close stops the user interface and releases any resources consumed
// by it.
func (ui *UI) Close() error {
	ui.mutex.Lock()
	defer ui.mutex.Unlock()

	if ui.tray == nil {
		return nil
	}

	err := ui.tray.Stop()
	ui.tray = nil
	return err
}

// Handle instructs the user interface to take action on the given
// notification.
//
// If the UI is not running the notification will be dropped.
func (ui *UI) Handle(n watcher.Notification) {
	ui.mutex.Lock()
	defer ui.mutex.Unlock()

	if ui.tray == nil {
		return
	}

	switch n.(type) {
	case watcher.ForegroundChanged, watcher.ProcessStarted, watcher.ProcessStopped:
		ui.tray.Update(ui.state())
	}
}

// Notify shows a notification balloon.
func (ui *UI) Notify(notice Notice) {
	ui.mutex.Lock()
	defer ui.mutex.Unlock()

	if ui.tray == nil {
		return
	}
	ui.tray.Notify(notice)
}

func (ui *UI) state() State {
	var s State
	if rec, ok := ui.registry.Foreground(); ok {
		info := rec.Info()
		s.Foreground = &info
	}
	for _, rec := range ui.registry.All() {
		s.Tracked++
		if rec.Suspended() {
			s.Suspended++
		}
	}
	return s
}
