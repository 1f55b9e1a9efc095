//go:build windows

package watcher

import (
	"github.com/scjalliance/attentive/winevent"
	"github.com/scjalliance/attentive/winwindow"
)

type hookEventKind int

const (
	// foregroundEvent prompts a foreground refresh. A zero window means
	// the current foreground window should be queried.
	foregroundEvent hookEventKind = iota

	// windowShownEvent reports that a window became visible.
	windowShownEvent
)

// hookEvent crosses from the native hook threads to the dispatcher.
type hookEvent struct {
	kind   hookEventKind
	window winwindow.Handle
}

// post queues an event for the dispatcher without blocking. Hook
// callbacks run on the hook thread and must return promptly, so an
// event that does not fit in the queue is dropped and counted.
func (s *Service) post(ev hookEvent) {
	select {
	case s.events <- ev:
	default:
		s.hookDrops.Add(1)
	}
}

// namedHook pairs a native event hook with the name used when logging
// about it.
type namedHook struct {
	name string
	hook *winevent.Hook
}

// installHooks registers for native foreground and window show events.
// Each hook runs its own message pump thread.
func (s *Service) installHooks() ([]namedHook, error) {
	var hooks []namedHook

	fail := func(err error) ([]namedHook, error) {
		for _, h := range hooks {
			h.hook.Close(hookCloseTimeout)
		}
		return nil, err
	}

	fg, err := winevent.New(winevent.SystemForeground, winevent.SystemForeground, func(event uint32, hwnd uintptr, objectID, childID int32) {
		s.post(hookEvent{kind: foregroundEvent, window: winwindow.Handle(hwnd)})
	})
	if err != nil {
		return fail(err)
	}
	hooks = append(hooks, namedHook{name: "foreground", hook: fg})

	show, err := winevent.New(winevent.ObjectShow, winevent.ObjectShow, func(event uint32, hwnd uintptr, objectID, childID int32) {
		if objectID != winevent.ObjectWindow || childID != 0 {
			return
		}
		s.post(hookEvent{kind: windowShownEvent, window: winwindow.Handle(hwnd)})
	})
	if err != nil {
		return fail(err)
	}
	hooks = append(hooks, namedHook{name: "window-show", hook: show})

	return hooks, nil
}

// handleWindowShown registers a window that just became visible with
// the record of its owning process. Child windows are ignored; only
// top-level windows enter tracking.
func (s *Service) handleWindowShown(h winwindow.Handle) {
	if h == 0 {
		return
	}
	if winwindow.Root(h) != h {
		return
	}

	id, err := s.resolver.Resolve(h)
	if err != nil {
		if err == errResolveTimeout {
			s.debug("Window owner resolution timed out")
		}
		return
	}

	win := Window{Title: winwindow.Title(h), Visible: winwindow.Visible(h)}
	s.registry.UpsertWindow(id, WindowID(h), win, false)
}
