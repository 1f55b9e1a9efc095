//go:build windows

package watcher

import "github.com/scjalliance/attentive/winwindow"

// handleForeground resolves the process that owns the given window and
// records it as the observed foreground. A zero window means the
// current foreground window should be queried, which is how the poll
// backstop and the startup probe prompt a refresh.
func (s *Service) handleForeground(h winwindow.Handle) {
	if h == 0 {
		h = winwindow.Foreground()
		if h == 0 {
			// Nothing holds the foreground right now. This is normal
			// during session transitions; the last known foreground
			// stands.
			return
		}
	}

	if h == s.lastForeground {
		return
	}

	id, err := s.resolver.Resolve(h)
	if err != nil {
		if err == errResolveTimeout {
			s.debug("Foreground owner resolution timed out")
		}
		return
	}

	// Route through the registry's creation path. For a process that is
	// already tracked this refreshes the metadata of the window that
	// came to the front.
	win := Window{Title: winwindow.Title(h), Visible: winwindow.Visible(h)}
	rec, _ := s.registry.UpsertWindow(id, WindowID(h), win, false)
	if rec == nil {
		return
	}

	s.lastForeground = h
	s.registry.ObserveForeground(rec)
}
