//go:build windows

package watcher

import "github.com/scjalliance/attentive/winwindow"

// discoverWindows enumerates the top-level visible windows that already
// exist and registers their owning processes. It returns the number of
// processes that entered tracking.
//
// Discovery runs once at startup; processes found this way carry the
// startup flag so that consumers can tell them apart from processes
// observed starting.
func discoverWindows(r *Registry, resolver ownerResolver) int {
	var found int
	winwindow.EachWindow(func(h winwindow.Handle) bool {
		if !winwindow.Visible(h) {
			return true
		}
		id, err := resolver.Resolve(h)
		if err != nil {
			if err == errResolveTimeout {
				r.debug("Window owner resolution timed out during discovery")
			}
			return true
		}
		win := Window{Title: winwindow.Title(h), Visible: true}
		if _, created := r.UpsertWindow(id, WindowID(h), win, true); created {
			found++
		}
		return true
	})
	return found
}
