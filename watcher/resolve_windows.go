//go:build windows

package watcher

import (
	"errors"
	"strings"
	"time"

	"github.com/gentlemanautomaton/winproc"
	"github.com/scjalliance/attentive/winwindow"
)

var (
	// errNoOwner reports that a window has no resolvable owning process.
	errNoOwner = errors.New("window has no resolvable owner")

	// errResolveTimeout reports that owner resolution exceeded its
	// bound.
	errResolveTimeout = errors.New("window owner resolution timed out")
)

// frameHostName is the executable that hosts windows on behalf of
// packaged applications. A window owned by it belongs, for tracking
// purposes, to the hosted application.
const frameHostName = "ApplicationFrameHost.exe"

// ownerResolver maps windows to the process IDs that own them. Every
// resolution is bounded by a timeout; a resolution that exceeds it is
// abandoned and the window's event is dropped.
type ownerResolver struct {
	timeout time.Duration
}

type resolvedOwner struct {
	id PID
	ok bool
}

// Resolve returns the ID of the process that owns the given window. A
// resolution that exceeds the resolver's timeout is abandoned and
// reported as errResolveTimeout; the goroutine performing it is left to
// finish on its own.
func (r ownerResolver) Resolve(h winwindow.Handle) (PID, error) {
	done := make(chan resolvedOwner, 1)
	go func() {
		id, ok := resolveOwner(h)
		done <- resolvedOwner{id: id, ok: ok}
	}()

	timer := time.NewTimer(r.timeout)
	defer timer.Stop()

	select {
	case res := <-done:
		if !res.ok {
			return 0, errNoOwner
		}
		return res.id, nil
	case <-timer.C:
		return 0, errResolveTimeout
	}
}

func resolveOwner(h winwindow.Handle) (PID, bool) {
	pid, ok := winwindow.Owner(h)
	if !ok {
		return 0, false
	}

	// Windows of packaged applications are presented by a frame host
	// process. The application's own process owns a child window inside
	// the frame; that is the process the window really belongs to.
	if strings.EqualFold(processName(PID(pid)), frameHostName) {
		var hosted PID
		winwindow.EachChild(h, func(child winwindow.Handle) bool {
			cpid, ok := winwindow.Owner(child)
			if ok && cpid != pid {
				hosted = PID(cpid)
				return false
			}
			return true
		})
		if hosted != 0 {
			return hosted, true
		}
	}

	return PID(pid), true
}

// processName returns the executable name of the process with the
// given ID, or an empty string if the process cannot be found.
func processName(id PID) string {
	match := func(p winproc.Process) bool {
		return p.ID == winproc.ID(id)
	}
	procs, err := winproc.List(winproc.Include(match))
	if err != nil || len(procs) == 0 {
		return ""
	}
	return procs[0].Name
}
