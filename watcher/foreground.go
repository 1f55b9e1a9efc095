package watcher

import "github.com/scjalliance/attentive/filter"

// ObserveForeground records that the given process has taken the
// foreground. It returns true if the externally visible foreground
// changed.
//
// Restricted processes and this program's own process never take the
// externally visible foreground; observing one leaves the current
// foreground in place and announces nothing. The desktop shell is a
// real foreground: when it comes to the front the user is looking at
// the desktop.
func (r *Registry) ObserveForeground(rec *Record) bool {
	class := rec.Class()
	if class == filter.Restricted || class == filter.SelfProcess {
		return false
	}
	if rec.Exited() {
		return false
	}

	id := rec.ID()

	r.fgMutex.Lock()
	if r.fgSet && r.fgID == id {
		r.fgMutex.Unlock()
		return false
	}
	prevID, prevSet := r.fgID, r.fgSet
	r.fgID = id
	r.fgSet = true
	r.fgMutex.Unlock()

	// The previous holder may have exited and been removed since it was
	// observed; in that case the change is announced without it.
	var previous *Info
	if prevSet {
		if prevRec, ok := r.Get(prevID); ok {
			info := prevRec.Info()
			previous = &info
		}
	}

	current := rec.Info()
	r.logProcess(rec, "Foreground")
	r.notifier.send(ForegroundChanged{Current: &current, Previous: previous, Class: class})
	return true
}
