// Package watcher tracks the lifecycle and input focus of user-relevant
// processes. It maintains a concurrent registry of process records fed
// by window discovery and native event hooks, derives the current
// foreground process, watches for process exit, and provides safe
// suspend and resume control over process trees.
package watcher

import (
	"context"
	"strconv"
	"sync"
	"time"

	"github.com/scjalliance/attentive/filter"
	"github.com/scjalliance/attentive/platform"
)

// PID is a process ID.
type PID uint32

// String returns a string representation of the process ID.
func (id PID) String() string {
	return strconv.FormatUint(uint64(id), 10)
}

// WindowID is a native window identifier.
type WindowID uintptr

// Window holds metadata about a single window of a tracked process.
type Window struct {
	Title   string
	Visible bool
}

// ProcessData holds the identity of a process, resolved once when its
// record is created.
type ProcessData struct {
	ID       PID
	ParentID PID
	Name     string
	Path     string
	Token    string
	User     string
	Creation time.Time
}

// ProcessRef is an open reference to a running process. The record that
// holds it owns it exclusively and releases it exactly once.
type ProcessRef interface {
	// Wait blocks until the process exits or the context is cancelled.
	Wait(ctx context.Context) error

	// Close releases the reference.
	Close() error
}

// Record is the in-memory model of one tracked process. Identity fields
// are immutable after creation; runtime state is guarded by the record's
// mutex and, for suspension transitions, by the process's registry lock.
type Record struct {
	data      ProcessData
	platform  platform.Tag
	class     filter.Class
	atStartup bool
	ref       ProcessRef

	releaseOnce sync.Once

	mutex     sync.Mutex
	windows   map[WindowID]Window
	suspended bool
	exited    bool
}

func newRecord(data ProcessData, tag platform.Tag, class filter.Class, ref ProcessRef, atStartup bool) *Record {
	return &Record{
		data:      data,
		platform:  tag,
		class:     class,
		atStartup: atStartup,
		ref:       ref,
		windows:   make(map[WindowID]Window),
	}
}

// ID returns the process ID.
func (r *Record) ID() PID { return r.data.ID }

// Name returns the process executable name.
func (r *Record) Name() string { return r.data.Name }

// Path returns the process executable path.
func (r *Record) Path() string { return r.data.Path }

// Token returns the instance token that distinguishes this process from
// other processes that have held the same process ID.
func (r *Record) Token() string { return r.data.Token }

// Data returns the process identity.
func (r *Record) Data() ProcessData { return r.data }

// Platform returns the application platform the process belongs to.
func (r *Record) Platform() platform.Tag { return r.platform }

// Class returns the process classification.
func (r *Record) Class() filter.Class { return r.class }

// AtStartup returns true if the process was already running when
// tracking began.
func (r *Record) AtStartup() bool { return r.atStartup }

// attachWindow adds or updates window metadata.
func (r *Record) attachWindow(id WindowID, win Window) {
	if id == 0 {
		return
	}
	r.mutex.Lock()
	r.windows[id] = win
	r.mutex.Unlock()
}

// setWindowVisible updates the visibility of a known window.
func (r *Record) setWindowVisible(id WindowID, visible bool) {
	r.mutex.Lock()
	if win, ok := r.windows[id]; ok {
		win.Visible = visible
		r.windows[id] = win
	}
	r.mutex.Unlock()
}

// windowIDs returns a snapshot of the record's current window set.
func (r *Record) windowIDs() []WindowID {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	ids := make([]WindowID, 0, len(r.windows))
	for id := range r.windows {
		ids = append(ids, id)
	}
	return ids
}

// Suspended returns true if the process is currently suspended.
func (r *Record) Suspended() bool {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	return r.suspended
}

func (r *Record) setSuspended(suspended bool) {
	r.mutex.Lock()
	r.suspended = suspended
	r.mutex.Unlock()
}

// Exited returns true if the process is known to have exited.
func (r *Record) Exited() bool {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	return r.exited
}

func (r *Record) markExited() {
	r.mutex.Lock()
	r.exited = true
	r.mutex.Unlock()
}

// releaseRef closes the record's process reference exactly once.
func (r *Record) releaseRef() {
	r.releaseOnce.Do(func() {
		if r.ref != nil {
			r.ref.Close()
		}
	})
}

// Info is an immutable snapshot of a record.
type Info struct {
	ID        PID
	Name      string
	Path      string
	Token     string
	User      string
	Creation  time.Time
	Platform  platform.Tag
	Class     filter.Class
	AtStartup bool
	Suspended bool
	Windows   map[WindowID]Window
}

// Info returns a snapshot of the record's identity and runtime state.
func (r *Record) Info() Info {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	windows := make(map[WindowID]Window, len(r.windows))
	for id, win := range r.windows {
		windows[id] = win
	}

	return Info{
		ID:        r.data.ID,
		Name:      r.data.Name,
		Path:      r.data.Path,
		Token:     r.data.Token,
		User:      r.data.User,
		Creation:  r.data.Creation,
		Platform:  r.platform,
		Class:     r.class,
		AtStartup: r.atStartup,
		Suspended: r.suspended,
		Windows:   windows,
	}
}
