package watcher

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/scjalliance/attentive/filter"
	"github.com/scjalliance/attentive/platform"
)

// Host provides access to the operating system's process facilities.
// Implementations must be safe for concurrent use.
type Host interface {
	// Acquire resolves the identity of the process with the given ID and
	// opens a reference to it. It returns ok == false without an error
	// when the process has already exited, which includes the case where
	// the ID has been recycled into a different process. An error means
	// the process exists but could not be resolved or opened.
	Acquire(id PID) (data ProcessData, ref ProcessRef, ok bool, err error)
}

// Registry is the single source of truth for tracked processes. At most
// one record exists per process ID; creation is idempotent and removal
// happens only when a process exits.
type Registry struct {
	host   Host
	logger Logger

	records  sync.Map // PID -> *Record
	locks    lockTable
	notifier notifier

	ctx    context.Context
	cancel context.CancelFunc

	fgMutex sync.Mutex
	fgID    PID
	fgSet   bool
}

// NewRegistry returns a registry that resolves processes through the
// given host.
func NewRegistry(host Host, logger Logger) *Registry {
	ctx, cancel := context.WithCancel(context.Background())
	return &Registry{
		host:   host,
		logger: logger,
		ctx:    ctx,
		cancel: cancel,
	}
}

// Close stops the registry's exit watchers and closes all notification
// channels. Records and their references are left in place; process
// references are released by the operating system when the program
// exits.
func (r *Registry) Close() {
	r.cancel()
	r.notifier.close()
}

// Subscribe returns a channel on which registry notifications are
// delivered and a cancel function that ends the subscription. Delivery
// is best effort: a subscriber that falls behind misses notifications.
func (r *Registry) Subscribe(bufferSize int) (<-chan Notification, func()) {
	return r.notifier.subscribe(bufferSize)
}

// Get returns the record for the given process ID.
func (r *Registry) Get(id PID) (*Record, bool) {
	v, ok := r.records.Load(id)
	if !ok {
		return nil, false
	}
	return v.(*Record), true
}

// All returns all current records.
func (r *Registry) All() []*Record {
	var records []*Record
	r.records.Range(func(_, v interface{}) bool {
		records = append(records, v.(*Record))
		return true
	})
	return records
}

// Count returns the number of tracked processes.
func (r *Registry) Count() int {
	var count int
	r.records.Range(func(_, _ interface{}) bool {
		count++
		return true
	})
	return count
}

// NotificationDrops returns the number of notifications that could not
// be delivered to one or more subscribers.
func (r *Registry) NotificationDrops() uint64 {
	return r.notifier.dropped()
}

// ByName returns all records whose executable name matches, ignoring
// case.
func (r *Registry) ByName(name string) []*Record {
	var records []*Record
	r.records.Range(func(_, v interface{}) bool {
		rec := v.(*Record)
		if strings.EqualFold(rec.Name(), name) {
			records = append(records, rec)
		}
		return true
	})
	return records
}

// Foreground returns the record for the process that currently holds
// the externally visible foreground, if there is one. The foreground is
// held as a process ID and re-resolved on each call, so a process that
// has exited since it was observed yields no foreground.
func (r *Registry) Foreground() (*Record, bool) {
	r.fgMutex.Lock()
	id, ok := r.fgID, r.fgSet
	r.fgMutex.Unlock()
	if !ok {
		return nil, false
	}
	return r.Get(id)
}

// UpsertWindow attaches a window to the record for the given process,
// creating the record first if the process is not yet tracked. Creation
// and the existence check are atomic under the process's lock, so
// concurrent calls for the same ID produce exactly one record. The
// returned boolean reports whether a record was created.
//
// A process that has already exited is not inserted; that is an
// expected race, not an error. A process that cannot be opened is
// skipped for this event but may be created by a later one.
func (r *Registry) UpsertWindow(id PID, wid WindowID, win Window, atStartup bool) (*Record, bool) {
	// Fast path: the record already exists and only needs the window.
	if rec, ok := r.Get(id); ok {
		rec.attachWindow(wid, win)
		return rec, false
	}

	slot := r.locks.acquire(id)
	slot.mutex.Lock()
	defer func() {
		slot.mutex.Unlock()
		r.locks.release(id)
	}()

	// Re-check under the lock; another caller may have created the
	// record while we waited.
	if rec, ok := r.Get(id); ok {
		rec.attachWindow(wid, win)
		return rec, false
	}

	data, ref, ok, err := r.host.Acquire(id)
	if err != nil {
		r.debug("Unable to acquire process %s: %v", id, err)
		return nil, false
	}
	if !ok {
		// The process exited before we could track it.
		return nil, false
	}

	rec := newRecord(data, platform.Detect(data.Path), filter.Classify(data.Name, data.Path), ref, atStartup)
	rec.attachWindow(wid, win)
	r.records.Store(id, rec)

	go r.watchExit(rec)

	r.logProcess(rec, "Tracking started (%s, %s)", rec.Class(), rec.Platform())
	r.notifier.send(ProcessStarted{Process: rec.Info(), AtStartup: atStartup})

	return rec, true
}

// watchExit blocks until the record's process exits and then removes
// the record. It runs for the life of the record.
func (r *Registry) watchExit(rec *Record) {
	err := rec.ref.Wait(r.ctx)
	switch err {
	case nil:
		r.handleExit(rec.ID())
	case context.Canceled, context.DeadlineExceeded:
		// Registry shutdown; the record stays.
	default:
		r.debugProcess(rec, "Exit observation failed: %v", err)
	}
}

// handleExit removes the record for an exited process. If the process
// held the foreground, a foreground change is announced before the
// process's removal. The record's reference is released exactly once
// and the process's lock slot is freed afterward.
func (r *Registry) handleExit(id PID) {
	slot := r.locks.acquire(id)
	slot.mutex.Lock()
	defer func() {
		slot.mutex.Unlock()
		r.locks.release(id)
	}()

	rec, ok := r.Get(id)
	if !ok {
		return
	}

	r.fgMutex.Lock()
	wasForeground := r.fgSet && r.fgID == id
	if wasForeground {
		r.fgSet = false
	}
	r.fgMutex.Unlock()

	if wasForeground {
		previous := rec.Info()
		r.notifier.send(ForegroundChanged{Current: nil, Previous: &previous, Class: filter.Allowed})
	}

	r.records.Delete(id)
	rec.markExited()
	r.logProcess(rec, "Exited")
	r.notifier.send(ProcessStopped{Process: rec.Info()})
	rec.releaseRef()
}

func (r *Registry) log(format string, v ...interface{}) {
	if r.logger == nil {
		return
	}
	r.logger.Log(ServiceEvent{
		Msg: fmt.Sprintf(format, v...),
	})
}

func (r *Registry) debug(format string, v ...interface{}) {
	if r.logger == nil {
		return
	}
	r.logger.Log(ServiceEvent{
		Msg:   fmt.Sprintf(format, v...),
		Debug: true,
	})
}

func (r *Registry) logProcess(rec *Record, format string, v ...interface{}) {
	if r.logger == nil {
		return
	}
	r.logger.Log(ProcessEvent{
		ProcessName: rec.Name(),
		Token:       rec.Token(),
		Msg:         fmt.Sprintf(format, v...),
	})
}

func (r *Registry) debugProcess(rec *Record, format string, v ...interface{}) {
	if r.logger == nil {
		return
	}
	r.logger.Log(ProcessEvent{
		ProcessName: rec.Name(),
		Token:       rec.Token(),
		Msg:         fmt.Sprintf(format, v...),
		Debug:       true,
	})
}
