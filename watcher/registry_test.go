package watcher

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/scjalliance/attentive/filter"
)

type fakeRef struct {
	exit   chan struct{}
	closes int32
}

func newFakeRef() *fakeRef {
	return &fakeRef{exit: make(chan struct{})}
}

func (r *fakeRef) Wait(ctx context.Context) error {
	select {
	case <-r.exit:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (r *fakeRef) Close() error {
	atomic.AddInt32(&r.closes, 1)
	return nil
}

func (r *fakeRef) exited() {
	close(r.exit)
}

type fakeProc struct {
	data ProcessData
	ref  *fakeRef
	gone bool
	err  error
}

type fakeHost struct {
	mutex    sync.Mutex
	procs    map[PID]*fakeProc
	acquires map[PID]int
}

func newFakeHost() *fakeHost {
	return &fakeHost{
		procs:    make(map[PID]*fakeProc),
		acquires: make(map[PID]int),
	}
}

func (h *fakeHost) add(id PID, name, path string) *fakeProc {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	proc := &fakeProc{
		data: ProcessData{
			ID:       id,
			Name:     name,
			Path:     path,
			Token:    fmt.Sprintf("token-%d", id),
			User:     `TEST\user`,
			Creation: time.Now(),
		},
		ref: newFakeRef(),
	}
	h.procs[id] = proc
	return proc
}

func (h *fakeHost) acquireCount(id PID) int {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	return h.acquires[id]
}

func (h *fakeHost) Acquire(id PID) (ProcessData, ProcessRef, bool, error) {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	h.acquires[id]++
	proc, ok := h.procs[id]
	if !ok || proc.gone {
		return ProcessData{}, nil, false, nil
	}
	if proc.err != nil {
		return ProcessData{}, nil, false, proc.err
	}
	return proc.data, proc.ref, true, nil
}

type captureLogger struct {
	mutex  sync.Mutex
	events []Event
}

func (l *captureLogger) Log(e Event) {
	l.mutex.Lock()
	defer l.mutex.Unlock()
	l.events = append(l.events, e)
}

func (l *captureLogger) count() int {
	l.mutex.Lock()
	defer l.mutex.Unlock()
	return len(l.events)
}

func (l *captureLogger) debugCount() int {
	l.mutex.Lock()
	defer l.mutex.Unlock()
	var n int
	for _, e := range l.events {
		if e.IsDebug() {
			n++
		}
	}
	return n
}

func waitForRemoval(t *testing.T, r *Registry, id PID) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if _, ok := r.Get(id); !ok {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("process %s was not removed from the registry", id)
}

func nextNotification(t *testing.T, ch <-chan Notification) Notification {
	t.Helper()
	select {
	case n, ok := <-ch:
		if !ok {
			t.Fatal("notification channel closed unexpectedly")
		}
		return n
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for a notification")
	}
	return nil
}

func TestRegistryCreateOnce(t *testing.T) {
	host := newFakeHost()
	host.add(100, "game.exe", `C:\Games\Steam\steamapps\common\game\game.exe`)

	r := NewRegistry(host, nil)
	defer r.Close()

	notifications, cancel := r.Subscribe(64)
	defer cancel()

	const workers = 16
	const iterations = 50
	var created int64
	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func(w int) {
			defer wg.Done()
			for i := 0; i < iterations; i++ {
				wid := WindowID(1000 + w*iterations + i)
				_, madeNew := r.UpsertWindow(100, wid, Window{Title: "Game", Visible: true}, false)
				if madeNew {
					atomic.AddInt64(&created, 1)
				}
			}
		}(w)
	}
	wg.Wait()

	if created != 1 {
		t.Errorf("record created %d times, want 1", created)
	}
	if got := host.acquireCount(100); got != 1 {
		t.Errorf("process acquired %d times, want 1", got)
	}

	rec, ok := r.Get(100)
	if !ok {
		t.Fatal("record missing after creation")
	}
	if got := len(rec.Info().Windows); got != workers*iterations {
		t.Errorf("record holds %d windows, want %d", got, workers*iterations)
	}
	if rec.Platform().String() != "steam" {
		t.Errorf("platform = %s, want steam", rec.Platform())
	}
	if rec.Class() != filter.Allowed {
		t.Errorf("class = %s, want allowed", rec.Class())
	}

	n := nextNotification(t, notifications)
	started, ok := n.(ProcessStarted)
	if !ok {
		t.Fatalf("first notification = %T, want ProcessStarted", n)
	}
	if started.Process.ID != 100 {
		t.Errorf("started process = %s, want 100", started.Process.ID)
	}
	select {
	case n := <-notifications:
		t.Errorf("unexpected extra notification %v", n)
	default:
	}

	if got := r.locks.count(); got != 0 {
		t.Errorf("lock table holds %d slots, want 0", got)
	}
}

func TestRegistryProcessExitedBeforeTracking(t *testing.T) {
	host := newFakeHost()
	host.add(200, "gone.exe", `C:\gone.exe`).gone = true
	logger := &captureLogger{}

	r := NewRegistry(host, logger)
	defer r.Close()

	rec, created := r.UpsertWindow(200, 1, Window{}, false)
	if rec != nil || created {
		t.Errorf("UpsertWindow = (%v, %v), want (nil, false)", rec, created)
	}
	if _, ok := r.Get(200); ok {
		t.Error("exited process was inserted")
	}
	if got := logger.count(); got != 0 {
		t.Errorf("logged %d events for an expected race, want 0", got)
	}
	if got := r.locks.count(); got != 0 {
		t.Errorf("lock table holds %d slots, want 0", got)
	}
}

func TestRegistryAcquireFailure(t *testing.T) {
	host := newFakeHost()
	proc := host.add(300, "protected.exe", `C:\protected.exe`)
	proc.err = fmt.Errorf("access is denied")
	logger := &captureLogger{}

	r := NewRegistry(host, logger)
	defer r.Close()

	if rec, created := r.UpsertWindow(300, 1, Window{}, false); rec != nil || created {
		t.Fatalf("UpsertWindow = (%v, %v), want (nil, false)", rec, created)
	}
	if got := logger.debugCount(); got != 1 {
		t.Errorf("logged %d debug events, want 1", got)
	}
	if got := r.locks.count(); got != 0 {
		t.Errorf("lock table holds %d slots, want 0", got)
	}

	// A later window event may try again and succeed.
	host.mutex.Lock()
	proc.err = nil
	host.mutex.Unlock()

	if _, created := r.UpsertWindow(300, 2, Window{}, false); !created {
		t.Error("second attempt did not create the record")
	}
}

func TestRegistryExit(t *testing.T) {
	host := newFakeHost()
	proc := host.add(400, "app.exe", `C:\Apps\app.exe`)

	r := NewRegistry(host, nil)
	defer r.Close()

	rec, created := r.UpsertWindow(400, 1, Window{Title: "App", Visible: true}, false)
	if !created {
		t.Fatal("record was not created")
	}

	notifications, cancel := r.Subscribe(16)
	defer cancel()

	if !r.ObserveForeground(rec) {
		t.Fatal("foreground observation was rejected")
	}
	n := nextNotification(t, notifications)
	if fg, ok := n.(ForegroundChanged); !ok || fg.Current == nil || fg.Current.ID != 400 {
		t.Fatalf("notification = %v, want foreground change to 400", n)
	}

	proc.ref.exited()
	waitForRemoval(t, r, 400)

	// The loss of the foreground is announced before the removal.
	n = nextNotification(t, notifications)
	fg, ok := n.(ForegroundChanged)
	if !ok {
		t.Fatalf("notification = %T, want ForegroundChanged", n)
	}
	if fg.Current != nil {
		t.Errorf("foreground current = %v, want nil", fg.Current)
	}
	if fg.Previous == nil || fg.Previous.ID != 400 {
		t.Errorf("foreground previous = %v, want process 400", fg.Previous)
	}
	if fg.Class != filter.Allowed {
		t.Errorf("foreground class = %s, want allowed", fg.Class)
	}

	n = nextNotification(t, notifications)
	stopped, ok := n.(ProcessStopped)
	if !ok {
		t.Fatalf("notification = %T, want ProcessStopped", n)
	}
	if stopped.Process.ID != 400 {
		t.Errorf("stopped process = %s, want 400", stopped.Process.ID)
	}

	if _, ok := r.Foreground(); ok {
		t.Error("exited process still holds the foreground")
	}
	if got := atomic.LoadInt32(&proc.ref.closes); got != 1 {
		t.Errorf("process reference closed %d times, want 1", got)
	}
	if got := r.locks.count(); got != 0 {
		t.Errorf("lock table holds %d slots, want 0", got)
	}
}

func TestRegistryExitWithoutForeground(t *testing.T) {
	host := newFakeHost()
	proc := host.add(500, "quiet.exe", `C:\quiet.exe`)

	r := NewRegistry(host, nil)
	defer r.Close()

	if _, created := r.UpsertWindow(500, 1, Window{}, false); !created {
		t.Fatal("record was not created")
	}

	notifications, cancel := r.Subscribe(16)
	defer cancel()

	proc.ref.exited()
	waitForRemoval(t, r, 500)

	n := nextNotification(t, notifications)
	if _, ok := n.(ProcessStopped); !ok {
		t.Fatalf("notification = %T, want ProcessStopped without a foreground change", n)
	}
}

func TestRegistryQueries(t *testing.T) {
	host := newFakeHost()
	host.add(600, "Game.exe", `C:\Games\Game.exe`)
	host.add(601, "other.exe", `C:\other.exe`)

	r := NewRegistry(host, nil)
	defer r.Close()

	r.UpsertWindow(600, 1, Window{}, true)
	r.UpsertWindow(601, 2, Window{}, false)

	if rec, ok := r.Get(600); !ok || rec.ID() != 600 {
		t.Error("Get(600) failed")
	}
	if !func() bool { rec, _ := r.Get(600); return rec.AtStartup() }() {
		t.Error("startup flag was not preserved")
	}
	if got := len(r.All()); got != 2 {
		t.Errorf("All returned %d records, want 2", got)
	}
	if got := len(r.ByName("game.exe")); got != 1 {
		t.Errorf("ByName(game.exe) returned %d records, want 1", got)
	}
	if got := len(r.ByName("missing.exe")); got != 0 {
		t.Errorf("ByName(missing.exe) returned %d records, want 0", got)
	}
	if _, ok := r.Foreground(); ok {
		t.Error("foreground reported before any observation")
	}
}

func TestRegistryClose(t *testing.T) {
	host := newFakeHost()
	host.add(700, "app.exe", `C:\app.exe`)

	r := NewRegistry(host, nil)
	r.UpsertWindow(700, 1, Window{}, false)

	notifications, _ := r.Subscribe(4)
	r.Close()

	select {
	case _, ok := <-notifications:
		if ok {
			t.Error("received a notification after close")
		}
	case <-time.After(2 * time.Second):
		t.Error("notification channel was not closed")
	}

	// Closing twice must not panic, and subscriptions after close are
	// immediately closed.
	r.Close()
	ch, cancel := r.Subscribe(4)
	if _, ok := <-ch; ok {
		t.Error("subscription after close delivered a notification")
	}
	cancel()
}
