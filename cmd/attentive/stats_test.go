package main

import (
	"errors"
	"testing"
	"time"

	"github.com/scjalliance/attentive/watcher"
)

type captureRecipient struct {
	values map[string]float64
	err    error
}

func (r *captureRecipient) Send(name string, value float64, t time.Time) error {
	if r.err != nil {
		return r.err
	}
	if r.values == nil {
		r.values = make(map[string]float64)
	}
	r.values[name] = value
	return nil
}

type fakeDropSource struct {
	drops uint64
}

func (s *fakeDropSource) HookEventDrops() uint64 {
	return s.drops
}

func TestStatManagerFlush(t *testing.T) {
	recipient := &captureRecipient{}
	registry := watcher.NewRegistry(nil, nil)
	defer registry.Close()
	hooks := &fakeDropSource{drops: 5}

	m := NewStatManager(recipient, registry, hooks)

	m.Handle(watcher.ProcessStarted{})
	m.Handle(watcher.ProcessStarted{})
	m.Handle(watcher.ProcessStopped{})
	m.Handle(watcher.ForegroundChanged{})

	if err := m.Flush(); err != nil {
		t.Fatalf("flush failed: %v", err)
	}

	expected := map[string]float64{
		"tracked":            0,
		"started":            2,
		"stopped":            1,
		"foreground changes": 1,
		"hook drops":         5,
		"notification drops": 0,
	}
	for name, want := range expected {
		if got, ok := recipient.values[name]; !ok {
			t.Errorf("stat %q was not sent", name)
		} else if got != want {
			t.Errorf("stat %q: got %v, want %v", name, got, want)
		}
	}

	// The second flush reports only the changes since the first.
	hooks.drops = 7
	m.Handle(watcher.ProcessStarted{})

	if err := m.Flush(); err != nil {
		t.Fatalf("second flush failed: %v", err)
	}
	if got := recipient.values["started"]; got != 1 {
		t.Errorf("second flush started: got %v, want 1", got)
	}
	if got := recipient.values["stopped"]; got != 0 {
		t.Errorf("second flush stopped: got %v, want 0", got)
	}
	if got := recipient.values["hook drops"]; got != 2 {
		t.Errorf("second flush hook drops: got %v, want 2", got)
	}
}

func TestStatManagerSendFailure(t *testing.T) {
	recipient := &captureRecipient{err: errors.New("no route to host")}
	registry := watcher.NewRegistry(nil, nil)
	defer registry.Close()

	m := NewStatManager(recipient, registry, &fakeDropSource{})

	if err := m.Flush(); err == nil {
		t.Error("flush succeeded with a failing recipient")
	}
}

func TestStatManagerNil(t *testing.T) {
	var m *StatManager
	m.Handle(watcher.ProcessStarted{})
	if err := m.Flush(); err != nil {
		t.Errorf("nil manager flush failed: %v", err)
	}
}
