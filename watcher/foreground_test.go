package watcher

import (
	"testing"

	"github.com/scjalliance/attentive/filter"
)

func TestForegroundRestrictedPreserved(t *testing.T) {
	host := newFakeHost()
	host.add(100, "game.exe", `C:\Games\game.exe`)
	host.add(101, "csrss.exe", `C:\Windows\System32\csrss.exe`)
	host.add(102, filter.SelfName, `C:\Program Files\SCJ\attentive\`+filter.SelfName)

	r := NewRegistry(host, nil)
	defer r.Close()

	game, _ := r.UpsertWindow(100, 1, Window{Visible: true}, false)
	restricted, _ := r.UpsertWindow(101, 2, Window{}, false)
	self, _ := r.UpsertWindow(102, 3, Window{}, false)

	notifications, cancel := r.Subscribe(16)
	defer cancel()

	if !r.ObserveForeground(game) {
		t.Fatal("allowed process was rejected as foreground")
	}
	<-notifications

	// A restricted process or our own process coming to the front does
	// not disturb the externally visible foreground.
	if r.ObserveForeground(restricted) {
		t.Error("restricted process changed the foreground")
	}
	if r.ObserveForeground(self) {
		t.Error("own process changed the foreground")
	}
	select {
	case n := <-notifications:
		t.Errorf("unexpected notification %v", n)
	default:
	}
	if fg, ok := r.Foreground(); !ok || fg.ID() != 100 {
		t.Errorf("foreground = %v, want process 100", fg)
	}
}

func TestForegroundSwap(t *testing.T) {
	host := newFakeHost()
	host.add(200, "one.exe", `C:\one.exe`)
	host.add(201, "two.exe", `C:\two.exe`)

	r := NewRegistry(host, nil)
	defer r.Close()

	one, _ := r.UpsertWindow(200, 1, Window{}, false)
	two, _ := r.UpsertWindow(201, 2, Window{}, false)

	notifications, cancel := r.Subscribe(16)
	defer cancel()

	if !r.ObserveForeground(one) {
		t.Fatal("first observation was rejected")
	}
	n := nextNotification(t, notifications)
	fg, ok := n.(ForegroundChanged)
	if !ok || fg.Current == nil || fg.Current.ID != 200 {
		t.Fatalf("notification = %v, want foreground change to 200", n)
	}
	if fg.Previous != nil {
		t.Errorf("first foreground change carries previous %v, want none", fg.Previous)
	}

	// Re-observing the current foreground changes nothing.
	if r.ObserveForeground(one) {
		t.Error("re-observation reported a change")
	}

	if !r.ObserveForeground(two) {
		t.Fatal("second observation was rejected")
	}
	n = nextNotification(t, notifications)
	fg, ok = n.(ForegroundChanged)
	if !ok || fg.Current == nil || fg.Current.ID != 201 {
		t.Fatalf("notification = %v, want foreground change to 201", n)
	}
	if fg.Previous == nil || fg.Previous.ID != 200 {
		t.Errorf("previous = %v, want process 200", fg.Previous)
	}
}

func TestForegroundDesktopShell(t *testing.T) {
	host := newFakeHost()
	host.add(300, "game.exe", `C:\Games\game.exe`)
	host.add(301, "explorer.exe", `C:\Windows\explorer.exe`)

	r := NewRegistry(host, nil)
	defer r.Close()

	game, _ := r.UpsertWindow(300, 1, Window{}, false)
	shell, _ := r.UpsertWindow(301, 2, Window{}, false)

	r.ObserveForeground(game)

	// The desktop shell is a real foreground; reaching the desktop is a
	// visible change.
	if !r.ObserveForeground(shell) {
		t.Fatal("desktop shell was rejected as foreground")
	}
	if fg, ok := r.Foreground(); !ok || fg.Class() != filter.DesktopShell {
		t.Errorf("foreground = %v, want the desktop shell", fg)
	}
}

func TestForegroundPreviousRemoved(t *testing.T) {
	host := newFakeHost()
	one := host.add(400, "one.exe", `C:\one.exe`)
	host.add(401, "two.exe", `C:\two.exe`)

	r := NewRegistry(host, nil)
	defer r.Close()

	first, _ := r.UpsertWindow(400, 1, Window{}, false)
	second, _ := r.UpsertWindow(401, 2, Window{}, false)

	r.ObserveForeground(first)

	// The foreground holder exits before the next observation.
	one.ref.exited()
	waitForRemoval(t, r, 400)

	notifications, cancel := r.Subscribe(16)
	defer cancel()

	if !r.ObserveForeground(second) {
		t.Fatal("observation after removal was rejected")
	}
	n := nextNotification(t, notifications)
	fg, ok := n.(ForegroundChanged)
	if !ok || fg.Current == nil || fg.Current.ID != 401 {
		t.Fatalf("notification = %v, want foreground change to 401", n)
	}
}
