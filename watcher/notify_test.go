package watcher

import (
	"testing"
	"time"

	"github.com/scjalliance/attentive/filter"
)

func TestNotifierDelivery(t *testing.T) {
	var n notifier

	first, cancelFirst := n.subscribe(4)
	second, cancelSecond := n.subscribe(4)
	defer cancelFirst()
	defer cancelSecond()

	sent := ProcessStarted{Process: Info{ID: 42, Name: "app.exe"}}
	n.send(sent)

	for _, ch := range []<-chan Notification{first, second} {
		select {
		case got := <-ch:
			started, ok := got.(ProcessStarted)
			if !ok || started.Process.ID != 42 {
				t.Errorf("received %v, want %v", got, sent)
			}
		case <-time.After(time.Second):
			t.Fatal("notification was not delivered")
		}
	}
}

func TestNotifierCancel(t *testing.T) {
	var n notifier

	ch, cancel := n.subscribe(1)
	cancel()

	if _, ok := <-ch; ok {
		t.Error("canceled subscription delivered a notification")
	}

	// Cancel twice and send to nobody; neither may panic.
	cancel()
	n.send(ProcessStopped{})
}

func TestNotifierSlowSubscriber(t *testing.T) {
	var n notifier

	_, cancelSlow := n.subscribe(1)
	fast, cancelFast := n.subscribe(8)
	defer cancelSlow()
	defer cancelFast()

	for i := 0; i < 4; i++ {
		n.send(ProcessStarted{Process: Info{ID: PID(i)}})
	}

	// The slow subscriber missed what its buffer could not hold.
	if got := n.dropped(); got != 3 {
		t.Errorf("dropped %d notifications, want 3", got)
	}

	// The fast subscriber received everything in order.
	for i := 0; i < 4; i++ {
		select {
		case got := <-fast:
			if started, ok := got.(ProcessStarted); !ok || started.Process.ID != PID(i) {
				t.Errorf("notification %d = %v", i, got)
			}
		case <-time.After(time.Second):
			t.Fatal("delivery stalled behind a slow subscriber")
		}
	}
}

func TestNotifierClose(t *testing.T) {
	var n notifier

	ch, cancel := n.subscribe(1)
	n.close()

	if _, ok := <-ch; ok {
		t.Error("received a notification after close")
	}

	// Everything after close is inert.
	n.send(ProcessStopped{})
	cancel()
	n.close()

	late, lateCancel := n.subscribe(1)
	if _, ok := <-late; ok {
		t.Error("subscription after close delivered a notification")
	}
	lateCancel()
}

func TestNotificationStrings(t *testing.T) {
	one := Info{ID: 1, Name: "one.exe"}
	two := Info{ID: 2, Name: "two.exe"}

	cases := []struct {
		name string
		n    Notification
		want string
	}{
		{"started", ProcessStarted{Process: one}, "process started: one.exe [1]"},
		{"discovered", ProcessStarted{Process: one, AtStartup: true}, "process discovered: one.exe [1]"},
		{"stopped", ProcessStopped{Process: two}, "process stopped: two.exe [2]"},
		{"foreground", ForegroundChanged{Current: &two, Previous: &one, Class: filter.Allowed}, "foreground changed: one.exe -> two.exe (allowed)"},
		{"foreground gained", ForegroundChanged{Current: &one, Class: filter.DesktopShell}, "foreground changed: none -> one.exe (desktop-shell)"},
		{"foreground lost", ForegroundChanged{Previous: &one, Class: filter.Allowed}, "foreground changed: one.exe -> none (allowed)"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := c.n.String(); got != c.want {
				t.Errorf("String() = %q, want %q", got, c.want)
			}
		})
	}
}
