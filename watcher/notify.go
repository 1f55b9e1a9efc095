package watcher

import (
	"fmt"
	"sync"

	"github.com/scjalliance/attentive/counter"
	"github.com/scjalliance/attentive/filter"
)

// Notification is a change broadcast to external collaborators.
type Notification interface {
	String() string
}

// ForegroundChanged reports that the externally visible foreground
// process changed. Current is nil when the previous foreground process
// exited and no successor has been observed yet.
type ForegroundChanged struct {
	Current  *Info
	Previous *Info
	Class    filter.Class
}

// String returns a string representation of the notification.
func (n ForegroundChanged) String() string {
	current, previous := "none", "none"
	if n.Current != nil {
		current = n.Current.Name
	}
	if n.Previous != nil {
		previous = n.Previous.Name
	}
	return fmt.Sprintf("foreground changed: %s -> %s (%s)", previous, current, n.Class)
}

// ProcessStarted reports that a process entered tracking. AtStartup is
// true when the process was discovered during the initial enumeration
// rather than observed starting.
type ProcessStarted struct {
	Process   Info
	AtStartup bool
}

// String returns a string representation of the notification.
func (n ProcessStarted) String() string {
	if n.AtStartup {
		return fmt.Sprintf("process discovered: %s [%s]", n.Process.Name, n.Process.ID)
	}
	return fmt.Sprintf("process started: %s [%s]", n.Process.Name, n.Process.ID)
}

// ProcessStopped reports that a tracked process exited.
type ProcessStopped struct {
	Process Info
}

// String returns a string representation of the notification.
func (n ProcessStopped) String() string {
	return fmt.Sprintf("process stopped: %s [%s]", n.Process.Name, n.Process.ID)
}

// notifier broadcasts notifications to a dynamic set of listeners.
// Sends never block; a listener whose buffer is full misses the
// notification.
type notifier struct {
	mutex     sync.Mutex
	listeners []chan Notification
	closed    bool
	drops     counter.Counter
}

// subscribe returns a channel on which notifications will be delivered
// and a cancel function that removes the subscription and closes the
// channel. A subscription made after close receives a closed channel.
func (n *notifier) subscribe(bufferSize int) (<-chan Notification, func()) {
	listener := make(chan Notification, bufferSize)

	n.mutex.Lock()
	defer n.mutex.Unlock()

	if n.closed {
		close(listener)
		return listener, func() {}
	}

	n.listeners = append(n.listeners, listener)

	return listener, func() { n.remove(listener) }
}

func (n *notifier) remove(listener chan Notification) {
	n.mutex.Lock()
	defer n.mutex.Unlock()

	if n.closed {
		return
	}
	for i, ch := range n.listeners {
		if ch == listener {
			n.listeners = append(n.listeners[:i], n.listeners[i+1:]...)
			close(listener)
			return
		}
	}
}

// send delivers the notification to every listener that has buffer
// space for it.
func (n *notifier) send(note Notification) {
	n.mutex.Lock()
	defer n.mutex.Unlock()

	for _, listener := range n.listeners {
		select {
		case listener <- note:
		default:
			n.drops.Add(1)
		}
	}
}

// close closes all listener channels. Further sends are discarded.
func (n *notifier) close() {
	n.mutex.Lock()
	defer n.mutex.Unlock()

	if n.closed {
		return
	}
	n.closed = true
	for _, listener := range n.listeners {
		close(listener)
	}
	n.listeners = nil
}

// dropped returns the number of notifications that were not delivered
// to one or more listeners.
func (n *notifier) dropped() uint64 {
	return n.drops.Value()
}
