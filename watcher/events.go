package watcher

import "fmt"

// ServiceName is the name used when the watcher runs as a system
// service.
const ServiceName = "attentive"

// Event is an event that can be logged.
type Event interface {
	ID() uint32
	IsDebug() bool
	String() string
}

// A Logger is capable of logging watcher events.
type Logger interface {
	Log(Event)
}

// Event IDs.
const (
	ServiceEventID = 100
	ProcessEventID = 200
	HookEventID    = 300
)

// ServiceEvent is an event originating from the watcher service itself.
type ServiceEvent struct {
	Msg   string
	Debug bool
}

// ID returns the ID of the event.
func (e ServiceEvent) ID() uint32 {
	return ServiceEventID
}

// IsDebug returns true if the event is intended for development and
// debugging.
func (e ServiceEvent) IsDebug() bool {
	return e.Debug
}

// String returns a string representation of the event.
func (e ServiceEvent) String() string {
	return fmt.Sprintf("[SERVICE] %s", e.Msg)
}

// ProcessEvent is an event concerning a single tracked process.
type ProcessEvent struct {
	ProcessName string
	Token       string
	Msg         string
	Debug       bool
}

// ID returns the ID of the event.
func (e ProcessEvent) ID() uint32 {
	return ProcessEventID
}

// IsDebug returns true if the event is intended for development and
// debugging.
func (e ProcessEvent) IsDebug() bool {
	return e.Debug
}

// String returns a string representation of the event.
func (e ProcessEvent) String() string {
	if e.Token == "" {
		return fmt.Sprintf("[PROCESS] %s: %s", e.ProcessName, e.Msg)
	}
	return fmt.Sprintf("[PROCESS] %s (%s): %s", e.ProcessName, e.Token, e.Msg)
}

// HookEvent is an event originating from native event hook handling.
type HookEvent struct {
	Source string
	Msg    string
	Debug  bool
}

// ID returns the ID of the event.
func (e HookEvent) ID() uint32 {
	return HookEventID
}

// IsDebug returns true if the event is intended for development and
// debugging.
func (e HookEvent) IsDebug() bool {
	return e.Debug
}

// String returns a string representation of the event.
func (e HookEvent) String() string {
	return fmt.Sprintf("[HOOK] %s: %s", e.Source, e.Msg)
}
