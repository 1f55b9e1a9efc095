//go:build windows

package main

import (
	"github.com/scjalliance/attentive/watcher"
	"golang.org/x/sys/windows/svc/eventlog"
)

// svcLogger logs watcher events to the windows event log.
type svcLogger struct {
	elog  *eventlog.Log
	debug bool
}

// Log writes the event to the event log. Debug events are suppressed
// unless the logger has debugging enabled.
func (l svcLogger) Log(e watcher.Event) {
	if e.IsDebug() && !l.debug {
		return
	}
	l.elog.Info(e.ID(), e.String())
}
