package main

import (
	"fmt"

	"github.com/scjalliance/attentive/watcher"
)

// cliLogger logs watcher events to standard output.
type cliLogger struct {
	Debug bool
}

// Log prints the event. Debug events are suppressed unless the logger
// has debugging enabled.
func (l cliLogger) Log(e watcher.Event) {
	if e.IsDebug() && !l.Debug {
		return
	}
	fmt.Println(e.String())
}
