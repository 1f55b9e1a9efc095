//go:build windows

package trayui

import (
	"fmt"

	"github.com/scjalliance/attentive/watcher"
)

// State holds a snapshot of watcher state that is relevant to the UI.
type State struct {
	Foreground *watcher.Info
	Tracked    int
	Suspended  int
}

// Summary returns a single-line text summary of the state.
func (s State) Summary() string {
	var summary string

	switch s.Tracked {
	case 1:
		summary = "Watching 1 process"
	default:
		summary = fmt.Sprintf("Watching %d processes", s.Tracked)
	}

	if s.Foreground != nil {
		summary += fmt.Sprintf(", %s in front", s.Foreground.Name)
	}

	if s.Suspended > 0 {
		summary += fmt.Sprintf(", %d suspended", s.Suspended)
	}

	return summary
}

// Notice is a notification balloon shown to the user.
type Notice struct {
	Title   string
	Message string
}
