//go:build windows

package watcher

import (
	"testing"

	"github.com/scjalliance/attentive/filter"
	"github.com/scjalliance/attentive/platform"
)

func TestRefreshWindowsKeepsStaleWindows(t *testing.T) {
	rec := newRecord(ProcessData{ID: 100, Name: "game.exe"}, platform.None, filter.Allowed, nil, false)
	rec.attachWindow(0xf0a1, Window{Title: "Main", Visible: true})
	rec.attachWindow(0xf0a3, Window{Title: "Chat", Visible: true})

	// Neither handle identifies a live window, so the refresh must treat
	// both as unqueryable.
	refreshWindows(rec)

	windows := rec.Info().Windows
	if len(windows) != 2 {
		t.Fatalf("refresh left %d windows, want 2", len(windows))
	}
	for wid, win := range windows {
		if win.Visible {
			t.Errorf("window %d still reported visible after its handle went stale", wid)
		}
		if win.Title == "" {
			t.Errorf("window %d lost its title", wid)
		}
	}
}
