//go:build windows

package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/gentlemanautomaton/winproc"
	"github.com/scjalliance/attentive/watcher"
)

func suspendTree(conf TreeOpConfig) {
	prepareConsole(false)

	id := resolveTarget(conf.Target)
	if err := watcher.SuspendProcessTree(id); err != nil {
		fmt.Printf("Failed to suspend process %s: %v\n", id, err)
		os.Exit(1)
	}
	fmt.Printf("Suspended process %s and its children.\n", id)
}

func resumeTree(conf TreeOpConfig) {
	prepareConsole(false)

	id := resolveTarget(conf.Target)
	if err := watcher.ResumeProcessTree(id); err != nil {
		fmt.Printf("Failed to resume process %s: %v\n", id, err)
		os.Exit(1)
	}
	fmt.Printf("Resumed process %s and its children.\n", id)
}

// resolveTarget interprets target as a process ID when numeric and as
// an executable name otherwise.
func resolveTarget(target string) watcher.PID {
	if id, err := strconv.ParseUint(target, 10, 32); err == nil {
		return watcher.PID(id)
	}

	name := target
	procs, err := winproc.List(winproc.Include(func(p winproc.Process) bool {
		return strings.EqualFold(p.Name, name)
	}))
	if err != nil {
		fmt.Printf("Failed to collect processes: %v\n", err)
		os.Exit(1)
	}
	if len(procs) == 0 {
		fmt.Printf("No process named \"%s\" is running.\n", target)
		os.Exit(1)
	}
	if len(procs) > 1 {
		fmt.Printf("%d processes named \"%s\" are running; specify a process ID instead.\n", len(procs), target)
		os.Exit(1)
	}
	return watcher.PID(procs[0].ID)
}
