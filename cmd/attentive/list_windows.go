//go:build windows

package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/gentlemanautomaton/winproc"
	"github.com/scjalliance/attentive/filter"
	"github.com/scjalliance/attentive/platform"
)

func list(conf ListConfig) {
	prepareConsole(false)

	options := []winproc.CollectionOption{
		winproc.CollectCommands,
		winproc.CollectUsers,
	}
	if conf.Name != "" {
		name := conf.Name
		options = append(options, winproc.Include(func(p winproc.Process) bool {
			return strings.EqualFold(p.Name, name)
		}))
	}

	procs, err := winproc.List(options...)
	if err != nil {
		fmt.Printf("Failed to collect processes: %v\n", err)
		os.Exit(1)
	}

	if len(procs) == 0 {
		fmt.Printf("No matching processes.\n")
		return
	}

	fmt.Printf("Processes:\n")
	for _, p := range procs {
		class := filter.Classify(p.Name, p.Path)
		tag := platform.Detect(p.Path)
		if tag == platform.None {
			fmt.Printf("  [%d] %s: %s\n", p.ID, p.Name, class)
		} else {
			fmt.Printf("  [%d] %s: %s, %s\n", p.ID, p.Name, class, tag)
		}
		if p.Path != "" {
			fmt.Printf("        %s\n", p.Path)
		}
	}
}
