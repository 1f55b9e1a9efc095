//go:build !windows

package main

import (
	"fmt"
	"os"
	"strings"

	ps "github.com/mitchellh/go-ps"
)

func list(conf ListConfig) {
	procs, err := ps.Processes()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to retrieve process list: %v\n", err)
		os.Exit(2)
	}

	matched := 0
	for _, p := range procs {
		if conf.Name != "" && !strings.EqualFold(p.Executable(), conf.Name) {
			continue
		}
		matched++
		fmt.Println(listLine(p.Pid(), p.Executable()))
	}

	if matched == 0 {
		fmt.Printf("No matching processes.\n")
	}
}

// listLine formats one row of the process listing. Classification needs
// an executable path, which this platform's process list does not
// carry, so no class is shown.
func listLine(pid int, name string) string {
	return fmt.Sprintf("  [%d] %s", pid, name)
}
