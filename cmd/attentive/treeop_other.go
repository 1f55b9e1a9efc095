//go:build !windows

package main

import (
	"fmt"
	"os"
)

func suspendTree(conf TreeOpConfig) {
	fmt.Printf("Process suspension can only be performed on windows.\n")
	os.Exit(1)
}

func resumeTree(conf TreeOpConfig) {
	fmt.Printf("Process suspension can only be performed on windows.\n")
	os.Exit(1)
}
