//go:build !windows

package main

import (
	"context"
	"fmt"
	"os"
)

func uninstall(ctx context.Context) {
	fmt.Printf("The attentive watcher service can only be installed on windows.\n")
	os.Exit(1)
}
