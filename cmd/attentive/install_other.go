//go:build !windows

package main

import (
	"context"
	"fmt"
	"os"
)

func install(ctx context.Context, program string, conf WatchConfig) {
	fmt.Printf("The attentive watcher service can only be installed on windows.\n")
	os.Exit(1)
}
