//go:build !windows

package main

import (
	"context"
	"fmt"
	"os"
)

func watch(ctx context.Context, interactive bool, conf WatchConfig) {
	fmt.Printf("The attentive process watcher can only be run on windows.\n")
	os.Exit(1)
}

func runServiceHandler(conf WatchConfig, confErr error) {
	fmt.Printf("The attentive process watcher can only be run on windows.\n")
	os.Exit(1)
}
