//go:build windows

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/gentlemanautomaton/winservice"
	"github.com/scjalliance/attentive/watcher"
)

func uninstall(ctx context.Context) {
	// Check for an existing watcher service
	exists, err := winservice.Exists(watcher.ServiceName)
	if err != nil {
		fmt.Printf("Failed to check for existing watcher service: %v\n", err)
		os.Exit(1)
	}
	if !exists {
		fmt.Printf("An installation of the \"%s\" service could not be found.\n", watcher.ServiceName)
		return
	}
	fmt.Printf("An installation of the \"%s\" service was found.\n", watcher.ServiceName)

	// Stop and remove any existing service
	if err := winservice.Delete(context.Background(), watcher.ServiceName); err != nil {
		if opErr, ok := err.(winservice.OpError); ok && opErr.Err == winservice.ErrServiceMarkedForDeletion {
			fmt.Printf("The service has already been marked for deletion.\n")
		} else {
			fmt.Printf("Removal of existing service failed: %v\n", err)
			os.Exit(1)
		}
	} else {
		fmt.Printf("The \"%s\" service has been uninstalled.\n", watcher.ServiceName)
	}
}
