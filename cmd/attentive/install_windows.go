//go:build windows

package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gentlemanautomaton/filework"
	"github.com/gentlemanautomaton/filework/fwos"
	"github.com/gentlemanautomaton/winservice"
	"github.com/scjalliance/attentive/watcher"
)

func install(ctx context.Context, program string, conf WatchConfig) {
	// Determine the source path
	sourcePath, err := filepath.Abs(program)
	if err != nil {
		fmt.Printf("Failed to determine the absolute path of %s: %v\n", program, err)
		os.Exit(1)
	}

	// Determine the installation directory
	dest, err := installDir(Version)
	if err != nil {
		fmt.Printf("Failed to locate installation directory: %v\n", err)
		os.Exit(1)
	}

	// Determine the source directory
	source, exe := filepath.Split(sourcePath)
	if !strings.HasSuffix(exe, ".exe") {
		exe += ".exe"
	}
	fmt.Printf("Installing %s to: %s\n", exe, dest)

	// Ensure that we can open the source file data
	sourceFile, err := os.Open(sourcePath)
	if err != nil {
		fmt.Printf("Failed to install %s: %v\n", exe, err)
		os.Exit(1)
	}
	defer sourceFile.Close()

	// Check to see if there's an existing file with the expected content
	diff, err := filework.CompareFileContent(sourceFile, fwos.Dir(dest), exe)
	if err != nil {
		fmt.Printf("Failed to examine existing %s file: %v\n", exe, err)
		os.Exit(1)
	}
	switch diff {
	case filework.Same:
		fmt.Printf("Existing %s file is up to date.\n", exe)
		return
	case filework.Different:
		fmt.Printf("Existing %s file is out of date.\n", exe)
	}

	// Create the installation directory
	if err = os.MkdirAll(dest, os.ModePerm); err != nil {
		fmt.Printf("Failed to create installation directory \"%s\": %v\n", dest, err)
		os.Exit(1)
	}

	// Check for an existing watcher service
	exists, err := winservice.Exists(watcher.ServiceName)
	if err != nil {
		fmt.Printf("Failed to check for existing watcher service: %v\n", err)
		os.Exit(1)
	}
	if exists {
		fmt.Printf("Existing %s service found.\n", watcher.ServiceName)
	}

	// Stop and remove any existing service
	if exists {
		if err := winservice.Delete(context.Background(), watcher.ServiceName); err != nil {
			fmt.Printf("Removal of existing service failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Existing %s service stopped and removed.\n", watcher.ServiceName)
	}

	// Copy the service executable
	result := filework.CopyFile(fwos.Dir(source), exe, sourceFile, fwos.Dir(dest), exe)
	if result.Err != nil {
		fmt.Printf("Failed to copy %s service executable: %v\n", watcher.ServiceName, result.Err)
		os.Exit(1)
	}
	fmt.Printf("%s copied to %s\n", exe, dest)

	// Determine the service arguments
	args := []string{"service"}
	if conf.Profiles != "" {
		args = append(args, "-f", conf.Profiles)
	}
	if conf.Database != "" {
		args = append(args, "-d", conf.Database)
	}
	if conf.StatHatKey != "" {
		args = append(args, "--stathat-key", conf.StatHatKey)
	}
	if conf.Debug {
		args = append(args, "-v")
	}

	// Install the service
	if err := winservice.Install(watcher.ServiceName, winservice.Path(filepath.Join(dest, exe)), winservice.Args(args...), winservice.AutoStart); err != nil {
		fmt.Printf("Failed to install %s service: %v\n", watcher.ServiceName, err)
		os.Exit(1)
	}
	fmt.Printf("\"%s\" service installed successfully.\n", watcher.ServiceName)

	// Start the service
	fmt.Printf("Starting service.\n")
	if err := winservice.Start(ctx, watcher.ServiceName); err != nil {
		switch err {
		case context.Canceled, context.DeadlineExceeded:
			fmt.Printf("Stopped waiting for service startup.\n")
			os.Exit(1)
		}
	}
	fmt.Printf("Service started.\n")
}

func installDir(version string) (dir string, err error) {
	dir = os.Getenv("PROGRAMFILES")
	if dir == "" {
		return "", errors.New("unable to determine ProgramFiles location")
	}

	return filepath.Join(dir, "SCJ", "attentive", version), nil
}
