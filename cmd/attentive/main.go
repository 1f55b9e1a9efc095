package main

import (
	"fmt"
	"log"
	"os"
	"syscall"

	"github.com/gentlemanautomaton/signaler"
)

func main() {
	app := App()

	watchCmd, watchConf := WatchCommand(app)
	serviceCmd, serviceConf := ServiceCommand(app)
	listCmd, listConf := ListCommand(app)
	classifyCmd, classifyConf := ClassifyCommand(app)
	suspendCmd, suspendConf := SuspendCommand(app)
	resumeCmd, resumeConf := ResumeCommand(app)
	importCmd, importConf := ImportCommand(app)
	installCmd, installConf := InstallCommand(app)
	uninstallCmd := UninstallCommand(app)
	versionCmd := app.Command("version", "Shows version information.")

	command, err := app.Parse(os.Args[1:])
	if err != nil {
		prepareConsole(false)
		app.Fatalf("%s, try --help", err)
	}

	interactive, err := isInteractive()
	if err != nil {
		app.Fatalf("%s", err)
	}

	// Prepare a logger that prints to stderr
	logger := log.New(os.Stderr, "", log.LstdFlags)

	// Shutdown when we receive a termination signal
	shutdown := signaler.New().Capture(os.Interrupt, syscall.SIGTERM)

	// Ensure that we cleanup even if we panic
	defer shutdown.Trigger()

	// Announce termination
	announcement := shutdown.Then(func() { logger.Println("Received termination signal") })

	// Cancel a context after the announcement
	ctx := announcement.Context()

	switch command {
	case watchCmd.FullCommand():
		watch(ctx, interactive, *watchConf)
	case serviceCmd.FullCommand():
		runServiceHandler(*serviceConf, nil)
	case listCmd.FullCommand():
		list(*listConf)
	case classifyCmd.FullCommand():
		classify(*classifyConf)
	case suspendCmd.FullCommand():
		suspendTree(*suspendConf)
	case resumeCmd.FullCommand():
		resumeTree(*resumeConf)
	case importCmd.FullCommand():
		importProfiles(*importConf)
	case installCmd.FullCommand():
		install(ctx, os.Args[0], *installConf)
	case uninstallCmd.FullCommand():
		uninstall(ctx)
	case versionCmd.FullCommand():
		fmt.Printf("%s %s\n", ProgramName, Version)
	}
}
