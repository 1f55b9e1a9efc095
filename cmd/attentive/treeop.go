package main

import "gopkg.in/alecthomas/kingpin.v2"

// TreeOpConfig holds settings for the one-shot suspend and resume
// commands.
type TreeOpConfig struct {
	Target string
}

// SuspendCommand returns a suspend command and configuration for app.
func SuspendCommand(app *kingpin.Application) (*kingpin.CmdClause, *TreeOpConfig) {
	cmd := app.Command("suspend", "Suspends a process tree.")
	conf := &TreeOpConfig{}
	cmd.Arg("target", "Process ID or executable name.").Required().StringVar(&conf.Target)
	return cmd, conf
}

// ResumeCommand returns a resume command and configuration for app.
func ResumeCommand(app *kingpin.Application) (*kingpin.CmdClause, *TreeOpConfig) {
	cmd := app.Command("resume", "Resumes a suspended process tree.")
	conf := &TreeOpConfig{}
	cmd.Arg("target", "Process ID or executable name.").Required().StringVar(&conf.Target)
	return cmd, conf
}
