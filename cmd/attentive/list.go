package main

import "gopkg.in/alecthomas/kingpin.v2"

// ListConfig holds settings for the list command.
type ListConfig struct {
	Name string
}

// ListCommand returns a list command and configuration for app.
func ListCommand(app *kingpin.Application) (*kingpin.CmdClause, *ListConfig) {
	cmd := app.Command("list", "Lists running processes and their classification.")
	conf := &ListConfig{}
	cmd.Arg("name", "Executable name to match.").StringVar(&conf.Name)
	return cmd, conf
}
