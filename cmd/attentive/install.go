package main

import "gopkg.in/alecthomas/kingpin.v2"

// InstallCommand returns an install command and configuration for app.
func InstallCommand(app *kingpin.Application) (*kingpin.CmdClause, *WatchConfig) {
	cmd := app.Command("install", "Installs the attentive watcher service on the local machine.")
	conf := &WatchConfig{}
	conf.Bind(cmd)
	return cmd, conf
}
