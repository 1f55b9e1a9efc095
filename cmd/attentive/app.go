package main

import (
	"os"
	"path/filepath"

	"gopkg.in/alecthomas/kingpin.v2"
)

// App returns a new attentive kingpin app without any commands.
func App() *kingpin.Application {
	app := kingpin.New(filepath.Base(os.Args[0]), "Tracks the lifecycle and input focus of user-relevant processes.")
	app.Interspersed(false)
	return app
}

// WatchConfig holds settings shared by the watch and service commands.
type WatchConfig struct {
	Profiles   string
	Database   string
	StatHatKey string
	Tray       bool
	Debug      bool
}

// Bind attaches the configuration to the flags of cmd.
func (c *WatchConfig) Bind(cmd *kingpin.CmdClause) {
	cmd.Flag("profiles", "Profile directory path.").Short('f').Envar("ATTENTIVE_PROFILES").StringVar(&c.Profiles)
	cmd.Flag("database", "Profile database file path.").Short('d').Envar("ATTENTIVE_DATABASE").StringVar(&c.Database)
	cmd.Flag("stathat-key", "StatHat EZ key for stat reporting.").Envar("ATTENTIVE_STATHAT_KEY").StringVar(&c.StatHatKey)
	cmd.Flag("tray", "Show a system tray icon while watching.").Short('t').BoolVar(&c.Tray)
	cmd.Flag("debug", "Run with extra debug logging.").Short('v').BoolVar(&c.Debug)
}

// WatchCommand returns a watch command and configuration for app.
func WatchCommand(app *kingpin.Application) (*kingpin.CmdClause, *WatchConfig) {
	cmd := app.Command("watch", "Watches process lifecycle and input focus on the local machine.")
	conf := &WatchConfig{}
	conf.Bind(cmd)
	return cmd, conf
}

// ServiceCommand returns a service command and configuration for app.
// The command is hidden; the service control manager invokes it.
func ServiceCommand(app *kingpin.Application) (*kingpin.CmdClause, *WatchConfig) {
	cmd := app.Command("service", "Runs the process watcher under service control.").Hidden()
	conf := &WatchConfig{}
	conf.Bind(cmd)
	return cmd, conf
}
