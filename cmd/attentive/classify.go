package main

import (
	"fmt"

	"github.com/scjalliance/attentive/filter"
	"github.com/scjalliance/attentive/platform"
	"gopkg.in/alecthomas/kingpin.v2"
)

// ClassifyConfig holds settings for the classify command.
type ClassifyConfig struct {
	Executable string
	Path       string
}

// ClassifyCommand returns a classify command and configuration for app.
func ClassifyCommand(app *kingpin.Application) (*kingpin.CmdClause, *ClassifyConfig) {
	cmd := app.Command("classify", "Shows how a process would be classified.")
	conf := &ClassifyConfig{}
	cmd.Arg("executable", "Executable name to classify.").Required().StringVar(&conf.Executable)
	cmd.Arg("path", "Executable path to classify.").StringVar(&conf.Path)
	return cmd, conf
}

func classify(conf ClassifyConfig) {
	prepareConsole(false)

	class := filter.Classify(conf.Executable, conf.Path)
	fmt.Printf("%s: %s\n", conf.Executable, class)

	if tag := platform.Detect(conf.Path); tag != platform.None {
		fmt.Printf("platform: %s\n", tag)
	}
}
