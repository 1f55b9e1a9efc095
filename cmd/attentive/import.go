package main

import (
	"fmt"
	"os"
	"time"

	"github.com/boltdb/bolt"
	"github.com/scjalliance/attentive/provider/boltprov"
	"github.com/scjalliance/attentive/provider/fsprov"
	"gopkg.in/alecthomas/kingpin.v2"
)

// ImportConfig holds settings for the import command.
type ImportConfig struct {
	Source   string
	Database string
}

// ImportCommand returns an import command and configuration for app.
func ImportCommand(app *kingpin.Application) (*kingpin.CmdClause, *ImportConfig) {
	cmd := app.Command("import", "Imports profiles from a directory into a profile database.")
	conf := &ImportConfig{}
	cmd.Arg("source", "Profile directory to import.").Required().StringVar(&conf.Source)
	cmd.Flag("database", "Profile database file path.").Short('d').Envar("ATTENTIVE_DATABASE").Required().StringVar(&conf.Database)
	return cmd, conf
}

func importProfiles(conf ImportConfig) {
	prepareConsole(false)

	source := fsprov.New(conf.Source)
	defer source.Close()

	profiles, err := source.Profiles()
	if err != nil {
		fmt.Printf("Failed to read profiles: %v\n", err)
		os.Exit(1)
	}
	if len(profiles) == 0 {
		fmt.Printf("No profiles found in \"%s\".\n", conf.Source)
		return
	}

	db, err := bolt.Open(conf.Database, 0666, &bolt.Options{Timeout: 10 * time.Second})
	if err != nil {
		fmt.Printf("Unable to open profile database \"%s\": %v\n", conf.Database, err)
		os.Exit(1)
	}

	dest := boltprov.New(db)
	defer dest.Close()

	if err := dest.SetProfiles(profiles); err != nil {
		fmt.Printf("Failed to store profiles: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Imported %d profiles into \"%s\":\n", len(profiles), conf.Database)
	for _, p := range profiles {
		fmt.Printf("  %s\n", p.Name)
	}
}
