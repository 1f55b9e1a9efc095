package main

import (
	"time"

	"github.com/gentlemanautomaton/stathat"
)

// StatHatRecipient is a stat recipient that sends statistics to
// StatHat.
type StatHatRecipient struct {
	reporter stathat.StatHat
	prefix   string
}

// NewStatHatRecipient creates a new StatHat stat recipient with the
// given key.
func NewStatHatRecipient(statNamePrefix string, ezkey string) StatHatRecipient {
	return StatHatRecipient{
		reporter: stathat.New().EZKey(ezkey),
		prefix:   statNamePrefix,
	}
}

// Send sends a single statistic to StatHat.
func (r StatHatRecipient) Send(name string, value float64, t time.Time) error {
	name = r.prefix + " " + name
	var err error
	for i := 0; i < 3; i++ {
		if i > 0 {
			time.Sleep(200 * time.Millisecond * time.Duration(i))
		}
		err = r.reporter.PostEZ(name, stathat.KindValue, value, &t)
		if err == nil {
			return nil
		}
	}
	return err
}
