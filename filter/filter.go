// Package filter classifies processes by executable name and path. The
// classification decides whether a process is visible to foreground
// tracking and eligible for suspension policy.
package filter

import (
	"path/filepath"
	"strings"
)

// Class is the classification assigned to a process.
type Class int

// Process classifications.
const (
	// Allowed processes participate in foreground tracking and policy.
	Allowed Class = iota

	// Restricted processes are operating system infrastructure or known
	// interfering utilities. They are tracked but never surfaced as the
	// foreground process and never suspended.
	Restricted

	// DesktopShell is the operating system's desktop shell process.
	DesktopShell

	// SelfProcess is this program itself.
	SelfProcess
)

// String returns a string representation of the class.
func (c Class) String() string {
	switch c {
	case Allowed:
		return "allowed"
	case Restricted:
		return "restricted"
	case DesktopShell:
		return "desktop-shell"
	case SelfProcess:
		return "self"
	default:
		return "unknown"
	}
}

// SelfName is the executable name that classifies as SelfProcess.
const SelfName = "attentive.exe"

// shellName is the executable name of the desktop shell.
const shellName = "explorer.exe"

// restricted is the set of executables that must never be treated as
// user applications. Window managers, session infrastructure, input
// and search surfaces, and utilities known to fight over the
// foreground all land here.
var restricted = map[string]struct{}{
	"csrss.exe":                     {},
	"smss.exe":                      {},
	"wininit.exe":                   {},
	"winlogon.exe":                  {},
	"services.exe":                  {},
	"lsass.exe":                     {},
	"svchost.exe":                   {},
	"dwm.exe":                       {},
	"sihost.exe":                    {},
	"ctfmon.exe":                    {},
	"conhost.exe":                   {},
	"dllhost.exe":                   {},
	"taskhostw.exe":                 {},
	"fontdrvhost.exe":               {},
	"runtimebroker.exe":             {},
	"applicationframehost.exe":      {},
	"shellexperiencehost.exe":       {},
	"startmenuexperiencehost.exe":   {},
	"searchhost.exe":                {},
	"searchui.exe":                  {},
	"searchapp.exe":                 {},
	"textinputhost.exe":             {},
	"lockapp.exe":                   {},
	"systemsettings.exe":            {},
	"taskmgr.exe":                   {},
	"securityhealthsystray.exe":     {},
	"securityhealthservice.exe":     {},
	"gamebar.exe":                   {},
	"gamebarftserver.exe":           {},
	"widgets.exe":                   {},
	"msedgewebview2.exe":            {},
	"wmiprvse.exe":                  {},
	"audiodg.exe":                   {},
	"spoolsv.exe":                   {},
	"uhssvc.exe":                    {},
	"useroobebroker.exe":            {},
	"backgroundtaskhost.exe":        {},
	"windowsinternal.composableshell.experiences.textinput.inputapp.exe": {},
}

// Classify returns the classification for a process with the given
// executable name and full path. It is a pure function: the same inputs
// always produce the same class.
//
// A process whose path could not be resolved is Restricted; identity
// that cannot be verified must not drive policy.
func Classify(name, path string) Class {
	if path == "" {
		return Restricted
	}

	name = strings.ToLower(name)
	if name == "" {
		name = strings.ToLower(filepath.Base(path))
	}

	if _, ok := restricted[name]; ok {
		return Restricted
	}
	switch name {
	case SelfName:
		return SelfProcess
	case shellName:
		return DesktopShell
	}
	return Allowed
}
