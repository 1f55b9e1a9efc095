// Package profile matches processes to behavioral settings. A profile
// names an application by criteria over its executable name, path and
// platform, and carries the flags that govern how the watcher treats
// it.
package profile

// Profile describes the matching conditions and settings for handling
// a particular application.
//
// A profile is applied only if all of its criteria are matched.
type Profile struct {
	Name     string   `json:"name,omitempty"`
	Criteria Criteria `json:"criteria,omitempty"`
	Flags    Flags    `json:"flags,omitempty"`
}

// New returns a new profile with the given name, criteria and flags.
func New(name string, criteria Criteria, flags Flags) Profile {
	return Profile{
		Name:     name,
		Criteria: criteria,
		Flags:    flags,
	}
}

// Match returns true if the profile applies to the given process.
//
// All of the profile's criteria must match for the profile to be
// applied.
func (p *Profile) Match(name, path, platform string) bool {
	return p.Criteria.Match(name, path, platform)
}
