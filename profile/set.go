package profile

// Set is a set of profiles.
type Set []Profile

// Match returns the subset of profiles which match the given process.
func (s Set) Match(name, path, platform string) (matches Set) {
	for p := range s {
		if s[p].Match(name, path, platform) {
			matches = append(matches, s[p])
		}
	}
	return
}

// Flags returns the merged flags of every profile in the set.
//
// If the set is empty, zero flags are returned.
func (s Set) Flags() (flags Flags) {
	for p := range s {
		flags = flags.Merge(s[p].Flags)
	}
	return
}
