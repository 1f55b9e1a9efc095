package profile

// Flags are the behavioral settings applied to processes matched by a
// profile.
type Flags struct {
	// SuspendOnSleep suspends the process tree when the system is about
	// to sleep and resumes it on wake.
	SuspendOnSleep bool `json:"suspendOnSleep,omitempty"`

	// SuspendOnOverlay suspends the process tree while a transient
	// overlay holds focus.
	SuspendOnOverlay bool `json:"suspendOnOverlay,omitempty"`
}

// Merge returns the union of f and other. A flag is set in the result
// if it is set in either.
func (f Flags) Merge(other Flags) Flags {
	return Flags{
		SuspendOnSleep:   f.SuspendOnSleep || other.SuspendOnSleep,
		SuspendOnOverlay: f.SuspendOnOverlay || other.SuspendOnOverlay,
	}
}
