package profile

// Cache is a cache of profiles.
type Cache interface {
	// Profiles returns the set of profiles from the cache.
	Profiles() (Set, error)

	// SetProfiles writes the set of profiles to the cache.
	SetProfiles(Set) error
}
