package profile

// Provider is a source of profiles.
type Provider interface {
	// ProviderName returns the name of the provider.
	ProviderName() string

	// Profiles returns the set of profiles.
	Profiles() (Set, error)

	// Close releases any resources consumed by the provider.
	Close() error
}
