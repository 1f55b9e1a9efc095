package memprov

import (
	"sync"

	"github.com/scjalliance/attentive/profile"
)

// Provider is a memory-based source of profile data. It doubles as a
// profile cache.
type Provider struct {
	mutex    sync.RWMutex
	profiles profile.Set
}

// New returns a new memory provider holding the given profiles.
func New(profiles ...profile.Profile) *Provider {
	return &Provider{profiles: profile.Set(profiles)}
}

// Close releases any resources consumed by the provider.
func (p *Provider) Close() error {
	return nil
}

// ProviderName returns the name of the provider.
func (p *Provider) ProviderName() string {
	return "In-Memory"
}

// Profiles returns a complete set of profiles.
func (p *Provider) Profiles() (profile.Set, error) {
	p.mutex.RLock()
	defer p.mutex.RUnlock()

	profiles := make(profile.Set, len(p.profiles))
	copy(profiles, p.profiles)
	return profiles, nil
}

// SetProfiles replaces the set of profiles.
func (p *Provider) SetProfiles(profiles profile.Set) error {
	replacement := make(profile.Set, len(profiles))
	copy(replacement, profiles)

	p.mutex.Lock()
	defer p.mutex.Unlock()

	p.profiles = replacement
	return nil
}
