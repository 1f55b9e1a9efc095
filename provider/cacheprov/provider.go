package cacheprov

import (
	"fmt"
	"sync"

	"github.com/scjalliance/attentive/profile"
)

// Provider is a cached source of profile data.
type Provider struct {
	Source   profile.Provider
	mutex    sync.RWMutex
	cached   bool
	profiles profile.Set
}

// New returns a new provider that caches profiles for the given
// source.
func New(source profile.Provider) *Provider {
	return &Provider{Source: source}
}

// Close releases any resources consumed by the provider.
func (p *Provider) Close() error {
	return p.Source.Close()
}

// ProviderName returns the name of the provider.
func (p *Provider) ProviderName() string {
	return fmt.Sprintf("%s (with in-memory caching)", p.Source.ProviderName())
}

// Profiles returns a complete set of profiles.
func (p *Provider) Profiles() (profiles profile.Set, err error) {
	profiles, err = p.pull()
	return
}

// Invalidate drops the cached profiles. The next call to Profiles
// reads from the source again.
func (p *Provider) Invalidate() {
	p.mutex.Lock()
	p.cached = false
	p.profiles = nil
	p.mutex.Unlock()
}

func (p *Provider) pull() (profiles profile.Set, err error) {
	p.mutex.RLock()
	if !p.cached {
		p.mutex.RUnlock()
		p.mutex.Lock()
		if !p.cached {
			p.profiles, err = p.Source.Profiles()
			if err == nil {
				p.cached = true
			}
		}
		p.mutex.Unlock()
		p.mutex.RLock()
	}
	profiles = p.profiles
	p.mutex.RUnlock()
	return
}
