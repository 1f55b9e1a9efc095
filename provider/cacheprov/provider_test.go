package cacheprov

import (
	"errors"
	"testing"

	"github.com/scjalliance/attentive/profile"
)

type countingSource struct {
	calls int
	err   error
}

func (s *countingSource) ProviderName() string { return "Counting" }

func (s *countingSource) Profiles() (profile.Set, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return profile.Set{profile.New("cached", nil, profile.Flags{})}, nil
}

func (s *countingSource) Close() error { return nil }

func TestProviderCachesSource(t *testing.T) {
	source := &countingSource{}
	p := New(source)
	defer p.Close()

	for i := 0; i < 3; i++ {
		profiles, err := p.Profiles()
		if err != nil {
			t.Fatalf("Profiles failed: %v", err)
		}
		if len(profiles) != 1 {
			t.Fatalf("Profiles = %+v", profiles)
		}
	}
	if source.calls != 1 {
		t.Errorf("source consulted %d times, want 1", source.calls)
	}

	p.Invalidate()
	p.Profiles()
	if source.calls != 2 {
		t.Errorf("source consulted %d times after invalidation, want 2", source.calls)
	}
}

func TestProviderDoesNotCacheFailure(t *testing.T) {
	source := &countingSource{err: errors.New("unavailable")}
	p := New(source)
	defer p.Close()

	if _, err := p.Profiles(); err == nil {
		t.Fatal("Profiles succeeded against a failing source")
	}

	// The failure is not cached; a recovered source is consulted again.
	source.err = nil
	profiles, err := p.Profiles()
	if err != nil {
		t.Fatalf("Profiles failed after recovery: %v", err)
	}
	if len(profiles) != 1 {
		t.Errorf("Profiles = %+v", profiles)
	}
	if source.calls != 2 {
		t.Errorf("source consulted %d times, want 2", source.calls)
	}
}

func TestProviderName(t *testing.T) {
	p := New(&countingSource{})
	if got := p.ProviderName(); got != "Counting (with in-memory caching)" {
		t.Errorf("ProviderName = %q", got)
	}
}
