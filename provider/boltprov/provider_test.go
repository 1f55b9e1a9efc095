package boltprov

import (
	"path/filepath"
	"testing"

	"github.com/boltdb/bolt"
	"github.com/scjalliance/attentive/profile"
)

func openProvider(t *testing.T) *Provider {
	t.Helper()
	db, err := bolt.Open(filepath.Join(t.TempDir(), "attentive.db"), 0600, nil)
	if err != nil {
		t.Fatalf("unable to open database: %v", err)
	}
	p := New(db)
	t.Cleanup(func() { p.Close() })
	return p
}

func TestProviderEmptyDatabase(t *testing.T) {
	p := openProvider(t)

	profiles, err := p.Profiles()
	if err != nil {
		t.Fatalf("Profiles failed: %v", err)
	}
	if len(profiles) != 0 {
		t.Errorf("Profiles = %+v, want none", profiles)
	}
}

func TestProviderRoundTrip(t *testing.T) {
	p := openProvider(t)

	in := profile.Set{
		profile.New("game", profile.Criteria{
			{Component: profile.ComponentName, Comparison: profile.ComparisonIgnoreCase, Value: "game.exe"},
		}, profile.Flags{SuspendOnOverlay: true}),
		profile.New("", nil, profile.Flags{SuspendOnSleep: true}),
	}
	if err := p.SetProfiles(in); err != nil {
		t.Fatalf("SetProfiles failed: %v", err)
	}

	out, err := p.Profiles()
	if err != nil {
		t.Fatalf("Profiles failed: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("read %d profiles, want 2", len(out))
	}

	// Replacement discards what was stored before.
	if err := p.SetProfiles(profile.Set{profile.New("only", nil, profile.Flags{})}); err != nil {
		t.Fatalf("SetProfiles failed: %v", err)
	}
	out, _ = p.Profiles()
	if len(out) != 1 || out[0].Name != "only" {
		t.Errorf("Profiles after replacement = %+v", out)
	}
}
