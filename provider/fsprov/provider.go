package fsprov

import (
	"encoding/json"
	"fmt"
	"io/ioutil"
	"path/filepath"

	"github.com/scjalliance/attentive/profile"
)

// Provider is a filesystem-based source of profile data. The profiles
// are read from *.profile files in a given directory, each of which
// are JSON-encoded.
type Provider struct {
	path string
}

// New returns a new provider that serves profiles from the filesystem.
//
// The provided path must point to a directory that contains zero or
// more *.profile files.
func New(path string) *Provider {
	return &Provider{path: path}
}

// Close releases any resources consumed by the provider.
func (p *Provider) Close() error {
	return nil
}

// ProviderName returns the name of the provider.
func (p *Provider) ProviderName() string {
	return "Filesystem"
}

// Profiles will return a complete set of profiles.
func (p *Provider) Profiles() (profiles profile.Set, err error) {
	files, dirErr := ioutil.ReadDir(p.path)
	if dirErr != nil {
		return nil, fmt.Errorf("unable to access profile directory \"%s\": %v", p.path, dirErr)
	}
	for _, file := range files {
		if file.IsDir() {
			continue
		}

		matched, matchErr := filepath.Match("*.profile", file.Name())
		if matchErr != nil {
			return nil, fmt.Errorf("unable to perform profile filename match for file \"%s\": %v", file.Name(), matchErr)
		}
		if !matched {
			continue
		}

		path := filepath.Join(p.path, file.Name())
		contents, fileErr := ioutil.ReadFile(path)
		if fileErr != nil {
			return nil, fmt.Errorf("unable to read profile file \"%s\": %v", path, fileErr)
		}

		prof := profile.Profile{}
		dataErr := json.Unmarshal(contents, &prof)
		if dataErr != nil {
			err = fmt.Errorf("decoding error while parsing profile file \"%s\": %v", path, dataErr)
			return
		}

		if prof.Name == "" {
			prof.Name = file.Name()
		}

		profiles = append(profiles, prof)
	}

	return
}
