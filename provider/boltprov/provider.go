package boltprov

import (
	"encoding/json"
	"fmt"

	"github.com/boltdb/bolt"
	"github.com/scjalliance/attentive/profile"
)

const (
	// AttentiveBucket is the default name of the attentive boltdb bucket
	// in which the provider stores data.
	AttentiveBucket = "attentive"
	// ProfileBucket is the name of the attentive profile bucket.
	ProfileBucket = "profile"
)

// Provider provides boltdb-backed profile storage. It doubles as a
// profile cache.
type Provider struct {
	db   *bolt.DB
	root []byte
}

// New returns a new boltdb provider.
func New(db *bolt.DB) *Provider {
	return &Provider{
		db:   db,
		root: []byte(AttentiveBucket),
	}
}

// Close releases any resources consumed by the provider.
func (p *Provider) Close() error {
	return p.db.Close()
}

// ProviderName returns the name of the provider.
func (p *Provider) ProviderName() string {
	return "bolt db"
}

// Profiles returns a complete set of profiles.
func (p *Provider) Profiles() (profiles profile.Set, err error) {
	err = p.db.View(func(btx *bolt.Tx) error {
		root := btx.Bucket(p.root)
		if root == nil {
			return nil
		}

		container := root.Bucket([]byte(ProfileBucket))
		if container == nil {
			return nil
		}

		c := container.Cursor()
		for k, v := c.First(); k != nil; k, v = c.Next() {
			if v == nil {
				continue
			}
			var prof profile.Profile
			if err := json.Unmarshal(v, &prof); err != nil {
				return fmt.Errorf("decoding error while parsing profile \"%s\": %v", string(k), err)
			}
			profiles = append(profiles, prof)
		}

		return nil
	})
	return
}

// SetProfiles replaces the stored set of profiles.
func (p *Provider) SetProfiles(profiles profile.Set) error {
	return p.db.Update(func(btx *bolt.Tx) error {
		root, err := btx.CreateBucketIfNotExists(p.root)
		if err != nil {
			return err
		}

		if root.Bucket([]byte(ProfileBucket)) != nil {
			if err := root.DeleteBucket([]byte(ProfileBucket)); err != nil {
				return err
			}
		}

		container, err := root.CreateBucket([]byte(ProfileBucket))
		if err != nil {
			return err
		}

		for i := range profiles {
			key := profiles[i].Name
			if key == "" {
				key = fmt.Sprintf("profile-%d", i)
			}

			value, err := json.Marshal(&profiles[i])
			if err != nil {
				return err
			}
			if err := container.Put([]byte(key), value); err != nil {
				return err
			}
		}

		return nil
	})
}
