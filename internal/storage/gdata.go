package storage

import (
	"fmt"

	"github.com/quasilyte/gdata/v2"
)

// kvObject groups every value this package writes through gdata.
const kvObject = "kv"

// GData is a key/value store backed by the platform's per-user data
// directory (XDG data dir, AppData, browser storage) via gdata.
type GData struct {
	manager *gdata.Manager
}

// OpenGData opens the data directory for appName, creating it if needed.
func OpenGData(appName string) (*GData, error) {
	m, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open gdata for %q: %w", appName, err)
	}
	return &GData{manager: m}, nil
}

// Get returns the value stored under key. A missing key is not an error.
func (g *GData) Get(key string) (string, bool, error) {
	if !g.manager.ObjectPropExists(kvObject, key) {
		return "", false, nil
	}
	data, err := g.manager.LoadObjectProp(kvObject, key)
	if err != nil {
		return "", false, fmt.Errorf("storage: cannot read %q: %w", key, err)
	}
	return string(data), true, nil
}

// Set stores value under key.
func (g *GData) Set(key, value string) error {
	if err := g.manager.SaveObjectProp(kvObject, key, []byte(value)); err != nil {
		return fmt.Errorf("storage: cannot write %q: %w", key, err)
	}
	return nil
}
