package identity

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Keyring maps API keys to actor identifiers.
//
// The keyring is the authentication source for every write surface: a
// caller presents a key, the transport resolves it to an actor, and that
// actor becomes the principal for the invocation. Keys never appear in
// stored interactions.
type Keyring struct {
	// Keys maps an API key to the actor it authenticates as.
	Keys map[string]string `yaml:"keys"`
}

// LoadKeyring reads a YAML keyring file.
//
// File format:
//
//	keys:
//	  "s3cr3t-key-1": "alice"
//	  "s3cr3t-key-2": "bob"
func LoadKeyring(path string) (*Keyring, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read keyring: %w", err)
	}

	var kr Keyring
	if err := yaml.Unmarshal(data, &kr); err != nil {
		return nil, fmt.Errorf("parse keyring %s: %w", path, err)
	}

	if len(kr.Keys) == 0 {
		return nil, fmt.Errorf("keyring %s: no keys defined", path)
	}

	return &kr, nil
}

// Resolve returns the principal authenticated by the given API key.
// Returns ok=false for unknown keys (including the empty key).
func (k *Keyring) Resolve(key string) (Principal, bool) {
	if key == "" {
		return Principal{}, false
	}
	actor, ok := k.Keys[key]
	if !ok {
		return Principal{}, false
	}
	return Principal{Actor: actor}, true
}
