// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package secrets loads API keys from a directory of plain-text files. Each
// file holds one secret: the filename is the key name and the trimmed file
// contents are the value.
//
// Recognised key files: newsapi-api-key, classifier-api-key.
package secrets

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
)

// DefaultDir is the secrets directory relative to the working directory.
const DefaultDir = ".secrets"

// Key file names.
const (
	NewsAPIKey    = "newsapi-api-key"
	ClassifierKey = "classifier-api-key"
)

// Store is a read-only set of loaded secrets.
type Store map[string]string

// Load reads all files in dir. A missing directory is not an error and
// yields an empty Store. Unreadable files are logged at warn level and skipped.
func Load(dir string, log zerolog.Logger) (Store, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return Store{}, nil
		}
		return nil, fmt.Errorf("reading secrets directory %s: %w", dir, err)
	}

	store := make(Store)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if strings.HasPrefix(name, ".") {
			continue
		}

		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			log.Warn().Err(err).Str("secret", name).Msg("could not read secret")
			continue
		}

		if value := strings.TrimSpace(string(data)); value != "" {
			store[name] = value
		}
	}

	return store, nil
}

// Get returns the secret stored under key, or "".
func (s Store) Get(key string) string {
	return s[key]
}

// Resolve returns configured when it is set, and the secret stored under key
// otherwise. Explicit configuration always wins over the secrets directory.
func (s Store) Resolve(configured, key string) string {
	if configured != "" {
		return configured
	}
	return s.Get(key)
}
