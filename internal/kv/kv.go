// Package kv persists small string entries (tokens, mode flags, theme
// selection) outside process memory.
package kv

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// Store is a string key-value store
type Store interface {
	// Get returns the value for key and whether it exists
	Get(ctx context.Context, key string) (string, bool, error)
	// Set writes one entry
	Set(ctx context.Context, key, value string) error
	// SetMany writes all entries or none
	SetMany(ctx context.Context, entries map[string]string) error
	// Delete removes keys; missing keys are ignored
	Delete(ctx context.Context, keys ...string) error
	Close() error
}

// Backend names accepted by Open
const (
	BackendSQLite = "sqlite"
	BackendRedis  = "redis"
	BackendMemory = "memory"
)

// Options selects and configures a backend
type Options struct {
	Backend  string
	Path     string // sqlite file
	RedisURL string
	Prefix   string // redis key prefix
}

// DefaultPath returns the default sqlite path (~/.angple/state.db)
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".angple", "state.db"), nil
}

// Open opens the backend named in opts
func Open(ctx context.Context, opts Options) (Store, error) {
	switch opts.Backend {
	case "", BackendSQLite:
		path := opts.Path
		if path == "" {
			p, err := DefaultPath()
			if err != nil {
				return nil, err
			}
			path = p
		}
		return OpenSQLite(path)
	case BackendRedis:
		return OpenRedis(ctx, opts.RedisURL, opts.Prefix)
	case BackendMemory:
		return NewMemory(), nil
	default:
		return nil, fmt.Errorf("unknown state backend: %s", opts.Backend)
	}
}
