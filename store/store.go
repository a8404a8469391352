// Package store persists the manual form fields between sessions.
//
// A Store is a small key/value contract: values are opaque bytes and the
// last writer wins. Backends: Memory, SQLite and Redis.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/use-agent/talentclip/config"
	"github.com/use-agent/talentclip/models"
)

// ErrUnavailable is returned by backends that cannot serve requests.
var ErrUnavailable = errors.New("store: unavailable")

// Store is a key/value store scoped to this application.
type Store interface {
	// Get returns the value for key; found is false when key was never set.
	Get(ctx context.Context, key string) (value []byte, found bool, err error)

	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key string, value []byte) error

	// Close releases the backend's resources.
	Close() error
}

// Open returns the backend selected by cfg.Backend.
func Open(ctx context.Context, cfg config.StoreConfig) (Store, error) {
	switch cfg.Backend {
	case "", "sqlite":
		return OpenSQLite(cfg.DataDir)
	case "redis":
		return OpenRedis(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	case "memory":
		return NewMemory(), nil
	default:
		return nil, fmt.Errorf("store: unknown backend %q", cfg.Backend)
	}
}

// LoadManualDefaults reads the manual defaults. A missing key yields the
// zero value without error.
func LoadManualDefaults(ctx context.Context, s Store) (models.ManualDefaults, error) {
	var d models.ManualDefaults
	if s == nil {
		return d, ErrUnavailable
	}
	raw, found, err := s.Get(ctx, models.ManualDefaultsKey)
	if err != nil {
		return d, fmt.Errorf("store: read %s: %w", models.ManualDefaultsKey, err)
	}
	if !found {
		return d, nil
	}
	if err := json.Unmarshal(raw, &d); err != nil {
		return models.ManualDefaults{}, fmt.Errorf("store: decode %s: %w", models.ManualDefaultsKey, err)
	}
	return d, nil
}

// SaveManualDefaults replaces the whole manual-defaults mapping in one write.
func SaveManualDefaults(ctx context.Context, s Store, d models.ManualDefaults) error {
	if s == nil {
		return ErrUnavailable
	}
	raw, err := json.Marshal(d)
	if err != nil {
		return fmt.Errorf("store: encode %s: %w", models.ManualDefaultsKey, err)
	}
	if err := s.Set(ctx, models.ManualDefaultsKey, raw); err != nil {
		return fmt.Errorf("store: write %s: %w", models.ManualDefaultsKey, err)
	}
	return nil
}
