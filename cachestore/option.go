package cachestore

import (
	"fmt"
	"time"
)

type config struct {
	ttl       time.Duration
	secondary []string
}

// Option is a function that sets a value in a config.
type Option func(*config) error

// getOpts creates a config and applies Options to it.
func getOpts(opts []Option) (config, error) {
	cfg := config{
		ttl: DefaultTTL,
	}
	for i, opt := range opts {
		if err := opt(&cfg); err != nil {
			return config{}, fmt.Errorf("option %d failed: %s", i, err)
		}
	}
	return cfg, nil
}

// WithTTL sets how long a cached record stays fresh. A record older than
// this is reported as stale on read, which makes the caller refetch and
// overwrite it.
//
// Default is 24 weeks.
func WithTTL(ttl time.Duration) Option {
	return func(cfg *config) error {
		if ttl <= 0 {
			return fmt.Errorf("ttl must be positive: %s", ttl)
		}
		cfg.ttl = ttl
		return nil
	}
}

// WithSecondaryDirs adds read-only cache directories consulted, in order,
// when the primary directory has no fresh record. Writes never go to
// secondary directories.
func WithSecondaryDirs(dirs ...string) Option {
	return func(cfg *config) error {
		cfg.secondary = append(cfg.secondary, dirs...)
		return nil
	}
}
