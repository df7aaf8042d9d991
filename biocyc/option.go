package biocyc

import (
	"fmt"
	"net/http"
	"time"

	"github.com/biocyc/go-biocyc/model"
	"github.com/biocyc/go-biocyc/throttle"
)

const (
	// DefaultOrganism is the organism database used when none is configured.
	DefaultOrganism = "HUMAN"
	// DefaultNotFoundTTL is how long a not-found result is remembered in
	// memory before the identifier may be fetched again.
	DefaultNotFoundTTL = time.Hour

	defaultRetryMax     = 3
	defaultRetryWaitMin = time.Second
	defaultRetryWaitMax = 15 * time.Second
)

type config struct {
	organism      string
	detail        model.Detail
	baseURL       string
	httpClient    *http.Client
	source        Source
	cacheDir      string
	secondaryDirs []string
	ttl           time.Duration
	fetchInterval time.Duration
	notFoundTTL   time.Duration
	retryMax      int
	retryWaitMin  time.Duration
	retryWaitMax  time.Duration
}

// Option is a function that sets a value in a config.
type Option func(*config) error

// getOpts creates a config and applies Options to it.
func getOpts(opts []Option) (config, error) {
	cfg := config{
		organism:      DefaultOrganism,
		detail:        model.DetailFull,
		baseURL:       DefaultBaseURL,
		fetchInterval: throttle.DefaultInterval,
		notFoundTTL:   DefaultNotFoundTTL,
		retryMax:      defaultRetryMax,
		retryWaitMin:  defaultRetryWaitMin,
		retryWaitMax:  defaultRetryWaitMax,
	}
	for i, opt := range opts {
		if err := opt(&cfg); err != nil {
			return config{}, fmt.Errorf("option %d failed: %s", i, err)
		}
	}
	return cfg, nil
}

// WithOrganism sets the default organism database for top-level lookups.
// Entities reached by following references always use the organism of the
// referencing entity, not this default.
//
// Default is HUMAN.
func WithOrganism(orgID string) Option {
	return func(cfg *config) error {
		if orgID == "" {
			return fmt.Errorf("organism must not be empty")
		}
		cfg.organism = orgID
		return nil
	}
}

// WithDetail sets the detail level requested on initial record fetches. With
// a level below full, the first access to a relational attribute upgrades
// the record with one full-detail fetch.
//
// Default is full.
func WithDetail(detail model.Detail) Option {
	return func(cfg *config) error {
		if !model.ValidDetail(detail) {
			return fmt.Errorf("invalid detail level: %s", detail)
		}
		cfg.detail = detail
		return nil
	}
}

// WithBaseURL sets the web service endpoint.
func WithBaseURL(baseURL string) Option {
	return func(cfg *config) error {
		cfg.baseURL = baseURL
		return nil
	}
}

// WithClient sets the HTTP client used to reach the service, replacing the
// default retrying client.
func WithClient(c *http.Client) Option {
	return func(cfg *config) error {
		if c != nil {
			cfg.httpClient = c
		}
		return nil
	}
}

// WithRetry configures the default HTTP client's retry policy for transient
// failures. Setting max to 0 disables retries. Ignored when WithClient or
// WithSource is given.
func WithRetry(max int, waitMin, waitMax time.Duration) Option {
	return func(cfg *config) error {
		if max < 0 {
			return fmt.Errorf("retry max must not be negative")
		}
		cfg.retryMax = max
		cfg.retryWaitMin = waitMin
		cfg.retryWaitMax = waitMax
		return nil
	}
}

// WithSource replaces the HTTP source entirely. Used by tests and by callers
// with a private mirror of the data.
func WithSource(src Source) Option {
	return func(cfg *config) error {
		cfg.source = src
		return nil
	}
}

// WithCacheDir sets the root directory of the record cache. The directory
// may be shared between processes and machines.
//
// Default is .biocyc under the user's home directory.
func WithCacheDir(dir string) Option {
	return func(cfg *config) error {
		cfg.cacheDir = dir
		return nil
	}
}

// WithSecondaryCacheDirs adds read-only cache directories consulted after
// the primary.
func WithSecondaryCacheDirs(dirs ...string) Option {
	return func(cfg *config) error {
		cfg.secondaryDirs = append(cfg.secondaryDirs, dirs...)
		return nil
	}
}

// WithTTL sets how long cached records stay fresh.
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

// WithFetchInterval sets the minimum interval between the starts of two
// fetches from the remote service. A non-positive interval disables
// throttling.
//
// Default is 1 second.
func WithFetchInterval(interval time.Duration) Option {
	return func(cfg *config) error {
		cfg.fetchInterval = interval
		return nil
	}
}

// WithNotFoundTTL sets how long a not-found result is remembered before the
// identifier may be fetched again. Setting 0 disables the negative cache.
//
// Default is 1 hour.
func WithNotFoundTTL(ttl time.Duration) Option {
	return func(cfg *config) error {
		if ttl < 0 {
			return fmt.Errorf("not-found ttl must not be negative")
		}
		cfg.notFoundTTL = ttl
		return nil
	}
}
