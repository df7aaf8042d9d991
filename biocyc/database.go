package biocyc

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/hashicorp/go-retryablehttp"
	logging "github.com/ipfs/go-log/v2"

	"github.com/biocyc/go-biocyc/cachestore"
	"github.com/biocyc/go-biocyc/model"
	"github.com/biocyc/go-biocyc/throttle"
)

var log = logging.Logger("biocyc")

// Database is the entry point for looking up entities. It owns the services
// shared by every entity it returns: record cache, fetch throttle, source
// and registry. A Database is safe for concurrent use.
type Database struct {
	store    *cachestore.Store
	throttle *throttle.Throttle
	source   Source
	registry *Registry
	detail   model.Detail

	mu          sync.Mutex
	organism    string
	notFoundTTL time.Duration
	notFound    map[model.Identity]time.Time
}

// New creates a Database.
func New(options ...Option) (*Database, error) {
	opts, err := getOpts(options)
	if err != nil {
		return nil, err
	}

	var storeOpts []cachestore.Option
	if opts.ttl != 0 {
		storeOpts = append(storeOpts, cachestore.WithTTL(opts.ttl))
	}
	if len(opts.secondaryDirs) != 0 {
		storeOpts = append(storeOpts, cachestore.WithSecondaryDirs(opts.secondaryDirs...))
	}
	store, err := cachestore.New(opts.cacheDir, storeOpts...)
	if err != nil {
		return nil, err
	}

	source := opts.source
	if source == nil {
		client := opts.httpClient
		if client == nil {
			rc := retryablehttp.NewClient()
			rc.Logger = nil
			rc.RetryMax = opts.retryMax
			rc.RetryWaitMin = opts.retryWaitMin
			rc.RetryWaitMax = opts.retryWaitMax
			// Hand the final response back instead of a bare "giving up"
			// error, so the status code reaches the error mapping.
			rc.ErrorHandler = retryablehttp.PassthroughErrorHandler
			client = rc.StandardClient()
		}
		source, err = NewHTTPSource(opts.baseURL, client)
		if err != nil {
			return nil, err
		}
	}

	db := &Database{
		store:       store,
		throttle:    throttle.New(opts.fetchInterval),
		source:      source,
		detail:      opts.detail,
		organism:    strings.ToUpper(opts.organism),
		notFoundTTL: opts.notFoundTTL,
		notFound:    make(map[model.Identity]time.Time),
	}
	db.registry = newRegistry(db)
	return db, nil
}

// Get looks up an entity by identifier in the default organism database and
// ensures its base attributes are populated.
func (db *Database) Get(ctx context.Context, id string) (*Entity, error) {
	return db.GetForOrg(ctx, db.Organism(), id)
}

// GetForOrg looks up an entity by identifier in a specific organism database
// and ensures its base attributes are populated.
func (db *Database) GetForOrg(ctx context.Context, orgID, id string) (*Entity, error) {
	e := db.registry.Resolve(model.NewIdentity(orgID, id))
	if err := e.Load(ctx); err != nil {
		return nil, err
	}
	return e, nil
}

// GetMany looks up several identifiers in the default organism database. All
// entities that load successfully are returned; failures are aggregated into
// the returned error, one per failed identifier.
func (db *Database) GetMany(ctx context.Context, ids []string) ([]*Entity, error) {
	var errs *multierror.Error
	ents := make([]*Entity, 0, len(ids))
	for _, id := range ids {
		e, err := db.Get(ctx, id)
		if err != nil {
			errs = multierror.Append(errs, err)
			if ctx.Err() != nil {
				break
			}
			continue
		}
		ents = append(ents, e)
	}
	return ents, errs.ErrorOrNil()
}

// SetOrganism changes the default organism database for subsequent Get
// calls. It has no effect on already-constructed entities.
func (db *Database) SetOrganism(orgID string) {
	db.mu.Lock()
	defer db.mu.Unlock()
	db.organism = strings.ToUpper(orgID)
}

// Organism returns the default organism database.
func (db *Database) Organism() string {
	db.mu.Lock()
	defer db.mu.Unlock()
	return db.organism
}

// Registry returns the database's entity registry.
func (db *Database) Registry() *Registry {
	return db.registry
}

// CacheDir returns the primary cache directory.
func (db *Database) CacheDir() string {
	return db.store.Dir()
}

// failedRecently returns ErrNotFound when ident was recently reported as
// nonexistent by the service, so that repeated lookups of a bad identifier
// do not burn fetch budget. Entries expire after the configured period.
func (db *Database) failedRecently(ident model.Identity) error {
	db.mu.Lock()
	defer db.mu.Unlock()
	at, ok := db.notFound[ident]
	if !ok {
		return nil
	}
	if db.notFoundTTL == 0 || time.Since(at) >= db.notFoundTTL {
		delete(db.notFound, ident)
		return nil
	}
	return fmt.Errorf("%s: %w", ident, ErrNotFound)
}

func (db *Database) noteNotFound(ident model.Identity) {
	if db.notFoundTTL == 0 {
		return
	}
	db.mu.Lock()
	defer db.mu.Unlock()
	db.notFound[ident] = time.Now()
	log.Debugw("Remembering not-found result", "id", ident, "ttl", db.notFoundTTL)
}
