package cachestore

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"

	logging "github.com/ipfs/go-log/v2"

	"github.com/biocyc/go-biocyc/model"
)

var log = logging.Logger("cachestore")

// DefaultTTL is how long a cached record stays fresh. Reference databases
// change slowly; the default matches the upstream release cadence.
const DefaultTTL = 24 * 7 * 24 * time.Hour // 24 weeks

// Freshness is the explicit three-way outcome of a cache read.
type Freshness int

const (
	// Missing means no usable record exists.
	Missing Freshness = iota
	// Stale means a record exists but its age exceeds the TTL.
	Stale
	// Fresh means the record is within the TTL and may be used directly.
	Fresh
)

func (f Freshness) String() string {
	switch f {
	case Fresh:
		return "fresh"
	case Stale:
		return "stale"
	}
	return "missing"
}

// Record is one cached entity record.
type Record struct {
	Kind      model.Kind       `json:"kind"`
	Detail    model.Detail     `json:"detail"`
	FetchedAt time.Time        `json:"fetched_at"`
	Attrs     model.Attributes `json:"attrs"`
}

// Store is an on-disk record store rooted at a directory.
type Store struct {
	dir       string
	secondary []string
	ttl       time.Duration
}

// DefaultDir returns the default cache root under the user's home directory.
func DefaultDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(home, ".biocyc"), nil
}

// New creates a store rooted at dir. If dir is empty the default directory
// under the user's home is used. The directory is created if necessary.
func New(dir string, options ...Option) (*Store, error) {
	opts, err := getOpts(options)
	if err != nil {
		return nil, err
	}
	if dir == "" {
		dir, err = DefaultDir()
		if err != nil {
			return nil, err
		}
	}
	if err = os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("cannot create cache directory: %w", err)
	}
	return &Store{
		dir:       dir,
		secondary: opts.secondary,
		ttl:       opts.ttl,
	}, nil
}

// Dir returns the primary cache directory.
func (s *Store) Dir() string {
	return s.dir
}

// TTL returns the configured time-to-live.
func (s *Store) TTL() time.Duration {
	return s.ttl
}

// Read looks up the record for ident. The primary directory is consulted
// first, then any secondary directories in order; the first fresh record
// wins. If only stale records exist the first one found is returned with
// Stale so that the caller refetches. Unreadable or corrupt records are
// treated as missing.
func (s *Store) Read(ident model.Identity) (Record, Freshness) {
	var stale Record
	var haveStale bool
	now := time.Now()

	for _, dir := range append([]string{s.dir}, s.secondary...) {
		rec, err := readRecord(recordPath(dir, ident))
		if err != nil {
			if !errors.Is(err, os.ErrNotExist) {
				// Corrupt record. The cache is not a source of truth, so
				// treat it as a miss and refetch.
				log.Debugw("Ignoring unreadable cache record", "id", ident, "dir", dir, "err", err)
			}
			continue
		}
		if now.Sub(rec.FetchedAt) < s.ttl {
			return rec, Fresh
		}
		if !haveStale {
			stale = rec
			haveStale = true
		}
	}

	if haveStale {
		return stale, Stale
	}
	return Record{}, Missing
}

// Write atomically replaces the record for ident in the primary directory,
// stamping it with the current time. A temporary file in the same directory
// is renamed into place so concurrent readers never see a torn record.
func (s *Store) Write(ident model.Identity, rec Record) error {
	rec.FetchedAt = time.Now()

	data, err := json.Marshal(&rec)
	if err != nil {
		return fmt.Errorf("cannot encode cache record: %w", err)
	}

	dir := filepath.Join(s.dir, url.PathEscape(ident.OrgID))
	if err = os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("cannot create cache directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return fmt.Errorf("cannot create temporary record: %w", err)
	}
	_, err = tmp.Write(data)
	if cerr := tmp.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("cannot write temporary record: %w", err)
	}
	if err = os.Rename(tmp.Name(), recordPath(s.dir, ident)); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("cannot replace record: %w", err)
	}
	return nil
}

// Remove deletes the record for ident from the primary directory. Removing a
// record that does not exist is not an error.
func (s *Store) Remove(ident model.Identity) error {
	err := os.Remove(recordPath(s.dir, ident))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

func recordPath(dir string, ident model.Identity) string {
	// Frame identifiers can contain characters that are not filename-safe.
	return filepath.Join(dir, url.PathEscape(ident.OrgID), url.PathEscape(ident.ID)+".json")
}

func readRecord(path string) (Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Record{}, err
	}
	var rec Record
	if err = json.Unmarshal(data, &rec); err != nil {
		return Record{}, err
	}
	if rec.FetchedAt.IsZero() || rec.Attrs == nil {
		return Record{}, errors.New("incomplete cache record")
	}
	return rec, nil
}
