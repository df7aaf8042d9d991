// Package biocyc provides cached, throttled, lazily-resolved access to
// records in the BioCyc collection of pathway/genome databases.
//
// A Database is the entry point. It is constructed with a default organism
// database and owns the services shared by every entity it returns: the
// on-disk record cache, the fetch throttle, the HTTP source and the entity
// registry. Multiple Database instances are independent; each carries its own
// shared fetch budget.
//
// ## Identity And Laziness
//
// Every record is identified by the pair of organism database and frame
// identifier. The registry guarantees at most one live Entity per identity,
// so an entity reached twice, by lookup or by following references, is the
// same object. References between entities are kept as identifier lists and
// only materialized into Entity values on access. Materializing performs no
// network traffic itself; it simply indexes into the registry. This is what
// makes the cyclic reference graph of the source data navigable: following a
// cycle back to its origin returns the already-registered instance instead
// of recursing.
//
// ## Caching
//
// Attribute payloads are cached on disk, one record per identity, with a
// fetch timestamp. A fresh cached record short-circuits the network path
// entirely. A stale record is refetched on next access and overwritten. Once
// an attribute has been resolved on an Entity it is memoized for the life of
// the instance; staleness is only observed by a fresh lookup.
//
// ## Throttling
//
// The remote service is shared infrastructure and rate-sensitive. All
// fetches made through one Database pass a throttle that spaces fetch starts
// at least a minimum interval apart, one second by default, no matter how
// many goroutines are resolving attributes concurrently.
//
// ## Errors
//
// A lookup of an identifier that does not exist fails with ErrNotFound and
// is remembered in memory for a short period so that repeated lookups of a
// bad identifier do not burn fetch budget. Transient transport failures are
// retried a few times by the HTTP client and then surfaced; a later access
// of the same attribute may succeed. Cache corruption is never surfaced; a
// bad record is treated as a miss and refetched.
package biocyc
