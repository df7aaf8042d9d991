// Package cachestore persists raw entity records on local disk so that
// repeated lookups of the same entity do not go back over the network.
//
// Each record is one JSON file under <root>/<organism>/<id>, stamped with the
// time its payload was fetched. Freshness is decided at read time against the
// store's time-to-live; a stale record is reported as such rather than
// deleted, and is overwritten on the next successful fetch.
//
// Writes go to a temporary file in the record's directory and are renamed
// into place, so a reader never observes a partially written record. This
// matters because the root directory may be shared between processes or
// machines, for example over a network filesystem.
//
// The store may also be configured with secondary, read-only directories.
// These are consulted after the primary and allow exploring with a private
// primary cache layered over a shared long-lived one. Writes only ever go to
// the primary.
//
// The cache is an optimization, never a source of truth: a record that
// cannot be read or decoded is treated as missing, logged, and refetched.
package cachestore
