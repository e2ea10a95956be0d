// Package cache provides a two-tier TTL cache for phone analysis results.
//
// The first tier is an in-memory map guarded by a mutex; the second is a
// directory of per-key JSON records that survive process restarts. Key
// features:
//   - Write-through: Set updates memory first, then the durable record
//   - Read-through: a miss or stale hit in memory falls back to disk, and a
//     valid durable record is promoted back into memory
//   - SHA256-based record names for deterministic, filesystem-safe lookups
//   - Per-entry TTL with an asymmetric freshness rule: an entry's own TTL
//     takes precedence over any caller-supplied max age
//
// Cache operations never return errors. Internal faults (I/O, corrupt
// records, unserializable payloads) are logged and degrade to a miss or a
// no-op, so a broken cache directory slows the caller down but never stops
// it.
package cache
