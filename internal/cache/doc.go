// Package cache provides TTL-bounded, file-persisted caches for backend
// query results.
//
// Each Cache owns an in-memory key/entry map backed 1:1 by a single slot in a
// durable Store. The whole map is re-serialized on every mutating operation,
// and hydrated back at construction so cached data survives restarts. Expiry
// is enforced lazily on Get (an expired entry is a miss) and reclaimed
// periodically by RunSweeper. Storage faults never surface to callers: the
// in-memory map stays authoritative for the session and a corrupt slot is
// removed so it cannot fail repeatedly.
package cache
