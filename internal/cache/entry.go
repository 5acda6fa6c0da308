package cache

import "time"

// Entry wraps a cached value with its creation time and validity window.
// The persisted JSON layout is {"data": ..., "storedAt": <epoch ms>, "ttl": <ms>}
// and must stay stable across releases: slots written by older builds are
// hydrated verbatim.
type Entry[T any] struct {
	// Data is the cached payload, opaque to the cache logic.
	Data T `json:"data"`

	// StoredAt is the write time in Unix milliseconds.
	StoredAt int64 `json:"storedAt"`

	// TTL is the validity window in milliseconds, copied from the owning
	// cache's configuration at write time.
	TTL int64 `json:"ttl"`
}

// NewEntry creates an entry stamped at now with the given validity window.
func NewEntry[T any](data T, ttl time.Duration, now time.Time) Entry[T] {
	return Entry[T]{
		Data:     data,
		StoredAt: now.UnixMilli(),
		TTL:      ttl.Milliseconds(),
	}
}

// Expired reports whether the entry's validity window has elapsed at now.
// An expired entry is logically absent and must never be returned to a caller.
func (e Entry[T]) Expired(now time.Time) bool {
	return now.UnixMilli()-e.StoredAt > e.TTL
}

// Valid is the inverse of Expired, provided for readability.
func (e Entry[T]) Valid(now time.Time) bool {
	return !e.Expired(now)
}

// Age returns the duration since the entry was stored.
func (e Entry[T]) Age(now time.Time) time.Duration {
	return now.Sub(time.UnixMilli(e.StoredAt))
}

// wellFormed reports whether a hydrated entry carries the required metadata.
// Entries missing it (hand-edited or truncated slots) are treated as absent.
func (e Entry[T]) wellFormed() bool {
	return e.StoredAt > 0 && e.TTL > 0
}
