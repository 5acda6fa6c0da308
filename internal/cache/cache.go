package cache

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Stats is a point-in-time census of a cache's entries, including expired
// entries that have not been swept yet.
type Stats struct {
	Entries int `json:"entries"`
	Valid   int `json:"valid"`
	Expired int `json:"expired"`
}

// Config describes a cache instance. Name appears in logs and stats, Slot is
// the durable store slot the instance owns exclusively, and TTL is stamped
// into every entry it writes.
type Config struct {
	Name string
	Slot string
	TTL  time.Duration

	Store  Store
	Logger zerolog.Logger

	// Now overrides the clock, for tests. Defaults to time.Now.
	Now func() time.Time
}

// Cache is a mutex-guarded string-keyed map of TTL entries, hydrated from and
// persisted to a single Store slot. Get never returns an expired entry; Set
// unconditionally overwrites and restamps. All storage faults are absorbed
// here: the in-memory map remains authoritative even when persistence fails.
type Cache[T any] struct {
	name   string
	slot   string
	ttl    time.Duration
	store  Store
	logger zerolog.Logger
	now    func() time.Time

	mu      sync.Mutex
	entries map[string]Entry[T]
}

// New creates a cache and hydrates it from its store slot. Hydration adopts
// persisted entries verbatim, including ones that have already expired; those
// stay invisible to Get and are reclaimed by the next sweep. An unreadable or
// corrupt slot yields an empty cache and the slot is removed so the next
// write starts clean.
func New[T any](cfg Config) *Cache[T] {
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	c := &Cache[T]{
		name:    cfg.Name,
		slot:    cfg.Slot,
		ttl:     cfg.TTL,
		store:   cfg.Store,
		logger:  cfg.Logger.With().Str("cache", cfg.Name).Logger(),
		now:     now,
		entries: make(map[string]Entry[T]),
	}
	c.hydrate()
	return c
}

// Name returns the configured instance name.
func (c *Cache[T]) Name() string {
	return c.name
}

// TTL returns the validity window applied to entries written by this cache.
func (c *Cache[T]) TTL() time.Duration {
	return c.ttl
}

// Get returns the value for key if present and unexpired. An expired entry is
// indistinguishable from a miss; it is left in place for the sweeper.
func (c *Cache[T]) Get(key string) (T, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[key]
	if !ok || entry.Expired(c.now()) {
		var zero T
		return zero, false
	}
	return entry.Data, true
}

// Set stores value under key with the instance TTL, overwriting any existing
// entry, and re-persists the whole map. Persistence failure is logged and
// swallowed: the entry is still served from memory for this session.
func (c *Cache[T]) Set(key string, value T) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = NewEntry(value, c.ttl, c.now())
	c.persistLocked()
}

// Clear empties the cache and removes its store slot. Idempotent.
func (c *Cache[T]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = make(map[string]Entry[T])
	c.store.Remove(c.slot)
}

// Stats counts entries by validity at call time. It never mutates state.
func (c *Cache[T]) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	stats := Stats{Entries: len(c.entries)}
	for _, entry := range c.entries {
		if entry.Expired(now) {
			stats.Expired++
		} else {
			stats.Valid++
		}
	}
	return stats
}

// Sweep removes all expired entries and returns how many were removed. The
// pruned map is re-persisted only when something was actually removed, so an
// empty sweep issues no write.
func (c *Cache[T]) Sweep() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	removed := 0
	for key, entry := range c.entries {
		if entry.Expired(now) {
			delete(c.entries, key)
			removed++
		}
	}
	if removed > 0 {
		c.persistLocked()
		c.logger.Debug().Int("removed", removed).Msg("swept expired cache entries")
	}
	return removed
}

// hydrate loads the slot's persisted map into memory. Called once from New.
func (c *Cache[T]) hydrate() {
	data, ok := c.store.Read(c.slot)
	if !ok {
		return
	}

	var persisted map[string]Entry[T]
	if err := json.Unmarshal(data, &persisted); err != nil {
		c.logger.Warn().Err(err).Str("slot", c.slot).Msg("corrupt cache slot, starting empty")
		c.store.Remove(c.slot)
		return
	}

	for key, entry := range persisted {
		if !entry.wellFormed() {
			c.logger.Debug().Str("key", key).Msg("dropping malformed cache entry")
			continue
		}
		c.entries[key] = entry
	}
	c.logger.Debug().Int("entries", len(c.entries)).Msg("cache hydrated")
}

// persistLocked serializes the whole map to the store slot. Must be called
// with c.mu held. Failures are logged, never propagated.
func (c *Cache[T]) persistLocked() {
	data, err := json.Marshal(c.entries)
	if err != nil {
		c.logger.Warn().Err(err).Msg("cache serialization failed, skipping persist")
		return
	}
	if err := c.store.Write(c.slot, data); err != nil {
		c.logger.Warn().Err(err).Str("slot", c.slot).Msg("cache persist failed, continuing in memory")
	}
}
