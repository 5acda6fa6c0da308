package cache

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/rs/zerolog"
)

// slotFileExtension is the file extension used for persisted slots.
const slotFileExtension = ".json"

// Store is the durable backing for cache slots. Implementations persist one
// opaque blob per slot name. Faults are reported but callers are expected to
// degrade gracefully: a failing store must never take down the cache.
type Store interface {
	// Read returns the blob for slot, or false if the slot has no usable
	// content.
	Read(slot string) ([]byte, bool)

	// Write replaces the blob for slot.
	Write(slot string, data []byte) error

	// Remove deletes the slot. Removing an absent slot is a no-op.
	Remove(slot string)
}

// DiscardStore is a Store that persists nothing. Used when persistence is
// disabled or unavailable; caching then lasts for the session only.
type DiscardStore struct{}

// Read always reports no content.
func (DiscardStore) Read(string) ([]byte, bool) { return nil, false }

// Write discards the blob.
func (DiscardStore) Write(string, []byte) error { return nil }

// Remove is a no-op.
func (DiscardStore) Remove(string) {}

// SlotStore persists slots as JSON files in a single directory, one file per
// slot. Writes go through a temp file and rename so a crash mid-write cannot
// leave a half-written slot behind. Safe for concurrent use.
type SlotStore struct {
	dir    string
	logger zerolog.Logger
	mu     sync.Mutex
}

// NewSlotStore creates a SlotStore rooted at dir, creating the directory if
// needed.
func NewSlotStore(dir string, logger zerolog.Logger) (*SlotStore, error) {
	if dir == "" {
		return nil, errors.New("cache directory cannot be empty")
	}
	if err := os.MkdirAll(dir, 0750); err != nil {
		return nil, fmt.Errorf("failed to create cache directory: %w", err)
	}
	return &SlotStore{dir: dir, logger: logger}, nil
}

// Read returns the slot's content. Any read failure is logged and reported as
// "no content" so callers start from empty rather than erroring.
func (s *SlotStore) Read(slot string) ([]byte, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.slotPath(slot))
	if err != nil {
		if !os.IsNotExist(err) {
			s.logger.Warn().Err(err).Str("slot", slot).Msg("cache slot read failed")
		}
		return nil, false
	}
	return data, true
}

// Write replaces the slot's content atomically.
func (s *SlotStore) Write(slot string, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	path := s.slotPath(slot)
	tempPath := path + ".tmp"
	if err := os.WriteFile(tempPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write cache slot: %w", err)
	}
	if err := os.Rename(tempPath, path); err != nil {
		_ = os.Remove(tempPath)
		return fmt.Errorf("failed to rename cache slot: %w", err)
	}
	return nil
}

// Remove deletes the slot file. Failures other than absence are logged and
// otherwise ignored.
func (s *SlotStore) Remove(slot string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.slotPath(slot)); err != nil && !os.IsNotExist(err) {
		s.logger.Warn().Err(err).Str("slot", slot).Msg("cache slot remove failed")
	}
}

// Dir returns the directory backing this store.
func (s *SlotStore) Dir() string {
	return s.dir
}

// slotPath converts a slot name to a file path, sanitized for filesystem
// safety.
func (s *SlotStore) slotPath(slot string) string {
	safe := strings.ReplaceAll(slot, "/", "_")
	safe = strings.ReplaceAll(safe, "\\", "_")
	safe = strings.ReplaceAll(safe, ":", "_")
	if !strings.HasSuffix(safe, slotFileExtension) {
		safe += slotFileExtension
	}
	return filepath.Join(s.dir, safe)
}
