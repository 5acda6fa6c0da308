package cache

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEntry(t *testing.T) {
	now := time.Date(2026, 8, 24, 12, 0, 0, 0, time.UTC)
	entry := NewEntry("payload", 10*time.Minute, now)

	assert.Equal(t, "payload", entry.Data)
	assert.Equal(t, now.UnixMilli(), entry.StoredAt)
	assert.Equal(t, int64(600_000), entry.TTL)

	t.Run("ValidWithinWindow", func(t *testing.T) {
		assert.True(t, entry.Valid(now))
		assert.True(t, entry.Valid(now.Add(5*time.Minute)))
		// Exactly at the boundary still counts as valid.
		assert.True(t, entry.Valid(now.Add(10*time.Minute)))
	})

	t.Run("ExpiredPastWindow", func(t *testing.T) {
		assert.True(t, entry.Expired(now.Add(10*time.Minute+time.Millisecond)))
		assert.True(t, entry.Expired(now.Add(time.Hour)))
	})

	t.Run("Age", func(t *testing.T) {
		assert.Equal(t, 3*time.Minute, entry.Age(now.Add(3*time.Minute)))
	})
}

func TestEntryPersistedLayout(t *testing.T) {
	now := time.UnixMilli(1_700_000_000_000)
	entry := NewEntry(map[string]string{"foo": "bar"}, time.Minute, now)

	encoded, err := json.Marshal(entry)
	require.NoError(t, err)
	assert.JSONEq(t, `{"data":{"foo":"bar"},"storedAt":1700000000000,"ttl":60000}`, string(encoded))

	var decoded Entry[map[string]string]
	require.NoError(t, json.Unmarshal(encoded, &decoded))
	assert.Equal(t, entry, decoded)
}

func TestEntryWellFormed(t *testing.T) {
	now := time.Now()
	assert.True(t, NewEntry("x", time.Minute, now).wellFormed())
	assert.False(t, Entry[string]{Data: "x"}.wellFormed())
	assert.False(t, Entry[string]{Data: "x", StoredAt: now.UnixMilli()}.wellFormed())
	assert.False(t, Entry[string]{Data: "x", TTL: 1000}.wellFormed())
}
