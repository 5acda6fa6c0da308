package cli

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// runCommand executes the CLI against an isolated home and cache directory,
// returning combined output.
func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	t.Setenv("MARKETLENS_CACHE_DIR", t.TempDir())

	cmd := NewRootCmd("test")
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestRootRegistersCommands(t *testing.T) {
	cmd := NewRootCmd("dev")

	names := map[string]bool{}
	for _, sub := range cmd.Commands() {
		names[sub.Name()] = true
	}
	for _, want := range []string{"analyze", "evaluate", "ask", "screener", "cache", "dashboard", "health"} {
		assert.True(t, names[want], "missing %q command", want)
	}
}

func TestCacheStatsCommand(t *testing.T) {
	out, err := runCommand(t, "cache", "stats")
	require.NoError(t, err)

	assert.Contains(t, out, "DOMAIN")
	assert.Contains(t, out, "stock")
	assert.Contains(t, out, "screener")
}

func TestCacheClearDefaultsToAll(t *testing.T) {
	out, err := runCommand(t, "cache", "clear")
	require.NoError(t, err)

	assert.Contains(t, out, "Cleared all cache")
}

func TestCacheClearRejectsUnknownDomain(t *testing.T) {
	_, err := runCommand(t, "cache", "clear", "bogus")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown cache domain")
}

func TestExplicitMissingConfigFails(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "nope.yaml")
	_, err := runCommand(t, "--config", missing, "cache", "stats")
	require.Error(t, err)
}

func TestDashboardRequiresWatchlist(t *testing.T) {
	_, err := runCommand(t, "dashboard")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "watchlist is empty")
}
