package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marketlens/marketlens/internal/models"
)

// fakeBackend counts upstream calls and serves canned responses.
type fakeBackend struct {
	mu            sync.Mutex
	stockCalls    int
	aiCalls       int
	screenerCalls int
	stockErr      error
	aiErr         error
	screenerErr   error
}

func (f *fakeBackend) AnalyzeStock(_ context.Context, symbol string) (*models.StockAnalysis, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.stockCalls++
	if f.stockErr != nil {
		return nil, f.stockErr
	}
	return &models.StockAnalysis{Quote: models.StockQuote{Symbol: symbol, Price: float64(f.stockCalls)}}, nil
}

func (f *fakeBackend) AnalyzeWithAI(_ context.Context, subject, question string) (*models.AIAnalysisResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.aiCalls++
	if f.aiErr != nil {
		return nil, f.aiErr
	}
	return &models.AIAnalysisResponse{Analysis: subject + " / " + question}, nil
}

func (f *fakeBackend) ScreenerPage(_ context.Context, templateID string) (*models.ScreenerResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.screenerCalls++
	if f.screenerErr != nil {
		return nil, f.screenerErr
	}
	return &models.ScreenerResponse{TemplateID: templateID}, nil
}

// nullStore satisfies cache.Store without persisting anything, for tests that
// only exercise fetch semantics.
type nullStore struct{}

func (nullStore) Read(string) ([]byte, bool)  { return nil, false }
func (nullStore) Write(string, []byte) error  { return nil }
func (nullStore) Remove(string)               {}

type testClock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *testClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}

func newTestService(backend *fakeBackend, clk *testClock) *Service {
	return New(backend, nullStore{}, Config{
		StockTTL:      10 * time.Minute,
		AITTL:         10 * time.Minute,
		ScreenerTTL:   15 * time.Minute,
		SweepInterval: time.Minute,
		Now:           clk.Now,
	}, zerolog.Nop())
}

func newClock() *testClock {
	return &testClock{t: time.Date(2026, 8, 24, 9, 30, 0, 0, time.UTC)}
}

func TestGetStockDataCachesFetches(t *testing.T) {
	backend := &fakeBackend{}
	svc := newTestService(backend, newClock())
	ctx := context.Background()

	first, err := svc.GetStockData(ctx, "AAPL", false)
	require.NoError(t, err)
	assert.Equal(t, 1, backend.stockCalls)

	// Hit: upstream must not be invoked again.
	second, err := svc.GetStockData(ctx, "AAPL", false)
	require.NoError(t, err)
	assert.Equal(t, 1, backend.stockCalls)
	assert.Equal(t, first, second)
}

func TestGetStockDataNormalizesSymbols(t *testing.T) {
	backend := &fakeBackend{}
	svc := newTestService(backend, newClock())
	ctx := context.Background()

	_, err := svc.GetStockData(ctx, " aapl ", false)
	require.NoError(t, err)
	_, err = svc.GetStockData(ctx, "AAPL", false)
	require.NoError(t, err)

	assert.Equal(t, 1, backend.stockCalls, "case variants must share a cache entry")
}

func TestGetStockDataForceRefresh(t *testing.T) {
	backend := &fakeBackend{}
	svc := newTestService(backend, newClock())
	ctx := context.Background()

	_, err := svc.GetStockData(ctx, "AAPL", false)
	require.NoError(t, err)

	refreshed, err := svc.GetStockData(ctx, "AAPL", true)
	require.NoError(t, err)
	assert.Equal(t, 2, backend.stockCalls, "force must hit upstream despite a valid entry")

	// The forced result replaced the cached one.
	cached, err := svc.GetStockData(ctx, "AAPL", false)
	require.NoError(t, err)
	assert.Equal(t, refreshed, cached)
	assert.Equal(t, 2, backend.stockCalls)
}

func TestGetStockDataExpiryTriggersRefetch(t *testing.T) {
	backend := &fakeBackend{}
	clk := newClock()
	svc := newTestService(backend, clk)
	ctx := context.Background()

	_, err := svc.GetStockData(ctx, "AAPL", false)
	require.NoError(t, err)

	clk.Advance(10*time.Minute + time.Second)
	_, err = svc.GetStockData(ctx, "AAPL", false)
	require.NoError(t, err)
	assert.Equal(t, 2, backend.stockCalls)
}

func TestGetStockDataErrorNotCached(t *testing.T) {
	backend := &fakeBackend{stockErr: errors.New("backend down")}
	svc := newTestService(backend, newClock())
	ctx := context.Background()

	_, err := svc.GetStockData(ctx, "AAPL", false)
	require.Error(t, err)
	assert.Equal(t, 1, backend.stockCalls)
	assert.Zero(t, svc.CacheStats().Stock.Entries, "failures must not leave entries behind")

	// Next call retries upstream instead of serving a cached failure.
	backend.stockErr = nil
	_, err = svc.GetStockData(ctx, "AAPL", false)
	require.NoError(t, err)
	assert.Equal(t, 2, backend.stockCalls)
}

func TestGetAIAnalysisCompositeKeys(t *testing.T) {
	backend := &fakeBackend{}
	svc := newTestService(backend, newClock())
	ctx := context.Background()

	q1, err := svc.GetAIAnalysis(ctx, "AAPL", "q1", false)
	require.NoError(t, err)
	q2, err := svc.GetAIAnalysis(ctx, "AAPL", "q2", false)
	require.NoError(t, err)

	assert.Equal(t, 2, backend.aiCalls, "different questions are independent entries")
	assert.NotEqual(t, q1.Analysis, q2.Analysis)

	_, err = svc.GetAIAnalysis(ctx, "AAPL", "q1", false)
	require.NoError(t, err)
	assert.Equal(t, 2, backend.aiCalls)
}

func TestScreenerDirectAccess(t *testing.T) {
	backend := &fakeBackend{}
	svc := newTestService(backend, newClock())
	ctx := context.Background()

	_, ok := svc.CachedScreenerData("42")
	assert.False(t, ok)
	assert.Zero(t, backend.screenerCalls, "a cache read must never fetch")

	page, err := svc.RefreshScreenerData(ctx, "42")
	require.NoError(t, err)
	assert.Equal(t, 1, backend.screenerCalls)

	cached, ok := svc.CachedScreenerData("42")
	require.True(t, ok)
	assert.Equal(t, page, cached)
}

func TestScreenerRefreshFailureKeepsOldEntry(t *testing.T) {
	backend := &fakeBackend{}
	svc := newTestService(backend, newClock())
	ctx := context.Background()

	_, err := svc.RefreshScreenerData(ctx, "42")
	require.NoError(t, err)

	backend.screenerErr = errors.New("gateway timeout")
	_, err = svc.RefreshScreenerData(ctx, "42")
	require.Error(t, err)

	_, ok := svc.CachedScreenerData("42")
	assert.True(t, ok, "a failed refresh must not evict the previous page")
}

func TestClearCache(t *testing.T) {
	backend := &fakeBackend{}
	svc := newTestService(backend, newClock())
	ctx := context.Background()

	_, err := svc.GetStockData(ctx, "AAPL", false)
	require.NoError(t, err)
	_, err = svc.GetAIAnalysis(ctx, "AAPL", "q", false)
	require.NoError(t, err)
	_, err = svc.RefreshScreenerData(ctx, "42")
	require.NoError(t, err)

	svc.ClearCache(DomainStock)
	stats := svc.CacheStats()
	assert.Zero(t, stats.Stock.Entries)
	assert.Equal(t, 1, stats.AI.Entries)
	assert.Equal(t, 1, stats.Screener.Entries)

	svc.ClearCache(DomainAll)
	assert.Zero(t, svc.CacheStats().Total)
}

func TestCacheStatsLive(t *testing.T) {
	backend := &fakeBackend{}
	clk := newClock()
	svc := newTestService(backend, clk)
	ctx := context.Background()

	_, err := svc.GetStockData(ctx, "AAPL", false)
	require.NoError(t, err)
	_, err = svc.GetStockData(ctx, "MSFT", false)
	require.NoError(t, err)
	_, err = svc.GetAIAnalysis(ctx, "AAPL", "q", false)
	require.NoError(t, err)

	stats := svc.CacheStats()
	assert.Equal(t, 2, stats.Stock.Entries)
	assert.Equal(t, 2, stats.Stock.Valid)
	assert.Equal(t, 1, stats.AI.Entries)
	assert.Equal(t, 3, stats.Total)

	// Stats reflect expiry immediately, not on the next sweep.
	clk.Advance(11 * time.Minute)
	stats = svc.CacheStats()
	assert.Equal(t, 2, stats.Stock.Expired)
	assert.Zero(t, stats.Stock.Valid)
}

func TestStartSweepersStopWithContext(t *testing.T) {
	backend := &fakeBackend{}
	svc := New(backend, nullStore{}, Config{
		StockTTL:      time.Minute,
		AITTL:         time.Minute,
		ScreenerTTL:   time.Minute,
		SweepInterval: 5 * time.Millisecond,
	}, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	svc.Start(ctx)

	_, err := svc.GetStockData(ctx, "AAPL", false)
	require.NoError(t, err)

	// Cancellation is how the owner tears the sweepers down; this must not
	// hang or panic.
	cancel()
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, 1, svc.CacheStats().Stock.Entries)
}
