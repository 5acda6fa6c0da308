// Package service wires the persistent caches in front of the backend
// client. It owns three independent cache instances (stock analysis, AI
// analysis, screener pages) and exposes the cache-first fetch operations the
// rendering layer consumes.
//
// There is deliberately no de-duplication of concurrent misses on the same
// key: both callers fetch and the last write wins, which is safe because the
// backend re-derives identical data for a key within its TTL window.
package service

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/marketlens/marketlens/internal/cache"
	"github.com/marketlens/marketlens/internal/logging"
	"github.com/marketlens/marketlens/internal/models"
)

// Store slot names, one per cache instance. No two instances share a slot.
const (
	stockSlot    = "stock_analysis.json"
	aiSlot       = "ai_analysis.json"
	screenerSlot = "screener.json"
)

// Backend is the upstream the caches front. Implemented by *api.Client.
type Backend interface {
	AnalyzeStock(ctx context.Context, symbol string) (*models.StockAnalysis, error)
	AnalyzeWithAI(ctx context.Context, subject, question string) (*models.AIAnalysisResponse, error)
	ScreenerPage(ctx context.Context, templateID string) (*models.ScreenerResponse, error)
}

// Domain names a cache instance for clearing and stats.
type Domain string

// Cache domains.
const (
	DomainStock    Domain = "stock"
	DomainAI       Domain = "ai"
	DomainScreener Domain = "screener"
	DomainAll      Domain = "all"
)

// Config carries the per-domain TTLs and the sweep interval.
type Config struct {
	StockTTL      time.Duration
	AITTL         time.Duration
	ScreenerTTL   time.Duration
	SweepInterval time.Duration

	// Now overrides the caches' clock, for tests.
	Now func() time.Time
}

// CacheStats aggregates the three instances' live statistics for the
// cache-status display. It is computed fresh on every call, never cached.
type CacheStats struct {
	Stock    cache.Stats `json:"stock"`
	AI       cache.Stats `json:"ai"`
	Screener cache.Stats `json:"screener"`
	Total    int         `json:"total"`
}

// Service is the cache layer over the backend. Construct one at the
// application's composition point and pass it to whoever needs it.
type Service struct {
	backend       Backend
	stock         *cache.Cache[*models.StockAnalysis]
	ai            *cache.Cache[*models.AIAnalysisResponse]
	screener      *cache.Cache[*models.ScreenerResponse]
	sweepInterval time.Duration
	logger        zerolog.Logger
}

// New builds a Service whose caches hydrate immediately from store.
func New(backend Backend, store cache.Store, cfg Config, logger zerolog.Logger) *Service {
	cacheLogger := logging.Component(logger, "cache")
	return &Service{
		backend: backend,
		stock: cache.New[*models.StockAnalysis](cache.Config{
			Name:   string(DomainStock),
			Slot:   stockSlot,
			TTL:    cfg.StockTTL,
			Store:  store,
			Logger: cacheLogger,
			Now:    cfg.Now,
		}),
		ai: cache.New[*models.AIAnalysisResponse](cache.Config{
			Name:   string(DomainAI),
			Slot:   aiSlot,
			TTL:    cfg.AITTL,
			Store:  store,
			Logger: cacheLogger,
			Now:    cfg.Now,
		}),
		screener: cache.New[*models.ScreenerResponse](cache.Config{
			Name:   string(DomainScreener),
			Slot:   screenerSlot,
			TTL:    cfg.ScreenerTTL,
			Store:  store,
			Logger: cacheLogger,
			Now:    cfg.Now,
		}),
		sweepInterval: cfg.SweepInterval,
		logger:        logging.Component(logger, "service"),
	}
}

// Start launches one background sweeper per cache instance. The sweepers run
// until ctx is cancelled; the caller owns their lifetime.
func (s *Service) Start(ctx context.Context) {
	for _, target := range []cache.Target{s.stock, s.ai, s.screener} {
		go cache.RunSweeper(ctx, target, s.sweepInterval, s.logger)
	}
}

// GetStockData returns the analysis bundle for symbol, serving from cache
// when a valid entry exists. With force set the cache is bypassed and the
// fresh result replaces whatever was stored. Fetch failures propagate
// unchanged and are never cached.
func (s *Service) GetStockData(ctx context.Context, symbol string, force bool) (*models.StockAnalysis, error) {
	key := normalizeSymbol(symbol)
	return fetchThrough(ctx, s.stock, key, force, func(ctx context.Context) (*models.StockAnalysis, error) {
		return s.backend.AnalyzeStock(ctx, key)
	})
}

// GetAIAnalysis returns AI commentary for a subject/question pair. Entries
// are keyed by the composite "subject:question" so different questions about
// the same subject cache independently.
func (s *Service) GetAIAnalysis(ctx context.Context, subject, question string, force bool) (*models.AIAnalysisResponse, error) {
	key := aiKey(subject, question)
	return fetchThrough(ctx, s.ai, key, force, func(ctx context.Context) (*models.AIAnalysisResponse, error) {
		return s.backend.AnalyzeWithAI(ctx, subject, question)
	})
}

// CachedScreenerData returns the cached page for a template, if valid. The
// screener has no fetch-through path: refresh is an explicit user action, so
// call sites decide when to hit the backend.
func (s *Service) CachedScreenerData(templateID string) (*models.ScreenerResponse, bool) {
	return s.screener.Get(templateID)
}

// SetScreenerData stores a screener page under its template ID.
func (s *Service) SetScreenerData(templateID string, data *models.ScreenerResponse) {
	s.screener.Set(templateID, data)
}

// RefreshScreenerData fetches a screener page from the backend and caches it.
func (s *Service) RefreshScreenerData(ctx context.Context, templateID string) (*models.ScreenerResponse, error) {
	data, err := s.backend.ScreenerPage(ctx, templateID)
	if err != nil {
		return nil, err
	}
	s.screener.Set(templateID, data)
	return data, nil
}

// ClearCache empties the named domain, or every domain for DomainAll.
func (s *Service) ClearCache(domain Domain) {
	switch domain {
	case DomainStock:
		s.stock.Clear()
	case DomainAI:
		s.ai.Clear()
	case DomainScreener:
		s.screener.Clear()
	case DomainAll:
		s.stock.Clear()
		s.ai.Clear()
		s.screener.Clear()
	}
}

// CacheStats returns a live census of all three caches.
func (s *Service) CacheStats() CacheStats {
	stats := CacheStats{
		Stock:    s.stock.Stats(),
		AI:       s.ai.Stats(),
		Screener: s.screener.Stats(),
	}
	stats.Total = stats.Stock.Entries + stats.AI.Entries + stats.Screener.Entries
	return stats
}

// fetchThrough is the cache-first wrapper shared by the stock and AI paths:
// consult the cache unless forced, fetch upstream on a miss, store only on
// success, and hand failures back untouched.
func fetchThrough[T any](ctx context.Context, c *cache.Cache[T], key string, force bool, fetch func(context.Context) (T, error)) (T, error) {
	if !force {
		if cached, ok := c.Get(key); ok {
			return cached, nil
		}
	}

	fresh, err := fetch(ctx)
	if err != nil {
		var zero T
		return zero, err
	}
	c.Set(key, fresh)
	return fresh, nil
}

// normalizeSymbol canonicalizes ticker symbols so "aapl" and "AAPL" share an
// entry.
func normalizeSymbol(symbol string) string {
	return strings.ToUpper(strings.TrimSpace(symbol))
}

// aiKey builds the composite cache key for an AI lookup.
func aiKey(subject, question string) string {
	return subject + ":" + question
}
