// Package api implements the HTTP client for the Market Lens backend. It is
// the sole upstream boundary of the tool: stock analysis, AI commentary, and
// screener pages all come through here, and the caching layer sits in front
// of these calls.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/Masterminds/semver/v3"
	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog"

	"github.com/marketlens/marketlens/internal/models"
)

// requestIDHeader carries a per-request ULID so client and backend logs can
// be correlated.
const requestIDHeader = "X-Request-ID"

// defaultTimeout bounds every backend call when the caller does not configure
// one. The cache layer deliberately imposes no timeout of its own.
const defaultTimeout = 30 * time.Second

// Options configures a Client.
type Options struct {
	// BaseURL is the backend root, e.g. "http://localhost:8000".
	BaseURL string

	// Timeout bounds each request. Zero means defaultTimeout.
	Timeout time.Duration

	// ScreenerToken is sent as a bearer token on screener requests.
	ScreenerToken string

	// MinVersion, when set, is the oldest backend version CheckHealth will
	// accept without a warning. Must parse as semver.
	MinVersion string
}

// Client talks JSON to the Market Lens backend.
type Client struct {
	baseURL       string
	httpClient    *http.Client
	screenerToken string
	minVersion    *semver.Version
	logger        zerolog.Logger
}

// NewClient validates opts and builds a Client.
func NewClient(opts Options, logger zerolog.Logger) (*Client, error) {
	if opts.BaseURL == "" {
		return nil, fmt.Errorf("backend base URL cannot be empty")
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	var minVersion *semver.Version
	if opts.MinVersion != "" {
		parsed, err := semver.NewVersion(opts.MinVersion)
		if err != nil {
			return nil, fmt.Errorf("invalid minimum backend version %q: %w", opts.MinVersion, err)
		}
		minVersion = parsed
	}

	return &Client{
		baseURL:       strings.TrimRight(opts.BaseURL, "/"),
		httpClient:    &http.Client{Timeout: timeout},
		screenerToken: opts.ScreenerToken,
		minVersion:    minVersion,
		logger:        logger,
	}, nil
}

// AnalyzeStock fetches the full analysis bundle for a symbol.
func (c *Client) AnalyzeStock(ctx context.Context, symbol string) (*models.StockAnalysis, error) {
	var out models.StockAnalysis
	body := map[string]string{"symbol": symbol}
	if err := c.doJSON(ctx, http.MethodPost, "/api/stocks/analyze", body, nil, &out); err != nil {
		return nil, fmt.Errorf("analyze %s: %w", symbol, err)
	}
	return &out, nil
}

// EvaluateStock fetches the scored buy/hold/sell verdict for a symbol.
func (c *Client) EvaluateStock(ctx context.Context, symbol string) (*models.StockEvaluation, error) {
	var out models.StockEvaluation
	body := map[string]string{"symbol": symbol}
	if err := c.doJSON(ctx, http.MethodPost, "/api/stocks/evaluate", body, nil, &out); err != nil {
		return nil, fmt.Errorf("evaluate %s: %w", symbol, err)
	}
	return &out, nil
}

// AnalyzeWithAI fetches AI commentary for a subject, optionally focused on a
// question.
func (c *Client) AnalyzeWithAI(ctx context.Context, subject, question string) (*models.AIAnalysisResponse, error) {
	var out models.AIAnalysisResponse
	body := map[string]string{"prompt": subject, "question": question}
	if err := c.doJSON(ctx, http.MethodPost, "/api/ai/analyze", body, nil, &out); err != nil {
		return nil, fmt.Errorf("ai analyze %s: %w", subject, err)
	}
	return &out, nil
}

// ScreenerPage fetches a raw screener result page for a template.
func (c *Client) ScreenerPage(ctx context.Context, templateID string) (*models.ScreenerResponse, error) {
	var out models.ScreenerResponse
	path := fmt.Sprintf("/screener/templates/%s?type=TEMPLATE_TYPE_CUSTOM", templateID)
	headers := map[string]string{}
	if c.screenerToken != "" {
		headers["Authorization"] = "Bearer " + c.screenerToken
	}
	if err := c.doJSON(ctx, http.MethodGet, path, nil, headers, &out); err != nil {
		return nil, fmt.Errorf("screener %s: %w", templateID, err)
	}
	return &out, nil
}

// CheckHealth fetches the backend health report and logs a warning if the
// reported version is older than the configured minimum.
func (c *Client) CheckHealth(ctx context.Context) (*models.HealthStatus, error) {
	var out models.HealthStatus
	if err := c.doJSON(ctx, http.MethodGet, "/health", nil, nil, &out); err != nil {
		return nil, fmt.Errorf("health check: %w", err)
	}

	if c.minVersion != nil && out.Version != "" {
		reported, err := semver.NewVersion(out.Version)
		if err != nil {
			c.logger.Warn().Str("version", out.Version).Msg("backend reported unparseable version")
		} else if reported.LessThan(c.minVersion) {
			c.logger.Warn().
				Str("backend_version", out.Version).
				Str("min_version", c.minVersion.String()).
				Msg("backend is older than the minimum supported version")
		}
	}
	return &out, nil
}

// doJSON issues one request and decodes a JSON response into out.
func (c *Client) doJSON(ctx context.Context, method, path string, body any, headers map[string]string, out any) error {
	var reqBody io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reqBody = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	requestID := ulid.Make().String()
	req.Header.Set(requestIDHeader, requestID)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("backend request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	c.logger.Debug().
		Str("method", method).
		Str("path", path).
		Str("request_id", requestID).
		Int("status", resp.StatusCode).
		Dur("elapsed", time.Since(start)).
		Msg("backend request")

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return newAPIError(resp, requestID)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
