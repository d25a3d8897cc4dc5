// Package googlebooks provides a client for the Google Books volumes API.
package googlebooks

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/time/rate"
)

// Config holds client configuration.
type Config struct {
	// BaseURL of the volumes API, without trailing slash.
	// Defaults to the production endpoint; override in tests.
	BaseURL string
	// APIKey is optional. Unauthenticated requests work at a lower quota.
	APIKey string
	// MaxResults per search request (1-40). Defaults to 20.
	MaxResults int
	// RequestsPerSecond caps outbound request rate. Defaults to 5.
	RequestsPerSecond int
}

// Client provides access to the Google Books volumes API.
type Client struct {
	httpClient  *http.Client
	rateLimiter *rate.Limiter
	logger      *slog.Logger

	baseURL    string
	apiKey     string
	maxResults int
}

// NewClient creates a new Google Books client.
func NewClient(cfg Config, logger *slog.Logger) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = "https://www.googleapis.com/books/v1"
	}
	maxResults := cfg.MaxResults
	if maxResults < 1 || maxResults > 40 {
		maxResults = 20
	}
	rps := cfg.RequestsPerSecond
	if rps < 1 {
		rps = 5
	}

	return &Client{
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		rateLimiter: rate.NewLimiter(rate.Limit(rps), rps),
		logger:      logger,
		baseURL:     baseURL,
		apiKey:      cfg.APIKey,
		maxResults:  maxResults,
	}
}

// wait blocks until the rate limiter allows a request.
func (c *Client) wait(ctx context.Context) error {
	return c.rateLimiter.Wait(ctx)
}
