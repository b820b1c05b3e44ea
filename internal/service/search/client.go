// Package search talks to the search engine's lightweight HTML endpoint.
package search

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/kapu/number-lookup-go/internal/extract"
	"github.com/kapu/number-lookup-go/pkg/errors"
	"go.uber.org/zap"
)

type Config struct {
	Endpoint   string
	UserAgent  string
	Timeout    time.Duration
	MaxHits    int
	SnippetMax int
}

// Client posts queries to an HTML search endpoint and parses the result
// anchors. It deliberately uses a browser-like User-Agent because the
// endpoint serves a degraded page to unknown agents.
type Client struct {
	cfg        Config
	httpClient *http.Client
	logger     *zap.Logger
}

func NewClient(cfg Config, logger *zap.Logger) *Client {
	return &Client{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		logger: logger,
	}
}

// Search runs one query and returns up to MaxHits result anchors. Transport
// failures and non-2xx statuses come back as a FetchError; the caller
// records them per platform.
func (c *Client) Search(ctx context.Context, query string) ([]extract.Hit, error) {
	form := url.Values{"q": {query}}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.Endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, errors.NewFetchError("build search request failed", c.cfg.Endpoint, 0, err)
	}
	req.Header.Set("User-Agent", c.cfg.UserAgent)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.NewFetchError("search request failed", c.cfg.Endpoint, 0, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, errors.NewFetchError("search returned non-success status", c.cfg.Endpoint, resp.StatusCode, nil)
	}

	hits, err := extract.SearchHits(resp.Body, c.cfg.MaxHits, c.cfg.SnippetMax)
	if err != nil {
		return nil, errors.NewFetchError("search response parse failed", c.cfg.Endpoint, resp.StatusCode, err)
	}

	c.logger.Debug("Search completed",
		zap.String("query", query),
		zap.Int("hits", len(hits)))

	return hits, nil
}
