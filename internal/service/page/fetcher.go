// Package page fetches third-party HTML pages and reads their metadata.
package page

import (
	"context"
	"net/http"
	"time"

	"github.com/kapu/number-lookup-go/internal/extract"
	"github.com/kapu/number-lookup-go/pkg/errors"
	"go.uber.org/zap"
)

type Config struct {
	UserAgent  string
	Timeout    time.Duration
	TextMaxLen int
}

// Fetcher retrieves arbitrary pages and extracts og:title/og:image plus a
// text snippet. Many target sites block unknown agents, hence the
// browser-like User-Agent.
type Fetcher struct {
	cfg        Config
	httpClient *http.Client
	logger     *zap.Logger
}

func NewFetcher(cfg Config, logger *zap.Logger) *Fetcher {
	return &Fetcher{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		logger: logger,
	}
}

// FetchMeta GETs url and returns its extracted metadata. Transport failures
// and non-2xx statuses come back as a FetchError.
func (f *Fetcher) FetchMeta(ctx context.Context, url string) (*extract.Meta, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errors.NewFetchError("build page request failed", url, 0, err)
	}
	req.Header.Set("User-Agent", f.cfg.UserAgent)

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, errors.NewFetchError("page fetch failed", url, 0, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, errors.NewFetchError("page returned non-success status", url, resp.StatusCode, nil)
	}

	meta, err := extract.PageMeta(resp.Body, f.cfg.TextMaxLen)
	if err != nil {
		return nil, errors.NewFetchError("page parse failed", url, resp.StatusCode, err)
	}

	f.logger.Debug("Page meta fetched",
		zap.String("url", url),
		zap.Bool("has_title", meta.Title != ""),
		zap.Bool("has_image", meta.Image != ""))

	return meta, nil
}
