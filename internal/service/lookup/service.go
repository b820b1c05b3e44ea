// Package lookup runs the per-platform lookup pass and aggregates the
// results into a single report.
package lookup

import (
	"context"
	"fmt"
	"time"

	"github.com/kapu/number-lookup-go/internal/domain"
	"github.com/kapu/number-lookup-go/internal/extract"
	"go.uber.org/zap"
)

// Searcher runs one search-engine query and returns result anchors.
type Searcher interface {
	Search(ctx context.Context, query string) ([]extract.Hit, error)
}

// MetaFetcher retrieves one page's extracted metadata.
type MetaFetcher interface {
	FetchMeta(ctx context.Context, url string) (*extract.Meta, error)
}

// Recorder persists completed reports. Optional; failures are logged and
// never surfaced to the client.
type Recorder interface {
	Record(ctx context.Context, report *domain.Report) error
}

// Platforms is the fixed lookup source list. Order is preserved in the
// response.
var Platforms = []domain.Platform{
	{Name: "DuckDuckGo (exact)", Kind: domain.KindSearch, Template: `"%s"`},
	{Name: "PhonePe (DDG)", Kind: domain.KindSearch, Template: `"%s" PhonePe`},
	{Name: "WhoCallsMe (site search)", Kind: domain.KindSearch, Template: `site:whocallsme.com "%s"`},
	{Name: "SpamCalls (site search)", Kind: domain.KindSearch, Template: `site:spamcalls.net "%s"`},
	{Name: "Truecaller (direct)", Kind: domain.KindDirect, Template: "https://www.truecaller.com/search/in/%s"},
	{Name: "Google (DDG fallback)", Kind: domain.KindSearch, Template: `"%s" Google`},
}

// quickLinkPlatforms back the POST variant: constructed profile URLs,
// returned without fetching anything.
var quickLinkPlatforms = []domain.Platform{
	{Name: "Truecaller", Kind: domain.KindDirect, Template: "https://www.truecaller.com/search/in/%s"},
	{Name: "WhoCallsMe", Kind: domain.KindDirect, Template: "http://whocallsme.com/Phone-Number.aspx/%s"},
	{Name: "SpamCalls", Kind: domain.KindDirect, Template: "https://spamcalls.net/en/number/%s"},
}

type Service struct {
	searcher  Searcher
	fetcher   MetaFetcher
	recorder  Recorder
	platforms []domain.Platform
	delay     time.Duration
	logger    *zap.Logger
}

func NewService(searcher Searcher, fetcher MetaFetcher, delay time.Duration, logger *zap.Logger) *Service {
	return &Service{
		searcher:  searcher,
		fetcher:   fetcher,
		platforms: Platforms,
		delay:     delay,
		logger:    logger,
	}
}

// WithRecorder attaches an optional history sink.
func (s *Service) WithRecorder(r Recorder) *Service {
	s.recorder = r
	return s
}

// PlatformCount reports how many sources one lookup pass covers.
func (s *Service) PlatformCount() int {
	return len(s.platforms)
}

// Lookup runs the sequential platform pass for a normalized number. One
// platform's failure never aborts the pass; every platform yields exactly
// one entry, in platform order. A politeness delay separates consecutive
// fetches. When ctx is cancelled mid-pass the remaining platforms are
// filled with the cancellation as their note so the entry count stays
// stable.
func (s *Service) Lookup(ctx context.Context, query domain.Query) *domain.Report {
	start := time.Now()
	results := make([]domain.LookupResult, 0, len(s.platforms))

	cancelled := false
	for i, p := range s.platforms {
		if cancelled {
			results = append(results, domain.LookupResult{Platform: p.Name, Notes: "error: " + ctx.Err().Error()})
			continue
		}
		if i > 0 {
			if err := s.wait(ctx); err != nil {
				cancelled = true
				results = append(results, domain.LookupResult{Platform: p.Name, Notes: "error: " + err.Error()})
				continue
			}
		}
		results = append(results, s.lookupPlatform(ctx, p, query.Normalized))
	}

	report := &domain.Report{
		Queried:    query.Raw,
		Normalized: query.Normalized,
		Results:    results,
	}

	s.logger.Info("Lookup completed",
		zap.String("number", query.Normalized),
		zap.Int("platforms", len(results)),
		zap.Duration("elapsed", time.Since(start)))

	if s.recorder != nil {
		if err := s.recorder.Record(ctx, report); err != nil {
			s.logger.Warn("History record failed", zap.Error(err))
		}
	}

	return report
}

// QuickLinks builds the static profile URLs for a normalized number.
func (s *Service) QuickLinks(number string) []domain.QuickLink {
	links := make([]domain.QuickLink, 0, len(quickLinkPlatforms))
	for _, p := range quickLinkPlatforms {
		links = append(links, domain.QuickLink{
			Platform: p.Name,
			Result:   p.Render(number),
		})
	}
	return links
}

func (s *Service) lookupPlatform(ctx context.Context, p domain.Platform, number string) (entry domain.LookupResult) {
	entry = domain.LookupResult{Platform: p.Name}

	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("Platform lookup panicked",
				zap.String("platform", p.Name),
				zap.Any("panic", r))
			entry.Notes = fmt.Sprintf("error: %v", r)
		}
	}()

	switch p.Kind {
	case domain.KindSearch:
		s.lookupViaSearch(ctx, p, number, &entry)
	case domain.KindDirect:
		s.lookupDirect(ctx, p, number, &entry)
	}

	return entry
}

func (s *Service) lookupViaSearch(ctx context.Context, p domain.Platform, number string, entry *domain.LookupResult) {
	hits, err := s.searcher.Search(ctx, p.Render(number))
	if err != nil {
		entry.Notes = err.Error()
		return
	}

	for _, hit := range hits {
		name := extract.Name(hit.Snippet + " " + hit.Title)
		if name == "" {
			continue
		}
		entry.Name = name
		entry.Notes = hit.Href
		// Best-effort photo grab from the matched result page.
		if meta, err := s.fetcher.FetchMeta(ctx, hit.Href); err == nil && meta.Image != "" {
			entry.Photo = meta.Image
		}
		return
	}

	if len(hits) > 0 {
		entry.Notes = hits[0].Href
	}
}

func (s *Service) lookupDirect(ctx context.Context, p domain.Platform, number string, entry *domain.LookupResult) {
	url := p.Render(number)

	meta, err := s.fetcher.FetchMeta(ctx, url)
	if err != nil {
		entry.Notes = err.Error()
		return
	}

	entry.Notes = url
	if meta.Title != "" {
		entry.Name = extract.Name(meta.Title)
	}
	if entry.Name == "" && meta.Text != "" {
		entry.Name = extract.Name(meta.Text)
	}
	entry.Photo = meta.Image
}

func (s *Service) wait(ctx context.Context) error {
	if s.delay <= 0 {
		return nil
	}
	timer := time.NewTimer(s.delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
