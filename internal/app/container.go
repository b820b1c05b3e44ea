package app

import (
	"context"
	"fmt"
	"net/http"

	"github.com/kapu/number-lookup-go/internal/config"
	"github.com/kapu/number-lookup-go/internal/server"
	"github.com/kapu/number-lookup-go/internal/service/database"
	"github.com/kapu/number-lookup-go/internal/service/lookup"
	"github.com/kapu/number-lookup-go/internal/service/page"
	"github.com/kapu/number-lookup-go/internal/service/search"
	"go.uber.org/zap"
)

// Container bundles assembled services for constructing the runtime HTTP
// server.
type Container struct {
	Config *config.Config
	Logger *zap.Logger

	handler http.Handler
	closers []func()
}

// NewHTTPServer returns a server wired with the assembled handler.
func (c *Container) NewHTTPServer() *http.Server {
	return &http.Server{
		Addr:    fmt.Sprintf("%s:%d", c.Config.Server.Host, c.Config.Server.Port),
		Handler: c.handler,
	}
}

// Close releases held resources in reverse construction order.
func (c *Container) Close() {
	for i := len(c.closers) - 1; i >= 0; i-- {
		c.closers[i]()
	}
}

// Build assembles the lookup pipeline and, when enabled, the history sink.
// Heavy-weight initialization (DB connect, schema check) happens here so the
// handler construction stays trivial.
func Build(ctx context.Context, cfg *config.Config, logger *zap.Logger) (container *Container, err error) {
	if cfg == nil {
		return nil, fmt.Errorf("config must not be nil")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger must not be nil")
	}
	if ctx == nil {
		ctx = context.Background()
	}

	container = &Container{
		Config: cfg,
		Logger: logger,
	}
	defer func() {
		if err != nil {
			container.Close()
		}
	}()

	searchClient := search.NewClient(search.Config{
		Endpoint:   cfg.Lookup.SearchURL,
		UserAgent:  cfg.Lookup.UserAgent,
		Timeout:    cfg.Lookup.SearchTimeout,
		MaxHits:    cfg.Lookup.MaxSearchHits,
		SnippetMax: cfg.Lookup.SnippetMaxLen,
	}, logger)

	pageFetcher := page.NewFetcher(page.Config{
		UserAgent:  cfg.Lookup.UserAgent,
		Timeout:    cfg.Lookup.FetchTimeout,
		TextMaxLen: cfg.Lookup.PageTextMaxLen,
	}, logger)

	lookupSvc := lookup.NewService(searchClient, pageFetcher, cfg.Lookup.PlatformDelay, logger)

	srv := server.New(lookupSvc, cfg.Lookup.CountryCode, logger)

	if cfg.History.Enabled {
		postgresSvc, pgErr := database.NewPostgresService(database.PostgresConfig{
			Host:     cfg.Postgres.Host,
			Port:     cfg.Postgres.Port,
			User:     cfg.Postgres.User,
			Password: cfg.Postgres.Password,
			Database: cfg.Postgres.Database,
			SSLMode:  cfg.Postgres.SSLMode,
		}, logger)
		if pgErr != nil {
			return nil, fmt.Errorf("failed to create postgres service: %w", pgErr)
		}
		container.closers = append(container.closers, func() {
			_ = postgresSvc.Close()
		})

		historyRepo := database.NewHistoryRepository(postgresSvc, logger)
		if schemaErr := historyRepo.EnsureSchema(ctx); schemaErr != nil {
			return nil, fmt.Errorf("failed to ensure history schema: %w", schemaErr)
		}

		lookupSvc.WithRecorder(historyRepo)
		srv.WithHistory(historyRepo)

		logger.Info("Lookup history enabled",
			zap.String("database", cfg.Postgres.Database))
	}

	container.handler = srv.Routes()

	logger.Info("Application services assembled",
		zap.Int("platforms", lookupSvc.PlatformCount()),
		zap.Bool("history", cfg.History.Enabled))

	return container, nil
}
