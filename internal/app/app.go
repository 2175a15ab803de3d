package app

import (
	"context"
	"fmt"
	"log/slog"

	"FinNewsScanner/internal/config"
	"FinNewsScanner/internal/crawler"
	"FinNewsScanner/internal/infrastructure/output"
	"FinNewsScanner/internal/logging"
	"FinNewsScanner/internal/scanner"
	"FinNewsScanner/internal/sites"
	"FinNewsScanner/internal/usecase"
)

// Application wires configs to use cases and lifecycle orchestration.
type Application struct {
	cfg      config.Config
	pipeline *usecase.Pipeline
}

// New builds a runnable application instance.
func New(cfg config.Config, baseLogger *slog.Logger) (*Application, error) {
	if baseLogger == nil {
		baseLogger = logging.New(cfg.Logging.Level)
	}

	registry, err := sites.Registry()
	if err != nil {
		return nil, fmt.Errorf("build site registry: %w", err)
	}

	fetcher := crawler.NewFetcher()
	walker := crawler.NewWalker(fetcher, baseLogger.With("component", "walker"))
	extractor := crawler.NewExtractor(fetcher, baseLogger.With("component", "extractor"))
	siteScanner := scanner.New(walker, extractor, baseLogger.With("component", "scanner"))

	pipeline := usecase.NewPipeline(usecase.PipelineDeps{
		Source: siteScanner,
		Sink:   output.NewJSONWriter(cfg.Output.Path),
		Sites:  registry,
		Logger: baseLogger.With("component", "pipeline"),
	})
	return &Application{cfg: cfg, pipeline: pipeline}, nil
}

// Run performs a single full crawl across the registered sites.
func (a *Application) Run(ctx context.Context) error {
	if a.pipeline == nil {
		return nil
	}
	return a.pipeline.Run(ctx)
}
