package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"FinNewsScanner/internal/crawler"
	"FinNewsScanner/internal/domain"
	"FinNewsScanner/internal/ports"
)

// PipelineDeps wires the driven adapters into the orchestration pipeline.
type PipelineDeps struct {
	Source ports.SiteSource
	Sink   ports.ArticleSink
	Sites  []crawler.Site
	Logger *slog.Logger
}

// Pipeline drives the full crawl: each registered site in order, results
// aggregated and handed to the sink.
type Pipeline struct {
	source ports.SiteSource
	sink   ports.ArticleSink
	sites  []crawler.Site
	logger *slog.Logger
}

// NewPipeline constructs the orchestration component.
func NewPipeline(deps PipelineDeps) *Pipeline {
	logger := deps.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Pipeline{
		source: deps.Source,
		sink:   deps.Sink,
		sites:  deps.Sites,
		logger: logger,
	}
}

// Run scans every site sequentially. A failing site keeps whatever records
// it produced before the failure and never aborts the rest of the run; the
// only fatal outcome is the sink refusing the aggregated result.
func (p *Pipeline) Run(ctx context.Context) error {
	if p.source == nil {
		return nil
	}

	var aggregated []domain.Article
	for _, site := range p.sites {
		p.logger.Info("scanning site", "site", site.Name)
		articles, err := p.source.Scan(ctx, site)
		if err != nil {
			p.logger.Error("site scan failed", "site", site.Name, "error", err, "partial", len(articles))
		}
		aggregated = append(aggregated, articles...)
	}

	p.logger.Info("crawl complete", "total_articles", len(aggregated))

	if p.sink == nil {
		return nil
	}
	if err := p.sink.Save(ctx, aggregated); err != nil {
		return fmt.Errorf("save articles: %w", err)
	}
	return nil
}
