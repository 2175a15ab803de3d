package ports

import (
	"context"

	"FinNewsScanner/internal/crawler"
	"FinNewsScanner/internal/domain"
)

// SiteSource scans one configured site end to end and returns its records.
type SiteSource interface {
	Scan(ctx context.Context, site crawler.Site) ([]domain.Article, error)
}

// ArticleSink receives the aggregated records of a full run.
type ArticleSink interface {
	Save(ctx context.Context, articles []domain.Article) error
}
