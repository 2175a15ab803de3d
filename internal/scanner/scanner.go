package scanner

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"FinNewsScanner/internal/crawler"
	"FinNewsScanner/internal/domain"
)

// courtesyDelay is the fixed pause after each processed article URL so the
// remote site is never hammered. Not adaptive.
const courtesyDelay = 50 * time.Millisecond

// SiteScanner runs the walk/filter/extract loop shared by every site; all
// per-site differences live in the crawler.Site value.
type SiteScanner struct {
	walker    *crawler.Walker
	extractor *crawler.Extractor
	logger    *slog.Logger
	delay     time.Duration
}

// New wires the generic site scanner.
func New(walker *crawler.Walker, extractor *crawler.Extractor, logger *slog.Logger) *SiteScanner {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &SiteScanner{
		walker:    walker,
		extractor: extractor,
		logger:    logger,
		delay:     courtesyDelay,
	}
}

// Scan walks every sitemap root of the site, dedupes candidate URLs within
// the run, and extracts each one sequentially. A panic anywhere in the
// site's crawl is recovered here; records collected up to that point are
// returned alongside the error.
func (s *SiteScanner) Scan(ctx context.Context, site crawler.Site) (articles []domain.Article, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("site %s: %v", site.Name, r)
		}
	}()

	seen := map[string]struct{}{}
	for _, root := range site.SitemapRoots {
		for articleURL := range s.walker.Walk(ctx, root) {
			if site.AcceptURL != nil && !site.AcceptURL(articleURL) {
				continue
			}
			if _, done := seen[articleURL]; done {
				continue
			}
			seen[articleURL] = struct{}{}

			if article := s.extractor.Extract(ctx, articleURL, site); article != nil {
				articles = append(articles, *article)
			}
			time.Sleep(s.delay)
		}
	}

	s.logger.Info("site scan complete", "site", site.Name, "articles", len(articles))
	return articles, nil
}
