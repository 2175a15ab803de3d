package crawler

import (
	"context"
	"encoding/xml"
	"iter"
	"log/slog"
	"strings"
)

// sitemapEntry is either a <url> or a <sitemap> element; both carry a
// location and an optional last-modified date.
type sitemapEntry struct {
	Loc     string `xml:"loc"`
	LastMod string `xml:"lastmod"`
}

// SitemapDoc is a decoded sitemap of either flavor. The root element name
// tells an index (<sitemapindex>) apart from a leaf urlset.
type SitemapDoc struct {
	XMLName  xml.Name
	Sitemaps []sitemapEntry `xml:"sitemap"`
	URLs     []sitemapEntry `xml:"url"`
}

// IsIndex reports whether the document aggregates other sitemaps.
func (d *SitemapDoc) IsIndex() bool {
	return d.XMLName.Local == "sitemapindex"
}

func (d *SitemapDoc) entries() []sitemapEntry {
	if len(d.URLs) > 0 {
		return d.URLs
	}
	return d.Sitemaps
}

func parseSitemapDoc(body []byte) (*SitemapDoc, error) {
	var doc SitemapDoc
	if err := xml.Unmarshal(body, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

// Walker resolves sitemap hierarchies into lazy article-URL sequences.
type Walker struct {
	fetcher *Fetcher
	logger  *slog.Logger
}

// NewWalker wires the walker; a nil logger disables logging.
func NewWalker(fetcher *Fetcher, logger *slog.Logger) *Walker {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Walker{fetcher: fetcher, logger: logger}
}

// Links yields the surviving entry locations of one decoded sitemap, in
// document order. Entries whose lastmod falls outside the lookback window
// are dropped; entries without a lastmod pass through, because many real
// sitemaps omit it. Leaf entries must additionally match a topical keyword;
// child-sitemap URLs rarely encode topic, so index entries are never
// keyword-filtered. Re-invoking over the same document yields the same
// sequence.
func (w *Walker) Links(doc *SitemapDoc) iter.Seq[string] {
	return func(yield func(string) bool) {
		isIndex := doc.IsIndex()
		for _, entry := range doc.entries() {
			loc := strings.TrimSpace(entry.Loc)
			if loc == "" {
				continue
			}

			if raw := strings.TrimSpace(entry.LastMod); raw != "" {
				if lastMod, err := parseFlexibleTime(raw); err == nil {
					if lastMod.Before(lastModFloor) || lastMod.After(EndDate) {
						continue
					}
				}
			}

			if !isIndex && !matchesKeyword(loc) {
				continue
			}

			if !yield(loc) {
				return
			}
		}
	}
}

// Walk recursively resolves sitemapURL into a lazy sequence of article
// URLs, depth-first in document order. Junk-named and out-of-range-named
// sitemaps are rejected before any fetch; a failed fetch yields nothing.
// Sitemap hierarchies are acyclic, so no visited set is kept.
func (w *Walker) Walk(ctx context.Context, sitemapURL string) iter.Seq[string] {
	return func(yield func(string) bool) {
		w.walk(ctx, sitemapURL, yield)
	}
}

// walk returns false once the consumer has stopped, which unwinds the whole
// recursion without touching the remaining branches.
func (w *Walker) walk(ctx context.Context, sitemapURL string, yield func(string) bool) bool {
	if isJunkSitemap(sitemapURL) {
		w.logger.Warn("skipping junk sitemap", "url", sitemapURL)
		return true
	}
	if isOutOfRangeSitemap(sitemapURL) {
		w.logger.Warn("skipping out-of-range sitemap", "url", sitemapURL)
		return true
	}

	doc, err := w.fetcher.Fetch(ctx, sitemapURL)
	if err != nil {
		w.logger.Warn("sitemap fetch failed", "url", sitemapURL, "error", err)
		return true
	}
	if doc.Sitemap == nil {
		w.logger.Warn("expected sitemap document", "url", sitemapURL)
		return true
	}

	if doc.Sitemap.IsIndex() {
		w.logger.Info("walking sitemap index", "url", sitemapURL)
		for child := range w.Links(doc.Sitemap) {
			if !w.walk(ctx, child, yield) {
				return false
			}
		}
		return true
	}

	w.logger.Info("walking sitemap", "url", sitemapURL)
	for articleURL := range w.Links(doc.Sitemap) {
		if !yield(articleURL) {
			return false
		}
	}
	return true
}
