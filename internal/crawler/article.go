package crawler

import (
	"context"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"

	"FinNewsScanner/internal/domain"
)

// A trailing "<title> - SiteName" suffix is stripped only when the last
// segment is plausibly a site name, not part of the headline.
const maxTitleSuffixRunes = 25

// Extractor pulls a normalized article record out of a fetched page using
// an ordered fallback chain per field: structured metadata first, then the
// site-specific selectors.
type Extractor struct {
	fetcher *Fetcher
	logger  *slog.Logger
}

// NewExtractor wires the extractor; a nil logger disables logging.
func NewExtractor(fetcher *Fetcher, logger *slog.Logger) *Extractor {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Extractor{fetcher: fetcher, logger: logger}
}

// Extract fetches articleURL and resolves title and publication time. It
// returns nil when the page cannot be fetched, either field stays
// unresolved, or the timestamp falls outside the collection window. One bad
// article never takes down the run: panics are recovered here and logged.
func (e *Extractor) Extract(ctx context.Context, articleURL string, site Site) (article *domain.Article) {
	defer func() {
		if r := recover(); r != nil {
			e.logger.Error("article processing failed", "url", articleURL, "panic", r)
			article = nil
		}
	}()

	doc, err := e.fetcher.Fetch(ctx, articleURL)
	if err != nil || doc.HTML == nil {
		return nil
	}

	title := extractTitle(doc.HTML, site)
	publishedAt, ok := extractPublishedAt(doc.HTML, site)
	if title == "" || !ok {
		return nil
	}
	if !inWindow(publishedAt) {
		return nil
	}

	return &domain.Article{
		Source:      site.Name,
		URL:         articleURL,
		Title:       title,
		PublishedAt: publishedAt,
	}
}

// extractTitle tries og:title, then the <title> tag with the site-name
// suffix heuristics, then the site's title selector.
func extractTitle(doc *goquery.Document, site Site) string {
	if content, ok := doc.Find(`meta[property="og:title"]`).Attr("content"); ok {
		if title := strings.TrimSpace(content); title != "" {
			return title
		}
	}

	if title := strings.TrimSpace(doc.Find("title").First().Text()); title != "" {
		if before, _, found := strings.Cut(title, "|"); found {
			title = strings.TrimSpace(before)
		} else if strings.Contains(title, " - ") {
			parts := strings.Split(title, " - ")
			if last := parts[len(parts)-1]; len(parts) > 1 && utf8.RuneCountInString(last) < maxTitleSuffixRunes {
				title = strings.TrimSpace(strings.Join(parts[:len(parts)-1], " - "))
			}
		}
		if title != "" {
			return title
		}
	}

	return strings.TrimSpace(doc.Find(site.TitleSelector).First().Text())
}

// extractPublishedAt tries the article:published_time meta tag, then the
// site's time selector: its machine-readable datetime attribute when
// present and parseable, else its visible text through the site's date
// parser. Parser output is naive site-local time; it is anchored at ICT and
// normalized to UTC.
func extractPublishedAt(doc *goquery.Document, site Site) (time.Time, bool) {
	if content, ok := doc.Find(`meta[property="article:published_time"]`).Attr("content"); ok {
		if ts, err := parseFlexibleTime(strings.TrimSpace(content)); err == nil {
			return ts, true
		}
	}

	sel := doc.Find(site.TimeSelector).First()
	if sel.Length() == 0 {
		return time.Time{}, false
	}

	if attr, ok := sel.Attr("datetime"); ok {
		if ts, err := parseFlexibleTime(strings.TrimSpace(attr)); err == nil {
			return ts, true
		}
	}

	if site.ParseDate == nil {
		return time.Time{}, false
	}
	naive, err := site.ParseDate(strings.TrimSpace(sel.Text()))
	if err != nil {
		return time.Time{}, false
	}

	local := time.Date(naive.Year(), naive.Month(), naive.Day(),
		naive.Hour(), naive.Minute(), naive.Second(), naive.Nanosecond(), ict)
	return local.UTC(), true
}
