package scanner

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"FinNewsScanner/internal/crawler"
)

// newsSite serves a sitemap index whose two leaf sitemaps both list the
// same article, so dedupe across branches is observable.
type newsSite struct {
	mu             sync.Mutex
	articleFetches int

	server *httptest.Server
}

func newNewsSite(t *testing.T) *newsSite {
	t.Helper()
	ns := &newsSite{}
	ns.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		base := ns.server.URL
		switch r.URL.Path {
		case "/sitemap.xml":
			w.Header().Set("Content-Type", "application/xml")
			w.Write([]byte(`<?xml version="1.0" encoding="UTF-8"?>
<sitemapindex xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">
  <sitemap><loc>` + base + `/sitemap-news-1.xml</loc></sitemap>
  <sitemap><loc>` + base + `/sitemap-news-2.xml</loc></sitemap>
</sitemapindex>`))
		case "/sitemap-news-1.xml", "/sitemap-news-2.xml":
			w.Header().Set("Content-Type", "application/xml")
			w.Write([]byte(`<?xml version="1.0" encoding="UTF-8"?>
<urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">
  <url><loc>` + base + `/vcb-bao-lai-ky-luc-1880012345.chn</loc><lastmod>2025-03-05</lastmod></url>
  <url><loc>` + base + `/trang-chu.chn</loc></url>
</urlset>`))
		case "/vcb-bao-lai-ky-luc-1880012345.chn":
			ns.mu.Lock()
			ns.articleFetches++
			ns.mu.Unlock()
			w.Write([]byte(`<html><head>
<meta property="og:title" content="VCB bao lai ky luc">
<meta property="article:published_time" content="2025-03-05T15:30:00+07:00">
</head><body></body></html>`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	t.Cleanup(ns.server.Close)
	return ns
}

func TestScanEndToEnd(t *testing.T) {
	t.Parallel()

	ns := newNewsSite(t)

	fetcher := crawler.NewFetcher()
	s := New(crawler.NewWalker(fetcher, nil), crawler.NewExtractor(fetcher, nil), nil)
	s.delay = 0

	site := crawler.Site{
		Name:          "CafeF",
		SitemapRoots:  []string{ns.server.URL + "/sitemap.xml"},
		TitleSelector: "h1.title",
		TimeSelector:  "span.pdate",
		ParseDate: func(raw string) (time.Time, error) {
			return time.Parse("02/01/2006 15:04", strings.TrimSpace(raw))
		},
		AcceptURL: func(u string) bool { return strings.HasSuffix(u, ".chn") },
	}

	articles, err := s.Scan(context.Background(), site)
	if err != nil {
		t.Fatalf("Scan error: %v", err)
	}
	if len(articles) != 1 {
		t.Fatalf("expected exactly 1 record, got %d", len(articles))
	}

	got := articles[0]
	if got.Source != "CafeF" {
		t.Fatalf("unexpected source: %s", got.Source)
	}
	if got.URL != ns.server.URL+"/vcb-bao-lai-ky-luc-1880012345.chn" {
		t.Fatalf("unexpected url: %s", got.URL)
	}
	if got.Title != "VCB bao lai ky luc" {
		t.Fatalf("unexpected title: %s", got.Title)
	}
	if want := time.Date(2025, time.March, 5, 8, 30, 0, 0, time.UTC); !got.PublishedAt.Equal(want) {
		t.Fatalf("unexpected timestamp: %v", got.PublishedAt)
	}

	// The same URL appears in both sitemap branches; it must be fetched
	// at most once.
	if ns.articleFetches != 1 {
		t.Fatalf("article fetched %d times, want 1", ns.articleFetches)
	}
}

func TestScanAcceptURLFilter(t *testing.T) {
	t.Parallel()

	ns := newNewsSite(t)

	fetcher := crawler.NewFetcher()
	s := New(crawler.NewWalker(fetcher, nil), crawler.NewExtractor(fetcher, nil), nil)
	s.delay = 0

	site := crawler.Site{
		Name:          "CafeF",
		SitemapRoots:  []string{ns.server.URL + "/sitemap.xml"},
		TitleSelector: "h1.title",
		TimeSelector:  "span.pdate",
		ParseDate:     func(string) (time.Time, error) { return time.Time{}, nil },
		AcceptURL:     func(string) bool { return false },
	}

	articles, err := s.Scan(context.Background(), site)
	if err != nil {
		t.Fatalf("Scan error: %v", err)
	}
	if len(articles) != 0 {
		t.Fatalf("expected no records with rejecting predicate, got %d", len(articles))
	}
	if ns.articleFetches != 0 {
		t.Fatalf("rejected URLs must not be fetched, saw %d fetches", ns.articleFetches)
	}
}

func TestScanRecoversPanicKeepingPartials(t *testing.T) {
	t.Parallel()

	ns := newNewsSite(t)

	fetcher := crawler.NewFetcher()
	s := New(crawler.NewWalker(fetcher, nil), crawler.NewExtractor(fetcher, nil), nil)
	s.delay = 0

	calls := 0
	site := crawler.Site{
		Name:          "CafeF",
		SitemapRoots:  []string{ns.server.URL + "/sitemap.xml"},
		TitleSelector: "h1.title",
		TimeSelector:  "span.pdate",
		ParseDate:     func(string) (time.Time, error) { return time.Time{}, nil },
		AcceptURL: func(u string) bool {
			calls++
			if calls > 1 {
				panic("predicate blew up")
			}
			return strings.Contains(u, "vcb")
		},
	}

	articles, err := s.Scan(context.Background(), site)
	if err == nil {
		t.Fatal("expected error from recovered panic")
	}
	if len(articles) != 1 {
		t.Fatalf("expected the partial record to survive, got %d", len(articles))
	}
}
