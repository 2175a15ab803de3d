package crawler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestFetchSelectsParseModeByURL(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.Contains(r.URL.Path, "sitemap") || strings.HasSuffix(r.URL.Path, ".xml") {
			w.Header().Set("Content-Type", "application/xml")
			w.Write([]byte(`<?xml version="1.0" encoding="UTF-8"?>
<urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">
  <url><loc>https://cafef.vn/vcb-bai-viet.chn</loc></url>
</urlset>`))
			return
		}
		w.Write([]byte(`<html><head><title>Bai viet</title></head><body><p>noi dung`))
	}))
	defer server.Close()

	f := NewFetcher()
	ctx := context.Background()

	doc, err := f.Fetch(ctx, server.URL+"/news.xml")
	if err != nil {
		t.Fatalf("fetch xml: %v", err)
	}
	if doc.Sitemap == nil || doc.HTML != nil {
		t.Fatal("expected strict XML mode for .xml URL")
	}

	doc, err = f.Fetch(ctx, server.URL+"/newest-sitemap-pages")
	if err != nil {
		t.Fatalf("fetch sitemap-named: %v", err)
	}
	if doc.Sitemap == nil {
		t.Fatal("expected strict XML mode for sitemap-named URL")
	}

	// Article markup is deliberately unterminated; the lenient HTML parser
	// must still produce a document.
	doc, err = f.Fetch(ctx, server.URL+"/vcb-bai-viet.chn")
	if err != nil {
		t.Fatalf("fetch html: %v", err)
	}
	if doc.HTML == nil || doc.Sitemap != nil {
		t.Fatal("expected lenient HTML mode for article URL")
	}
	if got := doc.HTML.Find("title").Text(); got != "Bai viet" {
		t.Fatalf("title = %q", got)
	}
}

func TestFetchNonSuccessStatus(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	f := NewFetcher()
	if _, err := f.Fetch(context.Background(), server.URL+"/vcb-bai-viet.chn"); err == nil {
		t.Fatal("expected error on non-2xx status")
	}
}

func TestFetchMalformedSitemapXML(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html><body><p>not a sitemap</body></html>`))
	}))
	defer server.Close()

	f := NewFetcher()
	if _, err := f.Fetch(context.Background(), server.URL+"/sitemap.xml"); err == nil {
		t.Fatal("expected error for non-XML sitemap body")
	}
}

func TestFetchSendsBrowserHeaders(t *testing.T) {
	t.Parallel()

	var gotUA string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		w.Write([]byte(`<html></html>`))
	}))
	defer server.Close()

	f := NewFetcher()
	if _, err := f.Fetch(context.Background(), server.URL+"/trang"); err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if !strings.Contains(gotUA, "Mozilla/5.0") {
		t.Fatalf("user agent = %q, want a browser-identifying value", gotUA)
	}
}
