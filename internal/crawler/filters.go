package crawler

import (
	"net/url"
	"regexp"
	"strings"
	"time"
)

// Global collection window. Records outside it are dropped; sitemap entries
// get a one-month lookback so late-December sitemaps carrying January
// articles are still walked.
var (
	StartDate    = time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)
	EndDate      = time.Date(2025, time.September, 30, 23, 59, 59, 0, time.UTC)
	lastModFloor = time.Date(2024, time.December, 1, 0, 0, 0, 0, time.UTC)
)

// ict anchors naive site-local timestamps; all target sites publish in
// Indochina Time.
var ict = time.FixedZone("ICT", 7*60*60)

// Ticker symbols of the tracked VN30-adjacent firms as they appear in
// article slugs.
var firmKeywords = []string{
	"vcb", "hpg", "fpt", "vic", "vnm", "bid", "ctg", "mwg", "ssi", "tcb",
	"vpb", "mbb", "acb", "eib", "stb", "hdb", "vib", "gas", "plx", "pow",
	"gvr", "vre", "vhm", "msn", "sab", "bvh", "tpb", "pdr", "nvl", "kdh",
}

// Macro-economics slug fragments (interest rates, inflation, FX, monetary
// policy, bonds, equities).
var macroKeywords = []string{
	"lai-suat", "lam-phat", "gdp", "tang-truong-kinh-te", "ty-gia",
	"chinh-sach-tien-te", "vnd", "usd", "vn-index", "vnindex",
	"chung-khoan", "ngan-hang-nha-nuoc", "trai-phieu", "co-phieu",
}

var urlKeywords = append(append([]string{}, firmKeywords...), macroKeywords...)

// matchesKeyword reports whether the lowercased URL contains at least one
// tracked firm or macro keyword.
func matchesKeyword(rawURL string) bool {
	lower := strings.ToLower(rawURL)
	for _, kw := range urlKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// junkSitemapExpr matches aggregator/category/topic sitemaps that never
// contain dated article URLs.
var junkSitemapExpr = regexp.MustCompile(
	`google-news-sitemap\.xml` +
		`|latest-news-sitemap\.xml` +
		`|latestnews-sitemap\.xml` +
		`|category\.rss` +
		`|category-sitemap\.xml` +
		`|sitemaparticles-site` +
		`|category_sitemap` +
		`|topics\.xml` +
		`|event-sitemap\.xml` +
		`|categories\.xml`)

// outOfRangeSitemapExpr matches sitemap names carrying a year 2000-2024 or a
// 2025 Q4 month marker, both in -YYYY-MM and _YYYY_MM form. A name match
// skips the fetch entirely.
var outOfRangeSitemapExpr = regexp.MustCompile(
	`20[0-1][0-9]|202[0-4]` +
		`|-2025-(10|11|12)` +
		`|_2025_(10|11|12)`)

// Both name checks look at the URL path only; a year-like digit run in the
// host never disqualifies a sitemap.
func isJunkSitemap(rawURL string) bool {
	return junkSitemapExpr.MatchString(urlPath(rawURL))
}

func isOutOfRangeSitemap(rawURL string) bool {
	return outOfRangeSitemapExpr.MatchString(urlPath(rawURL))
}

func urlPath(rawURL string) string {
	if u, err := url.Parse(rawURL); err == nil && u.Path != "" {
		return u.Path
	}
	return rawURL
}

// parseFlexibleTime accepts full ISO-8601 with offset, a naive date-time, or
// a bare date. Naive forms are taken as UTC; offset forms are normalized.
func parseFlexibleTime(value string) (time.Time, error) {
	if ts, err := time.Parse(time.RFC3339, value); err == nil {
		return ts.UTC(), nil
	}
	if ts, err := time.Parse("2006-01-02T15:04:05", value); err == nil {
		return ts.UTC(), nil
	}
	ts, err := time.Parse("2006-01-02", value)
	if err != nil {
		return time.Time{}, err
	}
	return ts.UTC(), nil
}

// inWindow reports whether ts falls in the global window, bounds included.
func inWindow(ts time.Time) bool {
	return !ts.Before(StartDate) && !ts.After(EndDate)
}
