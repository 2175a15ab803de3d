package sites

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"FinNewsScanner/internal/crawler"
)

// chnArticleExpr matches article URLs of the CafeF family, which end in a
// long numeric id plus the .chn extension; everything else in those
// sitemaps is section or tag pages.
var chnArticleExpr = regexp.MustCompile(`-\d{10,}\.chn$`)

// weekdayPrefixExpr strips a leading "Thursday, " style prefix from visible
// publication dates.
var weekdayPrefixExpr = regexp.MustCompile(`^[\p{L}\d_]+,\s*`)

// Registry returns the ordered list of crawled sites. Every definition is
// validated once here; a broken entry is a programming error and fails the
// whole run before any network traffic.
func Registry() ([]crawler.Site, error) {
	sites := []crawler.Site{
		{
			Name:          "CafeF",
			SitemapRoots:  []string{"https://cafef.vn/sitemap.xml"},
			TitleSelector: "h1.title, h1.title-top-focus",
			TimeSelector:  "span.pdate, span.time-top-focus, span.date, span.time-source-detail",
			ParseDate:     parseCafeFDate,
			AcceptURL:     chnArticleExpr.MatchString,
		},
		{
			Name:          "CafeBiz",
			SitemapRoots:  []string{"https://cafebiz.vn/sitemap.xml"},
			TitleSelector: "h1.title, h1.title-top-focus",
			TimeSelector:  "span.time, span.pdate, span.time-top-focus, span.date",
			ParseDate:     parseCafeBizDate,
			AcceptURL:     chnArticleExpr.MatchString,
		},
		{
			Name:          "Vietstock",
			SitemapRoots:  []string{"https://vietstock.vn/sitemap.xml"},
			TitleSelector: "h1.article-title",
			TimeSelector:  "span.date",
			ParseDate:     layoutParser("02/01/2006 15:04"),
		},
		{
			Name:          "VnEconomy",
			SitemapRoots:  []string{"https://vneconomy.vn/sitemap.xml"},
			TitleSelector: "h1.name-detail",
			TimeSelector:  "p.date",
			ParseDate:     layoutParser("02/01/2006, 15:04"),
		},
		{
			Name:          "Bao Dau tu",
			SitemapRoots:  []string{"https://baodautu.vn/sitemap.xml"},
			TitleSelector: "div.title-detail",
			TimeSelector:  "span.post-time",
			ParseDate:     parseBaoDauTuDate,
		},
		{
			Name:          "Nha dau tu",
			SitemapRoots:  []string{"https://nhadautu.vn/sitemap.xml"},
			TitleSelector: "h1#title_detail_check",
			TimeSelector:  "div.t.mr-3",
			ParseDate:     layoutParser("15:04 02/01/2006"),
		},
		{
			Name:          "Tin nhanh chung khoan",
			SitemapRoots:  []string{"https://www.tinnhanhchungkhoan.vn/sitemap.xml"},
			TitleSelector: "h1.article__header.cms-title",
			TimeSelector:  "time.time",
			ParseDate:     layoutParser("02/01/2006 15:04"),
		},
		{
			Name:          "Thoi bao tai chinh",
			SitemapRoots:  []string{"https://thoibaotaichinhvietnam.vn/sitemap_site_1.xml"},
			TitleSelector: "h1.post-title",
			TimeSelector:  "span.format_date",
			ParseDate:     layoutParser("02/01/2006"),
		},
		{
			Name:          "Kinh te do thi",
			SitemapRoots:  []string{"https://kinhtedothi.vn/sitemap.xml"},
			TitleSelector: "h1.article-title",
			TimeSelector:  "div.article-published-on",
			ParseDate:     parseKinhTeDoThiDate,
		},
	}

	validate := validator.New()
	for _, site := range sites {
		if err := validate.Struct(site); err != nil {
			return nil, fmt.Errorf("site %s: %w", site.Name, err)
		}
		if site.ParseDate == nil {
			return nil, fmt.Errorf("site %s: missing date parser", site.Name)
		}
	}

	return sites, nil
}

// layoutParser covers the sites with a single fixed visible date format.
func layoutParser(layout string) crawler.DateParser {
	return func(raw string) (time.Time, error) {
		return time.Parse(layout, strings.TrimSpace(raw))
	}
}

// CafeF renders either "25-03-2025 - 14:30 PM" or "25/03/2025 14:30",
// sometimes with a relative-time suffix in parentheses.
func parseCafeFDate(raw string) (time.Time, error) {
	clean, _, _ := strings.Cut(raw, " (")
	clean = strings.TrimSpace(clean)
	if ts, err := time.Parse("02-01-2006 - 15:04 PM", clean); err == nil {
		return ts, nil
	}
	return time.Parse("02/01/2006 15:04", clean)
}

// CafeBiz uses the slash form of the CafeF formats.
func parseCafeBizDate(raw string) (time.Time, error) {
	clean, _, _ := strings.Cut(raw, " (")
	clean = strings.TrimSpace(clean)
	if ts, err := time.Parse("02/01/2006 15:04 PM", clean); err == nil {
		return ts, nil
	}
	return time.Parse("02/01/2006 15:04", clean)
}

// Bao Dau tu pads its date with dash/space decoration.
func parseBaoDauTuDate(raw string) (time.Time, error) {
	return time.Parse("02/01/2006 15:04", strings.Trim(raw, " -"))
}

// Kinh te do thi prefixes the date with the weekday name.
func parseKinhTeDoThiDate(raw string) (time.Time, error) {
	clean := weekdayPrefixExpr.ReplaceAllString(strings.TrimSpace(raw), "")
	return time.Parse("15:04 02/01/2006", clean)
}
