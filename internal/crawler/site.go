package crawler

import "time"

// DateParser turns a site's visible date string into a naive timestamp in
// the site's local convention. The extractor anchors the result at ICT.
type DateParser func(string) (time.Time, error)

// Site describes one news source: where its sitemaps live and how to pull
// title and publication time out of its article markup. Values are built
// once by the registry and never mutated.
type Site struct {
	Name          string   `validate:"required"`
	TitleSelector string   `validate:"required"`
	TimeSelector  string   `validate:"required"`
	SitemapRoots  []string `validate:"required,min=1,dive,url"`

	// ParseDate handles the site's visible date format(s); required.
	ParseDate DateParser `validate:"-"`

	// AcceptURL optionally narrows walked URLs to article-shaped ones
	// before any fetch. Nil accepts everything.
	AcceptURL func(string) bool `validate:"-"`
}
