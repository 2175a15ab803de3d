package domain

import "time"

// Article is the normalized record produced for one matched news page. It
// is only ever constructed with both Title and PublishedAt resolved and the
// timestamp inside the collection window, and is never mutated afterwards.
type Article struct {
	Source      string    `json:"source"`
	URL         string    `json:"url"`
	Title       string    `json:"title"`
	PublishedAt time.Time `json:"timestamp"`
}
