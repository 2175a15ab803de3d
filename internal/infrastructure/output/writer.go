package output

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"FinNewsScanner/internal/domain"
)

// JSONWriter dumps the aggregated records to a file, or to stdout when the
// path is "-". Keeping output at the edge leaves the crawl core free of any
// persistence concern.
type JSONWriter struct {
	path string
}

// NewJSONWriter builds a writer for the given destination path.
func NewJSONWriter(path string) *JSONWriter {
	return &JSONWriter{path: path}
}

// Save writes the records as pretty-printed JSON in aggregation order.
func (w *JSONWriter) Save(_ context.Context, articles []domain.Article) error {
	if articles == nil {
		articles = []domain.Article{}
	}

	data, err := json.MarshalIndent(articles, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal articles: %w", err)
	}

	if w.path == "-" {
		_, err = os.Stdout.Write(append(data, '\n'))
		return err
	}
	if err := os.WriteFile(w.path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", w.path, err)
	}
	return nil
}
