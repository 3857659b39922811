package cleaner

import "github.com/PuerkitoBio/goquery"

// NoopCleaner passes content through without modification.
// In a chain it still costs one parse and render, so it shows what
// serialization alone does to a document.
type NoopCleaner struct{}

// NewNoop creates a new no-op cleaner.
func NewNoop() *NoopCleaner {
	return &NoopCleaner{}
}

// Clean returns the input unchanged.
func (c *NoopCleaner) Clean(html string) (string, error) {
	return html, nil
}

// CleanDocument returns doc unchanged.
func (c *NoopCleaner) CleanDocument(doc *goquery.Document) *goquery.Document {
	return doc
}

// Name returns the cleaner type.
func (c *NoopCleaner) Name() string {
	return "noop"
}
