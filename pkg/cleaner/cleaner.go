// Package cleaner provides interfaces and implementations for cleaning HTML content.
// Cleaners strip page furniture from markup so that content extraction sees
// the article body.
package cleaner

import "github.com/PuerkitoBio/goquery"

// Cleaner transforms HTML markup into cleaner HTML markup.
type Cleaner interface {
	// Clean transforms the input HTML and returns the cleaned markup.
	Clean(html string) (string, error)

	// Name returns the cleaner type for logging/debugging.
	Name() string
}

// DocumentCleaner mutates an already parsed document in place.
// Implementations return the document they were given.
type DocumentCleaner interface {
	CleanDocument(doc *goquery.Document) *goquery.Document

	// Name returns the cleaner type for logging/debugging.
	Name() string
}
