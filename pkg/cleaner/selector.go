package cleaner

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"
	"golang.org/x/net/html"

	"github.com/jmylchreest/docclean/internal/logger"
	"github.com/jmylchreest/docclean/pkg/cleaner/dom"
)

// SelectorCleaner removes elements matching user-defined CSS selectors.
// Elements matching a keep selector survive even when a remove selector
// matches them.
type SelectorCleaner struct {
	remove []compiledSelector
	keep   []cascadia.Selector

	removed int
}

type compiledSelector struct {
	raw string
	sel cascadia.Selector
}

// NewSelector compiles the remove and keep selectors.
func NewSelector(remove, keep []string) (*SelectorCleaner, error) {
	c := &SelectorCleaner{}
	for _, raw := range remove {
		sel, err := cascadia.Compile(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid remove selector %q: %w", raw, err)
		}
		c.remove = append(c.remove, compiledSelector{raw: raw, sel: sel})
	}
	for _, raw := range keep {
		sel, err := cascadia.Compile(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid keep selector %q: %w", raw, err)
		}
		c.keep = append(c.keep, sel)
	}
	return c, nil
}

// Clean parses markup, removes matching elements and renders the body.
func (c *SelectorCleaner) Clean(markup string) (string, error) {
	doc, err := dom.ParseString(markup)
	if err != nil {
		return "", err
	}
	out, err := dom.Render(c.CleanDocument(doc))
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}

// CleanDocument removes matching elements from doc.
func (c *SelectorCleaner) CleanDocument(doc *goquery.Document) *goquery.Document {
	c.removed = 0
	for _, rs := range c.remove {
		matches := doc.FindMatcher(rs.sel)
		count := 0
		for _, n := range append([]*html.Node(nil), matches.Nodes...) {
			if !dom.Attached(n) || c.shouldKeep(n) {
				continue
			}
			dom.Detach(n)
			count++
		}
		if count > 0 {
			logger.Debug("removed by selector", "selector", rs.raw, "count", count)
		}
		c.removed += count
	}
	return doc
}

// Removed returns how many elements the last run removed.
func (c *SelectorCleaner) Removed() int {
	return c.removed
}

func (c *SelectorCleaner) shouldKeep(n *html.Node) bool {
	for _, sel := range c.keep {
		if sel.Match(n) {
			return true
		}
	}
	return false
}

// Name returns the cleaner type.
func (c *SelectorCleaner) Name() string {
	return "selector"
}
