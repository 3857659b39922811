package cleaner

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/jmylchreest/docclean/internal/logger"
	"github.com/jmylchreest/docclean/pkg/cleaner/dom"
)

// ChainCleaner applies multiple document cleaners in sequence.
// The markup is parsed once, every cleaner works on the same tree, and the
// result is rendered once.
type ChainCleaner struct {
	cleaners []DocumentCleaner
}

// NewChain creates a new cleaner that applies multiple cleaners in sequence.
// Cleaners are applied in the order provided.
//
// Example:
//
//	sel, err := cleaner.NewSelector([]string{".newsletter"}, nil)
//	if err != nil {
//	    return err
//	}
//	chain := cleaner.NewChain(sel, boilerplate.New(boilerplate.PresetAll()))
func NewChain(cleaners ...DocumentCleaner) *ChainCleaner {
	return &ChainCleaner{
		cleaners: cleaners,
	}
}

// Clean parses content, applies all cleaners and renders the body.
func (c *ChainCleaner) Clean(content string) (string, error) {
	if len(c.cleaners) == 0 {
		return content, nil
	}

	doc, err := dom.ParseString(content)
	if err != nil {
		return "", fmt.Errorf("%s: %w", c.Name(), err)
	}
	doc = c.CleanDocument(doc)

	out, err := dom.Render(doc)
	if err != nil {
		return "", fmt.Errorf("%s: rendering: %w", c.Name(), err)
	}
	return strings.TrimSpace(out), nil
}

// CleanDocument applies all cleaners to doc in order.
func (c *ChainCleaner) CleanDocument(doc *goquery.Document) *goquery.Document {
	for _, cl := range c.cleaners {
		logger.Debug("applying cleaner", "cleaner", cl.Name())
		doc = cl.CleanDocument(doc)
	}
	return doc
}

// Name returns the names of all chained cleaners.
func (c *ChainCleaner) Name() string {
	names := make([]string, len(c.cleaners))
	for i, cl := range c.cleaners {
		names[i] = cl.Name()
	}
	return "chain(" + strings.Join(names, "->") + ")"
}
