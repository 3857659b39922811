package boilerplate

import (
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"
	"golang.org/x/net/html"

	"github.com/jmylchreest/docclean/internal/logger"
	"github.com/jmylchreest/docclean/pkg/cleaner"
	"github.com/jmylchreest/docclean/pkg/cleaner/dom"
)

var (
	_ cleaner.Cleaner         = (*Cleaner)(nil)
	_ cleaner.DocumentCleaner = (*Cleaner)(nil)
)

// Cleaner runs the enabled stages over a document in a fixed order.
// A Cleaner holds no per-document state and may be reused; a single
// document must not be cleaned from two goroutines at once.
type Cleaner struct {
	config *Config
	flags  Flags

	extra    []attrPattern
	keep     []cascadia.Selector
	setupErr []Warning

	last *Result
}

// Clean runs the stages enabled in flags over doc and returns doc.
// Stages whose flag is absent are skipped.
func Clean(doc *goquery.Document, flags Flags) *goquery.Document {
	return New(ConfigFromFlags(flags)).CleanDocument(doc)
}

// New creates a new Cleaner with the given configuration.
// If config is nil, DefaultConfig() is used. Extra patterns or keep selectors
// that fail to compile are reported as warnings on every run and skipped.
func New(config *Config) *Cleaner {
	if config == nil {
		config = DefaultConfig()
	}
	c := &Cleaner{
		config: config,
		flags:  config.Flags(),
	}

	for _, expr := range config.ExtraPatterns {
		re, err := regexp.Compile(expr)
		if err != nil {
			logger.Warn("skipping extra boilerplate pattern", "pattern", expr, "error", err)
			c.setupErr = append(c.setupErr, Warning{Phase: "extra_patterns", Message: "pattern does not compile: " + err.Error(), Context: expr})
			continue
		}
		c.extra = append(c.extra, attrPattern{name: expr, re: re})
	}
	for _, sel := range config.KeepSelectors {
		m, err := cascadia.Compile(sel)
		if err != nil {
			logger.Warn("skipping keep selector", "selector", sel, "error", err)
			c.setupErr = append(c.setupErr, Warning{Phase: "bad_tags", Message: "selector does not parse: " + err.Error(), Context: sel})
			continue
		}
		c.keep = append(c.keep, m)
	}

	return c
}

// Name returns the cleaner name for logging.
func (c *Cleaner) Name() string {
	return "boilerplate"
}

// Flags returns the enabled stage set.
func (c *Cleaner) Flags() Flags {
	return c.flags
}

// Stats returns the stats from the last run, or nil before the first.
func (c *Cleaner) Stats() *Stats {
	if c.last == nil {
		return nil
	}
	return c.last.Stats
}

// LastResult returns the stats and warnings of the last run. Content is only
// set when the run went through Clean or CleanWithStats.
func (c *Cleaner) LastResult() *Result {
	return c.last
}

// CleanDocument mutates doc in place and returns it.
func (c *Cleaner) CleanDocument(doc *goquery.Document) *goquery.Document {
	c.Transform(doc)
	return doc
}

// Transform mutates doc in place and reports what was done.
func (c *Cleaner) Transform(doc *goquery.Document) *Result {
	result := newResult()
	result.Warnings = append(result.Warnings, c.setupErr...)

	start := time.Now()
	c.transform(doc, result)
	result.Stats.TransformDuration = time.Since(start)
	result.Stats.TotalDuration = result.Stats.TransformDuration
	c.last = result

	return result
}

// Clean parses html, runs the pipeline and renders the body.
// This method implements the cleaner.Cleaner interface.
func (c *Cleaner) Clean(markup string) (string, error) {
	result := c.CleanWithStats(markup)
	// Graceful degradation: the original content comes back on failure.
	return result.Content, nil
}

// CleanWithStats performs cleaning and returns detailed stats.
func (c *Cleaner) CleanWithStats(markup string) *Result {
	startTime := time.Now()
	result := newResult()
	result.Stats.InputBytes = len(markup)
	result.Warnings = append(result.Warnings, c.setupErr...)

	parseStart := time.Now()
	doc, err := dom.ParseString(markup)
	result.Stats.ParseDuration = time.Since(parseStart)

	if err != nil {
		result.Content = markup
		result.Error = err
		result.AddWarning("parse", "HTML parse failed, returning original", err.Error())
		result.Stats.OutputBytes = len(markup)
		result.Stats.TotalDuration = time.Since(startTime)
		c.last = result
		return result
	}

	transformStart := time.Now()
	c.transform(doc, result)
	result.Stats.TransformDuration = time.Since(transformStart)

	outputStart := time.Now()
	output, err := dom.Render(doc)
	result.Stats.OutputDuration = time.Since(outputStart)

	if err != nil {
		result.Content = markup
		result.Error = err
		result.AddWarning("output", "Output generation failed, returning original", err.Error())
		result.Stats.OutputBytes = len(markup)
	} else {
		result.Content = strings.TrimSpace(output)
		result.Stats.OutputBytes = len(result.Content)
	}

	result.Stats.TotalDuration = time.Since(startTime)
	c.last = result

	return result
}

// transform applies the stage table to the document.
func (c *Cleaner) transform(doc *goquery.Document, result *Result) {
	for _, st := range pipeline {
		enabled := c.flags.Has(st.flag)
		phase := result.Stats.AddPhase(st.name, enabled)
		if !enabled {
			continue
		}

		p := &pass{doc: doc, flags: c.flags, result: result, phase: phase}
		begin := time.Now()
		st.run(c, p)
		phase.Duration = time.Since(begin)

		logger.Debug("stage complete",
			"stage", st.name,
			"removed", phase.ElementsRemoved,
			"duration", phase.Duration,
		)
	}

	result.Stats.ElementsKept = doc.Find("*").Length()
}

// shouldKeep reports whether a keep selector protects n.
func (c *Cleaner) shouldKeep(n *html.Node) bool {
	for _, m := range c.keep {
		if m.Match(n) {
			return true
		}
	}
	return false
}

// pass is the state of one stage run over one document.
type pass struct {
	doc    *goquery.Document
	flags  Flags
	result *Result
	phase  *PhaseStats
}

// remove detaches n and records it. It reports false for nodes that are no
// longer part of the document.
func (p *pass) remove(n *html.Node) bool {
	if !dom.Attached(n) {
		return false
	}
	dom.Detach(n)
	p.removed(n)
	return true
}

func (p *pass) removed(n *html.Node) {
	tag := n.Data
	if n.Type == html.CommentNode {
		tag = "#comment"
	}
	p.phase.ElementsRemoved++
	p.phase.Details[tag]++
	if n.Type == html.CommentNode {
		p.result.Stats.CommentsRemoved++
		return
	}
	p.result.Stats.RecordRemoval(tag)
}

// skip logs and records a node the stage could not process.
func (p *pass) skip(n *html.Node, reason string) {
	ctx := dom.Describe(n)
	logger.Debug("skipping node", "stage", p.phase.Name, "node", ctx, "reason", reason)
	p.result.AddWarning(p.phase.Name, reason, ctx)
}

// nodes returns a snapshot of the nodes matched by selector.
func (p *pass) nodes(selector string) []*html.Node {
	sel := p.doc.Find(selector)
	return append([]*html.Node(nil), sel.Nodes...)
}

// removeAll removes every element matched by selector.
func (p *pass) removeAll(selector string) {
	for _, n := range p.nodes(selector) {
		p.remove(n)
	}
}
