package boilerplate

import (
	"strings"

	"golang.org/x/net/html"

	"github.com/jmylchreest/docclean/pkg/cleaner/dom"
)

func (c *Cleaner) cleanHeader(p *pass) { p.removeAll("header") }
func (c *Cleaner) cleanFooter(p *pass) { p.removeAll("footer") }
func (c *Cleaner) cleanForm(p *pass)   { p.removeAll("form") }
func (c *Cleaner) cleanHr(p *pass)     { p.removeAll("hr") }
func (c *Cleaner) cleanAside(p *pass)  { p.removeAll("aside") }
func (c *Cleaner) cleanCode(p *pass)   { p.removeAll("code") }

// cleanScriptAndStyles removes scripts, inline styles and linked stylesheets.
func (c *Cleaner) cleanScriptAndStyles(p *pass) {
	p.removeAll("script")
	p.removeAll("style")
	for _, n := range p.nodes("link[rel]") {
		if rel, _ := dom.Attr(n, "rel"); strings.EqualFold(strings.TrimSpace(rel), "stylesheet") {
			p.remove(n)
		}
	}
}

// cleanComments walks the whole tree and drops every comment node. After a
// removal the walk resumes at the sibling that took the comment's place.
func (c *Cleaner) cleanComments(p *pass) {
	for _, root := range p.doc.Nodes {
		p.dropComments(root)
	}
}

func (p *pass) dropComments(n *html.Node) {
	for child := n.FirstChild; child != nil; {
		next := child.NextSibling
		if child.Type == html.CommentNode {
			n.RemoveChild(child)
			p.removed(child)
		} else {
			p.dropComments(child)
		}
		child = next
	}
}

// cleanClearfix removes empty clearfix elements nested in a div. Fallback
// content becomes a div later in the pipeline, so it is covered here too.
func (c *Cleaner) cleanClearfix(p *pass) {
	selector := "div .clearfix"
	if p.flags.Has(NoscriptToDiv) {
		selector += ", noscript .clearfix"
	}
	for _, n := range p.nodes(selector) {
		if dom.Text(n) == "" {
			p.remove(n)
		}
	}
}

// cleanEmptyP removes paragraphs with no child nodes at all.
func (c *Cleaner) cleanEmptyP(p *pass) {
	p.removeEmpty("p")
}

func (c *Cleaner) cleanEmptyH(p *pass) {
	p.removeEmpty("h2, h3, h4, h5, h6")
}

// removeEmpty removes matches without children, innermost first.
func (p *pass) removeEmpty(selector string) {
	nodes := p.nodes(selector)
	for i := len(nodes) - 1; i >= 0; i-- {
		n := nodes[i]
		if n.FirstChild == nil && strings.TrimSpace(dom.Text(n)) == "" {
			p.remove(n)
		}
	}
}
