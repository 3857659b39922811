package boilerplate

import (
	"strings"

	"golang.org/x/net/html"

	"github.com/jmylchreest/docclean/pkg/cleaner/dom"
)

// dropCapSelector uses the cascadia attribute-regex extension.
const dropCapSelector = `span[class#=(dropcap|drop_cap)]`

func (c *Cleaner) fontToSpan(p *pass) {
	for _, n := range p.nodes("font") {
		p.rename(n, "span")
	}
}

// noscriptToDiv renames <noscript> to <div>. Fallback content that the
// parser kept as raw text is parsed into elements.
func (c *Cleaner) noscriptToDiv(p *pass) {
	for _, n := range p.nodes("noscript") {
		div := p.rename(n, "div")
		if div == nil {
			continue
		}
		if kid := div.FirstChild; kid != nil && kid == div.LastChild &&
			kid.Type == html.TextNode && strings.Contains(kid.Data, "<") {
			if err := dom.SetInnerHTML(div, kid.Data); err != nil {
				p.skip(div, "parsing noscript content: "+err.Error())
			}
		}
	}
}

func (c *Cleaner) cleanDropCaps(p *pass) {
	for _, n := range p.nodes(dropCapSelector) {
		p.unwrap(n)
	}
}

func (c *Cleaner) cleanSpanInP(p *pass) {
	for _, n := range p.nodes("span") {
		if dom.IsElement(n.Parent, "p") {
			p.unwrap(n)
		}
	}
}

// cleanEmTags unwraps emphasis. An <em> holding an image is usually a
// caption and stays. Text left directly inside a div is gathered into a
// paragraph again when DivToP is on, as div_to_p has already run.
func (c *Cleaner) cleanEmTags(p *pass) {
	for _, n := range p.nodes("em") {
		if hasDescendant(n, "img") {
			continue
		}
		parent := n.Parent
		p.unwrap(n)
		if p.flags.Has(DivToP) && dom.IsElement(parent, "div") && dom.Attached(parent) {
			c.convertDiv(p, parent)
		}
	}
}

func hasDescendant(n *html.Node, tag string) bool {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if dom.IsElement(c, tag) || hasDescendant(c, tag) {
			return true
		}
	}
	return false
}

// rename swaps n for a new element named tag that owns its children.
func (p *pass) rename(n *html.Node, tag string) *html.Node {
	if !dom.Attached(n) {
		return nil
	}
	el, err := dom.Rename(n, tag)
	if err != nil {
		p.skip(n, "renaming to <"+tag+">: "+err.Error())
		return nil
	}
	p.result.Stats.ElementsRenamed++
	p.phase.Details[n.Data]++
	return el
}

// unwrap replaces n with a text node holding its text, joined with the
// text around it. Elements without text leave nothing behind.
func (p *pass) unwrap(n *html.Node) {
	if !dom.Attached(n) {
		return
	}
	if dom.Text(n) == "" {
		prev, next := n.PrevSibling, n.NextSibling
		dom.Detach(n)
		if prev != nil && prev.Type == html.TextNode {
			joinText(prev)
		} else {
			joinText(next)
		}
	} else {
		t, err := dom.ReplaceWithText(n)
		if err != nil {
			p.skip(n, "unwrapping: "+err.Error())
			return
		}
		joinText(t)
	}
	p.result.Stats.ElementsUnwrapped++
	p.phase.Details[n.Data]++
}

// joinText merges the text siblings of t into t, so the tree matches what
// a parser would build from the same markup.
func joinText(t *html.Node) {
	if t == nil || t.Type != html.TextNode || t.Parent == nil {
		return
	}
	for prev := t.PrevSibling; prev != nil && prev.Type == html.TextNode; prev = t.PrevSibling {
		t.Data = prev.Data + t.Data
		t.Parent.RemoveChild(prev)
	}
	for next := t.NextSibling; next != nil && next.Type == html.TextNode; next = t.NextSibling {
		t.Data += next.Data
		t.Parent.RemoveChild(next)
	}
}
