package boilerplate

import (
	"regexp"
	"strings"

	"golang.org/x/net/html"

	"github.com/jmylchreest/docclean/pkg/cleaner/dom"
)

// blockIndicator finds markup that makes a div more than a paragraph.
// Anchors are inline and do not count: <div>Hello <a href="x">link</a> world</div>
// must become <p>Hello <a href="x">link</a> world</p>.
var blockIndicator = regexp.MustCompile(`(?i)<(blockquote|dl|div|img|ol|p|pre|table|ul)`)

var newlineRun = regexp.MustCompile(`[\r\n]+`)

// divToP flattens divs that hold only inline content into paragraphs and
// gathers loose text inside the remaining divs into synthesized paragraphs.
func (c *Cleaner) divToP(p *pass) {
	for _, div := range p.nodes("div") {
		if dom.Attached(div) {
			c.convertDiv(p, div)
		}
	}
}

// convertDiv flattens or rebuilds a single div. Empty divs are flattened
// too and become empty paragraphs.
func (c *Cleaner) convertDiv(p *pass, div *html.Node) {
	inner, err := dom.InnerHTML(div)
	if err != nil {
		p.skip(div, "serializing div: "+err.Error())
		return
	}
	if !blockIndicator.MatchString(inner) {
		c.flattenDiv(p, div)
		return
	}
	c.rebuildDiv(p, div)
}

// flattenDiv replaces div with a paragraph holding the same children.
func (c *Cleaner) flattenDiv(p *pass, div *html.Node) {
	para, err := dom.Rename(div, "p")
	if err != nil {
		p.skip(div, err.Error())
		return
	}
	p.result.Stats.ParagraphsCreated++
	p.phase.Details["flattened"]++
	c.settleParagraph(p, para)
}

// rebuildDiv walks the children of div, buffering loose text and the
// anchors next to it, and emits the buffer as a paragraph whenever a <p>
// child is reached and once more at the end.
func (c *Cleaner) rebuildDiv(p *pass, div *html.Node) {
	var (
		kids     = dom.Children(div)
		out      = make([]*html.Node, 0, len(kids))
		created  []*html.Node
		absorbed = make(map[*html.Node]bool)
		buf      strings.Builder
	)

	flush := func() {
		if buf.Len() == 0 {
			return
		}
		para := dom.NewElement("p")
		if err := dom.SetInnerHTML(para, buf.String()); err != nil {
			p.skip(div, "building paragraph: "+err.Error())
		} else {
			out = append(out, para)
			created = append(created, para)
		}
		buf.Reset()
	}

	absorb := func(a *html.Node) {
		markup, err := dom.OuterHTML(a)
		if err != nil {
			p.skip(a, "serializing anchor: "+err.Error())
			return
		}
		absorbed[a] = true
		out = without(out, a)
		buf.WriteString(" " + markup + " ")
	}

	for i, kid := range kids {
		switch {
		case absorbed[kid]:
			continue
		case dom.IsElement(kid, "p") && buf.Len() > 0:
			flush()
			out = append(out, kid)
		case kid.Type == html.TextNode:
			text := normalizeText(kid.Data)
			if len(strings.TrimSpace(text)) <= 1 {
				continue
			}
			for _, a := range anchorsBefore(kids, i, absorbed) {
				absorb(a)
			}
			buf.WriteString(html.EscapeString(text))
			for _, a := range anchorsAfter(kids, i, absorbed) {
				absorb(a)
			}
		default:
			out = append(out, kid)
		}
	}
	flush()

	dom.RemoveChildren(div)
	for _, n := range out {
		div.AppendChild(n)
	}

	p.result.Stats.ParagraphsCreated += len(created)
	p.phase.Details["rebuilt"]++
	for _, para := range created {
		c.settleParagraph(p, para)
	}
}

// anchorsBefore returns the run of unabsorbed anchors directly before
// kids[i], in document order.
func anchorsBefore(kids []*html.Node, i int, absorbed map[*html.Node]bool) []*html.Node {
	start := i
	for start > 0 && dom.IsElement(kids[start-1], "a") && !absorbed[kids[start-1]] {
		start--
	}
	return kids[start:i]
}

// anchorsAfter returns the run of unabsorbed anchors directly after kids[i].
func anchorsAfter(kids []*html.Node, i int, absorbed map[*html.Node]bool) []*html.Node {
	end := i + 1
	for end < len(kids) && dom.IsElement(kids[end], "a") && !absorbed[kids[end]] {
		end++
	}
	return kids[i+1 : end]
}

// normalizeText collapses newline runs, strips tabs and blanks out
// whitespace-only text.
func normalizeText(s string) string {
	s = strings.ReplaceAll(s, "\t", "")
	s = newlineRun.ReplaceAllString(s, "\n")
	if strings.TrimSpace(s) == "" {
		return ""
	}
	return s
}

func without(nodes []*html.Node, n *html.Node) []*html.Node {
	for i, m := range nodes {
		if m == n {
			return append(nodes[:i], nodes[i+1:]...)
		}
	}
	return nodes
}

// settleParagraph applies the paragraph-level stages that already ran
// earlier in the pipeline to a paragraph created after them.
func (c *Cleaner) settleParagraph(p *pass, para *html.Node) {
	if p.flags.Has(CleanSpanInP) {
		for _, kid := range dom.Children(para) {
			if dom.IsElement(kid, "span") {
				p.unwrap(kid)
			}
		}
	}
	if p.flags.Has(CleanEmptyP) && para.FirstChild == nil {
		p.remove(para)
	}
}
