package boilerplate

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"github.com/jmylchreest/docclean/pkg/cleaner/dom"
)

// brRunMarkup matches two or more serialized <br> tags and the whitespace
// between them.
var brRunMarkup = regexp.MustCompile(`(<br[^>]*>[ \n\r\t]*){2,}`)

// brRun selects every <br> that directly follows another <br>.
type brRun struct{}

var _ goquery.Matcher = brRun{}

func (brRun) Match(n *html.Node) bool { return isBrRun(n) }

func (m brRun) MatchAll(n *html.Node) []*html.Node {
	var out []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if m.Match(n) {
			out = append(out, n)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return out
}

func (m brRun) Filter(nodes []*html.Node) []*html.Node {
	var out []*html.Node
	for _, n := range nodes {
		if m.Match(n) {
			out = append(out, n)
		}
	}
	return out
}

func (p *pass) brRuns() []*html.Node {
	return append([]*html.Node(nil), p.doc.FindMatcher(brRun{}).Nodes...)
}

// wrapDoubleBrParents makes sure every <br> run sits inside a paragraph,
// then writes the markup of its container back to itself.
func (c *Cleaner) wrapDoubleBrParents(p *pass) {
	for _, br := range p.brRuns() {
		if !dom.Attached(br) {
			continue
		}
		target := enclosingParagraph(br)
		if target == nil {
			target = br.Parent
			if !unwrappable[target.Data] {
				if _, err := dom.Wrap(target, "p"); err != nil {
					p.skip(target, "wrapping line breaks: "+err.Error())
					continue
				}
				p.phase.Details["wrapped"]++
			}
		}
		inner, err := dom.InnerHTML(target)
		if err != nil {
			p.skip(target, "serializing: "+err.Error())
			continue
		}
		if err := dom.SetInnerHTML(target, inner); err != nil {
			p.skip(target, err.Error())
		}
	}
}

// splitDoubleBrs turns each <br> run into a paragraph boundary.
func (c *Cleaner) splitDoubleBrs(p *pass) {
	for _, br := range p.brRuns() {
		if !dom.Attached(br) {
			continue
		}
		target := enclosingParagraph(br)
		if target == nil {
			target = br.Parent
		}

		inner, err := dom.InnerHTML(target)
		if err != nil {
			p.skip(target, "serializing: "+err.Error())
			continue
		}
		if !strings.HasPrefix(inner, "<p>") {
			inner = "<p>" + inner
		}
		inner = brRunMarkup.ReplaceAllString(inner, "</p><p>")

		paras, err := c.splitInto(target, inner)
		if err != nil {
			p.skip(target, "splitting line breaks: "+err.Error())
			continue
		}
		for _, para := range paras {
			if para.FirstChild == nil {
				p.remove(para)
				continue
			}
			p.result.Stats.ParagraphsCreated++
			c.settleParagraph(p, para)
		}
	}
}

// splitInto writes markup to target and returns the paragraphs it produced.
// A paragraph target is replaced by its pieces; any other target keeps them
// as children.
func (c *Cleaner) splitInto(target *html.Node, markup string) ([]*html.Node, error) {
	if dom.IsElement(target, "p") {
		nodes, err := dom.ParseFragment(markup, target.Parent)
		if err != nil {
			return nil, err
		}
		if err := dom.ReplaceWith(target, nodes...); err != nil {
			return nil, err
		}
		return paragraphs(nodes), nil
	}
	if err := dom.SetInnerHTML(target, markup); err != nil {
		return nil, err
	}
	return paragraphs(dom.Children(target)), nil
}

func paragraphs(nodes []*html.Node) []*html.Node {
	var out []*html.Node
	for _, n := range nodes {
		if dom.IsElement(n, "p") {
			out = append(out, n)
		}
	}
	return out
}

// enclosingParagraph returns the nearest <p> reachable from n through
// phrasing ancestors only, or nil.
func enclosingParagraph(n *html.Node) *html.Node {
	for a := n.Parent; a != nil && a.Type == html.ElementNode; a = a.Parent {
		if a.Data == "p" {
			return a
		}
		if !phrasing[a.Data] {
			return nil
		}
	}
	return nil
}

// unwrappable lists containers a <p> may not wrap: the document root and
// table and list parts, whose parents only accept specific children.
var unwrappable = map[string]bool{
	"html": true, "body": true,
	"table": true, "caption": true, "thead": true, "tbody": true, "tfoot": true,
	"tr": true, "td": true, "th": true,
	"ul": true, "ol": true, "li": true, "dl": true, "dt": true, "dd": true,
}

var phrasing = map[string]bool{
	"a": true, "abbr": true, "b": true, "bdi": true, "bdo": true, "cite": true,
	"data": true, "dfn": true, "em": true, "font": true, "i": true, "kbd": true,
	"label": true, "mark": true, "q": true, "s": true, "small": true, "span": true,
	"strike": true, "strong": true, "sub": true, "sup": true, "time": true,
	"tt": true, "u": true, "var": true,
}
