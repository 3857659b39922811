package boilerplate

import (
	"regexp"
	"strings"

	"golang.org/x/net/html"

	"github.com/jmylchreest/docclean/internal/logger"
	"github.com/jmylchreest/docclean/pkg/cleaner/dom"
)

// blocklist matches id, class and name values of navigation, ads, social
// widgets, comment threads and similar page furniture. Matching is case
// sensitive and unanchored unless a token says otherwise.
const blocklist = `^side$|combx|retweet|menucontainer|navbar|^comment$|^commentContent$|^comment-body$|PopularQuestions|contact|foot|footer|Footer|footnote|cnn_strycaptiontxt|links|meta$|scroll|shoutbox|sponsor` +
	`|tags|socialnetworking|socialNetworking|cnnStryHghLght|cnn_stryspcvbx|^inset$|pagetools|post-attributes|welcome_form|contentTools2|the_answers` +
	`|communitypromo|runaroundLeft|^subscribe$|vcard|articleheadings|^date$|^print$|popup|tools|socialtools|byline|konafilter|KonaFilter|breadcrumb|^fn$|wp-caption-text|^column c160 left mb max$|^FL$` +
	`|^job_inner_tab_content$|^newsItem newsMagazine$|^newsItem newsOnline$|^float$|^mod-featured-title$|^below$|^quotePeekContainer$` +
	`|^header|header$|^menu|.*trending.*|^ads|_ad$|_ads$|^ad-|promo$|^promo|^survey|^related|related$|^login|login$|^register|register$|^signup|signup$|^search|search$|^notice|^notif|^action|^form` +
	`|^sharing|^share|sharing$|share$|back-to-top|^nav|control|relatedposts|.*_related|switch|^btn|sidebar|bottom|komentar|newsmore|button|sosmed|bacajuga|topiksisip|banner` +
	`|dtk-comment|clearfik|newstag|right_det`

// attrPattern is a compiled attribute-value pattern. A pattern that failed
// to compile keeps its error and its pass is skipped.
type attrPattern struct {
	name string
	re   *regexp.Regexp
	err  error
}

func compilePattern(name, expr string) attrPattern {
	re, err := regexp.Compile(expr)
	return attrPattern{name: name, re: re, err: err}
}

func (ap attrPattern) match(n *html.Node, key string) bool {
	v, ok := dom.Attr(n, key)
	return ok && ap.re.MatchString(v)
}

var (
	blocklistPattern = compilePattern("blocklist", blocklist)

	captionPattern  = compilePattern("caption", `^caption$`)
	googlePattern   = compilePattern("google", ` google `)
	entriesPattern  = compilePattern("entries", `^[^entry-]more.*$`)
	facebookPattern = compilePattern("facebook", `[^-]facebook`)
	twitterPattern  = compilePattern("twitter", `[^-]twitter`)
)

// cleanBadTags removes blocklisted elements strictly inside <body>, matching
// on id, then class, then name.
func (c *Cleaner) cleanBadTags(p *pass) {
	if blocklistPattern.err != nil {
		c.patternFailed(p, blocklistPattern)
		return
	}
	inside := p.nodes("body *")
	for _, key := range []string{"id", "class", "name"} {
		for _, n := range matching(inside, blocklistPattern, key) {
			c.removeUnguarded(p, n)
		}
	}
}

// regexPass builds a stage that removes id and class matches of ap anywhere
// in the document.
func regexPass(ap attrPattern) func(*Cleaner, *pass) {
	return func(c *Cleaner, p *pass) {
		c.removeMatching(p, ap)
	}
}

func (c *Cleaner) cleanExtraPatterns(p *pass) {
	for _, ap := range c.extra {
		c.removeMatching(p, ap)
	}
}

func (c *Cleaner) removeMatching(p *pass, ap attrPattern) {
	if ap.err != nil {
		c.patternFailed(p, ap)
		return
	}
	all := p.nodes("*")
	for _, key := range []string{"id", "class"} {
		for _, n := range matching(all, ap, key) {
			if n.Data == "html" || n.Data == "body" {
				continue
			}
			c.removeUnguarded(p, n)
		}
	}
}

func (c *Cleaner) patternFailed(p *pass, ap attrPattern) {
	logger.Warn("boilerplate pattern unavailable, skipping pass", "pattern", ap.name, "error", ap.err)
	p.result.AddWarning(p.phase.Name, "pattern does not compile: "+ap.err.Error(), ap.name)
}

// matching filters nodes whose key attribute matches ap. The result is a
// new slice.
func matching(nodes []*html.Node, ap attrPattern, key string) []*html.Node {
	var out []*html.Node
	for _, n := range nodes {
		if ap.match(n, key) {
			out = append(out, n)
		}
	}
	return out
}

// removeUnguarded removes n unless it is protected by a keep selector or by
// its own content.
func (c *Cleaner) removeUnguarded(p *pass, n *html.Node) {
	if !dom.Attached(n) {
		return
	}
	if c.shouldKeep(n) || contentGuarded(n) {
		p.result.Stats.GuardedElements++
		p.phase.Details["guarded"]++
		return
	}
	p.remove(n)
}

// contentGuarded reports whether the subtree rooted at n holds an <h1>, a
// <p>, or a run of two <br>.
func contentGuarded(n *html.Node) bool {
	if n.Type == html.ElementNode {
		switch {
		case n.Data == "h1", n.Data == "p":
			return true
		case isBrRun(n):
			return true
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if contentGuarded(c) {
			return true
		}
	}
	return false
}

// isBrRun reports whether n is a <br> whose previous sibling, ignoring
// whitespace-only text, is also a <br>.
func isBrRun(n *html.Node) bool {
	if !dom.IsElement(n, "br") {
		return false
	}
	for s := n.PrevSibling; s != nil; s = s.PrevSibling {
		if s.Type == html.TextNode && isBreakSpace(s.Data) {
			continue
		}
		return dom.IsElement(s, "br")
	}
	return false
}

// isBreakSpace reports whether s holds only the whitespace allowed between
// the <br> tags of a run.
func isBreakSpace(s string) bool {
	return strings.Trim(s, " \n\r\t") == ""
}
