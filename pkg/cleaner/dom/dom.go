// Package dom holds the tree primitives the cleaners are built on: parsing,
// serialization and node surgery over golang.org/x/net/html trees wrapped in
// goquery documents.
//
// Every splice operation checks that the node is still attached to a parent
// and reports ErrDetached otherwise, so callers can skip a node and carry on
// with the rest of the tree.
package dom

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// ErrDetached is returned when a node has no parent to splice into.
var ErrDetached = errors.New("dom: node has no parent")

// Parse reads an HTML document. Scripting is disabled so that the children of
// <noscript> are parsed as elements rather than raw text.
func Parse(r io.Reader) (*goquery.Document, error) {
	root, err := html.ParseWithOptions(r, html.ParseOptionEnableScripting(false))
	if err != nil {
		return nil, fmt.Errorf("parsing html: %w", err)
	}
	return goquery.NewDocumentFromNode(root), nil
}

// ParseString is Parse for an in-memory document.
func ParseString(s string) (*goquery.Document, error) {
	return Parse(strings.NewReader(s))
}

// Render serializes the inner markup of <body>, falling back to the whole
// document when there is no body.
func Render(doc *goquery.Document) (string, error) {
	if body := doc.Find("body"); body.Length() > 0 {
		return InnerHTML(body.Get(0))
	}
	return doc.Html()
}

// InnerHTML serializes the children of n.
func InnerHTML(n *html.Node) (string, error) {
	var buf bytes.Buffer
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if err := html.Render(&buf, c); err != nil {
			return "", err
		}
	}
	return buf.String(), nil
}

// OuterHTML serializes n and its subtree.
func OuterHTML(n *html.Node) (string, error) {
	var buf bytes.Buffer
	if err := html.Render(&buf, n); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// ParseFragment parses markup as the content of context.
func ParseFragment(markup string, context *html.Node) ([]*html.Node, error) {
	return html.ParseFragmentWithOptions(strings.NewReader(markup), context, html.ParseOptionEnableScripting(false))
}

// SetInnerHTML replaces the children of n with markup parsed in the context
// of n.
func SetInnerHTML(n *html.Node, markup string) error {
	nodes, err := ParseFragment(markup, n)
	if err != nil {
		return fmt.Errorf("parsing fragment for <%s>: %w", n.Data, err)
	}
	RemoveChildren(n)
	for _, c := range nodes {
		n.AppendChild(c)
	}
	return nil
}

// NewElement creates a detached element without attributes.
func NewElement(tag string) *html.Node {
	return &html.Node{
		Type:     html.ElementNode,
		Data:     tag,
		DataAtom: atom.Lookup([]byte(tag)),
	}
}

// NewText creates a detached text node.
func NewText(text string) *html.Node {
	return &html.Node{Type: html.TextNode, Data: text}
}

// Text returns the concatenated text content of n and its descendants.
func Text(n *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return sb.String()
}

// IsElement reports whether n is an element with the given tag.
func IsElement(n *html.Node, tag string) bool {
	return n != nil && n.Type == html.ElementNode && n.Data == tag
}

// Attached reports whether n still reaches a document root.
func Attached(n *html.Node) bool {
	for p := n; p != nil; p = p.Parent {
		if p.Type == html.DocumentNode {
			return true
		}
	}
	return false
}

// Children returns a snapshot of the child nodes of n. The slice stays valid
// while the tree is mutated.
func Children(n *html.Node) []*html.Node {
	var kids []*html.Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		kids = append(kids, c)
	}
	return kids
}

// RemoveChildren detaches every child of n.
func RemoveChildren(n *html.Node) {
	for c := n.FirstChild; c != nil; c = n.FirstChild {
		n.RemoveChild(c)
	}
}

// Detach removes n from its parent. It reports false when n was already
// detached.
func Detach(n *html.Node) bool {
	if n.Parent == nil {
		return false
	}
	n.Parent.RemoveChild(n)
	return true
}

// ReplaceWith puts nodes where old was and detaches old. Nodes that are
// currently attached elsewhere are moved.
func ReplaceWith(old *html.Node, nodes ...*html.Node) error {
	parent := old.Parent
	if parent == nil {
		return ErrDetached
	}
	for _, n := range nodes {
		if n == old {
			continue
		}
		if n.Parent != nil {
			n.Parent.RemoveChild(n)
		}
		parent.InsertBefore(n, old)
	}
	parent.RemoveChild(old)
	return nil
}

// ReplaceWithText swaps n for a text node holding its text content.
func ReplaceWithText(n *html.Node) (*html.Node, error) {
	text := NewText(Text(n))
	if err := ReplaceWith(n, text); err != nil {
		return nil, err
	}
	return text, nil
}

// Rename creates an element named tag, moves the children of n into it in
// order and splices it in place of n. Attributes of n are not carried over.
func Rename(n *html.Node, tag string) (*html.Node, error) {
	if n.Parent == nil {
		return nil, ErrDetached
	}
	el := NewElement(tag)
	for _, c := range Children(n) {
		n.RemoveChild(c)
		el.AppendChild(c)
	}
	if err := ReplaceWith(n, el); err != nil {
		return nil, err
	}
	return el, nil
}

// Wrap inserts a new element named tag in place of n and moves n inside it.
func Wrap(n *html.Node, tag string) (*html.Node, error) {
	parent := n.Parent
	if parent == nil {
		return nil, ErrDetached
	}
	el := NewElement(tag)
	parent.InsertBefore(el, n)
	parent.RemoveChild(n)
	el.AppendChild(n)
	return el, nil
}

// Describe returns a short label such as div#main.story for log context.
func Describe(n *html.Node) string {
	if n == nil {
		return ""
	}
	switch n.Type {
	case html.TextNode:
		return "#text"
	case html.CommentNode:
		return "#comment"
	case html.DocumentNode:
		return "#document"
	}
	var sb strings.Builder
	sb.WriteString(n.Data)
	for _, a := range n.Attr {
		switch a.Key {
		case "id":
			sb.WriteString("#" + a.Val)
		case "class":
			for _, c := range strings.Fields(a.Val) {
				sb.WriteString("." + c)
			}
		}
	}
	return sb.String()
}

// Attr returns the value of the named attribute.
func Attr(n *html.Node, key string) (string, bool) {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}
