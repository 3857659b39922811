package dom

import (
	"errors"
	"strings"
	"testing"

	"golang.org/x/net/html"
)

func mustParse(t *testing.T, s string) *html.Node {
	t.Helper()
	doc, err := ParseString(s)
	if err != nil {
		t.Fatalf("ParseString() error = %v", err)
	}
	return doc.Get(0)
}

func first(t *testing.T, root *html.Node, tag string) *html.Node {
	t.Helper()
	var found *html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if found != nil {
			return
		}
		if IsElement(n, tag) {
			found = n
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)
	if found == nil {
		t.Fatalf("no <%s> in document", tag)
	}
	return found
}

func TestParse_NoscriptChildrenAreElements(t *testing.T) {
	root := mustParse(t, `<html><body><noscript><img src="a.png"></noscript></body></html>`)
	ns := first(t, root, "noscript")
	if ns.FirstChild == nil || !IsElement(ns.FirstChild, "img") {
		t.Fatalf("expected <img> element inside noscript, got %+v", ns.FirstChild)
	}
}

func TestRender(t *testing.T) {
	doc, err := ParseString(`<html><head><title>x</title></head><body><p>Hello</p></body></html>`)
	if err != nil {
		t.Fatal(err)
	}
	got, err := Render(doc)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if got != "<p>Hello</p>" {
		t.Errorf("Render() = %q, want %q", got, "<p>Hello</p>")
	}
}

func TestSetInnerHTML(t *testing.T) {
	root := mustParse(t, `<div id="x">old</div>`)
	div := first(t, root, "div")

	if err := SetInnerHTML(div, "<p>a</p><p>b"); err != nil {
		t.Fatalf("SetInnerHTML() error = %v", err)
	}
	got, _ := InnerHTML(div)
	if got != "<p>a</p><p>b</p>" {
		t.Errorf("InnerHTML() = %q", got)
	}
}

func TestRename(t *testing.T) {
	root := mustParse(t, `<p>x<font size="2">hi <b>there</b></font>y</p>`)
	font := first(t, root, "font")
	kids := Children(font)

	span, err := Rename(font, "span")
	if err != nil {
		t.Fatalf("Rename() error = %v", err)
	}
	if len(span.Attr) != 0 {
		t.Errorf("expected no attributes, got %v", span.Attr)
	}
	got := Children(span)
	if len(got) != len(kids) {
		t.Fatalf("expected %d children, got %d", len(kids), len(got))
	}
	for i := range kids {
		if got[i] != kids[i] {
			t.Errorf("child %d was not moved", i)
		}
	}
	if font.Parent != nil {
		t.Error("old element should be detached")
	}
	out, _ := OuterHTML(first(t, root, "p"))
	if out != "<p>x<span>hi <b>there</b></span>y</p>" {
		t.Errorf("OuterHTML() = %q", out)
	}
}

func TestRename_Detached(t *testing.T) {
	n := NewElement("font")
	if _, err := Rename(n, "span"); !errors.Is(err, ErrDetached) {
		t.Errorf("Rename() error = %v, want ErrDetached", err)
	}
}

func TestWrap(t *testing.T) {
	root := mustParse(t, `<div><span>a</span></div>`)
	span := first(t, root, "span")

	p, err := Wrap(span, "p")
	if err != nil {
		t.Fatalf("Wrap() error = %v", err)
	}
	if span.Parent != p {
		t.Error("span should be inside the wrapper")
	}
	out, _ := OuterHTML(first(t, root, "div"))
	if out != "<div><p><span>a</span></p></div>" {
		t.Errorf("OuterHTML() = %q", out)
	}
}

func TestReplaceWithText(t *testing.T) {
	root := mustParse(t, `<p>a<em>b <i>c</i></em>d</p>`)
	em := first(t, root, "em")

	text, err := ReplaceWithText(em)
	if err != nil {
		t.Fatalf("ReplaceWithText() error = %v", err)
	}
	if text.Data != "b c" {
		t.Errorf("text = %q, want %q", text.Data, "b c")
	}
	out, _ := OuterHTML(first(t, root, "p"))
	if out != "<p>ab cd</p>" {
		t.Errorf("OuterHTML() = %q", out)
	}
}

func TestAttachedAndDetach(t *testing.T) {
	root := mustParse(t, `<div><p><b>x</b></p></div>`)
	p := first(t, root, "p")
	b := first(t, root, "b")

	if !Attached(b) {
		t.Fatal("expected b to be attached")
	}
	if !Detach(p) {
		t.Fatal("Detach() = false, want true")
	}
	if Attached(b) {
		t.Error("descendant of a detached node should not be attached")
	}
	if Detach(p) {
		t.Error("second Detach() should report false")
	}
}

func TestChildren_Snapshot(t *testing.T) {
	root := mustParse(t, `<ul><li>1</li><li>2</li><li>3</li></ul>`)
	ul := first(t, root, "ul")

	kids := Children(ul)
	for _, k := range kids {
		ul.RemoveChild(k)
	}
	if len(kids) != 3 {
		t.Errorf("snapshot changed length: %d", len(kids))
	}
	if ul.FirstChild != nil {
		t.Error("expected empty list")
	}
}

func TestDescribe(t *testing.T) {
	root := mustParse(t, `<div id="main" class="story wide">x</div>`)
	got := Describe(first(t, root, "div"))
	if !strings.HasPrefix(got, "div#main") || !strings.Contains(got, ".story.wide") {
		t.Errorf("Describe() = %q", got)
	}
}
