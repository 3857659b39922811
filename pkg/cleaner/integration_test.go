package cleaner_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jmylchreest/docclean/pkg/cleaner"
	"github.com/jmylchreest/docclean/pkg/cleaner/boilerplate"
)

// readTestdata reads a file from the testdata directory
func readTestdata(t *testing.T, filename string) string {
	t.Helper()
	path := filepath.Join("testdata", filename)
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read testdata %s: %v", filename, err)
	}
	return string(data)
}

func TestChainWithBoilerplate(t *testing.T) {
	html := readTestdata(t, "article.html")

	sel, err := cleaner.NewSelector([]string{".newsletter"}, nil)
	if err != nil {
		t.Fatal(err)
	}
	chain := cleaner.NewChain(sel, boilerplate.New(nil))

	got, err := chain.Clean(html)
	if err != nil {
		t.Fatalf("Clean() error = %v", err)
	}

	contains := []string{
		"<h1>River levels rise after storm</h1>",
		`<p class="standfirst">Flood warnings remain in place along the valley.</p>`,
		"<p>Residents were told",
		"<span>Environment Agency</span>",
	}
	excludes := []string{
		"The Courier",
		"Sport",
		"morning briefing",
		"Share this story",
		"<form",
		"track(",
		"<font",
	}

	for _, s := range contains {
		if !strings.Contains(got, s) {
			t.Errorf("expected output to contain %q, got:\n%s", s, got)
		}
	}
	for _, s := range excludes {
		if strings.Contains(got, s) {
			t.Errorf("expected output to NOT contain %q, got:\n%s", s, got)
		}
	}

	if chain.Name() != "chain(selector->boilerplate)" {
		t.Errorf("Name() = %q", chain.Name())
	}
}

func TestBoilerplateImplementsCleaner(t *testing.T) {
	var c cleaner.Cleaner = cleaner.NewPretty(boilerplate.New(nil))
	got, err := c.Clean(`<header>x</header><p>Body</p>`)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(got, "<header>") || !strings.Contains(got, "Body") {
		t.Errorf("unexpected output %q", got)
	}
}
