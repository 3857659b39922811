package cleaner

import "github.com/yosssi/gohtml"

// PrettyCleaner indents the output of another cleaner.
type PrettyCleaner struct {
	inner Cleaner
}

// NewPretty wraps inner so its output is formatted with gohtml.
func NewPretty(inner Cleaner) *PrettyCleaner {
	return &PrettyCleaner{inner: inner}
}

// Clean runs the wrapped cleaner and formats its result.
func (c *PrettyCleaner) Clean(html string) (string, error) {
	out, err := c.inner.Clean(html)
	if err != nil {
		return "", err
	}
	return gohtml.Format(out), nil
}

// Name returns the wrapped cleaner name.
func (c *PrettyCleaner) Name() string {
	return "pretty(" + c.inner.Name() + ")"
}
