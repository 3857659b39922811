// Package output renders cleaning reports and stage listings for the CLI.
package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/jmylchreest/docclean/pkg/cleaner/boilerplate"
)

// Format represents output format types.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatNone Format = "none"
)

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatText, FormatJSON, FormatYAML, FormatNone:
		return f, nil
	case "":
		return FormatText, nil
	default:
		return "", fmt.Errorf("unsupported output format: %s", s)
	}
}

// Report describes one cleaning run.
type Report struct {
	Source   string                `json:"source" yaml:"source"`
	Flags    []string              `json:"flags" yaml:"flags"`
	Stats    *boilerplate.Stats    `json:"stats" yaml:"stats"`
	Warnings []boilerplate.Warning `json:"warnings,omitempty" yaml:"warnings,omitempty"`
}

// NewReport builds a report from a cleaning result.
func NewReport(source string, flags boilerplate.Flags, result *boilerplate.Result) *Report {
	names := make([]string, 0, flags.Len())
	for _, f := range flags.List() {
		names = append(names, f.String())
	}
	return &Report{
		Source:   source,
		Flags:    names,
		Stats:    result.Stats,
		Warnings: result.Warnings,
	}
}

// Stage is one row of the stage listing.
type Stage struct {
	Name    string `json:"name" yaml:"name"`
	Flag    string `json:"flag" yaml:"flag"`
	Default bool   `json:"default" yaml:"default"`
}

// Stages lists the pipeline in order.
func Stages() []Stage {
	defaults := boilerplate.DefaultFlags()
	infos := boilerplate.Stages()
	out := make([]Stage, len(infos))
	for i, st := range infos {
		out[i] = Stage{Name: st.Name, Flag: st.Flag.String(), Default: defaults.Has(st.Flag)}
	}
	return out
}

// Writer serializes reports or stage listings.
type Writer interface {
	// Write queues or writes a single value.
	Write(v any) error

	// Flush ensures all data is written.
	Flush() error
}

// NewWriter creates a writer for the specified format.
func NewWriter(w io.Writer, format Format) (Writer, error) {
	switch format {
	case FormatText:
		return &TextWriter{w: w}, nil
	case FormatJSON:
		return newEncoded(w, encodeJSON), nil
	case FormatYAML:
		return newEncoded(w, encodeYAML), nil
	case FormatNone:
		return discard{}, nil
	default:
		return nil, fmt.Errorf("unsupported output format: %s", format)
	}
}

type discard struct{}

func (discard) Write(any) error { return nil }
func (discard) Flush() error    { return nil }
