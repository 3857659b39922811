package output

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/dustin/go-humanize"
)

// TextWriter prints human-readable summaries.
type TextWriter struct {
	w      io.Writer
	stages []Stage
}

// Write prints a report immediately. Stage rows are collected and printed
// as a table on Flush.
func (t *TextWriter) Write(v any) error {
	switch v := v.(type) {
	case *Report:
		return t.writeReport(v)
	case Stage:
		t.stages = append(t.stages, v)
		return nil
	case []Stage:
		t.stages = append(t.stages, v...)
		return nil
	default:
		_, err := fmt.Fprintf(t.w, "%v\n", v)
		return err
	}
}

func (t *TextWriter) writeReport(r *Report) error {
	var sb strings.Builder
	s := r.Stats

	if r.Source != "" {
		fmt.Fprintf(&sb, "Source: %s\n", r.Source)
	}
	fmt.Fprintf(&sb, "Stages: %s\n", strings.Join(r.Flags, ", "))
	if s.InputBytes > 0 {
		fmt.Fprintf(&sb, "Size: %s -> %s (%.1f%% reduction)\n",
			humanize.Bytes(uint64(s.InputBytes)),
			humanize.Bytes(uint64(s.OutputBytes)),
			s.ReductionPercent())
	}
	fmt.Fprintf(&sb, "Elements: %s removed, %s kept\n",
		humanize.Comma(int64(s.TotalElementsRemoved())),
		humanize.Comma(int64(s.ElementsKept)))
	if s.CommentsRemoved > 0 {
		fmt.Fprintf(&sb, "Comments removed: %d\n", s.CommentsRemoved)
	}
	if s.ParagraphsCreated > 0 {
		fmt.Fprintf(&sb, "Paragraphs created: %d\n", s.ParagraphsCreated)
	}
	if s.GuardedElements > 0 {
		fmt.Fprintf(&sb, "Kept by content guard: %d\n", s.GuardedElements)
	}
	for _, p := range s.Phases {
		if p.Enabled && p.ElementsRemoved > 0 {
			fmt.Fprintf(&sb, "  %-20s %d removed\n", p.Name, p.ElementsRemoved)
		}
	}
	fmt.Fprintf(&sb, "Time: %v\n", s.TotalDuration.Round(time.Microsecond))
	for _, w := range r.Warnings {
		fmt.Fprintf(&sb, "warning: %s\n", w)
	}

	_, err := io.WriteString(t.w, sb.String())
	return err
}

// Flush prints any collected stage rows.
func (t *TextWriter) Flush() error {
	if len(t.stages) == 0 {
		return nil
	}
	tw := tabwriter.NewWriter(t.w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tSTAGE\tFLAG\tDEFAULT")
	for i, st := range t.stages {
		def := ""
		if st.Default {
			def = "yes"
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", i+1, st.Name, st.Flag, def)
	}
	t.stages = nil
	return tw.Flush()
}
