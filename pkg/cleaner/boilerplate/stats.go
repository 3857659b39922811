package boilerplate

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// Stats captures what the cleaner did to a document.
type Stats struct {
	// Size metrics (only set when cleaning from markup)
	InputBytes  int `json:"input_bytes" yaml:"input_bytes"`
	OutputBytes int `json:"output_bytes" yaml:"output_bytes"`

	// Element counts
	ElementsRemoved map[string]int `json:"elements_removed" yaml:"elements_removed"` // tag -> count
	ElementsKept    int            `json:"elements_kept" yaml:"elements_kept"`

	CommentsRemoved   int `json:"comments_removed" yaml:"comments_removed"`
	ElementsRenamed   int `json:"elements_renamed" yaml:"elements_renamed"`
	ElementsUnwrapped int `json:"elements_unwrapped" yaml:"elements_unwrapped"`
	ParagraphsCreated int `json:"paragraphs_created" yaml:"paragraphs_created"`

	// GuardedElements counts blocklist matches kept by the content guard.
	GuardedElements int `json:"guarded_elements" yaml:"guarded_elements"`

	// Per-stage breakdown in pipeline order
	Phases []*PhaseStats `json:"phases" yaml:"phases"`

	// Timing, in nanoseconds in JSON
	ParseDuration     time.Duration `json:"parse_duration_ns" yaml:"parse_duration"`
	TransformDuration time.Duration `json:"transform_duration_ns" yaml:"transform_duration"`
	OutputDuration    time.Duration `json:"output_duration_ns" yaml:"output_duration"`
	TotalDuration     time.Duration `json:"total_duration_ns" yaml:"total_duration"`
}

// PhaseStats records one stage run.
type PhaseStats struct {
	Name            string         `json:"name" yaml:"name"`
	Enabled         bool           `json:"enabled" yaml:"enabled"`
	ElementsRemoved int            `json:"elements_removed" yaml:"elements_removed"`
	Details         map[string]int `json:"details,omitempty" yaml:"details,omitempty"`
	Duration        time.Duration  `json:"duration_ns" yaml:"duration"`
}

// NewStats creates a new Stats instance with initialized maps.
func NewStats() *Stats {
	return &Stats{
		ElementsRemoved: make(map[string]int),
		Phases:          make([]*PhaseStats, 0),
	}
}

// AddPhase appends a phase record and returns it for the stage to fill in.
func (s *Stats) AddPhase(name string, enabled bool) *PhaseStats {
	p := &PhaseStats{
		Name:    name,
		Enabled: enabled,
		Details: make(map[string]int),
	}
	s.Phases = append(s.Phases, p)
	return p
}

// GetPhase returns the first phase with the given name, or nil.
func (s *Stats) GetPhase(name string) *PhaseStats {
	for _, p := range s.Phases {
		if p.Name == name {
			return p
		}
	}
	return nil
}

// ReductionPercent returns the percentage reduction in size.
func (s *Stats) ReductionPercent() float64 {
	if s.InputBytes == 0 {
		return 0
	}
	return float64(s.InputBytes-s.OutputBytes) / float64(s.InputBytes) * 100
}

// TotalElementsRemoved returns the sum of all removed elements.
func (s *Stats) TotalElementsRemoved() int {
	total := 0
	for _, count := range s.ElementsRemoved {
		total += count
	}
	return total
}

// RecordRemoval records that an element was removed.
func (s *Stats) RecordRemoval(tag string) {
	s.ElementsRemoved[strings.ToLower(tag)]++
}

// String returns a human-readable summary of the stats.
func (s *Stats) String() string {
	var sb strings.Builder

	if s.InputBytes > 0 {
		sb.WriteString(fmt.Sprintf("Size: %d -> %d bytes (%.1f%% reduction)\n",
			s.InputBytes, s.OutputBytes, s.ReductionPercent()))
	}

	sb.WriteString(fmt.Sprintf("Elements: %d removed, %d kept\n",
		s.TotalElementsRemoved(), s.ElementsKept))

	if len(s.ElementsRemoved) > 0 {
		tags := make([]string, 0, len(s.ElementsRemoved))
		for tag := range s.ElementsRemoved {
			tags = append(tags, tag)
		}
		sort.Strings(tags)
		parts := make([]string, 0, len(tags))
		for _, tag := range tags {
			parts = append(parts, fmt.Sprintf("%s=%d", tag, s.ElementsRemoved[tag]))
		}
		sb.WriteString("Removed by tag: ")
		sb.WriteString(strings.Join(parts, ", "))
		sb.WriteString("\n")
	}

	if s.CommentsRemoved > 0 {
		sb.WriteString(fmt.Sprintf("Comments removed: %d\n", s.CommentsRemoved))
	}
	if s.ElementsRenamed > 0 || s.ElementsUnwrapped > 0 {
		sb.WriteString(fmt.Sprintf("Renamed: %d, unwrapped: %d\n", s.ElementsRenamed, s.ElementsUnwrapped))
	}
	if s.ParagraphsCreated > 0 {
		sb.WriteString(fmt.Sprintf("Paragraphs created: %d\n", s.ParagraphsCreated))
	}
	if s.GuardedElements > 0 {
		sb.WriteString(fmt.Sprintf("Kept by content guard: %d\n", s.GuardedElements))
	}

	for _, p := range s.Phases {
		if !p.Enabled {
			continue
		}
		sb.WriteString(fmt.Sprintf("  %s: %d removed (%v)\n", p.Name, p.ElementsRemoved, p.Duration.Round(time.Microsecond)))
	}

	sb.WriteString(fmt.Sprintf("Timing: parse=%v, transform=%v, output=%v, total=%v\n",
		s.ParseDuration.Round(time.Millisecond),
		s.TransformDuration.Round(time.Millisecond),
		s.OutputDuration.Round(time.Millisecond),
		s.TotalDuration.Round(time.Millisecond)))

	return sb.String()
}

// Warning represents a non-fatal issue encountered during cleaning.
type Warning struct {
	Phase   string `json:"phase" yaml:"phase"`     // "parse", a stage name, or "output"
	Message string `json:"message" yaml:"message"` // Human-readable description
	Context string `json:"context" yaml:"context"` // Element or pattern that caused the issue
}

// String returns a formatted warning message.
func (w Warning) String() string {
	if w.Context != "" {
		return fmt.Sprintf("[%s] %s (context: %s)", w.Phase, w.Message, w.Context)
	}
	return fmt.Sprintf("[%s] %s", w.Phase, w.Message)
}

// Result contains the output of a cleaning operation.
type Result struct {
	// Content is the cleaned markup. On parse errors, this contains the original input.
	Content string `json:"content" yaml:"content"`

	Stats    *Stats    `json:"stats" yaml:"stats"`
	Warnings []Warning `json:"warnings,omitempty" yaml:"warnings,omitempty"`

	// Error is set only on catastrophic failures (content is still returned).
	Error error `json:"-" yaml:"-"`
}

func newResult() *Result {
	return &Result{Stats: NewStats()}
}

// AddWarning adds a warning to the result.
func (r *Result) AddWarning(phase, message, context string) {
	r.Warnings = append(r.Warnings, Warning{
		Phase:   phase,
		Message: message,
		Context: context,
	})
}

// HasWarnings returns true if any warnings were recorded.
func (r *Result) HasWarnings() bool {
	return len(r.Warnings) > 0
}
