package output

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/jmylchreest/docclean/pkg/cleaner/boilerplate"
)

func sampleReport() *Report {
	s := boilerplate.NewStats()
	s.InputBytes = 4096
	s.OutputBytes = 1024
	s.ElementsRemoved["script"] = 3
	s.ElementsRemoved["footer"] = 1
	s.ElementsKept = 1234
	s.ParagraphsCreated = 2
	s.TotalDuration = 1500 * time.Microsecond
	phase := s.AddPhase("scripts_and_styles", true)
	phase.ElementsRemoved = 3
	s.AddPhase("div_to_p", false)

	return &Report{
		Source:   "article.html",
		Flags:    []string{"clean_script_and_styles", "clean_footer"},
		Stats:    s,
		Warnings: []boilerplate.Warning{{Phase: "extra_patterns", Message: "pattern does not compile", Context: "("}},
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{in: "json", want: FormatJSON},
		{in: "YAML", want: FormatYAML},
		{in: " text ", want: FormatText},
		{in: "none", want: FormatNone},
		{in: "", want: FormatText},
		{in: "xml", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFormat(tt.in)
			if tt.wantErr {
				if err == nil {
					t.Errorf("expected error for %q", tt.in)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("expected %s, got %s", tt.want, got)
			}
		})
	}
}

func TestNewWriter(t *testing.T) {
	tests := []struct {
		name    string
		format  Format
		wantErr bool
	}{
		{"text", FormatText, false},
		{"json", FormatJSON, false},
		{"yaml", FormatYAML, false},
		{"none", FormatNone, false},
		{"invalid", Format("invalid"), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, err := NewWriter(&bytes.Buffer{}, tt.format)
			if tt.wantErr {
				if err == nil {
					t.Error("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if w == nil {
				t.Fatal("expected non-nil writer")
			}
		})
	}
}

func TestJSONWriter_SingleReport(t *testing.T) {
	var buf bytes.Buffer
	w, _ := NewWriter(&buf, FormatJSON)

	if err := w.Write(sampleReport()); err != nil {
		t.Fatal(err)
	}
	if buf.Len() != 0 {
		t.Error("expected nothing written before Flush")
	}
	if err := w.Flush(); err != nil {
		t.Fatal(err)
	}

	var got map[string]any
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, buf.String())
	}
	if got["source"] != "article.html" {
		t.Errorf("unexpected source %v", got["source"])
	}
	stats, ok := got["stats"].(map[string]any)
	if !ok {
		t.Fatalf("expected stats object, got %T", got["stats"])
	}
	if stats["input_bytes"] != float64(4096) {
		t.Errorf("unexpected input_bytes %v", stats["input_bytes"])
	}
	if _, ok := got["warnings"].([]any); !ok {
		t.Error("expected warnings array")
	}
}

func TestJSONWriter_MultipleBecomeArray(t *testing.T) {
	var buf bytes.Buffer
	w, _ := NewWriter(&buf, FormatJSON)

	for _, st := range Stages() {
		if err := w.Write(st); err != nil {
			t.Fatal(err)
		}
	}
	if err := w.Flush(); err != nil {
		t.Fatal(err)
	}

	var got []Stage
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if len(got) != len(boilerplate.Stages()) {
		t.Fatalf("expected %d stages, got %d", len(boilerplate.Stages()), len(got))
	}
	if got[0].Name != "header" || got[0].Flag != "clean_header" || !got[0].Default {
		t.Errorf("unexpected first stage %+v", got[0])
	}
}

func TestEncodedWriter_FlushEmpty(t *testing.T) {
	for _, format := range []Format{FormatJSON, FormatYAML} {
		var buf bytes.Buffer
		w, _ := NewWriter(&buf, format)
		if err := w.Flush(); err != nil {
			t.Fatalf("%s: %v", format, err)
		}
		if buf.Len() != 0 {
			t.Errorf("%s: expected no output, got %q", format, buf.String())
		}
	}
}

func TestYAMLWriter(t *testing.T) {
	var buf bytes.Buffer
	w, _ := NewWriter(&buf, FormatYAML)

	if err := w.Write(sampleReport()); err != nil {
		t.Fatal(err)
	}
	if err := w.Flush(); err != nil {
		t.Fatal(err)
	}

	var got struct {
		Source string   `yaml:"source"`
		Flags  []string `yaml:"flags"`
		Stats  struct {
			OutputBytes int `yaml:"output_bytes"`
		} `yaml:"stats"`
	}
	if err := yaml.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("invalid YAML: %v\n%s", err, buf.String())
	}
	if got.Source != "article.html" || len(got.Flags) != 2 || got.Stats.OutputBytes != 1024 {
		t.Errorf("unexpected YAML content %+v", got)
	}
}

func TestTextWriter_Report(t *testing.T) {
	var buf bytes.Buffer
	w, _ := NewWriter(&buf, FormatText)

	if err := w.Write(sampleReport()); err != nil {
		t.Fatal(err)
	}
	if err := w.Flush(); err != nil {
		t.Fatal(err)
	}

	out := buf.String()
	for _, want := range []string{
		"Source: article.html",
		"Stages: clean_script_and_styles, clean_footer",
		"4.1 kB -> 1.0 kB (75.0% reduction)",
		"Elements: 4 removed, 1,234 kept",
		"Paragraphs created: 2",
		"scripts_and_styles",
		"Time: 1.5ms",
		"warning: [extra_patterns] pattern does not compile (context: ()",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in output, got:\n%s", want, out)
		}
	}
	if strings.Contains(out, "div_to_p") {
		t.Error("disabled stages should not be listed")
	}
}

func TestTextWriter_Stages(t *testing.T) {
	var buf bytes.Buffer
	w, _ := NewWriter(&buf, FormatText)

	if err := w.Write(Stages()); err != nil {
		t.Fatal(err)
	}
	if err := w.Flush(); err != nil {
		t.Fatal(err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != len(boilerplate.Stages())+1 {
		t.Fatalf("expected header plus %d rows, got %d", len(boilerplate.Stages()), len(lines))
	}
	if !strings.HasPrefix(lines[0], "#") || !strings.Contains(lines[0], "DEFAULT") {
		t.Errorf("unexpected header %q", lines[0])
	}
	if !strings.Contains(lines[1], "header") || !strings.HasSuffix(lines[1], "yes") {
		t.Errorf("unexpected first row %q", lines[1])
	}
	last := lines[len(lines)-1]
	if !strings.Contains(last, "em_tags") || strings.HasSuffix(last, "yes") {
		t.Errorf("unexpected last row %q", last)
	}
}

func TestNoneWriter(t *testing.T) {
	var buf bytes.Buffer
	w, _ := NewWriter(&buf, FormatNone)
	_ = w.Write(sampleReport())
	_ = w.Flush()
	if buf.Len() != 0 {
		t.Errorf("expected no output, got %q", buf.String())
	}
}

func TestNewReport(t *testing.T) {
	flags := boilerplate.NewFlags(boilerplate.CleanHr, boilerplate.DivToP)
	result := &boilerplate.Result{Stats: boilerplate.NewStats()}
	result.AddWarning("div_to_p", "skipped", "div#x")

	r := NewReport("stdin", flags, result)

	if r.Source != "stdin" {
		t.Errorf("unexpected source %q", r.Source)
	}
	if strings.Join(r.Flags, ",") != flags.String() {
		t.Errorf("expected flags %s, got %v", flags, r.Flags)
	}
	if len(r.Warnings) != 1 || r.Stats != result.Stats {
		t.Errorf("unexpected report %+v", r)
	}
}
