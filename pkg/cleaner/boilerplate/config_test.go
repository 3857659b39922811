package boilerplate

import (
	"strings"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg == nil {
		t.Fatal("expected non-nil config")
	}

	tests := []struct {
		name     string
		got      bool
		expected bool
	}{
		{"CleanHeader", cfg.CleanHeader, true},
		{"CleanFooter", cfg.CleanFooter, true},
		{"CleanForm", cfg.CleanForm, true},
		{"CleanBadTags", cfg.CleanBadTags, true},
		{"FontToSpan", cfg.FontToSpan, true},
		{"CleanDropCaps", cfg.CleanDropCaps, true},
		{"CleanScriptAndStyles", cfg.CleanScriptAndStyles, true},
		{"CleanComments", cfg.CleanComments, false},
		{"CleanEmptyP", cfg.CleanEmptyP, false},
		{"CleanEmptyH", cfg.CleanEmptyH, false},
		{"CleanSpanInP", cfg.CleanSpanInP, false},
		{"CleanHr", cfg.CleanHr, false},
		{"CleanAside", cfg.CleanAside, false},
		{"CleanCode", cfg.CleanCode, false},
		{"CleanClearfix", cfg.CleanClearfix, false},
		{"CleanEmTags", cfg.CleanEmTags, false},
		{"DoubleBrsToP", cfg.DoubleBrsToP, false},
		{"NoscriptToDiv", cfg.NoscriptToDiv, false},
		{"DivToP", cfg.DivToP, false},
		{"Debug", cfg.Debug, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.expected {
				t.Errorf("expected %v, got %v", tt.expected, tt.got)
			}
		})
	}
}

func TestPresets(t *testing.T) {
	if got := PresetAll().Flags().Len(); got != 19 {
		t.Errorf("expected every flag in PresetAll, got %d", got)
	}
	if got := PresetNone().Flags(); got != 0 {
		t.Errorf("expected no flags in PresetNone, got %s", got)
	}
}

func TestConfigFlagsRoundTrip(t *testing.T) {
	flags := NewFlags(CleanComments, DivToP, NoscriptToDiv)
	cfg := ConfigFromFlags(flags)

	if !cfg.CleanComments || !cfg.DivToP || !cfg.NoscriptToDiv {
		t.Errorf("expected toggles to be set, got %+v", cfg)
	}
	if cfg.CleanHeader {
		t.Error("expected CleanHeader to be off")
	}
	if cfg.Flags() != flags {
		t.Errorf("expected %s, got %s", flags, cfg.Flags())
	}

	cfg.SetFlags(NewFlags(CleanHr))
	if cfg.DivToP || !cfg.CleanHr {
		t.Errorf("SetFlags should replace the set, got %s", cfg.Flags())
	}
}

func TestConfigMerge(t *testing.T) {
	base := &Config{
		CleanHeader:   true,
		ExtraPatterns: []string{"^teaser$"},
	}
	other := &Config{
		DivToP:        true,
		ExtraPatterns: []string{"^teaser$", "^promo-box$"},
		KeepSelectors: []string{"article"},
		Debug:         true,
	}

	merged := base.Merge(other)

	if !merged.CleanHeader || !merged.DivToP {
		t.Errorf("expected flags from both configs, got %s", merged.Flags())
	}
	if len(merged.ExtraPatterns) != 2 {
		t.Errorf("expected 2 distinct patterns, got %v", merged.ExtraPatterns)
	}
	if len(merged.KeepSelectors) != 1 || merged.KeepSelectors[0] != "article" {
		t.Errorf("unexpected keep selectors %v", merged.KeepSelectors)
	}
	if !merged.Debug {
		t.Error("expected Debug to be set")
	}
	if base.DivToP {
		t.Error("Merge must not modify the receiver")
	}

	if got := base.Merge(nil); got != base {
		t.Error("merging nil should return the receiver")
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     *Config
		wantErr string
	}{
		{
			name: "defaults",
			cfg:  DefaultConfig(),
		},
		{
			name: "valid extensions",
			cfg: &Config{
				ExtraPatterns: []string{"^teaser$", "promo-(box|bar)"},
				KeepSelectors: []string{"article .story", "#main"},
			},
		},
		{
			name:    "bad pattern",
			cfg:     &Config{ExtraPatterns: []string{"(unclosed"}},
			wantErr: "ExtraPatterns",
		},
		{
			name:    "empty pattern",
			cfg:     &Config{ExtraPatterns: []string{""}},
			wantErr: "ExtraPatterns",
		},
		{
			name:    "bad selector",
			cfg:     &Config{KeepSelectors: []string{"div["}},
			wantErr: "KeepSelectors",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatal("expected an error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("expected error to mention %q, got %v", tt.wantErr, err)
			}
		})
	}
}
