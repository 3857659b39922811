// Package boilerplate strips navigation, ads, comment threads, forms and
// social widgets from a parsed HTML document and normalizes structural quirks
// (div soup, doubled line breaks, legacy tags) so that content extraction
// sees clean article markup.
//
// The pipeline is a fixed sequence of stages, each gated by a Flag. Stages
// mutate the goquery document in place.
package boilerplate

import (
	"fmt"
	"regexp"

	"github.com/andybalholm/cascadia"
	"github.com/go-playground/validator/v10"
)

// Config defines all configuration options for the boilerplate cleaner.
// Each boolean enables the stage of the same name.
type Config struct {
	// === Removal ===

	// CleanHeader removes <header> elements.
	CleanHeader bool `json:"clean_header" yaml:"clean_header" mapstructure:"clean_header"`

	// CleanFooter removes <footer> elements.
	CleanFooter bool `json:"clean_footer" yaml:"clean_footer" mapstructure:"clean_footer"`

	// CleanForm removes <form> elements.
	CleanForm bool `json:"clean_form" yaml:"clean_form" mapstructure:"clean_form"`

	// CleanBadTags removes elements whose id, class or name matches the
	// boilerplate blocklist, plus the caption/google/more/facebook/twitter passes.
	CleanBadTags bool `json:"clean_bad_tags" yaml:"clean_bad_tags" mapstructure:"clean_bad_tags"`

	// CleanScriptAndStyles removes <script>, <style> and stylesheet links.
	CleanScriptAndStyles bool `json:"clean_script_and_styles" yaml:"clean_script_and_styles" mapstructure:"clean_script_and_styles"`

	// CleanComments removes HTML comment nodes.
	CleanComments bool `json:"clean_comments" yaml:"clean_comments" mapstructure:"clean_comments"`

	CleanHr       bool `json:"clean_hr" yaml:"clean_hr" mapstructure:"clean_hr"`
	CleanAside    bool `json:"clean_aside" yaml:"clean_aside" mapstructure:"clean_aside"`
	CleanCode     bool `json:"clean_code" yaml:"clean_code" mapstructure:"clean_code"`
	CleanClearfix bool `json:"clean_clearfix" yaml:"clean_clearfix" mapstructure:"clean_clearfix"`

	// CleanEmptyP removes paragraphs with no children.
	CleanEmptyP bool `json:"clean_empty_p" yaml:"clean_empty_p" mapstructure:"clean_empty_p"`

	// CleanEmptyH removes h2-h6 headings with no children.
	CleanEmptyH bool `json:"clean_empty_h" yaml:"clean_empty_h" mapstructure:"clean_empty_h"`

	// === Unwrapping ===

	// CleanDropCaps replaces dropcap spans with their text.
	CleanDropCaps bool `json:"clean_drop_caps" yaml:"clean_drop_caps" mapstructure:"clean_drop_caps"`

	// CleanSpanInP replaces spans directly inside a paragraph with their text.
	CleanSpanInP bool `json:"clean_span_in_p" yaml:"clean_span_in_p" mapstructure:"clean_span_in_p"`

	// CleanEmTags replaces <em> elements without images with their text.
	CleanEmTags bool `json:"clean_em_tags" yaml:"clean_em_tags" mapstructure:"clean_em_tags"`

	// === Renaming and restructuring ===

	FontToSpan    bool `json:"font_to_span" yaml:"font_to_span" mapstructure:"font_to_span"`
	NoscriptToDiv bool `json:"noscript_to_div" yaml:"noscript_to_div" mapstructure:"noscript_to_div"`

	// DoubleBrsToP splits runs of two or more <br> into paragraphs.
	DoubleBrsToP bool `json:"double_brs_to_p" yaml:"double_brs_to_p" mapstructure:"double_brs_to_p"`

	// DivToP turns divs without block content into paragraphs and gathers
	// loose text inside the others into paragraphs.
	DivToP bool `json:"div_to_p" yaml:"div_to_p" mapstructure:"div_to_p"`

	// === Matcher extensions ===

	// ExtraPatterns are additional regular expressions matched against id and
	// class, removed under the same content guard as the built-in passes.
	ExtraPatterns []string `json:"extra_patterns,omitempty" yaml:"extra_patterns,omitempty" mapstructure:"extra_patterns" validate:"omitempty,dive,required,regexp"`

	// KeepSelectors are CSS selectors whose matches the boilerplate matcher
	// never removes.
	KeepSelectors []string `json:"keep_selectors,omitempty" yaml:"keep_selectors,omitempty" mapstructure:"keep_selectors" validate:"omitempty,dive,required,selector"`

	// Debug enables verbose logging of what was removed and why.
	Debug bool `json:"debug" yaml:"debug" mapstructure:"debug"`
}

// DefaultConfig enables the default stage set: header, footer, form,
// bad tags, font-to-span, drop caps and scripts/styles.
func DefaultConfig() *Config {
	return ConfigFromFlags(DefaultFlags())
}

// PresetAll enables every stage.
func PresetAll() *Config {
	return ConfigFromFlags(NewFlags(AllFlags()...))
}

// PresetNone enables nothing. Useful as a base for explicit --enable lists.
func PresetNone() *Config {
	return &Config{}
}

// fields maps each flag to its toggle in c.
func (c *Config) fields() [numFlags]*bool {
	return [numFlags]*bool{
		CleanComments:        &c.CleanComments,
		CleanEmptyP:          &c.CleanEmptyP,
		CleanEmptyH:          &c.CleanEmptyH,
		CleanDropCaps:        &c.CleanDropCaps,
		CleanBadTags:         &c.CleanBadTags,
		CleanScriptAndStyles: &c.CleanScriptAndStyles,
		CleanSpanInP:         &c.CleanSpanInP,
		CleanHeader:          &c.CleanHeader,
		CleanForm:            &c.CleanForm,
		CleanFooter:          &c.CleanFooter,
		CleanHr:              &c.CleanHr,
		CleanAside:           &c.CleanAside,
		CleanCode:            &c.CleanCode,
		CleanClearfix:        &c.CleanClearfix,
		CleanEmTags:          &c.CleanEmTags,
		FontToSpan:           &c.FontToSpan,
		DoubleBrsToP:         &c.DoubleBrsToP,
		NoscriptToDiv:        &c.NoscriptToDiv,
		DivToP:               &c.DivToP,
	}
}

// ConfigFromFlags returns a config with exactly the given stages enabled.
func ConfigFromFlags(flags Flags) *Config {
	c := &Config{}
	c.SetFlags(flags)
	return c
}

// Flags returns the set of enabled stages.
func (c *Config) Flags() Flags {
	var s Flags
	for f, on := range c.fields() {
		if *on {
			s = s.With(Flag(f))
		}
	}
	return s
}

// SetFlags enables exactly the given stages.
func (c *Config) SetFlags(flags Flags) {
	for f, on := range c.fields() {
		*on = flags.Has(Flag(f))
	}
}

// Merge merges another config into this one.
// Stages enabled in either config stay enabled; slices are appended
// without duplicates.
func (c *Config) Merge(other *Config) *Config {
	if other == nil {
		return c
	}

	merged := *c
	merged.SetFlags(c.Flags().Union(other.Flags()))
	merged.ExtraPatterns = appendUnique(c.ExtraPatterns, other.ExtraPatterns)
	merged.KeepSelectors = appendUnique(c.KeepSelectors, other.KeepSelectors)
	merged.Debug = c.Debug || other.Debug

	return &merged
}

func appendUnique(base, extra []string) []string {
	if len(extra) == 0 {
		return base
	}
	out := make([]string, 0, len(base)+len(extra))
	seen := make(map[string]bool, len(base)+len(extra))
	for _, list := range [][]string{base, extra} {
		for _, s := range list {
			if !seen[s] {
				seen[s] = true
				out = append(out, s)
			}
		}
	}
	return out
}

// Validate checks that every extra pattern compiles and every keep selector
// parses.
func (c *Config) Validate() error {
	if err := newValidator().Struct(c); err != nil {
		return fmt.Errorf("invalid cleaner config: %w", err)
	}
	return nil
}

func newValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("regexp", func(fl validator.FieldLevel) bool {
		_, err := regexp.Compile(fl.Field().String())
		return err == nil
	})
	_ = v.RegisterValidation("selector", func(fl validator.FieldLevel) bool {
		_, err := cascadia.Compile(fl.Field().String())
		return err == nil
	})
	return v
}
