package boilerplate

import (
	"fmt"
	"strings"
)

// Flag names one independently toggleable stage of the pipeline.
type Flag uint8

const (
	CleanComments Flag = iota
	CleanEmptyP
	CleanEmptyH
	CleanDropCaps
	CleanBadTags
	CleanScriptAndStyles
	CleanSpanInP
	CleanHeader
	CleanForm
	CleanFooter
	CleanHr
	CleanAside
	CleanCode
	CleanClearfix
	CleanEmTags
	FontToSpan
	DoubleBrsToP
	NoscriptToDiv
	DivToP

	numFlags
)

var flagNames = [numFlags]string{
	CleanComments:        "clean_comments",
	CleanEmptyP:          "clean_empty_p",
	CleanEmptyH:          "clean_empty_h",
	CleanDropCaps:        "clean_drop_caps",
	CleanBadTags:         "clean_bad_tags",
	CleanScriptAndStyles: "clean_script_and_styles",
	CleanSpanInP:         "clean_span_in_p",
	CleanHeader:          "clean_header",
	CleanForm:            "clean_form",
	CleanFooter:          "clean_footer",
	CleanHr:              "clean_hr",
	CleanAside:           "clean_aside",
	CleanCode:            "clean_code",
	CleanClearfix:        "clean_clearfix",
	CleanEmTags:          "clean_em_tags",
	FontToSpan:           "font_to_span",
	DoubleBrsToP:         "double_brs_to_p",
	NoscriptToDiv:        "noscript_to_div",
	DivToP:               "div_to_p",
}

// String returns the snake_case name used in config files and on the
// command line.
func (f Flag) String() string {
	if f < numFlags {
		return flagNames[f]
	}
	return fmt.Sprintf("Flag(%d)", uint8(f))
}

// ParseFlag looks a flag up by name. Dashes and case are ignored, so
// "div-to-p", "DIV_TO_P" and "div_to_p" are the same flag.
func ParseFlag(name string) (Flag, error) {
	key := strings.ToLower(strings.ReplaceAll(strings.TrimSpace(name), "-", "_"))
	for f, n := range flagNames {
		if n == key {
			return Flag(f), nil
		}
	}
	return 0, fmt.Errorf("unknown stage flag %q", name)
}

// AllFlags returns every flag in enumeration order.
func AllFlags() []Flag {
	flags := make([]Flag, numFlags)
	for i := range flags {
		flags[i] = Flag(i)
	}
	return flags
}

// Flags is an unordered set of enabled stages. The zero value enables
// nothing; adding a flag twice is the same as adding it once.
type Flags uint32

// NewFlags builds a set from the given flags.
func NewFlags(flags ...Flag) Flags {
	var s Flags
	for _, f := range flags {
		s = s.With(f)
	}
	return s
}

// DefaultFlags is the set enabled when no configuration is given.
func DefaultFlags() Flags {
	return NewFlags(
		CleanHeader,
		CleanFooter,
		CleanForm,
		CleanBadTags,
		FontToSpan,
		CleanDropCaps,
		CleanScriptAndStyles,
	)
}

// Has reports whether f is enabled.
func (s Flags) Has(f Flag) bool {
	return f < numFlags && s&(1<<f) != 0
}

// With returns the set with f enabled.
func (s Flags) With(f Flag) Flags {
	if f >= numFlags {
		return s
	}
	return s | 1<<f
}

// Without returns the set with f disabled.
func (s Flags) Without(f Flag) Flags {
	if f >= numFlags {
		return s
	}
	return s &^ (1 << f)
}

// Union returns the flags enabled in either set.
func (s Flags) Union(other Flags) Flags {
	return s | other
}

// List returns the enabled flags in enumeration order.
func (s Flags) List() []Flag {
	var out []Flag
	for f := Flag(0); f < numFlags; f++ {
		if s.Has(f) {
			out = append(out, f)
		}
	}
	return out
}

// Len returns the number of enabled flags.
func (s Flags) Len() int {
	return len(s.List())
}

func (s Flags) String() string {
	names := make([]string, 0, numFlags)
	for _, f := range s.List() {
		names = append(names, f.String())
	}
	return strings.Join(names, ",")
}

// ParseFlags parses a list of flag names into a set.
func ParseFlags(names []string) (Flags, error) {
	var s Flags
	for _, name := range names {
		if strings.TrimSpace(name) == "" {
			continue
		}
		f, err := ParseFlag(name)
		if err != nil {
			return 0, err
		}
		s = s.With(f)
	}
	return s, nil
}
