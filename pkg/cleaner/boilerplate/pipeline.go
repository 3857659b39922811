package boilerplate

// stage is one entry of the pipeline: it runs iff its flag is enabled.
type stage struct {
	flag Flag
	name string
	run  func(*Cleaner, *pass)
}

// pipeline is the fixed stage order. Several entries may share a flag.
var pipeline = []stage{
	{CleanHeader, "header", (*Cleaner).cleanHeader},
	{CleanFooter, "footer", (*Cleaner).cleanFooter},
	{CleanForm, "form", (*Cleaner).cleanForm},

	{CleanBadTags, "bad_tags", (*Cleaner).cleanBadTags},
	{CleanBadTags, "caption", regexPass(captionPattern)},
	{CleanBadTags, "google", regexPass(googlePattern)},
	{CleanBadTags, "entries", regexPass(entriesPattern)},
	{CleanBadTags, "facebook", regexPass(facebookPattern)},
	{CleanBadTags, "twitter", regexPass(twitterPattern)},
	{CleanBadTags, "extra_patterns", (*Cleaner).cleanExtraPatterns},

	{FontToSpan, "font_to_span", (*Cleaner).fontToSpan},
	{CleanDropCaps, "drop_caps", (*Cleaner).cleanDropCaps},
	{CleanScriptAndStyles, "scripts_and_styles", (*Cleaner).cleanScriptAndStyles},
	{CleanComments, "comments", (*Cleaner).cleanComments},
	{CleanSpanInP, "span_in_p", (*Cleaner).cleanSpanInP},

	{CleanHr, "hr", (*Cleaner).cleanHr},
	{CleanAside, "aside", (*Cleaner).cleanAside},
	{CleanCode, "code", (*Cleaner).cleanCode},
	{CleanClearfix, "clearfix", (*Cleaner).cleanClearfix},
	{CleanEmptyP, "empty_p", (*Cleaner).cleanEmptyP},
	{CleanEmptyH, "empty_h", (*Cleaner).cleanEmptyH},

	{NoscriptToDiv, "noscript_to_div", (*Cleaner).noscriptToDiv},
	{DoubleBrsToP, "double_brs_wrap", (*Cleaner).wrapDoubleBrParents},
	{DoubleBrsToP, "double_brs_split", (*Cleaner).splitDoubleBrs},
	{DivToP, "div_to_p", (*Cleaner).divToP},
	{CleanEmTags, "em_tags", (*Cleaner).cleanEmTags},
}

// StageInfo describes a pipeline entry.
type StageInfo struct {
	Name string `json:"name" yaml:"name"`
	Flag Flag   `json:"-" yaml:"-"`
}

// Stages lists the pipeline entries in the order they run.
func Stages() []StageInfo {
	out := make([]StageInfo, len(pipeline))
	for i, st := range pipeline {
		out[i] = StageInfo{Name: st.name, Flag: st.flag}
	}
	return out
}
