package commands

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/jmylchreest/docclean/internal/logger"
	"github.com/jmylchreest/docclean/internal/output"
	"github.com/jmylchreest/docclean/pkg/cleaner"
	"github.com/jmylchreest/docclean/pkg/cleaner/boilerplate"
)

func (a *app) cleanCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clean [file]",
		Short: "Clean an HTML document",
		Long: `Clean reads an HTML document from a file (or stdin when no file is given
or the file is "-"), runs the enabled stages and writes the cleaned body
markup.

Stages start from a preset, then the "cleaner" section of the config file
is merged in, then --enable and --disable apply. Run "docclean stages"
for the flag names.

Examples:
  docclean clean page.html
  docclean clean --preset none --enable clean_comments,clean_hr page.html
  docclean clean --disable clean_form --remove ".newsletter" page.html
  docclean clean --pattern "^teaser" --keep "article .byline" -o out.html page.html`,
		Args: cobra.MaximumNArgs(1),
		RunE: a.runClean,
	}

	flags := cmd.Flags()
	flags.String("preset", "default", "starting stage set: default, all, none")
	flags.StringSlice("enable", nil, "stage flags to enable (can be repeated)")
	flags.StringSlice("disable", nil, "stage flags to disable (can be repeated)")
	flags.StringSlice("remove", nil, "CSS selectors to remove before the stages run")
	flags.StringSlice("keep", nil, "CSS selectors the boilerplate matcher must never remove")
	flags.StringSlice("pattern", nil, "extra boilerplate regex matched against id and class")
	flags.Bool("pretty", false, "indent the cleaned markup")
	flags.StringP("output", "o", "", "output file (default: stdout)")
	flags.String("stats", "text", "stats report on stderr: text, json, yaml, none")
	flags.String("max-input-size", "0", "reject inputs larger than this (e.g. 5MB, 0=unlimited)")

	_ = a.v.BindPFlag("preset", flags.Lookup("preset"))
	_ = a.v.BindPFlag("pretty", flags.Lookup("pretty"))
	_ = a.v.BindPFlag("stats", flags.Lookup("stats"))
	_ = a.v.BindPFlag("max_input_size", flags.Lookup("max-input-size"))

	return cmd
}

func (a *app) runClean(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	statsFormat, err := output.ParseFormat(a.v.GetString("stats"))
	if err != nil {
		return err
	}

	source, markup, err := a.readInput(cmd, args)
	if err != nil {
		return err
	}

	cfg, err := a.buildConfig(cmd)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	bp := boilerplate.New(cfg)
	stages := make([]cleaner.DocumentCleaner, 0, 2)
	if remove, _ := cmd.Flags().GetStringSlice("remove"); len(remove) > 0 {
		sel, err := cleaner.NewSelector(remove, cfg.KeepSelectors)
		if err != nil {
			return err
		}
		stages = append(stages, sel)
	}
	stages = append(stages, bp)

	var c cleaner.Cleaner = cleaner.NewChain(stages...)
	if a.v.GetBool("pretty") {
		c = cleaner.NewPretty(c)
	}

	logger.DebugContext(ctx, "cleaning",
		"source", source,
		"cleaner", c.Name(),
		"flags", cfg.Flags().String(),
		"size", humanize.Bytes(uint64(len(markup))),
	)

	start := time.Now()
	cleaned, err := c.Clean(markup)
	if err != nil {
		return fmt.Errorf("cleaning %s: %w", source, err)
	}

	result := bp.LastResult()
	result.Content = cleaned
	result.Stats.InputBytes = len(markup)
	result.Stats.OutputBytes = len(cleaned)
	result.Stats.TotalDuration = time.Since(start)

	if err := a.writeContent(cmd, cleaned); err != nil {
		return err
	}

	w, err := output.NewWriter(cmd.ErrOrStderr(), statsFormat)
	if err != nil {
		return err
	}
	if err := w.Write(output.NewReport(source, cfg.Flags(), result)); err != nil {
		return err
	}
	return w.Flush()
}

func (a *app) readInput(cmd *cobra.Command, args []string) (source, markup string, err error) {
	var data []byte
	if len(args) == 0 || args[0] == "-" {
		source = "stdin"
		data, err = io.ReadAll(cmd.InOrStdin())
	} else {
		source = args[0]
		data, err = os.ReadFile(source)
	}
	if err != nil {
		return "", "", fmt.Errorf("reading %s: %w", source, err)
	}
	if len(strings.TrimSpace(string(data))) == 0 {
		return "", "", fmt.Errorf("empty input from %s", source)
	}

	if limit := strings.TrimSpace(a.v.GetString("max_input_size")); limit != "" && limit != "0" {
		maxBytes, err := humanize.ParseBytes(limit)
		if err != nil {
			return "", "", fmt.Errorf("invalid max-input-size %q: %w", limit, err)
		}
		if uint64(len(data)) > maxBytes {
			return "", "", fmt.Errorf("%s is %s, larger than the %s limit",
				source, humanize.Bytes(uint64(len(data))), humanize.Bytes(maxBytes))
		}
	}
	return source, string(data), nil
}

func presetConfig(name string) (*boilerplate.Config, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "default":
		return boilerplate.DefaultConfig(), nil
	case "all":
		return boilerplate.PresetAll(), nil
	case "none":
		return boilerplate.PresetNone(), nil
	default:
		return nil, fmt.Errorf("unknown preset %q (want default, all or none)", name)
	}
}

func (a *app) buildConfig(cmd *cobra.Command) (*boilerplate.Config, error) {
	cfg, err := presetConfig(a.v.GetString("preset"))
	if err != nil {
		return nil, err
	}

	if a.v.IsSet("cleaner") {
		var fileCfg boilerplate.Config
		if err := a.v.UnmarshalKey("cleaner", &fileCfg); err != nil {
			return nil, fmt.Errorf("decoding cleaner config: %w", err)
		}
		cfg = cfg.Merge(&fileCfg)
	}

	names, _ := cmd.Flags().GetStringSlice("enable")
	enable, err := boilerplate.ParseFlags(names)
	if err != nil {
		return nil, fmt.Errorf("--enable: %w", err)
	}
	names, _ = cmd.Flags().GetStringSlice("disable")
	disable, err := boilerplate.ParseFlags(names)
	if err != nil {
		return nil, fmt.Errorf("--disable: %w", err)
	}

	flags := cfg.Flags().Union(enable)
	for _, f := range disable.List() {
		flags = flags.Without(f)
	}
	cfg.SetFlags(flags)

	patterns, _ := cmd.Flags().GetStringSlice("pattern")
	keep, _ := cmd.Flags().GetStringSlice("keep")
	cfg = cfg.Merge(&boilerplate.Config{ExtraPatterns: patterns, KeepSelectors: keep})
	cfg.Debug = cfg.Debug || a.v.GetBool("debug")

	return cfg, nil
}

func (a *app) writeContent(cmd *cobra.Command, content string) error {
	if !strings.HasSuffix(content, "\n") {
		content += "\n"
	}

	path, _ := cmd.Flags().GetString("output")
	if path == "" {
		_, err := io.WriteString(cmd.OutOrStdout(), content)
		return err
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	logger.InfoContext(cmd.Context(), "wrote cleaned document", "path", path, "size", humanize.Bytes(uint64(len(content))))
	return nil
}
