// Package commands implements the CLI commands for docclean.
package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/jmylchreest/docclean/internal/logger"
)

// app carries state shared by every command of one command tree.
type app struct {
	v *viper.Viper
}

// NewRootCommand builds the docclean command tree with its own viper
// instance.
func NewRootCommand() *cobra.Command {
	a := &app{v: viper.New()}

	cmd := &cobra.Command{
		Use:   "docclean",
		Short: "Strip boilerplate from HTML documents",
		Long: `Docclean removes navigation, ads, comment threads, forms and social
widgets from HTML and normalizes div soup, doubled line breaks and legacy
tags so downstream extraction sees clean article markup.

Examples:
  # Clean a saved page with the default stages
  docclean clean page.html

  # Run every stage and pretty-print the result
  docclean clean --preset all --pretty page.html > clean.html

  # Read from stdin, add a stage, and print stats as JSON
  curl -s https://example.com | docclean clean --enable div_to_p --stats json

  # List the pipeline
  docclean stages`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.initConfig,
	}

	flags := cmd.PersistentFlags()
	flags.String("config", "", "config file (default $HOME/.docclean.yaml)")
	flags.Bool("debug", false, "enable debug logging")
	flags.BoolP("quiet", "q", false, "only log errors")
	flags.String("log-format", "text", "log format: text, json")

	_ = a.v.BindPFlag("config", flags.Lookup("config"))
	_ = a.v.BindPFlag("debug", flags.Lookup("debug"))
	_ = a.v.BindPFlag("quiet", flags.Lookup("quiet"))
	_ = a.v.BindPFlag("log_format", flags.Lookup("log-format"))

	cmd.AddCommand(a.cleanCommand(), a.stagesCommand(), a.versionCommand())
	return cmd
}

func (a *app) initConfig(cmd *cobra.Command, _ []string) error {
	cfgFile := a.v.GetString("config")
	if cfgFile != "" {
		a.v.SetConfigFile(cfgFile)
	} else {
		if home, err := os.UserHomeDir(); err == nil {
			a.v.AddConfigPath(home)
		}
		a.v.AddConfigPath(".")
		a.v.SetConfigName(".docclean")
		a.v.SetConfigType("yaml")
	}

	a.v.SetEnvPrefix("DOCCLEAN")
	a.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	a.v.AutomaticEnv()

	err := a.v.ReadInConfig()
	var notFound viper.ConfigFileNotFoundError
	switch {
	case err == nil:
	case cfgFile == "" && errors.As(err, &notFound):
	default:
		return fmt.Errorf("reading config: %w", err)
	}

	logger.Init(logger.Options{
		Debug:  a.v.GetBool("debug"),
		Quiet:  a.v.GetBool("quiet"),
		JSON:   strings.EqualFold(a.v.GetString("log_format"), "json"),
		Output: cmd.ErrOrStderr(),
	})
	if used := a.v.ConfigFileUsed(); used != "" && err == nil {
		logger.DebugContext(cmd.Context(), "loaded config", "path", used)
	}
	return nil
}

// Execute runs the root command until it finishes or the process is
// interrupted.
func Execute() error {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cmd := NewRootCommand()
	if err := cmd.ExecuteContext(ctx); err != nil {
		logger.Error("command failed", "error", err)
		return err
	}
	return nil
}
