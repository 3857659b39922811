package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/docclean/internal/output"
	"github.com/jmylchreest/docclean/internal/version"
)

func (a *app) versionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			name, _ := cmd.Flags().GetString("format")
			format, err := output.ParseFormat(name)
			if err != nil {
				return err
			}
			if format == output.FormatText {
				_, err := fmt.Fprintln(cmd.OutOrStdout(), version.Full())
				return err
			}
			w, err := output.NewWriter(cmd.OutOrStdout(), format)
			if err != nil {
				return err
			}
			if err := w.Write(version.Get()); err != nil {
				return err
			}
			return w.Flush()
		},
	}
	cmd.Flags().String("format", "text", "output format: text, json, yaml")
	return cmd
}
