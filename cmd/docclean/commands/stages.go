package commands

import (
	"github.com/spf13/cobra"

	"github.com/jmylchreest/docclean/internal/output"
)

func (a *app) stagesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stages",
		Short: "List the cleaning stages in the order they run",
		Long: `Stages prints every pipeline stage with the flag that enables it and
whether that flag is part of the default preset. Several stages can share
one flag.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			name, _ := cmd.Flags().GetString("format")
			format, err := output.ParseFormat(name)
			if err != nil {
				return err
			}
			w, err := output.NewWriter(cmd.OutOrStdout(), format)
			if err != nil {
				return err
			}
			for _, st := range output.Stages() {
				if err := w.Write(st); err != nil {
					return err
				}
			}
			return w.Flush()
		},
	}
	cmd.Flags().String("format", "text", "output format: text, json, yaml")
	return cmd
}
