package cmd

import (
	"github.com/signalnine/swarmeval/internal/report"
	"github.com/signalnine/swarmeval/internal/result"
	"github.com/spf13/cobra"
)

var flagFormat string

func newSummaryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "summary n_classes_output",
		Short: "Summarize costs per argos file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rows, err := result.ReadCostFile(args[0])
			if err != nil {
				return err
			}
			return report.Generate(rows, flagFormat, cmd.OutOrStdout())
		},
	}
	cmd.Flags().StringVar(&flagFormat, "format", "table", "output format (table, markdown, json)")
	return cmd
}
