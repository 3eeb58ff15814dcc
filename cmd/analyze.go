package cmd

import (
	"github.com/spf13/cobra"
)

func NewAnalyzeRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "analyze-n-classes",
		Short:        "Evaluate cost over argos files with varying number of classes",
		SilenceUsage: true,
	}
	addCommonFlags(root)
	root.AddCommand(newEvaluateCmd())
	root.AddCommand(newPlotCmd())
	root.AddCommand(newSummaryCmd())
	return root
}
