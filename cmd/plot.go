package cmd

import (
	"fmt"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/signalnine/swarmeval/internal/boxplot"
	"github.com/signalnine/swarmeval/internal/result"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gonum.org/v1/plot/vg"
)

var (
	flagPlotOut    string
	flagPlotWidth  float64
	flagPlotHeight float64
	flagShow       bool
)

func newPlotCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plot n_classes_output",
		Short: "plot the output of 'evaluate'",
		Args:  cobra.ExactArgs(1),
		RunE:  runPlot,
	}
	cmd.Flags().StringVar(&flagPlotOut, "out", "", "image to write; format follows the extension (default <input>.png)")
	cmd.Flags().Float64Var(&flagPlotWidth, "width", 6, "figure width in inches")
	cmd.Flags().Float64Var(&flagPlotHeight, "height", 4, "figure height in inches")
	cmd.Flags().BoolVar(&flagShow, "show", false, "open the figure in the system viewer")
	return cmd
}

func defaultPlotPath(input string) string {
	return strings.TrimSuffix(input, filepath.Ext(input)) + ".png"
}

func runPlot(cmd *cobra.Command, args []string) error {
	rows, err := result.ReadCostFile(args[0])
	if err != nil {
		return err
	}
	series, skipped, err := boxplot.BuildSeries(rows)
	if err != nil {
		return err
	}
	for _, row := range skipped {
		logger.Warn("skipping failed evaluation", zap.String("config", row.Config), zap.String("reason", row.Err))
	}
	for _, p := range series {
		if p.Dropped > 0 {
			logger.Warn("dropping non-finite costs", zap.String("config", p.Config), zap.Int("dropped", p.Dropped))
		}
	}

	out := flagPlotOut
	if out == "" {
		out = defaultPlotPath(args[0])
	}
	err = boxplot.Render(series, boxplot.RenderOpts{
		Output: out,
		Width:  vg.Length(flagPlotWidth) * vg.Inch,
		Height: vg.Length(flagPlotHeight) * vg.Inch,
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", out)

	if flagShow {
		return openViewer(out)
	}
	return nil
}

// openViewer returns once the opener has launched the viewer; it does not
// wait for the window to close.
func openViewer(path string) error {
	opener := "xdg-open"
	if runtime.GOOS == "darwin" {
		opener = "open"
	}
	if out, err := exec.Command(opener, path).CombinedOutput(); err != nil {
		return fmt.Errorf("%s %s: %s: %w", opener, path, out, err)
	}
	return nil
}
