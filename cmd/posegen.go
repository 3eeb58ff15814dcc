package cmd

import (
	"fmt"

	"github.com/signalnine/swarmeval/internal/result"
	"github.com/signalnine/swarmeval/internal/runner"
	"github.com/spf13/cobra"
)

var (
	flagPoseTrials int
	flagManifest   string
)

func NewPoseRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "generate-pose-files params argos_files...",
		Short:        "Evaluate cost over a bunch of different argos files",
		Long:         "Run the evaluator once per argos file and list the pose files it generates, one per line.",
		Args:         cobra.MinimumNArgs(2),
		RunE:         runPoseGen,
		SilenceUsage: true,
	}
	addCommonFlags(root)
	root.Flags().IntVarP(&flagPoseTrials, "trials", "t", 0, "number of trials per argos configuration (default from config, 5)")
	root.Flags().StringVarP(&flagManifest, "output", "o", result.DefaultManifest, "manifest of generated files")
	root.Flags().BoolVarP(&flagVerbose, "verbose", "v", false, "debug logging")
	return root
}

func runPoseGen(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	trials := cfg.Defaults.PoseTrials
	if cmd.Flags().Changed("trials") {
		trials = flagPoseTrials
	}
	if trials < 1 {
		return fmt.Errorf("--trials must be at least 1")
	}
	exec, err := newExecutor(cfg)
	if err != nil {
		return err
	}

	ctx, stop := signalContext()
	defer stop()

	n, err := runner.GeneratePoseFiles(ctx, &runner.PoseOpts{
		Evaluator: cfg.Evaluator.Path,
		Params:    args[0],
		Configs:   args[1:],
		Trials:    trials,
		Manifest:  flagManifest,
		Exec:      exec,
		Logger:    logger,
	})
	if err != nil {
		return fmt.Errorf("after %d of %d files: %w", n, len(args)-1, err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d generated files to %s\n", n, flagManifest)
	return nil
}
