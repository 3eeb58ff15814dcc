package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/signalnine/swarmeval/internal/gitops"
	"github.com/signalnine/swarmeval/internal/params"
	"github.com/signalnine/swarmeval/internal/report"
	"github.com/signalnine/swarmeval/internal/result"
	"github.com/signalnine/swarmeval/internal/runner"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	flagPoolSize   int
	flagTrials     int
	flagOutput     string
	flagFailFast   bool
	flagLaunchRate float64
)

func newEvaluateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "evaluate argos_files... library_path params",
		Short: "run the simulations",
		Long:  "Score every argos file with the loop function library and parameters, writing one CSV row of costs per file.",
		Args:  cobra.MinimumNArgs(3),
		RunE:  runEvaluate,
	}
	cmd.Flags().IntVarP(&flagPoolSize, "pool-size", "p", 0, "number of evaluator processes to run at once")
	cmd.Flags().IntVarP(&flagTrials, "trials", "t", 0, "number of trials per argos configuration (default from config, 100)")
	cmd.Flags().BoolVarP(&flagVerbose, "verbose", "v", false, "log params, commands and parsed costs")
	cmd.Flags().StringVarP(&flagOutput, "output", "o", "", "analysis CSV (default n_classes_analysis_<unix time>.txt in the results dir)")
	cmd.Flags().BoolVar(&flagFailFast, "fail-fast", false, "stop launching evaluations after the first failure")
	cmd.Flags().Float64Var(&flagLaunchRate, "launch-rate", 0, "max evaluator launches per second (0 is unlimited)")
	cmd.MarkFlagRequired("pool-size")
	return cmd
}

// splitEvaluateArgs separates the trailing library and params arguments from
// the argos files.
func splitEvaluateArgs(args []string) (configs []string, library, paramsFile string) {
	n := len(args)
	return args[:n-2], args[n-2], args[n-1]
}

func runEvaluate(cmd *cobra.Command, args []string) error {
	if flagPoolSize < 1 {
		return fmt.Errorf("--pool-size must be at least 1")
	}
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	trials := cfg.Defaults.AnalysisTrials
	if cmd.Flags().Changed("trials") {
		trials = flagTrials
	}
	if trials < 1 {
		return fmt.Errorf("--trials must be at least 1")
	}

	configs, library, paramsFile := splitEvaluateArgs(args)
	paramRows, err := params.Load(paramsFile)
	if err != nil {
		return err
	}
	logger.Debug("loaded params", zap.String("file", paramsFile), zap.Any("params", paramRows))

	exec, err := newExecutor(cfg)
	if err != nil {
		return err
	}

	started := now()
	output := flagOutput
	if output == "" {
		output = filepath.Join(cfg.Results.Dir, result.OutputName(started))
	}

	ctx, stop := signalContext()
	defer stop()

	rows := runner.EvaluateAll(ctx, runner.BuildTasks(configs, library, paramsFile, trials, flagVerbose), &runner.BatchOpts{
		Evaluator:  cfg.Evaluator.Path,
		PoolSize:   flagPoolSize,
		LaunchRate: flagLaunchRate,
		FailFast:   flagFailFast,
		Exec:       exec,
		Logger:     logger,
	})

	if err := result.WriteCostFile(output, rows); err != nil {
		return err
	}
	failed := runner.CountFailures(rows)
	meta := &result.RunMeta{
		RunID:      result.NewRunID(),
		Output:     output,
		Evaluator:  cfg.Evaluator.Path,
		Image:      cfg.Evaluator.Image,
		Library:    library,
		Params:     paramsFile,
		Trials:     trials,
		PoolSize:   flagPoolSize,
		Configs:    len(rows),
		Succeeded:  len(rows) - failed,
		Failed:     failed,
		StartedAt:  started.UTC(),
		FinishedAt: now().UTC(),
	}
	if rev, err := gitops.HeadRevision("."); err == nil {
		meta.Source = rev
	} else {
		logger.Debug("no source revision", zap.Error(err))
	}
	if err := result.WriteRunMeta(result.MetaPath(output), meta); err != nil {
		logger.Warn("writing run metadata", zap.Error(err))
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Wrote %s (%d configurations, %d failed)\n", output, len(rows), failed)
	if err := report.Generate(rows, "table", out); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("evaluation interrupted after writing %s: %w", output, err)
	}
	if failed > 0 && flagFailFast {
		return fmt.Errorf("%d of %d evaluations failed", failed, len(rows))
	}
	return nil
}
