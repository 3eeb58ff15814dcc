package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/signalnine/swarmeval/internal/config"
	"github.com/signalnine/swarmeval/internal/docker"
	"github.com/signalnine/swarmeval/internal/evaluator"
	"github.com/signalnine/swarmeval/internal/logging"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	cfgFile       string
	flagEvaluator string
	flagImage     string
	flagTimeout   time.Duration
	flagVerbose   bool

	logger *zap.Logger

	// now is replaced in tests to pin output file names.
	now = time.Now
)

func addCommonFlags(root *cobra.Command) {
	root.PersistentFlags().StringVar(&cfgFile, "config", config.DefaultFile, "config file path")
	root.PersistentFlags().StringVar(&flagEvaluator, "evaluator", "", "path to the evaluate binary (default from config)")
	root.PersistentFlags().StringVar(&flagImage, "image", "", "run the evaluator inside this Docker image")
	root.PersistentFlags().DurationVar(&flagTimeout, "timeout", 0, "per-run evaluator timeout (0 disables)")
	root.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		var err error
		logger, err = logging.New(flagVerbose)
		return err
	}
	root.PersistentPostRun = func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	}
}

// loadConfig reads the config file and applies command-line overrides.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, err
	}
	if flagEvaluator != "" {
		cfg.Evaluator.Path = flagEvaluator
	}
	if cmd.Flags().Changed("image") {
		cfg.Evaluator.Image = flagImage
	}
	if cmd.Flags().Changed("timeout") {
		cfg.Evaluator.Timeout = flagTimeout
	}
	return cfg, nil
}

func newExecutor(cfg *config.Config) (evaluator.Executor, error) {
	env, err := cfg.EvaluatorEnv()
	if err != nil {
		return nil, err
	}
	if cfg.Evaluator.Image == "" {
		return &evaluator.LocalExecutor{
			Timeout: cfg.Evaluator.Timeout,
			Env:     config.EnvList(env),
		}, nil
	}
	wd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("resolving working dir: %w", err)
	}
	return &docker.Executor{
		Image:   cfg.Evaluator.Image,
		Dir:     wd,
		Env:     env,
		Timeout: cfg.Evaluator.Timeout,
		UserID:  fmt.Sprintf("%d:%d", os.Getuid(), os.Getgid()),
	}, nil
}

func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}
