package runner

import (
	"context"
	"fmt"
	"strings"

	"github.com/signalnine/swarmeval/internal/evaluator"
	"github.com/signalnine/swarmeval/internal/result"
	"go.uber.org/zap"
)

type PoseOpts struct {
	Evaluator string
	Params    string
	Configs   []string
	Trials    int
	Manifest  string
	Exec      evaluator.Executor
	Logger    *zap.Logger
}

// GeneratePoseFiles runs the evaluator once per configuration, in order, and
// records each generated filename in the manifest. The first failure stops
// the batch; lines already written stay in the manifest.
func GeneratePoseFiles(ctx context.Context, opts *PoseOpts) (int, error) {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	manifest, err := result.CreateManifest(opts.Manifest)
	if err != nil {
		return 0, err
	}
	defer manifest.Close()

	for _, cfg := range opts.Configs {
		fmt.Printf("Processing %s...\n", cfg)
		argv := evaluator.PoseCommand(opts.Evaluator, cfg, opts.Params, opts.Trials)
		out, err := opts.Exec.Run(ctx, argv)
		if err != nil {
			return manifest.Lines(), fmt.Errorf("%s: %w", cfg, err)
		}
		if out.Failed() {
			log.Error("subprocess failed",
				zap.String("command", strings.Join(argv, " ")),
				zap.Int("exit_code", out.ExitCode),
				zap.Bool("timed_out", out.TimedOut))
			return manifest.Lines(), fmt.Errorf("evaluating %s: exit status %d", cfg, out.ExitCode)
		}
		name, err := evaluator.GeneratedFilename(out.Stdout)
		if err != nil {
			return manifest.Lines(), fmt.Errorf("%s: %w", cfg, err)
		}
		if err := manifest.Append(name); err != nil {
			return manifest.Lines(), err
		}
		log.Debug("generated pose file", zap.String("config", cfg), zap.String("file", name), zap.Duration("duration", out.Duration))
	}
	return manifest.Lines(), nil
}
