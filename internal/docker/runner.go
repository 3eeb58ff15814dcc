package docker

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/moby/moby/api/pkg/stdcopy"
	"github.com/moby/moby/api/types/container"
	"github.com/moby/moby/api/types/mount"
	"github.com/moby/moby/client"
	"github.com/signalnine/swarmeval/internal/evaluator"
)

type RunOpts struct {
	Image   string
	Command []string
	// WorkDir is bind-mounted at the same path inside the container and used
	// as its working directory, so relative paths resolve identically.
	WorkDir string
	Env     map[string]string
	Timeout time.Duration
	UserID  string
}

type RunResult struct {
	ExitCode int
	TimedOut bool
	Duration time.Duration
	Stdout   []byte
}

func RunContainer(ctx context.Context, opts *RunOpts) (*RunResult, error) {
	cli, err := client.NewClientWithOpts(client.FromEnv, client.WithAPIVersionNegotiation())
	if err != nil {
		return nil, fmt.Errorf("creating docker client: %w", err)
	}
	defer cli.Close()

	envSlice := make([]string, 0, len(opts.Env))
	for k, v := range opts.Env {
		envSlice = append(envSlice, k+"="+v)
	}

	initTrue := true
	hostCfg := &container.HostConfig{
		Mounts: []mount.Mount{{
			Type:   mount.TypeBind,
			Source: opts.WorkDir,
			Target: opts.WorkDir,
		}},
		Init: &initTrue,
	}
	containerCfg := &container.Config{
		Image:      opts.Image,
		Cmd:        opts.Command,
		Env:        envSlice,
		WorkingDir: opts.WorkDir,
		Labels:     map[string]string{"swarmeval": "true"},
	}
	if opts.UserID != "" {
		containerCfg.User = opts.UserID
	}

	createResp, err := cli.ContainerCreate(ctx, client.ContainerCreateOptions{
		Config:     containerCfg,
		HostConfig: hostCfg,
	})
	if err != nil {
		return nil, fmt.Errorf("creating container: %w", err)
	}
	containerID := createResp.ID
	defer func() {
		cli.ContainerRemove(context.Background(), containerID, client.ContainerRemoveOptions{Force: true})
	}()

	start := time.Now()
	if _, err := cli.ContainerStart(ctx, containerID, client.ContainerStartOptions{}); err != nil {
		return nil, fmt.Errorf("starting container: %w", err)
	}

	waitCtx := ctx
	if opts.Timeout > 0 {
		var cancel context.CancelFunc
		waitCtx, cancel = context.WithTimeout(ctx, opts.Timeout)
		defer cancel()
	}

	waitResult := cli.ContainerWait(waitCtx, containerID, client.ContainerWaitOptions{
		Condition: container.WaitConditionNotRunning,
	})
	for {
		select {
		case err := <-waitResult.Error:
			if err != nil {
				cli.ContainerKill(context.Background(), containerID, client.ContainerKillOptions{Signal: "SIGKILL"})
				if ctx.Err() != nil {
					return nil, ctx.Err()
				}
				if !errors.Is(waitCtx.Err(), context.DeadlineExceeded) {
					return nil, fmt.Errorf("waiting for container: %w", err)
				}
				stdout, _ := containerStdout(cli, containerID)
				return &RunResult{
					ExitCode: 124,
					TimedOut: true,
					Duration: time.Since(start),
					Stdout:   stdout,
				}, nil
			}
			// nil error means no error on this channel; wait for result
		case status := <-waitResult.Result:
			stdout, err := containerStdout(cli, containerID)
			if err != nil {
				return nil, err
			}
			return &RunResult{
				ExitCode: int(status.StatusCode),
				Duration: time.Since(start),
				Stdout:   stdout,
			}, nil
		}
	}
}

// containerStdout collects the container's stdout, forwarding stderr to ours.
func containerStdout(cli *client.Client, containerID string) ([]byte, error) {
	logReader, err := cli.ContainerLogs(context.Background(), containerID, client.ContainerLogsOptions{ShowStdout: true, ShowStderr: true})
	if err != nil {
		return nil, fmt.Errorf("reading container logs: %w", err)
	}
	defer logReader.Close()
	return splitLogs(logReader, os.Stderr)
}

// splitLogs returns the stdout frames of a multiplexed log stream and copies
// the stderr frames to stderr.
func splitLogs(r io.Reader, stderr io.Writer) ([]byte, error) {
	var stdout bytes.Buffer
	if _, err := stdcopy.StdCopy(&stdout, stderr, r); err != nil {
		return nil, fmt.Errorf("reading container logs: %w", err)
	}
	return stdout.Bytes(), nil
}

// Executor runs evaluator commands inside Image with Dir mounted.
type Executor struct {
	Image   string
	Dir     string
	Env     map[string]string
	Timeout time.Duration
	UserID  string
}

func (e *Executor) Run(ctx context.Context, argv []string) (*evaluator.Output, error) {
	if len(argv) == 0 {
		return nil, errors.New("empty command")
	}
	res, err := RunContainer(ctx, &RunOpts{
		Image:   e.Image,
		Command: argv,
		WorkDir: e.Dir,
		Env:     e.Env,
		Timeout: e.Timeout,
		UserID:  e.UserID,
	})
	if err != nil {
		return nil, fmt.Errorf("running %s in %s: %w", argv[0], e.Image, err)
	}
	return &evaluator.Output{
		Stdout:   string(res.Stdout),
		ExitCode: res.ExitCode,
		TimedOut: res.TimedOut,
		Duration: res.Duration,
	}, nil
}
