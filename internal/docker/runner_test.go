package docker_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/signalnine/swarmeval/internal/docker"
	"github.com/signalnine/swarmeval/internal/evaluator"
)

func requireDocker(t *testing.T) {
	t.Helper()
	if os.Getenv("SWARMEVAL_DOCKER_TESTS") == "" {
		t.Skip("set SWARMEVAL_DOCKER_TESTS=1 to run Docker tests")
	}
}

func TestExecutorCapturesStdout(t *testing.T) {
	requireDocker(t)
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	exec := &docker.Executor{Image: "alpine:latest", Dir: t.TempDir(), Timeout: 30 * time.Second}
	out, err := exec.Run(ctx, []string{"sh", "-c", "echo noise >&2; echo running; echo poses_1.dat"})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if out.Failed() {
		t.Fatalf("unexpected failure: %+v", out)
	}
	name, err := evaluator.GeneratedFilename(out.Stdout)
	if err != nil {
		t.Fatalf("GeneratedFilename: %v", err)
	}
	if name != "poses_1.dat" {
		t.Errorf("name: got %q, want %q", name, "poses_1.dat")
	}
}

func TestRunContainerTimeout(t *testing.T) {
	requireDocker(t)
	result, err := docker.RunContainer(context.Background(), &docker.RunOpts{
		Image:   "alpine:latest",
		Command: []string{"sleep", "300"},
		WorkDir: t.TempDir(),
		Timeout: 2 * time.Second,
	})
	if err != nil {
		t.Fatalf("RunContainer: %v", err)
	}
	if !result.TimedOut {
		t.Error("expected timeout")
	}
	if result.ExitCode != 124 {
		t.Errorf("exit code: got %d, want 124", result.ExitCode)
	}
}

func TestRunContainerCrash(t *testing.T) {
	requireDocker(t)
	result, err := docker.RunContainer(context.Background(), &docker.RunOpts{
		Image:   "alpine:latest",
		Command: []string{"sh", "-c", "exit 1"},
		WorkDir: t.TempDir(),
	})
	if err != nil {
		t.Fatalf("RunContainer: %v", err)
	}
	if result.ExitCode != 1 {
		t.Errorf("exit code: got %d, want 1", result.ExitCode)
	}
}
