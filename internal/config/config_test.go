package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/signalnine/swarmeval/internal/config"
	"github.com/signalnine/swarmeval/internal/evaluator"
)

func TestLoadMinimal(t *testing.T) {
	cfg, err := config.Load("../../testdata/minimal.yaml")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Evaluator.Path != "./bin/evaluate" {
		t.Errorf("evaluator path: got %q", cfg.Evaluator.Path)
	}
	if cfg.Defaults.PoseTrials != 5 {
		t.Errorf("expected pose trials 5, got %d", cfg.Defaults.PoseTrials)
	}
	if cfg.Defaults.AnalysisTrials != 100 {
		t.Errorf("expected analysis trials 100, got %d", cfg.Defaults.AnalysisTrials)
	}
	if cfg.Evaluator.Timeout != 0 {
		t.Errorf("expected no timeout, got %v", cfg.Evaluator.Timeout)
	}
}

func TestLoadFull(t *testing.T) {
	cfg, err := config.Load("../../testdata/full.yaml")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Evaluator.Image == "" {
		t.Error("expected evaluator image to be set")
	}
	if cfg.Evaluator.Timeout != 45*time.Minute {
		t.Errorf("expected 45m timeout, got %v", cfg.Evaluator.Timeout)
	}
	if cfg.Defaults.AnalysisTrials != 50 {
		t.Errorf("expected analysis trials 50, got %d", cfg.Defaults.AnalysisTrials)
	}
	if cfg.Results.Dir != "results" {
		t.Errorf("expected results dir, got %q", cfg.Results.Dir)
	}
}

func TestLoadMissing(t *testing.T) {
	_, err := config.Load("nonexistent.yaml")
	if err == nil {
		t.Error("expected error for missing file")
	}
}

func TestLoadMissingDefaultFile(t *testing.T) {
	wd, _ := os.Getwd()
	dir := t.TempDir()
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	defer os.Chdir(wd)

	cfg, err := config.Load(config.DefaultFile)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Evaluator.Path != evaluator.DefaultPath {
		t.Errorf("evaluator path: got %q, want %q", cfg.Evaluator.Path, evaluator.DefaultPath)
	}
	if _, err := os.Stat(filepath.Join(dir, config.DefaultFile)); !os.IsNotExist(err) {
		t.Error("Load should not create the default file")
	}
}

func TestLoadInvalid(t *testing.T) {
	_, err := config.Load("../../testdata/invalid.yaml")
	if err == nil {
		t.Error("expected error for invalid config")
	}
}

func TestEvaluatorEnv(t *testing.T) {
	cfg, err := config.Load("../../testdata/full.yaml")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	env, err := cfg.EvaluatorEnv()
	if err != nil {
		t.Fatalf("EvaluatorEnv: %v", err)
	}
	if env["ARGOS_PLUGIN_PATH"] != "/opt/argos3/lib/argos3" {
		t.Errorf("ARGOS_PLUGIN_PATH: got %q", env["ARGOS_PLUGIN_PATH"])
	}
	if env["LD_LIBRARY_PATH"] != "/opt/argos3/lib" {
		t.Errorf("LD_LIBRARY_PATH: got %q", env["LD_LIBRARY_PATH"])
	}
	if env["SEED"] != "7" {
		t.Errorf("inline env should override env file, got SEED=%q", env["SEED"])
	}
	list := config.EnvList(env)
	if len(list) != 3 || list[0] != "ARGOS_PLUGIN_PATH=/opt/argos3/lib/argos3" {
		t.Errorf("unexpected env list %v", list)
	}
}

func TestEvaluatorEnvMissingFile(t *testing.T) {
	cfg := config.Default()
	cfg.Evaluator.EnvFile = "nonexistent.env"
	if _, err := cfg.EvaluatorEnv(); err == nil {
		t.Error("expected error for missing env file")
	}
}
