package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/signalnine/swarmeval/internal/evaluator"
	"gopkg.in/yaml.v3"
)

// DefaultFile is read when present; a missing default file means built-in
// defaults.
const DefaultFile = "swarmeval.yaml"

type Config struct {
	Evaluator Evaluator `yaml:"evaluator"`
	Defaults  Defaults  `yaml:"defaults"`
	Results   Results   `yaml:"results"`
}

type Evaluator struct {
	Path    string            `yaml:"path"`
	Image   string            `yaml:"image"`
	Timeout time.Duration     `yaml:"timeout"`
	EnvFile string            `yaml:"env_file"`
	Env     map[string]string `yaml:"env"`
}

type Defaults struct {
	PoseTrials     int `yaml:"pose_trials"`
	AnalysisTrials int `yaml:"analysis_trials"`
}

type Results struct {
	Dir string `yaml:"dir"`
}

func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

// Load reads path. A missing file is only tolerated when path is the
// default location.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if path == DefaultFile && errors.Is(err, fs.ErrNotExist) {
			return Default(), nil
		}
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	applyDefaults(&cfg)
	if cfg.Evaluator.EnvFile != "" && !filepath.IsAbs(cfg.Evaluator.EnvFile) {
		cfg.Evaluator.EnvFile = filepath.Join(filepath.Dir(path), cfg.Evaluator.EnvFile)
	}
	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return &cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Evaluator.Path == "" {
		cfg.Evaluator.Path = evaluator.DefaultPath
	}
	if cfg.Defaults.PoseTrials == 0 {
		cfg.Defaults.PoseTrials = 5
	}
	if cfg.Defaults.AnalysisTrials == 0 {
		cfg.Defaults.AnalysisTrials = 100
	}
	if cfg.Results.Dir == "" {
		cfg.Results.Dir = "."
	}
}

func validate(cfg *Config) error {
	if cfg.Defaults.PoseTrials < 1 {
		return fmt.Errorf("defaults.pose_trials must be at least 1")
	}
	if cfg.Defaults.AnalysisTrials < 1 {
		return fmt.Errorf("defaults.analysis_trials must be at least 1")
	}
	if cfg.Evaluator.Timeout < 0 {
		return fmt.Errorf("evaluator.timeout must not be negative")
	}
	return nil
}
