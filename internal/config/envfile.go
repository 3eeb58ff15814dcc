package config

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
	"sort"
	"strings"
)

// ParseEnvFile reads KEY=VALUE lines, ignoring blanks and comments and
// accepting an optional "export " prefix and surrounding quotes.
func ParseEnvFile(path string) (map[string]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading env file %s: %w", path, err)
	}
	env := make(map[string]string)
	sc := bufio.NewScanner(bytes.NewReader(data))
	for sc.Scan() {
		s := strings.TrimSpace(sc.Text())
		if s == "" || s[0] == '#' {
			continue
		}
		s = strings.TrimPrefix(s, "export ")
		eqIdx := strings.IndexByte(s, '=')
		if eqIdx < 0 {
			continue
		}
		env[strings.TrimSpace(s[:eqIdx])] = stripQuotes(s[eqIdx+1:])
	}
	return env, sc.Err()
}

func stripQuotes(s string) string {
	if len(s) >= 2 {
		if (s[0] == '\'' && s[len(s)-1] == '\'') || (s[0] == '"' && s[len(s)-1] == '"') {
			return s[1 : len(s)-1]
		}
	}
	return s
}

// EvaluatorEnv merges the env file with inline variables; inline wins.
func (c *Config) EvaluatorEnv() (map[string]string, error) {
	env := make(map[string]string)
	if c.Evaluator.EnvFile != "" {
		fileEnv, err := ParseEnvFile(c.Evaluator.EnvFile)
		if err != nil {
			return nil, err
		}
		for k, v := range fileEnv {
			env[k] = v
		}
	}
	for k, v := range c.Evaluator.Env {
		env[k] = v
	}
	return env, nil
}

// EnvList renders env as sorted KEY=VALUE pairs.
func EnvList(env map[string]string) []string {
	list := make([]string, 0, len(env))
	for k, v := range env {
		list = append(list, k+"="+v)
	}
	sort.Strings(list)
	return list
}
