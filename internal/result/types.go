package result

import (
	"time"

	"github.com/signalnine/swarmeval/internal/gitops"
)

// CostResult is the outcome of scoring one configuration: either the
// per-trial costs, or the reason the evaluator failed.
type CostResult struct {
	Costs []float64
	Err   string
}

func Success(costs []float64) CostResult {
	return CostResult{Costs: costs}
}

func Failure(reason string) CostResult {
	if reason == "" {
		reason = "unknown failure"
	}
	return CostResult{Err: reason}
}

func (r CostResult) Ok() bool {
	return r.Err == ""
}

// CostRow pairs a configuration file with its result, as stored in the
// analysis CSV.
type CostRow struct {
	Config string
	CostResult
}

type RunMeta struct {
	RunID      string           `json:"run_id"`
	Output     string           `json:"output"`
	Evaluator  string           `json:"evaluator"`
	Image      string           `json:"image,omitempty"`
	Library    string           `json:"library"`
	Params     string           `json:"params"`
	Source     *gitops.Revision `json:"source,omitempty"`
	Trials     int              `json:"trials"`
	PoolSize   int              `json:"pool_size"`
	Configs    int              `json:"configs"`
	Succeeded  int              `json:"succeeded"`
	Failed     int              `json:"failed"`
	StartedAt  time.Time        `json:"started_at"`
	FinishedAt time.Time        `json:"finished_at"`
}
