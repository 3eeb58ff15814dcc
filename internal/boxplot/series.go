// Package boxplot turns an analysis CSV into a cost-versus-class-count box
// plot.
package boxplot

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"sort"
	"strconv"

	"github.com/signalnine/swarmeval/internal/result"
)

// WorstCaseCost is the reference cost of a swarm that achieves nothing over
// the evaluator's default 180 second trial.
const WorstCaseCost = -1.0 / 10

var ErrNoClassCount = errors.New("no class count in configuration name")

var classCountRe = regexp.MustCompile(`(\d+)_class`)

// ExtractClassCount returns the number preceding the first "_class" in name.
func ExtractClassCount(name string) (float64, bool) {
	m := classCountRe.FindStringSubmatch(name)
	if m == nil {
		return 0, false
	}
	n, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

type Point struct {
	Config     string
	ClassCount float64
	Costs      []float64
	WorstCase  float64
	// Dropped counts NaN and infinite costs left out of Costs.
	Dropped int
}

// Series is sorted ascending by class count.
type Series []Point

func (s Series) ClassCounts() []float64 {
	out := make([]float64, len(s))
	for i, p := range s {
		out[i] = p.ClassCount
	}
	return out
}

func (s Series) WorstCases() []float64 {
	out := make([]float64, len(s))
	for i, p := range s {
		out[i] = p.WorstCase
	}
	return out
}

// BuildSeries extracts the class count of every successful row and sorts the
// rows by it, keeping input order among equal counts. Failed rows are
// returned separately. A successful row without a class count is an error.
// Non-finite costs cannot be drawn and are dropped from their point.
func BuildSeries(rows []result.CostRow) (Series, []result.CostRow, error) {
	var (
		series  Series
		skipped []result.CostRow
	)
	for _, row := range rows {
		if !row.Ok() {
			skipped = append(skipped, row)
			continue
		}
		n, ok := ExtractClassCount(row.Config)
		if !ok {
			return nil, nil, fmt.Errorf("%w: %s", ErrNoClassCount, row.Config)
		}
		costs, dropped := finiteCosts(row.Costs)
		series = append(series, Point{
			Config:     row.Config,
			ClassCount: n,
			Costs:      costs,
			WorstCase:  WorstCaseCost,
			Dropped:    dropped,
		})
	}
	sort.SliceStable(series, func(i, j int) bool {
		return series[i].ClassCount < series[j].ClassCount
	})
	return series, skipped, nil
}

func finiteCosts(costs []float64) ([]float64, int) {
	out := make([]float64, 0, len(costs))
	for _, c := range costs {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			continue
		}
		out = append(out, c)
	}
	return out, len(costs) - len(out)
}
