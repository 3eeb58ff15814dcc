package evaluator

import (
	"errors"
	"math"
	"strconv"
	"strings"
)

// headerLines is the banner the evaluator prints before its per-trial lines.
const headerLines = 8

var ErrNoGeneratedFile = errors.New("evaluator output has no generated filename")

// GeneratedFilename returns the line before the trailing newline of the
// evaluator's output, which names the pose file it wrote.
func GeneratedFilename(stdout string) (string, error) {
	lines := strings.Split(stdout, "\n")
	if len(lines) < 2 {
		return "", ErrNoGeneratedFile
	}
	name := strings.TrimSuffix(lines[len(lines)-2], "\r")
	if name == "" {
		return "", ErrNoGeneratedFile
	}
	return name, nil
}

// ParseCosts extracts one cost per trial line. The banner and the final
// (empty) line are skipped; lines whose last field is not a number are ignored.
func ParseCosts(stdout string) []float64 {
	lines := strings.Split(stdout, "\n")
	if len(lines) <= headerLines+1 {
		return nil
	}
	var costs []float64
	for _, line := range lines[headerLines : len(lines)-1] {
		if cost, ok := ParseCostLine(line); ok {
			costs = append(costs, cost)
		}
	}
	return costs
}

// ParseCostLine parses the last whitespace-separated field of line. NaN and
// infinite values from a diverged trial are not costs.
func ParseCostLine(line string) (float64, bool) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return 0, false
	}
	cost, err := strconv.ParseFloat(fields[len(fields)-1], 64)
	if err != nil || math.IsNaN(cost) || math.IsInf(cost, 0) {
		return 0, false
	}
	return cost, true
}
