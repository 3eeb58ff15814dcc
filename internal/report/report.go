package report

import (
	"encoding/json"
	"fmt"
	"io"
	"slices"
	"strings"
	"text/tabwriter"

	"github.com/signalnine/swarmeval/internal/result"
	"gonum.org/v1/gonum/stat"
)

type ConfigSummary struct {
	Config string  `json:"config"`
	Trials int     `json:"trials"`
	Failed bool    `json:"failed"`
	Error  string  `json:"error,omitempty"`
	Mean   float64 `json:"mean"`
	StdDev float64 `json:"std_dev"`
	Median float64 `json:"median"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
}

// Generate summarizes rows and writes them in the requested format.
func Generate(rows []result.CostRow, format string, w io.Writer) error {
	summaries := Summarize(rows)

	switch format {
	case "markdown":
		return writeMarkdown(summaries, w)
	case "json":
		return writeJSON(summaries, w)
	default:
		return writeTable(summaries, w)
	}
}

// Summarize computes per-configuration cost statistics, in row order.
func Summarize(rows []result.CostRow) []ConfigSummary {
	summaries := make([]ConfigSummary, 0, len(rows))
	for _, r := range rows {
		s := ConfigSummary{Config: r.Config, Trials: len(r.Costs)}
		if !r.Ok() {
			s.Failed = true
			s.Error = r.Err
			summaries = append(summaries, s)
			continue
		}
		if len(r.Costs) > 0 {
			sorted := slices.Clone(r.Costs)
			slices.Sort(sorted)
			s.Mean, s.StdDev = stat.MeanStdDev(sorted, nil)
			s.Median = stat.Quantile(0.5, stat.Empirical, sorted, nil)
			s.Min = sorted[0]
			s.Max = sorted[len(sorted)-1]
		}
		summaries = append(summaries, s)
	}
	return summaries
}

func writeTable(summaries []ConfigSummary, w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "CONFIG\tTRIALS\tMEAN\tSTD DEV\tMEDIAN\tMIN\tMAX")
	fmt.Fprintln(tw, strings.Repeat("-", 80))
	for _, s := range summaries {
		if s.Failed {
			fmt.Fprintf(tw, "%s\tFAILED\t%s\t\t\t\t\n", s.Config, s.Error)
			continue
		}
		fmt.Fprintf(tw, "%s\t%d\t%.4f\t%.4f\t%.4f\t%.4f\t%.4f\n",
			s.Config, s.Trials, s.Mean, s.StdDev, s.Median, s.Min, s.Max)
	}
	return tw.Flush()
}

func writeMarkdown(summaries []ConfigSummary, w io.Writer) error {
	fmt.Fprintln(w, "| Config | Trials | Mean | Std Dev | Median | Min | Max |")
	fmt.Fprintln(w, "|---|---|---|---|---|---|---|")
	for _, s := range summaries {
		if s.Failed {
			fmt.Fprintf(w, "| %s | FAILED: %s | | | | | |\n", s.Config, s.Error)
			continue
		}
		fmt.Fprintf(w, "| %s | %d | %.4f | %.4f | %.4f | %.4f | %.4f |\n",
			s.Config, s.Trials, s.Mean, s.StdDev, s.Median, s.Min, s.Max)
	}
	return nil
}

func writeJSON(summaries []ConfigSummary, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(summaries)
}
