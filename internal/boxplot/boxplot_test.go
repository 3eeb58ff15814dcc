package boxplot_test

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/signalnine/swarmeval/internal/boxplot"
	"github.com/signalnine/swarmeval/internal/result"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractClassCount(t *testing.T) {
	tests := []struct {
		name string
		want float64
		ok   bool
	}{
		{"20_class_arena.argos", 20, true},
		{"experiments/cfg_5_class.argos", 5, true},
		{"arena_3_classes.argos", 3, true},
		{"2_class_then_7_class.argos", 2, true},
		{"arena.argos", 0, false},
		{"_class.argos", 0, false},
		{"", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := boxplot.ExtractClassCount(tt.name)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func row(cfg string, costs ...float64) result.CostRow {
	return result.CostRow{Config: cfg, CostResult: result.Success(costs)}
}

func TestBuildSeriesSorts(t *testing.T) {
	rows := []result.CostRow{
		row("16_class.argos", 4),
		row("2_class.argos", 1),
		row("8_class.argos", 3),
		row("4_class.argos", 2),
	}
	series, skipped, err := boxplot.BuildSeries(rows)
	require.NoError(t, err)
	assert.Empty(t, skipped)
	assert.Equal(t, []float64{2, 4, 8, 16}, series.ClassCounts())
	for i := 1; i < len(series); i++ {
		assert.Less(t, series[i-1].ClassCount, series[i].ClassCount)
	}
	for i, pt := range series {
		assert.Equal(t, []float64{float64(i + 1)}, pt.Costs, "costs stay with their class count")
	}
	assert.Equal(t, []float64{-0.1, -0.1, -0.1, -0.1}, series.WorstCases())
}

func TestBuildSeriesStable(t *testing.T) {
	rows := []result.CostRow{
		row("b_4_class.argos", 1),
		row("a_2_class.argos", 2),
		row("c_4_class.argos", 3),
	}
	series, _, err := boxplot.BuildSeries(rows)
	require.NoError(t, err)
	assert.Equal(t, "a_2_class.argos", series[0].Config)
	assert.Equal(t, "b_4_class.argos", series[1].Config)
	assert.Equal(t, "c_4_class.argos", series[2].Config)
}

func TestBuildSeriesMissingClassCount(t *testing.T) {
	_, _, err := boxplot.BuildSeries([]result.CostRow{row("3_class.argos", 1), row("arena.argos", 1)})
	require.Error(t, err)
	assert.True(t, errors.Is(err, boxplot.ErrNoClassCount))
	assert.Contains(t, err.Error(), "arena.argos")
}

func TestBuildSeriesSkipsFailures(t *testing.T) {
	rows := []result.CostRow{
		row("3_class.argos", 1),
		{Config: "arena.argos", CostResult: result.Failure("exit status 1")},
	}
	series, skipped, err := boxplot.BuildSeries(rows)
	require.NoError(t, err)
	assert.Len(t, series, 1)
	require.Len(t, skipped, 1)
	assert.Equal(t, "arena.argos", skipped[0].Config)
}

func TestCSVRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, result.WriteCostRows(&buf, []result.CostRow{row("cfg_5_class.argos", 1.0, 2.0, 3.0)}))
	rows, err := result.ReadCostRows(&buf)
	require.NoError(t, err)
	series, _, err := boxplot.BuildSeries(rows)
	require.NoError(t, err)
	require.Len(t, series, 1)
	assert.Equal(t, 5.0, series[0].ClassCount)
	assert.Equal(t, []float64{1.0, 2.0, 3.0}, series[0].Costs)
}

func TestRender(t *testing.T) {
	series, _, err := boxplot.BuildSeries([]result.CostRow{
		row("2_class.argos", -0.5, -0.4, -0.45, -0.3),
		row("4_class.argos", -0.35, -0.2, -0.25),
		row("8_class.argos"),
	})
	require.NoError(t, err)

	out := filepath.Join(t.TempDir(), "plot.png")
	require.NoError(t, boxplot.Render(series, boxplot.RenderOpts{Output: out}))
	info, err := os.Stat(out)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func TestRenderEmpty(t *testing.T) {
	err := boxplot.Render(nil, boxplot.RenderOpts{Output: filepath.Join(t.TempDir(), "plot.png")})
	assert.Error(t, err)
}

func TestRenderDropsNonFiniteCosts(t *testing.T) {
	rows, err := result.ReadCostRows(strings.NewReader("2_class.argos,-0.5,nan,-0.4\n4_class.argos,-0.3,+Inf,-0.2\n"))
	require.NoError(t, err)
	series, _, err := boxplot.BuildSeries(rows)
	require.NoError(t, err)
	require.Len(t, series, 2)
	assert.Equal(t, []float64{-0.5, -0.4}, series[0].Costs)
	assert.Equal(t, 1, series[0].Dropped)
	assert.Equal(t, []float64{-0.3, -0.2}, series[1].Costs)
	assert.Equal(t, 1, series[1].Dropped)

	out := filepath.Join(t.TempDir(), "plot.png")
	require.NoError(t, boxplot.Render(series, boxplot.RenderOpts{Output: out}))
}
