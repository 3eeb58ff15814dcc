package boxplot

import (
	"errors"
	"fmt"
	"image/color"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// BoxWidth is the width of each box in class-count units.
const BoxWidth = 0.5

type RenderOpts struct {
	Output string
	Width  vg.Length
	Height vg.Length
}

// Render draws the worst-case reference line and one box per class count and
// saves the figure; the format follows the output extension.
func Render(series Series, opts RenderOpts) error {
	if len(series) == 0 {
		return errors.New("nothing to plot")
	}
	if opts.Width == 0 {
		opts.Width = 6 * vg.Inch
	}
	if opts.Height == 0 {
		opts.Height = 4 * vg.Inch
	}

	p := plot.New()
	p.X.Label.Text = "Number of Classes"
	p.Y.Label.Text = "Cost"
	p.Legend.Top = true

	xMin, xMax := series[0].ClassCount-1, series[len(series)-1].ClassCount+1
	p.X.Min, p.X.Max = xMin, xMax

	worst := make(plotter.XYs, len(series))
	for i, pt := range series {
		worst[i].X = pt.ClassCount
		worst[i].Y = pt.WorstCase
	}
	line, err := plotter.NewLine(worst)
	if err != nil {
		return fmt.Errorf("building worst case line: %w", err)
	}
	line.LineStyle.Color = color.RGBA{R: 255, A: 255}
	line.LineStyle.Width = vg.Points(4)
	line.LineStyle.Dashes = []vg.Length{vg.Points(8), vg.Points(6)}
	p.Add(line)
	p.Legend.Add("worst case", line)

	// The data area is roughly 85% of the canvas once axes are drawn.
	perUnit := float64(opts.Width) * 0.85 / (xMax - xMin)
	boxWidth := vg.Length(math.Max(BoxWidth*perUnit, 2))
	for _, pt := range series {
		if len(pt.Costs) == 0 {
			continue
		}
		box, err := plotter.NewBoxPlot(boxWidth, pt.ClassCount, plotter.Values(pt.Costs))
		if err != nil {
			return fmt.Errorf("building box for %s: %w", pt.Config, err)
		}
		p.Add(box)
	}

	if err := p.Save(opts.Width, opts.Height, opts.Output); err != nil {
		return fmt.Errorf("saving plot: %w", err)
	}
	return nil
}
