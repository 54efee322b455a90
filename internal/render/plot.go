package render

import (
	"fmt"
	"io"
	"math"

	"github.com/guptarohit/asciigraph"

	"github.com/davigp/odelab/internal/sim"
)

const (
	plotHeight = 15
	plotWidth  = 80
)

// Curves writes a combined plot of every trajectory the run produced, plus
// the exact solution when one is available.
func Curves(w io.Writer, res *sim.Result) {
	if res.Err != "" {
		fmt.Fprintf(w, "nothing to plot: %s\n", res.Err)
		return
	}

	var series [][]float64
	var legends []string
	if res.Euler != nil {
		series = append(series, pointsY(res))
		legends = append(legends, "euler")
	}
	if res.Heun != nil {
		ys := make([]float64, len(res.Heun))
		for i, p := range res.Heun {
			ys[i] = p.YIterated
		}
		series = append(series, ys)
		legends = append(legends, "heun")
	}
	if res.HasExact() {
		series = append(series, sanitize(res.Exact))
		legends = append(legends, "exact")
	}
	if len(series) == 0 {
		fmt.Fprintln(w, "nothing to plot")
		return
	}

	graph := asciigraph.PlotMany(series,
		asciigraph.Height(plotHeight),
		asciigraph.Width(plotWidth),
		asciigraph.Caption(fmt.Sprintf("y' = %s", res.Params.Source)),
		asciigraph.SeriesColors(asciigraph.Blue, asciigraph.Green, asciigraph.Red),
		asciigraph.SeriesLegends(legends...),
	)
	fmt.Fprintln(w, graph)
	fmt.Fprintln(w)
}

// Errors plots the absolute error of each method against the exact
// solution. A no-op when the run has no closed form to compare against.
func Errors(w io.Writer, res *sim.Result) {
	if res.Err != "" || !res.HasExact() {
		fmt.Fprintln(w, "no exact solution to compare against")
		return
	}

	var series [][]float64
	var legends []string
	if res.Euler != nil {
		errs := make([]float64, len(res.Euler))
		for i, p := range res.Euler {
			errs[i] = absErr(p.Y, res.Exact[i])
		}
		series = append(series, errs)
		legends = append(legends, "euler")
	}
	if res.Heun != nil {
		errs := make([]float64, len(res.Heun))
		for i, p := range res.Heun {
			errs[i] = absErr(p.YIterated, res.Exact[i])
		}
		series = append(series, errs)
		legends = append(legends, "heun")
	}

	graph := asciigraph.PlotMany(series,
		asciigraph.Height(plotHeight),
		asciigraph.Width(plotWidth),
		asciigraph.Caption("absolute error"),
		asciigraph.SeriesColors(asciigraph.Blue, asciigraph.Green),
		asciigraph.SeriesLegends(legends...),
	)
	fmt.Fprintln(w, graph)
	fmt.Fprintln(w)
}

func pointsY(res *sim.Result) []float64 {
	ys := make([]float64, len(res.Euler))
	for i, p := range res.Euler {
		ys[i] = p.Y
	}
	return ys
}

func absErr(approx, exact float64) float64 {
	if math.IsNaN(exact) {
		return 0
	}
	return math.Abs(approx - exact)
}

// sanitize replaces NaN samples with the last finite value so asciigraph
// does not choke on domain gaps in the exact solution.
func sanitize(ys []float64) []float64 {
	out := make([]float64, len(ys))
	last := 0.0
	for i, y := range ys {
		if math.IsNaN(y) || math.IsInf(y, 0) {
			out[i] = last
			continue
		}
		out[i] = y
		last = y
	}
	return out
}
