// Package render turns simulation results into terminal output: aligned
// comparison tables and ascii plots.
package render

import (
	"fmt"
	"io"
	"math"
	"strings"
	"text/tabwriter"

	"github.com/davigp/odelab/internal/sim"
)

// relErrEps guards the relative-error division; below this the exact value
// is treated as zero and the error column reads "undef".
const relErrEps = 1e-12

// Summary writes the run parameters as a short header block.
func Summary(w io.Writer, res *sim.Result) {
	p := res.Params
	fmt.Fprintf(w, "y' = %s\n", p.Source)
	fmt.Fprintf(w, "y(%g) = %g, x in [%g, %g], h = %g, method = %s",
		p.X0, p.Y0, p.X0, p.XEnd, p.H, p.Method)
	if p.Method != sim.MethodEuler {
		fmt.Fprintf(w, ", corrector passes = %d", p.Iterations)
	}
	fmt.Fprintln(w)
	if res.HasExact() {
		fmt.Fprintf(w, "exact solution: y = %s\n", res.ExactDisplay)
	} else {
		fmt.Fprintln(w, "exact solution: not found")
	}
	fmt.Fprintln(w)
}

// Table writes the point-by-point comparison table. Columns adapt to the
// method that ran and to whether a closed form is available; decimals
// controls the precision of the value columns.
func Table(w io.Writer, res *sim.Result, decimals int) {
	if res.Err != "" {
		fmt.Fprintf(w, "run failed: %s\n", res.Err)
		return
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	defer tw.Flush()

	header := []string{"I", "X"}
	if res.HasExact() {
		header = append(header, "EXACT")
	}
	if res.Euler != nil {
		header = append(header, "EULER")
		if res.HasExact() {
			header = append(header, "ERR%")
		}
	}
	if res.Heun != nil {
		header = append(header, "HEUN(1)")
		if res.HasExact() {
			header = append(header, "ERR%")
		}
		header = append(header, fmt.Sprintf("HEUN(%d)", res.Params.Iterations))
		if res.HasExact() {
			header = append(header, "ERR%")
		}
	}
	fmt.Fprintln(tw, strings.Join(header, "\t")+"\t")

	grid := res.Grid()
	for i, x := range grid {
		row := []string{fmt.Sprintf("%d", i), formatValue(x, decimals)}
		var exact float64
		if res.HasExact() {
			exact = res.Exact[i]
			row = append(row, formatValue(exact, decimals))
		}
		if res.Euler != nil {
			row = append(row, formatValue(res.Euler[i].Y, decimals))
			if res.HasExact() {
				row = append(row, formatRelErr(res.Euler[i].Y, exact))
			}
		}
		if res.Heun != nil {
			row = append(row, formatValue(res.Heun[i].YSingle, decimals))
			if res.HasExact() {
				row = append(row, formatRelErr(res.Heun[i].YSingle, exact))
			}
			row = append(row, formatValue(res.Heun[i].YIterated, decimals))
			if res.HasExact() {
				row = append(row, formatRelErr(res.Heun[i].YIterated, exact))
			}
		}
		fmt.Fprintln(tw, strings.Join(row, "\t")+"\t")
	}
}

func formatValue(v float64, decimals int) string {
	if math.IsNaN(v) {
		return "N/A"
	}
	return fmt.Sprintf("%.*f", decimals, v)
}

// formatRelErr renders |approx-exact|/|exact| as a percentage, "undef" when
// the exact value is (numerically) zero.
func formatRelErr(approx, exact float64) string {
	if math.IsNaN(exact) {
		return "N/A"
	}
	if math.Abs(exact) < relErrEps {
		return "undef"
	}
	return fmt.Sprintf("%.4f", math.Abs(approx-exact)/math.Abs(exact)*100)
}
