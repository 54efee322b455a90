package main

import (
	"context"
	"fmt"
	"math"
	"os"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/davigp/odelab/internal/config"
	"github.com/davigp/odelab/internal/exact"
	"github.com/davigp/odelab/internal/render"
	"github.com/davigp/odelab/internal/sim"
	"github.com/davigp/odelab/internal/storage"
	"github.com/davigp/odelab/internal/tui"
)

var (
	dataDir    string
	funcSrc    string
	x0         float64
	y0         float64
	xEnd       float64
	h          float64
	method     string
	iterations int
	decimals   int
	timeoutSec float64
	configFile string
	preset     string
	save       bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "odelab",
		Short: "first-order ode solver lab",
		RunE: func(cmd *cobra.Command, args []string) error {
			// Default to interactive mode when no command given
			return tui.Run(newRunner(config.DefaultTimeoutSec))
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".odelab", "data directory")

	solveCmd := &cobra.Command{
		Use:   "solve",
		Short: "solve an initial value problem",
		RunE:  solveProblem,
	}
	addProblemFlags(solveCmd)
	solveCmd.Flags().BoolVar(&save, "save", false, "save the run to the data directory")

	plotCmd := &cobra.Command{
		Use:   "plot",
		Short: "solve and plot an initial value problem",
		RunE:  plotProblem,
	}
	addProblemFlags(plotCmd)

	compareCmd := &cobra.Command{
		Use:   "compare",
		Short: "compare euler and heun accuracy across step sizes",
		RunE:  compareMethods,
	}
	addProblemFlags(compareCmd)

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list saved runs",
		RunE:  listRuns,
	}

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export a saved run as json",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "print a saved run's point data as csv",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := storage.New(dataDir).PointsCSV(args[0])
			if err != nil {
				return fmt.Errorf("run %s not found: %w", args[0], err)
			}
			_, err = os.Stdout.Write(data)
			return err
		},
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list built-in problems",
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tEQUATION\tINTERVAL\tH\tMETHOD")
			for _, name := range config.ListPresets() {
				p := config.GetPreset(name)
				fmt.Fprintf(w, "%s\ty' = %s\t[%g, %g]\t%g\t%s\n",
					name, p.Function, p.X0, p.XEnd, p.H, p.Method)
			}
			return w.Flush()
		},
	}

	rootCmd.AddCommand(solveCmd, plotCmd, compareCmd, listCmd, exportCmd, exportCSVCmd, presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func addProblemFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&funcSrc, "func", "y", "right-hand side f(x, y)")
	cmd.Flags().Float64Var(&x0, "x0", 0, "initial x")
	cmd.Flags().Float64Var(&y0, "y0", 1, "initial y")
	cmd.Flags().Float64Var(&xEnd, "xend", config.DefaultXEnd, "end of interval")
	cmd.Flags().Float64Var(&h, "h", config.DefaultH, "step size")
	cmd.Flags().StringVar(&method, "method", "both", "integration method (euler, heun, both)")
	cmd.Flags().IntVar(&iterations, "iterations", config.DefaultIterations, "heun corrector passes")
	cmd.Flags().IntVar(&decimals, "decimals", config.DefaultDecimals, "table precision")
	cmd.Flags().Float64Var(&timeoutSec, "timeout", config.DefaultTimeoutSec, "exact solve timeout in seconds")
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "use a built-in problem")
}

func newRunner(timeoutSec float64) *sim.Runner {
	timeout := time.Duration(timeoutSec * float64(time.Second))
	return sim.NewRunner(exact.New(exact.WithTimeout(timeout)))
}

// resolveConfig merges preset, config file, and flags; flags that were set
// explicitly win.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		p := config.GetPreset(preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset %q (see odelab presets)", preset)
		}
		cfg = p
	}
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("func") {
		cfg.Function = funcSrc
	}
	if flags.Changed("x0") {
		cfg.X0 = x0
	}
	if flags.Changed("y0") {
		cfg.Y0 = y0
	}
	if flags.Changed("xend") {
		cfg.XEnd = xEnd
	}
	if flags.Changed("h") {
		cfg.H = h
	}
	if flags.Changed("method") {
		cfg.Method = method
	}
	if flags.Changed("iterations") {
		cfg.Iterations = iterations
	}
	if flags.Changed("decimals") {
		cfg.Decimals = decimals
	}
	if flags.Changed("timeout") {
		cfg.TimeoutSec = timeoutSec
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func paramsFromConfig(cfg *config.Config) (sim.Params, error) {
	m, err := sim.ParseMethod(cfg.Method)
	if err != nil {
		return sim.Params{}, err
	}
	return sim.Params{
		Source:     cfg.Function,
		X0:         cfg.X0,
		Y0:         cfg.Y0,
		H:          cfg.H,
		XEnd:       cfg.XEnd,
		Method:     m,
		Iterations: cfg.Iterations,
	}, nil
}

func solveProblem(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	p, err := paramsFromConfig(cfg)
	if err != nil {
		return err
	}

	res := newRunner(cfg.TimeoutSec).Run(context.Background(), p)
	if res.Err != "" {
		return fmt.Errorf("%s", res.Err)
	}

	render.Summary(os.Stdout, res)
	render.Table(os.Stdout, res, cfg.Decimals)

	if save {
		st := storage.New(dataDir)
		if err := st.Init(); err != nil {
			return err
		}
		runID, err := st.Save(res)
		if err != nil {
			return err
		}
		fmt.Printf("\nsaved run: %s\n", runID)
	}
	return nil
}

func plotProblem(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	p, err := paramsFromConfig(cfg)
	if err != nil {
		return err
	}

	runner := newRunner(cfg.TimeoutSec)
	res := runner.Run(context.Background(), p)
	if res.Err != "" {
		return fmt.Errorf("%s", res.Err)
	}

	render.Summary(os.Stdout, res)
	render.Curves(os.Stdout, res)
	if res.HasExact() {
		render.Errors(os.Stdout, res)

		// Smooth exact curve on a dense grid, independent of the step size.
		if _, ys := runner.SolveExactDense(context.Background(), p, 200); ys != nil {
			for i, y := range ys {
				if math.IsNaN(y) || math.IsInf(y, 0) {
					if i > 0 {
						ys[i] = ys[i-1]
					} else {
						ys[i] = 0
					}
				}
			}
			graph := asciigraph.Plot(ys,
				asciigraph.Height(10),
				asciigraph.Width(80),
				asciigraph.Caption(fmt.Sprintf("y = %s", res.ExactDisplay)),
			)
			fmt.Println(graph)
			fmt.Println()
		}
	}
	return nil
}

// compareMethods runs both integrators across halving step sizes and
// tabulates the endpoint error against the exact solution.
func compareMethods(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	p, err := paramsFromConfig(cfg)
	if err != nil {
		return err
	}
	p.Method = sim.MethodBoth

	runner := newRunner(cfg.TimeoutSec)

	probe := runner.Run(context.Background(), p)
	if probe.Err != "" {
		return fmt.Errorf("%s", probe.Err)
	}
	if !probe.HasExact() {
		return fmt.Errorf("no closed-form solution for y' = %s; nothing to compare against", p.Source)
	}

	fmt.Printf("y' = %s, y(%g) = %g, x in [%g, %g], exact y = %s\n\n",
		p.Source, p.X0, p.Y0, p.X0, p.XEnd, probe.ExactDisplay)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(w, "H\tSTEPS\tEULER ERR\tHEUN ERR\tRATIO\t")

	step := p.H
	for i := 0; i < 4; i++ {
		run := p
		run.H = step
		res := runner.Run(context.Background(), run)
		if res.Err != "" {
			return fmt.Errorf("h = %g: %s", step, res.Err)
		}
		last := len(res.Euler) - 1
		exactEnd := res.Exact[last]
		eulerErr := math.Abs(res.Euler[last].Y - exactEnd)
		heunErr := math.Abs(res.Heun[last].YIterated - exactEnd)
		ratio := 0.0
		if heunErr > 0 {
			ratio = eulerErr / heunErr
		}
		fmt.Fprintf(w, "%g\t%d\t%.3e\t%.3e\t%.1fx\t\n", step, last, eulerErr, heunErr, ratio)
		step /= 2
	}
	return w.Flush()
}


func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tEQUATION\tTIME\tINTERVAL\tH\tMETHOD\tEXACT")

	for _, run := range runs {
		exactCol := "-"
		if run.ExactDisplay != "" {
			exactCol = run.ExactDisplay
		}
		fmt.Fprintf(w, "%s\ty' = %s\t%s\t[%g, %g]\t%g\t%s\t%s\n",
			run.ID,
			run.Function,
			run.Timestamp.Format("2006-01-02 15:04"),
			run.X0, run.XEnd,
			run.H,
			run.Method,
			exactCol)
	}
	return w.Flush()
}

func exportRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return fmt.Errorf("run %s not found: %w", args[0], err)
	}

	// Re-run from the stored parameters; the result carries every column the
	// export needs.
	cfg := &config.Config{
		Function: meta.Function, Method: meta.Method,
		X0: meta.X0, Y0: meta.Y0, XEnd: meta.XEnd, H: meta.H,
		Iterations: meta.Iterations, TimeoutSec: config.DefaultTimeoutSec,
	}
	p, err := paramsFromConfig(cfg)
	if err != nil {
		return err
	}
	res := newRunner(cfg.TimeoutSec).Run(context.Background(), p)
	if res.Err != "" {
		return fmt.Errorf("%s", res.Err)
	}
	return storage.ExportJSON(os.Stdout, res)
}
