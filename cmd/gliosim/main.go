package main

import (
	"context"
	"errors"
	"fmt"
	"math"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/glioma-lab/gliosim/internal/config"
	"github.com/glioma-lab/gliosim/internal/metrics"
	"github.com/glioma-lab/gliosim/internal/sim"
	"github.com/glioma-lab/gliosim/internal/store"
	"github.com/glioma-lab/gliosim/internal/tui"
)

var (
	configFile string
	dx         float64
	dt         float64
	tf         float64
	x0         float64
	epsilon    float64
	dGray      float64
	dWhite     float64
	rho        float64
	cMax       float64
	tolerance  float64
	maxIter    int
	warmStart  bool

	days    []float64
	outJSON string
	outCSV  string
	speed   int
)

var (
	titleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true)
	labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(14)
	warnStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("203")).Bold(true)
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "gliosim",
		Short: "1D reaction-diffusion tumor growth solver",
	}

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "solve the full space-time problem",
		RunE:  runSolve,
	}
	addModelFlags(runCmd)
	runCmd.Flags().Float64SliceVar(&days, "days", []float64{1, 5, 10, 50}, "time slices to report")
	runCmd.Flags().StringVar(&outJSON, "out-json", "", "write the full run as JSON")
	runCmd.Flags().StringVar(&outCSV, "out-csv", "", "write the selected slices as CSV")

	plotCmd := &cobra.Command{
		Use:   "plot [run.json]",
		Short: "plot saved time slices",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().Float64SliceVar(&days, "days", []float64{1, 5, 10, 50}, "time slices to plot")

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "watch the profile evolve in the terminal",
		RunE:  runLive,
	}
	addModelFlags(liveCmd)
	liveCmd.Flags().IntVar(&speed, "speed", 25, "time levels per frame")

	configCmd := &cobra.Command{
		Use:   "config [path]",
		Short: "write the default configuration file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "gliosim.yaml"
			if len(args) == 1 {
				path = args[0]
			}
			if err := config.Save(path, config.Default()); err != nil {
				return err
			}
			fmt.Printf("wrote %s\n", path)
			return nil
		},
	}

	rootCmd.AddCommand(runCmd, plotCmd, liveCmd, configCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addModelFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().Float64Var(&dx, "dx", config.DefaultDx, "node spacing [mm]")
	cmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "time step [days]")
	cmd.Flags().Float64Var(&tf, "time", 50, "end time [days]")
	cmd.Flags().Float64Var(&x0, "x0", 25, "seed center [mm]")
	cmd.Flags().Float64Var(&epsilon, "epsilon", config.DefaultEpsilon, "seed width [mm]")
	cmd.Flags().Float64Var(&dGray, "d-gray", config.DefaultDGray, "gray matter diffusion coefficient")
	cmd.Flags().Float64Var(&dWhite, "d-white", 5*config.DefaultDGray, "white matter diffusion coefficient")
	cmd.Flags().Float64Var(&rho, "rho", config.DefaultRho, "growth rate [1/day]")
	cmd.Flags().Float64Var(&cMax, "c-max", config.DefaultCMax, "carrying capacity")
	cmd.Flags().Float64Var(&tolerance, "tolerance", config.DefaultTolerance, "Newton residual tolerance")
	cmd.Flags().IntVar(&maxIter, "max-iterations", config.DefaultMaxIter, "Newton iteration cap")
	cmd.Flags().BoolVar(&warmStart, "warm-start", false, "seed Newton from the previous level")
}

// buildConfig starts from the config file (or defaults) and lets any
// explicitly set flag override it.
func buildConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.Default()
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("dx") {
		cfg.Dx = dx
	}
	if flags.Changed("dt") {
		cfg.Dt = dt
	}
	if flags.Changed("time") {
		cfg.Tf = tf
	}
	if flags.Changed("x0") {
		cfg.X0 = x0
	}
	if flags.Changed("epsilon") {
		cfg.Epsilon = epsilon
	}
	if flags.Changed("d-gray") {
		cfg.DGray = dGray
	}
	if flags.Changed("d-white") {
		cfg.DWhite = dWhite
	}
	if flags.Changed("rho") {
		cfg.Rho = rho
	}
	if flags.Changed("c-max") {
		cfg.CMax = cMax
	}
	if flags.Changed("tolerance") {
		cfg.Tolerance = tolerance
	}
	if flags.Changed("max-iterations") {
		cfg.MaxIterations = maxIter
	}
	if flags.Changed("warm-start") {
		cfg.WarmStart = warmStart
	}
	return cfg, nil
}

func runSolve(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}
	driver, err := sim.NewDriver(cfg)
	if err != nil {
		return err
	}

	result, err := driver.Run(context.Background())
	if err != nil {
		var f sim.Failure
		if !errors.As(err, &f) {
			return err
		}
		// Non-convergence is flagged, not fatal: the run is complete
		// but some levels carry unconverged columns.
		fmt.Println(warnStyle.Render(err.Error()))
	}

	printSummary(cfg, result)

	levels, err := dayLevels(result, days)
	if err != nil {
		return err
	}
	for _, n := range levels {
		col, _ := result.Column(n)
		fmt.Println()
		fmt.Println(asciigraph.Plot(col,
			asciigraph.Height(12),
			asciigraph.Width(80),
			asciigraph.Caption(fmt.Sprintf("t = %g days", result.Times[n])),
		))
	}

	if outJSON != "" {
		if err := store.WriteJSON(outJSON, cfg, result); err != nil {
			return err
		}
		fmt.Printf("wrote %s\n", outJSON)
	}
	if outCSV != "" {
		if err := store.WriteCSV(outCSV, result, levels); err != nil {
			return err
		}
		fmt.Printf("wrote %s\n", outCSV)
	}
	return nil
}

func plotRun(cmd *cobra.Command, args []string) error {
	run, err := store.ReadJSON(args[0])
	if err != nil {
		return err
	}
	levels, err := dayLevels(run.Result, days)
	if err != nil {
		return err
	}
	for _, n := range levels {
		col, err := run.Result.Column(n)
		if err != nil {
			return err
		}
		fmt.Println(asciigraph.Plot(col,
			asciigraph.Height(12),
			asciigraph.Width(80),
			asciigraph.Caption(fmt.Sprintf("t = %g days", run.Result.Times[n])),
		))
		fmt.Println()
	}
	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}
	driver, err := sim.NewDriver(cfg)
	if err != nil {
		return err
	}
	return tui.Run(driver, cfg.Dx, speed)
}

func dayLevels(result *sim.Result, days []float64) ([]int, error) {
	if len(result.Times) < 2 {
		return nil, fmt.Errorf("run holds no time axis")
	}
	dt := result.Times[1] - result.Times[0]
	levels := make([]int, 0, len(days))
	for _, day := range days {
		n := int(math.Round((day - result.Times[0]) / dt))
		if n < 0 || n >= len(result.Columns) {
			return nil, fmt.Errorf("day %g outside the computed range", day)
		}
		if n > result.LevelsRun {
			continue // aborted run, slice never computed
		}
		levels = append(levels, n)
	}
	return levels, nil
}

func printSummary(cfg *config.Config, result *sim.Result) {
	final := result.Columns[result.LevelsRun]
	peak, peakIdx := metrics.Peak(final)

	fmt.Println(titleStyle.Render("gliosim run"))
	row := func(label, value string) {
		fmt.Println(labelStyle.Render(label) + value)
	}
	row("grid", fmt.Sprintf("%d nodes, dx=%g, dt=%g", len(result.X), cfg.Dx, cfg.Dt))
	row("levels", fmt.Sprintf("%d of %d", result.LevelsRun, len(result.Times)-1))
	row("final t", fmt.Sprintf("%g days", result.Times[result.LevelsRun]))
	row("peak", fmt.Sprintf("%.3f at x=%.1f", peak, result.X[peakIdx]))
	row("mass", fmt.Sprintf("%.3f", metrics.Mass(final, cfg.Dx)))
	if n := len(result.Failures); n > 0 {
		row("failures", warnStyle.Render(fmt.Sprintf("%d unconverged level(s)", n)))
	}
}
