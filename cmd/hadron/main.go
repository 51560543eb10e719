package main

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/san-kum/hadron/internal/config"
	"github.com/san-kum/hadron/internal/scenes"
	"github.com/san-kum/hadron/internal/viz"
)

var (
	dataDir     string
	dt          float64
	duration    float64
	maxDt       float64
	seed        int64
	recordEvery int
	params      []string
	configFile  string
	preset      string
	live        bool
	sound       bool
	frameRate   int
	palette     string
	// analysis
	particleIdx  int
	xAxis, yAxis string
	axis         string
	section      string
	threshold    float64
	perturbation float64
	// sweep
	sweepParam string
	sweepLo    float64
	sweepHi    float64
	sweepSteps int
	transient  float64
	// bench
	runs int
	// tune
	grid   []string
	metric string
	// export
	outFile      string
	svgX, svgY   string
	maxParticles int
)

var registry = scenes.NewRegistry()

func main() {
	rootCmd := &cobra.Command{
		Use:   "hadron",
		Short: "particle physics playground",
		RunE: func(cmd *cobra.Command, args []string) error {
			return viz.RunInteractive(registry, config.DefaultDt, 1)
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".hadron", "data directory")
	rootCmd.PersistentFlags().StringVar(&palette, "palette", "cherenkov", "colour palette: "+strings.Join(viz.PaletteNames(), ", "))
	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		return viz.UsePalette(palette)
	}

	runCmd := &cobra.Command{
		Use:   "run [scene]",
		Short: "run simulation and save the recorded frames",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runSimulation,
	}
	addRunFlags(runCmd)
	runCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	runCmd.Flags().BoolVar(&live, "live", false, "print a text view while running in real time")
	runCmd.Flags().IntVar(&frameRate, "fps", 30, "frame rate for --live")
	runCmd.Flags().BoolVar(&sound, "sound", false, "play an ambient tone that follows the kinetic energy")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a particle's coordinates over time",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().IntVar(&particleIdx, "particle", 0, "particle index")

	phaseCmd := &cobra.Command{
		Use:   "phase [run_id]",
		Short: "phase space plot",
		Args:  cobra.ExactArgs(1),
		RunE:  phasePlot,
	}
	phaseCmd.Flags().IntVar(&particleIdx, "particle", 0, "particle index")
	phaseCmd.Flags().StringVar(&xAxis, "x-axis", "x", "axis for x: x, y, z, vx, vy, vz")
	phaseCmd.Flags().StringVar(&yAxis, "y-axis", "vx", "axis for y: x, y, z, vx, vy, vz")
	phaseCmd.Flags().StringVar(&section, "poincare", "", "plot a Poincare section crossing this axis instead")
	phaseCmd.Flags().Float64Var(&threshold, "threshold", 0, "crossing value for --poincare")

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "frequency analysis of a saved run",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}
	analyzeCmd.Flags().IntVar(&particleIdx, "particle", 0, "particle index")
	analyzeCmd.Flags().StringVar(&axis, "axis", "x", "axis to analyze")

	lyapunovCmd := &cobra.Command{
		Use:   "lyapunov [scene]",
		Short: "estimate the largest Lyapunov exponent of a scene",
		Args:  cobra.ExactArgs(1),
		RunE:  lyapunovScene,
	}
	addRunFlags(lyapunovCmd)
	lyapunovCmd.Flags().Float64Var(&perturbation, "perturbation", 1e-8, "initial separation")

	sweepCmd := &cobra.Command{
		Use:   "sweep [scene]",
		Short: "bifurcation sweep over one scene parameter",
		Args:  cobra.ExactArgs(1),
		RunE:  sweepScene,
	}
	addRunFlags(sweepCmd)
	sweepCmd.Flags().StringVar(&sweepParam, "vary", "k", "parameter to sweep")
	sweepCmd.Flags().Float64Var(&sweepLo, "from", 1, "first parameter value")
	sweepCmd.Flags().Float64Var(&sweepHi, "to", 10, "last parameter value")
	sweepCmd.Flags().IntVar(&sweepSteps, "steps", 40, "number of parameter values")
	sweepCmd.Flags().Float64Var(&transient, "transient", 5, "seconds skipped before recording")
	sweepCmd.Flags().IntVar(&particleIdx, "particle", 0, "particle index")
	sweepCmd.Flags().StringVar(&axis, "axis", "x", "axis whose maxima are recorded")

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export run metadata and frames as JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}
	exportCmd.Flags().StringVarP(&outFile, "output", "o", "", "output file (default stdout)")

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg [run_id]",
		Short: "export particle trajectories as SVG",
		Args:  cobra.ExactArgs(1),
		RunE:  exportSVG,
	}
	exportSVGCmd.Flags().StringVarP(&outFile, "output", "o", "", "output file (default <run_id>.svg)")
	exportSVGCmd.Flags().StringVar(&svgX, "x-axis", "x", "horizontal axis")
	exportSVGCmd.Flags().StringVar(&svgY, "y-axis", "y", "vertical axis")
	exportSVGCmd.Flags().IntVar(&maxParticles, "max", 50, "draw at most this many particles")

	benchCmd := &cobra.Command{
		Use:   "bench [scene]",
		Short: "benchmark a scene over parallel seeded runs",
		Args:  cobra.ExactArgs(1),
		RunE:  benchScene,
	}
	addRunFlags(benchCmd)
	benchCmd.Flags().IntVar(&runs, "runs", 8, "number of parallel runs")

	liveCmd := &cobra.Command{
		Use:   "live [scene]",
		Short: "run a scene in the interactive 3D view",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runLive,
	}
	addRunFlags(liveCmd)

	guiCmd := &cobra.Command{
		Use:   "gui [scene]",
		Short: "run a scene in a 3D window",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runGUI,
	}
	addRunFlags(guiCmd)
	guiCmd.Flags().BoolVar(&sound, "sound", false, "play an ambient tone that follows the kinetic energy")

	tuneCmd := &cobra.Command{
		Use:   "tune [scene]",
		Short: "grid search scene parameters for the lowest metric",
		Args:  cobra.ExactArgs(1),
		RunE:  tuneScene,
	}
	addRunFlags(tuneCmd)
	tuneCmd.Flags().StringArrayVarP(&grid, "grid", "g", nil, "parameter grid as key=lo:hi:n or key=a,b,c (repeatable)")
	tuneCmd.Flags().StringVar(&metric, "metric", "energy_drift", "metric to minimise")

	scenesCmd := &cobra.Command{
		Use:   "scenes",
		Short: "list scenes and their parameters",
		RunE:  listScenes,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets [scene]",
		Short: "list available presets for a scene",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			presets := config.ListPresets(args[0])
			if len(presets) == 0 {
				fmt.Printf("no presets for scene: %s\n", args[0])
				return nil
			}
			fmt.Printf("presets for %s:\n", args[0])
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			for _, p := range presets {
				cfg := config.GetPreset(args[0], p)
				fmt.Fprintf(w, "  %s\tdt=%g\tduration=%g\t%s\n", p, cfg.Dt, cfg.Duration, scenes.Params(cfg.Params))
			}
			return w.Flush()
		},
	}

	scriptCmd := &cobra.Command{
		Use:   "script [file]",
		Short: "run a scripted scenario",
		Args:  cobra.ExactArgs(1),
		RunE:  runScript,
	}

	rootCmd.AddCommand(runCmd, listCmd, plotCmd, phaseCmd, analyzeCmd, lyapunovCmd, sweepCmd,
		exportCmd, exportSVGCmd, benchCmd, liveCmd, guiCmd, tuneCmd, scenesCmd, presetsCmd, scriptCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addRunFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
	cmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "timestep")
	cmd.Flags().Float64Var(&duration, "time", config.DefaultDuration, "duration")
	cmd.Flags().Float64Var(&maxDt, "max-dt", config.DefaultMaxDt, "largest step the simulator takes")
	cmd.Flags().Int64Var(&seed, "seed", 1, "random seed")
	cmd.Flags().IntVar(&recordEvery, "record-every", config.DefaultRecordEvery, "record a frame every n steps")
	cmd.Flags().StringArrayVarP(&params, "param", "p", nil, "scene parameter as key=value (repeatable)")
}

// resolveConfig layers defaults, preset, config file and changed flags, in
// that order of increasing precedence.
func resolveConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg := config.DefaultConfig()
	scene := ""
	if len(args) > 0 {
		scene = args[0]
	}

	if preset != "" {
		if scene == "" {
			return nil, fmt.Errorf("--preset needs a scene")
		}
		p := config.GetPreset(scene, preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets(scene))
		}
		cfg = p
	}

	if configFile != "" {
		fileCfg, err := config.Read(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg.Overlay(fileCfg)
	}

	if scene != "" {
		cfg.Scene = scene
	}
	flags := cmd.Flags()
	if flags.Changed("dt") {
		cfg.Dt = dt
	}
	if flags.Changed("time") {
		cfg.Duration = duration
	}
	if flags.Changed("max-dt") {
		cfg.MaxDt = maxDt
	}
	if flags.Changed("seed") {
		cfg.Seed = seed
	}
	if flags.Changed("record-every") {
		cfg.RecordEvery = recordEvery
	}
	if len(params) > 0 {
		p, err := scenes.ParseParams(params)
		if err != nil {
			return nil, err
		}
		cfg.Overlay(&config.Config{Params: p})
	}

	return cfg, cfg.Validate()
}

func listScenes(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SCENE\tDESCRIPTION\tPARAMS")
	for _, name := range registry.List() {
		fmt.Fprintf(w, "%s\t%s\t%s\n", name, registry.Description(name), registry.Defaults(name))
	}
	return w.Flush()
}
