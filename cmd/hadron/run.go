package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sort"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/san-kum/hadron/internal/audio"
	"github.com/san-kum/hadron/internal/automation"
	"github.com/san-kum/hadron/internal/experiment"
	"github.com/san-kum/hadron/internal/scenes"
	"github.com/san-kum/hadron/internal/sim"
	"github.com/san-kum/hadron/internal/storage"
	"github.com/san-kum/hadron/internal/tui"
	"github.com/san-kum/hadron/internal/viz"
)

// realtime holds each step back until the wall clock catches up with the
// simulation clock.
type realtime struct{ start time.Time }

func (r *realtime) OnStep(w *sim.World, t float64) {
	if r.start.IsZero() {
		r.start = time.Now()
	}
	if ahead := time.Duration(t*float64(time.Second)) - time.Since(r.start); ahead > 0 {
		time.Sleep(ahead)
	}
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	exp, err := experiment.New(cfg, registry)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if sound {
		s := audio.NewSonifier(1000)
		if err := s.Start(); err != nil {
			fmt.Printf("audio disabled: %v\n", err)
		} else {
			exp.GetSimulator().AddObserver(s)
			defer s.Stop()
		}
	}

	if live {
		r := tui.NewLiveRenderer(os.Stdout, cfg.Scene, 50, frameRate)
		exp.GetSimulator().AddObserver(&realtime{})
		exp.GetSimulator().AddObserver(r)
		r.Start()
		defer r.Stop()
	}

	fmt.Printf("running %s simulation (%s)...\n", cfg.Scene, exp.Scene().Params)
	start := time.Now()

	result, err := exp.Run(ctx)
	if err != nil {
		return err
	}

	elapsed := time.Since(start)

	runID, err := st.Save(exp.Metadata(), result)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("steps: %d, frames: %d\n", result.StepsTaken, len(result.Frames))
	fmt.Printf("energy drift: %.6f\n", result.EnergyDrift)
	for _, e := range result.Errors {
		fmt.Printf("error: %v\n", e)
	}
	printMetrics(result.Metrics)

	return nil
}

func printMetrics(m map[string]float64) {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)

	fmt.Println("\nmetrics:")
	for _, name := range names {
		fmt.Printf("  %s: %.6f\n", name, m[name])
	}
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
	fmt.Fprintln(w, "ID\tSCENE\tTIME\tDURATION\tDT\tPARTICLES\tDRIFT")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%.2fs\t%.4fs\t%d\t%.2e\n",
			run.ID,
			run.Scene,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Duration,
			run.Dt,
			run.Particles,
			run.EnergyDrift,
		)
	}

	return w.Flush()
}

func benchScene(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}
	if runs <= 0 {
		return fmt.Errorf("--runs must be positive")
	}

	simCfg := sim.Config{
		Dt:          cfg.Dt,
		Duration:    cfg.Duration,
		MaxDt:       cfg.MaxDt,
		RecordEvery: cfg.RecordEvery,
	}
	ensemble := sim.NewEnsemble(registry.Builder(cfg.Scene, cfg.Params), runs, cfg.Seed)

	fmt.Printf("benchmarking %s: %d runs\n\n", cfg.Scene, runs)
	start := time.Now()
	results, err := ensemble.Run(context.Background(), simCfg)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SEED\tSTEPS\tDRIFT\tKE\tALIVE")
	total := 0
	for i, r := range results {
		total += r.StepsTaken
		fmt.Fprintf(w, "%d\t%d\t%.2e\t%.2f\t%.1f\n",
			cfg.Seed+int64(i), r.StepsTaken, r.EnergyDrift,
			r.Metrics["kinetic_energy"], r.Metrics["alive"])
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Printf("\n%d steps in %v (%.0f steps/sec)\n", total, elapsed, float64(total)/elapsed.Seconds())
	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}
	if len(args) == 0 {
		return viz.RunInteractive(registry, cfg.Dt, cfg.Seed)
	}

	rebuild := func(p scenes.Params) (*scenes.Scene, error) {
		return registry.Get(cfg.Scene, p, cfg.Seed)
	}
	s, err := rebuild(cfg.Params)
	if err != nil {
		return err
	}
	return viz.RunLive(s, cfg.Dt, rebuild)
}

func runScript(cmd *cobra.Command, args []string) error {
	scenario, err := automation.LoadScenario(args[0])
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	if scenario.Name != "" {
		fmt.Printf("scenario: %s\n", scenario.Name)
	}
	r := &automation.Runner{Registry: registry, Store: st, Out: os.Stdout}
	results, err := r.Run(context.Background(), scenario)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "\nSTEP\tSCENE\tSTEPS\tDRIFT\tRUN")
	for i, sr := range results {
		fmt.Fprintf(w, "%d\t%s\t%d\t%.2e\t%s\n", i+1, sr.Scene, sr.Result.StepsTaken, sr.Result.EnergyDrift, sr.RunID)
	}
	return w.Flush()
}
