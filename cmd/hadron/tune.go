package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/san-kum/hadron/internal/experiment"
	"github.com/san-kum/hadron/internal/gui"
	"github.com/san-kum/hadron/internal/optim"
	"github.com/san-kum/hadron/internal/scenes"
)

func runGUI(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}
	scene := ""
	if len(args) > 0 {
		scene = cfg.Scene
	}
	return gui.Run(registry, scene, gui.Options{Dt: cfg.Dt, Seed: cfg.Seed, Sound: sound})
}

// parseGrid reads key=lo:hi:n or key=a,b,c.
func parseGrid(arg string) (string, []float64, error) {
	key, rest, ok := strings.Cut(arg, "=")
	if !ok || key == "" {
		return "", nil, fmt.Errorf("invalid grid %q: want key=lo:hi:n or key=a,b,c", arg)
	}

	if parts := strings.Split(rest, ":"); len(parts) == 3 {
		lo, err1 := strconv.ParseFloat(parts[0], 64)
		hi, err2 := strconv.ParseFloat(parts[1], 64)
		n, err3 := strconv.Atoi(parts[2])
		if err1 != nil || err2 != nil || err3 != nil || n < 1 {
			return "", nil, fmt.Errorf("invalid grid range %q", rest)
		}
		return key, optim.Linspace(lo, hi, n), nil
	}

	var values []float64
	for _, f := range strings.Split(rest, ",") {
		v, err := strconv.ParseFloat(strings.TrimSpace(f), 64)
		if err != nil {
			return "", nil, fmt.Errorf("invalid grid value %q: %w", f, err)
		}
		values = append(values, v)
	}
	return key, values, nil
}

func tuneScene(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}
	if len(grid) == 0 {
		return fmt.Errorf("at least one --grid is required")
	}

	names := make([]string, 0, len(grid))
	ranges := make([][]float64, 0, len(grid))
	for _, g := range grid {
		key, values, err := parseGrid(g)
		if err != nil {
			return err
		}
		names = append(names, key)
		ranges = append(ranges, values)
	}

	build := func(p map[string]float64) (*experiment.Experiment, error) {
		c := cfg.Clone()
		c.Params = scenes.Params(c.Params).Merge(p)
		return experiment.New(c, registry)
	}

	fmt.Printf("tuning %s on %s over %v\n\n", cfg.Scene, metric, names)
	best, val, trials, err := optim.NewGridSearch(names, ranges).Search(context.Background(), build, metric)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "%s\t%s\n", strings.ToUpper(strings.Join(names, "\t")), strings.ToUpper(metric))
	for _, tr := range optim.Ranked(trials) {
		cols := make([]string, len(names))
		for i, n := range names {
			cols[i] = strconv.FormatFloat(tr.Params[n], 'g', 6, 64)
		}
		fmt.Fprintf(w, "%s\t%.6g\n", strings.Join(cols, "\t"), tr.Value)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Printf("\nbest: %s -> %.6g\n", scenes.Params(best), val)
	return nil
}
