package main

import (
	"fmt"
	"os"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/hadron/internal/analysis"
	"github.com/san-kum/hadron/internal/export"
	"github.com/san-kum/hadron/internal/scenes"
	"github.com/san-kum/hadron/internal/sim"
	"github.com/san-kum/hadron/internal/storage"
)

func loadRun(runID string) (*storage.RunMetadata, []sim.Frame, error) {
	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return nil, nil, err
	}
	frames, err := st.LoadFrames(runID)
	if err != nil {
		return nil, nil, err
	}
	if len(frames) == 0 {
		return nil, nil, fmt.Errorf("run %s has no frames", runID)
	}
	return meta, frames, nil
}

func plotRun(cmd *cobra.Command, args []string) error {
	meta, frames, err := loadRun(args[0])
	if err != nil {
		return err
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("scene: %s\n", meta.Scene)
	fmt.Printf("samples: %d, particle: %d\n\n", len(frames), particleIdx)

	for _, a := range []analysis.Axis{analysis.AxisX, analysis.AxisY, analysis.AxisZ} {
		_, data := analysis.Series(frames, particleIdx, a)
		if len(data) == 0 {
			return fmt.Errorf("particle %d not in run", particleIdx)
		}
		graph := asciigraph.Plot(data,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(fmt.Sprintf("%s vs time", a)),
		)
		fmt.Println(graph)
		fmt.Println()
	}

	alive := make([]float64, len(frames))
	for i, f := range frames {
		for _, a := range f.Alive {
			if a {
				alive[i]++
			}
		}
	}
	fmt.Println(asciigraph.Plot(alive,
		asciigraph.Height(6),
		asciigraph.Width(80),
		asciigraph.Caption("alive particles"),
	))

	return nil
}

func phasePlot(cmd *cobra.Command, args []string) error {
	meta, frames, err := loadRun(args[0])
	if err != nil {
		return err
	}
	xa, err := analysis.ParseAxis(xAxis)
	if err != nil {
		return err
	}
	ya, err := analysis.ParseAxis(yAxis)
	if err != nil {
		return err
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("scene: %s, particle: %d\n", meta.Scene, particleIdx)

	if section != "" {
		ca, err := analysis.ParseAxis(section)
		if err != nil {
			return err
		}
		fmt.Printf("poincare section: %s = %g, plotting %s vs %s\n\n", ca, threshold, ya, xa)
		ps := analysis.NewPoincareSection(frames, particleIdx, ca, threshold, xa, ya)
		fmt.Println(analysis.PoincareSectionToASCII(ps, 70, 20))
		return nil
	}

	fmt.Printf("x-axis: %s, y-axis: %s\n\n", xa, ya)
	portrait := analysis.PhasePortrait(frames, particleIdx, xa, ya)
	if portrait == nil {
		return fmt.Errorf("particle %d not in run", particleIdx)
	}
	fmt.Println(analysis.PhasePortraitToASCII(portrait, 70, 20))
	return nil
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	meta, frames, err := loadRun(args[0])
	if err != nil {
		return err
	}
	a, err := analysis.ParseAxis(axis)
	if err != nil {
		return err
	}

	times, data := analysis.Series(frames, particleIdx, a)
	if len(data) < 4 {
		return fmt.Errorf("not enough samples for particle %d", particleIdx)
	}
	sampleDt := (times[len(times)-1] - times[0]) / float64(len(times)-1)

	fmt.Printf("frequency analysis: %s\n", meta.ID)
	fmt.Printf("scene: %s, particle %d, axis %s\n\n", meta.Scene, particleIdx, a)

	ps := analysis.PowerSpectrum(data)
	plotData := ps[:max(len(ps)/4, 2)]

	graph := asciigraph.Plot(plotData,
		asciigraph.Height(15),
		asciigraph.Width(80),
		asciigraph.Caption(fmt.Sprintf("power spectrum (%s)", a)),
	)
	fmt.Println(graph)
	fmt.Println()

	freq := analysis.DominantFrequency(data, sampleDt)
	fmt.Printf("dominant frequency: %.3f hz\n", freq)
	if freq > 0 {
		fmt.Printf("period: %.3f s\n", 1.0/freq)
	}

	return nil
}

func lyapunovScene(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}

	build := func() (*sim.World, error) {
		s, err := registry.Get(cfg.Scene, cfg.Params, cfg.Seed)
		if err != nil {
			return nil, err
		}
		return s.World, nil
	}

	fmt.Printf("lyapunov exponent: %s over %gs at dt=%g\n", cfg.Scene, cfg.Duration, cfg.Dt)
	lambda, err := analysis.LyapunovExponent(build, perturbation, cfg.Dt, cfg.Duration)
	if err != nil {
		return err
	}

	fmt.Printf("lambda: %.6f\n", lambda)
	switch {
	case lambda > 0.01:
		fmt.Println("nearby trajectories diverge (chaotic)")
	case lambda < -0.01:
		fmt.Println("nearby trajectories converge")
	default:
		fmt.Println("nearby trajectories stay close (regular)")
	}
	return nil
}

func sweepScene(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}
	a, err := analysis.ParseAxis(axis)
	if err != nil {
		return err
	}
	if _, ok := registry.Defaults(cfg.Scene)[sweepParam]; !ok {
		return fmt.Errorf("scene %s has no parameter %q (have %s)", cfg.Scene, sweepParam, registry.Defaults(cfg.Scene))
	}

	build := func(v float64) (*sim.World, error) {
		p := scenes.Params(cfg.Params).Merge(scenes.Params{sweepParam: v})
		s, err := registry.Get(cfg.Scene, p, cfg.Seed)
		if err != nil {
			return nil, err
		}
		return s.World, nil
	}

	fmt.Printf("sweeping %s from %g to %g (%d values), %s maxima of particle %d\n\n",
		sweepParam, sweepLo, sweepHi, sweepSteps, a, particleIdx)
	data, err := analysis.Sweep(build, sweepLo, sweepHi, sweepSteps, particleIdx, a, cfg.Dt, transient, cfg.Duration)
	if err != nil {
		return err
	}

	fmt.Println(analysis.SweepToASCII(data, 70, 20))
	return nil
}

func exportJSON(cmd *cobra.Command, args []string) error {
	meta, frames, err := loadRun(args[0])
	if err != nil {
		return err
	}

	data := storage.NewExportData(*meta, frames)
	if outFile == "" {
		return storage.WriteJSON(os.Stdout, data)
	}
	if err := storage.ExportJSON(outFile, data); err != nil {
		return err
	}
	fmt.Printf("exported to %s\n", outFile)
	return nil
}

func exportSVG(cmd *cobra.Command, args []string) error {
	meta, frames, err := loadRun(args[0])
	if err != nil {
		return err
	}
	xa, err := analysis.ParseAxis(svgX)
	if err != nil {
		return err
	}
	ya, err := analysis.ParseAxis(svgY)
	if err != nil {
		return err
	}

	svg := export.TrajectoryToSVG(frames, xa, ya, 800, 600, maxParticles)
	if svg == "" {
		return fmt.Errorf("run %s has nothing to draw", meta.ID)
	}

	path := outFile
	if path == "" {
		path = meta.ID + ".svg"
	}
	if err := os.WriteFile(path, []byte(svg), 0644); err != nil {
		return err
	}
	fmt.Printf("exported to %s\n", path)
	return nil
}
