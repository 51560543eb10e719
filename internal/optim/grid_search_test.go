package optim

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/san-kum/hadron/internal/config"
	"github.com/san-kum/hadron/internal/experiment"
	"github.com/san-kum/hadron/internal/scenes"
)

func orbitExperiment(params map[string]float64) (*experiment.Experiment, error) {
	cfg := config.DefaultConfig()
	cfg.Scene = "orbit"
	cfg.Dt = 0.01
	cfg.Duration = 0.5
	cfg.Params = params
	return experiment.New(cfg, scenes.NewRegistry())
}

func TestGridSearch(t *testing.T) {
	g := NewGridSearch([]string{"radius", "well"}, [][]float64{{5, 10}, {50, 100, 200}})

	best, val, trials, err := g.Search(context.Background(), orbitExperiment, "kinetic_energy")
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if len(trials) != 6 {
		t.Errorf("expected 6 trials, got %d", len(trials))
	}
	// orbital speed is sqrt(G) at any radius, so the weakest well wins
	if best["well"] != 50 {
		t.Errorf("best = %v, want well 50", best)
	}
	if math.IsInf(val, 0) {
		t.Error("best value was never set")
	}
	if r := Ranked(trials); r[0].Value != val {
		t.Errorf("ranked head %g, want %g", r[0].Value, val)
	}
}

func TestGridSearchUnknownMetric(t *testing.T) {
	g := NewGridSearch([]string{"radius"}, [][]float64{{5}})
	if _, _, _, err := g.Search(context.Background(), orbitExperiment, "nope"); err == nil {
		t.Error("expected unknown metric error")
	}
}

func TestGridSearchCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	g := NewGridSearch([]string{"radius"}, [][]float64{{5, 10}})
	if _, _, _, err := g.Search(ctx, orbitExperiment, "kinetic_energy"); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestLinspace(t *testing.T) {
	got := Linspace(1, 2, 3)
	if len(got) != 3 || got[0] != 1 || got[1] != 1.5 || got[2] != 2 {
		t.Errorf("Linspace(1, 2, 3) = %v", got)
	}
	if got := Linspace(4, 9, 1); len(got) != 1 || got[0] != 4 {
		t.Errorf("Linspace(4, 9, 1) = %v", got)
	}
}
