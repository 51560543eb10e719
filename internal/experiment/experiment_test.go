package experiment

import (
	"context"
	"errors"
	"testing"

	"github.com/san-kum/hadron/internal/config"
	"github.com/san-kum/hadron/internal/scenes"
)

func TestExperimentRun(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Scene = "orbit"
	cfg.Dt = 0.01
	cfg.Duration = 1
	cfg.RecordEvery = 10

	exp, err := New(cfg, scenes.NewRegistry())
	if err != nil {
		t.Fatalf("setup failed: %v", err)
	}
	result, err := exp.Run(context.Background())
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if result.StepsTaken != 100 {
		t.Errorf("expected 100 steps, got %d", result.StepsTaken)
	}
	if len(result.Frames) != 11 {
		t.Errorf("expected 11 frames, got %d", len(result.Frames))
	}
	if _, ok := result.Metrics["kinetic_energy"]; !ok {
		t.Error("scene metrics were not attached")
	}

	meta := exp.Metadata()
	if meta.Scene != "orbit" || meta.Params["radius"] != 10 {
		t.Errorf("unexpected metadata %+v", meta)
	}
}

func TestExperimentParamsOverride(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Params = map[string]float64{"count": 5, "live": 2}

	exp, err := New(cfg, scenes.NewRegistry())
	if err != nil {
		t.Fatalf("setup failed: %v", err)
	}
	if n := exp.Scene().World.Particles.Len(); n != 5 {
		t.Errorf("expected 5 particles, got %d", n)
	}
	if n := exp.Scene().World.AliveCount(); n != 2 {
		t.Errorf("expected 2 alive, got %d", n)
	}
}

func TestExperimentInvalid(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Dt = 0
	if _, err := New(cfg, scenes.NewRegistry()); !errors.Is(err, config.ErrInvalid) {
		t.Errorf("expected ErrInvalid, got %v", err)
	}

	cfg = config.DefaultConfig()
	cfg.Scene = "nope"
	if _, err := New(cfg, scenes.NewRegistry()); err == nil {
		t.Error("expected unknown scene error")
	}
}
