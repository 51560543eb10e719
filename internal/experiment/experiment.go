// Package experiment turns a run configuration into a built scene and a
// simulator ready to run it.
package experiment

import (
	"context"
	"fmt"

	"github.com/san-kum/hadron/internal/config"
	"github.com/san-kum/hadron/internal/scenes"
	"github.com/san-kum/hadron/internal/sim"
	"github.com/san-kum/hadron/internal/storage"
)

type Experiment struct {
	cfg       *config.Config
	scene     *scenes.Scene
	simulator *sim.Simulator
}

func New(cfg *config.Config, registry *scenes.Registry) (*Experiment, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	scene, err := registry.Get(cfg.Scene, cfg.Params, cfg.Seed)
	if err != nil {
		return nil, err
	}

	simulator := sim.New(scene.World)
	for _, m := range scene.Metrics {
		simulator.AddMetric(m)
	}
	return &Experiment{cfg: cfg, scene: scene, simulator: simulator}, nil
}

func (e *Experiment) Scene() *scenes.Scene { return e.scene }

// GetSimulator returns the underlying simulator for adding observers
func (e *Experiment) GetSimulator() *sim.Simulator {
	return e.simulator
}

func (e *Experiment) SimConfig() sim.Config {
	return sim.Config{
		Dt:            e.cfg.Dt,
		Duration:      e.cfg.Duration,
		MaxDt:         e.cfg.MaxDt,
		RecordEvery:   e.cfg.RecordEvery,
		ValidateState: true,
	}
}

func (e *Experiment) Run(ctx context.Context) (*sim.Result, error) {
	if e.simulator == nil {
		return nil, fmt.Errorf("experiment not setup")
	}
	return e.simulator.Run(ctx, e.SimConfig())
}

// Metadata describes this experiment for storage. Counts and the run ID
// are filled in when the result is saved.
func (e *Experiment) Metadata() storage.RunMetadata {
	return storage.RunMetadata{
		Scene:    e.scene.Name,
		Seed:     e.cfg.Seed,
		Dt:       e.cfg.Dt,
		Duration: e.cfg.Duration,
		Params:   e.scene.Params,
	}
}
