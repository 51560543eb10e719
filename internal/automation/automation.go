// Package automation runs scripted sequences of simulations from YAML.
package automation

import (
	"context"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/hadron/internal/config"
	"github.com/san-kum/hadron/internal/experiment"
	"github.com/san-kum/hadron/internal/scenes"
	"github.com/san-kum/hadron/internal/sim"
	"github.com/san-kum/hadron/internal/storage"
)

// Scenario defines a scripted simulation sequence
type Scenario struct {
	Name        string         `yaml:"name"`
	Description string         `yaml:"description"`
	Steps       []ScenarioStep `yaml:"steps"`
}

// ScenarioStep is a single run. Set fields override the preset, which
// overrides the defaults.
type ScenarioStep struct {
	Scene       string             `yaml:"scene"`
	Preset      string             `yaml:"preset"`
	Duration    float64            `yaml:"duration"`
	Dt          float64            `yaml:"dt"`
	Seed        int64              `yaml:"seed"`
	RecordEvery int                `yaml:"record_every"`
	Params      map[string]float64 `yaml:"params"`
	SaveAs      string             `yaml:"save_as"`
}

// StepResult pairs a run's result with the ID it was stored under, if any.
type StepResult struct {
	Scene  string
	Result *sim.Result
	RunID  string
}

// Runner executes scenarios. Store may be nil, in which case save_as is
// ignored.
type Runner struct {
	Registry *scenes.Registry
	Store    *storage.Store
	Out      io.Writer
}

// LoadScenario loads a scenario from a YAML file
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseScenario(data)
}

func ParseScenario(data []byte) (*Scenario, error) {
	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, fmt.Errorf("parse scenario: %w", err)
	}
	if len(scenario.Steps) == 0 {
		return nil, fmt.Errorf("%w: scenario %q has no steps", config.ErrInvalid, scenario.Name)
	}
	return &scenario, nil
}

func (s ScenarioStep) config() (*config.Config, error) {
	cfg := config.DefaultConfig()
	if s.Preset != "" {
		preset := config.GetPreset(s.Scene, s.Preset)
		if preset == nil {
			return nil, fmt.Errorf("unknown preset %s/%s", s.Scene, s.Preset)
		}
		cfg = preset
	}
	cfg.Overlay(&config.Config{
		Scene:       s.Scene,
		Dt:          s.Dt,
		Duration:    s.Duration,
		Seed:        s.Seed,
		RecordEvery: s.RecordEvery,
		Params:      s.Params,
	})
	return cfg, cfg.Validate()
}

// Run executes all steps in order, stopping at the first failure. Results
// of the steps that finished are returned alongside the error.
func (r *Runner) Run(ctx context.Context, scenario *Scenario) ([]StepResult, error) {
	out := r.Out
	if out == nil {
		out = io.Discard
	}
	results := make([]StepResult, 0, len(scenario.Steps))

	for i, step := range scenario.Steps {
		fmt.Fprintf(out, "Running step %d/%d: %s\n", i+1, len(scenario.Steps), step.Scene)

		cfg, err := step.config()
		if err != nil {
			return results, fmt.Errorf("step %d: %w", i+1, err)
		}
		exp, err := experiment.New(cfg, r.Registry)
		if err != nil {
			return results, fmt.Errorf("step %d setup: %w", i+1, err)
		}
		result, err := exp.Run(ctx)
		if err != nil {
			return results, fmt.Errorf("step %d run: %w", i+1, err)
		}

		sr := StepResult{Scene: cfg.Scene, Result: result}
		if step.SaveAs != "" && r.Store != nil {
			meta := exp.Metadata()
			meta.ID = step.SaveAs
			id, err := r.Store.Save(meta, result)
			if err != nil {
				return results, fmt.Errorf("step %d save: %w", i+1, err)
			}
			sr.RunID = id
			fmt.Fprintf(out, "  saved as %s\n", id)
		}
		results = append(results, sr)
	}

	return results, nil
}
