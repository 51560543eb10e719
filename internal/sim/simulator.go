package sim

import (
	"context"
	"fmt"
	"math"
)

// Simulator drives a World at a fixed step. It is not safe for concurrent
// use; run independent worlds through an Ensemble instead.
type Simulator struct {
	world     *World
	metrics   []Metric
	observers []Observer
}

func New(w *World) *Simulator {
	return &Simulator{
		world:     w,
		metrics:   make([]Metric, 0),
		observers: make([]Observer, 0),
	}
}

func (s *Simulator) World() *World { return s.world }

func (s *Simulator) AddMetric(m Metric)     { s.metrics = append(s.metrics, m) }
func (s *Simulator) AddObserver(o Observer) { s.observers = append(s.observers, o) }

func (s *Simulator) Run(ctx context.Context, cfg Config) (*Result, error) {
	if err := validateConfig(cfg); err != nil {
		return nil, err
	}

	dt := clampDt(cfg)
	steps := int(math.Round(cfg.Duration / dt))
	every := cfg.RecordEvery
	if every <= 0 {
		every = 1
	}

	result := &Result{
		Frames:  make([]Frame, 0, steps/every+1),
		Metrics: make(map[string]float64),
		Errors:  make([]error, 0),
	}

	for _, m := range s.metrics {
		m.Reset()
	}

	w := s.world
	result.Frames = append(result.Frames, w.Snapshot())
	initialEnergy := float64(w.TotalEnergy())

	for i := 0; i < steps; i++ {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		for _, m := range s.metrics {
			m.Observe(w, w.Time)
		}
		for _, obs := range s.observers {
			obs.OnStep(w, w.Time)
		}

		w.Step(Real(dt))
		result.StepsTaken++

		if cfg.ValidateState && !w.IsValid() {
			result.Errors = append(result.Errors, SimError{Time: w.Time, Step: i, Message: "invalid state (NaN/Inf)"})
			break
		}

		if (i+1)%every == 0 {
			result.Frames = append(result.Frames, w.Snapshot())
		}
	}

	finalEnergy := float64(w.TotalEnergy())
	if initialEnergy != 0 {
		result.EnergyDrift = math.Abs(finalEnergy-initialEnergy) / math.Abs(initialEnergy)
	}

	for _, m := range s.metrics {
		result.Metrics[m.Name()] = m.Value()
	}

	return result, nil
}

// RunWithCallback steps until the duration elapses, the context ends or the
// callback returns false. The callback sees the world before each step.
func (s *Simulator) RunWithCallback(ctx context.Context, cfg Config, callback func(w *World, t float64) bool) error {
	if err := validateConfig(cfg); err != nil {
		return err
	}

	dt := clampDt(cfg)
	w := s.world
	end := w.Time + cfg.Duration

	for w.Time < end {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if !callback(w, w.Time) {
			return nil
		}

		w.Step(Real(dt))

		if cfg.ValidateState && !w.IsValid() {
			return fmt.Errorf("t=%.4f: %w", w.Time, ErrInvalidState)
		}
	}

	return nil
}

func validateConfig(cfg Config) error {
	if cfg.Dt <= 0 {
		return fmt.Errorf("%w: dt must be positive, got %f", ErrInvalidConfig, cfg.Dt)
	}
	if cfg.Duration <= 0 {
		return fmt.Errorf("%w: duration must be positive, got %f", ErrInvalidConfig, cfg.Duration)
	}
	if cfg.MaxDt < 0 {
		return fmt.Errorf("%w: max dt must not be negative, got %f", ErrInvalidConfig, cfg.MaxDt)
	}
	return nil
}

// clampDt bounds the step so a long frame cannot destabilise the integrator.
func clampDt(cfg Config) float64 {
	if cfg.MaxDt > 0 && cfg.Dt > cfg.MaxDt {
		return cfg.MaxDt
	}
	return cfg.Dt
}
