package sim

import (
	"errors"
	"fmt"

	"github.com/san-kum/hadron/internal/vecmath"
)

var (
	ErrInvalidConfig = errors.New("sim: invalid configuration")
	ErrInvalidState  = errors.New("sim: invalid state (NaN or Inf detected)")
)

type Metric interface {
	Name() string
	Observe(w *World, t float64)
	Value() float64
	Reset()
}

type Observer interface {
	OnStep(w *World, t float64)
}

type Config struct {
	Dt            float64
	Duration      float64
	MaxDt         float64
	RecordEvery   int
	ValidateState bool
}

func DefaultConfig() Config {
	return Config{
		Dt:            1.0 / 60,
		Duration:      10.0,
		MaxDt:         0.1,
		RecordEvery:   1,
		ValidateState: true,
	}
}

// Frame is the rendered view of a World at one instant.
type Frame struct {
	Time      float64
	Positions []vecmath.Vector3
	Alive     []bool
}

type Result struct {
	Frames      []Frame
	Metrics     map[string]float64
	EnergyDrift float64
	StepsTaken  int
	Errors      []error
}

type SimError struct {
	Time    float64
	Step    int
	Message string
}

func (e SimError) Error() string {
	return fmt.Sprintf("step %d (t=%.4f): %s", e.Step, e.Time, e.Message)
}

func (e SimError) Unwrap() error { return ErrInvalidState }
