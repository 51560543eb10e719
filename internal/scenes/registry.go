package scenes

import (
	"fmt"
	"math/rand"
	"sort"

	"github.com/san-kum/hadron/internal/metrics"
	"github.com/san-kum/hadron/internal/sim"
)

// Factory populates a fresh scene whose World, Params and random source are
// already set.
type Factory func(s *Scene)

type entry struct {
	description string
	defaults    Params
	build       Factory
}

type Registry struct {
	scenes map[string]entry
}

func NewRegistry() *Registry {
	r := &Registry{scenes: make(map[string]entry)}

	r.Register("particles", "particles thrown around a shared gravity well", Params{
		"count": 1000, "live": 100, "spread": 10, "speed": 30, "well": 100,
	}, buildParticles)
	r.Register("springs", "a heavy bob on a spring to a fixed partner, with drag, inside a box", Params{
		"k": 3000, "rest": 20, "k1": 1, "k2": 2, "mass": 200, "speed": 30,
		"box": 30, "restitution": 0.9, "kick": 400000, "mutual": 0,
	}, buildSprings)
	r.Register("pair", "two particles joined by springs both ways, no gravity", Params{
		"k": 1, "rest": 2, "stretch": 1.5, "mass": 1,
	}, buildPair)
	r.Register("drag", "projectiles launched upward under gravity and drag", Params{
		"count": 20, "k1": 0.1, "k2": 0.01, "speed": 30,
	}, buildDrag)
	r.Register("orbit", "a single particle circling a gravity well", Params{
		"well": 100, "radius": 10,
	}, buildOrbit)

	return r
}

// Register adds or replaces a scene under name.
func (r *Registry) Register(name, description string, defaults Params, build Factory) {
	r.scenes[name] = entry{description: description, defaults: defaults, build: build}
}

// Get builds the named scene. params override the scene defaults.
func (r *Registry) Get(name string, params Params, seed int64) (*Scene, error) {
	e, ok := r.scenes[name]
	if !ok {
		return nil, fmt.Errorf("unknown scene: %s", name)
	}

	merged := e.defaults.Merge(params)
	s := &Scene{
		Name:   name,
		World:  sim.NewWorld(),
		Params: merged,
		rng:    rand.New(rand.NewSource(seed)),
	}
	s.reset = func() *Scene {
		fresh, _ := r.Get(name, params, seed)
		return fresh
	}
	e.build(s)
	s.Metrics = append(s.Metrics, r.DefaultMetrics(name)...)
	return s, nil
}

// Builder adapts a scene to sim.Ensemble, one seed per run.
func (r *Registry) Builder(name string, params Params) sim.Builder {
	return func(seed int64) (*sim.World, []sim.Metric, error) {
		s, err := r.Get(name, params, seed)
		if err != nil {
			return nil, nil, err
		}
		return s.World, s.Metrics, nil
	}
}

func (r *Registry) List() []string {
	names := make([]string, 0, len(r.scenes))
	for name := range r.scenes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (r *Registry) Description(name string) string { return r.scenes[name].description }

func (r *Registry) Defaults(name string) Params {
	return r.scenes[name].defaults.Merge(nil)
}

func (r *Registry) DefaultMetrics(scene string) []sim.Metric {
	ms := []sim.Metric{
		metrics.NewKineticEnergy(),
		metrics.NewEnergyDrift(),
		metrics.NewAlive(),
	}
	switch scene {
	case "particles", "orbit":
		ms = append(ms, metrics.NewContainment(50))
	case "springs":
		ms = append(ms, metrics.NewContainment(60))
	}
	return ms
}
