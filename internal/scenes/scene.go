// Package scenes builds ready-to-run worlds: the particle fountain around a
// gravity well, the bouncing spring and a few smaller setups.
package scenes

import (
	"math/rand"

	"github.com/san-kum/hadron/internal/particle"
	"github.com/san-kum/hadron/internal/sim"
	"github.com/san-kum/hadron/internal/vecmath"
)

type Real = vecmath.Real

// Scene is a built world plus the bodies a host may act on.
type Scene struct {
	Name    string
	World   *sim.World
	Metrics []sim.Metric
	Params  Params
	Bodies  []particle.Handle
	// Links are particle pairs a renderer should join with a line.
	Links   [][2]particle.Handle

	rng    *rand.Rand
	action func(s *Scene)
	reset  func() *Scene
}

// Act runs the scene's interactive action, the one a host binds to the
// space key. It reports false when the scene has none.
func (s *Scene) Act() bool {
	if s.action == nil {
		return false
	}
	s.action(s)
	return true
}

// Reset rebuilds the scene from its original params and seed.
func (s *Scene) Reset() *Scene {
	if s.reset == nil {
		return s
	}
	return s.reset()
}

// Respawn revives a random body at a random spot near the origin with a
// random velocity, zero acceleration and unit mass.
func (s *Scene) Respawn() particle.Handle {
	if len(s.Bodies) == 0 {
		return particle.NoHandle
	}
	h := s.Bodies[s.rng.Intn(len(s.Bodies))]
	if !s.World.Particles.Contains(h) {
		return particle.NoHandle
	}
	revive(s, h)
	return h
}

// Kick pushes a body upward by mass times strength for the next step.
// Bodies without a finite mass cannot be kicked.
func (s *Scene) Kick(h particle.Handle, strength Real) bool {
	p, ok := s.World.Particles.Get(h)
	if !ok || !p.HasFiniteMass() {
		return false
	}
	p.ApplyForceXYZ(0, p.Mass()*strength, 0)
	return true
}

func (s *Scene) rand(lo, hi Real) Real {
	return lo + Real(s.rng.Float64())*(hi-lo)
}

func (s *Scene) randVec(r Real) vecmath.Vector3 {
	return vecmath.V(s.rand(-r, r), s.rand(-r, r), s.rand(-r, r))
}
