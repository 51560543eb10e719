package sim

import (
	"github.com/san-kum/hadron/internal/force"
	"github.com/san-kum/hadron/internal/particle"
	"github.com/san-kum/hadron/internal/vecmath"
)

type Real = vecmath.Real

// Hook runs after the integration pass of every step. Hosts use hooks for
// rules that are not forces, such as bouncing off the walls of a box.
type Hook interface {
	AfterStep(w *World, dT Real)
}

// World is the whole state of one simulation: the particles, the forces
// acting on them and the hooks run after each step.
type World struct {
	Particles *particle.Store
	Forces    *force.Registry
	Hooks     []Hook
	Time      float64
}

func NewWorld() *World {
	store := particle.NewStore()
	return &World{
		Particles: store,
		Forces:    force.NewRegistry(store),
		Hooks:     make([]Hook, 0),
	}
}

func (w *World) Spawn(p particle.Particle) particle.Handle { return w.Particles.Add(p) }

// Despawn drops the particle's registry entries before removing it.
func (w *World) Despawn(h particle.Handle) bool {
	w.Forces.RemoveParticle(h)
	return w.Particles.Remove(h)
}

func (w *World) AddHook(h Hook) { w.Hooks = append(w.Hooks, h) }

// Step applies every registered force, integrates every particle and then
// runs the hooks.
func (w *World) Step(dT Real) {
	w.Forces.ApplyForces(dT)
	w.Particles.UpdateAll(dT)
	for _, h := range w.Hooks {
		h.AfterStep(w, dT)
	}
	w.Time += float64(dT)
}

func (w *World) KineticEnergy() Real {
	var ke Real
	w.Particles.Each(func(_ particle.Handle, p *particle.Particle) {
		ke += p.KineticEnergy()
	})
	return ke
}

func (w *World) PotentialEnergy() Real { return w.Forces.PotentialEnergy() }

func (w *World) TotalEnergy() Real { return w.KineticEnergy() + w.PotentialEnergy() }

func (w *World) AliveCount() int {
	n := 0
	w.Particles.Each(func(_ particle.Handle, p *particle.Particle) {
		if p.IsAlive() {
			n++
		}
	})
	return n
}

// Snapshot copies positions and alive flags in store order.
func (w *World) Snapshot() Frame {
	f := Frame{
		Time:      w.Time,
		Positions: make([]vecmath.Vector3, 0, w.Particles.Len()),
		Alive:     make([]bool, 0, w.Particles.Len()),
	}
	w.Particles.Each(func(_ particle.Handle, p *particle.Particle) {
		f.Positions = append(f.Positions, p.Position())
		f.Alive = append(f.Alive, p.IsAlive())
	})
	return f
}

// IsValid reports whether every particle has finite position and velocity.
func (w *World) IsValid() bool {
	valid := true
	w.Particles.Each(func(_ particle.Handle, p *particle.Particle) {
		if !p.Position().IsFinite() || !p.Velocity().IsFinite() {
			valid = false
		}
	})
	return valid
}

// BoundingBox reflects live particles off the faces of an axis-aligned box,
// keeping Restitution of the normal speed.
type BoundingBox struct {
	Min, Max    vecmath.Vector3
	Restitution Real
}

func NewBoundingBox(halfSize, restitution Real) *BoundingBox {
	return &BoundingBox{
		Min:         vecmath.V(-halfSize, -halfSize, -halfSize),
		Max:         vecmath.V(halfSize, halfSize, halfSize),
		Restitution: restitution,
	}
}

func (b *BoundingBox) AfterStep(w *World, dT Real) {
	w.Particles.Each(func(_ particle.Handle, p *particle.Particle) {
		if !p.IsAlive() {
			return
		}
		pos, vel := p.Position(), p.Velocity()
		vel.X = b.reflect(pos.X, vel.X, b.Min.X, b.Max.X)
		vel.Y = b.reflect(pos.Y, vel.Y, b.Min.Y, b.Max.Y)
		vel.Z = b.reflect(pos.Z, vel.Z, b.Min.Z, b.Max.Z)
		p.SetVelocity(vel)
	})
}

func (b *BoundingBox) reflect(x, v, lo, hi Real) Real {
	switch {
	case x < lo:
		return vecmath.Abs(v) * b.Restitution
	case x > hi:
		return -vecmath.Abs(v) * b.Restitution
	}
	return v
}
