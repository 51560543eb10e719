package metrics

import (
	"math"
	"testing"

	"github.com/san-kum/hadron/internal/force"
	"github.com/san-kum/hadron/internal/particle"
	"github.com/san-kum/hadron/internal/sim"
	"github.com/san-kum/hadron/internal/vecmath"
)

func worldWith(positions ...vecmath.Vector3) *sim.World {
	w := sim.NewWorld()
	for _, pos := range positions {
		p := particle.New()
		p.SetAcceleration(vecmath.Zero)
		p.SetPosition(pos)
		p.SetVelocityXYZ(2, 0, 0)
		p.SetAlive(true)
		w.Spawn(p)
	}
	return w
}

func TestKineticEnergy(t *testing.T) {
	w := worldWith(vecmath.Zero, vecmath.V(1, 0, 0))
	m := NewKineticEnergy()

	m.Observe(w, 0)
	// two unit masses at speed 2
	if got := m.Value(); math.Abs(got-4) > 1e-9 {
		t.Errorf("kinetic energy = %f, want 4", got)
	}

	m.Reset()
	if m.Value() != 0 {
		t.Error("expected zero after reset")
	}
}

func TestEnergyDrift(t *testing.T) {
	w := worldWith(vecmath.Zero)
	m := NewEnergyDrift()

	m.Observe(w, 0)
	if m.Value() != 0 {
		t.Errorf("first sample drift = %f, want 0", m.Value())
	}

	p, _ := w.Particles.Get(w.Particles.Handles()[0])
	p.SetVelocityXYZ(4, 0, 0)
	m.Observe(w, 1)
	if got := m.Value(); math.Abs(got-3) > 1e-9 {
		t.Errorf("drift = %f, want 3", got)
	}

	p.SetVelocityXYZ(2, 0, 0)
	m.Observe(w, 2)
	if got := m.Value(); math.Abs(got-3) > 1e-9 {
		t.Errorf("drift should keep its maximum, got %f", got)
	}
}

func TestEnergyDrift_SpringPair(t *testing.T) {
	w := sim.NewWorld()
	spawn := func(x vecmath.Real) particle.Handle {
		p := particle.New()
		p.SetAcceleration(vecmath.Zero)
		p.SetDamping(1)
		p.SetPositionXYZ(x, 0, 0)
		p.SetAlive(true)
		return w.Spawn(p)
	}
	a, b := spawn(-1.5), spawn(1.5)
	w.Forces.Add(a, force.NewSpring(w.Particles, b, 1, 2))
	w.Forces.Add(b, force.NewSpring(w.Particles, a, 1, 2))

	m := NewEnergyDrift()
	for i := 0; i < 3000; i++ {
		m.Observe(w, w.Time)
		w.Step(0.001)
	}

	if m.Value() > 0.02 {
		t.Errorf("spring pair drifted %.4f", m.Value())
	}
}

func TestAlive(t *testing.T) {
	w := worldWith(vecmath.Zero, vecmath.Zero)
	dead := particle.New()
	w.Spawn(dead)

	m := NewAlive()
	m.Observe(w, 0)
	if m.Value() != 2 {
		t.Errorf("alive = %f, want 2", m.Value())
	}
}

func TestContainment(t *testing.T) {
	tests := []struct {
		name      string
		positions []vecmath.Vector3
		want      float64
	}{
		{"empty", nil, 1},
		{"all inside", []vecmath.Vector3{vecmath.Zero, vecmath.V(1, 1, 1)}, 1},
		{"half", []vecmath.Vector3{vecmath.Zero, vecmath.V(50, 0, 0)}, 0.5},
		{"on boundary", []vecmath.Vector3{vecmath.V(10, 0, 0)}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewContainment(10)
			m.Observe(worldWith(tt.positions...), 0)
			if got := m.Value(); math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("containment = %f, want %f", got, tt.want)
			}
		})
	}
}
