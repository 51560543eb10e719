package force

import (
	"math"
	"testing"

	"github.com/san-kum/hadron/internal/particle"
	"github.com/san-kum/hadron/internal/vecmath"
)

func approx(a, b Real, tol float64) bool { return math.Abs(float64(a-b)) < tol }

func newLive(pos, vel vecmath.Vector3, mass Real) particle.Particle {
	p := particle.New()
	p.SetPosition(pos)
	p.SetVelocity(vel)
	p.SetAcceleration(vecmath.Zero)
	p.SetDamping(1)
	p.SetMass(mass)
	p.SetAlive(true)
	return p
}

func TestGravitation_ForceAlongSeparation(t *testing.T) {
	well := NewGravitation(vecmath.Zero)
	p := newLive(vecmath.V(10, 0, 0), vecmath.Zero, 1)

	well.ApplyForce(&p, 0.001)

	// separation (10,0,0) scaled by -(100*1)/100
	f := p.ForceAccum()
	if !approx(f.X, -10, 1e-9) || f.Y != 0 || f.Z != 0 {
		t.Errorf("force = %v, want (-10,0,0)", f)
	}
	if dir := f.Normalised(); dir != vecmath.V(-1, 0, 0) {
		t.Errorf("direction = %v, want toward the well", dir)
	}
}

func TestGravitation_ScalesWithMass(t *testing.T) {
	well := NewGravitation(vecmath.V(0, 5, 0))
	well.G = 50
	p := newLive(vecmath.V(0, 7, 0), vecmath.Zero, 4)

	well.ApplyForce(&p, 0.01)

	// sep (0,2,0), r²=4, mag=-(50*4)/4 = -50
	if f := p.ForceAccum(); !approx(f.Y, -100, 1e-9) {
		t.Errorf("force = %v, want (0,-100,0)", f)
	}
}

func TestGravitation_DeadAndCoincident(t *testing.T) {
	well := NewGravitation(vecmath.Zero)

	dead := newLive(vecmath.V(1, 0, 0), vecmath.Zero, 1)
	dead.SetAlive(false)
	well.ApplyForce(&dead, 0.01)
	if dead.ForceAccum() != vecmath.Zero {
		t.Errorf("dead particle got force %v", dead.ForceAccum())
	}

	at := newLive(vecmath.Zero, vecmath.Zero, 1)
	well.ApplyForce(&at, 0.01)
	if f := at.ForceAccum(); f != vecmath.Zero || !f.IsFinite() {
		t.Errorf("particle on the well got force %v", f)
	}
}

func TestGravitation_ClampedMassStaysFinite(t *testing.T) {
	for _, mass := range []Real{0, -5} {
		well := NewGravitation(vecmath.Zero)
		p := newLive(vecmath.V(10, 0, 0), vecmath.Zero, mass)

		well.ApplyForce(&p, 0.01)
		if f := p.ForceAccum(); f != vecmath.Zero {
			t.Errorf("mass %v: force = %v, want none", mass, f)
		}

		for i := 0; i < 2; i++ {
			well.ApplyForce(&p, 0.01)
			p.Update(0.01)
		}
		if !p.Position().IsFinite() || !p.Velocity().IsFinite() {
			t.Errorf("mass %v: state went non-finite: pos %v vel %v", mass, p.Position(), p.Velocity())
		}
	}
}

func TestConstantPerMass_ClampedMass(t *testing.T) {
	p := newLive(vecmath.Zero, vecmath.Zero, 0)
	c := NewConstant(vecmath.V(0, 1, 0))
	c.PerMass = true

	c.ApplyForce(&p, 0.01)
	if f := p.ForceAccum(); f != vecmath.Zero {
		t.Errorf("force = %v, want none", f)
	}
}

func TestDrag(t *testing.T) {
	tests := []struct {
		name   string
		k1, k2 Real
		vel    vecmath.Vector3
		want   vecmath.Vector3
	}{
		{"at rest", 1, 2, vecmath.Zero, vecmath.Zero},
		{"linear", 0.5, 0, vecmath.V(4, 0, 0), vecmath.V(-2, 0, 0)},
		{"quadratic", 0, 1, vecmath.V(0, -3, 0), vecmath.V(0, 9, 0)},
		{"both", 1, 2, vecmath.V(0, 0, 2), vecmath.V(0, 0, -10)},
		{"zero coefficients", 0, 0, vecmath.V(3, 4, 0), vecmath.Zero},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newLive(vecmath.Zero, tt.vel, 1)
			NewDrag(tt.k1, tt.k2).ApplyForce(&p, 0.01)

			f := p.ForceAccum()
			if !approx(f.X, tt.want.X, 1e-9) || !approx(f.Y, tt.want.Y, 1e-9) || !approx(f.Z, tt.want.Z, 1e-9) {
				t.Errorf("force = %v, want %v", f, tt.want)
			}
		})
	}
}

func TestDrag_DeadParticleInert(t *testing.T) {
	p := newLive(vecmath.Zero, vecmath.V(5, 0, 0), 1)
	p.SetAlive(false)

	NewDrag(1, 1).ApplyForce(&p, 0.01)

	if p.ForceAccum() != vecmath.Zero {
		t.Errorf("dead particle got drag %v", p.ForceAccum())
	}
}

func TestDrag_ZeroCoefficientsKeepVelocity(t *testing.T) {
	store := particle.NewStore()
	reg := NewRegistry(store)
	h := store.Add(newLive(vecmath.Zero, vecmath.V(1, 2, 3), 1))
	reg.Add(h, NewDrag(0, 0))

	for i := 0; i < 100; i++ {
		reg.ApplyForces(0.01)
		store.UpdateAll(0.01)
	}

	p, _ := store.Get(h)
	if p.Velocity() != vecmath.V(1, 2, 3) {
		t.Errorf("velocity drifted to %v", p.Velocity())
	}
}

func TestSpring_Hooke(t *testing.T) {
	tests := []struct {
		name string
		pos  vecmath.Vector3
		want vecmath.Vector3
	}{
		{"stretched", vecmath.V(5, 0, 0), vecmath.V(-4, 0, 0)},
		{"compressed", vecmath.V(0, 1, 0), vecmath.V(0, 4, 0)},
		{"at rest length", vecmath.V(0, 0, 3), vecmath.Zero},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := particle.NewStore()
			anchor := store.Add(newLive(vecmath.Zero, vecmath.Zero, 1))
			h := store.Add(newLive(tt.pos, vecmath.Zero, 1))

			s := NewSpring(store, anchor, 2, 3)
			p, _ := store.Get(h)
			s.ApplyForce(p, 0.01)

			f := p.ForceAccum()
			if !approx(f.X, tt.want.X, 1e-9) || !approx(f.Y, tt.want.Y, 1e-9) || !approx(f.Z, tt.want.Z, 1e-9) {
				t.Errorf("force = %v, want %v", f, tt.want)
			}

			other, _ := store.Get(anchor)
			if other.ForceAccum() != vecmath.Zero {
				t.Errorf("spring acted on its partner: %v", other.ForceAccum())
			}
		})
	}
}

func TestSpring_NoOps(t *testing.T) {
	store := particle.NewStore()
	other := store.Add(newLive(vecmath.Zero, vecmath.Zero, 1))
	h := store.Add(newLive(vecmath.V(10, 0, 0), vecmath.Zero, 1))
	p, _ := store.Get(h)

	unset := NewUnattachedSpring(store)
	unset.SetSpringConstant(5)
	unset.ApplyForce(p, 0.01)
	if p.ForceAccum() != vecmath.Zero {
		t.Errorf("unattached spring applied %v", p.ForceAccum())
	}
	if unset.RestLength != DefaultRestLength {
		t.Errorf("rest length = %v, want %v", unset.RestLength, DefaultRestLength)
	}

	o, _ := store.Get(other)
	o.SetAlive(false)
	NewSpring(store, other, 5, 0).ApplyForce(p, 0.01)
	if p.ForceAccum() != vecmath.Zero {
		t.Errorf("spring to dead partner applied %v", p.ForceAccum())
	}

	o.SetAlive(true)
	store.Remove(other)
	NewSpring(store, other, 5, 0).ApplyForce(p, 0.01)
	if p.ForceAccum() != vecmath.Zero {
		t.Errorf("spring to removed partner applied %v", p.ForceAccum())
	}
}

func TestSpringPair_ConservesEnergy(t *testing.T) {
	store := particle.NewStore()
	reg := NewRegistry(store)

	a := store.Add(newLive(vecmath.V(-1.5, 0, 0), vecmath.Zero, 1))
	b := store.Add(newLive(vecmath.V(1.5, 0, 0), vecmath.Zero, 1))
	reg.Add(a, NewSpring(store, b, 1, 2))
	reg.Add(b, NewSpring(store, a, 1, 2))

	energy := func() Real {
		var ke Real
		store.Each(func(_ particle.Handle, p *particle.Particle) { ke += p.KineticEnergy() })
		return ke + reg.PotentialEnergy()
	}

	e0 := energy()
	if !approx(e0, 0.5, 1e-9) {
		t.Fatalf("initial energy = %v, want 0.5", e0)
	}

	const dT = 0.001
	minSep, maxSep := Real(math.MaxFloat32), Real(0)
	for i := 0; i < 3000; i++ {
		reg.ApplyForces(dT)
		store.UpdateAll(dT)

		pa, _ := store.Get(a)
		pb, _ := store.Get(b)
		sep := pb.X() - pa.X()
		minSep = min(minSep, sep)
		maxSep = max(maxSep, sep)

		if drift := math.Abs(float64(energy()-e0)) / float64(e0); drift > 0.02 {
			t.Fatalf("energy drift %.4f at step %d", drift, i)
		}
	}

	if minSep > 2.8 || maxSep < 2.9 {
		t.Errorf("pair did not oscillate: separation in [%v, %v]", minSep, maxSep)
	}
}

func TestAnchoredSpringAndConstant(t *testing.T) {
	p := newLive(vecmath.V(0, -4, 0), vecmath.Zero, 2)

	NewAnchoredSpring(vecmath.Zero, 3, 1).ApplyForce(&p, 0.01)
	if f := p.ForceAccum(); !approx(f.Y, 9, 1e-9) {
		t.Errorf("anchored spring force = %v, want (0,9,0)", f)
	}

	c := NewConstant(vecmath.V(0, 1, 0))
	c.PerMass = true
	c.ApplyForce(&p, 0.01)
	if f := p.ForceAccum(); !approx(f.Y, 11, 1e-9) {
		t.Errorf("after constant force = %v, want (0,11,0)", f)
	}
}

func TestGeneratorFunc(t *testing.T) {
	calls := 0
	fn := GeneratorFunc(func(p *particle.Particle, dT Real) { calls++ })

	store := particle.NewStore()
	reg := NewRegistry(store)
	h := store.Add(particle.New())
	reg.Add(h, &fn)
	reg.ApplyForces(0.1)

	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
	if !reg.Remove(h, &fn) {
		t.Error("could not remove function generator")
	}
}
