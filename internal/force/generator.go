package force

import (
	"github.com/san-kum/hadron/internal/particle"
	"github.com/san-kum/hadron/internal/vecmath"
)

type Real = vecmath.Real

// Generator adds a force to p through p.ApplyForce. A Registry removes
// generators by identity, so only comparable ones (pointer types in this
// package) can be removed; other values are never matched.
type Generator interface {
	ApplyForce(p *particle.Particle, dT Real)
}

// Potential is implemented by conservative generators that can report the
// energy they store for p.
type Potential interface {
	PotentialEnergy(p *particle.Particle) Real
}

// GeneratorFunc adapts a plain function to Generator. Only the pointer form
// is comparable, so register it as &fn.
type GeneratorFunc func(p *particle.Particle, dT Real)

func (f *GeneratorFunc) ApplyForce(p *particle.Particle, dT Real) { (*f)(p, dT) }

const DefaultWellStrength Real = 100

// Gravitation pulls particles toward a fixed point. The force is the
// separation vector scaled by -(G*m)/r², so its magnitude falls off as 1/r
// rather than 1/r².
type Gravitation struct {
	Position vecmath.Vector3
	G        Real
}

func NewGravitation(pos vecmath.Vector3) *Gravitation {
	return &Gravitation{Position: pos, G: DefaultWellStrength}
}

func (g *Gravitation) SetPosition(pos vecmath.Vector3) { g.Position = pos }
func (g *Gravitation) SetPositionXYZ(x, y, z Real)     { g.Position = vecmath.V(x, y, z) }

// ApplyForce leaves particles without a finite mass alone: G*m would
// overflow and poison the world with NaN.
func (g *Gravitation) ApplyForce(p *particle.Particle, dT Real) {
	if !p.IsAlive() || !p.HasFiniteMass() {
		return
	}

	sep := p.Position().Sub(g.Position)
	r2 := sep.LengthSquared()
	// no defined direction at the well itself
	if r2 == 0 {
		return
	}

	mag := -(g.G * p.Mass()) / r2
	p.ApplyForce(sep.Scale(mag))
}

// Drag opposes motion with magnitude k1*|v| + k2*|v|².
type Drag struct {
	K1, K2 Real
}

func NewDrag(k1, k2 Real) *Drag {
	return &Drag{K1: k1, K2: k2}
}

func (d *Drag) ApplyForce(p *particle.Particle, dT Real) {
	if !p.IsAlive() {
		return
	}

	v := p.Velocity()
	speed := v.Length()
	coeff := d.K1*speed + d.K2*speed*speed

	// a resting particle normalises to zero and gets no force
	p.ApplyForce(v.Normalised().Scale(-coeff))
}

const DefaultRestLength Real = 30

// Spring pulls the particle it is registered against toward a partner
// particle with Hooke's law. It only acts on that one particle; a mutual
// spring needs a second Spring registered against the partner.
type Spring struct {
	store      *particle.Store
	Other      particle.Handle
	K          Real
	RestLength Real
}

func NewSpring(store *particle.Store, other particle.Handle, k, restLength Real) *Spring {
	return &Spring{store: store, Other: other, K: k, RestLength: restLength}
}

// NewUnattachedSpring has no partner, zero stiffness and the default rest
// length; it does nothing until SetOther is called.
func NewUnattachedSpring(store *particle.Store) *Spring {
	return &Spring{store: store, Other: particle.NoHandle, RestLength: DefaultRestLength}
}

func (s *Spring) SetOther(h particle.Handle) { s.Other = h }
func (s *Spring) SetSpringConstant(k Real)   { s.K = k }
func (s *Spring) SetRestLength(l Real)       { s.RestLength = l }

func (s *Spring) partner(p *particle.Particle) (*particle.Particle, bool) {
	if s.store == nil {
		return nil, false
	}
	other, ok := s.store.Get(s.Other)
	if !ok || other == p {
		return nil, false
	}
	return other, true
}

func (s *Spring) ApplyForce(p *particle.Particle, dT Real) {
	other, ok := s.partner(p)
	if !ok || !p.IsAlive() || !other.IsAlive() {
		return
	}

	d := p.Position().Sub(other.Position())
	stretch := d.Length() - s.RestLength
	p.ApplyForce(d.Normalised().Scale(-s.K * stretch))
}

// PotentialEnergy reports half of ½k·x² so that the two directions of a
// mutual spring pair add up to the energy of the link.
func (s *Spring) PotentialEnergy(p *particle.Particle) Real {
	other, ok := s.partner(p)
	if !ok || !p.IsAlive() || !other.IsAlive() {
		return 0
	}
	x := p.Position().Sub(other.Position()).Length() - s.RestLength
	return 0.25 * s.K * x * x
}

// AnchoredSpring ties a particle to a fixed point in space.
type AnchoredSpring struct {
	Anchor     vecmath.Vector3
	K          Real
	RestLength Real
}

func NewAnchoredSpring(anchor vecmath.Vector3, k, restLength Real) *AnchoredSpring {
	return &AnchoredSpring{Anchor: anchor, K: k, RestLength: restLength}
}

func (a *AnchoredSpring) ApplyForce(p *particle.Particle, dT Real) {
	if !p.IsAlive() {
		return
	}
	d := p.Position().Sub(a.Anchor)
	stretch := d.Length() - a.RestLength
	p.ApplyForce(d.Normalised().Scale(-a.K * stretch))
}

func (a *AnchoredSpring) PotentialEnergy(p *particle.Particle) Real {
	if !p.IsAlive() {
		return 0
	}
	x := p.Position().Sub(a.Anchor).Length() - a.RestLength
	return 0.5 * a.K * x * x
}

// Constant applies the same force every step, scaled by the particle's mass
// when PerMass is set. A PerMass force skips particles without a finite mass.
type Constant struct {
	Force   vecmath.Vector3
	PerMass bool
}

func NewConstant(f vecmath.Vector3) *Constant {
	return &Constant{Force: f}
}

func (c *Constant) ApplyForce(p *particle.Particle, dT Real) {
	if !p.IsAlive() {
		return
	}
	if c.PerMass {
		if !p.HasFiniteMass() {
			return
		}
		p.ApplyForce(c.Force.Scale(p.Mass()))
		return
	}
	p.ApplyForce(c.Force)
}
