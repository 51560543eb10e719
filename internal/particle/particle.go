package particle

import (
	"github.com/san-kum/hadron/internal/vecmath"
)

type Real = vecmath.Real

const DefaultDamping Real = 0.9999

// minInverseMass is what SetMass stores for a non-positive mass.
const minInverseMass = 1 / vecmath.RealMax

// Particle is a point mass integrated with a first-order Euler step.
type Particle struct {
	position     vecmath.Vector3
	velocity     vecmath.Vector3
	acceleration vecmath.Vector3

	// damping is the fraction of velocity kept per second of simulated time
	damping Real

	// zero means infinite mass
	inverseMass Real

	forceAccum vecmath.Vector3
	alive      bool
}

// New returns a dead particle of unit mass at the origin under Earth gravity.
func New() Particle {
	return Particle{
		acceleration: vecmath.Gravity,
		damping:      DefaultDamping,
		inverseMass:  1,
	}
}

// Update integrates the particle by dT. Dead particles are left untouched.
func (p *Particle) Update(dT Real) {
	if !p.alive {
		return
	}
	p.integrate(dT)
}

func (p *Particle) integrate(dT Real) {
	if p.inverseMass <= 0 {
		return
	}

	// position advances with the velocity from before this step
	p.position.AddScaledVector(p.velocity, dT)

	acc := p.acceleration
	acc.AddScaledVector(p.forceAccum, p.inverseMass)

	p.velocity.AddScaledVector(acc, dT)
	p.velocity.ScaleInPlace(vecmath.Pow(p.damping, dT))

	p.forceAccum.Clear()
}

func (p *Particle) ApplyForce(f vecmath.Vector3) { p.forceAccum.AddInPlace(f) }

func (p *Particle) ApplyForceXYZ(x, y, z Real) {
	p.forceAccum.AddInPlace(vecmath.Vector3{X: x, Y: y, Z: z})
}

func (p *Particle) ForceAccum() vecmath.Vector3 { return p.forceAccum }

// SetMass stores 1/|m|. A non-positive mass is clamped to 1/RealMax rather
// than rejected.
func (p *Particle) SetMass(m Real) {
	if m <= 0 {
		p.inverseMass = minInverseMass
		return
	}
	p.inverseMass = 1 / vecmath.Abs(m)
}

// SetInverseMass sets the inverse mass directly; 0 makes the particle
// immovable. Negative values are clamped to 0.
func (p *Particle) SetInverseMass(im Real) {
	if im < 0 {
		im = 0
	}
	p.inverseMass = im
}

// Mass reports RealMax for an infinite-mass particle, including one clamped
// by SetMass.
func (p *Particle) Mass() Real {
	if p.inverseMass <= minInverseMass {
		return vecmath.RealMax
	}
	return 1 / p.inverseMass
}

func (p *Particle) InverseMass() Real { return p.inverseMass }

func (p *Particle) HasFiniteMass() bool { return p.inverseMass > minInverseMass }

// KineticEnergy is ½mv² for a live particle and 0 otherwise. Particles
// without a finite mass report 0 so they never poison energy totals.
func (p *Particle) KineticEnergy() Real {
	if !p.alive || !p.HasFiniteMass() {
		return 0
	}
	return 0.5 * p.Mass() * p.velocity.LengthSquared()
}

// SetAlive also clears the accumulator on revival so stale forces from
// before the particle died never act on it.
func (p *Particle) SetAlive(alive bool) {
	p.alive = alive
	if alive {
		p.forceAccum.Clear()
	}
}

func (p *Particle) IsAlive() bool { return p.alive }

func (p *Particle) Position() vecmath.Vector3     { return p.position }
func (p *Particle) Velocity() vecmath.Vector3     { return p.velocity }
func (p *Particle) Acceleration() vecmath.Vector3 { return p.acceleration }
func (p *Particle) Damping() Real                 { return p.damping }

func (p *Particle) X() Real { return p.position.X }
func (p *Particle) Y() Real { return p.position.Y }
func (p *Particle) Z() Real { return p.position.Z }

func (p *Particle) SetPosition(v vecmath.Vector3) { p.position = v }
func (p *Particle) SetPositionXYZ(x, y, z Real)   { p.position = vecmath.V(x, y, z) }
func (p *Particle) SetX(x Real)                   { p.position.X = x }
func (p *Particle) SetY(y Real)                   { p.position.Y = y }
func (p *Particle) SetZ(z Real)                   { p.position.Z = z }

func (p *Particle) SetVelocity(v vecmath.Vector3) { p.velocity = v }
func (p *Particle) SetVelocityXYZ(x, y, z Real)   { p.velocity = vecmath.V(x, y, z) }
func (p *Particle) SetVelocityX(x Real)           { p.velocity.X = x }
func (p *Particle) SetVelocityY(y Real)           { p.velocity.Y = y }
func (p *Particle) SetVelocityZ(z Real)           { p.velocity.Z = z }

func (p *Particle) SetAcceleration(v vecmath.Vector3) { p.acceleration = v }
func (p *Particle) SetAccelerationXYZ(x, y, z Real)   { p.acceleration = vecmath.V(x, y, z) }
func (p *Particle) SetAccelerationX(x Real)           { p.acceleration.X = x }
func (p *Particle) SetAccelerationY(y Real)           { p.acceleration.Y = y }
func (p *Particle) SetAccelerationZ(z Real)           { p.acceleration.Z = z }

// SetDamping sets the per-second velocity retention. Values outside (0,1]
// are stored as given.
func (p *Particle) SetDamping(d Real) { p.damping = d }
