package metrics

import (
	"github.com/san-kum/hadron/internal/particle"
	"github.com/san-kum/hadron/internal/sim"
)

// Alive averages the number of live particles per step.
type Alive struct {
	name    string
	total   int
	samples int
}

func NewAlive() *Alive {
	return &Alive{name: "alive"}
}

func (a *Alive) Name() string { return a.name }

func (a *Alive) Observe(w *sim.World, t float64) {
	a.total += w.AliveCount()
	a.samples++
}

func (a *Alive) Value() float64 {
	if a.samples == 0 {
		return 0
	}
	return float64(a.total) / float64(a.samples)
}

func (a *Alive) Reset() {
	a.total = 0
	a.samples = 0
}

// Containment is the fraction of live particle samples found within radius
// of the origin. An empty world counts as fully contained.
type Containment struct {
	name    string
	radius  float64
	inside  int
	samples int
}

func NewContainment(radius float64) *Containment {
	return &Containment{
		name:   "containment",
		radius: radius,
	}
}

func (c *Containment) Name() string { return c.name }

func (c *Containment) Observe(w *sim.World, t float64) {
	r2 := c.radius * c.radius
	w.Particles.Each(func(_ particle.Handle, p *particle.Particle) {
		if !p.IsAlive() {
			return
		}
		c.samples++
		if float64(p.Position().LengthSquared()) <= r2 {
			c.inside++
		}
	})
}

func (c *Containment) Value() float64 {
	if c.samples == 0 {
		return 1.0
	}
	return float64(c.inside) / float64(c.samples)
}

func (c *Containment) Reset() {
	c.inside = 0
	c.samples = 0
}
