package scenes

import (
	"github.com/san-kum/hadron/internal/force"
	"github.com/san-kum/hadron/internal/particle"
	"github.com/san-kum/hadron/internal/sim"
	"github.com/san-kum/hadron/internal/vecmath"
)

// buildParticles registers every slot with one shared well. Slots start
// dead and "live" of them, picked at random, are respawned at once.
func buildParticles(s *Scene) {
	well := force.NewGravitation(vecmath.Zero)
	well.G = Real(s.Params.Get("well", float64(force.DefaultWellStrength)))

	count := s.Params.Int("count", 1000)
	for i := 0; i < count; i++ {
		h := s.World.Spawn(particle.New())
		s.World.Forces.Add(h, well)
		s.Bodies = append(s.Bodies, h)
	}

	live := min(s.Params.Int("live", 100), count)
	for _, i := range s.rng.Perm(count)[:max(live, 0)] {
		revive(s, s.Bodies[i])
	}

	s.action = func(s *Scene) { s.Respawn() }
}

func revive(s *Scene, h particle.Handle) {
	p, _ := s.World.Particles.Get(h)
	spread := Real(s.Params.Get("spread", 10))
	speed := Real(s.Params.Get("speed", 30))
	p.SetPosition(s.randVec(spread))
	p.SetVelocity(s.randVec(speed))
	p.SetAcceleration(vecmath.Zero)
	p.SetMass(1)
	p.SetAlive(true)
}

// buildSprings hangs a heavy bob from a partner at the origin. Only the bob
// is driven unless "mutual" is set.
func buildSprings(s *Scene) {
	mass := Real(s.Params.Get("mass", 200))
	k := Real(s.Params.Get("k", 3000))
	rest := Real(s.Params.Get("rest", 20))

	bob := particle.New()
	bob.SetVelocity(s.randVec(Real(s.Params.Get("speed", 30))))
	bob.SetAcceleration(vecmath.HighGravity)
	bob.SetMass(mass)
	bob.SetAlive(true)

	anchor := particle.New()
	anchor.SetAcceleration(vecmath.Zero)
	anchor.SetMass(mass)
	anchor.SetAlive(true)

	a := s.World.Spawn(bob)
	b := s.World.Spawn(anchor)
	s.Bodies = []particle.Handle{a, b}
	s.Links = [][2]particle.Handle{{a, b}}

	s.World.Forces.Add(a, force.NewSpring(s.World.Particles, b, k, rest))
	s.World.Forces.Add(a, force.NewDrag(Real(s.Params.Get("k1", 1)), Real(s.Params.Get("k2", 2))))
	if s.Params.Bool("mutual") {
		s.World.Forces.Add(b, force.NewSpring(s.World.Particles, a, k, rest))
	}

	s.World.AddHook(sim.NewBoundingBox(Real(s.Params.Get("box", 30)), Real(s.Params.Get("restitution", 0.9))))

	kick := Real(s.Params.Get("kick", 400000))
	s.action = func(s *Scene) { s.Kick(a, kick) }
}

// buildPair places two particles symmetric about the origin, each pulled by
// a spring toward the other.
func buildPair(s *Scene) {
	k := Real(s.Params.Get("k", 1))
	rest := Real(s.Params.Get("rest", 2))
	half := Real(s.Params.Get("stretch", 1.5))
	mass := Real(s.Params.Get("mass", 1))

	spawn := func(x Real) particle.Handle {
		p := particle.New()
		p.SetAcceleration(vecmath.Zero)
		p.SetDamping(1)
		p.SetMass(mass)
		p.SetPositionXYZ(x, 0, 0)
		p.SetAlive(true)
		return s.World.Spawn(p)
	}
	a, b := spawn(-half), spawn(half)
	s.Bodies = []particle.Handle{a, b}
	s.Links = [][2]particle.Handle{{a, b}}

	s.World.Forces.Add(a, force.NewSpring(s.World.Particles, b, k, rest))
	s.World.Forces.Add(b, force.NewSpring(s.World.Particles, a, k, rest))

	s.action = func(s *Scene) { s.Kick(a, 10) }
}

// buildDrag launches projectiles from the origin with random upward
// velocity. The action relaunches one of them.
func buildDrag(s *Scene) {
	drag := force.NewDrag(Real(s.Params.Get("k1", 0.1)), Real(s.Params.Get("k2", 0.01)))
	speed := Real(s.Params.Get("speed", 30))

	launch := func(p *particle.Particle) {
		p.SetPosition(vecmath.Zero)
		p.SetVelocityXYZ(s.rand(-speed/3, speed/3), s.rand(speed/2, speed), s.rand(-speed/3, speed/3))
		p.SetAcceleration(vecmath.Gravity)
		p.SetAlive(true)
	}

	count := s.Params.Int("count", 20)
	for i := 0; i < count; i++ {
		p := particle.New()
		launch(&p)
		h := s.World.Spawn(p)
		s.World.Forces.Add(h, drag)
		s.Bodies = append(s.Bodies, h)
	}

	s.action = func(s *Scene) {
		if len(s.Bodies) == 0 {
			return
		}
		h := s.Bodies[s.rng.Intn(len(s.Bodies))]
		if p, ok := s.World.Particles.Get(h); ok {
			launch(p)
		}
	}
}

// buildOrbit starts one particle on the circular orbit of the well. The
// well's pull falls off as 1/r, so the circular speed is sqrt(G) at any
// radius.
func buildOrbit(s *Scene) {
	well := force.NewGravitation(vecmath.Zero)
	well.G = Real(s.Params.Get("well", float64(force.DefaultWellStrength)))
	radius := Real(s.Params.Get("radius", 10))

	p := particle.New()
	p.SetAcceleration(vecmath.Zero)
	p.SetDamping(1)
	p.SetPositionXYZ(radius, 0, 0)
	p.SetVelocityXYZ(0, vecmath.Sqrt(well.G), 0)
	p.SetAlive(true)

	h := s.World.Spawn(p)
	s.World.Forces.Add(h, well)
	s.Bodies = []particle.Handle{h}

	s.action = func(s *Scene) { s.Kick(h, 50) }
}
