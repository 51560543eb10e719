package force_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/hadron/internal/force"
	"github.com/san-kum/hadron/internal/particle"
	"github.com/san-kum/hadron/internal/vecmath"
)

func spawn(store *particle.Store, pos vecmath.Vector3) particle.Handle {
	p := particle.New()
	p.SetPosition(pos)
	p.SetAcceleration(vecmath.Zero)
	p.SetDamping(1)
	p.SetAlive(true)
	return store.Add(p)
}

// impulses is a value generator that cannot be compared with ==.
type impulses struct{ forces []vecmath.Vector3 }

func (g impulses) ApplyForce(p *particle.Particle, dT force.Real) {
	for _, f := range g.forces {
		p.ApplyForce(f)
	}
}

func accum(store *particle.Store, h particle.Handle) vecmath.Vector3 {
	p, ok := store.Get(h)
	Expect(ok).To(BeTrue())
	return p.ForceAccum()
}

var _ = Describe("Registry", func() {
	var (
		store *particle.Store
		reg   *force.Registry
		a, b  particle.Handle
		push  *force.Constant
		lift  *force.Constant
	)

	BeforeEach(func() {
		store = particle.NewStore()
		reg = force.NewRegistry(store)
		a = spawn(store, vecmath.Zero)
		b = spawn(store, vecmath.V(1, 0, 0))
		push = force.NewConstant(vecmath.V(1, 0, 0))
		lift = force.NewConstant(vecmath.V(0, 2, 0))
	})

	Describe("ApplyForces", func() {
		It("sums every generator registered against a particle", func() {
			reg.Add(a, push)
			reg.Add(a, lift)
			reg.Add(a, push)

			reg.ApplyForces(0.01)

			Expect(accum(store, a)).To(Equal(vecmath.V(2, 2, 0)))
			Expect(accum(store, b)).To(Equal(vecmath.Zero))
		})

		It("shares one generator across many particles", func() {
			reg.Add(a, push)
			reg.Add(b, push)

			reg.ApplyForces(0.01)

			Expect(accum(store, a)).To(Equal(vecmath.V(1, 0, 0)))
			Expect(accum(store, b)).To(Equal(vecmath.V(1, 0, 0)))
		})

		It("does not integrate", func() {
			reg.Add(a, push)
			reg.ApplyForces(1)

			p, _ := store.Get(a)
			Expect(p.Position()).To(Equal(vecmath.Zero))
			Expect(p.Velocity()).To(Equal(vecmath.Zero))
		})

		It("skips entries whose particle was removed from the store", func() {
			reg.Add(a, push)
			reg.Add(b, push)
			Expect(store.Remove(a)).To(BeTrue())
			c := spawn(store, vecmath.Zero)

			Expect(func() { reg.ApplyForces(0.01) }).NotTo(Panic())
			Expect(accum(store, c)).To(Equal(vecmath.Zero))
			Expect(accum(store, b)).To(Equal(vecmath.V(1, 0, 0)))
		})
	})

	Describe("Remove", func() {
		It("is a no-op for a pair that is not registered", func() {
			reg.Add(a, push)
			Expect(reg.Remove(a, lift)).To(BeFalse())
			Expect(reg.Remove(b, push)).To(BeFalse())
			Expect(reg.Len()).To(Equal(1))
		})

		It("treats generators that cannot be compared as absent", func() {
			kicks := impulses{forces: []vecmath.Vector3{vecmath.V(0, 1, 0)}}
			reg.Add(a, kicks)
			reg.Add(a, push)

			Expect(reg.Remove(a, impulses{})).To(BeFalse())
			Expect(reg.Remove(a, kicks)).To(BeFalse())
			Expect(reg.Count(a, kicks)).To(Equal(0))
			Expect(reg.Remove(a, push)).To(BeTrue())
			Expect(reg.Len()).To(Equal(1))
		})

		It("removes exactly one matching entry and leaves the rest", func() {
			reg.Add(a, push)
			reg.Add(a, lift)
			reg.Add(b, push)

			Expect(reg.Remove(a, push)).To(BeTrue())

			Expect(reg.Count(a, push)).To(Equal(0))
			Expect(reg.Count(a, lift)).To(Equal(1))
			Expect(reg.Count(b, push)).To(Equal(1))
			Expect(reg.Len()).To(Equal(2))
		})

		It("removes only the first of duplicate entries", func() {
			reg.Add(a, push)
			reg.Add(a, push)

			Expect(reg.Remove(a, push)).To(BeTrue())
			Expect(reg.Count(a, push)).To(Equal(1))
		})

		It("drops every entry for a particle with RemoveParticle", func() {
			reg.Add(a, push)
			reg.Add(b, push)
			reg.Add(a, lift)

			Expect(reg.RemoveParticle(a)).To(Equal(2))
			Expect(reg.Len()).To(Equal(1))
			Expect(reg.Count(b, push)).To(Equal(1))
		})
	})

	It("clears all entries", func() {
		reg.Add(a, push)
		reg.Add(b, lift)
		reg.Clear()

		Expect(reg.Len()).To(BeZero())
		reg.ApplyForces(1)
		Expect(accum(store, a)).To(Equal(vecmath.Zero))
	})

	It("sums potential energy of conservative entries", func() {
		s1 := force.NewSpring(store, b, 2, 0)
		s2 := force.NewSpring(store, a, 2, 0)
		reg.Add(a, s1)
		reg.Add(b, s2)
		reg.Add(a, push)

		// one link of length 1: ½·2·1² = 1
		Expect(float64(reg.PotentialEnergy())).To(BeNumerically("~", 1, 1e-9))
	})
})
