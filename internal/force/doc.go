// Package force applies force generators to particles once per step.
//
// A [Generator] adds to a single particle's force accumulator. A [Registry]
// pairs particle handles with generators and, once per step, asks every
// generator to act on its particle:
//
//	store := particle.NewStore()
//	reg := force.NewRegistry(store)
//	well := force.NewGravitation(vecmath.Zero)
//	for _, h := range store.Handles() {
//	    reg.Add(h, well)
//	}
//	reg.ApplyForces(dT)
//	store.UpdateAll(dT)
//
// Generators are shared freely between entries and several generators may
// target one particle; their forces sum. Dead particles are force-inert for
// every generator in this package.
package force
