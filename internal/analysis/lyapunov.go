package analysis

import (
	"errors"
	"math"

	"github.com/san-kum/hadron/internal/particle"
	"github.com/san-kum/hadron/internal/sim"
	"github.com/san-kum/hadron/internal/vecmath"
)

// WorldFactory builds a fresh, identical copy of a world on every call.
type WorldFactory func() (*sim.World, error)

var errMismatchedWorlds = errors.New("analysis: factory built worlds of different sizes")

// LyapunovExponent estimates the largest Lyapunov exponent of a world by
// running it beside a twin whose first particle is nudged along x by
// perturbation. The twin is pulled back to the initial separation whenever
// the separation exceeds 1. The result is the mean log growth per unit time.
func LyapunovExponent(build WorldFactory, perturbation, dt, duration float64) (float64, error) {
	ref, err := build()
	if err != nil {
		return 0, err
	}
	twin, err := build()
	if err != nil {
		return 0, err
	}

	a, b := ref.Particles.Handles(), twin.Particles.Handles()
	if len(a) != len(b) {
		return 0, errMismatchedWorlds
	}
	if len(a) == 0 || perturbation <= 0 || dt <= 0 {
		return 0, nil
	}

	first, _ := twin.Particles.Get(b[0])
	first.SetX(first.X() + vecmath.Real(perturbation))

	prev := perturbation
	sumLog := 0.0
	count := 0

	for t := 0.0; t < duration; t += dt {
		ref.Step(vecmath.Real(dt))
		twin.Step(vecmath.Real(dt))

		sep := separation(ref.Particles, twin.Particles, a, b)
		if sep == 0 || math.IsNaN(sep) || math.IsInf(sep, 0) {
			break
		}

		sumLog += math.Log(sep / prev)
		count++
		prev = sep

		if sep > 1.0 {
			renormalise(ref.Particles, twin.Particles, a, b, perturbation/sep)
			prev = perturbation
		}
	}

	if count == 0 {
		return 0, nil
	}
	return sumLog / (float64(count) * dt), nil
}

// separation is the Euclidean distance between the two worlds' combined
// position and velocity vectors.
func separation(sa, sb *particle.Store, a, b []particle.Handle) float64 {
	sum := 0.0
	for i := range a {
		pa, okA := sa.Get(a[i])
		pb, okB := sb.Get(b[i])
		if !okA || !okB {
			continue
		}
		sum += float64(pb.Position().Sub(pa.Position()).LengthSquared())
		sum += float64(pb.Velocity().Sub(pa.Velocity()).LengthSquared())
	}
	return math.Sqrt(sum)
}

func renormalise(sa, sb *particle.Store, a, b []particle.Handle, scale float64) {
	s := vecmath.Real(scale)
	for i := range a {
		pa, okA := sa.Get(a[i])
		pb, okB := sb.Get(b[i])
		if !okA || !okB {
			continue
		}
		pb.SetPosition(pa.Position().Add(pb.Position().Sub(pa.Position()).Scale(s)))
		pb.SetVelocity(pa.Velocity().Add(pb.Velocity().Sub(pa.Velocity()).Scale(s)))
	}
}
