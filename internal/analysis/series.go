package analysis

import (
	"fmt"
	"strings"

	"github.com/san-kum/hadron/internal/particle"
	"github.com/san-kum/hadron/internal/sim"
	"github.com/san-kum/hadron/internal/vecmath"
)

// Axis selects one coordinate of a particle's position or velocity.
type Axis int

const (
	AxisX Axis = iota
	AxisY
	AxisZ
	AxisVX
	AxisVY
	AxisVZ
)

var axisNames = []string{"x", "y", "z", "vx", "vy", "vz"}

func (a Axis) String() string {
	if a < 0 || int(a) >= len(axisNames) {
		return fmt.Sprintf("axis(%d)", int(a))
	}
	return axisNames[a]
}

func (a Axis) isVelocity() bool { return a >= AxisVX }

func ParseAxis(s string) (Axis, error) {
	for i, name := range axisNames {
		if strings.EqualFold(s, name) {
			return Axis(i), nil
		}
	}
	return 0, fmt.Errorf("unknown axis %q (want one of %s)", s, strings.Join(axisNames, ", "))
}

// Value reads the axis straight from a live particle.
func (a Axis) Value(p *particle.Particle) float64 {
	switch a {
	case AxisX:
		return float64(p.Position().X)
	case AxisY:
		return float64(p.Position().Y)
	case AxisZ:
		return float64(p.Position().Z)
	case AxisVX:
		return float64(p.Velocity().X)
	case AxisVY:
		return float64(p.Velocity().Y)
	case AxisVZ:
		return float64(p.Velocity().Z)
	}
	return 0
}

// Series extracts the axis of one particle from frames. Frames only carry
// positions, so velocities are forward differences and the last sample
// repeats the one before it. Frames missing the particle are skipped.
func Series(frames []sim.Frame, idx int, axis Axis) (times, values []float64) {
	times = make([]float64, 0, len(frames))
	pos := make([]float64, 0, len(frames))
	comp := int(axis) % 3

	for _, f := range frames {
		if idx < 0 || idx >= len(f.Positions) {
			continue
		}
		p := f.Positions[idx]
		times = append(times, f.Time)
		pos = append(pos, component(p, comp))
	}

	if !axis.isVelocity() {
		return times, pos
	}

	values = make([]float64, len(pos))
	for i := 0; i+1 < len(pos); i++ {
		dt := times[i+1] - times[i]
		if dt > 0 {
			values[i] = (pos[i+1] - pos[i]) / dt
		}
	}
	if n := len(values); n > 1 {
		values[n-1] = values[n-2]
	}
	return times, values
}

func component(v vecmath.Vector3, i int) float64 {
	switch i {
	case 0:
		return float64(v.X)
	case 1:
		return float64(v.Y)
	}
	return float64(v.Z)
}
