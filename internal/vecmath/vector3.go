package vecmath

import (
	"fmt"
	"math"
)

type Vector3 struct {
	X, Y, Z Real
}

var (
	Zero        = Vector3{0, 0, 0}
	Up          = Vector3{0, 1, 0}
	Right       = Vector3{1, 0, 0}
	Forward     = Vector3{0, 0, -1}
	Gravity     = Vector3{0, -9.81, 0}
	HighGravity = Vector3{0, -19.62, 0}
)

func V(x, y, z Real) Vector3 { return Vector3{x, y, z} }

func (v Vector3) Add(o Vector3) Vector3 { return Vector3{v.X + o.X, v.Y + o.Y, v.Z + o.Z} }
func (v Vector3) Sub(o Vector3) Vector3 { return Vector3{v.X - o.X, v.Y - o.Y, v.Z - o.Z} }
func (v Vector3) Scale(s Real) Vector3  { return Vector3{v.X * s, v.Y * s, v.Z * s} }
func (v Vector3) Div(s Real) Vector3    { return Vector3{v.X / s, v.Y / s, v.Z / s} }
func (v Vector3) Dot(o Vector3) Real    { return v.X*o.X + v.Y*o.Y + v.Z*o.Z }

func (v Vector3) Cross(o Vector3) Vector3 {
	return Vector3{
		v.Y*o.Z - v.Z*o.Y,
		v.Z*o.X - v.X*o.Z,
		v.X*o.Y - v.Y*o.X,
	}
}

// LengthSquared skips the square root; use it for comparisons and energy terms.
func (v Vector3) LengthSquared() Real { return v.X*v.X + v.Y*v.Y + v.Z*v.Z }

func (v Vector3) Length() Real { return Sqrt(v.LengthSquared()) }

// Normalised returns the unit vector, or the zero vector when the length is
// exactly zero.
func (v Vector3) Normalised() Vector3 {
	l := v.Length()
	if l == 0 {
		return Zero
	}
	return Vector3{v.X / l, v.Y / l, v.Z / l}
}

func (v *Vector3) AddInPlace(o Vector3) {
	v.X += o.X
	v.Y += o.Y
	v.Z += o.Z
}

func (v *Vector3) SubInPlace(o Vector3) {
	v.X -= o.X
	v.Y -= o.Y
	v.Z -= o.Z
}

func (v *Vector3) ScaleInPlace(s Real) {
	v.X *= s
	v.Y *= s
	v.Z *= s
}

func (v *Vector3) DivInPlace(s Real) {
	v.X /= s
	v.Y /= s
	v.Z /= s
}

// AddScaledVector performs v += o*s.
func (v *Vector3) AddScaledVector(o Vector3, s Real) {
	v.X += o.X * s
	v.Y += o.Y * s
	v.Z += o.Z * s
}

func (v *Vector3) Clear() { *v = Zero }

func (v Vector3) IsFinite() bool {
	for _, c := range [3]Real{v.X, v.Y, v.Z} {
		f := float64(c)
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return false
		}
	}
	return true
}

func (v Vector3) String() string {
	return fmt.Sprintf("(%.4f, %.4f, %.4f)", float64(v.X), float64(v.Y), float64(v.Z))
}

func Sqrt(x Real) Real   { return Real(math.Sqrt(float64(x))) }
func Pow(x, y Real) Real { return Real(math.Pow(float64(x), float64(y))) }
func Abs(x Real) Real    { return Real(math.Abs(float64(x))) }
