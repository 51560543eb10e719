//go:build hadron_float32

package vecmath

import "math"

type Real = float32

const RealMax Real = math.MaxFloat32
