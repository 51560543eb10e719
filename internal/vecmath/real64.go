//go:build !hadron_float32

package vecmath

import "math"

type Real = float64

const RealMax Real = math.MaxFloat64
