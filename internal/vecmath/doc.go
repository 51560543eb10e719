// Package vecmath provides the 3D vector type used by the particle core.
//
// All scalar quantities share one precision, [Real]. It is float64 by
// default; building with the hadron_float32 tag switches every vector and
// scalar in the module to float32:
//
//	go build -tags hadron_float32 ./...
//
// [Vector3] is a value type. Pure operations return a new vector; the
// in-place forms (AddInPlace, AddScaledVector, Clear, ...) take a pointer
// receiver and mutate it.
package vecmath
