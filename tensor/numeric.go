// SPDX-License-Identifier: MIT
// Package tensor: element-kind helpers shared by the generic kernels.
// The Number type set is exact (float64 | complex128), so branching on the
// element kind is a plain type switch over any(v).

package tensor

import (
	"math"
	"math/cmplx"
)

// absOf returns the modulus of a Number value.
func absOf[T Number](v T) float64 {
	switch x := any(v).(type) {
	case float64:
		return math.Abs(x)
	case complex128:
		return cmplx.Abs(x)
	}
	return 0 // unreachable: Number is a closed type set
}

// conjOf returns the complex conjugate of a Number value.
// Real values are their own conjugate.
func conjOf[T Number](v T) T {
	switch x := any(v).(type) {
	case complex128:
		return any(cmplx.Conj(x)).(T)
	}
	return v
}

// Less orders two Number values. Real values order naturally; complex
// values order lexicographically by (real, imag), the NumPy convention
// for reductions over complex data. Exported for container-level
// reductions.
func Less[T Number](a, b T) bool {
	switch x := any(a).(type) {
	case float64:
		return x < any(b).(float64)
	case complex128:
		y := any(b).(complex128)
		if real(x) != real(y) {
			return real(x) < real(y)
		}
		return imag(x) < imag(y)
	}
	return false // unreachable
}
