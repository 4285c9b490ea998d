// SPDX-License-Identifier: MIT
// Package tensor: batched matrix exponential.
//
// Expm operates on …×n×n tensors: the trailing two axes form square
// matrices, any leading axes are treated as a batch. The float64 element
// kind delegates to gonum's mat.Dense.Exp; the complex128 kind runs the
// same scaling-and-squaring Padé-13 scheme directly on complex values,
// since gonum's exponential is real-only.

package tensor

import (
	"fmt"
	"math"
	"math/cmplx"

	"gonum.org/v1/gonum/mat"
)

// Expm computes the matrix exponential of every trailing n×n matrix in a.
// Requires rank ≥ 2 and square trailing axes; n == 0 yields empty matrices.
// Complexity: O(batch · n³).
func Expm[T Number](a *Dense[T]) (*Dense[T], error) {
	if a == nil {
		return nil, fmt.Errorf("Expm: %w", ErrNilTensor)
	}
	if len(a.shape) < 2 {
		return nil, fmt.Errorf("Expm: rank %d, need ≥ 2: %w", len(a.shape), ErrRank)
	}
	n := a.shape[len(a.shape)-1]
	if a.shape[len(a.shape)-2] != n {
		return nil, fmt.Errorf("Expm: trailing axes %d×%d: %w",
			a.shape[len(a.shape)-2], n, ErrNotSquare)
	}
	out := a.Clone()
	if n == 0 {
		return out, nil
	}
	batch := sizeOf(a.shape[:len(a.shape)-2])
	for b := 0; b < batch; b++ {
		sl := out.data[b*n*n : (b+1)*n*n]
		if err := expmInPlace(sl, n); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// expmInPlace exponentiates one n×n row-major block, branching on the
// element kind.
func expmInPlace[T Number](a []T, n int) error {
	switch s := any(a).(type) {
	case []float64:
		return expmReal(s, n)
	case []complex128:
		expmComplex(s, n)
		return nil
	}
	return nil // unreachable: Number is a closed type set
}

// expmReal delegates to gonum's scaling-and-squaring implementation.
func expmReal(a []float64, n int) error {
	if n == 1 {
		a[0] = math.Exp(a[0])
		return nil
	}
	src := make([]float64, len(a))
	copy(src, a)
	var e mat.Dense
	e.Exp(mat.NewDense(n, n, src))
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			a[i*n+j] = e.At(i, j)
		}
	}
	return nil
}

// Padé-13 numerator coefficients for the matrix exponential.
var padeCoeff = [14]float64{
	64764752532480000, 32382376266240000, 7771770303897600, 1187353796428800,
	129060195264000, 10559470521600, 670442572800, 33522128640,
	1323241920, 40840800, 960960, 16380, 182, 1,
}

// expmComplex runs scaling-and-squaring with the [13/13] Padé approximant
// on one n×n complex block, in place.
func expmComplex(a []complex128, n int) {
	if n == 1 {
		a[0] = cmplx.Exp(a[0])
		return
	}

	// Scale so the 1-norm drops under the Padé-13 radius.
	const theta13 = 5.371920351148152
	norm := onenorm(a, n)
	s := 0
	if norm > theta13 {
		s = int(math.Ceil(math.Log2(norm / theta13)))
	}
	if s > 0 {
		f := complex(math.Exp2(-float64(s)), 0)
		for i := range a {
			a[i] *= f
		}
	}

	a2 := mulSquare(a, a, n)
	a4 := mulSquare(a2, a2, n)
	a6 := mulSquare(a2, a4, n)

	// U = A (A6 (b13 A6 + b11 A4 + b9 A2) + b7 A6 + b5 A4 + b3 A2 + b1 I)
	w := polySquare(n, [][]complex128{a6, a4, a2}, padeCoeff[13], padeCoeff[11], padeCoeff[9])
	w = mulSquare(a6, w, n)
	axpySquare(w, a6, padeCoeff[7])
	axpySquare(w, a4, padeCoeff[5])
	axpySquare(w, a2, padeCoeff[3])
	addDiag(w, n, padeCoeff[1])
	u := mulSquare(a, w, n)

	// V = A6 (b12 A6 + b10 A4 + b8 A2) + b6 A6 + b4 A4 + b2 A2 + b0 I
	v := polySquare(n, [][]complex128{a6, a4, a2}, padeCoeff[12], padeCoeff[10], padeCoeff[8])
	v = mulSquare(a6, v, n)
	axpySquare(v, a6, padeCoeff[6])
	axpySquare(v, a4, padeCoeff[4])
	axpySquare(v, a2, padeCoeff[2])
	addDiag(v, n, padeCoeff[0])

	// Solve (V - U) X = (V + U).
	lhs := make([]complex128, n*n)
	rhs := make([]complex128, n*n)
	for i := range v {
		lhs[i] = v[i] - u[i]
		rhs[i] = v[i] + u[i]
	}
	x := luSolveSquare(lhs, rhs, n)

	// Undo the scaling by repeated squaring.
	for k := 0; k < s; k++ {
		x = mulSquare(x, x, n)
	}
	copy(a, x)
}

// onenorm computes the maximum absolute column sum of an n×n block.
func onenorm(a []complex128, n int) float64 {
	max := 0.0
	for j := 0; j < n; j++ {
		sum := 0.0
		for i := 0; i < n; i++ {
			sum += cmplx.Abs(a[i*n+j])
		}
		if sum > max {
			max = sum
		}
	}
	return max
}

// mulSquare returns the n×n product a·b.
func mulSquare(a, b []complex128, n int) []complex128 {
	c := make([]complex128, n*n)
	for i := 0; i < n; i++ {
		for k := 0; k < n; k++ {
			aik := a[i*n+k]
			if aik == 0 {
				continue
			}
			for j := 0; j < n; j++ {
				c[i*n+j] += aik * b[k*n+j]
			}
		}
	}
	return c
}

// polySquare returns c0·ms[0] + c1·ms[1] + c2·ms[2] as a fresh block.
func polySquare(n int, ms [][]complex128, cs ...float64) []complex128 {
	out := make([]complex128, n*n)
	for t, m := range ms {
		c := complex(cs[t], 0)
		for i := range out {
			out[i] += c * m[i]
		}
	}
	return out
}

// axpySquare accumulates dst += c·src.
func axpySquare(dst, src []complex128, c float64) {
	cc := complex(c, 0)
	for i := range dst {
		dst[i] += cc * src[i]
	}
}

// addDiag accumulates c onto the main diagonal.
func addDiag(a []complex128, n int, c float64) {
	cc := complex(c, 0)
	for i := 0; i < n; i++ {
		a[i*n+i] += cc
	}
}

// luSolveSquare solves A·X = B for n×n A and B via LU with partial
// pivoting, returning X. A and B are clobbered.
func luSolveSquare(a, b []complex128, n int) []complex128 {
	for col := 0; col < n; col++ {
		// Partial pivot: largest modulus in the column at or below the diagonal.
		best, bestAbs := col, cmplx.Abs(a[col*n+col])
		for r := col + 1; r < n; r++ {
			if ab := cmplx.Abs(a[r*n+col]); ab > bestAbs {
				best, bestAbs = r, ab
			}
		}
		if best != col {
			for j := 0; j < n; j++ {
				a[col*n+j], a[best*n+j] = a[best*n+j], a[col*n+j]
				b[col*n+j], b[best*n+j] = b[best*n+j], b[col*n+j]
			}
		}
		pivot := a[col*n+col]
		if pivot == 0 {
			continue // singular column: leave zeros, matches a non-pivoting fallback
		}
		for r := col + 1; r < n; r++ {
			f := a[r*n+col] / pivot
			if f == 0 {
				continue
			}
			a[r*n+col] = f
			for j := col + 1; j < n; j++ {
				a[r*n+j] -= f * a[col*n+j]
			}
			for j := 0; j < n; j++ {
				b[r*n+j] -= f * b[col*n+j]
			}
		}
	}
	// Back substitution on the upper triangle.
	x := make([]complex128, n*n)
	for j := 0; j < n; j++ {
		for i := n - 1; i >= 0; i-- {
			sum := b[i*n+j]
			for k := i + 1; k < n; k++ {
				sum -= a[i*n+k] * x[k*n+j]
			}
			if a[i*n+i] != 0 {
				sum /= a[i*n+i]
			}
			x[i*n+j] = sum
		}
	}
	return x
}
