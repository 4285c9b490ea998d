// SPDX-License-Identifier: MIT
// Package tensor: symmetric tridiagonal eigensolvers.
//
// The three entry points map to three distinct LAPACK-style dispatches, in
// decreasing cost order:
//
//   - SymTriEigen  — full spectrum with eigenvectors (Dsteqr, QL/QR).
//   - SymTriValues — full spectrum, values only (Dsterf, the cheaper
//     Pal–Walker–Kahan variant; deliberately not derived from SymTriEigen).
//   - SymTriLowest — the single lowest eigenvalue via Sturm-count bisection
//     inside the Gershgorin interval. gonum exports no selective-range
//     tridiagonal driver, and large blocks only ever need the ground
//     state, so the selective path is kept native here.
//
// All routines take the diagonal d (length n) and off-diagonal e
// (length n-1) and never mutate their inputs.

package tensor

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/lapack"
	lapackimpl "gonum.org/v1/gonum/lapack/gonum"
)

// validateTri checks the d/e length contract.
func validateTri(d, e []float64) error {
	if len(e) != maxInt(len(d)-1, 0) {
		return fmt.Errorf("diag %d / offdiag %d: %w", len(d), len(e), ErrTriDiagShape)
	}
	return nil
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// SymTriEigen computes the full eigendecomposition of the symmetric
// tridiagonal matrix diag(d) + diag(e, ±1). It returns the eigenvalues in
// ascending order as a rank-1 tensor and the eigenvectors as the columns
// of a rank-2 tensor (column j pairs with eigenvalue j).
// Complexity: O(n³) worst case (Dsteqr).
func SymTriEigen(d, e []float64) (vals, vecs *Dense[float64], err error) {
	if err = validateTri(d, e); err != nil {
		return nil, nil, fmt.Errorf("SymTriEigen: %w", err)
	}
	n := len(d)
	switch n {
	case 0:
		return Empty[float64](1), Empty[float64](2), nil
	case 1:
		one, _ := New([]int{1, 1}, []float64{1})
		return FromVector([]float64{d[0]}), one, nil
	}

	dd := append([]float64(nil), d...)
	ee := append([]float64(nil), e...)
	z := make([]float64, n*n)
	for i := 0; i < n; i++ {
		z[i*n+i] = 1
	}
	work := make([]float64, maxInt(1, 2*n-2))
	impl := lapackimpl.Implementation{}
	if ok := impl.Dsteqr(lapack.EVTridiag, n, dd, ee, z, n, work); !ok {
		return nil, nil, fmt.Errorf("SymTriEigen: %w", ErrEigenFailed)
	}
	vecs, _ = New([]int{n, n}, z)
	return FromVector(dd), vecs, nil
}

// SymTriValues computes the eigenvalues of the symmetric tridiagonal matrix
// in ascending order, without eigenvectors. This is its own dispatch, not a
// truncation of SymTriEigen: the vector-free routine is algorithmically
// cheaper. Complexity: O(n²).
func SymTriValues(d, e []float64) (*Dense[float64], error) {
	if err := validateTri(d, e); err != nil {
		return nil, fmt.Errorf("SymTriValues: %w", err)
	}
	n := len(d)
	switch n {
	case 0:
		return Empty[float64](1), nil
	case 1:
		return FromVector([]float64{d[0]}), nil
	}

	dd := append([]float64(nil), d...)
	ee := append([]float64(nil), e...)
	impl := lapackimpl.Implementation{}
	if ok := impl.Dsterf(n, dd, ee); !ok {
		return nil, fmt.Errorf("SymTriValues: %w", ErrEigenFailed)
	}
	return FromVector(dd), nil
}

// sturmCount returns the number of eigenvalues of the tridiagonal system
// strictly below x, via the classic Sturm-sequence recurrence.
func sturmCount(d, e []float64, x float64) int {
	const tiny = 1e-300
	count := 0
	q := d[0] - x
	if q < 0 {
		count++
	}
	for i := 1; i < len(d); i++ {
		if q == 0 {
			q = tiny
		}
		q = d[i] - x - e[i-1]*e[i-1]/q
		if q < 0 {
			count++
		}
	}
	return count
}

// SymTriLowest computes only the smallest eigenvalue of the symmetric
// tridiagonal matrix, bisecting the Gershgorin interval on the Sturm
// count. Requires n ≥ 1. Complexity: O(n · log(width/tol)).
func SymTriLowest(d, e []float64) (float64, error) {
	if err := validateTri(d, e); err != nil {
		return 0, fmt.Errorf("SymTriLowest: %w", err)
	}
	n := len(d)
	if n == 0 {
		return 0, fmt.Errorf("SymTriLowest: empty system: %w", ErrBadShape)
	}
	if n == 1 {
		return d[0], nil
	}

	// Gershgorin bounds: every eigenvalue lies in [lo, hi].
	lo, hi := math.Inf(1), math.Inf(-1)
	for i := 0; i < n; i++ {
		r := 0.0
		if i > 0 {
			r += math.Abs(e[i-1])
		}
		if i < n-1 {
			r += math.Abs(e[i])
		}
		lo = math.Min(lo, d[i]-r)
		hi = math.Max(hi, d[i]+r)
	}

	// Bisect until the bracket is tight relative to its magnitude.
	tol := 2 * math.SmallestNonzeroFloat64
	for iter := 0; iter < 200 && hi-lo > tol; iter++ {
		mid := 0.5 * (lo + hi)
		if sturmCount(d, e, mid) >= 1 {
			hi = mid
		} else {
			lo = mid
		}
		tol = 4 * math.Max(math.Abs(lo), math.Abs(hi)) * 1e-16
	}
	return 0.5 * (lo + hi), nil
}

// SymTriDense reconstructs the full dense symmetric matrix from d and e:
// d on the main diagonal, e mirrored on both adjacent diagonals, zero
// elsewhere. An empty system yields a 0×0 matrix.
func SymTriDense(d, e []float64) (*Dense[float64], error) {
	if err := validateTri(d, e); err != nil {
		return nil, fmt.Errorf("SymTriDense: %w", err)
	}
	n := len(d)
	out, _ := Zeros[float64](n, n)
	for i := 0; i < n; i++ {
		out.data[i*n+i] = d[i]
		if i < n-1 {
			out.data[i*n+i+1] = e[i]
			out.data[(i+1)*n+i] = e[i]
		}
	}
	return out, nil
}
