// SPDX-License-Identifier: MIT
package tensor

import (
	"math"
	"math/cmplx"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpm_ZeroIsIdentity(t *testing.T) {
	z, err := Zeros[float64](3, 3)
	require.NoError(t, err)
	e, err := Expm(z)
	require.NoError(t, err)
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			want := 0.0
			if i == j {
				want = 1.0
			}
			v, err := e.At(i, j)
			require.NoError(t, err)
			assert.InDelta(t, want, v, 1e-14)
		}
	}
}

func TestExpm_Diagonal(t *testing.T) {
	a, err := FromMatrix([][]float64{{1, 0}, {0, 2}})
	require.NoError(t, err)
	e, err := Expm(a)
	require.NoError(t, err)
	v00, _ := e.At(0, 0)
	v11, _ := e.At(1, 1)
	v01, _ := e.At(0, 1)
	assert.InDelta(t, math.E, v00, 1e-12)
	assert.InDelta(t, math.Exp(2), v11, 1e-12)
	assert.InDelta(t, 0, v01, 1e-12)
}

func TestExpm_Nilpotent(t *testing.T) {
	// exp([[0,1],[0,0]]) = [[1,1],[0,1]] exactly.
	a, err := FromMatrix([][]float64{{0, 1}, {0, 0}})
	require.NoError(t, err)
	e, err := Expm(a)
	require.NoError(t, err)
	want, err := FromMatrix([][]float64{{1, 1}, {0, 1}})
	require.NoError(t, err)
	assert.True(t, want.EqualApprox(e, 1e-14))
}

func TestExpm_Complex(t *testing.T) {
	// exp(diag(iπ)) = −I.
	a, err := FromMatrix([][]complex128{{complex(0, math.Pi), 0}, {0, complex(0, math.Pi)}})
	require.NoError(t, err)
	e, err := Expm(a)
	require.NoError(t, err)
	v00, _ := e.At(0, 0)
	v01, _ := e.At(0, 1)
	assert.InDelta(t, -1, real(v00), 1e-12)
	assert.InDelta(t, 0, imag(v00), 1e-12)
	assert.InDelta(t, 0, cmplx.Abs(v01), 1e-12)
}

func TestExpm_ComplexSkewHermitianIsUnitary(t *testing.T) {
	// exp of a skew-Hermitian matrix is unitary: |det| related checks via
	// column norms and orthogonality.
	a, err := FromMatrix([][]complex128{{0, 1 + 1i}, {-1 + 1i, 0}})
	require.NoError(t, err)
	e, err := Expm(a)
	require.NoError(t, err)

	n := 2
	for j := 0; j < n; j++ {
		for k := 0; k < n; k++ {
			var dot complex128
			for i := 0; i < n; i++ {
				vij, _ := e.At(i, j)
				vik, _ := e.At(i, k)
				dot += cmplx.Conj(vij) * vik
			}
			want := complex128(0)
			if j == k {
				want = 1
			}
			assert.InDelta(t, cmplx.Abs(want-dot), 0, 1e-10)
		}
	}
}

func TestExpm_Batched(t *testing.T) {
	// Two stacked 2×2 matrices: zero and diag(1,1).
	data := []float64{
		0, 0, 0, 0,
		1, 0, 0, 1,
	}
	a, err := New([]int{2, 2, 2}, data)
	require.NoError(t, err)
	e, err := Expm(a)
	require.NoError(t, err)
	assert.Equal(t, []int{2, 2, 2}, e.Shape())

	v, _ := e.At(0, 0, 0)
	assert.InDelta(t, 1, v, 1e-14)
	v, _ = e.At(1, 0, 0)
	assert.InDelta(t, math.E, v, 1e-12)
	v, _ = e.At(1, 1, 1)
	assert.InDelta(t, math.E, v, 1e-12)
}

func TestExpm_Shape(t *testing.T) {
	v := FromVector([]float64{1, 2})
	_, err := Expm(v)
	assert.ErrorIs(t, err, ErrRank)

	r, err := New([]int{2, 3}, make([]float64, 6))
	require.NoError(t, err)
	_, err = Expm(r)
	assert.ErrorIs(t, err, ErrNotSquare)

	empty, err := Zeros[float64](0, 0)
	require.NoError(t, err)
	e, err := Expm(empty)
	require.NoError(t, err)
	assert.Equal(t, 0, e.Size())
}

func TestExpm_OneByOne(t *testing.T) {
	a, err := New([]int{1, 1}, []float64{2})
	require.NoError(t, err)
	e, err := Expm(a)
	require.NoError(t, err)
	v, _ := e.At(0, 0)
	assert.InDelta(t, math.Exp(2), v, 1e-14)
}
