// SPDX-License-Identifier: MIT
package tensor

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const eigTol = 1e-10

func TestSymTriEigen_Known2x2(t *testing.T) {
	// [[2,1],[1,2]] has eigenvalues 1 and 3.
	vals, vecs, err := SymTriEigen([]float64{2, 2}, []float64{1})
	require.NoError(t, err)
	assert.Equal(t, []int{2}, vals.Shape())
	assert.Equal(t, []int{2, 2}, vecs.Shape())
	assert.InDelta(t, 1.0, vals.Data()[0], eigTol)
	assert.InDelta(t, 3.0, vals.Data()[1], eigTol)
}

func TestSymTriEigen_Residual(t *testing.T) {
	d := []float64{1, 2, 3, 4}
	e := []float64{0.5, 0.25, 0.125}
	vals, vecs, err := SymTriEigen(d, e)
	require.NoError(t, err)

	a, err := SymTriDense(d, e)
	require.NoError(t, err)

	// A·v_j = λ_j·v_j for every column j.
	n := len(d)
	for j := 0; j < n; j++ {
		lam := vals.Data()[j]
		for i := 0; i < n; i++ {
			var av float64
			for k := 0; k < n; k++ {
				aik, err := a.At(i, k)
				require.NoError(t, err)
				vkj, err := vecs.At(k, j)
				require.NoError(t, err)
				av += aik * vkj
			}
			vij, err := vecs.At(i, j)
			require.NoError(t, err)
			assert.InDelta(t, lam*vij, av, eigTol)
		}
	}
}

func TestSymTriEigen_Ascending(t *testing.T) {
	vals, _, err := SymTriEigen([]float64{3, -1, 2, 0}, []float64{1, 1, 1})
	require.NoError(t, err)
	assert.True(t, sort.Float64sAreSorted(vals.Data()))
}

func TestSymTriEigen_Degenerate(t *testing.T) {
	vals, vecs, err := SymTriEigen(nil, nil)
	require.NoError(t, err)
	assert.Equal(t, 0, vals.Size())
	assert.Equal(t, []int{0, 0}, vecs.Shape())

	vals, vecs, err = SymTriEigen([]float64{7}, nil)
	require.NoError(t, err)
	assert.Equal(t, []float64{7}, vals.Data())
	assert.Equal(t, []int{1, 1}, vecs.Shape())
	assert.Equal(t, []float64{1}, vecs.Data())
}

func TestSymTriValues_MatchesEigen(t *testing.T) {
	d := []float64{1, 2, 3}
	e := []float64{0.5, 0.5}
	w1, _, err := SymTriEigen(d, e)
	require.NoError(t, err)
	w2, err := SymTriValues(d, e)
	require.NoError(t, err)
	assert.True(t, w1.EqualApprox(w2, eigTol))
}

func TestSymTriLowest(t *testing.T) {
	d := []float64{1, 2, 3}
	e := []float64{0.5, 0.5}
	w, err := SymTriValues(d, e)
	require.NoError(t, err)
	e0, err := SymTriLowest(d, e)
	require.NoError(t, err)
	assert.InDelta(t, w.Data()[0], e0, 1e-9)

	e0, err = SymTriLowest([]float64{4}, nil)
	require.NoError(t, err)
	assert.Equal(t, 4.0, e0)

	_, err = SymTriLowest(nil, nil)
	assert.ErrorIs(t, err, ErrBadShape)
}

func TestSymTriLowest_NegativeSpectrum(t *testing.T) {
	// [[−2,1],[1,−2]] has eigenvalues −3 and −1.
	e0, err := SymTriLowest([]float64{-2, -2}, []float64{1})
	require.NoError(t, err)
	assert.InDelta(t, -3.0, e0, 1e-9)
}

func TestSymTriDense(t *testing.T) {
	m, err := SymTriDense([]float64{1, 2, 3}, []float64{0.5, 0.5})
	require.NoError(t, err)
	assert.Equal(t, []int{3, 3}, m.Shape())
	assert.Equal(t, []float64{
		1, 0.5, 0,
		0.5, 2, 0.5,
		0, 0.5, 3,
	}, m.Data())

	empty, err := SymTriDense(nil, nil)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 0}, empty.Shape())
}

func TestValidateTri(t *testing.T) {
	_, err := SymTriValues([]float64{1, 2}, []float64{1, 1})
	assert.ErrorIs(t, err, ErrTriDiagShape)
	_, _, err = SymTriEigen([]float64{1}, []float64{1})
	assert.ErrorIs(t, err, ErrTriDiagShape)
}

func TestSturmOrthogonality(t *testing.T) {
	// Eigenvector columns of a symmetric matrix are orthonormal.
	_, vecs, err := SymTriEigen([]float64{1, 2, 3}, []float64{0.5, 0.5})
	require.NoError(t, err)
	n := 3
	for j := 0; j < n; j++ {
		for k := j; k < n; k++ {
			var dot float64
			for i := 0; i < n; i++ {
				vij, _ := vecs.At(i, j)
				vik, _ := vecs.At(i, k)
				dot += vij * vik
			}
			want := 0.0
			if j == k {
				want = 1.0
			}
			assert.InDelta(t, want, dot, eigTol)
		}
	}
}
