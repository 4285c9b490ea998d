// SPDX-License-Identifier: MIT
package tensor

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestElementwise(t *testing.T) {
	a := FromVector([]float64{1, 2, 3})
	b := FromVector([]float64{4, 5, 6})

	sum, err := Add(a, b)
	require.NoError(t, err)
	assert.Equal(t, []float64{5, 7, 9}, sum.Data())

	diff, err := Sub(b, a)
	require.NoError(t, err)
	assert.Equal(t, []float64{3, 3, 3}, diff.Data())

	prod, err := MulElem(a, b)
	require.NoError(t, err)
	assert.Equal(t, []float64{4, 10, 18}, prod.Data())

	quot, err := DivElem(b, a)
	require.NoError(t, err)
	assert.Equal(t, []float64{4, 2.5, 2}, quot.Data())
}

func TestElementwise_ShapeMismatch(t *testing.T) {
	a := FromVector([]float64{1, 2})
	b := FromVector([]float64{1, 2, 3})
	_, err := Add(a, b)
	assert.ErrorIs(t, err, ErrShapeMismatch)
}

func TestElementwise_NilOperand(t *testing.T) {
	a := FromVector([]float64{1})
	_, err := Add[float64](a, nil)
	assert.ErrorIs(t, err, ErrNilTensor)
	_, err = Neg[float64](nil)
	assert.ErrorIs(t, err, ErrNilTensor)
}

func TestScalarBroadcast(t *testing.T) {
	a := FromVector([]float64{1, 2, 3})

	r, err := AddScalar(a, 10)
	require.NoError(t, err)
	assert.Equal(t, []float64{11, 12, 13}, r.Data())

	r, err = SubScalar(a, 1)
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 1, 2}, r.Data())

	r, err = Scale(a, 2)
	require.NoError(t, err)
	assert.Equal(t, []float64{2, 4, 6}, r.Data())

	r, err = DivScalar(a, 2)
	require.NoError(t, err)
	assert.Equal(t, []float64{0.5, 1, 1.5}, r.Data())

	r, err = Neg(a)
	require.NoError(t, err)
	assert.Equal(t, []float64{-1, -2, -3}, r.Data())
}

func TestDivElem_IEEE(t *testing.T) {
	a := FromVector([]float64{1})
	z := FromVector([]float64{0})
	r, err := DivElem(a, z)
	require.NoError(t, err)
	assert.True(t, math.IsInf(r.Data()[0], 1))
}

func TestOps_Complex(t *testing.T) {
	a := FromVector([]complex128{1 + 1i, 2})
	b := FromVector([]complex128{0 + 1i, 3})

	r, err := MulElem(a, b)
	require.NoError(t, err)
	assert.Equal(t, []complex128{-1 + 1i, 6}, r.Data())

	r, err = Scale(a, 2i)
	require.NoError(t, err)
	assert.Equal(t, []complex128{-2 + 2i, 4i}, r.Data())
}

func TestMap(t *testing.T) {
	a := FromVector([]float64{1, 4, 9})
	r, err := Map(a, math.Sqrt)
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 2, 3}, r.Data())
}

func TestOps_EmptyPassThrough(t *testing.T) {
	a := Empty[float64](1)
	b := Empty[float64](1)
	r, err := Add(a, b)
	require.NoError(t, err)
	assert.Equal(t, 0, r.Size())
}
