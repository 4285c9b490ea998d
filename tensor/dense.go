// SPDX-License-Identifier: MIT
// Package tensor: Dense is the concrete rank-N array type.
// Storage is one flat row-major slice, the same discipline as a dense
// rank-2 matrix, generalized to arbitrary rank via precomputed strides.
// Rank-0 tensors (single scalars) and zero-length tensors of any rank are
// first-class values.

package tensor

import (
	"fmt"
	"strings"
)

// Number is the element kind a Dense tensor may carry. The whole container
// stack is parameterized over it: one canonical implementation serves both
// real and complex data. The type set is exact (no ~) so that the internal
// kernels may branch on the element kind with plain type switches.
type Number interface {
	float64 | complex128
}

// Dense is a rank-N tensor of T values in row-major order.
// shape holds the per-axis extents, stride the row-major strides and data
// the flat backing storage of length ∏shape (1 for rank-0).
type Dense[T Number] struct {
	shape  []int
	stride []int
	data   []T
}

// sizeOf returns the total element count of a shape (1 for rank-0).
func sizeOf(shape []int) int {
	n := 1
	for _, s := range shape {
		n *= s
	}
	return n
}

// stridesFor computes row-major strides for a shape.
func stridesFor(shape []int) []int {
	st := make([]int, len(shape))
	acc := 1
	for i := len(shape) - 1; i >= 0; i-- {
		st[i] = acc
		acc *= shape[i]
	}
	return st
}

// New creates a Dense tensor with the given shape over the given backing
// data. The data slice is copied; callers keep ownership of theirs.
// Fails with ErrBadShape on negative extents or when len(data) ≠ ∏shape.
// Complexity: O(len(data)).
func New[T Number](shape []int, data []T) (*Dense[T], error) {
	for _, s := range shape {
		if s < 0 {
			return nil, fmt.Errorf("New: extent %d: %w", s, ErrBadShape)
		}
	}
	if sizeOf(shape) != len(data) {
		return nil, fmt.Errorf("New: shape %v needs %d elements, got %d: %w",
			shape, sizeOf(shape), len(data), ErrBadShape)
	}
	cd := make([]T, len(data))
	copy(cd, data)
	cs := make([]int, len(shape))
	copy(cs, shape)
	return &Dense[T]{shape: cs, stride: stridesFor(cs), data: cd}, nil
}

// Zeros creates a zero-initialized tensor of the given shape.
// Fails with ErrBadShape on negative extents.
func Zeros[T Number](shape ...int) (*Dense[T], error) {
	for _, s := range shape {
		if s < 0 {
			return nil, fmt.Errorf("Zeros: extent %d: %w", s, ErrBadShape)
		}
	}
	cs := make([]int, len(shape))
	copy(cs, shape)
	return &Dense[T]{shape: cs, stride: stridesFor(cs), data: make([]T, sizeOf(cs))}, nil
}

// Empty returns a zero-length tensor of the given rank (all extents zero).
// Ranks below one collapse to a rank-1 empty, since a rank-0 tensor always
// holds exactly one element and therefore cannot be empty.
func Empty[T Number](ndim int) *Dense[T] {
	if ndim < 1 {
		ndim = 1
	}
	shape := make([]int, ndim)
	return &Dense[T]{shape: shape, stride: stridesFor(shape), data: nil}
}

// Scalar0 wraps a single value into a rank-0 tensor.
func Scalar0[T Number](v T) *Dense[T] {
	return &Dense[T]{shape: nil, stride: nil, data: []T{v}}
}

// FromVector builds a rank-1 tensor from a slice (copied).
func FromVector[T Number](vs []T) *Dense[T] {
	cd := make([]T, len(vs))
	copy(cd, vs)
	return &Dense[T]{shape: []int{len(vs)}, stride: []int{1}, data: cd}
}

// FromMatrix builds a rank-2 tensor from row slices.
// Fails with ErrBadShape when rows have differing lengths.
func FromMatrix[T Number](rows [][]T) (*Dense[T], error) {
	r := len(rows)
	c := 0
	if r > 0 {
		c = len(rows[0])
	}
	data := make([]T, 0, r*c)
	for i, row := range rows {
		if len(row) != c {
			return nil, fmt.Errorf("FromMatrix: row %d has %d columns, want %d: %w",
				i, len(row), c, ErrBadShape)
		}
		data = append(data, row...)
	}
	shape := []int{r, c}
	return &Dense[T]{shape: shape, stride: stridesFor(shape), data: data}, nil
}

// NDim returns the tensor rank. Complexity: O(1).
func (t *Dense[T]) NDim() int { return len(t.shape) }

// Size returns the total element count. Complexity: O(1).
func (t *Dense[T]) Size() int { return len(t.data) }

// Shape returns a copy of the per-axis extents.
func (t *Dense[T]) Shape() []int {
	cs := make([]int, len(t.shape))
	copy(cs, t.shape)
	return cs
}

// Data returns a copy of the flat row-major backing data.
func (t *Dense[T]) Data() []T {
	cd := make([]T, len(t.data))
	copy(cd, t.data)
	return cd
}

// offsetOf computes the flat index for a full multi-index, or returns
// ErrOutOfRange when the arity or any component is out of bounds.
func (t *Dense[T]) offsetOf(ix []int) (int, error) {
	if len(ix) != len(t.shape) {
		return 0, fmt.Errorf("At: got %d indices for rank %d: %w", len(ix), len(t.shape), ErrOutOfRange)
	}
	off := 0
	for d, i := range ix {
		if i < 0 || i >= t.shape[d] {
			return 0, fmt.Errorf("At: index %d out of [0,%d) on axis %d: %w", i, t.shape[d], d, ErrOutOfRange)
		}
		off += i * t.stride[d]
	}
	return off, nil
}

// At retrieves the element at the given multi-index (no indices for rank-0).
func (t *Dense[T]) At(ix ...int) (T, error) {
	off, err := t.offsetOf(ix)
	if err != nil {
		var zero T
		return zero, err
	}
	return t.data[off], nil
}

// Set assigns v at the given multi-index.
func (t *Dense[T]) Set(v T, ix ...int) error {
	off, err := t.offsetOf(ix)
	if err != nil {
		return err
	}
	t.data[off] = v
	return nil
}

// Item returns the sole element of a one-element tensor of any rank
// (rank-0 scalars included). Fails with ErrShapeMismatch otherwise.
func (t *Dense[T]) Item() (T, error) {
	if len(t.data) != 1 {
		var zero T
		return zero, fmt.Errorf("Item: size %d, want 1: %w", len(t.data), ErrShapeMismatch)
	}
	return t.data[0], nil
}

// Clone returns a deep copy.
func (t *Dense[T]) Clone() *Dense[T] {
	cs := make([]int, len(t.shape))
	copy(cs, t.shape)
	cd := make([]T, len(t.data))
	copy(cd, t.data)
	return &Dense[T]{shape: cs, stride: stridesFor(cs), data: cd}
}

// sameShape reports whether two shapes are identical.
func sameShape(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// Equal reports exact shape and element equality.
func (t *Dense[T]) Equal(o *Dense[T]) bool {
	if o == nil || !sameShape(t.shape, o.shape) {
		return false
	}
	for i := range t.data {
		if t.data[i] != o.data[i] {
			return false
		}
	}
	return true
}

// EqualApprox reports shape equality and elementwise agreement within tol
// (absolute modulus of the difference).
func (t *Dense[T]) EqualApprox(o *Dense[T], tol float64) bool {
	if o == nil || !sameShape(t.shape, o.shape) {
		return false
	}
	for i := range t.data {
		if absOf(t.data[i]-o.data[i]) > tol {
			return false
		}
	}
	return true
}

// Flatten returns a fresh rank-1 tensor over the same elements in
// row-major order. A rank-0 scalar flattens to a length-1 vector.
func (t *Dense[T]) Flatten() *Dense[T] {
	return FromVector(t.data)
}

// Reshape returns a fresh tensor with the same elements under a new shape.
// Fails with ErrBadShape when sizes disagree.
func (t *Dense[T]) Reshape(shape ...int) (*Dense[T], error) {
	return New(shape, t.data)
}

// Row indexes the first axis, dropping it: the result has rank NDim()-1.
// Requires rank ≥ 1 and 0 ≤ i < Shape()[0].
func (t *Dense[T]) Row(i int) (*Dense[T], error) {
	if len(t.shape) == 0 {
		return nil, fmt.Errorf("Row: rank-0 tensor: %w", ErrRank)
	}
	if i < 0 || i >= t.shape[0] {
		return nil, fmt.Errorf("Row: index %d out of [0,%d): %w", i, t.shape[0], ErrOutOfRange)
	}
	sub := t.shape[1:]
	n := sizeOf(sub)
	cd := make([]T, n)
	copy(cd, t.data[i*n:(i+1)*n])
	cs := make([]int, len(sub))
	copy(cs, sub)
	return &Dense[T]{shape: cs, stride: stridesFor(cs), data: cd}, nil
}

// Slice restricts the first axis to [lo, hi), preserving rank.
// Requires rank ≥ 1 and 0 ≤ lo ≤ hi ≤ Shape()[0].
func (t *Dense[T]) Slice(lo, hi int) (*Dense[T], error) {
	if len(t.shape) == 0 {
		return nil, fmt.Errorf("Slice: rank-0 tensor: %w", ErrRank)
	}
	if lo < 0 || hi < lo || hi > t.shape[0] {
		return nil, fmt.Errorf("Slice: range [%d,%d) out of [0,%d]: %w", lo, hi, t.shape[0], ErrOutOfRange)
	}
	cs := make([]int, len(t.shape))
	copy(cs, t.shape)
	cs[0] = hi - lo
	inner := sizeOf(t.shape[1:])
	cd := make([]T, (hi-lo)*inner)
	copy(cd, t.data[lo*inner:hi*inner])
	return &Dense[T]{shape: cs, stride: stridesFor(cs), data: cd}, nil
}

// String implements fmt.Stringer for easy debugging.
func (t *Dense[T]) String() string {
	dims := make([]string, len(t.shape))
	for i, s := range t.shape {
		dims[i] = fmt.Sprintf("%d", s)
	}
	return fmt.Sprintf("Dense[%s]%v", strings.Join(dims, "×"), t.data)
}
