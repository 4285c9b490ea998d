// SPDX-License-Identifier: MIT
// Package tensor: dense linear-algebra primitives.
//
// Purpose:
//   - Transpose (full axis reversal), complex conjugation, the generalized
//     dot product and the outer-product family.
//   - These are the per-block primitives the ensemble algebra dispatches;
//     each allocates a fresh result and never mutates operands.
//
// Conventions follow NumPy: Transpose reverses all axes, Dot contracts the
// last axis of a with the second-to-last axis of b (the last for rank-1 b),
// Outer flattens both operands into an m×n product table.

package tensor

import "fmt"

// Transpose returns a with its axes reversed. Rank-0 and rank-1 tensors
// transpose to themselves (fresh copies).
// Complexity: O(n) with n total elements.
func Transpose[T Number](a *Dense[T]) (*Dense[T], error) {
	if a == nil {
		return nil, fmt.Errorf("Transpose: %w", ErrNilTensor)
	}
	nd := len(a.shape)
	if nd < 2 {
		return a.Clone(), nil
	}
	rev := make([]int, nd)
	for d := 0; d < nd; d++ {
		rev[d] = a.shape[nd-1-d]
	}
	out := &Dense[T]{shape: rev, stride: stridesFor(rev), data: make([]T, len(a.data))}
	// Walk the source in flat order, scattering into the reversed layout.
	ix := make([]int, nd)
	for off := 0; off < len(a.data); off++ {
		dst := 0
		for d := 0; d < nd; d++ {
			dst += ix[d] * out.stride[nd-1-d]
		}
		out.data[dst] = a.data[off]
		// Advance the row-major multi-index.
		for d := nd - 1; d >= 0; d-- {
			ix[d]++
			if ix[d] < a.shape[d] {
				break
			}
			ix[d] = 0
		}
	}
	return out, nil
}

// Conj returns the elementwise complex conjugate of a. For real element
// kinds this is a plain copy.
func Conj[T Number](a *Dense[T]) (*Dense[T], error) {
	return scalarOp(a, "Conj", conjOf[T])
}

// dotAxes resolves the contraction layout for Dot: a is viewed as (M, K),
// b as (P, K, Q) with the contraction axis in the middle.
func dotAxes[T Number](a, b *Dense[T]) (m, k, p, q int, outShape []int, err error) {
	k = a.shape[len(a.shape)-1]
	m = sizeOf(a.shape[:len(a.shape)-1])

	var bPre, bPost []int
	if len(b.shape) == 1 {
		// rank-1 b: contract its only axis.
		if b.shape[0] != k {
			return 0, 0, 0, 0, nil, fmt.Errorf("contraction extents %d and %d: %w", k, b.shape[0], ErrShapeMismatch)
		}
	} else {
		if b.shape[len(b.shape)-2] != k {
			return 0, 0, 0, 0, nil, fmt.Errorf("contraction extents %d and %d: %w", k, b.shape[len(b.shape)-2], ErrShapeMismatch)
		}
		bPre = b.shape[:len(b.shape)-2]
		bPost = b.shape[len(b.shape)-1:]
	}
	p = sizeOf(bPre)
	q = sizeOf(bPost)

	outShape = append(outShape, a.shape[:len(a.shape)-1]...)
	outShape = append(outShape, bPre...)
	outShape = append(outShape, bPost...)
	return m, k, p, q, outShape, nil
}

// Dot computes the generalized dot product of a and b:
//
//   - rank-0 on either side: broadcast scale of the other operand
//   - rank-1 · rank-1: inner product, yielding a rank-0 scalar
//   - rank-2 · rank-2: matrix multiplication
//   - higher ranks: sum product over the last axis of a and the
//     second-to-last axis of b
//
// Fails with ErrShapeMismatch when the contraction extents disagree.
// Complexity: O(M·P·Q·K).
func Dot[T Number](a, b *Dense[T]) (*Dense[T], error) {
	if a == nil || b == nil {
		return nil, fmt.Errorf("Dot: %w", ErrNilTensor)
	}
	if len(a.shape) == 0 {
		s, _ := a.Item()
		return Scale(b, s)
	}
	if len(b.shape) == 0 {
		s, _ := b.Item()
		return Scale(a, s)
	}

	m, k, p, q, outShape, err := dotAxes(a, b)
	if err != nil {
		return nil, fmt.Errorf("Dot: %w", err)
	}
	out := &Dense[T]{shape: outShape, stride: stridesFor(outShape), data: make([]T, m*p*q)}
	for i := 0; i < m; i++ {
		for pp := 0; pp < p; pp++ {
			for qq := 0; qq < q; qq++ {
				var acc T
				for kk := 0; kk < k; kk++ {
					acc += a.data[i*k+kk] * b.data[(pp*k+kk)*q+qq]
				}
				out.data[(i*p+pp)*q+qq] = acc
			}
		}
	}
	return out, nil
}

// outerOp builds the m×n table f(a[i], b[j]) over the flattened operands.
func outerOp[T Number](a, b *Dense[T], opTag string, f func(x, y T) T) (*Dense[T], error) {
	if a == nil || b == nil {
		return nil, fmt.Errorf("%s: %w", opTag, ErrNilTensor)
	}
	m, n := len(a.data), len(b.data)
	shape := []int{m, n}
	out := &Dense[T]{shape: shape, stride: stridesFor(shape), data: make([]T, m*n)}
	for i := 0; i < m; i++ {
		for j := 0; j < n; j++ {
			out.data[i*n+j] = f(a.data[i], b.data[j])
		}
	}
	return out, nil
}

// Outer computes the outer product table a[i]·b[j] over the flattened
// operands, yielding an m×n rank-2 tensor.
func Outer[T Number](a, b *Dense[T]) (*Dense[T], error) {
	return outerOp(a, b, "Outer", func(x, y T) T { return x * y })
}

// OuterAdd computes the outer sum table a[i]+b[j] over the flattened operands.
func OuterAdd[T Number](a, b *Dense[T]) (*Dense[T], error) {
	return outerOp(a, b, "OuterAdd", func(x, y T) T { return x + y })
}

// OuterSub computes the outer difference table a[i]-b[j] over the flattened
// operands.
func OuterSub[T Number](a, b *Dense[T]) (*Dense[T], error) {
	return outerOp(a, b, "OuterSub", func(x, y T) T { return x - y })
}
