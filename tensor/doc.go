// Package tensor provides the dense rank-N numeric kernel the blockdiag
// containers dispatch to: a flat, row-major Dense[T] array over float64 or
// complex128 elements, plus the linear-algebra primitives applied per block.
//
// The tensor package provides:
//
//   - Dense[T]: rank-N arrays in one flat row-major buffer, including
//     rank-0 scalars and zero-length tensors of any rank.
//   - Elementwise kernels (Add, Sub, MulElem, DivElem and their scalar
//     broadcast forms) with deterministic flat loops.
//   - Linear algebra: Transpose, Conj, Dot (generalized last-axis
//     contraction), Outer/OuterAdd/OuterSub, batched matrix exponential
//     Expm, and Einstein summation Einsum.
//   - Symmetric tridiagonal eigensolvers: full decomposition (SymTriEigen),
//     eigenvalues only (SymTriValues) and the selective lowest eigenvalue
//     (SymTriLowest).
//
// All operations allocate fresh outputs and never mutate inputs. Zero-size
// tensors are legal everywhere and flow through elementwise operations
// without error.
//
// Dense eigen and exponential work is delegated to gonum
// (gonum.org/v1/gonum/mat and lapack); this package only shapes inputs,
// dispatches, and assembles typed results.
//
// See the examples in this package for usage patterns.
package tensor
