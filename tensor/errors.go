// SPDX-License-Identifier: MIT
// Package tensor: sentinel error set.
// This file defines ONLY package-level sentinel errors used across the tensor
// package. All routines return these sentinels and tests check them via
// errors.Is. No routine panics on user-triggered error conditions.

package tensor

import "errors"

// Every message is prefixed with "tensor: ..." for consistency and to allow
// easy grepping across logs. Sentinels are returned plain from validators and
// wrapped with fmt.Errorf("Op: %w", ErrX) at operation boundaries — callers
// still match with errors.Is.
var (
	// ErrNilTensor indicates that a nil *Dense was passed where a value is required.
	ErrNilTensor = errors.New("tensor: nil tensor")

	// ErrBadShape is returned when a requested shape is invalid (negative extent)
	// or when the supplied backing data does not match the shape's size.
	ErrBadShape = errors.New("tensor: invalid shape")

	// ErrOutOfRange indicates an index outside valid bounds on some axis,
	// or an axis count that does not match the tensor's rank.
	ErrOutOfRange = errors.New("tensor: index out of range")

	// ErrShapeMismatch indicates incompatible shapes between operands,
	// e.g. elementwise ops on differently shaped tensors, or Dot with
	// disagreeing contraction axes.
	ErrShapeMismatch = errors.New("tensor: shape mismatch")

	// ErrNotSquare signals that the trailing two axes were required to be
	// square (…×n×n) but were not.
	ErrNotSquare = errors.New("tensor: matrix is not square")

	// ErrRank signals that an operation requires a minimum or exact rank
	// the input does not have (e.g. Expm on a rank-1 tensor).
	ErrRank = errors.New("tensor: wrong tensor rank")

	// ErrEinsumSpec indicates a malformed or unsupported Einstein-summation
	// subscript specification (bad characters, operand/spec arity mismatch,
	// inconsistent index extents, ellipsis).
	ErrEinsumSpec = errors.New("tensor: invalid einsum specification")

	// ErrTriDiagShape indicates diagonal/off-diagonal vectors of incompatible
	// lengths for a symmetric tridiagonal system.
	ErrTriDiagShape = errors.New("tensor: incompatible tridiagonal lengths")

	// ErrEigenFailed indicates that an eigen routine failed to converge.
	ErrEigenFailed = errors.New("tensor: eigen decomposition failed")
)
