// SPDX-License-Identifier: MIT
// Package ensemble: sentinel error set (unified, consistent).
// This file defines ONLY package-level sentinel errors used across the
// ensemble package. All operations return these sentinels and tests check
// them via errors.Is. Context is added at operation boundaries with
// fmt.Errorf("Op: %w", ErrX); callers still match with errors.Is.

package ensemble

import "errors"

var (
	// ErrNilEnsemble indicates that a nil *Ensemble was passed where one is
	// required (container construction, algebra dispatch).
	ErrNilEnsemble = errors.New("ensemble: nil ensemble")

	// ErrNilContainer indicates that a nil container operand was used.
	ErrNilContainer = errors.New("ensemble: nil container")

	// ErrAxisSpec indicates an invalid axis specification at construction:
	// a non-positive degeneracy, or a duplicate label within one axis.
	ErrAxisSpec = errors.New("ensemble: invalid axis specification")

	// ErrEnsembleMismatch indicates that two operands' ensembles do not
	// compare equal. Raised before any per-block work begins.
	ErrEnsembleMismatch = errors.New("ensemble: operands defined on different ensembles")

	// ErrUnknownBlock indicates a lookup with a block key the ensemble does
	// not enumerate.
	ErrUnknownBlock = errors.New("ensemble: unknown block")

	// ErrMissingBlock indicates that a data source lacks an entry for a
	// block the ensemble enumerates. This is a contract violation of the
	// source, distinct from a legitimately empty or unset block.
	ErrMissingBlock = errors.New("ensemble: data source missing block")

	// ErrMissingTag indicates that a tagged data source lacks the requested
	// dataset tag for some block.
	ErrMissingTag = errors.New("ensemble: data source missing tag")

	// ErrNDimMismatch indicates per-block arrays of differing rank inside
	// one container.
	ErrNDimMismatch = errors.New("ensemble: blocks disagree on array rank")

	// ErrTriDiagShape indicates diagonal/off-diagonal vectors whose lengths
	// cannot form a symmetric tridiagonal matrix.
	ErrTriDiagShape = errors.New("ensemble: incompatible diag/offdiag lengths")

	// ErrNoOperands indicates an operation invoked without operands where
	// at least one is required (Einsum).
	ErrNoOperands = errors.New("ensemble: need at least one operand")

	// ErrNotSingleton indicates ToScalar on a block holding more than one
	// element.
	ErrNotSingleton = errors.New("ensemble: block is not a one-element array")

	// ErrEmptyReduction indicates Min/Max over a container with no set
	// blocks.
	ErrEmptyReduction = errors.New("ensemble: reduction over no set blocks")
)
