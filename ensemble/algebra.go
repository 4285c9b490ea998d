// SPDX-License-Identifier: MIT
// Package ensemble: block-wise algebra over containers.
//
// Free functions operating over one or two containers of the same
// Ensemble: each dispatches a dense primitive block-by-block and
// reassembles the results into a fresh container of matching type, in
// canonical block order. Operands are never mutated. Every cross-operand
// function verifies Ensemble equality before touching any block data.

package ensemble

import (
	"fmt"

	"github.com/katalvlaran/blockdiag/tensor"
)

// Expm computes the matrix exponential of every block. Blocks must be
// rank ≥ 2 with square trailing axes (batched …×n×n allowed); zero-length
// blocks pass through as empty matrices. WithWorkers fans the per-block
// exponentials out without changing the result.
func Expm[T tensor.Number](a *Array[T], opts ...OpOption) (*Array[T], error) {
	if a == nil {
		return nil, fmt.Errorf("Expm: %w", ErrNilContainer)
	}
	cfg := gatherOpOptions(opts)
	out := a.shell()
	err := forEachBlock(a.ens.Len(), cfg.workers, func(i int) error {
		r, err := tensor.Expm(a.arrs[i])
		if err != nil {
			return fmt.Errorf("Expm: %s: %w", a.ens.blocks[i], err)
		}
		out.arrs[i] = r
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out.finish(), nil
}

// Transpose reverses the axes of every block.
func Transpose[T tensor.Number](a *Array[T]) (*Array[T], error) {
	return mapArray("Transpose", a, tensor.Transpose[T])
}

// Conj conjugates every block elementwise. For real element kinds it is a
// copy.
func Conj[T tensor.Number](a *Array[T]) (*Array[T], error) {
	return mapArray("Conj", a, tensor.Conj[T])
}

// Dot computes the generalized dot product block-by-block (inner product
// for rank-1 blocks, matrix product for rank-2, last-axis contraction in
// general). This is the array arm of the type-directed dot; see
// DotScalars for the scalar arm.
func Dot[T tensor.Number](a, b *Array[T], opts ...OpOption) (*Array[T], error) {
	if a == nil || b == nil {
		return nil, fmt.Errorf("Dot: %w", ErrNilContainer)
	}
	if err := sameEnsemble("Dot", a.ens, b.ens); err != nil {
		return nil, err
	}
	cfg := gatherOpOptions(opts)
	out := a.shell()
	err := forEachBlock(a.ens.Len(), cfg.workers, func(i int) error {
		r, err := tensor.Dot(a.arrs[i], b.arrs[i])
		if err != nil {
			return fmt.Errorf("Dot: %s: %w", a.ens.blocks[i], err)
		}
		out.arrs[i] = r
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out.finish(), nil
}

// DotScalars multiplies two Scalar containers blockwise — the scalar arm
// of the type-directed dot. Unset blocks propagate as unset.
func DotScalars[T tensor.Number](a, b *Scalar[T]) (*Scalar[T], error) {
	return zipScalar("DotScalars", a, b, func(x, y T) T { return x * y })
}

// Outer computes the per-block outer product over flattened blocks.
func Outer[T tensor.Number](a, b *Array[T]) (*Array[T], error) {
	return zipArray("Outer", a, b, tensor.Outer[T])
}

// OuterAdd computes the per-block outer sum over flattened blocks.
func OuterAdd[T tensor.Number](a, b *Array[T]) (*Array[T], error) {
	return zipArray("OuterAdd", a, b, tensor.OuterAdd[T])
}

// OuterSub computes the per-block outer difference over flattened blocks.
func OuterSub[T tensor.Number](a, b *Array[T]) (*Array[T], error) {
	return zipArray("OuterSub", a, b, tensor.OuterSub[T])
}

// Einsum applies one Einstein-summation specification to every block of
// every operand. At least one operand is required (ErrNoOperands) and all
// operands must share one Ensemble, checked before any block work. The
// result rank is whatever the contraction implies; this layer does not
// validate it further.
func Einsum[T tensor.Number](spec string, ops ...*Array[T]) (*Array[T], error) {
	return EinsumWith[T](spec, ops, nil)
}

// EinsumWith is Einsum with operation options (worker fan-out).
func EinsumWith[T tensor.Number](spec string, ops []*Array[T], opts []OpOption) (*Array[T], error) {
	if len(ops) == 0 {
		return nil, fmt.Errorf("Einsum: %w", ErrNoOperands)
	}
	for _, op := range ops {
		if op == nil {
			return nil, fmt.Errorf("Einsum: %w", ErrNilContainer)
		}
	}
	for _, op := range ops[1:] {
		if err := sameEnsemble("Einsum", ops[0].ens, op.ens); err != nil {
			return nil, err
		}
	}
	cfg := gatherOpOptions(opts)
	out := ops[0].shell()
	err := forEachBlock(ops[0].ens.Len(), cfg.workers, func(i int) error {
		blocks := make([]*tensor.Dense[T], len(ops))
		for oi, op := range ops {
			blocks[oi] = op.arrs[i]
		}
		r, err := tensor.Einsum(spec, blocks...)
		if err != nil {
			return fmt.Errorf("Einsum: %s: %w", ops[0].ens.blocks[i], err)
		}
		out.arrs[i] = r
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out.finish(), nil
}

// ToScalar degrades an Array whose blocks each hold one element into a
// Scalar: the sole element becomes the block value, a zero-length block
// becomes unset, and a block with more than one element is
// ErrNotSingleton. (The Scalar-input identity arm of the underlying
// contract is subsumed by static typing: a Scalar already is one.)
func ToScalar[T tensor.Number](a *Array[T]) (*Scalar[T], error) {
	if a == nil {
		return nil, fmt.Errorf("ToScalar: %w", ErrNilContainer)
	}
	out := newScalarShell[T](a.ens)
	for i, arr := range a.arrs {
		switch arr.Size() {
		case 0:
			// legitimately no data for this block
		case 1:
			v, _ := arr.Item()
			out.vals[i], out.set[i] = v, true
		default:
			return nil, fmt.Errorf("ToScalar: %s has %d elements: %w",
				a.ens.blocks[i], arr.Size(), ErrNotSingleton)
		}
	}
	return out, nil
}
