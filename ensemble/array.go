// SPDX-License-Identifier: MIT
// Package ensemble: the Array container — one rank-N tensor per block.
//
// Every block carries a tensor of the same rank; per-block sizes may
// differ (ragged blocks are the normal case in block-diagonal problems),
// and zero-length blocks are legal everywhere. The container is an
// immutable value type: construction clones its inputs, accessors return
// copies, and every operation allocates a fresh container.

package ensemble

import (
	"fmt"
	"strings"

	"github.com/katalvlaran/blockdiag/tensor"
)

// Array holds one rank-N tensor per block of its Ensemble. All blocks
// share one rank (NDim); shapes per block may differ.
type Array[T tensor.Number] struct {
	ens  *Ensemble
	arrs []*tensor.Dense[T]
	ndim int
}

// NewArray builds an Array from a block-keyed map of tensors. Every block
// the ensemble enumerates must be present (zero-length tensors are fine);
// a missing entry is ErrMissingBlock. After extraction all blocks must
// agree on rank, else ErrNDimMismatch.
func NewArray[T tensor.Number](ens *Ensemble, data map[BlockKey]*tensor.Dense[T], opts ...ValueOption[T]) (*Array[T], error) {
	return buildArray("NewArray", ens, opts, func(b Block) (*tensor.Dense[T], error) {
		arr, ok := data[b.Key()]
		if !ok {
			return nil, fmt.Errorf("NewArray: %s: %w", b, ErrMissingBlock)
		}
		return arr, nil
	})
}

// NewArrayTagged builds an Array from a nested map: one dataset map per
// block, extracting the named tag.
func NewArrayTagged[T tensor.Number](ens *Ensemble, data map[BlockKey]map[string]*tensor.Dense[T], tag string, opts ...ValueOption[T]) (*Array[T], error) {
	return buildArray("NewArrayTagged", ens, opts, func(b Block) (*tensor.Dense[T], error) {
		sets, ok := data[b.Key()]
		if !ok {
			return nil, fmt.Errorf("NewArrayTagged: %s: %w", b, ErrMissingBlock)
		}
		arr, ok := sets[tag]
		if !ok {
			return nil, fmt.Errorf("NewArrayTagged: %s tag %q: %w", b, tag, ErrMissingTag)
		}
		return arr, nil
	})
}

// NewArrayFunc builds an Array by calling fn for every block in canonical
// order.
func NewArrayFunc[T tensor.Number](ens *Ensemble, fn func(b Block) (*tensor.Dense[T], error)) (*Array[T], error) {
	return buildArray("NewArrayFunc", ens, nil, fn)
}

// buildArray is the shared construction path: extract per block in
// canonical order, clone, cast, then enforce the uniform-rank invariant.
func buildArray[T tensor.Number](op string, ens *Ensemble, opts []ValueOption[T], src func(b Block) (*tensor.Dense[T], error)) (*Array[T], error) {
	if ens == nil {
		return nil, fmt.Errorf("%s: %w", op, ErrNilEnsemble)
	}
	cfg := gatherValueOptions(opts)
	a := &Array[T]{ens: ens, arrs: make([]*tensor.Dense[T], ens.Len())}
	err := ens.Each(func(i int, b Block, _ int) error {
		arr, err := src(b)
		if err != nil {
			return err
		}
		if arr == nil {
			return fmt.Errorf("%s: %s: %w", op, b, tensor.ErrNilTensor)
		}
		if cfg.cast != nil {
			if arr, err = tensor.Map(arr, cfg.cast); err != nil {
				return fmt.Errorf("%s: %s: %w", op, b, err)
			}
		} else {
			arr = arr.Clone()
		}
		a.arrs[i] = arr
		return nil
	})
	if err != nil {
		return nil, err
	}
	for i, arr := range a.arrs {
		if i == 0 {
			a.ndim = arr.NDim()
			continue
		}
		if arr.NDim() != a.ndim {
			return nil, fmt.Errorf("%s: %s has rank %d, want %d: %w",
				op, a.ens.blocks[i], arr.NDim(), a.ndim, ErrNDimMismatch)
		}
	}
	return a, nil
}

// Ensemble returns the shared partition reference.
func (a *Array[T]) Ensemble() *Ensemble { return a.ens }

// NDim returns the shared rank of all blocks.
func (a *Array[T]) NDim() int { return a.ndim }

// BlockValue returns a copy of the block's tensor; the container stays
// immutable.
func (a *Array[T]) BlockValue(b Block) (*tensor.Dense[T], error) {
	i, ok := a.ens.index[b.Key()]
	if !ok {
		return nil, fmt.Errorf("BlockValue: %s: %w", b, ErrUnknownBlock)
	}
	return a.arrs[i].Clone(), nil
}

// at exposes the backing tensor to package internals (no clone).
func (a *Array[T]) at(i int) *tensor.Dense[T] { return a.arrs[i] }

// shell allocates an empty result container over the same ensemble.
func (a *Array[T]) shell() *Array[T] {
	return &Array[T]{ens: a.ens, arrs: make([]*tensor.Dense[T], a.ens.Len())}
}

// finish derives the shared rank from the assembled blocks.
func (a *Array[T]) finish() *Array[T] {
	if len(a.arrs) > 0 {
		a.ndim = a.arrs[0].NDim()
	}
	return a
}

// zipArray pairs two same-ensemble Arrays blockwise through a tensor
// kernel.
func zipArray[T tensor.Number](op string, a, b *Array[T], f func(x, y *tensor.Dense[T]) (*tensor.Dense[T], error)) (*Array[T], error) {
	if a == nil || b == nil {
		return nil, fmt.Errorf("%s: %w", op, ErrNilContainer)
	}
	if err := sameEnsemble(op, a.ens, b.ens); err != nil {
		return nil, err
	}
	out := a.shell()
	for i := range a.arrs {
		r, err := f(a.arrs[i], b.arrs[i])
		if err != nil {
			return nil, fmt.Errorf("%s: %s: %w", op, a.ens.blocks[i], err)
		}
		out.arrs[i] = r
	}
	return out.finish(), nil
}

// mapArray applies a tensor kernel to every block.
func mapArray[T tensor.Number](op string, a *Array[T], f func(x *tensor.Dense[T]) (*tensor.Dense[T], error)) (*Array[T], error) {
	if a == nil {
		return nil, fmt.Errorf("%s: %w", op, ErrNilContainer)
	}
	out := a.shell()
	for i := range a.arrs {
		r, err := f(a.arrs[i])
		if err != nil {
			return nil, fmt.Errorf("%s: %s: %w", op, a.ens.blocks[i], err)
		}
		out.arrs[i] = r
	}
	return out.finish(), nil
}

// Add pairs the containers blockwise: out[b] = a[b] + o[b] elementwise.
// Block shapes must agree pairwise.
func (a *Array[T]) Add(o *Array[T]) (*Array[T], error) {
	return zipArray("Array.Add", a, o, tensor.Add[T])
}

// Sub pairs the containers blockwise: out[b] = a[b] - o[b] elementwise.
func (a *Array[T]) Sub(o *Array[T]) (*Array[T], error) {
	return zipArray("Array.Sub", a, o, tensor.Sub[T])
}

// MulElem pairs the containers blockwise with the elementwise (Hadamard)
// product. This is the general container-by-container multiply; for
// density-matrix-like data restricted to scalar multiplication, use Scale,
// which cannot be handed a container.
func (a *Array[T]) MulElem(o *Array[T]) (*Array[T], error) {
	return zipArray("Array.MulElem", a, o, tensor.MulElem[T])
}

// DivElem pairs the containers blockwise with the elementwise quotient.
func (a *Array[T]) DivElem(o *Array[T]) (*Array[T], error) {
	return zipArray("Array.DivElem", a, o, tensor.DivElem[T])
}

// AddScalar broadcasts v to every element of every block.
func (a *Array[T]) AddScalar(v T) (*Array[T], error) {
	return mapArray("Array.AddScalar", a, func(x *tensor.Dense[T]) (*tensor.Dense[T], error) {
		return tensor.AddScalar(x, v)
	})
}

// SubScalar broadcasts v to every element of every block.
func (a *Array[T]) SubScalar(v T) (*Array[T], error) {
	return mapArray("Array.SubScalar", a, func(x *tensor.Dense[T]) (*tensor.Dense[T], error) {
		return tensor.SubScalar(x, v)
	})
}

// Scale multiplies every element of every block by v. This is the
// scalar-only multiply; it is statically impossible to pass a container.
func (a *Array[T]) Scale(v T) (*Array[T], error) {
	return mapArray("Array.Scale", a, func(x *tensor.Dense[T]) (*tensor.Dense[T], error) {
		return tensor.Scale(x, v)
	})
}

// DivScalar divides every element of every block by v.
func (a *Array[T]) DivScalar(v T) (*Array[T], error) {
	return mapArray("Array.DivScalar", a, func(x *tensor.Dense[T]) (*tensor.Dense[T], error) {
		return tensor.DivScalar(x, v)
	})
}

// Neg negates every element of every block.
func (a *Array[T]) Neg() (*Array[T], error) {
	return mapArray("Array.Neg", a, tensor.Neg[T])
}

// At indexes the first axis of every block simultaneously, dropping it.
// A negative index is always an error. A zero-length block yields an
// empty tensor of the result rank instead of failing; an index past the
// end of a non-empty block is an error.
func (a *Array[T]) At(i int) (*Array[T], error) {
	if i < 0 {
		return nil, fmt.Errorf("Array.At: index %d: %w", i, tensor.ErrOutOfRange)
	}
	return mapArray("Array.At", a, func(x *tensor.Dense[T]) (*tensor.Dense[T], error) {
		if x.Size() == 0 {
			return tensor.Empty[T](x.NDim() - 1), nil
		}
		return x.Row(i)
	})
}

// Slice restricts the first axis of every block to [lo, hi), preserving
// rank. Bounds are clamped per block, so ragged blocks shorter than hi
// simply yield shorter results; zero-length blocks stay empty.
func (a *Array[T]) Slice(lo, hi int) (*Array[T], error) {
	if lo < 0 || hi < lo {
		return nil, fmt.Errorf("Array.Slice: range [%d,%d): %w", lo, hi, tensor.ErrOutOfRange)
	}
	return mapArray("Array.Slice", a, func(x *tensor.Dense[T]) (*tensor.Dense[T], error) {
		if x.Size() == 0 {
			return tensor.Empty[T](x.NDim()), nil
		}
		n := x.Shape()[0]
		l, h := lo, hi
		if l > n {
			l = n
		}
		if h > n {
			h = n
		}
		return x.Slice(l, h)
	})
}

// Flatten flattens every block to rank 1, independent of the original
// rank.
func (a *Array[T]) Flatten() (*Array[T], error) {
	return mapArray("Array.Flatten", a, func(x *tensor.Dense[T]) (*tensor.Dense[T], error) {
		return x.Flatten(), nil
	})
}

// String renders one "block: shape=[…]" line per block.
func (a *Array[T]) String() string {
	var sb strings.Builder
	for i, b := range a.ens.blocks {
		fmt.Fprintf(&sb, "%s: shape=%v\n", b, a.arrs[i].Shape())
	}
	return sb.String()
}
