// SPDX-License-Identifier: MIT
// Package ensemble: the Scalar container — one value per block.
//
// A block may be "unset": legitimately carrying no value (e.g. the ground
// state of a zero-length block), as opposed to a data source forgetting a
// block, which is ErrMissingBlock at construction. Unset propagates:
// every elementwise operation leaves a result block unset iff an operand
// block was unset; reductions skip unset blocks.

package ensemble

import (
	"fmt"
	"strings"

	"github.com/katalvlaran/blockdiag/tensor"
)

// Scalar holds one T value per block of its Ensemble, plus a presence mask
// distinguishing set from unset blocks. Immutable value type: every
// operation returns a fresh container over the same shared Ensemble.
type Scalar[T tensor.Number] struct {
	ens  *Ensemble
	vals []T
	set  []bool
}

// ValueOption configures Scalar and Array construction.
type ValueOption[T tensor.Number] func(*valueConfig[T])

type valueConfig[T tensor.Number] struct {
	cast func(T) T
}

// WithCast applies f to every extracted element at construction time
// (the typed analogue of a dtype cast).
func WithCast[T tensor.Number](f func(T) T) ValueOption[T] {
	return func(c *valueConfig[T]) { c.cast = f }
}

func gatherValueOptions[T tensor.Number](opts []ValueOption[T]) valueConfig[T] {
	var cfg valueConfig[T]
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// NewScalar builds a Scalar from a block-keyed map. Every block the
// ensemble enumerates must be present; a missing entry is ErrMissingBlock.
func NewScalar[T tensor.Number](ens *Ensemble, data map[BlockKey]T, opts ...ValueOption[T]) (*Scalar[T], error) {
	if ens == nil {
		return nil, fmt.Errorf("NewScalar: %w", ErrNilEnsemble)
	}
	cfg := gatherValueOptions(opts)
	s := newScalarShell[T](ens)
	err := ens.Each(func(i int, b Block, _ int) error {
		v, ok := data[b.Key()]
		if !ok {
			return fmt.Errorf("NewScalar: %s: %w", b, ErrMissingBlock)
		}
		if cfg.cast != nil {
			v = cfg.cast(v)
		}
		s.vals[i], s.set[i] = v, true
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s, nil
}

// NewScalarTagged builds a Scalar from a nested map: one dataset map per
// block, extracting the named tag. A block without the tag is
// ErrMissingTag.
func NewScalarTagged[T tensor.Number](ens *Ensemble, data map[BlockKey]map[string]T, tag string, opts ...ValueOption[T]) (*Scalar[T], error) {
	if ens == nil {
		return nil, fmt.Errorf("NewScalarTagged: %w", ErrNilEnsemble)
	}
	cfg := gatherValueOptions(opts)
	s := newScalarShell[T](ens)
	err := ens.Each(func(i int, b Block, _ int) error {
		sets, ok := data[b.Key()]
		if !ok {
			return fmt.Errorf("NewScalarTagged: %s: %w", b, ErrMissingBlock)
		}
		v, ok := sets[tag]
		if !ok {
			return fmt.Errorf("NewScalarTagged: %s tag %q: %w", b, tag, ErrMissingTag)
		}
		if cfg.cast != nil {
			v = cfg.cast(v)
		}
		s.vals[i], s.set[i] = v, true
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s, nil
}

// NewScalarFunc builds a Scalar by calling fn for every block in canonical
// order. fn returns the value and whether the block is set; returning
// ok=false marks the block unset (the "legitimately no data" state).
func NewScalarFunc[T tensor.Number](ens *Ensemble, fn func(b Block) (T, bool, error)) (*Scalar[T], error) {
	if ens == nil {
		return nil, fmt.Errorf("NewScalarFunc: %w", ErrNilEnsemble)
	}
	s := newScalarShell[T](ens)
	err := ens.Each(func(i int, b Block, _ int) error {
		v, ok, err := fn(b)
		if err != nil {
			return err
		}
		s.vals[i], s.set[i] = v, ok
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s, nil
}

func newScalarShell[T tensor.Number](ens *Ensemble) *Scalar[T] {
	return &Scalar[T]{ens: ens, vals: make([]T, ens.Len()), set: make([]bool, ens.Len())}
}

// Ensemble returns the shared partition reference.
func (s *Scalar[T]) Ensemble() *Ensemble { return s.ens }

// Value returns the block's value and whether it is set.
func (s *Scalar[T]) Value(b Block) (T, bool, error) {
	i, ok := s.ens.index[b.Key()]
	if !ok {
		var zero T
		return zero, false, fmt.Errorf("Value: %s: %w", b, ErrUnknownBlock)
	}
	return s.vals[i], s.set[i], nil
}

// mapScalar builds a fresh Scalar with f applied to every set block;
// unset blocks stay unset.
func mapScalar[T tensor.Number](op string, s *Scalar[T], f func(T) T) (*Scalar[T], error) {
	if s == nil {
		return nil, fmt.Errorf("%s: %w", op, ErrNilContainer)
	}
	out := newScalarShell[T](s.ens)
	for i := range s.vals {
		if s.set[i] {
			out.vals[i], out.set[i] = f(s.vals[i]), true
		}
	}
	return out, nil
}

// zipScalar pairs two same-ensemble Scalars blockwise; a result block is
// set only when both operand blocks are.
func zipScalar[T tensor.Number](op string, a, b *Scalar[T], f func(x, y T) T) (*Scalar[T], error) {
	if a == nil || b == nil {
		return nil, fmt.Errorf("%s: %w", op, ErrNilContainer)
	}
	if err := sameEnsemble(op, a.ens, b.ens); err != nil {
		return nil, err
	}
	out := newScalarShell[T](a.ens)
	for i := range a.vals {
		if a.set[i] && b.set[i] {
			out.vals[i], out.set[i] = f(a.vals[i], b.vals[i]), true
		}
	}
	return out, nil
}

// Add pairs the containers blockwise: out[b] = s[b] + o[b].
func (s *Scalar[T]) Add(o *Scalar[T]) (*Scalar[T], error) {
	return zipScalar("Scalar.Add", s, o, func(x, y T) T { return x + y })
}

// Sub pairs the containers blockwise: out[b] = s[b] - o[b].
func (s *Scalar[T]) Sub(o *Scalar[T]) (*Scalar[T], error) {
	return zipScalar("Scalar.Sub", s, o, func(x, y T) T { return x - y })
}

// Mul pairs the containers blockwise: out[b] = s[b] · o[b].
func (s *Scalar[T]) Mul(o *Scalar[T]) (*Scalar[T], error) {
	return zipScalar("Scalar.Mul", s, o, func(x, y T) T { return x * y })
}

// Div pairs the containers blockwise: out[b] = s[b] / o[b] (IEEE semantics
// on zero divisors).
func (s *Scalar[T]) Div(o *Scalar[T]) (*Scalar[T], error) {
	return zipScalar("Scalar.Div", s, o, func(x, y T) T { return x / y })
}

// AddScalar broadcasts v to every set block: out[b] = s[b] + v.
func (s *Scalar[T]) AddScalar(v T) (*Scalar[T], error) {
	return mapScalar("Scalar.AddScalar", s, func(x T) T { return x + v })
}

// SubScalar broadcasts v to every set block: out[b] = s[b] - v.
func (s *Scalar[T]) SubScalar(v T) (*Scalar[T], error) {
	return mapScalar("Scalar.SubScalar", s, func(x T) T { return x - v })
}

// MulScalar broadcasts v to every set block: out[b] = s[b] · v.
func (s *Scalar[T]) MulScalar(v T) (*Scalar[T], error) {
	return mapScalar("Scalar.MulScalar", s, func(x T) T { return x * v })
}

// DivScalar broadcasts v to every set block: out[b] = s[b] / v.
func (s *Scalar[T]) DivScalar(v T) (*Scalar[T], error) {
	return mapScalar("Scalar.DivScalar", s, func(x T) T { return x / v })
}

// Neg negates every set block.
func (s *Scalar[T]) Neg() (*Scalar[T], error) {
	return mapScalar("Scalar.Neg", s, func(x T) T { return -x })
}

// Min reduces over all set blocks. Fails with ErrEmptyReduction when no
// block is set. Complex values order lexicographically by (real, imag).
func (s *Scalar[T]) Min() (T, error) {
	return s.reduce("Scalar.Min", func(best, v T) bool { return tensor.Less(v, best) })
}

// Max reduces over all set blocks. Fails with ErrEmptyReduction when no
// block is set.
func (s *Scalar[T]) Max() (T, error) {
	return s.reduce("Scalar.Max", func(best, v T) bool { return tensor.Less(best, v) })
}

func (s *Scalar[T]) reduce(op string, better func(best, v T) bool) (T, error) {
	var best T
	found := false
	for i, v := range s.vals {
		if !s.set[i] {
			continue
		}
		if !found || better(best, v) {
			best, found = v, true
		}
	}
	if !found {
		return best, fmt.Errorf("%s: %w", op, ErrEmptyReduction)
	}
	return best, nil
}

// String renders one "block: value" line per block, "unset" for blocks
// without a value.
func (s *Scalar[T]) String() string {
	var sb strings.Builder
	for i, b := range s.ens.blocks {
		if s.set[i] {
			fmt.Fprintf(&sb, "%s: %v\n", b, s.vals[i])
		} else {
			fmt.Fprintf(&sb, "%s: unset\n", b)
		}
	}
	return sb.String()
}
