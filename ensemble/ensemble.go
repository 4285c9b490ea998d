// SPDX-License-Identifier: MIT
// Package ensemble: the Ensemble partition type.
//
// An Ensemble is constructed once from axis specifications and is immutable
// afterwards. Its block set is the full Cartesian product of the per-axis
// label sets, sorted into canonical lexicographic tuple order; each block's
// degeneracy is the product of the per-axis degeneracies of its components.
// The canonical order is the iteration contract every container and algebra
// function in this package follows.

package ensemble

import (
	"fmt"
	"sort"
	"strings"
)

// Level is one labeled entry of an axis. A zero Degeneracy is filled with
// the ensemble-wide default at construction time.
type Level struct {
	Label      string
	Degeneracy int
}

// Axis is an ordered sequence of levels along one categorical direction
// (e.g. particle number, momentum sector).
type Axis []Level

// Labels builds an Axis from bare labels; degeneracies are filled with the
// default at New time.
func Labels(labels ...string) Axis {
	ax := make(Axis, len(labels))
	for i, l := range labels {
		ax[i] = Level{Label: l}
	}
	return ax
}

// keySep separates tuple components inside a BlockKey. It is a control
// byte so that canonical keys of printable labels never collide.
const keySep = "\x1f"

// BlockKey is the canonical comparable form of a block label tuple, used
// as the key type of data-source maps.
type BlockKey string

// KeyOf joins labels into a BlockKey.
func KeyOf(labels ...string) BlockKey {
	return BlockKey(strings.Join(labels, keySep))
}

// Labels splits the key back into its label tuple, inverting KeyOf.
func (k BlockKey) Labels() Block {
	if k == "" {
		return Block{}
	}
	return Block(strings.Split(string(k), keySep))
}

// Block is one block label tuple, with one component per axis.
type Block []string

// Key returns the canonical comparable form of the tuple.
func (b Block) Key() BlockKey { return KeyOf(b...) }

// String renders the tuple as (a,x).
func (b Block) String() string { return "(" + strings.Join(b, ",") + ")" }

// less orders two equal-arity tuples lexicographically componentwise.
func (b Block) less(o Block) bool {
	for i := range b {
		if i >= len(o) {
			return false
		}
		if b[i] != o[i] {
			return b[i] < o[i]
		}
	}
	return len(b) < len(o)
}

// DefaultDegeneracy is the multiplicity assigned to levels that do not
// carry one explicitly.
const DefaultDegeneracy = 1

// Option configures Ensemble construction.
type Option func(*config)

type config struct {
	defaultDeg int
}

// WithDefaultDegeneracy overrides the multiplicity assigned to levels with
// a zero Degeneracy. Panics when n < 1: a non-positive default is a
// programmer error, not a data condition.
func WithDefaultDegeneracy(n int) Option {
	if n < 1 {
		panic(fmt.Sprintf("ensemble: WithDefaultDegeneracy(%d): must be ≥ 1", n))
	}
	return func(c *config) { c.defaultDeg = n }
}

// Ensemble is an immutable ordered partition into labeled blocks with
// integer degeneracies. Containers hold a reference to (never a copy of)
// their Ensemble.
type Ensemble struct {
	blocks []Block
	degs   []int
	index  map[BlockKey]int
}

// New constructs an Ensemble from axis specifications. Every combination
// of one level per axis becomes a block; blocks are sorted into canonical
// lexicographic tuple order. With no axes the ensemble holds the single
// empty tuple; an axis with no levels yields an empty ensemble.
//
// Fails with ErrAxisSpec when a level carries a negative degeneracy or a
// label repeats within one axis.
func New(axes []Axis, opts ...Option) (*Ensemble, error) {
	cfg := config{defaultDeg: DefaultDegeneracy}
	for _, opt := range opts {
		opt(&cfg)
	}

	// Normalize and validate each axis before taking the product.
	norm := make([][]Level, len(axes))
	for ai, ax := range axes {
		seen := make(map[string]bool, len(ax))
		levels := make([]Level, len(ax))
		for li, lv := range ax {
			if lv.Degeneracy < 0 {
				return nil, fmt.Errorf("New: axis %d label %q degeneracy %d: %w",
					ai, lv.Label, lv.Degeneracy, ErrAxisSpec)
			}
			if seen[lv.Label] {
				return nil, fmt.Errorf("New: axis %d duplicate label %q: %w", ai, lv.Label, ErrAxisSpec)
			}
			seen[lv.Label] = true
			if lv.Degeneracy == 0 {
				lv.Degeneracy = cfg.defaultDeg
			}
			levels[li] = lv
		}
		norm[ai] = levels
	}

	e := &Ensemble{index: make(map[BlockKey]int)}

	// Cartesian product, depth-first in axis order.
	tuple := make([]Level, len(norm))
	var walk func(depth int)
	walk = func(depth int) {
		if depth == len(norm) {
			b := make(Block, len(tuple))
			deg := 1
			for i, lv := range tuple {
				b[i] = lv.Label
				deg *= lv.Degeneracy
			}
			e.blocks = append(e.blocks, b)
			e.degs = append(e.degs, deg)
			return
		}
		for _, lv := range norm[depth] {
			tuple[depth] = lv
			walk(depth + 1)
		}
	}
	walk(0)

	// Canonical order, with degeneracies kept aligned.
	order := make([]int, len(e.blocks))
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(i, j int) bool { return e.blocks[order[i]].less(e.blocks[order[j]]) })
	blocks := make([]Block, len(order))
	degs := make([]int, len(order))
	for pos, src := range order {
		blocks[pos] = e.blocks[src]
		degs[pos] = e.degs[src]
		e.index[blocks[pos].Key()] = pos
	}
	e.blocks, e.degs = blocks, degs
	return e, nil
}

// Len returns the number of blocks.
func (e *Ensemble) Len() int { return len(e.blocks) }

// Blocks returns the blocks in canonical order. The slice and its tuples
// are fresh copies; the Ensemble stays immutable.
func (e *Ensemble) Blocks() []Block {
	out := make([]Block, len(e.blocks))
	for i, b := range e.blocks {
		out[i] = append(Block(nil), b...)
	}
	return out
}

// BlockAt returns a copy of the i-th block in canonical order.
func (e *Ensemble) BlockAt(i int) (Block, error) {
	if i < 0 || i >= len(e.blocks) {
		return nil, fmt.Errorf("BlockAt: index %d out of [0,%d): %w", i, len(e.blocks), ErrUnknownBlock)
	}
	return append(Block(nil), e.blocks[i]...), nil
}

// Degeneracy returns the multiplicity of the given block.
func (e *Ensemble) Degeneracy(b Block) (int, error) {
	i, ok := e.index[b.Key()]
	if !ok {
		return 0, fmt.Errorf("Degeneracy: %s: %w", b, ErrUnknownBlock)
	}
	return e.degs[i], nil
}

// Index returns the canonical position of a block key.
func (e *Ensemble) Index(key BlockKey) (int, bool) {
	i, ok := e.index[key]
	return i, ok
}

// Each calls fn for every (position, block, degeneracy) triple in canonical
// order, stopping at the first error. The block tuple must not be mutated.
func (e *Ensemble) Each(fn func(i int, b Block, deg int) error) error {
	for i, b := range e.blocks {
		if err := fn(i, b, e.degs[i]); err != nil {
			return err
		}
	}
	return nil
}

// Equal reports whether two ensembles enumerate identical block keys with
// identical degeneracies in identical order. Containers may only combine
// when their ensembles compare equal.
func (e *Ensemble) Equal(o *Ensemble) bool {
	if e == o {
		return true
	}
	if o == nil || len(e.blocks) != len(o.blocks) {
		return false
	}
	for i := range e.blocks {
		if e.degs[i] != o.degs[i] || e.blocks[i].Key() != o.blocks[i].Key() {
			return false
		}
	}
	return true
}

// String renders the partition as {(a,x):1, (b,x):2, …}.
func (e *Ensemble) String() string {
	var sb strings.Builder
	sb.WriteByte('{')
	for i, b := range e.blocks {
		if i > 0 {
			sb.WriteString(", ")
		}
		fmt.Fprintf(&sb, "%s:%d", b, e.degs[i])
	}
	sb.WriteByte('}')
	return sb.String()
}

// sameEnsemble is the shared cross-operand guard: nil checks first, then
// ensemble equality, all before any per-block work.
func sameEnsemble(op string, a, b *Ensemble) error {
	if a == nil || b == nil {
		return fmt.Errorf("%s: %w", op, ErrNilEnsemble)
	}
	if !a.Equal(b) {
		return fmt.Errorf("%s: %w", op, ErrEnsembleMismatch)
	}
	return nil
}
