// SPDX-License-Identifier: MIT
// Package ensemble: the TriDiag container — one symmetric tridiagonal
// matrix per block, stored as diagonal and off-diagonal vectors.
//
// Canonical form: len(offdiag) == len(diag) - 1 (with empty blocks holding
// two empty vectors). Construction accepts sources with one trailing extra
// off-diagonal entry — Lanczos codes commonly emit equal-length vectors —
// and trims it; anything else is ErrTriDiagShape.
//
// The three spectral methods are three distinct dispatches with per-block
// special cases for degenerate sizes:
//
//	dim 0 → no value (unset scalar / empty arrays)
//	dim 1 → the sole diagonal entry ([d0], [[1]])
//	else  → the tridiagonal eigensolver
//
// TriDiag is real-valued: symmetric tridiagonal spectra are a real-number
// problem, so the container is not parameterized over the element kind.

package ensemble

import (
	"fmt"
	"strings"

	"github.com/katalvlaran/blockdiag/tensor"
)

// Default dataset tags for TriDiag construction.
const (
	DefaultDiagTag    = "diag"
	DefaultOffdiagTag = "offdiag"
)

// TriDiagOption configures TriDiag construction.
type TriDiagOption func(*triDiagConfig)

type triDiagConfig struct {
	diagTag    string
	offdiagTag string
	cast       func(float64) float64
}

// WithDiagTag overrides the dataset tag the diagonal is extracted from.
// Panics on an empty tag: that is a programmer error.
func WithDiagTag(tag string) TriDiagOption {
	if tag == "" {
		panic("ensemble: WithDiagTag: empty tag")
	}
	return func(c *triDiagConfig) { c.diagTag = tag }
}

// WithOffdiagTag overrides the dataset tag the off-diagonal is extracted
// from. Panics on an empty tag.
func WithOffdiagTag(tag string) TriDiagOption {
	if tag == "" {
		panic("ensemble: WithOffdiagTag: empty tag")
	}
	return func(c *triDiagConfig) { c.offdiagTag = tag }
}

// WithTriDiagCast applies f to every extracted element at construction.
func WithTriDiagCast(f func(float64) float64) TriDiagOption {
	return func(c *triDiagConfig) { c.cast = f }
}

// TriDiag holds, per block, the diagonal d and off-diagonal e of the
// symmetric tridiagonal matrix diag(d) + diag(e, +1) + diag(e, -1).
type TriDiag struct {
	ens     *Ensemble
	diag    [][]float64
	offdiag [][]float64
}

// NewTriDiag builds a TriDiag from a nested map: one dataset map per
// block, with the diagonal and off-diagonal under their tags (defaults
// "diag" and "offdiag"). Per-block data of any rank is flattened first.
func NewTriDiag(ens *Ensemble, data map[BlockKey]map[string]*tensor.Dense[float64], opts ...TriDiagOption) (*TriDiag, error) {
	if ens == nil {
		return nil, fmt.Errorf("NewTriDiag: %w", ErrNilEnsemble)
	}
	cfg := triDiagConfig{diagTag: DefaultDiagTag, offdiagTag: DefaultOffdiagTag}
	for _, opt := range opts {
		opt(&cfg)
	}
	var vopts []ValueOption[float64]
	if cfg.cast != nil {
		vopts = append(vopts, WithCast(cfg.cast))
	}

	diags, err := NewArrayTagged(ens, data, cfg.diagTag, vopts...)
	if err != nil {
		return nil, fmt.Errorf("NewTriDiag: %w", err)
	}
	offs, err := NewArrayTagged(ens, data, cfg.offdiagTag, vopts...)
	if err != nil {
		return nil, fmt.Errorf("NewTriDiag: %w", err)
	}

	td := &TriDiag{
		ens:     ens,
		diag:    make([][]float64, ens.Len()),
		offdiag: make([][]float64, ens.Len()),
	}
	err = ens.Each(func(i int, b Block, _ int) error {
		d := diags.at(i).Flatten().Data()
		od := offs.at(i).Flatten().Data()
		switch {
		case len(od) == len(d) && len(od) > 0:
			od = od[:len(od)-1] // trailing extra entry: trim to canonical form
		case len(od) == len(d): // both empty
		case len(od) == len(d)-1:
		default:
			return fmt.Errorf("NewTriDiag: %s: diag %d / offdiag %d: %w",
				b, len(d), len(od), ErrTriDiagShape)
		}
		td.diag[i], td.offdiag[i] = d, od
		return nil
	})
	if err != nil {
		return nil, err
	}
	return td, nil
}

// Ensemble returns the shared partition reference.
func (t *TriDiag) Ensemble() *Ensemble { return t.ens }

// Dim returns the block's matrix dimension.
func (t *TriDiag) Dim(b Block) (int, error) {
	i, ok := t.ens.index[b.Key()]
	if !ok {
		return 0, fmt.Errorf("Dim: %s: %w", b, ErrUnknownBlock)
	}
	return len(t.diag[i]), nil
}

// DiagOf returns a copy of the block's diagonal.
func (t *TriDiag) DiagOf(b Block) ([]float64, error) {
	i, ok := t.ens.index[b.Key()]
	if !ok {
		return nil, fmt.Errorf("DiagOf: %s: %w", b, ErrUnknownBlock)
	}
	return append([]float64(nil), t.diag[i]...), nil
}

// OffdiagOf returns a copy of the block's off-diagonal.
func (t *TriDiag) OffdiagOf(b Block) ([]float64, error) {
	i, ok := t.ens.index[b.Key()]
	if !ok {
		return nil, fmt.Errorf("OffdiagOf: %s: %w", b, ErrUnknownBlock)
	}
	return append([]float64(nil), t.offdiag[i]...), nil
}

// Eig0 computes the smallest eigenvalue of every block via the selective
// lowest-eigenvalue dispatch — blocks can be large and only the ground
// state is needed, so the full spectrum is never formed. Zero-length
// blocks come back unset; single-entry blocks yield their diagonal entry.
func (t *TriDiag) Eig0(opts ...OpOption) (*Scalar[float64], error) {
	cfg := gatherOpOptions(opts)
	out := newScalarShell[float64](t.ens)
	err := forEachBlock(t.ens.Len(), cfg.workers, func(i int) error {
		switch n := len(t.diag[i]); n {
		case 0:
			// unset: no ground state of an empty block
		case 1:
			out.vals[i], out.set[i] = t.diag[i][0], true
		default:
			e0, err := tensor.SymTriLowest(t.diag[i], t.offdiag[i])
			if err != nil {
				return fmt.Errorf("Eig0: %s: %w", t.ens.blocks[i], err)
			}
			out.vals[i], out.set[i] = e0, true
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Eig computes the full eigendecomposition of every block: ascending
// eigenvalues as rank-1 blocks and eigenvectors as rank-2 blocks whose
// column j pairs with eigenvalue j. Zero-length blocks yield (0,) and
// (0,0) empties; single-entry blocks yield ([d0], [[1]]).
func (t *TriDiag) Eig(opts ...OpOption) (vals, vecs *Array[float64], err error) {
	cfg := gatherOpOptions(opts)
	va := &Array[float64]{ens: t.ens, arrs: make([]*tensor.Dense[float64], t.ens.Len()), ndim: 1}
	ve := &Array[float64]{ens: t.ens, arrs: make([]*tensor.Dense[float64], t.ens.Len()), ndim: 2}
	err = forEachBlock(t.ens.Len(), cfg.workers, func(i int) error {
		w, z, err := tensor.SymTriEigen(t.diag[i], t.offdiag[i])
		if err != nil {
			return fmt.Errorf("Eig: %s: %w", t.ens.blocks[i], err)
		}
		va.arrs[i], ve.arrs[i] = w, z
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return va, ve, nil
}

// Eigvals computes the eigenvalues of every block in ascending order.
// This is its own dispatch onto the vector-free solver, not Eig with the
// eigenvectors dropped — the full-spectrum-without-vectors routine is
// algorithmically cheaper.
func (t *TriDiag) Eigvals(opts ...OpOption) (*Array[float64], error) {
	cfg := gatherOpOptions(opts)
	out := &Array[float64]{ens: t.ens, arrs: make([]*tensor.Dense[float64], t.ens.Len()), ndim: 1}
	err := forEachBlock(t.ens.Len(), cfg.workers, func(i int) error {
		w, err := tensor.SymTriValues(t.diag[i], t.offdiag[i])
		if err != nil {
			return fmt.Errorf("Eigvals: %s: %w", t.ens.blocks[i], err)
		}
		out.arrs[i] = w
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// ToDense reconstructs every block's full dense symmetric matrix:
// diagonal on the main diagonal, off-diagonal mirrored on both adjacent
// diagonals, zero elsewhere. Zero-length blocks yield 0×0 matrices.
func (t *TriDiag) ToDense() (*Array[float64], error) {
	out := &Array[float64]{ens: t.ens, arrs: make([]*tensor.Dense[float64], t.ens.Len()), ndim: 2}
	err := t.ens.Each(func(i int, b Block, _ int) error {
		m, err := tensor.SymTriDense(t.diag[i], t.offdiag[i])
		if err != nil {
			return fmt.Errorf("ToDense: %s: %w", b, err)
		}
		out.arrs[i] = m
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// String renders one "block: dim=N" line per block.
func (t *TriDiag) String() string {
	var sb strings.Builder
	for i, b := range t.ens.blocks {
		fmt.Fprintf(&sb, "%s: dim=%d\n", b, len(t.diag[i]))
	}
	return sb.String()
}
