// Package blockdiag is an in-memory toolkit for block-resolved numerical
// data — the post-processing side of exact-diagonalization and Lanczos
// computations, where a dataset splits into symmetry sectors ("blocks")
// and every quantity carries one value per block.
//
// 🚀 What is blockdiag?
//
//	A small, deterministic library that brings together:
//		• Ensembles: immutable, ordered block partitions with degeneracies
//		• Containers: per-block scalars, N-dimensional arrays and
//		  symmetric tridiagonal matrices, all sharing one Ensemble
//		• Block algebra: matrix exponentials, transposes, conjugation,
//		  dot/outer products and Einstein summation, block by block
//		• Tridiagonal spectra: ground-state, full-spectrum and
//		  eigenvector decompositions per block
//		• A bulk loader that maps dataset files onto blocks by filename
//
// ✨ Why choose blockdiag?
//
//   - Deterministic by construction — every operation folds over the
//     canonical block order, even when fanned out across workers
//   - Immutable value types — containers never mutate; every operation
//     returns a fresh result over the same shared Ensemble
//   - Explicit failure — sentinel errors per package, matched with
//     errors.Is, no panics on user input
//
// Under the hood, everything is organized under three subpackages:
//
//	ensemble/ — Ensemble partitions, Scalar/Array/TriDiag containers
//	            and the block-wise algebra functions
//	tensor/   — the dense rank-N numeric kernel the containers dispatch to
//	loader/   — directory walker turning dataset files into block maps
//
// Quick sketch:
//
//	ens, _ := ensemble.New([]ensemble.Axis{
//	    {{Label: "a", Degeneracy: 1}, {Label: "b", Degeneracy: 2}},
//	    ensemble.Labels("x", "y"),
//	})
//	td, _ := ensemble.NewTriDiag(ens, data)
//	e0, _ := td.Eig0() // smallest eigenvalue per block
//
// Dive into the per-package docs for the full container surface and the
// example tests for end-to-end usage.
//
//	go get github.com/katalvlaran/blockdiag
package blockdiag
