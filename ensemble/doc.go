// Package ensemble implements block-resolved data containers: an immutable
// partition of a dataset into labeled blocks (an Ensemble) and typed
// per-block containers that apply every operation uniformly across blocks.
//
// 🚀 What is an Ensemble?
//
//	Block-diagonal numerical problems (quantum-number sectors, symmetry
//	classes) split one computation into independent labeled blocks, each
//	with an integer degeneracy. An Ensemble fixes the ordered block set
//	once; every container built against it holds one datum per block and
//	iterates in the same canonical order:
//	  • Scalar[T]  — one value per block, with an explicit "unset" state
//	  • Array[T]   — one rank-N tensor per block, uniform rank, ragged sizes
//	  • TriDiag    — one symmetric tridiagonal matrix per block
//
// ✨ Key guarantees:
//
//   - Ensembles are immutable after New; containers share them by
//     reference and never copy them.
//   - Cross-container operations demand Ensemble equality (identical
//     ordered blocks AND degeneracies) and fail before touching any block.
//   - Every operation returns a fresh container; operands never mutate,
//     so a failed operation leaves all inputs untouched.
//   - Determinism: results are assembled in canonical block order even
//     when WithWorkers fans the per-block work out across goroutines.
//
// ⚙️ Usage:
//
//	import "github.com/katalvlaran/blockdiag/ensemble"
//
//	ens, err := ensemble.New([]ensemble.Axis{
//	    {{Label: "0", Degeneracy: 1}, {Label: "1", Degeneracy: 2}},
//	    ensemble.Labels("x", "y"),
//	})
//	td, err := ensemble.NewTriDiag(ens, data)
//	e0, err := td.Eig0()          // ground-state energy per block
//	rho, err := ensemble.Expm(h)  // block-wise matrix exponential
//
// See example_test.go for end-to-end patterns and errors.go for the
// sentinel error surface.
package ensemble
