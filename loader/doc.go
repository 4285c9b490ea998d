// Package loader turns structured dataset files on disk into the
// block-keyed maps the ensemble containers are constructed from.
//
// The loader walks a directory tree, matches file names against a
// caller-supplied regular expression, and uses the expression's capture
// groups as the block label tuple — one file per block:
//
//	results/obs.N.2.Q.1.yaml   ~   `obs\.N\.(\d+)\.Q\.(\d+)\.yaml`
//	                           →   block ("2", "1")
//
// Each file holds a mapping from dataset tag to dataset. A dataset is
// either nested numeric arrays (uniform extents; ragged nesting is
// rejected) or a {real: …, imag: …} pair — {r: …, i: …} is accepted too —
// reassembled into complex values. Files are YAML, which makes plain JSON
// dumps valid input as well.
//
// The loader owns all I/O and parsing; the ensemble core never touches
// disk. It defines no on-disk format of its own beyond the conventions
// above.
package loader
