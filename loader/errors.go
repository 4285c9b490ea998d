// SPDX-License-Identifier: MIT
// Package loader: sentinel error set.

package loader

import "errors"

var (
	// ErrBadPattern indicates the file-name expression failed to compile.
	ErrBadPattern = errors.New("loader: invalid file-name pattern")

	// ErrNoCaptures indicates a matching file name whose pattern defines no
	// capture groups — no block tuple can be formed.
	ErrNoCaptures = errors.New("loader: pattern has no capture groups")

	// ErrDuplicateBlock indicates two files resolving to the same block
	// tuple.
	ErrDuplicateBlock = errors.New("loader: duplicate block")

	// ErrUnknownTag indicates a requested dataset tag absent from a file.
	ErrUnknownTag = errors.New("loader: tag not found in file")

	// ErrBadDataset indicates a dataset node that is neither nested numeric
	// arrays nor a real/imag pair.
	ErrBadDataset = errors.New("loader: invalid dataset node")

	// ErrRaggedData indicates nested arrays with non-uniform extents.
	ErrRaggedData = errors.New("loader: ragged nested arrays")

	// ErrComplexParts indicates a real/imag pair whose parts disagree in
	// shape.
	ErrComplexParts = errors.New("loader: real and imaginary parts disagree")
)
