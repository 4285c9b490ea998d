// SPDX-License-Identifier: MIT
// Package ensemble: bounded per-block fan-out.
//
// Per-block computations are independent, so the expensive block-wise
// operations (Expm, the TriDiag spectra) accept WithWorkers to spread the
// block loop across goroutines. Every worker writes its result into the
// slot of its block index, so the assembled container is bit-identical to
// the sequential result regardless of the degree of parallelism.

package ensemble

import (
	"fmt"

	"golang.org/x/sync/errgroup"
)

// DefaultWorkers is the number of goroutines block-wise operations use
// unless WithWorkers overrides it: one, the purely sequential fold.
const DefaultWorkers = 1

// OpOption configures a block-wise operation.
type OpOption func(*opConfig)

type opConfig struct {
	workers int
}

// WithWorkers caps the number of goroutines a block-wise operation may use.
// Panics when n < 1: a non-positive worker count is a programmer error.
func WithWorkers(n int) OpOption {
	if n < 1 {
		panic(fmt.Sprintf("ensemble: WithWorkers(%d): must be ≥ 1", n))
	}
	return func(c *opConfig) { c.workers = n }
}

// gatherOpOptions folds options over the documented defaults.
func gatherOpOptions(opts []OpOption) opConfig {
	cfg := opConfig{workers: DefaultWorkers}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// forEachBlock runs fn(i) for every block index 0..n-1. With one worker it
// is a plain loop; otherwise the indices fan out over an errgroup bounded
// at the worker count, and the first error cancels the remainder.
func forEachBlock(n, workers int, fn func(i int) error) error {
	if workers <= 1 || n <= 1 {
		for i := 0; i < n; i++ {
			if err := fn(i); err != nil {
				return err
			}
		}
		return nil
	}
	var g errgroup.Group
	g.SetLimit(workers)
	for i := 0; i < n; i++ {
		i := i
		g.Go(func() error { return fn(i) })
	}
	return g.Wait()
}
