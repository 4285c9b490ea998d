// SPDX-License-Identifier: MIT
// Package loader: directory walking and block discovery.

package loader

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"regexp"
	"sort"

	"github.com/katalvlaran/blockdiag/ensemble"
)

// Option adjusts loading behaviour.
type Option func(*config)

type config struct {
	tags []string
}

// WithTags restricts extraction to the named datasets. Every named tag
// must be present in every matched file.
func WithTags(tags ...string) Option {
	if len(tags) == 0 {
		panic("loader: WithTags requires at least one tag")
	}
	return func(c *config) { c.tags = append([]string(nil), tags...) }
}

func gatherOptions(opts []Option) config {
	var cfg config
	for _, o := range opts {
		o(&cfg)
	}
	return cfg
}

// ReadDir walks dir, matches base file names against pattern, and parses
// every match. The pattern's capture groups form the block label tuple;
// the result maps each block key to that file's datasets.
//
// A pattern with no capture groups yields ErrNoCaptures; two files that
// resolve to the same block yield ErrDuplicateBlock.
func ReadDir(dir, pattern string, opts ...Option) (map[ensemble.BlockKey]Datasets, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("ReadDir: %q: %w", pattern, ErrBadPattern)
	}
	if re.NumSubexp() == 0 {
		return nil, fmt.Errorf("ReadDir: %q: %w", pattern, ErrNoCaptures)
	}

	out := make(map[ensemble.BlockKey]Datasets)
	walk := func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		m := re.FindStringSubmatch(filepath.Base(path))
		if m == nil {
			return nil
		}
		key := ensemble.KeyOf(m[1:]...)
		if _, dup := out[key]; dup {
			return fmt.Errorf("block %v in %s: %w", m[1:], path, ErrDuplicateBlock)
		}
		ds, err := ReadFile(path, opts...)
		if err != nil {
			return err
		}
		out[key] = ds
		return nil
	}
	if err := filepath.WalkDir(dir, walk); err != nil {
		return nil, fmt.Errorf("ReadDir: %w", err)
	}
	return out, nil
}

// Blocks returns the discovered block tuples in deterministic sorted
// order, ready to seed an ensemble axis-by-axis or to cross-check an
// existing partition.
func Blocks(m map[ensemble.BlockKey]Datasets) []ensemble.Block {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, string(k))
	}
	sort.Strings(keys)
	blocks := make([]ensemble.Block, len(keys))
	for i, k := range keys {
		blocks[i] = ensemble.BlockKey(k).Labels()
	}
	return blocks
}
