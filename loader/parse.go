// SPDX-License-Identifier: MIT
// Package loader: dataset-file parsing.
//
// One file = one YAML mapping tag → dataset. Datasets decode into
// complex128 tensors; real-valued sources simply carry zero imaginary
// parts and can be narrowed with Datasets.Float.

package loader

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/blockdiag/tensor"
)

// Datasets maps dataset tags to their decoded tensors for one block.
type Datasets map[string]*tensor.Dense[complex128]

// Get returns the dataset under tag, or ErrUnknownTag.
func (d Datasets) Get(tag string) (*tensor.Dense[complex128], error) {
	t, ok := d[tag]
	if !ok {
		return nil, fmt.Errorf("Get: %q: %w", tag, ErrUnknownTag)
	}
	return t.Clone(), nil
}

// Float returns the dataset under tag narrowed to its real parts,
// for real-valued sources.
func (d Datasets) Float(tag string) (*tensor.Dense[float64], error) {
	t, ok := d[tag]
	if !ok {
		return nil, fmt.Errorf("Float: %q: %w", tag, ErrUnknownTag)
	}
	data := t.Data()
	re := make([]float64, len(data))
	for i, v := range data {
		re[i] = real(v)
	}
	return tensor.New(t.Shape(), re)
}

// Tags returns the dataset tags in sorted order.
func (d Datasets) Tags() []string {
	tags := make([]string, 0, len(d))
	for tag := range d {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	return tags
}

// ReadFile parses one dataset file. With WithTags only the named datasets
// are extracted, and each must be present.
func ReadFile(path string, opts ...Option) (Datasets, error) {
	cfg := gatherOptions(opts)
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("ReadFile: %w", err)
	}
	var doc map[string]any
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("ReadFile %s: %w", path, err)
	}

	out := make(Datasets)
	if cfg.tags == nil {
		for tag, node := range doc {
			t, err := parseDataset(node)
			if err != nil {
				return nil, fmt.Errorf("ReadFile %s: tag %q: %w", path, tag, err)
			}
			out[tag] = t
		}
		return out, nil
	}
	for _, tag := range cfg.tags {
		node, ok := doc[tag]
		if !ok {
			return nil, fmt.Errorf("ReadFile %s: %q: %w", path, tag, ErrUnknownTag)
		}
		t, err := parseDataset(node)
		if err != nil {
			return nil, fmt.Errorf("ReadFile %s: tag %q: %w", path, tag, err)
		}
		out[tag] = t
	}
	return out, nil
}

// parseDataset decodes one dataset node: either nested numeric arrays or
// a real/imag mapping pair.
func parseDataset(node any) (*tensor.Dense[complex128], error) {
	if m, ok := node.(map[string]any); ok {
		re, im, ok := complexParts(m)
		if !ok {
			return nil, fmt.Errorf("mapping is not a real/imag pair: %w", ErrBadDataset)
		}
		rt, err := parseNested(re)
		if err != nil {
			return nil, err
		}
		it, err := parseNested(im)
		if err != nil {
			return nil, err
		}
		rsh, ish := rt.Shape(), it.Shape()
		if !equalShapes(rsh, ish) {
			return nil, fmt.Errorf("shapes %v and %v: %w", rsh, ish, ErrComplexParts)
		}
		rd, id := rt.Data(), it.Data()
		data := make([]complex128, len(rd))
		for i := range rd {
			data[i] = complex(real(rd[i]), real(id[i]))
		}
		return tensor.New(rsh, data)
	}
	return parseNested(node)
}

// complexParts recognizes the two accepted spellings of a complex pair.
func complexParts(m map[string]any) (re, im any, ok bool) {
	if len(m) != 2 {
		return nil, nil, false
	}
	if r, rok := m["real"]; rok {
		if i, iok := m["imag"]; iok {
			return r, i, true
		}
	}
	if r, rok := m["r"]; rok {
		if i, iok := m["i"]; iok {
			return r, i, true
		}
	}
	return nil, nil, false
}

// parseNested decodes nested numeric arrays into a tensor, validating
// uniform extents level by level.
func parseNested(node any) (*tensor.Dense[complex128], error) {
	shape, err := nestedShape(node)
	if err != nil {
		return nil, err
	}
	var data []complex128
	if err := flattenNested(node, len(shape), &data); err != nil {
		return nil, err
	}
	return tensor.New(shape, data)
}

// nestedShape derives the shape from the first spine of the nesting.
func nestedShape(node any) ([]int, error) {
	switch v := node.(type) {
	case []any:
		if len(v) == 0 {
			return []int{0}, nil
		}
		sub, err := nestedShape(v[0])
		if err != nil {
			return nil, err
		}
		return append([]int{len(v)}, sub...), nil
	default:
		if _, err := toNumber(node); err != nil {
			return nil, err
		}
		return nil, nil
	}
}

// flattenNested walks the nesting in row-major order, enforcing that
// every level matches the depth the shape promised.
func flattenNested(node any, depth int, out *[]complex128) error {
	if depth == 0 {
		n, err := toNumber(node)
		if err != nil {
			return err
		}
		*out = append(*out, n)
		return nil
	}
	v, ok := node.([]any)
	if !ok {
		return fmt.Errorf("depth mismatch: %w", ErrRaggedData)
	}
	var want = -1
	for _, child := range v {
		if depth > 1 {
			c, ok := child.([]any)
			if !ok {
				return fmt.Errorf("depth mismatch: %w", ErrRaggedData)
			}
			if want < 0 {
				want = len(c)
			} else if len(c) != want {
				return fmt.Errorf("extents %d and %d: %w", want, len(c), ErrRaggedData)
			}
		}
		if err := flattenNested(child, depth-1, out); err != nil {
			return err
		}
	}
	return nil
}

func equalShapes(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// toNumber coerces the YAML scalar kinds to complex128.
func toNumber(node any) (complex128, error) {
	switch n := node.(type) {
	case int:
		return complex(float64(n), 0), nil
	case int64:
		return complex(float64(n), 0), nil
	case uint64:
		return complex(float64(n), 0), nil
	case float64:
		return complex(n, 0), nil
	default:
		return 0, fmt.Errorf("non-numeric element %T: %w", node, ErrBadDataset)
	}
}
