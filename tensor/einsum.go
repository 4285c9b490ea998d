// SPDX-License-Identifier: MIT
// Package tensor: Einstein summation.
//
// Einsum follows the NumPy subscript convention:
//
//   - "ij,jk->ik"   explicit output
//   - "ij,jk"       implicit output: indices occurring exactly once,
//     in alphabetical order
//   - "ii"          repeated index within one operand selects the diagonal
//   - "ii->"        full trace, rank-0 result
//
// Ellipsis broadcasting is not supported and is rejected with
// ErrEinsumSpec. Index letters are restricted to [a-zA-Z].

package tensor

import (
	"fmt"
	"sort"
	"strings"
)

// einsumPlan is the parsed form of one Einsum call.
type einsumPlan struct {
	inputs  [][]rune     // per-operand subscript letters
	output  []rune       // output subscript letters, in order
	summed  []rune       // contracted letters, sorted for determinism
	extents map[rune]int // letter → axis extent
}

// parseEinsum validates the subscript specification against the operand
// shapes and resolves the output and summation index sets.
func parseEinsum[T Number](spec string, ops []*Dense[T]) (*einsumPlan, error) {
	if strings.Contains(spec, "...") {
		return nil, fmt.Errorf("ellipsis not supported: %w", ErrEinsumSpec)
	}
	spec = strings.ReplaceAll(spec, " ", "")
	var inPart, outPart string
	var explicit bool
	switch parts := strings.Split(spec, "->"); len(parts) {
	case 1:
		inPart = parts[0]
	case 2:
		inPart, outPart, explicit = parts[0], parts[1], true
	default:
		return nil, fmt.Errorf("multiple \"->\": %w", ErrEinsumSpec)
	}

	subs := strings.Split(inPart, ",")
	if len(subs) != len(ops) {
		return nil, fmt.Errorf("%d subscripts for %d operands: %w", len(subs), len(ops), ErrEinsumSpec)
	}

	plan := &einsumPlan{extents: make(map[rune]int)}
	counts := make(map[rune]int)
	for i, sub := range subs {
		letters := []rune(sub)
		for _, r := range letters {
			if !isIndexLetter(r) {
				return nil, fmt.Errorf("subscript %q: %w", sub, ErrEinsumSpec)
			}
		}
		if len(letters) != ops[i].NDim() {
			return nil, fmt.Errorf("subscript %q for rank-%d operand %d: %w",
				sub, ops[i].NDim(), i, ErrEinsumSpec)
		}
		seen := make(map[rune]bool)
		for d, r := range letters {
			ext := ops[i].shape[d]
			if have, ok := plan.extents[r]; ok && have != ext {
				return nil, fmt.Errorf("index %q bound to extents %d and %d: %w",
					string(r), have, ext, ErrShapeMismatch)
			}
			plan.extents[r] = ext
			if !seen[r] {
				seen[r] = true
				counts[r]++
			}
		}
		plan.inputs = append(plan.inputs, letters)
	}

	if explicit {
		seen := make(map[rune]bool)
		for _, r := range outPart {
			if !isIndexLetter(r) || seen[r] {
				return nil, fmt.Errorf("output subscript %q: %w", outPart, ErrEinsumSpec)
			}
			if _, ok := plan.extents[r]; !ok {
				return nil, fmt.Errorf("output index %q unused in inputs: %w", string(r), ErrEinsumSpec)
			}
			seen[r] = true
			plan.output = append(plan.output, r)
		}
	} else {
		// Implicit output: letters occurring in exactly one operand,
		// alphabetically ordered.
		for r, c := range counts {
			if c == 1 && !repeatedWithin(plan.inputs, r) {
				plan.output = append(plan.output, r)
			}
		}
		sort.Slice(plan.output, func(i, j int) bool { return plan.output[i] < plan.output[j] })
	}

	inOut := make(map[rune]bool, len(plan.output))
	for _, r := range plan.output {
		inOut[r] = true
	}
	for r := range plan.extents {
		if !inOut[r] {
			plan.summed = append(plan.summed, r)
		}
	}
	sort.Slice(plan.summed, func(i, j int) bool { return plan.summed[i] < plan.summed[j] })
	return plan, nil
}

func isIndexLetter(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

// repeatedWithin reports whether r appears more than once inside any single
// operand subscript (a diagonal index never joins the implicit output).
func repeatedWithin(inputs [][]rune, r rune) bool {
	for _, sub := range inputs {
		n := 0
		for _, x := range sub {
			if x == r {
				n++
			}
		}
		if n > 1 {
			return true
		}
	}
	return false
}

// Einsum evaluates the Einstein-summation specification over the operands
// and returns the contracted tensor. At least one operand is required.
// Complexity: O(∏ output extents · ∏ summed extents · len(ops)).
func Einsum[T Number](spec string, ops ...*Dense[T]) (*Dense[T], error) {
	if len(ops) == 0 {
		return nil, fmt.Errorf("Einsum: no operands: %w", ErrEinsumSpec)
	}
	for _, op := range ops {
		if op == nil {
			return nil, fmt.Errorf("Einsum: %w", ErrNilTensor)
		}
	}
	plan, err := parseEinsum(spec, ops)
	if err != nil {
		return nil, fmt.Errorf("Einsum: %w", err)
	}

	// Letter → slot in the combined index vector (outputs first).
	letters := append(append([]rune{}, plan.output...), plan.summed...)
	slot := make(map[rune]int, len(letters))
	for i, r := range letters {
		slot[r] = i
	}

	outShape := make([]int, len(plan.output))
	outSize := 1
	for i, r := range plan.output {
		outShape[i] = plan.extents[r]
		outSize *= outShape[i]
	}
	sumSize := 1
	for _, r := range plan.summed {
		sumSize *= plan.extents[r]
	}

	// Precompute, per operand and per combined slot, the flat-offset weight.
	weights := make([][]int, len(ops))
	for oi, sub := range plan.inputs {
		w := make([]int, len(letters))
		for d, r := range sub {
			w[slot[r]] += ops[oi].stride[d]
		}
		weights[oi] = w
	}

	out := &Dense[T]{shape: outShape, stride: stridesFor(outShape), data: make([]T, outSize)}
	idx := make([]int, len(letters))
	for o := 0; o < outSize; o++ {
		var acc T
		for s := 0; s < sumSize; s++ {
			prod := T(1)
			for oi := range ops {
				off := 0
				for k, v := range idx {
					off += v * weights[oi][k]
				}
				prod *= ops[oi].data[off]
			}
			acc += prod
			advance(idx, letters, plan.extents, len(plan.output))
		}
		out.data[o] = acc
		advanceOut(idx, letters, plan.extents, len(plan.output))
	}
	return out, nil
}

// advance increments the summed portion of the combined index vector
// (row-major, last summed letter fastest), wrapping to zero at the end.
func advance(idx []int, letters []rune, extents map[rune]int, outLen int) {
	for k := len(idx) - 1; k >= outLen; k-- {
		idx[k]++
		if idx[k] < extents[letters[k]] {
			return
		}
		idx[k] = 0
	}
}

// advanceOut increments the output portion of the combined index vector.
func advanceOut(idx []int, letters []rune, extents map[rune]int, outLen int) {
	for k := outLen - 1; k >= 0; k-- {
		idx[k]++
		if idx[k] < extents[letters[k]] {
			return
		}
		idx[k] = 0
	}
}
