// SPDX-License-Identifier: MIT
// Package tensor: elementwise and broadcast kernels.
//
// Purpose:
//   - Provide the small elementwise kernels (tensor⊕tensor, tensor⊕scalar)
//     the container layer dispatches per block.
//   - Keep all loops deterministic and cache-friendly over the flat
//     row-major buffer.
//
// Determinism & Performance:
//   - Fixed flat loop order 0..n-1.
//   - No hidden allocations beyond the output Dense; O(n) time and space.
//   - Zero-size tensors flow through without error (empty in, empty out).

package tensor

import "fmt"

// validatePair checks operand presence and shape agreement for a binary
// elementwise kernel. Returns plain sentinels; callers wrap with context.
func validatePair[T Number](a, b *Dense[T]) error {
	if a == nil || b == nil {
		return ErrNilTensor
	}
	if !sameShape(a.shape, b.shape) {
		return fmt.Errorf("shapes %v and %v: %w", a.shape, b.shape, ErrShapeMismatch)
	}
	return nil
}

// binOp applies f elementwise over two same-shape tensors.
func binOp[T Number](a, b *Dense[T], opTag string, f func(x, y T) T) (*Dense[T], error) {
	if err := validatePair(a, b); err != nil {
		return nil, fmt.Errorf("%s: %w", opTag, err)
	}
	out := a.Clone()
	for i := range out.data {
		out.data[i] = f(out.data[i], b.data[i])
	}
	return out, nil
}

// scalarOp applies f elementwise over one tensor and a broadcast scalar.
func scalarOp[T Number](a *Dense[T], opTag string, f func(x T) T) (*Dense[T], error) {
	if a == nil {
		return nil, fmt.Errorf("%s: %w", opTag, ErrNilTensor)
	}
	out := a.Clone()
	for i := range out.data {
		out.data[i] = f(out.data[i])
	}
	return out, nil
}

// Add computes the elementwise sum a + b into a fresh tensor.
// Complexity: O(n).
func Add[T Number](a, b *Dense[T]) (*Dense[T], error) {
	return binOp(a, b, "Add", func(x, y T) T { return x + y })
}

// Sub computes the elementwise difference a - b into a fresh tensor.
func Sub[T Number](a, b *Dense[T]) (*Dense[T], error) {
	return binOp(a, b, "Sub", func(x, y T) T { return x - y })
}

// MulElem computes the elementwise (Hadamard) product a ∘ b.
func MulElem[T Number](a, b *Dense[T]) (*Dense[T], error) {
	return binOp(a, b, "MulElem", func(x, y T) T { return x * y })
}

// DivElem computes the elementwise quotient a / b. Division by a zero
// element follows IEEE semantics (±Inf / NaN), matching the dense kernels
// this package stands in for; no error is raised.
func DivElem[T Number](a, b *Dense[T]) (*Dense[T], error) {
	return binOp(a, b, "DivElem", func(x, y T) T { return x / y })
}

// AddScalar computes a + s with s broadcast to every element.
func AddScalar[T Number](a *Dense[T], s T) (*Dense[T], error) {
	return scalarOp(a, "AddScalar", func(x T) T { return x + s })
}

// SubScalar computes a - s with s broadcast to every element.
func SubScalar[T Number](a *Dense[T], s T) (*Dense[T], error) {
	return scalarOp(a, "SubScalar", func(x T) T { return x - s })
}

// Scale computes a · s with s broadcast to every element.
func Scale[T Number](a *Dense[T], s T) (*Dense[T], error) {
	return scalarOp(a, "Scale", func(x T) T { return x * s })
}

// DivScalar computes a / s with s broadcast to every element.
func DivScalar[T Number](a *Dense[T], s T) (*Dense[T], error) {
	return scalarOp(a, "DivScalar", func(x T) T { return x / s })
}

// Neg computes -a into a fresh tensor.
func Neg[T Number](a *Dense[T]) (*Dense[T], error) {
	return scalarOp(a, "Neg", func(x T) T { return -x })
}

// Map applies f to every element into a fresh tensor (the typed analogue
// of an elementwise dtype cast).
func Map[T Number](a *Dense[T], f func(T) T) (*Dense[T], error) {
	return scalarOp(a, "Map", f)
}
