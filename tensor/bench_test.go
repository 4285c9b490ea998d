// SPDX-License-Identifier: MIT
package tensor

import "testing"

func benchMatrix(n int) *Dense[float64] {
	data := make([]float64, n*n)
	for i := range data {
		data[i] = float64(i%7) * 0.25
	}
	m, _ := New([]int{n, n}, data)
	return m
}

func BenchmarkDot64(b *testing.B) {
	m := benchMatrix(64)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := Dot(m, m); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkEinsumMatMul64(b *testing.B) {
	m := benchMatrix(64)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := Einsum("ij,jk->ik", m, m); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkExpm32(b *testing.B) {
	m := benchMatrix(32)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := Expm(m); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkSymTriLowest(b *testing.B) {
	n := 1024
	d := make([]float64, n)
	e := make([]float64, n-1)
	for i := range d {
		d[i] = float64(i % 13)
	}
	for i := range e {
		e[i] = 0.5
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := SymTriLowest(d, e); err != nil {
			b.Fatal(err)
		}
	}
}
