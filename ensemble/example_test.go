// SPDX-License-Identifier: MIT
package ensemble_test

import (
	"fmt"

	"github.com/katalvlaran/blockdiag/ensemble"
	"github.com/katalvlaran/blockdiag/tensor"
)

// ExampleNew partitions a two-axis problem (particle number × parity) and
// enumerates the blocks in canonical order.
func ExampleNew() {
	ens, err := ensemble.New([]ensemble.Axis{
		{{Label: "N1", Degeneracy: 1}, {Label: "N2", Degeneracy: 2}},
		ensemble.Labels("even", "odd"),
	})
	if err != nil {
		fmt.Println(err)
		return
	}
	_ = ens.Each(func(i int, b ensemble.Block, deg int) error {
		fmt.Printf("%d %s deg=%d\n", i, b, deg)
		return nil
	})
	// Output:
	// 0 (N1,even) deg=1
	// 1 (N1,odd) deg=1
	// 2 (N2,even) deg=2
	// 3 (N2,odd) deg=2
}

// ExampleTriDiag_Eig0 finds the per-block ground-state energy of a
// block-tridiagonal Hamiltonian.
func ExampleTriDiag_Eig0() {
	ens, err := ensemble.New([]ensemble.Axis{ensemble.Labels("N1", "N2")})
	if err != nil {
		fmt.Println(err)
		return
	}
	td, err := ensemble.NewTriDiag(ens, map[ensemble.BlockKey]map[string]*tensor.Dense[float64]{
		ensemble.KeyOf("N1"): {
			"diag":    tensor.FromVector([]float64{2, 2}),
			"offdiag": tensor.FromVector([]float64{1}),
		},
		ensemble.KeyOf("N2"): {
			"diag":    tensor.FromVector([]float64{-4}),
			"offdiag": tensor.Empty[float64](1),
		},
	})
	if err != nil {
		fmt.Println(err)
		return
	}
	e0, err := td.Eig0()
	if err != nil {
		fmt.Println(err)
		return
	}
	for _, b := range ens.Blocks() {
		v, ok, _ := e0.Value(b)
		if ok {
			fmt.Printf("%s: %.1f\n", b, v)
		}
	}
	// Output:
	// (N1): 1.0
	// (N2): -4.0
}

// ExampleScalar_Add combines per-block observables elementwise.
func ExampleScalar_Add() {
	ens, err := ensemble.New([]ensemble.Axis{ensemble.Labels("up", "down")})
	if err != nil {
		fmt.Println(err)
		return
	}
	kinetic, _ := ensemble.NewScalar(ens, map[ensemble.BlockKey]float64{
		ensemble.KeyOf("up"): 1.5, ensemble.KeyOf("down"): 2.5,
	})
	potential, _ := ensemble.NewScalar(ens, map[ensemble.BlockKey]float64{
		ensemble.KeyOf("up"): -1, ensemble.KeyOf("down"): -2,
	})
	total, err := kinetic.Add(potential)
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Print(total)
	// Output:
	// (down): 0.5
	// (up): 0.5
}
