// SPDX-License-Identifier: MIT

package core_test

import (
	"fmt"

	"github.com/katalvlaran/bassgraph/core"
	"github.com/katalvlaran/bassgraph/units"
)

// ExampleGraph wires B = A*2, edits A and recomputes B.
func ExampleGraph() {
	g := core.NewGraph(core.WithMetrics(false))
	a, _ := g.Declare("A", units.Scalar(2))
	b, _ := g.Declare("B", units.Scalar(0))
	_ = g.SetFormula("B", []string{"A"}, func(in []units.Value) (units.Value, error) {
		return in[0].Scale(2), nil
	})

	a.SetQuantity(units.Scalar(5))
	fmt.Println(b.State())

	_ = b.Update()
	fmt.Println(b)

	// Output:
	// Invalid
	// B: 10 (Valid)
}

// ExampleQuantity_UpdateParents refreshes the direct dependents of an edit.
func ExampleQuantity_UpdateParents() {
	g := core.NewGraph(core.WithMetrics(false))
	sd, _ := g.DeclareString("Sd", "10 cm**2", "", "")
	xmax, _ := g.DeclareString("Xmax", "3 mm", "", "")
	vd, _ := g.DeclareString("Vd", "0 liter", "", "")
	_ = g.SetFormula("Vd", []string{"Sd", "Xmax"}, func(in []units.Value) (units.Value, error) {
		return in[0].Mul(in[1]), nil
	})
	vd.OnUpdate(func(q *core.Quantity) { fmt.Println("updated", q.Name()) })

	_ = xmax.SetQuantityString("6 mm")
	_ = xmax.UpdateParents()

	fmt.Println(vd)
	fmt.Println(sd.State())

	// Output:
	// updated Vd
	// Vd: 0.006 liter (Valid)
	// Invalid
}

// ExampleGraph_OnChange registers the global edit callback.
func ExampleGraph_OnChange() {
	g := core.NewGraph(core.WithMetrics(false))
	_, _ = g.DeclareString("Bl", "5 tesla meter", "", "")
	_ = g.OnChange(func(q *core.Quantity, magnitude float64) {
		fmt.Printf("%s changed to %g\n", q.Name(), magnitude)
	})
	_ = g.Edit("Bl", 7.5, "tesla meter")

	// Output:
	// Bl changed to 7.5
}
