// SPDX-License-Identifier: MIT
// Package core_test provides benchmarks for invalidation and recompute.
package core_test

import (
	"fmt"
	"testing"

	"github.com/katalvlaran/bassgraph/core"
	"github.com/katalvlaran/bassgraph/units"
)

// buildChain declares Q0 → Q1 → ... → Q(n-1), each doubling its input.
func buildChain(b *testing.B, n int) (*core.Graph, *core.Quantity) {
	b.Helper()
	g := core.NewGraph(core.WithMetrics(false))
	for i := 0; i < n; i++ {
		if _, err := g.Declare(fmt.Sprintf("Q%d", i), units.Scalar(1)); err != nil {
			b.Fatal(err)
		}
	}
	for i := 1; i < n; i++ {
		err := g.SetFormula(fmt.Sprintf("Q%d", i), []string{fmt.Sprintf("Q%d", i-1)}, double)
		if err != nil {
			b.Fatal(err)
		}
	}
	head, _ := g.Lookup("Q0")

	return g, head
}

// BenchmarkSetQuantity_Chain measures one invalidation wave down a chain.
func BenchmarkSetQuantity_Chain(b *testing.B) {
	_, head := buildChain(b, 256)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		head.SetQuantity(units.Scalar(float64(i)))
	}
}

// BenchmarkRefresh_Chain measures an edit followed by a full depth-first refresh.
func BenchmarkRefresh_Chain(b *testing.B) {
	g, head := buildChain(b, 256)
	tail, _ := g.Lookup("Q255")
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		head.SetQuantity(units.Scalar(1))
		if err := tail.Refresh(); err != nil {
			b.Fatal(err)
		}
	}
}
