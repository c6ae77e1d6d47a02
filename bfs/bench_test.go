// SPDX-License-Identifier: MIT

package bfs_test

import (
	"fmt"
	"testing"

	"github.com/katalvlaran/bassgraph/bfs"
	"github.com/katalvlaran/bassgraph/enclosure"
)

// BenchmarkBFS_Chain measures BFS on a linear chain of N+1 vertices.
func BenchmarkBFS_Chain(b *testing.B) {
	const N = 10000
	g := adjGraph{}
	for i := 0; i < N; i++ {
		g[fmt.Sprintf("v%d", i)] = []string{fmt.Sprintf("v%d", i+1)}
	}
	g[fmt.Sprintf("v%d", N)] = nil

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = bfs.BFS(g, "v0")
	}
}

// BenchmarkBFS_Enclosure measures the dependents walk from the air density,
// which reaches most of the parameter set.
func BenchmarkBFS_Enclosure(b *testing.B) {
	g, err := enclosure.Build()
	if err != nil {
		b.Fatal(err)
	}

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = bfs.BFS(g, "ρ0")
	}
}
