// SPDX-License-Identifier: MIT

package dfs_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/bassgraph/dfs"
)

// position returns the index of v in order or -1.
func position(order []string, v string) int {
	return dfs.IndexOf(order, v)
}

// TestTopo_NilGraph returns ErrGraphNil.
func TestTopo_NilGraph(t *testing.T) {
	order, err := dfs.TopologicalSort(nil)
	assert.Nil(t, order)
	assert.ErrorIs(t, err, dfs.ErrGraphNil)
}

// TestTopo_Empty sorts nothing.
func TestTopo_Empty(t *testing.T) {
	order, err := dfs.TopologicalSort(adjGraph{})
	require.NoError(t, err)
	assert.Empty(t, order)
}

// TestTopo_NoEdges keeps independent vertices in ascending order.
func TestTopo_NoEdges(t *testing.T) {
	order, err := dfs.TopologicalSort(edges("C", "A", "B"))
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B", "C"}, order)
}

// TestTopo_Chain sorts A→B→C.
func TestTopo_Chain(t *testing.T) {
	order, err := dfs.TopologicalSort(edges("B>C", "A>B"))
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B", "C"}, order)
}

// TestTopo_Diamond places every vertex before its successors.
func TestTopo_Diamond(t *testing.T) {
	g := edges("Sd>Vd", "Xmax>Vd", "Sd>Vas", "Cms>Vas", "Vas>Qtc", "Vd>Qtc")
	order, err := dfs.TopologicalSort(g)
	require.NoError(t, err)
	require.Len(t, order, 6)
	for from, tos := range g {
		for _, to := range tos {
			assert.Less(t, position(order, from), position(order, to), "%s→%s", from, to)
		}
	}
}

// TestTopo_Cycle fails with ErrCycleDetected.
func TestTopo_Cycle(t *testing.T) {
	order, err := dfs.TopologicalSort(edges("A>B", "B>C", "C>A"))
	assert.Nil(t, order)
	assert.ErrorIs(t, err, dfs.ErrCycleDetected)
}

// TestTopo_Cancelled honours a cancelled context.
func TestTopo_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := dfs.TopologicalSort(edges("A>B"), dfs.WithCancelContext(ctx))
	assert.ErrorIs(t, err, context.Canceled)
}

// TestEvaluationOrder_Cycle tolerates loops and keeps the acyclic part ordered.
func TestEvaluationOrder_Cycle(t *testing.T) {
	g := edges("Leaf>A", "A>B", "B>A", "B>Out")
	order, cyclic, err := dfs.EvaluationOrder(g)
	require.NoError(t, err)
	assert.True(t, cyclic)
	assert.Len(t, order, 4)
	assert.Equal(t, "Leaf", order[0])
	assert.Equal(t, "Out", order[3])

	order, cyclic, err = dfs.EvaluationOrder(edges("A>B"))
	require.NoError(t, err)
	assert.False(t, cyclic)
	assert.Equal(t, []string{"A", "B"}, order)
}
