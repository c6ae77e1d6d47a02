// SPDX-License-Identifier: MIT
// Package dfs defines the graph view, options and result types shared by
// traversal, cycle detection and topological ordering.
package dfs

import (
	"context"
	"errors"
)

// Visitation colours.
const (
	White = iota // not visited yet
	Gray         // on the recursion stack
	Black        // fully explored
)

var (
	// ErrGraphNil is returned when a nil Graph is passed to DFS,
	// TopologicalSort or EvaluationOrder.
	ErrGraphNil = errors.New("dfs: graph is nil")

	// ErrStartVertexNotFound indicates that the start vertex is not in the graph.
	ErrStartVertexNotFound = errors.New("dfs: start vertex not found")

	// ErrCycleDetected indicates a back edge found by TopologicalSort.
	ErrCycleDetected = errors.New("dfs: cycle detected")

	// ErrNeighborFetch indicates a failure to retrieve successors from the graph.
	ErrNeighborFetch = errors.New("dfs: failed to fetch successors")
)

// Graph is the directed view the algorithms walk. Edges run from a vertex
// to each of its successors; for a dependency graph that is input → dependent.
// *core.Graph implements it.
type Graph interface {
	Vertices() []string
	Successors(id string) ([]string, error)
}

// Option configures DFS.
type Option func(*DFSOptions)

// DFSOptions holds the DFS settings.
type DFSOptions struct {
	// Ctx allows cancellation; defaults to context.Background().
	Ctx context.Context

	// OnVisit, if non-nil, runs when a vertex is discovered (pre-order).
	// Returning an error aborts the traversal.
	OnVisit func(id string) error

	// MaxDepth, if non-negative, limits recursion depth. 0 visits only the
	// start vertex. Default -1 (unlimited).
	MaxDepth int

	// FullTraversal restarts from every unvisited vertex (forest mode).
	FullTraversal bool
}

// DefaultOptions returns background context, no hook, no depth limit and
// single-source traversal.
func DefaultOptions() DFSOptions {
	return DFSOptions{
		Ctx:      context.Background(),
		MaxDepth: -1,
	}
}

// WithContext sets the cancellation context. nil is ignored.
func WithContext(ctx context.Context) Option {
	return func(o *DFSOptions) {
		if ctx != nil {
			o.Ctx = ctx
		}
	}
}

// WithOnVisit installs a pre-order hook.
func WithOnVisit(fn func(id string) error) Option {
	return func(o *DFSOptions) {
		o.OnVisit = fn
	}
}

// WithMaxDepth limits traversal depth.
func WithMaxDepth(limit int) Option {
	return func(o *DFSOptions) {
		o.MaxDepth = limit
	}
}

// WithFullTraversal enables forest traversal over every vertex.
func WithFullTraversal() Option {
	return func(o *DFSOptions) {
		o.FullTraversal = true
	}
}

// DFSResult captures a traversal: post-order, discovery depth, discovery
// parent and the visited set.
type DFSResult struct {
	// Order lists vertices in finishing (post-) order.
	Order []string

	// Depth maps a vertex to its edge distance from the root of its tree.
	Depth map[string]int

	// Parent maps a vertex to the vertex it was discovered from. Roots are absent.
	Parent map[string]string

	// Visited flags every vertex reached.
	Visited map[string]bool
}

// Reached returns the visited vertices other than start, sorted. For a
// dependency graph started at an edited quantity this is every quantity
// that may go stale.
func (r *DFSResult) Reached(start string) []string {
	out := make([]string, 0, len(r.Visited))
	for id := range r.Visited {
		if id != start {
			out = append(out, id)
		}
	}

	return sortedCopy(out)
}
