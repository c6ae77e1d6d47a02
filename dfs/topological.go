// SPDX-License-Identifier: MIT
// Package dfs: topological ordering of dependency graphs.
//
// TopologicalSort returns an order where every vertex precedes its
// successors, or ErrCycleDetected. EvaluationOrder is the lenient variant
// for graphs where cycles are legal: back edges are ignored, so the result
// is topological for the acyclic part and each cycle is entered at the
// member DFS reaches first.
//
// Complexity:
//
//   - Time:   O(V + E log d)
//   - Memory: O(V)
package dfs

import (
	"context"
	"fmt"
)

// TopoOption configures TopologicalSort and EvaluationOrder.
type TopoOption func(*topoOptions)

type topoOptions struct {
	ctx context.Context
}

func defaultTopoOptions() topoOptions {
	return topoOptions{ctx: context.Background()}
}

// WithCancelContext sets the cancellation context. nil is ignored.
func WithCancelContext(ctx context.Context) TopoOption {
	return func(o *topoOptions) {
		if ctx != nil {
			o.ctx = ctx
		}
	}
}

// topoSorter carries the state of one ordering run.
type topoSorter struct {
	graph   Graph
	opts    topoOptions
	lenient bool // ignore back edges instead of failing
	state   map[string]int
	order   []string
	cyclic  bool
}

// TopologicalSort orders every vertex of g before its successors.
// Returns ErrGraphNil, ErrCycleDetected (wrapped with the vertex that closed
// the cycle), ErrNeighborFetch or the context error.
func TopologicalSort(g Graph, options ...TopoOption) ([]string, error) {
	order, _, err := sortTopo(g, false, options)

	return order, err
}

// EvaluationOrder is TopologicalSort that tolerates cycles. cyclic reports
// whether any back edge was skipped.
func EvaluationOrder(g Graph, options ...TopoOption) (order []string, cyclic bool, err error) {
	return sortTopo(g, true, options)
}

func sortTopo(g Graph, lenient bool, options []TopoOption) ([]string, bool, error) {
	if g == nil {
		return nil, false, ErrGraphNil
	}
	opts := defaultTopoOptions()
	for _, opt := range options {
		opt(&opts)
	}
	verts := sortedCopy(g.Vertices())
	t := &topoSorter{
		graph:   g,
		opts:    opts,
		lenient: lenient,
		state:   make(map[string]int, len(verts)),
		order:   make([]string, 0, len(verts)),
	}
	// Roots in reverse so the reversed post-order keeps ties ascending.
	for i := len(verts) - 1; i >= 0; i-- {
		if t.state[verts[i]] != White {
			continue
		}
		if err := t.visit(verts[i]); err != nil {
			return nil, false, err
		}
	}
	for i, j := 0, len(t.order)-1; i < j; i, j = i+1, j-1 {
		t.order[i], t.order[j] = t.order[j], t.order[i]
	}

	return t.order, t.cyclic, nil
}

func (t *topoSorter) visit(id string) error {
	select {
	case <-t.opts.ctx.Done():
		return t.opts.ctx.Err()
	default:
	}
	switch t.state[id] {
	case Gray:
		t.cyclic = true
		if t.lenient {
			return nil
		}
		return fmt.Errorf("%w: at %q", ErrCycleDetected, id)
	case Black:
		return nil
	}
	t.state[id] = Gray

	succ, err := t.graph.Successors(id)
	if err != nil {
		return fmt.Errorf("%w: %q: %w", ErrNeighborFetch, id, err)
	}
	succ = sortedCopy(succ)
	// Reverse for the same tie-breaking reason as the roots.
	for i := len(succ) - 1; i >= 0; i-- {
		if err = t.visit(succ[i]); err != nil {
			return err
		}
	}

	t.state[id] = Black
	t.order = append(t.order, id)

	return nil
}
