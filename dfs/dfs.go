// SPDX-License-Identifier: MIT
// Package dfs: depth-first traversal over a Graph.
//
// DFS(g, startID, opts...) walks successors from startID (or every vertex
// with WithFullTraversal) in sorted order, so results are deterministic.
//
// Complexity:
//
//   - Time:   O(V + E log d) (successor lists are sorted per vertex)
//   - Memory: O(V) for recursion stack and result maps.
package dfs

import (
	"fmt"
)

// dfsWalker carries traversal state.
type dfsWalker struct {
	graph Graph
	opts  DFSOptions
	res   *DFSResult
}

// DFS performs a depth-first search on g.
// Returns ErrGraphNil, ErrStartVertexNotFound, a context error, or a wrapped
// hook or successor error. On error the partial result is returned with an
// empty Order.
func DFS(g Graph, startID string, opts ...Option) (*DFSResult, error) {
	if g == nil {
		return nil, ErrGraphNil
	}
	dopts := DefaultOptions()
	for _, fn := range opts {
		fn(&dopts)
	}

	vertices := sortedCopy(g.Vertices())
	if !dopts.FullTraversal && IndexOf(vertices, startID) < 0 {
		return nil, fmt.Errorf("%w: %q", ErrStartVertexNotFound, startID)
	}

	res := &DFSResult{
		Order:   make([]string, 0, len(vertices)),
		Depth:   make(map[string]int, len(vertices)),
		Parent:  make(map[string]string, len(vertices)),
		Visited: make(map[string]bool, len(vertices)),
	}
	w := &dfsWalker{graph: g, opts: dopts, res: res}

	roots := []string{startID}
	if dopts.FullTraversal {
		roots = vertices
	}
	for _, v := range roots {
		if res.Visited[v] {
			continue
		}
		if err := w.traverse(v, 0); err != nil {
			res.Order = nil
			return res, err
		}
	}

	return res, nil
}

// traverse visits id at depth and recurses into unvisited successors.
func (w *dfsWalker) traverse(id string, depth int) error {
	select {
	case <-w.opts.Ctx.Done():
		return w.opts.Ctx.Err()
	default:
	}
	if w.opts.MaxDepth >= 0 && depth > w.opts.MaxDepth {
		return nil
	}

	w.res.Visited[id] = true
	w.res.Depth[id] = depth

	if w.opts.OnVisit != nil {
		if err := w.opts.OnVisit(id); err != nil {
			return fmt.Errorf("dfs: OnVisit hook for %q: %w", id, err)
		}
	}

	succ, err := w.graph.Successors(id)
	if err != nil {
		return fmt.Errorf("%w: %q: %w", ErrNeighborFetch, id, err)
	}
	for _, nid := range sortedCopy(succ) {
		if w.res.Visited[nid] {
			continue // includes self-loops
		}
		w.res.Parent[nid] = id
		if err = w.traverse(nid, depth+1); err != nil {
			return err
		}
	}
	w.res.Order = append(w.res.Order, id)

	return nil
}
