// SPDX-License-Identifier: MIT
// Package dfs implements depth-first traversal, cycle detection and
// topological ordering over any directed graph exposing
//
//	Vertices() []string
//	Successors(id string) ([]string, error)
//
// *core.Graph satisfies it with edges running input → dependent, so the
// algorithms answer the questions a parameter graph raises:
//
//   - DFS: which quantities can go stale after an edit (DFSResult.Reached).
//   - DetectCycles: which dependency loops exist (legal, but worth listing).
//   - TopologicalSort: a strict evaluation order for acyclic graphs.
//   - EvaluationOrder: the same order with back edges skipped, for graphs
//     where loops are allowed.
//
// Every algorithm sorts vertices and successor lists first, so output is
// deterministic regardless of the Graph implementation.
//
// Key Types & Constants:
//
//   - White, Gray, Black: visitation colours
//   - Option / DFSOptions: context, pre-order hook, depth limit, forest mode
//   - TopoOption: WithCancelContext
//   - DFSResult: post-order, Depth, Parent, Visited
//
// Complexity:
//
//   - DFS:             Time O(V + E log d), Memory O(V)
//   - DetectCycles:    Time O(V + E + C·L), Memory O(V + L_max)
//   - TopologicalSort: Time O(V + E log d), Memory O(V)
//
// Errors:
//
//   - ErrGraphNil             graph is nil
//   - ErrStartVertexNotFound  start vertex not in graph
//   - ErrCycleDetected        back edge during TopologicalSort
//   - ErrNeighborFetch        Successors failed
//   - context.Canceled        traversal cancelled
package dfs
