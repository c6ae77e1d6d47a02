// SPDX-License-Identifier: MIT
// Package bfs implements breadth-first search over a directed graph
// exposing
//
//	Vertices() []string
//	Successors(id string) ([]string, error)
//
// On a parameter graph (*core.Graph, edges input → dependent) it answers
// "how far downstream": BFSResult.Depth is the number of formulas between
// an edited quantity and each dependent, Layers groups the dependents by
// that distance, and PathTo names one shortest chain of formulas through
// which an edit propagates.
//
// Options
//
//   - WithContext(ctx):        cancellation, checked once per dequeue.
//   - WithMaxDepth(d):         stop beyond depth d (>0); 0 means no limit.
//   - WithFilterNeighbor(fn):  skip edges for which fn(curr, nbr) is false.
//   - WithOnVisit(fn):         hook on visit; an error aborts the search.
//
// Errors
//
//   - ErrGraphNil, ErrStartVertexNotFound, ErrOptionViolation
//   - ErrNeighbors if Successors fails
//   - ErrNoPath from PathTo
//
// Determinism
//
//	Successor lists are sorted before they are queued, so Order, Parent
//	and Layers are reproducible for any Graph implementation.
//
// Complexity: Time O(V + E log d), Memory O(V).
package bfs
