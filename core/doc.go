// SPDX-License-Identifier: MIT
// Package core provides the reactive parameter dependency graph: named
// physical quantities, some independent (leaves) and some derived through
// formulas over other quantities, kept consistent under live edits.
//
// The Graph G = (Q, D) owns every Quantity and the dependency edges D:
//
//   - A derived quantity declares its inputs explicitly (SetFormula);
//     those inputs are its children, and it is a parent of each of them.
//     "Parent" and "child" follow dependency direction, not a tree:
//     child = input, parent = dependent.
//   - parents/children are kept symmetric on every (re)registration.
//   - Cycles are legal. Every traversal is bounded by the Invalid state.
//
// State machine per quantity:
//
//	Uninitialized ──Update/SetQuantity──▶ Valid ◀──Update──┐
//	                                        │               │
//	                                        └──invalidate──▶ Invalid
//
// Core Methods:
//
//	// Construction
//	NewGraph(opts ...GraphOption) *Graph
//	Declare(name, initial, opts...) (*Quantity, error)     // ErrDuplicateQuantity
//	DeclareString(name, initial, min, max, opts...)        // pint-style literals
//	SetFormula(target, deps, fn) error                     // ErrUnknownDependency
//
//	// Writes
//	q.SetTo(v)              replace value only
//	q.SetValue(mag, unit)   parse + SetTo (ErrMalformedValue)
//	q.SetQuantity(v)        SetTo, mark Valid, invalidate parents
//	q.Set(mag,min,max,unit) bulk value+bounds, no invalidation
//	g.Edit(name, mag, unit) external edit; fires the OnChange handler
//
//	// Invalidation & recompute
//	q.Invalidate()          mark stale, propagate (cycle-safe)
//	q.Update()              recompute from children's current values
//	q.Refresh()             refresh stale inputs first, then Update
//	q.UpdateParents()       cascade: recompute each parent directly
//
//	// Queries
//	g.Invalid()             every Invalid quantity, sorted by name
//	g.Vertices(), g.Successors(name)   dfs adapter (child → parent edges)
//	g.Stats()               counts and traversal counters
//
// Propagation policy:
//
// Invalidation always travels to parents (dependents of a changed value go
// stale). Travelling to children as well (the sibling inputs of a dependent)
// is off by default and enabled with WithInputInvalidation(true).
// UpdateParents always marks the refreshed parent's other inputs stale.
//
// Concurrency:
//
// A Graph is not safe for concurrent use. Every operation runs to completion
// synchronously; confine a Graph to one goroutine (a UI event loop).
//
// Errors:
//
//	ErrEmptyName          - quantity name is "".
//	ErrDuplicateQuantity  - a name is declared twice.
//	ErrQuantityNotFound   - lookup of an undeclared name.
//	ErrUnknownDependency  - formula input not declared (see UnknownDependencyError).
//	ErrMalformedValue     - unparsable value or unit text, or mismatched bounds.
//	ErrFormula            - formula evaluation failed.
//	ErrHandlerRegistered  - OnChange called twice.
//	ErrNoRange            - Percent/SetPercent without both bounds.
package core
