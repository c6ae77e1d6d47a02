// SPDX-License-Identifier: MIT
// File: view.go
// Role: Read-only graph summaries (Stats).
// Determinism:
//   - Counts only; no ordering concerns.
// AI-HINT (file):
//   - Stats never mutates the graph; traversal counters are cumulative since NewGraph.
//   - InvalidationVisits only grows on a Valid/Uninitialized → Invalid transition;
//     InvalidationCalls includes guarded no-op entries.

package core

// GraphStats is a snapshot of graph shape and traversal counters.
type GraphStats struct {
	Quantities int // declared quantities
	Leaves     int // quantities without a formula
	Derived    int // quantities with a formula
	Edges      int // distinct input → dependent links

	Uninitialized int
	Valid         int
	Invalid       int

	InvalidationCalls  uint64 // invalidate entries, including guarded no-ops
	InvalidationVisits uint64 // transitions to Invalid
	Recomputes         uint64 // formula evaluations through Update/UpdateParents
	RecomputeErrors    uint64
	Cascades           uint64 // parents refreshed by UpdateParents

	InputInvalidation bool // policy flag from WithInputInvalidation
}

// Stats produces a read-only snapshot of shape, state tallies and the
// cumulative traversal counters.
//
// Returns:
//   - *GraphStats: immutable-by-convention summary.
//
// Complexity:
//   - Time O(V), Space O(1) plus the returned struct.
//
// AI-Hints:
//   - Diff two snapshots around an operation to probe how many quantities it visited.
func (g *Graph) Stats() *GraphStats {
	stats := GraphStats{
		Quantities:         len(g.order),
		InvalidationCalls:  g.stats.invalidateCalls,
		InvalidationVisits: g.stats.invalidateVisits,
		Recomputes:         g.stats.recomputes,
		RecomputeErrors:    g.stats.recomputeErrors,
		Cascades:           g.stats.cascades,
		InputInvalidation:  g.inputInvalidation,
	}
	for _, q := range g.order {
		if q.formula == nil {
			stats.Leaves++
		} else {
			stats.Derived++
		}
		stats.Edges += len(q.children) // one per distinct input
		switch q.state {
		case Uninitialized:
			stats.Uninitialized++
		case Valid:
			stats.Valid++
		case Invalid:
			stats.Invalid++
		}
	}

	return &stats
}
