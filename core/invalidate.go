// SPDX-License-Identifier: MIT
// Package core: invalidation propagation.
//
// invalidate walks the dependency graph marking quantities Invalid. The
// already-Invalid guard bounds each wave: a quantity changes state at most
// once per wave, so cycles terminate.

package core

import "sort"

// Invalidate marks q stale and propagates to its dependents (and, with
// WithInputInvalidation, to its other inputs). Repeated calls are no-ops
// until q becomes Valid again.
func (q *Quantity) Invalidate() {
	q.invalidate(nil, nil, q.graph.inputInvalidation)
}

// invalidate marks q Invalid and recurses.
//
//	changedParent: the dependent that triggered this call; not revisited.
//	triggerChild:  the input that triggered this call; not revisited.
//	inputs:        whether to also walk q's children.
func (q *Quantity) invalidate(changedParent, triggerChild *Quantity, inputs bool) {
	g := q.graph
	g.stats.invalidateCalls++
	if q.state == Invalid {
		return // wave already passed here
	}
	q.state = Invalid
	g.countInvalidation()

	for _, p := range q.parents {
		if p == changedParent {
			continue
		}
		p.invalidate(nil, q, g.inputInvalidation)
	}
	if !inputs {
		return
	}
	for _, c := range q.children {
		if c == triggerChild {
			continue
		}
		c.invalidate(q, nil, g.inputInvalidation)
	}
}

// Invalid returns every Invalid quantity sorted by name.
func (g *Graph) Invalid() []*Quantity {
	var out []*Quantity
	for _, q := range g.order {
		if q.state == Invalid {
			out = append(out, q)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].name < out[j].name })

	return out
}
