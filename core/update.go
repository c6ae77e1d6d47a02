// SPDX-License-Identifier: MIT
// Package core: recomputation.
//
// Update evaluates one formula over the current input values and trusts the
// caller to have refreshed those inputs. Refresh does that refreshing
// itself, depth-first. UpdateParents is the eager cascade used after a UI
// edit: it recomputes the direct dependents of a quantity in place.

package core

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/bassgraph/units"
)

// evaluate runs the formula of q over the current input values. A leaf
// evaluates to its own value. A result with the same dimension as the
// current value is re-expressed in the current display unit.
func (q *Quantity) evaluate() (units.Value, error) {
	if q.formula == nil {
		return q.value, nil
	}
	in := make([]units.Value, len(q.inputs))
	for i, c := range q.inputs {
		in[i] = c.value
	}
	v, err := q.formula(in)
	if err != nil {
		return units.Value{}, fmt.Errorf("%w: %s: %w", ErrFormula, q.name, err)
	}
	if v.Dimension() == q.value.Dimension() {
		if conv, cerr := v.Convert(q.value.Unit()); cerr == nil {
			v = conv
		}
	} else {
		q.graph.logger.Debug("formula changed dimension",
			"name", q.name, "from", q.value.Dimension().String(), "to", v.Dimension().String())
	}

	return v, nil
}

// Update recomputes q from the current values of its inputs and applies the
// result with SetQuantity: q becomes Valid and its dependents Invalid.
// Inputs are not refreshed first (see Refresh). On a formula error the value
// and state are left unchanged and the error wraps ErrFormula.
func (q *Quantity) Update() error {
	v, err := q.evaluate()
	q.graph.countRecompute(err)
	if err != nil {
		return err
	}
	q.SetQuantity(v)

	return nil
}

// Refresh brings q up to date: every input that is not Valid is refreshed
// first, depth-first, then q is updated if it is not Valid. Quantities
// already being refreshed further up the stack are skipped, so a cycle is
// evaluated once around with whatever values its members hold; the last
// member updated may leave its dependents in the cycle Invalid.
func (q *Quantity) Refresh() error {
	return q.refresh(make(map[*Quantity]struct{}))
}

func (q *Quantity) refresh(active map[*Quantity]struct{}) error {
	if q.state == Valid {
		return nil
	}
	if _, busy := active[q]; busy {
		return nil
	}
	active[q] = struct{}{}
	defer delete(active, q)

	for _, c := range q.children {
		if err := c.refresh(active); err != nil {
			return err
		}
	}

	return q.Update()
}

// UpdateParents recomputes every dependent of q in place. For each parent:
// evaluate its formula, store the result, mark it Valid, notify its OnUpdate
// observers, then invalidate its downstream and its other inputs (q is
// excluded) and restore its Valid state. Errors are collected and the
// cascade continues with the next parent.
//
// q ends in the state it entered with. With input invalidation on, the wave
// from a parent can reach q again through another dependent that q also
// feeds; q's own value is not affected by its dependents, so that mark is
// dropped. A parent may end Invalid when a later parent in the same cascade
// reads it.
func (q *Quantity) UpdateParents() error {
	entry := q.state
	defer func() { q.state = entry }()

	var errs []error
	for _, p := range q.parents {
		v, err := p.evaluate()
		q.graph.countRecompute(err)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		p.SetTo(v)
		p.state = Valid
		q.graph.countCascade()
		p.notify()
		p.invalidate(nil, q, true)
		p.state = Valid
	}

	return errors.Join(errs...)
}
