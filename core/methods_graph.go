// SPDX-License-Identifier: MIT
// Package core: Graph construction, formula wiring and external edits.
//
// Edges are stored twice, child.parents and parent.children, and every
// mutation here updates both sides. Registration order is preserved so that
// UpdateAll and the cascades are reproducible.

package core

import (
	"errors"
	"fmt"
	"sort"

	"github.com/katalvlaran/bassgraph/units"
)

// Declare registers a quantity with an initial value. The quantity starts
// Uninitialized and formula-less (a leaf).
// Returns ErrEmptyName, ErrDuplicateQuantity, or an option's error.
// Complexity: O(1) amortized.
func (g *Graph) Declare(name string, initial units.Value, opts ...QuantityOption) (*Quantity, error) {
	if name == "" {
		return nil, ErrEmptyName
	}
	if _, exists := g.quantities[name]; exists {
		return nil, fmt.Errorf("%w: %q", ErrDuplicateQuantity, name)
	}
	q := &Quantity{
		graph:     g,
		name:      name,
		value:     initial,
		precision: defaultPrecision,
	}
	// Options see the initial value, so bounds are checked against it.
	for _, opt := range opts {
		if err := opt(q); err != nil {
			return nil, err
		}
	}
	g.quantities[name] = q
	g.order = append(g.order, q)

	return q, nil
}

// Leaf is Declare for a quantity that will never get a formula.
func (g *Graph) Leaf(name string, initial units.Value, opts ...QuantityOption) (*Quantity, error) {
	return g.Declare(name, initial, opts...)
}

// DeclareString declares a quantity from literals ("1.1839 kg / m**3").
// min and max may be "" to leave a bound unset.
func (g *Graph) DeclareString(name, initial, min, max string, opts ...QuantityOption) (*Quantity, error) {
	v, err := units.Parse(initial)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrMalformedValue, name, err)
	}
	// Range first so caller options can still override it.
	all := append([]QuantityOption{WithRange(min, max)}, opts...)

	return g.Declare(name, v, all...)
}

// SetFormula makes target a derived quantity computed by fn from deps, in
// that order. Existing edges of target are replaced on both sides. A nil fn
// turns target back into a leaf.
//
// Every name is resolved before anything changes, so on error the graph is
// left untouched. Self-references and cycles are accepted.
// Returns ErrQuantityNotFound for target, *UnknownDependencyError for deps.
// Complexity: O(deg(target) * deg(child)) for unlinking + O(len(deps)).
func (g *Graph) SetFormula(target string, deps []string, fn Formula) error {
	q, ok := g.quantities[target]
	if !ok {
		return fmt.Errorf("%w: %q", ErrQuantityNotFound, target)
	}
	inputs := make([]*Quantity, 0, len(deps))
	for _, name := range deps {
		c, ok := g.quantities[name]
		if !ok {
			return &UnknownDependencyError{Name: name, Declarer: target}
		}
		inputs = append(inputs, c)
	}
	if fn == nil {
		inputs = nil
	}

	// Unlink old children symmetrically.
	for _, c := range q.children {
		c.parents = removeQuantity(c.parents, q)
	}
	q.children = nil

	// Link distinct new children in declared order.
	seen := make(map[*Quantity]struct{}, len(inputs))
	for _, c := range inputs {
		if _, dup := seen[c]; dup {
			continue
		}
		seen[c] = struct{}{}
		q.children = append(q.children, c)
		c.parents = append(c.parents, q)
	}
	q.inputs = inputs
	q.formula = fn

	// A previously consistent value no longer matches the new formula.
	if q.state == Valid {
		q.invalidate(nil, nil, g.inputInvalidation)
	}

	return nil
}

// removeQuantity deletes x from qs preserving order.
func removeQuantity(qs []*Quantity, x *Quantity) []*Quantity {
	out := qs[:0]
	for _, q := range qs {
		if q != x {
			out = append(out, q)
		}
	}

	return out
}

// Quantity returns the named quantity or ErrQuantityNotFound.
func (g *Graph) Quantity(name string) (*Quantity, error) {
	q, ok := g.quantities[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrQuantityNotFound, name)
	}

	return q, nil
}

// Lookup returns the named quantity and whether it exists.
func (g *Graph) Lookup(name string) (*Quantity, bool) {
	q, ok := g.quantities[name]

	return q, ok
}

// Has reports whether name is declared.
func (g *Graph) Has(name string) bool {
	_, ok := g.quantities[name]

	return ok
}

// Quantities returns every quantity in declaration order.
func (g *Graph) Quantities() []*Quantity {
	out := make([]*Quantity, len(g.order))
	copy(out, g.order)

	return out
}

// Len returns the number of declared quantities.
func (g *Graph) Len() int { return len(g.order) }

// Vertices returns every quantity name sorted ascending.
func (g *Graph) Vertices() []string {
	names := make([]string, 0, len(g.order))
	for _, q := range g.order {
		names = append(names, q.name)
	}
	sort.Strings(names)

	return names
}

// Successors returns the sorted names of the dependents of name, i.e. the
// edges run input → dependent. This is the evaluation direction used by
// the dfs package.
func (g *Graph) Successors(name string) ([]string, error) {
	q, ok := g.quantities[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrQuantityNotFound, name)
	}
	out := make([]string, len(q.parents))
	for i, p := range q.parents {
		out[i] = p.name
	}
	sort.Strings(out)

	return out, nil
}

// OnChange registers the global handler called after every Edit. Only one
// handler may be registered.
func (g *Graph) OnChange(fn func(q *Quantity, magnitude float64)) error {
	if g.onChange != nil {
		return ErrHandlerRegistered
	}
	g.onChange = fn

	return nil
}

// Edit applies an external edit: magnitude in unit becomes the new value of
// name through SetQuantity, then the change handler runs.
func (g *Graph) Edit(name string, magnitude float64, unit string) error {
	u, err := units.ParseUnit(unit)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrMalformedValue, name, err)
	}

	return g.EditValue(name, units.New(magnitude, u))
}

// EditValue is Edit with an already-parsed value.
func (g *Graph) EditValue(name string, v units.Value) error {
	q, err := g.Quantity(name)
	if err != nil {
		return err
	}
	q.SetQuantity(v)
	g.logger.Debug("quantity edited", "name", name, "value", v.String())
	if g.onChange != nil {
		g.onChange(q, v.Magnitude())
	}

	return nil
}

// UpdateAll runs Update on every quantity in declaration order. Failures are
// logged and joined; the pass continues past them.
func (g *Graph) UpdateAll() error {
	var errs []error
	for _, q := range g.order {
		if err := q.Update(); err != nil {
			g.logger.Warn("recompute failed", "name", q.name, "err", err)
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}
