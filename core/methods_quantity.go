// SPDX-License-Identifier: MIT
// Package core: Quantity accessors and direct writes.
//
// Writes come in three strengths:
//
//	SetTo        value only; state and dependents untouched
//	SetQuantity  value, state=Valid, dependents invalidated
//	Set          value + bounds for bulk loading; nothing else
//
// Bounds are advisory: no write is rejected for leaving [min,max].

package core

import (
	"fmt"
	"sort"
	"strings"

	"github.com/katalvlaran/bassgraph/units"
)

// Name returns the unique name of q.
func (q *Quantity) Name() string { return q.name }

// Value returns the current value, whatever the state.
func (q *Quantity) Value() units.Value { return q.value }

// Magnitude returns the current value in its display unit.
func (q *Quantity) Magnitude() float64 { return q.value.Magnitude() }

// MagnitudeIn returns the current value expressed in unit expr.
func (q *Quantity) MagnitudeIn(expr string) (float64, error) {
	v, err := q.value.In(expr)
	if err != nil {
		return 0, err
	}

	return v.Magnitude(), nil
}

// Unit returns the display unit of the current value.
func (q *Quantity) Unit() units.Unit { return q.value.Unit() }

// State returns the validity state.
func (q *Quantity) State() State { return q.state }

// IsValid reports whether q is Valid.
func (q *Quantity) IsValid() bool { return q.state == Valid }

// IsLeaf reports whether q has no formula.
func (q *Quantity) IsLeaf() bool { return q.formula == nil }

// Precision returns the display precision in significant digits.
func (q *Quantity) Precision() int { return q.precision }

// SetPrecision changes the display precision. Values below 1 are ignored.
func (q *Quantity) SetPrecision(digits int) {
	if digits > 0 {
		q.precision = digits
	}
}

// Group returns the display group label, "" if none.
func (q *Quantity) Group() string { return q.group }

// Min returns the lower bound and whether it is set.
func (q *Quantity) Min() (units.Value, bool) {
	if q.min == nil {
		return units.Value{}, false
	}

	return *q.min, true
}

// Max returns the upper bound and whether it is set.
func (q *Quantity) Max() (units.Value, bool) {
	if q.max == nil {
		return units.Value{}, false
	}

	return *q.max, true
}

// HasRange reports whether both bounds are set.
func (q *Quantity) HasRange() bool { return q.min != nil && q.max != nil }

// SetTo replaces the value. State and dependents are untouched.
func (q *Quantity) SetTo(v units.Value) { q.value = v }

// SetValue parses unit and replaces the value with magnitude in that unit.
// On a malformed unit the previous value is kept.
func (q *Quantity) SetValue(magnitude float64, unit string) error {
	u, err := units.ParseUnit(unit)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrMalformedValue, q.name, err)
	}
	q.SetTo(units.New(magnitude, u))

	return nil
}

// SetQuantity replaces the value, marks q Valid and invalidates every
// dependent. It is the write used for user edits and recomputes.
func (q *Quantity) SetQuantity(v units.Value) {
	q.SetTo(v)
	q.state = Valid
	for _, p := range q.parents {
		p.invalidate(nil, q, q.graph.inputInvalidation)
	}
}

// SetQuantityString parses a literal such as "5 cm**2" and applies it with
// SetQuantity.
func (q *Quantity) SetQuantityString(s string) error {
	v, err := units.Parse(s)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrMalformedValue, q.name, err)
	}
	q.SetQuantity(v)

	return nil
}

// Set assigns value and bounds in one unit. Used by the bulk loader; no
// state change and no invalidation.
func (q *Quantity) Set(magnitude, min, max float64, unit string) error {
	u, err := units.ParseUnit(unit)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrMalformedValue, q.name, err)
	}
	lo, hi := units.New(min, u), units.New(max, u)
	q.value = units.New(magnitude, u)
	q.min, q.max = &lo, &hi

	return nil
}

// setBounds installs lo and hi (either may be nil). Bounds must share the
// value's dimension.
func (q *Quantity) setBounds(lo, hi *units.Value) error {
	for _, b := range []*units.Value{lo, hi} {
		if b != nil && b.Dimension() != q.value.Dimension() {
			return fmt.Errorf("%w: %s: bound %s is not %q", ErrMalformedValue, q.name, b, q.value.Dimension())
		}
	}
	q.min, q.max = lo, hi

	return nil
}

// InRange reports whether the value lies within the bounds that are set.
// An error means a bound and the value disagree in dimension.
func (q *Quantity) InRange() (bool, error) {
	if q.min != nil {
		c, err := q.value.Cmp(*q.min)
		if err != nil {
			return false, fmt.Errorf("%s: %w", q.name, err)
		}
		if c < 0 {
			return false, nil
		}
	}
	if q.max != nil {
		c, err := q.value.Cmp(*q.max)
		if err != nil {
			return false, fmt.Errorf("%s: %w", q.name, err)
		}
		if c > 0 {
			return false, nil
		}
	}

	return true, nil
}

// Percent maps the value onto [min,max] as 0..100. A zero-width range
// yields 0. Requires both bounds.
func (q *Quantity) Percent() (float64, error) {
	if !q.HasRange() {
		return 0, fmt.Errorf("%w: %s", ErrNoRange, q.name)
	}
	span := q.max.SI() - q.min.SI()
	if span == 0 {
		return 0, nil
	}

	return 100 * (q.value.SI() - q.min.SI()) / span, nil
}

// PercentValue returns min + p% of the range in the current display unit,
// without applying it.
func (q *Quantity) PercentValue(p float64) (units.Value, error) {
	if !q.HasRange() {
		return units.Value{}, fmt.Errorf("%w: %s", ErrNoRange, q.name)
	}
	si := q.min.SI() + p/100*(q.max.SI()-q.min.SI())
	v, err := units.FromSI(si, q.value.Dimension()).Convert(q.value.Unit())
	if err != nil {
		return units.Value{}, fmt.Errorf("%s: %w", q.name, err)
	}

	return v, nil
}

// SetPercent applies PercentValue(p) with SetQuantity.
func (q *Quantity) SetPercent(p float64) error {
	v, err := q.PercentValue(p)
	if err != nil {
		return err
	}
	q.SetQuantity(v)

	return nil
}

// Parents returns the dependents of q sorted by name.
func (q *Quantity) Parents() []*Quantity { return sortedByName(q.parents) }

// Children returns the distinct inputs of q sorted by name.
func (q *Quantity) Children() []*Quantity { return sortedByName(q.children) }

// Inputs returns the names of the formula inputs in declared order.
func (q *Quantity) Inputs() []string {
	names := make([]string, len(q.inputs))
	for i, in := range q.inputs {
		names[i] = in.name
	}

	return names
}

// OnUpdate registers fn to run whenever q is recomputed by a cascade from
// one of its inputs (UpdateParents).
func (q *Quantity) OnUpdate(fn func(*Quantity)) {
	if fn != nil {
		q.observers = append(q.observers, fn)
	}
}

func (q *Quantity) notify() {
	for _, fn := range q.observers {
		fn(q)
	}
}

// Debug returns a multi-line dump of the value and each input in SI base
// units, for diagnosing unit mismatches in formulas.
func (q *Quantity) Debug() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s = %s [%s]\n", q.name, q.value.ToBase(), q.state)
	for _, c := range q.inputs {
		fmt.Fprintf(&b, "  %s = %s\n", c.name, c.value.ToBase())
	}

	return b.String()
}

// String renders q as "Name: value (State)" at its display precision.
func (q *Quantity) String() string {
	return fmt.Sprintf("%s: %s (%s)", q.name, q.value.Format(q.precision), q.state)
}

// sortedByName returns a name-sorted copy of qs.
func sortedByName(qs []*Quantity) []*Quantity {
	out := make([]*Quantity, len(qs))
	copy(out, qs)
	sort.Slice(out, func(i, j int) bool { return out[i].name < out[j].name })

	return out
}
