// SPDX-License-Identifier: MIT

package controller

import (
	"fmt"
	"math"

	"github.com/katalvlaran/bassgraph/core"
	"github.com/katalvlaran/bassgraph/units"
)

// Param adapts one quantity for display and editing.
type Param struct {
	q *core.Quantity
}

// Quantity returns the underlying quantity.
func (p *Param) Quantity() *core.Quantity { return p.q }

// Name returns the quantity name.
func (p *Param) Name() string { return p.q.Name() }

// Label returns the display label, "Name:".
func (p *Param) Label() string { return p.q.Name() + ":" }

// Group returns the display group of the quantity.
func (p *Param) Group() string { return p.q.Group() }

// Value returns the magnitude in the display unit.
func (p *Param) Value() float64 { return p.q.Magnitude() }

// ValueIn returns the magnitude in unit expr.
func (p *Param) ValueIn(expr string) (float64, error) { return p.q.MagnitudeIn(expr) }

// Units returns the display unit text, "" for dimensionless values.
func (p *Param) Units() string { return p.q.Unit().String() }

// BaseUnits returns the canonical SI unit of the value, e.g. "kg/m^3".
func (p *Param) BaseUnits() string { return p.q.Value().Dimension().String() }

// Min returns the lower bound in the display unit, 0 when unset.
func (p *Param) Min() float64 { return p.bound(p.q.Min()) }

// Max returns the upper bound in the display unit, 0 when unset.
func (p *Param) Max() float64 { return p.bound(p.q.Max()) }

func (p *Param) bound(v units.Value, ok bool) float64 {
	if !ok {
		return 0
	}
	if v.Unit().String() == p.q.Unit().String() {
		return v.Magnitude()
	}
	conv, err := v.Convert(p.q.Unit())
	if err != nil {
		return v.Magnitude()
	}

	return conv.Magnitude()
}

// HasRange reports whether both bounds are set.
func (p *Param) HasRange() bool { return p.q.HasRange() }

// Resolution returns a slider step in the display unit: the power of ten
// one hundredth the size of the range, rounded down. Without a usable
// range it is 1.
func (p *Param) Resolution() float64 {
	span := p.Max() - p.Min()
	if !p.HasRange() || span <= 0 || math.IsInf(span, 0) || math.IsNaN(span) {
		return 1
	}

	// Nudge exact powers of ten past Log10 rounding.
	return math.Pow(10, math.Floor(math.Log10(span)+1e-9)-2)
}

// Precision returns the display precision in significant digits.
func (p *Param) Precision() int { return p.q.Precision() }

// Valid reports whether the value is up to date.
func (p *Param) Valid() bool { return p.q.IsValid() }

// State returns the validity state.
func (p *Param) State() core.State { return p.q.State() }

// InRange reports whether the value lies within the set bounds. A bound of
// another dimension counts as out of range.
func (p *Param) InRange() bool {
	ok, err := p.q.InRange()

	return err == nil && ok
}

// Percent returns the slider position 0..100 within [min,max].
func (p *Param) Percent() (float64, error) { return p.q.Percent() }

// Display renders the value at its precision with its unit.
func (p *Param) Display() string { return p.q.Value().Format(p.q.Precision()) }

// String renders "Name: value unit".
func (p *Param) String() string {
	return fmt.Sprintf("%s %s", p.Label(), p.Display())
}

// Group is a titled, ordered list of parameters.
type Group struct {
	Title  string
	Params []*Param
}
