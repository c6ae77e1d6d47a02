// SPDX-License-Identifier: MIT

package units

import (
	"fmt"
	"math"
	"strconv"
)

// Value is an immutable dimensioned quantity: a magnitude in its display
// unit. The magnitude is stored as given, so values read back exactly in the
// unit they were written in. The zero Value is dimensionless zero.
type Value struct {
	mag  float64
	unit Unit
}

// New returns magnitude expressed in unit u.
func New(magnitude float64, u Unit) Value {
	return Value{mag: magnitude, unit: u}
}

// Scalar returns a dimensionless Value.
func Scalar(x float64) Value {
	return Value{mag: x, unit: Dimensionless}
}

// FromSI returns an SI magnitude of dimension d in its canonical SI unit.
func FromSI(si float64, d Dimension) Value {
	return Value{mag: si, unit: SI(d)}
}

// Magnitude returns the value expressed in its own display unit.
func (v Value) Magnitude() float64 { return v.mag }

// SI returns the magnitude in SI base units.
func (v Value) SI() float64 { return v.mag * v.unit.Factor() }

// Unit returns the display unit.
func (v Value) Unit() Unit { return v.unit }

// Dimension returns the value's dimension.
func (v Value) Dimension() Dimension { return v.unit.dim }

// IsDimensionless reports whether v carries no dimension.
func (v Value) IsDimensionless() bool { return v.unit.dim.IsDimensionless() }

// Convert re-expresses v in unit u. The dimensions must match.
func (v Value) Convert(u Unit) (Value, error) {
	if u.dim != v.unit.dim {
		return Value{}, fmt.Errorf("%w: cannot convert %q to %q", ErrDimensionMismatch, v.unit.dim, u.dim)
	}

	return Value{mag: v.SI() / u.Factor(), unit: u}, nil
}

// In re-expresses v in the unit described by expr.
func (v Value) In(expr string) (Value, error) {
	u, err := ParseUnit(expr)
	if err != nil {
		return Value{}, err
	}

	return v.Convert(u)
}

// ToBase re-expresses v in canonical SI units.
func (v Value) ToBase() Value {
	return FromSI(v.SI(), v.unit.dim)
}

// Add returns v+o in v's unit.
func (v Value) Add(o Value) (Value, error) {
	if v.unit.dim != o.unit.dim {
		return Value{}, fmt.Errorf("%w: %q + %q", ErrDimensionMismatch, v.unit.dim, o.unit.dim)
	}

	return Value{mag: v.mag + o.SI()/v.unit.Factor(), unit: v.unit}, nil
}

// Sub returns v-o in v's unit.
func (v Value) Sub(o Value) (Value, error) {
	if v.unit.dim != o.unit.dim {
		return Value{}, fmt.Errorf("%w: %q - %q", ErrDimensionMismatch, v.unit.dim, o.unit.dim)
	}

	return Value{mag: v.mag - o.SI()/v.unit.Factor(), unit: v.unit}, nil
}

// Mul returns v*o in canonical SI units.
func (v Value) Mul(o Value) Value {
	return FromSI(v.SI()*o.SI(), v.unit.dim.mul(o.unit.dim))
}

// Div returns v/o in canonical SI units.
func (v Value) Div(o Value) Value {
	return FromSI(v.SI()/o.SI(), v.unit.dim.div(o.unit.dim))
}

// Inv returns 1/v.
func (v Value) Inv() Value {
	return Scalar(1).Div(v)
}

// Scale multiplies v by a dimensionless factor, keeping its unit.
func (v Value) Scale(k float64) Value {
	return Value{mag: v.mag * k, unit: v.unit}
}

// Pow raises v to p. Dimensioned values require p to leave integral exponents.
func (v Value) Pow(p float64) (Value, error) {
	d, ok := v.unit.dim.scale(p)
	if !ok {
		return Value{}, fmt.Errorf("%w: (%s)^%g", ErrFractionalPower, v.unit.dim, p)
	}

	return FromSI(math.Pow(v.SI(), p), d), nil
}

// Sqrt returns the square root of v.
func (v Value) Sqrt() (Value, error) {
	return v.Pow(0.5)
}

// Cmp compares v and o: -1 if v<o, 0 if equal, +1 if v>o.
func (v Value) Cmp(o Value) (int, error) {
	if v.unit.dim != o.unit.dim {
		return 0, fmt.Errorf("%w: compare %q with %q", ErrDimensionMismatch, v.unit.dim, o.unit.dim)
	}
	a, b := v.SI(), o.SI()
	switch {
	case a < b:
		return -1, nil
	case a > b:
		return 1, nil
	default:
		return 0, nil
	}
}

// ApproxEqual reports whether v and o share a dimension and differ by at most
// rel times the larger magnitude.
func (v Value) ApproxEqual(o Value, rel float64) bool {
	if v.unit.dim != o.unit.dim {
		return false
	}
	a, b := v.SI(), o.SI()
	diff := math.Abs(a - b)
	scale := math.Max(math.Abs(a), math.Abs(b))

	return diff <= rel*scale
}

// Format renders the magnitude with prec significant digits followed by the
// unit, e.g. "1.18 kg / m**3". Dimensionless values print the number only.
func (v Value) Format(prec int) string {
	s := strconv.FormatFloat(v.Magnitude(), 'g', prec, 64)
	if v.unit.expr == "" {
		return s
	}

	return s + " " + v.unit.expr
}

// String implements fmt.Stringer with full precision.
func (v Value) String() string { return v.Format(-1) }
