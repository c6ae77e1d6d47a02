// SPDX-License-Identifier: MIT

package units

import (
	"errors"
	"strconv"
	"strings"
)

// Sentinel errors for unit parsing and arithmetic.
var (
	// ErrMalformedUnit indicates an unparsable unit or value expression.
	ErrMalformedUnit = errors.New("units: malformed unit expression")

	// ErrDimensionMismatch indicates an operation between incompatible dimensions.
	ErrDimensionMismatch = errors.New("units: dimension mismatch")

	// ErrFractionalPower indicates an exponent that would leave a fractional dimension.
	ErrFractionalPower = errors.New("units: fractional power of dimensioned value")
)

// Base dimension indices.
const (
	Length = iota
	Mass
	Time
	Current
	Temperature
	Amount
	Luminosity
	numBase
)

// baseSymbols holds the SI symbol per base index, in canonical print order below.
var baseSymbols = [numBase]string{"m", "kg", "s", "A", "K", "mol", "cd"}

// printOrder is the order base symbols appear in canonical unit strings.
var printOrder = [numBase]int{Mass, Length, Time, Current, Temperature, Amount, Luminosity}

// Dimension is a vector of integer exponents over the SI base units.
type Dimension [numBase]int8

// IsDimensionless reports whether every exponent is zero.
func (d Dimension) IsDimensionless() bool {
	return d == Dimension{}
}

func (d Dimension) mul(o Dimension) Dimension {
	var r Dimension
	for i := range d {
		r[i] = d[i] + o[i]
	}

	return r
}

func (d Dimension) div(o Dimension) Dimension {
	var r Dimension
	for i := range d {
		r[i] = d[i] - o[i]
	}

	return r
}

// scale multiplies every exponent by p; ok is false when a result is not integral.
func (d Dimension) scale(p float64) (Dimension, bool) {
	var r Dimension
	for i := range d {
		x := float64(d[i]) * p
		if x > 127 || x < -128 {
			return Dimension{}, false
		}
		n := int8(x)
		if float64(n) != x {
			return Dimension{}, false
		}
		r[i] = n
	}

	return r, true
}

// String renders the dimension as a canonical SI unit expression such as
// "kg/m^3" or "m^4*s^2/kg". Negative exponents move to the denominator.
// A dimensionless Dimension renders as "".
func (d Dimension) String() string {
	var num, den []string
	for _, i := range printOrder {
		switch e := d[i]; {
		case e > 0:
			num = append(num, powString(baseSymbols[i], e))
		case e < 0:
			den = append(den, powString(baseSymbols[i], -e))
		}
	}
	if len(num) == 0 && len(den) == 0 {
		return ""
	}

	var b strings.Builder
	if len(num) == 0 {
		b.WriteString("1")
	} else {
		b.WriteString(strings.Join(num, "*"))
	}
	switch len(den) {
	case 0:
	case 1:
		b.WriteString("/")
		b.WriteString(den[0])
	default:
		b.WriteString("/(")
		b.WriteString(strings.Join(den, "*"))
		b.WriteString(")")
	}

	return b.String()
}

func powString(sym string, e int8) string {
	if e == 1 {
		return sym
	}

	return sym + "^" + strconv.Itoa(int(e))
}

// Unit is a parsed unit expression.
//
// Factor converts a magnitude expressed in this unit to SI:
// si = magnitude * Factor.
type Unit struct {
	expr   string
	factor float64
	dim    Dimension
}

// Dimensionless is the unit of pure numbers.
var Dimensionless = Unit{factor: 1}

// SI returns the canonical SI unit for dimension d (factor 1).
func SI(d Dimension) Unit {
	return Unit{expr: d.String(), factor: 1, dim: d}
}

// String returns the expression the unit was parsed from
// ("" for dimensionless).
func (u Unit) String() string { return u.expr }

// Factor returns the multiplier from this unit to SI.
func (u Unit) Factor() float64 {
	if u.factor == 0 {
		return 1 // zero Unit behaves as Dimensionless
	}

	return u.factor
}

// Dimension returns the unit's SI dimension.
func (u Unit) Dimension() Dimension { return u.dim }

// IsDimensionless reports whether the unit carries no dimension.
func (u Unit) IsDimensionless() bool { return u.dim.IsDimensionless() }

// Compatible reports whether u and o share a dimension.
func (u Unit) Compatible(o Unit) bool { return u.dim == o.dim }
