// SPDX-License-Identifier: MIT
// Package units implements dimensioned physical values for the parameter
// graph: a magnitude, an SI dimension and a display unit.
//
// What:
//
//   - Dimension: integer exponents over the seven SI base units
//     (m, kg, s, A, K, mol, cd).
//   - Unit: a parsed unit expression ("kg / m**3", "N*s/m", "tesla meter")
//     carrying its factor to SI and its dimension.
//   - Value: an SI magnitude tagged with a display Unit. Values are immutable;
//     every operation returns a new Value.
//
// Arithmetic:
//
//	Add, Sub     same dimension only (ErrDimensionMismatch otherwise);
//	             the result keeps the left operand's unit.
//	Mul, Div     dimensions combine; the result carries the canonical SI unit.
//	Pow, Sqrt    resulting exponents must be integral (ErrFractionalPower).
//	Scale        multiply by a dimensionless float, unit unchanged.
//	Cmp          three-way comparison within one dimension.
//
// Parsing:
//
//	Parse("1.1839 kg / m**3")   leading magnitude, then a unit expression
//	ParseUnit("m**5 / N")       unit expression only
//
// Unit expressions accept '*', '/', whitespace as multiplication,
// parentheses, and integer or decimal exponents written as '**' or '^'.
// An empty expression or "dimensionless" is dimensionless.
//
// Errors:
//
//	ErrMalformedUnit      - unknown unit name or syntax error.
//	ErrDimensionMismatch  - operands or conversion target differ in dimension.
//	ErrFractionalPower    - Pow would leave a non-integral exponent.
package units
