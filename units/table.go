// SPDX-License-Identifier: MIT

package units

import "math"

// dim builds a Dimension from (kg, m, s, A) exponents, the only bases the
// named units below need besides K, mol and cd.
func dim(kg, m, s, a int8) Dimension {
	var d Dimension
	d[Mass], d[Length], d[Time], d[Current] = kg, m, s, a

	return d
}

var (
	dimLength      = dim(0, 1, 0, 0)
	dimMass        = dim(1, 0, 0, 0)
	dimTime        = dim(0, 0, 1, 0)
	dimFrequency   = dim(0, 0, -1, 0)
	dimCurrent     = dim(0, 0, 0, 1)
	dimForce       = dim(1, 1, -2, 0)
	dimPressure    = dim(1, -1, -2, 0)
	dimEnergy      = dim(1, 2, -2, 0)
	dimPower       = dim(1, 2, -3, 0)
	dimVoltage     = dim(1, 2, -3, -1)
	dimResistance  = dim(1, 2, -3, -2)
	dimFluxDensity = dim(1, 0, -2, -1)
	dimInductance  = dim(1, 2, -2, -2)
	dimCapacitance = dim(-1, -2, 4, 2)
	dimCharge      = dim(0, 0, 1, 1)
	dimVolume      = dim(0, 3, 0, 0)
)

// namedUnit is one entry of the unit table.
type namedUnit struct {
	factor float64
	dim    Dimension
}

// unitTable maps every accepted unit name to its SI factor and dimension.
// Prefixed forms are listed explicitly; there is no prefix parser, which
// keeps "cd", "Pa" and "mol" unambiguous.
var unitTable = map[string]namedUnit{
	"dimensionless": {1, Dimension{}},
	"rad":           {1, Dimension{}},
	"radian":        {1, Dimension{}},
	"deg":           {math.Pi / 180, Dimension{}},
	"degree":        {math.Pi / 180, Dimension{}},
	"percent":       {0.01, Dimension{}},

	"m":      {1, dimLength},
	"meter":  {1, dimLength},
	"meters": {1, dimLength},
	"metre":  {1, dimLength},
	"km":     {1e3, dimLength},
	"cm":     {1e-2, dimLength},
	"mm":     {1e-3, dimLength},
	"um":     {1e-6, dimLength},
	"µm":     {1e-6, dimLength},
	"in":     {0.0254, dimLength},
	"inch":   {0.0254, dimLength},

	"kg":       {1, dimMass},
	"kilogram": {1, dimMass},
	"g":        {1e-3, dimMass},
	"gram":     {1e-3, dimMass},
	"grams":    {1e-3, dimMass},
	"mg":       {1e-6, dimMass},

	"s":       {1, dimTime},
	"sec":     {1, dimTime},
	"second":  {1, dimTime},
	"seconds": {1, dimTime},
	"ms":      {1e-3, dimTime},
	"us":      {1e-6, dimTime},
	"µs":      {1e-6, dimTime},

	"Hz":    {1, dimFrequency},
	"hertz": {1, dimFrequency},
	"kHz":   {1e3, dimFrequency},

	"A":       {1, dimCurrent},
	"ampere":  {1, dimCurrent},
	"mA":      {1e-3, dimCurrent},
	"K":       {1, Dimension{Temperature: 1}},
	"kelvin":  {1, Dimension{Temperature: 1}},
	"mol":     {1, Dimension{Amount: 1}},
	"cd":      {1, Dimension{Luminosity: 1}},
	"candela": {1, Dimension{Luminosity: 1}},

	"N":       {1, dimForce},
	"newton":  {1, dimForce},
	"Pa":      {1, dimPressure},
	"pascal":  {1, dimPressure},
	"J":       {1, dimEnergy},
	"joule":   {1, dimEnergy},
	"W":       {1, dimPower},
	"watt":    {1, dimPower},
	"V":       {1, dimVoltage},
	"volt":    {1, dimVoltage},
	"ohm":     {1, dimResistance},
	"ohms":    {1, dimResistance},
	"Ω":       {1, dimResistance},
	"T":       {1, dimFluxDensity},
	"tesla":   {1, dimFluxDensity},
	"H":       {1, dimInductance},
	"henry":   {1, dimInductance},
	"mH":      {1e-3, dimInductance},
	"F":       {1, dimCapacitance},
	"farad":   {1, dimCapacitance},
	"uF":      {1e-6, dimCapacitance},
	"C":       {1, dimCharge},
	"coulomb": {1, dimCharge},

	"L":      {1e-3, dimVolume},
	"l":      {1e-3, dimVolume},
	"liter":  {1e-3, dimVolume},
	"liters": {1e-3, dimVolume},
	"litre":  {1e-3, dimVolume},
	"ml":     {1e-6, dimVolume},
	"mL":     {1e-6, dimVolume},
}

// Known reports whether name is an accepted unit symbol.
func Known(name string) bool {
	_, ok := unitTable[name]

	return ok
}
