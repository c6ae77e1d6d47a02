// SPDX-License-Identifier: MIT

package enclosure

import (
	"math"

	"github.com/katalvlaran/bassgraph/units"
)

var twoPi = units.Scalar(2 * math.Pi)

func square(v units.Value) units.Value { return v.Mul(v) }

// identity is x = in[0].
func identity(in []units.Value) (units.Value, error) { return in[0], nil }

// product is in[0]·in[1]·...
func product(in []units.Value) (units.Value, error) {
	out := units.Scalar(1)
	for _, v := range in {
		out = out.Mul(v)
	}

	return out, nil
}

// ratio is in[0]/in[1].
func ratio(in []units.Value) (units.Value, error) { return in[0].Div(in[1]), nil }

// perArea is in[0]/in[1]², mechanical to acoustic for masses and resistances.
func perArea(in []units.Value) (units.Value, error) {
	return in[0].Div(square(in[1])), nil
}

// timesArea is in[0]·in[1]², mechanical to acoustic for compliances.
func timesArea(in []units.Value) (units.Value, error) {
	return in[0].Mul(square(in[1])), nil
}

// airVolume is ρ0·c²·C: the volume of air with acoustic compliance C.
// Inputs: ρ0, c, C.
func airVolume(in []units.Value) (units.Value, error) {
	return in[0].Mul(square(in[1])).Mul(in[2]), nil
}

// movingMass adds the air load of both cone faces to the diaphragm mass:
// Mms = Mmd + 2·(8ρ0 / (3π²·√(Sd/π)))·Sd². Inputs: Mmd, ρ0, Sd.
func movingMass(in []units.Value) (units.Value, error) {
	mmd, rho, sd := in[0], in[1], in[2]
	radius, err := sd.Scale(1 / math.Pi).Sqrt()
	if err != nil {
		return units.Value{}, err
	}
	load := rho.Scale(16 / (3 * math.Pi * math.Pi)).Div(radius).Mul(square(sd))

	return mmd.Add(load)
}

// resonance is 1 / (2π·√(M·C)). Inputs: M, C.
func resonance(in []units.Value) (units.Value, error) {
	root, err := in[0].Mul(in[1]).Sqrt()
	if err != nil {
		return units.Value{}, err
	}

	return twoPi.Mul(root).Inv(), nil
}

// angular is 2π·F.
func angular(in []units.Value) (units.Value, error) { return twoPi.Mul(in[0]), nil }

// period is 1/ω.
func period(in []units.Value) (units.Value, error) { return in[0].Inv(), nil }

// mechanicalQ is 1 / (ω·C·R). Inputs: ω, C, R.
func mechanicalQ(in []units.Value) (units.Value, error) {
	return in[0].Mul(in[1]).Mul(in[2]).Inv(), nil
}

// electricalQ is ω·Re·Mas·Sd² / Bl². Inputs: ωs, Re, Mas, Sd, Bl.
func electricalQ(in []units.Value) (units.Value, error) {
	ws, re, mas, sd, bl := in[0], in[1], in[2], in[3], in[4]

	return ws.Mul(re).Mul(mas).Mul(square(sd)).Div(square(bl)), nil
}

// seriesQ is Qa·Qb / (Qa+Qb).
func seriesQ(in []units.Value) (units.Value, error) {
	sum, err := in[0].Add(in[1])
	if err != nil {
		return units.Value{}, err
	}

	return in[0].Mul(in[1]).Div(sum), nil
}

// boxTuning is the radiator-loaded box resonance
// Fb = √((1 + Cab/Cap) / (Cab·Map)) / 2π. Inputs: Cab, Cap, Map.
func boxTuning(in []units.Value) (units.Value, error) {
	cab, cp, mp := in[0], in[1], in[2]
	stiff, err := units.Scalar(1).Add(cab.Div(cp))
	if err != nil {
		return units.Value{}, err
	}
	root, err := stiff.Div(cab.Mul(mp)).Sqrt()
	if err != nil {
		return units.Value{}, err
	}

	return root.Div(twoPi), nil
}

// efficiency is the reference efficiency η0 = (4π²/c³)·(Fs³·Vas/Qes).
// Inputs: c, Fs, Vas, Qes.
func efficiency(in []units.Value) (units.Value, error) {
	c3, err := in[0].Pow(3)
	if err != nil {
		return units.Value{}, err
	}
	fs3, err := in[1].Pow(3)
	if err != nil {
		return units.Value{}, err
	}
	k := units.Scalar(4 * math.Pi * math.Pi).Div(c3)

	return k.Mul(fs3).Mul(in[2]).Div(in[3]), nil
}
