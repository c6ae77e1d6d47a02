// SPDX-License-Identifier: MIT

package enclosure

import (
	"fmt"

	"github.com/katalvlaran/bassgraph/core"
)

// Display groups, in the order a UI shows them.
const (
	GroupConstants      = "constants"
	GroupDriver         = "driver"
	GroupDriverResponse = "driver-response"
	GroupPassive        = "passive"
	GroupEnclosure      = "enclosure"
)

// Groups returns the group labels in display order.
func Groups() []string {
	return []string{GroupConstants, GroupDriver, GroupDriverResponse, GroupPassive, GroupEnclosure}
}

// param is one declaration row: literal initial value and bounds.
type param struct {
	name, initial, min, max string
	group                   string
}

// formula is one wiring row: target = fn(deps...).
type formula struct {
	target string
	deps   []string
	fn     core.Formula
}

// params is the declaration table in display order.
var params = []param{
	{"ρ0", "1.1839 kg / m**3", "1 kg / m**3", "1.4 kg / m**3", GroupConstants},
	{"c", "345 m/s", "340 m/s", "350 m/s", GroupConstants},
	{"t", "1 s", "1 s", "1 s", GroupConstants},

	{"Xmax", "6 mm", "0 mm", "100 mm", GroupDriver},
	{"Vd", "0.1 liter", "0 liter", "100 liter", GroupDriver},
	{"Sd", "136 cm**2", "0 cm**2", "1000 cm**2", GroupDriver},
	{"Bl", "7.5 tesla meter", "0 tesla meter", "100 tesla meter", GroupDriver},
	{"Re", "5.6 ohm", "0 ohm", "1000 ohm", GroupDriver},
	{"Mmd", "20 g", "1 g", "100 kg", GroupDriver},
	{"Mms", "22 g", "1 g", "100 kg", GroupDriver},
	{"Mas", "100 kg / m**4", "0 kg / m**4", "1e6 kg / m**4", GroupDriver},
	{"Rms", "1.5 N*s/m", "0 N*s/m", "1000 N*s/m", GroupDriver},
	{"Ras", "1e4 N*s/m**5", "0 N*s/m**5", "1e8 N*s/m**5", GroupDriver},
	{"Cms", "0.8 mm/N", "0 mm/N", "1000 mm/N", GroupDriver},
	{"Cas", "1e-7 m**5/N", "0 m**5/N", "1e-4 m**5/N", GroupDriver},
	{"Vas", "10 liter", "0 liter", "1000 liter", GroupDriver},
	{"Rg", "0 ohm", "0 ohm", "10000 ohm", GroupDriver},

	{"Ts", "2 ms", "0.2 ms", "200 ms", GroupDriverResponse},
	{"ωs", "300 rad/s", "5 rad/s", "5000 rad/s", GroupDriverResponse},
	{"Fs", "50 Hz", "5 Hz", "5000 Hz", GroupDriverResponse},
	{"Qes", "0.5", "0", "30", GroupDriverResponse},
	{"Qms", "0.5", "0", "30", GroupDriverResponse},
	{"Qts", "0.5", "0", "30", GroupDriverResponse},
	{"Qs", "0.5", "0", "30", GroupDriverResponse},

	{"Vap", "10 liter", "0 liter", "1000 liter", GroupPassive},
	{"Cmp", "0.5 mm/N", "0 mm/N", "1000 mm/N", GroupPassive},
	{"Cap", "1e-7 m**5/N", "0 m**5/N", "1e-4 m**5/N", GroupPassive},
	{"Rmp", "2 N*s/m", "0 N*s/m", "1000 N*s/m", GroupPassive},
	{"Rap", "1e4 N*s/m**5", "0 N*s/m**5", "1e8 N*s/m**5", GroupPassive},
	{"Mmp", "60 g", "1 g", "100 kg", GroupPassive},
	{"Map", "100 kg / m**4", "0 kg / m**4", "1e6 kg / m**4", GroupPassive},
	{"Sp", "200 cm**2", "0 cm**2", "1000 cm**2", GroupPassive},
	{"Qmp", "5", "0", "30", GroupPassive},
	{"ωp", "150 rad/s", "0 rad/s", "5000 rad/s", GroupPassive},
	{"Fp", "25 Hz", "0 Hz", "1000 Hz", GroupPassive},
	{"Tp", "7 ms", "0 ms", "1000 ms", GroupPassive},

	{"Vb", "20 liter", "0 liter", "1000 liter", GroupEnclosure},
	{"Cab", "1.4e-7 m**5/N", "0 m**5/N", "1e-4 m**5/N", GroupEnclosure},
	{"ωb", "200 rad/s", "0 rad/s", "5000 rad/s", GroupEnclosure},
	{"Fb", "35 Hz", "0 Hz", "1000 Hz", GroupEnclosure},
	{"Tb", "5 ms", "0 ms", "1000 ms", GroupEnclosure},
	{"α", "3", "0", "100", GroupEnclosure},
	{"δ", "7", "0", "100", GroupEnclosure},
	{"y", "0.5", "0", "100", GroupEnclosure},
	{"h", "0.5", "0", "100", GroupEnclosure},
	{"η0", "0.004", "0", "1", GroupEnclosure},
}

// formulas wires every derived quantity. Inputs are listed in the order the
// formula reads them.
var formulas = []formula{
	{"Vd", []string{"Sd", "Xmax"}, product},
	{"Mms", []string{"Mmd", "ρ0", "Sd"}, movingMass},
	{"Mas", []string{"Mms", "Sd"}, perArea},
	{"Ras", []string{"Rms", "Sd"}, perArea},
	{"Cas", []string{"Cms", "Sd"}, timesArea},
	{"Vas", []string{"ρ0", "c", "Cas"}, airVolume},

	{"Fs", []string{"Mas", "Cas"}, resonance},
	{"ωs", []string{"Fs"}, angular},
	{"Ts", []string{"ωs"}, period},
	{"Qes", []string{"ωs", "Re", "Mas", "Sd", "Bl"}, electricalQ},
	{"Qms", []string{"ωs", "Cas", "Ras"}, mechanicalQ},
	{"Qts", []string{"Qes", "Qms"}, seriesQ},
	{"Qs", []string{"Qts"}, identity},

	{"Vb", []string{"ρ0", "c", "Cab"}, airVolume},

	{"Cap", []string{"Cmp", "Sp"}, timesArea},
	{"Rap", []string{"Rmp", "Sp"}, perArea},
	{"Map", []string{"Mmp", "Sp"}, perArea},
	{"Vap", []string{"ρ0", "c", "Cap"}, airVolume},
	{"Fp", []string{"Map", "Cap"}, resonance},
	{"ωp", []string{"Fp"}, angular},
	{"Tp", []string{"ωp"}, period},
	{"Qmp", []string{"ωp", "Cap", "Rap"}, mechanicalQ},

	{"Fb", []string{"Cab", "Cap", "Map"}, boxTuning},
	{"ωb", []string{"Fb"}, angular},
	{"Tb", []string{"ωb"}, period},
	{"α", []string{"Cas", "Cab"}, ratio},
	{"δ", []string{"Cap", "Cab"}, ratio},
	{"y", []string{"Fb", "Fs"}, ratio},
	{"h", []string{"Fb", "Fp"}, ratio},
	{"η0", []string{"c", "Fs", "Vas", "Qes"}, efficiency},
}

// Build declares and wires the built-in parameter set on a new graph.
// Every quantity is left Uninitialized; refresh the graph before reading
// derived values.
func Build(opts ...core.GraphOption) (*core.Graph, error) {
	g := core.NewGraph(opts...)
	if err := Declare(g); err != nil {
		return nil, err
	}

	return g, nil
}

// Declare adds the built-in parameter set to g. It fails on the first
// duplicate name or wiring error.
func Declare(g *core.Graph) error {
	for _, p := range params {
		if _, err := g.DeclareString(p.name, p.initial, p.min, p.max, core.WithGroup(p.group)); err != nil {
			return fmt.Errorf("enclosure: declare: %w", err)
		}
	}
	for _, f := range formulas {
		if err := g.SetFormula(f.target, f.deps, f.fn); err != nil {
			return fmt.Errorf("enclosure: wire: %w", err)
		}
	}

	return nil
}

// Names returns the quantity names of group in display order.
func Names(group string) []string {
	var out []string
	for _, p := range params {
		if p.group == group {
			out = append(out, p.name)
		}
	}

	return out
}
