// SPDX-License-Identifier: MIT
// Package enclosure declares the built-in parameter set of a vented box
// driven through a passive radiator: driver Thiele/Small parameters, the
// passive radiator's mechanical parameters, the box and the derived
// alignment ratios.
//
// Build returns a core.Graph with every quantity declared, grouped and
// wired. Leaves start at typical values for a 5" woofer; derived
// quantities start Uninitialized until refreshed.
//
// Groups (display order):
//
//	constants        ρ0 c t
//	driver           Xmax Vd Sd Bl Re Mmd Mms Mas Rms Ras Cms Cas Vas Rg
//	driver-response  Ts ωs Fs Qes Qms Qts Qs
//	passive          Vap Cmp Cap Rmp Rap Mmp Map Sp Qmp ωp Fp Tp
//	enclosure        Vb Cab ωb Fb Tb α δ y h η0
//
// Acoustic elements are referred to the cone area: Mas = Mms/Sd²,
// Cas = Cms·Sd², Ras = Rms/Sd² and likewise for the radiator with Sp.
package enclosure
