// SPDX-License-Identifier: MIT
// Package bassgraph models a loudspeaker design as a graph of physical
// quantities: driver constants, derived Thiele–Small parameters, the
// passive radiator and the enclosure tuning. Every quantity carries a value
// with units, an advisory range and a validity state; editing one marks
// everything downstream stale, and refreshing recomputes in dependency
// order.
//
// Layout:
//
//	units/        dimensioned values, unit parsing and conversion
//	core/         Quantity, Graph, invalidation and recompute
//	dfs/          reachability, cycle listing, evaluation order
//	bfs/          dependents by distance, shortest formula chains
//	enclosure/    the bass-reflex parameter set and its formulas
//	defaults/     CSV defaults table: load, write, watch
//	controller/   editing session: groups, edits, snapshots
//	config/       TOML configuration
//	internal/cli  the bassgraph command
//	internal/tui  the interactive tuner
//
// Quick tour:
//
//	g, _ := enclosure.Build()
//	s := controller.New(g, enclosure.Groups())
//	_ = s.RefreshAll()
//	stale, _ := s.Set("Sd", "200")   // Vd, Mms, Fs, ... go Invalid
//	_ = s.Refresh()                  // recompute them in order
//
// The command line front end lives in cmd/bassgraph:
//
//	bassgraph show --group driver
//	bassgraph set Sd=200 Xmax="8 mm"
//	bassgraph deps Cms --to Ts
//	bassgraph tune
package bassgraph
