// SPDX-License-Identifier: MIT
// Package controller is the presentation-side view of a parameter graph.
//
// A Session owns a core.Graph, arranges its quantities into display groups
// and exposes what a UI needs per parameter (Param): label, value in the
// display unit, unit text, bounds, slider resolution and position, and
// validity. It also runs whole-graph refreshes in dependency order, reports
// stale and out-of-range parameters, loads and saves defaults tables, and
// exports snapshots as YAML or JSON. Affected, Layers and Path answer
// which parameters an edit reaches, and through which formulas.
//
// Like the graph it wraps, a Session is not safe for concurrent use.
package controller
