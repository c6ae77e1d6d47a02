// SPDX-License-Identifier: MIT
// Package defaults loads and saves parameter tables for a core.Graph.
//
// A table is comma separated, one quantity per row:
//
//	# name, default, min, max[, unit[, precision]]
//	Sd,   136,  10, 1000, cm**2, 1
//	Xmax, 3,    0,  100,  mm
//	Qs,   0.5,  0,  30
//
// Lines starting with '#' and blank lines are ignored. The unit defaults to
// "dimensionless". min and max may both be left empty to keep the current
// bounds. A row that cannot be used (wrong field count, bad number, bad or
// mismatched unit, unknown name) yields exactly one Warning and leaves the
// quantity untouched; loading always continues with the next row.
//
// Apply writes with core.Quantity.Set: values and bounds change, validity
// does not. Callers refresh the graph afterwards.
//
// Watch follows a table file with fsnotify and reports debounced changes.
package defaults
