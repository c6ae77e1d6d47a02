// SPDX-License-Identifier: MIT
// Package core declares Quantity, Graph, their options, the sentinel errors
// and the NewGraph constructor.
package core

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/katalvlaran/bassgraph/units"
)

// Sentinel errors for graph construction and mutation.
var (
	// ErrEmptyName indicates a quantity was declared with an empty name.
	ErrEmptyName = errors.New("core: quantity name is empty")

	// ErrDuplicateQuantity indicates a second quantity with an existing name.
	ErrDuplicateQuantity = errors.New("core: duplicate quantity")

	// ErrQuantityNotFound indicates a lookup of an undeclared quantity.
	ErrQuantityNotFound = errors.New("core: quantity not found")

	// ErrUnknownDependency indicates a formula input that is not declared.
	ErrUnknownDependency = errors.New("core: unknown dependency")

	// ErrMalformedValue indicates an unparsable magnitude, unit or bound.
	ErrMalformedValue = errors.New("core: malformed value")

	// ErrFormula indicates a formula returned an error.
	ErrFormula = errors.New("core: formula evaluation failed")

	// ErrHandlerRegistered indicates OnChange was called more than once.
	ErrHandlerRegistered = errors.New("core: change handler already registered")

	// ErrNoRange indicates a range operation on a quantity without both bounds.
	ErrNoRange = errors.New("core: quantity has no range")
)

// UnknownDependencyError names the unresolved input and the quantity whose
// formula referenced it. It matches ErrUnknownDependency under errors.Is.
type UnknownDependencyError struct {
	Name     string // the undeclared input
	Declarer string // the quantity whose formula referenced it
}

func (e *UnknownDependencyError) Error() string {
	return fmt.Sprintf("core: unknown dependency %q in formula of %q", e.Name, e.Declarer)
}

// Is reports whether target is ErrUnknownDependency.
func (e *UnknownDependencyError) Is(target error) bool {
	return target == ErrUnknownDependency
}

// State is the validity state of a Quantity.
type State uint8

const (
	// Uninitialized: declared, never computed or written definitively.
	Uninitialized State = iota
	// Valid: value consistent with its inputs as of the last compute.
	Valid
	// Invalid: an input (or, under input invalidation, a dependent) changed.
	Invalid
)

func (s State) String() string {
	switch s {
	case Uninitialized:
		return "Uninitialized"
	case Valid:
		return "Valid"
	case Invalid:
		return "Invalid"
	default:
		return fmt.Sprintf("State(%d)", uint8(s))
	}
}

// Formula computes a quantity from its declared inputs, in declaration order.
type Formula func(in []units.Value) (units.Value, error)

// defaultPrecision is the display precision (significant digits) of a new quantity.
const defaultPrecision = 3

// Quantity is one named physical value in a Graph.
//
// A Quantity without a formula is a leaf; its value only changes through
// direct writes. parents and children are kept symmetric by the Graph.
type Quantity struct {
	graph *Graph

	name  string
	value units.Value
	state State

	min, max *units.Value

	precision int
	group     string

	formula Formula
	inputs  []*Quantity // declared order, fed to formula

	parents  []*Quantity // dependents, registration order
	children []*Quantity // distinct inputs, declaration order

	observers []func(*Quantity)
}

// QuantityOption configures a Quantity at declaration time.
type QuantityOption func(*Quantity) error

// WithBounds sets the advisory [min,max] range. Both must share the
// quantity's dimension.
func WithBounds(lo, hi units.Value) QuantityOption {
	return func(q *Quantity) error {
		return q.setBounds(&lo, &hi)
	}
}

// WithRange parses min and max literals ("0 cm**2", "1000 cm**2"); an empty
// string leaves that bound unset.
func WithRange(lo, hi string) QuantityOption {
	return func(q *Quantity) error {
		min, err := parseBound(lo)
		if err != nil {
			return err
		}
		max, err := parseBound(hi)
		if err != nil {
			return err
		}
		return q.setBounds(min, max)
	}
}

// WithPrecision sets the display precision in significant digits.
func WithPrecision(digits int) QuantityOption {
	return func(q *Quantity) error {
		q.precision = digits
		return nil
	}
}

// WithGroup tags the quantity with a display group ("Driver", "Passive", ...).
func WithGroup(group string) QuantityOption {
	return func(q *Quantity) error {
		q.group = group
		return nil
	}
}

func parseBound(s string) (*units.Value, error) {
	if s == "" {
		return nil, nil
	}
	v, err := units.Parse(s)
	if err != nil {
		return nil, fmt.Errorf("%w: bound %q: %w", ErrMalformedValue, s, err)
	}

	return &v, nil
}

// GraphOption configures a Graph before use.
type GraphOption func(*Graph)

// WithInputInvalidation enables propagation from an invalidated quantity to
// its own inputs (besides the triggering one). Off by default.
func WithInputInvalidation(enabled bool) GraphOption {
	return func(g *Graph) { g.inputInvalidation = enabled }
}

// WithLogger sets the structured logger; nil keeps slog.Default().
func WithLogger(l *slog.Logger) GraphOption {
	return func(g *Graph) {
		if l != nil {
			g.logger = l
		}
	}
}

// WithMetrics toggles the Prometheus counters (on by default). Stats is
// always maintained.
func WithMetrics(enabled bool) GraphOption {
	return func(g *Graph) { g.metrics = enabled }
}

// counters accumulates traversal statistics for Stats.
type counters struct {
	invalidateCalls  uint64 // every invalidate entry, including guarded no-ops
	invalidateVisits uint64 // entries that changed state to Invalid
	recomputes       uint64
	recomputeErrors  uint64
	cascades         uint64
}

// Graph owns every Quantity of one parameter set and their dependency edges.
// It is not safe for concurrent use.
type Graph struct {
	quantities map[string]*Quantity
	order      []*Quantity // declaration order

	inputInvalidation bool
	metrics           bool
	logger            *slog.Logger

	onChange func(q *Quantity, magnitude float64)

	stats counters
}

// NewGraph creates an empty Graph. By default invalidation propagates to
// dependents only and logs go to slog.Default().
func NewGraph(opts ...GraphOption) *Graph {
	g := &Graph{
		quantities: make(map[string]*Quantity),
		logger:     slog.Default(),
		metrics:    true,
	}
	for _, opt := range opts {
		opt(g)
	}

	return g
}
