// SPDX-License-Identifier: MIT
// Package core_test verifies the invalidation and recompute contracts of
// core.Graph on small hand-built graphs.

package core_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/bassgraph/core"
	"github.com/katalvlaran/bassgraph/units"
)

// double is B = A*2.
func double(in []units.Value) (units.Value, error) {
	return in[0].Scale(2), nil
}

// doublePlus is B = A*2 + E.
func doublePlus(in []units.Value) (units.Value, error) {
	return in[0].Scale(2).Add(in[1])
}

// identity is B = A.
func identity(in []units.Value) (units.Value, error) {
	return in[0], nil
}

// declareScalars declares dimensionless leaves with the given initial values.
func declareScalars(t *testing.T, g *core.Graph, names ...string) map[string]*core.Quantity {
	t.Helper()
	out := make(map[string]*core.Quantity, len(names))
	for _, n := range names {
		q, err := g.Declare(n, units.Scalar(0))
		require.NoError(t, err, n)
		out[n] = q
	}

	return out
}

// states collects the state of each named quantity.
func states(qs map[string]*core.Quantity, names ...string) []core.State {
	out := make([]core.State, len(names))
	for i, n := range names {
		out[i] = qs[n].State()
	}

	return out
}

// names returns the names of qs in order.
func names(qs []*core.Quantity) []string {
	out := make([]string, len(qs))
	for i, q := range qs {
		out[i] = q.Name()
	}

	return out
}

// TestInvalidate_IdempotentOnCycle probes A→B→C→A with the visit counters:
// one wave marks each quantity once, and invalidating an Invalid quantity
// visits nothing.
func TestInvalidate_IdempotentOnCycle(t *testing.T) {
	for _, inputs := range []bool{false, true} {
		g := core.NewGraph(core.WithInputInvalidation(inputs), core.WithMetrics(false))
		qs := declareScalars(t, g, "A", "B", "C")
		require.NoError(t, g.SetFormula("B", []string{"A"}, identity))
		require.NoError(t, g.SetFormula("C", []string{"B"}, identity))
		require.NoError(t, g.SetFormula("A", []string{"C"}, identity))

		qs["A"].Invalidate()
		st := g.Stats()
		assert.Equal(t, uint64(3), st.InvalidationVisits, "inputs=%v", inputs)
		assert.Equal(t, []core.State{core.Invalid, core.Invalid, core.Invalid}, states(qs, "A", "B", "C"))

		// Second wave hits the guard immediately.
		qs["A"].Invalidate()
		after := g.Stats()
		assert.Equal(t, st.InvalidationVisits, after.InvalidationVisits)
		assert.Equal(t, st.InvalidationCalls+1, after.InvalidationCalls)
	}
}

// TestSetQuantity_FullDownstreamCoverage covers the chain A→B→C→D.
func TestSetQuantity_FullDownstreamCoverage(t *testing.T) {
	g := core.NewGraph(core.WithMetrics(false))
	qs := declareScalars(t, g, "A", "B", "C", "D")
	require.NoError(t, g.SetFormula("B", []string{"A"}, identity))
	require.NoError(t, g.SetFormula("C", []string{"B"}, identity))
	require.NoError(t, g.SetFormula("D", []string{"C"}, identity))

	qs["A"].SetQuantity(units.Scalar(1))

	assert.Equal(t, core.Valid, qs["A"].State())
	assert.Equal(t, []core.State{core.Invalid, core.Invalid, core.Invalid}, states(qs, "B", "C", "D"))
	assert.Equal(t, []string{"B", "C", "D"}, names(g.Invalid()))
}

// TestUpdate_RecomputeCorrectness: A=2, B=A*2; A:=5 then B.Update gives 10.
func TestUpdate_RecomputeCorrectness(t *testing.T) {
	g := core.NewGraph(core.WithMetrics(false))
	a, err := g.Declare("A", units.Scalar(2))
	require.NoError(t, err)
	b, err := g.Declare("B", units.Scalar(0))
	require.NoError(t, err)
	require.NoError(t, g.SetFormula("B", []string{"A"}, double))

	a.SetQuantity(units.Scalar(5))
	assert.Equal(t, core.Invalid, b.State())

	require.NoError(t, b.Update())
	assert.Equal(t, 10.0, b.Magnitude())
	assert.Equal(t, core.Valid, b.State())
	assert.Equal(t, uint64(1), g.Stats().Recomputes)
}

// TestUpdateParents_Refresh: B = A*2 + E. Changing A and cascading leaves B
// Valid with the new value and E (B's other input) Invalid.
func TestUpdateParents_Refresh(t *testing.T) {
	g := core.NewGraph(core.WithMetrics(false))
	qs := declareScalars(t, g, "A", "E", "B")
	require.NoError(t, g.SetFormula("B", []string{"A", "E"}, doublePlus))

	qs["A"].SetQuantity(units.Scalar(2))
	qs["E"].SetQuantity(units.Scalar(1))
	require.NoError(t, qs["B"].Update())
	require.Equal(t, 5.0, qs["B"].Magnitude())

	var notified []string
	qs["B"].OnUpdate(func(q *core.Quantity) { notified = append(notified, q.Name()) })

	qs["A"].SetQuantity(units.Scalar(5))
	require.Equal(t, core.Invalid, qs["B"].State())
	require.NoError(t, qs["A"].UpdateParents())

	assert.Equal(t, 11.0, qs["B"].Magnitude())
	assert.Equal(t, core.Valid, qs["B"].State())
	assert.Equal(t, core.Invalid, qs["E"].State())
	assert.Equal(t, core.Valid, qs["A"].State())
	assert.Equal(t, []string{"B"}, notified)
	assert.Equal(t, uint64(1), g.Stats().Cascades)
}

// TestUpdateParents_InvalidatesDownstream checks the refreshed parent's own
// dependents go stale.
func TestUpdateParents_InvalidatesDownstream(t *testing.T) {
	g := core.NewGraph(core.WithMetrics(false))
	qs := declareScalars(t, g, "A", "B", "C")
	require.NoError(t, g.SetFormula("B", []string{"A"}, double))
	require.NoError(t, g.SetFormula("C", []string{"B"}, double))
	require.NoError(t, g.UpdateAll())

	qs["A"].SetTo(units.Scalar(3))
	require.NoError(t, qs["A"].UpdateParents())

	assert.Equal(t, 6.0, qs["B"].Magnitude())
	assert.Equal(t, core.Valid, qs["B"].State())
	assert.Equal(t, core.Invalid, qs["C"].State())
}

// TestUpdateParents_TriggerStaysValid: B = A*2 + E and D = B + A, so A feeds
// both B and B's dependent D. Under either propagation policy the cascade
// from A recomputes B and D, A stays Valid, and B is left Invalid because D's
// refresh re-examines its other input.
func TestUpdateParents_TriggerStaysValid(t *testing.T) {
	sum := func(in []units.Value) (units.Value, error) { return in[0].Add(in[1]) }
	for _, inputs := range []bool{false, true} {
		g := core.NewGraph(core.WithInputInvalidation(inputs), core.WithMetrics(false))
		qs := declareScalars(t, g, "A", "E", "B", "D")
		require.NoError(t, g.SetFormula("B", []string{"A", "E"}, doublePlus))
		qs["A"].SetQuantity(units.Scalar(2))
		qs["E"].SetQuantity(units.Scalar(1))
		require.NoError(t, qs["B"].Update())
		// Wire D last so the set-up edits do not run through the diamond.
		require.NoError(t, g.SetFormula("D", []string{"B", "A"}, sum))
		require.NoError(t, qs["D"].Update())
		require.Empty(t, g.Invalid(), "inputs=%v", inputs)

		qs["A"].SetTo(units.Scalar(5))
		require.NoError(t, qs["A"].UpdateParents())

		assert.Equal(t, 11.0, qs["B"].Magnitude(), "inputs=%v", inputs)
		assert.Equal(t, 16.0, qs["D"].Magnitude(), "inputs=%v", inputs)
		assert.Equal(t,
			[]core.State{core.Valid, core.Invalid, core.Valid, core.Invalid},
			states(qs, "A", "B", "D", "E"), "inputs=%v", inputs)
		assert.Equal(t, uint64(2), g.Stats().Cascades, "inputs=%v", inputs)
	}
}

// TestDeclare_DuplicateName rejects a second "Fs".
func TestDeclare_DuplicateName(t *testing.T) {
	g := core.NewGraph()
	_, err := g.DeclareString("Fs", "45 Hz", "", "")
	require.NoError(t, err)
	_, err = g.DeclareString("Fs", "30 Hz", "", "")
	assert.ErrorIs(t, err, core.ErrDuplicateQuantity)
	assert.Equal(t, 1, g.Len())

	_, err = g.Declare("", units.Scalar(1))
	assert.ErrorIs(t, err, core.ErrEmptyName)
}

// TestSetFormula_UnknownDependency rejects "Zzz" and leaves edges untouched.
func TestSetFormula_UnknownDependency(t *testing.T) {
	g := core.NewGraph()
	qs := declareScalars(t, g, "A", "Vb")

	err := g.SetFormula("Vb", []string{"A", "Zzz"}, identity)
	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrUnknownDependency)

	var unknown *core.UnknownDependencyError
	require.True(t, errors.As(err, &unknown))
	assert.Equal(t, "Zzz", unknown.Name)
	assert.Equal(t, "Vb", unknown.Declarer)

	assert.Empty(t, qs["Vb"].Children())
	assert.Empty(t, qs["A"].Parents())
	assert.True(t, qs["Vb"].IsLeaf())

	err = g.SetFormula("Nope", []string{"A"}, identity)
	assert.ErrorIs(t, err, core.ErrQuantityNotFound)
}

// TestSetFormula_RewiresSymmetrically replaces inputs and checks both sides.
func TestSetFormula_RewiresSymmetrically(t *testing.T) {
	g := core.NewGraph()
	qs := declareScalars(t, g, "A", "E", "B")
	require.NoError(t, g.SetFormula("B", []string{"A", "A"}, identity))
	assert.Equal(t, []string{"A"}, names(qs["B"].Children()))
	assert.Equal(t, []string{"A", "A"}, qs["B"].Inputs())
	assert.Equal(t, []string{"B"}, names(qs["A"].Parents()))

	require.NoError(t, g.SetFormula("B", []string{"E"}, identity))
	assert.Empty(t, qs["A"].Parents())
	assert.Equal(t, []string{"B"}, names(qs["E"].Parents()))
	assert.Equal(t, []string{"E"}, names(qs["B"].Children()))

	require.NoError(t, g.SetFormula("B", nil, nil))
	assert.True(t, qs["B"].IsLeaf())
	assert.Empty(t, qs["E"].Parents())

	st := g.Stats()
	assert.Equal(t, 3, st.Leaves)
	assert.Equal(t, 0, st.Edges)
}

// TestSetFormula_InvalidatesValidTarget marks a Valid quantity stale when its
// formula changes.
func TestSetFormula_InvalidatesValidTarget(t *testing.T) {
	g := core.NewGraph()
	qs := declareScalars(t, g, "A", "B")
	qs["B"].SetQuantity(units.Scalar(1))
	require.NoError(t, g.SetFormula("B", []string{"A"}, double))
	assert.Equal(t, core.Invalid, qs["B"].State())
}

// TestInputInvalidation_Policy compares both propagation policies on B(A, E).
func TestInputInvalidation_Policy(t *testing.T) {
	build := func(inputs bool) map[string]*core.Quantity {
		g := core.NewGraph(core.WithInputInvalidation(inputs), core.WithMetrics(false))
		qs := declareScalars(t, g, "A", "E", "B")
		require.NoError(t, g.SetFormula("B", []string{"A", "E"}, doublePlus))
		qs["A"].SetQuantity(units.Scalar(1))
		qs["E"].SetQuantity(units.Scalar(1))
		require.NoError(t, qs["B"].Update())

		return qs
	}

	off := build(false)
	off["B"].Invalidate()
	assert.Equal(t, []core.State{core.Valid, core.Valid, core.Invalid}, states(off, "A", "E", "B"))

	on := build(true)
	on["B"].Invalidate()
	assert.Equal(t, []core.State{core.Invalid, core.Invalid, core.Invalid}, states(on, "A", "E", "B"))

	// An edit of A excludes A itself but reaches its sibling E.
	on = build(true)
	on["A"].SetQuantity(units.Scalar(2))
	assert.Equal(t, []core.State{core.Valid, core.Invalid, core.Invalid}, states(on, "A", "E", "B"))
}

// TestRefresh_Chain refreshes stale inputs depth-first.
func TestRefresh_Chain(t *testing.T) {
	g := core.NewGraph(core.WithMetrics(false))
	qs := declareScalars(t, g, "A", "B", "C")
	require.NoError(t, g.SetFormula("B", []string{"A"}, double))
	require.NoError(t, g.SetFormula("C", []string{"B"}, double))

	qs["A"].SetQuantity(units.Scalar(3))
	require.NoError(t, qs["C"].Refresh())

	assert.Equal(t, 6.0, qs["B"].Magnitude())
	assert.Equal(t, 12.0, qs["C"].Magnitude())
	assert.Empty(t, g.Invalid())
}

// TestRefresh_CycleTerminates refreshes a quantity inside A→B→A.
func TestRefresh_CycleTerminates(t *testing.T) {
	g := core.NewGraph(core.WithMetrics(false))
	qs := declareScalars(t, g, "A", "B")
	require.NoError(t, g.SetFormula("A", []string{"B"}, identity))
	require.NoError(t, g.SetFormula("B", []string{"A"}, identity))

	require.NoError(t, qs["A"].Refresh())
	assert.Equal(t, core.Valid, qs["A"].State())
}

// TestUpdate_FormulaError keeps value and state on failure.
func TestUpdate_FormulaError(t *testing.T) {
	g := core.NewGraph(core.WithMetrics(false))
	qs := declareScalars(t, g, "A", "B")
	boom := errors.New("boom")
	require.NoError(t, g.SetFormula("B", []string{"A"}, func([]units.Value) (units.Value, error) {
		return units.Value{}, boom
	}))
	qs["B"].SetTo(units.Scalar(7))

	err := qs["B"].Update()
	assert.ErrorIs(t, err, core.ErrFormula)
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 7.0, qs["B"].Magnitude())
	assert.Equal(t, core.Uninitialized, qs["B"].State())
	assert.Equal(t, uint64(1), g.Stats().RecomputeErrors)

	// UpdateAll keeps going and reports the failure.
	err = g.UpdateAll()
	assert.ErrorIs(t, err, core.ErrFormula)
	assert.Equal(t, core.Valid, qs["A"].State())
}

// TestUpdate_ConvertsToDisplayUnit recomputes Vd = Sd*Xmax shown in liters.
func TestUpdate_ConvertsToDisplayUnit(t *testing.T) {
	g := core.NewGraph(core.WithMetrics(false))
	_, err := g.DeclareString("Sd", "10 cm**2", "", "")
	require.NoError(t, err)
	_, err = g.DeclareString("Xmax", "3 mm", "", "")
	require.NoError(t, err)
	vd, err := g.DeclareString("Vd", "0 liter", "", "")
	require.NoError(t, err)
	require.NoError(t, g.SetFormula("Vd", []string{"Sd", "Xmax"}, func(in []units.Value) (units.Value, error) {
		return in[0].Mul(in[1]), nil
	}))

	require.NoError(t, vd.Update())
	assert.Equal(t, "liter", vd.Unit().String())
	assert.InDelta(t, 0.003, vd.Magnitude(), 1e-12)

	ml, err := vd.MagnitudeIn("ml")
	require.NoError(t, err)
	assert.InDelta(t, 3, ml, 1e-9)
	dump := vd.Debug()
	assert.Contains(t, dump, "Vd = ")
	assert.Contains(t, dump, "m^3 [Valid]")
	assert.Contains(t, dump, "  Xmax = ")
}

// TestEdit_ChangeHandler covers Edit, EditValue and OnChange registration.
func TestEdit_ChangeHandler(t *testing.T) {
	g := core.NewGraph(core.WithMetrics(false))
	_, err := g.DeclareString("Mmd", "20 g", "1 g", "500 g")
	require.NoError(t, err)

	var gotName string
	var gotMag float64
	require.NoError(t, g.OnChange(func(q *core.Quantity, magnitude float64) {
		gotName, gotMag = q.Name(), magnitude
	}))
	assert.ErrorIs(t, g.OnChange(func(*core.Quantity, float64) {}), core.ErrHandlerRegistered)

	require.NoError(t, g.Edit("Mmd", 35, "g"))
	assert.Equal(t, "Mmd", gotName)
	assert.InDelta(t, 35.0, gotMag, 1e-12)

	err = g.Edit("Mmd", 1, "bogons")
	assert.ErrorIs(t, err, core.ErrMalformedValue)
	q, err := g.Quantity("Mmd")
	require.NoError(t, err)
	assert.InDelta(t, 35.0, q.Magnitude(), 1e-9)

	assert.ErrorIs(t, g.Edit("Nope", 1, "g"), core.ErrQuantityNotFound)
}

// TestQuantity_RangeAndPercent covers bounds, InRange and the slider mapping.
func TestQuantity_RangeAndPercent(t *testing.T) {
	g := core.NewGraph(core.WithMetrics(false))
	q, err := g.DeclareString("Vb", "50 liter", "10 liter", "110 liter", core.WithPrecision(4))
	require.NoError(t, err)
	require.True(t, q.HasRange())
	assert.Equal(t, 4, q.Precision())

	p, err := q.Percent()
	require.NoError(t, err)
	assert.InDelta(t, 40, p, 1e-9)

	require.NoError(t, q.SetPercent(90))
	assert.InDelta(t, 100, q.Magnitude(), 1e-9)
	assert.Equal(t, core.Valid, q.State())

	ok, err := q.InRange()
	require.NoError(t, err)
	assert.True(t, ok)

	// Writes beyond the range succeed and are only flagged.
	require.NoError(t, q.SetValue(200, "liter"))
	ok, err = q.InRange()
	require.NoError(t, err)
	assert.False(t, ok)

	free, err := g.Declare("c", units.MustParse("345 m/s"))
	require.NoError(t, err)
	_, err = free.Percent()
	assert.ErrorIs(t, err, core.ErrNoRange)
	ok, err = free.InRange()
	require.NoError(t, err)
	assert.True(t, ok)

	_, err = g.DeclareString("Bad", "1 kg", "0 m", "")
	assert.ErrorIs(t, err, core.ErrMalformedValue)
}

// TestQuantity_SetBulk covers Set and SetQuantityString.
func TestQuantity_SetBulk(t *testing.T) {
	g := core.NewGraph(core.WithMetrics(false))
	qs := declareScalars(t, g, "Sd", "B")
	require.NoError(t, g.SetFormula("B", []string{"Sd"}, identity))
	qs["B"].SetQuantity(units.Scalar(1))

	require.NoError(t, qs["Sd"].Set(136, 10, 1000, "cm**2"))
	lo, ok := qs["Sd"].Min()
	require.True(t, ok)
	hi, ok := qs["Sd"].Max()
	require.True(t, ok)
	assert.InDelta(t, 10.0, lo.Magnitude(), 1e-9)
	assert.InDelta(t, 1000.0, hi.Magnitude(), 1e-9)
	assert.InDelta(t, 136.0, qs["Sd"].Magnitude(), 1e-9)
	assert.Equal(t, core.Valid, qs["B"].State())

	assert.ErrorIs(t, qs["Sd"].Set(1, 0, 2, "cm**"), core.ErrMalformedValue)
	assert.InDelta(t, 136.0, qs["Sd"].Magnitude(), 1e-9)

	require.NoError(t, qs["Sd"].SetQuantityString("140 cm**2"))
	assert.Equal(t, core.Invalid, qs["B"].State())
	assert.ErrorIs(t, qs["Sd"].SetQuantityString("140 cm**"), core.ErrMalformedValue)
}

// TestGraph_DFSAdapter checks the Vertices/Successors view.
func TestGraph_DFSAdapter(t *testing.T) {
	g := core.NewGraph()
	declareScalars(t, g, "C", "A", "B")
	require.NoError(t, g.SetFormula("B", []string{"A"}, identity))
	require.NoError(t, g.SetFormula("C", []string{"A", "B"}, doublePlus))

	assert.Equal(t, []string{"A", "B", "C"}, g.Vertices())
	succ, err := g.Successors("A")
	require.NoError(t, err)
	assert.Equal(t, []string{"B", "C"}, succ)

	_, err = g.Successors("Z")
	assert.ErrorIs(t, err, core.ErrQuantityNotFound)

	assert.Equal(t, []string{"C", "A", "B"}, names(g.Quantities()))
	_, ok := g.Lookup("Z")
	assert.False(t, ok)
	assert.True(t, g.Has("A"))
}

func TestState_String(t *testing.T) {
	assert.Equal(t, "Uninitialized", core.Uninitialized.String())
	assert.Equal(t, "Valid", core.Valid.String())
	assert.Equal(t, "Invalid", core.Invalid.String())
	assert.Equal(t, "State(9)", core.State(9).String())
}
