// SPDX-License-Identifier: MIT

package controller

import (
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/katalvlaran/bassgraph/bfs"
	"github.com/katalvlaran/bassgraph/core"
	"github.com/katalvlaran/bassgraph/defaults"
	"github.com/katalvlaran/bassgraph/dfs"
	"github.com/katalvlaran/bassgraph/units"
)

// Sentinel errors.
var (
	// ErrUnitMismatch indicates an edit whose unit does not fit the parameter.
	ErrUnitMismatch = errors.New("controller: unit does not match parameter")

	// ErrUnknownFormat indicates an unsupported snapshot encoding.
	ErrUnknownFormat = errors.New("controller: unknown output format")
)

// OtherGroup collects quantities whose group was not listed in New.
const OtherGroup = "other"

// Option configures a Session.
type Option func(*Session)

// WithLogger routes session logs to l.
func WithLogger(l *slog.Logger) Option {
	return func(s *Session) {
		if l != nil {
			s.logger = l
		}
	}
}

// Session owns a graph and its display grouping.
type Session struct {
	graph  *core.Graph
	groups []*Group
	params map[string]*Param
	order  []*Param
	logger *slog.Logger

	cascaded []string // filled by OnUpdate during SetPercent
}

// New wraps g. Groups follow titles in order; quantities tagged with any
// other group, or none, are collected in a trailing OtherGroup. Empty
// groups are dropped. Within a group, declaration order is kept.
func New(g *core.Graph, titles []string, opts ...Option) *Session {
	s := &Session{
		graph:  g,
		params: make(map[string]*Param, g.Len()),
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}

	index := make(map[string]*Group, len(titles)+1)
	all := make([]*Group, 0, len(titles)+1)
	for _, t := range titles {
		if _, dup := index[t]; dup {
			continue
		}
		grp := &Group{Title: t}
		index[t] = grp
		all = append(all, grp)
	}
	other := &Group{Title: OtherGroup}
	all = append(all, other)

	for _, q := range g.Quantities() {
		q.OnUpdate(s.recordCascade)
		p := &Param{q: q}
		s.params[q.Name()] = p
		grp, ok := index[q.Group()]
		if !ok {
			grp = other
		}
		grp.Params = append(grp.Params, p)
	}
	for _, grp := range all {
		if len(grp.Params) > 0 {
			s.groups = append(s.groups, grp)
			s.order = append(s.order, grp.Params...)
		}
	}

	return s
}

// Graph returns the wrapped graph.
func (s *Session) Graph() *core.Graph { return s.graph }

// Groups returns the non-empty groups in display order.
func (s *Session) Groups() []*Group { return s.groups }

// Group returns the group titled title.
func (s *Session) Group(title string) (*Group, bool) {
	for _, grp := range s.groups {
		if grp.Title == title {
			return grp, true
		}
	}

	return nil, false
}

// Params returns every parameter in display order.
func (s *Session) Params() []*Param {
	out := make([]*Param, len(s.order))
	copy(out, s.order)

	return out
}

// Param returns the named parameter or core.ErrQuantityNotFound.
func (s *Session) Param(name string) (*Param, error) {
	p, ok := s.params[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", core.ErrQuantityNotFound, name)
	}

	return p, nil
}

// Refresh brings every stale or uninitialized quantity up to date, visiting
// quantities in dependency order. Failures are logged and joined.
func (s *Session) Refresh() error {
	order, cyclic, err := dfs.EvaluationOrder(s.graph)
	if err != nil {
		return fmt.Errorf("controller: order: %w", err)
	}
	if cyclic {
		s.logger.Warn("dependency cycle: refresh order is approximate")
	}

	var errs []error
	for _, name := range order {
		p := s.params[name]
		if p == nil || p.q.IsValid() {
			continue
		}
		if err := p.q.Refresh(); err != nil {
			s.logger.Warn("refresh failed", "name", name, "err", err)
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}

// RefreshAll invalidates every quantity and recomputes the whole graph.
func (s *Session) RefreshAll() error {
	for _, q := range s.graph.Quantities() {
		q.Invalidate()
	}

	return s.Refresh()
}

// Set applies an edit literal such as "150", "150 cm**2" or "0.2 liter" to
// the named parameter through the graph's edit path. A bare number is taken
// in the current display unit. It returns every quantity downstream of the
// edit, sorted.
func (s *Session) Set(name, literal string) ([]string, error) {
	p, err := s.Param(name)
	if err != nil {
		return nil, err
	}
	v, err := units.Parse(literal)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", core.ErrMalformedValue, name, err)
	}
	cur := p.q.Unit()
	if v.Unit().String() == "" && !cur.IsDimensionless() {
		v = units.New(v.Magnitude(), cur)
	}
	if !v.Unit().Compatible(cur) {
		return nil, fmt.Errorf("%w: %s: %q is not %q", ErrUnitMismatch, name, v.Unit(), cur.Dimension())
	}
	if err := s.graph.EditValue(name, v); err != nil {
		return nil, err
	}

	return s.Affected(name)
}

// SetPercent moves name to pct of its range through the graph's edit path,
// then recomputes its direct dependents in place (UpdateParents) so a
// slider drag shows them at once. It returns the dependents the cascade
// recomputed, sorted. Quantities further downstream stay Invalid until the
// next Refresh.
func (s *Session) SetPercent(name string, pct float64) ([]string, error) {
	p, err := s.Param(name)
	if err != nil {
		return nil, err
	}
	v, err := p.q.PercentValue(pct)
	if err != nil {
		return nil, err
	}
	if err := s.graph.EditValue(name, v); err != nil {
		return nil, err
	}

	s.cascaded = s.cascaded[:0]
	err = p.q.UpdateParents()
	out := append([]string(nil), s.cascaded...)
	sort.Strings(out)
	if err != nil {
		s.logger.Warn("cascade failed", "name", name, "err", err)
	}

	return out, err
}

func (s *Session) recordCascade(q *core.Quantity) {
	s.cascaded = append(s.cascaded, q.Name())
	s.logger.Debug("cascade recomputed", "name", q.Name())
}

// Affected returns the names of every quantity that depends on name,
// directly or transitively, sorted.
func (s *Session) Affected(name string) ([]string, error) {
	res, err := dfs.DFS(s.graph, name)
	if err != nil {
		return nil, fmt.Errorf("controller: affected %q: %w", name, err)
	}

	return res.Reached(name), nil
}

// Layers groups the dependents of name by how many formulas separate them
// from it. Layers[0] is name itself; each layer is sorted. maxDepth > 0
// stops the walk at that distance.
func (s *Session) Layers(name string, maxDepth int) ([][]string, error) {
	res, err := bfs.BFS(s.graph, name, bfs.WithMaxDepth(maxDepth))
	if err != nil {
		return nil, fmt.Errorf("controller: layers %q: %w", name, err)
	}

	return res.Layers(), nil
}

// Path returns one shortest chain of formulas through which an edit of from
// reaches to, both ends included. The error wraps bfs.ErrNoPath when to does
// not depend on from.
func (s *Session) Path(from, to string) ([]string, error) {
	if _, err := s.Param(to); err != nil {
		return nil, err
	}
	res, err := bfs.BFS(s.graph, from)
	if err != nil {
		return nil, fmt.Errorf("controller: path %q: %w", from, err)
	}
	path, err := res.PathTo(to)
	if err != nil {
		return nil, fmt.Errorf("controller: path %q: %w", from, err)
	}

	return path, nil
}

// Invalid returns the names of the Invalid quantities, sorted.
func (s *Session) Invalid() []string {
	var out []string
	for _, q := range s.graph.Invalid() {
		out = append(out, q.Name())
	}

	return out
}

// OutOfRange returns the parameters whose value lies outside their bounds,
// sorted by name. Bounds are advisory; nothing is rejected.
func (s *Session) OutOfRange() []*Param {
	var out []*Param
	for _, p := range s.order {
		if !p.InRange() {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name() < out[j].Name() })

	return out
}

// LoadDefaults applies the defaults table at path and refreshes the graph.
// Row warnings are returned in the report, not as an error.
func (s *Session) LoadDefaults(path string) (defaults.Report, error) {
	rep, err := defaults.LoadFile(s.graph, path, defaults.WithLogger(s.logger))
	if err != nil {
		return rep, err
	}
	s.logger.Info("defaults loaded", "path", path, "applied", rep.Applied, "warnings", len(rep.Warnings))

	return rep, s.RefreshAll()
}

// SaveDefaults writes the current graph as a defaults table.
func (s *Session) SaveDefaults(path string) error {
	return defaults.WriteFile(path, s.graph)
}

// ParseAssignment splits "NAME=VALUE[ UNIT]" into its name and literal.
func ParseAssignment(arg string) (name, literal string, err error) {
	name, literal, ok := strings.Cut(arg, "=")
	name, literal = strings.TrimSpace(name), strings.TrimSpace(literal)
	if !ok || name == "" || literal == "" {
		return "", "", fmt.Errorf("%w: want NAME=VALUE, got %q", core.ErrMalformedValue, arg)
	}

	return name, literal, nil
}
