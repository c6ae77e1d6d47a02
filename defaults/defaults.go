// SPDX-License-Identifier: MIT

package defaults

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/katalvlaran/bassgraph/core"
	"github.com/katalvlaran/bassgraph/units"
)

var (
	// ErrMalformedRow indicates a row with a bad field count or number.
	ErrMalformedRow = errors.New("defaults: malformed row")

	// ErrUnknownQuantity indicates a row naming a quantity the graph lacks.
	ErrUnknownQuantity = errors.New("defaults: unknown quantity")

	// ErrUnitMismatch indicates a row unit of the wrong dimension.
	ErrUnitMismatch = errors.New("defaults: unit does not match quantity")
)

// DefaultUnit is used when a row has no unit column.
const DefaultUnit = "dimensionless"

const (
	minFields = 4
	maxFields = 6
)

// Row is one parsed table row.
type Row struct {
	Line      int
	Name      string
	Default   float64
	Min, Max  float64
	HasRange  bool // false when min and max were both empty
	Unit      string
	Precision int // 0 when absent
}

// Warning describes one skipped row.
type Warning struct {
	Line int
	Name string // "" when the row had no usable name
	Err  error
}

func (w Warning) Error() string {
	if w.Name == "" {
		return fmt.Sprintf("line %d: %v", w.Line, w.Err)
	}

	return fmt.Sprintf("line %d: %s: %v", w.Line, w.Name, w.Err)
}

func (w Warning) Unwrap() error { return w.Err }

// Report summarises a load.
type Report struct {
	Applied  []string // quantity names, file order
	Warnings []Warning
}

// Option configures Load and Apply.
type Option func(*options)

type options struct {
	logger *slog.Logger
}

// WithLogger routes warnings to l instead of slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

func buildOptions(opts []Option) options {
	o := options{logger: slog.Default()}
	for _, opt := range opts {
		opt(&o)
	}

	return o
}

// Parse reads every row of a table. Malformed rows become warnings; only a
// read failure of r is returned as an error.
func Parse(r io.Reader) ([]Row, []Warning, error) {
	cr := csv.NewReader(r)
	cr.Comment = '#'
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	var rows []Row
	var warns []Warning
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			var perr *csv.ParseError
			if errors.As(err, &perr) {
				warns = append(warns, Warning{Line: perr.Line, Err: fmt.Errorf("%w: %v", ErrMalformedRow, perr.Err)})
				continue
			}
			return rows, warns, fmt.Errorf("defaults: read: %w", err)
		}
		line, _ := cr.FieldPos(0)
		row, err := parseRecord(line, rec)
		if err != nil {
			warns = append(warns, Warning{Line: line, Name: row.Name, Err: err})
			continue
		}
		rows = append(rows, row)
	}

	return rows, warns, nil
}

func parseRecord(line int, rec []string) (Row, error) {
	for i := range rec {
		rec[i] = strings.TrimSpace(rec[i])
	}
	row := Row{Line: line, Unit: DefaultUnit}
	if len(rec) > 0 {
		row.Name = rec[0]
	}
	if len(rec) < minFields || len(rec) > maxFields {
		return row, fmt.Errorf("%w: %d fields, want %d to %d", ErrMalformedRow, len(rec), minFields, maxFields)
	}
	if row.Name == "" {
		return row, fmt.Errorf("%w: empty name", ErrMalformedRow)
	}

	var err error
	if row.Default, err = parseNumber("default", rec[1]); err != nil {
		return row, err
	}
	switch {
	case rec[2] == "" && rec[3] == "":
	case rec[2] == "" || rec[3] == "":
		return row, fmt.Errorf("%w: min and max must both be set or both empty", ErrMalformedRow)
	default:
		if row.Min, err = parseNumber("min", rec[2]); err != nil {
			return row, err
		}
		if row.Max, err = parseNumber("max", rec[3]); err != nil {
			return row, err
		}
		row.HasRange = true
	}
	if len(rec) > 4 && rec[4] != "" {
		row.Unit = rec[4]
	}
	if len(rec) > 5 && rec[5] != "" {
		p, err := strconv.Atoi(rec[5])
		if err != nil || p < 1 {
			return row, fmt.Errorf("%w: precision %q", ErrMalformedRow, rec[5])
		}
		row.Precision = p
	}

	return row, nil
}

func parseNumber(field, s string) (float64, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s %q is not a number", ErrMalformedRow, field, s)
	}

	return v, nil
}

// Apply writes rows into g. Each unusable row becomes one warning, which is
// also logged at Warn level.
func Apply(g *core.Graph, rows []Row, opts ...Option) Report {
	o := buildOptions(opts)
	var rep Report
	for _, row := range rows {
		if err := applyRow(g, row); err != nil {
			w := Warning{Line: row.Line, Name: row.Name, Err: err}
			rep.Warnings = append(rep.Warnings, w)
			o.logger.Warn("defaults: row skipped", "line", w.Line, "name", w.Name, "err", err)
			continue
		}
		rep.Applied = append(rep.Applied, row.Name)
	}

	return rep
}

func applyRow(g *core.Graph, row Row) error {
	q, ok := g.Lookup(row.Name)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownQuantity, row.Name)
	}
	u, err := units.ParseUnit(row.Unit)
	if err != nil {
		return fmt.Errorf("%w: %w", core.ErrMalformedValue, err)
	}
	if !u.Compatible(q.Unit()) {
		return fmt.Errorf("%w: %q is %q, %s is %q", ErrUnitMismatch, row.Unit, u.Dimension(), row.Name, q.Value().Dimension())
	}
	if row.HasRange {
		err = q.Set(row.Default, row.Min, row.Max, row.Unit)
	} else {
		err = q.SetValue(row.Default, row.Unit)
	}
	if err != nil {
		return err
	}
	q.SetPrecision(row.Precision)

	return nil
}

// Load parses r and applies it to g. Parse warnings come first in the
// report, in file order.
func Load(g *core.Graph, r io.Reader, opts ...Option) (Report, error) {
	o := buildOptions(opts)
	rows, warns, err := Parse(r)
	if err != nil {
		return Report{}, err
	}
	for _, w := range warns {
		o.logger.Warn("defaults: row skipped", "line", w.Line, "name", w.Name, "err", w.Err)
	}
	rep := Apply(g, rows, opts...)
	rep.Warnings = append(warns, rep.Warnings...)

	return rep, nil
}

// LoadFile is Load on the file at path.
func LoadFile(g *core.Graph, path string, opts ...Option) (Report, error) {
	f, err := os.Open(path)
	if err != nil {
		return Report{}, fmt.Errorf("defaults: %w", err)
	}
	defer f.Close()

	return Load(g, f, opts...)
}
