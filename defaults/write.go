// SPDX-License-Identifier: MIT

package defaults

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/katalvlaran/bassgraph/core"
	"github.com/katalvlaran/bassgraph/units"
)

const header = "# name, default, min, max, unit, precision\n"

// Write emits one row per quantity of g in declaration order, in the form
// Load reads back. Bounds are converted to the value's display unit;
// quantities without both bounds get empty min and max.
func Write(w io.Writer, g *core.Graph) error {
	if _, err := io.WriteString(w, header); err != nil {
		return fmt.Errorf("defaults: write: %w", err)
	}
	cw := csv.NewWriter(w)
	for _, q := range g.Quantities() {
		rec, err := record(q)
		if err != nil {
			return err
		}
		if err = cw.Write(rec); err != nil {
			return fmt.Errorf("defaults: write %s: %w", q.Name(), err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("defaults: write: %w", err)
	}

	return nil
}

func record(q *core.Quantity) ([]string, error) {
	unit := q.Unit().String()
	if unit == "" {
		unit = DefaultUnit
	}
	rec := []string{q.Name(), formatFloat(q.Magnitude()), "", "", unit, strconv.Itoa(q.Precision())}
	if !q.HasRange() {
		return rec, nil
	}
	lo, _ := q.Min()
	hi, _ := q.Max()
	lo, err := inUnit(lo, q.Unit())
	if err != nil {
		return nil, fmt.Errorf("defaults: %s min: %w", q.Name(), err)
	}
	hi, err = inUnit(hi, q.Unit())
	if err != nil {
		return nil, fmt.Errorf("defaults: %s max: %w", q.Name(), err)
	}
	rec[2], rec[3] = formatFloat(lo.Magnitude()), formatFloat(hi.Magnitude())

	return rec, nil
}

// inUnit converts v to u unless it is already written in u.
func inUnit(v units.Value, u units.Unit) (units.Value, error) {
	if v.Unit().String() == u.String() {
		return v, nil
	}

	return v.Convert(u)
}

func formatFloat(x float64) string {
	return strconv.FormatFloat(x, 'g', -1, 64)
}

// WriteFile is Write to the file at path, replacing it.
func WriteFile(path string, g *core.Graph) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("defaults: %w", err)
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("defaults: %w", cerr)
		}
	}()

	return Write(f, g)
}
