// SPDX-License-Identifier: MIT

package controller

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// Output formats accepted by Encode.
const (
	FormatYAML = "yaml"
	FormatJSON = "json"
)

// ParamSnapshot is the exported state of one parameter. Magnitudes are in
// the display unit.
type ParamSnapshot struct {
	Name    string   `yaml:"name" json:"name"`
	Group   string   `yaml:"group,omitempty" json:"group,omitempty"`
	Value   float64  `yaml:"value" json:"value"`
	Unit    string   `yaml:"unit,omitempty" json:"unit,omitempty"`
	Min     *float64 `yaml:"min,omitempty" json:"min,omitempty"`
	Max     *float64 `yaml:"max,omitempty" json:"max,omitempty"`
	State   string   `yaml:"state" json:"state"`
	InRange bool     `yaml:"in_range" json:"in_range"`
}

// Snapshot captures every parameter in display order.
func (s *Session) Snapshot() []ParamSnapshot {
	out := make([]ParamSnapshot, 0, len(s.order))
	for _, p := range s.order {
		out = append(out, p.Snapshot())
	}

	return out
}

// Snapshot captures p.
func (p *Param) Snapshot() ParamSnapshot {
	snap := ParamSnapshot{
		Name:    p.Name(),
		Group:   p.Group(),
		Value:   p.Value(),
		Unit:    p.Units(),
		State:   p.State().String(),
		InRange: p.InRange(),
	}
	if _, ok := p.q.Min(); ok {
		lo := p.Min()
		snap.Min = &lo
	}
	if _, ok := p.q.Max(); ok {
		hi := p.Max()
		snap.Max = &hi
	}

	return snap
}

// Encode writes snaps to w as FormatYAML or FormatJSON.
func Encode(w io.Writer, format string, snaps []ParamSnapshot) error {
	switch format {
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(snaps); err != nil {
			return fmt.Errorf("controller: yaml: %w", err)
		}
		return enc.Close()
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(snaps); err != nil {
			return fmt.Errorf("controller: json: %w", err)
		}
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

// DecodeYAML reads snapshots written by Encode in FormatYAML.
func DecodeYAML(r io.Reader) ([]ParamSnapshot, error) {
	var snaps []ParamSnapshot
	if err := yaml.NewDecoder(r).Decode(&snaps); err != nil {
		return nil, fmt.Errorf("controller: yaml: %w", err)
	}

	return snaps, nil
}
