// SPDX-License-Identifier: MIT
// Package dfs: cycle detection on directed dependency graphs.
//
// DetectCycles runs a three-colour DFS and records the cycle closed by every
// back edge (Gray → Gray), self-loops included. Each cycle is rotated so its
// smallest vertex comes first (Booth's algorithm); rotation never reverses
// direction, because A→B→C→A and A→C→B→A are different dependency loops.
// Duplicate cycles are dropped and the list is sorted by signature.
//
// A DFS forest reports at least one cycle per strongly connected component
// that has one; it does not enumerate every simple cycle.
//
// Complexity:
//
//   - Time:   O(V + E + C·L)   (C=#cycles recorded, L=avg cycle length)
//   - Memory: O(V + L_max)
package dfs

import (
	"fmt"
	"sort"
)

// cycleFinder carries the state of one DetectCycles run.
type cycleFinder struct {
	graph  Graph
	state  map[string]int
	path   []string
	seen   map[string]struct{}
	cycles [][]string
}

// DetectCycles reports the cycles of g as closed sequences [v0, v1, ..., v0]
// where each vertex is followed by one of its successors.
// Returns (false, nil, nil) for a nil or acyclic graph.
func DetectCycles(g Graph) (bool, [][]string, error) {
	if g == nil {
		return false, nil, nil
	}
	verts := sortedCopy(g.Vertices())
	cf := &cycleFinder{
		graph: g,
		state: make(map[string]int, len(verts)),
		path:  make([]string, 0, len(verts)),
		seen:  make(map[string]struct{}),
	}
	for _, v := range verts {
		if cf.state[v] != White {
			continue
		}
		if err := cf.visit(v); err != nil {
			return false, nil, fmt.Errorf("dfs: DetectCycles: %w", err)
		}
	}
	if len(cf.cycles) == 0 {
		return false, nil, nil
	}
	sort.Slice(cf.cycles, func(i, j int) bool {
		return JoinSig(cf.cycles[i]) < JoinSig(cf.cycles[j])
	})

	return true, cf.cycles, nil
}

func (cf *cycleFinder) visit(id string) error {
	cf.state[id] = Gray
	cf.path = append(cf.path, id)

	succ, err := cf.graph.Successors(id)
	if err != nil {
		return fmt.Errorf("%w: %q: %w", ErrNeighborFetch, id, err)
	}
	for _, nbr := range sortedCopy(succ) {
		switch cf.state[nbr] {
		case White:
			if err = cf.visit(nbr); err != nil {
				return err
			}
		case Gray:
			cf.record(nbr)
		}
	}

	cf.path = cf.path[:len(cf.path)-1]
	cf.state[id] = Black

	return nil
}

// record closes the cycle from start to the top of the path and stores its
// canonical rotation once.
func (cf *cycleFinder) record(start string) {
	idx := IndexOf(cf.path, start)
	base := append([]string(nil), cf.path[idx:]...)

	rot := MinimalRotation(base)
	closed := append(rot, rot[0])
	sig := JoinSig(closed)
	if _, dup := cf.seen[sig]; dup {
		return
	}
	cf.seen[sig] = struct{}{}
	cf.cycles = append(cf.cycles, closed)
}
