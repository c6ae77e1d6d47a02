// SPDX-License-Identifier: MIT

package bfs_test

import (
	"fmt"
	"strings"
)

// adjGraph is a minimal bfs.Graph backed by an adjacency map.
type adjGraph map[string][]string

// edges builds an adjGraph from "A>B" pairs; every endpoint becomes a vertex.
func edges(pairs ...string) adjGraph {
	g := adjGraph{}
	for _, p := range pairs {
		from, to, ok := strings.Cut(p, ">")
		if !ok {
			g[p] = g[p]
			continue
		}
		g[from] = append(g[from], to)
		if _, ok := g[to]; !ok {
			g[to] = nil
		}
	}

	return g
}

func (g adjGraph) Vertices() []string {
	out := make([]string, 0, len(g))
	for v := range g {
		out = append(out, v)
	}

	return out
}

func (g adjGraph) Successors(id string) ([]string, error) {
	s, ok := g[id]
	if !ok {
		return nil, fmt.Errorf("no vertex %q", id)
	}

	return s, nil
}

// brokenGraph fails every Successors call.
type brokenGraph struct{}

func (brokenGraph) Vertices() []string { return []string{"A"} }

func (brokenGraph) Successors(string) ([]string, error) {
	return nil, fmt.Errorf("backend down")
}
