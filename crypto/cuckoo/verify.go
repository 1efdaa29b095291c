// Copyright (c) 2017-2018 The qitmeer developers
package cuckoo

import (
	"github.com/pkg/errors"
)

// Verify reports whether the given edge positions form exactly one simple
// cycle of length cycleLen in g. It is pure, total and safe to call with
// arbitrary untrusted input; any input it cannot validate is simply invalid.
// The positions may be supplied in any order.
func (g *Graph) Verify(cycleLen int, edges []uint64) bool {
	return g.VerifyWithReason(cycleLen, edges) == nil
}

// VerifyWithReason is Verify with a diagnostic error naming the first check
// that failed, nil when the cycle is valid. The boolean contract of Verify
// is authoritative; the reason text is for debugging only.
func (g *Graph) VerifyWithReason(cycleLen int, edges []uint64) error {
	// A bipartite graph only admits even cycles, and the empty cycle is not
	// a proof.
	if cycleLen <= 0 || cycleLen%2 == 1 {
		return errors.New("cycle length is not a positive even number")
	}
	if len(edges) != cycleLen {
		return errors.New("length of proof is not correct")
	}

	seen := make(map[uint64]struct{}, len(edges))
	degree := make(map[Node]int, 2*len(edges))
	for _, pos := range edges {
		if _, ok := seen[pos]; ok {
			return errors.New("duplicate edge in proof")
		}
		seen[pos] = struct{}{}

		e, ok := g.EdgeAt(pos)
		if !ok {
			return errors.New("edge index out of range")
		}
		degree[e.U]++
		degree[e.V]++
	}

	// A node entered once but never left, or entered through more than two
	// edges, cannot sit on a single simple cycle.
	for _, d := range degree {
		if d < 2 {
			return errors.New("dead end in proof")
		}
		if d > 2 {
			return errors.New("there are branches in proof")
		}
	}

	// Degree counts alone cannot tell one cycle from a union of several
	// disjoint ones. Walk the selected subgraph from an arbitrary node,
	// consuming each edge once; a valid proof returns to the start after
	// exactly cycleLen steps. The walk is multiset-aware so parallel edges
	// between the same pair are consumed separately.
	adj := make(map[Node]map[Node]int, len(degree))
	for pos := range seen {
		e := g.edges[pos]
		addMulti(adj, e.U, e.V)
		addMulti(adj, e.V, e.U)
	}
	var start Node
	for n := range adj {
		start = n
		break
	}
	pos, steps := start, 0
	for {
		next, ok := anyNeighbor(adj[pos])
		if !ok {
			if pos == start && steps == cycleLen {
				return nil
			}
			return errors.New("cycle is disjoint")
		}
		adj[pos][next]--
		adj[next][pos]--
		pos = next
		if steps++; steps > cycleLen {
			return errors.New("cycle is too long")
		}
	}
}

func addMulti(adj map[Node]map[Node]int, from, to Node) {
	m, ok := adj[from]
	if !ok {
		m = make(map[Node]int, 2)
		adj[from] = m
	}
	m[to]++
}

func anyNeighbor(m map[Node]int) (Node, bool) {
	for n, count := range m {
		if count > 0 {
			return n, true
		}
	}
	return Node{}, false
}
