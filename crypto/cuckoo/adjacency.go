// Copyright (c) 2017-2018 The qitmeer developers
package cuckoo

import (
	mapset "github.com/deckarep/golang-set/v2"
)

// AdjacencyIndex is a disposable view of a Graph mapping each node to its
// current neighbor set. Parallel edges collapse into a single adjacency
// fact; edge identity lives only in the Graph's position-indexed slice.
// The index is mutable and must be owned by a single trim/search call chain.
type AdjacencyIndex struct {
	neighbors map[Node]mapset.Set[Node]
}

// NewAdjacencyIndex builds the index from a graph, inserting both directions
// of every edge.
func NewAdjacencyIndex(g *Graph) *AdjacencyIndex {
	idx := &AdjacencyIndex{
		neighbors: make(map[Node]mapset.Set[Node], g.NodeCount()),
	}
	for _, e := range g.edges {
		idx.connect(e.U, e.V)
	}
	return idx
}

// Len returns the number of nodes currently present.
func (idx *AdjacencyIndex) Len() int {
	return len(idx.neighbors)
}

// IsEmpty reports whether no nodes remain.
func (idx *AdjacencyIndex) IsEmpty() bool {
	return len(idx.neighbors) == 0
}

// Degree returns the number of distinct neighbors of n, zero if n is not
// present.
func (idx *AdjacencyIndex) Degree(n Node) int {
	set, ok := idx.neighbors[n]
	if !ok {
		return 0
	}
	return set.Cardinality()
}

// Neighbors returns a snapshot of n's current neighbors.
func (idx *AdjacencyIndex) Neighbors(n Node) []Node {
	set, ok := idx.neighbors[n]
	if !ok {
		return nil
	}
	return set.ToSlice()
}

// Nodes returns a snapshot of all nodes currently present.
func (idx *AdjacencyIndex) Nodes() []Node {
	nodes := make([]Node, 0, len(idx.neighbors))
	for n := range idx.neighbors {
		nodes = append(nodes, n)
	}
	return nodes
}

// Clone returns a deep copy. Concurrent searchers must each work on their
// own clone; branches of a single search share one index through the
// undo-log instead.
func (idx *AdjacencyIndex) Clone() *AdjacencyIndex {
	cp := &AdjacencyIndex{
		neighbors: make(map[Node]mapset.Set[Node], len(idx.neighbors)),
	}
	for n, set := range idx.neighbors {
		cp.neighbors[n] = set.Clone()
	}
	return cp
}

// connect records that a and b are adjacent, in both directions.
func (idx *AdjacencyIndex) connect(a, b Node) {
	sa, ok := idx.neighbors[a]
	if !ok {
		sa = mapset.NewThreadUnsafeSet[Node]()
		idx.neighbors[a] = sa
	}
	sa.Add(b)
	sb, ok := idx.neighbors[b]
	if !ok {
		sb = mapset.NewThreadUnsafeSet[Node]()
		idx.neighbors[b] = sb
	}
	sb.Add(a)
}

// disconnect removes the adjacency between a and b in both directions.
// Nodes left without neighbors stay present until the next trim pass.
func (idx *AdjacencyIndex) disconnect(a, b Node) {
	if sa, ok := idx.neighbors[a]; ok {
		sa.Remove(b)
	}
	if sb, ok := idx.neighbors[b]; ok {
		sb.Remove(a)
	}
}

// Trim runs up to rounds passes of degree-based edge trimming. Each pass
// detaches every node with fewer than two neighbors from its neighbors'
// sets and then drops emptied nodes. A node of degree below two can never
// sit on a simple cycle, so trimming any number of rounds never removes a
// cycle edge; rounds is purely a cost-control cutoff. Trimming stops early
// once the index is empty or a pass removes nothing.
func (idx *AdjacencyIndex) Trim(rounds int) {
	for r := 0; r < rounds; r++ {
		if idx.IsEmpty() {
			return
		}
		changed := false
		for node, set := range idx.neighbors {
			if set.Cardinality() >= 2 {
				continue
			}
			set.Each(func(nb Node) bool {
				if other, ok := idx.neighbors[nb]; ok {
					other.Remove(node)
				}
				return false
			})
			if set.Cardinality() > 0 {
				changed = true
			}
			set.Clear()
		}
		for node, set := range idx.neighbors {
			if set.IsEmpty() {
				delete(idx.neighbors, node)
				changed = true
			}
		}
		if !changed {
			return
		}
	}
}
