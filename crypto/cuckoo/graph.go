// Copyright (c) 2017-2018 The qitmeer developers
package cuckoo

import (
	"fmt"

	"github.com/Qitmeer/cuckoocycle/crypto/cuckoo/siphash"
	"github.com/pkg/errors"
)

// NodeSide tags which partition of the bipartite graph a node belongs to.
type NodeSide uint8

const (
	SideU NodeSide = iota
	SideV
)

// Node identifies a vertex as a (partition, index) pair. Nodes in U and V
// with the same index are distinct. Node is comparable and safe to use as a
// map or set key.
type Node struct {
	Side NodeSide
	ID   uint64
}

// UNode returns the U-partition node with the given index.
func UNode(id uint64) Node { return Node{Side: SideU, ID: id} }

// VNode returns the V-partition node with the given index.
func VNode(id uint64) Node { return Node{Side: SideV, ID: id} }

func (n Node) String() string {
	if n.Side == SideU {
		return fmt.Sprintf("u%d", n.ID)
	}
	return fmt.Sprintf("v%d", n.ID)
}

// Edge is an oriented pair from a U node to a V node.
type Edge struct {
	U Node
	V Node
}

// Graph is a bipartite multigraph with n edges and 2n nodes. The edge slice
// is the system of record: an edge's identity is its position in the slice,
// and both search and verification exchange cycles as sets of positions.
// A Graph is immutable once built.
type Graph struct {
	edges []Edge
}

// BuildGraph derives the n-edge graph for the given siphash key. Edge i
// connects U(hash(2i) mod n) to V(hash(2i+1) mod n); endpoints are used as
// produced, with no folding or renumbering, so positions stay stable for the
// lifetime of the graph. A zero edge count is rejected.
func BuildGraph(key [4]uint64, n uint64) (*Graph, error) {
	if n == 0 {
		return nil, errors.New("graph needs at least one edge")
	}
	hasher := siphash.New(key)
	edges := make([]Edge, 0, n)
	for i := uint64(0); i < n; i++ {
		u := hasher.Hash(2*i) % n
		v := hasher.Hash(2*i+1) % n
		edges = append(edges, Edge{U: UNode(u), V: VNode(v)})
	}
	return &Graph{edges: edges}, nil
}

// NewGraphFromPairs builds a graph directly from (u, v) index pairs, in
// order. Mostly useful for fixtures and for verifying externally supplied
// edge lists.
func NewGraphFromPairs(pairs [][2]uint64) *Graph {
	edges := make([]Edge, 0, len(pairs))
	for _, p := range pairs {
		edges = append(edges, Edge{U: UNode(p[0]), V: VNode(p[1])})
	}
	return &Graph{edges: edges}
}

// EdgeCount returns the number of edges in the graph.
func (g *Graph) EdgeCount() int {
	return len(g.edges)
}

// NodeCount returns the number of nodes in the graph, counting both
// partitions.
func (g *Graph) NodeCount() int {
	return len(g.edges) * 2
}

// EdgeAt returns the edge at the given position, reporting whether the
// position is in range.
func (g *Graph) EdgeAt(pos uint64) (Edge, bool) {
	if pos >= uint64(len(g.edges)) {
		return Edge{}, false
	}
	return g.edges[pos], true
}
