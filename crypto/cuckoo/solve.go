// Copyright (c) 2017-2018 The qitmeer developers
package cuckoo

import (
	"runtime"
	"sort"
	"sync"
)

// DefaultTrimRounds is the trim budget used by the convenience solve path.
// More rounds shrink the search's branching factor at the price of extra
// preprocessing; fewer rounds only cost search time, never solutions.
const DefaultTrimRounds = 100

// Solve searches g for a simple cycle of exactly cycleLen edges and returns
// the sorted edge positions. The boolean is false when no cycle of that
// length was found, which is a common and legitimate outcome, not an error.
func (g *Graph) Solve(cycleLen int) ([]uint64, bool) {
	idx := NewAdjacencyIndex(g)
	idx.Trim(DefaultTrimRounds)
	return g.Search(idx, cycleLen)
}

// Search runs a backtracking depth-first walk over a trimmed index, trying
// every remaining node of degree two or more as a cycle start. Each branch
// excludes the edges already on the current path by disconnecting them and
// reconnecting on backtrack, so sibling branches never observe each other's
// removals. Every closed walk of the right length is re-checked through
// Verify before being accepted; walks that close but are not a single
// simple cycle are discarded and the search continues.
//
// Worst-case cost is exponential in cycleLen with the post-trim maximum
// degree as branching factor; trimming is the cost-control lever.
func (g *Graph) Search(idx *AdjacencyIndex, cycleLen int) ([]uint64, bool) {
	// Cycles in a bipartite graph alternate partitions, so only positive
	// even lengths can exist.
	if cycleLen < 2 || cycleLen%2 == 1 {
		return nil, false
	}
	s := &searcher{
		g:        g,
		idx:      idx,
		target:   cycleLen,
		path:     make([]Edge, 0, cycleLen),
		position: edgePositions(g),
	}
	for _, node := range idx.Nodes() {
		if idx.Degree(node) < 2 {
			continue
		}
		if cycle, ok := s.walk(node, node, cycleLen); ok {
			return cycle, true
		}
	}
	return nil, false
}

// searcher carries the state of one depth-first search. The path doubles as
// the undo-log: edges are disconnected when pushed and reconnected when
// popped.
type searcher struct {
	g        *Graph
	idx      *AdjacencyIndex
	target   int
	path     []Edge
	position map[Edge]uint64
}

func (s *searcher) walk(start, cur Node, remain int) ([]uint64, bool) {
	if remain == 0 {
		if cur != start {
			return nil, false
		}
		cycle, ok := s.pathPositions()
		if !ok || !s.g.Verify(s.target, cycle) {
			return nil, false
		}
		return cycle, true
	}
	for _, nb := range s.idx.Neighbors(cur) {
		s.idx.disconnect(cur, nb)
		s.path = append(s.path, orient(cur, nb))
		cycle, ok := s.walk(start, nb, remain-1)
		s.path = s.path[:len(s.path)-1]
		s.idx.connect(cur, nb)
		if ok {
			return cycle, true
		}
	}
	return nil, false
}

// pathPositions maps the walked node pairs back to edge positions in the
// graph, sorted ascending. A missing pair would mean the index disagrees
// with the graph it was built from; that is a searcher bug, surfaced here
// as a failed candidate rather than a panic.
func (s *searcher) pathPositions() ([]uint64, bool) {
	cycle := make([]uint64, 0, len(s.path))
	for _, e := range s.path {
		pos, ok := s.position[e]
		if !ok {
			return nil, false
		}
		cycle = append(cycle, pos)
	}
	sort.Slice(cycle, func(i, j int) bool {
		return cycle[i] < cycle[j]
	})
	return cycle, true
}

// orient normalizes a traversal step to the graph's U→V edge orientation.
func orient(a, b Node) Edge {
	if a.Side == SideU {
		return Edge{U: a, V: b}
	}
	return Edge{U: b, V: a}
}

// edgePositions indexes each distinct (U, V) pair by its first position.
// Parallel edges share one adjacency fact, so the first position stands for
// the pair during search; verification accepts any position of the pair.
func edgePositions(g *Graph) map[Edge]uint64 {
	position := make(map[Edge]uint64, len(g.edges))
	for i, e := range g.edges {
		if _, ok := position[e]; !ok {
			position[e] = uint64(i)
		}
	}
	return position
}

// Solver solves graphs with one worker per CPU, each exploring a share of
// the start nodes on its own private copy of the trimmed index.
type Solver struct {
	// TrimRounds is the trim budget applied before searching.
	TrimRounds int

	ncpu int
}

// NewSolver returns a Solver using every available CPU, capped at 32.
func NewSolver() *Solver {
	ncpu := runtime.NumCPU()
	if ncpu > 32 {
		ncpu = 32
	}
	return &Solver{
		TrimRounds: DefaultTrimRounds,
		ncpu:       ncpu,
	}
}

// Solve searches g for a cycle of exactly cycleLen edges, fanning the start
// nodes out across workers. The first verified cycle wins. There is no
// internal cancellation; callers bounding search time should wrap this call
// and treat a timeout as "not found within budget".
func (s *Solver) Solve(g *Graph, cycleLen int) ([]uint64, bool) {
	if cycleLen < 2 || cycleLen%2 == 1 {
		return nil, false
	}
	idx := NewAdjacencyIndex(g)
	idx.Trim(s.TrimRounds)

	starts := make([]Node, 0, idx.Len())
	for _, node := range idx.Nodes() {
		if idx.Degree(node) >= 2 {
			starts = append(starts, node)
		}
	}
	if len(starts) == 0 {
		return nil, false
	}
	ncpu := s.ncpu
	if ncpu < 1 {
		ncpu = 1
	}
	if ncpu > len(starts) {
		ncpu = len(starts)
	}

	// Read-only once built, so workers can share it.
	position := edgePositions(g)

	var (
		wg     sync.WaitGroup
		mutex  sync.Mutex
		answer []uint64
		found  bool
	)
	for j := 0; j < ncpu; j++ {
		wg.Add(1)
		go func(j int) {
			defer wg.Done()
			worker := &searcher{
				g:        g,
				idx:      idx.Clone(),
				target:   cycleLen,
				path:     make([]Edge, 0, cycleLen),
				position: position,
			}
			for i := j; i < len(starts); i += ncpu {
				mutex.Lock()
				done := found
				mutex.Unlock()
				if done {
					return
				}
				if cycle, ok := worker.walk(starts[i], starts[i], cycleLen); ok {
					mutex.Lock()
					if !found {
						answer, found = cycle, true
					}
					mutex.Unlock()
					return
				}
			}
		}(j)
	}
	wg.Wait()
	return answer, found
}
