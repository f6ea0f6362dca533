package recombine

import (
	"math/rand"
	"sort"

	"github.com/moranmiz/Cooking-Up-Creativity/editdist"
	"github.com/moranmiz/Cooking-Up-Creativity/recipetree"
)

// DepGraph is the dependency partial order over a script's operations.
//
// Edges: an Insert depends on the Insert of its parent (when the parent is
// itself inserted); a Delete depends on the Deletes of its children (you
// cannot remove a parent while orphaning a still-present child) — note the
// inverted direction relative to Insert. Match and Rename are unconstrained.
type DepGraph struct {
	ops     []editdist.Op
	prereqs [][]int // prereqs[i] lists op indices that must precede op i
}

// BuildDependencies derives the dependency graph for script, consulting
// tree A for delete child relations.
// Complexity: O(S + V)
func BuildDependencies(script *editdist.Script, a *recipetree.Tree) *DepGraph {
	g := &DepGraph{
		ops:     script.Ops,
		prereqs: make([][]int, len(script.Ops)),
	}

	insertIdx := make(map[string]int)
	deleteIdx := make(map[string]int)
	for i, op := range g.ops {
		switch op.Kind {
		case editdist.OpInsert:
			insertIdx[op.To] = i
		case editdist.OpDelete:
			deleteIdx[op.From] = i
		}
	}

	for i, op := range g.ops {
		switch op.Kind {
		case editdist.OpInsert:
			if p, ok := insertIdx[op.Parent]; ok {
				g.prereqs[i] = append(g.prereqs[i], p)
			}
		case editdist.OpDelete:
			n := a.Node(op.From)
			if n == nil {
				continue
			}
			for _, c := range n.Children {
				if d, ok := deleteIdx[c]; ok {
					g.prereqs[i] = append(g.prereqs[i], d)
				}
			}
		}
	}

	return g
}

// Len returns the number of operations in the graph.
func (g *DepGraph) Len() int { return len(g.ops) }

// priority classes for the biased walk.
const (
	classEager = iota
	classNormal
	classLazy
)

// classify places an operation into a priority class under policy.
// Eager wins when an operation qualifies for both classes.
func classify(op editdist.Op, policy *PriorityPolicy, a, b *recipetree.Tree) int {
	if policy == nil {
		return classNormal
	}
	if policy.EagerCoreInserts && op.To != "" {
		if n := b.Node(op.To); n != nil && hasCoreTag(n) &&
			(op.Kind == editdist.OpInsert || op.Kind == editdist.OpRename) {
			return classEager
		}
	}
	if policy.LazyStructureDeletes && op.From != "" {
		if n := a.Node(op.From); n != nil && hasStructureTag(n) &&
			(op.Kind == editdist.OpDelete || op.Kind == editdist.OpRename) {
			return classLazy
		}
	}

	return classNormal
}

func hasCoreTag(n *recipetree.Node) bool {
	for _, t := range n.Tags {
		if t == recipetree.TagCore {
			return true
		}
	}
	return false
}

func hasStructureTag(n *recipetree.Node) bool {
	for _, t := range n.Tags {
		if t == recipetree.TagStructure {
			return true
		}
	}
	return false
}

// LinearExtension draws one randomized topological order of the graph: a
// randomized Kahn walk that repeatedly chooses uniformly among operations
// whose prerequisites are satisfied (within the most urgent non-empty
// priority class when a policy is set).
//
// The ready set is kept sorted by op index, so the walk is a pure function
// of (graph, rng state, policy). Returns ErrCyclicDependencies if the walk
// cannot exhaust the graph.
// Complexity: O(S² ) worst case on the ready-set bookkeeping; scripts are
// small (bounded by the edit-distance size precondition).
func (g *DepGraph) LinearExtension(rng *rand.Rand, policy *PriorityPolicy, a, b *recipetree.Tree) ([]int, error) {
	n := len(g.ops)
	remaining := make([]int, n)
	dependents := make([][]int, n)
	for i, pre := range g.prereqs {
		remaining[i] = len(pre)
		for _, p := range pre {
			dependents[p] = append(dependents[p], i)
		}
	}

	ready := make([]int, 0, n)
	for i := 0; i < n; i++ {
		if remaining[i] == 0 {
			ready = append(ready, i)
		}
	}

	order := make([]int, 0, n)
	for len(ready) > 0 {
		// Partition the ready set by priority class; pick uniformly within
		// the most urgent non-empty class.
		pool := ready
		if policy != nil {
			best := classLazy + 1
			for _, i := range ready {
				if c := classify(g.ops[i], policy, a, b); c < best {
					best = c
				}
			}
			pool = pool[:0:0]
			for _, i := range ready {
				if classify(g.ops[i], policy, a, b) == best {
					pool = append(pool, i)
				}
			}
		}

		pick := pool[rng.Intn(len(pool))]
		order = append(order, pick)

		// Remove pick from the sorted ready set.
		at := sort.SearchInts(ready, pick)
		ready = append(ready[:at], ready[at+1:]...)

		for _, d := range dependents[pick] {
			remaining[d]--
			if remaining[d] == 0 {
				at = sort.SearchInts(ready, d)
				ready = append(ready, 0)
				copy(ready[at+1:], ready[at:])
				ready[at] = d
			}
		}
	}

	if len(order) != n {
		return nil, ErrCyclicDependencies
	}

	return order, nil
}
