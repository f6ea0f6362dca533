package editdist

import (
	"fmt"
	"sort"

	"github.com/moranmiz/Cooking-Up-Creativity/recipetree"
)

// linearization is the postorder view of one tree, 1-based so DP indices
// match the literature.
type linearization struct {
	keys  []string          // keys[i] is the postorder-i node key
	nodes []*recipetree.Node // nodes[i] is the postorder-i node
	lml   []int             // lml[i] is the postorder index of i's leftmost leaf
	kr    []int             // keyroots in ascending postorder
}

// linearize builds the postorder tables for t (nil-safe, empty allowed).
func linearize(t *recipetree.Tree) *linearization {
	l := &linearization{}
	if t == nil {
		t = recipetree.New()
	}

	post := t.Postorder()
	n := len(post)
	l.keys = make([]string, n+1)
	l.nodes = make([]*recipetree.Node, n+1)
	l.lml = make([]int, n+1)

	index := make(map[string]int, n)
	for i, key := range post {
		index[key] = i + 1
	}
	for i := 1; i <= n; i++ {
		l.keys[i] = post[i-1]
		l.nodes[i] = t.Node(post[i-1])
		if len(l.nodes[i].Children) == 0 {
			l.lml[i] = i
		} else {
			// Children precede their parent in postorder, so the first
			// child's leftmost leaf is already known.
			l.lml[i] = l.lml[index[l.nodes[i].Children[0]]]
		}
	}

	// Keyroots: the highest node for each distinct leftmost-leaf value,
	// i.e. the root plus every node with a left sibling.
	highest := make(map[int]int, n)
	for i := 1; i <= n; i++ {
		if i > highest[l.lml[i]] {
			highest[l.lml[i]] = i
		}
	}
	for _, i := range highest {
		l.kr = append(l.kr, i)
	}
	sort.Ints(l.kr)

	return l
}

// Distance computes the Zhang–Shasha tree edit distance from a to b and
// reconstructs one optimal edit script. Both trees are validated first;
// either failing yields recipetree.ErrMalformedTree. Node counts beyond
// Options.MaxTreeSize yield ErrOversizeInput before any DP work starts.
//
// The distance between two empty trees is 0 with an empty script.
// Identical (a, b, opts) always produce the identical script.
func Distance(a, b *recipetree.Tree, opts *Options) (float64, *Script, error) {
	o := DefaultOptions()
	if opts != nil {
		o = *opts
	}
	if o.Costs == nil {
		o.Costs = DefaultCosts()
	}
	bound := o.MaxTreeSize
	if bound == 0 {
		bound = DefaultMaxTreeSize
	}

	if err := recipetree.Validate(a); err != nil {
		return 0, nil, fmt.Errorf("tree A: %w", err)
	}
	if err := recipetree.Validate(b); err != nil {
		return 0, nil, fmt.Errorf("tree B: %w", err)
	}

	la, lb := linearize(a), linearize(b)
	n, m := len(la.keys)-1, len(lb.keys)-1
	if bound > 0 && (n > bound || m > bound) {
		return 0, nil, fmt.Errorf("%w: %d and %d nodes, bound %d", ErrOversizeInput, n, m, bound)
	}

	// Degenerate shapes: one side empty means a pure insert/delete script.
	if n == 0 && m == 0 {
		return 0, &Script{}, nil
	}
	if n == 0 {
		script := &Script{}
		for j := 1; j <= m; j++ {
			op := insertOp(lb, j, o.Costs.InsertCost(lb.nodes[j]))
			script.Ops = append(script.Ops, op)
			script.Distance += op.Cost
		}
		return script.Distance, script, nil
	}
	if m == 0 {
		script := &Script{}
		for i := 1; i <= n; i++ {
			c := o.Costs.DeleteCost(la.nodes[i])
			script.Ops = append(script.Ops, Op{Kind: OpDelete, From: la.keys[i], Cost: c})
			script.Distance += c
		}
		return script.Distance, script, nil
	}

	// Subtree-distance and subtree-script tables, filled keyroot by keyroot.
	td := make([][]float64, n+1)
	tdOps := make([][][]Op, n+1)
	for i := range td {
		td[i] = make([]float64, m+1)
		tdOps[i] = make([][]Op, m+1)
	}

	for _, i := range la.kr {
		for _, j := range lb.kr {
			forestDist(la, lb, i, j, o.Costs, td, tdOps)
		}
	}

	script := &Script{Ops: tdOps[n][m], Distance: td[n][m]}

	return script.Distance, script, nil
}

// forestDist fills the forest-distance table for the keyroot pair (i, j)
// and records subtree distances (and their scripts) for every cell whose
// forests are whole subtrees.
func forestDist(la, lb *linearization, i, j int, costs CostPolicy, td [][]float64, tdOps [][][]Op) {
	li, lj := la.lml[i], lb.lml[j]
	w, h := i-li+1, j-lj+1

	fd := make([][]float64, w+1)
	fops := make([][][]Op, w+1)
	for x := range fd {
		fd[x] = make([]float64, h+1)
		fops[x] = make([][]Op, h+1)
	}

	// Left column: delete the whole left forest, children before parents.
	for x := 1; x <= w; x++ {
		di := li + x - 1
		c := costs.DeleteCost(la.nodes[di])
		fd[x][0] = fd[x-1][0] + c
		fops[x][0] = appendOp(fops[x-1][0], Op{Kind: OpDelete, From: la.keys[di], Cost: c})
	}
	// Top row: insert the whole right forest.
	for y := 1; y <= h; y++ {
		dj := lj + y - 1
		op := insertOp(lb, dj, costs.InsertCost(lb.nodes[dj]))
		fd[0][y] = fd[0][y-1] + op.Cost
		fops[0][y] = appendOp(fops[0][y-1], op)
	}

	for x := 1; x <= w; x++ {
		di := li + x - 1
		for y := 1; y <= h; y++ {
			dj := lj + y - 1

			delCost := costs.DeleteCost(la.nodes[di])
			insOp := insertOp(lb, dj, costs.InsertCost(lb.nodes[dj]))
			del := fd[x-1][y] + delCost
			ins := fd[x][y-1] + insOp.Cost

			if la.lml[di] == li && lb.lml[dj] == lj {
				// Both prefixes are whole subtrees: the diagonal is a
				// direct Match/Rename of the two rightmost roots.
				rc := costs.RenameCost(la.nodes[di], lb.nodes[dj])
				diag := fd[x-1][y-1] + rc

				// Tie-break: Match/Rename > Delete > Insert at equal cost.
				switch {
				case diag <= del && diag <= ins:
					kind := OpRename
					if rc == 0 {
						kind = OpMatch
					}
					fd[x][y] = diag
					fops[x][y] = appendOp(fops[x-1][y-1], Op{
						Kind: kind, From: la.keys[di], To: lb.keys[dj], Cost: rc,
					})
				case del <= ins:
					fd[x][y] = del
					fops[x][y] = appendOp(fops[x-1][y], Op{Kind: OpDelete, From: la.keys[di], Cost: delCost})
				default:
					fd[x][y] = ins
					fops[x][y] = appendOp(fops[x][y-1], insOp)
				}

				// This cell is the subtree distance of (di, dj).
				td[di][dj] = fd[x][y]
				tdOps[di][dj] = cloneOps(fops[x][y])
			} else {
				// The diagonal jumps over the already-solved subtree pair.
				xp, yp := la.lml[di]-li, lb.lml[dj]-lj
				diag := fd[xp][yp] + td[di][dj]

				switch {
				case diag <= del && diag <= ins:
					fd[x][y] = diag
					fops[x][y] = concatOps(fops[xp][yp], tdOps[di][dj])
				case del <= ins:
					fd[x][y] = del
					fops[x][y] = appendOp(fops[x-1][y], Op{Kind: OpDelete, From: la.keys[di], Cost: delCost})
				default:
					fd[x][y] = ins
					fops[x][y] = appendOp(fops[x][y-1], insOp)
				}
			}
		}
	}
}

// insertOp builds the Insert operation for postorder node j of B, carrying
// the B-side parent key and sibling position.
func insertOp(lb *linearization, j int, cost float64) Op {
	n := lb.nodes[j]
	op := Op{Kind: OpInsert, To: lb.keys[j], Parent: n.Parent, Cost: cost}
	if n.Parent != "" {
		// Sibling position inside the parent's ordered child list.
		for idx := j + 1; idx < len(lb.nodes); idx++ {
			if lb.keys[idx] == n.Parent {
				for pos, c := range lb.nodes[idx].Children {
					if c == lb.keys[j] {
						op.Pos = pos
					}
				}
				break
			}
		}
	}

	return op
}

// appendOp returns base + op in a freshly allocated slice; DP cells must
// never alias each other's backing arrays.
func appendOp(base []Op, op Op) []Op {
	out := make([]Op, len(base)+1)
	copy(out, base)
	out[len(base)] = op

	return out
}

// concatOps returns a + b in a freshly allocated slice.
func concatOps(a, b []Op) []Op {
	out := make([]Op, len(a)+len(b))
	copy(out, a)
	copy(out[len(a):], b)

	return out
}

// cloneOps returns a defensive copy of ops.
func cloneOps(ops []Op) []Op {
	out := make([]Op, len(ops))
	copy(out, ops)

	return out
}
