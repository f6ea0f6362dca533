// Package editdist - operation, script, cost-policy and option types.
package editdist

import (
	"errors"

	"github.com/moranmiz/Cooking-Up-Creativity/recipetree"
)

// ErrOversizeInput indicates a tree exceeds the configured node bound.
// The check runs before any DP work: partial tables are not resumable, so
// the budget is enforced up front rather than by mid-computation cancellation.
var ErrOversizeInput = errors.New("editdist: input tree exceeds size bound")

// DefaultMaxTreeSize bounds tree size when Options.MaxTreeSize is zero.
// Zhang–Shasha is quadratic in the product of subtree sizes; recipe trees
// beyond this bound should be re-sampled by the caller, not ground through.
const DefaultMaxTreeSize = 120

// OpKind enumerates the edit operation variants.
type OpKind int

const (
	// OpMatch maps a node of A to an equal-cost-zero node of B.
	OpMatch OpKind = iota

	// OpRename maps a node of A to a node of B at a positive rename cost.
	OpRename

	// OpInsert adds a node of B missing from A.
	OpInsert

	// OpDelete removes a node of A missing from B.
	OpDelete
)

// String returns the lowercase name of the operation kind.
func (k OpKind) String() string {
	switch k {
	case OpMatch:
		return "match"
	case OpRename:
		return "rename"
	case OpInsert:
		return "insert"
	default:
		return "delete"
	}
}

// Op is a single edit operation.
//
// From is a key of tree A (Match, Rename, Delete); To is a key of tree B
// (Match, Rename, Insert). Insert additionally records the B-side parent
// key and the position among that parent's children.
type Op struct {
	Kind   OpKind
	From   string
	To     string
	Parent string
	Pos    int

	// Cost is the non-negative cost this operation contributed.
	Cost float64
}

// Script is the ordered operation list for one (source, target) pair plus
// the scalar total cost. Operations carry an implicit dependency relation:
// an Insert depends on the insertion of its parent, a Delete must occur
// before the delete of its parent. The list is one linearization of that
// partial order, with child deletes and subtree operations emitted before
// their ancestors.
type Script struct {
	Ops      []Op
	Distance float64
}

// CostPolicy supplies the three operation costs. Implementations must be
// deterministic and return non-negative values.
type CostPolicy interface {
	// InsertCost prices inserting node n (from tree B).
	InsertCost(n *recipetree.Node) float64

	// DeleteCost prices deleting node n (from tree A).
	DeleteCost(n *recipetree.Node) float64

	// RenameCost prices relabeling from (tree A) into to (tree B).
	// By convention it returns 0 when kind and abstraction coincide and a
	// value increasing with label/abstraction/tag dissimilarity otherwise;
	// a zero-cost pair is reported as Match, a positive one as Rename.
	RenameCost(from, to *recipetree.Node) float64
}

// Options configures Distance.
type Options struct {
	// Costs is the cost policy; nil falls back to DefaultCosts().
	Costs CostPolicy

	// MaxTreeSize rejects inputs with more nodes (0 = DefaultMaxTreeSize,
	// negative = unbounded).
	MaxTreeSize int
}

// DefaultOptions returns the default engine configuration.
func DefaultOptions() Options {
	return Options{Costs: DefaultCosts(), MaxTreeSize: DefaultMaxTreeSize}
}
