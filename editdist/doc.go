// Package editdist computes tree edit distance between two recipe trees
// and reconstructs an explicit edit script achieving it.
//
// 🚀 What is tree edit distance?
//
//	The minimum total cost of Match / Rename / Insert / Delete operations
//	transforming one rooted ordered labeled tree into another. This
//	package implements the Zhang–Shasha tree-to-tree correction
//	algorithm, the classical dynamic program over forest distances.
//
// Algorithm Outline:
//  1. Linearize both trees in left-to-right postorder; record each node's
//     leftmost-leaf index.
//  2. Collect keyroots (the root plus every node with a left sibling);
//     they bound the decomposition into forest-distance subproblems.
//  3. For each keyroot pair, fill a forest-distance table bottom-up with
//     the three-way recurrence (delete rightmost root of the left forest /
//     insert rightmost root of the right forest / match the two rightmost
//     roots and recurse), costing every cell via the caller's CostPolicy.
//  4. The final cell of the full table is the distance; per-cell operation
//     tracking yields one optimal edit script.
//
// Tie-break rule (so identical inputs always yield identical scripts):
// at equal cost prefer Match > Rename > Delete > Insert; equal-cost Match
// alternatives resolve to the lexicographically smaller combined node keys
// by virtue of the canonical sibling ordering and fixed iteration order.
//
// ✨ Key features:
//   - caller-supplied cost policy (weights are configuration, not constants)
//   - optional CEL-expression cost policy for config-file-driven costs
//   - deterministic scripts, dependency-consistent operation order
//   - size precondition (ErrOversizeInput) guarding the quadratic DP
//
// Complexity:
//
//	Time   = O(|A|·|B|·min(depth,leaves)²) — standard Zhang–Shasha bound
//	Memory = O(|A|·|B|) for the subtree-distance and script tables
//
// Errors:
//   - recipetree.ErrMalformedTree — either input fails validation.
//   - ErrOversizeInput           — node count exceeds Options.MaxTreeSize.
package editdist
