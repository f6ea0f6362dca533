// Package recipetree models a recipe as a rooted, ordered, labeled tree
// and validates its structural invariants.
//
// 🚀 What is a recipe tree?
//
//	Leaves are Ingredient nodes ("bread", "olive oil"), internal nodes are
//	Action nodes ("toast", "mix"). Every node carries a free-text label, a
//	normalized abstraction category, and (for ingredients) a set of tags
//	drawn from {structure, taste, core}. Edges point from each ingredient
//	or intermediate result to the action that consumes it.
//
// ✨ Key features:
//   - construction-time checks (unique keys, tags only on ingredients)
//   - full validation: single root, no orphans, no cycles, reachability,
//     leaf/internal kind placement
//   - structural hashing: invariant to key renaming, sensitive to labels,
//     kinds, abstractions, tag sets and parent/child shape
//   - lossless JSON round-trip of the external tree_dict schema
//   - deterministic Graphviz DOT export for visualization
//   - recombination prep: label disambiguation, key suffixing and
//     lexicographic child ordering (the ordered-tree precondition for
//     Zhang–Shasha edit distance)
//
// Trees handed to the other packages are treated as read-only once
// validated; derivations always operate on clones.
//
// Complexity: all queries are O(V) or O(V log V) (sorting); hashing is
// O(V log V) over the whole tree.
package recipetree
