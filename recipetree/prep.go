package recipetree

import (
	"sort"
	"strconv"
)

// Prep helpers executed on clones before recombination. Zhang–Shasha
// assumes an ordered tree (unordered tree edit distance is NP-hard), and
// combining two trees requires globally unique keys and labels.

// DisambiguateLabels appends a 1-based suffix to every label shared by two
// or more nodes, so each label occurs exactly once. Suffix assignment
// follows lexicographic key order for determinism. Returns a new tree.
// Complexity: O(V log V)
func DisambiguateLabels(t *Tree) *Tree {
	out := t.Clone()

	byLabel := make(map[string][]string, len(out.nodes))
	for _, key := range out.Keys() {
		label := out.nodes[key].Label
		byLabel[label] = append(byLabel[label], key)
	}
	for _, keys := range byLabel {
		if len(keys) < 2 {
			continue
		}
		for i, key := range keys {
			out.nodes[key].Label += strconv.Itoa(i + 1)
		}
	}

	return out
}

// SuffixKeys appends "_<suffix>" to every node key, updating parent and
// child references accordingly. Used to keep the two source trees' node
// keys disjoint when their scripts and candidates are combined.
// Returns a new tree.
// Complexity: O(V)
func SuffixKeys(t *Tree, suffix string) *Tree {
	out := New()
	for key, n := range t.nodes {
		c := n.clone()
		c.Key = key + "_" + suffix
		if c.Parent != "" {
			c.Parent += "_" + suffix
		}
		for i, child := range c.Children {
			c.Children[i] = child + "_" + suffix
		}
		out.nodes[c.Key] = c
	}

	return out
}

// SortChildrenByLabel orders every node's children lexicographically by
// child label (ties broken by key), establishing the sibling order the
// edit-distance engine relies on. Returns a new tree.
// Complexity: O(V log V)
func SortChildrenByLabel(t *Tree) *Tree {
	out := t.Clone()
	for _, n := range out.nodes {
		children := n.Children
		sort.SliceStable(children, func(i, j int) bool {
			a, b := out.nodes[children[i]], out.nodes[children[j]]
			if a == nil || b == nil {
				return children[i] < children[j]
			}
			if a.Label != b.Label {
				return a.Label < b.Label
			}
			return a.Key < b.Key
		})
	}

	return out
}

// PrepareForRecombination composes the three prep steps in the order the
// generator expects: disambiguate labels, suffix keys, sort children.
func PrepareForRecombination(t *Tree, suffix string) *Tree {
	return SortChildrenByLabel(SuffixKeys(DisambiguateLabels(t), suffix))
}
