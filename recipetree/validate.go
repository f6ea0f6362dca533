package recipetree

import "fmt"

// Validate checks every structural invariant of a recipe tree:
//
//  1. exactly one node is marked Root;
//  2. every child reference resolves to an existing node;
//  3. every non-root node names an existing parent that lists it as a child;
//  4. parent links contain no cycle;
//  5. every node is reachable from the root;
//  6. leaves are Ingredient nodes and internal nodes are Action nodes.
//
// The external parser's is_tree flag is untrusted; callers re-verify with
// Validate regardless of what the parser claimed.
//
// Returns nil, or ErrMalformedTree wrapped with the violated invariant.
// An empty tree is valid (it has no root to violate anything with).
// Complexity: O(V + E)
func Validate(t *Tree) error {
	return validate(t, true)
}

// ValidateStructure checks invariants 1-5 but not the leaf/internal kind
// placement. Intermediate trees produced partway through an edit-script
// replay may temporarily hold childless actions; they must still be single
// rooted, acyclic and fully connected.
// Complexity: O(V + E)
func ValidateStructure(t *Tree) error {
	return validate(t, false)
}

func validate(t *Tree, checkKinds bool) error {
	if t == nil || len(t.nodes) == 0 {
		return nil
	}

	// 1. Exactly one root.
	root := ""
	for _, k := range t.Keys() {
		if !t.nodes[k].Root {
			continue
		}
		if root != "" {
			return fmt.Errorf("%w: multiple roots %q and %q", ErrMalformedTree, root, k)
		}
		root = k
	}
	if root == "" {
		return fmt.Errorf("%w: no root node", ErrMalformedTree)
	}
	if t.nodes[root].Parent != "" {
		return fmt.Errorf("%w: root %q has parent %q", ErrMalformedTree, root, t.nodes[root].Parent)
	}

	// 2+3. Child references resolve; parent/child links agree.
	for _, k := range t.Keys() {
		n := t.nodes[k]
		for _, c := range n.Children {
			child, ok := t.nodes[c]
			if !ok {
				return fmt.Errorf("%w: node %q lists dangling child %q", ErrMalformedTree, k, c)
			}
			if child.Parent != k {
				return fmt.Errorf("%w: node %q lists child %q whose parent is %q", ErrMalformedTree, k, c, child.Parent)
			}
		}
		if k == root {
			continue
		}
		parent, ok := t.nodes[n.Parent]
		if !ok {
			return fmt.Errorf("%w: node %q is orphaned (parent %q missing)", ErrMalformedTree, k, n.Parent)
		}
		if !containsKey(parent.Children, k) {
			return fmt.Errorf("%w: node %q missing from children of parent %q", ErrMalformedTree, k, n.Parent)
		}
	}

	// 4. No cycle along parent links.
	for _, k := range t.Keys() {
		slow, fast := k, k
		for {
			fast = t.nodes[fast].Parent
			if fast == "" {
				break
			}
			fast = t.nodes[fast].Parent
			if fast == "" {
				break
			}
			slow = t.nodes[slow].Parent
			if slow == fast {
				return fmt.Errorf("%w: cycle through node %q", ErrMalformedTree, k)
			}
		}
	}

	// 5. Full reachability from the root.
	seen := make(map[string]bool, len(t.nodes))
	var walk func(k string)
	walk = func(k string) {
		if seen[k] {
			return
		}
		seen[k] = true
		for _, c := range t.nodes[k].Children {
			walk(c)
		}
	}
	walk(root)
	if len(seen) != len(t.nodes) {
		for _, k := range t.Keys() {
			if !seen[k] {
				return fmt.Errorf("%w: node %q unreachable from root %q", ErrMalformedTree, k, root)
			}
		}
	}

	// 6. Kind/position agreement.
	if checkKinds {
		for _, k := range t.Keys() {
			n := t.nodes[k]
			if len(n.Children) == 0 && n.Kind != Ingredient {
				return fmt.Errorf("%w: leaf %q is not an ingredient", ErrMalformedTree, k)
			}
			if len(n.Children) > 0 && n.Kind != Action {
				return fmt.Errorf("%w: internal node %q is not an action", ErrMalformedTree, k)
			}
		}
	}

	return nil
}

// containsKey reports whether key occurs in keys.
func containsKey(keys []string, key string) bool {
	for _, k := range keys {
		if k == key {
			return true
		}
	}
	return false
}
