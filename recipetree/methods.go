package recipetree

import "sort"

// Keys returns all node keys in lexicographic order.
// Map iteration order is irrelevant: callers always see a stable sequence.
// Complexity: O(V log V)
func (t *Tree) Keys() []string {
	keys := make([]string, 0, len(t.nodes))
	for k := range t.nodes {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	return keys
}

// RootKey returns the key of the node marked Root, or "" when none is.
// With multiple marked roots the lexicographically smallest wins; Validate
// rejects such trees before any algorithm runs.
// Complexity: O(V log V)
func (t *Tree) RootKey() string {
	root := ""
	for _, k := range t.Keys() {
		if t.nodes[k].Root {
			root = k
			break
		}
	}

	return root
}

// Clone returns a deep copy of the tree.
// Complexity: O(V)
func (t *Tree) Clone() *Tree {
	c := New()
	for k, n := range t.nodes {
		c.nodes[k] = n.clone()
	}

	return c
}

// Remove deletes the node under key and splices its children onto the
// node's parent, preserving the parent's remaining child order.
// Removing the root promotes its children to parentless nodes (the first
// becomes the new root); removing a non-existent key returns ErrNodeNotFound.
//
// Remove is the primitive behind Delete edit operations on working copies;
// validated source trees are never mutated.
// Complexity: O(V)
func (t *Tree) Remove(key string) error {
	n, ok := t.nodes[key]
	if !ok {
		return ErrNodeNotFound
	}

	if n.Parent != "" {
		if p := t.nodes[n.Parent]; p != nil {
			spliced := make([]string, 0, len(p.Children)+len(n.Children)-1)
			for _, c := range p.Children {
				if c == key {
					spliced = append(spliced, n.Children...)
					continue
				}
				spliced = append(spliced, c)
			}
			p.Children = spliced
		}
	}
	for i, c := range n.Children {
		child := t.nodes[c]
		if child == nil {
			continue
		}
		child.Parent = n.Parent
		if n.Parent == "" {
			// Orphaned by root removal; only legal when the root had a
			// single child, which Validate re-checks on the next snapshot.
			child.Root = n.Root && i == 0
		}
	}
	delete(t.nodes, key)

	return nil
}

// Subtree extracts a deep copy of the connected subtree rooted at key.
// The copy's root node is marked Root and detached from its former parent.
// Returns ErrNodeNotFound for an unknown key.
// Complexity: O(V)
func (t *Tree) Subtree(key string) (*Tree, error) {
	if _, ok := t.nodes[key]; !ok {
		return nil, ErrNodeNotFound
	}

	sub := New()
	var collect func(k string)
	collect = func(k string) {
		n := t.nodes[k]
		if n == nil {
			return
		}
		c := n.clone()
		sub.nodes[k] = c
		for _, child := range n.Children {
			collect(child)
		}
	}
	collect(key)

	root := sub.nodes[key]
	root.Root = true
	root.Parent = ""

	return sub, nil
}

// Postorder returns node keys in left-to-right postorder from the root,
// following the stored child order. Nodes unreachable from the root are
// omitted; Validate guarantees there are none.
// Complexity: O(V)
func (t *Tree) Postorder() []string {
	order := make([]string, 0, len(t.nodes))
	var walk func(k string)
	walk = func(k string) {
		n := t.nodes[k]
		if n == nil {
			return
		}
		for _, c := range n.Children {
			walk(c)
		}
		order = append(order, k)
	}
	if root := t.RootKey(); root != "" {
		walk(root)
	}

	return order
}

// Preorder returns node keys in root-first depth order, following the
// stored child order. This is the canonical traversal used for stable
// tie-breaking in novelty contributions.
// Complexity: O(V)
func (t *Tree) Preorder() []string {
	order := make([]string, 0, len(t.nodes))
	var walk func(k string)
	walk = func(k string) {
		n := t.nodes[k]
		if n == nil {
			return
		}
		order = append(order, k)
		for _, c := range n.Children {
			walk(c)
		}
	}
	if root := t.RootKey(); root != "" {
		walk(root)
	}

	return order
}
