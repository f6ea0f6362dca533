package recombine

import (
	"github.com/moranmiz/Cooking-Up-Creativity/editdist"
	"github.com/moranmiz/Cooking-Up-Creativity/recipetree"
)

// replay is the mutable state of one edit-script replay: a working copy of
// tree A plus the representatives map, which records for every executed
// operation which working-tree node now stands for the corresponding node
// of tree B. Matches and Renames map a B key onto the surviving A key;
// Inserts map a B key onto itself.
type replay struct {
	work *recipetree.Tree
	a, b *recipetree.Tree
	rep  map[string]string // B key -> working-tree key
}

func newReplay(a, b *recipetree.Tree) *replay {
	return &replay{
		work: a.Clone(),
		a:    a,
		b:    b,
		rep:  make(map[string]string),
	}
}

// apply executes one operation on the working tree. It reports applied =
// false (with nil error) when the operation is not applicable yet and must
// be deferred: a root Delete while the root still has several children, or
// an anchorless Insert whose adoptable descendants neither include the
// working root nor share a single present parent.
func (r *replay) apply(op editdist.Op) (applied bool, err error) {
	switch op.Kind {
	case editdist.OpMatch:
		r.rep[op.To] = op.From
		return true, nil

	case editdist.OpRename:
		n := r.work.Node(op.From)
		src := r.b.Node(op.To)
		if n == nil || src == nil {
			return false, ErrInvariantViolation
		}
		n.Label = src.Label
		n.Kind = src.Kind
		n.Abstraction = src.Abstraction
		n.Tags = append([]recipetree.Tag(nil), src.Tags...)
		r.rep[op.To] = op.From
		return true, nil

	case editdist.OpDelete:
		n := r.work.Node(op.From)
		if n == nil {
			return false, ErrInvariantViolation
		}
		if n.Parent == "" && len(n.Children) > 1 {
			// Removing the root now would leave several parentless nodes;
			// wait until its other children are gone or re-parented.
			return false, nil
		}
		if err := r.work.Remove(op.From); err != nil {
			return false, ErrInvariantViolation
		}
		return true, nil

	case editdist.OpInsert:
		return r.applyInsert(op)
	}

	return false, ErrInvariantViolation
}

// applyInsert creates the node for op.To, anchors it at the nearest
// already-present B ancestor and adopts its nearest already-present B
// descendants, re-parenting their working subtrees underneath it.
func (r *replay) applyInsert(op editdist.Op) (bool, error) {
	src := r.b.Node(op.To)
	if src == nil || r.work.Node(op.To) != nil {
		return false, ErrInvariantViolation
	}

	anchor := r.nearestAnchor(op.To)
	adoptees := r.nearestAdoptees(op.To, anchor)

	rootKey := r.work.RootKey()
	if anchor == "" && r.work.Len() > 0 {
		// Without an anchor the node may only enter as the new root, which
		// requires it to adopt the current root.
		adoptsRoot := false
		for _, w := range adoptees {
			if w == rootKey {
				adoptsRoot = true
				break
			}
		}
		if !adoptsRoot {
			// Root-replacement scripts delete the old root and insert the
			// new one; the new root's adoptees are then the old root's
			// children, never the old root itself. When all adoptees hang
			// off one present parent, enter under that parent — the old
			// root's delete later finds a single child and promotes it.
			// Otherwise defer.
			p := commonParent(r.work, adoptees)
			if p == "" {
				return false, nil
			}
			anchor = p
		}
	}

	n := &recipetree.Node{
		Key:         op.To,
		Label:       src.Label,
		Kind:        src.Kind,
		Abstraction: src.Abstraction,
		Tags:        append([]recipetree.Tag(nil), src.Tags...),
		Parent:      anchor,
		Root:        anchor == "",
	}
	if err := r.work.Add(n); err != nil {
		return false, ErrInvariantViolation
	}
	if anchor != "" {
		p := r.work.Node(anchor)
		p.Children = insertAt(p.Children, op.To, op.Pos)
	}

	for _, w := range adoptees {
		child := r.work.Node(w)
		if old := r.work.Node(child.Parent); old != nil {
			old.Children = removeKey(old.Children, w)
		}
		if child.Root {
			child.Root = false
			n.Root = true
			n.Parent = ""
		}
		child.Parent = op.To
		n.Children = append(n.Children, w)
	}

	r.rep[op.To] = op.To

	return true, nil
}

// nearestAnchor walks up the B-side ancestors of key and returns the
// working-tree representative of the closest one already present, or "".
func (r *replay) nearestAnchor(key string) string {
	for p := r.b.Node(key).Parent; p != ""; p = r.b.Node(p).Parent {
		if w, ok := r.rep[p]; ok {
			if r.work.Node(w) != nil {
				return w
			}
		}
	}

	return ""
}

// nearestAdoptees walks down the B-side descendants of key, stopping at the
// first present representative along each branch, and returns their working
// keys. Working-tree ancestors of anchor are skipped: adopting one would
// close a cycle through the anchor.
func (r *replay) nearestAdoptees(key, anchor string) []string {
	blocked := make(map[string]bool)
	for k := anchor; k != ""; k = r.work.Node(k).Parent {
		blocked[k] = true
	}

	var out []string
	var walk func(bKey string)
	walk = func(bKey string) {
		for _, c := range r.b.Node(bKey).Children {
			if w, ok := r.rep[c]; ok && r.work.Node(w) != nil {
				if !blocked[w] {
					out = append(out, w)
				}
				continue
			}
			walk(c)
		}
	}
	walk(key)

	return out
}

// commonParent returns the shared working-tree parent of keys, or "" when
// keys is empty, holds the root, or spans several parents.
func commonParent(t *recipetree.Tree, keys []string) string {
	if len(keys) == 0 {
		return ""
	}
	p := t.Node(keys[0]).Parent
	for _, k := range keys[1:] {
		if t.Node(k).Parent != p {
			return ""
		}
	}

	return p
}

// insertAt returns keys with key inserted at pos, clamped to the bounds.
func insertAt(keys []string, key string, pos int) []string {
	if pos < 0 {
		pos = 0
	}
	if pos > len(keys) {
		pos = len(keys)
	}
	keys = append(keys, "")
	copy(keys[pos+1:], keys[pos:])
	keys[pos] = key

	return keys
}

// removeKey returns keys without the first occurrence of key.
func removeKey(keys []string, key string) []string {
	for i, k := range keys {
		if k == key {
			return append(keys[:i:i], keys[i+1:]...)
		}
	}

	return keys
}
