package recipetree

import (
	"crypto/sha256"
	"encoding/hex"
	"sort"
	"strings"
)

// StructuralHash returns a digest of the tree that is invariant to node-key
// renaming but sensitive to label, kind, abstraction, tag set and the
// parent/child shape. Two trees that differ only in node keys (or in the
// order of structurally identical siblings) hash identically, which is
// exactly what candidate deduplication needs.
//
// Encoding: each node hashes H(label|kind|abstraction|sorted tags|sorted
// child digests); the tree digest is the root's digest. An empty tree
// hashes the empty encoding.
// Complexity: O(V log V)
func StructuralHash(t *Tree) string {
	if t == nil || len(t.nodes) == 0 {
		sum := sha256.Sum256(nil)
		return hex.EncodeToString(sum[:])
	}

	var digest func(key string) string
	digest = func(key string) string {
		n := t.nodes[key]
		if n == nil {
			return ""
		}

		tags := make([]string, 0, len(n.Tags))
		for _, tag := range n.Tags {
			tags = append(tags, string(tag))
		}
		sort.Strings(tags)

		children := make([]string, 0, len(n.Children))
		for _, c := range n.Children {
			children = append(children, digest(c))
		}
		sort.Strings(children)

		var b strings.Builder
		b.WriteString(n.Label)
		b.WriteByte(0)
		b.WriteString(n.Kind.String())
		b.WriteByte(0)
		b.WriteString(n.Abstraction)
		b.WriteByte(0)
		b.WriteString(strings.Join(tags, ","))
		b.WriteByte(0)
		b.WriteString(strings.Join(children, ","))
		sum := sha256.Sum256([]byte(b.String()))

		return hex.EncodeToString(sum[:])
	}

	return digest(t.RootKey())
}
