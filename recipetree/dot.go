package recipetree

import (
	"fmt"
	"regexp"
	"strings"
)

// Visualization colors for the DOT export.
const (
	ingrAbstrColor     = "darkorchid"
	ingrStructureColor = "deeppink3"
	ingrCoreColor      = "dodgerblue4"
	actionAbstrColor   = "springgreen4"
)

// digitRun strips disambiguation digits from display labels ("sugar2" -> "sugar").
var digitRun = regexp.MustCompile(`\d+`)

// DotCode renders the tree as a Graphviz digraph for visualization.
// Edges run child → parent (rankdir=BT), matching the direction of
// "ingredient feeds action". Ingredient nodes show their abstraction and
// any structure/core tags; action nodes show their abstraction.
//
// Nodes and edges are emitted in lexicographic key order, so identical
// trees always produce byte-identical DOT code. The output is for display
// only and is never parsed back as primary input.
// Complexity: O(V log V)
func DotCode(t *Tree) string {
	var b strings.Builder
	b.WriteString("digraph G {\n")
	b.WriteString("\trankdir=BT ratio=auto;\n")

	keys := t.Keys()
	for _, key := range keys {
		n := t.nodes[key]
		label := digitRun.ReplaceAllString(n.Label, "")
		if n.Kind == Ingredient {
			fmt.Fprintf(&b, "\t%s[label=<%s", key, label)
			fmt.Fprintf(&b, "<br /> <font color=%q point-size=\"10\">%s</font>", ingrAbstrColor, n.Abstraction)
			if hasTag(n, TagStructure) {
				fmt.Fprintf(&b, "<br /> <font color=%q point-size=\"10\">(structure)</font>", ingrStructureColor)
			}
			if hasTag(n, TagCore) {
				fmt.Fprintf(&b, "<br /> <font color=%q point-size=\"10\">(core)</font>", ingrCoreColor)
			}
			b.WriteString("> shape=box];\n")
		} else {
			fmt.Fprintf(&b, "\t%s [label=<%s", key, label)
			fmt.Fprintf(&b, "<br /> <font color=%q point-size=\"10\">%s</font>>];\n", actionAbstrColor, n.Abstraction)
		}
	}
	for _, key := range keys {
		for _, child := range t.nodes[key].Children {
			fmt.Fprintf(&b, "\t%s -> %s;\n", child, key)
		}
	}
	b.WriteString("}")

	return b.String()
}

// hasTag reports whether n carries tag.
func hasTag(n *Node, tag Tag) bool {
	for _, t := range n.Tags {
		if t == tag {
			return true
		}
	}
	return false
}
