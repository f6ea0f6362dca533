package novelty

import (
	"math"
	"sort"

	"github.com/moranmiz/Cooking-Up-Creativity/recipetree"
)

// Element returns the scored element for a node: the abstraction for an
// ingredient (collapsing surface variants like "granny smith" and "red
// apple" into one corpus entry), the label for an action. A rare cooking
// verb is as much a novelty signal as a rare ingredient.
func Element(n *recipetree.Node) string {
	if n.Kind == recipetree.Ingredient && n.Abstraction != "" {
		return n.Abstraction
	}
	return n.Label
}

// Elements returns the tree's elements in canonical preorder, one entry
// per node (duplicates preserved).
func Elements(t *recipetree.Tree) []string {
	out := make([]string, 0, t.Len())
	for _, key := range t.Preorder() {
		out = append(out, Element(t.Node(key)))
	}

	return out
}

// Score computes the IDF novelty record of a tree against table: every
// element, ingredient and action alike, scores log(N/(1+df)), clamped
// non-negative, weighted by its node's tags (actions carry none and take
// DefaultWeight). Contributions come back in descending weighted score,
// ties broken by the node's preorder position.
//
// An empty table yields a degraded record (every element at the unseen cap)
// together with ErrEmptyCorpus.
func Score(t *recipetree.Tree, table *Table, opts *Options) (*Record, error) {
	o := DefaultOptions()
	if opts != nil {
		o = *opts
	}
	if o.Weights == nil {
		o.Weights = DefaultWeights()
	}
	if o.UnseenCap == 0 {
		o.UnseenCap = DefaultUnseenCap
	}

	empty := table == nil || table.Recipes == 0

	rec := &Record{}
	for _, key := range t.Preorder() {
		n := t.Node(key)
		e := Element(n)
		score := o.UnseenCap
		if !empty {
			df := table.Freq[e]
			score = math.Log(float64(table.Recipes) / float64(1+df))
			if score < 0 {
				score = 0
			}
		}

		c := Contribution{
			Key:     key,
			Element: e,
			Weight:  weightFor(n, o.Weights),
			Score:   score,
		}
		rec.Contributions = append(rec.Contributions, c)
		rec.Total += c.Weighted()
	}

	// Preorder collection makes the stable sort's tie order canonical.
	sort.SliceStable(rec.Contributions, func(i, j int) bool {
		return rec.Contributions[i].Weighted() > rec.Contributions[j].Weighted()
	})

	if empty {
		return rec, ErrEmptyCorpus
	}

	return rec, nil
}

// weightFor returns the largest tag multiplier of n, or DefaultWeight for
// untagged nodes and tags absent from w.
func weightFor(n *recipetree.Node, w Weights) float64 {
	best := 0.0
	for _, tag := range n.Tags {
		if m, ok := w[tag]; ok && m > best {
			best = m
		}
	}
	if best == 0 {
		return DefaultWeight
	}

	return best
}
