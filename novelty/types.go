package novelty

import (
	"errors"

	"github.com/moranmiz/Cooking-Up-Creativity/recipetree"
)

// ErrEmptyCorpus indicates the frequency table holds no recipes. Score
// returns it together with a degraded record; callers decide whether the
// degraded ranking is still useful.
var ErrEmptyCorpus = errors.New("novelty: corpus is empty")

// Table is the document-frequency view of a corpus: how many recipes
// contain each element at least once. Immutable by convention; scorers
// only read it.
type Table struct {
	// Recipes is the corpus size N.
	Recipes int

	// Freq maps an element (ingredient abstraction or action label) to the
	// number of corpus recipes containing it.
	Freq map[string]int
}

// PairKey is an unordered element pair in canonical order (A <= B).
type PairKey struct {
	A, B string
}

// MakePair returns the canonical PairKey for two elements.
func MakePair(a, b string) PairKey {
	if b < a {
		a, b = b, a
	}
	return PairKey{A: a, B: b}
}

// PairTable is the co-occurrence view of a corpus used by PairwiseScore.
type PairTable struct {
	// Count maps an element to the number of recipes containing it.
	Count map[string]int

	// Pair maps a canonical element pair to the number of recipes
	// containing both.
	Pair map[PairKey]int
}

// Contribution is one element's share of a record.
type Contribution struct {
	// Key is the node key the contribution came from ("" for PairwiseScore,
	// which works on bare elements).
	Key string

	// Element is the scored element.
	Element string

	// Weight is the tag-derived multiplier applied to Score.
	Weight float64

	// Score is the raw per-element score before weighting.
	Score float64
}

// Weighted returns Weight * Score.
func (c Contribution) Weighted() float64 {
	return c.Weight * c.Score
}

// Record is a scored tree: per-element contributions in descending weighted
// score (ties by canonical preorder position) plus their sum.
type Record struct {
	Contributions []Contribution
	Total         float64
}

// Weights maps ingredient tags to score multipliers. Elements whose node
// carries several tags take the largest multiplier; untagged elements and
// actions take DefaultWeight.
type Weights map[recipetree.Tag]float64

// DefaultWeight is the multiplier for untagged elements.
const DefaultWeight = 1.0

// DefaultWeights boosts core ingredients: a novel dish-defining ingredient
// matters more than a novel garnish.
func DefaultWeights() Weights {
	return Weights{
		recipetree.TagCore:      2.0,
		recipetree.TagTaste:     1.0,
		recipetree.TagStructure: 1.0,
	}
}

// Defaults for Options fields left zero.
const (
	// DefaultUnseenCap is the per-element score used when the corpus is
	// empty and no IDF can be computed.
	DefaultUnseenCap = 10.0

	// DefaultTopK bounds how many companion surprises are summed per
	// fixated element in PairwiseScore.
	DefaultTopK = 10

	// DefaultMinOccurrences is the rare-element floor: elements seen in
	// fewer corpus recipes are not fixated (their statistics are noise).
	DefaultMinOccurrences = 2
)

// Options configures both scorers. The zero value selects all defaults.
type Options struct {
	// Weights multiplies per-element scores by ingredient tag; nil selects
	// DefaultWeights.
	Weights Weights

	// UnseenCap replaces per-element scores when the corpus is empty;
	// 0 selects DefaultUnseenCap.
	UnseenCap float64

	// TopK bounds companion surprises per fixated element in PairwiseScore;
	// 0 selects DefaultTopK.
	TopK int

	// MinOccurrences is the rare-element floor for PairwiseScore;
	// 0 selects DefaultMinOccurrences.
	MinOccurrences int
}

// DefaultOptions returns the default scorer configuration.
func DefaultOptions() Options {
	return Options{
		Weights:        DefaultWeights(),
		UnseenCap:      DefaultUnseenCap,
		TopK:           DefaultTopK,
		MinOccurrences: DefaultMinOccurrences,
	}
}
