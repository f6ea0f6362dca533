// Package novelty scores recipe trees against a corpus of known recipes:
// how unusual are this idea's elements, and how surprising are they in
// each other's company?
//
// 🚀 Two scorers:
//
//	Score        - inverse document frequency per element. An element seen
//	               in few corpus recipes scores high, a staple scores near
//	               zero. Cheap, monotone, the default ranking signal.
//	PairwiseScore - co-occurrence surprise. For each element, how rarely do
//	               its companions appear next to it across the corpus? The
//	               signal that separates "saffron on toast" from "salt on
//	               toast" even when both seasonings are individually common.
//
// ✨ Key properties:
//   - Determinism: contributions are ordered by descending score with ties
//     broken by canonical preorder position, so equal inputs always yield
//     byte-identical records.
//   - Monotonicity: with corpus size N fixed, a lower document frequency
//     never scores below a higher one; df==0 scores the maximum.
//   - Purity: both scorers read an immutable Table/PairTable value and
//     perform no I/O; corpus backends materialize tables up front.
//
// Errors:
//
//	ErrEmptyCorpus - the table holds no recipes. Score still returns a
//	                 degraded record (every element at the unseen cap)
//	                 alongside the error so callers may rank anyway.
//
// Complexity: Score O(V log V); PairwiseScore O(E² + E·K log E) for E
// distinct elements.
package novelty
