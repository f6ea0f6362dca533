// Package pipeline orchestrates recombination across whole recipe
// collections: every dish pair, every recipe pair within it, several
// randomized versions each — parsed, recombined, filtered, scored and
// rendered into the external output format.
//
// 🚀 Flow per recipe pair:
//
//	parse → validate → prep (disambiguate, suffix, sort) → edit distance
//	      → recombine (randomized replays, snapshots) → coherence filter
//	      → novelty scoring (optional corpus) → tree_dict + DOT rendering
//
// ✨ Key properties:
//   - Bounded concurrency via errgroup (one pair per task, SetLimit from
//     configuration).
//   - Scheduling-independent output: each task derives its own RNG stream
//     from (seed, task index), so worker interleaving never changes a
//     single byte of the result.
//   - Skip-not-fail error policy: a malformed or oversized source tree
//     skips its pairs and lands in the result's skip list; everything else
//     proceeds. Infrastructure errors (filter, corpus) abort the run.
//
// External collaborators enter through small interfaces: Parser produces
// trees from raw recipe payloads (the built-in JSONParser decodes the
// tree_dict schema), CoherenceFilter gates candidates before scoring.
// Parser output is re-validated here no matter what the parser claims.
//
// Configuration loads from YAML or JSON files: cost weights or CEL cost
// expressions, novelty weights, stopping fractions, versions per pair,
// tree size bound, concurrency and seed.
package pipeline
