// Package creativity is an in-memory engine for recombining structured
// recipe trees into novel but coherent recipe ideas.
//
// 🚀 What does it do?
//
//	Given two labeled recipe trees, it computes a minimum-cost edit
//	transformation between them (Zhang–Shasha), replays randomized,
//	dependency-respecting prefixes of that transformation to materialize
//	structurally distinct intermediate trees, and ranks the results by a
//	rarity-based novelty score:
//		• Tree model: validated, ordered, labeled recipe trees
//		• Edit distance: Zhang–Shasha forest DP + explicit edit scripts
//		• Recombination: seeded randomized linear extensions + snapshots
//		• Novelty: IDF-style rarity scoring against a reference corpus
//
// ✨ Why this engine?
//
//   - Deterministic – same inputs and seed always yield identical output
//   - Pure core – no I/O, no shared mutable state, no hidden randomness
//   - Configurable – edit costs and novelty weights are options, not constants
//   - Parallel-friendly – independent recipe pairs run on a bounded pool
//
// Everything is organized under six subpackages:
//
//	recipetree/ — tree model, validation, hashing, serialization, DOT export
//	editdist/   — Zhang–Shasha tree edit distance + edit-script backtrace
//	recombine/  — dependency graph, randomized replay, candidate snapshots
//	novelty/    — element and pairwise rarity scoring
//	corpus/     — frequency-table stores (in-memory, Redis)
//	pipeline/   — orchestration across dish pairs, config, output assembly
//
// Quick ASCII example:
//
//	    toast            toast
//	      │        ⇒       │
//	    bread           olive oil
//
//	one Rename of the leaf, edit distance 1.
//
// Natural-language parsing and generation live outside this module; the
// pipeline package only defines the narrow interfaces it calls them through.
package creativity
