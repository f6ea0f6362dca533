// Package corpus loads and serves the recipe-frequency statistics behind
// novelty scoring: how many recipes contain each element, and how many
// contain each element pair.
//
// 🚀 Two backends behind one Store interface:
//
//	MemoryStore - counts held in process memory, loadable from the JSON
//	              snapshot format, incrementally updatable via AddRecipe.
//	              The default for tests and single-process runs.
//	RedisStore  - counts held in Redis hashes, shared across processes.
//	              Read-mostly: the table is materialized once per scoring
//	              run, never queried mid-algorithm.
//
// Both materialize immutable novelty.Table / novelty.PairTable values via
// Snapshot; the scorers themselves never touch a Store. That keeps every
// package below the pipeline pure and the I/O boundary in one place.
//
// Unknown elements are not errors: they count zero, which is exactly what
// an inverse-frequency scorer wants to see.
package corpus
