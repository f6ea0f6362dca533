// Package recombine turns one edit script into many structurally distinct,
// valid intermediate trees — the actual recipe "ideas".
//
// 🚀 How does recombination work?
//
//	An edit script transforming tree A into tree B is a linearization of a
//	partial order: an Insert depends on the insertion of its parent, a
//	Delete must happen before the delete of its parent. Replaying a
//	*different* linear extension of that partial order, and stopping
//	partway, yields an intermediate tree that blends elements of both
//	dishes while every snapshot remains a single rooted tree.
//
// Algorithm Outline:
//  1. Build the operation dependency graph from the script.
//  2. Draw a randomized topological linear extension (a seeded randomized
//     Kahn walk: repeatedly pick uniformly among operations whose
//     dependencies are satisfied).
//  3. Replay the extension on a working copy of A, anchoring every Insert
//     at its nearest already-present ancestor and adopting its nearest
//     already-present descendants; splice Deletes; rewrite Renames.
//  4. Snapshot the working tree each time accumulated cost crosses a
//     requested stopping fraction (or an explicit step count), validate
//     it, and deduplicate by structural hash.
//
// ✨ Determinism contract:
//   - identical (script, seed, stopping fractions) inputs always produce
//     the identical ordered candidate list;
//   - randomness is seeded per call and never shared across goroutines;
//   - every snapshot passes structural validation or the generator fails
//     with ErrInvariantViolation — corrupt candidates are never emitted.
//
// An optional priority policy biases the walk the way the original
// recombination strategy did: inserts of core-tagged target ingredients
// come early, deletes of structure-tagged source ingredients come late,
// preserving the source dish's skeleton while its flavor shifts.
//
// Complexity: O(T · (V + E + S·V)) for T trials, script length S.
package recombine
