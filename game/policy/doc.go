// Package policy provides pluggable move-selection strategies for Shut the
// Box. A policy is a pure function from (snapshot, legal moves) to one
// chosen move; the engine stays the sole judge of legality, policies only
// express preference.
//
// Built-in policies:
//   - random: uniform choice among legal moves
//   - greedy: lowest remaining open-tile sum (first on ties)
//   - fewest: smallest move size, hoarding small tiles
//   - human:  prefer multi-tile moves, then greedy
//
// Table loads a learned lookup-table policy from JSON, keyed by board
// signature and target, with a greedy fallback for misses.
package policy
