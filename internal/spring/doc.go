// Package spring counts the arrangements of damaged springs that are
// consistent with a record's damaged-run lengths.
//
// A Row is the raw input pair (symbols, groups). Reduce consumes the
// unambiguous prefix of a row and yields an Outcome: a Contradiction, a
// Satisfied terminal, or a Reduced Record. A Counter branches on the first
// Unknown symbol of a Record, reduces each hypothesis and memoizes counts by
// the Record's structural key.
//
// # Memoization
//
// The recursion Cache is owned by exactly one Counter and one input row.
// Records from different rows must never share a Cache; construct a fresh
// Counter (NewCounter(NewMapCache())) per row.
//
// # Depth
//
// Recursion depth is bounded by the number of Unknown symbols in the row.
// Goroutine stacks grow on demand, so unfolded rows with several hundred
// unknowns are fine.
package spring
