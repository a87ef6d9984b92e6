// Package store provides SQLite-backed durable storage for springs.
//
// The store holds:
//   - Runs: one row per completed solve, ordered by seq
//   - Run lines: per-input-line counts of each run
//   - Record counts: a content-addressed memo of final arrangement counts,
//     keyed by ir.RecordDigest of the unfolded record
//
// Record counts are a pure function of their key, so a hit is always valid
// regardless of which input or run produced it.
//
// # Database Configuration
//
//   - WAL mode: Concurrent reads during writes
//   - synchronous=NORMAL: Balance durability/performance
//   - busy_timeout=5000: Wait for locks up to 5 seconds
//   - foreign_keys=ON: Enforce referential integrity
//
// Counts are stored as decimal TEXT because SQLite integers are signed
// 64-bit and arrangement counts use the full uint64 range.
package store
