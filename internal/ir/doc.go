// Package ir provides the canonical value model used for content-addressed
// identity of records, inputs and solve runs.
//
// ir imports nothing internal; store, solver and harness build on it.
//
// Key design constraints:
//   - NO float types anywhere - counts are uint64, everything else int64
//   - Canonical JSON follows RFC 8785 (sorted keys, NFC strings, no HTML escaping)
//   - Digests are SHA-256 with a versioned domain prefix
package ir
