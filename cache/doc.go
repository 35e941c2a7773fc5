// Package cache stores solved machine results keyed by a digest of the
// machine's canonical text and the sub-problem solved.
//
// Two Stores are provided: Memory, a mutex-guarded map for single runs, and
// Redis, which namespaces every key as "joltage:{namespace}:result:{key}"
// and stores entries as JSON strings with an optional TTL. Open selects one
// from a DSN ("memory" or a redis:// URL).
//
// All Stores are safe for concurrent use. A missing key is reported as
// ErrMiss.
package cache
