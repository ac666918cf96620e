// Package cache provides a bounded in-memory cache for expensive pipeline
// stage results.
//
// It provides a Cache interface with a TTL+LRU implementation, SHA-256-based
// key derivation from (stage, normalized input), and TTL policies. The
// primary entry point for callers is GetOrCompute, which deduplicates the
// cost of repeated upstream calls.
package cache
