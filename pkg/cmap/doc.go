// Package cmap provides a sharded concurrent map keyed by strings.
//
// Keys are spread over a power-of-two number of shards by MurmurHash3.
// Each shard is guarded by its own RWMutex, so operations on keys that
// land in different shards never contend, and every single-key operation
// is atomic.
//
// Usage:
//
//	m := cmap.NewWithShards[resp.Frame](cmap.DefaultShardCount)
//	m.Set("key", value)
//	v, ok := m.Get("key")
//
// Iteration (Range, Snapshot) locks one shard at a time, so it does
// not observe a single point-in-time view across shards.
package cmap
