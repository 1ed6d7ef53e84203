package memory

import (
	"github.com/yndnr/redikv/internal/resp"
	"github.com/yndnr/redikv/pkg/cmap"
)

// DefaultHashShardCount is the shard count of each per-key hash. Hashes are
// usually small, so they use far fewer shards than the top-level maps.
const DefaultHashShardCount = 4

// Backend is the shared keyspace every connection executes against.
type Backend struct {
	values *cmap.Map[resp.Frame]
	hashes *cmap.Map[*cmap.Map[resp.Frame]]

	hashShards int
}

// Option configures the Backend.
type Option func(*backendOptions)

type backendOptions struct {
	shardCount     int
	hashShardCount int
}

// WithShardCount sets the shard count of the top-level key maps.
// Values that are not a positive power of two fall back to the default.
func WithShardCount(n int) Option {
	return func(o *backendOptions) {
		o.shardCount = n
	}
}

// WithHashShardCount sets the shard count used for each hash.
func WithHashShardCount(n int) Option {
	return func(o *backendOptions) {
		o.hashShardCount = n
	}
}

// New creates an empty Backend.
func New(opts ...Option) *Backend {
	o := backendOptions{
		shardCount:     cmap.DefaultShardCount,
		hashShardCount: DefaultHashShardCount,
	}
	for _, opt := range opts {
		opt(&o)
	}
	if !cmap.IsValidShardCount(o.hashShardCount) {
		o.hashShardCount = DefaultHashShardCount
	}

	return &Backend{
		values:     cmap.NewWithShards[resp.Frame](o.shardCount),
		hashes:     cmap.NewWithShards[*cmap.Map[resp.Frame]](o.shardCount),
		hashShards: o.hashShardCount,
	}
}

// Get returns the frame stored at key.
func (b *Backend) Get(key string) (resp.Frame, bool) {
	return b.values.Get(key)
}

// Set stores value at key, replacing any previous value.
func (b *Backend) Set(key string, value resp.Frame) {
	b.values.Set(key, value)
}

// HGet returns field of the hash at key.
func (b *Backend) HGet(key, field string) (resp.Frame, bool) {
	h, ok := b.hashes.Get(key)
	if !ok {
		return resp.Frame{}, false
	}
	return h.Get(field)
}

// HSet stores value in field of the hash at key, creating the hash if needed.
func (b *Backend) HSet(key, field string, value resp.Frame) {
	h, _ := b.hashes.GetOrCompute(key, b.newHash)
	h.Set(field, value)
}

// HGetAll returns a copy of every field of the hash at key. The boolean is
// false when no hash exists at key.
func (b *Backend) HGetAll(key string) (map[string]resp.Frame, bool) {
	h, ok := b.hashes.Get(key)
	if !ok {
		return nil, false
	}
	return h.Snapshot(), true
}

func (b *Backend) newHash() *cmap.Map[resp.Frame] {
	return cmap.NewWithShards[resp.Frame](b.hashShards)
}

// Stats summarizes the keyspace.
type Stats struct {
	// Keys is the number of keys written by Set.
	Keys int
	// Hashes is the number of keys written by HSet.
	Hashes int
	// Fields is the total field count across all hashes.
	Fields int
	// Shards is the shard count of the key maps.
	Shards int
	// MaxShardKeys is the key count of the fullest value shard. Far above
	// Keys/Shards means the keys hash unevenly.
	MaxShardKeys int
}

// Stats returns the current keyspace counts. The counts are gathered shard
// by shard and are not an atomic snapshot under concurrent writes.
func (b *Backend) Stats() Stats {
	s := Stats{
		Hashes: b.hashes.Count(),
		Shards: b.values.ShardCount(),
	}
	for _, sh := range b.values.Stats() {
		s.Keys += sh.Count
		s.MaxShardKeys = max(s.MaxShardKeys, sh.Count)
	}
	b.hashes.Range(func(_ string, h *cmap.Map[resp.Frame]) bool {
		s.Fields += h.Count()
		return true
	})
	return s
}
