// Package memory provides the in-memory keyspace for redikv.
//
// Two independent sharded maps hold the data: one maps a key to a stored
// frame, the other maps a key to a hash of field frames. Operations on
// keys that land in different shards never contend, and every operation
// on the same key is serialized by its shard lock.
//
// Thread Safety:
//
// All methods are safe for concurrent use. Read operations use RLock,
// write operations use Lock. A hash is created atomically on the first
// HSet for its key, so concurrent HSets on a new key never lose fields.
package memory
