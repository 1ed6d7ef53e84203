package cmap

// Range calls fn for every key-value pair until fn returns false.
//
// fn runs with the shard read lock held and must not modify the map.
func (m *Map[V]) Range(fn func(key string, value V) bool) {
	for _, s := range m.shards {
		s.mu.RLock()
		for k, v := range s.items {
			if !fn(k, v) {
				s.mu.RUnlock()
				return
			}
		}
		s.mu.RUnlock()
	}
}

// Snapshot returns a copy of the map contents.
func (m *Map[V]) Snapshot() map[string]V {
	out := make(map[string]V, m.Count())
	m.Range(func(key string, value V) bool {
		out[key] = value
		return true
	})
	return out
}

// GetOrCompute returns the existing value for a key, or stores and returns
// the result of create if absent. create runs at most once, under the
// shard lock.
func (m *Map[V]) GetOrCompute(key string, create func() V) (V, bool) {
	s := m.getShard(key)

	s.mu.RLock()
	existing, ok := s.items[key]
	s.mu.RUnlock()
	if ok {
		return existing, true
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if existing, ok := s.items[key]; ok {
		return existing, true
	}
	value := create()
	s.items[key] = value
	return value, false
}

// ShardStats reports the item count of one shard.
type ShardStats struct {
	Index int
	Count int
}

// Stats returns the item count of every shard.
func (m *Map[V]) Stats() []ShardStats {
	stats := make([]ShardStats, len(m.shards))
	for i, s := range m.shards {
		s.mu.RLock()
		stats[i] = ShardStats{Index: i, Count: len(s.items)}
		s.mu.RUnlock()
	}
	return stats
}
