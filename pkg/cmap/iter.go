package cmap

// Range iterates over all key-value pairs. The callback returns false
// to stop early. Locks are taken shard by shard, so the view is not a
// consistent snapshot.
func (m *Map[K, V]) Range(fn func(key K, value V) bool) {
	for _, shard := range m.shards {
		shard.mu.RLock()
		for k, v := range shard.items {
			if !fn(k, v) {
				shard.mu.RUnlock()
				return
			}
		}
		shard.mu.RUnlock()
	}
}

// Keys returns all keys in unspecified order.
func (m *Map[K, V]) Keys() []K {
	keys := make([]K, 0, m.Count())
	m.Range(func(key K, _ V) bool {
		keys = append(keys, key)
		return true
	})
	return keys
}

// Values returns all values in unspecified order.
func (m *Map[K, V]) Values() []V {
	values := make([]V, 0, m.Count())
	m.Range(func(_ K, value V) bool {
		values = append(values, value)
		return true
	})
	return values
}

// Update applies fn to the value under key while holding the shard
// lock, then stores the result. fn receives the zero value when the
// key is absent.
func (m *Map[K, V]) Update(key K, fn func(value V, exists bool) V) V {
	shard := m.getShard(key)
	shard.mu.Lock()
	defer shard.mu.Unlock()

	existing, exists := shard.items[key]
	next := fn(existing, exists)
	shard.items[key] = next
	return next
}

// UpdateIfPresent applies fn to the value under key only if the key
// exists, storing the result. It reports whether an update happened.
func (m *Map[K, V]) UpdateIfPresent(key K, fn func(value V) V) bool {
	shard := m.getShard(key)
	shard.mu.Lock()
	defer shard.mu.Unlock()

	existing, exists := shard.items[key]
	if !exists {
		return false
	}
	shard.items[key] = fn(existing)
	return true
}
