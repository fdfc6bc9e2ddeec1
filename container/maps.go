package container

import "strings"

// pairs is the parallel key/value storage shared by StrMap and IntMap.
// Insertion order is not meaningful; lookups are linear.
type pairs[K comparable, V any] struct {
	keys   []K
	values []V
}

func (p *pairs[K, V]) find(key K) int {
	for i, k := range p.keys {
		if k == key {
			return i
		}
	}
	return -1
}

func (p *pairs[K, V]) add(key K, v V, destroy func(V)) {
	if i := p.find(key); i >= 0 {
		if destroy != nil {
			destroy(p.values[i])
		}
		p.values[i] = v
		return
	}
	p.keys = append(p.keys, key)
	p.values = append(p.values, v)
}

func (p *pairs[K, V]) addIfAbsent(key K, v V) bool {
	if p.find(key) >= 0 {
		return false
	}
	p.keys = append(p.keys, key)
	p.values = append(p.values, v)
	return true
}

func (p *pairs[K, V]) removeAt(i int, destroy func(V)) {
	var (
		zk K
		zv V
	)
	if destroy != nil {
		destroy(p.values[i])
	}
	last := len(p.keys) - 1
	p.keys[i], p.values[i] = p.keys[last], p.values[last]
	p.keys[last], p.values[last] = zk, zv
	p.keys, p.values = p.keys[:last], p.values[:last]
	if last == 0 {
		p.keys, p.values = nil, nil
	}
}

func (p *pairs[K, V]) clear(destroy func(V)) {
	if destroy != nil {
		for _, v := range p.values {
			destroy(v)
		}
	}
	p.keys, p.values = nil, nil
}

// StrMap is a small string-keyed map. Keys are copied on insert.
type StrMap[V any] struct {
	p pairs[string, V]
}

// Len returns the number of entries.
func (m *StrMap[V]) Len() int {
	if m == nil {
		return 0
	}
	return len(m.p.keys)
}

// Find returns the index of key, or -1.
func (m *StrMap[V]) Find(key string) int {
	if m == nil {
		return -1
	}
	return m.p.find(key)
}

// Add inserts key or replaces its value. When replacing, destroy (if non-nil)
// is called with the previous value.
func (m *StrMap[V]) Add(key string, v V, destroy func(V)) {
	if m == nil {
		return
	}
	m.p.add(strings.Clone(key), v, destroy)
}

// AddIfAbsent inserts key only when it is not present and reports whether it
// did.
func (m *StrMap[V]) AddIfAbsent(key string, v V) bool {
	if m == nil || m.Find(key) >= 0 {
		return false
	}
	return m.p.addIfAbsent(strings.Clone(key), v)
}

// Get returns the value stored under key.
func (m *StrMap[V]) Get(key string) (V, bool) {
	var zero V
	i := m.Find(key)
	if i < 0 {
		return zero, false
	}
	return m.p.values[i], true
}

// GetRef returns a pointer to the stored value, or nil. The pointer is
// invalidated by the next insertion or removal.
func (m *StrMap[V]) GetRef(key string) *V {
	i := m.Find(key)
	if i < 0 {
		return nil
	}
	return &m.p.values[i]
}

// Remove deletes key, calling destroy on its value first.
func (m *StrMap[V]) Remove(key string, destroy func(V)) bool {
	i := m.Find(key)
	if i < 0 {
		return false
	}
	m.p.removeAt(i, destroy)
	return true
}

// Clear removes every entry.
func (m *StrMap[V]) Clear(destroy func(V)) {
	if m == nil {
		return
	}
	m.p.clear(destroy)
}

// Keys returns the keys in storage order. The slice MUST NOT be mutated.
func (m *StrMap[V]) Keys() []string {
	if m == nil {
		return nil
	}
	return m.p.keys
}

// IntMap is a small int-keyed map.
type IntMap[V any] struct {
	p pairs[int, V]
}

// Len returns the number of entries.
func (m *IntMap[V]) Len() int {
	if m == nil {
		return 0
	}
	return len(m.p.keys)
}

// Find returns the index of key, or -1.
func (m *IntMap[V]) Find(key int) int {
	if m == nil {
		return -1
	}
	return m.p.find(key)
}

// Add inserts key or replaces its value, destroying the previous one.
func (m *IntMap[V]) Add(key int, v V, destroy func(V)) {
	if m == nil {
		return
	}
	m.p.add(key, v, destroy)
}

// AddIfAbsent inserts key only when it is not present.
func (m *IntMap[V]) AddIfAbsent(key int, v V) bool {
	if m == nil {
		return false
	}
	return m.p.addIfAbsent(key, v)
}

// Get returns the value stored under key.
func (m *IntMap[V]) Get(key int) (V, bool) {
	var zero V
	i := m.Find(key)
	if i < 0 {
		return zero, false
	}
	return m.p.values[i], true
}

// GetRef returns a pointer to the stored value, or nil.
func (m *IntMap[V]) GetRef(key int) *V {
	i := m.Find(key)
	if i < 0 {
		return nil
	}
	return &m.p.values[i]
}

// Remove deletes key, calling destroy on its value first.
func (m *IntMap[V]) Remove(key int, destroy func(V)) bool {
	i := m.Find(key)
	if i < 0 {
		return false
	}
	m.p.removeAt(i, destroy)
	return true
}

// Clear removes every entry.
func (m *IntMap[V]) Clear(destroy func(V)) {
	if m == nil {
		return
	}
	m.p.clear(destroy)
}

// Keys returns the keys in storage order.
func (m *IntMap[V]) Keys() []int {
	if m == nil {
		return nil
	}
	return m.p.keys
}
