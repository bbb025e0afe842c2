package util

import (
	"sort"

	"github.com/pkg/errors"
	"golang.org/x/exp/constraints"
)

// OrderedMap is a map supporting iteration ordered by the key.
//
// Inserting a key twice is rejected.
type OrderedMap[K constraints.Ordered, V any] struct {
	data map[K]V
}

// NewOrderedMap instantiates an empty OrderedMap object.
func NewOrderedMap[K constraints.Ordered, V any]() OrderedMap[K, V] {
	return OrderedMap[K, V]{data: map[K]V{}}
}

// NewOrderedMapFrom instantiates a new OrderedMap from a given conventional map
// by shallow-copying both the keys and the values.
func NewOrderedMapFrom[K constraints.Ordered, V any](raw map[K]V) OrderedMap[K, V] {
	result := OrderedMap[K, V]{data: make(map[K]V, len(raw))}
	for k, v := range raw {
		result.data[k] = v
	}
	return result
}

// Insert a (key, value) pair.
func (m *OrderedMap[K, V]) Insert(key K, value V) error {
	if _, ok := m.data[key]; ok {
		return errors.Errorf("duplicate key %v", key)
	}
	m.data[key] = value
	return nil
}

// Lookup performs a lookup of the key, similar to `v, ok := m[k]`.
func (m *OrderedMap[K, V]) Lookup(key K) (V, bool) {
	val, ok := m.data[key]
	return val, ok
}

// Len returns the number of entries.
func (m *OrderedMap[K, V]) Len() int {
	return len(m.data)
}

// Keys returns the ordered list of map keys.
func (m *OrderedMap[K, V]) Keys() []K {
	keys := make([]K, 0, len(m.data))
	for k := range m.data {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

// OrderedKeys returns the ordered keys of a conventional map.
func OrderedKeys[K constraints.Ordered, V any](m map[K]V) []K {
	tmp := NewOrderedMapFrom(m)
	return tmp.Keys()
}
